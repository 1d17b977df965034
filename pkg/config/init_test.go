package config

import (
	"path/filepath"
	"testing"
)

func TestInitConfigToPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	if err := InitConfigToPath(path, false); err != nil {
		t.Fatalf("InitConfigToPath failed: %v", err)
	}

	// The sample file must load and validate as-is.
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("sample config does not load: %v", err)
	}
	if cfg.App.Name != DefaultAppName {
		t.Errorf("App.Name = %q", cfg.App.Name)
	}
	if cfg.Server.BasePort != DefaultBasePort {
		t.Errorf("Server.BasePort = %d", cfg.Server.BasePort)
	}

	// Refuses to overwrite without force
	if err := InitConfigToPath(path, false); err == nil {
		t.Error("expected error overwriting existing config without force")
	}

	// Overwrites with force
	if err := InitConfigToPath(path, true); err != nil {
		t.Errorf("InitConfigToPath with force failed: %v", err)
	}
}
