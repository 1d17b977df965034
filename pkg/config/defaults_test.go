package config

import (
	"testing"
)

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)

	if cfg.App.Name != DefaultAppName {
		t.Errorf("App.Name = %q", cfg.App.Name)
	}
	if cfg.Server.Host != DefaultHost {
		t.Errorf("Server.Host = %q", cfg.Server.Host)
	}
	if cfg.Server.BasePort != DefaultBasePort {
		t.Errorf("Server.BasePort = %d", cfg.Server.BasePort)
	}
	if cfg.Server.Port != 0 {
		t.Errorf("Server.Port should stay 0 for auto-allocation, got %d", cfg.Server.Port)
	}
	if cfg.Environment != DefaultEnvironment {
		t.Errorf("Environment = %q", cfg.Environment)
	}
	if cfg.Logging.Level != "INFO" {
		t.Errorf("Logging.Level = %q", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "text" {
		t.Errorf("Logging.Format = %q", cfg.Logging.Format)
	}
	if cfg.Logging.Output != "stdout" {
		t.Errorf("Logging.Output = %q", cfg.Logging.Output)
	}
	if cfg.State.Root == "" {
		t.Error("State.Root not defaulted")
	}
}

func TestApplyDefaults_PreservesExplicitValues(t *testing.T) {
	cfg := &Config{}
	cfg.App.Name = "custom"
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.BasePort = 9999
	cfg.Logging.Level = "debug"

	ApplyDefaults(cfg)

	if cfg.App.Name != "custom" {
		t.Errorf("App.Name overwritten: %q", cfg.App.Name)
	}
	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("Server.Host overwritten: %q", cfg.Server.Host)
	}
	if cfg.Server.BasePort != 9999 {
		t.Errorf("Server.BasePort overwritten: %d", cfg.Server.BasePort)
	}
	// Level is normalized to upper case
	if cfg.Logging.Level != "DEBUG" {
		t.Errorf("Logging.Level = %q", cfg.Logging.Level)
	}
}

func TestDefaultStateRoot_XDG(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", "/custom/state")
	if got := DefaultStateRoot(); got != "/custom/state" {
		t.Errorf("DefaultStateRoot() = %q", got)
	}
}

func TestGetDefaultConfig_Valid(t *testing.T) {
	if err := Validate(GetDefaultConfig()); err != nil {
		t.Errorf("default config fails validation: %v", err)
	}
}
