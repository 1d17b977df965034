package config

import (
	"os"
	"path/filepath"
	"strings"
)

// Defaults for endpoint selection and identity.
const (
	DefaultAppName     = "portside"
	DefaultHost        = "0.0.0.0"
	DefaultBasePort    = 4567
	DefaultEnvironment = "development"
)

// ApplyDefaults sets default values for any unspecified configuration
// fields. Zero values are replaced; explicit values are preserved.
func ApplyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = DefaultAppName
	}

	applyServerDefaults(&cfg.Server)
	applyLoggingDefaults(&cfg.Logging)

	if cfg.Environment == "" {
		cfg.Environment = DefaultEnvironment
	}
	if cfg.State.Root == "" {
		cfg.State.Root = DefaultStateRoot()
	}
}

func applyServerDefaults(cfg *ServerConfig) {
	if cfg.Host == "" {
		cfg.Host = DefaultHost
	}
	if cfg.BasePort == 0 {
		cfg.BasePort = DefaultBasePort
	}
	// Port stays 0: auto-allocate unless explicitly requested.
}

// applyLoggingDefaults sets logging defaults and normalizes values.
func applyLoggingDefaults(cfg *LoggingConfig) {
	if cfg.Level == "" {
		cfg.Level = "INFO"
	}
	cfg.Level = strings.ToUpper(cfg.Level)

	if cfg.Format == "" {
		cfg.Format = "text"
	}
	if cfg.Output == "" {
		cfg.Output = "stdout"
	}
}

// DefaultStateRoot returns the root state directory: $XDG_STATE_HOME
// when set, otherwise ~/.local/state, falling back to the system
// temporary directory when the home directory is unknown.
func DefaultStateRoot() string {
	if stateDir := os.Getenv("XDG_STATE_HOME"); stateDir != "" {
		return stateDir
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return os.TempDir()
	}
	return filepath.Join(home, ".local", "state")
}

// GetDefaultConfig returns a configuration populated entirely from
// defaults.
func GetDefaultConfig() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}
