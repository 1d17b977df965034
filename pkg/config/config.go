// Package config loads the portside configuration.
//
// Configuration sources (in order of precedence):
//  1. CLI flags (highest priority, applied by the command layer)
//  2. Environment variables (PORTSIDE_*)
//  3. Configuration file (YAML)
//  4. Default values (lowest priority)
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// Config represents the portside configuration.
//
// It carries the merged run options the lifecycle core consumes
// (host, port, environment, foreground, browser suppression, debug)
// plus ambient settings for logging and state placement.
type Config struct {
	// App is the application identity; one name maps to one state
	// directory and at most one live instance.
	App AppConfig `mapstructure:"app" yaml:"app"`

	// Server configures the listen endpoint selection.
	Server ServerConfig `mapstructure:"server" yaml:"server"`

	// Environment is handed to the hosted application (development,
	// production, ...).
	Environment string `mapstructure:"environment" validate:"required" yaml:"environment"`

	// Logging controls log output behavior.
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`

	// Browser controls the convenience browser launch.
	Browser BrowserConfig `mapstructure:"browser" yaml:"browser"`

	// State configures where PID/URL/log files live.
	State StateConfig `mapstructure:"state" yaml:"state"`
}

// AppConfig identifies the managed application.
type AppConfig struct {
	// Name determines the state directory and the pid/url/log file
	// names beneath it.
	Name string `mapstructure:"name" validate:"required,hostname_rfc1123" yaml:"name"`
}

// ServerConfig configures endpoint selection.
type ServerConfig struct {
	// Host is the listen host.
	Host string `mapstructure:"host" validate:"required" yaml:"host"`

	// Port is the explicit requested port; 0 means auto-allocate
	// starting from BasePort.
	Port int `mapstructure:"port" validate:"min=0,max=65535" yaml:"port"`

	// BasePort is the base of the auto-allocation search.
	BasePort int `mapstructure:"base_port" validate:"min=1,max=65535" yaml:"base_port"`
}

// LoggingConfig controls log output behavior.
type LoggingConfig struct {
	// Level is the minimum level emitted.
	Level string `mapstructure:"level" validate:"required,oneof=DEBUG INFO WARN ERROR debug info warn error" yaml:"level"`

	// Format selects the log encoding.
	Format string `mapstructure:"format" validate:"required,oneof=text json" yaml:"format"`

	// Output is "stdout", "stderr", or a file path.
	Output string `mapstructure:"output" validate:"required" yaml:"output"`
}

// BrowserConfig controls the browser launch on startup.
type BrowserConfig struct {
	// Disabled suppresses opening the browser.
	Disabled bool `mapstructure:"disabled" yaml:"disabled"`
}

// StateConfig configures persisted state placement.
type StateConfig struct {
	// Root is the root state directory; the per-application directory
	// is created beneath it. Empty means $XDG_STATE_HOME (or
	// ~/.local/state).
	Root string `mapstructure:"root" yaml:"root"`
}

// Load loads configuration from file, environment, and defaults.
// An empty configPath uses the default location; a missing file is
// not an error, defaults apply.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setupViper(v, configPath)

	if err := readConfigFile(v); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, viper.DecodeHook(configDecodeHooks())); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// Validate checks the configuration against its struct tags.
func Validate(cfg *Config) error {
	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		var errs validator.ValidationErrors
		if errors.As(err, &errs) {
			fields := make([]string, 0, len(errs))
			for _, fe := range errs {
				fields = append(fields, fmt.Sprintf("%s (%s)", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("invalid fields: %s", strings.Join(fields, ", "))
		}
		return err
	}
	return nil
}

// setupViper configures viper with environment variables and config
// file settings. Environment variables use the PORTSIDE_ prefix:
// PORTSIDE_LOGGING_LEVEL=DEBUG, PORTSIDE_SERVER_BASE_PORT=5678.
func setupViper(v *viper.Viper, configPath string) {
	v.SetEnvPrefix("PORTSIDE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.AddConfigPath(getConfigDir())
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
}

// readConfigFile reads the configuration file if it exists. A
// missing file is acceptable; defaults apply.
func readConfigFile(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}
	return nil
}

// configDecodeHooks returns the decode hooks for custom types.
func configDecodeHooks() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		durationDecodeHook(),
	)
}

// durationDecodeHook converts config values into time.Duration.
func durationDecodeHook() mapstructure.DecodeHookFunc {
	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		if to != reflect.TypeOf(time.Duration(0)) {
			return data, nil
		}

		switch v := data.(type) {
		case string:
			return time.ParseDuration(v)
		case int:
			return time.Duration(v), nil
		case int64:
			return time.Duration(v), nil
		case float64:
			// YAML often deserializes numbers as float64
			return time.Duration(v), nil
		default:
			return data, nil
		}
	}
}

// getConfigDir returns the configuration directory path. Uses
// XDG_CONFIG_HOME if set, otherwise ~/.config, or falls back to the
// current directory if the home directory cannot be determined.
func getConfigDir() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "portside")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}

	return filepath.Join(home, ".config", "portside")
}

// GetDefaultConfigPath returns the default configuration file path.
func GetDefaultConfigPath() string {
	return filepath.Join(getConfigDir(), "config.yaml")
}

// DefaultConfigExists checks if a config file exists at the default location.
func DefaultConfigExists() bool {
	_, err := os.Stat(GetDefaultConfigPath())
	return err == nil
}

// GetConfigDir returns the configuration directory path.
func GetConfigDir() string {
	return getConfigDir()
}
