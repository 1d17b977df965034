package commands

import (
	"fmt"
	"strconv"

	"github.com/portside-dev/portside/internal/logger"
	"github.com/portside-dev/portside/pkg/config"
	"github.com/portside-dev/portside/pkg/lifecycle"
)

// InitLogger initializes the structured logger from configuration.
func InitLogger(cfg *config.Config) error {
	loggerCfg := logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	}
	if err := logger.Init(loggerCfg); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	return nil
}

// lifecycleConfig maps the loaded configuration to the lifecycle
// core's run configuration. Flag overrides are applied by the caller
// before this point.
func lifecycleConfig(cfg *config.Config, foreground, skipLaunch, debug bool) lifecycle.Config {
	return lifecycle.Config{
		App:         cfg.App.Name,
		StateRoot:   cfg.State.Root,
		Host:        cfg.Server.Host,
		Port:        cfg.Server.Port,
		BasePort:    cfg.Server.BasePort,
		Environment: cfg.Environment,
		Foreground:  foreground,
		SkipLaunch:  skipLaunch,
		Debug:       debug,
		ChildArgs: func(ep lifecycle.Endpoint) []string {
			args := []string{
				"start",
				"--foreground",
				"--no-browser",
				"--host", ep.Host,
				"--port", strconv.Itoa(ep.Port),
			}
			if cfgFile != "" {
				args = append(args, "--config", cfgFile)
			}
			return args
		},
	}
}
