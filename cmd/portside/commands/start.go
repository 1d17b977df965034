package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/portside-dev/portside/pkg/app"
	"github.com/portside-dev/portside/pkg/browser"
	"github.com/portside-dev/portside/pkg/config"
	"github.com/portside-dev/portside/pkg/lifecycle"
	"github.com/portside-dev/portside/pkg/server"
)

var (
	startForeground bool
	startNoBrowser  bool
	startDebug      bool
	startHost       string
	startPort       int
	startEnv        string
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the application instance",
	Long: `Start the hosted application.

By default the instance runs in the background (daemon mode) and your
browser opens at its URL. If an instance of the same named application
is already running, the browser opens at the existing URL instead and
nothing new is started.

With no explicit --port, the first free port at or above the
configured base port is chosen.

Examples:
  # Start in background (default), open browser
  portside start

  # Start in foreground for debugging
  portside start --foreground

  # Start on a fixed port without the browser
  portside start --port 8080 --no-browser`,
	RunE: runStart,
}

func init() {
	startCmd.Flags().BoolVarP(&startForeground, "foreground", "f", false, "Run in foreground (default: background/daemon mode)")
	startCmd.Flags().BoolVar(&startNoBrowser, "no-browser", false, "Do not open the browser")
	startCmd.Flags().BoolVar(&startDebug, "debug", false, "Enable debug logging")
	startCmd.Flags().StringVar(&startHost, "host", "", "Listen host (default: from config)")
	startCmd.Flags().IntVarP(&startPort, "port", "p", 0, "Listen port (default: auto-allocate from base port)")
	startCmd.Flags().StringVarP(&startEnv, "environment", "e", "", "Application environment (default: from config)")
}

func runStart(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	// Flag overrides on top of file and environment.
	if startHost != "" {
		cfg.Server.Host = startHost
	}
	if startPort != 0 {
		cfg.Server.Port = startPort
	}
	if startEnv != "" {
		cfg.Environment = startEnv
	}
	if startDebug {
		cfg.Logging.Level = "DEBUG"
	}

	if err := InitLogger(cfg); err != nil {
		return err
	}

	skipLaunch := startNoBrowser || cfg.Browser.Disabled
	lcCfg := lifecycleConfig(cfg, startForeground, skipLaunch, startDebug)

	handler := app.NewHandler(app.Config{
		Name:        cfg.App.Name,
		Environment: cfg.Environment,
		Version:     Version,
	})

	orch := lifecycle.New(lcCfg, server.Runner{Handler: handler}, browser.New())

	outcome, err := orch.Up(cmd.Context())
	if err != nil {
		return err
	}

	switch outcome.Kind {
	case lifecycle.OutcomeDelegated:
		fmt.Printf("%s is already running at %s\n", cfg.App.Name, outcome.URL)

	case lifecycle.OutcomeStarted:
		if outcome.Detached {
			dir := orch.Store().Dir()
			fmt.Printf("%s started in background (PID %d) at %s\n", cfg.App.Name, outcome.PID, outcome.URL)
			fmt.Printf("  PID file: %s\n", dir.PIDPath())
			fmt.Printf("  Log file: %s\n", dir.LogPath())
			fmt.Printf("\nUse 'portside stop' to stop the instance\n")
			fmt.Printf("Use 'portside status' to check instance status\n")
		} else {
			// Foreground run blocks in Up until shutdown.
			fmt.Printf("%s stopped\n", cfg.App.Name)
		}
	}

	return nil
}
