package commands

import (
	"github.com/spf13/cobra"

	"github.com/portside-dev/portside/pkg/config"
	"github.com/portside-dev/portside/pkg/lifecycle"
)

var stopForce bool

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the running instance",
	Long: `Stop the running instance of the configured application.

By default, sends the termination signal for graceful shutdown. Use
--force for immediate termination.

A missing PID file is reported but is not an error; stop is a no-op
when nothing is running.

Examples:
  # Stop the instance
  portside stop

  # Force stop
  portside stop --force`,
	RunE: runStop,
}

func init() {
	stopCmd.Flags().BoolVarP(&stopForce, "force", "f", false, "Force kill instead of graceful shutdown")
}

func runStop(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	if err := InitLogger(cfg); err != nil {
		return err
	}

	orch := lifecycle.New(lifecycleConfig(cfg, false, true, false), nil, nil)
	return orch.Kill(stopForce)
}
