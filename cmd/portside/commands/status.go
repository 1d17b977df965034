package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/portside-dev/portside/internal/cli/output"
	"github.com/portside-dev/portside/internal/cli/timeutil"
	"github.com/portside-dev/portside/pkg/config"
	"github.com/portside-dev/portside/pkg/lifecycle"
)

var statusOutput string

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show instance status",
	Long: `Display the status of the configured application instance.

Status is read purely from the persisted state files (PID and URL);
no network probing is performed. A partial record counts as not
running.

Examples:
  # Show status
  portside status

  # Output as JSON
  portside status --output json`,
	RunE: runStatus,
}

func init() {
	statusCmd.Flags().StringVarP(&statusOutput, "output", "o", "table", "Output format (table|json|yaml)")
}

func runStatus(cmd *cobra.Command, args []string) error {
	format, err := output.ParseFormat(statusOutput)
	if err != nil {
		return err
	}

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	orch := lifecycle.New(lifecycleConfig(cfg, false, true, false), nil, nil)
	st := orch.Status()

	switch format {
	case output.FormatJSON:
		return output.PrintJSON(os.Stdout, st)
	case output.FormatYAML:
		return output.PrintYAML(os.Stdout, st)
	default:
		return printStatusTable(st)
	}
}

func printStatusTable(st lifecycle.Status) error {
	fmt.Println()
	fmt.Printf("%s instance status\n\n", st.App)

	var pairs [][2]string
	if st.Running {
		pairs = append(pairs, [2]string{"Status", "\033[32m● Running\033[0m"})
		pairs = append(pairs, [2]string{"PID", fmt.Sprintf("%d", st.PID)})
		pairs = append(pairs, [2]string{"URL", st.URL})
		if !st.Since.IsZero() {
			pairs = append(pairs, [2]string{"Started", timeutil.FormatTime(st.Since)})
			pairs = append(pairs, [2]string{"Uptime", timeutil.FormatUptime(time.Since(st.Since))})
		}
	} else {
		pairs = append(pairs, [2]string{"Status", "\033[31m○ Stopped\033[0m"})
		if st.PID != 0 || st.URL != "" {
			pairs = append(pairs, [2]string{"State dir", st.StateDir})
		}
	}

	if err := output.SimpleTable(os.Stdout, pairs); err != nil {
		return err
	}
	fmt.Println()
	return nil
}
