package commands

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/portside-dev/portside/internal/cli/output"
	"github.com/portside-dev/portside/internal/cli/timeutil"
	"github.com/portside-dev/portside/pkg/config"
	"github.com/portside-dev/portside/pkg/lifecycle"
)

var listOutput string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List known application instances",
	Long: `List every application that has state recorded under the state root.

Each subdirectory of the state root that holds a PID or URL file is
reported, whether the instance is currently running or only left a
partial record behind.

Examples:
  # List instances as a table
  portside list

  # Output as JSON
  portside list --output json`,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVarP(&listOutput, "output", "o", "table", "Output format (table|json|yaml)")
}

func runList(cmd *cobra.Command, args []string) error {
	format, err := output.ParseFormat(listOutput)
	if err != nil {
		return err
	}

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	statuses, err := lifecycle.List(cfg.State.Root)
	if err != nil {
		return err
	}

	switch format {
	case output.FormatJSON:
		return output.PrintJSON(os.Stdout, statuses)
	case output.FormatYAML:
		return output.PrintYAML(os.Stdout, statuses)
	default:
		return printListTable(statuses)
	}
}

func printListTable(statuses []lifecycle.Status) error {
	if len(statuses) == 0 {
		fmt.Println("No instances found")
		return nil
	}

	table := output.NewTableData("APP", "STATUS", "PID", "URL", "UPTIME")
	for _, st := range statuses {
		status := "stopped"
		pid := "-"
		url := "-"
		uptime := "-"
		if st.Running {
			status = "running"
			pid = strconv.Itoa(st.PID)
			url = st.URL
			if !st.Since.IsZero() {
				uptime = timeutil.FormatUptime(time.Since(st.Since))
			}
		} else if st.URL != "" {
			url = st.URL
		}
		table.AddRow(st.App, status, pid, url, uptime)
	}

	return output.PrintTable(os.Stdout, table)
}
