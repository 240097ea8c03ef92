package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/gaqno/grafana-compose/internal/dashboard"
	"github.com/gaqno/grafana-compose/internal/ui"
)

// dashboardsCmd lists the selected dashboards and whether they exist.
var dashboardsCmd = &cobra.Command{
	Use:     "dashboards",
	Aliases: []string{"ls"},
	Short:   "List selected dashboards and their config names",
	Long: `List the dashboards that would be embedded, with their compose config
names and whether each file exists in the dashboards directory.

Examples:
  grafana-compose dashboards
  grafana-compose dashboards --four`,
	Args: cobra.NoArgs,
	RunE: runDashboards,
}

func init() {
	rootCmd.AddCommand(dashboardsCmd)
}

func runDashboards(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	set := "all"
	if flagFour {
		set = "four"
	}
	ui.Header("Dashboards (%s)", set)

	statuses := dashboard.Status(cfg.DashboardsDir, dashboard.Select(flagFour))

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FILE\tCONFIG\tSTATUS\tSIZE")

	present := 0
	for _, s := range statuses {
		status, size := "missing", "-"
		if s.Present {
			present++
			status, size = "present", fmt.Sprintf("%d", s.Size)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", s.Name, s.ConfigName, status, size)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if present < len(statuses) {
		ui.Warning("%d of %d dashboards present in %s", present, len(statuses), cfg.DashboardsDir)
	} else {
		ui.Success("All %d dashboards present in %s", len(statuses), cfg.DashboardsDir)
	}

	return nil
}
