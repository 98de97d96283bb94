package cmd

import (
	"github.com/spf13/cobra"

	"github.com/manav03panchal/crewboard/internal/model"
	"github.com/manav03panchal/crewboard/internal/tui"
)

var dashboardFlagTimeline bool

// dashboardCmd represents the dashboard command.
var dashboardCmd = &cobra.Command{
	Use:     "dashboard",
	Aliases: []string{"dash", "tui"},
	Short:   "Open the interactive TUI dashboard",
	Long: `Open an interactive terminal dashboard.

The dashboard shows:
  - Target date, days remaining and overall progress
  - Task counts by status
  - Progress per member
  - Overdue and soon-due tasks, and what is due next
  - The timeline (press tab)

Keyboard Controls:
  tab - Switch between overview and timeline
  r   - Refresh data
  ?   - Toggle full help
  q   - Quit dashboard

Examples:
  crewboard dashboard
  crewboard dash --timeline`,
	Args: cobra.NoArgs,
	RunE: runDashboard,
}

func init() {
	dashboardCmd.Flags().BoolVar(&dashboardFlagTimeline, "timeline", false, "Open on the timeline view")
	rootCmd.AddCommand(dashboardCmd)
}

func runDashboard(cmd *cobra.Command, args []string) error {
	config := tui.DashboardConfig{
		Load: func() (*model.Project, error) {
			exists, err := ctx.HasProject()
			if err != nil || !exists {
				return nil, err
			}
			return ctx.Project()
		},
		Now: now,
	}
	if dashboardFlagTimeline {
		config.View = tui.ViewTimeline
	}

	return tui.Run(config)
}
