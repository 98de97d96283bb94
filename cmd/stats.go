package cmd

import (
	"github.com/spf13/cobra"

	"github.com/manav03panchal/crewboard/internal/metrics"
)

// statsCmd represents the stats command.
var statsCmd = &cobra.Command{
	Use:     "stats",
	Aliases: []string{"stat", "metrics"},
	Short:   "Show project metrics",
	Long: `Show the computed project metrics: status and priority breakdowns,
per-member progress, overall progress, overdue tasks and tasks due within
three days.

Examples:
  crewboard stats
  crewboard stats --format json`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	project, err := ctx.Project()
	if err != nil {
		return err
	}
	snap := metrics.Compute(project, now())

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(snap)
	}
	ctx.CLIFormatter().PrintStats(snap)
	return nil
}
