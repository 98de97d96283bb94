package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/crewboard/internal/output"
	"github.com/manav03panchal/crewboard/internal/timeline"
)

var timelineFlagWidth int

// timelineCmd draws the Gantt chart.
var timelineCmd = &cobra.Command{
	Use:     "timeline",
	Aliases: []string{"gantt", "tl"},
	Short:   "Draw the task timeline",
	Long: `Draw every task as a bar on a shared date axis, grouped by category.
The filled part of a bar is the task's progress. Dotted columns mark the
weekly standup day and the heavy column marks today.

Examples:
  crewboard timeline
  crewboard timeline --width 160
  crewboard timeline --format json`,
	Args: cobra.NoArgs,
	RunE: runTimeline,
}

func init() {
	timelineCmd.Flags().IntVarP(&timelineFlagWidth, "width", "w", 0, "Chart width in columns (default: terminal width)")
	rootCmd.AddCommand(timelineCmd)
}

func runTimeline(cmd *cobra.Command, args []string) error {
	project, err := ctx.Project()
	if err != nil {
		return err
	}
	layout := timeline.Compute(project, now())

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(layout)
	}

	width := timelineFlagWidth
	if width <= 0 {
		width = output.DefaultWidth
		if f, ok := ctx.Formatter.Writer.(*os.File); ok {
			width = output.TerminalWidth(f)
		}
	}
	ctx.Formatter.Print(output.RenderTimeline(layout, output.TimelineOptions{
		Width: width,
		Color: ctx.Formatter.IsColorEnabled(),
	}))
	return nil
}
