package cmd

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/crewboard/internal/report"
)

// Report command flags.
var (
	reportFlagHTML string
	reportFlagText bool
)

// reportCmd renders the progress report.
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Render the progress report",
	Long: `Render the project progress report.

By default a printable HTML page is written to the report directory
(config report.dir, or the current directory) under a name like
Neosphere_Exhibition_report_20250806_1500.html. Open it in a browser
and print it to get a PDF.

Examples:
  crewboard report
  crewboard report --html weekly.html
  crewboard report --html - > weekly.html
  crewboard report --text`,
	Args: cobra.NoArgs,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().StringVar(&reportFlagHTML, "html", "", "Write the HTML report to FILE ('-' for stdout)")
	reportCmd.Flags().BoolVar(&reportFlagText, "text", false, "Print the plain-text report instead")
	reportCmd.MarkFlagsMutuallyExclusive("html", "text")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	project, err := ctx.Project()
	if err != nil {
		return err
	}
	at := now()
	doc := report.Render(project, at)

	if reportFlagText {
		ctx.Formatter.Print(doc.Text())
		return nil
	}
	if ctx.IsJSON() && reportFlagHTML == "" {
		return ctx.Formatter.JSON(doc)
	}

	data, err := doc.HTML()
	if err != nil {
		return err
	}

	path := reportFlagHTML
	if path == "" {
		path = filepath.Join(ctx.Config.Report.Dir, report.Filename(project, at))
	}
	if err := writeFile(path, data); err != nil {
		return err
	}
	if path == "-" {
		return nil
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintSuccess("written", path, "")
	}
	ctx.CLIFormatter().Success("Report written to " + path)
	return nil
}
