package cmd

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/crewboard/internal/model"
	"github.com/manav03panchal/crewboard/internal/storage"
)

// exportCmd represents the export command.
var exportCmd = &cobra.Command{
	Use:     "export [FILE]",
	Aliases: []string{"backup"},
	Short:   "Export all project data to a JSON file",
	Long: `Export the project and weekly reports as one JSON document:

  {"state": {"project": {...}, "reports": [...]}, "version": 1}

Without FILE the export goes to <name>_progress_YYYYMMDD_HHMM.json in the
current directory. Use '-' for stdout. The file can be loaded back with
'crewboard import'.

Examples:
  crewboard export
  crewboard export backup.json
  crewboard export - | jq .state.project.name`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	data, err := storage.Export(ctx.DB)
	if err != nil {
		return err
	}

	var path string
	if len(args) > 0 {
		path = args[0]
	} else {
		var project *model.Project
		if exists, err := ctx.HasProject(); err == nil && exists {
			project, _ = ctx.ProjectRepo.Get()
		}
		path = filepath.Clean(storage.ExportFilename(project, now()))
	}

	if err := writeFile(path, data); err != nil {
		return err
	}
	if path == "-" {
		return nil
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintSuccess("exported", path, "")
	}
	ctx.CLIFormatter().Success("Exported to " + path)
	return nil
}
