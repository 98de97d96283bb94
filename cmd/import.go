package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/crewboard/internal/errors"
	"github.com/manav03panchal/crewboard/internal/storage"
)

var importFlagForce bool

// importCmd represents the import command.
var importCmd = &cobra.Command{
	Use:     "import FILE",
	Aliases: []string{"restore"},
	Short:   "Replace all project data from an export file",
	Long: `Replace the project and weekly reports with the contents of a file made
by 'crewboard export'. The file only has to be well-formed JSON in the
export shape; its contents are not checked further.

The current data is overwritten after confirmation. Run 'crewboard undo'
to get it back.

Examples:
  crewboard import backup.json
  crewboard import backup.json --force`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().BoolVar(&importFlagForce, "force", false, "Overwrite without confirmation")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return errors.NewSystemErrorWithOp("import", "failed to read file", err)
	}

	// Reject a malformed file before asking anything.
	if _, err := storage.ParseSnapshot(data); err != nil {
		return err
	}

	exists, err := ctx.HasProject()
	if err != nil {
		return err
	}
	if exists {
		ok, err := confirm(importFlagForce, "This overwrites the current project and weekly reports. Continue? (y/N): ")
		if err != nil {
			return err
		}
		if !ok {
			if ctx.IsJSON() {
				return errors.NewUserError("import would overwrite the current project", "Pass --force.")
			}
			ctx.CLIFormatter().Muted("Cancelled")
			return nil
		}
	}

	snap, err := storage.Import(ctx.DB, data)
	if err != nil {
		return err
	}

	name := "(none)"
	members, tasks := 0, 0
	if p := snap.State.Project; p != nil {
		name = p.Name
		members, tasks = len(p.Members), len(p.Tasks)
	}

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(map[string]interface{}{
			"status":  "imported",
			"project": name,
			"members": members,
			"tasks":   tasks,
			"reports": len(snap.State.Reports),
		})
	}
	ctx.CLIFormatter().Success(fmt.Sprintf("Imported %s: %d members, %d tasks, %d weekly reports",
		name, members, tasks, len(snap.State.Reports)))
	return nil
}
