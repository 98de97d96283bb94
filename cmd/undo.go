package cmd

import (
	"github.com/spf13/cobra"

	"github.com/manav03panchal/crewboard/internal/errors"
)

// undoCmd represents the undo command.
var undoCmd = &cobra.Command{
	Use:   "undo",
	Short: "Undo the last change",
	Long: `Undo the last change to the project: an edit, a removal, an import or a
clear. Only the most recent change is kept.

Examples:
  crewboard task remove 3f2a --force
  crewboard undo
  # Brings the task back

  crewboard import backup.json --force
  crewboard undo
  # Restores the data that was overwritten`,
	Args: cobra.NoArgs,
	RunE: runUndo,
}

func init() {
	rootCmd.AddCommand(undoCmd)
}

func runUndo(cmd *cobra.Command, args []string) error {
	state, err := ctx.UndoRepo.Restore()
	if errors.Is(err, errors.ErrNothingToUndo) {
		if ctx.IsJSON() {
			return ctx.Formatter.JSON(map[string]string{
				"status":  "nothing_to_undo",
				"message": "Nothing to undo",
			})
		}
		ctx.CLIFormatter().Muted("Nothing to undo")
		return nil
	}
	if err != nil {
		return err
	}

	desc := state.Description
	if desc == "" {
		desc = string(state.Action)
	}

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(map[string]string{
			"status":      "undone",
			"action":      string(state.Action),
			"description": desc,
		})
	}
	ctx.CLIFormatter().Success("Undone: " + desc)
	return nil
}
