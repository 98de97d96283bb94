package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/crewboard/internal/errors"
	"github.com/manav03panchal/crewboard/internal/model"
	"github.com/manav03panchal/crewboard/internal/parser"
	"github.com/manav03panchal/crewboard/internal/validate"
)

// weeklyCmd represents the weekly command.
var weeklyCmd = &cobra.Command{
	Use:     "weekly",
	Aliases: []string{"wr"},
	Short:   "Manage weekly status notes",
	Long: `Keep hand-written weekly status notes. Each note lists tasks completed,
in progress, blocked and planned for next week, plus free-form notes.

Without task flags, 'weekly add' fills the lists from the tasks' current
statuses; not-started tasks become next week's plan.

Examples:
  crewboard weekly add --notes "Venue confirmed"
  crewboard weekly add --date 2025-08-06 --completed 3f2a --blocked 9c1e
  crewboard weekly list
  crewboard weekly show 7d3b
  crewboard weekly edit 7d3b --notes "Venue and catering confirmed"
  crewboard weekly remove 7d3b`,
	RunE: runWeeklyList,
}

// Weekly subcommand flags.
var (
	weeklyFlagDate       string
	weeklyFlagNotes      string
	weeklyFlagCompleted  []string
	weeklyFlagInProgress []string
	weeklyFlagBlocked    []string
	weeklyFlagNext       []string

	weeklyRemoveFlagForce bool
)

var weeklyAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a weekly note",
	Args:  cobra.NoArgs,
	RunE:  runWeeklyAdd,
}

var weeklyListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List weekly notes, oldest first",
	Args:    cobra.NoArgs,
	RunE:    runWeeklyList,
}

var weeklyShowCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Show a weekly note",
	Args:  cobra.ExactArgs(1),
	RunE:  runWeeklyShow,
}

var weeklyEditCmd = &cobra.Command{
	Use:   "edit ID",
	Short: "Edit a weekly note; task flags replace their list",
	Args:  cobra.ExactArgs(1),
	RunE:  runWeeklyEdit,
}

var weeklyRemoveCmd = &cobra.Command{
	Use:     "remove ID",
	Aliases: []string{"rm", "delete"},
	Short:   "Remove a weekly note",
	Args:    cobra.ExactArgs(1),
	RunE:    runWeeklyRemove,
}

func addWeeklyFieldFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&weeklyFlagDate, "date", "", "Report date (default today)")
	cmd.Flags().StringVarP(&weeklyFlagNotes, "notes", "n", "", "Free-form notes")
	cmd.Flags().StringSliceVar(&weeklyFlagCompleted, "completed", nil, "Completed task ids")
	cmd.Flags().StringSliceVar(&weeklyFlagInProgress, "in-progress", nil, "In-progress task ids")
	cmd.Flags().StringSliceVar(&weeklyFlagBlocked, "blocked", nil, "Blocked task ids")
	cmd.Flags().StringSliceVar(&weeklyFlagNext, "next", nil, "Task ids planned for next week")
	for _, name := range []string{"completed", "in-progress", "blocked", "next"} {
		_ = cmd.RegisterFlagCompletionFunc(name, completeTasks)
	}
}

func init() {
	addWeeklyFieldFlags(weeklyAddCmd)
	addWeeklyFieldFlags(weeklyEditCmd)
	weeklyRemoveCmd.Flags().BoolVar(&weeklyRemoveFlagForce, "force", false, "Skip confirmation")

	weeklyCmd.AddCommand(weeklyAddCmd)
	weeklyCmd.AddCommand(weeklyListCmd)
	weeklyCmd.AddCommand(weeklyShowCmd)
	weeklyCmd.AddCommand(weeklyEditCmd)
	weeklyCmd.AddCommand(weeklyRemoveCmd)
	rootCmd.AddCommand(weeklyCmd)
}

// resolveTaskIDs maps task references to ids.
func resolveTaskIDs(p *model.Project, refs []string) ([]string, error) {
	ids := []string{}
	for _, ref := range parser.ParseList(refs...) {
		t, err := parser.ResolveTask(p, ref)
		if err != nil {
			return nil, err
		}
		ids = append(ids, t.ID)
	}
	return ids, nil
}

// applyWeeklyFlags copies the set flags onto r.
func applyWeeklyFlags(cmd *cobra.Command, p *model.Project, r *model.WeeklyReport) error {
	flags := cmd.Flags()
	if flags.Changed("date") {
		d, err := parser.ParseDate("date", weeklyFlagDate, now())
		if err != nil {
			return err
		}
		if d.IsZero() {
			d = model.DateOf(now())
		}
		r.Date = d
	}
	if flags.Changed("notes") {
		r.Notes = validate.SanitizeNote(weeklyFlagNotes)
	}

	lists := []struct {
		flag string
		refs []string
		dst  *[]string
	}{
		{"completed", weeklyFlagCompleted, &r.CompletedTasks},
		{"in-progress", weeklyFlagInProgress, &r.InProgressTasks},
		{"blocked", weeklyFlagBlocked, &r.BlockedTasks},
		{"next", weeklyFlagNext, &r.NextWeekTasks},
	}
	for _, l := range lists {
		if !flags.Changed(l.flag) {
			continue
		}
		ids, err := resolveTaskIDs(p, l.refs)
		if err != nil {
			return err
		}
		*l.dst = ids
	}
	return nil
}

// resolveWeekly finds a weekly note by id or id prefix.
func resolveWeekly(ref string) (*model.WeeklyReport, error) {
	ref = strings.TrimSpace(ref)
	if r, err := ctx.ReportRepo.Get(ref); err == nil {
		return r, nil
	}
	reports, err := ctx.ReportRepo.List()
	if err != nil {
		return nil, err
	}
	var match *model.WeeklyReport
	if len(ref) >= 4 {
		for _, r := range reports {
			if strings.HasPrefix(r.ID, ref) {
				if match != nil {
					return nil, errors.NewUserErrorWithField("id", ref, "report id prefix is ambiguous",
						"Use more characters of the id.")
				}
				match = r
			}
		}
	}
	if match == nil {
		return nil, errors.NewUserErrorFrom(errors.ErrReportNotFound, "id", ref)
	}
	return match, nil
}

func runWeeklyAdd(cmd *cobra.Command, args []string) error {
	project, err := ctx.Project()
	if err != nil {
		return err
	}

	r := model.NewWeeklyReport(project.ID, model.DateOf(now()))
	if !anyChanged(cmd, "completed", "in-progress", "blocked", "next") {
		r.FromProject(project)
	}
	if err := applyWeeklyFlags(cmd, project, r); err != nil {
		return err
	}

	if err := ctx.UndoRepo.Checkpoint(model.UndoActionEdit, "add weekly report "+r.Date.String()); err != nil {
		return err
	}
	if err := ctx.ReportRepo.Create(r); err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(r)
	}
	ctx.CLIFormatter().Success("Added weekly report " + r.Date.String() + " (" + r.ID[:8] + ")")
	return nil
}

func runWeeklyList(cmd *cobra.Command, args []string) error {
	reports, err := ctx.ReportRepo.List()
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		if reports == nil {
			reports = []*model.WeeklyReport{}
		}
		return ctx.Formatter.JSON(map[string]interface{}{
			"reports": reports,
			"count":   len(reports),
		})
	}
	ctx.CLIFormatter().PrintWeeklyReports(reports)
	return nil
}

func runWeeklyShow(cmd *cobra.Command, args []string) error {
	r, err := resolveWeekly(args[0])
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(r)
	}
	// Task titles are resolved against the current project when there is one.
	project, _ := ctx.ProjectRepo.Get()
	ctx.CLIFormatter().PrintWeeklyReport(r, project)
	return nil
}

func runWeeklyEdit(cmd *cobra.Command, args []string) error {
	if !anyChanged(cmd, "date", "notes", "completed", "in-progress", "blocked", "next") {
		return errors.NewUserError("nothing to change", "Pass --notes, --date or a task list flag.")
	}
	project, err := ctx.Project()
	if err != nil {
		return err
	}
	r, err := resolveWeekly(args[0])
	if err != nil {
		return err
	}
	if err := applyWeeklyFlags(cmd, project, r); err != nil {
		return err
	}

	if err := ctx.UndoRepo.Checkpoint(model.UndoActionEdit, "edit weekly report "+r.Date.String()); err != nil {
		return err
	}
	if err := ctx.ReportRepo.Update(r); err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(r)
	}
	ctx.CLIFormatter().Success("Updated weekly report " + r.Date.String())
	return nil
}

func runWeeklyRemove(cmd *cobra.Command, args []string) error {
	r, err := resolveWeekly(args[0])
	if err != nil {
		return err
	}

	ok, err := confirm(weeklyRemoveFlagForce, "Remove weekly report "+r.Date.String()+"? (y/N): ")
	if err != nil {
		return err
	}
	if !ok {
		if ctx.IsJSON() {
			return errors.NewUserError("removing a report needs confirmation", "Pass --force.")
		}
		ctx.CLIFormatter().Muted("Cancelled")
		return nil
	}

	if err := ctx.UndoRepo.Checkpoint(model.UndoActionDelete, "remove weekly report "+r.Date.String()); err != nil {
		return err
	}
	if err := ctx.ReportRepo.Delete(r.ID); err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintSuccess("deleted", "weekly report removed", r.ID)
	}
	ctx.CLIFormatter().Success("Removed weekly report " + r.Date.String())
	return nil
}
