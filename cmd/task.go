package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/crewboard/internal/errors"
	"github.com/manav03panchal/crewboard/internal/metrics"
	"github.com/manav03panchal/crewboard/internal/model"
	"github.com/manav03panchal/crewboard/internal/parser"
	"github.com/manav03panchal/crewboard/internal/validate"
)

// taskCmd represents the task command.
var taskCmd = &cobra.Command{
	Use:     "task",
	Aliases: []string{"tasks", "t"},
	Short:   "Manage tasks",
	Long: `Add, list, show, edit or remove tasks.

Tasks are referenced by id or an id prefix of at least four characters.
Members are referenced by name or id prefix. Dates accept YYYY-MM-DD,
today/tomorrow, +N/-N days, +Nw weeks, or natural language.

Examples:
  crewboard task add "Build stage" --assignee Aki --due "next friday" --priority high
  crewboard task add "Print flyers" -a Aki,Ben --start 2025-08-01 --due +7 --category Design
  crewboard task list --status in_progress --sort dueDate
  crewboard task list --member Aki --sort priority --desc
  crewboard task edit 3f2a --progress 60 --status wip
  crewboard task edit 3f2a --status done
  crewboard task remove 3f2a`,
	RunE: runTaskList,
}

// Task subcommand flags.
var (
	taskFlagTitle       string
	taskFlagDescription string
	taskFlagAssignees   []string
	taskFlagStart       string
	taskFlagDue         string
	taskFlagStatus      string
	taskFlagPriority    string
	taskFlagProgress    string
	taskFlagCategory    string
	taskFlagCompleted   string
	taskFlagDependsOn   []string

	taskListFlagStatus   string
	taskListFlagMember   string
	taskListFlagCategory string
	taskListFlagSort     string
	taskListFlagDesc     bool

	taskRemoveFlagForce bool
)

var taskAddCmd = &cobra.Command{
	Use:   "add TITLE",
	Short: "Add a task",
	Long: `Add a task. At least one assignee and a due date are required; the
start date defaults to today.`,
	Args: cobra.ExactArgs(1),
	RunE: runTaskAdd,
}

var taskListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tasks",
	Args:    cobra.NoArgs,
	RunE:    runTaskList,
}

var taskShowCmd = &cobra.Command{
	Use:               "show TASK",
	Short:             "Show one task",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeTasks,
	RunE:              runTaskShow,
}

var taskEditCmd = &cobra.Command{
	Use:   "edit TASK",
	Short: "Edit a task",
	Long: `Edit a task. Only the flags given are changed.

Status and progress are independent: setting progress to 100 does not
complete a task. Moving a task to completed records today as its completed
date unless --completed is given; --completed none clears it.`,
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeTasks,
	RunE:              runTaskEdit,
}

var taskRemoveCmd = &cobra.Command{
	Use:               "remove TASK",
	Aliases:           []string{"rm", "delete"},
	Short:             "Remove a task",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeTasks,
	RunE:              runTaskRemove,
}

// addTaskFieldFlags registers the flags shared by add and edit.
func addTaskFieldFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&taskFlagDescription, "description", "d", "", "Description")
	cmd.Flags().StringSliceVarP(&taskFlagAssignees, "assignee", "a", nil, "Assignee names or ids (repeatable or comma-separated)")
	cmd.Flags().StringVarP(&taskFlagStart, "start", "s", "", "Start date")
	cmd.Flags().StringVar(&taskFlagDue, "due", "", "Due date")
	cmd.Flags().StringVar(&taskFlagStatus, "status", "", "Status: not_started, in_progress, completed, blocked")
	cmd.Flags().StringVarP(&taskFlagPriority, "priority", "p", "", "Priority: low, medium, high")
	cmd.Flags().StringVar(&taskFlagProgress, "progress", "", "Progress percentage (0-100)")
	cmd.Flags().StringVarP(&taskFlagCategory, "category", "c", "", "Category")
	cmd.Flags().StringSliceVar(&taskFlagDependsOn, "depends-on", nil, "Ids of tasks this one depends on")

	_ = cmd.RegisterFlagCompletionFunc("assignee", completeMembers)
	_ = cmd.RegisterFlagCompletionFunc("status", completeStatuses)
	_ = cmd.RegisterFlagCompletionFunc("priority", completePriorities)
	_ = cmd.RegisterFlagCompletionFunc("category", completeCategories)
}

func init() {
	addTaskFieldFlags(taskAddCmd)
	addTaskFieldFlags(taskEditCmd)
	taskEditCmd.Flags().StringVarP(&taskFlagTitle, "title", "t", "", "New title")
	taskEditCmd.Flags().StringVar(&taskFlagCompleted, "completed", "", "Completed date, or 'none' to clear")

	taskListCmd.Flags().StringVar(&taskListFlagStatus, "status", "", "Only tasks with this status")
	taskListCmd.Flags().StringVarP(&taskListFlagMember, "member", "m", "", "Only tasks assigned to this member")
	taskListCmd.Flags().StringVarP(&taskListFlagCategory, "category", "c", "", "Only tasks in this category")
	taskListCmd.Flags().StringVar(&taskListFlagSort, "sort", "", "Sort by: title, assignee, status, progress, dueDate, priority")
	taskListCmd.Flags().BoolVar(&taskListFlagDesc, "desc", false, "Sort descending")
	_ = taskListCmd.RegisterFlagCompletionFunc("status", completeStatuses)
	_ = taskListCmd.RegisterFlagCompletionFunc("member", completeMembers)
	_ = taskListCmd.RegisterFlagCompletionFunc("category", completeCategories)
	_ = taskListCmd.RegisterFlagCompletionFunc("sort", completeSortFields)

	taskRemoveCmd.Flags().BoolVar(&taskRemoveFlagForce, "force", false, "Skip confirmation")

	taskCmd.AddCommand(taskAddCmd)
	taskCmd.AddCommand(taskListCmd)
	taskCmd.AddCommand(taskShowCmd)
	taskCmd.AddCommand(taskEditCmd)
	taskCmd.AddCommand(taskRemoveCmd)
	rootCmd.AddCommand(taskCmd)
}

func runTaskAdd(cmd *cobra.Command, args []string) error {
	title := validate.SanitizeName(args[0])
	start, due, err := parser.ParseDateRange(taskFlagStart, taskFlagDue, now())
	if err != nil {
		return err
	}

	var task *model.Task
	var warnings []string
	project, err := ctx.EditProject(model.UndoActionEdit, "add task "+title, func(p *model.Project) error {
		assignees, err := parser.ResolveMembers(p, parser.ParseList(taskFlagAssignees...))
		if err != nil {
			return err
		}
		task = model.NewTask(title, assignees, start, due)
		task.Description = validate.SanitizeNote(taskFlagDescription)
		task.Category = validate.SanitizeName(taskFlagCategory)
		task.Dependencies = parser.ParseList(taskFlagDependsOn...)
		if err := applyEnumFlags(task); err != nil {
			return err
		}
		if task.Status == model.StatusCompleted {
			task.CompletedDate = ptr(model.DateOf(now()))
		}
		if err := validate.NewTask(task); err != nil {
			return err
		}
		warnings = validate.TaskWarnings(p, task)
		p.AddTask(*task)
		return nil
	})
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintTask(project, task, now())
	}
	printWarnings(warnings)
	ctx.CLIFormatter().Success(fmt.Sprintf("Added task %s (%s), due %s", task.Title, task.ID[:8], task.DueDate))
	return nil
}

// applyEnumFlags sets status, priority and progress from their flags.
func applyEnumFlags(t *model.Task) error {
	if taskFlagStatus != "" {
		s, err := parser.ParseStatus(taskFlagStatus)
		if err != nil {
			return err
		}
		t.Status = s
	}
	if taskFlagPriority != "" {
		p, err := parser.ParsePriority(taskFlagPriority)
		if err != nil {
			return err
		}
		t.Priority = p
	}
	if taskFlagProgress != "" {
		n, err := parser.ParseProgress(taskFlagProgress)
		if err != nil {
			return err
		}
		t.Progress = n
	}
	return nil
}

func runTaskList(cmd *cobra.Command, args []string) error {
	project, err := ctx.Project()
	if err != nil {
		return err
	}

	var filter metrics.Filter
	if taskListFlagStatus != "" {
		if filter.Status, err = parser.ParseStatus(taskListFlagStatus); err != nil {
			return err
		}
	}
	if taskListFlagMember != "" {
		m, err := parser.ResolveMember(project, taskListFlagMember)
		if err != nil {
			return err
		}
		filter.MemberID = m.ID
	}

	tasks := metrics.FilterTasks(project.Tasks, filter)
	if taskListFlagCategory != "" {
		kept := tasks[:0]
		for _, t := range tasks {
			if strings.EqualFold(t.Category, taskListFlagCategory) {
				kept = append(kept, t)
			}
		}
		tasks = kept
	}

	if taskListFlagSort != "" {
		field, err := parser.ParseSortField(taskListFlagSort)
		if err != nil {
			return err
		}
		tasks = metrics.SortTasks(tasks, project.Members, field, taskListFlagDesc)
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintTasks(project, tasks, now())
	}
	ctx.CLIFormatter().PrintTasks(project, tasks, now())
	return nil
}

func runTaskShow(cmd *cobra.Command, args []string) error {
	project, err := ctx.Project()
	if err != nil {
		return err
	}
	task, err := parser.ResolveTask(project, args[0])
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintTask(project, task, now())
	}
	ctx.CLIFormatter().PrintTask(project, task, now())
	return nil
}

func runTaskEdit(cmd *cobra.Command, args []string) error {
	if !anyChanged(cmd, "title", "description", "assignee", "start", "due", "status",
		"priority", "progress", "category", "completed", "depends-on") {
		return errors.NewUserError("nothing to change", "Pass the fields to change, e.g. --progress 50 or --status done.")
	}

	var updated model.Task
	var warnings []string
	project, err := ctx.EditProject(model.UndoActionEdit, "edit task "+args[0], func(p *model.Project) error {
		task, err := parser.ResolveTask(p, args[0])
		if err != nil {
			return err
		}
		patch, err := taskPatchFromFlags(cmd, p, task)
		if err != nil {
			return err
		}
		p.UpdateTask(task.ID, patch)
		warnings = validate.TaskWarnings(p, task)
		updated = *task
		return nil
	})
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintTask(project, &updated, now())
	}
	printWarnings(warnings)
	ctx.CLIFormatter().Success("Updated " + updated.Title)
	return nil
}

// taskPatchFromFlags builds a patch from the flags the user set.
func taskPatchFromFlags(cmd *cobra.Command, p *model.Project, task *model.Task) (model.TaskPatch, error) {
	flags := cmd.Flags()
	var patch model.TaskPatch
	today := now()

	if flags.Changed("title") {
		title := validate.SanitizeName(taskFlagTitle)
		if err := validate.TaskTitle(title); err != nil {
			return patch, err
		}
		patch.Title = &title
	}
	if flags.Changed("description") {
		desc := validate.SanitizeNote(taskFlagDescription)
		if err := validate.Description(desc); err != nil {
			return patch, err
		}
		patch.Description = &desc
	}
	if flags.Changed("assignee") {
		refs := parser.ParseList(taskFlagAssignees...)
		if len(refs) == 0 {
			return patch, errors.NewUserErrorFrom(errors.ErrNoAssignee, "assignee", "")
		}
		ids, err := parser.ResolveMembers(p, refs)
		if err != nil {
			return patch, err
		}
		patch.AssigneeIDs = ids
	}
	if flags.Changed("start") {
		d, err := parser.ParseDate("start date", taskFlagStart, today)
		if err != nil {
			return patch, err
		}
		patch.StartDate = &d
	}
	if flags.Changed("due") {
		d, err := parser.ParseDate("due date", taskFlagDue, today)
		if err != nil {
			return patch, err
		}
		patch.DueDate = &d
	}
	if flags.Changed("status") {
		s, err := parser.ParseStatus(taskFlagStatus)
		if err != nil {
			return patch, err
		}
		patch.Status = &s
		if s == model.StatusCompleted && task.CompletedDate == nil && !flags.Changed("completed") {
			patch.CompletedDate = ptr(model.DateOf(today))
		}
	}
	if flags.Changed("priority") {
		pr, err := parser.ParsePriority(taskFlagPriority)
		if err != nil {
			return patch, err
		}
		patch.Priority = &pr
	}
	if flags.Changed("progress") {
		n, err := parser.ParseProgress(taskFlagProgress)
		if err != nil {
			return patch, err
		}
		patch.Progress = &n
	}
	if flags.Changed("category") {
		patch.Category = ptr(validate.SanitizeName(taskFlagCategory))
	}
	if flags.Changed("completed") {
		if strings.EqualFold(strings.TrimSpace(taskFlagCompleted), "none") {
			patch.CompletedDate = &model.Date{}
		} else {
			d, err := parser.ParseDate("completed date", taskFlagCompleted, today)
			if err != nil {
				return patch, err
			}
			patch.CompletedDate = &d
		}
	}
	if flags.Changed("depends-on") {
		patch.Dependencies = parser.ParseList(taskFlagDependsOn...)
		if patch.Dependencies == nil {
			patch.Dependencies = []string{}
		}
	}
	return patch, nil
}

func runTaskRemove(cmd *cobra.Command, args []string) error {
	project, err := ctx.Project()
	if err != nil {
		return err
	}
	task, err := parser.ResolveTask(project, args[0])
	if err != nil {
		return err
	}

	ok, err := confirm(taskRemoveFlagForce, fmt.Sprintf("Remove task %q? (y/N): ", task.Title))
	if err != nil {
		return err
	}
	if !ok {
		if ctx.IsJSON() {
			return errors.NewUserError("removing a task needs confirmation", "Pass --force.")
		}
		ctx.CLIFormatter().Muted("Cancelled")
		return nil
	}

	id, title := task.ID, task.Title
	if _, err := ctx.EditProject(model.UndoActionDelete, "remove task "+title, func(p *model.Project) error {
		p.DeleteTask(id)
		return nil
	}); err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintSuccess("deleted", "task removed", id)
	}
	ctx.CLIFormatter().Success("Removed " + title)
	return nil
}
