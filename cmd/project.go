package cmd

import (
	"github.com/spf13/cobra"

	"github.com/manav03panchal/crewboard/internal/config"
	"github.com/manav03panchal/crewboard/internal/errors"
	"github.com/manav03panchal/crewboard/internal/metrics"
	"github.com/manav03panchal/crewboard/internal/model"
	"github.com/manav03panchal/crewboard/internal/parser"
	"github.com/manav03panchal/crewboard/internal/validate"
)

// projectCmd represents the project command.
var projectCmd = &cobra.Command{
	Use:     "project",
	Aliases: []string{"proj", "pj"},
	Short:   "Set up and inspect the project",
	Long: `Set up, show, edit or clear the project. Crewboard tracks one project
at a time.

Examples:
  crewboard project init "Neosphere Exhibition" --target 2025-09-06
  crewboard project init --default
  crewboard project init --seed expo.yaml
  crewboard project show
  crewboard project edit --target "in 3 weeks"
  crewboard project clear`,
	RunE: runProjectShow,
}

// Project subcommand flags.
var (
	projectInitFlagDescription string
	projectInitFlagTarget      string
	projectInitFlagCategories  []string
	projectInitFlagDefault     bool
	projectInitFlagSeed        string
	projectInitFlagForce       bool

	projectEditFlagName        string
	projectEditFlagDescription string
	projectEditFlagTarget      string
	projectEditFlagCategories  []string

	projectClearFlagForce bool
)

// projectInitCmd creates the project.
var projectInitCmd = &cobra.Command{
	Use:   "init [NAME]",
	Short: "Create the project",
	Long: `Create the project, empty or from seed data. NAME is required unless
--default or --seed is given, in which case it overrides the seed's name.

Replacing an existing project needs --force and can be undone.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runProjectInit,
}

// projectShowCmd shows the project summary.
var projectShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the project summary",
	Args:  cobra.NoArgs,
	RunE:  runProjectShow,
}

// projectEditCmd edits the project fields.
var projectEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit the project name, description, target date or categories",
	Args:  cobra.NoArgs,
	RunE:  runProjectEdit,
}

// projectClearCmd removes all data.
var projectClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the project and its weekly reports",
	Long: `Delete the project, its members, tasks and weekly reports. Webhooks are
kept. Run 'crewboard undo' to bring everything back.`,
	Args: cobra.NoArgs,
	RunE: runProjectClear,
}

func init() {
	projectInitCmd.Flags().StringVarP(&projectInitFlagDescription, "description", "d", "", "Project description")
	projectInitCmd.Flags().StringVarP(&projectInitFlagTarget, "target", "t", "", "Target date (YYYY-MM-DD or natural language)")
	projectInitCmd.Flags().StringSliceVar(&projectInitFlagCategories, "category", nil, "Task categories (repeatable or comma-separated)")
	projectInitCmd.Flags().BoolVar(&projectInitFlagDefault, "default", false, "Start from the built-in sample project")
	projectInitCmd.Flags().StringVar(&projectInitFlagSeed, "seed", "", "Start from a YAML seed file")
	projectInitCmd.Flags().BoolVar(&projectInitFlagForce, "force", false, "Replace an existing project")
	projectInitCmd.MarkFlagsMutuallyExclusive("default", "seed")

	projectEditCmd.Flags().StringVarP(&projectEditFlagName, "name", "n", "", "New project name")
	projectEditCmd.Flags().StringVarP(&projectEditFlagDescription, "description", "d", "", "New description")
	projectEditCmd.Flags().StringVarP(&projectEditFlagTarget, "target", "t", "", "New target date")
	projectEditCmd.Flags().StringSliceVar(&projectEditFlagCategories, "category", nil, "Replace the category list")

	projectClearCmd.Flags().BoolVar(&projectClearFlagForce, "force", false, "Skip confirmation")

	projectCmd.AddCommand(projectInitCmd)
	projectCmd.AddCommand(projectShowCmd)
	projectCmd.AddCommand(projectEditCmd)
	projectCmd.AddCommand(projectClearCmd)
	rootCmd.AddCommand(projectCmd)
}

func runProjectInit(cmd *cobra.Command, args []string) error {
	var project *model.Project

	switch {
	case projectInitFlagDefault:
		project = config.DefaultSeed().Build()
	case projectInitFlagSeed != "":
		seed, err := config.LoadSeed(projectInitFlagSeed)
		if err != nil {
			return err
		}
		project = seed.Build()
	default:
		if len(args) == 0 {
			return errors.NewUserError("a project name is required",
				"Run 'crewboard project init \"<name>\"' or 'crewboard project init --default'.")
		}
		project = model.NewProject("", "", model.Date{})
	}

	if len(args) > 0 {
		project.Name = validate.SanitizeName(args[0])
	}
	if cmd.Flags().Changed("description") {
		project.Description = validate.SanitizeNote(projectInitFlagDescription)
	}
	if projectInitFlagTarget != "" {
		target, err := parser.ParseDate("target", projectInitFlagTarget, now())
		if err != nil {
			return err
		}
		project.TargetDate = target
	}
	if cats := parser.ParseList(projectInitFlagCategories...); len(cats) > 0 {
		project.Categories = validate.SanitizeList(cats)
	}

	if err := validate.ProjectName(project.Name); err != nil {
		return err
	}
	if err := validate.Description(project.Description); err != nil {
		return err
	}

	if err := ctx.InitProject(project, projectInitFlagForce); err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintProject(project, metrics.Compute(project, now()))
	}

	cli := ctx.CLIFormatter()
	cli.Success("Created project " + project.Name)
	if len(project.Members) > 0 || len(project.Tasks) > 0 {
		cli.Printf("  %d members, %d tasks\n", len(project.Members), len(project.Tasks))
	}
	if project.TargetDate.IsZero() {
		cli.Muted("No target date yet. Set one with 'crewboard project edit --target <date>'.")
	}
	return nil
}

func runProjectShow(cmd *cobra.Command, args []string) error {
	project, err := ctx.Project()
	if err != nil {
		return err
	}
	snap := metrics.Compute(project, now())

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintProject(project, snap)
	}
	ctx.CLIFormatter().PrintProject(project, snap)
	return nil
}

func runProjectEdit(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	if !anyChanged(cmd, "name", "description", "target", "category") {
		return errors.NewUserError("nothing to change",
			"Pass at least one of --name, --description, --target or --category.")
	}

	project, err := ctx.EditProject(model.UndoActionEdit, "edit project", func(p *model.Project) error {
		if flags.Changed("name") {
			name := validate.SanitizeName(projectEditFlagName)
			if err := validate.ProjectName(name); err != nil {
				return err
			}
			p.Name = name
		}
		if flags.Changed("description") {
			desc := validate.SanitizeNote(projectEditFlagDescription)
			if err := validate.Description(desc); err != nil {
				return err
			}
			p.Description = desc
		}
		if flags.Changed("target") {
			target, err := parser.ParseDate("target", projectEditFlagTarget, now())
			if err != nil {
				return err
			}
			p.TargetDate = target
		}
		if flags.Changed("category") {
			p.Categories = validate.SanitizeList(parser.ParseList(projectEditFlagCategories...))
		}
		return nil
	})
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintProject(project, metrics.Compute(project, now()))
	}
	ctx.CLIFormatter().Success("Updated project " + project.Name)
	return nil
}

func runProjectClear(cmd *cobra.Command, args []string) error {
	ok, err := confirm(projectClearFlagForce, "Delete the project, all tasks and weekly reports? (y/N): ")
	if err != nil {
		return err
	}
	if !ok {
		if ctx.IsJSON() {
			return errors.NewUserError("clearing needs confirmation", "Pass --force.")
		}
		ctx.CLIFormatter().Muted("Cancelled")
		return nil
	}

	if err := ctx.ClearProject(); err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintSuccess("cleared", "project data deleted", "")
	}
	ctx.CLIFormatter().Success("Project cleared. Run 'crewboard undo' to restore it.")
	return nil
}
