package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/crewboard/internal/errors"
	"github.com/manav03panchal/crewboard/internal/metrics"
	"github.com/manav03panchal/crewboard/internal/model"
	"github.com/manav03panchal/crewboard/internal/output"
	"github.com/manav03panchal/crewboard/internal/parser"
	"github.com/manav03panchal/crewboard/internal/validate"
)

// memberCmd represents the member command.
var memberCmd = &cobra.Command{
	Use:     "member",
	Aliases: []string{"members", "m"},
	Short:   "Manage team members",
	Long: `Add, list, edit or remove the people working on the project.

Members can be referenced by name or by id prefix.

Examples:
  crewboard member add "Aki" --role "Stage lead" --color "#FF6B6B"
  crewboard member list
  crewboard member edit aki --role "Producer"
  crewboard member remove aki`,
	RunE: runMemberList,
}

// Member subcommand flags.
var (
	memberFlagRole  string
	memberFlagColor string
	memberFlagName  string

	memberRemoveFlagForce bool
)

var memberAddCmd = &cobra.Command{
	Use:   "add NAME",
	Short: "Add a member",
	Args:  cobra.ExactArgs(1),
	RunE:  runMemberAdd,
}

var memberListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List members with their task progress",
	Args:    cobra.NoArgs,
	RunE:    runMemberList,
}

var memberEditCmd = &cobra.Command{
	Use:               "edit MEMBER",
	Short:             "Edit a member",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeMembers,
	RunE:              runMemberEdit,
}

var memberRemoveCmd = &cobra.Command{
	Use:     "remove MEMBER",
	Aliases: []string{"rm", "delete"},
	Short:   "Remove a member",
	Long: `Remove a member. Their task assignments are left in place and show up
as unknown until reassigned.`,
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeMembers,
	RunE:              runMemberRemove,
}

func init() {
	memberAddCmd.Flags().StringVarP(&memberFlagRole, "role", "r", "", "Role on the project")
	memberAddCmd.Flags().StringVarP(&memberFlagColor, "color", "c", "", "Hex color (#RRGGBB), picked from the palette if omitted")

	memberEditCmd.Flags().StringVarP(&memberFlagName, "name", "n", "", "New name")
	memberEditCmd.Flags().StringVarP(&memberFlagRole, "role", "r", "", "New role")
	memberEditCmd.Flags().StringVarP(&memberFlagColor, "color", "c", "", "New hex color")

	memberRemoveCmd.Flags().BoolVar(&memberRemoveFlagForce, "force", false, "Skip confirmation")

	memberCmd.AddCommand(memberAddCmd)
	memberCmd.AddCommand(memberListCmd)
	memberCmd.AddCommand(memberEditCmd)
	memberCmd.AddCommand(memberRemoveCmd)
	rootCmd.AddCommand(memberCmd)
}

func runMemberAdd(cmd *cobra.Command, args []string) error {
	name := validate.SanitizeName(args[0])
	if err := validate.MemberName(name); err != nil {
		return err
	}
	if err := validate.HexColor(memberFlagColor); err != nil {
		return err
	}

	var member *model.Member
	_, err := ctx.EditProject(model.UndoActionEdit, "add member "+name, func(p *model.Project) error {
		color := memberFlagColor
		if color == "" {
			color = model.MemberPalette[len(p.Members)%len(model.MemberPalette)]
		}
		member = model.NewMember(name, validate.SanitizeName(memberFlagRole), color)
		p.AddMember(*member)
		return nil
	})
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(output.NewMemberOutputs([]model.Member{*member}, nil)[0])
	}
	ctx.CLIFormatter().Success(fmt.Sprintf("Added %s (%s)", member.Name, member.ID[:8]))
	return nil
}

func runMemberList(cmd *cobra.Command, args []string) error {
	project, err := ctx.Project()
	if err != nil {
		return err
	}
	stats := metrics.MemberProgress(project.Tasks, project.Members)

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintMembers(project, stats)
	}
	ctx.CLIFormatter().PrintMembers(project, stats)
	return nil
}

func runMemberEdit(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	if !anyChanged(cmd, "name", "role", "color") {
		return errors.NewUserError("nothing to change", "Pass at least one of --name, --role or --color.")
	}

	var patch model.MemberPatch
	if flags.Changed("name") {
		name := validate.SanitizeName(memberFlagName)
		if err := validate.MemberName(name); err != nil {
			return err
		}
		patch.Name = &name
	}
	if flags.Changed("role") {
		patch.Role = ptr(validate.SanitizeName(memberFlagRole))
	}
	if flags.Changed("color") {
		if err := validate.HexColor(memberFlagColor); err != nil {
			return err
		}
		patch.Color = &memberFlagColor
	}

	var updated model.Member
	_, err := ctx.EditProject(model.UndoActionEdit, "edit member "+args[0], func(p *model.Project) error {
		m, err := parser.ResolveMember(p, args[0])
		if err != nil {
			return err
		}
		p.UpdateMember(m.ID, patch)
		updated = *m
		return nil
	})
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(output.NewMemberOutputs([]model.Member{updated}, nil)[0])
	}
	ctx.CLIFormatter().Success("Updated " + updated.Name)
	return nil
}

func runMemberRemove(cmd *cobra.Command, args []string) error {
	project, err := ctx.Project()
	if err != nil {
		return err
	}
	member, err := parser.ResolveMember(project, args[0])
	if err != nil {
		return err
	}
	assigned := len(project.TasksByMember(member.ID))

	if !ctx.IsJSON() && assigned > 0 {
		ctx.CLIFormatter().Warning(fmt.Sprintf("%s is assigned to %d tasks; the assignments stay until edited.", member.Name, assigned))
	}
	ok, err := confirm(memberRemoveFlagForce, fmt.Sprintf("Remove %s? (y/N): ", member.Name))
	if err != nil {
		return err
	}
	if !ok {
		if ctx.IsJSON() {
			return errors.NewUserError("removing a member needs confirmation", "Pass --force.")
		}
		ctx.CLIFormatter().Muted("Cancelled")
		return nil
	}

	id, name := member.ID, member.Name
	if _, err := ctx.EditProject(model.UndoActionDelete, "remove member "+name, func(p *model.Project) error {
		p.DeleteMember(id)
		return nil
	}); err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintSuccess("deleted", "member removed", id)
	}
	ctx.CLIFormatter().Success("Removed " + name)
	return nil
}
