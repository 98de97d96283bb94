package cmd

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/crewboard/internal/metrics"
	"github.com/manav03panchal/crewboard/internal/model"
	"github.com/manav03panchal/crewboard/internal/runtime"
	"github.com/manav03panchal/crewboard/internal/storage"
)

// confirmInput is where confirmation answers are read from.
var confirmInput io.Reader = os.Stdin

// promptConfirmation prompts the user for a yes/no confirmation.
func promptConfirmation(prompt string) (bool, error) {
	ctx.Formatter.Print(prompt)
	response, err := bufio.NewReader(confirmInput).ReadString('\n')
	if err != nil && response == "" {
		// Empty input (EOF) means no
		return false, nil
	}
	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes", nil
}

// confirm asks before a destructive change unless force is set. JSON
// output never prompts, so it requires force.
func confirm(force bool, prompt string) (bool, error) {
	if force {
		return true, nil
	}
	if ctx.IsJSON() {
		return false, nil
	}
	return promptConfirmation(prompt)
}

// writeFile writes data atomically, or to stdout when path is "-".
func writeFile(path string, data []byte) error {
	if path == "-" {
		_, err := ctx.Formatter.Writer.Write(data)
		return err
	}
	return storage.SafeWrite(path, data, 0o644)
}

// anyChanged reports whether any of the named flags was set.
func anyChanged(cmd *cobra.Command, names ...string) bool {
	for _, name := range names {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}

// ptr returns a pointer to v.
func ptr[T any](v T) *T {
	return &v
}

// printWarnings prints advisory warnings in CLI mode.
func printWarnings(warnings []string) {
	if ctx.IsJSON() {
		return
	}
	cli := ctx.CLIFormatter()
	for _, w := range warnings {
		cli.Warning(w)
	}
}

// completionProject loads the project for shell completion, opening the
// runtime if no command did.
func completionProject() *model.Project {
	c := ctx
	if c == nil {
		var err error
		c, err = runtime.New(runtimeOptions)
		if err != nil {
			return nil
		}
		defer c.Close()
	}
	p, err := c.ProjectRepo.Get()
	if err != nil {
		return nil
	}
	return p
}

// completeMembers completes member names.
func completeMembers(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	p := completionProject()
	if p == nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	var out []string
	for _, m := range p.Members {
		if strings.HasPrefix(strings.ToLower(m.Name), strings.ToLower(toComplete)) {
			out = append(out, m.Name+"\t"+m.Role)
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}

// completeTasks completes task ids, described by title.
func completeTasks(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) != 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	p := completionProject()
	if p == nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	var out []string
	for _, t := range p.Tasks {
		if strings.HasPrefix(t.ID, toComplete) {
			out = append(out, t.ID+"\t"+t.Title)
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}

// completeCategories completes the project's categories.
func completeCategories(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	p := completionProject()
	if p == nil {
		return model.DefaultCategories, cobra.ShellCompDirectiveNoFileComp
	}
	return p.Categories, cobra.ShellCompDirectiveNoFileComp
}

func completeStatuses(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	out := make([]string, 0, 4)
	for _, s := range model.AllStatuses() {
		out = append(out, string(s)+"\t"+s.Label())
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}

func completePriorities(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	out := make([]string, 0, 3)
	for _, p := range model.AllPriorities() {
		out = append(out, string(p)+"\t"+p.Label())
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}

func completeSortFields(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	out := make([]string, 0, len(metrics.SortFields()))
	for _, f := range metrics.SortFields() {
		out = append(out, string(f))
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}

// completeWebhooks completes saved webhook names.
func completeWebhooks(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	c := ctx
	if c == nil {
		var err error
		c, err = runtime.New(runtimeOptions)
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		defer c.Close()
	}

	webhooks, err := c.WebhookRepo.List()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	var names []string
	for _, wh := range webhooks {
		if strings.HasPrefix(wh.Name, toComplete) {
			names = append(names, wh.Name)
		}
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}
