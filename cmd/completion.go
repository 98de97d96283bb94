// Package cmd provides the CLI commands for Crewboard.
//
// This software is a derivative work based on Zeit (https://github.com/mrusme/zeit)
// Original work copyright (c) マリウス (mrusme)
// Modifications copyright (c) Manav Panchal
//
// Licensed under the SEGV License, Version 1.0
// See LICENSE file for full license text.
package cmd

import (
	"github.com/spf13/cobra"
)

// completionCmd represents the completion command.
var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for crewboard.

Member names, task titles, categories and webhook names complete from the
current project.

Bash:
  $ source <(crewboard completion bash)

  # Load for every session:
  $ crewboard completion bash > /etc/bash_completion.d/crewboard

Zsh:
  # Enable completion once if your shell does not already:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  $ crewboard completion zsh > "${fpath[1]}/_crewboard"

Fish:
  $ crewboard completion fish > ~/.config/fish/completions/crewboard.fish

PowerShell:
  PS> crewboard completion powershell | Out-String | Invoke-Expression
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletionV2(out, true)
		case "zsh":
			return rootCmd.GenZshCompletion(out)
		case "fish":
			return rootCmd.GenFishCompletion(out, true)
		case "powershell":
			return rootCmd.GenPowerShellCompletionWithDesc(out)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(completionCmd)
}
