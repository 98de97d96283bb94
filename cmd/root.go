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
	"context"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/crewboard/internal/config"
	"github.com/manav03panchal/crewboard/internal/errors"
	"github.com/manav03panchal/crewboard/internal/logging"
	"github.com/manav03panchal/crewboard/internal/output"
	"github.com/manav03panchal/crewboard/internal/runtime"
)

// Version information (set at build time via ldflags).
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// Global flags.
var (
	flagFormat string
	flagColor  string
	flagDebug  bool
	flagConfig string
	flagDB     string
)

// annotationNoRuntime marks commands that open storage themselves, or not at all.
const annotationNoRuntime = "crewboard/no-runtime"

// ctx is the shared runtime context.
var ctx *runtime.Context

// runtimeOptions is filled by the root pre-run so commands that manage
// their own storage can open it the same way.
var runtimeOptions = runtime.DefaultOptions()

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "crewboard",
	Short: "Track a small team's project from the terminal",
	Long: `Crewboard tracks one project: its members, tasks, deadlines and weekly
status notes. It computes progress metrics, draws a timeline, renders
printable reports and posts them to Discord or Slack webhooks.

Examples:
  crewboard project init --default
  crewboard member add "Aki" --role "Stage lead"
  crewboard task add "Build stage" --assignee Aki --start today --due "next friday"
  crewboard task list --status in_progress --sort dueDate
  crewboard timeline
  crewboard report --html report.html
  crewboard webhook send`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := setupAmbient(); err != nil {
			return err
		}

		if skipRuntime(cmd) {
			return nil
		}

		var err error
		ctx, err = runtime.New(runtimeOptions)
		if err != nil {
			return err
		}
		cmd.SetContext(logging.NewCommandContext(cmd.Context(), cmd.CommandPath()))
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if ctx != nil {
			err := ctx.Close()
			ctx = nil
			return err
		}
		return nil
	},
	RunE: runOverview,
}

// setupAmbient resolves configuration, initializes logging and fills
// runtimeOptions from the global flags.
func setupAmbient() error {
	format, err := output.ParseFormat(flagFormat)
	if err != nil {
		return errors.NewUserErrorWithField("format", flagFormat, err.Error(), "Use --format cli, json or plain.")
	}
	colorMode, err := output.ParseColorMode(flagColor)
	if err != nil {
		return errors.NewUserErrorWithField("color", flagColor, err.Error(), "Use --color auto, always or never.")
	}

	cfg, err := config.Resolve(flagConfig)
	if err != nil {
		return err
	}
	config.Global = cfg

	logCfg := logging.DefaultConfig()
	logCfg.Level = logging.ParseLevel(cfg.Log.Level)
	if flagDebug {
		logCfg = logging.DebugConfig()
	}
	logging.Init(logCfg)

	runtimeOptions = runtime.Options{
		DBPath:    flagDB,
		Format:    format,
		ColorMode: colorMode,
		Debug:     flagDebug,
		Config:    cfg,
	}
	return nil
}

func skipRuntime(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "completion", "help", "version":
		return true
	}
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations[annotationNoRuntime] == "true" {
			return true
		}
	}
	return false
}

// runOverview is the default action: a short project summary, or a hint on
// how to start.
func runOverview(cmd *cobra.Command, args []string) error {
	exists, err := ctx.HasProject()
	if err != nil {
		return err
	}
	if !exists {
		if ctx.IsJSON() {
			return ctx.JSONFormatter().PrintSuccess("empty", "no project has been set up", "")
		}
		cli := ctx.CLIFormatter()
		cli.Muted("No project yet.")
		cli.Println("Create one with 'crewboard project init <name> --target <date>'")
		cli.Println("or load the sample with 'crewboard project init --default'.")
		return nil
	}
	return runProjectShow(cmd, args)
}

// now is the clock for every command.
func now() time.Time {
	if ctx != nil && ctx.Now != nil {
		return ctx.Now()
	}
	return time.Now()
}

// commandContext returns the command's context, falling back to Background.
func commandContext(cmd *cobra.Command) context.Context {
	if c := cmd.Context(); c != nil {
		return c
	}
	return context.Background()
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&flagFormat, "format", "f", "cli",
		"Output format: cli, json, plain")
	rootCmd.PersistentFlags().StringVar(&flagColor, "color", "auto",
		"Color output: auto, always, never")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false,
		"Enable debug logging to stderr")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "",
		"Config file (default $XDG_CONFIG_HOME/crewboard/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "",
		"Database directory, or :memory: (default $XDG_DATA_HOME/crewboard/db)")

	rootCmd.AddCommand(versionCmd)
}

// versionCmd shows version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("crewboard %s\n", Version)
		cmd.Printf("  commit: %s\n", Commit)
		cmd.Printf("  built: %s\n", BuildTime)
		cmd.Println("")
		cmd.Println("Based on Zeit (https://github.com/mrusme/zeit)")
		cmd.Println("Licensed under SEGV License v1.0")
	},
}

// Die prints an error and exits.
func Die(err error) {
	if (ctx != nil && ctx.IsJSON()) || flagFormat == string(output.FormatJSON) {
		f := output.NewFormatter()
		f.Writer = os.Stderr
		_ = output.NewJSONFormatter(f).PrintError("error", err.Error(), errors.GetSuggestion(err))
	} else if flagDebug {
		os.Stderr.WriteString(errors.FormatDebugError(err) + "\n")
	} else {
		os.Stderr.WriteString("Error: " + errors.FormatUserError(err) + "\n")
	}
	if ctx != nil {
		_ = ctx.Close()
	}
	os.Exit(1)
}
