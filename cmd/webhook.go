package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/crewboard/internal/config"
	"github.com/manav03panchal/crewboard/internal/errors"
	"github.com/manav03panchal/crewboard/internal/logging"
	"github.com/manav03panchal/crewboard/internal/model"
	"github.com/manav03panchal/crewboard/internal/notify"
	"github.com/manav03panchal/crewboard/internal/output"
	"github.com/manav03panchal/crewboard/internal/report"
	"github.com/manav03panchal/crewboard/internal/runtime"
	"github.com/manav03panchal/crewboard/internal/scheduler"
	"github.com/manav03panchal/crewboard/internal/validate"
)

// Webhook command flags.
var (
	webhookFlagName         string
	webhookSetFlagName      string
	webhookSetFlagType      string
	webhookSetFlagTemplate  string
	webhookSendFlagAll      bool
	webhookSendFlagDryRun   bool
	webhookRemoveFlagForce  bool
	webhookScheduleFlagCron string
	webhookScheduleFlagOnce bool
)

// webhookCmd represents the webhook command.
var webhookCmd = &cobra.Command{
	Use:     "webhook [command]",
	Aliases: []string{"wh", "hook"},
	Short:   "Post the report to Discord, Slack or another webhook",
	Long: `Save webhook endpoints and post the plain-text progress report to them.

The webhook type is detected from the URL:
  - Discord: discord.com/api/webhooks/...
  - Slack:   hooks.slack.com/services/...
  - Teams:   webhook.office.com/...
  - Generic: any other URL, posted as {"text": ...} or a custom template

The endpoint is saved on first use and reused afterwards.

Examples:
  crewboard webhook set https://discord.com/api/webhooks/123/abc
  crewboard webhook set https://hooks.slack.com/services/T/B/x --name team
  crewboard webhook show
  crewboard webhook send
  crewboard webhook send --all
  crewboard webhook schedule --cron "0 10 * * 3"`,
	RunE: runWebhookShow,
}

var webhookSetCmd = &cobra.Command{
	Use:   "set URL",
	Short: "Save a webhook endpoint",
	Args:  cobra.ExactArgs(1),
	RunE:  runWebhookSet,
}

var webhookShowCmd = &cobra.Command{
	Use:     "show",
	Aliases: []string{"list", "ls"},
	Short:   "Show saved webhooks",
	Args:    cobra.NoArgs,
	RunE:    runWebhookShow,
}

var webhookSendCmd = &cobra.Command{
	Use:   "send",
	Short: "Post the progress report now",
	Args:  cobra.NoArgs,
	RunE:  runWebhookSend,
}

var webhookTestCmd = &cobra.Command{
	Use:   "test",
	Short: "Post a short test message",
	Args:  cobra.NoArgs,
	RunE:  runWebhookTest,
}

var webhookRemoveCmd = &cobra.Command{
	Use:               "remove NAME",
	Aliases:           []string{"rm", "delete"},
	Short:             "Remove a saved webhook",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeWebhooks,
	RunE:              runWebhookRemove,
}

var webhookScheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Post the report on a cron schedule until interrupted",
	Long: `Run in the foreground and post the progress report on a five-field cron
schedule (default from config report.schedule, "0 10 * * 3": Wednesdays at
10:00). The database is opened only while a report is being sent, so other
crewboard commands keep working in the meantime.

Examples:
  crewboard webhook schedule
  crewboard webhook schedule --cron "30 9 * * 1-5" --name team
  crewboard webhook schedule --cron "@every 1h"`,
	Args:        cobra.NoArgs,
	Annotations: map[string]string{annotationNoRuntime: "true"},
	RunE:        runWebhookSchedule,
}

func init() {
	webhookSetCmd.Flags().StringVarP(&webhookSetFlagName, "name", "n", model.DefaultWebhookName, "Name to save the webhook under")
	webhookSetCmd.Flags().StringVarP(&webhookSetFlagType, "type", "t", "",
		"Webhook type: discord, slack, teams, generic (detected from the URL if omitted)")
	webhookSetCmd.Flags().StringVar(&webhookSetFlagTemplate, "template", "",
		"Body template for generic webhooks, e.g. '{\"msg\": {{json .Text}}}'")

	for _, c := range []*cobra.Command{webhookSendCmd, webhookTestCmd, webhookScheduleCmd} {
		c.Flags().StringVarP(&webhookFlagName, "name", "n", "", "Webhook to use (default: 'default' or the only one saved)")
		_ = c.RegisterFlagCompletionFunc("name", completeWebhooks)
	}
	webhookSendCmd.Flags().BoolVarP(&webhookSendFlagAll, "all", "a", false, "Send to every saved webhook")
	webhookSendCmd.Flags().BoolVar(&webhookSendFlagDryRun, "dry-run", false, "Print the report text without sending")
	webhookSendCmd.MarkFlagsMutuallyExclusive("name", "all")

	webhookRemoveCmd.Flags().BoolVar(&webhookRemoveFlagForce, "force", false, "Skip confirmation")

	webhookScheduleCmd.Flags().StringVar(&webhookScheduleFlagCron, "cron", "", "Cron expression (default from config)")
	webhookScheduleCmd.Flags().BoolVar(&webhookScheduleFlagOnce, "once", false, "Send once now and exit")

	webhookCmd.AddCommand(webhookSetCmd)
	webhookCmd.AddCommand(webhookShowCmd)
	webhookCmd.AddCommand(webhookSendCmd)
	webhookCmd.AddCommand(webhookTestCmd)
	webhookCmd.AddCommand(webhookRemoveCmd)
	webhookCmd.AddCommand(webhookScheduleCmd)
	rootCmd.AddCommand(webhookCmd)
}

func runWebhookSet(cmd *cobra.Command, args []string) error {
	url := args[0]
	if err := validate.URL(url); err != nil {
		return err
	}
	if err := validate.WebhookName(webhookSetFlagName); err != nil {
		return err
	}

	webhook := model.NewWebhook(webhookSetFlagName, url)
	if webhookSetFlagType != "" {
		if !model.IsValidWebhookType(webhookSetFlagType) {
			return errors.NewUserErrorWithField("type", webhookSetFlagType, "invalid webhook type",
				"Use discord, slack, teams or generic.")
		}
		webhook.Type = webhookSetFlagType
	}
	webhook.Template = webhookSetFlagTemplate

	if err := ctx.WebhookRepo.Save(webhook); err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(output.NewWebhookOutput(webhook))
	}
	cli := ctx.CLIFormatter()
	cli.Success("Saved webhook " + webhook.Name)
	cli.Printf("  Type: %s\n", webhook.Type)
	cli.Printf("  URL: %s\n", webhook.MaskedURL())
	cli.Println("")
	cli.Printf("Test with: crewboard webhook test --name %s\n", webhook.Name)
	return nil
}

func runWebhookShow(cmd *cobra.Command, args []string) error {
	webhooks, err := ctx.WebhookRepo.List()
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintWebhooks(webhooks)
	}
	ctx.CLIFormatter().PrintWebhooks(webhooks)
	return nil
}

func runWebhookSend(cmd *cobra.Command, args []string) error {
	project, err := ctx.Project()
	if err != nil {
		return err
	}
	text := report.Render(project, now()).Text()

	if webhookSendFlagDryRun {
		ctx.Formatter.Print(text)
		return nil
	}
	return dispatch(commandContext(cmd), text, webhookSendFlagAll)
}

func runWebhookTest(cmd *cobra.Command, args []string) error {
	name := "Crewboard"
	if p, err := ctx.ProjectRepo.Get(); err == nil {
		name = p.Name
	}
	text := fmt.Sprintf("Test message from %s, sent %s.", name, now().Format("2006-01-02 15:04"))
	return dispatch(commandContext(cmd), text, false)
}

// dispatch sends text to the selected webhook, or all of them, and prints
// one line per delivery.
func dispatch(c context.Context, text string, all bool) error {
	var results []notify.DispatchResult
	if all {
		var err error
		results, err = ctx.Sender.Broadcast(c, text)
		if err != nil {
			return err
		}
		if len(results) == 0 {
			return errors.NewUserErrorFrom(errors.ErrWebhookNotConfigured, "", "")
		}
	} else {
		r, err := ctx.Sender.SendToName(c, webhookFlagName, text)
		if err != nil {
			return err
		}
		results = []notify.DispatchResult{r}
	}

	failed := 0
	var firstErr error
	outputs := make([]*output.SendOutput, 0, len(results))
	for _, r := range results {
		if !r.Success {
			failed++
			if firstErr == nil {
				firstErr = r.Error
			}
		}
		outputs = append(outputs, output.NewSendOutput(r.WebhookName, r.Success, r.StatusCode, r.Attempts, r.Duration, r.Error))
	}

	if ctx.IsJSON() {
		if err := ctx.Formatter.JSON(map[string]interface{}{"results": outputs}); err != nil {
			return err
		}
	} else {
		cli := ctx.CLIFormatter()
		for _, o := range outputs {
			if o.Success {
				cli.Success(fmt.Sprintf("Sent to %s (%dms)", o.Webhook, o.DurationMS))
			} else {
				cli.Error(fmt.Sprintf("%s: %s", o.Webhook, o.Error))
			}
		}
	}

	if failed > 0 {
		return errors.NewSystemErrorWithOp("webhook send",
			fmt.Sprintf("%d of %d deliveries failed", failed, len(results)), firstErr)
	}
	return nil
}

func runWebhookRemove(cmd *cobra.Command, args []string) error {
	name := args[0]
	if _, err := ctx.WebhookRepo.Get(name); err != nil {
		return err
	}

	ok, err := confirm(webhookRemoveFlagForce, fmt.Sprintf("Remove webhook %q? (y/N): ", name))
	if err != nil {
		return err
	}
	if !ok {
		if ctx.IsJSON() {
			return errors.NewUserError("removing a webhook needs confirmation", "Pass --force.")
		}
		ctx.CLIFormatter().Muted("Cancelled")
		return nil
	}

	if err := ctx.WebhookRepo.Delete(name); err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintSuccess("deleted", "webhook removed", name)
	}
	ctx.CLIFormatter().Success("Removed webhook " + name)
	return nil
}

// openSession opens storage for one scheduled run.
func openSession() (*scheduler.Session, error) {
	c, err := runtime.New(runtimeOptions)
	if err != nil {
		return nil, err
	}
	project, err := c.Project()
	if err != nil {
		_ = c.Close()
		return nil, err
	}
	return &scheduler.Session{Project: project, Sender: c.Sender, Close: c.Close}, nil
}

func runWebhookSchedule(cmd *cobra.Command, args []string) error {
	cfg := runtimeOptions.Config
	if cfg == nil {
		cfg = config.Global
	}
	spec := webhookScheduleFlagCron
	if spec == "" {
		spec = cfg.Report.Schedule
	}
	if err := scheduler.ValidateSpec(spec); err != nil {
		return err
	}

	f := output.NewFormatter()
	f.Format = runtimeOptions.Format
	f.ColorMode = runtimeOptions.ColorMode
	cli := output.NewCLIFormatter(f)

	timeout := cfg.HTTP.Timeout * time.Duration(max(cfg.HTTP.MaxRetries, 1))
	job := scheduler.NewReportJob(openSession, webhookFlagName, timeout+time.Minute)

	sigCtx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if webhookScheduleFlagOnce {
		_, err := job.Run(sigCtx)
		if err != nil {
			return err
		}
		cli.Success("Report sent")
		return nil
	}

	s := scheduler.NewScheduler()
	if err := s.ScheduleReport(sigCtx, spec, job); err != nil {
		return err
	}
	s.Start()
	defer s.Stop()

	next, _ := scheduler.NextAfter(spec, time.Now())
	logging.Info("report schedule running", logging.KeySchedule, spec)
	if f.IsJSON() {
		_ = f.JSON(map[string]string{
			"status":   "scheduled",
			"schedule": spec,
			"next_run": next.Format(time.RFC3339),
		})
	} else {
		cli.Title("Report schedule: " + spec)
		cli.Printf("  Next run: %s\n", output.FormatTimestamp(next))
		cli.Muted("Press Ctrl+C to stop.")
	}

	<-sigCtx.Done()

	runs, last, lastErr := job.Stats()
	if !f.IsJSON() {
		cli.Println("")
		cli.Printf("Stopped after %d runs", runs)
		if !last.IsZero() {
			cli.Printf(", last at %s", output.FormatTimestamp(last))
			if lastErr != nil {
				cli.Printf(" (%v)", lastErr)
			}
		}
		cli.Println("")
	}
	return nil
}
