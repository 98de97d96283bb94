package scheduler

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/manav03panchal/crewboard/internal/logging"
	"github.com/manav03panchal/crewboard/internal/model"
	"github.com/manav03panchal/crewboard/internal/notify"
	"github.com/manav03panchal/crewboard/internal/report"
)

// Sender delivers report text to saved webhooks.
type Sender interface {
	Broadcast(ctx context.Context, text string) ([]notify.DispatchResult, error)
	SendToName(ctx context.Context, name, text string) (notify.DispatchResult, error)
}

// Session is a short-lived view of storage for one run: the current
// project and a sender bound to the same database. Close releases it.
type Session struct {
	Project *model.Project
	Sender  Sender
	Close   func() error
}

// Opener opens a Session. The scheduler opens one per run so the database
// is not held between sends.
type Opener func() (*Session, error)

// ReportJob renders the current project report and posts it.
type ReportJob struct {
	open    Opener
	webhook string
	timeout time.Duration
	now     func() time.Time

	mu      sync.Mutex
	runs    int
	lastRun time.Time
	lastErr error
}

// NewReportJob creates a job. An empty webhook name sends to every saved
// webhook.
func NewReportJob(open Opener, webhook string, timeout time.Duration) *ReportJob {
	return &ReportJob{
		open:    open,
		webhook: webhook,
		timeout: timeout,
		now:     time.Now,
	}
}

// Run renders and sends the report once.
func (j *ReportJob) Run(ctx context.Context) ([]notify.DispatchResult, error) {
	results, err := j.run(ctx)

	j.mu.Lock()
	j.runs++
	j.lastRun = j.now()
	j.lastErr = err
	j.mu.Unlock()

	return results, err
}

func (j *ReportJob) run(ctx context.Context) ([]notify.DispatchResult, error) {
	session, err := j.open()
	if err != nil {
		return nil, err
	}
	defer func() {
		if session.Close != nil {
			if cerr := session.Close(); cerr != nil {
				logging.Warn("failed to close session", logging.KeyError, cerr)
			}
		}
	}()

	if j.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, j.timeout)
		defer cancel()
	}

	text := report.Render(session.Project, j.now()).Text()

	var results []notify.DispatchResult
	if j.webhook != "" {
		r, err := session.Sender.SendToName(ctx, j.webhook, text)
		if err != nil {
			return nil, err
		}
		results = []notify.DispatchResult{r}
	} else {
		results, err = session.Sender.Broadcast(ctx, text)
		if err != nil {
			return nil, err
		}
	}

	return results, failures(results)
}

// failures folds failed deliveries into one error, or nil.
func failures(results []notify.DispatchResult) error {
	var failed []string
	for _, r := range results {
		if !r.Success {
			failed = append(failed, fmt.Sprintf("%s: %v", r.WebhookName, r.Error))
		}
	}
	if len(failed) == 0 {
		return nil
	}
	return fmt.Errorf("report not delivered to %d of %d webhooks (%s)",
		len(failed), len(results), strings.Join(failed, "; "))
}

// Func returns the job as a cron callback. Outcomes are logged.
func (j *ReportJob) Func(ctx context.Context) func() {
	return func() {
		log := logging.LoggerFromContext(ctx)
		results, err := j.Run(ctx)
		if err != nil {
			log.Error("scheduled report failed", logging.KeyError, err)
			return
		}
		log.Info("scheduled report sent", logging.KeyCount, len(results))
	}
}

// Stats returns the number of runs, the time of the last one and its error.
func (j *ReportJob) Stats() (runs int, last time.Time, lastErr error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.runs, j.lastRun, j.lastErr
}

// ScheduleReport adds job to s under spec.
func (s *Scheduler) ScheduleReport(ctx context.Context, spec string, job *ReportJob) error {
	_, err := s.AddJob(spec, job.Func(ctx))
	if err != nil {
		return err
	}
	logging.LoggerFromContext(ctx).Debug("report scheduled", logging.KeySchedule, spec)
	return nil
}
