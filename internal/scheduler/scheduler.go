// Package scheduler runs recurring report sends on a cron schedule.
package scheduler

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/manav03panchal/crewboard/internal/errors"
	"github.com/manav03panchal/crewboard/internal/logging"
)

// Scheduler manages scheduled jobs using cron. Specs are standard
// five-field expressions, plus descriptors such as @every 1h.
type Scheduler struct {
	cron *cron.Cron
}

// NewScheduler creates a new scheduler. A job that is still running when
// its next slot arrives is skipped rather than stacked.
func NewScheduler() *Scheduler {
	logger := cronLogger{logging.Logger()}
	return &Scheduler{
		cron: cron.New(
			cron.WithLogger(logger),
			cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
		),
	}
}

// ValidateSpec checks a cron expression without scheduling anything.
func ValidateSpec(spec string) error {
	if _, err := cron.ParseStandard(spec); err != nil {
		ue := errors.NewUserErrorFrom(errors.ErrInvalidSchedule, "schedule", spec)
		ue.Reason = err.Error()
		return ue
	}
	return nil
}

// Start starts the cron loop in the background.
func (s *Scheduler) Start() {
	s.cron.Start()
	logging.DebugLog("scheduler started", logging.KeyCount, len(s.cron.Entries()))
}

// Stop stops the scheduler and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	if s.cron != nil {
		ctx := s.cron.Stop()
		<-ctx.Done()
	}
	logging.DebugLog("scheduler stopped")
}

// AddJob adds a job to the scheduler.
func (s *Scheduler) AddJob(spec string, job func()) (cron.EntryID, error) {
	if err := ValidateSpec(spec); err != nil {
		return 0, err
	}
	id, err := s.cron.AddFunc(spec, job)
	if err != nil {
		return 0, fmt.Errorf("failed to schedule %q: %w", spec, err)
	}
	return id, nil
}

// RemoveJob removes a job from the scheduler.
func (s *Scheduler) RemoveJob(id cron.EntryID) {
	s.cron.Remove(id)
}

// Entries returns all scheduled entries.
func (s *Scheduler) Entries() []cron.Entry {
	return s.cron.Entries()
}

// NextRun returns the next scheduled run time for any job, or the zero
// time when nothing is scheduled. Entries only have a next time once the
// scheduler is running.
func (s *Scheduler) NextRun() time.Time {
	entries := s.cron.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}

	next := entries[0].Next
	for _, e := range entries[1:] {
		if !e.Next.IsZero() && (next.IsZero() || e.Next.Before(next)) {
			next = e.Next
		}
	}
	return next
}

// NextAfter returns when spec fires next after t.
func NextAfter(spec string, t time.Time) (time.Time, error) {
	sched, err := cron.ParseStandard(spec)
	if err != nil {
		return time.Time{}, ValidateSpec(spec)
	}
	return sched.Next(t), nil
}

// cronLogger adapts slog to cron's logger interface.
type cronLogger struct {
	log *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Error("cron: "+msg, append([]interface{}{logging.KeyError, err}, keysAndValues...)...)
}
