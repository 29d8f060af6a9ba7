package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// DefaultSchedule runs once a day at midnight UTC.
const DefaultSchedule = "0 0 * * *"

// Scheduler runs a Runner on a cron schedule in UTC. Overlapping runs are
// skipped.
type Scheduler struct {
	cron     *cron.Cron
	runner   *Runner
	schedule string
	logger   *slog.Logger

	mu       sync.Mutex
	ctx      context.Context
	stopOnce sync.Once
}

// New creates a Scheduler. An empty schedule means DefaultSchedule.
func New(runner *Runner, schedule string, logger *slog.Logger) *Scheduler {
	if schedule == "" {
		schedule = DefaultSchedule
	}
	if logger == nil {
		logger = slog.Default()
	}
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithParser(parser),
		cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)),
	)
	return &Scheduler{cron: c, runner: runner, schedule: schedule, logger: logger}
}

// Start registers the run and starts the cron loop. The scheduler stops when
// ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	s.ctx = ctx
	s.mu.Unlock()

	if _, err := s.cron.AddFunc(s.schedule, s.run); err != nil {
		return fmt.Errorf("schedule %q: %w", s.schedule, err)
	}
	s.cron.Start()
	s.logger.Info("scheduler started", "schedule", s.schedule, "location", "UTC")

	go func() {
		<-ctx.Done()
		s.Stop()
	}()
	return nil
}

// Next returns the next activation time, or the zero time before Start.
func (s *Scheduler) Next() time.Time {
	entries := s.cron.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	return entries[0].Next
}

// Stop stops the cron loop and waits for a running job. Safe to call more
// than once.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		s.logger.Info("scheduler stopping")
		<-s.cron.Stop().Done()
	})
}

func (s *Scheduler) run() {
	s.mu.Lock()
	ctx := s.ctx
	s.mu.Unlock()

	if _, err := s.runner.RunOnce(ctx); err != nil {
		s.logger.Error("scheduled run", "err", err)
	}
}
