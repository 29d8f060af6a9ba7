// Package scheduler drives daily generation for every active profile, once
// on demand or on a cron schedule.
package scheduler

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/kaenlabs/parallel-self-simulator/internal/model"
	"github.com/kaenlabs/parallel-self-simulator/internal/store"
)

// DefaultWorkers is the parallelism used when none is configured.
const DefaultWorkers = 4

// ProfileLister lists profiles to process.
type ProfileLister interface {
	ListProfiles(ctx context.Context, p store.ListProfilesParams) ([]model.Profile, error)
}

// DayGenerator generates a profile's next day.
type DayGenerator interface {
	Today(ctx context.Context, profileID string) (*model.Event, error)
}

// Failure records one profile that could not be processed.
type Failure struct {
	ProfileID string `json:"profile_id"`
	Error     string `json:"error"`
}

// Result tallies one run.
type Result struct {
	Total     int           `json:"total"`
	Succeeded int           `json:"succeeded"`
	Failed    int           `json:"failed"`
	Failures  []Failure     `json:"failures,omitempty"`
	Duration  time.Duration `json:"duration"`
}

// Runner processes every active profile once per run.
type Runner struct {
	profiles ProfileLister
	gen      DayGenerator
	workers  int
	metrics  *Metrics
	logger   *slog.Logger
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithWorkers bounds how many profiles are generated at once.
func WithWorkers(n int) RunnerOption {
	return func(r *Runner) {
		if n > 0 {
			r.workers = n
		}
	}
}

// WithMetrics records run outcomes in m.
func WithMetrics(m *Metrics) RunnerOption {
	return func(r *Runner) { r.metrics = m }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) RunnerOption {
	return func(r *Runner) { r.logger = l }
}

// NewRunner creates a Runner.
func NewRunner(profiles ProfileLister, gen DayGenerator, opts ...RunnerOption) *Runner {
	r := &Runner{
		profiles: profiles,
		gen:      gen,
		workers:  DefaultWorkers,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RunOnce generates the next day for every ACTIVE profile. Profiles are
// independent: a failure is tallied and the rest continue. The error is
// non-nil only when the profiles could not be listed.
func (r *Runner) RunOnce(ctx context.Context) (*Result, error) {
	start := time.Now()
	profiles, err := r.profiles.ListProfiles(ctx, store.ListProfilesParams{Status: model.StatusActive})
	if err != nil {
		return nil, err
	}
	r.logger.Info("scheduled run started", "profiles", len(profiles), "workers", r.workers)

	var (
		succeeded atomic.Int64
		mu        sync.Mutex
		failures  []Failure
	)

	var g errgroup.Group
	g.SetLimit(r.workers)
	for _, p := range profiles {
		p := p
		g.Go(func() error {
			ev, err := r.gen.Today(ctx, p.ID)
			if err != nil {
				r.logger.Error("scheduled generation failed", "profile", p.ID, "err", err)
				r.metrics.observeProfile(false)
				mu.Lock()
				failures = append(failures, Failure{ProfileID: p.ID, Error: err.Error()})
				mu.Unlock()
				return nil
			}
			r.logger.Debug("scheduled generation", "profile", p.ID, "day", ev.DayNumber)
			r.metrics.observeProfile(true)
			succeeded.Add(1)
			return nil
		})
	}
	g.Wait()

	sort.Slice(failures, func(i, j int) bool { return failures[i].ProfileID < failures[j].ProfileID })
	finished := time.Now()
	res := &Result{
		Total:     len(profiles),
		Succeeded: int(succeeded.Load()),
		Failed:    len(failures),
		Failures:  failures,
		Duration:  finished.Sub(start),
	}
	r.metrics.observeRun(res.Duration, finished)
	r.logger.Info("scheduled run finished",
		"total", res.Total, "succeeded", res.Succeeded, "failed", res.Failed, "duration", res.Duration)
	return res, nil
}
