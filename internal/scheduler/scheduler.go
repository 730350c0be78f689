// Package scheduler runs background tasks on fixed intervals.
//
// Each task runs on its own goroutine. A failed run is logged and retried on
// the next tick; it never stops the scheduler.
package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/KirkDiggler/rpg-arena/internal/errors"
)

// Task is one unit of periodic work. RunOnce must be safe to call again
// after a failure or while a manual trigger runs the same work.
type Task interface {
	Name() string
	RunOnce(ctx context.Context) error
}

// Job schedules a task
type Job struct {
	Task     Task
	Interval time.Duration
	// RunOnStart runs the task once before the first tick
	RunOnStart bool
}

// Config holds the jobs to run
type Config struct {
	Jobs []Job
}

// Validate ensures every job is runnable
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	for i, job := range c.Jobs {
		if job.Task == nil {
			vb.Fieldf("jobs", "job %d has no task", i)
			continue
		}
		if job.Interval <= 0 {
			vb.Fieldf("jobs", "%s interval must be positive", job.Task.Name())
		}
	}

	return vb.Build()
}

// Scheduler owns the task goroutines
type Scheduler struct {
	jobs []Job

	mu     sync.Mutex
	cancel context.CancelFunc
	group  *errgroup.Group
}

// New creates a scheduler for the configured jobs
func New(cfg *Config) (*Scheduler, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	return &Scheduler{jobs: cfg.Jobs}, nil
}

// Start launches every job. The jobs stop when ctx is cancelled or Stop is called.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.group != nil {
		return errors.FailedPrecondition("scheduler already started")
	}

	runCtx, cancel := context.WithCancel(ctx)
	group, runCtx := errgroup.WithContext(runCtx)
	for _, job := range s.jobs {
		group.Go(func() error {
			run(runCtx, job)
			return nil
		})
	}

	s.cancel = cancel
	s.group = group
	slog.InfoContext(ctx, "scheduler started", "jobs", len(s.jobs))
	return nil
}

// Stop cancels every job and waits for in-flight runs to return
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	cancel, group := s.cancel, s.group
	s.cancel, s.group = nil, nil
	s.mu.Unlock()

	if group == nil {
		return nil
	}
	cancel()
	return group.Wait()
}

func run(ctx context.Context, job Job) {
	name := job.Task.Name()
	if job.RunOnStart {
		runOnce(ctx, name, job.Task)
	}

	ticker := time.NewTicker(job.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.DebugContext(ctx, "scheduled task stopped", "task", name)
			return
		case <-ticker.C:
			runOnce(ctx, name, job.Task)
		}
	}
}

func runOnce(ctx context.Context, name string, task Task) {
	start := time.Now()
	err := task.RunOnce(ctx)
	if err != nil && ctx.Err() == nil {
		slog.ErrorContext(ctx, "scheduled task failed",
			"task", name,
			"error", err,
			"duration", time.Since(start))
	}
}
