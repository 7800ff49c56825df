package scheduler

import (
	"context"
	"time"

	"github.com/x1thexxx-lgtm/pinger/pkg/config"
	"github.com/x1thexxx-lgtm/pinger/pkg/logging"
)

// TaskRunner defines background work to execute.
type TaskRunner interface {
	Run(ctx context.Context) error
}

// RunnerFunc adapts a function to TaskRunner.
type RunnerFunc func(ctx context.Context) error

// Run implements TaskRunner.
func (f RunnerFunc) Run(ctx context.Context) error { return f(ctx) }

// Scheduler triggers identity reports based on config.
type Scheduler struct {
	cfg    config.SchedulerConfig
	runner TaskRunner
	log    *logging.Logger
}

// New creates scheduler.
func New(cfg config.SchedulerConfig, runner TaskRunner, log *logging.Logger) *Scheduler {
	return &Scheduler{cfg: cfg, runner: runner, log: log}
}

// Start runs the task once, then on every tick until ctx is done.
// With the scheduler disabled the task runs exactly once and its error is
// returned; scheduled runs only log failures.
func (s *Scheduler) Start(ctx context.Context) error {
	if !s.cfg.Enabled {
		s.log.Debugf("scheduler disabled, running once")
		return s.runner.Run(ctx)
	}
	interval, err := time.ParseDuration(s.cfg.Tick)
	if err != nil {
		s.log.Errorf("invalid scheduler tick: %v", err)
		return err
	}
	s.log.Infof("reporting every %s", interval)
	s.runOnce(ctx)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context) {
	if err := s.runner.Run(ctx); err != nil {
		s.log.Errorf("scheduled run error: %v", err)
	}
}
