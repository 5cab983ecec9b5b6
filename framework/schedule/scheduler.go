// Package schedule runs cron jobs against the container. Every run gets its
// own request generation, so per-request services are fresh for each run.
package schedule

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/km-arc/go-container/framework/container"
)

// Job is one unit of scheduled work.
type Job func(ctx context.Context, c *container.Container) error

// Scheduler wraps a cron runner bound to a container.
type Scheduler struct {
	app    *container.Container
	logger *zap.Logger
	cron   *cron.Cron

	mu      sync.Mutex
	entries map[string]cron.EntryID
	running bool
}

// New creates a scheduler that parses specs with a leading seconds field.
func New(app *container.Container, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		app:    app,
		logger: logger,
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithLocation(time.UTC),
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
		entries: make(map[string]cron.EntryID),
	}
}

// Call schedules job under name. Scheduling a name twice replaces the first job.
//
//	s.Call("heartbeat", "*/30 * * * * *", func(ctx context.Context, c *container.Container) error {
//	    logger, err := container.Resolve[services.Logger](c, services.LoggerKey)
//	    ...
//	})
func (s *Scheduler) Call(name, spec string, job Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.cron.AddFunc(spec, func() {
		_ = s.Run(context.Background(), name, job)
	})
	if err != nil {
		return fmt.Errorf("schedule: job %q: %w", name, err)
	}
	if old, ok := s.entries[name]; ok {
		s.cron.Remove(old)
	}
	s.entries[name] = id
	return nil
}

// Run executes job once in a new request generation and logs the outcome.
func (s *Scheduler) Run(ctx context.Context, name string, job Job) error {
	return s.app.RunRequest(func(requestID string) error {
		start := time.Now()
		log := s.logger.With(zap.String("job", name), zap.String("request_id", requestID))

		err := job(ctx, s.app)
		if err != nil {
			log.Error("scheduled job failed", zap.Error(err), zap.Duration("took", time.Since(start)))
			return err
		}
		log.Debug("scheduled job finished", zap.Duration("took", time.Since(start)))
		return nil
	})
}

// Jobs returns the names of the scheduled jobs.
func (s *Scheduler) Jobs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.entries))
	for name := range s.entries {
		out = append(out, name)
	}
	return out
}

// Start runs the cron loop in its own goroutine.
func (s *Scheduler) Start() {
	s.mu.Lock()
	s.running = true
	s.mu.Unlock()
	s.cron.Start()
}

// Running reports whether the cron loop is started and not yet stopped.
func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Stop halts the cron loop and waits for running jobs or ctx.
func (s *Scheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	s.running = false
	s.mu.Unlock()

	done := s.cron.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
