package cron

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/robfig/cron/v3"
)

// Scheduler manages periodic job execution using cron expressions.
// A tick is skipped while the previous run of the same job is still going.
type Scheduler struct {
	mu     sync.Mutex
	cron   *cron.Cron
	jobs   map[string]Job
	order  []string
	locks  map[string]*sync.Mutex
	logger *slog.Logger
	cancel context.CancelFunc
}

// NewScheduler creates a scheduler. Jobs must be registered before Start().
func NewScheduler(logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		jobs:   make(map[string]Job),
		locks:  make(map[string]*sync.Mutex),
		logger: logger,
	}
}

// RegisterJob adds a job to the scheduler. Must be called before Start().
// Returns an error if a job with the same name is already registered.
func (s *Scheduler) RegisterJob(j Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	name := j.Name()
	if _, exists := s.jobs[name]; exists {
		return fmt.Errorf("cron: duplicate job name %q", name)
	}

	s.jobs[name] = j
	s.order = append(s.order, name)
	s.locks[name] = &sync.Mutex{}
	return nil
}

// Jobs returns the registered job names in registration order.
func (s *Scheduler) Jobs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.order...)
}

// Start initializes the cron scheduler and begins executing registered jobs.
// Returns an error if any job has an invalid schedule expression.
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, cancel := context.WithCancel(context.Background())
	c := cron.New(cron.WithParser(parser))

	for _, name := range s.order {
		job := s.jobs[name]
		if _, err := c.AddFunc(job.Schedule(), func() { s.runOnce(ctx, job) }); err != nil {
			cancel()
			return fmt.Errorf("cron: invalid schedule for job %q: %w", name, err)
		}
	}

	s.cancel, s.cron = cancel, c
	c.Start()
	s.logger.Info("cron: scheduler started", "jobs", len(s.order))
	return nil
}

// RunNow executes the named job immediately, outside its schedule. It
// reports false if the job is unknown or already running.
func (s *Scheduler) RunNow(ctx context.Context, name string) bool {
	s.mu.Lock()
	job, ok := s.jobs[name]
	s.mu.Unlock()
	if !ok {
		return false
	}
	return s.runOnce(ctx, job)
}

func (s *Scheduler) runOnce(ctx context.Context, job Job) bool {
	s.mu.Lock()
	lock := s.locks[job.Name()]
	s.mu.Unlock()

	if !lock.TryLock() {
		s.logger.Warn("cron: job still running, skipping tick", "job", job.Name())
		return false
	}
	defer lock.Unlock()

	s.logger.Debug("cron: job started", "job", job.Name())
	if err := job.Run(ctx); err != nil {
		s.logger.Error("cron: job failed", "job", job.Name(), "error", err)
	} else {
		s.logger.Debug("cron: job completed", "job", job.Name())
	}
	return true
}

// Stop gracefully shuts down the scheduler, waiting for in-flight jobs.
func (s *Scheduler) Stop(_ context.Context) error {
	s.mu.Lock()
	c, cancel := s.cron, s.cancel
	s.cron, s.cancel = nil, nil
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if c != nil {
		<-c.Stop().Done()
		s.logger.Info("cron: scheduler stopped")
	}
	return nil
}
