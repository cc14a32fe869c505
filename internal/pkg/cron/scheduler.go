package cron

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Job is a named function executed on a fixed interval.
type Job struct {
	Name     string
	Interval time.Duration
	Fn       func(ctx context.Context) error
}

// Scheduler runs background jobs on fixed intervals. Each job gets its own
// goroutine and ticker; Stop cancels them all and waits for completion.
type Scheduler struct {
	mu     sync.Mutex
	jobs   []Job
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewScheduler() *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{ctx: ctx, cancel: cancel}
}

// AddJob registers a job. Must be called before Start.
func (s *Scheduler) AddJob(name string, interval time.Duration, fn func(ctx context.Context) error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.jobs = append(s.jobs, Job{Name: name, Interval: interval, Fn: fn})
	slog.Info("scheduled job registered", "job", name, "interval", interval)
}

// Start launches one goroutine per registered job. Every job also runs once
// immediately, so a restarted process catches up without waiting a full tick.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, job := range s.jobs {
		s.wg.Add(1)
		go s.loop(job)
	}

	slog.Info("scheduler started", "jobs", len(s.jobs))
}

// Stop cancels all job loops and blocks until they return.
func (s *Scheduler) Stop() {
	s.cancel()
	s.wg.Wait()
	slog.Info("scheduler stopped")
}

func (s *Scheduler) loop(job Job) {
	defer s.wg.Done()

	ticker := time.NewTicker(job.Interval)
	defer ticker.Stop()

	s.run(job)

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.run(job)
		}
	}
}

func (s *Scheduler) run(job Job) {
	start := time.Now()
	if err := job.Fn(s.ctx); err != nil {
		slog.Error("scheduled job failed", "job", job.Name, "error", err, "duration", time.Since(start))
		return
	}
	slog.Debug("scheduled job completed", "job", job.Name, "duration", time.Since(start))
}

// RunOnce executes every registered job a single time with the given
// context, synchronously. Used in tests and one-shot maintenance runs.
func (s *Scheduler) RunOnce(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, job := range s.jobs {
		if err := job.Fn(ctx); err != nil {
			slog.Error("scheduled job failed", "job", job.Name, "error", err)
		}
	}
}
