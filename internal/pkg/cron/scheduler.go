package cron

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// task is one registered maintenance loop.
type task struct {
	name  string
	every time.Duration
	run   func(ctx context.Context) error
}

// Scheduler drives the in-process maintenance loops. Each registered task
// fires once as soon as Start is called and then on its own interval until
// Stop; a failing run is logged and the loop keeps going, so one bad sweep
// never kills the schedule.
type Scheduler struct {
	mu     sync.Mutex
	tasks  []task
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewScheduler() *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{ctx: ctx, cancel: cancel}
}

// Add registers a task. Tasks added after Start are not picked up.
func (s *Scheduler) Add(name string, every time.Duration, run func(ctx context.Context) error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tasks = append(s.tasks, task{name: name, every: every, run: run})
	slog.Info("Maintenance task registered", "task", name, "every", every)
}

// Start launches one goroutine per registered task.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range s.tasks {
		s.wg.Add(1)
		go s.loop(t)
	}
	slog.Info("Maintenance scheduler started", "tasks", len(s.tasks))
}

// Stop cancels every task loop and waits for in-flight runs to finish.
func (s *Scheduler) Stop() {
	s.cancel()
	s.wg.Wait()
	slog.Info("Maintenance scheduler stopped")
}

func (s *Scheduler) loop(t task) {
	defer s.wg.Done()

	ticker := time.NewTicker(t.every)
	defer ticker.Stop()

	s.fire(t)
	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.fire(t)
		}
	}
}

func (s *Scheduler) fire(t task) {
	started := time.Now()
	if err := t.run(s.ctx); err != nil {
		slog.Error("Maintenance task failed", "task", t.name, "error", err, "took", time.Since(started))
		return
	}
	slog.Debug("Maintenance task finished", "task", t.name, "took", time.Since(started))
}

// RunAll fires every registered task once, synchronously, and keeps going
// past failures. The errors are returned joined so callers see all of them.
func (s *Scheduler) RunAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var errs []error
	for _, t := range s.tasks {
		if err := t.run(ctx); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", t.name, err))
		}
	}
	return errors.Join(errs...)
}
