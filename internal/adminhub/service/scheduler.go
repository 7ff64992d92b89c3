package service

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/aussiebroadwan/adminhub/internal/adminhub/domain"
)

// DefaultArchiveInterval is the period between scheduled archive passes.
const DefaultArchiveInterval = 24 * time.Hour

// Archiver runs a single archiving pass.
type Archiver interface {
	RunOnce(ctx context.Context, trigger domain.ArchiveTrigger) (domain.ArchiveRun, error)
}

// Scheduler periodically runs the archiver in the background. Starting it
// is idempotent and owned by the application lifecycle.
type Scheduler struct {
	Archiver Archiver
	Logger   *slog.Logger
	Interval time.Duration

	startOnce sync.Once
	stopOnce  sync.Once
	running   atomic.Bool

	// Internal channels for lifecycle management
	stopCh chan struct{}
	doneCh chan struct{}

	mu      sync.RWMutex
	lastRun *domain.ArchiveRun
}

// SchedulerStatus is a snapshot reported by GET /v1/init-server.
type SchedulerStatus struct {
	Running  bool
	Interval time.Duration
	LastRun  *domain.ArchiveRun
}

// NewScheduler creates a scheduler with the given interval.
// If interval is 0 or negative, defaults to DefaultArchiveInterval.
func NewScheduler(archiver Archiver, logger *slog.Logger, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = DefaultArchiveInterval
	}

	return &Scheduler{
		Archiver: archiver,
		Logger:   logger,
		Interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// EnsureStarted launches the background worker the first time it is called
// and does nothing afterwards.
func (s *Scheduler) EnsureStarted() {
	s.startOnce.Do(func() {
		s.running.Store(true)
		go s.run()
		s.Logger.Info("archiving scheduler started", "interval", s.Interval)
	})
}

// Stop gracefully shuts down the background worker.
// Blocks until an in-progress pass has finished. Safe to call when the
// scheduler never started.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		// Consume the start slot so a late EnsureStarted stays a no-op.
		started := true
		s.startOnce.Do(func() { started = false })

		close(s.stopCh)
		if started {
			<-s.doneCh
		}
		s.running.Store(false)
		s.Logger.Info("archiving scheduler stopped")
	})
}

// Running reports whether the background worker is active.
func (s *Scheduler) Running() bool { return s != nil && s.running.Load() }

// Status returns the scheduler state and the last pass it observed.
func (s *Scheduler) Status() SchedulerStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := SchedulerStatus{Running: s.Running(), Interval: s.Interval}
	if s.lastRun != nil {
		run := *s.lastRun
		st.LastRun = &run
	}
	return st
}

// Trigger runs one manual pass immediately and records it as the last run.
func (s *Scheduler) Trigger(ctx context.Context) (domain.ArchiveRun, error) {
	run, err := s.Archiver.RunOnce(ctx, domain.TriggerManual)
	s.record(run)
	return run, err
}

// RecordLastRun seeds the status with a run loaded from storage.
func (s *Scheduler) RecordLastRun(run domain.ArchiveRun) { s.record(run) }

func (s *Scheduler) record(run domain.ArchiveRun) {
	if run.ID == "" {
		return
	}
	s.mu.Lock()
	s.lastRun = &run
	s.mu.Unlock()
}

// run is the main background worker loop.
func (s *Scheduler) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	// Run immediately on startup
	s.tick()

	for {
		select {
		case <-ticker.C:
			s.tick()
		case <-s.stopCh:
			return
		}
	}
}

func (s *Scheduler) tick() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Abort a long pass when Stop is called.
	go func() {
		select {
		case <-s.stopCh:
			cancel()
		case <-ctx.Done():
		}
	}()

	run, err := s.Archiver.RunOnce(ctx, domain.TriggerSchedule)
	if err != nil {
		s.Logger.Error("scheduled archive run failed", "error", err)
	}
	s.record(run)
}
