package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aussiebroadwan/adminhub/internal/adminhub/domain"
	"github.com/aussiebroadwan/adminhub/internal/adminhub/metrics"
	"github.com/aussiebroadwan/adminhub/internal/adminhub/store"
	"github.com/aussiebroadwan/adminhub/pkg/idx"
)

// DefaultArchiveRetention is how long finished invites stay in the live table.
const DefaultArchiveRetention = 30 * 24 * time.Hour

// ArchivingService moves finished invites into the archive and purges spent
// password reset tokens. Passes are serialized.
type ArchivingService struct {
	Store     store.Store
	Logger    *slog.Logger
	Metrics   *metrics.Metrics
	Retention time.Duration
	Clock     Clock

	mu sync.Mutex
}

// RunOnce performs one archiving pass and records it as an ArchiveRun. A
// concurrent call waits for the running pass to finish.
func (s *ArchivingService) RunOnce(ctx context.Context, trigger domain.ArchiveTrigger) (domain.ArchiveRun, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.Clock.now()
	retention := s.Retention
	if retention <= 0 {
		retention = DefaultArchiveRetention
	}
	cutoff := now.Add(-retention)

	run := domain.ArchiveRun{
		ID:        idx.NewAt(now).String(),
		Trigger:   trigger,
		StartedAt: now,
	}
	if err := s.Store.ArchiveRuns().CreateArchiveRun(ctx, run); err != nil {
		s.Logger.Error("failed to record archive run", "error", err)
		s.Metrics.ArchiveRun(string(trigger), 0, err)
		return domain.ArchiveRun{}, fmt.Errorf("record archive run: %w", err)
	}

	s.Logger.Info("starting archive run",
		"run_id", run.ID,
		"trigger", string(trigger),
		"cutoff", cutoff,
	)

	// Invites and reset tokens are cleaned together; a failure leaves both
	// untouched so the next pass starts from the same state.
	runErr := s.Store.WithTx(ctx, func(tx store.Tx) error {
		archived, err := tx.Invites().ArchiveInvites(ctx, cutoff, now)
		if err != nil {
			return fmt.Errorf("archive invites: %w", err)
		}
		purged, err := tx.PasswordResets().DeleteStalePasswordResets(ctx, now)
		if err != nil {
			return fmt.Errorf("purge password resets: %w", err)
		}
		run.ArchivedInvites = archived
		run.PurgedResets = purged
		return nil
	})

	finished := s.Clock.now()
	run.FinishedAt = &finished
	if runErr != nil {
		run.ArchivedInvites, run.PurgedResets = 0, 0
		run.Error = runErr.Error()
	}

	if err := s.Store.ArchiveRuns().FinishArchiveRun(ctx, run); err != nil {
		s.Logger.Error("failed to finish archive run", "run_id", run.ID, "error", err)
	}
	s.Metrics.ArchiveRun(string(trigger), run.ArchivedInvites, runErr)

	if runErr != nil {
		s.Logger.Error("archive run failed", "run_id", run.ID, "error", runErr)
		return run, runErr
	}

	s.Logger.Info("archive run completed",
		"run_id", run.ID,
		"archived_invites", run.ArchivedInvites,
		"purged_resets", run.PurgedResets,
	)
	return run, nil
}

// LatestRun returns the most recent pass, if any.
func (s *ArchivingService) LatestRun(ctx context.Context) (domain.ArchiveRun, bool, error) {
	run, err := s.Store.ArchiveRuns().LatestArchiveRun(ctx)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.ArchiveRun{}, false, nil
		}
		return domain.ArchiveRun{}, false, err
	}
	return run, true, nil
}
