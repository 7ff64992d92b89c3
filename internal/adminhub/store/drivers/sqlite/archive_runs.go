package sqlite

import (
	"context"
	"database/sql"

	"github.com/aussiebroadwan/adminhub/internal/adminhub/domain"
	"github.com/aussiebroadwan/adminhub/internal/adminhub/store"
)

type archiveRunsRepo struct {
	db dbtx
}

func (r *archiveRunsRepo) CreateArchiveRun(ctx context.Context, run domain.ArchiveRun) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO archive_runs (id, trigger_kind, started_at, finished_at, archived_invites, purged_resets, error)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID, string(run.Trigger), fmtTime(run.StartedAt), fmtOptionalTime(run.FinishedAt),
		run.ArchivedInvites, run.PurgedResets, run.Error,
	)
	return err
}

func (r *archiveRunsRepo) FinishArchiveRun(ctx context.Context, run domain.ArchiveRun) error {
	ok, err := affectedOne(r.db.ExecContext(ctx, `
		UPDATE archive_runs
		SET finished_at = ?, archived_invites = ?, purged_resets = ?, error = ?
		WHERE id = ?`,
		fmtOptionalTime(run.FinishedAt), run.ArchivedInvites, run.PurgedResets, run.Error, run.ID,
	))
	if err != nil {
		return err
	}
	if !ok {
		return store.ErrNotFound
	}
	return nil
}

func (r *archiveRunsRepo) LatestArchiveRun(ctx context.Context) (domain.ArchiveRun, error) {
	var (
		run        domain.ArchiveRun
		trigger    string
		startedAt  string
		finishedAt sql.NullString
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT id, trigger_kind, started_at, finished_at, archived_invites, purged_resets, error
		FROM archive_runs
		ORDER BY started_at DESC, id DESC
		LIMIT 1`,
	).Scan(&run.ID, &trigger, &startedAt, &finishedAt, &run.ArchivedInvites, &run.PurgedResets, &run.Error)
	if err != nil {
		return domain.ArchiveRun{}, mapNotFound(err)
	}

	run.Trigger = domain.ArchiveTrigger(trigger)
	if run.StartedAt, err = parseTime(startedAt); err != nil {
		return domain.ArchiveRun{}, err
	}
	if run.FinishedAt, err = parseNullTime(finishedAt); err != nil {
		return domain.ArchiveRun{}, err
	}
	return run, nil
}
