package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aussiebroadwan/adminhub/internal/adminhub/domain"
	"github.com/aussiebroadwan/adminhub/internal/adminhub/store"
)

type invitesRepo struct {
	db dbtx
}

const inviteColumns = `id, code, company_id, allowed_domains, status, expires_at,
	used_by, used_at, created_by, created_at, updated_at`

// archivedInviteSelect mirrors inviteColumns. A stale active invite enters
// the archive as expired.
const archivedInviteSelect = `id, code, company_id, allowed_domains,
	CASE WHEN status = 'active' THEN 'expired' ELSE status END, expires_at,
	used_by, used_at, created_by, created_at, updated_at`

// finishedInvitePredicate selects invites eligible for archiving. Bound
// twice: the retention cutoff for finished invites, then for expiry.
const finishedInvitePredicate = `(status IN ('used', 'expired') AND updated_at < ?)
	OR (status = 'active' AND expires_at < ?)`

func (r *invitesRepo) CreateInvite(ctx context.Context, inv domain.Invite) error {
	domains, err := json.Marshal(inv.AllowedDomains)
	if err != nil {
		return fmt.Errorf("encode allowed domains: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO invites (`+inviteColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		inv.ID,
		inv.Code,
		inv.CompanyID,
		string(domains),
		string(inv.Status),
		fmtTime(inv.ExpiresAt),
		mapStringNull(inv.UsedBy),
		fmtOptionalTime(inv.UsedAt),
		inv.CreatedBy,
		fmtTime(inv.CreatedAt),
		fmtTime(inv.UpdatedAt),
	)
	return mapUnique(err, store.ErrAlreadyExists)
}

func (r *invitesRepo) GetInviteByCode(ctx context.Context, code string) (domain.Invite, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+inviteColumns+` FROM invites WHERE code = ?`, code)
	inv, err := scanInvite(row)
	if err != nil {
		return domain.Invite{}, mapNotFound(err)
	}
	return inv, nil
}

func (r *invitesRepo) ListInvites(ctx context.Context) ([]domain.Invite, error) {
	return r.list(ctx, `SELECT `+inviteColumns+` FROM invites ORDER BY created_at, id`)
}

func (r *invitesRepo) ListInvitesByCompany(ctx context.Context, companyID string) ([]domain.Invite, error) {
	return r.list(ctx, `SELECT `+inviteColumns+` FROM invites WHERE company_id = ? ORDER BY created_at, id`, companyID)
}

func (r *invitesRepo) list(ctx context.Context, query string, args ...any) ([]domain.Invite, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Invite
	for rows.Next() {
		inv, err := scanInvite(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, inv)
	}
	return out, rows.Err()
}

func (r *invitesRepo) MarkInviteExpired(ctx context.Context, id string, now time.Time) (bool, error) {
	return affectedOne(r.db.ExecContext(ctx, `
		UPDATE invites SET status = 'expired', updated_at = ?
		WHERE id = ? AND status = 'active'`,
		fmtTime(now), id,
	))
}

func (r *invitesRepo) MarkInviteUsed(ctx context.Context, id, userID string, now time.Time) (bool, error) {
	ts := fmtTime(now)
	return affectedOne(r.db.ExecContext(ctx, `
		UPDATE invites SET status = 'used', used_by = ?, used_at = ?, updated_at = ?
		WHERE id = ? AND status = 'active'`,
		userID, ts, ts, id,
	))
}

func (r *invitesRepo) ArchiveInvites(ctx context.Context, cutoff, now time.Time) (int, error) {
	c := fmtTime(cutoff)

	if _, err := r.db.ExecContext(ctx, `
		INSERT INTO archived_invites (`+inviteColumns+`, archived_at)
		SELECT `+archivedInviteSelect+`, ? FROM invites WHERE `+finishedInvitePredicate,
		fmtTime(now), c, c,
	); err != nil {
		return 0, fmt.Errorf("copy to archive: %w", err)
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM invites WHERE `+finishedInvitePredicate, c, c)
	if err != nil {
		return 0, fmt.Errorf("delete archived: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

func (r *invitesRepo) CountArchivedInvites(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM archived_invites`).Scan(&n)
	return n, err
}

func scanInvite(s rowScanner) (domain.Invite, error) {
	var (
		inv                             domain.Invite
		domains, status                 string
		expiresAt, createdAt, updatedAt string
		usedBy, usedAt                  sql.NullString
	)
	if err := s.Scan(
		&inv.ID,
		&inv.Code,
		&inv.CompanyID,
		&domains,
		&status,
		&expiresAt,
		&usedBy,
		&usedAt,
		&inv.CreatedBy,
		&createdAt,
		&updatedAt,
	); err != nil {
		return domain.Invite{}, err
	}

	if err := json.Unmarshal([]byte(domains), &inv.AllowedDomains); err != nil {
		return domain.Invite{}, fmt.Errorf("decode allowed domains: %w", err)
	}
	inv.Status = domain.InviteStatus(status)
	inv.UsedBy = mapNullString(usedBy)

	var err error
	if inv.ExpiresAt, err = parseTime(expiresAt); err != nil {
		return domain.Invite{}, err
	}
	if inv.CreatedAt, err = parseTime(createdAt); err != nil {
		return domain.Invite{}, err
	}
	if inv.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return domain.Invite{}, err
	}
	if inv.UsedAt, err = parseNullTime(usedAt); err != nil {
		return domain.Invite{}, err
	}
	return inv, nil
}
