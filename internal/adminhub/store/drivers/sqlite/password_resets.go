package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/adminhub/internal/adminhub/domain"
	"github.com/aussiebroadwan/adminhub/internal/adminhub/store"
)

type passwordResetsRepo struct {
	db dbtx
}

func (r *passwordResetsRepo) CreatePasswordReset(ctx context.Context, pr domain.PasswordReset) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO password_resets (id, user_id, token_hash, expires_at, used_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		pr.ID, pr.UserID, pr.TokenHash, fmtTime(pr.ExpiresAt), fmtOptionalTime(pr.UsedAt), fmtTime(pr.CreatedAt),
	)
	return mapUnique(err, store.ErrAlreadyExists)
}

func (r *passwordResetsRepo) GetPasswordResetByTokenHash(ctx context.Context, hash string) (domain.PasswordReset, error) {
	var (
		pr                   domain.PasswordReset
		expiresAt, createdAt string
		usedAt               sql.NullString
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, token_hash, expires_at, used_at, created_at
		FROM password_resets WHERE token_hash = ?`, hash,
	).Scan(&pr.ID, &pr.UserID, &pr.TokenHash, &expiresAt, &usedAt, &createdAt)
	if err != nil {
		return domain.PasswordReset{}, mapNotFound(err)
	}

	if pr.ExpiresAt, err = parseTime(expiresAt); err != nil {
		return domain.PasswordReset{}, err
	}
	if pr.CreatedAt, err = parseTime(createdAt); err != nil {
		return domain.PasswordReset{}, err
	}
	if pr.UsedAt, err = parseNullTime(usedAt); err != nil {
		return domain.PasswordReset{}, err
	}
	return pr, nil
}

func (r *passwordResetsRepo) MarkPasswordResetUsed(ctx context.Context, id string, now time.Time) (bool, error) {
	return affectedOne(r.db.ExecContext(ctx,
		`UPDATE password_resets SET used_at = ? WHERE id = ? AND used_at IS NULL`,
		fmtTime(now), id,
	))
}

func (r *passwordResetsRepo) DeleteStalePasswordResets(ctx context.Context, cutoff time.Time) (int, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM password_resets WHERE used_at IS NOT NULL OR expires_at < ?`,
		fmtTime(cutoff),
	)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}
