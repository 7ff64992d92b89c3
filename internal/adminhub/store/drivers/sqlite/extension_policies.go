package sqlite

import (
	"context"
	"encoding/json"

	"github.com/aussiebroadwan/adminhub/internal/adminhub/domain"
	"github.com/aussiebroadwan/adminhub/internal/adminhub/store"
)

type policiesRepo struct {
	db dbtx
}

func (r *policiesRepo) GetCurrentPolicy(ctx context.Context, companyID string) (domain.ExtensionPolicy, error) {
	var (
		p         domain.ExtensionPolicy
		doc       string
		updatedAt string
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT company_id, version, document, updated_by, updated_at
		FROM extension_policies
		WHERE company_id = ?
		ORDER BY version DESC
		LIMIT 1`, companyID,
	).Scan(&p.CompanyID, &p.Version, &doc, &p.UpdatedBy, &updatedAt)
	if err != nil {
		return domain.ExtensionPolicy{}, mapNotFound(err)
	}

	p.Document = json.RawMessage(doc)
	if p.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return domain.ExtensionPolicy{}, err
	}
	return p, nil
}

func (r *policiesRepo) CreatePolicyVersion(ctx context.Context, p domain.ExtensionPolicy) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO extension_policies (company_id, version, document, updated_by, updated_at)
		VALUES (?, ?, ?, ?, ?)`,
		p.CompanyID, p.Version, string(p.Document), p.UpdatedBy, fmtTime(p.UpdatedAt),
	)
	return mapUnique(err, store.ErrConflict)
}
