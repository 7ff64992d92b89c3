package sqlite

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aussiebroadwan/adminhub/internal/adminhub/domain"
	"github.com/aussiebroadwan/adminhub/internal/adminhub/store"
)

type companiesRepo struct {
	db dbtx
}

const companyColumns = `id, name, slug, contact_email, contact_phone, address, status,
	admin_email, admin_user_id, extra, created_at, updated_at`

func (r *companiesRepo) CreateCompany(ctx context.Context, c domain.Company) error {
	extra, err := encodeExtra(c.Extra)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO companies (`+companyColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.Name, c.Slug, c.ContactEmail, c.ContactPhone, c.Address, string(c.Status),
		c.AdminEmail, c.AdminUserID, extra, fmtTime(c.CreatedAt), fmtTime(c.UpdatedAt),
	)
	return mapUnique(err, store.ErrAlreadyExists)
}

func (r *companiesRepo) GetCompany(ctx context.Context, id string) (domain.Company, error) {
	c, err := scanCompany(r.db.QueryRowContext(ctx, `SELECT `+companyColumns+` FROM companies WHERE id = ?`, id))
	if err != nil {
		return domain.Company{}, mapNotFound(err)
	}
	return c, nil
}

func (r *companiesRepo) ListCompanies(ctx context.Context) ([]domain.Company, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+companyColumns+` FROM companies ORDER BY name, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Company
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *companiesRepo) UpdateCompany(ctx context.Context, c domain.Company) error {
	extra, err := encodeExtra(c.Extra)
	if err != nil {
		return err
	}
	ok, err := affectedOne(r.db.ExecContext(ctx, `
		UPDATE companies SET
			name = ?, slug = ?, contact_email = ?, contact_phone = ?, address = ?,
			status = ?, admin_email = ?, admin_user_id = ?, extra = ?, updated_at = ?
		WHERE id = ?`,
		c.Name, c.Slug, c.ContactEmail, c.ContactPhone, c.Address,
		string(c.Status), c.AdminEmail, c.AdminUserID, extra, fmtTime(c.UpdatedAt),
		c.ID,
	))
	if err != nil {
		return err
	}
	if !ok {
		return store.ErrNotFound
	}
	return nil
}

func encodeExtra(extra map[string]json.RawMessage) (string, error) {
	if len(extra) == 0 {
		return "{}", nil
	}
	b, err := json.Marshal(extra)
	if err != nil {
		return "", fmt.Errorf("encode company extra: %w", err)
	}
	return string(b), nil
}

func scanCompany(s rowScanner) (domain.Company, error) {
	var (
		c                    domain.Company
		status, extra        string
		createdAt, updatedAt string
	)
	if err := s.Scan(
		&c.ID, &c.Name, &c.Slug, &c.ContactEmail, &c.ContactPhone, &c.Address, &status,
		&c.AdminEmail, &c.AdminUserID, &extra, &createdAt, &updatedAt,
	); err != nil {
		return domain.Company{}, err
	}
	c.Status = domain.CompanyStatus(status)

	if err := json.Unmarshal([]byte(extra), &c.Extra); err != nil {
		return domain.Company{}, fmt.Errorf("decode company extra: %w", err)
	}

	var err error
	if c.CreatedAt, err = parseTime(createdAt); err != nil {
		return domain.Company{}, err
	}
	if c.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return domain.Company{}, err
	}
	return c, nil
}
