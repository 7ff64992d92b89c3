package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"maps"
	"strings"

	"github.com/gosimple/slug"

	"github.com/aussiebroadwan/adminhub/internal/adminhub/domain"
	"github.com/aussiebroadwan/adminhub/internal/adminhub/store"
	"github.com/aussiebroadwan/adminhub/pkg/access"
	"github.com/aussiebroadwan/adminhub/pkg/slogx"
)

var (
	ErrCompanyNotFound       = errors.New("company not found")
	ErrInvalidCompanyRequest = errors.New("invalid company request")
)

// CompanyService reads and updates tenant records behind the tenant check.
type CompanyService struct {
	Store    store.Store
	Policy   access.TenantPolicy
	Notifier Notifier
	Clock    Clock
}

// Get returns a company. An empty id means the caller's own company.
func (s *CompanyService) Get(ctx context.Context, caller *access.Identity, id string) (domain.Company, error) {
	log := slogx.FromContext(ctx)

	id = resolveCompanyID(caller, id)
	if id == "" {
		return domain.Company{}, ErrInvalidCompanyRequest
	}
	if !s.Policy.CanAccessCompany(caller, id, access.Read) {
		log.Warn("company read denied", slog.String("company_id", id))
		return domain.Company{}, ErrForbidden
	}

	c, err := s.Store.Companies().GetCompany(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Company{}, ErrCompanyNotFound
		}
		log.Error("failed to fetch company", slog.String("company_id", id), slog.Any("error", err))
		return domain.Company{}, err
	}
	return c, nil
}

// List returns the companies the caller may read.
func (s *CompanyService) List(ctx context.Context, caller *access.Identity) ([]domain.Company, error) {
	all, err := s.Store.Companies().ListCompanies(ctx)
	if err != nil {
		slogx.FromContext(ctx).Error("failed to list companies", slog.Any("error", err))
		return nil, err
	}

	visible := make([]domain.Company, 0, len(all))
	for _, c := range all {
		if s.Policy.CanAccessCompany(caller, c.ID, access.Read) {
			visible = append(visible, c)
		}
	}
	return visible, nil
}

// Update applies patch to a company the caller administers. A change of
// status to inactive or pending emails the company's admin; a failed email
// does not fail the update.
func (s *CompanyService) Update(ctx context.Context, caller *access.Identity, id string, patch domain.CompanyPatch) (domain.Company, error) {
	log := slogx.FromContext(ctx)
	now := s.Clock.now()

	// 1. Resolve target and check write access
	id = resolveCompanyID(caller, id)
	if id == "" || patch.IsEmpty() {
		return domain.Company{}, ErrInvalidCompanyRequest
	}
	if !s.Policy.CanAccessCompany(caller, id, access.Write) {
		log.Warn("company write denied", slog.String("company_id", id))
		return domain.Company{}, ErrForbidden
	}

	// 2. Validate patch fields
	if err := validatePatch(patch); err != nil {
		log.Warn("company update rejected", slog.String("company_id", id), slog.Any("error", err))
		return domain.Company{}, ErrInvalidCompanyRequest
	}

	// 3. Read, apply and write in one transaction
	var before, after domain.Company
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		c, err := tx.Companies().GetCompany(ctx, id)
		if err != nil {
			return err
		}
		before = c
		after = applyPatch(c, patch)
		after.UpdatedAt = now
		return tx.Companies().UpdateCompany(ctx, after)
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Company{}, ErrCompanyNotFound
		}
		log.Error("failed to update company", slog.String("company_id", id), slog.Any("error", err))
		return domain.Company{}, err
	}

	log.Info("company updated",
		slog.String("company_id", id),
		slog.String("updated_by", caller.UserID),
	)

	// 4. Alert on subscription changes
	if s.Notifier != nil && before.Status != after.Status &&
		(after.Status == domain.CompanyInactive || after.Status == domain.CompanyPending) {
		if err := s.Notifier.SendSubscriptionAlert(ctx, after, before.Status); err != nil {
			log.Error("failed to send subscription alert",
				slog.String("company_id", id),
				slog.Any("error", err),
			)
		}
	}
	return after, nil
}

func resolveCompanyID(caller *access.Identity, id string) string {
	id = strings.TrimSpace(id)
	if id == "" && caller != nil {
		return caller.CompanyID
	}
	return id
}

func validatePatch(p domain.CompanyPatch) error {
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return errors.New("name cannot be blank")
	}
	if p.Status != nil && !p.Status.Valid() {
		return errors.New("unknown status")
	}
	if p.ContactEmail != nil && strings.TrimSpace(*p.ContactEmail) != "" {
		if _, err := normalizeEmail(*p.ContactEmail); err != nil {
			return err
		}
	}
	for k, v := range p.Extra {
		if strings.TrimSpace(k) == "" {
			return errors.New("extra keys cannot be blank")
		}
		if !json.Valid(v) {
			return errors.New("extra values must be JSON")
		}
	}
	return nil
}

var jsonNull = []byte("null")

func applyPatch(c domain.Company, p domain.CompanyPatch) domain.Company {
	if p.Name != nil {
		c.Name = strings.TrimSpace(*p.Name)
		c.Slug = slug.Make(c.Name)
	}
	if p.ContactEmail != nil {
		c.ContactEmail = strings.ToLower(strings.TrimSpace(*p.ContactEmail))
	}
	if p.ContactPhone != nil {
		c.ContactPhone = strings.TrimSpace(*p.ContactPhone)
	}
	if p.Address != nil {
		c.Address = strings.TrimSpace(*p.Address)
	}
	if p.Status != nil {
		c.Status = *p.Status
	}
	if len(p.Extra) > 0 {
		merged := maps.Clone(c.Extra)
		if merged == nil {
			merged = make(map[string]json.RawMessage, len(p.Extra))
		}
		for k, v := range p.Extra {
			if bytes.Equal(bytes.TrimSpace(v), jsonNull) {
				delete(merged, k)
				continue
			}
			merged[k] = v
		}
		c.Extra = merged
	}
	return c
}
