package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/aussiebroadwan/adminhub/internal/adminhub/domain"
	"github.com/aussiebroadwan/adminhub/internal/adminhub/store"
	"github.com/aussiebroadwan/adminhub/pkg/access"
	"github.com/aussiebroadwan/adminhub/pkg/slogx"
)

var (
	ErrPolicyNotFound        = errors.New("extension policy not found")
	ErrPolicyVersionConflict = errors.New("extension policy version conflict")
	ErrInvalidPolicy         = errors.New("extension policy must be a JSON object")
)

// ExtensionPolicyService stores versioned extension policies. Every write
// creates a new version; reads return the highest one.
type ExtensionPolicyService struct {
	Store  store.Store
	Policy access.TenantPolicy
	Clock  Clock
}

func (s *ExtensionPolicyService) Get(ctx context.Context, caller *access.Identity, companyID string) (domain.ExtensionPolicy, error) {
	log := slogx.FromContext(ctx)

	companyID = resolveCompanyID(caller, companyID)
	if companyID == "" || !s.Policy.CanAccessCompany(caller, companyID, access.Read) {
		return domain.ExtensionPolicy{}, ErrForbidden
	}

	p, err := s.Store.ExtensionPolicies().GetCurrentPolicy(ctx, companyID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.ExtensionPolicy{}, ErrPolicyNotFound
		}
		log.Error("failed to fetch extension policy", slog.String("company_id", companyID), slog.Any("error", err))
		return domain.ExtensionPolicy{}, err
	}
	return p, nil
}

// Put stores document as the next version. When expectedVersion is set it
// must match the current version, zero meaning no policy exists yet.
func (s *ExtensionPolicyService) Put(
	ctx context.Context,
	caller *access.Identity,
	companyID string,
	document json.RawMessage,
	expectedVersion *int,
) (domain.ExtensionPolicy, error) {
	log := slogx.FromContext(ctx)
	now := s.Clock.now()

	// 1. Check write access
	companyID = resolveCompanyID(caller, companyID)
	if companyID == "" || !s.Policy.CanAccessCompany(caller, companyID, access.Write) {
		log.Warn("extension policy write denied", slog.String("company_id", companyID))
		return domain.ExtensionPolicy{}, ErrForbidden
	}

	// 2. The document is opaque but must be an object
	trimmed := bytes.TrimSpace(document)
	if len(trimmed) == 0 || trimmed[0] != '{' || !json.Valid(trimmed) {
		return domain.ExtensionPolicy{}, ErrInvalidPolicy
	}

	next := domain.ExtensionPolicy{
		CompanyID: companyID,
		Document:  json.RawMessage(trimmed),
		UpdatedBy: caller.UserID,
		UpdatedAt: now,
	}

	// 3. Read the current version and insert the next one
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		current := 0
		cur, err := tx.ExtensionPolicies().GetCurrentPolicy(ctx, companyID)
		switch {
		case err == nil:
			current = cur.Version
		case errors.Is(err, store.ErrNotFound):
		default:
			return err
		}

		if expectedVersion != nil && *expectedVersion != current {
			return ErrPolicyVersionConflict
		}

		next.Version = current + 1
		if err := tx.ExtensionPolicies().CreatePolicyVersion(ctx, next); err != nil {
			if errors.Is(err, store.ErrConflict) {
				return ErrPolicyVersionConflict
			}
			return err
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrPolicyVersionConflict) {
			log.Warn("extension policy version conflict", slog.String("company_id", companyID))
			return domain.ExtensionPolicy{}, err
		}
		log.Error("failed to store extension policy", slog.String("company_id", companyID), slog.Any("error", err))
		return domain.ExtensionPolicy{}, err
	}

	log.Info("extension policy updated",
		slog.String("company_id", companyID),
		slog.Int("version", next.Version),
	)
	return next, nil
}
