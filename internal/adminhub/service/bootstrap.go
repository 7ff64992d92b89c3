package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/gosimple/slug"

	"github.com/aussiebroadwan/adminhub/internal/adminhub/domain"
	"github.com/aussiebroadwan/adminhub/internal/adminhub/store"
	"github.com/aussiebroadwan/adminhub/pkg/access"
	"github.com/aussiebroadwan/adminhub/pkg/cryptox"
	"github.com/aussiebroadwan/adminhub/pkg/idx"
	"github.com/aussiebroadwan/adminhub/pkg/slogx"
)

var (
	ErrBootstrapDisabled       = errors.New("bootstrap is not enabled")
	ErrBootstrapAlready        = errors.New("system already bootstrapped")
	ErrBootstrapUnauthorized   = errors.New("unauthorized bootstrap attempt")
	ErrInvalidBootstrapRequest = errors.New("invalid bootstrap request")
)

type BootstrapService struct {
	Store store.Store
	Token string // Pre-configured bootstrap token, empty disables bootstrap
	Clock Clock
}

// BootstrapResult identifies the records created by Bootstrap.
type BootstrapResult struct {
	CompanyID   string
	AdminUserID string
}

func (s *BootstrapService) Enabled() bool { return s.Token != "" }

func (s *BootstrapService) IsBootstrapped(ctx context.Context) (bool, error) {
	empty, err := s.Store.Users().IsEmpty(ctx)
	if err != nil {
		return false, err
	}
	return !empty, nil
}

// Bootstrap creates the first company and its administrator. It only runs
// while the user table is empty.
func (s *BootstrapService) Bootstrap(ctx context.Context, token string, req domain.BootstrapData) (BootstrapResult, error) {
	l := slogx.FromContext(ctx)
	now := s.Clock.now()

	if !s.Enabled() {
		return BootstrapResult{}, ErrBootstrapDisabled
	}

	// 1. Check if already bootstrapped
	bootstrapped, err := s.IsBootstrapped(ctx)
	if err != nil {
		l.Error("failed to check bootstrap state", slog.Any("error", err))
		return BootstrapResult{}, err
	}
	if bootstrapped {
		l.Warn("attempted bootstrap on already-bootstrapped system")
		return BootstrapResult{}, ErrBootstrapAlready
	}

	// 2. Validate provided token
	if !cryptox.SecretEqual(token, s.Token) {
		l.Warn("unauthorized bootstrap attempt")
		return BootstrapResult{}, ErrBootstrapUnauthorized
	}

	// 3. Validate request
	name := strings.TrimSpace(req.CompanyName)
	email, err := normalizeEmail(req.AdminEmail)
	if name == "" || err != nil {
		return BootstrapResult{}, ErrInvalidBootstrapRequest
	}
	if len(req.AdminPassword) < MinPasswordLength {
		return BootstrapResult{}, ErrWeakPassword
	}

	// 4. Hash password
	passHash, err := cryptox.HashPassword(req.AdminPassword)
	if err != nil {
		l.Error("failed to hash admin password", slog.Any("error", err))
		return BootstrapResult{}, err
	}

	res := BootstrapResult{
		CompanyID:   idx.NewAt(now).String(),
		AdminUserID: idx.NewAt(now).String(),
	}

	// 5. Create the company and its admin in a transaction
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		// Re-check inside the transaction so two racing bootstraps cannot
		// both succeed.
		empty, err := tx.Users().IsEmpty(ctx)
		if err != nil {
			return err
		}
		if !empty {
			return ErrBootstrapAlready
		}

		err = tx.Companies().CreateCompany(ctx, domain.Company{
			ID:          res.CompanyID,
			Name:        name,
			Slug:        slug.Make(name),
			Status:      domain.CompanyActive,
			AdminEmail:  email,
			AdminUserID: res.AdminUserID,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
		if err != nil {
			l.Error("failed to create company", slog.Any("error", err))
			return err
		}

		err = tx.Users().CreateUser(ctx, domain.User{
			ID:           res.AdminUserID,
			Email:        email,
			DisplayName:  strings.TrimSpace(req.AdminDisplayName),
			PasswordHash: passHash,
			Role:         access.RoleAdmin,
			CompanyID:    res.CompanyID,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
		if err != nil {
			l.Error("failed to create admin user", slog.Any("error", err))
			return err
		}
		return nil
	})
	if err != nil {
		return BootstrapResult{}, err
	}

	l.Info("successfully bootstrapped system",
		slog.String("company_id", res.CompanyID),
		slog.String("admin_user_id", res.AdminUserID),
	)
	return res, nil
}
