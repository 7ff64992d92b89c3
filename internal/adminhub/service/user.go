package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/aussiebroadwan/adminhub/internal/adminhub/domain"
	"github.com/aussiebroadwan/adminhub/internal/adminhub/store"
	"github.com/aussiebroadwan/adminhub/pkg/access"
	"github.com/aussiebroadwan/adminhub/pkg/slogx"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrInvalidRole   = errors.New("invalid role")
	ErrSelfDemotion  = errors.New("admins cannot remove their own admin role")
	ErrInvalidSearch = errors.New("search needs a full email address")
)

type UserService struct {
	Store  store.Store
	Policy access.TenantPolicy
	Clock  Clock
}

// SearchByEmail finds a user by exact email. Admins may only search inside
// their own email domain.
func (s *UserService) SearchByEmail(ctx context.Context, caller *access.Identity, email string) (domain.User, error) {
	log := slogx.FromContext(ctx)

	if caller == nil || caller.Role != access.RoleAdmin {
		return domain.User{}, ErrForbidden
	}

	email, err := normalizeEmail(email)
	if err != nil {
		return domain.User{}, ErrInvalidSearch
	}
	if d := caller.EmailDomain(); d == "" || access.EmailDomain(email) != d {
		log.Warn("user search outside caller's domain",
			slog.String("user_id", caller.UserID),
			slog.String("searched_domain", access.EmailDomain(email)),
		)
		return domain.User{}, ErrForbidden
	}

	u, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrUserNotFound
		}
		log.Error("failed to search user", slog.Any("error", err))
		return domain.User{}, err
	}
	return u, nil
}

// ListByCompany returns a tenant's users when the caller may read it.
func (s *UserService) ListByCompany(ctx context.Context, caller *access.Identity, companyID string) ([]domain.User, error) {
	companyID = resolveCompanyID(caller, companyID)
	if companyID == "" || !s.Policy.CanAccessCompany(caller, companyID, access.Read) {
		return nil, ErrForbidden
	}
	users, err := s.Store.Users().ListUsersByCompany(ctx, companyID)
	if err != nil {
		slogx.FromContext(ctx).Error("failed to list users", slog.Any("error", err))
		return nil, err
	}
	return users, nil
}

// SetRole assigns a platform role to a user in the caller's company.
func (s *UserService) SetRole(ctx context.Context, caller *access.Identity, userID string, role access.Role) (domain.User, error) {
	log := slogx.FromContext(ctx)
	now := s.Clock.now()

	// 1. Validate input
	if !role.Valid() {
		return domain.User{}, ErrInvalidRole
	}
	if caller == nil {
		return domain.User{}, ErrForbidden
	}

	// 2. Load the target user
	u, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrUserNotFound
		}
		log.Error("failed to fetch user", slog.Any("error", err))
		return domain.User{}, err
	}

	// 3. Role changes are writes against the target's company
	if !s.Policy.CanAccessCompany(caller, u.CompanyID, access.Write) {
		log.Warn("role change denied",
			slog.String("target_user_id", u.ID),
			slog.String("target_company_id", u.CompanyID),
		)
		return domain.User{}, ErrForbidden
	}

	// 4. No self-demotion, so a company always keeps the admin who acted
	if u.ID == caller.UserID && role != access.RoleAdmin {
		log.Warn("admin attempted self-demotion", slog.String("user_id", u.ID))
		return domain.User{}, ErrSelfDemotion
	}

	if err := s.Store.Users().UpdateRole(ctx, u.ID, role, now); err != nil {
		log.Error("failed to update role", slog.String("user_id", u.ID), slog.Any("error", err))
		return domain.User{}, err
	}

	log.Info("user role changed",
		slog.String("user_id", u.ID),
		slog.String("from", u.Role.String()),
		slog.String("to", role.String()),
		slog.String("changed_by", caller.UserID),
	)
	u.Role = role
	u.UpdatedAt = now
	return u, nil
}
