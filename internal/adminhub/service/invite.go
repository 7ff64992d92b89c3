package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/adminhub/internal/adminhub/domain"
	"github.com/aussiebroadwan/adminhub/internal/adminhub/metrics"
	"github.com/aussiebroadwan/adminhub/internal/adminhub/store"
	"github.com/aussiebroadwan/adminhub/pkg/access"
	"github.com/aussiebroadwan/adminhub/pkg/cryptox"
	"github.com/aussiebroadwan/adminhub/pkg/idx"
	"github.com/aussiebroadwan/adminhub/pkg/slogx"
)

// MaxInviteCodeLength bounds admin-chosen invite codes.
const MaxInviteCodeLength = 64

var (
	ErrInvalidInviteRequest = errors.New("invalid invite request")
	ErrInviteNotFound       = errors.New("invite not found")
	ErrInviteExpired        = errors.New("invite has expired")
	ErrInviteAlreadyUsed    = errors.New("invite has already been used")
	ErrInviteCodeTaken      = errors.New("invite code already exists")
	ErrDomainNotAllowed     = errors.New("email domain is not allowed by this invite")
	ErrEmailTaken           = errors.New("email is already registered")
)

type InviteService struct {
	Store   store.Store
	Metrics *metrics.Metrics
	Clock   Clock
}

// Validate checks an invite code at instant now.
//
// An active invite whose expiry has passed is moved to expired before
// ErrInviteExpired is returned; that is the only write Validate performs.
// For ErrInviteExpired and ErrInviteAlreadyUsed the returned invite is the
// current snapshot so callers can show it.
func (s *InviteService) Validate(ctx context.Context, code string, now time.Time) (domain.Invite, error) {
	inv, err := s.validate(ctx, code, now)
	s.Metrics.InviteValidated(validationResult(err))
	return inv, err
}

func (s *InviteService) validate(ctx context.Context, code string, now time.Time) (domain.Invite, error) {
	log := slogx.FromContext(ctx)

	// 1. Validate input
	code = strings.TrimSpace(code)
	if code == "" {
		return domain.Invite{}, ErrInvalidInviteRequest
	}

	// 2. Look the code up, exact match first
	inv, err := s.findInvite(ctx, code)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Debug("invite code not found", slog.String("code", code))
			return domain.Invite{}, ErrInviteNotFound
		}
		log.Error("failed to look up invite", slog.Any("error", err))
		return domain.Invite{}, err
	}

	// 3. Terminal states never change again
	switch inv.Status {
	case domain.InviteUsed:
		return inv, ErrInviteAlreadyUsed
	case domain.InviteExpired:
		return inv, ErrInviteExpired
	}

	if !inv.PastExpiry(now) {
		return inv, nil
	}

	// 4. Lazily expire an active invite whose deadline has passed
	ok, err := s.Store.Invites().MarkInviteExpired(ctx, inv.ID, now)
	if err != nil {
		log.Error("failed to mark invite expired",
			slog.String("invite_id", inv.ID),
			slog.Any("error", err),
		)
		return domain.Invite{}, err
	}
	if !ok {
		// Another request moved it first; report whatever it became.
		current, err := s.Store.Invites().GetInviteByCode(ctx, inv.Code)
		if errors.Is(err, store.ErrNotFound) {
			// Archived between the lookup and the update.
			log.Debug("invite archived during validation", slog.String("invite_id", inv.ID))
			return domain.Invite{}, ErrInviteNotFound
		}
		if err != nil {
			log.Error("failed to reload invite", slog.String("invite_id", inv.ID), slog.Any("error", err))
			return domain.Invite{}, err
		}
		if current.Status == domain.InviteUsed {
			return current, ErrInviteAlreadyUsed
		}
		return current, ErrInviteExpired
	}

	log.Info("invite expired on read",
		slog.String("invite_id", inv.ID),
		slog.Time("expires_at", inv.ExpiresAt),
	)
	inv.Status = domain.InviteExpired
	inv.UpdatedAt = now
	return inv, ErrInviteExpired
}

// findInvite tries the exact code, then falls back to a case-insensitive
// scan. The first match in store order wins.
func (s *InviteService) findInvite(ctx context.Context, code string) (domain.Invite, error) {
	inv, err := s.Store.Invites().GetInviteByCode(ctx, code)
	if err == nil || !errors.Is(err, store.ErrNotFound) {
		return inv, err
	}

	all, err := s.Store.Invites().ListInvites(ctx)
	if err != nil {
		return domain.Invite{}, err
	}
	for _, candidate := range all {
		if strings.EqualFold(candidate.Code, code) {
			return candidate, nil
		}
	}
	return domain.Invite{}, store.ErrNotFound
}

func validationResult(err error) string {
	switch {
	case err == nil:
		return metrics.ResultOK
	case errors.Is(err, ErrInviteNotFound):
		return metrics.ResultNotFound
	case errors.Is(err, ErrInviteExpired):
		return metrics.ResultExpired
	case errors.Is(err, ErrInviteAlreadyUsed):
		return metrics.ResultUsed
	case errors.Is(err, ErrInvalidInviteRequest):
		return metrics.ResultInvalid
	default:
		return metrics.ResultError
	}
}

// CreateInviteParams is the admin's request for a new invite.
type CreateInviteParams struct {
	Code           string
	AllowedDomains []string
	ExpiresAt      time.Time
}

// CreateInvite stores a new active invite stamped with the creator's company.
func (s *InviteService) CreateInvite(ctx context.Context, caller *access.Identity, p CreateInviteParams) (domain.Invite, error) {
	log := slogx.FromContext(ctx)
	now := s.Clock.now()

	if caller == nil {
		return domain.Invite{}, ErrForbidden
	}

	// 1. Validate the code
	code := strings.TrimSpace(p.Code)
	if code == "" || len(code) > MaxInviteCodeLength {
		log.Warn("invite create rejected: bad code", slog.Int("length", len(code)))
		return domain.Invite{}, ErrInvalidInviteRequest
	}

	// 2. Normalize the domain allow list
	domains, ok := normalizeDomains(p.AllowedDomains)
	if !ok {
		log.Warn("invite create rejected: bad allowed domains", slog.Any("domains", p.AllowedDomains))
		return domain.Invite{}, ErrInvalidInviteRequest
	}

	// 3. Expiry must be in the future
	if !p.ExpiresAt.After(now) {
		log.Warn("invite create rejected: past expiry", slog.Time("expires_at", p.ExpiresAt))
		return domain.Invite{}, ErrInvalidInviteRequest
	}

	inv := domain.Invite{
		ID:             idx.NewAt(now).String(),
		Code:           code,
		CompanyID:      caller.CompanyID,
		AllowedDomains: domains,
		Status:         domain.InviteActive,
		ExpiresAt:      p.ExpiresAt.UTC(),
		CreatedBy:      caller.UserID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	// 4. Reject codes that collide case-insensitively, then insert
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		existing, err := tx.Invites().ListInvites(ctx)
		if err != nil {
			return err
		}
		for _, e := range existing {
			if strings.EqualFold(e.Code, code) {
				return ErrInviteCodeTaken
			}
		}
		if err := tx.Invites().CreateInvite(ctx, inv); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return ErrInviteCodeTaken
			}
			return err
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInviteCodeTaken) {
			log.Warn("invite create rejected: duplicate code", slog.String("code", code))
			return domain.Invite{}, err
		}
		log.Error("failed to create invite", slog.Any("error", err))
		return domain.Invite{}, err
	}

	log.Info("invite created",
		slog.String("invite_id", inv.ID),
		slog.String("company_id", inv.CompanyID),
		slog.String("created_by", inv.CreatedBy),
		slog.Time("expires_at", inv.ExpiresAt),
	)
	return inv, nil
}

// normalizeDomains lower-cases, trims, drops a leading '@' and removes
// duplicates. It reports false when the list is empty or holds something
// that is not a bare domain.
func normalizeDomains(in []string) ([]string, bool) {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, d := range in {
		d = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(d)), "@")
		if d == "" || strings.ContainsAny(d, "@/ \t:") || !strings.Contains(d, ".") ||
			strings.HasPrefix(d, ".") || strings.HasSuffix(d, ".") {
			return nil, false
		}
		if _, dup := seen[d]; dup {
			continue
		}
		seen[d] = struct{}{}
		out = append(out, d)
	}
	return out, len(out) > 0
}

// List returns every invite, oldest first.
func (s *InviteService) List(ctx context.Context) ([]domain.Invite, error) {
	invites, err := s.Store.Invites().ListInvites(ctx)
	if err != nil {
		slogx.FromContext(ctx).Error("failed to list invites", slog.Any("error", err))
		return nil, err
	}
	return invites, nil
}

// ListByCompany returns the invites created for one tenant.
func (s *InviteService) ListByCompany(ctx context.Context, companyID string) ([]domain.Invite, error) {
	invites, err := s.Store.Invites().ListInvitesByCompany(ctx, companyID)
	if err != nil {
		slogx.FromContext(ctx).Error("failed to list company invites",
			slog.String("company_id", companyID),
			slog.Any("error", err),
		)
		return nil, err
	}
	return invites, nil
}

// RedeemParams carries the registration form submitted with an invite.
type RedeemParams struct {
	Code        string
	Email       string
	Password    string
	DisplayName string
}

// Redeem validates the invite, checks the email against its domain allow
// list and creates a role-less user in the invite's company. The invite
// moves to used in the same transaction.
func (s *InviteService) Redeem(ctx context.Context, p RedeemParams) (domain.User, error) {
	log := slogx.FromContext(ctx)
	now := s.Clock.now()

	// 1. Validate input
	email, err := normalizeEmail(p.Email)
	if err != nil {
		return domain.User{}, err
	}
	if len(p.Password) < MinPasswordLength {
		return domain.User{}, ErrWeakPassword
	}

	// 2. The invite must still be valid; this may expire it
	inv, err := s.Validate(ctx, p.Code, now)
	if err != nil {
		return domain.User{}, err
	}

	// 3. Email domain must be allowed
	if !inv.AllowsDomain(access.EmailDomain(email)) {
		log.Warn("invite redemption with disallowed domain",
			slog.String("invite_id", inv.ID),
			slog.String("domain", access.EmailDomain(email)),
		)
		return domain.User{}, ErrDomainNotAllowed
	}

	// 4. Email must be free
	if _, err := s.Store.Users().GetUserByEmail(ctx, email); err == nil {
		log.Warn("invite redemption with registered email", slog.String("invite_id", inv.ID))
		return domain.User{}, ErrEmailTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		log.Error("failed to look up user by email", slog.Any("error", err))
		return domain.User{}, err
	}

	// 5. Hash password
	hash, err := cryptox.HashPassword(p.Password)
	if err != nil {
		log.Error("failed to hash password", slog.Any("error", err))
		return domain.User{}, err
	}

	user := domain.User{
		ID:           idx.NewAt(now).String(),
		Email:        email,
		DisplayName:  strings.TrimSpace(p.DisplayName),
		PasswordHash: hash,
		Role:         access.RoleNone,
		CompanyID:    inv.CompanyID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// 6. Create the user and consume the invite atomically
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().CreateUser(ctx, user); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return ErrEmailTaken
			}
			return err
		}
		used, err := tx.Invites().MarkInviteUsed(ctx, inv.ID, user.ID, now)
		if err != nil {
			return err
		}
		if !used {
			return ErrInviteAlreadyUsed
		}
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrEmailTaken), errors.Is(err, ErrInviteAlreadyUsed):
			log.Warn("invite redemption lost a race",
				slog.String("invite_id", inv.ID),
				slog.Any("error", err),
			)
		default:
			log.Error("failed to redeem invite",
				slog.String("invite_id", inv.ID),
				slog.Any("error", err),
			)
		}
		return domain.User{}, err
	}

	log.Info("invite redeemed",
		slog.String("invite_id", inv.ID),
		slog.String("user_id", user.ID),
		slog.String("company_id", user.CompanyID),
	)
	return user, nil
}
