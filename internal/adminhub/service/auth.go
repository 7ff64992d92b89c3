package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/adminhub/internal/adminhub/domain"
	"github.com/aussiebroadwan/adminhub/internal/adminhub/store"
	"github.com/aussiebroadwan/adminhub/pkg/cryptox"
	"github.com/aussiebroadwan/adminhub/pkg/idx"
	"github.com/aussiebroadwan/adminhub/pkg/jwtx"
	"github.com/aussiebroadwan/adminhub/pkg/slogx"
)

// DefaultPasswordResetTTL is how long a reset link stays usable.
const DefaultPasswordResetTTL = 1 * time.Hour

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidResetToken  = errors.New("reset token is invalid, expired or already used")
)

// TokenSigner signs access token claims.
type TokenSigner interface {
	Sign(c jwtx.Claims) (string, error)
}

// AuthService is the local token issuer: password login and password resets.
type AuthService struct {
	Store    store.Store
	Signer   TokenSigner
	Notifier Notifier
	Clock    Clock

	Issuer   string
	Audience []string
	TokenTTL time.Duration
	ResetTTL time.Duration
}

// IssuedToken is the result of a successful login.
type IssuedToken struct {
	AccessToken string
	ExpiresIn   time.Duration
	User        domain.User
}

// Login verifies an email and password and signs an access token carrying
// the user's role and company.
func (s *AuthService) Login(ctx context.Context, email, password string) (IssuedToken, error) {
	log := slogx.FromContext(ctx)
	now := s.Clock.now()

	// 1. Validate input
	email, err := normalizeEmail(email)
	if err != nil || password == "" {
		return IssuedToken{}, ErrInvalidCredentials
	}

	// 2. Look the user up
	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("login for unknown email")
			return IssuedToken{}, ErrInvalidCredentials
		}
		log.Error("failed to fetch user", slog.Any("error", err))
		return IssuedToken{}, err
	}

	// 3. Verify password
	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		log.Warn("login with wrong password", slog.String("user_id", user.ID))
		return IssuedToken{}, ErrInvalidCredentials
	}

	// 4. Sign the access token
	ttl := s.TokenTTL
	if ttl <= 0 {
		ttl = jwtx.DefaultAccessTokenTTL
	}
	claims := jwtx.NewAccessClaims(user.ID, user.Email, user.Role, user.CompanyID, ttl, s.Issuer, s.Audience, now)
	token, err := s.Signer.Sign(claims)
	if err != nil {
		log.Error("failed to sign access token", slog.Any("error", err))
		return IssuedToken{}, err
	}

	log.Info("user logged in",
		slog.String("user_id", user.ID),
		slog.String("role", user.Role.String()),
	)
	return IssuedToken{AccessToken: token, ExpiresIn: ttl, User: user}, nil
}

// RequestPasswordReset stores a one-time token for the user and emails the
// link. Unknown emails are ignored so the caller cannot probe for accounts.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	log := slogx.FromContext(ctx)
	now := s.Clock.now()

	email, err := normalizeEmail(email)
	if err != nil {
		return nil
	}

	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Debug("password reset for unknown email")
			return nil
		}
		log.Error("failed to fetch user", slog.Any("error", err))
		return err
	}

	token, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		log.Error("failed to generate reset token", slog.Any("error", err))
		return err
	}

	ttl := s.ResetTTL
	if ttl <= 0 {
		ttl = DefaultPasswordResetTTL
	}
	reset := domain.PasswordReset{
		ID:        idx.NewAt(now).String(),
		UserID:    user.ID,
		TokenHash: cryptox.FingerprintToken(token),
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	}
	if err := s.Store.PasswordResets().CreatePasswordReset(ctx, reset); err != nil {
		log.Error("failed to store password reset", slog.Any("error", err))
		return err
	}

	if err := s.Notifier.SendPasswordReset(ctx, user, token, reset.ExpiresAt); err != nil {
		log.Error("failed to send password reset email",
			slog.String("user_id", user.ID),
			slog.Any("error", err),
		)
		return nil
	}

	log.Info("password reset requested", slog.String("user_id", user.ID))
	return nil
}

// ConfirmPasswordReset consumes a reset token and sets the new password.
func (s *AuthService) ConfirmPasswordReset(ctx context.Context, token, newPassword string) error {
	log := slogx.FromContext(ctx)
	now := s.Clock.now()

	// 1. Validate input
	if token == "" {
		return ErrInvalidResetToken
	}
	if len(newPassword) < MinPasswordLength {
		return ErrWeakPassword
	}

	// 2. Look the token up by fingerprint
	reset, err := s.Store.PasswordResets().GetPasswordResetByTokenHash(ctx, cryptox.FingerprintToken(token))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("password reset with unknown token")
			return ErrInvalidResetToken
		}
		log.Error("failed to fetch password reset", slog.Any("error", err))
		return err
	}
	if reset.UsedAt != nil || !now.Before(reset.ExpiresAt) {
		log.Warn("password reset with spent token", slog.String("reset_id", reset.ID))
		return ErrInvalidResetToken
	}

	// 3. Hash the new password
	hash, err := cryptox.HashPassword(newPassword)
	if err != nil {
		log.Error("failed to hash password", slog.Any("error", err))
		return err
	}

	// 4. Consume the token and update the password together
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		ok, err := tx.PasswordResets().MarkPasswordResetUsed(ctx, reset.ID, now)
		if err != nil {
			return err
		}
		if !ok {
			return ErrInvalidResetToken
		}
		return tx.Users().UpdatePasswordHash(ctx, reset.UserID, hash, now)
	})
	if err != nil {
		if errors.Is(err, ErrInvalidResetToken) {
			return err
		}
		log.Error("failed to apply password reset", slog.Any("error", err))
		return err
	}

	log.Info("password reset completed", slog.String("user_id", reset.UserID))
	return nil
}
