// Package service implements the adminhub business operations on top of
// the store. Handlers translate the sentinel errors declared here into
// HTTP responses.
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/aussiebroadwan/adminhub/internal/adminhub/domain"
)

// MinPasswordLength applies to invite redemption, bootstrap and resets.
const MinPasswordLength = 8

var (
	ErrForbidden    = errors.New("caller may not access this company")
	ErrWeakPassword = errors.New("password must be at least 8 characters")
	ErrInvalidEmail = errors.New("invalid email address")
)

// Notifier sends the emails triggered by service operations.
type Notifier interface {
	SendPasswordReset(ctx context.Context, u domain.User, token string, expiresAt time.Time) error
	SendSubscriptionAlert(ctx context.Context, c domain.Company, previous domain.CompanyStatus) error
}

// Clock returns the current time. A nil Clock means time.Now.
type Clock func() time.Time

// Now returns the current time in UTC.
func (c Clock) Now() time.Time { return c.now() }

func (c Clock) now() time.Time {
	if c == nil {
		return time.Now().UTC()
	}
	return c().UTC()
}

// normalizeEmail lower-cases and trims an address and checks that it has a
// local part and a domain.
func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	at := strings.LastIndexByte(email, '@')
	if at <= 0 || at == len(email)-1 || strings.ContainsAny(email, " \t\r\n") {
		return "", ErrInvalidEmail
	}
	return email, nil
}
