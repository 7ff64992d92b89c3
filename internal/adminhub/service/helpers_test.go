package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/adminhub/internal/adminhub/domain"
	"github.com/aussiebroadwan/adminhub/internal/adminhub/store"
	"github.com/aussiebroadwan/adminhub/internal/adminhub/store/drivers/sqlite"
	"github.com/aussiebroadwan/adminhub/pkg/access"
	"github.com/aussiebroadwan/adminhub/pkg/cryptox"
	"github.com/aussiebroadwan/adminhub/pkg/idx"
)

var testNow = time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)

func fixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	s, err := sqlite.NewStore(sqlite.MemoryDSN(idx.New().String()))
	require.NoError(t, err)
	require.NoError(t, s.ApplyMigrations())
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func seedCompany(t *testing.T, s store.Store, name, adminEmail string) domain.Company {
	t.Helper()
	c := domain.Company{
		ID:         idx.New().String(),
		Name:       name,
		Slug:       name,
		Status:     domain.CompanyActive,
		AdminEmail: adminEmail,
		CreatedAt:  testNow,
		UpdatedAt:  testNow,
	}
	require.NoError(t, s.Companies().CreateCompany(context.Background(), c))
	return c
}

func seedUser(t *testing.T, s store.Store, email, password string, role access.Role, companyID string) domain.User {
	t.Helper()
	hash, err := cryptox.HashPassword(password)
	require.NoError(t, err)
	u := domain.User{
		ID:           idx.New().String(),
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		CompanyID:    companyID,
		CreatedAt:    testNow,
		UpdatedAt:    testNow,
	}
	require.NoError(t, s.Users().CreateUser(context.Background(), u))
	return u
}

func seedInvite(t *testing.T, s store.Store, code, companyID string, status domain.InviteStatus, expires time.Time, domains ...string) domain.Invite {
	t.Helper()
	inv := domain.Invite{
		ID:             idx.New().String(),
		Code:           code,
		CompanyID:      companyID,
		AllowedDomains: domains,
		Status:         status,
		ExpiresAt:      expires,
		CreatedAt:      testNow.Add(-time.Hour),
		UpdatedAt:      testNow.Add(-time.Hour),
	}
	require.NoError(t, s.Invites().CreateInvite(context.Background(), inv))
	return inv
}

func identityOf(u domain.User) *access.Identity {
	return &access.Identity{UserID: u.ID, Email: u.Email, Role: u.Role, CompanyID: u.CompanyID}
}

type sentReset struct {
	User      domain.User
	Token     string
	ExpiresAt time.Time
}

type sentAlert struct {
	Company  domain.Company
	Previous domain.CompanyStatus
}

type fakeNotifier struct {
	mu     sync.Mutex
	resets []sentReset
	alerts []sentAlert
	err    error
}

func (f *fakeNotifier) SendPasswordReset(_ context.Context, u domain.User, token string, expiresAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resets = append(f.resets, sentReset{User: u, Token: token, ExpiresAt: expiresAt})
	return f.err
}

func (f *fakeNotifier) SendSubscriptionAlert(_ context.Context, c domain.Company, previous domain.CompanyStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.alerts = append(f.alerts, sentAlert{Company: c, Previous: previous})
	return f.err
}
