package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/adminhub/internal/adminhub/domain"
	"github.com/aussiebroadwan/adminhub/internal/adminhub/metrics"
	"github.com/aussiebroadwan/adminhub/internal/adminhub/service"
	"github.com/aussiebroadwan/adminhub/internal/adminhub/store"
	"github.com/aussiebroadwan/adminhub/internal/adminhub/store/drivers/sqlite"
	"github.com/aussiebroadwan/adminhub/pkg/access"
	"github.com/aussiebroadwan/adminhub/pkg/cryptox"
	"github.com/aussiebroadwan/adminhub/pkg/httpx"
	"github.com/aussiebroadwan/adminhub/pkg/idx"
	"github.com/aussiebroadwan/adminhub/pkg/jwtx"
	"github.com/aussiebroadwan/adminhub/pkg/slogx"
)

const (
	testIssuer        = "adminhub-test"
	testArchivingKey  = "archive-secret"
	testPassword      = "correct-horse"
	testBootstrapCode = "boot-token"
)

type sentReset struct {
	User  domain.User
	Token string
}

type fakeNotifier struct {
	mu     sync.Mutex
	resets []sentReset
	alerts []domain.Company
}

func (f *fakeNotifier) SendPasswordReset(_ context.Context, u domain.User, token string, _ time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resets = append(f.resets, sentReset{User: u, Token: token})
	return nil
}

func (f *fakeNotifier) SendSubscriptionAlert(_ context.Context, c domain.Company, _ domain.CompanyStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.alerts = append(f.alerts, c)
	return nil
}

func (f *fakeNotifier) lastReset() sentReset {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.resets[len(f.resets)-1]
}

func (f *fakeNotifier) alertCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.alerts)
}

type testEnv struct {
	t         *testing.T
	store     store.Store
	keys      *jwtx.KeyManager
	metrics   *metrics.Metrics
	notifier  *fakeNotifier
	scheduler *service.Scheduler
	router    *Router
}

// testLimits are high enough that no test trips a limiter.
func testLimits() httpx.RateLimitProfiles {
	l := httpx.RateLimitConfig{RequestsPerWindow: 10000, Window: time.Minute, Burst: 10000}
	return httpx.RateLimitProfiles{Strict: l, Moderate: l, Lenient: l, Public: l}
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	s, err := sqlite.NewStore(sqlite.MemoryDSN(idx.New().String()))
	require.NoError(t, err)
	require.NoError(t, s.ApplyMigrations())
	t.Cleanup(func() { _ = s.Close() })

	keys, err := jwtx.NewEphemeralKeyManager(jwtx.KeyManagerOptions{Issuer: testIssuer, NumKeys: 1})
	require.NoError(t, err)

	m := metrics.New()
	notifier := &fakeNotifier{}
	logger := slogx.Discard()

	archiver := &service.ArchivingService{Store: s, Logger: logger, Metrics: m}
	scheduler := service.NewScheduler(archiver, logger, time.Hour)
	t.Cleanup(scheduler.Stop)

	r := NewRouter(keys.KeySet, keys.Verifier, "test", s, testLimits(), logger)
	r.Metrics = m
	r.InviteService = &service.InviteService{Store: s, Metrics: m}
	r.AuthService = &service.AuthService{
		Store:    s,
		Signer:   keys,
		Notifier: notifier,
		Issuer:   testIssuer,
		TokenTTL: time.Hour,
	}
	r.BootstrapService = &service.BootstrapService{Store: s}
	r.CompanyService = &service.CompanyService{Store: s, Policy: access.DefaultTenantPolicy, Notifier: notifier}
	r.UserService = &service.UserService{Store: s, Policy: access.DefaultTenantPolicy}
	r.ExtensionPolicyService = &service.ExtensionPolicyService{Store: s, Policy: access.DefaultTenantPolicy}
	r.Scheduler = scheduler
	r.ArchivingSecret = testArchivingKey
	r.ApplyRoutes()

	return &testEnv{
		t:         t,
		store:     s,
		keys:      keys,
		metrics:   m,
		notifier:  notifier,
		scheduler: scheduler,
		router:    r,
	}
}

func (e *testEnv) seedCompany(name string) domain.Company {
	e.t.Helper()
	now := time.Now().UTC()
	c := domain.Company{
		ID:         idx.New().String(),
		Name:       name,
		Slug:       name,
		Status:     domain.CompanyActive,
		AdminEmail: "admin@" + name + ".example",
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	require.NoError(e.t, e.store.Companies().CreateCompany(context.Background(), c))
	return c
}

func (e *testEnv) seedUser(email string, role access.Role, companyID string) domain.User {
	e.t.Helper()
	hash, err := cryptox.HashPassword(testPassword)
	require.NoError(e.t, err)
	now := time.Now().UTC()
	u := domain.User{
		ID:           idx.New().String(),
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		CompanyID:    companyID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(e.t, e.store.Users().CreateUser(context.Background(), u))
	return u
}

func (e *testEnv) seedInvite(code, companyID string, status domain.InviteStatus, expires time.Time, domains ...string) domain.Invite {
	e.t.Helper()
	now := time.Now().UTC().Add(-time.Hour)
	inv := domain.Invite{
		ID:             idx.New().String(),
		Code:           code,
		CompanyID:      companyID,
		AllowedDomains: domains,
		Status:         status,
		ExpiresAt:      expires.UTC(),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	require.NoError(e.t, e.store.Invites().CreateInvite(context.Background(), inv))
	return inv
}

// tokenFor signs an access token for u without going through login.
func (e *testEnv) tokenFor(u domain.User) string {
	e.t.Helper()
	tok, err := e.keys.Sign(jwtx.NewAccessClaims(u.ID, u.Email, u.Role, u.CompanyID, time.Hour, testIssuer, nil, time.Now()))
	require.NoError(e.t, err)
	return tok
}

func (e *testEnv) do(method, path, token string, body any) *httptest.ResponseRecorder {
	e.t.Helper()
	if token == "" {
		return e.doWithHeader(method, path, "", "", body)
	}
	return e.doWithHeader(method, path, "Authorization", "Bearer "+token, body)
}

// doWithHeader sends body (a string is sent raw, anything else as JSON)
// through the router with one optional extra header.
func (e *testEnv) doWithHeader(method, path, header, value string, body any) *httptest.ResponseRecorder {
	e.t.Helper()

	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(e.t, json.NewEncoder(&buf).Encode(b))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if header != "" {
		req.Header.Set(header, value)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out), rec.Body.String())
	return out
}

func requireError(t *testing.T, rec *httptest.ResponseRecorder, status int, code string) {
	t.Helper()
	require.Equal(t, status, rec.Code, rec.Body.String())
	var body map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Equal(t, code, body["error"])
}

var _ http.Handler = (*Router)(nil)
