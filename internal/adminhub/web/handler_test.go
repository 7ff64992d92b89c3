package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/adminhub/internal/adminhub/domain"
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
	testIssuer   = "adminhub-test"
	testPassword = "correct-horse"
)

type testEnv struct {
	t       *testing.T
	store   store.Store
	keys    *jwtx.KeyManager
	handler *Handler
	company domain.Company
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	s, err := sqlite.NewStore(sqlite.MemoryDSN(idx.New().String()))
	require.NoError(t, err)
	require.NoError(t, s.ApplyMigrations())
	t.Cleanup(func() { _ = s.Close() })

	keys, err := jwtx.NewEphemeralKeyManager(jwtx.KeyManagerOptions{Issuer: testIssuer, NumKeys: 1})
	require.NoError(t, err)

	scheduler := service.NewScheduler(&service.ArchivingService{Store: s, Logger: slogx.Discard()}, slogx.Discard(), time.Hour)

	h := NewHandler(Options{
		Verifier:               keys.Verifier,
		AuthService:            &service.AuthService{Store: s, Signer: keys, Issuer: testIssuer, TokenTTL: time.Hour},
		InviteService:          &service.InviteService{Store: s},
		UserService:            &service.UserService{Store: s, Policy: access.DefaultTenantPolicy},
		CompanyService:         &service.CompanyService{Store: s, Policy: access.DefaultTenantPolicy},
		ExtensionPolicyService: &service.ExtensionPolicyService{Store: s, Policy: access.DefaultTenantPolicy},
		Scheduler:              scheduler,
		LoginLimit:             httpx.RateLimitConfig{RequestsPerWindow: 1000, Window: time.Minute, Burst: 1000},
	})

	env := &testEnv{t: t, store: s, keys: keys, handler: h}
	env.company = env.seedCompany("acme")
	return env
}

func (e *testEnv) seedCompany(name string) domain.Company {
	e.t.Helper()
	now := time.Now().UTC()
	c := domain.Company{
		ID:         idx.New().String(),
		Name:       name,
		Slug:       name,
		Status:     domain.CompanyActive,
		AdminEmail: "boss@" + name + ".example",
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	require.NoError(e.t, e.store.Companies().CreateCompany(context.Background(), c))
	return c
}

func (e *testEnv) seedUser(email string, role access.Role) domain.User {
	e.t.Helper()
	hash, err := cryptox.HashPassword(testPassword)
	require.NoError(e.t, err)
	now := time.Now().UTC()
	u := domain.User{
		ID:           idx.New().String(),
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		CompanyID:    e.company.ID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(e.t, e.store.Users().CreateUser(context.Background(), u))
	return u
}

func (e *testEnv) cookieFor(u domain.User) *http.Cookie {
	e.t.Helper()
	tok, err := e.keys.Sign(jwtx.NewAccessClaims(u.ID, u.Email, u.Role, u.CompanyID, time.Hour, testIssuer, nil, time.Now()))
	require.NoError(e.t, err)
	return &http.Cookie{Name: CookieName, Value: tok}
}

func (e *testEnv) get(path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	e.t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) post(path string, cookie *http.Cookie, form url.Values) *httptest.ResponseRecorder {
	e.t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func requireRedirect(t *testing.T, rec *httptest.ResponseRecorder, status int, location string) {
	t.Helper()
	require.Equal(t, status, rec.Code, rec.Body.String())
	require.Equal(t, location, rec.Header().Get("Location"))
}

func TestPageGate(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	admin := env.cookieFor(env.seedUser("boss@acme.example", access.RoleAdmin))
	analyst := env.cookieFor(env.seedUser("numbers@acme.example", access.RoleAnalyst))
	nobody := env.cookieFor(env.seedUser("fresh@acme.example", access.RoleNone))

	adminPages := []string{
		"/dashboard",
		"/dashboard/invites",
		"/dashboard/users",
		"/dashboard/companies",
		"/dashboard/extension-policy",
	}

	type gateCase struct {
		name     string
		path     string
		cookie   *http.Cookie
		location string // empty means the page renders
	}
	tests := []gateCase{
		{name: "anonymous", path: "/dashboard", location: "/login"},
		{name: "anonymous analytics", path: "/dashboard/analytics", location: "/login"},
		{name: "role-less user", path: "/dashboard/analytics", cookie: nobody, location: "/login"},
		{name: "garbage token", path: "/dashboard", cookie: &http.Cookie{Name: CookieName, Value: "garbage"}, location: "/login"},
		{name: "analyst on analytics", path: "/dashboard/analytics", cookie: analyst},
		{name: "admin on analytics", path: "/dashboard/analytics", cookie: admin},
	}
	for _, p := range adminPages {
		tests = append(tests,
			gateCase{name: "analyst on " + p, path: p, cookie: analyst, location: "/dashboard/analytics"},
			gateCase{name: "admin on " + p, path: p, cookie: admin},
		)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.get(tt.path, tt.cookie)
			if tt.location != "" {
				requireRedirect(t, rec, http.StatusFound, tt.location)
				return
			}
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			require.Contains(t, rec.Header().Get("Content-Type"), "text/html")
		})
	}
}

func TestBearerTokenIdentity(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	cookie := env.cookieFor(env.seedUser("numbers@acme.example", access.RoleAnalyst))

	req := httptest.NewRequest(http.MethodGet, "/dashboard/analytics", nil)
	req.Header.Set("Authorization", "Bearer "+cookie.Value)
	rec := httptest.NewRecorder()
	env.handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "numbers@acme.example")
}

func TestLogin(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.seedUser("boss@acme.example", access.RoleAdmin)
	env.seedUser("numbers@acme.example", access.RoleAnalyst)
	env.seedUser("fresh@acme.example", access.RoleNone)

	t.Run("form renders", func(t *testing.T) {
		rec := env.get("/login", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), `name="password"`)
	})

	t.Run("wrong password", func(t *testing.T) {
		rec := env.post("/login", nil, url.Values{"email": {"boss@acme.example"}, "password": {"nope"}})
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Contains(t, rec.Body.String(), "Incorrect email or password")
		require.Empty(t, rec.Result().Cookies())
	})

	t.Run("role-less account", func(t *testing.T) {
		rec := env.post("/login", nil, url.Values{"email": {"fresh@acme.example"}, "password": {testPassword}})
		require.Equal(t, http.StatusForbidden, rec.Code)
		require.Empty(t, rec.Result().Cookies())
	})

	landing := map[string]string{
		"boss@acme.example":    "/dashboard",
		"numbers@acme.example": "/dashboard/analytics",
	}
	for email, location := range landing {
		t.Run("lands "+email, func(t *testing.T) {
			rec := env.post("/login", nil, url.Values{"email": {email}, "password": {testPassword}})
			requireRedirect(t, rec, http.StatusSeeOther, location)

			cookies := rec.Result().Cookies()
			require.Len(t, cookies, 1)
			require.Equal(t, CookieName, cookies[0].Name)
			require.True(t, cookies[0].HttpOnly)
			require.Equal(t, 3600, cookies[0].MaxAge)

			// The cookie opens the landing page and skips the form.
			require.Equal(t, http.StatusOK, env.get(location, cookies[0]).Code)
			requireRedirect(t, env.get("/login", cookies[0]), http.StatusFound, location)
		})
	}
}

func TestLogout(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	cookie := env.cookieFor(env.seedUser("boss@acme.example", access.RoleAdmin))

	rec := env.post("/logout", cookie, nil)
	requireRedirect(t, rec, http.StatusSeeOther, "/login")

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, CookieName, cookies[0].Name)
	require.Empty(t, cookies[0].Value)
	require.Less(t, cookies[0].MaxAge, 0)
}

func TestInvitesPage(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	admin := env.cookieFor(env.seedUser("boss@acme.example", access.RoleAdmin))

	rec := env.post("/dashboard/invites", admin, url.Values{
		"code":    {"SUMMER"},
		"domains": {"acme.example, acme.org"},
		"days":    {"14"},
	})
	requireRedirect(t, rec, http.StatusSeeOther, "/dashboard/invites?created=SUMMER")

	rec = env.get("/dashboard/invites?created=SUMMER", admin)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	require.Contains(t, body, "Invite SUMMER created.")
	require.Contains(t, body, "acme.example, acme.org")

	rec = env.post("/dashboard/invites", admin, url.Values{"code": {"summer"}, "domains": {"acme.example"}, "days": {"3"}})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "already taken")

	rec = env.post("/dashboard/invites", admin, url.Values{"code": {"LONG"}, "domains": {"acme.example"}, "days": {"900"}})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUsersPageSetRole(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	admin := env.seedUser("boss@acme.example", access.RoleAdmin)
	member := env.seedUser("fresh@acme.example", access.RoleNone)
	cookie := env.cookieFor(admin)

	rec := env.post("/dashboard/users/"+member.ID+"/role", cookie, url.Values{"role": {"analyst"}})
	requireRedirect(t, rec, http.StatusSeeOther, "/dashboard/users?saved=1")

	u, err := env.store.Users().GetUserByID(context.Background(), member.ID)
	require.NoError(t, err)
	require.Equal(t, access.RoleAnalyst, u.Role)

	rec = env.post("/dashboard/users/"+admin.ID+"/role", cookie, url.Values{"role": {""}})
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestExtensionPolicyPage(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	cookie := env.cookieFor(env.seedUser("boss@acme.example", access.RoleAdmin))

	rec := env.get("/dashboard/extension-policy", cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "No policy has been saved yet.")

	rec = env.post("/dashboard/extension-policy", cookie, url.Values{"version": {"0"}, "document": {`{"allow":["ext-a"]}`}})
	requireRedirect(t, rec, http.StatusSeeOther, "/dashboard/extension-policy?saved=1")

	rec = env.get("/dashboard/extension-policy?saved=1", cookie)
	require.Contains(t, rec.Body.String(), "Version 1")

	rec = env.post("/dashboard/extension-policy", cookie, url.Values{"version": {"0"}, "document": {`{}`}})
	require.Equal(t, http.StatusConflict, rec.Code)

	rec = env.post("/dashboard/extension-policy", cookie, url.Values{"version": {"1"}, "document": {`["not","an","object"]`}})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
