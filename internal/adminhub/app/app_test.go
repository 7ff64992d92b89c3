package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/adminhub/pkg/httpx"
)

func validConfig(t *testing.T) Config {
	t.Helper()
	dir := t.TempDir()
	return Config{
		Issuer:                "adminhub-test",
		NumKeys:               1,
		AdminCrossTenantReads: true,
		DatabaseFile:          filepath.Join(dir, "adminhub.db"),
		PepperFile:            filepath.Join(dir, "pepper"),
		AccessTokenTTL:        time.Hour,
		PasswordResetTTL:      time.Hour,
		ArchivingSecretKey:    "archive-secret",
		ArchivingInterval:     time.Hour,
		ArchiveRetention:      720 * time.Hour,
		PublicURL:             "http://localhost:8080",
		Env:                   "test",
		LogLevel:              "error",
		LogFormat:             "text",
		Port:                  8080,
		ShutdownGracePeriod:   time.Second,
		RateLimits:            httpx.DefaultRateLimitProfiles(),
	}
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "missing archiving key", mutate: func(c *Config) { c.ArchivingSecretKey = "" }, wantErr: "ARCHIVING_SECRET_KEY"},
		{name: "port too high", mutate: func(c *Config) { c.Port = 70000 }, wantErr: "PORT"},
		{name: "port zero", mutate: func(c *Config) { c.Port = 0 }, wantErr: "PORT"},
		{name: "smtp without sender", mutate: func(c *Config) { c.SMTPHost = "smtp.example.com" }, wantErr: "SMTP_FROM"},
		{name: "smtp credentials without host", mutate: func(c *Config) { c.SMTPUsername = "mailer" }, wantErr: "SMTP_HOST"},
		{name: "complete smtp", mutate: func(c *Config) {
			c.SMTPHost = "smtp.example.com"
			c.SMTPFrom = "noreply@example.com"
		}},
		{name: "zero rate limit", mutate: func(c *Config) { c.RateLimits.Public.Burst = 0 }, wantErr: "RATELIMIT_PUBLIC"},
		{name: "zero interval", mutate: func(c *Config) { c.ArchivingInterval = 0 }, wantErr: "ARCHIVING_INTERVAL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := validConfig(t)
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Chdir(t.TempDir()) // no .env file
	t.Setenv("ARCHIVING_SECRET_KEY", "from-env")
	t.Setenv("ARCHIVING_INTERVAL", "6h")
	t.Setenv("ADMINHUB_ADMIN_CROSS_TENANT_READS", "false")
	t.Setenv("RATELIMIT_STRICT_REQUESTS", "2")
	t.Setenv("PORT", "9090")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	require.Equal(t, "from-env", cfg.ArchivingSecretKey)
	require.Equal(t, 6*time.Hour, cfg.ArchivingInterval)
	require.False(t, cfg.AdminCrossTenantReads)
	require.Equal(t, 9090, cfg.Port)
	require.Equal(t, "adminhub", cfg.Issuer)

	// Only the overridden field changes; the rest keeps the defaults.
	defaults := httpx.DefaultRateLimitProfiles()
	require.Equal(t, 2, cfg.RateLimits.Strict.RequestsPerWindow)
	require.Equal(t, defaults.Strict.Window, cfg.RateLimits.Strict.Window)
	require.Equal(t, defaults.Lenient, cfg.RateLimits.Lenient)

	_, ok := cfg.SMTP()
	require.False(t, ok)
}

func TestLoadConfigFailsClosed(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("ARCHIVING_SECRET_KEY", "")

	_, err := LoadConfig()
	require.ErrorContains(t, err, "ARCHIVING_SECRET_KEY")
}

func TestApplicationLifecycle(t *testing.T) {
	app, err := New(validConfig(t))
	require.NoError(t, err)

	srv := httptest.NewServer(app.Handler())
	t.Cleanup(srv.Close)

	get := func(path string) *http.Response {
		t.Helper()
		resp, err := http.Get(srv.URL + path)
		require.NoError(t, err)
		t.Cleanup(func() { _ = resp.Body.Close() })
		return resp
	}

	require.Equal(t, http.StatusOK, get("/livez").StatusCode)
	require.Equal(t, http.StatusServiceUnavailable, get("/readyz").StatusCode)

	app.Start(context.Background())
	require.Equal(t, http.StatusOK, get("/readyz").StatusCode)

	// The dashboard is mounted and gated.
	client := &http.Client{CheckRedirect: func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse }}
	resp, err := client.Get(srv.URL + "/dashboard")
	require.NoError(t, err)
	_ = resp.Body.Close()
	require.Equal(t, http.StatusFound, resp.StatusCode)
	require.True(t, strings.HasSuffix(resp.Header.Get("Location"), "/login"))

	require.NoError(t, app.Shutdown())
	require.False(t, app.scheduler.Running())
}

func TestRateLimitOverridesReachRoutes(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("ARCHIVING_SECRET_KEY", "from-env")
	t.Setenv("RATELIMIT_STRICT_REQUESTS", "1")
	t.Setenv("RATELIMIT_STRICT_BURST", "1")
	t.Setenv("RATELIMIT_PUBLIC_BURST", "3")

	loaded, err := LoadConfig()
	require.NoError(t, err)

	cfg := validConfig(t)
	cfg.RateLimits = loaded.RateLimits

	app, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Shutdown() })

	srv := httptest.NewServer(app.Handler())
	t.Cleanup(srv.Close)

	token := func() int {
		t.Helper()
		resp, err := http.Post(srv.URL+"/v1/auth/token", "application/json",
			strings.NewReader(`{"email":"nobody@acme.io","password":"wrong-password"}`))
		require.NoError(t, err)
		_ = resp.Body.Close()
		return resp.StatusCode
	}
	require.Equal(t, http.StatusUnauthorized, token())
	require.Equal(t, http.StatusTooManyRequests, token())

	lookup := func() int {
		t.Helper()
		resp, err := http.Get(srv.URL + "/v1/invites/MISSING")
		require.NoError(t, err)
		_ = resp.Body.Close()
		return resp.StatusCode
	}
	for range 3 {
		require.Equal(t, http.StatusNotFound, lookup())
	}
	require.Equal(t, http.StatusTooManyRequests, lookup())
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	t.Parallel()

	cfg := validConfig(t)
	cfg.ArchivingSecretKey = ""

	_, err := New(cfg)
	require.ErrorContains(t, err, "ARCHIVING_SECRET_KEY")
}
