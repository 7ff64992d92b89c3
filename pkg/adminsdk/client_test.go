package adminsdk

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *SDKClient {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewSDKClient(srv.URL + "/")
}

func TestNewSDKClientTrimsSlash(t *testing.T) {
	t.Parallel()

	c := NewSDKClient("https://admin.example.com/")
	require.Equal(t, "https://admin.example.com", c.BaseURL)
	require.Equal(t, "https://admin.example.com/livez", c.url("/livez"))
}

func TestValidateInvite(t *testing.T) {
	t.Parallel()

	expires := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	t.Run("active", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/v1/invites/ABC%2F1", r.URL.EscapedPath())
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(InviteResponse{
				Success: true,
				Invite:  Invite{Code: "ABC/1", Status: "active", ExpiresAt: expires},
			})
		})

		inv, err := c.ValidateInvite(context.Background(), "ABC/1")
		require.NoError(t, err)
		require.Equal(t, "active", inv.Status)
		require.True(t, inv.ExpiresAt.Equal(expires))
	})

	t.Run("expired carries snapshot", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			ErrInviteExpired.WithInvite(Invite{Code: "OLD", Status: "expired", ExpiresAt: expires}).WriteError(w)
		})

		_, err := c.ValidateInvite(context.Background(), "OLD")
		require.Error(t, err)
		require.ErrorIs(t, err, ErrInviteExpired)

		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		require.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
		require.NotNil(t, apiErr.InviteData)
		require.Equal(t, "expired", apiErr.InviteData.Status)
	})

	t.Run("not found", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			ErrInviteNotFound.WriteError(w)
		})

		_, err := c.ValidateInvite(context.Background(), "NOPE")
		require.ErrorIs(t, err, ErrInviteNotFound)
	})
}

func TestLoginAndSession(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/auth/token":
			var req TokenRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			if req.Password != "correct-horse" {
				ErrInvalidCredentials.WriteError(w)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(TokenResponse{
				Success: true, AccessToken: "tok", TokenType: "Bearer",
				ExpiresIn: 3600, Role: "admin", CompanyID: "c1",
			})
		case "/v1/admin/invites":
			if r.Header.Get("Authorization") != "Bearer tok" {
				ErrUnauthorized.WriteError(w)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(InviteListResponse{Success: true, Invites: []Invite{{Code: "A"}, {Code: "B"}}})
		default:
			ErrNotFound.WriteError(w)
		}
	})

	_, err := c.Login(context.Background(), "ops@example.com", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	s, err := c.Login(context.Background(), "ops@example.com", "correct-horse")
	require.NoError(t, err)
	require.Equal(t, "admin", s.Role())
	require.Equal(t, "c1", s.CompanyID())

	invites, err := s.ListInvites(context.Background())
	require.NoError(t, err)
	require.Len(t, invites, 2)
}

func TestSessionExpired(t *testing.T) {
	t.Parallel()

	c := NewSDKClient("http://127.0.0.1:1")
	s := c.NewSessionFromToken("tok", 10) // inside the 30s buffer

	_, err := s.ListCompanies(context.Background())
	require.ErrorIs(t, err, ErrSessionExpired)
}

func TestBootstrapSendsToken(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "secret", r.Header.Get("X-Bootstrap-Token"))
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(BootstrapResponse{Success: true, CompanyID: "c1", AdminUserID: "u1"})
	})

	out, err := c.Bootstrap(context.Background(), "secret", BootstrapRequest{CompanyName: "Acme"})
	require.NoError(t, err)
	require.Equal(t, "c1", out.CompanyID)
	require.Equal(t, "u1", out.AdminUserID)
}

func TestTriggerArchiveEscapesKey(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "a b&c", r.URL.Query().Get("key"))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(ArchiveRunResponse{Success: true, Run: ArchiveRun{Trigger: "manual", ArchivedInvites: 3}})
	})

	run, err := c.TriggerArchive(context.Background(), "a b&c")
	require.NoError(t, err)
	require.Equal(t, 3, run.ArchivedInvites)
}

func TestParseErrorResponseFallback(t *testing.T) {
	t.Parallel()

	resp := &http.Response{StatusCode: http.StatusBadGateway}
	err := parseErrorResponse(resp, []byte("<html>bad gateway</html>"))

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, ErrorCodeServerError, apiErr.Code)
	require.Contains(t, apiErr.Description, "502")

	require.NoError(t, parseErrorResponse(&http.Response{StatusCode: http.StatusOK}, nil))
}

func TestAPIErrorWriteError(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	ErrForbidden.WithDescription("not your company").WriteError(rec)

	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Equal(t, "no-store", rec.Header().Get("Cache-Control"))

	var body map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Equal(t, "forbidden", body["error"])
	require.Equal(t, "not your company", body["error_description"])
	require.NotContains(t, body, "inviteData")

	// the predefined value is untouched
	require.Equal(t, "access denied", ErrForbidden.Description)
}
