// Package web serves the server-rendered AdminHub dashboard. Every page is
// guarded by the access gate; callers who may not see a page are redirected
// to the login form or to the landing page of their role.
package web

import (
	"log/slog"
	"net/http"

	"github.com/aussiebroadwan/adminhub/internal/adminhub/service"
	"github.com/aussiebroadwan/adminhub/pkg/access"
	"github.com/aussiebroadwan/adminhub/pkg/httpx"
	"github.com/aussiebroadwan/adminhub/pkg/jwtx"
	"github.com/aussiebroadwan/adminhub/pkg/slogx"
)

// CookieName holds the access token of a signed-in dashboard user.
const CookieName = "adminhub_token"

// Options wires the dashboard to the services it renders.
type Options struct {
	Verifier jwtx.Verifier

	AuthService            *service.AuthService
	InviteService          *service.InviteService
	UserService            *service.UserService
	CompanyService         *service.CompanyService
	ExtensionPolicyService *service.ExtensionPolicyService
	Scheduler              *service.Scheduler

	// LoginLimit throttles POST /login per client IP and email.
	LoginLimit httpx.RateLimitConfig
	// SecureCookie marks the session cookie Secure. Enable behind TLS.
	SecureCookie bool
}

// Handler routes the dashboard, login and logout pages.
type Handler struct {
	opts Options
	mux  *http.ServeMux
}

func NewHandler(opts Options) *Handler {
	h := &Handler{opts: opts, mux: http.NewServeMux()}

	admin := access.Roles(access.RoleAdmin)
	analytics := access.Roles(access.RoleAdmin, access.RoleAnalyst)

	h.mux.Handle("GET /dashboard", h.page(admin, h.handleOverview))
	h.mux.Handle("GET /dashboard/{$}", h.page(admin, h.handleOverview))
	h.mux.Handle("GET /dashboard/analytics", h.page(analytics, h.handleAnalytics))
	h.mux.Handle("GET /dashboard/invites", h.page(admin, h.handleInvites))
	h.mux.Handle("POST /dashboard/invites", h.page(admin, h.handleCreateInvite))
	h.mux.Handle("GET /dashboard/users", h.page(admin, h.handleUsers))
	h.mux.Handle("POST /dashboard/users/{id}/role", h.page(admin, h.handleSetRole))
	h.mux.Handle("GET /dashboard/companies", h.page(admin, h.handleCompanies))
	h.mux.Handle("GET /dashboard/extension-policy", h.page(admin, h.handlePolicy))
	h.mux.Handle("POST /dashboard/extension-policy", h.page(admin, h.handleSavePolicy))

	h.mux.Handle("GET /login", h.withIdentity(http.HandlerFunc(h.handleLoginForm)))
	h.mux.Handle("POST /login", httpx.Chain(
		http.HandlerFunc(h.handleLogin),
		httpx.RateLimitByIPAndFormField(opts.LoginLimit, "email"),
	))
	h.mux.HandleFunc("POST /logout", h.handleLogout)

	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

// page guards next with the access gate for the given roles.
func (h *Handler) page(required access.RoleSet, next http.HandlerFunc) http.Handler {
	return h.withIdentity(gate(required, next))
}

// withIdentity resolves the caller from the session cookie, falling back to
// a bearer token. An invalid or expired token leaves the request anonymous.
func (h *Handler) withIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := ""
		if c, err := r.Cookie(CookieName); err == nil {
			raw = c.Value
		}
		if raw == "" {
			raw, _ = httpx.BearerToken(r)
		}
		if raw == "" {
			next.ServeHTTP(w, r)
			return
		}

		claims, err := h.opts.Verifier.Verify(raw)
		if err == nil {
			err = claims.ValidateExpiry()
		}
		if err != nil {
			slogx.FromContext(r.Context()).Debug("ignoring invalid dashboard token", slog.Any("error", err))
			next.ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(w, r.WithContext(httpx.WithIdentity(r.Context(), claims)))
	})
}

// gate applies the access decision: 302 to the decision's target unless the
// caller is allowed.
func gate(required access.RoleSet, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := httpx.IdentityFromContext(r.Context())

		d := access.Authorize(id, required)
		if d.Allowed() {
			next(w, r)
			return
		}

		if d.Outcome == access.DenyWithFallback {
			slogx.FromContext(r.Context()).Warn("dashboard page denied",
				slog.String("user_id", id.UserID),
				slog.String("role", id.Role.String()),
				slog.String("path", r.URL.Path),
			)
		}
		http.Redirect(w, r, d.Target, http.StatusFound)
	}
}
