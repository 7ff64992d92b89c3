package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/adminhub/internal/adminhub/metrics"
	"github.com/aussiebroadwan/adminhub/internal/adminhub/service"
	"github.com/aussiebroadwan/adminhub/internal/adminhub/store"
	"github.com/aussiebroadwan/adminhub/pkg/access"
	"github.com/aussiebroadwan/adminhub/pkg/httpx"
	"github.com/aussiebroadwan/adminhub/pkg/jwtx"
	"github.com/aussiebroadwan/adminhub/pkg/slogx"

	_ "github.com/aussiebroadwan/adminhub/api/adminhub" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	keys         *jwtx.KeySet
	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	limits       httpx.RateLimitProfiles

	store                  store.Store
	Metrics                *metrics.Metrics
	InviteService          *service.InviteService
	AuthService            *service.AuthService
	BootstrapService       *service.BootstrapService
	CompanyService         *service.CompanyService
	UserService            *service.UserService
	ExtensionPolicyService *service.ExtensionPolicyService
	Scheduler              *service.Scheduler
	ArchivingSecret        string

	// Dashboard serves the server-rendered pages. Optional.
	Dashboard http.Handler
}

func NewRouter(
	keys *jwtx.KeySet,
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	limits httpx.RateLimitProfiles,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		keys:         keys,
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		limits:       limits,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerInvites()
	r.registerCompanies()
	r.registerUsers()
	r.registerSystem()
	r.registerBootstrap()
	r.registerDashboard()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			AdminHub API
//	@version		0.1.0
//	@description	Administration backend for the browser extension platform: invite codes, companies, users and extension policies.
//	@description
//	@description				Access tokens are EdDSA signed JWTs and can be verified using the JWKS endpoint.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/adminhub
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// secured wraps h with bearer authentication, the role gate and a per-user
// rate limit.
func (r *Router) secured(h http.Handler, limit httpx.RateLimitConfig, roles ...access.Role) http.Handler {
	return httpx.Chain(h,
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireRole(roles...),
		httpx.RateLimitByUser(limit),
	)
}

func (r *Router) registerAuth() {
	// POST /token - strict rate limit by IP (credential endpoint)
	tokenHandler := &TokenHandler{AuthService: r.AuthService}
	r.Mux.Handle("POST /v1/auth/token",
		httpx.Chain(tokenHandler,
			httpx.RateLimitByIP(r.limits.Strict),
		),
	)

	resetHandler := &PasswordResetHandler{AuthService: r.AuthService}
	r.Mux.Handle("POST /v1/auth/password-reset",
		httpx.Chain(http.HandlerFunc(resetHandler.HandleRequest),
			httpx.RateLimitByIP(r.limits.Strict),
		),
	)
	r.Mux.Handle("POST /v1/auth/password-reset/confirm",
		httpx.Chain(http.HandlerFunc(resetHandler.HandleConfirm),
			httpx.RateLimitByIP(r.limits.Strict),
		),
	)

	// GET /jwks.json - public endpoint with high limit
	r.Mux.Handle("GET /.well-known/jwks.json",
		httpx.Chain(JWKSHandler(r.keys),
			httpx.RateLimitByIP(r.limits.Public),
		),
	)
}

func (r *Router) registerInvites() {
	validateHandler := &InviteValidateHandler{InviteService: r.InviteService}
	redeemHandler := &InviteRedeemHandler{InviteService: r.InviteService}
	adminHandler := &InviteAdminHandler{InviteService: r.InviteService}

	// Public invite validation, also used by the registration page
	r.Mux.Handle("GET /v1/invites/{code}",
		httpx.Chain(validateHandler,
			httpx.RateLimitByIP(r.limits.Public),
		),
	)
	r.Mux.Handle("GET /v1/invites/{$}",
		httpx.Chain(http.HandlerFunc(MissingInviteCodeHandler),
			httpx.RateLimitByIP(r.limits.Public),
		),
	)

	// POST /redeem - strict rate limit by IP (public signup endpoint)
	r.Mux.Handle("POST /v1/invites/{code}/redeem",
		httpx.Chain(redeemHandler,
			httpx.RateLimitByIP(r.limits.Strict),
		),
	)

	r.Mux.Handle("GET /v1/admin/invites",
		r.secured(http.HandlerFunc(adminHandler.HandleList), r.limits.Lenient, access.RoleAdmin))
	r.Mux.Handle("POST /v1/admin/invites",
		r.secured(http.HandlerFunc(adminHandler.HandleCreate), r.limits.Moderate, access.RoleAdmin))
}

func (r *Router) registerCompanies() {
	h := &CompaniesHandler{CompanyService: r.CompanyService}
	p := &ExtensionPolicyHandler{PolicyService: r.ExtensionPolicyService}

	// Reads are open to both roles; the tenant check narrows analysts to
	// their own company.
	r.Mux.Handle("GET /v1/companies",
		r.secured(http.HandlerFunc(h.HandleList), r.limits.Lenient, access.RoleAdmin, access.RoleAnalyst))
	r.Mux.Handle("GET /v1/companies/get",
		r.secured(http.HandlerFunc(h.HandleGet), r.limits.Lenient, access.RoleAdmin, access.RoleAnalyst))
	r.Mux.Handle("POST /v1/companies/update",
		r.secured(http.HandlerFunc(h.HandleUpdate), r.limits.Moderate, access.RoleAdmin))

	r.Mux.Handle("GET /v1/companies/{id}/extension-policy",
		r.secured(http.HandlerFunc(p.HandleGet), r.limits.Lenient, access.RoleAdmin, access.RoleAnalyst))
	r.Mux.Handle("PUT /v1/companies/{id}/extension-policy",
		r.secured(http.HandlerFunc(p.HandlePut), r.limits.Moderate, access.RoleAdmin))
}

func (r *Router) registerUsers() {
	h := &UsersHandler{UserService: r.UserService}

	r.Mux.Handle("GET /v1/users/search",
		r.secured(http.HandlerFunc(h.HandleSearch), r.limits.Moderate, access.RoleAdmin))
	r.Mux.Handle("POST /v1/users/{id}/role",
		r.secured(http.HandlerFunc(h.HandleSetRole), r.limits.Moderate, access.RoleAdmin))
}

func (r *Router) registerBootstrap() {
	// POST /bootstrap - very strict rate limit by IP (one-time setup endpoint)
	bootstrapHandler := &BootstrapHandler{BootstrapService: r.BootstrapService}
	r.Mux.Handle("POST /v1/bootstrap",
		httpx.Chain(bootstrapHandler,
			httpx.RateLimitByIP(r.limits.Strict),
		),
	)
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(r.limits.Lenient),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.keys, r.Scheduler),
			httpx.RateLimitByIP(r.limits.Lenient),
		),
	)
	r.Mux.Handle("GET /metrics", r.Metrics.Handler())

	// Archiving trigger, guarded by the shared secret
	initHandler := &InitServerHandler{Scheduler: r.Scheduler, SecretKey: r.ArchivingSecret}
	r.Mux.Handle("GET /v1/init-server",
		httpx.Chain(http.HandlerFunc(initHandler.HandleStatus),
			httpx.RateLimitByIP(r.limits.Lenient),
		),
	)
	r.Mux.Handle("POST /v1/init-server",
		httpx.Chain(http.HandlerFunc(initHandler.HandleTrigger),
			httpx.RateLimitByIP(r.limits.Strict),
		),
	)
}

func (r *Router) registerDashboard() {
	if r.Dashboard == nil {
		return
	}
	for _, pattern := range []string{"/dashboard", "/dashboard/", "/login", "/logout"} {
		r.Mux.Handle(pattern, r.Dashboard)
	}
	r.Mux.Handle("GET /{$}", http.RedirectHandler("/dashboard", http.StatusFound))
}
