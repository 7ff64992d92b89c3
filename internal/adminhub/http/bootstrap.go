package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/adminhub/internal/adminhub/domain"
	"github.com/aussiebroadwan/adminhub/internal/adminhub/service"
	"github.com/aussiebroadwan/adminhub/pkg/adminsdk"
	"github.com/aussiebroadwan/adminhub/pkg/httpx"
	"github.com/aussiebroadwan/adminhub/pkg/slogx"
)

type BootstrapHandler struct {
	BootstrapService *service.BootstrapService
}

// ServeHTTP handles the bootstrap endpoint for initial system setup.
//
//	@Summary		Bootstrap the service
//	@Description	Creates the first company and its administrator. Only available when a bootstrap token is configured and no users exist.
//	@Tags			Bootstrap
//	@Accept			json
//	@Produce		json
//	@Param			X-Bootstrap-Token	header		string						true	"Bootstrap token for authorization"
//	@Param			request				body		adminsdk.BootstrapRequest	true	"First company and admin"
//	@Success		201					{object}	adminsdk.BootstrapResponse	"success, companyId, adminUserId"
//	@Failure		400					{object}	adminsdk.ErrorResponse		"Invalid request body"
//	@Failure		401					{object}	adminsdk.ErrorResponse		"Missing or invalid bootstrap token, or system already bootstrapped"
//	@Failure		404					{object}	adminsdk.ErrorResponse		"Bootstrap not enabled (no token configured)"
//	@Failure		500					{object}	adminsdk.ErrorResponse		"Failed to create company or admin"
//	@Router			/v1/bootstrap [post].
func (h *BootstrapHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	l := slogx.FromContext(r.Context())
	l.Info("Starting to bootstrap")

	// 1. Check if enabled
	if !h.BootstrapService.Enabled() {
		adminsdk.ErrNotFound.WithDescription("bootstrap endpoint is not enabled").WriteError(w)
		return
	}

	// 2. Require bootstrap token header
	token := r.Header.Get("X-Bootstrap-Token")
	if token == "" {
		adminsdk.ErrUnauthorized.WithDescription("bootstrap token is required in X-Bootstrap-Token header").WriteError(w)
		return
	}

	// 3. Parse request body
	var req adminsdk.BootstrapRequest
	if err := httpx.DecodeJSON(w, r, maxBodyBytes, &req); err != nil {
		adminsdk.ErrInvalidRequest.WithDescription("request body must be valid JSON").WriteError(w)
		return
	}

	// 4. Perform bootstrap
	res, err := h.BootstrapService.Bootstrap(r.Context(), token, domain.BootstrapData{
		CompanyName:      req.CompanyName,
		AdminEmail:       req.AdminEmail,
		AdminDisplayName: req.AdminDisplayName,
		AdminPassword:    req.AdminPassword,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBootstrapAlready):
			adminsdk.ErrAlreadyInitialized.WriteError(w)
		case errors.Is(err, service.ErrBootstrapUnauthorized):
			adminsdk.ErrUnauthorized.WithDescription("invalid bootstrap token").WriteError(w)
		case errors.Is(err, service.ErrInvalidBootstrapRequest):
			adminsdk.ErrInvalidRequest.WithDescription("companyName and a valid adminEmail are required").WriteError(w)
		case errors.Is(err, service.ErrWeakPassword):
			adminsdk.ErrWeakPassword.WriteError(w)
		default:
			l.Error("bootstrap failed", "error", err)
			adminsdk.ErrServerError.WithDescription("an internal error occurred").WriteError(w)
		}
		return
	}

	// 5. Respond with created IDs
	httpx.WriteJSON(w, http.StatusCreated, adminsdk.BootstrapResponse{
		Success:     true,
		CompanyID:   res.CompanyID,
		AdminUserID: res.AdminUserID,
	})
}
