package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/aussiebroadwan/adminhub/internal/adminhub/service"
	"github.com/aussiebroadwan/adminhub/pkg/adminsdk"
	"github.com/aussiebroadwan/adminhub/pkg/httpx"
	"github.com/aussiebroadwan/adminhub/pkg/slogx"
)

type TokenHandler struct {
	AuthService *service.AuthService
}

// ServeHTTP godoc
//
//	@Summary		Token Endpoint
//	@Description	Exchanges an email and password for a signed access token carrying the user's role and company.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		adminsdk.TokenRequest	true	"Credentials"
//	@Success		200		{object}	adminsdk.TokenResponse	"success, accessToken, tokenType, expiresIn, role, companyId"
//	@Failure		400		{object}	adminsdk.ErrorResponse	"error, error_description"
//	@Failure		401		{object}	adminsdk.ErrorResponse	"invalid_credentials"
//	@Failure		500		{object}	adminsdk.ErrorResponse	"error, error_description"
//	@Router			/v1/auth/token [post].
func (h *TokenHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req adminsdk.TokenRequest
	if err := httpx.DecodeJSON(w, r, maxBodyBytes, &req); err != nil {
		adminsdk.ErrInvalidRequest.WithDescription("request body must be valid JSON").WriteError(w)
		return
	}

	tok, err := h.AuthService.Login(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			adminsdk.ErrInvalidCredentials.WriteError(w)
			return
		}
		log.Error("failed to issue token", slog.Any("error", err))
		adminsdk.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, adminsdk.TokenResponse{
		Success:     true,
		AccessToken: tok.AccessToken,
		TokenType:   "Bearer",
		ExpiresIn:   expiresInSeconds(tok.ExpiresIn),
		Role:        string(tok.User.Role),
		CompanyID:   tok.User.CompanyID,
	})
}
