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

type PasswordResetHandler struct {
	AuthService *service.AuthService
}

// HandleRequest godoc
//
//	@Summary		Request Password Reset
//	@Description	Emails a one-time reset link when the address belongs to an account. Always answers 200.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		adminsdk.PasswordResetRequest	true	"Account email"
//	@Success		200		{object}	adminsdk.SuccessResponse		"success"
//	@Failure		400		{object}	adminsdk.ErrorResponse			"error, error_description"
//	@Failure		500		{object}	adminsdk.ErrorResponse			"error, error_description"
//	@Router			/v1/auth/password-reset [post].
func (h *PasswordResetHandler) HandleRequest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req adminsdk.PasswordResetRequest
	if err := httpx.DecodeJSON(w, r, maxBodyBytes, &req); err != nil {
		adminsdk.ErrInvalidRequest.WithDescription("request body must be valid JSON").WriteError(w)
		return
	}

	if err := h.AuthService.RequestPasswordReset(ctx, req.Email); err != nil {
		slogx.FromContext(ctx).Error("failed to request password reset", slog.Any("error", err))
		adminsdk.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, adminsdk.SuccessResponse{Success: true})
}

// HandleConfirm godoc
//
//	@Summary		Confirm Password Reset
//	@Description	Sets a new password with a token from the reset email. Tokens are single use.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		adminsdk.PasswordResetConfirmRequest	true	"Token and new password"
//	@Success		200		{object}	adminsdk.SuccessResponse				"success"
//	@Failure		400		{object}	adminsdk.ErrorResponse					"invalid_token, weak_password"
//	@Failure		500		{object}	adminsdk.ErrorResponse					"error, error_description"
//	@Router			/v1/auth/password-reset/confirm [post].
func (h *PasswordResetHandler) HandleConfirm(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req adminsdk.PasswordResetConfirmRequest
	if err := httpx.DecodeJSON(w, r, maxBodyBytes, &req); err != nil {
		adminsdk.ErrInvalidRequest.WithDescription("request body must be valid JSON").WriteError(w)
		return
	}

	err := h.AuthService.ConfirmPasswordReset(ctx, req.Token, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidResetToken):
			adminsdk.ErrInvalidToken.WriteError(w)
		case errors.Is(err, service.ErrWeakPassword):
			adminsdk.ErrWeakPassword.WriteError(w)
		default:
			slogx.FromContext(ctx).Error("failed to confirm password reset", slog.Any("error", err))
			adminsdk.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, adminsdk.SuccessResponse{Success: true})
}
