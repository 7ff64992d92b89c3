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

type InviteRedeemHandler struct {
	InviteService *service.InviteService
}

// ServeHTTP godoc
//
//	@Summary		Redeem Invitation Endpoint
//	@Description	Registers a new account with an invite code. The account has no role until an admin assigns one.
//	@Tags			Invitations
//	@Accept			json
//	@Produce		json
//	@Param			code	path		string							true	"Invite code"
//	@Param			request	body		adminsdk.RedeemInviteRequest	true	"Registration details"
//	@Success		201		{object}	adminsdk.UserResponse			"success, user"
//	@Failure		400		{object}	adminsdk.ErrorResponse			"error, error_description"
//	@Failure		403		{object}	adminsdk.ErrorResponse			"domain_not_allowed"
//	@Failure		404		{object}	adminsdk.ErrorResponse			"error, error_description"
//	@Failure		500		{object}	adminsdk.ErrorResponse			"error, error_description"
//	@Router			/v1/invites/{code}/redeem [post].
func (h *InviteRedeemHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req adminsdk.RedeemInviteRequest
	if err := httpx.DecodeJSON(w, r, maxBodyBytes, &req); err != nil {
		adminsdk.ErrInvalidRequest.WithDescription("request body must be valid JSON").WriteError(w)
		return
	}
	if req.Email == "" || req.Password == "" {
		adminsdk.ErrInvalidRequest.WithDescription("email and password are required").WriteError(w)
		return
	}

	user, err := h.InviteService.Redeem(ctx, service.RedeemParams{
		Code:        r.PathValue("code"),
		Email:       req.Email,
		Password:    req.Password,
		DisplayName: req.DisplayName,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidInviteRequest):
			adminsdk.ErrInvalidRequest.WithDescription("invite code is required").WriteError(w)
		case errors.Is(err, service.ErrInvalidEmail):
			adminsdk.ErrInvalidRequest.WithDescription("email address is invalid").WriteError(w)
		case errors.Is(err, service.ErrWeakPassword):
			adminsdk.ErrWeakPassword.WriteError(w)
		case errors.Is(err, service.ErrInviteNotFound):
			adminsdk.ErrInviteNotFound.WriteError(w)
		case errors.Is(err, service.ErrInviteExpired):
			adminsdk.ErrInviteExpired.WriteError(w)
		case errors.Is(err, service.ErrInviteAlreadyUsed):
			adminsdk.ErrInviteUsed.WriteError(w)
		case errors.Is(err, service.ErrDomainNotAllowed):
			adminsdk.ErrDomainNotAllowed.WriteError(w)
		case errors.Is(err, service.ErrEmailTaken):
			adminsdk.ErrEmailTaken.WriteError(w)
		default:
			log.Error("failed to redeem invite", slog.Any("error", err))
			adminsdk.ErrServerError.WithDescription("failed to redeem invite").WriteError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, adminsdk.UserResponse{
		Success: true,
		User:    toUser(user),
	})
}
