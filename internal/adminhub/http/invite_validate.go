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

type InviteValidateHandler struct {
	InviteService *service.InviteService
}

// ServeHTTP godoc
//
//	@Summary		Validate Invite Code
//	@Description	Checks an invite code. An active invite past its expiry is marked expired before the response is written.
//	@Description	Expired and used invites return 400 with the invite snapshot in inviteData.
//	@Tags			Invitations
//	@Produce		json
//	@Param			code	path		string					true	"Invite code"
//	@Success		200		{object}	adminsdk.InviteResponse	"success, invite"
//	@Failure		400		{object}	adminsdk.ErrorResponse	"error, error_description, inviteData"
//	@Failure		404		{object}	adminsdk.ErrorResponse	"error, error_description"
//	@Failure		500		{object}	adminsdk.ErrorResponse	"error, error_description"
//	@Router			/v1/invites/{code} [get].
func (h *InviteValidateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	inv, err := h.InviteService.Validate(ctx, r.PathValue("code"), h.InviteService.Clock.Now())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidInviteRequest):
			adminsdk.ErrInvalidRequest.WithDescription("invite code is required").WriteError(w)
		case errors.Is(err, service.ErrInviteNotFound):
			adminsdk.ErrInviteNotFound.WriteError(w)
		case errors.Is(err, service.ErrInviteExpired):
			adminsdk.ErrInviteExpired.WithInvite(toInvite(inv)).WriteError(w)
		case errors.Is(err, service.ErrInviteAlreadyUsed):
			adminsdk.ErrInviteUsed.WithInvite(toInvite(inv)).WriteError(w)
		default:
			log.Error("failed to validate invite", slog.Any("error", err))
			adminsdk.ErrServerError.WithDescription("failed to validate invite").WriteError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, adminsdk.InviteResponse{
		Success: true,
		Invite:  toInvite(inv),
	})
}

// MissingInviteCodeHandler answers GET /v1/invites/ without a code.
func MissingInviteCodeHandler(w http.ResponseWriter, _ *http.Request) {
	adminsdk.ErrInvalidRequest.WithDescription("invite code is required").WriteError(w)
}
