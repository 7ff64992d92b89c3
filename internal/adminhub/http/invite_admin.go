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

// InviteAdminHandler serves the admin invite listing and creation.
type InviteAdminHandler struct {
	InviteService *service.InviteService
}

// HandleList godoc
//
//	@Summary		List Invites
//	@Description	Lists every invite, oldest first.
//	@Tags			Invitations
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	adminsdk.InviteListResponse	"success, invites"
//	@Failure		401	{object}	adminsdk.ErrorResponse		"error, error_description"
//	@Failure		403	{object}	adminsdk.ErrorResponse		"error, error_description"
//	@Failure		500	{object}	adminsdk.ErrorResponse		"error, error_description"
//	@Router			/v1/admin/invites [get].
func (h *InviteAdminHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	invites, err := h.InviteService.List(r.Context())
	if err != nil {
		adminsdk.ErrServerError.WithDescription("failed to list invites").WriteError(w)
		return
	}

	out := make([]adminsdk.Invite, 0, len(invites))
	for _, inv := range invites {
		out = append(out, toInvite(inv))
	}
	httpx.WriteJSON(w, http.StatusOK, adminsdk.InviteListResponse{Success: true, Invites: out})
}

// HandleCreate godoc
//
//	@Summary		Create Invite
//	@Description	Creates an active invite for the caller's company. expiresAt accepts RFC 3339 or unix seconds.
//	@Tags			Invitations
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		adminsdk.CreateInviteRequest	true	"Invite details"
//	@Success		201		{object}	adminsdk.InviteResponse			"success, invite"
//	@Failure		400		{object}	adminsdk.ErrorResponse			"error, error_description"
//	@Failure		401		{object}	adminsdk.ErrorResponse			"error, error_description"
//	@Failure		403		{object}	adminsdk.ErrorResponse			"error, error_description"
//	@Failure		500		{object}	adminsdk.ErrorResponse			"error, error_description"
//	@Router			/v1/admin/invites [post].
func (h *InviteAdminHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req adminsdk.CreateInviteRequest
	if err := httpx.DecodeJSON(w, r, maxBodyBytes, &req); err != nil {
		adminsdk.ErrInvalidRequest.WithDescription("request body must be valid JSON with an RFC 3339 or unix expiresAt").WriteError(w)
		return
	}

	inv, err := h.InviteService.CreateInvite(ctx, httpx.IdentityFromContext(ctx), service.CreateInviteParams{
		Code:           req.Code,
		AllowedDomains: req.AllowedDomains,
		ExpiresAt:      req.ExpiresAt.Time,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidInviteRequest):
			adminsdk.ErrInvalidRequest.WithDescription("code, allowedDomains and a future expiresAt are required").WriteError(w)
		case errors.Is(err, service.ErrInviteCodeTaken):
			adminsdk.ErrInviteCodeTaken.WriteError(w)
		case errors.Is(err, service.ErrForbidden):
			adminsdk.ErrForbidden.WriteError(w)
		default:
			log.Error("failed to create invite", slog.Any("error", err))
			adminsdk.ErrServerError.WithDescription("failed to create invite").WriteError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, adminsdk.InviteResponse{Success: true, Invite: toInvite(inv)})
}
