package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/adminhub/internal/adminhub/service"
	"github.com/aussiebroadwan/adminhub/pkg/access"
	"github.com/aussiebroadwan/adminhub/pkg/adminsdk"
	"github.com/aussiebroadwan/adminhub/pkg/httpx"
	"github.com/aussiebroadwan/adminhub/pkg/slogx"
)

type UsersHandler struct {
	UserService *service.UserService
}

// HandleSearch godoc
//
//	@Summary		Search User by Email
//	@Description	Finds a user by exact email. Only addresses in the caller's own email domain can be searched.
//	@Tags			Users
//	@Produce		json
//	@Security		BearerAuth
//	@Param			email	query		string					true	"Email address"
//	@Success		200		{object}	adminsdk.UserResponse	"success, user"
//	@Failure		400		{object}	adminsdk.ErrorResponse	"error, error_description"
//	@Failure		401		{object}	adminsdk.ErrorResponse	"error, error_description"
//	@Failure		403		{object}	adminsdk.ErrorResponse	"error, error_description"
//	@Failure		404		{object}	adminsdk.ErrorResponse	"error, error_description"
//	@Router			/v1/users/search [get].
func (h *UsersHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	u, err := h.UserService.SearchByEmail(ctx, httpx.IdentityFromContext(ctx), r.URL.Query().Get("email"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidSearch):
			adminsdk.ErrInvalidRequest.WithDescription("email query parameter must be a full address").WriteError(w)
		case errors.Is(err, service.ErrForbidden):
			adminsdk.ErrForbidden.WithDescription("you may only search your own email domain").WriteError(w)
		case errors.Is(err, service.ErrUserNotFound):
			adminsdk.ErrNotFound.WithDescription("user not found").WriteError(w)
		default:
			slogx.FromContext(ctx).Error("user search failed", slog.Any("error", err))
			adminsdk.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, adminsdk.UserResponse{Success: true, User: toUser(u)})
}

// HandleSetRole godoc
//
//	@Summary		Set User Role
//	@Description	Assigns admin, analyst or no role to a user of the caller's company. Admins cannot demote themselves.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		string					true	"User ID"
//	@Param			request	body		adminsdk.SetRoleRequest	true	"New role"
//	@Success		200		{object}	adminsdk.UserResponse	"success, user"
//	@Failure		400		{object}	adminsdk.ErrorResponse	"error, error_description"
//	@Failure		401		{object}	adminsdk.ErrorResponse	"error, error_description"
//	@Failure		403		{object}	adminsdk.ErrorResponse	"error, error_description"
//	@Failure		404		{object}	adminsdk.ErrorResponse	"error, error_description"
//	@Router			/v1/users/{id}/role [post].
func (h *UsersHandler) HandleSetRole(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req adminsdk.SetRoleRequest
	if err := httpx.DecodeJSON(w, r, maxBodyBytes, &req); err != nil {
		adminsdk.ErrInvalidRequest.WithDescription("request body must be valid JSON").WriteError(w)
		return
	}

	// ParseRole would silently map a typo to no role.
	role := access.Role(strings.ToLower(strings.TrimSpace(req.Role)))
	if !role.Valid() {
		adminsdk.ErrInvalidRequest.WithDescription("role must be admin, analyst or empty").WriteError(w)
		return
	}

	u, err := h.UserService.SetRole(ctx, httpx.IdentityFromContext(ctx), r.PathValue("id"), role)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRole):
			adminsdk.ErrInvalidRequest.WithDescription("role must be admin, analyst or empty").WriteError(w)
		case errors.Is(err, service.ErrSelfDemotion):
			adminsdk.ErrForbidden.WithDescription("you cannot remove your own admin role").WriteError(w)
		case errors.Is(err, service.ErrForbidden):
			adminsdk.ErrForbidden.WithDescription("user belongs to another company").WriteError(w)
		case errors.Is(err, service.ErrUserNotFound):
			adminsdk.ErrNotFound.WithDescription("user not found").WriteError(w)
		default:
			slogx.FromContext(ctx).Error("set role failed", slog.Any("error", err))
			adminsdk.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, adminsdk.UserResponse{Success: true, User: toUser(u)})
}
