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

type ExtensionPolicyHandler struct {
	PolicyService *service.ExtensionPolicyService
}

// HandleGet godoc
//
//	@Summary		Get Extension Policy
//	@Description	Returns the current version of a company's browser extension policy.
//	@Tags			Companies
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string								true	"Company ID"
//	@Success		200	{object}	adminsdk.ExtensionPolicyResponse	"success, policy"
//	@Failure		403	{object}	adminsdk.ErrorResponse				"error, error_description"
//	@Failure		404	{object}	adminsdk.ErrorResponse				"error, error_description"
//	@Router			/v1/companies/{id}/extension-policy [get].
func (h *ExtensionPolicyHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	p, err := h.PolicyService.Get(ctx, httpx.IdentityFromContext(ctx), r.PathValue("id"))
	if err != nil {
		writePolicyError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, adminsdk.ExtensionPolicyResponse{Success: true, Policy: toPolicy(p)})
}

// HandlePut godoc
//
//	@Summary		Store Extension Policy
//	@Description	Stores document as the next policy version. A supplied version must equal the current one.
//	@Tags			Companies
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		string								true	"Company ID"
//	@Param			request	body		adminsdk.PutExtensionPolicyRequest	true	"document and optional version"
//	@Success		200		{object}	adminsdk.ExtensionPolicyResponse	"success, policy"
//	@Failure		400		{object}	adminsdk.ErrorResponse				"error, error_description"
//	@Failure		403		{object}	adminsdk.ErrorResponse				"error, error_description"
//	@Failure		409		{object}	adminsdk.ErrorResponse				"version_conflict"
//	@Router			/v1/companies/{id}/extension-policy [put].
func (h *ExtensionPolicyHandler) HandlePut(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req adminsdk.PutExtensionPolicyRequest
	if err := httpx.DecodeJSON(w, r, maxBodyBytes, &req); err != nil {
		adminsdk.ErrInvalidRequest.WithDescription("request body must be valid JSON").WriteError(w)
		return
	}

	p, err := h.PolicyService.Put(ctx, httpx.IdentityFromContext(ctx), r.PathValue("id"), req.Document, req.Version)
	if err != nil {
		writePolicyError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, adminsdk.ExtensionPolicyResponse{Success: true, Policy: toPolicy(p)})
}

func writePolicyError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidPolicy):
		adminsdk.ErrInvalidRequest.WithDescription("document must be a JSON object").WriteError(w)
	case errors.Is(err, service.ErrForbidden):
		adminsdk.ErrForbidden.WithDescription("you may not access this company").WriteError(w)
	case errors.Is(err, service.ErrPolicyNotFound):
		adminsdk.ErrNotFound.WithDescription("no extension policy for this company").WriteError(w)
	case errors.Is(err, service.ErrPolicyVersionConflict):
		adminsdk.ErrVersionConflict.WriteError(w)
	default:
		slogx.FromContext(r.Context()).Error("extension policy request failed", slog.Any("error", err))
		adminsdk.ErrServerError.WriteError(w)
	}
}
