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

// CompaniesHandler serves company reads and updates behind the tenant check.
type CompaniesHandler struct {
	CompanyService *service.CompanyService
}

// HandleList godoc
//
//	@Summary		List Companies
//	@Description	Lists the companies the caller may read.
//	@Tags			Companies
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	adminsdk.CompanyListResponse	"success, companies"
//	@Failure		401	{object}	adminsdk.ErrorResponse			"error, error_description"
//	@Failure		500	{object}	adminsdk.ErrorResponse			"error, error_description"
//	@Router			/v1/companies [get].
func (h *CompaniesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	companies, err := h.CompanyService.List(ctx, httpx.IdentityFromContext(ctx))
	if err != nil {
		adminsdk.ErrServerError.WithDescription("failed to list companies").WriteError(w)
		return
	}

	out := make([]adminsdk.Company, 0, len(companies))
	for _, c := range companies {
		out = append(out, toCompany(c))
	}
	httpx.WriteJSON(w, http.StatusOK, adminsdk.CompanyListResponse{Success: true, Companies: out})
}

// HandleGet godoc
//
//	@Summary		Get Company
//	@Description	Returns a company. Without id the caller's own company is returned.
//	@Tags			Companies
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	query		string						false	"Company ID"
//	@Success		200	{object}	adminsdk.CompanyResponse	"success, company"
//	@Failure		400	{object}	adminsdk.ErrorResponse		"error, error_description"
//	@Failure		401	{object}	adminsdk.ErrorResponse		"error, error_description"
//	@Failure		403	{object}	adminsdk.ErrorResponse		"error, error_description"
//	@Failure		404	{object}	adminsdk.ErrorResponse		"error, error_description"
//	@Failure		500	{object}	adminsdk.ErrorResponse		"error, error_description"
//	@Router			/v1/companies/get [get].
func (h *CompaniesHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	c, err := h.CompanyService.Get(ctx, httpx.IdentityFromContext(ctx), r.URL.Query().Get("id"))
	if err != nil {
		writeCompanyError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, adminsdk.CompanyResponse{Success: true, Company: toCompany(c)})
}

// HandleUpdate godoc
//
//	@Summary		Update Company
//	@Description	Patches a company the caller administers. Omitted fields are unchanged; an extra value of null deletes that key.
//	@Tags			Companies
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		adminsdk.UpdateCompanyRequest	true	"companyId and data"
//	@Success		200		{object}	adminsdk.CompanyResponse		"success, company"
//	@Failure		400		{object}	adminsdk.ErrorResponse			"error, error_description"
//	@Failure		401		{object}	adminsdk.ErrorResponse			"error, error_description"
//	@Failure		403		{object}	adminsdk.ErrorResponse			"error, error_description"
//	@Failure		404		{object}	adminsdk.ErrorResponse			"error, error_description"
//	@Failure		500		{object}	adminsdk.ErrorResponse			"error, error_description"
//	@Router			/v1/companies/update [post].
func (h *CompaniesHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req adminsdk.UpdateCompanyRequest
	if err := httpx.DecodeJSON(w, r, maxBodyBytes, &req); err != nil {
		adminsdk.ErrInvalidRequest.WithDescription("request body must be valid JSON").WriteError(w)
		return
	}

	c, err := h.CompanyService.Update(ctx, httpx.IdentityFromContext(ctx), req.CompanyID, toCompanyPatch(req.Data))
	if err != nil {
		writeCompanyError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, adminsdk.CompanyResponse{Success: true, Company: toCompany(c)})
}

func writeCompanyError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCompanyRequest):
		adminsdk.ErrInvalidRequest.WithDescription("invalid company id or data").WriteError(w)
	case errors.Is(err, service.ErrForbidden):
		adminsdk.ErrForbidden.WithDescription("you may not access this company").WriteError(w)
	case errors.Is(err, service.ErrCompanyNotFound):
		adminsdk.ErrNotFound.WithDescription("company not found").WriteError(w)
	default:
		slogx.FromContext(r.Context()).Error("company request failed", slog.Any("error", err))
		adminsdk.ErrServerError.WriteError(w)
	}
}
