package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/aussiebroadwan/adminhub/internal/adminhub/domain"
	"github.com/aussiebroadwan/adminhub/internal/adminhub/service"
	"github.com/aussiebroadwan/adminhub/pkg/access"
	"github.com/aussiebroadwan/adminhub/pkg/httpx"
	"github.com/aussiebroadwan/adminhub/pkg/slogx"
)

const defaultInviteDays = 7

type inviteCounts struct {
	Active, Used, Expired, Total int
}

func countInvites(invites []domain.Invite) inviteCounts {
	var c inviteCounts
	for _, inv := range invites {
		switch inv.Status {
		case domain.InviteActive:
			c.Active++
		case domain.InviteUsed:
			c.Used++
		case domain.InviteExpired:
			c.Expired++
		}
	}
	c.Total = len(invites)
	return c
}

type roleCounts struct {
	Admins, Analysts, None int
}

func countRoles(users []domain.User) roleCounts {
	var c roleCounts
	for _, u := range users {
		switch u.Role {
		case access.RoleAdmin:
			c.Admins++
		case access.RoleAnalyst:
			c.Analysts++
		default:
			c.None++
		}
	}
	return c
}

type overviewData struct {
	Company      domain.Company
	Invites      inviteCounts
	UserCount    int
	PendingUsers int
	Scheduler    service.SchedulerStatus
}

func (h *Handler) handleOverview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := httpx.IdentityFromContext(ctx)

	company, err := h.opts.CompanyService.Get(ctx, id, "")
	if err != nil {
		h.renderFailure(w, r, id, "Overview", err)
		return
	}
	invites, err := h.opts.InviteService.ListByCompany(ctx, id.CompanyID)
	if err != nil {
		h.renderFailure(w, r, id, "Overview", err)
		return
	}
	users, err := h.opts.UserService.ListByCompany(ctx, id, "")
	if err != nil {
		h.renderFailure(w, r, id, "Overview", err)
		return
	}

	data := overviewData{
		Company:      company,
		Invites:      countInvites(invites),
		UserCount:    len(users),
		PendingUsers: countRoles(users).None,
	}
	if h.opts.Scheduler != nil {
		data.Scheduler = h.opts.Scheduler.Status()
	}
	render(w, r, http.StatusOK, "dashboard.html", pageView{Title: "Overview", Identity: id, Data: data})
}

type analyticsData struct {
	Invites   inviteCounts
	Roles     roleCounts
	Companies []domain.Company
}

func (h *Handler) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := httpx.IdentityFromContext(ctx)

	invites, err := h.opts.InviteService.ListByCompany(ctx, id.CompanyID)
	if err != nil {
		h.renderFailure(w, r, id, "Analytics", err)
		return
	}
	users, err := h.opts.UserService.ListByCompany(ctx, id, "")
	if err != nil {
		h.renderFailure(w, r, id, "Analytics", err)
		return
	}
	companies, err := h.opts.CompanyService.List(ctx, id)
	if err != nil {
		h.renderFailure(w, r, id, "Analytics", err)
		return
	}

	render(w, r, http.StatusOK, "analytics.html", pageView{
		Title:    "Analytics",
		Identity: id,
		Data: analyticsData{
			Invites:   countInvites(invites),
			Roles:     countRoles(users),
			Companies: companies,
		},
	})
}

type inviteForm struct {
	Code    string
	Domains string
	Days    int
}

type invitesData struct {
	Form    inviteForm
	Invites []domain.Invite
}

func (h *Handler) handleInvites(w http.ResponseWriter, r *http.Request) {
	view := pageView{Title: "Invites"}
	if code := r.URL.Query().Get("created"); code != "" {
		view.Flash = "Invite " + code + " created."
	}
	h.renderInvites(w, r, http.StatusOK, view, inviteForm{Days: defaultInviteDays})
}

func (h *Handler) handleCreateInvite(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := httpx.IdentityFromContext(ctx)

	form := inviteForm{
		Code:    strings.TrimSpace(r.PostFormValue("code")),
		Domains: r.PostFormValue("domains"),
		Days:    defaultInviteDays,
	}
	if days, err := strconv.Atoi(r.PostFormValue("days")); err == nil {
		form.Days = days
	}

	view := pageView{Title: "Invites"}
	if form.Days < 1 || form.Days > 365 {
		view.Error = "Validity must be between 1 and 365 days."
		h.renderInvites(w, r, http.StatusBadRequest, view, form)
		return
	}

	inv, err := h.opts.InviteService.CreateInvite(ctx, id, service.CreateInviteParams{
		Code:           form.Code,
		AllowedDomains: strings.Split(form.Domains, ","),
		ExpiresAt:      h.opts.InviteService.Clock.Now().Add(time.Duration(form.Days) * 24 * time.Hour),
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInviteCodeTaken):
			view.Error = "That invite code is already taken."
		case errors.Is(err, service.ErrInvalidInviteRequest):
			view.Error = "Enter a code and at least one valid email domain."
		default:
			slogx.FromContext(ctx).Error("dashboard invite create failed", slog.Any("error", err))
			view.Error = "The invite could not be created."
			h.renderInvites(w, r, http.StatusInternalServerError, view, form)
			return
		}
		h.renderInvites(w, r, http.StatusBadRequest, view, form)
		return
	}

	http.Redirect(w, r, "/dashboard/invites?created="+inv.Code, http.StatusSeeOther)
}

func (h *Handler) renderInvites(w http.ResponseWriter, r *http.Request, status int, view pageView, form inviteForm) {
	ctx := r.Context()
	id := httpx.IdentityFromContext(ctx)

	invites, err := h.opts.InviteService.ListByCompany(ctx, id.CompanyID)
	if err != nil {
		h.renderFailure(w, r, id, "Invites", err)
		return
	}
	view.Identity = id
	view.Data = invitesData{Form: form, Invites: invites}
	render(w, r, status, "invites.html", view)
}

type usersData struct {
	Users []domain.User
}

func (h *Handler) handleUsers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := httpx.IdentityFromContext(ctx)

	users, err := h.opts.UserService.ListByCompany(ctx, id, "")
	if err != nil {
		h.renderFailure(w, r, id, "Users", err)
		return
	}

	view := pageView{Title: "Users", Identity: id, Data: usersData{Users: users}}
	if r.URL.Query().Get("saved") != "" {
		view.Flash = "Role updated."
	}
	render(w, r, http.StatusOK, "users.html", view)
}

func (h *Handler) handleSetRole(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := httpx.IdentityFromContext(ctx)

	role := access.Role(strings.ToLower(strings.TrimSpace(r.PostFormValue("role"))))
	if _, err := h.opts.UserService.SetRole(ctx, id, r.PathValue("id"), role); err != nil {
		h.renderFailure(w, r, id, "Users", err)
		return
	}
	http.Redirect(w, r, "/dashboard/users?saved=1", http.StatusSeeOther)
}

type companiesData struct {
	Companies []domain.Company
}

func (h *Handler) handleCompanies(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := httpx.IdentityFromContext(ctx)

	companies, err := h.opts.CompanyService.List(ctx, id)
	if err != nil {
		h.renderFailure(w, r, id, "Companies", err)
		return
	}
	render(w, r, http.StatusOK, "companies.html", pageView{
		Title:    "Companies",
		Identity: id,
		Data:     companiesData{Companies: companies},
	})
}

type policyData struct {
	Version   int
	UpdatedAt time.Time
	Document  string
}

func (h *Handler) handlePolicy(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := httpx.IdentityFromContext(ctx)

	data := policyData{Document: "{}"}
	p, err := h.opts.ExtensionPolicyService.Get(ctx, id, "")
	switch {
	case err == nil:
		data = policyData{Version: p.Version, UpdatedAt: p.UpdatedAt, Document: indentJSON(p.Document)}
	case errors.Is(err, service.ErrPolicyNotFound):
	default:
		h.renderFailure(w, r, id, "Extension policy", err)
		return
	}

	view := pageView{Title: "Extension policy", Identity: id, Data: data}
	if r.URL.Query().Get("saved") != "" {
		view.Flash = "Policy saved."
	}
	render(w, r, http.StatusOK, "extension_policy.html", view)
}

func (h *Handler) handleSavePolicy(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := httpx.IdentityFromContext(ctx)

	doc := r.PostFormValue("document")
	version, err := strconv.Atoi(r.PostFormValue("version"))
	if err != nil {
		version = 0
	}

	_, err = h.opts.ExtensionPolicyService.Put(ctx, id, "", json.RawMessage(doc), &version)
	if err == nil {
		http.Redirect(w, r, "/dashboard/extension-policy?saved=1", http.StatusSeeOther)
		return
	}

	view := pageView{
		Title:    "Extension policy",
		Identity: id,
		Data:     policyData{Version: version, Document: doc},
	}
	switch {
	case errors.Is(err, service.ErrInvalidPolicy):
		view.Error = "The policy must be a JSON object."
		render(w, r, http.StatusBadRequest, "extension_policy.html", view)
	case errors.Is(err, service.ErrPolicyVersionConflict):
		view.Error = "Someone else saved the policy first. Reload to see the current version."
		render(w, r, http.StatusConflict, "extension_policy.html", view)
	default:
		h.renderFailure(w, r, id, "Extension policy", err)
	}
}

// renderFailure shows a service error on a bare page.
func (h *Handler) renderFailure(w http.ResponseWriter, r *http.Request, id *access.Identity, title string, err error) {
	status, msg := http.StatusInternalServerError, "Something went wrong."
	switch {
	case errors.Is(err, service.ErrForbidden), errors.Is(err, service.ErrSelfDemotion):
		status, msg = http.StatusForbidden, "You are not allowed to do that."
	case errors.Is(err, service.ErrUserNotFound), errors.Is(err, service.ErrCompanyNotFound):
		status, msg = http.StatusNotFound, "Not found."
	case errors.Is(err, service.ErrInvalidRole), errors.Is(err, service.ErrInvalidCompanyRequest):
		status, msg = http.StatusBadRequest, "Invalid request."
	default:
		slogx.FromContext(r.Context()).Error("dashboard page failed",
			slog.String("page", title),
			slog.Any("error", err),
		)
	}
	render(w, r, status, "error.html", pageView{Title: title, Identity: id, Error: msg})
}

func indentJSON(raw json.RawMessage) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return string(raw)
	}
	return buf.String()
}
