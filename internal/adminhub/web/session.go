package web

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aussiebroadwan/adminhub/internal/adminhub/service"
	"github.com/aussiebroadwan/adminhub/pkg/access"
	"github.com/aussiebroadwan/adminhub/pkg/httpx"
	"github.com/aussiebroadwan/adminhub/pkg/slogx"
)

type loginForm struct {
	Email string
}

func (h *Handler) handleLoginForm(w http.ResponseWriter, r *http.Request) {
	// Already signed in with a role: go straight to the landing page.
	if id := httpx.IdentityFromContext(r.Context()); id.HasRole() {
		http.Redirect(w, r, access.FallbackFor(id.Role), http.StatusFound)
		return
	}
	render(w, r, http.StatusOK, "login.html", pageView{Title: "Sign in", Data: loginForm{}})
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	if err := r.ParseForm(); err != nil {
		render(w, r, http.StatusBadRequest, "login.html", pageView{Title: "Sign in", Error: "Invalid form submission.", Data: loginForm{}})
		return
	}
	form := loginForm{Email: strings.TrimSpace(r.PostFormValue("email"))}

	tok, err := h.opts.AuthService.Login(ctx, form.Email, r.PostFormValue("password"))
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			render(w, r, http.StatusUnauthorized, "login.html", pageView{Title: "Sign in", Error: "Incorrect email or password.", Data: form})
			return
		}
		log.Error("dashboard login failed", slog.Any("error", err))
		render(w, r, http.StatusInternalServerError, "login.html", pageView{Title: "Sign in", Error: "Sign in is unavailable, try again later.", Data: form})
		return
	}

	// A role-less account would bounce between the gate and this form.
	if tok.User.Role == access.RoleNone {
		log.Info("dashboard login without role", slog.String("user_id", tok.User.ID))
		render(w, r, http.StatusForbidden, "login.html", pageView{
			Title: "Sign in",
			Error: "Your account is waiting for an administrator to assign a role.",
			Data:  form,
		})
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    tok.AccessToken,
		Path:     "/",
		MaxAge:   int(tok.ExpiresIn / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   h.opts.SecureCookie,
	})
	http.Redirect(w, r, access.FallbackFor(tok.User.Role), http.StatusSeeOther)
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   h.opts.SecureCookie,
	})
	http.Redirect(w, r, access.LoginPath, http.StatusSeeOther)
}
