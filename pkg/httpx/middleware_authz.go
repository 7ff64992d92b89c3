package httpx

import (
	"net/http"

	"github.com/aussiebroadwan/adminhub/pkg/access"
	"github.com/aussiebroadwan/adminhub/pkg/slogx"
)

// RequireRole runs the access gate for API routes. A missing or role-less
// identity gets 401; an identity whose role is not in roles gets 403.
func RequireRole(roles ...access.Role) Middleware {
	required := access.Roles(roles...)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := IdentityFromContext(r.Context())

			switch d := access.Authorize(id, required); d.Outcome {
			case access.Allow:
				next.ServeHTTP(w, r)
			case access.Redirect:
				WriteJSON(w, http.StatusUnauthorized, map[string]string{
					"error":             "unauthorized",
					"error_description": "authentication with a platform role is required",
				})
			default:
				slogx.FromContext(r.Context()).Warn("role check denied",
					"user_id", id.UserID,
					"role", id.Role.String(),
					"path", r.URL.Path,
				)
				WriteJSON(w, http.StatusForbidden, map[string]string{
					"error":             "forbidden",
					"error_description": "insufficient role for this resource",
				})
			}
		})
	}
}
