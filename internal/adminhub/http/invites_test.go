package http

import (
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/adminhub/internal/adminhub/domain"
	"github.com/aussiebroadwan/adminhub/pkg/access"
	"github.com/aussiebroadwan/adminhub/pkg/adminsdk"
)

func TestInviteValidate(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	co := env.seedCompany("acme")
	env.seedInvite("WELCOME", co.ID, domain.InviteActive, time.Now().Add(24*time.Hour), "acme.example")
	env.seedInvite("LATE", co.ID, domain.InviteActive, time.Now().Add(-time.Minute))
	env.seedInvite("SPENT", co.ID, domain.InviteUsed, time.Now().Add(24*time.Hour))

	t.Run("active invite", func(t *testing.T) {
		rec := env.do(http.MethodGet, "/v1/invites/WELCOME", "", nil)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		resp := decode[adminsdk.InviteResponse](t, rec)
		require.True(t, resp.Success)
		require.Equal(t, "WELCOME", resp.Invite.Code)
		require.Equal(t, "active", resp.Invite.Status)
		require.Equal(t, []string{"acme.example"}, resp.Invite.AllowedDomains)
	})

	t.Run("case-insensitive fallback", func(t *testing.T) {
		rec := env.do(http.MethodGet, "/v1/invites/welcome", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "WELCOME", decode[adminsdk.InviteResponse](t, rec).Invite.Code)
	})

	t.Run("unknown code", func(t *testing.T) {
		requireError(t, env.do(http.MethodGet, "/v1/invites/NOPE", "", nil), http.StatusNotFound, adminsdk.ErrorCodeNotFound)
	})

	t.Run("past expiry is expired with snapshot", func(t *testing.T) {
		rec := env.do(http.MethodGet, "/v1/invites/LATE", "", nil)
		require.Equal(t, http.StatusBadRequest, rec.Code)

		resp := decode[adminsdk.ErrorResponse](t, rec)
		require.Equal(t, adminsdk.ErrorCodeInviteExpired, resp.Error)
		require.NotNil(t, resp.InviteData)
		require.Equal(t, "expired", resp.InviteData.Status)

		// The transition is persisted.
		rec = env.do(http.MethodGet, "/v1/invites/LATE", "", nil)
		require.Equal(t, "expired", decode[adminsdk.ErrorResponse](t, rec).InviteData.Status)
	})

	t.Run("used invite", func(t *testing.T) {
		rec := env.do(http.MethodGet, "/v1/invites/SPENT", "", nil)
		require.Equal(t, http.StatusBadRequest, rec.Code)

		resp := decode[adminsdk.ErrorResponse](t, rec)
		require.Equal(t, adminsdk.ErrorCodeInviteUsed, resp.Error)
		require.Equal(t, "used", resp.InviteData.Status)
	})

	t.Run("missing code", func(t *testing.T) {
		requireError(t, env.do(http.MethodGet, "/v1/invites/", "", nil), http.StatusBadRequest, adminsdk.ErrorCodeInvalidRequest)
	})

	t.Run("blank code", func(t *testing.T) {
		requireError(t, env.do(http.MethodGet, "/v1/invites/%20%20", "", nil), http.StatusBadRequest, adminsdk.ErrorCodeInvalidRequest)
	})
}

func TestInviteRedeem(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	co := env.seedCompany("acme")
	env.seedInvite("JOIN", co.ID, domain.InviteActive, time.Now().Add(time.Hour), "acme.example")

	t.Run("disallowed domain", func(t *testing.T) {
		rec := env.do(http.MethodPost, "/v1/invites/JOIN/redeem", "", adminsdk.RedeemInviteRequest{
			Email:    "someone@other.example",
			Password: testPassword,
		})
		requireError(t, rec, http.StatusForbidden, adminsdk.ErrorCodeDomainNotAllowed)
	})

	t.Run("weak password", func(t *testing.T) {
		rec := env.do(http.MethodPost, "/v1/invites/JOIN/redeem", "", adminsdk.RedeemInviteRequest{
			Email:    "new@acme.example",
			Password: "short",
		})
		requireError(t, rec, http.StatusBadRequest, adminsdk.ErrorCodeWeakPassword)
	})

	t.Run("creates role-less user and consumes invite", func(t *testing.T) {
		rec := env.do(http.MethodPost, "/v1/invites/JOIN/redeem", "", adminsdk.RedeemInviteRequest{
			Email:       "New@Acme.example",
			Password:    testPassword,
			DisplayName: "New Person",
		})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		resp := decode[adminsdk.UserResponse](t, rec)
		require.Equal(t, "new@acme.example", resp.User.Email)
		require.Equal(t, "", resp.User.Role)
		require.Equal(t, co.ID, resp.User.CompanyID)

		rec = env.do(http.MethodGet, "/v1/invites/JOIN", "", nil)
		require.Equal(t, adminsdk.ErrorCodeInviteUsed, decode[adminsdk.ErrorResponse](t, rec).Error)
	})

	t.Run("second redemption", func(t *testing.T) {
		rec := env.do(http.MethodPost, "/v1/invites/JOIN/redeem", "", adminsdk.RedeemInviteRequest{
			Email:    "late@acme.example",
			Password: testPassword,
		})
		requireError(t, rec, http.StatusBadRequest, adminsdk.ErrorCodeInviteUsed)
	})

	t.Run("unknown fields rejected", func(t *testing.T) {
		rec := env.do(http.MethodPost, "/v1/invites/JOIN/redeem", "", `{"email":"a@acme.example","password":"x","role":"admin"}`)
		requireError(t, rec, http.StatusBadRequest, adminsdk.ErrorCodeInvalidRequest)
	})
}

func TestAdminInvites(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	co := env.seedCompany("acme")
	admin := env.seedUser("boss@acme.example", access.RoleAdmin, co.ID)
	analyst := env.seedUser("numbers@acme.example", access.RoleAnalyst, co.ID)
	nobody := env.seedUser("fresh@acme.example", access.RoleNone, co.ID)

	expires := time.Now().Add(48 * time.Hour).Unix()
	body := `{"code":"SPRING","allowedDomains":["@Acme.example"],"expiresAt":` + strconv.FormatInt(expires, 10) + `}`

	t.Run("requires a token", func(t *testing.T) {
		requireError(t, env.do(http.MethodPost, "/v1/admin/invites", "", body), http.StatusUnauthorized, adminsdk.ErrorCodeUnauthorized)
	})

	t.Run("analyst is forbidden", func(t *testing.T) {
		requireError(t, env.do(http.MethodPost, "/v1/admin/invites", env.tokenFor(analyst), body), http.StatusForbidden, adminsdk.ErrorCodeForbidden)
	})

	t.Run("role-less user is unauthorized", func(t *testing.T) {
		requireError(t, env.do(http.MethodGet, "/v1/admin/invites", env.tokenFor(nobody), nil), http.StatusUnauthorized, adminsdk.ErrorCodeUnauthorized)
	})

	t.Run("admin creates invite", func(t *testing.T) {
		rec := env.do(http.MethodPost, "/v1/admin/invites", env.tokenFor(admin), body)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		inv := decode[adminsdk.InviteResponse](t, rec).Invite
		require.Equal(t, "SPRING", inv.Code)
		require.Equal(t, co.ID, inv.CompanyID)
		require.Equal(t, admin.ID, inv.CreatedBy)
		require.Equal(t, []string{"acme.example"}, inv.AllowedDomains)
		require.Equal(t, expires, inv.ExpiresAt.Unix())
	})

	t.Run("duplicate code ignoring case", func(t *testing.T) {
		dup := `{"code":"spring","allowedDomains":["acme.example"],"expiresAt":"` +
			time.Now().Add(time.Hour).UTC().Format(time.RFC3339) + `"}`
		requireError(t, env.do(http.MethodPost, "/v1/admin/invites", env.tokenFor(admin), dup), http.StatusBadRequest, adminsdk.ErrorCodeInviteCodeTaken)
	})

	t.Run("past expiry rejected", func(t *testing.T) {
		past := `{"code":"OLD","allowedDomains":["acme.example"],"expiresAt":"2020-01-01T00:00:00Z"}`
		requireError(t, env.do(http.MethodPost, "/v1/admin/invites", env.tokenFor(admin), past), http.StatusBadRequest, adminsdk.ErrorCodeInvalidRequest)
	})

	t.Run("admin lists invites", func(t *testing.T) {
		rec := env.do(http.MethodGet, "/v1/admin/invites", env.tokenFor(admin), nil)
		require.Equal(t, http.StatusOK, rec.Code)

		resp := decode[adminsdk.InviteListResponse](t, rec)
		require.Len(t, resp.Invites, 1)
		require.Equal(t, "SPRING", resp.Invites[0].Code)
	})
}
