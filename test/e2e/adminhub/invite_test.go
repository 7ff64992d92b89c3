package adminhub_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/adminhub/pkg/adminsdk"
)

// TestInviteLifecycle walks an invite from creation to redemption:
// 1. Bootstrap and login as admin
// 2. Create an invite restricted to the company domain
// 3. Validate it anonymously
// 4. Redeem it with a disallowed, then an allowed email
// 5. Check the invite is now used and the member has no role yet
func TestInviteLifecycle(t *testing.T) {
	baseURL, cleanup := setupContainer(t)
	defer cleanup()

	client := adminsdk.NewSDKClient(baseURL)
	admin := bootstrapAdmin(t, client)

	// Step 2
	inv := createInvite(t, admin, "WELCOME-2026")
	require.Equal(t, admin.CompanyID(), inv.CompanyID)
	require.Equal(t, []string{inviteDomain}, inv.AllowedDomains)

	// Step 3: lookups ignore case
	validated, err := client.ValidateInvite(t.Context(), "welcome-2026")
	require.NoError(t, err)
	require.Equal(t, inv.ID, validated.ID)
	require.Equal(t, "active", validated.Status)

	_, err = client.ValidateInvite(t.Context(), "NO-SUCH-CODE")
	requireAPIError(t, err, 404, adminsdk.ErrorCodeNotFound)

	// Step 4
	_, err = client.RedeemInvite(t.Context(), inv.Code, adminsdk.RedeemInviteRequest{
		Email:    "mallory@" + outsiderDomain,
		Password: memberPassword,
	})
	requireAPIError(t, err, 403, adminsdk.ErrorCodeDomainNotAllowed)

	_, err = client.RedeemInvite(t.Context(), inv.Code, adminsdk.RedeemInviteRequest{
		Email:    "alice@" + inviteDomain,
		Password: "short",
	})
	requireAPIError(t, err, 400, adminsdk.ErrorCodeWeakPassword)

	user, err := client.RedeemInvite(t.Context(), inv.Code, adminsdk.RedeemInviteRequest{
		Email:       "Alice@" + inviteDomain,
		Password:    memberPassword,
		DisplayName: "Alice",
	})
	require.NoError(t, err)
	require.Equal(t, "alice@"+inviteDomain, user.Email)
	require.Equal(t, admin.CompanyID(), user.CompanyID)
	require.Empty(t, user.Role)

	// Step 5
	_, err = client.ValidateInvite(t.Context(), inv.Code)
	apiErr := requireAPIError(t, err, 400, adminsdk.ErrorCodeInviteUsed)
	require.NotNil(t, apiErr.InviteData)
	require.Equal(t, "used", apiErr.InviteData.Status)
	require.Equal(t, user.ID, apiErr.InviteData.UsedBy)

	_, err = client.RedeemInvite(t.Context(), inv.Code, adminsdk.RedeemInviteRequest{
		Email:    "bob@" + inviteDomain,
		Password: memberPassword,
	})
	requireAPIError(t, err, 400, adminsdk.ErrorCodeInviteUsed)

	invites, err := admin.ListInvites(t.Context())
	require.NoError(t, err)
	require.Len(t, invites, 1)
	require.Equal(t, "used", invites[0].Status)
}

func TestInviteAdministration(t *testing.T) {
	baseURL, cleanup := setupContainer(t)
	defer cleanup()

	client := adminsdk.NewSDKClient(baseURL)
	admin := bootstrapAdmin(t, client)

	t.Run("DuplicateCode", func(t *testing.T) {
		createInvite(t, admin, "TEAM")
		_, err := admin.CreateInvite(t.Context(), adminsdk.CreateInviteRequest{
			Code:           "team",
			AllowedDomains: []string{inviteDomain},
			ExpiresAt:      adminsdk.Timestamp{Time: time.Now().Add(time.Hour)},
		})
		requireAPIError(t, err, 400, adminsdk.ErrorCodeInviteCodeTaken)
	})

	t.Run("PastExpiry", func(t *testing.T) {
		_, err := admin.CreateInvite(t.Context(), adminsdk.CreateInviteRequest{
			Code:           "LATE",
			AllowedDomains: []string{inviteDomain},
			ExpiresAt:      adminsdk.Timestamp{Time: time.Now().Add(-time.Hour)},
		})
		requireAPIError(t, err, 400, adminsdk.ErrorCodeInvalidRequest)
	})

	t.Run("MemberWithoutRoleIsRejected", func(t *testing.T) {
		createInvite(t, admin, "NOROLE")
		_, err := client.RedeemInvite(t.Context(), "NOROLE", adminsdk.RedeemInviteRequest{
			Email:    "carol@" + inviteDomain,
			Password: memberPassword,
		})
		require.NoError(t, err)

		member, err := client.Login(t.Context(), "carol@"+inviteDomain, memberPassword)
		require.NoError(t, err)
		require.Empty(t, member.Role())

		_, err = member.ListInvites(t.Context())
		requireAPIError(t, err, 401, adminsdk.ErrorCodeUnauthorized)
	})

	t.Run("AnalystCannotCreate", func(t *testing.T) {
		analyst := joinWithRole(t, client, admin, "dave@"+inviteDomain, "analyst")
		_, err := analyst.CreateInvite(t.Context(), adminsdk.CreateInviteRequest{
			Code:           "SNEAKY",
			AllowedDomains: []string{inviteDomain},
			ExpiresAt:      adminsdk.Timestamp{Time: time.Now().Add(time.Hour)},
		})
		requireAPIError(t, err, 403, adminsdk.ErrorCodeForbidden)
	})
}
