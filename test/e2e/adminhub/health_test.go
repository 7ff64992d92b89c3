package adminhub_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/adminhub/pkg/adminsdk"
)

func TestHealthEndpoints(t *testing.T) {
	baseURL, cleanup := setupContainer(t)
	defer cleanup()

	client := adminsdk.NewSDKClient(baseURL)

	t.Run("Liveness", func(t *testing.T) {
		health, err := client.GetLiveness(t.Context())
		assertHealthy(t, health, err)
		require.NotEmpty(t, health.Uptime)
	})

	t.Run("Readiness", func(t *testing.T) {
		health, err := client.GetReadiness(t.Context())
		assertHealthy(t, health, err)
		require.NotNil(t, health.Checks)
		require.Equal(t, "ok", health.Checks.Database)
		require.Equal(t, "ok", health.Checks.Signer)
		require.Equal(t, "ok", health.Checks.Scheduler)
	})

	t.Run("JWKS", func(t *testing.T) {
		jwks, err := client.GetJWKS(t.Context())
		require.NoError(t, err)
		require.Len(t, jwks.Keys, 1)
		require.Equal(t, "OKP", jwks.Keys[0].Kty)
		require.Equal(t, "Ed25519", jwks.Keys[0].Crv)
		require.NotEmpty(t, jwks.Keys[0].Kid)
	})
}

func TestBootstrap(t *testing.T) {
	baseURL, cleanup := setupContainer(t)
	defer cleanup()

	client := adminsdk.NewSDKClient(baseURL)

	t.Run("WrongToken", func(t *testing.T) {
		_, err := client.Bootstrap(t.Context(), "not-the-token", adminsdk.BootstrapRequest{
			CompanyName:   companyName,
			AdminEmail:    adminEmail,
			AdminPassword: adminPassword,
		})
		requireAPIError(t, err, 401, adminsdk.ErrorCodeUnauthorized)
	})

	admin := bootstrapAdmin(t, client)

	t.Run("OnlyOnce", func(t *testing.T) {
		_, err := client.Bootstrap(t.Context(), bootstrapToken, adminsdk.BootstrapRequest{
			CompanyName:   "Second Corp",
			AdminEmail:    "admin@second.example",
			AdminPassword: adminPassword,
		})
		requireAPIError(t, err, 401, adminsdk.ErrorCodeAlreadyInitialized)
	})

	t.Run("AdminSeesOwnCompany", func(t *testing.T) {
		company, err := admin.GetCompany(t.Context(), "")
		require.NoError(t, err)
		require.Equal(t, admin.CompanyID(), company.ID)
		require.Equal(t, companyName, company.Name)
		require.Equal(t, "acme-corp", company.Slug)
		require.Equal(t, "active", company.Status)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		_, err := client.Login(t.Context(), adminEmail, "wrong-password")
		requireAPIError(t, err, 401, adminsdk.ErrorCodeInvalidCredentials)
	})
}
