package adminhub_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/adminhub/pkg/adminsdk"
)

// TestRateLimitTokenEndpoint verifies that /v1/auth/token is rate limited
// with the strict profile (5 req/min).
func TestRateLimitTokenEndpoint(t *testing.T) {
	baseURL, cleanup := setupContainerWithDefaultRateLimits(t)
	defer cleanup()

	client := adminsdk.NewSDKClient(baseURL)
	bootstrapAdmin(t, client)

	// The bootstrap login above used one of the five slots.
	for i := range 4 {
		_, err := client.Token(t.Context(), adminEmail, "wrong-password")
		requireAPIError(t, err, 401, adminsdk.ErrorCodeInvalidCredentials)
		t.Logf("request %d rejected with invalid credentials", i+2)
	}

	_, err := client.Token(t.Context(), adminEmail, adminPassword)
	requireAPIError(t, err, 429, adminsdk.ErrorCodeRateLimited)
}

// TestRateLimitInviteValidation verifies the public lookup uses its own
// bucket and is not affected by strict endpoints.
func TestRateLimitInviteValidation(t *testing.T) {
	baseURL, cleanup := setupContainerWithDefaultRateLimits(t)
	defer cleanup()

	client := adminsdk.NewSDKClient(baseURL)

	// Public burst is 30.
	var limited bool
	for range 40 {
		_, err := client.ValidateInvite(t.Context(), "MISSING")
		var apiErr *adminsdk.APIError
		require.ErrorAs(t, err, &apiErr)
		if apiErr.StatusCode == 429 {
			limited = true
			break
		}
		require.Equal(t, 404, apiErr.StatusCode)
	}
	require.True(t, limited, "expected invite lookups to be rate limited")

	health, err := client.GetLiveness(t.Context())
	assertHealthy(t, health, err)
}
