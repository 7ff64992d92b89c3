/*
Package adminsdk provides a client SDK for the AdminHub service together
with the wire types and error model the server itself uses.

# SDKClient vs Session

The package is organized around two main types:

  - SDKClient: unauthenticated operations (health, invites, password reset,
    bootstrap, archiving trigger) and login
  - Session: operations that need a dashboard access token

	client := adminsdk.NewSDKClient("https://admin.example.com")

	// Validate an invite before showing the registration form
	invite, err := client.ValidateInvite(ctx, "WELCOME-2026")

	// Log in to create a session
	session, err := client.Login(ctx, "ops@example.com", password)

	// Admin operations
	invites, err := session.ListInvites(ctx)
	company, err := session.GetCompany(ctx, "")

Sessions do not refresh. Once the access token expires every Session
method returns ErrSessionExpired and the caller logs in again.

# Errors

Every non-2xx response is returned as an *APIError. The predefined values
match with errors.Is on status and code:

	_, err := client.ValidateInvite(ctx, code)
	var apiErr *adminsdk.APIError
	if errors.As(err, &apiErr) && apiErr.Code == adminsdk.ErrorCodeInviteExpired {
		fmt.Println("expired at", apiErr.InviteData.ExpiresAt)
	}

Expired and used invites are reported with status 400 and carry the invite
snapshot in InviteData.

# Timestamps

CreateInviteRequest.ExpiresAt is a Timestamp, which accepts either an RFC
3339 string or unix seconds when decoded and always encodes as RFC 3339.
*/
package adminsdk
