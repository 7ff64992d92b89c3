package adminsdk

import (
	"context"
	"net/http"
)

// Token exchanges an email and password for an access token.
func (c *SDKClient) Token(ctx context.Context, email, password string) (*TokenResponse, error) {
	body, err := jsonBody(TokenRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/v1/auth/token", body, nil)
	if err != nil {
		return nil, err
	}

	var tok TokenResponse
	if err := decodeJSON(resp, &tok, http.StatusOK); err != nil {
		return nil, err
	}
	return &tok, nil
}

// Login authenticates with email and password and returns a Session.
func (c *SDKClient) Login(ctx context.Context, email, password string) (*Session, error) {
	tok, err := c.Token(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return newSession(c, tok), nil
}

// RequestPasswordReset asks the service to email a reset link. It succeeds
// whether or not the address belongs to an account.
func (c *SDKClient) RequestPasswordReset(ctx context.Context, email string) error {
	body, err := jsonBody(PasswordResetRequest{Email: email})
	if err != nil {
		return err
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/v1/auth/password-reset", body, nil)
	if err != nil {
		return err
	}

	var out SuccessResponse
	return decodeJSON(resp, &out, http.StatusOK)
}

// ConfirmPasswordReset sets a new password using a token from the reset email.
func (c *SDKClient) ConfirmPasswordReset(ctx context.Context, token, password string) error {
	body, err := jsonBody(PasswordResetConfirmRequest{Token: token, Password: password})
	if err != nil {
		return err
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/v1/auth/password-reset/confirm", body, nil)
	if err != nil {
		return err
	}

	var out SuccessResponse
	return decodeJSON(resp, &out, http.StatusOK)
}
