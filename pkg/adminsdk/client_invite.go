package adminsdk

import (
	"context"
	"net/http"
	"net/url"
)

// ValidateInvite checks an invite code. Expired and used invites come back
// as an *APIError whose InviteData holds the snapshot.
func (c *SDKClient) ValidateInvite(ctx context.Context, code string) (*Invite, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/v1/invites/"+url.PathEscape(code), nil, nil)
	if err != nil {
		return nil, err
	}

	var out InviteResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out.Invite, nil
}

// RedeemInvite registers an account with an invite code.
func (c *SDKClient) RedeemInvite(ctx context.Context, code string, req RedeemInviteRequest) (*User, error) {
	body, err := jsonBody(req)
	if err != nil {
		return nil, err
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/v1/invites/"+url.PathEscape(code)+"/redeem", body, nil)
	if err != nil {
		return nil, err
	}

	var out UserResponse
	if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out.User, nil
}
