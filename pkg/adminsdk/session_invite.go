package adminsdk

import (
	"context"
	"net/http"
)

// ListInvites returns every invite. Requires the admin role.
func (s *Session) ListInvites(ctx context.Context) ([]Invite, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/v1/admin/invites", nil)
	if err != nil {
		return nil, err
	}

	var out InviteListResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out.Invites, nil
}

// CreateInvite mints an invite for the caller's company. Requires the admin role.
func (s *Session) CreateInvite(ctx context.Context, req CreateInviteRequest) (*Invite, error) {
	body, err := jsonBody(req)
	if err != nil {
		return nil, err
	}

	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/v1/admin/invites", body)
	if err != nil {
		return nil, err
	}

	var out InviteResponse
	if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out.Invite, nil
}
