package adminsdk

import (
	"context"
	"net/http"
	"net/url"
)

// SearchUser looks up a user by exact email within the caller's email
// domain. Requires the admin role.
func (s *Session) SearchUser(ctx context.Context, email string) (*User, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/v1/users/search?email="+url.QueryEscape(email), nil)
	if err != nil {
		return nil, err
	}

	var out UserResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// SetUserRole assigns a platform role. Requires the admin role.
func (s *Session) SetUserRole(ctx context.Context, userID, role string) (*User, error) {
	body, err := jsonBody(SetRoleRequest{Role: role})
	if err != nil {
		return nil, err
	}

	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/v1/users/"+url.PathEscape(userID)+"/role", body)
	if err != nil {
		return nil, err
	}

	var out UserResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out.User, nil
}
