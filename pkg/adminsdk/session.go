package adminsdk

import (
	"errors"
	"sync"
	"time"
)

// ErrSessionExpired is returned by Session methods once the access token
// has expired. There are no refresh tokens; log in again.
var ErrSessionExpired = errors.New("adminsdk: session expired")

// Session is an authenticated session holding a dashboard access token.
type Session struct {
	client *SDKClient

	mu          sync.RWMutex
	accessToken string
	expiresAt   time.Time
	role        string
	companyID   string
}

// newSession creates a session from a token response.
func newSession(client *SDKClient, tok *TokenResponse) *Session {
	expiresAt := time.Now().Add(time.Duration(tok.ExpiresIn) * time.Second)

	// 30 second buffer so requests never race the server's expiry check
	expiresAt = expiresAt.Add(-30 * time.Second)

	return &Session{
		client:      client,
		accessToken: tok.AccessToken,
		expiresAt:   expiresAt,
		role:        tok.Role,
		companyID:   tok.CompanyID,
	}
}

// NewSessionFromToken creates a session around an existing access token.
func (c *SDKClient) NewSessionFromToken(accessToken string, expiresIn int) *Session {
	return newSession(c, &TokenResponse{AccessToken: accessToken, ExpiresIn: expiresIn})
}

// AccessToken returns the bearer token.
func (s *Session) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

// Role returns the role the token was issued with.
func (s *Session) Role() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.role
}

// CompanyID returns the tenant the token was issued for.
func (s *Session) CompanyID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.companyID
}

func (s *Session) validToken() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !time.Now().Before(s.expiresAt) {
		return "", ErrSessionExpired
	}
	return s.accessToken, nil
}
