package jwtx

import (
	"crypto/rand"
	"encoding/base64"
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/aussiebroadwan/adminhub/pkg/access"
)

// DefaultAccessTokenTTL is the lifetime of dashboard and API tokens.
const DefaultAccessTokenTTL = 1 * time.Hour

// Claims are the access-token claims issued to platform users.
type Claims struct {
	jwt.RegisteredClaims

	// Email of the authenticated user. Used for same-domain checks.
	Email string `json:"email,omitempty"`

	// Role is the platform role: "admin", "analyst" or empty.
	Role string `json:"role,omitempty"`

	// CompanyID is the tenant the user belongs to, empty when unattached.
	CompanyID string `json:"company_id,omitempty"`
}

// NewAccessClaims builds claims for subject valid from now for ttl.
func NewAccessClaims(
	subject, email string,
	role access.Role,
	companyID string,
	ttl time.Duration,
	issuer string,
	audience []string,
	now time.Time,
) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			Audience:  jwt.ClaimStrings(audience),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewJTI(),
		},
		Email:     email,
		Role:      string(role),
		CompanyID: companyID,
	}
}

// Identity converts verified claims into the closed identity used by
// authorization. Unknown role strings collapse to access.RoleNone.
func (c *Claims) Identity() *access.Identity {
	return &access.Identity{
		UserID:    c.Subject,
		Email:     c.Email,
		Role:      access.ParseRole(c.Role),
		CompanyID: c.CompanyID,
	}
}

// NewJTI returns a URL-safe random identifier for the "jti" claim.
func NewJTI() string {
	var b [20]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}

// ValidateIssuer checks if the issuer matches expected value.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil
	}
	if c.Issuer != expected {
		return ErrIssuer
	}
	return nil
}

// ValidateAudience checks if at least one expected audience is present.
func (c *Claims) ValidateAudience(expected []string) error {
	if len(expected) == 0 {
		return nil
	}
	for _, want := range expected {
		if slices.Contains(c.Audience, want) {
			return nil
		}
	}
	return ErrAudience
}

// ValidateExpiry ensures the token hasn't expired (exp) and isn't before nbf.
func (c *Claims) ValidateExpiry() error {
	return c.ValidateExpiryWithLeeway(0)
}

// ValidateExpiryWithLeeway adds a small grace period for clock skew.
func (c *Claims) ValidateExpiryWithLeeway(leeway time.Duration) error {
	now := time.Now().UTC()

	if c.ExpiresAt != nil && now.After(c.ExpiresAt.Add(leeway)) {
		return ErrExpired
	}
	if c.NotBefore != nil && now.Before(c.NotBefore.Add(-leeway)) {
		return ErrNotYetValid
	}
	return nil
}
