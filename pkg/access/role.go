// Package access holds the authorization rules shared by the API and the
// dashboard: the closed role set, the page access gate, and the tenant check
// that scopes company reads and writes.
package access

import "strings"

// Role is the platform role carried in a verified token.
type Role string

const (
	RoleNone    Role = ""
	RoleAdmin   Role = "admin"
	RoleAnalyst Role = "analyst"
)

// ParseRole converts a raw claim value into a Role. Anything that is not a
// known role becomes RoleNone.
func ParseRole(s string) Role {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleAdmin:
		return RoleAdmin
	case RoleAnalyst:
		return RoleAnalyst
	default:
		return RoleNone
	}
}

// Valid reports whether r is one of the assignable roles, including RoleNone.
func (r Role) Valid() bool {
	return r == RoleNone || r == RoleAdmin || r == RoleAnalyst
}

func (r Role) String() string {
	if r == RoleNone {
		return "none"
	}
	return string(r)
}

// Identity is the caller as established by token verification.
type Identity struct {
	UserID    string
	Email     string
	Role      Role
	CompanyID string // empty when the user is not attached to a company
}

// HasRole reports whether the identity carries a usable role.
func (id *Identity) HasRole() bool {
	return id != nil && id.Role != RoleNone
}

// EmailDomain returns the lower-cased domain part of the identity's email.
func (id *Identity) EmailDomain() string {
	if id == nil {
		return ""
	}
	return EmailDomain(id.Email)
}

// EmailDomain returns the lower-cased part after the last '@', or "" when the
// address has no domain.
func EmailDomain(email string) string {
	at := strings.LastIndexByte(email, '@')
	if at < 0 || at == len(email)-1 {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(email[at+1:]))
}

// RoleSet is an unordered set of roles permitted on a page or endpoint.
type RoleSet map[Role]struct{}

// Roles builds a RoleSet. RoleNone entries are ignored so that an empty
// identity can never satisfy a set.
func Roles(rs ...Role) RoleSet {
	set := make(RoleSet, len(rs))
	for _, r := range rs {
		if r == RoleNone {
			continue
		}
		set[r] = struct{}{}
	}
	return set
}

// AnyRole is satisfied by every platform role.
var AnyRole = Roles(RoleAdmin, RoleAnalyst)

// Contains reports whether r is in the set.
func (s RoleSet) Contains(r Role) bool {
	_, ok := s[r]
	return ok
}
