package domain

import (
	"time"

	"github.com/aussiebroadwan/adminhub/pkg/access"
)

type User struct {
	ID           string
	Email        string // stored lower-cased
	DisplayName  string
	PasswordHash string // argon2id PHC string
	Role         access.Role
	CompanyID    string // empty when not attached to a company
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PasswordReset is a one-time password reset token, stored by fingerprint.
type PasswordReset struct {
	ID        string
	UserID    string
	TokenHash string
	ExpiresAt time.Time
	UsedAt    *time.Time
	CreatedAt time.Time
}
