package domain

import "time"

// InviteStatus is the lifecycle state of an invite code.
type InviteStatus string

const (
	InviteActive  InviteStatus = "active"
	InviteUsed    InviteStatus = "used"
	InviteExpired InviteStatus = "expired"
)

// Valid reports whether s is a known status.
func (s InviteStatus) Valid() bool {
	return s == InviteActive || s == InviteUsed || s == InviteExpired
}

// Invite is a single-use registration code.
//
// Status only moves forward: active to used, or active to expired.
type Invite struct {
	ID             string
	Code           string
	CompanyID      string   // tenant of the admin who created it
	AllowedDomains []string // lower-cased email domains accepted on redemption
	Status         InviteStatus
	ExpiresAt      time.Time
	UsedBy         string // empty until redeemed
	UsedAt         *time.Time
	CreatedBy      string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// PastExpiry reports whether the invite's expiry instant has been reached.
func (i Invite) PastExpiry(now time.Time) bool {
	return !now.Before(i.ExpiresAt)
}

// AllowsDomain reports whether domain is in the allow list. domain must
// already be lower-cased.
func (i Invite) AllowsDomain(domain string) bool {
	for _, d := range i.AllowedDomains {
		if d == domain {
			return true
		}
	}
	return false
}

// ArchivedInvite is an invite moved out of the live table by the archiver.
type ArchivedInvite struct {
	Invite
	ArchivedAt time.Time
}
