package domain

import (
	"encoding/json"
	"time"
)

// CompanyStatus is the subscription state of a tenant.
type CompanyStatus string

const (
	CompanyActive   CompanyStatus = "active"
	CompanyPending  CompanyStatus = "pending"
	CompanyInactive CompanyStatus = "inactive"
)

func (s CompanyStatus) Valid() bool {
	return s == CompanyActive || s == CompanyPending || s == CompanyInactive
}

// Company is a tenant record.
type Company struct {
	ID           string
	Name         string
	Slug         string
	ContactEmail string
	ContactPhone string
	Address      string
	Status       CompanyStatus
	AdminEmail   string
	AdminUserID  string
	Extra        map[string]json.RawMessage // free-form fields set by admins
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CompanyPatch lists the fields an update may change. Nil pointers are left
// untouched. An Extra entry whose value is JSON null removes that key.
type CompanyPatch struct {
	Name         *string
	ContactEmail *string
	ContactPhone *string
	Address      *string
	Status       *CompanyStatus
	Extra        map[string]json.RawMessage
}

// IsEmpty reports whether the patch changes nothing.
func (p CompanyPatch) IsEmpty() bool {
	return p.Name == nil && p.ContactEmail == nil && p.ContactPhone == nil &&
		p.Address == nil && p.Status == nil && len(p.Extra) == 0
}
