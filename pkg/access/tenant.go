package access

// Mode distinguishes read access from write access in the tenant check.
type Mode int

const (
	Read Mode = iota
	Write
)

func (m Mode) String() string {
	if m == Write {
		return "write"
	}
	return "read"
}

// TenantPolicy configures the tenant check.
//
// AdminCrossTenantReads lets an admin read any company's records. Writes are
// always restricted to the admin's own company.
type TenantPolicy struct {
	AdminCrossTenantReads bool
}

// DefaultTenantPolicy allows admins to read across tenants.
var DefaultTenantPolicy = TenantPolicy{AdminCrossTenantReads: true}

// CanAccessCompany applies DefaultTenantPolicy.
func CanAccessCompany(id *Identity, targetCompanyID string, mode Mode) bool {
	return DefaultTenantPolicy.CanAccessCompany(id, targetCompanyID, mode)
}

// CanAccessCompany reports whether id may read or write records belonging to
// targetCompanyID.
func (p TenantPolicy) CanAccessCompany(id *Identity, targetCompanyID string, mode Mode) bool {
	if id == nil {
		return false
	}
	sameCompany := id.CompanyID != "" && id.CompanyID == targetCompanyID

	switch mode {
	case Write:
		return id.Role == RoleAdmin && sameCompany
	default:
		if sameCompany {
			return true
		}
		return p.AdminCrossTenantReads && id.Role == RoleAdmin
	}
}
