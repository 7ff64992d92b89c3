package domain

// BootstrapData seeds the first company and its administrator.
type BootstrapData struct {
	CompanyName      string
	AdminEmail       string
	AdminDisplayName string
	AdminPassword    string
}
