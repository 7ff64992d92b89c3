package adminsdk

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/aussiebroadwan/adminhub/pkg/jwtx"
)

// ============================================================================
// Common Types
// ============================================================================

// ErrorResponse is the body of every non-2xx response. InviteData is only
// set for expired and used invites.
type ErrorResponse struct {
	// Error is the machine readable code (e.g. "invite_expired")
	Error string `json:"error"`

	// ErrorDescription is a human readable message
	ErrorDescription string `json:"error_description"`

	// InviteData is the invite snapshot for invite_expired and invite_used
	InviteData *Invite `json:"inviteData,omitempty"`
}

// SuccessResponse is the bare success envelope.
type SuccessResponse struct {
	Success bool `json:"success"`
}

// Timestamp accepts either an RFC 3339 string or unix seconds when decoding
// and always encodes as RFC 3339.
type Timestamp struct {
	time.Time
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.UTC().Format(time.RFC3339))
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" || s == "" {
		t.Time = time.Time{}
		return nil
	}

	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		if secs, err := strconv.ParseInt(str, 10, 64); err == nil {
			t.Time = time.Unix(secs, 0).UTC()
			return nil
		}
		parsed, err := time.Parse(time.RFC3339, str)
		if err != nil {
			return fmt.Errorf("timestamp must be RFC 3339 or unix seconds: %w", err)
		}
		t.Time = parsed.UTC()
		return nil
	}

	secs, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("timestamp must be RFC 3339 or unix seconds: %w", err)
	}
	t.Time = time.Unix(secs, 0).UTC()
	return nil
}

// ============================================================================
// Invite Types
// ============================================================================

// Invite is the public snapshot of an invite code.
type Invite struct {
	ID             string     `json:"id"`
	Code           string     `json:"code"`
	CompanyID      string     `json:"companyId,omitempty"`
	AllowedDomains []string   `json:"allowedDomains"`
	Status         string     `json:"status"` // active, used or expired
	ExpiresAt      time.Time  `json:"expiresAt"`
	UsedBy         string     `json:"usedBy,omitempty"`
	UsedAt         *time.Time `json:"usedAt,omitempty"`
	CreatedBy      string     `json:"createdBy,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// InviteResponse wraps a single invite.
type InviteResponse struct {
	Success bool   `json:"success"`
	Invite  Invite `json:"invite"`
}

// InviteListResponse wraps the admin invite listing.
type InviteListResponse struct {
	Success bool     `json:"success"`
	Invites []Invite `json:"invites"`
}

// CreateInviteRequest is the body of POST /v1/admin/invites.
type CreateInviteRequest struct {
	Code           string    `json:"code"`
	AllowedDomains []string  `json:"allowedDomains"`
	ExpiresAt      Timestamp `json:"expiresAt"`
}

// RedeemInviteRequest is the body of POST /v1/invites/{code}/redeem.
type RedeemInviteRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"displayName,omitempty"`
}

// ============================================================================
// User Types
// ============================================================================

// User is the public view of an account. Password hashes never leave the
// server.
type User struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"displayName,omitempty"`
	Role        string    `json:"role"` // admin, analyst or empty
	CompanyID   string    `json:"companyId,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// UserResponse wraps a single user.
type UserResponse struct {
	Success bool `json:"success"`
	User    User `json:"user"`
}

// SetRoleRequest is the body of POST /v1/users/{id}/role.
type SetRoleRequest struct {
	Role string `json:"role"`
}

// ============================================================================
// Auth Types
// ============================================================================

// TokenRequest is the body of POST /v1/auth/token.
type TokenRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse carries a signed access token.
type TokenResponse struct {
	Success     bool   `json:"success"`
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType"`
	ExpiresIn   int    `json:"expiresIn"` // seconds
	Role        string `json:"role"`
	CompanyID   string `json:"companyId,omitempty"`
}

// PasswordResetRequest is the body of POST /v1/auth/password-reset.
type PasswordResetRequest struct {
	Email string `json:"email"`
}

// PasswordResetConfirmRequest is the body of POST /v1/auth/password-reset/confirm.
type PasswordResetConfirmRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// ============================================================================
// Bootstrap Types
// ============================================================================

// BootstrapRequest seeds the first company and its administrator.
type BootstrapRequest struct {
	CompanyName      string `json:"companyName"`
	AdminEmail       string `json:"adminEmail"`
	AdminDisplayName string `json:"adminDisplayName,omitempty"`
	AdminPassword    string `json:"adminPassword"`
}

// BootstrapResponse identifies the created records.
type BootstrapResponse struct {
	Success     bool   `json:"success"`
	CompanyID   string `json:"companyId"`
	AdminUserID string `json:"adminUserId"`
}

// ============================================================================
// Company Types
// ============================================================================

// Company is a tenant record.
type Company struct {
	ID           string                     `json:"id"`
	Name         string                     `json:"name"`
	Slug         string                     `json:"slug"`
	ContactEmail string                     `json:"contactEmail,omitempty"`
	ContactPhone string                     `json:"contactPhone,omitempty"`
	Address      string                     `json:"address,omitempty"`
	Status       string                     `json:"status"` // active, pending or inactive
	AdminEmail   string                     `json:"adminEmail,omitempty"`
	AdminUserID  string                     `json:"adminUserId,omitempty"`
	Extra        map[string]json.RawMessage `json:"extra,omitempty"`
	CreatedAt    time.Time                  `json:"createdAt"`
	UpdatedAt    time.Time                  `json:"updatedAt"`
}

// CompanyResponse wraps a single company.
type CompanyResponse struct {
	Success bool    `json:"success"`
	Company Company `json:"company"`
}

// CompanyListResponse wraps a company listing.
type CompanyListResponse struct {
	Success   bool      `json:"success"`
	Companies []Company `json:"companies"`
}

// CompanyData lists the fields an update may change. Omitted fields are left
// alone. An Extra value of JSON null deletes that key.
type CompanyData struct {
	Name         *string                    `json:"name,omitempty"`
	ContactEmail *string                    `json:"contactEmail,omitempty"`
	ContactPhone *string                    `json:"contactPhone,omitempty"`
	Address      *string                    `json:"address,omitempty"`
	Status       *string                    `json:"status,omitempty"`
	Extra        map[string]json.RawMessage `json:"extra,omitempty"`
}

// UpdateCompanyRequest is the body of POST /v1/companies/update.
type UpdateCompanyRequest struct {
	CompanyID string      `json:"companyId,omitempty"`
	Data      CompanyData `json:"data"`
}

// ============================================================================
// Extension Policy Types
// ============================================================================

// ExtensionPolicy is the current version of a company's policy document.
type ExtensionPolicy struct {
	CompanyID string          `json:"companyId"`
	Version   int             `json:"version"`
	Document  json.RawMessage `json:"document"`
	UpdatedBy string          `json:"updatedBy,omitempty"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// ExtensionPolicyResponse wraps a policy.
type ExtensionPolicyResponse struct {
	Success bool            `json:"success"`
	Policy  ExtensionPolicy `json:"policy"`
}

// PutExtensionPolicyRequest stores a new policy version. Version, when set,
// must equal the current version (0 when none exists).
type PutExtensionPolicyRequest struct {
	Document json.RawMessage `json:"document"`
	Version  *int            `json:"version,omitempty"`
}

// ============================================================================
// Archiving Types
// ============================================================================

// ArchiveRun reports one archiving pass.
type ArchiveRun struct {
	ID              string     `json:"id"`
	Trigger         string     `json:"trigger"` // schedule or manual
	StartedAt       time.Time  `json:"startedAt"`
	FinishedAt      *time.Time `json:"finishedAt,omitempty"`
	ArchivedInvites int        `json:"archivedInvites"`
	PurgedResets    int        `json:"purgedResets"`
	Error           string     `json:"error,omitempty"`
}

// SchedulerStatus is the archiving scheduler state.
type SchedulerStatus struct {
	Running  bool        `json:"running"`
	Interval string      `json:"interval"`
	LastRun  *ArchiveRun `json:"lastRun,omitempty"`
}

// InitServerResponse is returned by GET /v1/init-server.
type InitServerResponse struct {
	Success   bool            `json:"success"`
	Scheduler SchedulerStatus `json:"scheduler"`
}

// ArchiveRunResponse is returned by POST /v1/init-server.
type ArchiveRunResponse struct {
	Success bool       `json:"success"`
	Run     ArchiveRun `json:"run"`
}

// ============================================================================
// Health Types
// ============================================================================

// HealthResponse represents the response structure for health check endpoints.
// Used by both /livez and /readyz endpoints (readyz includes additional Checks field).
type HealthResponse struct {
	// Status indicates the overall health status (e.g., "ok")
	Status string `json:"status"`

	// Uptime is the service uptime duration as a string (e.g., "1h23m45s")
	Uptime string `json:"uptime,omitempty"`

	// Version is the service version string
	Version string `json:"version,omitempty"`

	// Checks contains readiness check results for critical dependencies (only for /readyz)
	Checks *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks represents the status of critical service dependencies.
type HealthChecks struct {
	Database  string `json:"database"`
	Signer    string `json:"signer"`
	Scheduler string `json:"scheduler"`
}

// ============================================================================
// JWKS Types
// ============================================================================

// JWKSResponse contains the JSON Web Key Set.
type JWKSResponse jwtx.JWKS
