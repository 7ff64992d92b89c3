package adminsdk

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/aussiebroadwan/adminhub/pkg/httpx"
)

// ============================================================================
// Error Codes
// ============================================================================

const (
	ErrorCodeInvalidRequest     = "invalid_request"
	ErrorCodeUnauthorized       = "unauthorized"
	ErrorCodeForbidden          = "forbidden"
	ErrorCodeNotFound           = "not_found"
	ErrorCodeInviteExpired      = "invite_expired"
	ErrorCodeInviteUsed         = "invite_used"
	ErrorCodeInviteCodeTaken    = "invite_code_taken"
	ErrorCodeDomainNotAllowed   = "domain_not_allowed"
	ErrorCodeEmailTaken         = "email_taken"
	ErrorCodeInvalidCredentials = "invalid_credentials"
	ErrorCodeInvalidToken       = "invalid_token"
	ErrorCodeWeakPassword       = "weak_password"
	ErrorCodeVersionConflict    = "version_conflict"
	ErrorCodeAlreadyInitialized = "already_initialized"
	ErrorCodeRateLimited        = "rate_limit_exceeded"
	ErrorCodeServerError        = "server_error"
)

// ============================================================================
// APIError
// ============================================================================

// APIError is the error body returned by every endpoint. It is used by the
// server to write responses and by the client to report them.
type APIError struct {
	// StatusCode is the HTTP status code for this error
	StatusCode int `json:"-"`

	// Code is the machine readable error code (e.g. "invite_expired")
	Code string `json:"error"`

	// Description is a human-readable description of the error
	Description string `json:"error_description"`

	// InviteData carries the invite snapshot for expired and used invites
	InviteData *Invite `json:"inviteData,omitempty"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// Is matches on status and code so predefined errors work with errors.Is.
func (e *APIError) Is(target error) bool {
	t, ok := target.(*APIError)
	if !ok {
		return false
	}
	return e.StatusCode == t.StatusCode && e.Code == t.Code
}

// WithInvite returns a copy of e carrying the invite snapshot.
func (e *APIError) WithInvite(inv Invite) *APIError {
	cp := *e
	cp.InviteData = &inv
	return &cp
}

// WithDescription returns a copy of e with a different description.
func (e *APIError) WithDescription(desc string) *APIError {
	cp := *e
	cp.Description = desc
	return &cp
}

// WriteError writes this APIError to an HTTP response writer.
func (e *APIError) WriteError(w http.ResponseWriter) {
	httpx.NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.StatusCode)
	_ = json.NewEncoder(w).Encode(ErrorResponse{
		Error:            e.Code,
		ErrorDescription: e.Description,
		InviteData:       e.InviteData,
	})
}

// ============================================================================
// Predefined Errors
// ============================================================================

var (
	// ErrInvalidRequest is returned when the body or parameters are malformed.
	ErrInvalidRequest = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidRequest,
		Description: "the request is malformed or missing required parameters",
	}

	// ErrUnauthorized is returned when no valid credentials were presented.
	ErrUnauthorized = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeUnauthorized,
		Description: "authentication is required",
	}

	// ErrForbidden is returned when the caller's role or tenant does not
	// allow the operation.
	ErrForbidden = &APIError{
		StatusCode:  http.StatusForbidden,
		Code:        ErrorCodeForbidden,
		Description: "access denied",
	}

	ErrNotFound = &APIError{
		StatusCode:  http.StatusNotFound,
		Code:        ErrorCodeNotFound,
		Description: "resource not found",
	}

	// ErrInviteNotFound is returned when no invite matches the code.
	ErrInviteNotFound = &APIError{
		StatusCode:  http.StatusNotFound,
		Code:        ErrorCodeNotFound,
		Description: "invite code not found",
	}

	// ErrInviteExpired is returned for invites past their expiry.
	ErrInviteExpired = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInviteExpired,
		Description: "invite code has expired",
	}

	// ErrInviteUsed is returned for invites that were already redeemed.
	ErrInviteUsed = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInviteUsed,
		Description: "invite code has already been used",
	}

	ErrInviteCodeTaken = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInviteCodeTaken,
		Description: "an invite with this code already exists",
	}

	ErrDomainNotAllowed = &APIError{
		StatusCode:  http.StatusForbidden,
		Code:        ErrorCodeDomainNotAllowed,
		Description: "email domain is not allowed for this invite",
	}

	ErrEmailTaken = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeEmailTaken,
		Description: "an account with this email already exists",
	}

	// ErrInvalidCredentials is returned for a wrong email or password.
	ErrInvalidCredentials = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidCredentials,
		Description: "invalid email or password",
	}

	// ErrInvalidToken is returned for unknown, used or expired reset tokens.
	ErrInvalidToken = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidToken,
		Description: "the token is invalid or has expired",
	}

	ErrWeakPassword = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeWeakPassword,
		Description: "password does not meet the minimum length",
	}

	// ErrVersionConflict is returned when an extension policy write carries
	// a stale version.
	ErrVersionConflict = &APIError{
		StatusCode:  http.StatusConflict,
		Code:        ErrorCodeVersionConflict,
		Description: "the policy was changed by someone else",
	}

	ErrAlreadyInitialized = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeAlreadyInitialized,
		Description: "the service has already been bootstrapped",
	}

	// ErrMethodNotAllowed is returned when the HTTP method is not allowed.
	ErrMethodNotAllowed = &APIError{
		StatusCode:  http.StatusMethodNotAllowed,
		Code:        ErrorCodeInvalidRequest,
		Description: "method not allowed",
	}

	// ErrServerError is returned when the server hit an unexpected condition.
	ErrServerError = &APIError{
		StatusCode:  http.StatusInternalServerError,
		Code:        ErrorCodeServerError,
		Description: "internal server error",
	}
)

// NewAPIError creates a new APIError with the given status code, error code, and description.
func NewAPIError(statusCode int, code, description string) *APIError {
	return &APIError{
		StatusCode:  statusCode,
		Code:        code,
		Description: description,
	}
}

// ============================================================================
// Error Parsing Helpers
// ============================================================================

// parseErrorResponse turns a non-2xx response into an *APIError. It returns
// nil for 2xx responses.
func parseErrorResponse(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		return &APIError{
			StatusCode:  resp.StatusCode,
			Code:        errResp.Error,
			Description: errResp.ErrorDescription,
			InviteData:  errResp.InviteData,
		}
	}

	// Fallback: create generic error from status code
	return &APIError{
		StatusCode:  resp.StatusCode,
		Code:        ErrorCodeServerError,
		Description: fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}
