package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/adminhub/internal/adminhub/domain"
	"github.com/aussiebroadwan/adminhub/pkg/access"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
	ErrConflict      = errors.New("store: conflict")
)

// Store is the root data access interface. Drivers implement it and expose
// sub-repositories so that transactional code can only reach repos through
// the Tx it was handed.
type Store interface {
	Invites() Invites
	Users() Users
	Companies() Companies
	ExtensionPolicies() ExtensionPolicies
	PasswordResets() PasswordResets
	ArchiveRuns() ArchiveRuns

	ApplyMigrations() error

	// Tx starts a read/write transaction. The caller MUST Commit or Rollback.
	Tx(ctx context.Context) (Tx, error)

	// WithTx runs fn in a transaction, committing when fn returns nil and
	// rolling back otherwise.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Invites interface {
	// CreateInvite inserts a new invite. Returns ErrAlreadyExists when the
	// exact code is taken.
	CreateInvite(ctx context.Context, inv domain.Invite) error

	// GetInviteByCode returns the invite whose code matches exactly.
	GetInviteByCode(ctx context.Context, code string) (domain.Invite, error)

	// ListInvites returns every invite, oldest first.
	ListInvites(ctx context.Context) ([]domain.Invite, error)

	// ListInvitesByCompany returns a tenant's invites, oldest first.
	ListInvitesByCompany(ctx context.Context, companyID string) ([]domain.Invite, error)

	// MarkInviteExpired moves an active invite to expired. It reports false
	// when the invite was no longer active.
	MarkInviteExpired(ctx context.Context, id string, now time.Time) (bool, error)

	// MarkInviteUsed moves an active invite to used. It reports false when
	// the invite was no longer active.
	MarkInviteUsed(ctx context.Context, id, userID string, now time.Time) (bool, error)

	// ArchiveInvites copies finished invites last touched before cutoff, and
	// active invites that expired before cutoff, into the archive and
	// deletes them. Returns the number of invites moved.
	ArchiveInvites(ctx context.Context, cutoff, now time.Time) (int, error)

	// CountArchivedInvites returns the size of the archive.
	CountArchivedInvites(ctx context.Context) (int, error)
}

type Users interface {
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail matches the lower-cased address.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser returns ErrAlreadyExists when the email is taken.
	CreateUser(ctx context.Context, u domain.User) error

	// ListUsersByCompany returns a tenant's users ordered by email.
	ListUsersByCompany(ctx context.Context, companyID string) ([]domain.User, error)

	UpdateRole(ctx context.Context, userID string, role access.Role, now time.Time) error
	UpdatePasswordHash(ctx context.Context, userID, hash string, now time.Time) error

	// IsEmpty returns true if there are no users.
	IsEmpty(ctx context.Context) (bool, error)
}

type Companies interface {
	CreateCompany(ctx context.Context, c domain.Company) error
	GetCompany(ctx context.Context, id string) (domain.Company, error)

	// ListCompanies returns every company ordered by name.
	ListCompanies(ctx context.Context) ([]domain.Company, error)

	// UpdateCompany overwrites the mutable columns of c.
	UpdateCompany(ctx context.Context, c domain.Company) error
}

type ExtensionPolicies interface {
	// GetCurrentPolicy returns the highest version for the company.
	GetCurrentPolicy(ctx context.Context, companyID string) (domain.ExtensionPolicy, error)

	// CreatePolicyVersion inserts p. Returns ErrConflict when p.Version
	// already exists for the company.
	CreatePolicyVersion(ctx context.Context, p domain.ExtensionPolicy) error
}

type PasswordResets interface {
	CreatePasswordReset(ctx context.Context, pr domain.PasswordReset) error
	GetPasswordResetByTokenHash(ctx context.Context, hash string) (domain.PasswordReset, error)

	// MarkPasswordResetUsed reports false when the token was already used.
	MarkPasswordResetUsed(ctx context.Context, id string, now time.Time) (bool, error)

	// DeleteStalePasswordResets removes used tokens and tokens that expired
	// before cutoff.
	DeleteStalePasswordResets(ctx context.Context, cutoff time.Time) (int, error)
}

type ArchiveRuns interface {
	CreateArchiveRun(ctx context.Context, run domain.ArchiveRun) error
	FinishArchiveRun(ctx context.Context, run domain.ArchiveRun) error

	// LatestArchiveRun returns the most recently started run.
	LatestArchiveRun(ctx context.Context) (domain.ArchiveRun, error)
}
