package sqlite

import (
	"context"
	"database/sql"

	"github.com/aussiebroadwan/adminhub/internal/adminhub/store"
)

type txStore struct {
	tx *sql.Tx
}

func newTx(tx *sql.Tx) *txStore {
	return &txStore{tx: tx}
}

func (t *txStore) Commit() error   { return t.tx.Commit() }
func (t *txStore) Rollback() error { return t.tx.Rollback() }

// Close is a no-op; the owner commits or rolls back and the DB stays open.
func (t *txStore) Close() error { return nil }

func (t *txStore) Ping(ctx context.Context) error { return nil }

// Nested transactions are not supported.
func (t *txStore) Tx(ctx context.Context) (store.Tx, error) {
	return nil, sql.ErrTxDone
}

func (t *txStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	return sql.ErrTxDone
}

func (t *txStore) Invites() store.Invites                     { return &invitesRepo{db: t.tx} }
func (t *txStore) Users() store.Users                         { return &usersRepo{db: t.tx} }
func (t *txStore) Companies() store.Companies                 { return &companiesRepo{db: t.tx} }
func (t *txStore) ExtensionPolicies() store.ExtensionPolicies { return &policiesRepo{db: t.tx} }
func (t *txStore) PasswordResets() store.PasswordResets       { return &passwordResetsRepo{db: t.tx} }
func (t *txStore) ArchiveRuns() store.ArchiveRuns             { return &archiveRunsRepo{db: t.tx} }

// ApplyMigrations is a no-op; migrations run before any transaction.
func (t *txStore) ApplyMigrations() error { return nil }
