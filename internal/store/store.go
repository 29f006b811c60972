package store

import (
	"context"
	"errors"

	"github.com/arcbound/accountd/internal/domain"
)

var ErrNotFound = errors.New("store: not found")

// Store is the root data access interface. Concrete drivers (sqlite,
// postgres) implement this. It exposes sub-repositories to keep concerns
// tidy and testable.
type Store interface {
	Accounts() Accounts
	RefreshTokens() RefreshTokens

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back; otherwise it
	// is committed. This is the recommended way to handle transactions.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Accounts interface {
	// CreateAccount inserts a new account and returns it with the assigned id.
	CreateAccount(ctx context.Context, a domain.Account) (domain.Account, error)

	// GetAccountByID returns an account by id.
	GetAccountByID(ctx context.Context, id int64) (domain.Account, error)

	// GetAccountByEmail is used for the duplicate-email check at registration.
	GetAccountByEmail(ctx context.Context, email string) (domain.Account, error)

	// GetAccountByUsername resolves access-token subjects and login attempts.
	GetAccountByUsername(ctx context.Context, username string) (domain.Account, error)

	// ListAccounts returns accounts in insertion order with offset/limit pagination.
	ListAccounts(ctx context.Context, offset, limit int64) ([]domain.Account, error)

	// UpdateAccount writes the mutable columns of an existing row. Partial
	// merge happens in the service layer.
	UpdateAccount(ctx context.Context, a domain.Account) error

	// DeleteAccount hard-deletes; refresh tokens cascade per schema.
	DeleteAccount(ctx context.Context, id int64) error

	// SetAccountActive flips the is_active flag.
	SetAccountActive(ctx context.Context, id int64, active bool) error

	// SetAccountSuperuser flips the is_superuser flag (bootstrap tooling).
	SetAccountSuperuser(ctx context.Context, id int64, superuser bool) error
}

type RefreshTokens interface {
	// CreateRefreshToken stores a new refresh token record.
	CreateRefreshToken(ctx context.Context, t domain.RefreshToken) error

	// GetRefreshTokenByHash returns the token by its fingerprint.
	GetRefreshTokenByHash(ctx context.Context, hash string) (domain.RefreshToken, error)

	// RevokeRefreshToken flips revoked=1 on a currently-active row and
	// reports whether anything changed. Absent and already-revoked rows
	// both report false.
	RevokeRefreshToken(ctx context.Context, hash string) (bool, error)
}
