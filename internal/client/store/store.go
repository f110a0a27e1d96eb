package store

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/snaptranslate/internal/client/domain"
)

var ErrNotFound = errors.New("store: not found")

// Store is the client's durable state. There is exactly one session per
// client process, so the repositories operate on singleton rows rather than
// keyed records. Sub-repositories hang off the Store so a Tx can hand out the
// same repos bound to the transaction.
type Store interface {
	Tokens() Tokens
	LoginAttempts() LoginAttempts

	ApplyMigrations() error

	// Tx starts a read/write transaction. The caller MUST call Commit() or
	// Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx runs fn inside a transaction, committing when fn returns nil and
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

// Tokens holds the persisted credential pair. Values are stored exactly as
// given; sealing is the caller's job.
type Tokens interface {
	// GetTokens returns whatever halves are stored. A missing half is "".
	GetTokens(ctx context.Context) (domain.TokenPair, error)

	// SaveTokens overwrites both halves. An empty half deletes its entry.
	SaveTokens(ctx context.Context, pair domain.TokenPair) error

	// SaveAccessToken overwrites only the access token.
	SaveAccessToken(ctx context.Context, token string) error

	// DeleteTokens removes both halves. Deleting nothing is not an error.
	DeleteTokens(ctx context.Context) error
}

// LoginAttempts holds the failed-login counter and lockout deadline.
type LoginAttempts interface {
	GetLoginAttempts(ctx context.Context) (domain.LoginAttempts, error)
	SaveLoginAttempts(ctx context.Context, a domain.LoginAttempts) error
	ClearLoginAttempts(ctx context.Context) error
}
