package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/aussiebroadwan/snaptranslate/internal/client/store"
	"github.com/aussiebroadwan/snaptranslate/internal/client/store/drivers/sqlite/queries"
	_ "modernc.org/sqlite"
)

type Store struct {
	db  *sql.DB
	q   *queries.Queries
	dsn string
}

var _ store.Store = (*Store)(nil)

// DSN builds the connection string for a database file. ":memory:" is passed
// through untouched.
func DSN(file string) string {
	if file == ":memory:" {
		return file
	}
	return fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", file)
}

func NewStore(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	// One writer; also keeps a ":memory:" database alive across calls.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{
		db:  db,
		q:   queries.New(db),
		dsn: dsn,
	}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Tx starts a read/write transaction and returns a Tx-scoped Store.
func (s *Store) Tx(ctx context.Context) (store.Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return newTx(tx), nil
}

// WithTx executes fn within a transaction, automatically handling commit/rollback.
func (s *Store) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	tx, err := s.Tx(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback() // no-op after commit
	}()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *Store) Tokens() store.Tokens               { return &tokensRepo{q: s.q} }
func (s *Store) LoginAttempts() store.LoginAttempts { return &loginAttemptsRepo{q: s.q} }

func mapNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	return err
}

// optional reads key, treating a missing row as "".
func optional(ctx context.Context, q *queries.Queries, key string) (string, error) {
	row, err := q.GetState(ctx, key)
	if err != nil {
		if errors.Is(mapNotFound(err), store.ErrNotFound) {
			return "", nil
		}
		return "", err
	}
	return row.Value, nil
}

// setOrDelete writes value under key, or removes key when value is empty.
func setOrDelete(ctx context.Context, q *queries.Queries, key, value string) error {
	if value == "" {
		return q.DeleteState(ctx, key)
	}
	return q.SetState(ctx, queries.SetStateParams{Key: key, Value: value})
}
