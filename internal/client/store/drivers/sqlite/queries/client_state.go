package queries

import "context"

// Keys of the client_state table.
const (
	KeyAccessToken   = "access_token"
	KeyRefreshToken  = "refresh_token"
	KeyLoginAttempts = "login_attempts"
	KeyBlockedUntil  = "blocked_until"
)

type ClientState struct {
	Key   string
	Value string
}

const getState = `
SELECT key, value FROM client_state WHERE key = ?
`

func (q *Queries) GetState(ctx context.Context, key string) (ClientState, error) {
	row := q.db.QueryRowContext(ctx, getState, key)
	var i ClientState
	err := row.Scan(&i.Key, &i.Value)
	return i, err
}

const setState = `
INSERT INTO client_state (key, value, updated_at)
VALUES (?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
`

type SetStateParams struct {
	Key   string
	Value string
}

func (q *Queries) SetState(ctx context.Context, arg SetStateParams) error {
	_, err := q.db.ExecContext(ctx, setState, arg.Key, arg.Value)
	return err
}

const deleteState = `
DELETE FROM client_state WHERE key = ?
`

func (q *Queries) DeleteState(ctx context.Context, key string) error {
	_, err := q.db.ExecContext(ctx, deleteState, key)
	return err
}
