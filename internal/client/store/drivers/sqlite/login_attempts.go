package sqlite

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/aussiebroadwan/snaptranslate/internal/client/domain"
	"github.com/aussiebroadwan/snaptranslate/internal/client/store/drivers/sqlite/queries"
)

type loginAttemptsRepo struct {
	q *queries.Queries
}

func (r *loginAttemptsRepo) GetLoginAttempts(ctx context.Context) (domain.LoginAttempts, error) {
	var a domain.LoginAttempts

	failures, err := optional(ctx, r.q, queries.KeyLoginAttempts)
	if err != nil {
		return a, err
	}
	if failures != "" {
		n, err := strconv.Atoi(failures)
		if err != nil {
			return a, fmt.Errorf("store: corrupt %s: %w", queries.KeyLoginAttempts, err)
		}
		a.Failures = n
	}

	until, err := optional(ctx, r.q, queries.KeyBlockedUntil)
	if err != nil {
		return a, err
	}
	if until != "" {
		t, err := time.Parse(time.RFC3339Nano, until)
		if err != nil {
			return a, fmt.Errorf("store: corrupt %s: %w", queries.KeyBlockedUntil, err)
		}
		a.BlockedUntil = t
	}
	return a, nil
}

func (r *loginAttemptsRepo) SaveLoginAttempts(ctx context.Context, a domain.LoginAttempts) error {
	failures := ""
	if a.Failures > 0 {
		failures = strconv.Itoa(a.Failures)
	}
	if err := setOrDelete(ctx, r.q, queries.KeyLoginAttempts, failures); err != nil {
		return err
	}

	until := ""
	if !a.BlockedUntil.IsZero() {
		until = a.BlockedUntil.UTC().Format(time.RFC3339Nano)
	}
	return setOrDelete(ctx, r.q, queries.KeyBlockedUntil, until)
}

func (r *loginAttemptsRepo) ClearLoginAttempts(ctx context.Context) error {
	if err := r.q.DeleteState(ctx, queries.KeyLoginAttempts); err != nil {
		return err
	}
	return r.q.DeleteState(ctx, queries.KeyBlockedUntil)
}
