package sqlite

import (
	"context"

	"github.com/aussiebroadwan/snaptranslate/internal/client/domain"
	"github.com/aussiebroadwan/snaptranslate/internal/client/store/drivers/sqlite/queries"
)

type tokensRepo struct {
	q *queries.Queries
}

func (r *tokensRepo) GetTokens(ctx context.Context) (domain.TokenPair, error) {
	access, err := optional(ctx, r.q, queries.KeyAccessToken)
	if err != nil {
		return domain.TokenPair{}, err
	}
	refresh, err := optional(ctx, r.q, queries.KeyRefreshToken)
	if err != nil {
		return domain.TokenPair{}, err
	}
	return domain.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (r *tokensRepo) SaveTokens(ctx context.Context, pair domain.TokenPair) error {
	if err := setOrDelete(ctx, r.q, queries.KeyAccessToken, pair.AccessToken); err != nil {
		return err
	}
	return setOrDelete(ctx, r.q, queries.KeyRefreshToken, pair.RefreshToken)
}

func (r *tokensRepo) SaveAccessToken(ctx context.Context, token string) error {
	return setOrDelete(ctx, r.q, queries.KeyAccessToken, token)
}

func (r *tokensRepo) DeleteTokens(ctx context.Context) error {
	if err := r.q.DeleteState(ctx, queries.KeyAccessToken); err != nil {
		return err
	}
	return r.q.DeleteState(ctx, queries.KeyRefreshToken)
}
