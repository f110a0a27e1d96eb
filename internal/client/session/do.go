package session

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/snaptranslate/pkg/jwtx"
	"github.com/aussiebroadwan/snaptranslate/pkg/snapsdk"
)

// expirySkew is how close to exp an access token may get before Do refreshes
// it up front.
const expirySkew = 10 * time.Second

// Do runs fn with the current access token. A 401 from fn triggers one
// silent refresh and a single retry with the new token. If the refresh
// fails the session is cleared and fn's original error is returned.
func (m *Manager) Do(ctx context.Context, fn func(ctx context.Context, accessToken string) error) error {
	access, refresh, gen := m.credentials()
	if access == "" {
		return ErrNoAccessToken
	}

	if refresh != "" && m.expired(access) {
		if err := m.refreshFrom(ctx, gen, refresh); err != nil && !errors.Is(err, ErrStale) {
			m.notify(MsgRenewFailed)
			return err
		}
		if access, refresh, gen = m.credentials(); access == "" {
			return ErrNoAccessToken
		}
	}

	err := fn(ctx, access)
	if !snapsdk.IsUnauthorized(err) || refresh == "" {
		return err
	}

	if rerr := m.refreshFrom(ctx, gen, refresh); rerr != nil && !errors.Is(rerr, ErrStale) {
		m.notify(MsgRenewFailed)
		return err
	}
	retry, _, _ := m.credentials()
	if retry == "" || retry == access {
		return err
	}
	return fn(ctx, retry)
}

func (m *Manager) credentials() (access, refresh string, gen uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.access, m.refresh, m.gen
}

// expired peeks at exp without verifying the signature. Tokens that cannot be
// parsed are left for the backend to judge.
func (m *Manager) expired(access string) bool {
	c, err := jwtx.Peek(access)
	if err != nil {
		return false
	}
	return c.ExpiresWithin(m.now(), expirySkew)
}
