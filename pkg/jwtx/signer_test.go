package jwtx_test

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/snaptranslate/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

func TestHS256RoundTrip(t *testing.T) {
	now := time.Now()
	h, err := jwtx.NewHS256(testSecret, "snaptranslate")
	require.NoError(t, err)

	tok, err := h.Sign(jwtx.NewClaims(jwtx.TypeAccess, "alice", "admin", "snaptranslate", time.Minute, now))
	require.NoError(t, err)

	c, err := h.Verify(tok)
	require.NoError(t, err)
	require.Equal(t, "alice", c.Subject)
	require.Equal(t, "admin", c.Role)

	_, err = h.VerifyType(tok, jwtx.TypeRefresh)
	require.ErrorIs(t, err, jwtx.ErrWrongType)
}

func TestHS256Rejects(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	h, err := jwtx.NewHS256(testSecret, "snaptranslate")
	require.NoError(t, err)
	h.WithClock(func() time.Time { return now })

	t.Run("expired", func(t *testing.T) {
		tok, err := h.Sign(jwtx.NewClaims(jwtx.TypeAccess, "alice", "", "snaptranslate", time.Minute, now.Add(-time.Hour)))
		require.NoError(t, err)
		_, err = h.Verify(tok)
		require.ErrorIs(t, err, jwtx.ErrExpired)
	})

	t.Run("other secret", func(t *testing.T) {
		other, err := jwtx.NewHS256([]byte("ffffffffffffffffffffffffffffffff"), "snaptranslate")
		require.NoError(t, err)
		tok, err := other.Sign(jwtx.NewClaims(jwtx.TypeAccess, "alice", "", "snaptranslate", time.Hour, now))
		require.NoError(t, err)
		_, err = h.Verify(tok)
		require.ErrorIs(t, err, jwtx.ErrInvalidSig)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		tok, err := h.Sign(jwtx.NewClaims(jwtx.TypeAccess, "alice", "", "elsewhere", time.Hour, now))
		require.NoError(t, err)
		_, err = h.Verify(tok)
		require.ErrorIs(t, err, jwtx.ErrIssuer)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := h.Verify("not.a.jwt")
		require.ErrorIs(t, err, jwtx.ErrMalformed)
	})

	t.Run("short secret", func(t *testing.T) {
		_, err := jwtx.NewHS256([]byte("short"), "")
		require.Error(t, err)
	})
}

func TestPeek(t *testing.T) {
	now := time.Now()
	h, err := jwtx.NewHS256(testSecret, "")
	require.NoError(t, err)

	tok, err := h.Sign(jwtx.NewClaims(jwtx.TypeAccess, "bob", "user", "", -time.Minute, now))
	require.NoError(t, err)

	c, err := jwtx.Peek(tok)
	require.NoError(t, err, "peek ignores expiry and signature")
	require.Equal(t, "bob", c.Subject)
	require.True(t, c.ExpiresWithin(now, 0))

	_, err = jwtx.Peek("opaque-token")
	require.ErrorIs(t, err, jwtx.ErrMalformed)
}
