package session_test

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/snaptranslate/internal/client/domain"
	"github.com/aussiebroadwan/snaptranslate/internal/client/session"
	"github.com/aussiebroadwan/snaptranslate/internal/client/store/drivers/sqlite"
	"github.com/aussiebroadwan/snaptranslate/internal/mockapi"
	"github.com/aussiebroadwan/snaptranslate/pkg/cryptox"
	"github.com/aussiebroadwan/snaptranslate/pkg/jwtx"
	"github.com/aussiebroadwan/snaptranslate/pkg/snapsdk"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	mu sync.Mutex

	profile    *snapsdk.Profile
	profileErr error
	// gate, when set, blocks Profile until it is closed.
	gate chan struct{}

	refreshResp *snapsdk.TokenResponse
	refreshErr  error

	profileCalls int
	refreshCalls int
}

func (f *fakeAPI) Profile(ctx context.Context, accessToken string) (*snapsdk.Profile, error) {
	f.mu.Lock()
	f.profileCalls++
	gate, p, err := f.gate, f.profile, f.profileErr
	f.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return p, err
}

func (f *fakeAPI) Refresh(ctx context.Context, refreshToken string) (*snapsdk.TokenResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.refreshCalls++
	return f.refreshResp, f.refreshErr
}

func (f *fakeAPI) calls() (profile, refresh int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.profileCalls, f.refreshCalls
}

type recordingNotifier struct {
	mu   sync.Mutex
	msgs []string
}

func (n *recordingNotifier) Error(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.msgs = append(n.msgs, msg)
}

func (n *recordingNotifier) messages() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.msgs...)
}

var errUnauthorized = &snapsdk.APIError{StatusCode: http.StatusUnauthorized, Detail: "Could not validate credentials"}

type harness struct {
	store    *sqlite.Store
	sealer   *cryptox.Sealer
	api      *fakeAPI
	notifier *recordingNotifier
	mgr      *session.Manager
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	sealer, err := cryptox.NewSealer([]byte("test master key"))
	require.NoError(t, err)

	h := &harness{
		store:    st,
		sealer:   sealer,
		api:      &fakeAPI{profile: &snapsdk.Profile{ID: "u1", Email: "alice@example.com", Username: "alice", Role: "user"}},
		notifier: &recordingNotifier{},
	}
	h.mgr = h.newManager(t)
	return h
}

func (h *harness) newManager(t *testing.T) *session.Manager {
	t.Helper()
	m, err := session.New(context.Background(), session.Config{
		Store:    h.store,
		Sealer:   h.sealer,
		API:      h.api,
		Notifier: h.notifier,
		Logger:   slog.New(slog.DiscardHandler),
	})
	require.NoError(t, err)
	return m
}

// stored returns the persisted pair, opened.
func (h *harness) stored(t *testing.T) domain.TokenPair {
	t.Helper()
	sealed, err := h.store.Tokens().GetTokens(context.Background())
	require.NoError(t, err)

	var pair domain.TokenPair
	if sealed.AccessToken != "" {
		pair.AccessToken, err = h.sealer.Open(sealed.AccessToken)
		require.NoError(t, err)
	}
	if sealed.RefreshToken != "" {
		pair.RefreshToken, err = h.sealer.Open(sealed.RefreshToken)
		require.NoError(t, err)
	}
	return pair
}

func TestLoginPersistsExactPair(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	for _, pair := range []domain.TokenPair{
		{AccessToken: "A", RefreshToken: "B"},
		{AccessToken: "A2", RefreshToken: "B2"},
		{AccessToken: "A3"},
	} {
		require.NoError(t, h.mgr.Login(ctx, pair))
		require.Equal(t, pair, h.stored(t))

		snap := h.mgr.Snapshot()
		require.Equal(t, pair.AccessToken != "", snap.HasAccessToken)
		require.Equal(t, pair.RefreshToken != "", snap.HasRefreshToken)
	}
}

func TestLoginSealsTokensAtRest(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	require.NoError(t, h.mgr.Login(ctx, domain.TokenPair{AccessToken: "A", RefreshToken: "B"}))

	sealed, err := h.store.Tokens().GetTokens(ctx)
	require.NoError(t, err)
	require.NotEqual(t, "A", sealed.AccessToken)
	require.NotEqual(t, "B", sealed.RefreshToken)
}

func TestNewRestoresStoredSession(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	require.NoError(t, h.mgr.Login(ctx, domain.TokenPair{AccessToken: "A", RefreshToken: "B"}))

	restored := h.newManager(t)
	snap := restored.Snapshot()
	require.True(t, snap.HasAccessToken)
	require.True(t, snap.HasRefreshToken)
	require.Nil(t, snap.User)
}

func TestNewDiscardsUndecryptableTokens(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	require.NoError(t, h.store.Tokens().SaveTokens(ctx, domain.TokenPair{AccessToken: "not-sealed", RefreshToken: "nope"}))

	m := h.newManager(t)
	require.False(t, m.Snapshot().HasAccessToken)

	sealed, err := h.store.Tokens().GetTokens(ctx)
	require.NoError(t, err)
	require.True(t, sealed.IsZero())
}

func TestLogoutThenFetchProfileMakesNoRequest(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	require.NoError(t, h.mgr.Login(ctx, domain.TokenPair{AccessToken: "A", RefreshToken: "B"}))
	require.NoError(t, h.mgr.Logout(ctx))
	require.NoError(t, h.mgr.Logout(ctx))

	require.NoError(t, h.mgr.FetchProfile(ctx))
	require.Nil(t, h.mgr.Snapshot().User)

	profileCalls, _ := h.api.calls()
	require.Zero(t, profileCalls)
	require.True(t, h.stored(t).IsZero())
}

func TestFetchProfileSetsUser(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	events, cancel := h.mgr.Subscribe()
	defer cancel()

	require.NoError(t, h.mgr.Login(ctx, domain.TokenPair{AccessToken: "A", RefreshToken: "B"}))
	require.Equal(t, session.TokensChanged, (<-events).Kind)

	require.NoError(t, h.mgr.FetchProfile(ctx))
	require.Equal(t, session.ProfileLoaded, (<-events).Kind)

	snap := h.mgr.Snapshot()
	require.NotNil(t, snap.User)
	require.Equal(t, "alice", snap.User.Username)
	require.False(t, snap.IsAdmin())
}

func TestFetchProfileDerivesAdminRole(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	h.api.profile = &snapsdk.Profile{Username: "root", Roles: []string{"user", "admin"}}

	require.NoError(t, h.mgr.Login(ctx, domain.TokenPair{AccessToken: "A"}))
	require.NoError(t, h.mgr.FetchProfile(ctx))
	require.Equal(t, domain.RoleAdmin, h.mgr.Snapshot().User.Role)
}

func TestFetchProfileUnauthorizedRefreshes(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	h.api.profileErr = errUnauthorized
	h.api.refreshResp = &snapsdk.TokenResponse{AccessToken: "A2"}

	require.NoError(t, h.mgr.Login(ctx, domain.TokenPair{AccessToken: "A", RefreshToken: "B"}))

	events, cancel := h.mgr.Subscribe()
	defer cancel()

	require.NoError(t, h.mgr.FetchProfile(ctx))
	require.Equal(t, session.TokensChanged, (<-events).Kind)

	// Only the access token changes and the fetch does not recurse.
	require.Equal(t, domain.TokenPair{AccessToken: "A2", RefreshToken: "B"}, h.stored(t))
	profileCalls, refreshCalls := h.api.calls()
	require.Equal(t, 1, profileCalls)
	require.Equal(t, 1, refreshCalls)
	require.Empty(t, h.notifier.messages())
}

func TestFetchProfileUnauthorizedRefreshFailureClears(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	h.api.profileErr = errUnauthorized
	h.api.refreshErr = &snapsdk.APIError{StatusCode: http.StatusUnauthorized, Detail: "Invalid refresh token"}

	require.NoError(t, h.mgr.Login(ctx, domain.TokenPair{AccessToken: "A", RefreshToken: "B"}))
	require.Error(t, h.mgr.FetchProfile(ctx))

	snap := h.mgr.Snapshot()
	require.False(t, snap.HasAccessToken)
	require.False(t, snap.HasRefreshToken)
	require.Nil(t, snap.User)
	require.True(t, h.stored(t).IsZero())
	require.Equal(t, []string{session.MsgRenewFailed}, h.notifier.messages())
}

func TestFetchProfileOtherFailureNotifiesAndClears(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	h.api.profileErr = &snapsdk.APIError{StatusCode: http.StatusInternalServerError, Detail: "boom"}

	require.NoError(t, h.mgr.Login(ctx, domain.TokenPair{AccessToken: "A", RefreshToken: "B"}))
	require.Error(t, h.mgr.FetchProfile(ctx))

	require.False(t, h.mgr.Snapshot().HasAccessToken)
	require.True(t, h.stored(t).IsZero())
	require.Equal(t, []string{session.MsgProfileFailed}, h.notifier.messages())

	_, refreshCalls := h.api.calls()
	require.Zero(t, refreshCalls)
}

func TestFetchProfileUnauthorizedWithoutRefreshClears(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	h.api.profileErr = errUnauthorized

	require.NoError(t, h.mgr.Login(ctx, domain.TokenPair{AccessToken: "A"}))
	require.Error(t, h.mgr.FetchProfile(ctx))
	require.False(t, h.mgr.Snapshot().HasAccessToken)

	_, refreshCalls := h.api.calls()
	require.Zero(t, refreshCalls)
}

func TestRefreshWithoutTokenFailsWithoutNetwork(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	require.NoError(t, h.mgr.Login(ctx, domain.TokenPair{AccessToken: "A"}))
	require.ErrorIs(t, h.mgr.RefreshAccessToken(ctx), session.ErrNoRefreshToken)

	_, refreshCalls := h.api.calls()
	require.Zero(t, refreshCalls)
	require.True(t, h.mgr.Snapshot().HasAccessToken)
}

func TestRefreshFailureFullyClears(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	h.api.refreshErr = errors.New("dial tcp: connection refused")

	require.NoError(t, h.mgr.Login(ctx, domain.TokenPair{AccessToken: "A", RefreshToken: "B"}))
	require.NoError(t, h.mgr.FetchProfile(ctx))

	require.Error(t, h.mgr.RefreshAccessToken(ctx))

	snap := h.mgr.Snapshot()
	require.False(t, snap.HasAccessToken)
	require.False(t, snap.HasRefreshToken)
	require.Nil(t, snap.User)
	require.True(t, h.stored(t).IsZero())
}

func TestStaleProfileDiscardedAfterLogout(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	gate := make(chan struct{})
	h.api.gate = gate

	require.NoError(t, h.mgr.Login(ctx, domain.TokenPair{AccessToken: "A", RefreshToken: "B"}))

	done := make(chan error, 1)
	go func() { done <- h.mgr.FetchProfile(ctx) }()

	require.Eventually(t, func() bool {
		calls, _ := h.api.calls()
		return calls == 1
	}, time.Second, 5*time.Millisecond)

	require.NoError(t, h.mgr.Logout(ctx))
	close(gate)

	require.ErrorIs(t, <-done, session.ErrStale)
	require.Nil(t, h.mgr.Snapshot().User)
	require.False(t, h.mgr.Snapshot().HasAccessToken)
}

func TestPersistFailureLeavesMemoryUntouched(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	require.NoError(t, h.mgr.Login(ctx, domain.TokenPair{AccessToken: "A", RefreshToken: "B"}))
	before := h.mgr.Snapshot()

	require.NoError(t, h.store.Close())
	require.Error(t, h.mgr.Login(ctx, domain.TokenPair{AccessToken: "X", RefreshToken: "Y"}))
	require.Equal(t, before, h.mgr.Snapshot())
}

func TestLogoutNeverLeavesHalfAPair(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "client.db")

	st, err := sqlite.NewStore(sqlite.DSN(path))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	h := newHarness(t)
	h.store = st
	h.mgr = h.newManager(t)
	require.NoError(t, h.mgr.Login(ctx, domain.TokenPair{AccessToken: "A", RefreshToken: "B"}))

	db, err := sql.Open("sqlite", sqlite.DSN(path))
	require.NoError(t, err)
	_, err = db.Exec(`CREATE TRIGGER keep_refresh BEFORE DELETE ON client_state
		WHEN OLD.key = 'refresh_token'
		BEGIN SELECT RAISE(ABORT, 'refresh delete refused'); END`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	require.Error(t, h.mgr.Logout(ctx))
	require.False(t, h.mgr.Snapshot().HasAccessToken)

	// The delete rolled back as a whole.
	require.Equal(t, domain.TokenPair{AccessToken: "A", RefreshToken: "B"}, h.stored(t))
}

func TestDoRetriesOnceAfterRefresh(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	h.api.refreshResp = &snapsdk.TokenResponse{AccessToken: "A2"}

	require.NoError(t, h.mgr.Login(ctx, domain.TokenPair{AccessToken: "A", RefreshToken: "B"}))

	var seen []string
	err := h.mgr.Do(ctx, func(_ context.Context, token string) error {
		seen = append(seen, token)
		if token == "A" {
			return errUnauthorized
		}
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, []string{"A", "A2"}, seen)
}

func TestDoWithoutSession(t *testing.T) {
	h := newHarness(t)
	err := h.mgr.Do(context.Background(), func(context.Context, string) error {
		t.Fatal("must not be called")
		return nil
	})
	require.ErrorIs(t, err, session.ErrNoAccessToken)
}

func TestDoRefreshesExpiredTokenUpFront(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	h.api.refreshResp = &snapsdk.TokenResponse{AccessToken: "A2"}

	signer, err := jwtx.NewHS256([]byte("0123456789abcdef0123456789abcdef"), "")
	require.NoError(t, err)
	expired, err := signer.Sign(jwtx.NewClaims(jwtx.TypeAccess, "alice", "user", "", time.Minute, time.Now().Add(-time.Hour)))
	require.NoError(t, err)

	require.NoError(t, h.mgr.Login(ctx, domain.TokenPair{AccessToken: expired, RefreshToken: "B"}))

	var seen []string
	require.NoError(t, h.mgr.Do(ctx, func(_ context.Context, token string) error {
		seen = append(seen, token)
		return nil
	}))
	require.Equal(t, []string{"A2"}, seen)
}

func TestSyncerLoadsProfileOnLogin(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	syncer := session.NewSyncer(h.mgr, slog.New(slog.DiscardHandler), time.Second)
	syncer.Start()
	defer syncer.Stop()

	require.NoError(t, h.mgr.Login(ctx, domain.TokenPair{AccessToken: "A", RefreshToken: "B"}))

	require.Eventually(t, func() bool {
		return h.mgr.Snapshot().User != nil
	}, 2*time.Second, 10*time.Millisecond)
}

func TestSyncerStopWithoutStart(t *testing.T) {
	h := newHarness(t)
	syncer := session.NewSyncer(h.mgr, slog.New(slog.DiscardHandler), time.Second)
	require.NotPanics(t, syncer.Stop)
}

func TestSyncerStopCancelsInFlightFetch(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	h.api.gate = make(chan struct{})
	require.NoError(t, h.mgr.Login(ctx, domain.TokenPair{AccessToken: "A", RefreshToken: "B"}))

	syncer := session.NewSyncer(h.mgr, slog.New(slog.DiscardHandler), time.Minute)
	syncer.Start()

	require.Eventually(t, func() bool {
		calls, _ := h.api.calls()
		return calls >= 1
	}, time.Second, 5*time.Millisecond)

	stopped := make(chan struct{})
	go func() {
		syncer.Stop()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop waited on the blocked profile fetch")
	}
	syncer.Stop()

	// Shutting down is not an auth failure.
	require.True(t, h.mgr.Snapshot().HasAccessToken)
	require.Empty(t, h.notifier.messages())
	require.Equal(t, domain.TokenPair{AccessToken: "A", RefreshToken: "B"}, h.stored(t))
}

func TestAgainstMockBackend(t *testing.T) {
	ctx := context.Background()

	mock, err := mockapi.New(mockapi.Config{}, nil)
	require.NoError(t, err)
	require.NoError(t, mock.SeedUser("alice@example.com", "alice", "Passw0rd!"))
	srv := httptest.NewServer(mock.Handler())
	t.Cleanup(srv.Close)

	api := snapsdk.NewSDKClient(srv.URL)
	h := newHarness(t)
	m, err := session.New(ctx, session.Config{Store: h.store, Sealer: h.sealer, API: api, Logger: slog.New(slog.DiscardHandler)})
	require.NoError(t, err)

	tok, err := api.Login(ctx, "alice", "Passw0rd!")
	require.NoError(t, err)
	require.NoError(t, m.Login(ctx, domain.TokenPair{AccessToken: tok.AccessToken, RefreshToken: tok.RefreshToken}))

	mock.Fail("GET /auth/profile", http.StatusUnauthorized, "Token expired")
	require.NoError(t, m.FetchProfile(ctx))
	require.Equal(t, 1, mock.Calls("POST /auth/refresh"))

	require.NoError(t, m.FetchProfile(ctx))
	require.Equal(t, "alice", m.Snapshot().User.Username)
}
