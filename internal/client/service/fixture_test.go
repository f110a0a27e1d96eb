package service_test

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/snaptranslate/internal/client/router"
	"github.com/aussiebroadwan/snaptranslate/internal/client/service"
	"github.com/aussiebroadwan/snaptranslate/internal/client/session"
	"github.com/aussiebroadwan/snaptranslate/internal/client/store/drivers/sqlite"
	"github.com/aussiebroadwan/snaptranslate/internal/mockapi"
	"github.com/aussiebroadwan/snaptranslate/pkg/cryptox"
	"github.com/aussiebroadwan/snaptranslate/pkg/snapsdk"
	"github.com/stretchr/testify/require"
)

const testPassword = "Passw0rd!"

// throttleGap clears the login throttle with room for float rounding in the
// limiter.
const throttleGap = service.DefaultLoginThrottle + time.Millisecond

// clock is a manually advanced time source.
type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type fixture struct {
	mock     *mockapi.Server
	sdk      *snapsdk.SDKClient
	store    *sqlite.Store
	clock    *clock
	session  *session.Manager
	router   *router.Router
	auth     *service.AuthService
	features *service.FeatureService
	admin    *service.AdminService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureAt(t, ":memory:")
}

// newFixtureAt is newFixture with the client store opened at dsn.
func newFixtureAt(t *testing.T, dsn string) *fixture {
	t.Helper()
	ctx := context.Background()
	logger := slog.New(slog.DiscardHandler)

	mock, err := mockapi.New(mockapi.Config{}, nil)
	require.NoError(t, err)
	require.NoError(t, mock.SeedUser("alice@example.com", "alice", testPassword))
	require.NoError(t, mock.SeedUser("root@example.com", "root", testPassword, "admin"))
	srv := httptest.NewServer(mock.Handler())
	t.Cleanup(srv.Close)

	st, err := sqlite.NewStore(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	sealer, err := cryptox.NewSealer([]byte("fixture key"))
	require.NoError(t, err)

	sdk := snapsdk.NewSDKClient(srv.URL)
	sess, err := session.New(ctx, session.Config{Store: st, Sealer: sealer, API: sdk, Logger: logger})
	require.NoError(t, err)

	rt := router.New(sess, logger)
	clk := &clock{now: time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)}

	f := &fixture{
		mock:    mock,
		sdk:     sdk,
		store:   st,
		clock:   clk,
		session: sess,
		router:  rt,
	}
	f.auth = service.NewAuthService(service.AuthConfig{
		Backend: sdk,
		Session: sess,
		Router:  rt,
		Store:   st,
		Logger:  logger,
		Now:     clk.Now,
	})
	f.features = service.NewFeatureService(service.FeatureConfig{
		Backend: sdk,
		Session: sess,
		Router:  rt,
		Logger:  logger,
		Now:     clk.Now,
	})
	f.admin = service.NewAdminService(sdk, sess, logger)
	return f
}

// signIn logs in as username and loads the profile.
func (f *fixture) signIn(t *testing.T, username string) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, f.auth.Login(ctx, username, testPassword))
	require.NoError(t, f.session.FetchProfile(ctx))
	f.clock.Advance(throttleGap)
}

// execOn runs stmt against the database file at path over a second
// connection, e.g. to install a trigger behind the store's back.
func execOn(t *testing.T, path, stmt string) {
	t.Helper()
	db, err := sql.Open("sqlite", sqlite.DSN(path))
	require.NoError(t, err)
	defer db.Close()
	_, err = db.Exec(stmt)
	require.NoError(t, err)
}
