// Package session owns the client's single authenticated session: the
// access/refresh token pair, the fetched user profile and their durable copy.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aussiebroadwan/snaptranslate/internal/client/domain"
	"github.com/aussiebroadwan/snaptranslate/internal/client/store"
	"github.com/aussiebroadwan/snaptranslate/pkg/cryptox"
	"github.com/aussiebroadwan/snaptranslate/pkg/snapsdk"
)

var (
	ErrNoAccessToken  = errors.New("session: no access token")
	ErrNoRefreshToken = errors.New("session: no refresh token")
	// ErrStale is returned when a response arrived after the session moved
	// on (logout, login or another refresh) and was discarded.
	ErrStale = errors.New("session: response discarded, session changed")
)

// Notification texts shown to the user when the session is torn down.
const (
	MsgProfileFailed = "Could not load your profile, please sign in again"
	MsgRenewFailed   = "Your session has expired, please sign in again"
)

// API is the part of the backend the session needs.
type API interface {
	Profile(ctx context.Context, accessToken string) (*snapsdk.Profile, error)
	Refresh(ctx context.Context, refreshToken string) (*snapsdk.TokenResponse, error)
}

// Notifier surfaces transient messages to the user.
type Notifier interface {
	Error(msg string)
}

// Snapshot is a read-only copy of the session.
type Snapshot struct {
	HasAccessToken  bool
	HasRefreshToken bool
	User            *domain.UserProfile
	Generation      uint64
	// Epoch changes when a session starts or ends. A silent refresh keeps
	// it, so work begun under one epoch belongs to the same sign-in.
	Epoch uint64
}

// Authenticated reports whether an access token is held.
func (s Snapshot) Authenticated() bool { return s.HasAccessToken }

// IsAdmin reports whether the loaded profile carries the admin role.
func (s Snapshot) IsAdmin() bool { return s.User.IsAdmin() }

type Config struct {
	Store    store.Store
	Sealer   *cryptox.Sealer
	API      API
	Notifier Notifier
	Logger   *slog.Logger
	Now      func() time.Time
}

// Manager is safe for concurrent use. Every mutation persists to the store
// first and only then changes memory, bumping the generation counter. Network
// calls run without the lock and their results are dropped if the generation
// moved while they were in flight.
type Manager struct {
	store    store.Store
	sealer   *cryptox.Sealer
	api      API
	notifier Notifier
	logger   *slog.Logger
	now      func() time.Time

	mu      sync.Mutex
	access  string
	refresh string
	user    *domain.UserProfile
	gen     uint64
	epoch   uint64
	subs    map[int]chan Event
	nextSub int

	// refreshMu serialises silent refreshes so concurrent 401s spend one
	// refresh token round trip.
	refreshMu sync.Mutex
}

// New restores the session from storage. Stored tokens that cannot be opened
// with the configured key are discarded and removed.
func New(ctx context.Context, cfg Config) (*Manager, error) {
	if cfg.Store == nil || cfg.Sealer == nil || cfg.API == nil {
		return nil, errors.New("session: store, sealer and api are required")
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	m := &Manager{
		store:    cfg.Store,
		sealer:   cfg.Sealer,
		api:      cfg.API,
		notifier: cfg.Notifier,
		logger:   cfg.Logger,
		now:      cfg.Now,
		subs:     make(map[int]chan Event),
	}

	if err := m.restore(ctx); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Manager) restore(ctx context.Context) error {
	sealed, err := m.store.Tokens().GetTokens(ctx)
	if err != nil {
		return fmt.Errorf("session: load tokens: %w", err)
	}

	access, errA := m.open(sealed.AccessToken)
	refresh, errR := m.open(sealed.RefreshToken)
	if errA != nil || errR != nil {
		m.logger.Warn("stored session unreadable, discarding", "error", errors.Join(errA, errR))
		if err := m.store.Tokens().DeleteTokens(ctx); err != nil {
			return fmt.Errorf("session: discard tokens: %w", err)
		}
		return nil
	}

	m.access, m.refresh = access, refresh
	if access != "" || refresh != "" {
		m.logger.Info("session restored",
			"access_fp", cryptox.FingerprintToken(access),
			"refresh_fp", cryptox.FingerprintToken(refresh),
		)
	}
	return nil
}

func (m *Manager) seal(token string) (string, error) {
	if token == "" {
		return "", nil
	}
	return m.sealer.Seal(token)
}

func (m *Manager) open(sealed string) (string, error) {
	if sealed == "" {
		return "", nil
	}
	return m.sealer.Open(sealed)
}

// Snapshot returns a copy of the current session state.
func (m *Manager) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	var user *domain.UserProfile
	if m.user != nil {
		u := *m.user
		u.Roles = append([]string(nil), m.user.Roles...)
		user = &u
	}
	return Snapshot{
		HasAccessToken:  m.access != "",
		HasRefreshToken: m.refresh != "",
		User:            user,
		Generation:      m.gen,
		Epoch:           m.epoch,
	}
}

// Login overwrites both tokens without validating them and persists the pair
// in one transaction. Subscribers receive TokensChanged, which is what
// triggers the profile fetch.
func (m *Manager) Login(ctx context.Context, pair domain.TokenPair) error {
	sealedAccess, err := m.seal(pair.AccessToken)
	if err != nil {
		return fmt.Errorf("session: seal access token: %w", err)
	}
	sealedRefresh, err := m.seal(pair.RefreshToken)
	if err != nil {
		return fmt.Errorf("session: seal refresh token: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	err = m.store.WithTx(ctx, func(tx store.Tx) error {
		return tx.Tokens().SaveTokens(ctx, domain.TokenPair{
			AccessToken:  sealedAccess,
			RefreshToken: sealedRefresh,
		})
	})
	if err != nil {
		return fmt.Errorf("session: persist tokens: %w", err)
	}

	m.access, m.refresh = pair.AccessToken, pair.RefreshToken
	m.user = nil
	m.gen++
	m.epoch++
	m.publishLocked(TokensChanged)

	m.logger.Info("session started",
		"access_fp", cryptox.FingerprintToken(pair.AccessToken),
		"generation", m.gen,
	)
	return nil
}

// Logout clears tokens, user and storage. Calling it on an empty session is a
// no-op.
func (m *Manager) Logout(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.clearLocked(ctx)
}

// clearLocked wipes memory even when the storage delete fails: a user who
// asked to be signed out must not stay signed in. Both tokens are deleted in
// one transaction, so storage never keeps a single half. The storage error is
// returned so the caller can surface it.
func (m *Manager) clearLocked(ctx context.Context) error {
	if m.access == "" && m.refresh == "" && m.user == nil {
		return nil
	}

	err := m.store.WithTx(ctx, func(tx store.Tx) error {
		return tx.Tokens().DeleteTokens(ctx)
	})
	if err != nil {
		m.logger.Error("failed to delete stored tokens", "error", err)
		err = fmt.Errorf("session: delete tokens: %w", err)
	}

	m.access, m.refresh = "", ""
	m.user = nil
	m.gen++
	m.epoch++
	m.publishLocked(Cleared)
	m.logger.Info("session cleared", "generation", m.gen)
	return err
}

// clearIfCurrent clears the session only if nothing has changed since gen.
func (m *Manager) clearIfCurrent(ctx context.Context, gen uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.gen != gen {
		return ErrStale
	}
	return m.clearLocked(ctx)
}

func (m *Manager) notify(msg string) {
	if m.notifier != nil {
		m.notifier.Error(msg)
	}
}

// FetchProfile loads the user profile for the current access token.
//
// Without an access token it sets the user absent and returns nil without any
// network call. A 401 with a refresh token available triggers one silent
// refresh; on success the caller is expected to fetch again on the resulting
// TokensChanged event. Any other failure notifies the user and clears the
// session.
func (m *Manager) FetchProfile(ctx context.Context) error {
	m.mu.Lock()
	access, refresh, gen := m.access, m.refresh, m.gen
	if access == "" {
		m.user = nil
		m.mu.Unlock()
		return nil
	}
	m.mu.Unlock()

	p, err := m.api.Profile(ctx, access)
	if err == nil {
		m.mu.Lock()
		defer m.mu.Unlock()
		if m.gen != gen {
			return ErrStale
		}
		m.user = profileFromSDK(p)
		m.publishLocked(ProfileLoaded)
		return nil
	}

	if snapsdk.IsUnauthorized(err) && refresh != "" {
		if rerr := m.refreshFrom(ctx, gen, refresh); rerr != nil {
			if !errors.Is(rerr, ErrStale) {
				m.notify(MsgRenewFailed)
			}
			return rerr
		}
		return nil
	}

	// A caller that gave up is not a failed profile load.
	if errors.Is(ctx.Err(), context.Canceled) {
		return fmt.Errorf("session: fetch profile: %w", ctx.Err())
	}

	m.logger.Warn("profile fetch failed", "error", err, "status", snapsdk.StatusCode(err))
	if cerr := m.clearIfCurrent(ctx, gen); errors.Is(cerr, ErrStale) {
		return ErrStale
	} else if cerr != nil {
		err = errors.Join(err, cerr)
	}
	m.notify(MsgProfileFailed)
	return fmt.Errorf("session: fetch profile: %w", err)
}

// RefreshAccessToken exchanges the refresh token for a new access token.
// Only the access token is replaced. Any refresh failure logs the session
// out.
func (m *Manager) RefreshAccessToken(ctx context.Context) error {
	m.mu.Lock()
	refresh, gen := m.refresh, m.gen
	m.mu.Unlock()

	if refresh == "" {
		return ErrNoRefreshToken
	}
	return m.refreshFrom(ctx, gen, refresh)
}

func (m *Manager) refreshFrom(ctx context.Context, gen uint64, refresh string) error {
	m.refreshMu.Lock()
	defer m.refreshMu.Unlock()

	// Another caller refreshed while we waited.
	m.mu.Lock()
	if m.gen != gen {
		m.mu.Unlock()
		return ErrStale
	}
	m.mu.Unlock()

	resp, err := m.api.Refresh(ctx, refresh)
	if err == nil && resp.AccessToken == "" {
		err = errors.New("empty access token in refresh response")
	}
	if err != nil && errors.Is(ctx.Err(), context.Canceled) {
		return fmt.Errorf("session: refresh: %w", ctx.Err())
	}
	if err != nil {
		m.logger.Warn("silent refresh failed", "error", err, "refresh_fp", cryptox.FingerprintToken(refresh))
		if cerr := m.clearIfCurrent(ctx, gen); errors.Is(cerr, ErrStale) {
			return ErrStale
		} else if cerr != nil {
			err = errors.Join(err, cerr)
		}
		return fmt.Errorf("session: refresh: %w", err)
	}

	sealed, err := m.seal(resp.AccessToken)
	if err != nil {
		return fmt.Errorf("session: seal access token: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.gen != gen {
		return ErrStale
	}
	if err := m.store.Tokens().SaveAccessToken(ctx, sealed); err != nil {
		return fmt.Errorf("session: persist access token: %w", err)
	}
	m.access = resp.AccessToken
	m.gen++
	m.publishLocked(TokensChanged)
	m.logger.Info("access token refreshed",
		"access_fp", cryptox.FingerprintToken(resp.AccessToken),
		"generation", m.gen,
	)
	return nil
}

func profileFromSDK(p *snapsdk.Profile) *domain.UserProfile {
	u := &domain.UserProfile{
		ID:       p.ID,
		Email:    p.Email,
		Username: p.Username,
		Role:     domain.Role(p.Role),
		Roles:    append([]string(nil), p.Roles...),
		IsBanned: p.IsBanned,
	}
	if u.Role == "" {
		u.Role = domain.RoleUser
		if u.IsAdmin() {
			u.Role = domain.RoleAdmin
		}
	}
	return u
}
