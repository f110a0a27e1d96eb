// Package router decides which page the client shows and keeps signed-in
// users off the sign-in pages.
package router

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/aussiebroadwan/snaptranslate/internal/client/domain"
	"github.com/aussiebroadwan/snaptranslate/internal/client/session"
)

// Auth is the read side of the session the router consults.
type Auth interface {
	Snapshot() session.Snapshot
}

// Router is safe for concurrent use. Every mutation is followed by Enforce,
// and Watch re-runs it on every session event, so the guard holds no matter
// which side changed.
type Router struct {
	auth   Auth
	logger *slog.Logger

	mu          sync.Mutex
	active      domain.Page
	showIntro   bool
	loginPrompt bool
	verifyEmail string

	// onReset runs after AfterLogout to drop page-local feature state.
	onReset []func()
}

func New(auth Auth, logger *slog.Logger) *Router {
	if logger == nil {
		logger = slog.Default()
	}
	return &Router{
		auth:      auth,
		logger:    logger,
		active:    domain.MainPage,
		showIntro: true,
	}
}

// OnReset registers fn to run when the router resets feature state on
// logout.
func (r *Router) OnReset(fn func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onReset = append(r.onReset, fn)
}

// State is a copy of the router's fields.
type State struct {
	Active      domain.Page
	ShowIntro   bool
	LoginPrompt bool
	VerifyEmail string
}

func (r *Router) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.enforceLocked()
	return State{
		Active:      r.active,
		ShowIntro:   r.showIntro,
		LoginPrompt: r.loginPrompt,
		VerifyEmail: r.verifyEmail,
	}
}

// SetActivePage navigates to page, subject to the guard. Landing is not a
// content page: asking for it returns to the splash.
func (r *Router) SetActivePage(page domain.Page) error {
	if !page.Valid() {
		return fmt.Errorf("router: invalid page %d", int(page))
	}
	if page == domain.PageLanding {
		r.ReturnToLanding()
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.active = page
	r.enforceLocked()
	return nil
}

// EnterApp leaves the splash and shows the main page.
func (r *Router) EnterApp() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.showIntro = false
	r.active = domain.MainPage
	r.enforceLocked()
}

// ReturnToLanding shows the splash again. Re-entering lands on the main page
// rather than wherever the user last was.
func (r *Router) ReturnToLanding() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.showIntro = true
	r.active = domain.MainPage
	r.enforceLocked()
}

// RequireLogin opens the "please sign in" prompt.
func (r *Router) RequireLogin() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loginPrompt = true
}

// ConfirmLoginPrompt closes the prompt and routes to the login page outside
// the splash. It is a no-op when no prompt is open.
func (r *Router) ConfirmLoginPrompt() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.loginPrompt {
		return
	}
	r.loginPrompt = false
	r.active = domain.PageLogin
	r.showIntro = false
	r.enforceLocked()
}

// CancelLoginPrompt dismisses the prompt and changes nothing else.
func (r *Router) CancelLoginPrompt() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loginPrompt = false
}

// SetVerifyEmail records the address awaiting an OTP and shows the
// verification page.
func (r *Router) SetVerifyEmail(email string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.verifyEmail = email
	r.active = domain.PageVerifyEmail
	r.showIntro = false
	r.enforceLocked()
}

// AfterLogin moves a freshly signed-in user to the main page.
func (r *Router) AfterLogin() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.active = domain.MainPage
	r.showIntro = false
	r.loginPrompt = false
	r.enforceLocked()
}

// AfterVerified is AfterLogin for the email verification flow; it also drops
// the pending address.
func (r *Router) AfterVerified() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.verifyEmail = ""
	r.active = domain.MainPage
	r.showIntro = false
	r.loginPrompt = false
	r.enforceLocked()
}

// AfterLogout routes to the login page outside the splash and resets feature
// state.
func (r *Router) AfterLogout() {
	r.mu.Lock()
	r.active = domain.PageLogin
	r.showIntro = false
	r.loginPrompt = false
	r.verifyEmail = ""
	r.enforceLocked()
	r.mu.Unlock()

	r.runResetHooks()
}

func (r *Router) runResetHooks() {
	r.mu.Lock()
	hooks := append([]func(){}, r.onReset...)
	r.mu.Unlock()

	for _, fn := range hooks {
		fn()
	}
}

// Enforce applies the guard once and reports whether it moved the page.
// Running it again without an intervening change is a no-op.
func (r *Router) Enforce() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.enforceLocked()
}

func (r *Router) enforceLocked() bool {
	if !r.active.IsAuthPage() || r.active == domain.MainPage {
		return false
	}
	if !r.auth.Snapshot().HasAccessToken {
		return false
	}
	r.logger.Debug("signed-in user moved off auth page", "from", r.active.String())
	r.active = domain.MainPage
	return true
}
