// Package mockapi is an in-memory stand-in for the SnapTranslate backend.
// It speaks the same wire format as the real service so the client can be
// developed and tested without the model-serving stack behind it. Image
// recognition, translation and generation return deterministic fakes.
package mockapi

import (
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/aussiebroadwan/snaptranslate/pkg/cryptox"
	"github.com/aussiebroadwan/snaptranslate/pkg/httpx"
	"github.com/aussiebroadwan/snaptranslate/pkg/jwtx"
	"github.com/aussiebroadwan/snaptranslate/pkg/slogx"
)

// Config controls token lifetimes and secrets. Zero values get defaults.
type Config struct {
	AccessSecret  []byte // HS256 secret for access tokens
	RefreshSecret []byte // HS256 secret for refresh tokens
	Issuer        string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	OTPTTL        time.Duration
	Now           func() time.Time

	// ExposeOutbox serves the last OTP per address at GET /_dev/outbox/{email}
	// so black-box tests can finish email flows.
	ExposeOutbox bool
}

func (c *Config) defaults() {
	if len(c.AccessSecret) == 0 {
		c.AccessSecret = cryptox.MustRandomSecret(cryptox.SecretSize)
	}
	if len(c.RefreshSecret) == 0 {
		c.RefreshSecret = cryptox.MustRandomSecret(cryptox.SecretSize)
	}
	if c.Issuer == "" {
		c.Issuer = "snapmock"
	}
	if c.AccessTTL == 0 {
		c.AccessTTL = jwtx.DefaultAccessTokenTTL
	}
	if c.RefreshTTL == 0 {
		c.RefreshTTL = jwtx.DefaultRefreshTokenTTL
	}
	if c.OTPTTL == 0 {
		c.OTPTTL = 10 * time.Minute
	}
	if c.Now == nil {
		c.Now = time.Now
	}
}

// Server holds all backend state in memory.
type Server struct {
	cfg     Config
	logger  *slog.Logger
	access  *jwtx.HS256
	refresh *jwtx.HS256
	otp     *otpIssuer

	mu        sync.Mutex
	users     map[string]*user // by email
	pending   map[string]*pendingSignup
	resets    map[string]*otpRecord
	refreshes map[string]string // refresh jti -> email
	outbox    map[string]string // email -> last OTP sent
	webhook   string
	usage     []usageStat
	feedback  []snapFeedback
	faults    map[string]fault
	calls     map[string]int
}

type fault struct {
	status int
	detail string
}

var errNotFound = errors.New("mockapi: not found")

// New builds a Server.
func New(cfg Config, logger *slog.Logger) (*Server, error) {
	cfg.defaults()
	if logger == nil {
		logger = slog.Default()
	}

	access, err := jwtx.NewHS256(cfg.AccessSecret, cfg.Issuer)
	if err != nil {
		return nil, err
	}
	access.WithClock(cfg.Now)

	refresh, err := jwtx.NewHS256(cfg.RefreshSecret, cfg.Issuer)
	if err != nil {
		return nil, err
	}
	refresh.WithClock(cfg.Now)

	issuer, err := newOTPIssuer()
	if err != nil {
		return nil, err
	}

	return &Server{
		cfg:       cfg,
		logger:    logger,
		access:    access,
		refresh:   refresh,
		otp:       issuer,
		users:     map[string]*user{},
		pending:   map[string]*pendingSignup{},
		resets:    map[string]*otpRecord{},
		refreshes: map[string]string{},
		outbox:    map[string]string{},
		faults:    map[string]fault{},
		calls:     map[string]int{},
	}, nil
}

// Handler returns the backend's HTTP surface.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	authed := func(h http.HandlerFunc) http.Handler {
		return httpx.Chain(h, httpx.BearerAuth(s.verifyAccess))
	}
	admin := func(h http.HandlerFunc) http.Handler {
		return httpx.Chain(h, httpx.BearerAuth(s.verifyAccess), httpx.RequireRole(roleAdmin))
	}

	mux.HandleFunc("POST /auth/login", s.handleLogin)
	mux.HandleFunc("POST /auth/register", s.handleRegister)
	mux.HandleFunc("POST /auth/check-availability", s.handleCheckAvailability)
	mux.HandleFunc("POST /auth/verify-email", s.handleVerifyEmail)
	mux.HandleFunc("POST /auth/request-verify-email-otp", s.handleRequestVerifyOTP)
	mux.HandleFunc("POST /auth/request-reset-password-otp", s.handleRequestResetOTP)
	mux.HandleFunc("POST /auth/reset-password", s.handleResetPassword)
	mux.HandleFunc("POST /auth/refresh", s.handleRefresh)
	mux.Handle("GET /auth/profile", authed(s.handleProfile))

	mux.Handle("POST /analyze/", authed(s.handleAnalyze))
	mux.Handle("POST /generate/image", authed(s.handleGenerateImage))
	mux.HandleFunc("GET /languages", s.handleLanguages)
	mux.HandleFunc("GET /languages/", s.handleLanguages)
	mux.Handle("POST /feedback/", authed(s.handleSubmitFeedback))
	mux.HandleFunc("GET /feedback/stats", s.handleFeedbackStats)

	mux.Handle("GET /admin/users", admin(s.handleListUsers))
	mux.Handle("POST /admin/user/update", admin(s.handleUpdateUser))
	mux.Handle("GET /admin/webhook", admin(s.handleGetWebhook))
	mux.Handle("PUT /admin/webhook", admin(s.handlePutWebhook))
	mux.Handle("GET /stats/usage-summary", admin(s.handleUsageSummary))
	mux.Handle("GET /stats/top-languages", admin(s.handleTopLanguages))
	mux.Handle("GET /stats/image-categories", admin(s.handleImageCategories))

	mux.HandleFunc("GET /livez", func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	if s.cfg.ExposeOutbox {
		mux.HandleFunc("GET /_dev/outbox/{email}", func(w http.ResponseWriter, r *http.Request) {
			code, ok := s.LastOTP(r.PathValue("email"))
			if !ok {
				writeDetail(w, http.StatusNotFound, "No OTP sent to this email")
				return
			}
			httpx.WriteJSON(w, http.StatusOK, map[string]string{"otp": code})
		})
	}

	return httpx.Chain(mux,
		slogx.HTTPMiddleware(s.logger),
		httpx.Recover(),
		s.countCalls,
		s.injectFaults,
	)
}

// Fail makes the next request matching "METHOD /path" answer with status
// and detail instead of reaching its handler.
func (s *Server) Fail(route string, status int, detail string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faults[route] = fault{status: status, detail: detail}
}

// Calls reports how many requests hit "METHOD /path".
func (s *Server) Calls(route string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[route]
}

// LastOTP returns the last OTP "emailed" to email.
func (s *Server) LastOTP(email string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	code, ok := s.outbox[email]
	return code, ok
}

// RevokeRefreshTokens invalidates every issued refresh token.
func (s *Server) RevokeRefreshTokens() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.refreshes)
}

func (s *Server) countCalls(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.calls[r.Method+" "+r.URL.Path]++
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) injectFaults(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route := r.Method + " " + r.URL.Path

		s.mu.Lock()
		f, ok := s.faults[route]
		delete(s.faults, route)
		s.mu.Unlock()

		if ok {
			writeDetail(w, f.status, f.detail)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// writeDetail writes a FastAPI style error body.
func writeDetail(w http.ResponseWriter, status int, detail string) {
	httpx.WriteJSON(w, status, map[string]string{"detail": detail})
}
