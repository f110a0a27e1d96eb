package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/aussiebroadwan/snaptranslate/internal/client/domain"
	"github.com/aussiebroadwan/snaptranslate/internal/client/router"
	"github.com/aussiebroadwan/snaptranslate/internal/client/session"
	"github.com/aussiebroadwan/snaptranslate/internal/client/store"
	"github.com/aussiebroadwan/snaptranslate/pkg/snapsdk"
	"golang.org/x/time/rate"
)

// Defaults for AuthConfig.
const (
	DefaultLoginThrottle    = 3 * time.Second
	DefaultMaxLoginAttempts = 5
	DefaultLockout          = time.Hour
	DefaultResendCooldown   = 60 * time.Second
)

const (
	cooldownVerify = "verify-email"
	cooldownReset  = "reset-password"
)

type AuthConfig struct {
	Backend Backend
	Session *session.Manager
	Router  *router.Router
	Store   store.Store
	Logger  *slog.Logger
	Now     func() time.Time

	// Throttle is the minimum interval between accepted login submits.
	Throttle time.Duration
	// MaxAttempts consecutive failures start a lockout of Lockout.
	MaxAttempts    int
	Lockout        time.Duration
	ResendCooldown time.Duration
}

// AuthService runs the sign-in, registration, verification and password
// reset flows.
type AuthService struct {
	backend Backend
	session *session.Manager
	router  *router.Router
	store   store.Store
	logger  *slog.Logger
	now     func() time.Time

	maxAttempts int
	lockout     time.Duration

	limiter   *rate.Limiter
	inFlight  sync.Mutex
	cooldowns *cooldowns
}

func NewAuthService(cfg AuthConfig) *AuthService {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Throttle <= 0 {
		cfg.Throttle = DefaultLoginThrottle
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = DefaultMaxLoginAttempts
	}
	if cfg.Lockout <= 0 {
		cfg.Lockout = DefaultLockout
	}
	if cfg.ResendCooldown <= 0 {
		cfg.ResendCooldown = DefaultResendCooldown
	}

	return &AuthService{
		backend:     cfg.Backend,
		session:     cfg.Session,
		router:      cfg.Router,
		store:       cfg.Store,
		logger:      cfg.Logger,
		now:         cfg.Now,
		maxAttempts: cfg.MaxAttempts,
		lockout:     cfg.Lockout,
		limiter:     rate.NewLimiter(rate.Every(cfg.Throttle), 1),
		cooldowns:   newCooldowns(cfg.ResendCooldown),
	}
}

// Login signs in with a username or email and password.
//
// Checks run in a fixed order: throttle, non-empty fields, lockout, then the
// request. Only answers from the backend count as failed attempts; a
// transport error leaves the counter alone. On success the attempt
// bookkeeping is cleared, the session takes the token pair and the router
// moves to the main page.
func (s *AuthService) Login(ctx context.Context, identity, password string) error {
	now := s.now()

	r := s.limiter.ReserveN(now, 1)
	if wait := r.DelayFrom(now); wait > 0 {
		r.CancelAt(now)
		return &ThrottledError{Wait: wait}
	}

	if !s.inFlight.TryLock() {
		return ErrBusy
	}
	defer s.inFlight.Unlock()

	identity = strings.TrimSpace(identity)
	password = strings.TrimSpace(password)
	if identity == "" || password == "" {
		return invalid("username", "Please enter your email or username and password")
	}

	attempts, err := s.store.LoginAttempts().GetLoginAttempts(ctx)
	if err != nil {
		return fmt.Errorf("service: load login attempts: %w", err)
	}
	if attempts.Blocked(now) {
		return &LockedError{Until: attempts.BlockedUntil}
	}

	tok, err := s.backend.Login(ctx, identity, password)
	if err != nil {
		if snapsdk.IsTransport(err) {
			s.logger.Warn("login request failed", "error", err)
			return backendErr("login", err, "", false)
		}
		return s.recordFailure(ctx, attempts, err)
	}

	err = s.store.WithTx(ctx, func(tx store.Tx) error {
		return tx.LoginAttempts().ClearLoginAttempts(ctx)
	})
	if err != nil {
		return fmt.Errorf("service: clear login attempts: %w", err)
	}
	if err := s.session.Login(ctx, domain.TokenPair{AccessToken: tok.AccessToken, RefreshToken: tok.RefreshToken}); err != nil {
		return err
	}
	s.router.AfterLogin()
	s.logger.Info("login succeeded")
	return nil
}

func (s *AuthService) recordFailure(ctx context.Context, attempts domain.LoginAttempts, cause error) error {
	attempts.Failures++
	s.logger.Info("login rejected", "failures", attempts.Failures, "status", snapsdk.StatusCode(cause))

	if attempts.Failures >= s.maxAttempts {
		locked := domain.LoginAttempts{BlockedUntil: s.now().Add(s.lockout)}
		if err := s.saveAttempts(ctx, locked); err != nil {
			return fmt.Errorf("service: save lockout: %w", err)
		}
		s.logger.Warn("login locked", "until", locked.BlockedUntil)
		return &LockedError{Until: locked.BlockedUntil}
	}

	if err := s.saveAttempts(ctx, attempts); err != nil {
		return fmt.Errorf("service: save login attempts: %w", err)
	}
	return backendErr("login", cause, "Login failed", true)
}

// saveAttempts writes the counter and the deadline together.
func (s *AuthService) saveAttempts(ctx context.Context, a domain.LoginAttempts) error {
	return s.store.WithTx(ctx, func(tx store.Tx) error {
		return tx.LoginAttempts().SaveLoginAttempts(ctx, a)
	})
}

// LoginAttempts returns the persisted failure bookkeeping.
func (s *AuthService) LoginAttempts(ctx context.Context) (domain.LoginAttempts, error) {
	return s.store.LoginAttempts().GetLoginAttempts(ctx)
}

// LockedUntil returns the end of the lockout in force, or the zero time.
func (s *AuthService) LockedUntil(ctx context.Context) (time.Time, error) {
	attempts, err := s.LoginAttempts(ctx)
	if err != nil || !attempts.Blocked(s.now()) {
		return time.Time{}, err
	}
	return attempts.BlockedUntil, nil
}

// Logout ends the session and routes to the login page. Routing happens even
// if clearing storage failed.
func (s *AuthService) Logout(ctx context.Context) error {
	err := s.session.Logout(ctx)
	s.router.AfterLogout()
	return err
}

type RegisterInput struct {
	Email           string
	Username        string
	Password        string
	ConfirmPassword string
}

// Register validates the form, checks availability, creates the account and
// moves to the verification page for the new address.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (string, error) {
	email := strings.TrimSpace(in.Email)
	username := strings.TrimSpace(in.Username)

	if email == "" || username == "" || in.Password == "" || in.ConfirmPassword == "" {
		return "", invalid("form", "Please fill in every field")
	}
	if !ValidEmail(email) {
		return "", invalid("email", "Invalid email address")
	}
	if ok, _ := s.available(ctx, snapsdk.FieldEmail, email); !ok {
		return "", invalid("email", "This email is already in use or invalid")
	}
	if !ValidUsername(username) {
		return "", invalid("username", "Invalid username or unsuitable length")
	}
	if ok, _ := s.available(ctx, snapsdk.FieldUsername, username); !ok {
		return "", invalid("username", "This username is already taken")
	}
	if !ValidPassword(in.Password) {
		return "", invalid("password", "Password is too weak, it needs upper and lower case letters, a digit and a symbol")
	}
	if in.Password != in.ConfirmPassword {
		return "", invalid("confirm_password", "Passwords do not match")
	}

	msg, err := s.backend.Register(ctx, snapsdk.RegisterRequest{Email: email, Username: username, Password: in.Password})
	if err != nil {
		return "", backendErr("register", err, "Registration failed", true)
	}

	// The backend mails the first code on registration.
	s.cooldowns.start(cooldownVerify, s.now())
	s.router.SetVerifyEmail(email)
	return msg.Text(), nil
}

// CheckAvailability reports whether an email or username is free. Malformed
// values are rejected without a request.
func (s *AuthService) CheckAvailability(ctx context.Context, field, value string) (bool, error) {
	value = strings.TrimSpace(value)
	switch field {
	case snapsdk.FieldEmail:
		if !ValidEmail(value) {
			return false, invalid("email", "Invalid email address")
		}
	case snapsdk.FieldUsername:
		if !ValidUsername(value) {
			return false, invalid("username", "Invalid username or unsuitable length")
		}
	default:
		return false, invalid("field", "field must be email or username")
	}
	return s.available(ctx, field, value)
}

func (s *AuthService) available(ctx context.Context, field, value string) (bool, error) {
	ok, err := s.backend.CheckAvailability(ctx, field, value)
	if err != nil {
		return false, backendErr("check_availability", err, "Could not check availability", true)
	}
	return ok, nil
}

// VerifyEmail submits the OTP for the address the router holds and signs the
// new user in.
func (s *AuthService) VerifyEmail(ctx context.Context, otp string) error {
	email := s.router.State().VerifyEmail
	if email == "" {
		return invalid("email", "No email address is awaiting verification")
	}
	if !validOTP(otp) {
		return invalid("otp", fmt.Sprintf("Please enter the %d digit code", OTPLength))
	}

	tok, err := s.backend.VerifyEmail(ctx, email, strings.TrimSpace(otp))
	if err != nil {
		return backendErr("verify_email", err, "Verification failed", true)
	}
	if tok.AccessToken == "" || tok.RefreshToken == "" {
		return &BackendError{Op: "verify_email", Message: "No token received from the server", Err: errors.New("missing token in verify response")}
	}

	if err := s.session.Login(ctx, domain.TokenPair{AccessToken: tok.AccessToken, RefreshToken: tok.RefreshToken}); err != nil {
		return err
	}
	s.router.AfterVerified()
	return nil
}

// ResendVerifyOTP mails a fresh verification code, at most once per
// cooldown.
func (s *AuthService) ResendVerifyOTP(ctx context.Context) (string, error) {
	email := s.router.State().VerifyEmail
	if email == "" {
		return "", invalid("email", "No email address is awaiting verification")
	}
	now := s.now()
	if err := s.cooldowns.check(cooldownVerify, now); err != nil {
		return "", err
	}

	if _, err := s.backend.RequestVerifyEmailOTP(ctx, email); err != nil {
		return "", backendErr("resend_verify_otp", err, "Could not resend the code", true)
	}
	s.cooldowns.start(cooldownVerify, now)
	return "A new code has been sent, please check your email", nil
}

// RequestPasswordReset mails a reset code to email.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	email = strings.TrimSpace(email)
	if !ValidEmail(email) {
		return "", invalid("email", "Invalid email address")
	}
	now := s.now()
	if err := s.cooldowns.check(cooldownReset, now); err != nil {
		return "", err
	}

	if _, err := s.backend.RequestResetPasswordOTP(ctx, email); err != nil {
		return "", backendErr("request_reset_otp", err, "Could not send the code", true)
	}
	s.cooldowns.start(cooldownReset, now)
	return fmt.Sprintf("A code has been sent to %s, please check your email", email), nil
}

type ResetPasswordInput struct {
	Email           string
	OTP             string
	NewPassword     string
	ConfirmPassword string
}

// ResetPassword sets a new password with an emailed code and routes to the
// login page.
func (s *AuthService) ResetPassword(ctx context.Context, in ResetPasswordInput) (string, error) {
	email := strings.TrimSpace(in.Email)
	otp := strings.TrimSpace(in.OTP)

	if email == "" || otp == "" || in.NewPassword == "" || in.ConfirmPassword == "" {
		return "", invalid("form", "Please fill in every field")
	}
	if !ValidEmail(email) {
		return "", invalid("email", "Invalid email address")
	}
	if in.NewPassword != in.ConfirmPassword {
		return "", invalid("confirm_password", "Passwords do not match")
	}
	if !ValidPassword(in.NewPassword) {
		return "", invalid("new_password", "Password needs at least 8 characters with A-Z, a-z, 0-9 and a symbol")
	}

	_, err := s.backend.ResetPassword(ctx, snapsdk.ResetPasswordRequest{
		Email:       email,
		OTP:         otp,
		NewPassword: strings.TrimSpace(in.NewPassword),
	})
	if err != nil {
		return "", backendErr("reset_password", err, "Invalid or expired code", true)
	}

	if err := s.router.SetActivePage(domain.PageLogin); err != nil {
		return "", err
	}
	return "Password reset, please sign in", nil
}

// Cooldowns reports the remaining resend wait per OTP purpose.
func (s *AuthService) Cooldowns() map[string]time.Duration {
	now := s.now()
	return map[string]time.Duration{
		cooldownVerify: s.cooldowns.remaining(cooldownVerify, now),
		cooldownReset:  s.cooldowns.remaining(cooldownReset, now),
	}
}
