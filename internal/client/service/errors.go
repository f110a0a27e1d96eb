package service

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/aussiebroadwan/snaptranslate/pkg/snapsdk"
)

var (
	// ErrLoginRequired is returned by feature actions attempted without a
	// session. The router's login prompt has already been opened.
	ErrLoginRequired = errors.New("login_required")
	// ErrBusy rejects a submit while the previous one is still in flight.
	ErrBusy = errors.New("request already in progress")
	// ErrNotAdmin is returned by admin actions for non-admin sessions. No
	// request is made.
	ErrNotAdmin = errors.New("admin role required")
)

// ValidationError is a client-side input problem. It never reaches the
// network.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func invalid(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}

// ThrottledError rejects a submit that came too soon after the last one.
type ThrottledError struct {
	Wait time.Duration
}

// Seconds is the countdown shown to the user, rounded up.
func (e *ThrottledError) Seconds() int {
	return int(math.Ceil(e.Wait.Seconds()))
}

func (e *ThrottledError) Error() string {
	return fmt.Sprintf("Please wait %d seconds before trying again", e.Seconds())
}

// LockedError rejects logins during a lockout.
type LockedError struct {
	Until time.Time
}

func (e *LockedError) Error() string {
	return fmt.Sprintf("Too many failed attempts, login unlocks at %s", e.Until.Local().Format("15.04"))
}

// CooldownError rejects an OTP resend before the cooldown has run out.
type CooldownError struct {
	Wait time.Duration
}

func (e *CooldownError) Seconds() int {
	return int(math.Ceil(e.Wait.Seconds()))
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("You can request a new code in %d seconds", e.Seconds())
}

// BackendError is a failed backend call with the message to show the user.
type BackendError struct {
	Op      string
	Message string
	Err     error
}

func (e *BackendError) Error() string { return e.Message }
func (e *BackendError) Unwrap() error { return e.Err }

// StatusCode is the backend's HTTP status, or 0 for transport failures.
func (e *BackendError) StatusCode() int { return snapsdk.StatusCode(e.Err) }

// Messages shown when the backend gives no detail of its own.
const (
	msgUnreachable = "Could not connect to the server"
)

// backendErr wraps err, preferring the backend's own detail over fallback
// when useDetail is set. Transport failures always get msgUnreachable.
func backendErr(op string, err error, fallback string, useDetail bool) error {
	msg := fallback
	switch {
	case snapsdk.IsTransport(err):
		msg = msgUnreachable
	case useDetail:
		msg = snapsdk.Detail(err, fallback)
	}
	return &BackendError{Op: op, Message: msg, Err: err}
}
