package domain

import "time"

// LoginAttempts is the persisted failed-login bookkeeping. BlockedUntil is
// zero when no lockout is active.
type LoginAttempts struct {
	Failures     int
	BlockedUntil time.Time
}

// Blocked reports whether a lockout is in force at now.
func (a LoginAttempts) Blocked(now time.Time) bool {
	return !a.BlockedUntil.IsZero() && now.Before(a.BlockedUntil)
}
