package mockapi

import (
	"crypto/rand"
	"encoding/base32"
	"sync"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/hotp"
)

// otpIssuer hands out six digit HOTP codes from a per-process secret and a
// monotonically increasing counter.
type otpIssuer struct {
	secret string

	mu      sync.Mutex
	counter uint64
}

var otpOpts = hotp.ValidateOpts{Digits: otp.DigitsSix, Algorithm: otp.AlgorithmSHA1}

func newOTPIssuer() (*otpIssuer, error) {
	raw := make([]byte, 20)
	if _, err := rand.Read(raw); err != nil {
		return nil, err
	}
	return &otpIssuer{secret: base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(raw)}, nil
}

func (o *otpIssuer) next() (string, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.counter++
	return hotp.GenerateCodeCustom(o.secret, o.counter, otpOpts)
}

// otpRecord is an outstanding OTP for one email address.
type otpRecord struct {
	code     string
	issuedAt time.Time
}

func (r *otpRecord) valid(code string, now time.Time, ttl time.Duration) bool {
	return r != nil && r.code == code && now.Sub(r.issuedAt) <= ttl
}

type pendingSignup struct {
	otpRecord
	username     string
	passwordHash string
}

// sendOTPLocked issues a code for email and records it in the outbox.
// Callers hold s.mu.
func (s *Server) sendOTPLocked(email string) (otpRecord, error) {
	code, err := s.otp.next()
	if err != nil {
		return otpRecord{}, err
	}
	s.outbox[email] = code
	s.logger.Info("otp sent", "email", email)
	return otpRecord{code: code, issuedAt: s.cfg.Now()}, nil
}
