// Package service implements the client's user-facing flows on top of the
// session, the router and the backend SDK.
package service

import (
	"context"
	"sync"
	"time"

	"github.com/aussiebroadwan/snaptranslate/pkg/snapsdk"
)

// Backend is the remote API. *snapsdk.SDKClient satisfies it.
type Backend interface {
	Login(ctx context.Context, username, password string) (*snapsdk.TokenResponse, error)
	Register(ctx context.Context, req snapsdk.RegisterRequest) (*snapsdk.Message, error)
	CheckAvailability(ctx context.Context, field, value string) (bool, error)
	VerifyEmail(ctx context.Context, email, otp string) (*snapsdk.TokenResponse, error)
	RequestVerifyEmailOTP(ctx context.Context, email string) (*snapsdk.Message, error)
	RequestResetPasswordOTP(ctx context.Context, email string) (*snapsdk.Message, error)
	ResetPassword(ctx context.Context, req snapsdk.ResetPasswordRequest) (*snapsdk.Message, error)

	Analyze(ctx context.Context, accessToken string, req snapsdk.AnalyzeRequest) (*snapsdk.AnalyzeResult, error)
	GenerateImage(ctx context.Context, accessToken, prompt string) (*snapsdk.GeneratedImage, error)
	Languages(ctx context.Context) (map[string]string, error)
	SubmitFeedback(ctx context.Context, accessToken string, fb snapsdk.Feedback) (*snapsdk.Message, error)

	ListUsers(ctx context.Context, accessToken string) (*snapsdk.UserList, error)
	UpdateUser(ctx context.Context, accessToken string, req snapsdk.UserUpdate) (*snapsdk.Message, error)
	GetWebhook(ctx context.Context, accessToken string) (*snapsdk.Webhook, error)
	PutWebhook(ctx context.Context, accessToken string, w snapsdk.Webhook) (*snapsdk.Message, error)
	UsageSummary(ctx context.Context, accessToken string) ([]snapsdk.UsageSummary, error)
	TopLanguages(ctx context.Context, accessToken string) ([]snapsdk.StatBucket, error)
	ImageCategories(ctx context.Context, accessToken string) ([]snapsdk.StatBucket, error)
	FeedbackStats(ctx context.Context, accessToken string) (*snapsdk.FeedbackStats, error)
}

var _ Backend = (*snapsdk.SDKClient)(nil)

// cooldowns tracks when an OTP was last sent per purpose.
type cooldowns struct {
	mu     sync.Mutex
	period time.Duration
	last   map[string]time.Time
}

func newCooldowns(period time.Duration) *cooldowns {
	return &cooldowns{period: period, last: make(map[string]time.Time)}
}

// check returns a *CooldownError if key was started less than period ago.
func (c *cooldowns) check(key string, now time.Time) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	last, ok := c.last[key]
	if !ok {
		return nil
	}
	if wait := last.Add(c.period).Sub(now); wait > 0 {
		return &CooldownError{Wait: wait}
	}
	return nil
}

func (c *cooldowns) start(key string, now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.last[key] = now
}

func (c *cooldowns) remaining(key string, now time.Time) time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	last, ok := c.last[key]
	if !ok {
		return 0
	}
	return max(last.Add(c.period).Sub(now), 0)
}
