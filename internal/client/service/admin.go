package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/aussiebroadwan/snaptranslate/internal/client/session"
	"github.com/aussiebroadwan/snaptranslate/pkg/snapsdk"
	"golang.org/x/sync/errgroup"
)

// AdminService backs the admin dashboard. Every call first checks the
// loaded profile's role; non-admins get ErrNotAdmin and nothing is sent.
type AdminService struct {
	Backend Backend
	Session *session.Manager
	Logger  *slog.Logger
}

func NewAdminService(backend Backend, sess *session.Manager, logger *slog.Logger) *AdminService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AdminService{Backend: backend, Session: sess, Logger: logger}
}

// Allowed reports whether the current session may use the dashboard.
func (s *AdminService) Allowed() bool {
	return s.Session.Snapshot().IsAdmin()
}

func (s *AdminService) do(ctx context.Context, fn func(ctx context.Context, token string) error) error {
	if !s.Allowed() {
		return ErrNotAdmin
	}
	return s.Session.Do(ctx, fn)
}

func (s *AdminService) Users(ctx context.Context) (*snapsdk.UserList, error) {
	var out *snapsdk.UserList
	err := s.do(ctx, func(ctx context.Context, token string) error {
		var err error
		out, err = s.Backend.ListUsers(ctx, token)
		return err
	})
	if err != nil {
		return nil, s.wrap("list_users", err, "Could not load users")
	}
	return out, nil
}

// SetBanned bans or unbans the account with the given email.
func (s *AdminService) SetBanned(ctx context.Context, email string, banned bool) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return "", invalid("email", "email is required")
	}

	var msg *snapsdk.Message
	err := s.do(ctx, func(ctx context.Context, token string) error {
		var err error
		msg, err = s.Backend.UpdateUser(ctx, token, snapsdk.UserUpdate{Email: email, IsBanned: banned})
		return err
	})
	if err != nil {
		return "", s.wrap("update_user", err, "Could not update the user")
	}
	s.Logger.Info("user ban updated", "banned", banned)
	return msg.Text(), nil
}

func (s *AdminService) Webhook(ctx context.Context) (*snapsdk.Webhook, error) {
	var out *snapsdk.Webhook
	err := s.do(ctx, func(ctx context.Context, token string) error {
		var err error
		out, err = s.Backend.GetWebhook(ctx, token)
		return err
	})
	if err != nil {
		return nil, s.wrap("get_webhook", err, "Could not load the webhook setting")
	}
	return out, nil
}

// SetWebhook stores the Discord webhook URL. An empty URL disables it.
func (s *AdminService) SetWebhook(ctx context.Context, url string) (string, error) {
	url = strings.TrimSpace(url)
	if url != "" && !strings.HasPrefix(url, "https://") {
		return "", invalid("discord_webhook_url", "Webhook URL must start with https://")
	}

	var msg *snapsdk.Message
	err := s.do(ctx, func(ctx context.Context, token string) error {
		var err error
		msg, err = s.Backend.PutWebhook(ctx, token, snapsdk.Webhook{DiscordWebhookURL: url})
		return err
	})
	if err != nil {
		return "", s.wrap("put_webhook", err, "Could not save the webhook setting")
	}
	return msg.Text(), nil
}

// Stats is everything the dashboard charts.
type Stats struct {
	Usage           []snapsdk.UsageSummary `json:"usage_summary"`
	TopLanguages    []snapsdk.StatBucket   `json:"top_languages"`
	ImageCategories []snapsdk.StatBucket   `json:"image_categories"`
	Feedback        *snapsdk.FeedbackStats `json:"feedback_stats"`
}

// Stats loads the four dashboard aggregations concurrently.
func (s *AdminService) Stats(ctx context.Context) (*Stats, error) {
	var out Stats
	err := s.do(ctx, func(ctx context.Context, token string) error {
		g, ctx := errgroup.WithContext(ctx)
		g.Go(func() (err error) {
			out.Usage, err = s.Backend.UsageSummary(ctx, token)
			return err
		})
		g.Go(func() (err error) {
			out.TopLanguages, err = s.Backend.TopLanguages(ctx, token)
			return err
		})
		g.Go(func() (err error) {
			out.ImageCategories, err = s.Backend.ImageCategories(ctx, token)
			return err
		})
		g.Go(func() (err error) {
			out.Feedback, err = s.Backend.FeedbackStats(ctx, token)
			return err
		})
		return g.Wait()
	})
	if err != nil {
		return nil, s.wrap("stats", err, "Could not load statistics")
	}
	return &out, nil
}

func (s *AdminService) wrap(op string, err error, fallback string) error {
	if errors.Is(err, ErrNotAdmin) {
		return err
	}
	s.Logger.Warn("admin request failed", "op", op, "error", err)
	return backendErr(op, err, fallback, true)
}
