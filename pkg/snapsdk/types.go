package snapsdk

import (
	"io"
	"time"
)

// TokenResponse is returned by login, email verification and refresh.
// Refresh responses may omit RefreshToken.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	TokenType    string `json:"token_type,omitempty"`
}

// Message is the acknowledgement body of most mutating endpoints. The auth
// endpoints use "msg", the admin endpoints "message".
type Message struct {
	Msg     string `json:"msg,omitempty"`
	Message string `json:"message,omitempty"`
}

// Text returns whichever message field is set.
func (m Message) Text() string {
	if m.Message != "" {
		return m.Message
	}
	return m.Msg
}

// Profile is the authenticated user as returned by GET /auth/profile.
type Profile struct {
	ID         string   `json:"id"`
	Email      string   `json:"email"`
	Username   string   `json:"username"`
	Role       string   `json:"role,omitempty"`
	Roles      []string `json:"roles,omitempty"`
	IsBanned   bool     `json:"is_banned,omitempty"`
	IsVerified bool     `json:"is_verified,omitempty"`
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email"`
	OTP         string `json:"otp"`
	NewPassword string `json:"new_password"`
}

// Availability fields accepted by CheckAvailability.
const (
	FieldEmail    = "email"
	FieldUsername = "username"
)

// AnalyzeRequest is the multipart upload for POST /analyze/.
type AnalyzeRequest struct {
	Image    io.Reader
	Filename string
	Mode     string   // "object" detects the main object, anything else captions the scene
	Langs    []string // language names as returned by Languages
}

type Translation struct {
	Language   string `json:"language"`
	Translated string `json:"translated"`
	AudioURL   string `json:"audio_url"`
}

// AnalyzeResult is the recognised label, its Thai rendering and the
// requested translations.
type AnalyzeResult struct {
	Original     string        `json:"original"`
	TH           string        `json:"th"`
	AudioURL     string        `json:"audio_url"`
	Translations []Translation `json:"translations"`
}

type GeneratedImage struct {
	ImageURL   string `json:"image_url"`
	Resolution string `json:"resolution,omitempty"`
}

// Feedback is a thumbs up/down on a translation result.
type Feedback struct {
	Feedback      string `json:"feedback"` // "up" or "down"
	TranslationID string `json:"translation_id"`
	OriginalText  string `json:"original_text,omitempty"`
}

type AdminUser struct {
	ID       string   `json:"_id"`
	Email    string   `json:"email"`
	Username string   `json:"username"`
	Role     string   `json:"role,omitempty"`
	Roles    []string `json:"roles,omitempty"`
	IsBanned bool     `json:"is_banned"`
}

type UserList struct {
	Users []AdminUser `json:"users"`
	Count int         `json:"count"`
}

type UserUpdate struct {
	Email    string   `json:"email"`
	IsBanned bool     `json:"is_banned"`
	Roles    []string `json:"roles"`
}

type Webhook struct {
	DiscordWebhookURL string `json:"discord_webhook_url"`
}

type UsageSummary struct {
	UserEmail  string     `json:"user_email"`
	TotalCount int        `json:"total_count"`
	LastUsed   *time.Time `json:"last_used,omitempty"`
}

// StatBucket is one group of an aggregation, keyed by language or image
// class.
type StatBucket struct {
	Key   string `json:"_id"`
	Count int    `json:"count"`
}

type FeedbackStats struct {
	Up    int `json:"up"`
	Down  int `json:"down"`
	Total int `json:"total"`
}
