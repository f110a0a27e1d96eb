package domain_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/aussiebroadwan/snaptranslate/internal/client/domain"
	"github.com/stretchr/testify/require"
)

func TestPageNames(t *testing.T) {
	for _, p := range domain.Pages() {
		require.True(t, p.Valid())
		parsed, err := domain.ParsePage(p.String())
		require.NoError(t, err)
		require.Equal(t, p, parsed)
	}

	_, err := domain.ParsePage("settings")
	require.Error(t, err)
	require.False(t, domain.Page(99).Valid())
}

func TestPageJSON(t *testing.T) {
	b, err := json.Marshal(struct {
		Page domain.Page `json:"page"`
	}{domain.PageCreateImage})
	require.NoError(t, err)
	require.JSONEq(t, `{"page":"create-image"}`, string(b))

	var in struct {
		Page domain.Page `json:"page"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"page":"admin-dashboard"}`), &in))
	require.Equal(t, domain.PageAdminDashboard, in.Page)
	require.Error(t, json.Unmarshal([]byte(`{"page":"nope"}`), &in))
}

func TestIsAuthPage(t *testing.T) {
	var auth []domain.Page
	for _, p := range domain.Pages() {
		if p.IsAuthPage() {
			auth = append(auth, p)
		}
	}
	require.Equal(t, []domain.Page{domain.PageLogin, domain.PageRegister}, auth)
	require.False(t, domain.Page(99).IsAuthPage())
}

func TestIsAdmin(t *testing.T) {
	var nilUser *domain.UserProfile
	require.False(t, nilUser.IsAdmin())
	require.False(t, (&domain.UserProfile{Role: domain.RoleUser}).IsAdmin())
	require.True(t, (&domain.UserProfile{Role: domain.RoleAdmin}).IsAdmin())
	require.True(t, (&domain.UserProfile{Roles: []string{"user", "admin"}}).IsAdmin())
}

func TestLoginAttemptsBlocked(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	require.False(t, domain.LoginAttempts{}.Blocked(now))
	require.True(t, domain.LoginAttempts{BlockedUntil: now.Add(time.Minute)}.Blocked(now))
	require.False(t, domain.LoginAttempts{BlockedUntil: now}.Blocked(now))
}
