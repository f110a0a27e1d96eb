//go:build e2e

package snaptranslate_test

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/snaptranslate/internal/client/domain"
	"github.com/aussiebroadwan/snaptranslate/internal/client/service"
	"github.com/stretchr/testify/require"
)

// TestAdminSession signs in as the seeded admin, loads the profile and the
// dashboard, then signs out.
func TestAdminSession(t *testing.T) {
	baseURL := setupMockContainer(t, nil)
	c := newClient(t, baseURL)
	ctx := t.Context()

	require.NoError(t, c.auth.Login(ctx, adminUsername, adminPassword))
	require.NoError(t, c.session.FetchProfile(ctx))

	snap := c.session.Snapshot()
	require.True(t, snap.Authenticated())
	require.True(t, snap.IsAdmin())
	require.Equal(t, adminEmail, snap.User.Email)

	stats, err := c.admin.Stats(ctx)
	require.NoError(t, err)
	require.NotNil(t, stats.Feedback)

	users, err := c.admin.Users(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, users.Users)

	require.NoError(t, c.auth.Logout(ctx))
	require.False(t, c.session.Snapshot().HasRefreshToken)
	require.Equal(t, domain.PageLogin, c.pages.State().Active)
}

// TestRegisterAndVerify walks the sign-up flow with the code from the
// backend's outbox.
func TestRegisterAndVerify(t *testing.T) {
	baseURL := setupMockContainer(t, nil)
	c := newClient(t, baseURL)
	ctx := t.Context()

	_, err := c.auth.Register(ctx, service.RegisterInput{
		Email:           "bob@example.com",
		Username:        "bob",
		Password:        "Passw0rd!",
		ConfirmPassword: "Passw0rd!",
	})
	require.NoError(t, err)
	require.Equal(t, domain.PageVerifyEmail, c.pages.State().Active)

	require.NoError(t, c.auth.VerifyEmail(ctx, lastOTP(t, baseURL, "bob@example.com")))
	require.True(t, c.session.Snapshot().Authenticated())

	res, err := c.features.Translate(ctx, service.TranslateInput{
		Image:    []byte("a photo of a cat"),
		Filename: "cat.jpg",
		Langs:    []string{"Japanese"},
	})
	require.NoError(t, err)
	require.Len(t, res.Translations, 1)
}

// TestExpiredAccessTokenIsRenewed lets the access token lapse and checks the
// next feature call renews it silently.
func TestExpiredAccessTokenIsRenewed(t *testing.T) {
	baseURL := setupMockContainer(t, map[string]string{"SNAPMOCK_ACCESS_TTL": "2s"})
	c := newClient(t, baseURL)
	ctx := t.Context()

	require.NoError(t, c.auth.Login(ctx, adminUsername, adminPassword))
	time.Sleep(3 * time.Second)

	img, err := c.features.CreateImage(ctx, "a lighthouse at dusk")
	require.NoError(t, err)
	require.NotEmpty(t, img.ImageURL)
	require.True(t, c.session.Snapshot().Authenticated())
}
