package snapsdk_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/snaptranslate/internal/mockapi"
	"github.com/aussiebroadwan/snaptranslate/pkg/snapsdk"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	mock   *mockapi.Server
	client *snapsdk.SDKClient
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	mock, err := mockapi.New(mockapi.Config{}, nil)
	require.NoError(t, err)
	require.NoError(t, mock.SeedUser("alice@example.com", "alice", "Passw0rd!"))
	require.NoError(t, mock.SeedUser("root@example.com", "root", "Passw0rd!", "admin"))

	srv := httptest.NewServer(mock.Handler())
	t.Cleanup(srv.Close)

	return &fixture{mock: mock, client: snapsdk.NewSDKClient(srv.URL + "/")}
}

func TestLoginAndProfile(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	t.Run("by username", func(t *testing.T) {
		pair, err := f.client.Login(ctx, "alice", "Passw0rd!")
		require.NoError(t, err)
		require.NotEmpty(t, pair.AccessToken)
		require.NotEmpty(t, pair.RefreshToken)

		p, err := f.client.Profile(ctx, pair.AccessToken)
		require.NoError(t, err)
		require.Equal(t, "alice@example.com", p.Email)
		require.Equal(t, "user", p.Role)
	})

	t.Run("by email", func(t *testing.T) {
		_, err := f.client.Login(ctx, "root@example.com", "Passw0rd!")
		require.NoError(t, err)
	})

	t.Run("bad password", func(t *testing.T) {
		_, err := f.client.Login(ctx, "alice", "nope")
		require.True(t, snapsdk.IsUnauthorized(err))
		require.Equal(t, "Incorrect username or password", snapsdk.Detail(err, ""))
	})

	t.Run("bad bearer", func(t *testing.T) {
		_, err := f.client.Profile(ctx, "garbage")
		require.True(t, snapsdk.IsUnauthorized(err))
	})
}

func TestRefresh(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	pair, err := f.client.Login(ctx, "alice", "Passw0rd!")
	require.NoError(t, err)

	fresh, err := f.client.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	require.NotEmpty(t, fresh.AccessToken)
	require.Empty(t, fresh.RefreshToken)

	_, err = f.client.Refresh(ctx, pair.AccessToken)
	require.True(t, snapsdk.IsUnauthorized(err), "access token is not a refresh token")

	f.mock.RevokeRefreshTokens()
	_, err = f.client.Refresh(ctx, pair.RefreshToken)
	require.True(t, snapsdk.IsUnauthorized(err))
}

func TestRegistrationFlow(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	ok, err := f.client.CheckAvailability(ctx, snapsdk.FieldUsername, "alice")
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = f.client.CheckAvailability(ctx, snapsdk.FieldEmail, "bob@example.com")
	require.NoError(t, err)
	require.True(t, ok)

	msg, err := f.client.Register(ctx, snapsdk.RegisterRequest{Email: "bob@example.com", Username: "bobby", Password: "Passw0rd!"})
	require.NoError(t, err)
	require.NotEmpty(t, msg.Text())

	_, err = f.client.VerifyEmail(ctx, "bob@example.com", "000000x")
	require.Equal(t, http.StatusBadRequest, snapsdk.StatusCode(err))

	_, err = f.client.RequestVerifyEmailOTP(ctx, "bob@example.com")
	require.NoError(t, err)

	code, found := f.mock.LastOTP("bob@example.com")
	require.True(t, found)
	require.Len(t, code, 6)

	pair, err := f.client.VerifyEmail(ctx, "bob@example.com", code)
	require.NoError(t, err)

	p, err := f.client.Profile(ctx, pair.AccessToken)
	require.NoError(t, err)
	require.Equal(t, "bobby", p.Username)
}

func TestResetPassword(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.client.RequestResetPasswordOTP(ctx, "nobody@example.com")
	require.Equal(t, http.StatusNotFound, snapsdk.StatusCode(err))

	_, err = f.client.RequestResetPasswordOTP(ctx, "alice@example.com")
	require.NoError(t, err)
	code, _ := f.mock.LastOTP("alice@example.com")

	_, err = f.client.ResetPassword(ctx, snapsdk.ResetPasswordRequest{Email: "alice@example.com", OTP: code, NewPassword: "N3w!passw"})
	require.NoError(t, err)

	_, err = f.client.Login(ctx, "alice", "Passw0rd!")
	require.True(t, snapsdk.IsUnauthorized(err))
	_, err = f.client.Login(ctx, "alice", "N3w!passw")
	require.NoError(t, err)
}

func TestFeatures(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	pair, err := f.client.Login(ctx, "alice", "Passw0rd!")
	require.NoError(t, err)

	langs, err := f.client.Languages(ctx)
	require.NoError(t, err)
	require.Equal(t, "ja", langs["Japanese"])

	res, err := f.client.Analyze(ctx, pair.AccessToken, snapsdk.AnalyzeRequest{
		Image:    strings.NewReader("fake image bytes"),
		Filename: "photo.jpg",
		Mode:     "object",
		Langs:    []string{"Japanese", "Klingon"},
	})
	require.NoError(t, err)
	require.NotEmpty(t, res.Original)
	require.Len(t, res.Translations, 1, "unknown languages are skipped")
	require.Equal(t, "Japanese", res.Translations[0].Language)

	img, err := f.client.GenerateImage(ctx, pair.AccessToken, "a cat wearing a hat")
	require.NoError(t, err)
	require.NotEmpty(t, img.ImageURL)

	_, err = f.client.GenerateImage(ctx, pair.AccessToken, "   ")
	require.Equal(t, http.StatusBadRequest, snapsdk.StatusCode(err))

	_, err = f.client.SubmitFeedback(ctx, pair.AccessToken, snapsdk.Feedback{Feedback: "up", TranslationID: "t1"})
	require.NoError(t, err)
}

func TestAdmin(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	user, err := f.client.Login(ctx, "alice", "Passw0rd!")
	require.NoError(t, err)
	root, err := f.client.Login(ctx, "root", "Passw0rd!")
	require.NoError(t, err)

	_, err = f.client.ListUsers(ctx, user.AccessToken)
	require.Equal(t, http.StatusForbidden, snapsdk.StatusCode(err))

	list, err := f.client.ListUsers(ctx, root.AccessToken)
	require.NoError(t, err)
	require.Equal(t, 2, list.Count)

	_, err = f.client.UpdateUser(ctx, root.AccessToken, snapsdk.UserUpdate{Email: "alice@example.com", IsBanned: true, Roles: []string{"user"}})
	require.NoError(t, err)
	_, err = f.client.Profile(ctx, user.AccessToken)
	require.True(t, snapsdk.IsUnauthorized(err), "banned users lose access")

	_, err = f.client.PutWebhook(ctx, root.AccessToken, snapsdk.Webhook{DiscordWebhookURL: "https://discord.com/api/webhooks/1/abc"})
	require.NoError(t, err)
	wh, err := f.client.GetWebhook(ctx, root.AccessToken)
	require.NoError(t, err)
	require.Equal(t, "https://discord.com/api/webhooks/1/abc", wh.DiscordWebhookURL)

	_, err = f.client.Analyze(ctx, root.AccessToken, snapsdk.AnalyzeRequest{Image: strings.NewReader("x"), Mode: "scene", Langs: []string{"French"}})
	require.NoError(t, err)

	summary, err := f.client.UsageSummary(ctx, root.AccessToken)
	require.NoError(t, err)
	require.Len(t, summary, 1)
	require.Equal(t, 1, summary[0].TotalCount)

	top, err := f.client.TopLanguages(ctx, root.AccessToken)
	require.NoError(t, err)
	require.Equal(t, []snapsdk.StatBucket{{Key: "French", Count: 1}}, top)

	cats, err := f.client.ImageCategories(ctx, root.AccessToken)
	require.NoError(t, err)
	require.Len(t, cats, 1)

	fs, err := f.client.FeedbackStats(ctx, root.AccessToken)
	require.NoError(t, err)
	require.Equal(t, 0, fs.Total)
}

func TestTransportError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := snapsdk.NewSDKClient(url)
	c.HTTPClient.Timeout = time.Second

	_, err := c.Languages(context.Background())
	require.Error(t, err)
	require.True(t, snapsdk.IsTransport(err))
	require.Equal(t, "fallback", snapsdk.Detail(err, "fallback"))
}
