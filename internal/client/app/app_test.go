package app

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aussiebroadwan/snaptranslate/internal/client/service"
	"github.com/aussiebroadwan/snaptranslate/internal/mockapi"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{
		"SNAP_API_BASE_URL", "SNAP_DATABASE_FILE", "SNAP_MASTER_KEY_PATH", "SNAP_LISTEN_ADDR",
		"SNAP_LOGIN_THROTTLE", "SNAP_LOGIN_MAX_ATTEMPTS", "SNAP_LOGIN_LOCKOUT", "LOG_FORMAT",
	} {
		t.Setenv(key, "")
	}

	cfg := LoadConfig()
	require.Equal(t, "http://localhost:8000", cfg.APIBaseURL)
	require.Equal(t, "snaptranslate.db", cfg.DatabaseFile)
	require.Equal(t, "127.0.0.1:7070", cfg.ListenAddr)
	require.Equal(t, service.DefaultLoginThrottle, cfg.LoginThrottle)
	require.Equal(t, service.DefaultMaxLoginAttempts, cfg.LoginMaxAttempts)
	require.Equal(t, service.DefaultLockout, cfg.LoginLockout)
	require.Equal(t, "json", cfg.LogFormat)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("SNAP_API_BASE_URL", "https://api.example.com")
	t.Setenv("SNAP_LOGIN_THROTTLE", "5")
	t.Setenv("SNAP_LOGIN_LOCKOUT", "30m")
	t.Setenv("SNAP_LOGIN_MAX_ATTEMPTS", "3")
	t.Setenv("SHUTDOWN_GRACE_PERIOD", "nonsense")

	cfg := LoadConfig()
	require.Equal(t, "https://api.example.com", cfg.APIBaseURL)
	require.Equal(t, 5*time.Second, cfg.LoginThrottle)
	require.Equal(t, 30*time.Minute, cfg.LoginLockout)
	require.Equal(t, 3, cfg.LoginMaxAttempts)
	require.Equal(t, 10*time.Second, cfg.ShutdownGracePeriod)
}

func TestApplicationLoadsProfileAfterLogin(t *testing.T) {
	mock, err := mockapi.New(mockapi.Config{}, nil)
	require.NoError(t, err)
	require.NoError(t, mock.SeedUser("root@example.com", "root", "Passw0rd!", "admin"))
	backend := httptest.NewServer(mock.Handler())
	t.Cleanup(backend.Close)

	t.Setenv("SNAP_MASTER_KEY", "app test key")
	application, err := New(Config{
		APIBaseURL:          backend.URL,
		DatabaseFile:        ":memory:",
		ListenAddr:          "127.0.0.1:0",
		LogLevel:            "error",
		ShutdownGracePeriod: time.Second,
	})
	require.NoError(t, err)
	application.Start()
	t.Cleanup(func() { require.NoError(t, application.Shutdown()) })

	h := application.Handler()
	body, err := json.Marshal(map[string]string{"username": "root", "password": "Passw0rd!"})
	require.NoError(t, err)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/auth/login", bytes.NewReader(body)))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// The syncer fetches the profile in the background; the admin entry shows
	// up in the navigation once it lands.
	require.Eventually(t, func() bool {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/view", nil))
		var v struct {
			Nav []string `json:"nav"`
		}
		if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
			return false
		}
		for _, p := range v.Nav {
			if p == "admin-dashboard" {
				return true
			}
		}
		return false
	}, 5*time.Second, 20*time.Millisecond)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	require.Equal(t, http.StatusOK, rec.Code)
}
