package mockapi_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aussiebroadwan/snaptranslate/internal/mockapi"
	"github.com/stretchr/testify/require"
)

func TestFaultIsOneShot(t *testing.T) {
	t.Parallel()

	srv, err := mockapi.New(mockapi.Config{}, nil)
	require.NoError(t, err)
	h := srv.Handler()

	srv.Fail("GET /languages", http.StatusBadGateway, "upstream down")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/languages", nil))
	require.Equal(t, http.StatusBadGateway, rec.Code)
	require.Contains(t, rec.Body.String(), "upstream down")

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/languages", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 2, srv.Calls("GET /languages"))
}

func TestProtectedRoutesNeedBearer(t *testing.T) {
	t.Parallel()

	srv, err := mockapi.New(mockapi.Config{}, nil)
	require.NoError(t, err)
	h := srv.Handler()

	for _, route := range []string{"GET /auth/profile", "GET /admin/users", "GET /stats/top-languages"} {
		method, path, _ := strings.Cut(route, " ")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(method, path, nil))
		require.Equal(t, http.StatusUnauthorized, rec.Code, route)
	}
}

func TestSeedUserRejectsDuplicates(t *testing.T) {
	t.Parallel()

	srv, err := mockapi.New(mockapi.Config{}, nil)
	require.NoError(t, err)

	require.NoError(t, srv.SeedUser("a@example.com", "alice", "Passw0rd!"))
	require.Error(t, srv.SeedUser("a@example.com", "alice2", "Passw0rd!"))
}

func TestOutboxIsOptIn(t *testing.T) {
	t.Parallel()

	for _, expose := range []bool{false, true} {
		srv, err := mockapi.New(mockapi.Config{ExposeOutbox: expose}, nil)
		require.NoError(t, err)
		h := srv.Handler()

		body := strings.NewReader(`{"email":"new@example.com","username":"newbie","password":"Passw0rd!"}`)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/auth/register", body))
		require.Equal(t, http.StatusOK, rec.Code)

		rec = httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/_dev/outbox/new@example.com", nil))
		if !expose {
			require.Equal(t, http.StatusNotFound, rec.Code)
			continue
		}
		code, ok := srv.LastOTP("new@example.com")
		require.True(t, ok)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), code)
	}
}
