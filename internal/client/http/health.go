package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/snaptranslate/internal/client/router"
	"github.com/aussiebroadwan/snaptranslate/internal/client/store"
	"github.com/aussiebroadwan/snaptranslate/pkg/httpx"
)

type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports the local dependencies. Session is informational
// ("signed_in" or "signed_out") and never fails readiness.
type HealthChecks struct {
	Database string `json:"database"`
	Session  string `json:"session,omitempty"`
}

func uptime(since time.Time) string {
	return time.Since(since).Round(time.Second).String()
}

// LivezHandler godoc
//
//	@Summary		Liveness probe
//	@Description	Returns uptime and build version while the process runs.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	HealthResponse
//	@Router			/livez [get].
func LivezHandler(startTime time.Time, version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, HealthResponse{Status: "ok", Uptime: uptime(startTime), Version: version})
	}
}

// ReadyzHandler godoc
//
//	@Summary		Readiness probe
//	@Description	Pings the token database and reports whether a session is held.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	HealthResponse
//	@Failure		503	{object}	HealthResponse	"token database unavailable"
//	@Router			/readyz [get].
func ReadyzHandler(startTime time.Time, version string, st store.Store, pages *router.Router) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := HealthResponse{
			Status:  "ok",
			Uptime:  uptime(startTime),
			Version: version,
			Checks:  &HealthChecks{Database: "ok"},
		}
		code := http.StatusOK

		if err := st.Ping(r.Context()); err != nil {
			resp.Status, resp.Checks.Database = "degraded", err.Error()
			code = http.StatusServiceUnavailable
		}

		if pages != nil {
			resp.Checks.Session = "signed_out"
			if pages.View().SignedIn {
				resp.Checks.Session = "signed_in"
			}
		}

		httpx.WriteJSON(w, code, resp)
	}
}
