package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/aussiebroadwan/snaptranslate/internal/client/notify"
	"github.com/aussiebroadwan/snaptranslate/internal/client/service"
	"github.com/aussiebroadwan/snaptranslate/internal/client/session"
	"github.com/aussiebroadwan/snaptranslate/pkg/httpx"
	"github.com/aussiebroadwan/snaptranslate/pkg/slogx"
)

// writeServiceError maps a service error onto a response and raises the
// matching error notice. Admin denials answer 204 with no notice so the
// dashboard simply renders nothing.
func writeServiceError(w http.ResponseWriter, r *http.Request, notices *notify.Center, err error) {
	var (
		verr *service.ValidationError
		terr *service.ThrottledError
		lerr *service.LockedError
		cerr *service.CooldownError
		berr *service.BackendError
	)

	code, errCode, msg := http.StatusInternalServerError, "server_error", "Something went wrong"
	switch {
	case errors.Is(err, service.ErrNotAdmin):
		w.WriteHeader(http.StatusNoContent)
		return
	case errors.Is(err, service.ErrLoginRequired), errors.Is(err, session.ErrNoAccessToken):
		// The login prompt is already open; no notice on top of it.
		httpx.WriteError(w, http.StatusUnauthorized, "login_required", "Please sign in to continue")
		return
	case errors.As(err, &verr):
		code, errCode, msg = http.StatusBadRequest, "invalid_request", verr.Message
	case errors.As(err, &terr):
		w.Header().Set("Retry-After", strconv.Itoa(terr.Seconds()))
		code, errCode, msg = http.StatusTooManyRequests, "throttled", terr.Error()
	case errors.As(err, &cerr):
		w.Header().Set("Retry-After", strconv.Itoa(cerr.Seconds()))
		code, errCode, msg = http.StatusTooManyRequests, "cooldown", cerr.Error()
	case errors.As(err, &lerr):
		code, errCode, msg = http.StatusLocked, "locked", lerr.Error()
	case errors.Is(err, service.ErrBusy):
		code, errCode, msg = http.StatusConflict, "busy", err.Error()
	case errors.Is(err, session.ErrStale):
		code, errCode, msg = http.StatusConflict, "stale", "The session changed, please try again"
	case errors.As(err, &berr):
		code, errCode, msg = backendStatus(berr), "backend_error", berr.Message
	default:
		slogx.FromContext(r.Context()).Error("request failed", "error", err)
	}

	if notices != nil {
		notices.Error(msg)
	}
	httpx.WriteError(w, code, errCode, msg)
}

// backendStatus passes client errors from the backend through and reports
// everything else as a bad gateway.
func backendStatus(err *service.BackendError) int {
	if code := err.StatusCode(); code >= 400 && code < 500 {
		return code
	}
	return http.StatusBadGateway
}

func writeBadRequest(w http.ResponseWriter, notices *notify.Center, msg string) {
	if notices != nil {
		notices.Error(msg)
	}
	httpx.WriteError(w, http.StatusBadRequest, "invalid_request", msg)
}
