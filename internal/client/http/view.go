package http

import (
	"math"
	"net/http"
	"time"

	"github.com/aussiebroadwan/snaptranslate/internal/client/domain"
	"github.com/aussiebroadwan/snaptranslate/internal/client/notify"
	"github.com/aussiebroadwan/snaptranslate/internal/client/router"
	"github.com/aussiebroadwan/snaptranslate/internal/client/service"
	"github.com/aussiebroadwan/snaptranslate/pkg/httpx"
	"github.com/aussiebroadwan/snaptranslate/pkg/slogx"
)

// ViewResponse is everything the shell needs to draw a frame.
type ViewResponse struct {
	router.View

	Features          service.FeatureState `json:"features"`
	Notices           []notify.Notice      `json:"notices"`
	Cooldowns         map[string]int       `json:"cooldowns"`
	LoginBlockedUntil *time.Time           `json:"login_blocked_until,omitempty"`
}

// NavigateRequest selects a page.
type NavigateRequest struct {
	Page domain.Page `json:"page" swaggertype:"string" example:"translate"`
}

type ViewHandler struct {
	Pages    *router.Router
	Notices  *notify.Center
	Auth     *service.AuthService
	Features *service.FeatureService
}

func (h *ViewHandler) render(r *http.Request) ViewResponse {
	resp := ViewResponse{
		View:      h.Pages.View(),
		Features:  h.Features.State(),
		Notices:   h.Notices.Active(),
		Cooldowns: make(map[string]int),
	}
	for purpose, wait := range h.Auth.Cooldowns() {
		resp.Cooldowns[purpose] = int(math.Ceil(wait.Seconds()))
	}

	until, err := h.Auth.LockedUntil(r.Context())
	if err != nil {
		slogx.FromContext(r.Context()).Warn("failed to read login attempts", "error", err)
	} else if !until.IsZero() {
		resp.LoginBlockedUntil = &until
	}
	return resp
}

func (h *ViewHandler) write(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, h.render(r))
}

// HandleView returns the current frame.
//
//	@Summary		Current view
//	@Description	Returns the mounted surface, navigation, session summary, feature state,
//	@Description	active notices and resend cooldowns (seconds).
//	@Tags			View
//	@Produce		json
//	@Success		200	{object}	ViewResponse
//	@Router			/v1/view [get].
func (h *ViewHandler) HandleView(w http.ResponseWriter, r *http.Request) {
	h.write(w, r)
}

// HandleNavigate selects the active page. A page the session may not see
// stays selected with an empty surface.
//
//	@Summary	Navigate
//	@Tags		View
//	@Accept		json
//	@Produce	json
//	@Param		request	body		NavigateRequest	true	"Target page"
//	@Success	200		{object}	ViewResponse
//	@Failure	400		{object}	httpx.ErrorBody	"Unknown page"
//	@Router		/v1/navigate [post].
func (h *ViewHandler) HandleNavigate(w http.ResponseWriter, r *http.Request) {
	var req NavigateRequest
	req.Page = -1
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Unknown page")
		return
	}
	if err := h.Pages.SetActivePage(req.Page); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Unknown page")
		return
	}
	h.write(w, r)
}

// HandleEnter leaves the splash screen.
//
//	@Summary	Enter the app
//	@Tags		View
//	@Produce	json
//	@Success	200	{object}	ViewResponse
//	@Router		/v1/intro/enter [post].
func (h *ViewHandler) HandleEnter(w http.ResponseWriter, r *http.Request) {
	h.Pages.EnterApp()
	h.write(w, r)
}

// HandleReturn shows the splash screen again.
//
//	@Summary	Return to landing
//	@Tags		View
//	@Produce	json
//	@Success	200	{object}	ViewResponse
//	@Router		/v1/intro/return [post].
func (h *ViewHandler) HandleReturn(w http.ResponseWriter, r *http.Request) {
	h.Pages.ReturnToLanding()
	h.write(w, r)
}

// HandlePromptConfirm follows the login prompt to the login page.
//
//	@Summary	Confirm login prompt
//	@Tags		View
//	@Produce	json
//	@Success	200	{object}	ViewResponse
//	@Router		/v1/login-prompt/confirm [post].
func (h *ViewHandler) HandlePromptConfirm(w http.ResponseWriter, r *http.Request) {
	h.Pages.ConfirmLoginPrompt()
	h.write(w, r)
}

// HandlePromptCancel dismisses the login prompt.
//
//	@Summary	Cancel login prompt
//	@Tags		View
//	@Produce	json
//	@Success	200	{object}	ViewResponse
//	@Router		/v1/login-prompt/cancel [post].
func (h *ViewHandler) HandlePromptCancel(w http.ResponseWriter, r *http.Request) {
	h.Pages.CancelLoginPrompt()
	h.write(w, r)
}

// HandleDismiss drops a notice before its timeout.
//
//	@Summary	Dismiss notice
//	@Tags		View
//	@Param		id	path	string	true	"Notice ID"
//	@Success	204
//	@Router		/v1/notices/{id} [delete].
func (h *ViewHandler) HandleDismiss(w http.ResponseWriter, r *http.Request) {
	h.Notices.Dismiss(r.PathValue("id"))
	w.WriteHeader(http.StatusNoContent)
}
