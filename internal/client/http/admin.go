package http

import (
	"net/http"

	"github.com/aussiebroadwan/snaptranslate/internal/client/notify"
	"github.com/aussiebroadwan/snaptranslate/internal/client/service"
	"github.com/aussiebroadwan/snaptranslate/pkg/httpx"
	"github.com/aussiebroadwan/snaptranslate/pkg/snapsdk"
)

// Admin routes answer 204 with an empty body to sessions without the admin
// role. No backend request is made for them.
type AdminHandler struct {
	AdminService *service.AdminService
	Notices      *notify.Center
}

type UpdateUserRequest struct {
	Email    string `json:"email"`
	IsBanned bool   `json:"is_banned"`
}

// HandleUsers lists every account.
//
//	@Summary	List users
//	@Tags		Admin
//	@Produce	json
//	@Success	200	{object}	snapsdk.UserList
//	@Success	204	"Not an admin"
//	@Failure	502	{object}	httpx.ErrorBody
//	@Router		/v1/admin/users [get].
func (h *AdminHandler) HandleUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.AdminService.Users(r.Context())
	if err != nil {
		writeServiceError(w, r, h.Notices, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, users)
}

// HandleUpdateUser bans or unbans an account.
//
//	@Summary	Ban or unban a user
//	@Tags		Admin
//	@Accept		json
//	@Produce	json
//	@Param		request	body		UpdateUserRequest	true	"Target account"
//	@Success	200		{object}	MessageResponse
//	@Success	204		"Not an admin"
//	@Failure	400		{object}	httpx.ErrorBody
//	@Router		/v1/admin/users/update [post].
func (h *AdminHandler) HandleUpdateUser(w http.ResponseWriter, r *http.Request) {
	if !h.AdminService.Allowed() {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	var req UpdateUserRequest
	if err := httpx.DecodeJSON(r, &req); err != nil || req.Email == "" {
		writeBadRequest(w, h.Notices, "email is required")
		return
	}
	msg, err := h.AdminService.SetBanned(r.Context(), req.Email, req.IsBanned)
	if err != nil {
		writeServiceError(w, r, h.Notices, err)
		return
	}
	h.Notices.Success(msg)
	httpx.WriteJSON(w, http.StatusOK, MessageResponse{Message: msg})
}

// HandleGetWebhook returns the configured Discord webhook.
//
//	@Summary	Get webhook
//	@Tags		Admin
//	@Produce	json
//	@Success	200	{object}	snapsdk.Webhook
//	@Success	204	"Not an admin"
//	@Router		/v1/admin/webhook [get].
func (h *AdminHandler) HandleGetWebhook(w http.ResponseWriter, r *http.Request) {
	hook, err := h.AdminService.Webhook(r.Context())
	if err != nil {
		writeServiceError(w, r, h.Notices, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, hook)
}

// HandlePutWebhook sets or clears the Discord webhook.
//
//	@Summary	Set webhook
//	@Tags		Admin
//	@Accept		json
//	@Produce	json
//	@Param		request	body		snapsdk.Webhook	true	"https URL, or empty to clear"
//	@Success	200		{object}	MessageResponse
//	@Success	204		"Not an admin"
//	@Failure	400		{object}	httpx.ErrorBody
//	@Router		/v1/admin/webhook [put].
func (h *AdminHandler) HandlePutWebhook(w http.ResponseWriter, r *http.Request) {
	if !h.AdminService.Allowed() {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	var req snapsdk.Webhook
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeBadRequest(w, h.Notices, "Invalid request body")
		return
	}
	msg, err := h.AdminService.SetWebhook(r.Context(), req.DiscordWebhookURL)
	if err != nil {
		writeServiceError(w, r, h.Notices, err)
		return
	}
	h.Notices.Success(msg)
	httpx.WriteJSON(w, http.StatusOK, MessageResponse{Message: msg})
}

// HandleStats returns the dashboard aggregations.
//
//	@Summary	Dashboard statistics
//	@Tags		Admin
//	@Produce	json
//	@Success	200	{object}	service.Stats
//	@Success	204	"Not an admin"
//	@Failure	502	{object}	httpx.ErrorBody
//	@Router		/v1/admin/stats [get].
func (h *AdminHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.AdminService.Stats(r.Context())
	if err != nil {
		writeServiceError(w, r, h.Notices, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, stats)
}
