package http

import (
	"net/http"

	"github.com/aussiebroadwan/snaptranslate/internal/client/service"
	"github.com/aussiebroadwan/snaptranslate/pkg/httpx"
)

type LoginRequest struct {
	// Username or email address.
	Username string `json:"username" example:"alice"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Email           string `json:"email" example:"alice@example.com"`
	Username        string `json:"username" example:"alice"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

type AvailabilityRequest struct {
	Field string `json:"field" enums:"email,username"`
	Value string `json:"value"`
}

type AvailabilityResponse struct {
	Available bool `json:"available"`
}

type VerifyEmailRequest struct {
	OTP string `json:"otp" example:"123456"`
}

type ResetRequest struct {
	Email string `json:"email"`
}

type ResetPasswordRequest struct {
	Email           string `json:"email"`
	OTP             string `json:"otp"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

type AuthHandler struct {
	AuthService *service.AuthService

	view *ViewHandler
}

// HandleLogin signs in.
//
//	@Summary		Sign in
//	@Description	Signs in with a username or email. Submits are throttled to one every three
//	@Description	seconds and five consecutive failures lock sign-in for an hour.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		LoginRequest	true	"Credentials"
//	@Success		200		{object}	ViewResponse
//	@Failure		400		{object}	httpx.ErrorBody	"Missing fields"
//	@Failure		401		{object}	httpx.ErrorBody	"Incorrect username or password"
//	@Failure		409		{object}	httpx.ErrorBody	"A sign-in is already in progress"
//	@Failure		423		{object}	httpx.ErrorBody	"Locked out"
//	@Failure		429		{object}	httpx.ErrorBody	"Throttled"
//	@Router			/v1/auth/login [post].
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeBadRequest(w, h.view.Notices, "Invalid request body")
		return
	}
	if err := h.AuthService.Login(r.Context(), req.Username, req.Password); err != nil {
		writeServiceError(w, r, h.view.Notices, err)
		return
	}
	h.view.Notices.Success("Signed in")
	h.view.write(w, r)
}

// HandleLogout ends the session.
//
//	@Summary	Sign out
//	@Tags		Auth
//	@Produce	json
//	@Success	200	{object}	ViewResponse
//	@Failure	500	{object}	httpx.ErrorBody	"Tokens could not be removed from storage"
//	@Router		/v1/auth/logout [post].
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.AuthService.Logout(r.Context()); err != nil {
		writeServiceError(w, r, h.view.Notices, err)
		return
	}
	h.view.write(w, r)
}

// HandleRegister creates an account and moves to email verification.
//
//	@Summary	Register
//	@Tags		Auth
//	@Accept		json
//	@Produce	json
//	@Param		request	body		RegisterRequest	true	"New account"
//	@Success	200		{object}	ViewResponse
//	@Failure	400		{object}	httpx.ErrorBody	"Validation failed or already taken"
//	@Router		/v1/auth/register [post].
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeBadRequest(w, h.view.Notices, "Invalid request body")
		return
	}
	msg, err := h.AuthService.Register(r.Context(), service.RegisterInput{
		Email:           req.Email,
		Username:        req.Username,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		writeServiceError(w, r, h.view.Notices, err)
		return
	}
	h.view.Notices.Success(msg)
	h.view.write(w, r)
}

// HandleCheckAvailability reports whether an email or username is free.
//
//	@Summary	Check availability
//	@Tags		Auth
//	@Accept		json
//	@Produce	json
//	@Param		request	body		AvailabilityRequest	true	"Field and value"
//	@Success	200		{object}	AvailabilityResponse
//	@Failure	400		{object}	httpx.ErrorBody
//	@Router		/v1/auth/check-availability [post].
func (h *AuthHandler) HandleCheckAvailability(w http.ResponseWriter, r *http.Request) {
	var req AvailabilityRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeBadRequest(w, nil, "Invalid request body")
		return
	}
	ok, err := h.AuthService.CheckAvailability(r.Context(), req.Field, req.Value)
	if err != nil {
		// Availability is checked as the user types; no notice.
		writeServiceError(w, r, nil, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, AvailabilityResponse{Available: ok})
}

// HandleVerifyEmail confirms the pending address with its emailed code and
// signs in.
//
//	@Summary	Verify email
//	@Tags		Auth
//	@Accept		json
//	@Produce	json
//	@Param		request	body		VerifyEmailRequest	true	"Emailed code"
//	@Success	200		{object}	ViewResponse
//	@Failure	400		{object}	httpx.ErrorBody	"Invalid or expired code"
//	@Router		/v1/auth/verify-email [post].
func (h *AuthHandler) HandleVerifyEmail(w http.ResponseWriter, r *http.Request) {
	var req VerifyEmailRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeBadRequest(w, h.view.Notices, "Invalid request body")
		return
	}
	if err := h.AuthService.VerifyEmail(r.Context(), req.OTP); err != nil {
		writeServiceError(w, r, h.view.Notices, err)
		return
	}
	h.view.Notices.Success("Email verified")
	h.view.write(w, r)
}

// HandleResendVerify emails a new verification code.
//
//	@Summary	Resend verification code
//	@Tags		Auth
//	@Produce	json
//	@Success	200	{object}	ViewResponse
//	@Failure	429	{object}	httpx.ErrorBody	"Cooldown still running"
//	@Router		/v1/auth/verify-email/resend [post].
func (h *AuthHandler) HandleResendVerify(w http.ResponseWriter, r *http.Request) {
	msg, err := h.AuthService.ResendVerifyOTP(r.Context())
	if err != nil {
		writeServiceError(w, r, h.view.Notices, err)
		return
	}
	h.view.Notices.Info(msg)
	h.view.write(w, r)
}

// HandleRequestReset emails a password reset code.
//
//	@Summary	Request password reset
//	@Tags		Auth
//	@Accept		json
//	@Produce	json
//	@Param		request	body		ResetRequest	true	"Account email"
//	@Success	200		{object}	ViewResponse
//	@Failure	429		{object}	httpx.ErrorBody	"Cooldown still running"
//	@Router		/v1/auth/reset-password/request [post].
func (h *AuthHandler) HandleRequestReset(w http.ResponseWriter, r *http.Request) {
	var req ResetRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeBadRequest(w, h.view.Notices, "Invalid request body")
		return
	}
	msg, err := h.AuthService.RequestPasswordReset(r.Context(), req.Email)
	if err != nil {
		writeServiceError(w, r, h.view.Notices, err)
		return
	}
	h.view.Notices.Info(msg)
	h.view.write(w, r)
}

// HandleResetPassword sets a new password and moves to the login page.
//
//	@Summary	Reset password
//	@Tags		Auth
//	@Accept		json
//	@Produce	json
//	@Param		request	body		ResetPasswordRequest	true	"Code and new password"
//	@Success	200		{object}	ViewResponse
//	@Failure	400		{object}	httpx.ErrorBody
//	@Router		/v1/auth/reset-password [post].
func (h *AuthHandler) HandleResetPassword(w http.ResponseWriter, r *http.Request) {
	var req ResetPasswordRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeBadRequest(w, h.view.Notices, "Invalid request body")
		return
	}
	msg, err := h.AuthService.ResetPassword(r.Context(), service.ResetPasswordInput{
		Email:           req.Email,
		OTP:             req.OTP,
		NewPassword:     req.NewPassword,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		writeServiceError(w, r, h.view.Notices, err)
		return
	}
	h.view.Notices.Success(msg)
	h.view.write(w, r)
}
