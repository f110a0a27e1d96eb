package snapsdk

import (
	"context"
	"net/http"
	"net/url"
)

// Login exchanges credentials for a token pair (OAuth2 password form).
func (c *SDKClient) Login(ctx context.Context, username, password string) (*TokenResponse, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	var out TokenResponse
	if err := c.doForm(ctx, "/auth/login", form, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Register starts registration; the backend emails an OTP to req.Email.
func (c *SDKClient) Register(ctx context.Context, req RegisterRequest) (*Message, error) {
	var out Message
	if err := c.doJSON(ctx, http.MethodPost, "/auth/register", "", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CheckAvailability reports whether value is free for field (FieldEmail or
// FieldUsername).
func (c *SDKClient) CheckAvailability(ctx context.Context, field, value string) (bool, error) {
	q := url.Values{}
	q.Set("field", field)
	q.Set("value", value)

	var out struct {
		Available bool `json:"available"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/auth/check-availability?"+q.Encode(), "", nil, &out); err != nil {
		return false, err
	}
	return out.Available, nil
}

// VerifyEmail completes registration and signs the user in.
func (c *SDKClient) VerifyEmail(ctx context.Context, email, otp string) (*TokenResponse, error) {
	var out TokenResponse
	in := map[string]string{"email": email, "otp": otp}
	if err := c.doJSON(ctx, http.MethodPost, "/auth/verify-email", "", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RequestVerifyEmailOTP resends the registration OTP.
func (c *SDKClient) RequestVerifyEmailOTP(ctx context.Context, email string) (*Message, error) {
	var out Message
	in := map[string]string{"email": email}
	if err := c.doJSON(ctx, http.MethodPost, "/auth/request-verify-email-otp", "", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RequestResetPasswordOTP emails a password reset OTP.
func (c *SDKClient) RequestResetPasswordOTP(ctx context.Context, email string) (*Message, error) {
	var out Message
	in := map[string]string{"email": email}
	if err := c.doJSON(ctx, http.MethodPost, "/auth/request-reset-password-otp", "", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ResetPassword sets a new password using a reset OTP.
func (c *SDKClient) ResetPassword(ctx context.Context, req ResetPasswordRequest) (*Message, error) {
	var out Message
	if err := c.doJSON(ctx, http.MethodPost, "/auth/reset-password", "", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Refresh mints a new access token from a refresh token.
func (c *SDKClient) Refresh(ctx context.Context, refreshToken string) (*TokenResponse, error) {
	var out TokenResponse
	in := map[string]string{"refresh_token": refreshToken}
	if err := c.doJSON(ctx, http.MethodPost, "/auth/refresh", "", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Profile returns the user the access token belongs to.
func (c *SDKClient) Profile(ctx context.Context, accessToken string) (*Profile, error) {
	var out Profile
	if err := c.doJSON(ctx, http.MethodGet, "/auth/profile", accessToken, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
