package mockapi

import (
	"net/http"
	"strings"

	"github.com/aussiebroadwan/snaptranslate/pkg/cryptox"
	"github.com/aussiebroadwan/snaptranslate/pkg/httpx"
	"github.com/aussiebroadwan/snaptranslate/pkg/idx"
	"github.com/aussiebroadwan/snaptranslate/pkg/jwtx"
	"github.com/aussiebroadwan/snaptranslate/pkg/snapsdk"
	"github.com/aussiebroadwan/snaptranslate/pkg/slogx"
)

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "invalid form body")
		return
	}
	ident := strings.TrimSpace(r.PostForm.Get("username"))
	password := r.PostForm.Get("password")
	if ident == "" || password == "" {
		writeDetail(w, http.StatusUnprocessableEntity, "username and password are required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u, err := s.findLocked(ident)
	if err != nil || cryptox.VerifyPassword(password, u.passwordHash) != nil {
		writeDetail(w, http.StatusUnauthorized, "Incorrect username or password")
		return
	}
	if u.banned {
		writeDetail(w, http.StatusForbidden, "This account has been banned")
		return
	}

	pair, err := s.issueLocked(u)
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, "failed to issue tokens")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, pair)
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req snapsdk.RegisterRequest
	if err := httpx.DecodeJSON(r, &req); err != nil || req.Email == "" || req.Username == "" || req.Password == "" {
		writeDetail(w, http.StatusUnprocessableEntity, "email, username and password are required")
		return
	}

	hash, err := cryptox.HashPassword(req.Password)
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, "failed to hash password")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[req.Email]; ok {
		writeDetail(w, http.StatusBadRequest, "Email is already registered")
		return
	}
	if _, err := s.findLocked(req.Username); err == nil {
		writeDetail(w, http.StatusBadRequest, "Username is already taken")
		return
	}

	rec, err := s.sendOTPLocked(req.Email)
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, "failed to send otp")
		return
	}
	s.pending[req.Email] = &pendingSignup{otpRecord: rec, username: req.Username, passwordHash: hash}

	httpx.WriteJSON(w, http.StatusOK, snapsdk.Message{Msg: "Registered, please verify the OTP sent to your email"})
}

func (s *Server) handleCheckAvailability(w http.ResponseWriter, r *http.Request) {
	field := r.URL.Query().Get("field")
	value := r.URL.Query().Get("value")
	if (field != snapsdk.FieldEmail && field != snapsdk.FieldUsername) || value == "" {
		writeDetail(w, http.StatusUnprocessableEntity, "field must be email or username")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	available := true
	switch field {
	case snapsdk.FieldEmail:
		_, taken := s.users[value]
		_, pending := s.pending[value]
		available = !taken && !pending
	case snapsdk.FieldUsername:
		_, err := s.findLocked(value)
		available = err != nil
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]bool{"available": available})
}

func (s *Server) handleVerifyEmail(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
		OTP   string `json:"otp"`
	}
	if err := httpx.DecodeJSON(r, &req); err != nil || req.Email == "" {
		writeDetail(w, http.StatusUnprocessableEntity, "email and otp are required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.pending[req.Email]
	if !ok {
		writeDetail(w, http.StatusNotFound, "No pending verification for this email")
		return
	}
	if !p.valid(req.OTP, s.cfg.Now(), s.cfg.OTPTTL) {
		writeDetail(w, http.StatusBadRequest, "Invalid or expired OTP")
		return
	}

	u := &user{
		id:           idx.NewAt(s.cfg.Now()),
		email:        req.Email,
		username:     p.username,
		passwordHash: p.passwordHash,
		roles:        []string{roleUser},
		createdAt:    s.cfg.Now(),
	}
	s.users[u.email] = u
	delete(s.pending, req.Email)
	delete(s.outbox, req.Email)

	pair, err := s.issueLocked(u)
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, "failed to issue tokens")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, pair)
}

func (s *Server) handleRequestVerifyOTP(w http.ResponseWriter, r *http.Request) {
	email, ok := decodeEmail(w, r)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, found := s.pending[email]
	if !found {
		writeDetail(w, http.StatusNotFound, "No pending verification for this email")
		return
	}
	rec, err := s.sendOTPLocked(email)
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, "failed to send otp")
		return
	}
	p.otpRecord = rec

	httpx.WriteJSON(w, http.StatusOK, snapsdk.Message{Msg: "A new OTP has been sent"})
}

func (s *Server) handleRequestResetOTP(w http.ResponseWriter, r *http.Request) {
	email, ok := decodeEmail(w, r)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, found := s.users[email]; !found {
		writeDetail(w, http.StatusNotFound, "User not found")
		return
	}
	rec, err := s.sendOTPLocked(email)
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, "failed to send otp")
		return
	}
	s.resets[email] = &rec

	httpx.WriteJSON(w, http.StatusOK, snapsdk.Message{Msg: "Password reset OTP sent"})
}

func (s *Server) handleResetPassword(w http.ResponseWriter, r *http.Request) {
	var req snapsdk.ResetPasswordRequest
	if err := httpx.DecodeJSON(r, &req); err != nil || req.Email == "" || req.NewPassword == "" {
		writeDetail(w, http.StatusUnprocessableEntity, "email, otp and new_password are required")
		return
	}

	hash, err := cryptox.HashPassword(req.NewPassword)
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, "failed to hash password")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u, found := s.users[req.Email]
	if !found {
		writeDetail(w, http.StatusNotFound, "User not found")
		return
	}
	if !s.resets[req.Email].valid(req.OTP, s.cfg.Now(), s.cfg.OTPTTL) {
		writeDetail(w, http.StatusBadRequest, "Invalid or expired OTP")
		return
	}

	u.passwordHash = hash
	delete(s.resets, req.Email)
	delete(s.outbox, req.Email)

	httpx.WriteJSON(w, http.StatusOK, snapsdk.Message{Msg: "Password has been reset"})
}

// handleRefresh mints a new access token. The refresh token stays valid
// and is not rotated.
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := httpx.DecodeJSON(r, &req); err != nil || req.RefreshToken == "" {
		writeDetail(w, http.StatusUnprocessableEntity, "refresh_token is required")
		return
	}

	c, err := s.refresh.VerifyType(req.RefreshToken, jwtx.TypeRefresh)
	if err != nil {
		slogx.FromContext(r.Context()).Debug("refresh rejected", "err", err)
		writeDetail(w, http.StatusUnauthorized, "Invalid refresh token")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	email, ok := s.refreshes[c.ID]
	if !ok {
		writeDetail(w, http.StatusUnauthorized, "Refresh token has been revoked")
		return
	}
	u, ok := s.users[email]
	if !ok || u.banned {
		writeDetail(w, http.StatusUnauthorized, "Invalid refresh token")
		return
	}

	access, err := s.access.Sign(jwtx.NewClaims(jwtx.TypeAccess, u.email, u.role(), s.cfg.Issuer, s.cfg.AccessTTL, s.cfg.Now()))
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, "failed to issue token")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, snapsdk.TokenResponse{AccessToken: access, TokenType: "bearer"})
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	p, _ := httpx.PrincipalFrom(r.Context())

	s.mu.Lock()
	u, ok := s.users[p.Subject]
	var out snapsdk.Profile
	if ok {
		out = u.profile()
	}
	s.mu.Unlock()

	if !ok {
		writeDetail(w, http.StatusNotFound, "User not found")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

func decodeEmail(w http.ResponseWriter, r *http.Request) (string, bool) {
	var req struct {
		Email string `json:"email"`
	}
	if err := httpx.DecodeJSON(r, &req); err != nil || req.Email == "" {
		writeDetail(w, http.StatusUnprocessableEntity, "email is required")
		return "", false
	}
	return req.Email, true
}
