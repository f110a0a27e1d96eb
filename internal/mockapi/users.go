package mockapi

import (
	"fmt"
	"strings"
	"time"

	"github.com/aussiebroadwan/snaptranslate/pkg/cryptox"
	"github.com/aussiebroadwan/snaptranslate/pkg/httpx"
	"github.com/aussiebroadwan/snaptranslate/pkg/idx"
	"github.com/aussiebroadwan/snaptranslate/pkg/jwtx"
	"github.com/aussiebroadwan/snaptranslate/pkg/snapsdk"
)

const (
	roleUser  = "user"
	roleAdmin = "admin"
)

type user struct {
	id           idx.ID
	email        string
	username     string
	passwordHash string
	roles        []string
	banned       bool
	createdAt    time.Time
}

// role is the primary role: admin wins over anything else.
func (u *user) role() string {
	for _, r := range u.roles {
		if r == roleAdmin {
			return roleAdmin
		}
	}
	return roleUser
}

func (u *user) profile() snapsdk.Profile {
	return snapsdk.Profile{
		ID:         u.id.String(),
		Email:      u.email,
		Username:   u.username,
		Role:       u.role(),
		Roles:      append([]string(nil), u.roles...),
		IsBanned:   u.banned,
		IsVerified: true,
	}
}

func (u *user) adminView() snapsdk.AdminUser {
	return snapsdk.AdminUser{
		ID:       u.id.String(),
		Email:    u.email,
		Username: u.username,
		Role:     u.role(),
		Roles:    append([]string(nil), u.roles...),
		IsBanned: u.banned,
	}
}

// SeedUser adds a verified user directly, bypassing the OTP flow.
func (s *Server) SeedUser(email, username, password string, roles ...string) error {
	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return err
	}
	if len(roles) == 0 {
		roles = []string{roleUser}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[email]; ok {
		return fmt.Errorf("mockapi: user %q already exists", email)
	}
	s.users[email] = &user{
		id:           idx.NewAt(s.cfg.Now()),
		email:        email,
		username:     username,
		passwordHash: hash,
		roles:        roles,
		createdAt:    s.cfg.Now(),
	}
	return nil
}

// findLocked resolves a login identifier, which may be an email or a
// username. Callers hold s.mu.
func (s *Server) findLocked(ident string) (*user, error) {
	if u, ok := s.users[ident]; ok {
		return u, nil
	}
	for _, u := range s.users {
		if strings.EqualFold(u.username, ident) {
			return u, nil
		}
	}
	return nil, errNotFound
}

// issueLocked mints an access/refresh pair for u. Callers hold s.mu.
func (s *Server) issueLocked(u *user) (snapsdk.TokenResponse, error) {
	now := s.cfg.Now()

	access, err := s.access.Sign(jwtx.NewClaims(jwtx.TypeAccess, u.email, u.role(), s.cfg.Issuer, s.cfg.AccessTTL, now))
	if err != nil {
		return snapsdk.TokenResponse{}, err
	}

	rc := jwtx.NewClaims(jwtx.TypeRefresh, u.email, "", s.cfg.Issuer, s.cfg.RefreshTTL, now)
	refresh, err := s.refresh.Sign(rc)
	if err != nil {
		return snapsdk.TokenResponse{}, err
	}
	s.refreshes[rc.ID] = u.email

	return snapsdk.TokenResponse{AccessToken: access, RefreshToken: refresh, TokenType: "bearer"}, nil
}

// verifyAccess is the BearerAuth hook. The role comes from the live user
// record so role changes apply without a new token.
func (s *Server) verifyAccess(token string) (httpx.Principal, error) {
	c, err := s.access.VerifyType(token, jwtx.TypeAccess)
	if err != nil {
		return httpx.Principal{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[c.Subject]
	if !ok || u.banned {
		return httpx.Principal{}, errNotFound
	}
	return httpx.Principal{Subject: u.email, Role: u.role()}, nil
}
