package domain

import "slices"

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// UserProfile is the signed-in user as reported by the backend.
type UserProfile struct {
	ID       string   `json:"id"`
	Email    string   `json:"email"`
	Username string   `json:"username"`
	Role     Role     `json:"role"`
	Roles    []string `json:"roles,omitempty"`
	IsBanned bool     `json:"is_banned"`
}

// IsAdmin reports whether the profile grants access to the admin surface.
func (u *UserProfile) IsAdmin() bool {
	if u == nil {
		return false
	}
	return u.Role == RoleAdmin || slices.Contains(u.Roles, string(RoleAdmin))
}
