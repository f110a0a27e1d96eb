package router

import (
	"github.com/aussiebroadwan/snaptranslate/internal/client/domain"
)

// Route is one row of the routing table.
type Route struct {
	Page          domain.Page `json:"page"`
	RequiresToken bool        `json:"requires_token"`
	RequiresRole  domain.Role `json:"requires_role,omitempty"`
	// PromptsLogin marks pages that render for anyone but ask for a login
	// when their action is submitted without a token.
	PromptsLogin bool `json:"prompts_login,omitempty"`
}

// RouteFor returns the routing table entry for p.
func RouteFor(p domain.Page) Route {
	switch p {
	case domain.PageTranslate, domain.PageCreateImage:
		return Route{Page: p, PromptsLogin: true}
	case domain.PageAdminDashboard:
		return Route{Page: p, RequiresToken: true, RequiresRole: domain.RoleAdmin}
	case domain.PageLanding, domain.PageLogin, domain.PageRegister, domain.PageVerifyEmail, domain.PageResetPassword:
		return Route{Page: p}
	}
	return Route{Page: p}
}

// View is what the shell renders: which surface is mounted plus the chrome
// around it.
type View struct {
	Page domain.Page `json:"page"`
	// Surface names the mounted component. It is empty when access is denied,
	// which renders nothing rather than an error.
	Surface     string              `json:"surface"`
	Route       Route               `json:"route"`
	ShowIntro   bool                `json:"show_intro"`
	LoginPrompt bool                `json:"login_prompt"`
	VerifyEmail string              `json:"verify_email,omitempty"`
	SignedIn    bool                `json:"signed_in"`
	User        *domain.UserProfile `json:"user,omitempty"`
	Nav         []domain.Page       `json:"nav"`
}

// View renders the current state.
func (r *Router) View() View {
	st := r.State()
	snap := r.auth.Snapshot()

	v := View{
		Page:        st.Active,
		Route:       RouteFor(st.Active),
		ShowIntro:   st.ShowIntro,
		LoginPrompt: st.LoginPrompt,
		VerifyEmail: st.VerifyEmail,
		SignedIn:    snap.HasAccessToken,
		User:        snap.User,
		Nav:         nav(snap.IsAdmin()),
	}

	if st.ShowIntro {
		v.Surface = domain.PageLanding.String()
		return v
	}
	if CanRender(st.Active, snap.HasAccessToken, snap.User) {
		v.Surface = st.Active.String()
	}
	return v
}

// CanRender reports whether page may be mounted for the given session.
func CanRender(page domain.Page, hasToken bool, user *domain.UserProfile) bool {
	route := RouteFor(page)
	if route.RequiresToken && !hasToken {
		return false
	}
	if route.RequiresRole == domain.RoleAdmin && !user.IsAdmin() {
		return false
	}
	return true
}

func nav(admin bool) []domain.Page {
	pages := []domain.Page{domain.PageTranslate, domain.PageCreateImage}
	if admin {
		pages = append(pages, domain.PageAdminDashboard)
	}
	return pages
}
