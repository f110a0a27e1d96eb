package domain

import "fmt"

// Page is one of the client's top-level surfaces.
type Page int

const (
	PageLanding Page = iota
	PageTranslate
	PageCreateImage
	PageAdminDashboard
	PageLogin
	PageRegister
	PageVerifyEmail
	PageResetPassword
)

// MainPage is where signed-in users land.
const MainPage = PageTranslate

var pageNames = [...]string{
	PageLanding:        "landing",
	PageTranslate:      "translate",
	PageCreateImage:    "create-image",
	PageAdminDashboard: "admin-dashboard",
	PageLogin:          "login",
	PageRegister:       "register",
	PageVerifyEmail:    "verify-email",
	PageResetPassword:  "reset-password",
}

// Pages lists every page in declaration order.
func Pages() []Page {
	out := make([]Page, len(pageNames))
	for i := range pageNames {
		out[i] = Page(i)
	}
	return out
}

func (p Page) String() string {
	if p < 0 || int(p) >= len(pageNames) {
		return fmt.Sprintf("page(%d)", int(p))
	}
	return pageNames[p]
}

// Valid reports whether p is a declared page.
func (p Page) Valid() bool {
	return p >= 0 && int(p) < len(pageNames)
}

// ParsePage maps a wire name back to its Page.
func ParsePage(s string) (Page, error) {
	for i, name := range pageNames {
		if name == s {
			return Page(i), nil
		}
	}
	return 0, fmt.Errorf("unknown page %q", s)
}

func (p Page) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("invalid page %d", int(p))
	}
	return []byte(p.String()), nil
}

func (p *Page) UnmarshalText(b []byte) error {
	v, err := ParsePage(string(b))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// IsAuthPage reports whether p is a sign-in surface that a signed-in user
// must never settle on.
func (p Page) IsAuthPage() bool {
	switch p {
	case PageLogin, PageRegister:
		return true
	case PageLanding, PageTranslate, PageCreateImage, PageAdminDashboard, PageVerifyEmail, PageResetPassword:
		return false
	}
	return false
}
