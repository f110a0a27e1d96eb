package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/snaptranslate/internal/client/notify"
	"github.com/aussiebroadwan/snaptranslate/internal/client/router"
	"github.com/aussiebroadwan/snaptranslate/internal/client/service"
	"github.com/aussiebroadwan/snaptranslate/internal/client/store"
	"github.com/aussiebroadwan/snaptranslate/pkg/httpx"
	"github.com/aussiebroadwan/snaptranslate/pkg/slogx"

	_ "github.com/aussiebroadwan/snaptranslate/api/snapclient" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	store        store.Store
	view         *ViewHandler

	Pages          *router.Router
	Notices        *notify.Center
	AuthService    *service.AuthService
	FeatureService *service.FeatureService
	AdminService   *service.AdminService
}

func NewRouter(buildVersion string, st store.Store, logger *slog.Logger) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	r.middlewares = []httpx.Middleware{
		httpx.Recover(),
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerView()
	r.registerAuth()
	r.registerFeatures()
	r.registerAdmin()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			SnapTranslate Client API
//	@version		0.1.0
//	@description	Local API of the SnapTranslate client. It owns the session, the page
//	@description	router and the feature state, and talks to the translation backend on
//	@description	behalf of the UI shell.
//
//	@contact.name	AussieBroadWAN Team
//	@contact.url	https://github.com/aussiebroadwan/snaptranslate
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host			localhost:7070
//	@BasePath		/
//	@schemes		http
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerView() {
	h := &ViewHandler{
		Pages:    r.Pages,
		Notices:  r.Notices,
		Auth:     r.AuthService,
		Features: r.FeatureService,
	}
	r.view = h
	lenient := httpx.RateLimitByIP(httpx.LenientLimit)

	r.Mux.Handle("GET /v1/view", httpx.Chain(http.HandlerFunc(h.HandleView), lenient))
	r.Mux.Handle("POST /v1/navigate", httpx.Chain(http.HandlerFunc(h.HandleNavigate), lenient))
	r.Mux.Handle("POST /v1/intro/enter", httpx.Chain(http.HandlerFunc(h.HandleEnter), lenient))
	r.Mux.Handle("POST /v1/intro/return", httpx.Chain(http.HandlerFunc(h.HandleReturn), lenient))
	r.Mux.Handle("POST /v1/login-prompt/confirm", httpx.Chain(http.HandlerFunc(h.HandlePromptConfirm), lenient))
	r.Mux.Handle("POST /v1/login-prompt/cancel", httpx.Chain(http.HandlerFunc(h.HandlePromptCancel), lenient))
	r.Mux.Handle("DELETE /v1/notices/{id}", httpx.Chain(http.HandlerFunc(h.HandleDismiss), lenient))
}

func (r *Router) registerAuth() {
	h := &AuthHandler{AuthService: r.AuthService, view: r.view}

	// Credential submissions and OTP requests share the strict profile.
	strict := httpx.RateLimitByIP(httpx.StrictLimit)
	moderate := httpx.RateLimitByIP(httpx.ModerateLimit)

	r.Mux.Handle("POST /v1/auth/login", httpx.Chain(http.HandlerFunc(h.HandleLogin), strict))
	r.Mux.Handle("POST /v1/auth/logout", httpx.Chain(http.HandlerFunc(h.HandleLogout), moderate))
	r.Mux.Handle("POST /v1/auth/register", httpx.Chain(http.HandlerFunc(h.HandleRegister), strict))
	r.Mux.Handle("POST /v1/auth/check-availability", httpx.Chain(http.HandlerFunc(h.HandleCheckAvailability), moderate))
	r.Mux.Handle("POST /v1/auth/verify-email", httpx.Chain(http.HandlerFunc(h.HandleVerifyEmail), strict))
	r.Mux.Handle("POST /v1/auth/verify-email/resend", httpx.Chain(http.HandlerFunc(h.HandleResendVerify), strict))
	r.Mux.Handle("POST /v1/auth/reset-password/request", httpx.Chain(http.HandlerFunc(h.HandleRequestReset), strict))
	r.Mux.Handle("POST /v1/auth/reset-password", httpx.Chain(http.HandlerFunc(h.HandleResetPassword), strict))
}

func (r *Router) registerFeatures() {
	h := &FeatureHandler{FeatureService: r.FeatureService, Notices: r.Notices}

	r.Mux.Handle("GET /v1/languages",
		httpx.Chain(http.HandlerFunc(h.HandleLanguages), httpx.RateLimitByIP(httpx.LenientLimit)),
	)

	// Translate and image generation cost backend work.
	moderate := httpx.RateLimitByIP(httpx.ModerateLimit)
	r.Mux.Handle("POST /v1/translate", httpx.Chain(http.HandlerFunc(h.HandleTranslate), moderate))
	r.Mux.Handle("POST /v1/images", httpx.Chain(http.HandlerFunc(h.HandleCreateImage), moderate))
	r.Mux.Handle("POST /v1/feedback", httpx.Chain(http.HandlerFunc(h.HandleFeedback), moderate))
	r.Mux.Handle("POST /v1/features/reset", httpx.Chain(http.HandlerFunc(h.HandleReset), moderate))
}

func (r *Router) registerAdmin() {
	h := &AdminHandler{AdminService: r.AdminService, Notices: r.Notices}
	moderate := httpx.RateLimitByIP(httpx.ModerateLimit)

	r.Mux.Handle("GET /v1/admin/users", httpx.Chain(http.HandlerFunc(h.HandleUsers), moderate))
	r.Mux.Handle("POST /v1/admin/users/update", httpx.Chain(http.HandlerFunc(h.HandleUpdateUser), moderate))
	r.Mux.Handle("GET /v1/admin/webhook", httpx.Chain(http.HandlerFunc(h.HandleGetWebhook), moderate))
	r.Mux.Handle("PUT /v1/admin/webhook", httpx.Chain(http.HandlerFunc(h.HandlePutWebhook), moderate))
	r.Mux.Handle("GET /v1/admin/stats", httpx.Chain(http.HandlerFunc(h.HandleStats), moderate))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store, r.Pages))
}
