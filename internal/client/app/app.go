package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/aussiebroadwan/snaptranslate/internal/client/http"
	"github.com/aussiebroadwan/snaptranslate/internal/client/notify"
	"github.com/aussiebroadwan/snaptranslate/internal/client/router"
	"github.com/aussiebroadwan/snaptranslate/internal/client/service"
	"github.com/aussiebroadwan/snaptranslate/internal/client/session"
	"github.com/aussiebroadwan/snaptranslate/internal/client/store"
	"github.com/aussiebroadwan/snaptranslate/internal/client/store/drivers/sqlite"
	"github.com/aussiebroadwan/snaptranslate/pkg/cryptox"
	"github.com/aussiebroadwan/snaptranslate/pkg/slogx"
	"github.com/aussiebroadwan/snaptranslate/pkg/snapsdk"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"
)

// Application wires the session, page router and feature services behind the
// local API.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db      store.Store
	sdk     *snapsdk.SDKClient
	notices *notify.Center

	session *session.Manager
	syncer  *session.Syncer
	pages   *router.Router

	authService    *service.AuthService
	featureService *service.FeatureService
	adminService   *service.AdminService

	server      *http.Server
	router      *httpapi.Router
	stopWatcher context.CancelFunc
	watcherDone chan struct{}
}

func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "snapclient",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}
	if err := app.initSession(); err != nil {
		_ = app.db.Close()
		return nil, err
	}
	app.initServices()
	app.initHTTP()

	return app, nil
}

// Handler is the local API with all middleware applied.
func (app *Application) Handler() http.Handler {
	return app.router
}

// Start launches the background workers. Run calls it; tests that drive
// Handler directly call it themselves.
func (app *Application) Start() {
	app.syncer.Start()

	ctx, cancel := context.WithCancel(context.Background())
	app.stopWatcher = cancel
	app.watcherDone = make(chan struct{})
	go func() {
		defer close(app.watcherDone)
		app.pages.Watch(ctx, app.session)
	}()
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.Start()

	app.logger.Info("snapclient starting",
		"addr", app.cfg.ListenAddr,
		"api", app.cfg.APIBaseURL,
		"version", BuildVersion,
	)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			_ = app.Shutdown()
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)
		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown stops the server and workers and closes the database. Tokens stay
// on disk so the next start restores the session.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down snapclient...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if app.stopWatcher != nil {
		app.stopWatcher()
		<-app.watcherDone
		app.syncer.Stop()
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("snapclient stopped")
	return nil
}

func (app *Application) initDatabase() error {
	db, err := sqlite.NewStore(sqlite.DSN(app.cfg.DatabaseFile))
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully", "file", app.cfg.DatabaseFile)
	return nil
}

// initSession restores any stored session before the API accepts requests.
func (app *Application) initSession() error {
	sealer, err := cryptox.LoadSealer(app.cfg.MasterKeyPath)
	if err != nil {
		return fmt.Errorf("failed to load master key: %w", err)
	}
	if app.cfg.MasterKeyPath == "" && os.Getenv(cryptox.MasterKeyEnv) == "" {
		app.logger.Warn("no master key configured, stored tokens will not survive a restart")
	}

	app.sdk = snapsdk.NewSDKClient(app.cfg.APIBaseURL)
	app.notices = notify.New(notify.Config{Logger: app.logger})

	sess, err := session.New(context.Background(), session.Config{
		Store:    app.db,
		Sealer:   sealer,
		API:      app.sdk,
		Notifier: app.notices,
		Logger:   app.logger,
	})
	if err != nil {
		return fmt.Errorf("failed to restore session: %w", err)
	}
	app.session = sess
	app.syncer = session.NewSyncer(sess, app.logger, app.cfg.ProfileTimeout)
	app.pages = router.New(sess, app.logger)
	return nil
}

func (app *Application) initServices() {
	app.authService = service.NewAuthService(service.AuthConfig{
		Backend:        app.sdk,
		Session:        app.session,
		Router:         app.pages,
		Store:          app.db,
		Logger:         app.logger,
		Throttle:       app.cfg.LoginThrottle,
		MaxAttempts:    app.cfg.LoginMaxAttempts,
		Lockout:        app.cfg.LoginLockout,
		ResendCooldown: app.cfg.ResendCooldown,
	})
	app.featureService = service.NewFeatureService(service.FeatureConfig{
		Backend:      app.sdk,
		Session:      app.session,
		Router:       app.pages,
		Logger:       app.logger,
		LanguagesTTL: app.cfg.LanguagesTTL,
	})
	app.adminService = service.NewAdminService(app.sdk, app.session, app.logger)

	// Logging out clears translate and image results.
	app.pages.OnReset(app.featureService.Reset)
}

func (app *Application) initHTTP() {
	router := httpapi.NewRouter(BuildVersion, app.db, app.logger)

	router.Pages = app.pages
	router.Notices = app.notices
	router.AuthService = app.authService
	router.FeatureService = app.featureService
	router.AdminService = app.adminService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              app.cfg.ListenAddr,
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
