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

	httpapi "github.com/aussiebroadwan/adminhub/internal/adminhub/http"
	"github.com/aussiebroadwan/adminhub/internal/adminhub/metrics"
	"github.com/aussiebroadwan/adminhub/internal/adminhub/notify"
	"github.com/aussiebroadwan/adminhub/internal/adminhub/service"
	"github.com/aussiebroadwan/adminhub/internal/adminhub/store"
	"github.com/aussiebroadwan/adminhub/internal/adminhub/store/drivers/sqlite"
	"github.com/aussiebroadwan/adminhub/internal/adminhub/web"
	"github.com/aussiebroadwan/adminhub/pkg/access"
	"github.com/aussiebroadwan/adminhub/pkg/cryptox"
	"github.com/aussiebroadwan/adminhub/pkg/jwtx"
	"github.com/aussiebroadwan/adminhub/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"
)

// Application holds the adminhub service and everything it depends on.
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db         store.Store
	keyManager *jwtx.KeyManager
	metrics    *metrics.Metrics
	notifier   *notify.Notifier

	// Services
	inviteService          *service.InviteService
	authService            *service.AuthService
	bootstrapService       *service.BootstrapService
	companyService         *service.CompanyService
	userService            *service.UserService
	extensionPolicyService *service.ExtensionPolicyService
	archivingService       *service.ArchivingService
	scheduler              *service.Scheduler

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "adminhub",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if err := cryptox.LoadPepperFile(cfg.PepperFile); err != nil {
		return nil, fmt.Errorf("failed to load pepper: %w", err)
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	keyManager, err := jwtx.NewEphemeralKeyManager(jwtx.KeyManagerOptions{
		Issuer:  cfg.Issuer,
		NumKeys: cfg.NumKeys,
	})
	if err != nil {
		_ = app.db.Close()
		return nil, fmt.Errorf("failed to initialize JWT keys: %w", err)
	}
	app.keyManager = keyManager

	app.metrics = metrics.New()
	app.initNotifier()
	app.initServices()
	app.initHTTP()

	return app, nil
}

// Handler returns the root HTTP handler.
func (app *Application) Handler() http.Handler { return app.router }

// Start seeds the scheduler with the last recorded pass and starts it.
func (app *Application) Start(ctx context.Context) {
	run, ok, err := app.archivingService.LatestRun(ctx)
	switch {
	case err != nil:
		app.logger.Warn("failed to load last archive run", "error", err)
	case ok:
		app.scheduler.RecordLastRun(run)
	}
	app.scheduler.EnsureStarted()
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.Start(context.Background())

	app.logger.Info("adminhub starting", "port", app.cfg.Port, "version", BuildVersion)

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a shutdown signal or server error
	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.stopBackground()
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

// Shutdown stops the HTTP server, then the scheduler, then closes the
// database.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down adminhub...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if err := app.stopBackground(); err != nil {
		return err
	}

	app.logger.Info("adminhub stopped")
	return nil
}

func (app *Application) stopBackground() error {
	app.scheduler.Stop()

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}
	return nil
}

// initDatabase initializes the database and applies migrations
func (app *Application) initDatabase() error {
	host := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(host)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

// initNotifier picks the SMTP mailer when configured and logs emails
// otherwise.
func (app *Application) initNotifier() {
	var mailer notify.Mailer = notify.LogMailer{Logger: app.logger}
	if smtpCfg, ok := app.cfg.SMTP(); ok {
		mailer = notify.NewSMTPMailer(smtpCfg)
		app.logger.Info("smtp mailer enabled", "host", smtpCfg.Host, "port", smtpCfg.Port)
	} else {
		app.logger.Warn("SMTP_HOST not set, emails will only be logged")
	}

	app.notifier = &notify.Notifier{
		Mailer:  mailer,
		Metrics: app.metrics,
		BaseURL: app.cfg.PublicURL,
	}
}

// initServices initializes all business logic services
func (app *Application) initServices() {
	tenants := access.TenantPolicy{AdminCrossTenantReads: app.cfg.AdminCrossTenantReads}

	app.inviteService = &service.InviteService{Store: app.db, Metrics: app.metrics}
	app.authService = &service.AuthService{
		Store:    app.db,
		Signer:   app.keyManager,
		Notifier: app.notifier,
		Issuer:   app.cfg.Issuer,
		TokenTTL: app.cfg.AccessTokenTTL,
		ResetTTL: app.cfg.PasswordResetTTL,
	}
	app.bootstrapService = &service.BootstrapService{
		Store: app.db,
		Token: app.cfg.BootstrapToken,
	}
	app.companyService = &service.CompanyService{
		Store:    app.db,
		Policy:   tenants,
		Notifier: app.notifier,
	}
	app.userService = &service.UserService{Store: app.db, Policy: tenants}
	app.extensionPolicyService = &service.ExtensionPolicyService{Store: app.db, Policy: tenants}

	app.archivingService = &service.ArchivingService{
		Store:     app.db,
		Logger:    app.logger,
		Metrics:   app.metrics,
		Retention: app.cfg.ArchiveRetention,
	}
	app.scheduler = service.NewScheduler(app.archivingService, app.logger, app.cfg.ArchivingInterval)
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.keyManager.KeySet,
		app.keyManager.Verifier,
		BuildVersion,
		app.db,
		app.cfg.RateLimits,
		app.logger,
	)

	// Wire services to router
	router.Metrics = app.metrics
	router.InviteService = app.inviteService
	router.AuthService = app.authService
	router.BootstrapService = app.bootstrapService
	router.CompanyService = app.companyService
	router.UserService = app.userService
	router.ExtensionPolicyService = app.extensionPolicyService
	router.Scheduler = app.scheduler
	router.ArchivingSecret = app.cfg.ArchivingSecretKey
	router.Dashboard = web.NewHandler(web.Options{
		Verifier:               app.keyManager.Verifier,
		AuthService:            app.authService,
		InviteService:          app.inviteService,
		UserService:            app.userService,
		CompanyService:         app.companyService,
		ExtensionPolicyService: app.extensionPolicyService,
		Scheduler:              app.scheduler,
		LoginLimit:             app.cfg.RateLimits.Strict,
		SecureCookie:           app.cfg.SecureCookie,
	})
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
