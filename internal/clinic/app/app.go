package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	httpapi "github.com/carebridgehq/clinicd/internal/clinic/http"
	"github.com/carebridgehq/clinicd/internal/clinic/metrics"
	"github.com/carebridgehq/clinicd/internal/clinic/notify"
	"github.com/carebridgehq/clinicd/internal/clinic/service"
	"github.com/carebridgehq/clinicd/internal/clinic/store"
	"github.com/carebridgehq/clinicd/internal/clinic/store/drivers/sqlite"
	"github.com/carebridgehq/clinicd/pkg/cryptox"
	"github.com/carebridgehq/clinicd/pkg/jwtx"
	"github.com/carebridgehq/clinicd/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the clinic service with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db       store.Store
	signer   *jwtx.Signer
	registry *prometheus.Registry
	recorder *metrics.Collector

	// Services
	authService         *service.AuthService
	clinicService       *service.ClinicService
	inviteService       *service.InviteService
	staffService        *service.StaffService
	onboardingService   *service.OnboardingService
	housekeepingService *service.HousekeepingService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "clinicd",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	// Set pepper path for password hashing
	cryptox.SetPepperPath(app.cfg.PepperFile)

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	// Session keys are ephemeral; tokens are short-lived and a restart
	// simply forces owners to sign in again.
	signer, err := jwtx.NewEphemeralSigner("clinicd-" + time.Now().UTC().Format("20060102150405"))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize session signer: %w", err)
	}
	app.signer = signer

	app.registry = prometheus.NewRegistry()
	app.recorder = metrics.NewCollector(app.registry)

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("clinic service starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
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

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down clinic service...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.housekeepingService.Stop()

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("clinic service stopped")
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

// initServices initializes all business logic services
func (app *Application) initServices() {
	var mailer notify.Mailer = &notify.LogMailer{}
	if app.cfg.MailEndpoint != "" {
		mailer = notify.NewHTTPMailer(app.cfg.MailEndpoint, app.cfg.MailAPIKey)
	} else {
		app.logger.Warn("no mail endpoint configured, invite mail will only be logged")
	}

	identity := &service.IdentityService{
		Store:   app.db,
		Metrics: app.recorder,
	}

	app.authService = &service.AuthService{
		Identity:   identity,
		Signer:     app.signer,
		Issuer:     app.cfg.Issuer,
		SessionTTL: app.cfg.SessionTTL,
	}

	app.clinicService = &service.ClinicService{Store: app.db}

	app.inviteService = &service.InviteService{
		Store:       app.db,
		Eligibility: &service.EligibilityService{Store: app.db},
		Mailer:      mailer,
		Metrics:     app.recorder,
		BaseURL:     app.cfg.BaseURL,
	}

	app.staffService = &service.StaffService{Store: app.db}

	app.onboardingService = service.NewOnboardingService(app.inviteService, identity)

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
	)
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.signer.Verifier(app.cfg.Issuer),
		BuildVersion,
		app.db,
		app.registry,
		app.logger,
	)

	// Wire services to router
	router.AuthService = app.authService
	router.ClinicService = app.clinicService
	router.InviteService = app.inviteService
	router.StaffService = app.staffService
	router.OnboardingService = app.onboardingService
	router.EchoInviteLink = app.cfg.EchoInviteLink()
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
