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

	"github.com/veridianlabs/mailward/internal/mailward/domain"
	httpapi "github.com/veridianlabs/mailward/internal/mailward/http"
	"github.com/veridianlabs/mailward/internal/mailward/i18n"
	"github.com/veridianlabs/mailward/internal/mailward/mail"
	"github.com/veridianlabs/mailward/internal/mailward/service"
	"github.com/veridianlabs/mailward/internal/mailward/store"
	"github.com/veridianlabs/mailward/internal/mailward/store/drivers/postgres"
	"github.com/veridianlabs/mailward/internal/mailward/store/drivers/sqlite"
	"github.com/veridianlabs/mailward/pkg/cryptox"
	"github.com/veridianlabs/mailward/pkg/jwtx"
	"github.com/veridianlabs/mailward/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"
)

// Application encapsulates the mailward service with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db         store.Store
	signer     jwtx.Signer
	verifier   jwtx.Verifier
	catalog    *i18n.Catalog
	sender     mail.Sender
	dispatcher *mail.Dispatcher

	// Services
	tokenService        *service.TokenService
	mailerService       *service.MailerService
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
			Service: "mailward",
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

	if err := app.initSigning(); err != nil {
		return nil, err
	}

	if err := app.initMail(); err != nil {
		return nil, err
	}

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.dispatcher.Start()
	app.housekeepingService.Start()

	app.logger.Info("mailward starting", "port", app.cfg.Port, "version", BuildVersion)

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

// Shutdown gracefully shuts down the application. Order matters: stop
// accepting requests, stop background producers, drain the mail queue,
// then close the database everything above writes to.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down mailward...")

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
	app.dispatcher.Stop()

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("mailward stopped")
	return nil
}

// initDatabase initializes the configured database and applies migrations
func (app *Application) initDatabase() error {
	var (
		db  store.Store
		err error
	)
	switch app.cfg.DatabaseDriver {
	case "postgres":
		db, err = postgres.NewStore(app.cfg.DatabaseURL)
	default:
		dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
		db, err = sqlite.NewStore(dsn)
	}
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully", "driver", app.cfg.DatabaseDriver)
	return nil
}

// initSigning builds the HS256 signer and verifier from the shared secret.
// The same secret authenticates inbound service tokens and signs outbound
// magic link sessions.
func (app *Application) initSigning() error {
	if app.cfg.APISecret == "" {
		return fmt.Errorf("MAILWARD_API_SECRET is required")
	}

	signer, err := jwtx.NewSignerHS256([]byte(app.cfg.APISecret))
	if err != nil {
		return fmt.Errorf("failed to initialize signer: %w", err)
	}

	app.signer = signer
	app.verifier = jwtx.NewVerifierHS256([]byte(app.cfg.APISecret), app.cfg.Issuer, nil)
	return nil
}

// initMail selects the delivery provider, loads the translation catalog and
// starts nothing yet; the dispatcher goroutine is started in Run.
func (app *Application) initMail() error {
	var (
		sender mail.Sender
		err    error
	)
	switch app.cfg.MailProvider {
	case "smtp":
		sender, err = mail.NewSMTPSender(mail.SMTPConfig{
			Host:     app.cfg.SMTPHost,
			Port:     app.cfg.SMTPPort,
			Username: app.cfg.SMTPUsername,
			Password: app.cfg.SMTPPassword,
			TLS:      app.cfg.SMTPTLS,
			From:     app.cfg.MailFrom,
			FromName: app.cfg.MailFromName,
		})
	case "resend":
		sender, err = mail.NewResendSender(app.cfg.ResendAPIKey, app.cfg.MailFrom, app.cfg.MailFromName)
	default:
		sender = mail.NewLogSender(app.logger)
	}
	if err != nil {
		return fmt.Errorf("failed to initialize %s mail provider: %w", app.cfg.MailProvider, err)
	}

	catalog, err := i18n.NewCatalog(app.cfg.DefaultLocale)
	if err != nil {
		return fmt.Errorf("failed to load translation catalog: %w", err)
	}

	app.sender = sender
	app.catalog = catalog
	app.dispatcher = mail.NewDispatcher(sender, app.logger, app.cfg.MailQueueSize)
	return nil
}

// initServices initializes all business logic services
func (app *Application) initServices() {
	app.mailerService = &service.MailerService{
		Catalog:    app.catalog,
		Dispatcher: app.dispatcher,
	}

	ttls := map[domain.ActionKind]time.Duration{}
	for kind, ttl := range map[domain.ActionKind]time.Duration{
		domain.KindEmailConfirmation: app.cfg.ConfirmationTTL,
		domain.KindInvitation:        app.cfg.InvitationTTL,
		domain.KindPasswordReset:     app.cfg.ResetTTL,
		domain.KindMagicLink:         app.cfg.MagicLinkTTL,
	} {
		if ttl > 0 {
			ttls[kind] = ttl
		}
	}

	app.tokenService = &service.TokenService{
		Store:         app.db,
		Mailer:        app.mailerService,
		Signer:        app.signer,
		Issuer:        app.cfg.Issuer,
		BaseURL:       app.cfg.BaseURL,
		SessionTTL:    app.cfg.SessionTTL,
		TTLs:          ttls,
		DefaultLocale: app.cfg.DefaultLocale,
	}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
		app.cfg.HousekeepingRetention,
	)
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.verifier,
		BuildVersion,
		app.db,
		app.logger,
	)

	// Wire services to router
	router.TokenService = app.tokenService
	router.Signer = app.signer
	router.Sender = app.sender
	router.ApplyRoutes()

	app.router = router

	// Initialize HTTP server
	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
