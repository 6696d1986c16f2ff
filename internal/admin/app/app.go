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

	httpapi "github.com/openclave/realmadmin/internal/admin/http"
	"github.com/openclave/realmadmin/internal/admin/keycloak"
	"github.com/openclave/realmadmin/internal/admin/service"
	"github.com/openclave/realmadmin/internal/admin/store"
	"github.com/openclave/realmadmin/internal/admin/store/drivers/sqlite"
	"github.com/openclave/realmadmin/pkg/jwtx"
	"github.com/openclave/realmadmin/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the console backend with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db       store.Store
	kc       *keycloak.Client
	verifier jwtx.Verifier

	// Services
	userService     *service.UserService
	passwordService *service.PasswordService
	mfaService      *service.MFAService
	auditService    *service.AuditService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "realmadmin",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	app.kc = keycloak.New(keycloak.Config{
		BaseURL:        cfg.AuthServerURL,
		Realm:          cfg.Realm,
		ClientID:       cfg.BackendClientID,
		ClientSecret:   cfg.ClientSecret,
		PublicClientID: cfg.PublicClientID,
	})

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	if err := app.initVerifier(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.logger.Info("console backend starting",
		"port", app.cfg.Port, "realm", app.cfg.Realm, "version", BuildVersion)

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

// Shutdown gracefully shuts down the application.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down console backend...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("console backend stopped")
	return nil
}

// initDatabase initializes the audit store and applies migrations.
func (app *Application) initDatabase() error {
	host := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.AuditDatabaseFile)
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

// initVerifier wires token verification to the realm's published key set.
func (app *Application) initVerifier() error {
	verifier, err := jwtx.NewRemoteVerifier(
		jwtx.JWKSConfig{
			URL:             app.kc.JWKSURL(),
			RefreshInterval: app.cfg.JWKSRefreshInterval,
		},
		jwtx.VerifyOptions{
			Issuer: app.kc.IssuerURL(),
			Leeway: 30 * time.Second,
		},
		app.logger,
	)
	if err != nil {
		return fmt.Errorf("failed to initialize token verifier: %w", err)
	}

	app.verifier = verifier
	return nil
}

// initServices initializes all business logic services.
func (app *Application) initServices() {
	app.auditService = &service.AuditService{Store: app.db}
	app.userService = &service.UserService{KC: app.kc, Audit: app.auditService}
	app.passwordService = &service.PasswordService{KC: app.kc, Audit: app.auditService}
	app.mfaService = &service.MFAService{KC: app.kc, Audit: app.auditService}
}

// initHTTP initializes the HTTP router and server.
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.verifier,
		BuildVersion,
		app.db,
		app.kc,
		app.logger,
	)

	// Wire services to router
	router.UserService = app.userService
	router.PasswordService = app.passwordService
	router.MFAService = app.mfaService
	router.AuditService = app.auditService
	router.ApplyRoutes()

	app.router = router

	// Initialize HTTP server
	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
