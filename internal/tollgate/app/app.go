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

	httpapi "github.com/aussiebroadwan/tollgate/internal/tollgate/http"
	"github.com/aussiebroadwan/tollgate/internal/tollgate/metrics"
	"github.com/aussiebroadwan/tollgate/internal/tollgate/service"
	"github.com/aussiebroadwan/tollgate/internal/tollgate/store/drivers/sqlite"
	"github.com/aussiebroadwan/tollgate/pkg/cryptox"
	"github.com/aussiebroadwan/tollgate/pkg/sessionkeys"
	"github.com/aussiebroadwan/tollgate/pkg/slogx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// BuildVersion is overridden at build time via -ldflags "-X ...".
var BuildVersion = "v0.1.0"

// Application encapsulates the tollgate service with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db          *sqlite.Store
	keys        *Keys
	sessionKeys *sessionkeys.Store
	registry    *prometheus.Registry
	metrics     *metrics.Metrics

	// Services
	authService         *service.AuthService
	userService         *service.UserService
	keyExchangeService  *service.KeyExchangeService
	contentService      *service.ContentService
	subscriptionService *service.SubscriptionService
	licenseService      *service.LicenseService
	housekeepingService *service.HousekeepingService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// NewLogger builds the process logger from cfg.
func NewLogger(cfg Config) *slog.Logger {
	return slogx.New(slogx.Config{
		Service: "tollgate",
		Version: BuildVersion,
		Env:     cfg.Env,
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
	})
}

// New creates a new Application instance with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg:    cfg,
		logger: NewLogger(cfg),
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	keys, err := InitKeys(cfg, app.logger)
	if err != nil {
		_ = app.db.Close()
		return nil, fmt.Errorf("failed to initialize keys: %w", err)
	}
	app.keys = keys

	app.initMetrics()
	if err := app.initServices(); err != nil {
		_ = app.db.Close()
		return nil, err
	}
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("tollgate starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		app.housekeepingService.Stop()
		_ = app.db.Close()
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
	app.logger.Info("shutting down tollgate...")

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

	app.logger.Info("tollgate stopped")
	return nil
}

// DSN returns the driver connection string for the database file at path.
func DSN(path string) string {
	return fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", path)
}

// OpenStore opens the database at path and applies migrations.
func OpenStore(path string) (*sqlite.Store, error) {
	db, err := sqlite.NewStore(DSN(path))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply database migrations: %w", err)
	}
	return db, nil
}

// initDatabase opens the store, applies migrations and canonicalizes any
// legacy role or plan values.
func (app *Application) initDatabase() error {
	db, err := OpenStore(app.cfg.DatabaseFile)
	if err != nil {
		return err
	}
	app.db = db
	app.logger.Info("database migrations applied successfully")

	ctx := slogx.WithContext(context.Background(), app.logger)
	n, err := (&service.UserService{Store: db}).NormalizeIdentities(ctx)
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to normalize identities: %w", err)
	}
	if n > 0 {
		app.logger.Info("normalized stored identities", "count", n)
	}
	return nil
}

func (app *Application) initMetrics() {
	app.registry = prometheus.NewRegistry()
	app.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	app.metrics = metrics.New(app.registry)

	app.sessionKeys = sessionkeys.New()
	metrics.RegisterSessionKeyGauge(app.registry, app.sessionKeys.Len)
}

// initServices initializes all business logic services.
func (app *Application) initServices() error {
	pepper, err := cryptox.LoadOrCreatePepper(app.cfg.PepperFile)
	if err != nil {
		return fmt.Errorf("failed to load pepper: %w", err)
	}

	app.authService = &service.AuthService{
		Store:    app.db,
		Signer:   app.keys.Signer,
		Hasher:   cryptox.NewPasswordHasher(pepper),
		Notifier: service.LogNotifier{Logger: slogx.Operator(app.logger)},
		Codes:    service.TOTPCodeGenerator(30 * time.Second),
		Metrics:  app.metrics,
		Issuer:   app.cfg.Issuer,
		TokenTTL: app.cfg.TokenTTL,
		CodeTTL:  app.cfg.OTPTTL,
	}
	app.userService = &service.UserService{Store: app.db}
	app.keyExchangeService = &service.KeyExchangeService{
		Authority: app.keys.Authority,
		Keys:      app.sessionKeys,
		Metrics:   app.metrics,
	}
	app.contentService = &service.ContentService{
		Keys:    app.sessionKeys,
		Metrics: app.metrics,
	}
	app.subscriptionService = &service.SubscriptionService{
		Store:   app.db,
		Metrics: app.metrics,
	}
	app.licenseService = &service.LicenseService{
		Store:   app.db,
		Signer:  app.keys.LicenseSigner,
		Metrics: app.metrics,
	}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
	)
	return nil
}

// initHTTP initializes the HTTP router and server.
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.keys.Verifier,
		BuildVersion,
		app.db,
		app.registry,
		app.logger,
	)

	router.AuthService = app.authService
	router.UserService = app.userService
	router.KeyExchangeService = app.keyExchangeService
	router.ContentService = app.contentService
	router.SubscriptionService = app.subscriptionService
	router.LicenseService = app.licenseService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
