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

	"github.com/aussiebroadwan/edgegate/internal/gateway/ai"
	httpapi "github.com/aussiebroadwan/edgegate/internal/gateway/http"
	"github.com/aussiebroadwan/edgegate/internal/gateway/identity"
	"github.com/aussiebroadwan/edgegate/internal/gateway/secrets"
	"github.com/aussiebroadwan/edgegate/internal/gateway/service"
	"github.com/aussiebroadwan/edgegate/internal/gateway/store"
	"github.com/aussiebroadwan/edgegate/internal/gateway/store/drivers/redis"
	"github.com/aussiebroadwan/edgegate/internal/gateway/store/drivers/sqlite"
	"github.com/aussiebroadwan/edgegate/pkg/httpx"
	"github.com/aussiebroadwan/edgegate/pkg/sigv4"
	"github.com/aussiebroadwan/edgegate/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the gateway with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db      store.Store
	secrets secrets.Provider

	// Services
	storageService      *service.StorageService
	aiService           *service.AIService
	sessionService      *service.SessionService
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
			Service: "edgegate",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
		secrets: secrets.Env{},
	}

	if err := app.initStore(); err != nil {
		return nil, err
	}

	if err := app.initServices(); err != nil {
		_ = app.db.Close()
		return nil, err
	}
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.housekeepingService.Start(context.Background())

	app.logger.Info("gateway starting", "port", app.cfg.Port, "version", BuildVersion)

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

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down gateway...")

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
		app.logger.Error("error closing store", "error", err)
		return err
	}

	app.logger.Info("gateway stopped")
	return nil
}

// initStore initializes the counter/cache store and applies migrations
func (app *Application) initStore() error {
	switch app.cfg.StoreBackend {
	case "redis":
		db, err := redis.NewStore(context.Background(), app.cfg.RedisAddr, "edgegate")
		if err != nil {
			return fmt.Errorf("failed to initialize redis store: %w", err)
		}
		app.db = db
		app.logger.Info("using redis store", "addr", app.cfg.RedisAddr)

	case "sqlite":
		dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
		db, err := sqlite.NewStore(dsn)
		if err != nil {
			return fmt.Errorf("failed to initialize sqlite store: %w", err)
		}
		app.db = db

		if err := db.ApplyMigrations(); err != nil {
			_ = db.Close()
			return fmt.Errorf("failed to apply store migrations: %w", err)
		}
		app.logger.Info("store migrations applied successfully")

	default:
		return fmt.Errorf("unknown store backend %q", app.cfg.StoreBackend)
	}

	return nil
}

// initServices initializes all business logic services
func (app *Application) initServices() error {
	presigner := &sigv4.Presigner{
		Host:   sigv4.R2Host(app.cfg.R2AccountID),
		Bucket: app.cfg.R2Bucket,
		Region: app.cfg.R2Region,
		Credentials: sigv4.Credentials{
			AccessKeyID:     app.cfg.R2AccessKeyID,
			SecretAccessKey: app.cfg.R2SecretKey,
		},
	}

	objects, err := service.NewMinioObjectStore(
		presigner.Host,
		app.cfg.R2AccessKeyID,
		app.cfg.R2SecretKey,
		app.cfg.R2Region,
		app.cfg.R2Bucket,
	)
	if err != nil {
		return fmt.Errorf("failed to initialize object store: %w", err)
	}

	app.storageService = &service.StorageService{
		Objects:   objects,
		Presigner: presigner,
		URLExpiry: app.cfg.SignedURLExpiry,
	}

	app.aiService = &service.AIService{
		Registry: app.buildAIRegistry(),
		Cache:    app.db.Cache(),
		CacheTTL: app.cfg.AICacheTTL,
	}

	app.sessionService = &service.SessionService{
		Identity:   &identity.HTTPVerifier{Endpoint: app.cfg.IdentityEndpoint, APIKey: app.cfg.IdentityAPIKey},
		Secrets:    app.secrets,
		SecretName: app.cfg.SessionSecretName,
		Issuer:     app.cfg.Issuer,
		Audience:   app.cfg.Audience,
		TTL:        app.cfg.SessionTTL,
	}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.cfg.HousekeepingInterval,
		app.logger,
	)

	return nil
}

// buildAIRegistry registers every provider with configured credentials.
// Registration order doubles as the default preference when
// AI_DEFAULT_PROVIDER is unset.
func (app *Application) buildAIRegistry() *ai.Registry {
	var providers []ai.Provider
	if app.cfg.WorkersAIToken != "" {
		providers = append(providers, &ai.WorkersAI{
			AccountID: app.cfg.R2AccountID,
			APIToken:  app.cfg.WorkersAIToken,
		})
	}
	if app.cfg.OpenAIKey != "" {
		providers = append(providers, &ai.OpenAI{APIKey: app.cfg.OpenAIKey})
	}
	if app.cfg.AnthropicKey != "" {
		providers = append(providers, &ai.Anthropic{APIKey: app.cfg.AnthropicKey})
	}

	registry := ai.NewRegistry(providers...)
	if app.cfg.DefaultAIProvider != "" {
		if err := registry.SetDefault(app.cfg.DefaultAIProvider); err != nil {
			app.logger.Warn("default AI provider not configured", "provider", app.cfg.DefaultAIProvider)
		}
	}
	return registry
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	authConfig := httpx.AuthConfig{
		Secret: func(ctx context.Context) ([]byte, error) {
			secret, err := app.secrets.Get(ctx, app.cfg.SessionSecretName)
			if err != nil {
				return nil, err
			}
			return []byte(secret), nil
		},
		Issuer:   app.cfg.Issuer,
		Audience: app.cfg.Audience,
	}

	router := httpapi.NewRouter(authConfig, app.db.Counters(), app.logger)

	// Wire services to router
	router.StorageService = app.storageService
	router.AIService = app.aiService
	router.SessionService = app.sessionService
	router.ApplyRoutes()

	app.router = router

	// Initialize HTTP server
	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
