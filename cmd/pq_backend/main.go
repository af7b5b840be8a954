package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SscSPs/print_quota_service/internal/adapters/paymentgateway"
	"github.com/SscSPs/print_quota_service/internal/core/domain"
	portsrepo "github.com/SscSPs/print_quota_service/internal/core/ports/repositories"
	"github.com/SscSPs/print_quota_service/internal/core/services"
	"github.com/SscSPs/print_quota_service/internal/handlers"
	"github.com/SscSPs/print_quota_service/internal/middleware"
	"github.com/SscSPs/print_quota_service/internal/platform/config"
	"github.com/SscSPs/print_quota_service/internal/repositories/database/pgsql"
	"github.com/SscSPs/print_quota_service/internal/repositories/memory"
	"github.com/SscSPs/print_quota_service/internal/utils"
	"github.com/SscSPs/print_quota_service/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// @title Print Quota Service API
// @version 1.0
// @description Page balances, print batch submission and top-ups for campus printers.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name x-api-key

// @security BearerAuth
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var repos portsrepo.RepositoryProvider
	switch cfg.StorageDriver {
	case config.StorageMemory:
		logger.Warn("Using in-memory storage. All balances are lost on restart.")
		store := memory.NewStore()
		seedPrinters(store)
		repos = store.Provider()
	default:
		dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
		if err != nil {
			logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer database.ClosePgxPool(dbPool)
		logger.Info("Database connection pool established.")

		if err := runMigrations(cfg.DatabaseURL, logger); err != nil {
			logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
			os.Exit(1)
		}
		repos = pgsql.NewRepositoryProvider(dbPool)
	}

	posthogClient := utils.InitializePosthogClient(cfg.PosthogAPIKey, logger)
	defer posthogClient.Close()

	deps := services.ContainerDeps{Events: posthogClient, Logger: logger}
	if cfg.GatewayConfigured() {
		gateway, err := paymentgateway.NewClient(ctx, paymentgateway.Config{
			BaseURL:      cfg.PaymentGatewayURL,
			TokenURL:     cfg.PaymentGatewayTokenURL,
			ClientID:     cfg.PaymentGatewayClientID,
			ClientSecret: cfg.PaymentGatewayClientSecret,
		})
		if err != nil {
			logger.Error("Failed to create payment gateway client", slog.String("error", err.Error()))
			os.Exit(1)
		}
		deps.Gateway = gateway
	}

	serviceContainer := services.NewServiceContainer(cfg, repos, deps)
	defer serviceContainer.Payment.Close()

	if err := serviceContainer.Payment.ResumePending(ctx); err != nil {
		// Pending payments can still be confirmed by the payment service callback.
		logger.Error("Failed to resume pending payments", slog.String("error", err.Error()))
	}

	rateLimiter, err := middleware.NewRateLimiter(cfg.RateLimit)
	if err != nil {
		logger.Error("Invalid RATE_LIMIT", slog.String("rate", cfg.RateLimit), slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery(), middleware.MetricsMiddleware())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.FrontendBaseURL}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.AllowCredentials = true
	r.Use(cors.New(corsConfig))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer, rateLimiter, posthogClient)

	if err := serve(ctx, r, cfg.Port, logger); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// serve runs the HTTP server until ctx is cancelled, then drains in-flight requests.
func serve(ctx context.Context, handler http.Handler, port string, logger *slog.Logger) error {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server starting", slog.String("port", port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func runMigrations(databaseURL string, logger *slog.Logger) error {
	logger.Info("Running database migrations...")
	// Using pgx/v5/stdlib driver to be compatible with the main pool
	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()
	if err := migrationDB.Ping(); err != nil {
		return err
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}
	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return err
	}

	upErr := m.Up()
	if upErr != nil && !errors.Is(upErr, migrate.ErrNoChange) {
		return upErr
	}
	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}

	if errors.Is(upErr, migrate.ErrNoChange) {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}

// seedPrinters registers a small fleet so the in-memory mode is usable without a database.
func seedPrinters(store *memory.Store) {
	store.PutPrinter(domain.Printer{PrinterID: "lib-bw-1", Name: "Library B/W", Location: "Library ground floor", SupportedSizes: []domain.PaperSize{domain.A4}, SupportsDuplex: true})
	store.PutPrinter(domain.Printer{PrinterID: "lib-color-1", Name: "Library Color", Location: "Library first floor", SupportedSizes: []domain.PaperSize{domain.A4, domain.A3}, SupportsDuplex: true, SupportsColor: true})
	store.PutPrinter(domain.Printer{PrinterID: "lab-a3-1", Name: "Design Lab A3", Location: "Building C, room 204", SupportedSizes: []domain.PaperSize{domain.A4, domain.A3}})
}
