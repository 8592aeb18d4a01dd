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

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/lmittmann/tint"
	"github.com/ulule/limiter/v3"
	memorystore "github.com/ulule/limiter/v3/drivers/store/memory"
	"golang.org/x/sync/errgroup"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/smallbooks/smallbooks_backend/internal/adapters/audit"
	"github.com/smallbooks/smallbooks_backend/internal/adapters/blob"
	"github.com/smallbooks/smallbooks_backend/internal/adapters/cipher"
	"github.com/smallbooks/smallbooks_backend/internal/adapters/events"
	"github.com/smallbooks/smallbooks_backend/internal/adapters/identity"
	"github.com/smallbooks/smallbooks_backend/internal/core/ports"
	"github.com/smallbooks/smallbooks_backend/internal/core/services"
	"github.com/smallbooks/smallbooks_backend/internal/handlers"
	"github.com/smallbooks/smallbooks_backend/internal/middleware"
	"github.com/smallbooks/smallbooks_backend/internal/platform/config"
	"github.com/smallbooks/smallbooks_backend/internal/repositories/database/pgsql"
	"github.com/smallbooks/smallbooks_backend/pkg/database"
)

// @title SmallBooks Backend API
// @version 1.0
// @description Multi-user bookkeeping backend with encrypted ledger entries.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.ClosePgxPool(dbPool)

	if err := runMigrations(cfg, logger); err != nil {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	collab, cleanup, err := buildCollaborators(cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize collaborators", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer cleanup()

	repos := pgsql.NewRepositoryProvider(dbPool)
	serviceContainer := services.NewServiceContainer(repos, collab, services.AuthConfig{
		JWTSecret: cfg.JWTSecret,
		JWTExpiry: cfg.JWTExpiryDuration,
		JWTIssuer: cfg.JWTIssuer,
	})

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(
		middleware.StructuredLoggingMiddleware(logger),
		gin.Recovery(),
		middleware.Metrics(),
		cors.New(cors.Config{
			AllowOrigins:     []string{cfg.FrontendBaseURL},
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
		middleware.RateLimit(limiter.New(memorystore.NewStore(), limiter.Rate{
			Period: time.Minute,
			Limit:  cfg.RateLimitPerMin,
		})),
	)

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server exited with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("Server stopped")
}

// newLogger picks JSON output in production and colorized tint output for
// local development.
func newLogger(cfg *config.Config) *slog.Logger {
	if cfg.IsProduction {
		return slog.New(slog.NewJSONHandler(os.Stdout, nil))
	}
	return slog.New(tint.NewHandler(os.Stdout, &tint.Options{
		Level:      slog.LevelDebug,
		TimeFormat: time.Kitchen,
	}))
}

// runMigrations applies all pending SQL migrations using a temporary
// database/sql connection over the pgx stdlib driver.
func runMigrations(cfg *config.Config, logger *slog.Logger) error {
	logger.Info("Running database migrations...")

	migrationDB, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer migrationDB.Close()

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

	err = m.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	return dbErr
}

// buildCollaborators wires the external service adapters, substituting
// no-ops where a collaborator is not configured.
func buildCollaborators(cfg *config.Config, logger *slog.Logger) (services.Collaborators, func(), error) {
	fieldCipher, err := cipher.NewChaChaCipher(cfg.CipherSecret, cfg.CipherProtocolID)
	if err != nil {
		return services.Collaborators{}, nil, err
	}

	var auditSvc ports.AuditService = audit.NoopAuditService{}
	if cfg.AuditServiceURL != "" {
		auditSvc = audit.NewHTTPAuditService(cfg.AuditServiceURL)
	}

	blobStore, err := blob.NewFSStore(cfg.FileStoreDir)
	if err != nil {
		return services.Collaborators{}, nil, err
	}

	var eventPub ports.EventPublisher = events.NoopPublisher{}
	cleanup := func() {}
	if cfg.AMQPURL != "" {
		amqpPub, err := events.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			// Events are best-effort: a missing broker degrades, not aborts.
			logger.Warn("Failed to connect AMQP publisher, events disabled", slog.String("error", err.Error()))
		} else {
			eventPub = amqpPub
			cleanup = func() { _ = amqpPub.Close() }
		}
	}

	return services.Collaborators{
		Cipher:   fieldCipher,
		Audit:    auditSvc,
		Identity: identity.NewWalletIdentityProvider(cfg.WalletServiceURL),
		Blobs:    blobStore,
		Events:   eventPub,
	}, cleanup, nil
}
