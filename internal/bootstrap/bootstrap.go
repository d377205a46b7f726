// Package bootstrap wires configuration, storage, services and routes into
// a runnable application.
package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appControllers "github.com/unisity/unisity/internal/app/controllers"
	appMigrations "github.com/unisity/unisity/internal/app/migrations"
	appRoutes "github.com/unisity/unisity/internal/app/routes"
	appServices "github.com/unisity/unisity/internal/app/services"
	"github.com/unisity/unisity/internal/app/store"
	"github.com/unisity/unisity/internal/config"
	"github.com/unisity/unisity/internal/db"
	appMiddleware "github.com/unisity/unisity/internal/middleware"
	pkgAuth "github.com/unisity/unisity/internal/pkg/auth"
	"github.com/unisity/unisity/internal/pkg/helpers"
	"github.com/unisity/unisity/internal/pkg/logger"
	"github.com/unisity/unisity/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Store          *store.Store
	Services       *appServices.Services
	Controllers    *appControllers.Controllers
	JWTService     *pkgAuth.JWTService
	AuthMiddleware *appMiddleware.AuthMiddleware
	Logger         zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := logger.WithField("service", "unisity")
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupStore establishes the storage backend selected by the configuration.
// The postgres driver connects, migrates and returns the live pool; the
// memory driver backs every collection with an in-process store.
func SetupStore(cfg *config.Config, lgr zerolog.Logger) (*store.Store, *pgxpool.Pool, error) {
	if strings.ToLower(cfg.Database.Driver) == "memory" {
		lgr.Info().Msg("Using in-memory storage")
		return store.NewMemStore(), nil, nil
	}

	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		dbPool.Close()
		return nil, nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		dbPool.Close()
		return nil, nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")
	return store.NewPgStore(dbPool), dbPool, nil
}

// BuildDependencies initializes application services and controllers over
// the store, and seeds default data.
func BuildDependencies(cfg *config.Config, st *store.Store, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Store: st, Logger: lgr}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:   cfg.JWT.Secret,
		TokenExpiry: helpers.ParseDuration(cfg.JWT.TokenExpiration, 1*time.Hour),
		TokenIssuer: cfg.JWT.Issuer,
	})

	deps.Services = appServices.NewServices(st, deps.JWTService)
	deps.Controllers = appControllers.NewControllers(deps.Services)
	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	if config.GetEnvAsBool("SEED_DEFAULT_DATA", true) {
		adminEmail := config.GetEnv("ADMIN_EMAIL", "")
		adminPassword := config.GetEnv("ADMIN_PASSWORD", "")
		if err := seed.CreateDefaultData(context.Background(), deps.Services, st, adminEmail, adminPassword, lgr); err != nil {
			// Startup proceeds; login still works for already-seeded accounts.
			lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
		}
	} else {
		lgr.Info().Msg("Default data seeding disabled")
	}

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.Default()

	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware)

	return router
}
