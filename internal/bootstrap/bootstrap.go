package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/acadsys/aims/internal/app/controllers"
	appMigrations "github.com/acadsys/aims/internal/app/migrations"
	appRepos "github.com/acadsys/aims/internal/app/repositories"
	appRoutes "github.com/acadsys/aims/internal/app/routes"
	appServices "github.com/acadsys/aims/internal/app/services"
	"github.com/acadsys/aims/internal/config"
	"github.com/acadsys/aims/internal/db"
	appMiddleware "github.com/acadsys/aims/internal/middleware"
	pkgAuth "github.com/acadsys/aims/internal/pkg/auth"
	"github.com/acadsys/aims/internal/pkg/helpers"
	"github.com/acadsys/aims/internal/pkg/logger"
	"github.com/acadsys/aims/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService          appServices.AuthService
	EnrollmentService    appServices.EnrollmentService
	BatchService         appServices.BatchService
	RecordService        appServices.RecordService
	OfferingService      appServices.OfferingService
	TermService          appServices.TermService
	CatalogService       appServices.CatalogService
	AuthController       *appControllers.AuthController
	EnrollmentController *appControllers.EnrollmentController
	BatchController      *appControllers.BatchController
	OfferingController   *appControllers.OfferingController
	TermController       *appControllers.TermController
	CatalogController    *appControllers.CatalogController
	RecordController     *appControllers.RecordController
	AuthMiddleware       *appMiddleware.AuthMiddleware
	Repos                *appRepos.Repositories
	JWTService           *pkgAuth.JWTService
	Logger               zerolog.Logger
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

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")

	// Create default data (after migrations)
	if err := seed.CreateDefaultData(context.Background(), dbPool, lgr); err != nil {
		// Seeding failure is not fatal; an operator can insert the data by hand
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	deps.AuthService = appServices.NewAuthService(
		deps.Repos.UserRepository,
		deps.JWTService,
		lgr,
	)

	deps.EnrollmentService = appServices.NewEnrollmentService(
		deps.Repos.EnrollmentRepository,
		deps.Repos.OfferingRepository,
		deps.Repos.StudentRepository,
		deps.Repos.CourseRepository,
		cfg.Academics.CreditCeiling,
		lgr,
	)

	deps.BatchService = appServices.NewBatchService(
		deps.Repos.EnrollmentRepository,
		deps.Repos.CourseRepository,
		deps.Repos.TermRepository,
		deps.Repos.OfferingRepository,
		lgr,
	)

	deps.RecordService = appServices.NewRecordService(
		deps.Repos.EnrollmentRepository,
		deps.Repos.StudentRepository,
	)

	deps.OfferingService = appServices.NewOfferingService(
		deps.Repos.ProposalRepository,
		deps.Repos.OfferingRepository,
		deps.Repos.CourseRepository,
		deps.Repos.TermRepository,
		lgr,
	)

	deps.TermService = appServices.NewTermService(deps.Repos.TermRepository, lgr)

	deps.CatalogService = appServices.NewCatalogService(
		deps.Repos.DepartmentRepository,
		deps.Repos.SlotRepository,
		deps.Repos.CourseRepository,
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService)
	deps.EnrollmentController = appControllers.NewEnrollmentController(deps.EnrollmentService)
	deps.BatchController = appControllers.NewBatchController(deps.BatchService)
	deps.OfferingController = appControllers.NewOfferingController(deps.OfferingService)
	deps.TermController = appControllers.NewTermController(deps.TermService)
	deps.CatalogController = appControllers.NewCatalogController(deps.CatalogService)
	deps.RecordController = appControllers.NewRecordController(deps.RecordService)

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

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.EnrollmentController,
		deps.BatchController,
		deps.OfferingController,
		deps.TermController,
		deps.CatalogController,
		deps.RecordController,
		deps.AuthMiddleware,
	)

	// Test endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
