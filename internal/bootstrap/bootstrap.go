package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appControllers "github.com/yigit/unimatch/internal/app/controllers"
	appMigrations "github.com/yigit/unimatch/internal/app/migrations"
	appRepos "github.com/yigit/unimatch/internal/app/repositories"
	appRoutes "github.com/yigit/unimatch/internal/app/routes"
	appServices "github.com/yigit/unimatch/internal/app/services"
	"github.com/yigit/unimatch/internal/config"
	"github.com/yigit/unimatch/internal/db"
	appMiddleware "github.com/yigit/unimatch/internal/middleware"
	pkgAuth "github.com/yigit/unimatch/internal/pkg/auth"
	"github.com/yigit/unimatch/internal/pkg/cache"
	"github.com/yigit/unimatch/internal/pkg/logger"
	"github.com/yigit/unimatch/internal/pkg/validation"
	"github.com/yigit/unimatch/internal/seed"
)

// DefaultConfigPath is where the config file is looked up relative to the working directory
var DefaultConfigPath = filepath.Join("configs", "config.yaml")

// Dependencies holds all the application dependencies
type Dependencies struct {
	RecommendationService appServices.RecommendationService
	CatalogService        appServices.CatalogService
	StudentService        appServices.StudentService
	IngestionService      appServices.IngestionService

	RecommendationController *appControllers.RecommendationController
	CatalogController        *appControllers.CatalogController
	StudentController        *appControllers.StudentController
	IngestionController      *appControllers.IngestionController

	AuthMiddleware *appMiddleware.AuthMiddleware
	JWTService     *pkgAuth.JWTService
	Repos          *appRepos.Repositories
	// CatalogCache is nil when no Redis URL is configured
	CatalogCache *cache.CatalogCache
	Logger       zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger(configPath string) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Str("path", configPath).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	lgr := logger.Configure(logger.ConfigFromStrings(cfg.Logging.Level, cfg.Logging.Format))
	lgr.Info().Str("logLevel", cfg.Logging.Level).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations and seeds the
// default subjects.
func SetupDatabase(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Str("host", cfg.Database.Host).Str("database", cfg.Database.DBName).Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(ctx, cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool
	lgr.Info().Msg("Database connection successfully established.")

	migrationsDir := cfg.Server.MigrationsDir
	if _, err := os.Stat(migrationsDir); err != nil {
		dbPool.Close()
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	lgr.Info().Str("path", migrationsDir).Msg("Running database migrations...")
	if err := appMigrations.NewMigrator(dbPool, lgr).MigrateFromDirectory(ctx, migrationsDir); err != nil {
		dbPool.Close()
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	if err := seed.CreateDefaultData(ctx, appRepos.NewSubjectRepository(dbPool), lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// SetupCache connects to Redis when a URL is configured. A nil cache with a nil error
// means caching is disabled.
func SetupCache(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*cache.CatalogCache, error) {
	if strings.TrimSpace(cfg.Redis.URL) == "" {
		lgr.Info().Msg("No Redis URL configured, catalog caching disabled")
		return nil, nil
	}

	client, err := cache.NewClient(ctx, cfg.Redis.URL)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to Redis")
		return nil, fmt.Errorf("failed to setup cache: %w", err)
	}
	lgr.Info().Dur("ttl", cfg.Redis.CatalogTTL).Msg("Catalog cache connected")
	return cache.NewCatalogCache(client, cfg.Redis.CatalogTTL), nil
}

// BuildDependencies initializes application repositories, services, and controllers.
// catalogCache may be nil.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, catalogCache *cache.CatalogCache, lgr zerolog.Logger) *Dependencies {
	deps := &Dependencies{Logger: lgr, CatalogCache: catalogCache}

	deps.Repos = appRepos.NewRepositories(dbPool)

	// a typed nil must not reach the services as a non-nil interface
	var snapshotCache appServices.CatalogCache
	if catalogCache != nil {
		snapshotCache = catalogCache
	}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:   cfg.JWT.Secret,
		TokenIssuer: cfg.JWT.Issuer,
	})
	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.RecommendationService = appServices.NewRecommendationService(
		deps.Repos.CourseRepository,
		deps.Repos.SubjectRepository,
		deps.Repos.StudentRepository,
		snapshotCache,
		appServices.RecommendationOptions{
			FemaleBonus:     cfg.Matching.FemaleBonus,
			DefaultPageSize: cfg.Matching.DefaultPageSize,
			MaxPageSize:     cfg.Matching.MaxPageSize,
		},
		lgr.With().Str("service", "recommendation").Logger(),
	)
	deps.CatalogService = appServices.NewCatalogService(
		deps.Repos.UniversityRepository,
		deps.Repos.CourseRepository,
		deps.Repos.SubjectRepository,
		snapshotCache,
		lgr.With().Str("service", "catalog").Logger(),
	)
	deps.StudentService = appServices.NewStudentService(
		deps.Repos.StudentRepository,
		deps.Repos.SubjectRepository,
		lgr.With().Str("service", "student").Logger(),
	)
	deps.IngestionService = appServices.NewIngestionService(
		deps.Repos.UniversityRepository,
		deps.Repos.CourseRepository,
		deps.Repos.SubjectRepository,
		snapshotCache,
		cfg.Ingestion.MaxBatchSize,
		lgr.With().Str("service", "ingestion").Logger(),
	)

	deps.RecommendationController = appControllers.NewRecommendationController(deps.RecommendationService)
	deps.CatalogController = appControllers.NewCatalogController(deps.CatalogService)
	deps.StudentController = appControllers.NewStudentController(deps.StudentService)
	deps.IngestionController = appControllers.NewIngestionController(deps.IngestionService)

	return deps
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*gin.Engine, error) {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	if err := validation.RegisterWithGin(); err != nil {
		return nil, fmt.Errorf("failed to register validation rules: %w", err)
	}

	router := gin.New()
	router.Use(gin.Recovery(), appMiddleware.RequestLogger(lgr))

	checks := map[string]appRoutes.HealthChecker{
		"database": appRoutes.HealthCheckFunc(dbPool.Ping),
	}
	if deps.CatalogCache != nil {
		checks["cache"] = deps.CatalogCache
	}
	appRoutes.SetupOperationalRoutes(router, checks)

	appRoutes.SetupRouter(router,
		deps.RecommendationController,
		deps.CatalogController,
		deps.StudentController,
		deps.IngestionController,
		deps.AuthMiddleware,
	)

	return router, nil
}
