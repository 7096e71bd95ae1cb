package bootstrap

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/naybriones202/registro-academico/internal/app/controllers"
	appMigrations "github.com/naybriones202/registro-academico/internal/app/migrations"
	appRepos "github.com/naybriones202/registro-academico/internal/app/repositories"
	appRoutes "github.com/naybriones202/registro-academico/internal/app/routes"
	appServices "github.com/naybriones202/registro-academico/internal/app/services"
	"github.com/naybriones202/registro-academico/internal/config"
	"github.com/naybriones202/registro-academico/internal/db"
	appMiddleware "github.com/naybriones202/registro-academico/internal/middleware"
	pkgAuth "github.com/naybriones202/registro-academico/internal/pkg/auth"
	"github.com/naybriones202/registro-academico/internal/pkg/logger"
	"github.com/naybriones202/registro-academico/internal/seed"
)

// Dependencies holds all the application dependencies.
type Dependencies struct {
	AuthService      *appServices.AuthService
	UserService      *appServices.UserService
	CourseService    *appServices.CourseService
	AuthController   *appControllers.AuthController
	UserController   *appControllers.UserController
	CourseController *appControllers.CourseController
	AuthMiddleware   *appMiddleware.AuthMiddleware
	Repos            *appRepos.Repositories
	JWTService       *pkgAuth.JWTService
	Logger           zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logger.Configure(logger.Config{
		Level:  strings.ToLower(cfg.Logging.Level),
		Pretty: strings.ToLower(cfg.Logging.Format) == "text",
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", cfg.Logging.Level).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations and
// seeds the default teacher account.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(database.Pool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		database.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		database.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	if err := seed.SeedDefaultTeacher(appRepos.NewRepositories(database)); err != nil {
		lgr.Error().Err(err).Msg("Failed to seed default data, proceeding anyway...")
	}

	return database, nil
}

// BuildDependencies initializes application repositories, services and controllers.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(database)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:   cfg.JWT.Secret,
		TokenExpiry: cfg.TokenExpiry(),
		TokenIssuer: cfg.JWT.Issuer,
	})

	deps.AuthService = appServices.NewAuthService(deps.Repos.UserRepository)
	deps.UserService = appServices.NewUserService(deps.Repos.UserRepository)
	deps.CourseService = appServices.NewCourseService(deps.Repos.CourseRepository)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService, deps.JWTService, lgr)
	deps.UserController = appControllers.NewUserController(deps.UserService, lgr)
	deps.CourseController = appControllers.NewCourseController(deps.CourseService, lgr)

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
		deps.UserController,
		deps.CourseController,
		deps.AuthMiddleware,
	)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
