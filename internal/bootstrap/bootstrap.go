package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"github.com/rs/zerolog"

	appControllers "github.com/yigit/coursewindow/internal/app/controllers"
	appMigrations "github.com/yigit/coursewindow/internal/app/migrations"
	appRepos "github.com/yigit/coursewindow/internal/app/repositories"
	appRoutes "github.com/yigit/coursewindow/internal/app/routes"
	appServices "github.com/yigit/coursewindow/internal/app/services"
	"github.com/yigit/coursewindow/internal/config"
	"github.com/yigit/coursewindow/internal/db"
	appMiddleware "github.com/yigit/coursewindow/internal/middleware"
	"github.com/yigit/coursewindow/internal/monitor"
	pkgAuth "github.com/yigit/coursewindow/internal/pkg/auth"
	"github.com/yigit/coursewindow/internal/pkg/helpers"
	"github.com/yigit/coursewindow/internal/pkg/logger"
	"github.com/yigit/coursewindow/internal/pkg/websocket"
	"github.com/yigit/coursewindow/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos            *appRepos.Repositories
	CourseService    appServices.CourseService
	AnalyticsService appServices.AnalyticsService
	AuthService      *appServices.AuthService
	JWTService       *pkgAuth.JWTService
	Monitor          *monitor.Monitor // nil when disabled
	LiveHub          *websocket.Hub   // nil when the monitor is disabled

	CourseController      *appControllers.CourseController
	AdminCourseController *appControllers.AdminCourseController
	AuthController        *appControllers.AuthController
	AnalyticsController   *appControllers.AnalyticsController
	AuthMiddleware        *appMiddleware.AuthMiddleware
	LiveStreamHandler     *websocket.Handler

	DefaultLocation *time.Location
	Clock           func() time.Time
	Logger          zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger(configPath string) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	lgr := logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: strings.ToLower(cfg.Logging.Format) == "text",
	})

	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the PostgreSQL connection and runs migrations.
func SetupDatabase(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	migrationsDir := cfg.Database.MigrationsDir
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		database.Close()
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	lgr.Info().Msg("Running database migrations...")
	if err := appMigrations.NewMigrator(database.Pool, lgr).MigrateFromDirectory(ctx, migrationsDir); err != nil {
		database.Close()
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	return database, nil
}

// SetupRepositories builds the course store for the configured driver and
// seeds it. The returned database is nil for the memory driver.
func SetupRepositories(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*appRepos.Repositories, *db.PostgresDB, error) {
	var (
		repos    *appRepos.Repositories
		database *db.PostgresDB
	)

	switch cfg.Database.Driver {
	case config.DriverPostgres:
		var err error
		database, err = SetupDatabase(ctx, cfg, lgr)
		if err != nil {
			return nil, nil, err
		}
		repos = appRepos.NewRepositories(database)
	default:
		lgr.Warn().Msg("Using in-memory course store; data is lost on restart")
		repos = appRepos.NewMemoryRepositories()
	}

	if cfg.Database.Seed {
		if err := seed.CreateDefaultData(ctx, repos.CourseRepository, lgr); err != nil {
			lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
		}
	}

	return repos, database, nil
}

// adminCredentials returns the configured admin account, hashing a plain
// password when no hash is configured.
func adminCredentials(cfg *config.Config, lgr zerolog.Logger) (appServices.AdminCredentials, error) {
	creds := appServices.AdminCredentials{
		Username:     strings.TrimSpace(cfg.Admin.Username),
		PasswordHash: cfg.Admin.PasswordHash,
	}
	if creds.PasswordHash != "" {
		if err := pkgAuth.VerifyPasswordHash(creds.PasswordHash); err != nil {
			return creds, err
		}
		return creds, nil
	}

	hash, err := pkgAuth.HashPassword(cfg.Admin.Password)
	if err != nil {
		return creds, fmt.Errorf("failed to hash admin password: %w", err)
	}
	if cfg.IsProduction() {
		lgr.Warn().Msg("Admin password configured in plain text; set ADMIN_PASSWORD_HASH instead")
	}
	creds.PasswordHash = hash
	return creds, nil
}

// BuildDependencies initializes services, controllers and the live monitor.
func BuildDependencies(cfg *config.Config, repos *appRepos.Repositories, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Repos: repos, Clock: time.Now, Logger: lgr}

	loc, err := helpers.LoadLocation(cfg.Schedule.DefaultTimezone, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("invalid default timezone: %w", err)
	}
	deps.DefaultLocation = loc

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 12*time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	creds, err := adminCredentials(cfg, lgr)
	if err != nil {
		return nil, err
	}

	deps.CourseService = appServices.NewCourseService(repos.CourseRepository, lgr)
	deps.AnalyticsService = appServices.NewAnalyticsService(repos.CourseRepository)
	deps.AuthService = appServices.NewAuthService(creds, deps.JWTService, lgr)

	var live appControllers.LiveSource
	if cfg.Monitor.Enabled {
		monitorLoc, err := helpers.LoadLocation(cfg.Monitor.Timezone, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("invalid monitor timezone: %w", err)
		}
		deps.Monitor = monitor.New(repos.CourseRepository, monitorLoc,
			helpers.ParseDuration(cfg.Monitor.Interval, time.Minute), lgr)
		live = deps.Monitor
	}

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)
	deps.CourseController = appControllers.NewCourseController(deps.CourseService)
	deps.AdminCourseController = appControllers.NewAdminCourseController(deps.CourseService)
	deps.AuthController = appControllers.NewAuthController(deps.AuthService, lgr)
	deps.AnalyticsController = appControllers.NewAnalyticsController(deps.AnalyticsService, live)

	if deps.Monitor != nil {
		deps.LiveHub = websocket.NewHub(lgr)
		deps.Monitor.OnTransition(func(t monitor.Transition) {
			deps.LiveHub.Broadcast(t)
		})
		deps.LiveStreamHandler = websocket.NewHandler(deps.LiveHub, cfg.Server.AllowedOrigins, func() interface{} {
			return deps.AnalyticsController.LiveSnapshot()
		}, lgr)
	}

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes and wraps
// it in the CORS handler.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) (http.Handler, error) {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	} else if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.DebugMode)
	}

	if err := appMiddleware.RegisterValidators(); err != nil {
		return nil, err
	}

	router := gin.New()
	router.Use(gin.Recovery(), appMiddleware.RequestLogger(lgr))

	var liveStream gin.HandlerFunc
	if deps.LiveStreamHandler != nil {
		liveStream = deps.LiveStreamHandler.HandleConnection
	}

	appRoutes.SetupSwagger(router)
	appRoutes.SetupRouter(router, appRoutes.Handlers{
		Course:         deps.CourseController,
		AdminCourse:    deps.AdminCourseController,
		Auth:           deps.AuthController,
		Analytics:      deps.AnalyticsController,
		AuthMiddleware: deps.AuthMiddleware,
		ViewerClock:    appMiddleware.ViewerClock(deps.DefaultLocation, deps.Clock),
		PreviewClock:   appMiddleware.PreviewClock(deps.DefaultLocation, deps.Clock),
		LiveStream:     liveStream,
	})

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.Server.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", appMiddleware.TimezoneHeader},
		AllowCredentials: false,
	})

	return c.Handler(router), nil
}
