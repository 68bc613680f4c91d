package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/kaganyildiz/academix/internal/app/controllers"
	"github.com/kaganyildiz/academix/internal/app/migrations"
	"github.com/kaganyildiz/academix/internal/app/repositories"
	"github.com/kaganyildiz/academix/internal/app/routes"
	"github.com/kaganyildiz/academix/internal/app/services"
	"github.com/kaganyildiz/academix/internal/config"
	"github.com/kaganyildiz/academix/internal/db"
	"github.com/kaganyildiz/academix/internal/middleware"
	"github.com/kaganyildiz/academix/internal/pkg/auth"
	"github.com/kaganyildiz/academix/internal/pkg/cache"
	"github.com/kaganyildiz/academix/internal/pkg/helpers"
	"github.com/kaganyildiz/academix/internal/pkg/logger"
	"github.com/kaganyildiz/academix/internal/pkg/metrics"
	"github.com/kaganyildiz/academix/internal/seed"
)

// LoadConfigAndSetupLogger loads configuration and applies logging settings
func LoadConfigAndSetupLogger(configPath string) (*config.Config, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger.Configure(logger.Config{
		Level:  logger.LogLevel(cfg.Logging.Level),
		Pretty: cfg.Logging.Format != "json",
	})

	return cfg, nil
}

// SetupDatabase connects to Postgres, runs migrations and seeds the initial
// admin account
func SetupDatabase(ctx context.Context, cfg *config.Config) (*db.PostgresDB, error) {
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := migrations.NewMigrator(database.Pool).Run(ctx); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := seed.EnsureAdminAccount(ctx, database.Pool); err != nil {
		database.Close()
		return nil, err
	}

	return database, nil
}

// Dependencies holds everything the HTTP layer needs
type Dependencies struct {
	Controllers routes.Controllers
	AuthMW      *middleware.AuthMiddleware
	RedisClient *redis.Client
}

// BuildDependencies wires repositories, services and controllers together.
// Redis is optional; when disabled the cache stays nil and lookups go
// straight to the database.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB) *Dependencies {
	log := logger.Get()

	repos := repositories.NewRepositories(database.Pool)

	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:   cfg.JWT.Secret,
		TokenExp:    helpers.ParseDuration(cfg.JWT.Expiration, 168*time.Hour),
		TokenIssuer: cfg.JWT.Issuer,
	})

	var redisClient *redis.Client
	var userCache *cache.UserCache
	if cfg.Redis.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		userCache = cache.NewUserCache(redisClient,
			helpers.ParseDuration(cfg.Redis.CacheTTL, 5*time.Minute), log)
		logger.Info().Str("addr", cfg.Redis.Addr).Msg("Account cache enabled")
	}

	authService := services.NewAuthService(
		repos.UserRepository, repos.StudentRepository, repos.TeacherRepository, jwtService, userCache, log)
	studentService := services.NewStudentService(repos.StudentRepository, repos.ClassRepository, log)
	teacherService := services.NewTeacherService(repos.TeacherRepository, log)
	classService := services.NewClassService(
		repos.ClassRepository, repos.StudentRepository, repos.TeacherRepository, log)

	return &Dependencies{
		Controllers: routes.Controllers{
			Auth:    controllers.NewAuthController(authService),
			Student: controllers.NewStudentController(studentService),
			Teacher: controllers.NewTeacherController(teacherService),
			Class:   controllers.NewClassController(classService),
			Health:  controllers.NewHealthController(database.Pool, userCache),
		},
		AuthMW: middleware.NewAuthMiddleware(
			jwtService, repos.UserRepository, repos.StudentRepository, userCache, log),
		RedisClient: redisClient,
	}
}

// SetupRouter builds the gin engine with the full middleware chain
func SetupRouter(cfg *config.Config, deps *Dependencies) *gin.Engine {
	if cfg.Server.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	metrics.Init()

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(logger.Get()))
	router.Use(metrics.Instrument())
	router.Use(middleware.CORS(cfg.CORS.AllowedOrigin))
	router.Use(middleware.NewRateLimiter(float64(cfg.RateLimit.PerSecond), cfg.RateLimit.Burst).Handle())

	routes.SetupRoutes(router, deps.Controllers, deps.AuthMW)

	return router
}
