package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "miniapp-auth-backend/docs"
	"miniapp-auth-backend/internal/common/cache"
	"miniapp-auth-backend/internal/common/config"
	"miniapp-auth-backend/internal/common/logger"
	"miniapp-auth-backend/internal/common/metrics"
	"miniapp-auth-backend/internal/common/middleware"
	authhttp "miniapp-auth-backend/internal/features/auth/delivery/http"
	authservice "miniapp-auth-backend/internal/features/auth/service"
	userhttp "miniapp-auth-backend/internal/features/user/delivery/http"
	"miniapp-auth-backend/internal/features/user/repository"
	pgrepo "miniapp-auth-backend/internal/features/user/repository/postgres"
	redisrepo "miniapp-auth-backend/internal/features/user/repository/redis"
	userservice "miniapp-auth-backend/internal/features/user/service"
	"miniapp-auth-backend/internal/initdata"
	postgresplatform "miniapp-auth-backend/internal/platform/postgres"
	redisplatform "miniapp-auth-backend/internal/platform/redis"
)

// @title           Mini App Auth API
// @version         1.0
// @description     Telegram Mini App authentication and profile service. Validates signed init-data payloads and synchronizes user profiles.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey TelegramInitData
// @in header
// @name init_data
// @description Telegram Mini App init_data string for authentication

// @tag.name auth
// @tag.description Init-data validation

// @tag.name users
// @tag.description User profiles - sync, lookup and wallet attachment

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		// Missing BOT_TOKEN lands here: configuration problems kill the
		// process at startup, not per request.
		log.Fatalf("config load: %v", err)
	}

	logger.Init("miniapp-auth-backend", cfg.Debug)

	var (
		userRepo     repository.UserRepository
		profileCache userservice.Cache
		readiness    func(context.Context) error
	)

	switch cfg.Storage.Driver {
	case "postgres":
		pg, err := postgresplatform.Open(ctx, cfg.Storage.PostgresURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to connect to database")
		}
		defer pg.Close()
		if err := pg.Migrate(ctx); err != nil {
			logger.Fatal().Err(err).Msg("Failed to apply schema")
		}
		userRepo = pgrepo.NewUserRepository(pg.Pool())
		readiness = pg.HealthCheck
	default:
		rdb, err := redisplatform.Open(ctx, cfg)
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		defer rdb.Close()
		userRepo = redisrepo.NewUserRepository(rdb)
		profileCache = cache.NewCacheService(rdb)
		readiness = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}

	logger.Info().Str("driver", cfg.Storage.Driver).Msg("User store initialized")

	userSvc := userservice.NewUserService(userRepo, profileCache, cfg.Cache.ProfileTTL)
	authSvc := authservice.NewAuthService(userSvc, authservice.Config{
		BotToken:       cfg.Telegram.BotToken,
		MaxInitDataAge: cfg.Auth.MaxInitDataAge,
		EnforceMaxAge:  cfg.Auth.EnforceMaxAge,
	})

	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.Logger())
	router.Use(metrics.PrometheusMiddleware())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.Server.Origins
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Content-Type", "Authorization", "Accept", middleware.HeaderInitData}
	router.Use(cors.New(corsConfig))

	verifyOpts := initdata.Options{
		MaxAge:     cfg.Auth.MaxInitDataAge,
		EnforceAge: cfg.Auth.EnforceMaxAge,
	}

	// Validation endpoint, rate limited per client IP.
	limiter := middleware.NewRateLimiter(cfg.Auth.RateLimitPerSec, cfg.Auth.RateLimitBurst)
	api := router.Group("/api")
	api.Use(limiter.Middleware())
	authhttp.NewAuthHandler(authSvc).RegisterRoutes(api)

	// Profile endpoints, behind init-data authentication.
	v1 := router.Group("/api/v1")
	v1.Use(middleware.InitDataAuth(cfg.Telegram.BotToken, verifyOpts))
	userhttp.NewUserHandler(userSvc).RegisterRoutes(v1)

	router.GET("/metrics", metrics.Handler())
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	registerProbes(router, readiness)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Int("port", cfg.Server.Port).Msg("Starting HTTP server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	<-ctx.Done()
	stop()
	logger.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Server forced to shutdown")
	}

	logger.Info().Msg("Server exited")
}

func registerProbes(router *gin.Engine, readiness func(context.Context) error) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC(),
			"service":   "miniapp-auth-backend",
		})
	})

	router.GET("/live", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	router.GET("/ready", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := readiness(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unready",
				"error":  "store unavailable",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "ready",
			"timestamp": time.Now().UTC(),
			"service":   "miniapp-auth-backend",
		})
	})
}
