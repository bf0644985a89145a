package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/architecture-survey/survey-api/internal/config"
	"github.com/architecture-survey/survey-api/internal/handlers"
	"github.com/architecture-survey/survey-api/internal/logging"
	"github.com/architecture-survey/survey-api/internal/middleware"
	"github.com/architecture-survey/survey-api/internal/observability"
	"github.com/architecture-survey/survey-api/internal/repository"
	"github.com/architecture-survey/survey-api/internal/services"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/architecture-survey/survey-api/docs"
)

// @title           Survey API
// @version         1.0
// @description     API do questionário de arquitetura de software. Controla o uso único de emails de estudantes, armazena respostas anônimas e oferece endpoints para pesquisadores.

// @host      localhost:8080
// @BasePath  /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

// @tag.name emails
// @tag.description Registro de emails utilizados

// @tag.name survey
// @tag.description Respostas do questionário

// @tag.name admin
// @tag.description Operações de pesquisadores

// @tag.name health
// @tag.description Health check operations

func main() {
	// Initialize logger first
	if err := logging.InitLogger(); err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}

	// Load configuration
	if err := config.LoadConfig(); err != nil {
		logging.Logger.Fatal("failed to load config", zap.Error(err))
	}
	cfg := config.AppConfig

	// Initialize observability
	observability.InitTracer()
	defer observability.ShutdownTracer()

	// Open the configured store
	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 30*time.Second)
	store, closeStore, err := repository.Open(startupCtx, cfg)
	cancelStartup()
	if err != nil {
		logging.Logger.Fatal("failed to open store", zap.String("driver", cfg.StoreDriver), zap.Error(err))
	}
	defer closeStore()

	healthChecks := map[string]handlers.Pinger{store.Name(): store}

	// Verdict cache
	var cache services.VerdictCache
	switch cfg.CacheBackend {
	case config.CacheBackendRedis:
		if err := config.InitRedis(); err != nil {
			logging.Logger.Fatal("failed to initialize Redis", zap.Error(err))
		}
		defer config.Redis.Close()
		redisCache := services.NewRedisVerdictCache(config.Redis, logging.Logger)
		healthChecks["redis"] = redisCache
		cache = redisCache
	case config.CacheBackendNone:
		cache = services.NoopVerdictCache{}
	default:
		memoryCache := services.NewMemoryVerdictCache(logging.Logger, cfg.CacheCleanupInterval)
		defer memoryCache.Stop()
		cache = memoryCache
	}

	// Services
	hasher := services.NewBcryptHasher(cfg.BcryptCost)
	emailService := services.NewEmailService(
		logging.Logger,
		store,
		hasher,
		services.NewHashScanMatcher(store, hasher),
		cache,
		services.EmailServiceConfig{
			DomainSuffix:    cfg.EmailDomainSuffix,
			CacheTTL:        cfg.CacheTTL,
			RegisterRecheck: cfg.EmailRegisterRecheck,
		},
	)
	authService := services.NewAuthService(cfg.ResearcherPassword, cfg.JWTSecret, cfg.JWTTTL)

	routes := handlers.Set{
		Email:  handlers.NewEmailHandlers(logging.Logger, emailService),
		Survey: handlers.NewSurveyHandlers(logging.Logger, services.NewSurveyService(logging.Logger, store)),
		Admin:  handlers.NewAdminHandlers(logging.Logger, services.NewAdminService(logging.Logger, store, cache)),
		Auth:   handlers.NewAuthHandlers(logging.Logger, authService),
		Health: handlers.NewHealthHandlers(logging.Logger, healthChecks),
	}

	var guards handlers.RouteGuards
	if cfg.RateLimitPerMinute > 0 {
		limiter := services.NewClientRateLimiter(cfg.RateLimitPerMinute, logging.Logger)
		limiterCtx, stopLimiter := context.WithCancel(context.Background())
		defer stopLimiter()
		limiter.StartCleanup(limiterCtx, 10*time.Minute)
		guards.Limiter = limiter
		logging.Logger.Info("per-client rate limiting enabled",
			zap.Int("requests_per_minute", cfg.RateLimitPerMinute))
	}
	if cfg.AdminAuthEnabled {
		guards.Researcher = append(guards.Researcher, middleware.RequireResearcher(authService))
	} else {
		logging.Logger.Warn("researcher authentication is disabled")
	}
	guards.Researcher = append(guards.Researcher, middleware.AuditMiddleware())

	// Set Gin mode
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization", "X-Request-ID")
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	if len(cfg.AllowedOrigins) == 0 || (len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*") {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	}

	// Create router with middleware
	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.RequestTiming(),
		middleware.RequestLogger(),
		middleware.RequestTracker(),
		cors.New(corsConfig),
	)

	// Metrics endpoint
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Routes are served at the root and under /api
	handlers.RegisterRoutes(router, routes, guards)
	handlers.RegisterRoutes(router.Group("/api"), routes, guards)

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Create server with timeouts
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logging.Logger.Info("starting server",
			zap.Int("port", cfg.Port),
			zap.String("environment", cfg.Environment),
			zap.String("store", store.Name()),
			zap.String("cache", cache.Name()),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	// Graceful shutdown
	logging.Logger.Info("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logging.Logger.Error("server forced to shutdown", zap.Error(err))
	}

	logging.Logger.Info("server exited gracefully")
}
