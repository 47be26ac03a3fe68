package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	debtapp "github.com/liquiplan/backend/internal/application/debt"
	financeapp "github.com/liquiplan/backend/internal/application/finance"
	planningapp "github.com/liquiplan/backend/internal/application/planning"
	"github.com/liquiplan/backend/internal/infrastructure/cache"
	"github.com/liquiplan/backend/internal/infrastructure/config"
	"github.com/liquiplan/backend/internal/infrastructure/logger"
	"github.com/liquiplan/backend/internal/infrastructure/persistence"
	"github.com/liquiplan/backend/internal/infrastructure/scheduler"
	"github.com/liquiplan/backend/internal/infrastructure/telemetry"
	"github.com/liquiplan/backend/internal/interfaces/http/handler"
	"github.com/liquiplan/backend/internal/interfaces/http/middleware"
	"github.com/liquiplan/backend/internal/interfaces/http/router"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting liquidity planner backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Telemetry
	ctx := context.Background()
	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize telemetry", zap.Error(err))
	}
	defer func() {
		if err := tracerProvider.Shutdown(context.Background()); err != nil {
			log.Warn("Telemetry shutdown failed", zap.Error(err))
		}
	}()

	// Database
	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Warn("Database close failed", zap.Error(err))
		}
	}()

	// Projection cache
	cacheFactory := cache.NewProjectionCacheFactory(
		cfg.Redis,
		cfg.Planning.ProjectionCacheTTL,
		cache.WithLogger(log),
		cache.WithInMemoryFallback(true),
	)
	var projectionCache financeapp.ProjectionCache
	if cfg.Redis.Enabled {
		projectionCache, err = cacheFactory.CreateCache()
		if err != nil {
			log.Fatal("Failed to create projection cache", zap.Error(err))
		}
	} else {
		projectionCache = cacheFactory.CreateInMemoryCache()
		log.Info("Redis disabled, using in-memory projection cache")
	}

	// Repositories
	contractRepo := persistence.NewGormContractRepository(db.DB)
	entryRepo := persistence.NewGormEntryRepository(db.DB)
	planRepo := persistence.NewGormPlanRepository(db.DB)
	installmentRepo := persistence.NewGormInstallmentRepository(db.DB)
	transactionRepo := persistence.NewGormTransactionRepository(db.DB)
	splitRepo := persistence.NewGormSplitRepository(db.DB)
	settingRepo := persistence.NewGormSettingRepository(db.DB)
	planningScope := persistence.NewGormPlanningTransactionScope(db.DB)
	debtScope := persistence.NewGormDebtTransactionScope(db.DB)

	// Application services
	contractService := planningapp.NewContractService(contractRepo, entryRepo, planningScope, projectionCache, cfg.Planning.HorizonYears, log)
	forecastService := planningapp.NewForecastService(entryRepo, planRepo, planningScope, projectionCache, log)
	planService := debtapp.NewPlanService(planRepo, installmentRepo, debtScope, log)
	splitService := financeapp.NewSplitService(transactionRepo, splitRepo, projectionCache, log)
	liquidityService := financeapp.NewLiquidityService(transactionRepo, entryRepo, settingRepo, projectionCache, log)

	// Horizon-roll scheduler
	horizonScheduler := scheduler.NewHorizonScheduler(contractService, cfg.Scheduler, log)
	if err := horizonScheduler.Start(); err != nil {
		log.Fatal("Failed to start horizon scheduler", zap.Error(err))
	}
	defer horizonScheduler.Stop()

	// HTTP engine
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	middleware.SetupValidator()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	if cfg.Telemetry.Enabled {
		engine.Use(otelgin.Middleware(cfg.Telemetry.ServiceName))
	}

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	engine.Use(middleware.CORSWithConfig(corsConfig))

	engine.GET("/health", healthHandler(db))

	// Routes
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(handler.NewContractHandler(contractService))
	r.Register(handler.NewForecastHandler(forecastService))
	r.Register(handler.NewPlanHandler(planService))
	r.Register(handler.NewFinanceHandler(splitService, liquidityService))
	r.Register(handler.NewSettingsHandler(settingRepo))
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// healthHandler returns a handler for health check endpoints
func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
