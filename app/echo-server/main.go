package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"

	"adRecoDashboard/app/echo-server/router"
	"adRecoDashboard/business/dashboard"
	"adRecoDashboard/business/loader"
	"adRecoDashboard/business/session"
	"adRecoDashboard/internal/middleware"
	"adRecoDashboard/internal/repository/blob"
	"adRecoDashboard/internal/repository/dataset"
	"adRecoDashboard/internal/repository/memory"
	psqlRepo "adRecoDashboard/internal/repository/postgres"
	redisRepo "adRecoDashboard/internal/repository/redis"
	"adRecoDashboard/internal/rest"
	"adRecoDashboard/internal/scheduler"
	"adRecoDashboard/pkg/config"
	"adRecoDashboard/pkg/database"
	redisdb "adRecoDashboard/pkg/database/redis"
	"adRecoDashboard/pkg/logger"
	"adRecoDashboard/pkg/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting "+cfg.App.Name, "version", cfg.App.Version)

	metrics.Init()

	ctx := context.Background()

	// Init data stores
	dataStore, modelStore, err := newStores(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed to init data stores", "error", err)
	}

	enc, err := dataset.EncodingByName(cfg.Data.MappingEncoding)
	if err != nil {
		logger.Fatal("Invalid mapping encoding", "error", err)
	}
	fileRepo := dataset.NewFileRepository(dataStore, modelStore, enc)

	var mappingSource loader.MappingSource = fileRepo
	if cfg.Data.MappingSource == config.MappingSourcePostgres {
		db, err := database.InitPostgres(cfg)
		if err != nil {
			logger.Fatal("Failed to connect to database", "error", err)
		}
		defer database.ClosePostgres(db)

		logger.Info("Database connected successfully")
		mappingSource = psqlRepo.NewClusterMappingRepository(db)
	}

	dataLoader := loader.NewLoader(mappingSource, fileRepo, fileRepo)

	// Init session store
	var sessionRepo session.Repository
	if cfg.Redis.Enabled() {
		client, err := redisdb.NewRedisClient(cfg)
		if err != nil {
			logger.Fatal("Failed to connect to Redis", "error", err)
		}
		defer redisdb.CloseRedisClient(client)

		logger.Info("Redis connected successfully")
		sessionRepo = redisRepo.NewSessionRepository(client, cfg.Cache.SessionTTL)
	} else {
		logger.Warn("REDIS_HOST not set, sessions are kept in memory")
		sessionRepo = memory.NewSessionRepository(cfg.Cache.SessionTTL)
	}

	// Init service
	dashboardService := dashboard.NewDashboardService(dataLoader)
	sessionService := session.NewSessionService(sessionRepo)

	// Init handler
	dashboardHandler := rest.NewDashboardHandler(dashboardService)
	sessionHandler := rest.NewSessionHandler(sessionService, dashboardHandler)
	cacheAdminHandler := rest.NewCacheAdminHandler(dataLoader)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(middleware.TraceID())
	e.Use(middleware.Metrics())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:  cfg.Server.AllowOrigins,
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut},
		AllowHeaders:  []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		ExposeHeaders: []string{middleware.HeaderTraceID},
	}))

	// Setup routes
	router.SetupOpsRoutes(e)
	api := e.Group("/api/v1")
	router.SetupDashboardRoutes(api, dashboardHandler)
	router.SetupSessionRoutes(api, sessionHandler)
	if cfg.JWT.SecretKey != "" {
		router.SetupCacheAdminRoutes(api, cacheAdminHandler, middleware.AuthMiddleware(cfg.JWT.SecretKey), middleware.AdminOnly())
	} else {
		logger.Warn("JWT_SECRET not set, admin cache routes are disabled")
	}

	if cfg.Cache.WarmOnStart {
		go func() {
			if _, err := dataLoader.Warm(ctx); err != nil {
				logger.Error("Initial cache warm-up failed", "error", err)
			}
		}()
	}

	var refresher *scheduler.CacheRefresher
	if cfg.Cache.RefreshSchedule != "" {
		refresher, err = scheduler.NewCacheRefresher(cfg.Cache.RefreshSchedule, dataLoader)
		if err != nil {
			logger.Fatal("Invalid cache refresh schedule", "error", err)
		}
		refresher.Start()
	}

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	if refresher != nil {
		refresher.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown server
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Server stopped")
}

// newStores returns the stores holding data files and model documents.
func newStores(ctx context.Context, cfg *config.Config) (blob.Store, blob.Store, error) {
	if cfg.Data.Source == config.DataSourceS3 {
		data, err := blob.NewS3Store(ctx, cfg.Data.S3Bucket, cfg.Data.S3Region, cfg.Data.S3DataPrefix)
		if err != nil {
			return nil, nil, err
		}
		models, err := blob.NewS3Store(ctx, cfg.Data.S3Bucket, cfg.Data.S3Region, cfg.Data.S3ModelPrefix)
		if err != nil {
			return nil, nil, err
		}
		return data, models, nil
	}

	return blob.NewLocalStore(cfg.Data.DataDir), blob.NewLocalStore(cfg.Data.ModelDir), nil
}
