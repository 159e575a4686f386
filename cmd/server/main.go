// file: cmd/server/main.go
package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"vidtube/internal/cache"
	"vidtube/internal/config"
	"vidtube/internal/database"
	"vidtube/internal/events"
	"vidtube/internal/middleware"
	"vidtube/internal/monitoring"
	"vidtube/internal/repositories"
	"vidtube/internal/response"
	"vidtube/internal/router"
	"vidtube/internal/services"
	"vidtube/internal/utils"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger, err := initLogger(cfg.Server.Environment)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	logger.Info("Starting vidtube",
		zap.String("environment", cfg.Server.Environment),
		zap.String("port", cfg.Server.Port),
	)

	// Database
	db, err := database.NewManager(&cfg.Database, logger)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	if err := db.Migrate(cfg.Database.MigrationsPath); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}
	logger.Info("Database ready")

	// Cache: redis when reachable, in-process fallback otherwise
	var cacheStore cache.Cache
	if redisCache, err := cache.NewRedisCache(&cfg.Redis, logger); err != nil {
		logger.Warn("Redis unavailable, using in-memory cache", zap.Error(err))
		cacheStore = cache.NewMemoryCache()
	} else {
		cacheStore = redisCache
	}
	defer cacheStore.Close()

	// Media storage
	storage, err := utils.NewCloudinaryService(cfg.Cloudinary, logger)
	if err != nil {
		logger.Fatal("Failed to initialize media storage", zap.Error(err))
	}

	// Domain events: log every event; more handlers can hang off the bus
	bus := events.NewBus(logger)
	for _, eventType := range []string{
		events.TypeVideoPublished,
		events.TypeVideoDeleted,
		events.TypeLikeToggled,
		events.TypeSubscriptionToggle,
	} {
		bus.Subscribe(eventType, events.LogHandler(logger))
	}

	// Wiring
	repos := repositories.NewCollection(db, logger)
	svc := services.NewCollection(repos, cacheStore, storage, bus, cfg, logger)
	builder := response.NewBuilder(logger)
	auth := middleware.NewAuthMiddleware(cfg.Auth.JWTSecret, logger)
	dashboard := monitoring.NewDashboard(db, cacheStore, cfg.Server.Environment, logger)
	handler := router.SetupRouter(svc, db, dashboard, auth, builder, cfg, logger)

	server := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info("HTTP server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Forced shutdown", zap.Error(err))
	}
	logger.Info("Server stopped")
}

func initLogger(environment string) (*zap.Logger, error) {
	if environment == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
