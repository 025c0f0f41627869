package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/tair/user-service/docs"
	httpDelivery "github.com/tair/user-service/internal/user/delivery/http"
	"github.com/tair/user-service/internal/user/domain"
	"github.com/tair/user-service/internal/user/repository"
	"github.com/tair/user-service/pkg/config"
	"github.com/tair/user-service/pkg/database"
	"github.com/tair/user-service/pkg/logger"
	"github.com/tair/user-service/pkg/tracing"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Init("user-service", true)
		logger.Logger.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logger.Init("user-service", cfg.IsDevelopment())
	logger.SetLevel(cfg.LogLevel)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("user-service", cfg.Tracing.JaegerEndpoint)
		if err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to initialize tracer")
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tracing.Shutdown(ctx, tp); err != nil {
				logger.Logger.Error().Err(err).Msg("Failed to shut down tracer")
			}
		}()
	}

	db, err := database.NewGormConnection(cfg.Database.DSN())
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to connect to database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to get database instance")
	}
	defer sqlDB.Close()

	gormRepo := repository.NewGormUserRepository(db)
	if err := gormRepo.AutoMigrate(); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to run migrations")
	}

	var repo domain.UserRepository = gormRepo
	if cfg.Tracing.Enabled {
		repo = repository.NewTracingUserRepository(gormRepo)
	}

	handler := httpDelivery.NewUserHandler(repo, prometheus.DefaultRegisterer)

	router := mux.NewRouter()
	middlewareConfig := httpDelivery.DefaultMiddlewareConfig()
	middlewareConfig.EnableTracing = cfg.Tracing.Enabled
	httpDelivery.RegisterMiddlewares(router, middlewareConfig)

	handler.RegisterRoutes(router)
	handler.RegisterHealthCheck(router, sqlDB)
	httpDelivery.RegisterSwaggerDocs(router, httpSwagger.Handler())
	router.Handle("/metrics", promhttp.Handler())

	corsHandler := httpDelivery.SetupCORS(middlewareConfig)

	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: corsHandler(router),
	}

	go func() {
		logger.Logger.Info().Str("port", cfg.HTTPPort).Msg("HTTP server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal().Err(err).Msg("Failed to start HTTP server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Logger.Error().Err(err).Msg("Server shutdown failed")
	}
}
