package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"rideshare/internal/app"
	"rideshare/internal/broker"
	"rideshare/internal/config"
	"rideshare/internal/handler"
	"rideshare/internal/logger"
	"rideshare/internal/maps"
	"rideshare/internal/middleware"
	internalRedis "rideshare/internal/redis"
	"rideshare/internal/repository/postgres"
	"rideshare/internal/service"
)

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.Logger.ServiceName, cfg.Logger.Level)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", logger.Error(err))
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize New Relic FIRST (before database so we can instrument DB).
	var nrApp *newrelic.Application
	if cfg.NewRelic.Enabled && cfg.NewRelic.LicenseKey != "" {
		nrApp, err = newrelic.NewApplication(
			newrelic.ConfigAppName(cfg.NewRelic.AppName),
			newrelic.ConfigLicense(cfg.NewRelic.LicenseKey),
			newrelic.ConfigDistributedTracerEnabled(true),
			newrelic.ConfigAppLogForwardingEnabled(true),
		)
		if err != nil {
			log.Warning("failed to initialize New Relic", logger.Error(err))
		} else {
			log.Info("New Relic enabled", logger.String("app", cfg.NewRelic.AppName))
		}
	}

	if err := app.RunMigrations(cfg.Migrations, cfg.Database, log); err != nil {
		log.Error("failed to run migrations", logger.Error(err))
		os.Exit(1)
	}

	db, err := app.NewDatabase(ctx, cfg.Database, nrApp)
	if err != nil {
		log.Error("failed to connect to database", logger.Error(err))
		os.Exit(1)
	}
	defer db.Close()
	log.Info("connected to PostgreSQL")

	redisClient, err := app.NewRedisClient(ctx, cfg.Redis, nrApp)
	if err != nil {
		log.Error("failed to connect to redis", logger.Error(err))
		os.Exit(1)
	}
	defer redisClient.Close()
	log.Info("connected to Redis")

	router, err := maps.NewRouteService(cfg.Maps.APIKey, cfg.Maps.Region, cfg.Maps.Language)
	if err != nil {
		log.Error("failed to create routing client", logger.Error(err))
		os.Exit(1)
	}

	// The broker is optional: without it notifications are only logged.
	var publisher service.EventPublisher
	if cfg.Broker.URL != "" {
		mq, err := broker.New(cfg.Broker.URL, log)
		if err != nil {
			log.Warning("rabbitmq unavailable, events will only be logged", logger.Error(err))
		} else {
			defer mq.Close()
			publisher = mq
			log.Info("connected to RabbitMQ", logger.String("exchange", cfg.Broker.Exchange))
		}
	}

	server := wireServer(db, redisClient, router, publisher, nrApp, log, cfg)

	go func() {
		log.Info("starting server", logger.String("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", logger.Error(err))
			os.Exit(1)
		}
	}()

	// Graceful shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", logger.Error(err))
	}

	if nrApp != nil {
		nrApp.Shutdown(5 * time.Second)
	}

	log.Info("server exited")
}

// wireServer wires all dependencies and returns the HTTP server.
func wireServer(
	db *sql.DB,
	redisClient *redis.Client,
	router service.Router,
	publisher service.EventPublisher,
	nrApp *newrelic.Application,
	log logger.Logger,
	cfg *config.Config,
) *http.Server {
	cacheStore := internalRedis.NewCacheStore(redisClient)

	driverRepo := postgres.NewDriverRepository(db)
	rideRepo := postgres.NewRideRepository(db)

	notificationService := service.NewNotificationService(log.With(logger.String("component", "notification")), publisher, cfg.Broker.Exchange)
	fareService := service.NewFareService(router, cacheStore, cfg.Maps.Timeout, log.With(logger.String("component", "fare")))
	driverService := service.NewDriverService(driverRepo, cacheStore, log.With(logger.String("component", "driver")))
	verificationService := service.NewVerificationService(driverRepo, cacheStore, notificationService, log.With(logger.String("component", "verification")))
	rideService := service.NewRideService(rideRepo, driverRepo, fareService, notificationService, log.With(logger.String("component", "ride")))

	httpRouter := app.NewRouter(app.RouterDeps{
		FareHandler:      handler.NewFareHandler(fareService),
		DriverHandler:    handler.NewDriverHandler(driverService),
		AdminHandler:     handler.NewAdminHandler(verificationService),
		RideHandler:      handler.NewRideHandler(rideService),
		IdempotencyStore: middleware.NewRedisResponseStore(redisClient),
		JWTSecret:        []byte(cfg.Auth.JWTSecret),
		AllowOrigins:     cfg.Server.AllowOrigins,
		NewRelicApp:      nrApp,
		Logger:           log,
	})

	return &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      httpRouter,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
}
