package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/thongular/booking/internal/adapters/cache"
	"github.com/thongular/booking/internal/adapters/database"
	"github.com/thongular/booking/internal/adapters/providers/calendar"
	"github.com/thongular/booking/internal/api/handlers"
	"github.com/thongular/booking/internal/api/routes"
	"github.com/thongular/booking/internal/application/services"
	"github.com/thongular/booking/internal/domain/repositories"
	"github.com/thongular/booking/internal/infrastructure/clients/postgres"
	"github.com/thongular/booking/internal/infrastructure/clients/redis"
	"github.com/thongular/booking/internal/infrastructure/observability"
	"github.com/thongular/booking/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Environment)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(ctx, cfg.OTEL.ServiceName, cfg.OTEL.ServiceVersion, cfg.OTEL.Endpoint)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to set up OpenTelemetry")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Error().Err(err).Msg("Error shutting down OpenTelemetry")
				}
			}()
			log.Info().Str("endpoint", cfg.OTEL.Endpoint).Msg("OpenTelemetry initialized")
		}
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize metrics")
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize PostgreSQL client")
	}
	defer pgClient.Close()
	pgClient.SetMetrics(metrics)

	var availabilityRepo repositories.AvailabilityRepository = database.NewAvailabilityAdapter(pgClient)
	eventTypeRepo := database.NewEventTypeAdapter(pgClient)

	// Redis is optional; without it schedules are read from PostgreSQL every time
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Msg("Redis unavailable, schedule cache disabled")
	} else {
		defer redisClient.Close()
		availabilityRepo = database.NewCachedAvailabilityAdapter(
			availabilityRepo,
			cache.NewRedisAdapter(redisClient, metrics),
			cfg.Booking.WindowCacheTTL,
		)
		log.Info().Str("addr", cfg.Redis.RedisAddr()).Msg("Schedule cache enabled")
	}

	calendarProvider := calendar.NewCalendarProvider(cfg.Calendar)

	availabilityService := services.NewAvailabilityService(
		availabilityRepo,
		eventTypeRepo,
		calendarProvider,
		cfg.Booking,
		metrics,
	)
	eventTypeService := services.NewEventTypeService(eventTypeRepo)

	router := routes.NewRouter(
		handlers.NewAvailabilityHandler(availabilityService),
		handlers.NewEventTypeHandler(eventTypeService),
		cfg.Server.AllowedOrigins,
		metrics,
	)

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router.SetupRoutes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", serverAddr).Msg("Server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Server shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error during server shutdown")
	}

	log.Info().Msg("Server stopped")
}
