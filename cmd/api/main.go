// Package main provides the entrypoint for the ZoneGuard API server.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/zoneguard/zoneguard/internal/accident"
	"github.com/zoneguard/zoneguard/internal/alert"
	"github.com/zoneguard/zoneguard/internal/ambulance"
	"github.com/zoneguard/zoneguard/internal/api"
	"github.com/zoneguard/zoneguard/internal/api/handler"
	"github.com/zoneguard/zoneguard/internal/api/middleware"
	"github.com/zoneguard/zoneguard/internal/dashboard"
	"github.com/zoneguard/zoneguard/internal/database"
	"github.com/zoneguard/zoneguard/internal/hospital"
	"github.com/zoneguard/zoneguard/internal/prediction"
	"github.com/zoneguard/zoneguard/internal/resilience"
	"github.com/zoneguard/zoneguard/internal/telemetry"
	"github.com/zoneguard/zoneguard/internal/timectx"
	"github.com/zoneguard/zoneguard/internal/weather"
	"github.com/zoneguard/zoneguard/internal/weather/openmeteo"
	"github.com/zoneguard/zoneguard/internal/zone"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

// defaultZoneCoordinates places each operational zone's centroid for
// forecast queries. Override per deployment once zone geometry is known.
var defaultZoneCoordinates = map[zone.ID]openmeteo.Coordinates{
	zone.North:   {Lat: 13.0359, Lon: 77.5970},
	zone.South:   {Lat: 12.9121, Lon: 77.6005},
	zone.East:    {Lat: 12.9784, Lon: 77.6841},
	zone.West:    {Lat: 12.9719, Lon: 77.5128},
	zone.Central: {Lat: 12.9716, Lon: 77.5946},
}

func main() {
	const serviceName = "zoneguard-api"

	// Setup structured logging
	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	log.Info().
		Str("build_time", BuildTime).
		Msg("starting ZoneGuard API")

	// Get configuration from environment
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	otlpEndpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	if otlpEndpoint == "" {
		otlpEndpoint = "localhost:4317"
	}

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}

	// Initialize OpenTelemetry
	ctx := context.Background()
	telemetryEnabled := os.Getenv("OTEL_ENABLED") == "true"

	tp, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    serviceName,
		ServiceVersion: Version,
		Environment:    env,
		OTLPEndpoint:   otlpEndpoint,
		Enabled:        telemetryEnabled,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize telemetry")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tp.Shutdown(shutdownCtx); shutdownErr != nil {
			log.Error().Err(shutdownErr).Msg("failed to shutdown telemetry")
		}
	}()

	if telemetryEnabled {
		log.Info().
			Str("otlp_endpoint", otlpEndpoint).
			Msg("OpenTelemetry initialized")
	}

	// Initialize metrics
	metrics, err := middleware.NewMetrics()
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize metrics")
		os.Exit(1) //nolint:gocritic // intentional exit, telemetry cleanup is best-effort
	}

	// Connect to database
	dbConfig := database.ConfigFromEnv()
	pool, err := database.Connect(ctx, dbConfig)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	log.Info().
		Str("host", dbConfig.Host).
		Int("port", dbConfig.Port).
		Str("database", dbConfig.Database).
		Msg("database connected")

	// Initialize repositories
	hospitalRepo := hospital.NewPostgresRepository(pool)
	ambulanceRepo := ambulance.NewPostgresRepository(pool)
	accidentRepo := accident.NewPostgresRepository(pool)
	weatherRepo := weather.NewPostgresRepository(pool)

	// Initialize weather service, with the live provider when enabled.
	var weatherProvider weather.Provider
	var weatherMetrics weather.MetricsRecorder
	var providers []handler.BreakerStater
	if os.Getenv("OPENMETEO_ENABLED") == "true" {
		weatherHTTP := resilience.NewClient(resilience.ClientConfig{
			Name:    openmeteo.ProviderName,
			Timeout: 10 * time.Second,
		})
		weatherProvider = openmeteo.NewClient(openmeteo.ClientConfig{
			BaseURL:         os.Getenv("OPENMETEO_BASE_URL"),
			ZoneCoordinates: defaultZoneCoordinates,
			HTTPClient:      weatherHTTP,
			Logger:          log,
		})
		providers = append(providers, weatherHTTP)

		providerMetrics, err := middleware.NewProviderMetrics(openmeteo.ProviderName)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize provider metrics")
		}
		weatherMetrics = providerMetrics

		log.Info().Msg("Open-Meteo weather provider initialized")
	} else {
		log.Warn().Msg("live weather provider disabled - using stored snapshots and seasonal fallback")
	}

	weatherService := weather.NewService(weather.ServiceConfig{
		Repository: weatherRepo,
		Provider:   weatherProvider,
		Metrics:    weatherMetrics,
		Logger:     log,
	})

	// Holiday and festival calendars come from the environment as
	// comma-separated YYYY-MM-DD dates.
	calendar := timectx.Calendar{
		Holidays:  daySetFromEnv("HOLIDAY_DATES"),
		Festivals: daySetFromEnv("FESTIVAL_DATES"),
	}

	// Initialize prediction service
	calculator := prediction.NewCalculator(prediction.CalculatorConfig{
		Ambulance: ambulanceRepo,
		Accidents: accidentRepo,
		Weather:   weatherService,
		Calendar:  calendar,
		Logger:    log,
	})
	predictionService := prediction.NewService(prediction.ServiceConfig{
		Calculator: calculator,
		Logger:     log,
	})
	log.Info().Msg("prediction service initialized")

	// Initialize alert service
	alertService := alert.NewService(alert.ServiceConfig{
		Ambulance: ambulanceRepo,
		Accidents: accidentRepo,
		Weather:   weatherService,
		Calendar:  calendar,
		Logger:    log,
	})
	log.Info().Msg("alert service initialized")

	// Initialize dashboard service
	dashboardService := dashboard.NewService(dashboard.ServiceConfig{
		Predictions: predictionService,
		Alerts:      alertService,
		Hospitals:   hospitalRepo,
		Ambulance:   ambulanceRepo,
		Accidents:   accidentRepo,
		Logger:      log,
	})
	log.Info().Msg("dashboard service initialized")

	// Create router with configuration
	router := api.NewRouter(api.RouterConfig{
		Version:           Version,
		BuildTime:         BuildTime,
		Logger:            log,
		ServiceName:       serviceName,
		Metrics:           metrics,
		PredictionService: predictionService,
		AlertService:      alertService,
		DashboardService:  dashboardService,
		DB:                pool,
		Providers:         providers,
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("addr", server.Addr).
			Msg("server listening")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		os.Exit(1)
	}

	log.Info().Msg("server stopped")
}

// daySetFromEnv parses a comma-separated list of YYYY-MM-DD dates from the
// named environment variable. Blank entries are skipped.
func daySetFromEnv(name string) map[string]bool {
	raw := os.Getenv(name)
	if raw == "" {
		return nil
	}

	days := make(map[string]bool)
	for _, d := range strings.Split(raw, ",") {
		d = strings.TrimSpace(d)
		if d != "" {
			days[d] = true
		}
	}
	return days
}
