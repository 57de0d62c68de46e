// Package api provides the HTTP API for ZoneGuard.
package api

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/zoneguard/zoneguard/internal/alert"
	"github.com/zoneguard/zoneguard/internal/api/handler"
	"github.com/zoneguard/zoneguard/internal/api/middleware"
	"github.com/zoneguard/zoneguard/internal/dashboard"
	"github.com/zoneguard/zoneguard/internal/prediction"
)

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	Version           string
	BuildTime         string
	Logger            zerolog.Logger
	ServiceName       string
	Metrics           *middleware.Metrics
	PredictionService *prediction.Service
	AlertService      *alert.Service
	DashboardService  *dashboard.Service
	DB                handler.Pinger
	Providers         []handler.BreakerStater
}

// NewRouter creates a new chi router with all API routes configured.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	// Set default service name if not provided
	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "zoneguard-api"
	}

	// Global middleware - order matters
	r.Use(middleware.RequestID)            // Generate/propagate request ID first
	r.Use(middleware.Tracing(serviceName)) // Distributed tracing
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware()) // HTTP metrics
	}
	r.Use(middleware.Logger(cfg.Logger))   // Structured logging
	r.Use(middleware.Recovery(cfg.Logger)) // Panic recovery
	r.Use(chimiddleware.RealIP)            // Real IP extraction
	r.Use(middleware.SecurityHeaders)      // Security headers (HSTS, CSP, etc.)
	r.Use(middleware.RequireTLS)           // TLS enforcement (enabled via REQUIRE_TLS=true)
	r.Use(middleware.ContentTypeJSON)      // JSON content type

	// Initialize handlers
	opsHandler := handler.NewOpsHandler(cfg.Version, cfg.BuildTime, cfg.DB, cfg.Providers...)
	predictionHandler := handler.NewPredictionHandler(cfg.PredictionService)
	alertHandler := handler.NewAlertHandler(cfg.AlertService)
	dashboardHandler := handler.NewDashboardHandler(cfg.DashboardService)

	// Create rate limit middleware for different endpoint categories
	expensiveRateLimit := middleware.RateLimitByIP(middleware.ExpensiveRateLimit) // 30 req/min
	standardRateLimit := middleware.RateLimitByIP(middleware.StandardRateLimit)   // 100 req/min

	// API v1 routes
	r.Route("/v1", func(r chi.Router) {
		// Ops endpoints (public)
		r.Route("/ops", func(r chi.Router) {
			r.Get("/health", opsHandler.HealthCheck)
			r.Get("/ready", opsHandler.ReadinessCheck)
			r.Get("/status", opsHandler.SystemStatus)
		})

		// Predictions recompute every zone on each call - strict rate limiting
		r.Route("/predictions", func(r chi.Router) {
			r.Use(expensiveRateLimit)
			r.Get("/", predictionHandler.ListPredictions)
			r.Get("/{zone}", predictionHandler.GetZonePrediction)
		})

		// Alerts - standard rate limiting
		r.Route("/alerts", func(r chi.Router) {
			r.Use(standardRateLimit)
			r.Get("/", alertHandler.ListAlerts)
			r.Get("/types", alertHandler.ListAlertTypes)
			r.Post("/{alertId}/acknowledge", alertHandler.AcknowledgeAlert)
		})

		// Dashboard pulls predictions and alerts together - strict rate limiting
		r.With(expensiveRateLimit).Get("/dashboard", dashboardHandler.GetDashboard)
	})

	return r
}
