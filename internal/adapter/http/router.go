package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/iho/fxtransfer/internal/adapter/http/handler"
	"github.com/iho/fxtransfer/internal/adapter/http/middleware"
	"github.com/iho/fxtransfer/internal/infrastructure/metrics"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	AccountHandler  *handler.AccountHandler
	TransferHandler *handler.TransferHandler
	FxRateHandler   *handler.FxRateHandler
	FeeHandler      *handler.FeeHandler
	HealthHandler   *handler.HealthHandler
	Logger          zerolog.Logger
	Metrics         *metrics.Metrics
	MetricsHandler  http.Handler
	RateLimiter     *middleware.RateLimiter
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewRecoveryMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	if cfg.Metrics != nil {
		r.Use(middleware.NewMetricsMiddleware(cfg.Metrics).Wrap)
	}
	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Health endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)

	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Accounts
		r.Route("/accounts", func(r chi.Router) {
			r.Post("/", cfg.AccountHandler.Create)
			r.Get("/", cfg.AccountHandler.List)
			r.Get("/{id}", cfg.AccountHandler.Get)
			r.Get("/{id}/transfers", cfg.TransferHandler.ListByAccount)
		})

		// Transfers
		r.Route("/transfers", func(r chi.Router) {
			r.Post("/", cfg.TransferHandler.Create)
			r.Get("/{id}", cfg.TransferHandler.Get)
		})

		// Pricing configuration
		r.Route("/fx-rates", func(r chi.Router) {
			r.Get("/", cfg.FxRateHandler.List)
			r.Put("/", cfg.FxRateHandler.Set)
		})

		r.Route("/fees", func(r chi.Router) {
			r.Get("/", cfg.FeeHandler.Get)
			r.Put("/", cfg.FeeHandler.Set)
		})
	})

	return r
}
