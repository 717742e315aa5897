package router

import (
	"encoding/json"
	"net/http"

	"github.com/adar-commits/quotes/internal/config"
	"github.com/adar-commits/quotes/internal/database"
	"github.com/adar-commits/quotes/internal/http/handler"
	"github.com/adar-commits/quotes/internal/http/middleware"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Router struct {
	cfg             *config.Config
	logger          *zap.Logger
	db              *gorm.DB
	rateLimiter     *middleware.RateLimiter
	quoteHandler    *handler.QuoteHandler
	templateHandler *handler.TemplateHandler
}

func NewRouter(
	cfg *config.Config,
	logger *zap.Logger,
	db *gorm.DB,
	rateLimiter *middleware.RateLimiter,
	quoteHandler *handler.QuoteHandler,
	templateHandler *handler.TemplateHandler,
) *Router {
	return &Router{
		cfg:             cfg,
		logger:          logger,
		db:              db,
		rateLimiter:     rateLimiter,
		quoteHandler:    quoteHandler,
		templateHandler: templateHandler,
	}
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(rt.logger))
	r.Use(middleware.Logging(rt.logger))
	r.Use(middleware.SecurityHeaders(&rt.cfg.Security))
	r.Use(middleware.CORS(&rt.cfg.CORS, rt.cfg.App.Environment, rt.logger))
	r.Use(rt.rateLimiter.LimitByIP)

	// Health check (basic liveness probe)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Database health check (readiness probe with detailed stats)
	r.Get("/health/db", func(w http.ResponseWriter, r *http.Request) {
		stats, err := database.HealthCheckWithStats(rt.db)
		if err != nil {
			rt.logger.Error("Database health check failed", zap.Error(err))
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status":  "unhealthy",
				"error":   err.Error(),
				"service": "database",
			})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  "healthy",
			"service": "database",
			"stats": map[string]interface{}{
				"max_open_connections": stats.MaxOpenConnections,
				"open_connections":     stats.OpenConnections,
				"in_use":               stats.InUse,
				"idle":                 stats.Idle,
				"wait_count":           stats.WaitCount,
				"wait_duration_ms":     stats.WaitDuration.Milliseconds(),
				"max_idle_closed":      stats.MaxIdleClosed,
				"max_lifetime_closed":  stats.MaxLifetimeClosed,
			},
		})
	})

	// Combined readiness check (checks all dependencies)
	r.Get("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		checks := make(map[string]interface{})
		allHealthy := true

		// Check database
		if err := database.HealthCheck(rt.db); err != nil {
			rt.logger.Error("Database health check failed", zap.Error(err))
			checks["database"] = map[string]interface{}{
				"status": "unhealthy",
				"error":  err.Error(),
			}
			allHealthy = false
		} else {
			checks["database"] = map[string]interface{}{
				"status": "healthy",
			}
		}

		w.Header().Set("Content-Type", "application/json")
		if allHealthy {
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status": "healthy",
				"checks": checks,
			})
		} else {
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status": "unhealthy",
				"checks": checks,
			})
		}
	})

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Quote ingest and presentation (called by the order system and
		// the public quote page)
		r.Route("/quotes", func(r chi.Router) {
			r.Post("/", rt.quoteHandler.Upsert)
			r.Get("/{publicId}", rt.quoteHandler.GetDocument)
			r.Patch("/{publicId}/approval", rt.quoteHandler.SetApproval)
			r.Post("/{publicId}/sign", rt.quoteHandler.Sign)
		})

		// Admin settings, gated by API key
		r.Route("/settings", func(r chi.Router) {
			r.Use(middleware.RequireAPIKey(rt.cfg.ApiKey.Value, rt.logger))

			r.Route("/templates", func(r chi.Router) {
				r.Get("/", rt.templateHandler.List)
				r.Post("/", rt.templateHandler.Create)
				r.Patch("/{id}", rt.templateHandler.Update)
			})
		})
	})

	return r
}
