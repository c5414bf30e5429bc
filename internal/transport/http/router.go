package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"tunnelcli/internal/config"
	apierrors "tunnelcli/internal/errors"
	"tunnelcli/internal/infrastructure"
	"tunnelcli/internal/middleware"
	"tunnelcli/internal/services"
)

// RouterDeps are the collaborators of the HTTP API
type RouterDeps struct {
	Server    config.ServerConfig
	Reduction ReductionServiceInterface
	Health    *services.HealthService
	Metrics   *infrastructure.ReductionMetrics

	// PrometheusHTTP serves /metrics when set
	PrometheusHTTP http.Handler
	Logger         *slog.Logger
}

// NewRouter builds the API router.
// Middleware order: RequestID → Telemetry → Logger → Recoverer → SecurityHeaders → RateLimit
func NewRouter(deps RouterDeps) *chi.Mux {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	errorHandler := apierrors.NewErrorHandler(logger, false)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Telemetry(deps.Metrics))
	r.Use(middleware.StructuredLogger(logger))
	r.Use(middleware.Recoverer(errorHandler))
	r.Use(middleware.SecurityHeaders)
	if rl := deps.Server.RateLimit; rl.Enabled {
		limiter := middleware.NewRateLimiter(rl.RPS, rl.Burst, errorHandler, logger)
		logger.Debug("rate limiting enabled", slog.String("limit", limiter.String()))
		r.Use(limiter.Handler)
	}

	r.NotFound(errorHandler.NotFound)
	r.MethodNotAllowed(errorHandler.MethodNotAllowed)

	if deps.PrometheusHTTP != nil {
		r.Handle("/metrics", deps.PrometheusHTTP)
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))
		if deps.Server.ReadTimeout > 0 {
			r.Use(middleware.Timeout(deps.Server.ReadTimeout))
		}

		if deps.Health != nil {
			NewHealthHandler(deps.Health, logger).RegisterRoutes(r)
		}

		reduceHandler := NewReduceHandler(deps.Reduction, errorHandler, logger)
		r.With(middleware.MaxBodySize(deps.Server.MaxUploadBytes)).Mount("/v1", reduceHandler.Routes())
	})

	return r
}
