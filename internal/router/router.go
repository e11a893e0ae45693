package router

import (
	"time"

	"github.com/gofiber/fiber/v3"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/mathieu-neron/tubegate/internal/handler"
	"github.com/mathieu-neron/tubegate/internal/metrics"
	"github.com/mathieu-neron/tubegate/internal/middleware"
)

// Handlers holds all handler instances needed by the router.
type Handlers struct {
	Search   *handler.SearchHandler
	Download *handler.DownloadHandler
	Health   *handler.HealthHandler
}

// Deps carries the configuration and shared components of the ingress chain.
type Deps struct {
	APIKey          string
	CORSOrigins     string
	RateLimitMax    int
	RateLimitWindow time.Duration
	RateLimitStore  middleware.RateLimitStore
	Metrics         *metrics.Metrics
}

// Setup configures the middleware stack and all routes on the given Fiber app.
func Setup(app *fiber.App, h *Handlers, d Deps) {
	// Middleware stack (order matters)
	app.Use(recoverer.New())
	app.Use(middleware.NewRequestID())
	app.Use(middleware.NewRequestLogger())
	if d.Metrics != nil {
		app.Use(d.Metrics.Middleware())
	}
	app.Use(middleware.NewSecurityHeaders())
	app.Use(middleware.NewCORS(d.CORSOrigins))

	// Probes and metrics sit before the rate limiter and the key check
	app.Get("/health/live", h.Health.Live)
	app.Get("/health/ready", h.Health.Ready)
	if d.Metrics != nil {
		app.Get("/metrics", d.Metrics.Handler())
	}

	limiter := middleware.NewRateLimiter(middleware.RateLimitConfig{
		Max:       d.RateLimitMax,
		Window:    d.RateLimitWindow,
		KeyFn:     middleware.KeyByIP,
		Store:     d.RateLimitStore,
		OnLimited: d.Metrics.IncRateLimited,
	})
	app.Use(limiter.Handler())
	app.Use(middleware.NewAPIKeyAuth(d.APIKey, d.Metrics.IncAuthRejected))

	app.Get("/search", h.Search.Search)
	app.Get("/download", h.Download.Resolve)
}
