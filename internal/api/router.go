package api

import (
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/eldtechnologies/ticketbot/internal/api/middleware"
	"github.com/eldtechnologies/ticketbot/internal/handlers"
)

// RouterConfig carries the optional pieces of the router.
type RouterConfig struct {
	RedisClient        *redis.Client // enables rate limiting when set
	RateLimitWhitelist []string
}

// NewRouter creates and configures the HTTP router.
func NewRouter(logger zerolog.Logger, h *handlers.Handler, cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	// Metrics middleware (first to capture all requests)
	r.Use(middleware.Metrics)

	// Security middleware (order matters!)
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.MaxBodySize(8 * 1024)) // 8KB max body
	r.Use(middleware.ValidateRequest)

	// Standard middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(chimw.Recoverer)

	// Rate limiting
	limiter := middleware.NewRateLimiter(cfg.RedisClient, logger, middleware.RateLimiterConfig{
		Whitelist: cfg.RateLimitWhitelist,
	})
	r.Use(limiter.Middleware)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Ticketbot-Channel"},
		ExposedHeaders:   []string{"X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset", "Retry-After"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Metrics endpoint (for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	r.Get("/", h.Root)
	r.Get("/health", h.Health)
	r.Get("/stats", h.Stats)

	// Chat transport
	r.Post("/dispatch", h.Dispatch)

	// Pattern administration
	r.Route("/patterns", func(r chi.Router) {
		r.Get("/", h.ListPatterns)
		r.Post("/", h.AddPattern)
		r.Delete("/{prefix}", h.RemovePattern)
	})

	return r
}
