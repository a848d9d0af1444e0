// Package http exposes the storefront and admin APIs over HTTP.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/prakhar2b/sm-dryfruto/internal/admin"
	"github.com/prakhar2b/sm-dryfruto/pkg/health"
	"github.com/prakhar2b/sm-dryfruto/pkg/middleware"
)

const serviceName = "storefront"

// storefrontMaxAge is the public cache lifetime of storefront reads, in seconds.
const storefrontMaxAge = 30

// RouterConfig carries everything NewRouter wires.
type RouterConfig struct {
	Storefront *StorefrontHandler
	BulkOrders *BulkOrderHandler
	Admin      *admin.Service
	Health     *health.Handler
	RateLimit  middleware.RateLimitConfig
	CORS       middleware.CORSConfig
}

// NewRouter creates a chi router with global middleware, health and metrics
// endpoints, the storefront API and the admin API. ctx bounds background
// work started by middleware.
func NewRouter(ctx context.Context, cfg RouterConfig, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middleware stack (applied in order).
	r.Use(middleware.CORS(cfg.CORS))
	r.Use(middleware.Recovery(logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PrometheusMetrics(serviceName))
	r.Use(middleware.Tracing(serviceName))
	r.Use(middleware.RequestLogger(logger))

	// Health check endpoints
	r.Get("/health/live", cfg.Health.LivenessHandler())
	r.Get("/health/ready", cfg.Health.ReadinessHandler())
	r.Handle("/metrics", promhttp.Handler())

	sf := cfg.Storefront
	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.CacheControl(storefrontMaxAge))

			r.Get("/storefront", sf.Storefront)
			r.Get("/categories", sf.Categories)
			r.Get("/hero-slides", sf.HeroSlides)
			r.Get("/testimonials", sf.Testimonials)
			r.Get("/gift-boxes", sf.GiftBoxes)
			r.Get("/site-settings", sf.SiteSettings)
			r.Get("/product-types", sf.ProductTypes)
			r.Get("/products", sf.ListProducts)
			r.Get("/products/{slug}", sf.GetProduct)
			r.Get("/careers", sf.Careers)
		})

		r.With(middleware.RateLimit(ctx, cfg.RateLimit, logger)).
			Post("/bulk-orders", cfg.BulkOrders.Submit)

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.NoStore)

			ah := NewAdminHandler(cfg.Admin, logger)
			r.Get("/dashboard", ah.Dashboard)
			r.Get("/site-settings", ah.GetSettings)
			r.Put("/site-settings", ah.UpdateSettings)
			r.Post("/upload", ah.Upload)
			r.Post("/seed-data", ah.Seed)
			r.Post("/refresh", ah.Refresh)

			mountResource(r, cfg.Admin.HeroSlides, logger)
			mountResource(r, cfg.Admin.Categories, logger)
			mountResource(r, cfg.Admin.Testimonials, logger)
			mountResource(r, cfg.Admin.GiftBoxes, logger)
			mountResource(r, cfg.Admin.Products, logger)
		})
	})

	return r
}
