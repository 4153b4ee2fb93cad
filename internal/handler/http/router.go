package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/VivekRai08/Jain-Foam-website/internal/service"
	"github.com/VivekRai08/Jain-Foam-website/pkg/health"
	"github.com/VivekRai08/Jain-Foam-website/pkg/middleware"
)

// RouterConfig carries the HTTP-facing settings of the site API.
type RouterConfig struct {
	ServiceName    string
	TracingEnabled bool
	CORS           middleware.CORSConfig
	// CatalogMaxAge is the Cache-Control max-age, in seconds, of catalog
	// reads. Zero or less sends no-store.
	CatalogMaxAge     int
	PprofEnabled      bool
	PprofAllowedCIDRs []string
}

// NewRouter creates a chi router with all site API routes registered.
func NewRouter(
	cfg RouterConfig,
	catalog *service.CatalogService,
	inquiries *service.InquiryService,
	healthHandler *health.Handler,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestLogging(logger))
	if cfg.TracingEnabled {
		r.Use(middleware.Tracing(cfg.ServiceName))
	}
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.PrometheusMetrics(cfg.ServiceName))
	r.Use(middleware.CORS(cfg.CORS))

	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Handle("/metrics", promhttp.Handler())

	if cfg.PprofEnabled {
		middleware.RegisterPprof(r, cfg.PprofAllowedCIDRs, logger)
	}

	productHandler := NewProductHandler(catalog, logger)
	categoryHandler := NewCategoryHandler(catalog, logger)
	contactHandler := NewContactHandler(inquiries, logger)

	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.CacheControl(cfg.CatalogMaxAge))

			r.Get("/products", productHandler.ListProducts)
			r.Get("/products/{id}", productHandler.GetProduct)
			r.Get("/categories", categoryHandler.ListCategories)
			r.Get("/categories/{slug}", categoryHandler.GetCategory)
		})

		r.Post("/contact", contactHandler.SubmitContact)
	})

	return r
}
