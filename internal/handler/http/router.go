package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/starfeed/reviews/internal/service"
	"github.com/starfeed/reviews/pkg/health"
	"github.com/starfeed/reviews/pkg/middleware"
)

// NewRouter creates a chi router with all review service routes registered.
func NewRouter(
	reviewService *service.ReviewService,
	healthHandler *health.Handler,
	corsConfig middleware.CORSConfig,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.CORS(corsConfig))
	r.Use(middleware.Recovery(logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.Tracing("reviews"))
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.PrometheusMetrics("reviews"))

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	// Review API endpoints
	reviewHandler := NewReviewHandler(reviewService, logger)

	r.Route("/api", func(r chi.Router) {
		r.Get("/", reviewHandler.Root)

		r.Post("/reviews", reviewHandler.SubmitReview)
		r.Get("/reviews", reviewHandler.ListReviews)
		r.Put("/reviews/{id}/status", reviewHandler.ModerateReview)

		r.Get("/stats", reviewHandler.GetStats)
		r.Get("/stats/weekly", reviewHandler.GetWeeklyStats)
		r.Get("/stats/monthly", reviewHandler.GetMonthlyStats)

		r.Get("/export", reviewHandler.ExportReviews)
	})

	return r
}
