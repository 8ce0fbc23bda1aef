package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/brandbuddy-hq/brandbuddy-backend/api/controllers"
	"github.com/brandbuddy-hq/brandbuddy-backend/api/middleware"
	"github.com/brandbuddy-hq/brandbuddy-backend/api/responses"
	"github.com/brandbuddy-hq/brandbuddy-backend/internal/pages"
	"github.com/brandbuddy-hq/brandbuddy-backend/internal/suggest"
	"github.com/brandbuddy-hq/brandbuddy-backend/pkg/config"
	pkgerrors "github.com/brandbuddy-hq/brandbuddy-backend/pkg/errors"
	"github.com/brandbuddy-hq/brandbuddy-backend/pkg/logger"
	"github.com/brandbuddy-hq/brandbuddy-backend/pkg/metrics"
)

// NewRouter wires the page endpoints, suggestion endpoints, and the
// health/metrics surface behind the shared middleware chain.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	feeds controllers.FeedService,
	builder *pages.Builder,
	suggestService *suggest.Service,
	httpMetrics *metrics.HTTPMetrics,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)
	if httpMetrics != nil {
		r.Use(httpMetrics.Middleware())
	}

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		responses.WriteError(req.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "route not found"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		responses.WriteError(req.Context(), logg, w, pkgerrors.New(pkgerrors.CodeMethodNotAllowed, "method not allowed"))
	})

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
	})
	if httpMetrics != nil {
		r.Method(http.MethodGet, "/metrics", httpMetrics.Handler())
	}

	r.Get("/dashboard-data", controllers.DashboardData(feeds, builder, logg))
	r.Get("/dashboard-data-fast", controllers.DashboardDataFast(feeds, builder, logg))
	r.Get("/dashboard-insights", controllers.DashboardInsights(feeds, builder, logg))
	r.Get("/orders-data", controllers.OrdersData(feeds, builder, logg))
	r.Get("/inventory-data", controllers.InventoryData(feeds, builder, logg))
	r.Get("/replenishment-data", controllers.ReplenishmentData(feeds, builder, logg))
	r.Get("/sla-data", controllers.SLAData(feeds, builder, logg))
	r.Get("/analytics-data", controllers.AnalyticsData(feeds, builder, logg))
	r.Post("/inventory-suggestion", controllers.InventorySuggestion(suggestService, logg))
	r.Post("/replenishment-suggestion", controllers.ReplenishmentSuggestion(suggestService, logg))

	return r
}
