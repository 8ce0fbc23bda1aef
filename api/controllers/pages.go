package controllers

import (
	"context"
	"net/http"

	"github.com/brandbuddy-hq/brandbuddy-backend/api/responses"
	"github.com/brandbuddy-hq/brandbuddy-backend/api/validators"
	"github.com/brandbuddy-hq/brandbuddy-backend/internal/feed"
	"github.com/brandbuddy-hq/brandbuddy-backend/internal/insights"
	"github.com/brandbuddy-hq/brandbuddy-backend/internal/pages"
	pkgerrors "github.com/brandbuddy-hq/brandbuddy-backend/pkg/errors"
	"github.com/brandbuddy-hq/brandbuddy-backend/pkg/logger"
)

// FeedService is the slice of the feed client the page controllers need.
type FeedService interface {
	Snapshot(ctx context.Context) (*feed.Snapshot, error)
}

type insightsOnly struct {
	Insights []insights.Insight `json:"insights"`
}

// servePage is the shared page pipeline: mode routing, parallel feed fetch,
// then either the full payload, the fast payload, or just the insights.
// An upstream failure degrades to the page's empty payload except in
// insights mode, where stale-looking success would mislead the client.
// Configuration errors always surface as 500s.
func servePage[T any](
	feeds FeedService,
	logg *logger.Logger,
	build func(ctx context.Context, snap feed.Snapshot, withInsights bool) T,
	empty func() T,
	pick func(T) []insights.Insight,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		mode := validators.ParseMode(r)

		snap, err := feeds.Snapshot(ctx)
		if err != nil {
			if mode == validators.ModeInsights || pkgerrors.IsCode(err, pkgerrors.CodeConfig) {
				responses.WriteError(ctx, logg, w, err)
				return
			}
			logg.Error(ctx, "feed fetch failed, serving degraded payload", err)
			responses.WriteSuccess(w, empty())
			return
		}

		switch mode {
		case validators.ModeFast:
			responses.WriteSuccess(w, build(ctx, *snap, false))
		case validators.ModeInsights:
			responses.WriteSuccess(w, insightsOnly{Insights: pick(build(ctx, *snap, true))})
		default:
			responses.WriteSuccess(w, build(ctx, *snap, true))
		}
	}
}

// DashboardData serves GET /dashboard-data.
func DashboardData(feeds FeedService, builder *pages.Builder, logg *logger.Logger) http.HandlerFunc {
	return servePage(feeds, logg,
		builder.Dashboard,
		builder.EmptyDashboard,
		func(d pages.DashboardData) []insights.Insight { return d.Insights },
	)
}

// DashboardDataFast serves GET /dashboard-data-fast. It never generates
// insights, whatever the mode parameter says.
func DashboardDataFast(feeds FeedService, builder *pages.Builder, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		snap, err := feeds.Snapshot(ctx)
		if err != nil {
			if pkgerrors.IsCode(err, pkgerrors.CodeConfig) {
				responses.WriteError(ctx, logg, w, err)
				return
			}
			logg.Error(ctx, "feed fetch failed, serving degraded payload", err)
			responses.WriteSuccess(w, builder.EmptyDashboard())
			return
		}
		responses.WriteSuccess(w, builder.Dashboard(ctx, *snap, false))
	}
}

// DashboardInsights serves GET /dashboard-insights: the LLM insight list
// plus a daily brief, nothing else. A feed failure here is a 500; there is
// no meaningful degraded form of an insights-only response.
func DashboardInsights(feeds FeedService, builder *pages.Builder, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		snap, err := feeds.Snapshot(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, builder.DashboardInsights(ctx, *snap))
	}
}

// OrdersData serves GET /orders-data.
func OrdersData(feeds FeedService, builder *pages.Builder, logg *logger.Logger) http.HandlerFunc {
	return servePage(feeds, logg,
		builder.Orders,
		builder.EmptyOrders,
		func(d pages.OrdersData) []insights.Insight { return d.Insights },
	)
}

// InventoryData serves GET /inventory-data.
func InventoryData(feeds FeedService, builder *pages.Builder, logg *logger.Logger) http.HandlerFunc {
	return servePage(feeds, logg,
		builder.Inventory,
		builder.EmptyInventory,
		func(d pages.InventoryData) []insights.Insight { return d.Insights },
	)
}

// ReplenishmentData serves GET /replenishment-data.
func ReplenishmentData(feeds FeedService, builder *pages.Builder, logg *logger.Logger) http.HandlerFunc {
	return servePage(feeds, logg,
		builder.Replenishment,
		builder.EmptyReplenishment,
		func(d pages.ReplenishmentData) []insights.Insight { return d.Insights },
	)
}

// SLAData serves GET /sla-data.
func SLAData(feeds FeedService, builder *pages.Builder, logg *logger.Logger) http.HandlerFunc {
	return servePage(feeds, logg,
		builder.SLA,
		builder.EmptySLA,
		func(d pages.SLAData) []insights.Insight { return d.Insights },
	)
}

// AnalyticsData serves GET /analytics-data.
func AnalyticsData(feeds FeedService, builder *pages.Builder, logg *logger.Logger) http.HandlerFunc {
	return servePage(feeds, logg,
		builder.Analytics,
		builder.EmptyAnalytics,
		func(d pages.AnalyticsData) []insights.Insight { return d.Insights },
	)
}
