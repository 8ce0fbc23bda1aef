package pages

import (
	"context"

	"github.com/brandbuddy-hq/brandbuddy-backend/internal/anomaly"
	"github.com/brandbuddy-hq/brandbuddy-backend/internal/feed"
	"github.com/brandbuddy-hq/brandbuddy-backend/internal/insights"
	"github.com/brandbuddy-hq/brandbuddy-backend/internal/metrics"
)

// ReplenishmentData is the payload for /replenishment-data.
type ReplenishmentData struct {
	KPIs                metrics.ReplenishmentKPIs   `json:"kpis"`
	Insights            []insights.Insight          `json:"insights"`
	CriticalItems       []metrics.CriticalItem      `json:"criticalItems"`
	SupplierPerformance []anomaly.SupplierScore     `json:"supplierPerformance"`
	ReorderSuggestions  []metrics.ReorderSuggestion `json:"reorderSuggestions"`
	LastUpdated         string                      `json:"lastUpdated"`
}

// Replenishment assembles the purchasing-decision view.
func (b *Builder) Replenishment(ctx context.Context, snap feed.Snapshot, withInsights bool) ReplenishmentData {
	now := timeNowUTC()

	kpis := metrics.ReplenishmentKPIBundle(snap.Products, snap.Shipments, now)

	data := ReplenishmentData{
		KPIs:                kpis,
		Insights:            []insights.Insight{},
		CriticalItems:       metrics.CriticalItems(snap.Products),
		SupplierPerformance: anomaly.SupplierScorecard(snap.Shipments, now),
		ReorderSuggestions:  metrics.ReorderSuggestions(snap.Products),
		LastUpdated:         lastUpdated(now),
	}

	if withInsights {
		analytics := metrics.AnalyticsKPIBundle(snap.Products, snap.Shipments, now)
		top, affected, counts := supplierContext(snap.Shipments)

		refs := []string{}
		for _, item := range data.CriticalItems {
			refs = append(refs, item.SKU)
		}

		data.Insights = b.insights.Generate(ctx, insights.Summary{
			Page:  insights.PageReplenishment,
			Brand: b.brand,
			Headline: []insights.KPILine{
				countLine("Critical SKUs", kpis.CriticalSKUs),
				dollarLine("Replenishment value", kpis.ReplenishmentValue),
				countLine("Supplier alerts", kpis.SupplierAlerts),
				countLine("Reorder recommendations", kpis.ReorderRecommendations),
			},
			TopSuppliers:          top,
			AffectedSuppliers:     affected,
			IssueSummary:          counts.Phrase(),
			SKURefs:               refs,
			FulfillmentEfficiency: analytics.FulfillmentEfficiency,
			OrderVolumeGrowth:     analytics.OrderVolumeGrowth,
			BrandCount:            brandCount(snap.Products),
			DollarImpact:          kpis.ReplenishmentValue,
		})
	}
	return data
}

// EmptyReplenishment is the degraded replenishment payload.
func (b *Builder) EmptyReplenishment() ReplenishmentData {
	now := timeNowUTC()
	return ReplenishmentData{
		Insights:            []insights.Insight{insights.InformationNotAvailable(now)},
		CriticalItems:       []metrics.CriticalItem{},
		SupplierPerformance: []anomaly.SupplierScore{},
		ReorderSuggestions:  []metrics.ReorderSuggestion{},
		LastUpdated:         lastUpdated(now),
	}
}
