package pages

import (
	"context"

	"github.com/brandbuddy-hq/brandbuddy-backend/internal/anomaly"
	"github.com/brandbuddy-hq/brandbuddy-backend/internal/feed"
	"github.com/brandbuddy-hq/brandbuddy-backend/internal/insights"
	"github.com/brandbuddy-hq/brandbuddy-backend/internal/kpi"
	"github.com/brandbuddy-hq/brandbuddy-backend/internal/metrics"
)

// InventoryData is the payload for /inventory-data.
type InventoryData struct {
	KPIs             metrics.InventoryKPIs      `json:"kpis"`
	Insights         []insights.Insight         `json:"insights"`
	Inventory        []anomaly.ClassifiedItem   `json:"inventory"`
	BrandPerformance []metrics.BrandPerformance `json:"brandPerformance"`
	SupplierAnalysis []anomaly.SupplierScore    `json:"supplierAnalysis"`
	LastUpdated      string                     `json:"lastUpdated"`
}

// Inventory assembles the catalog-centric view with the ABC/velocity
// enhanced item list.
func (b *Builder) Inventory(ctx context.Context, snap feed.Snapshot, withInsights bool) InventoryData {
	now := timeNowUTC()

	kpis := metrics.InventoryKPIBundle(snap.Products)

	data := InventoryData{
		KPIs:             kpis,
		Insights:         []insights.Insight{},
		Inventory:        anomaly.Classify(snap.Products, snap.Shipments, now),
		BrandPerformance: metrics.BrandRankings(snap.Products),
		SupplierAnalysis: anomaly.SupplierScorecard(snap.Shipments, now),
		LastUpdated:      lastUpdated(now),
	}

	if withInsights {
		analytics := metrics.AnalyticsKPIBundle(snap.Products, snap.Shipments, now)
		top, affected, counts := supplierContext(snap.Shipments)
		data.Insights = b.insights.Generate(ctx, insights.Summary{
			Page:  insights.PageInventory,
			Brand: b.brand,
			Headline: []insights.KPILine{
				countLine("Active SKUs", kpis.TotalActiveSKUs),
				dollarLine("Inventory value", kpis.TotalInventoryValue),
				countLine("Low stock alerts", kpis.LowStockAlerts),
				countLine("Inactive SKUs", kpis.InactiveSKUs),
				{Label: "Low-stock share", Value: kpi.PercentagePhrase(kpis.LowStockAlerts, len(snap.Products), "catalog")},
			},
			TopSuppliers:          top,
			AffectedSuppliers:     affected,
			IssueSummary:          counts.Phrase(),
			SKURefs:               lowStockSKUs(snap.Products),
			FulfillmentEfficiency: analytics.FulfillmentEfficiency,
			OrderVolumeGrowth:     analytics.OrderVolumeGrowth,
			BrandCount:            brandCount(snap.Products),
			DollarImpact:          kpis.TotalInventoryValue,
		})
	}
	return data
}

// EmptyInventory is the degraded inventory payload.
func (b *Builder) EmptyInventory() InventoryData {
	now := timeNowUTC()
	return InventoryData{
		Insights:         []insights.Insight{insights.InformationNotAvailable(now)},
		Inventory:        []anomaly.ClassifiedItem{},
		BrandPerformance: []metrics.BrandPerformance{},
		SupplierAnalysis: []anomaly.SupplierScore{},
		LastUpdated:      lastUpdated(now),
	}
}

func lowStockSKUs(products []feed.Product) []string {
	refs := []string{}
	for _, p := range products {
		status := metrics.ProductStatus(p)
		if status == metrics.StatusLowStock || status == metrics.StatusOutOfStock {
			refs = append(refs, p.SKU)
		}
	}
	return refs
}
