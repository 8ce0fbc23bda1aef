package pages

import (
	"context"
	"time"

	"github.com/brandbuddy-hq/brandbuddy-backend/internal/anomaly"
	"github.com/brandbuddy-hq/brandbuddy-backend/internal/feed"
	"github.com/brandbuddy-hq/brandbuddy-backend/internal/insights"
	"github.com/brandbuddy-hq/brandbuddy-backend/internal/metrics"
)

// DashboardData is the payload for /dashboard-data and
// /dashboard-data-fast. Fast mode ships an empty insight list; every
// other field is identical for the same snapshot.
type DashboardData struct {
	Products           []feed.Product               `json:"products"`
	Shipments          []feed.Shipment              `json:"shipments"`
	KPIs               metrics.DashboardKPIs        `json:"kpis"`
	QuickOverview      metrics.QuickOverview        `json:"quickOverview"`
	WarehouseInventory []metrics.WarehouseInventory `json:"warehouseInventory"`
	Insights           []insights.Insight           `json:"insights"`
	Anomalies          []anomaly.Anomaly            `json:"anomalies"`
	MarginRisks        []anomaly.MarginRisk         `json:"marginRisks"`
	CostVariances      []anomaly.Anomaly            `json:"costVariances"`
	LastUpdated        string                       `json:"lastUpdated"`
}

// InsightsData is the payload for /dashboard-insights.
type InsightsData struct {
	Insights   []insights.Insight `json:"insights"`
	DailyBrief string             `json:"dailyBrief"`
}

// Dashboard assembles the main dashboard payload.
func (b *Builder) Dashboard(ctx context.Context, snap feed.Snapshot, withInsights bool) DashboardData {
	now := timeNowUTC()

	kpis := metrics.DashboardKPIBundle(snap.Products, snap.Shipments, now)
	detected := anomaly.Detect(snap.Shipments)

	data := DashboardData{
		Products:           snap.Products,
		Shipments:          snap.Shipments,
		KPIs:               kpis,
		QuickOverview:      metrics.Overview(kpis),
		WarehouseInventory: metrics.WarehouseInventories(snap.Shipments),
		Insights:           []insights.Insight{},
		Anomalies:          detected,
		MarginRisks:        anomaly.MarginRisks(snap.Products, snap.Shipments),
		CostVariances:      costVariancesOf(detected),
		LastUpdated:        lastUpdated(now),
	}

	if withInsights {
		data.Insights = b.insights.Generate(ctx, b.dashboardSummary(snap, kpis, now))
	}
	return data
}

// DashboardInsights serves the insights-only mode: fresh LLM output plus
// the daily brief, nothing else.
func (b *Builder) DashboardInsights(ctx context.Context, snap feed.Snapshot) InsightsData {
	now := timeNowUTC()
	summary := b.dashboardSummary(snap, metrics.DashboardKPIBundle(snap.Products, snap.Shipments, now), now)
	return InsightsData{
		Insights:   b.insights.Generate(ctx, summary),
		DailyBrief: b.insights.DailyBrief(ctx, summary),
	}
}

// EmptyDashboard is the degraded payload served when a feed is
// unreachable: zeroed KPIs and the single placeholder insight.
func (b *Builder) EmptyDashboard() DashboardData {
	now := timeNowUTC()
	return DashboardData{
		Products:           []feed.Product{},
		Shipments:          []feed.Shipment{},
		WarehouseInventory: []metrics.WarehouseInventory{},
		Insights:           []insights.Insight{insights.InformationNotAvailable(now)},
		Anomalies:          []anomaly.Anomaly{},
		MarginRisks:        []anomaly.MarginRisk{},
		CostVariances:      []anomaly.Anomaly{},
		LastUpdated:        lastUpdated(now),
	}
}

func costVariancesOf(detected []anomaly.Anomaly) []anomaly.Anomaly {
	variances := []anomaly.Anomaly{}
	for _, a := range detected {
		if a.Type == anomaly.TypeSupplierCostSpike {
			variances = append(variances, a)
		}
	}
	return variances
}

func (b *Builder) dashboardSummary(snap feed.Snapshot, kpis metrics.DashboardKPIs, now time.Time) insights.Summary {
	top, affected, counts := supplierContext(snap.Shipments)
	analytics := metrics.AnalyticsKPIBundle(snap.Products, snap.Shipments, now)

	return insights.Summary{
		Page:  insights.PageDashboard,
		Brand: b.brand,
		Headline: []insights.KPILine{
			intLine("Orders today", kpis.TotalOrdersToday),
			intLine("At-risk orders", kpis.AtRiskOrders),
			intLine("Open POs", kpis.OpenPOs),
			countLine("Unfulfillable SKUs", kpis.UnfulfillableSKUs),
			dollarLine("Dollar impact", kpis.DollarImpact),
		},
		TopSuppliers:          top,
		AffectedSuppliers:     affected,
		IssueSummary:          counts.Phrase(),
		SKURefs:               skuRefs(snap.Shipments),
		FulfillmentEfficiency: analytics.FulfillmentEfficiency,
		OrderVolumeGrowth:     analytics.OrderVolumeGrowth,
		BrandCount:            brandCount(snap.Products),
		DollarImpact:          kpis.DollarImpact,
	}
}
