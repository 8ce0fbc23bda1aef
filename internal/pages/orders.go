package pages

import (
	"context"

	"github.com/brandbuddy-hq/brandbuddy-backend/internal/feed"
	"github.com/brandbuddy-hq/brandbuddy-backend/internal/insights"
	"github.com/brandbuddy-hq/brandbuddy-backend/internal/kpi"
	"github.com/brandbuddy-hq/brandbuddy-backend/internal/metrics"
)

// InboundIntelligence is the orders page's narrative block: today's flow
// versus history plus where the issues concentrate.
type InboundIntelligence struct {
	BusinessMetrics   kpi.BusinessMetrics  `json:"businessMetrics"`
	IssueSummary      string               `json:"issueSummary"`
	TopSuppliers      []kpi.SupplierImpact `json:"topSuppliers"`
	AffectedSuppliers int                  `json:"affectedSuppliers"`
	AtRiskShare       string               `json:"atRiskShare"`
}

// OrdersData is the payload for /orders-data.
type OrdersData struct {
	Orders              []metrics.Order       `json:"orders"`
	KPIs                metrics.DashboardKPIs `json:"kpis"`
	Insights            []insights.Insight    `json:"insights"`
	InboundIntelligence InboundIntelligence   `json:"inboundIntelligence"`
	LastUpdated         string                `json:"lastUpdated"`
}

// Orders assembles the order-centric view: shipments reinterpreted as
// inbound orders.
func (b *Builder) Orders(ctx context.Context, snap feed.Snapshot, withInsights bool) OrdersData {
	now := timeNowUTC()

	kpis := metrics.DashboardKPIBundle(snap.Products, snap.Shipments, now)
	top, affected, counts := supplierContext(snap.Shipments)

	atRiskCount := 0
	if kpis.AtRiskOrders != nil {
		atRiskCount = *kpis.AtRiskOrders
	}

	data := OrdersData{
		Orders:   metrics.OrdersFromShipments(snap.Shipments),
		KPIs:     kpis,
		Insights: []insights.Insight{},
		InboundIntelligence: InboundIntelligence{
			BusinessMetrics:   kpi.BusinessMetricsFor(snap.Shipments, now),
			IssueSummary:      counts.Phrase(),
			TopSuppliers:      top,
			AffectedSuppliers: affected,
			AtRiskShare:       kpi.PercentagePhrase(atRiskCount, len(snap.Shipments), "orders"),
		},
		LastUpdated: lastUpdated(now),
	}

	if withInsights {
		analytics := metrics.AnalyticsKPIBundle(snap.Products, snap.Shipments, now)
		data.Insights = b.insights.Generate(ctx, insights.Summary{
			Page:  insights.PageOrders,
			Brand: b.brand,
			Headline: []insights.KPILine{
				intLine("Orders today", kpis.TotalOrdersToday),
				intLine("At-risk orders", kpis.AtRiskOrders),
				countLine("Total orders", len(snap.Shipments)),
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
		})
	}
	return data
}

// EmptyOrders is the degraded orders payload.
func (b *Builder) EmptyOrders() OrdersData {
	now := timeNowUTC()
	return OrdersData{
		Orders:      []metrics.Order{},
		Insights:    []insights.Insight{insights.InformationNotAvailable(now)},
		LastUpdated: lastUpdated(now),
	}
}
