package pages

import (
	"context"
	"strings"

	"github.com/brandbuddy-hq/brandbuddy-backend/internal/feed"
	"github.com/brandbuddy-hq/brandbuddy-backend/internal/insights"
	"github.com/brandbuddy-hq/brandbuddy-backend/internal/kpi"
	"github.com/brandbuddy-hq/brandbuddy-backend/internal/metrics"
)

// StatusCount is one slice of the operational breakdown, encounter order
// preserved.
type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// DataInsights is the analytics page's computed narrative block.
type DataInsights struct {
	IssueSummary      string               `json:"issueSummary"`
	DiscrepancyShare  string               `json:"discrepancyShare"`
	TopSuppliers      []kpi.SupplierImpact `json:"topSuppliers"`
	AffectedSuppliers int                  `json:"affectedSuppliers"`
}

// AnalyticsData is the payload for /analytics-data.
type AnalyticsData struct {
	KPIs                 metrics.AnalyticsKPIs      `json:"kpis"`
	Insights             []insights.Insight         `json:"insights"`
	PerformanceMetrics   kpi.BusinessMetrics        `json:"performanceMetrics"`
	DataInsights         DataInsights               `json:"dataInsights"`
	OperationalBreakdown []StatusCount              `json:"operationalBreakdown"`
	BrandPerformance     []metrics.BrandPerformance `json:"brandPerformance"`
}

// Analytics assembles the growth and performance view.
func (b *Builder) Analytics(ctx context.Context, snap feed.Snapshot, withInsights bool) AnalyticsData {
	now := timeNowUTC()

	kpis := metrics.AnalyticsKPIBundle(snap.Products, snap.Shipments, now)
	top, affected, counts := supplierContext(snap.Shipments)

	data := AnalyticsData{
		KPIs:               kpis,
		Insights:           []insights.Insight{},
		PerformanceMetrics: kpi.BusinessMetricsFor(snap.Shipments, now),
		DataInsights: DataInsights{
			IssueSummary:      counts.Phrase(),
			DiscrepancyShare:  kpi.PercentagePhrase(counts.QuantityDiscrepancies, len(snap.Shipments), "shipments"),
			TopSuppliers:      top,
			AffectedSuppliers: affected,
		},
		OperationalBreakdown: statusBreakdown(snap.Shipments),
		BrandPerformance:     metrics.BrandRankings(snap.Products),
	}

	if withInsights {
		data.Insights = b.insights.Generate(ctx, insights.Summary{
			Page:  insights.PageAnalytics,
			Brand: b.brand,
			Headline: []insights.KPILine{
				pctLine("Fulfillment efficiency", kpis.FulfillmentEfficiency),
				pctLine("Return rate", kpis.ReturnRate),
				pctLine("Inventory health", kpis.InventoryHealthScore),
				countLine("Order volume growth %", int(kpis.OrderVolumeGrowth)),
			},
			TopSuppliers:          top,
			AffectedSuppliers:     affected,
			IssueSummary:          counts.Phrase(),
			SKURefs:               skuRefs(snap.Shipments),
			FulfillmentEfficiency: kpis.FulfillmentEfficiency,
			OrderVolumeGrowth:     kpis.OrderVolumeGrowth,
			BrandCount:            brandCount(snap.Products),
		})
	}
	return data
}

// EmptyAnalytics is the degraded analytics payload.
func (b *Builder) EmptyAnalytics() AnalyticsData {
	now := timeNowUTC()
	return AnalyticsData{
		Insights:             []insights.Insight{insights.InformationNotAvailable(now)},
		OperationalBreakdown: []StatusCount{},
		BrandPerformance:     []metrics.BrandPerformance{},
	}
}

func statusBreakdown(shipments []feed.Shipment) []StatusCount {
	counts := map[string]*StatusCount{}
	order := []string{}

	for _, s := range shipments {
		status := strings.ToLower(strings.TrimSpace(s.Status))
		if status == "" {
			status = "unknown"
		}
		entry, ok := counts[status]
		if !ok {
			entry = &StatusCount{Status: status}
			counts[status] = entry
			order = append(order, status)
		}
		entry.Count++
	}

	result := make([]StatusCount, 0, len(order))
	for _, status := range order {
		result = append(result, *counts[status])
	}
	return result
}
