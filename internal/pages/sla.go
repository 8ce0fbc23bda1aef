package pages

import (
	"context"
	"fmt"

	"github.com/brandbuddy-hq/brandbuddy-backend/internal/anomaly"
	"github.com/brandbuddy-hq/brandbuddy-backend/internal/feed"
	"github.com/brandbuddy-hq/brandbuddy-backend/internal/insights"
	"github.com/brandbuddy-hq/brandbuddy-backend/internal/metrics"
)

// SLAData is the payload for /sla-data.
type SLAData struct {
	KPIs              metrics.SLAKPIs             `json:"kpis"`
	Insights          []insights.Insight          `json:"insights"`
	SLATrends         []metrics.MonthlyBreachCost `json:"slaTrends"`
	SupplierScorecard []anomaly.SupplierScore     `json:"supplierScorecard"`
	FinancialImpact   metrics.SLAFinancialImpact  `json:"financialImpact"`
	Recommendations   []string                    `json:"recommendations"`
	LastUpdated       string                      `json:"lastUpdated"`
}

// SLA assembles the compliance view.
func (b *Builder) SLA(ctx context.Context, snap feed.Snapshot, withInsights bool) SLAData {
	now := timeNowUTC()

	kpis := metrics.SLAKPIBundle(snap.Shipments, now)
	impact := metrics.SLAFinancialImpactBundle(snap.Products, snap.Shipments, now)
	scorecard := anomaly.SupplierScorecard(snap.Shipments, now)

	data := SLAData{
		KPIs:              kpis,
		Insights:          []insights.Insight{},
		SLATrends:         impact.MonthlyTrend,
		SupplierScorecard: scorecard,
		FinancialImpact:   impact,
		Recommendations:   slaRecommendations(kpis, impact, scorecard),
		LastUpdated:       lastUpdated(now),
	}

	if withInsights {
		analytics := metrics.AnalyticsKPIBundle(snap.Products, snap.Shipments, now)
		top, affected, counts := supplierContext(snap.Shipments)
		data.Insights = b.insights.Generate(ctx, insights.Summary{
			Page:  insights.PageSLA,
			Brand: b.brand,
			Headline: []insights.KPILine{
				intLine("SLA compliance %", kpis.OverallSLACompliance),
				floatLine("Avg delivery delta (days)", kpis.AverageDeliveryPerformance),
				countLine("At-risk shipments", kpis.AtRiskShipments),
				dollarLine("Cost of breaches", kpis.CostOfSLABreaches),
				dollarLine("Potential savings", impact.PotentialSavings),
			},
			TopSuppliers:          top,
			AffectedSuppliers:     affected,
			IssueSummary:          counts.Phrase(),
			SKURefs:               skuRefs(snap.Shipments),
			FulfillmentEfficiency: analytics.FulfillmentEfficiency,
			OrderVolumeGrowth:     analytics.OrderVolumeGrowth,
			BrandCount:            brandCount(snap.Products),
			DollarImpact:          impact.TotalSLABreachCost,
		})
	}
	return data
}

// EmptySLA is the degraded SLA payload.
func (b *Builder) EmptySLA() SLAData {
	now := timeNowUTC()
	return SLAData{
		Insights:          []insights.Insight{insights.InformationNotAvailable(now)},
		SLATrends:         []metrics.MonthlyBreachCost{},
		SupplierScorecard: []anomaly.SupplierScore{},
		Recommendations:   []string{},
		LastUpdated:       lastUpdated(now),
	}
}

// slaRecommendations derives deterministic follow-ups from the compliance
// numbers; the LLM insights layer adds narrative on top of these.
func slaRecommendations(kpis metrics.SLAKPIs, impact metrics.SLAFinancialImpact, scorecard []anomaly.SupplierScore) []string {
	recs := []string{}

	if kpis.OverallSLACompliance != nil && *kpis.OverallSLACompliance < 95 {
		recs = append(recs, fmt.Sprintf(
			"Compliance is at %d%%; closing the gap to 95%% recovers an estimated $%d.",
			*kpis.OverallSLACompliance, impact.PotentialSavings))
	}
	if kpis.AtRiskShipments > 0 {
		recs = append(recs, fmt.Sprintf(
			"%d in-transit shipments are due within two days; confirm carrier ETAs now.",
			kpis.AtRiskShipments))
	}
	for _, score := range scorecard {
		if score.RiskProfile == anomaly.ProfileHigh {
			recs = append(recs, fmt.Sprintf(
				"Schedule a corrective-action review with %s (performance score %d).",
				score.Supplier, score.PerformanceScore))
		}
	}
	if len(impact.SupplierCostBreakdown) > 0 {
		leader := impact.SupplierCostBreakdown[0]
		recs = append(recs, fmt.Sprintf(
			"%s drives $%d of breach cost across %d breaches; prioritize that relationship.",
			leader.Supplier, leader.TotalCost, leader.BreachCount))
	}
	return recs
}
