package insights

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	lowEfficiencyThreshold   = 80.0
	decliningGrowthThreshold = -10.0
	diverseBrandThreshold    = 5

	seedImpactSmall  = 2_500
	seedImpactMedium = 5_000
	seedImpactLarge  = 10_000
)

// RuleInsights derives insights from fixed thresholds over the summary.
// It is the fallback for every LLM failure and the whole path when no API
// key is configured, so it must always succeed.
func RuleInsights(summary Summary, now time.Time) []Insight {
	var result []Insight

	add := func(title, description, severity string, impact int, actions ...string) {
		result = append(result, Insight{
			ID:               uuid.NewString(),
			Title:            title,
			Description:      description,
			Severity:         severity,
			DollarImpact:     impact,
			SuggestedActions: actions,
			CreatedAt:        timestamp(now),
			Source:           SourceRules,
		})
	}

	if summary.FulfillmentEfficiency != nil && *summary.FulfillmentEfficiency < lowEfficiencyThreshold {
		description := fmt.Sprintf(
			"Fulfillment efficiency for %s is at %.1f%%, below the %.0f%% operational floor.",
			summary.Brand, *summary.FulfillmentEfficiency, lowEfficiencyThreshold)
		if summary.IssueSummary != "" {
			description += " Current issues: " + summary.IssueSummary + "."
		}
		add("Low Fulfillment Efficiency", description, SeverityCritical, seedImpactLarge,
			"Audit shipments with quantity discrepancies",
			"Escalate recurring shortfalls to the responsible suppliers",
			"Review receiving workflows at affected warehouses")
	}

	if summary.OrderVolumeGrowth < decliningGrowthThreshold {
		add("Declining Order Volume",
			fmt.Sprintf("Order volume is down %.1f%% versus the prior 30-day window.",
				-summary.OrderVolumeGrowth),
			SeverityWarning, seedImpactMedium,
			"Compare inbound volume against seasonal baselines",
			"Confirm upstream suppliers have no unreported delays")
	}

	if summary.BrandCount > diverseBrandThreshold {
		add("Brand Portfolio Diversification",
			fmt.Sprintf("The catalog spans %d brands; concentration risk is low but coordination overhead grows.",
				summary.BrandCount),
			SeverityInfo, seedImpactSmall,
			"Review per-brand margin contribution",
			"Consolidate low-volume brand purchase orders")
	}

	if len(summary.TopSuppliers) > 0 && summary.TopSuppliers[0].IssueCount >= 3 {
		leader := summary.TopSuppliers[0]
		add("Supplier Issue Concentration",
			fmt.Sprintf("%s accounts for %d open issues, the most of %d affected suppliers.",
				leader.Supplier, leader.IssueCount, summary.AffectedSuppliers),
			SeverityWarning, seedImpactMedium,
			fmt.Sprintf("Schedule a performance review with %s", leader.Supplier),
			"Identify alternate suppliers for the affected SKUs")
	}

	if len(result) > maxInsights {
		result = result[:maxInsights]
	}
	return result
}

// InformationNotAvailable is the single placeholder insight served when a
// feed is unreachable and the page degrades to zeroed KPIs.
func InformationNotAvailable(now time.Time) Insight {
	return Insight{
		ID:          uuid.NewString(),
		Title:       "Information Not Available",
		Description: "Upstream data feeds could not be reached; KPIs are shown as empty until the next refresh.",
		Severity:    SeverityInfo,
		SuggestedActions: []string{
			"Retry in a few minutes",
			"Check feed credentials if the problem persists",
		},
		CreatedAt: timestamp(now),
		Source:    SourceRules,
	}
}
