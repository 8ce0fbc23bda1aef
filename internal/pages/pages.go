// Package pages assembles the per-endpoint response payloads: kernel
// bundles, engine output, and insights composed into one discriminated
// record per page.
package pages

import (
	"fmt"
	"time"

	"github.com/brandbuddy-hq/brandbuddy-backend/internal/feed"
	"github.com/brandbuddy-hq/brandbuddy-backend/internal/insights"
	"github.com/brandbuddy-hq/brandbuddy-backend/internal/kpi"
)

var timeNowUTC = func() time.Time { return time.Now().UTC() }

// Builder turns feed snapshots into page payloads. One builder serves all
// pages; it carries the tenant brand and the insight orchestrator.
type Builder struct {
	brand    string
	insights *insights.Service
}

func NewBuilder(brand string, svc *insights.Service) *Builder {
	return &Builder{brand: brand, insights: svc}
}

func lastUpdated(now time.Time) string {
	return now.UTC().Format(time.RFC3339)
}

// intLine formats a nullable KPI for prompt dumps: nil reads as "n/a" so
// the model never invents a number for missing data.
func intLine(label string, value *int) insights.KPILine {
	if value == nil {
		return insights.KPILine{Label: label, Value: "n/a"}
	}
	return insights.KPILine{Label: label, Value: fmt.Sprintf("%d", *value)}
}

func countLine(label string, value int) insights.KPILine {
	return insights.KPILine{Label: label, Value: fmt.Sprintf("%d", value)}
}

func dollarLine(label string, value int) insights.KPILine {
	return insights.KPILine{Label: label, Value: fmt.Sprintf("$%d", value)}
}

func floatLine(label string, value *float64) insights.KPILine {
	if value == nil {
		return insights.KPILine{Label: label, Value: "n/a"}
	}
	return insights.KPILine{Label: label, Value: fmt.Sprintf("%.1f", *value)}
}

func pctLine(label string, value *float64) insights.KPILine {
	if value == nil {
		return insights.KPILine{Label: label, Value: "n/a"}
	}
	return insights.KPILine{Label: label, Value: fmt.Sprintf("%.1f%%", *value)}
}

// supplierContext runs the issue tally shared by most page summaries.
func supplierContext(shipments []feed.Shipment) ([]kpi.SupplierImpact, int, kpi.IssueCounts) {
	counts := kpi.ClassifyIssues(shipments)
	top, affected := kpi.TopSupplierImpacts(shipments, func(s feed.Shipment) bool {
		return s.HasDiscrepancy()
	})
	return top, affected, counts
}

// skuRefs collects the SKUs of discrepant shipments for prompt context.
func skuRefs(shipments []feed.Shipment) []string {
	seen := map[string]struct{}{}
	refs := []string{}
	for _, s := range shipments {
		if !s.HasDiscrepancy() || s.SKU == "" {
			continue
		}
		if _, dup := seen[s.SKU]; dup {
			continue
		}
		seen[s.SKU] = struct{}{}
		refs = append(refs, s.SKU)
	}
	return refs
}

func brandCount(products []feed.Product) int {
	seen := map[string]struct{}{}
	for _, p := range products {
		seen[p.BrandName] = struct{}{}
	}
	return len(seen)
}
