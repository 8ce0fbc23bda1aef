// Package insights turns metric bundles into titled, severity-tagged
// recommendations. The LLM path and the rule path produce the same shape,
// so either can serve any page.
package insights

import (
	"time"

	"github.com/brandbuddy-hq/brandbuddy-backend/internal/kpi"
)

const (
	SeverityCritical = "critical"
	SeverityWarning  = "warning"
	SeverityInfo     = "info"

	SourceAI    = "ai"
	SourceRules = "rules"

	maxInsights         = 5
	maxTitleLength      = 80
	minSuggestedActions = 2
	maxSuggestedActions = 4
)

// Insight is one recommendation rendered on a page.
type Insight struct {
	ID               string   `json:"id"`
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	Severity         string   `json:"severity"`
	DollarImpact     int      `json:"dollarImpact"`
	SuggestedActions []string `json:"suggestedActions"`
	CreatedAt        string   `json:"createdAt"`
	Source           string   `json:"source"`
}

// KPILine is one labeled value in a prompt's data dump.
type KPILine struct {
	Label string
	Value string
}

// Summary is the page-level digest both insight paths consume: headline
// numbers, the suppliers driving issues, and the rule-path signals.
type Summary struct {
	Page              string
	Brand             string
	Headline          []KPILine
	TopSuppliers      []kpi.SupplierImpact
	AffectedSuppliers int
	IssueSummary      string
	SKURefs           []string

	FulfillmentEfficiency *float64
	OrderVolumeGrowth     float64
	BrandCount            int
	DollarImpact          int
}

func validSeverity(severity string) bool {
	switch severity {
	case SeverityCritical, SeverityWarning, SeverityInfo:
		return true
	}
	return false
}

func timestamp(now time.Time) string {
	return now.UTC().Format(time.RFC3339)
}
