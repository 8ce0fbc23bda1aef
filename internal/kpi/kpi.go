// Package kpi enriches raw KPI numbers with the supplier, issue, and
// trend context that prompt building and insight text need.
package kpi

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/brandbuddy-hq/brandbuddy-backend/internal/feed"
	"github.com/brandbuddy-hq/brandbuddy-backend/internal/metrics"
)

const (
	topSupplierCount   = 3
	historicalDays     = 30
	minPhraseSampleSet = 10
)

// SupplierImpact counts how many shipments from one supplier matched an
// issue predicate.
type SupplierImpact struct {
	Supplier   string `json:"supplier"`
	IssueCount int    `json:"issueCount"`
}

// TopSupplierImpacts tallies issue counts per supplier using the caller's
// predicate and returns the top three along with the total number of
// affected suppliers.
func TopSupplierImpacts(shipments []feed.Shipment, issue func(feed.Shipment) bool) ([]SupplierImpact, int) {
	counts := map[string]int{}
	order := []string{}
	for _, s := range shipments {
		if !issue(s) {
			continue
		}
		if _, seen := counts[s.Supplier]; !seen {
			order = append(order, s.Supplier)
		}
		counts[s.Supplier]++
	}

	impacts := make([]SupplierImpact, 0, len(order))
	for _, supplier := range order {
		impacts = append(impacts, SupplierImpact{Supplier: supplier, IssueCount: counts[supplier]})
	}
	metrics.SortStableDesc(impacts, func(i SupplierImpact) float64 { return float64(i.IssueCount) })

	affected := len(impacts)
	if len(impacts) > topSupplierCount {
		impacts = impacts[:topSupplierCount]
	}
	return impacts, affected
}

// IssueCounts holds per-kind shipment issue tallies.
type IssueCounts struct {
	QuantityDiscrepancies int `json:"quantityDiscrepancies"`
	SLAIssues             int `json:"slaIssues"`
	Delayed               int `json:"delayed"`
	Cancelled             int `json:"cancelled"`
	QualityIssues         int `json:"qualityIssues"`
}

func hasQualityIssue(notes string) bool {
	lowered := strings.ToLower(notes)
	return strings.Contains(lowered, "damage") ||
		strings.Contains(lowered, "defect") ||
		strings.Contains(lowered, "quality")
}

// ClassifyIssues counts shipments matching each issue kind. A shipment can
// count toward several kinds at once.
func ClassifyIssues(shipments []feed.Shipment) IssueCounts {
	var counts IssueCounts
	for _, s := range shipments {
		status := strings.ToLower(strings.TrimSpace(s.Status))
		if s.HasDiscrepancy() {
			counts.QuantityDiscrepancies++
		}
		if delta, ok := metrics.DeliveryDelta(s.ExpectedArrivalDate, s.ArrivalDate); ok && delta > 0 {
			counts.SLAIssues++
		}
		if status == "delayed" {
			counts.Delayed++
		}
		if status == "cancelled" {
			counts.Cancelled++
		}
		if hasQualityIssue(s.Notes) {
			counts.QualityIssues++
		}
	}
	return counts
}

// Phrase joins the non-zero issue counts into a readable fragment, e.g.
// "3 quantity discrepancies, 1 delayed shipment".
func (c IssueCounts) Phrase() string {
	parts := []string{}
	add := func(count int, singular, plural string) {
		if count == 0 {
			return
		}
		label := plural
		if count == 1 {
			label = singular
		}
		parts = append(parts, fmt.Sprintf("%d %s", count, label))
	}
	add(c.QuantityDiscrepancies, "quantity discrepancy", "quantity discrepancies")
	add(c.SLAIssues, "SLA issue", "SLA issues")
	add(c.Delayed, "delayed shipment", "delayed shipments")
	add(c.Cancelled, "cancelled shipment", "cancelled shipments")
	add(c.QualityIssues, "quality issue", "quality issues")
	return strings.Join(parts, ", ")
}

// Total returns the sum across all issue kinds.
func (c IssueCounts) Total() int {
	return c.QuantityDiscrepancies + c.SLAIssues + c.Delayed + c.Cancelled + c.QualityIssues
}

var percentageContexts = map[string]struct{}{
	"orders":    {},
	"shipments": {},
	"products":  {},
	"catalog":   {},
	"items":     {},
}

// PercentagePhrase renders "X% of <context>". It returns an empty string
// when the sample is too small to be meaningful (denominator under ten)
// or the numerator is zero, and falls back to "items" for an unknown
// context word.
func PercentagePhrase(numerator, denominator int, context string) string {
	if denominator < minPhraseSampleSet || numerator == 0 {
		return ""
	}
	if _, ok := percentageContexts[context]; !ok {
		context = "items"
	}
	pct := int(math.Round(100 * float64(numerator) / float64(denominator)))
	return fmt.Sprintf("%d%% of %s", pct, context)
}

// BusinessMetrics compares today's order flow against the trailing
// 30-day average.
type BusinessMetrics struct {
	TodayCount       int     `json:"todayCount"`
	HistoricalAvg    float64 `json:"historicalAvg"`
	PerformanceRatio float64 `json:"performanceRatio"`
}

// BusinessMetricsFor computes today's shipment count, the trailing 30-day
// daily average, and their ratio. The ratio is zero when there is no
// history to compare against.
func BusinessMetricsFor(shipments []feed.Shipment, now time.Time) BusinessMetrics {
	today := now.UTC().Format("2006-01-02")

	var todayCount, windowCount int
	for _, s := range shipments {
		if strings.HasPrefix(s.CreatedDate, today) {
			todayCount++
		}
		if metrics.WithinDays(s.CreatedDate, now, historicalDays) {
			windowCount++
		}
	}

	avg := float64(windowCount) / float64(historicalDays)
	ratio := 0.0
	if avg > 0 {
		ratio = math.Round(float64(todayCount)/avg*100) / 100
	}
	return BusinessMetrics{
		TodayCount:       todayCount,
		HistoricalAvg:    math.Round(avg*100) / 100,
		PerformanceRatio: ratio,
	}
}
