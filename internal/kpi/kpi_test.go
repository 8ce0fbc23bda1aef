package kpi

import (
	"testing"
	"time"

	"github.com/brandbuddy-hq/brandbuddy-backend/internal/feed"
)

func TestTopSupplierImpacts(t *testing.T) {
	shipments := []feed.Shipment{
		{Supplier: "A", ExpectedQuantity: 10, ReceivedQuantity: 5},
		{Supplier: "B", ExpectedQuantity: 10, ReceivedQuantity: 5},
		{Supplier: "B", ExpectedQuantity: 10, ReceivedQuantity: 5},
		{Supplier: "C", ExpectedQuantity: 10, ReceivedQuantity: 5},
		{Supplier: "C", ExpectedQuantity: 10, ReceivedQuantity: 5},
		{Supplier: "C", ExpectedQuantity: 10, ReceivedQuantity: 5},
		{Supplier: "D", ExpectedQuantity: 10, ReceivedQuantity: 5},
		{Supplier: "E", ExpectedQuantity: 10, ReceivedQuantity: 10},
	}

	impacts, affected := TopSupplierImpacts(shipments, feed.Shipment.HasDiscrepancy)
	if affected != 4 {
		t.Fatalf("expected 4 affected suppliers, got %d", affected)
	}
	if len(impacts) != 3 {
		t.Fatalf("expected top 3, got %d", len(impacts))
	}
	if impacts[0].Supplier != "C" || impacts[0].IssueCount != 3 {
		t.Fatalf("unexpected leader %+v", impacts[0])
	}
	// A and D tie at one issue each; A was seen first.
	if impacts[2].Supplier != "A" {
		t.Fatalf("tie should keep encounter order, got %s", impacts[2].Supplier)
	}
}

func TestClassifyIssues(t *testing.T) {
	shipments := []feed.Shipment{
		{ExpectedQuantity: 10, ReceivedQuantity: 8},
		{ExpectedQuantity: 5, ReceivedQuantity: 5,
			ExpectedArrivalDate: "2024-01-10", ArrivalDate: "2024-01-12"},
		{ExpectedQuantity: 5, ReceivedQuantity: 5, Status: "Delayed"},
		{ExpectedQuantity: 5, ReceivedQuantity: 5, Status: "cancelled"},
		{ExpectedQuantity: 5, ReceivedQuantity: 5, Notes: "two cartons arrived with damage"},
	}

	counts := ClassifyIssues(shipments)
	if counts.QuantityDiscrepancies != 1 || counts.SLAIssues != 1 ||
		counts.Delayed != 1 || counts.Cancelled != 1 || counts.QualityIssues != 1 {
		t.Fatalf("unexpected counts %+v", counts)
	}
	if counts.Total() != 5 {
		t.Fatalf("expected total 5, got %d", counts.Total())
	}

	phrase := counts.Phrase()
	want := "1 quantity discrepancy, 1 SLA issue, 1 delayed shipment, 1 cancelled shipment, 1 quality issue"
	if phrase != want {
		t.Fatalf("unexpected phrase %q", phrase)
	}
}

func TestIssuePhraseSkipsZeroKinds(t *testing.T) {
	counts := IssueCounts{QuantityDiscrepancies: 3, Cancelled: 2}
	if got := counts.Phrase(); got != "3 quantity discrepancies, 2 cancelled shipments" {
		t.Fatalf("unexpected phrase %q", got)
	}
	if got := (IssueCounts{}).Phrase(); got != "" {
		t.Fatalf("empty counts should produce empty phrase, got %q", got)
	}
}

func TestPercentagePhrase(t *testing.T) {
	cases := []struct {
		numerator, denominator int
		context                string
		want                   string
	}{
		{5, 20, "orders", "25% of orders"},
		{1, 3, "orders", ""},     // sample too small
		{0, 50, "shipments", ""}, // nothing to report
		{7, 10, "widgets", "70% of items"},
		{33, 100, "catalog", "33% of catalog"},
	}
	for _, tc := range cases {
		if got := PercentagePhrase(tc.numerator, tc.denominator, tc.context); got != tc.want {
			t.Fatalf("(%d/%d %s): expected %q, got %q",
				tc.numerator, tc.denominator, tc.context, tc.want, got)
		}
	}
}

func TestBusinessMetrics(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	var shipments []feed.Shipment
	// 60 shipments over the trailing 30 days, 6 of them today.
	for i := 0; i < 6; i++ {
		shipments = append(shipments, feed.Shipment{CreatedDate: "2024-06-15"})
	}
	for i := 0; i < 54; i++ {
		shipments = append(shipments, feed.Shipment{CreatedDate: "2024-06-01"})
	}
	// Old traffic outside the window.
	shipments = append(shipments, feed.Shipment{CreatedDate: "2024-01-01"})

	m := BusinessMetricsFor(shipments, now)
	if m.TodayCount != 6 {
		t.Fatalf("expected 6 today, got %d", m.TodayCount)
	}
	if m.HistoricalAvg != 2 {
		t.Fatalf("expected daily average 2, got %v", m.HistoricalAvg)
	}
	if m.PerformanceRatio != 3 {
		t.Fatalf("expected ratio 3, got %v", m.PerformanceRatio)
	}
}

func TestBusinessMetricsNoHistory(t *testing.T) {
	now := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	m := BusinessMetricsFor(nil, now)
	if m.TodayCount != 0 || m.HistoricalAvg != 0 || m.PerformanceRatio != 0 {
		t.Fatalf("empty input should be all zeros, got %+v", m)
	}
}
