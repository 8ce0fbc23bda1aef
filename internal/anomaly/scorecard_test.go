package anomaly

import (
	"testing"
	"time"

	"github.com/brandbuddy-hq/brandbuddy-backend/internal/feed"
)

var scorecardNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func TestSupplierScorecardFormula(t *testing.T) {
	shipments := []feed.Shipment{
		// On time and accurate.
		{Supplier: "Acme", ExpectedArrivalDate: "2024-01-10", ArrivalDate: "2024-01-09",
			ExpectedQuantity: 10, ReceivedQuantity: 10, UnitCost: cost(10), CreatedDate: "2024-01-01"},
		// Late but accurate.
		{Supplier: "Acme", ExpectedArrivalDate: "2024-01-10", ArrivalDate: "2024-01-12",
			ExpectedQuantity: 10, ReceivedQuantity: 10, UnitCost: cost(10), CreatedDate: "2024-01-02"},
		// On time but short.
		{Supplier: "Acme", ExpectedArrivalDate: "2024-01-10", ArrivalDate: "2024-01-10",
			ExpectedQuantity: 10, ReceivedQuantity: 8, UnitCost: cost(10), CreatedDate: "2024-01-03"},
		// Missing arrival date counts toward total only.
		{Supplier: "Acme", ExpectedArrivalDate: "2024-01-10",
			ExpectedQuantity: 10, ReceivedQuantity: 10, UnitCost: cost(10), CreatedDate: "2024-01-04"},
	}

	scores := SupplierScorecard(shipments, scorecardNow)
	if len(scores) != 1 {
		t.Fatalf("expected one supplier, got %d", len(scores))
	}
	score := scores[0]
	if score.TotalShipments != 4 {
		t.Fatalf("expected 4 shipments, got %d", score.TotalShipments)
	}
	if score.OnTimeRate != 50 {
		t.Fatalf("expected on-time 50, got %v", score.OnTimeRate)
	}
	if score.QuantityAccuracy != 75 {
		t.Fatalf("expected accuracy 75, got %v", score.QuantityAccuracy)
	}
	// round(0.6*50 + 0.4*75) = round(60) = 60
	if score.PerformanceScore != 60 {
		t.Fatalf("expected performance 60, got %d", score.PerformanceScore)
	}
	if score.Trend != TrendStable {
		t.Fatalf("no recent shipments should read stable, got %s", score.Trend)
	}
}

func TestSupplierScorecardTrend(t *testing.T) {
	recent := scorecardNow.AddDate(0, 0, -5).Format("2006-01-02")
	old := "2024-01-01"

	shipments := []feed.Shipment{
		// Two old late shipments drag the overall rate down.
		{Supplier: "Acme", ExpectedArrivalDate: "2024-01-10", ArrivalDate: "2024-01-15",
			ExpectedQuantity: 1, ReceivedQuantity: 1, CreatedDate: old},
		{Supplier: "Acme", ExpectedArrivalDate: "2024-01-10", ArrivalDate: "2024-01-15",
			ExpectedQuantity: 1, ReceivedQuantity: 1, CreatedDate: old},
		// Two recent on-time shipments.
		{Supplier: "Acme", ExpectedArrivalDate: recent, ArrivalDate: recent,
			ExpectedQuantity: 1, ReceivedQuantity: 1, CreatedDate: recent},
		{Supplier: "Acme", ExpectedArrivalDate: recent, ArrivalDate: recent,
			ExpectedQuantity: 1, ReceivedQuantity: 1, CreatedDate: recent},
	}

	scores := SupplierScorecard(shipments, scorecardNow)
	// Overall 50%, recent 100%: improving.
	if scores[0].Trend != TrendImproving {
		t.Fatalf("expected improving, got %s", scores[0].Trend)
	}

	// Flip the windows: recent late, old on time.
	for i := range shipments {
		if shipments[i].CreatedDate == old {
			shipments[i].ArrivalDate = shipments[i].ExpectedArrivalDate
		} else {
			shipments[i].ArrivalDate = scorecardNow.AddDate(0, 0, -2).Format("2006-01-02")
			shipments[i].ExpectedArrivalDate = scorecardNow.AddDate(0, 0, -5).Format("2006-01-02")
		}
	}
	scores = SupplierScorecard(shipments, scorecardNow)
	if scores[0].Trend != TrendDeclining {
		t.Fatalf("expected declining, got %s", scores[0].Trend)
	}
}

func TestSupplierScorecardRiskProfiles(t *testing.T) {
	cases := []struct {
		performance int
		totalValue  float64
		profile     string
	}{
		{95, 10_000, ProfileLow},
		{95, 60_000, ProfileMedium},  // high score but too much volume for low
		{80, 200_000, ProfileMedium}, // score carries the disjunction
		{50, 50_000, ProfileMedium},  // volume carries the disjunction
		{50, 150_000, ProfileHigh},
	}
	for _, tc := range cases {
		if got := riskProfile(tc.performance, tc.totalValue); got != tc.profile {
			t.Fatalf("(%d, %.0f): expected %s, got %s",
				tc.performance, tc.totalValue, tc.profile, got)
		}
	}
}

func TestSupplierScorecardOrdering(t *testing.T) {
	shipments := []feed.Shipment{
		// Weak: late and short.
		{Supplier: "Weak", ExpectedArrivalDate: "2024-01-10", ArrivalDate: "2024-01-20",
			ExpectedQuantity: 10, ReceivedQuantity: 5, CreatedDate: "2024-01-01"},
		// Strong: on time and accurate.
		{Supplier: "Strong", ExpectedArrivalDate: "2024-01-10", ArrivalDate: "2024-01-10",
			ExpectedQuantity: 10, ReceivedQuantity: 10, CreatedDate: "2024-01-01"},
	}

	scores := SupplierScorecard(shipments, scorecardNow)
	if len(scores) != 2 {
		t.Fatalf("expected two suppliers, got %d", len(scores))
	}
	if scores[0].Supplier != "Strong" || scores[0].PerformanceScore != 100 {
		t.Fatalf("expected Strong first with 100, got %+v", scores[0])
	}
	if scores[1].PerformanceScore != 0 {
		t.Fatalf("expected Weak at 0, got %d", scores[1].PerformanceScore)
	}
}
