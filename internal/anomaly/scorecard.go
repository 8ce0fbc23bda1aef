package anomaly

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/brandbuddy-hq/brandbuddy-backend/internal/feed"
	"github.com/brandbuddy-hq/brandbuddy-backend/internal/metrics"
)

const (
	TrendImproving = "improving"
	TrendDeclining = "declining"
	TrendStable    = "stable"

	ProfileLow    = "low"
	ProfileMedium = "medium"
	ProfileHigh   = "high"

	trendWindowDays = 30
	trendDeadband   = 5.0

	lowRiskScoreFloor    = 90
	mediumRiskScoreFloor = 75
	lowRiskValueCeiling  = 50_000
	mediumValueCeiling   = 100_000
)

// SupplierScore is one supplier's delivery scorecard row.
type SupplierScore struct {
	Supplier         string  `json:"supplier"`
	TotalShipments   int     `json:"totalShipments"`
	OnTimeRate       float64 `json:"onTimeRate"`
	QuantityAccuracy float64 `json:"quantityAccuracy"`
	PerformanceScore int     `json:"performanceScore"`
	Trend            string  `json:"trend"`
	RiskProfile      string  `json:"riskProfile"`
	TotalValue       int     `json:"totalValue"`
}

type supplierStats struct {
	total        int
	onTime       int
	accurate     int
	recentTotal  int
	recentOnTime int
	value        decimal.Decimal
}

func onTime(s feed.Shipment) bool {
	delta, ok := metrics.DeliveryDelta(s.ExpectedArrivalDate, s.ArrivalDate)
	return ok && delta <= 0
}

// SupplierScorecard aggregates per-supplier delivery performance, ordered
// by performance score. Shipments missing either arrival date still count
// toward the total but never toward the on-time numerator.
func SupplierScorecard(shipments []feed.Shipment, now time.Time) []SupplierScore {
	bySupplier := map[string]*supplierStats{}
	order := []string{}

	for _, s := range shipments {
		stats, ok := bySupplier[s.Supplier]
		if !ok {
			stats = &supplierStats{value: decimal.Zero}
			bySupplier[s.Supplier] = stats
			order = append(order, s.Supplier)
		}

		stats.total++
		delivered := onTime(s)
		if delivered {
			stats.onTime++
		}
		if !s.HasDiscrepancy() {
			stats.accurate++
		}
		if metrics.WithinDays(s.CreatedDate, now, trendWindowDays) {
			stats.recentTotal++
			if delivered {
				stats.recentOnTime++
			}
		}
		stats.value = stats.value.Add(
			decimal.NewFromInt(int64(s.ReceivedQuantity)).Mul(decimal.NewFromFloat(s.CostOrZero())))
	}

	scores := make([]SupplierScore, 0, len(order))
	for _, supplier := range order {
		stats := bySupplier[supplier]

		onTimeRate := 100 * float64(stats.onTime) / float64(stats.total)
		accuracy := 100 * float64(stats.accurate) / float64(stats.total)
		performance := int(math.Round(0.6*onTimeRate + 0.4*accuracy))
		value, _ := stats.value.Float64()

		trend := TrendStable
		if stats.recentTotal > 0 {
			recentRate := 100 * float64(stats.recentOnTime) / float64(stats.recentTotal)
			switch {
			case recentRate > onTimeRate+trendDeadband:
				trend = TrendImproving
			case recentRate < onTimeRate-trendDeadband:
				trend = TrendDeclining
			}
		}

		scores = append(scores, SupplierScore{
			Supplier:         supplier,
			TotalShipments:   stats.total,
			OnTimeRate:       math.Round(onTimeRate*10) / 10,
			QuantityAccuracy: math.Round(accuracy*10) / 10,
			PerformanceScore: performance,
			Trend:            trend,
			RiskProfile:      riskProfile(performance, value),
			TotalValue:       int(math.Round(value)),
		})
	}

	metrics.SortStableDesc(scores, func(s SupplierScore) float64 { return float64(s.PerformanceScore) })
	return scores
}

// riskProfile keeps the source ranking behavior: the medium tier is a
// disjunction, so a low-scoring supplier with modest volume still ranks
// medium rather than high.
func riskProfile(performance int, totalValue float64) string {
	switch {
	case performance >= lowRiskScoreFloor && totalValue < lowRiskValueCeiling:
		return ProfileLow
	case performance >= mediumRiskScoreFloor || totalValue < mediumValueCeiling:
		return ProfileMedium
	default:
		return ProfileHigh
	}
}
