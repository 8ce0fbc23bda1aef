package anomaly

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/brandbuddy-hq/brandbuddy-backend/internal/feed"
	"github.com/brandbuddy-hq/brandbuddy-backend/internal/metrics"
)

const (
	RiskHigh   = "High"
	RiskMedium = "Medium"
	RiskLow    = "Low"

	marginRiskMinSKUs = 5
	maxMarginRisks    = 5

	annualizedInactiveMonths = 12
)

// MarginRisk scores one brand's margin exposure from catalog complexity,
// cost pressure, inactive share, and shipment discrepancies. PrimaryDrivers
// names the score contributions that fired, in scoring order.
type MarginRisk struct {
	Brand              string   `json:"brandName"`
	SKUCount           int      `json:"skuCount"`
	AvgUnitCost        float64  `json:"avgUnitCost"`
	InactivePercentage float64  `json:"inactivePercentage"`
	RiskScore          int      `json:"riskScore"`
	RiskLevel          string   `json:"riskLevel"`
	PrimaryDrivers     []string `json:"primaryDrivers"`
	FinancialImpact    int      `json:"financialImpact"`
}

type brandGroup struct {
	skuCount      int
	inactiveCount int
	costSum       decimal.Decimal
	costCount     int
	impact        decimal.Decimal
}

func riskLevelForScore(score int) string {
	switch {
	case score >= 60:
		return RiskHigh
	case score >= 30:
		return RiskMedium
	default:
		return RiskLow
	}
}

// MarginRisks groups the catalog by brand, scores each brand, and returns
// the five highest-scoring brands with more than five SKUs. The deployed
// filter is single-brand but the scoring handles multi-brand input.
func MarginRisks(products []feed.Product, shipments []feed.Shipment) []MarginRisk {
	groups := map[string]*brandGroup{}
	order := []string{}

	for _, p := range products {
		group, ok := groups[p.BrandName]
		if !ok {
			group = &brandGroup{costSum: decimal.Zero, impact: decimal.Zero}
			groups[p.BrandName] = group
			order = append(order, p.BrandName)
		}
		group.skuCount++
		if !p.Active {
			group.inactiveCount++
		}
		if p.UnitCost != nil {
			group.costSum = group.costSum.Add(decimal.NewFromFloat(*p.UnitCost))
			group.costCount++
		}
	}

	for _, s := range shipments {
		group, ok := groups[s.BrandName]
		if !ok || !s.HasDiscrepancy() || s.UnitCost == nil {
			continue
		}
		diff := s.ExpectedQuantity - s.ReceivedQuantity
		if diff < 0 {
			diff = -diff
		}
		group.impact = group.impact.Add(
			decimal.NewFromInt(int64(diff)).Mul(decimal.NewFromFloat(*s.UnitCost)))
	}

	var risks []MarginRisk
	for _, brand := range order {
		group := groups[brand]

		avgCost := 0.0
		if group.costCount > 0 {
			avgCost, _ = group.costSum.Div(decimal.NewFromInt(int64(group.costCount))).Float64()
		}
		inactivePct := 100 * float64(group.inactiveCount) / float64(group.skuCount)
		shipmentImpact, _ := group.impact.Float64()

		score := 0
		var drivers []string
		switch {
		case group.skuCount > 50:
			score += 25
			drivers = append(drivers, fmt.Sprintf("large catalog complexity (%d SKUs)", group.skuCount))
		case group.skuCount > 20:
			score += 15
			drivers = append(drivers, fmt.Sprintf("growing catalog complexity (%d SKUs)", group.skuCount))
		}
		switch {
		case avgCost > 50:
			score += 30
			drivers = append(drivers, fmt.Sprintf("high average unit cost ($%.2f)", avgCost))
		case avgCost > 20:
			score += 15
			drivers = append(drivers, fmt.Sprintf("elevated average unit cost ($%.2f)", avgCost))
		}
		switch {
		case inactivePct > 30:
			score += 25
			drivers = append(drivers, fmt.Sprintf("%.0f%% of SKUs inactive", inactivePct))
		case inactivePct > 15:
			score += 10
			drivers = append(drivers, fmt.Sprintf("%.0f%% of SKUs inactive", inactivePct))
		}
		if shipmentImpact > 5000 {
			score += 20
			drivers = append(drivers, fmt.Sprintf("shipment discrepancies worth $%.0f", shipmentImpact))
		}
		if score > 100 {
			score = 100
		}

		if score == 0 || group.skuCount <= marginRiskMinSKUs {
			continue
		}

		impact := shipmentImpact + float64(group.inactiveCount)*avgCost*annualizedInactiveMonths
		risks = append(risks, MarginRisk{
			Brand:              brand,
			SKUCount:           group.skuCount,
			AvgUnitCost:        math.Round(avgCost*100) / 100,
			InactivePercentage: math.Round(inactivePct*10) / 10,
			RiskScore:          score,
			RiskLevel:          riskLevelForScore(score),
			PrimaryDrivers:     drivers,
			FinancialImpact:    int(math.Round(impact)),
		})
	}

	metrics.SortStableDesc(risks, func(r MarginRisk) float64 { return float64(r.RiskScore) })
	if len(risks) > maxMarginRisks {
		risks = risks[:maxMarginRisks]
	}
	return risks
}
