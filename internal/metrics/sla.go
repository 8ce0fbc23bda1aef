package metrics

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/brandbuddy-hq/brandbuddy-backend/internal/feed"
)

const (
	breachCostRate       = 0.15
	expeditingSurcharge  = 25
	fallbackUnitCost     = 50.0
	slaComplianceTarget  = 0.95
	atRiskHorizonDays    = 2
	lostSalesDays        = 5
	dailySalesAssumption = 3
	lostSalesMarkup      = 1.4
)

// SLAKPIs is the headline bundle for the SLA compliance page.
type SLAKPIs struct {
	OverallSLACompliance       *int     `json:"overallSLACompliance"`
	AverageDeliveryPerformance *float64 `json:"averageDeliveryPerformance"`
	AtRiskShipments            int      `json:"atRiskShipments"`
	CostOfSLABreaches          int      `json:"costOfSLABreaches"`
}

// MonthlyBreachCost is one bucket of the six-month SLA trend.
type MonthlyBreachCost struct {
	Month             string `json:"month"`
	BreachCost        int    `json:"breachCost"`
	MissedOpportunity int    `json:"missedOpportunity"`
}

// SupplierBreachCost aggregates SLA breach costs for one supplier.
type SupplierBreachCost struct {
	Supplier    string `json:"supplier"`
	TotalCost   int    `json:"totalCost"`
	BreachCount int    `json:"breachCount"`
}

// SLAFinancialImpact quantifies what missed SLAs cost the brand.
type SLAFinancialImpact struct {
	TotalSLABreachCost    int                  `json:"totalSLABreachCost"`
	OpportunityCost       int                  `json:"opportunityCost"`
	PotentialSavings      int                  `json:"potentialSavings"`
	MonthlyTrend          []MonthlyBreachCost  `json:"monthlyTrend"`
	SupplierCostBreakdown []SupplierBreachCost `json:"supplierCostBreakdown"`
}

// isLate reports whether the shipment arrived after its expected date.
// Shipments missing either date are never late.
func isLate(s feed.Shipment) bool {
	delta, ok := deliveryDelta(s.ExpectedArrivalDate, s.ArrivalDate)
	return ok && delta > 0
}

// isBreach: late arrival or quantity inaccuracy.
func isBreach(s feed.Shipment) bool {
	return isLate(s) || s.HasDiscrepancy()
}

func isInTransit(status string) bool {
	normalized := normalizeStatus(status)
	return strings.Contains(normalized, "transit") ||
		strings.Contains(normalized, "processing") ||
		strings.Contains(normalized, "pending")
}

// SLAKPIBundle computes the SLA page headline KPIs.
func SLAKPIBundle(shipments []feed.Shipment, now time.Time) SLAKPIs {
	total := len(shipments)
	if total == 0 {
		return SLAKPIs{}
	}

	var (
		compliant  int
		deltaSum   float64
		deltaCount int
		atRisk     int
	)
	breachCost := decimal.Zero

	horizon := now.UTC().AddDate(0, 0, atRiskHorizonDays)

	for _, s := range shipments {
		delta, hasDates := deliveryDelta(s.ExpectedArrivalDate, s.ArrivalDate)
		if hasDates {
			deltaSum += delta
			deltaCount++
		}
		if hasDates && delta <= 0 && !s.HasDiscrepancy() {
			compliant++
		}

		if isInTransit(s.Status) {
			if expected, ok := parseDate(s.ExpectedArrivalDate); ok && !expected.After(horizon) {
				atRisk++
			}
		}

		if isBreach(s) {
			cost := dollarValue(s.ExpectedQuantity, s.CostOr(fallbackUnitCost)).
				Mul(decimal.NewFromFloat(breachCostRate))
			breachCost = breachCost.Add(cost)
		}
	}

	kpis := SLAKPIs{
		OverallSLACompliance: intPtr(roundPct(100 * float64(compliant) / float64(total))),
		AtRiskShipments:      atRisk,
		CostOfSLABreaches:    roundedInt(breachCost),
	}
	if deltaCount > 0 {
		kpis.AverageDeliveryPerformance = floatPtr(roundTo1(deltaSum / float64(deltaCount)))
	}
	return kpis
}

// perBreachCost is the modeled cost of one breach: a percentage of the
// shipment's value plus a fixed expediting surcharge.
func perBreachCost(s feed.Shipment) decimal.Decimal {
	value := dollarValue(s.ExpectedQuantity, s.CostOr(fallbackUnitCost))
	return value.Mul(decimal.NewFromFloat(breachCostRate)).
		Add(decimal.NewFromInt(expeditingSurcharge))
}

// SLAFinancialImpactBundle extends the SLA KPIs with cost modeling.
func SLAFinancialImpactBundle(products []feed.Product, shipments []feed.Shipment, now time.Time) SLAFinancialImpact {
	totalBreach := decimal.Zero
	monthly := map[string]decimal.Decimal{}

	type supplierAcc struct {
		index int
		cost  decimal.Decimal
		count int
	}
	bySupplier := map[string]*supplierAcc{}
	supplierOrder := []string{}

	for _, s := range shipments {
		if !isBreach(s) {
			continue
		}
		cost := perBreachCost(s)
		totalBreach = totalBreach.Add(cost)

		if arrival, ok := parseDate(s.ArrivalDate); ok {
			key := arrival.Format("2006-01")
			monthly[key] = monthly[key].Add(cost)
		}

		acc, ok := bySupplier[s.Supplier]
		if !ok {
			acc = &supplierAcc{index: len(supplierOrder), cost: decimal.Zero}
			bySupplier[s.Supplier] = acc
			supplierOrder = append(supplierOrder, s.Supplier)
		}
		acc.cost = acc.cost.Add(cost)
		acc.count++
	}

	opportunity := decimal.Zero
	for _, p := range products {
		if p.Active && p.UnitQuantity == 0 {
			lost := decimal.NewFromFloat(p.CostOr(fallbackUnitCost)).
				Mul(decimal.NewFromInt(lostSalesDays * dailySalesAssumption)).
				Mul(decimal.NewFromFloat(lostSalesMarkup))
			opportunity = opportunity.Add(lost)
		}
	}

	compliance := complianceFraction(shipments)
	gap := slaComplianceTarget - compliance
	if gap < 0 {
		gap = 0
	}
	savings := totalBreach.Mul(decimal.NewFromFloat(gap))

	// Anchor at the first of the month: stepping AddDate from a day-29..31
	// anchor normalizes through nonexistent dates and skips a bucket.
	trend := make([]MonthlyBreachCost, 0, 6)
	utc := now.UTC()
	cursor := time.Date(utc.Year(), utc.Month()-5, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 6; i++ {
		key := cursor.Format("2006-01")
		cost := monthly[key]
		trend = append(trend, MonthlyBreachCost{
			Month:             cursor.Format("Jan 2006"),
			BreachCost:        roundedInt(cost),
			MissedOpportunity: roundedInt(cost.Mul(decimal.NewFromFloat(0.20))),
		})
		cursor = cursor.AddDate(0, 1, 0)
	}

	breakdown := make([]SupplierBreachCost, 0, len(supplierOrder))
	for _, supplier := range supplierOrder {
		acc := bySupplier[supplier]
		breakdown = append(breakdown, SupplierBreachCost{
			Supplier:    supplier,
			TotalCost:   roundedInt(acc.cost),
			BreachCount: acc.count,
		})
	}
	sortStableDesc(breakdown, func(b SupplierBreachCost) float64 { return float64(b.TotalCost) })
	if len(breakdown) > 10 {
		breakdown = breakdown[:10]
	}

	return SLAFinancialImpact{
		TotalSLABreachCost:    roundedInt(totalBreach),
		OpportunityCost:       roundedInt(opportunity),
		PotentialSavings:      roundedInt(savings),
		MonthlyTrend:          trend,
		SupplierCostBreakdown: breakdown,
	}
}

// complianceFraction is the on-time-and-accurate share in [0,1].
func complianceFraction(shipments []feed.Shipment) float64 {
	if len(shipments) == 0 {
		return 0
	}
	var compliant int
	for _, s := range shipments {
		delta, ok := deliveryDelta(s.ExpectedArrivalDate, s.ArrivalDate)
		if ok && delta <= 0 && !s.HasDiscrepancy() {
			compliant++
		}
	}
	return float64(compliant) / float64(len(shipments))
}
