// Package anomaly layers detection engines on top of the metric kernel:
// supplier cost spikes, warehouse discrepancy clusters, brand margin risk,
// supplier scorecards, and ABC/velocity classification. Every engine is
// deterministic and stable under input permutation.
package anomaly

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/brandbuddy-hq/brandbuddy-backend/internal/feed"
	"github.com/brandbuddy-hq/brandbuddy-backend/internal/metrics"
)

const (
	// TypeSupplierCostSpike marks a shipment priced far off its supplier's
	// running average.
	TypeSupplierCostSpike = "supplier_cost_spike"
	// TypeWarehouseDiscrepancy marks a warehouse with a high rate of
	// quantity discrepancies.
	TypeWarehouseDiscrepancy = "warehouse_discrepancy"

	SeverityHigh   = "High"
	SeverityMedium = "Medium"

	spikeVarianceThreshold = 0.40
	spikeSevereVariance    = 0.80
	spikeImpactFloor       = 1000

	warehouseRateThreshold = 0.30
	warehouseSevereRate    = 0.50
	warehouseImpactFloor   = 2000
	warehouseMinShipments  = 5

	baselineMinShipments = 3
	maxAnomalies         = 8
)

// Anomaly is one detected irregularity. Supplier spikes carry Supplier,
// SKU, and Variance; warehouse clusters carry WarehouseID and
// DiscrepancyRate. CurrentValue and ExpectedValue are the observed and
// baseline figures the detection compared: unit cost for spikes,
// discrepancy percentage for warehouse clusters.
type Anomaly struct {
	Type            string   `json:"type"`
	Supplier        string   `json:"supplier,omitempty"`
	WarehouseID     string   `json:"warehouseId,omitempty"`
	SKU             string   `json:"sku,omitempty"`
	Description     string   `json:"description"`
	Severity        string   `json:"severity"`
	CurrentValue    float64  `json:"currentValue"`
	ExpectedValue   float64  `json:"expectedValue"`
	Variance        int      `json:"variance,omitempty"`
	DiscrepancyRate int      `json:"discrepancyRate,omitempty"`
	FinancialImpact int      `json:"financialImpact"`
	RiskFactors     []string `json:"riskFactors"`
}

type costBaseline struct {
	sum   decimal.Decimal
	count int
}

// SupplierCostSpikes scans shipments in feed order and flags priced
// shipments that deviate from their supplier's running average cost. A
// supplier only establishes a baseline after three priced shipments, so
// the earliest shipments of any supplier never flag.
func SupplierCostSpikes(shipments []feed.Shipment) []Anomaly {
	baselines := map[string]*costBaseline{}
	var spikes []Anomaly

	for _, s := range shipments {
		if s.UnitCost == nil {
			continue
		}
		cost := *s.UnitCost

		base, ok := baselines[s.Supplier]
		if !ok {
			base = &costBaseline{sum: decimal.Zero}
			baselines[s.Supplier] = base
		}

		if base.count >= baselineMinShipments {
			mean, _ := base.sum.Div(decimal.NewFromInt(int64(base.count))).Float64()
			if mean > 0 {
				delta := math.Abs(cost - mean)
				variance := delta / mean
				impact := delta * float64(s.ReceivedQuantity)
				if variance > spikeVarianceThreshold && impact > spikeImpactFloor {
					severity := SeverityMedium
					if variance > spikeSevereVariance {
						severity = SeverityHigh
					}
					variancePct := int(math.Round(variance * 100))
					spikes = append(spikes, Anomaly{
						Type:     TypeSupplierCostSpike,
						Supplier: s.Supplier,
						SKU:      s.SKU,
						Description: fmt.Sprintf("%s charged $%.2f for %s against a $%.2f average",
							s.Supplier, cost, s.SKU, mean),
						Severity:        severity,
						CurrentValue:    cost,
						ExpectedValue:   math.Round(mean*100) / 100,
						Variance:        variancePct,
						FinancialImpact: int(math.Round(impact)),
						RiskFactors: []string{
							fmt.Sprintf("unit cost deviates %d%% from the supplier average", variancePct),
							fmt.Sprintf("estimated overcharge of $%.0f across %d units", impact, s.ReceivedQuantity),
						},
					})
				}
			}
		}

		base.sum = base.sum.Add(decimal.NewFromFloat(cost))
		base.count++
	}
	return spikes
}

// WarehouseDiscrepancies flags warehouses whose shipments show a high
// discrepancy rate with meaningful dollar impact. Warehouses with five or
// fewer shipments never flag.
func WarehouseDiscrepancies(shipments []feed.Shipment) []Anomaly {
	type warehouseStats struct {
		total         int
		discrepancies int
		impact        decimal.Decimal
	}

	byWarehouse := map[string]*warehouseStats{}
	order := []string{}

	for _, s := range shipments {
		stats, ok := byWarehouse[s.WarehouseID]
		if !ok {
			stats = &warehouseStats{impact: decimal.Zero}
			byWarehouse[s.WarehouseID] = stats
			order = append(order, s.WarehouseID)
		}
		stats.total++
		if s.HasDiscrepancy() {
			stats.discrepancies++
			diff := s.ExpectedQuantity - s.ReceivedQuantity
			if diff < 0 {
				diff = -diff
			}
			stats.impact = stats.impact.Add(
				decimal.NewFromInt(int64(diff)).Mul(decimal.NewFromFloat(s.CostOrZero())))
		}
	}

	var clusters []Anomaly
	for _, warehouseID := range order {
		stats := byWarehouse[warehouseID]
		if stats.total <= warehouseMinShipments {
			continue
		}
		rate := float64(stats.discrepancies) / float64(stats.total)
		impact, _ := stats.impact.Float64()
		if rate <= warehouseRateThreshold || impact <= warehouseImpactFloor {
			continue
		}
		severity := SeverityMedium
		if rate > warehouseSevereRate {
			severity = SeverityHigh
		}
		ratePct := math.Round(rate * 100)
		clusters = append(clusters, Anomaly{
			Type:        TypeWarehouseDiscrepancy,
			WarehouseID: warehouseID,
			Description: fmt.Sprintf("warehouse %s has discrepancies on %d of %d shipments",
				warehouseID, stats.discrepancies, stats.total),
			Severity:        severity,
			CurrentValue:    ratePct,
			ExpectedValue:   warehouseRateThreshold * 100,
			DiscrepancyRate: int(ratePct),
			FinancialImpact: int(math.Round(impact)),
			RiskFactors: []string{
				fmt.Sprintf("%d of %d shipments arrived with quantity discrepancies", stats.discrepancies, stats.total),
				fmt.Sprintf("discrepancy impact of $%.0f exceeds the $%d review floor", impact, warehouseImpactFloor),
			},
		})
	}
	return clusters
}

// Detect runs both shipment engines, orders the combined list by dollar
// impact, and caps it at eight entries.
func Detect(shipments []feed.Shipment) []Anomaly {
	combined := SupplierCostSpikes(shipments)
	combined = append(combined, WarehouseDiscrepancies(shipments)...)
	metrics.SortStableDesc(combined, func(a Anomaly) float64 { return float64(a.FinancialImpact) })
	if len(combined) > maxAnomalies {
		combined = combined[:maxAnomalies]
	}
	return combined
}
