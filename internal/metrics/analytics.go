package metrics

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/brandbuddy-hq/brandbuddy-backend/internal/feed"
)

const growthWindowDays = 30

// AnalyticsKPIs is the headline bundle for the analytics page.
type AnalyticsKPIs struct {
	OrderVolumeGrowth     float64  `json:"orderVolumeGrowth"`
	FulfillmentEfficiency *float64 `json:"fulfillmentEfficiency"`
	ReturnRate            *float64 `json:"returnRate"`
	InventoryHealthScore  *float64 `json:"inventoryHealthScore"`
}

// AnalyticsKPIBundle computes growth and efficiency metrics. Growth
// compares the last 30 days against the 30 days before that.
func AnalyticsKPIBundle(products []feed.Product, shipments []feed.Shipment, now time.Time) AnalyticsKPIs {
	var (
		recent int
		older  int
	)
	for _, s := range shipments {
		if withinDays(s.CreatedDate, now, growthWindowDays) {
			recent++
		} else if betweenDaysAgo(s.CreatedDate, now, growthWindowDays, 2*growthWindowDays) {
			older++
		}
	}

	growth := 0.0
	if older > 0 {
		growth = 100 * float64(recent-older) / float64(older)
	}

	kpis := AnalyticsKPIs{OrderVolumeGrowth: math.Round(growth*10) / 10}

	if total := len(shipments); total > 0 {
		var fulfilled, discrepancies int
		for _, s := range shipments {
			if !s.HasDiscrepancy() && normalizeStatus(s.Status) != "cancelled" {
				fulfilled++
			}
			if s.HasDiscrepancy() {
				discrepancies++
			}
		}
		kpis.FulfillmentEfficiency = floatPtr(roundTo1(100 * float64(fulfilled) / float64(total)))
		kpis.ReturnRate = floatPtr(roundTo1(100 * float64(discrepancies) / float64(total)))
	}

	if total := len(products); total > 0 {
		var active int
		for _, p := range products {
			if p.Active {
				active++
			}
		}
		kpis.InventoryHealthScore = floatPtr(roundTo1(100 * float64(active) / float64(total)))
	}

	return kpis
}

// Performance tiers assigned by rank position.
const (
	TierLeading    = "Leading Brand"
	TierTop        = "Top Performer"
	TierStrong     = "Strong Performer"
	TierAverage    = "Average Performer"
	TierDeveloping = "Developing Brand"
)

// BrandPerformance is one row of the brand ranking table. The kernel
// supports multi-brand input even though the deployed filter is
// single-brand.
type BrandPerformance struct {
	BrandName        string  `json:"brandName"`
	SKUCount         int     `json:"skuCount"`
	TotalValue       int     `json:"totalValue"`
	ActivePercentage float64 `json:"activePercentage"`
	Tier             string  `json:"tier"`
}

// BrandRankings groups products by brand, ranks them by total inventory
// value, and assigns performance tiers by position.
func BrandRankings(products []feed.Product) []BrandPerformance {
	type brandAcc struct {
		index  int
		skus   int
		active int
		value  decimal.Decimal
	}
	byBrand := map[string]*brandAcc{}
	order := []string{}

	for _, p := range products {
		acc, ok := byBrand[p.BrandName]
		if !ok {
			acc = &brandAcc{index: len(order), value: decimal.Zero}
			byBrand[p.BrandName] = acc
			order = append(order, p.BrandName)
		}
		acc.skus++
		if p.Active {
			acc.active++
		}
		acc.value = acc.value.Add(dollarValue(p.UnitQuantity, p.CostOrZero()))
	}

	rankings := make([]BrandPerformance, 0, len(order))
	for _, brand := range order {
		acc := byBrand[brand]
		activePct := 0.0
		if acc.skus > 0 {
			activePct = roundTo1(100 * float64(acc.active) / float64(acc.skus))
		}
		rankings = append(rankings, BrandPerformance{
			BrandName:        brand,
			SKUCount:         acc.skus,
			TotalValue:       roundedInt(acc.value),
			ActivePercentage: activePct,
		})
	}
	sortStableDesc(rankings, func(b BrandPerformance) float64 { return float64(b.TotalValue) })

	total := len(rankings)
	for i := range rankings {
		rankings[i].Tier = tierForRank(i+1, total)
	}
	return rankings
}

func tierForRank(rank, total int) string {
	switch {
	case rank == 1:
		return TierLeading
	case rank <= 3:
		return TierTop
	case float64(rank) <= math.Ceil(0.3*float64(total)):
		return TierStrong
	case float64(rank) <= math.Ceil(0.7*float64(total)):
		return TierAverage
	default:
		return TierDeveloping
	}
}
