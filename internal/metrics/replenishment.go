package metrics

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/brandbuddy-hq/brandbuddy-backend/internal/feed"
)

const (
	criticalStockThreshold = 5
	targetStockLevel       = 20
	supplierAlertWindow    = 30
)

// ReplenishmentKPIs is the headline bundle for the replenishment page.
type ReplenishmentKPIs struct {
	CriticalSKUs           int `json:"criticalSKUs"`
	ReplenishmentValue     int `json:"replenishmentValue"`
	SupplierAlerts         int `json:"supplierAlerts"`
	ReorderRecommendations int `json:"reorderRecommendations"`
}

// ReplenishmentKPIBundle computes the replenishment headline KPIs.
func ReplenishmentKPIBundle(products []feed.Product, shipments []feed.Shipment, now time.Time) ReplenishmentKPIs {
	var (
		critical   int
		outOfStock int
	)
	value := decimal.Zero

	for _, p := range products {
		if !p.Active {
			continue
		}
		if p.UnitQuantity == 0 {
			outOfStock++
		}
		if p.UnitQuantity > 0 && p.UnitQuantity < criticalStockThreshold {
			critical++
		}
		if p.UnitQuantity < lowStockThreshold {
			shortfall := targetStockLevel - p.UnitQuantity
			if shortfall > 0 {
				value = value.Add(dollarValue(shortfall, p.CostOrZero()))
			}
		}
	}

	alertSuppliers := map[string]struct{}{}
	for _, s := range shipments {
		if !withinDays(s.CreatedDate, now, supplierAlertWindow) {
			continue
		}
		if s.HasDiscrepancy() || normalizeStatus(s.Status) == "delayed" {
			alertSuppliers[s.Supplier] = struct{}{}
		}
	}

	return ReplenishmentKPIs{
		CriticalSKUs:           critical,
		ReplenishmentValue:     roundedInt(value),
		SupplierAlerts:         len(alertSuppliers),
		ReorderRecommendations: critical + outOfStock,
	}
}

// CriticalItem is one row of the critical-SKU list.
type CriticalItem struct {
	SKU          string      `json:"sku"`
	Name         string      `json:"name"`
	Supplier     string      `json:"supplier"`
	UnitQuantity int         `json:"unitQuantity"`
	Status       StockStatus `json:"status"`
}

// CriticalItems lists active products in the critical stock band, feed
// order preserved.
func CriticalItems(products []feed.Product) []CriticalItem {
	items := []CriticalItem{}
	for _, p := range products {
		if !p.Active || p.UnitQuantity == 0 || p.UnitQuantity >= criticalStockThreshold {
			continue
		}
		items = append(items, CriticalItem{
			SKU:          p.SKU,
			Name:         p.Name,
			Supplier:     p.SupplierName,
			UnitQuantity: p.UnitQuantity,
			Status:       ProductStatus(p),
		})
	}
	return items
}

// ReorderSuggestion recommends an order quantity that refills an active
// low or out-of-stock product to the target level.
type ReorderSuggestion struct {
	SKU              string `json:"sku"`
	Name             string `json:"name"`
	Supplier         string `json:"supplier"`
	CurrentStock     int    `json:"currentStock"`
	RecommendedOrder int    `json:"recommendedOrder"`
	EstimatedCost    int    `json:"estimatedCost"`
}

// ReorderSuggestions derives reorder rows for active products below the
// low-stock threshold, including out-of-stock ones.
func ReorderSuggestions(products []feed.Product) []ReorderSuggestion {
	suggestions := []ReorderSuggestion{}
	for _, p := range products {
		if !p.Active || p.UnitQuantity >= lowStockThreshold {
			continue
		}
		quantity := targetStockLevel - p.UnitQuantity
		if quantity < 0 {
			quantity = 0
		}
		suggestions = append(suggestions, ReorderSuggestion{
			SKU:              p.SKU,
			Name:             p.Name,
			Supplier:         p.SupplierName,
			CurrentStock:     p.UnitQuantity,
			RecommendedOrder: quantity,
			EstimatedCost:    roundedInt(dollarValue(quantity, p.CostOrZero())),
		})
	}
	return suggestions
}
