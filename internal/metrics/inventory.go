package metrics

import (
	"github.com/shopspring/decimal"

	"github.com/brandbuddy-hq/brandbuddy-backend/internal/feed"
)

const (
	lowStockThreshold    = 10
	overstockedThreshold = 100
)

// StockStatus is the table-view status derived for each product.
type StockStatus string

const (
	StatusInactive    StockStatus = "Inactive"
	StatusOutOfStock  StockStatus = "Out of Stock"
	StatusLowStock    StockStatus = "Low Stock"
	StatusOverstocked StockStatus = "Overstocked"
	StatusInStock     StockStatus = "In Stock"
)

// ProductStatus derives the display status for one product. Order matters:
// inactivity trumps stock level.
func ProductStatus(p feed.Product) StockStatus {
	switch {
	case !p.Active:
		return StatusInactive
	case p.UnitQuantity == 0:
		return StatusOutOfStock
	case p.UnitQuantity < lowStockThreshold:
		return StatusLowStock
	case p.UnitQuantity > overstockedThreshold:
		return StatusOverstocked
	default:
		return StatusInStock
	}
}

// InventoryKPIs is the headline bundle for the inventory page.
type InventoryKPIs struct {
	TotalActiveSKUs     int `json:"totalActiveSKUs"`
	TotalInventoryValue int `json:"totalInventoryValue"`
	LowStockAlerts      int `json:"lowStockAlerts"`
	InactiveSKUs        int `json:"inactiveSKUs"`

	// Legacy counts kept for the table header chips.
	InStockCount       int `json:"inStockCount"`
	UnfulfillableCount int `json:"unfulfillableCount"`
	OverstockedCount   int `json:"overstockedCount"`
}

// InventoryKPIBundle computes product-only inventory KPIs.
func InventoryKPIBundle(products []feed.Product) InventoryKPIs {
	var kpis InventoryKPIs
	value := decimal.Zero

	for _, p := range products {
		if p.Active {
			kpis.TotalActiveSKUs++
		} else {
			kpis.InactiveSKUs++
			kpis.UnfulfillableCount++
		}

		value = value.Add(dollarValue(p.UnitQuantity, p.CostOrZero()))

		switch ProductStatus(p) {
		case StatusLowStock:
			kpis.LowStockAlerts++
		case StatusInStock:
			kpis.InStockCount++
		case StatusOverstocked:
			kpis.OverstockedCount++
		}
	}

	kpis.TotalInventoryValue = roundedInt(value)
	return kpis
}

// InventoryItem is one row of the enhanced inventory list.
type InventoryItem struct {
	SKU          string      `json:"sku"`
	Name         string      `json:"name"`
	Supplier     string      `json:"supplier"`
	UnitQuantity int         `json:"unitQuantity"`
	UnitCost     *float64    `json:"unitCost"`
	TotalValue   float64     `json:"totalValue"`
	Status       StockStatus `json:"status"`
	Active       bool        `json:"active"`
}

// InventoryItems derives the enhanced item list in feed order.
func InventoryItems(products []feed.Product) []InventoryItem {
	items := make([]InventoryItem, 0, len(products))
	for _, p := range products {
		value, _ := dollarValue(p.UnitQuantity, p.CostOrZero()).Float64()
		items = append(items, InventoryItem{
			SKU:          p.SKU,
			Name:         p.Name,
			Supplier:     p.SupplierName,
			UnitQuantity: p.UnitQuantity,
			UnitCost:     p.UnitCost,
			TotalValue:   value,
			Status:       ProductStatus(p),
			Active:       p.Active,
		})
	}
	return items
}
