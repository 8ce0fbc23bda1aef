// Package suggest is the per-item explainer: given one product or order
// row it produces a short analysis, action list, priority, and estimated
// dollar impact, optionally enriched with the SKU's sales history.
package suggest

import (
	"github.com/go-playground/validator/v10"

	"github.com/brandbuddy-hq/brandbuddy-backend/pkg/errors"
)

const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"

	PageInventory     = "inventory"
	PageReplenishment = "replenishment"

	lowStockThreshold  = 10
	highValueThreshold = 5_000
	mediumValueFloor   = 1_000
)

// Item is the record the client posts for explanation.
type Item struct {
	SKU          string   `json:"sku" validate:"required"`
	Name         string   `json:"name"`
	Supplier     string   `json:"supplier"`
	UnitQuantity int      `json:"unitQuantity"`
	UnitCost     *float64 `json:"unitCost"`
	Active       bool     `json:"active"`
	Status       string   `json:"status"`
}

// Request is the POST body for both suggestion endpoints.
type Request struct {
	ItemData Item   `json:"itemData" validate:"required"`
	Page     string `json:"page"`
}

// Suggestion is the explainer's response payload. Actions ride under the
// "actionable" key the dashboard already binds to.
type Suggestion struct {
	SKU             string   `json:"sku"`
	Text            string   `json:"suggestion"`
	Priority        string   `json:"priority"`
	Actions         []string `json:"actionable"`
	EstimatedImpact string   `json:"estimatedImpact"`
}

var validate = validator.New()

// ValidateRequest checks the POST body and converts validator output into
// the 400-mapped error kind.
func ValidateRequest(req Request) error {
	if err := validate.Struct(req); err != nil {
		return errors.Wrap(errors.CodeValidation, err, "itemData.sku is required")
	}
	return nil
}

// TotalValue is the item's inventory value at its unit cost.
func (i Item) TotalValue() float64 {
	cost := 0.0
	if i.UnitCost != nil {
		cost = *i.UnitCost
	}
	return float64(i.UnitQuantity) * cost
}

// PriorityFor derives urgency from stock level and inventory value.
func PriorityFor(item Item) string {
	value := item.TotalValue()
	outOfStock := item.Active && item.UnitQuantity == 0
	lowStock := item.Active && item.UnitQuantity > 0 && item.UnitQuantity < lowStockThreshold

	switch {
	case outOfStock, lowStock && value > highValueThreshold:
		return PriorityHigh
	case lowStock, !item.Active, value > mediumValueFloor:
		return PriorityMedium
	default:
		return PriorityLow
	}
}
