package metrics

import (
	"github.com/brandbuddy-hq/brandbuddy-backend/internal/feed"
)

// Order is a shipment reinterpreted as an inbound order for the orders
// page table.
type Order struct {
	OrderID             string   `json:"orderId"`
	PurchaseOrderNumber string   `json:"purchaseOrderNumber"`
	Supplier            string   `json:"supplier"`
	SKU                 string   `json:"sku"`
	WarehouseID         string   `json:"warehouseId"`
	ExpectedQuantity    int      `json:"expectedQuantity"`
	ReceivedQuantity    int      `json:"receivedQuantity"`
	UnitCost            *float64 `json:"unitCost"`
	Value               float64  `json:"value"`
	Status              string   `json:"status"`
	CreatedDate         string   `json:"createdDate"`
	ExpectedArrivalDate string   `json:"expectedArrivalDate"`
	ArrivalDate         string   `json:"arrivalDate"`
	HasDiscrepancy      bool     `json:"hasDiscrepancy"`
}

// OrdersFromShipments maps the shipment feed onto order rows, feed order
// preserved.
func OrdersFromShipments(shipments []feed.Shipment) []Order {
	orders := make([]Order, 0, len(shipments))
	for _, s := range shipments {
		value, _ := dollarValue(s.ExpectedQuantity, s.CostOrZero()).Float64()
		orders = append(orders, Order{
			OrderID:             s.ShipmentID,
			PurchaseOrderNumber: s.PurchaseOrderNumber,
			Supplier:            s.Supplier,
			SKU:                 s.SKU,
			WarehouseID:         s.WarehouseID,
			ExpectedQuantity:    s.ExpectedQuantity,
			ReceivedQuantity:    s.ReceivedQuantity,
			UnitCost:            s.UnitCost,
			Value:               value,
			Status:              s.Status,
			CreatedDate:         s.CreatedDate,
			ExpectedArrivalDate: s.ExpectedArrivalDate,
			ArrivalDate:         s.ArrivalDate,
			HasDiscrepancy:      s.HasDiscrepancy(),
		})
	}
	return orders
}
