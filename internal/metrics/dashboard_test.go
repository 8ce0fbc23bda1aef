package metrics

import (
	"testing"
	"time"

	"github.com/brandbuddy-hq/brandbuddy-backend/internal/feed"
)

var testNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func cost(v float64) *float64 { return &v }

func TestDashboardKPIsNullVersusZero(t *testing.T) {
	kpis := DashboardKPIBundle(nil, nil, testNow)

	if kpis.TotalOrdersToday != nil || kpis.AtRiskOrders != nil || kpis.OpenPOs != nil {
		t.Fatalf("empty input must yield null counters, got %+v", kpis)
	}
	if kpis.UnfulfillableSKUs != 0 || kpis.DollarImpact != 0 || kpis.CompletedWorkflows != 0 {
		t.Fatalf("non-nullable counters must be zero, got %+v", kpis)
	}
}

func TestDashboardKPIBundle(t *testing.T) {
	products := []feed.Product{
		{SKU: "a", Active: true},
		{SKU: "b", Active: false},
		{SKU: "c", Active: false},
	}
	shipments := []feed.Shipment{
		// Created today, open PO, accurate.
		{CreatedDate: "2024-06-15", Status: "in_transit", PurchaseOrderNumber: "PO-1",
			ExpectedQuantity: 10, ReceivedQuantity: 10},
		// Discrepant with cost: at risk, impact 5*8 = 40.
		{CreatedDate: "2024-06-01", Status: "receiving", PurchaseOrderNumber: "PO-2",
			ExpectedQuantity: 10, ReceivedQuantity: 5, UnitCost: cost(8)},
		// Cancelled: at risk, PO not open.
		{CreatedDate: "2024-06-02", Status: "cancelled", PurchaseOrderNumber: "PO-3",
			ExpectedQuantity: 3, ReceivedQuantity: 3},
		// Completed workflow, PO shared with the receiving shipment.
		{CreatedDate: "2024-06-03", Status: "completed", PurchaseOrderNumber: "PO-2",
			ExpectedQuantity: 7, ReceivedQuantity: 7},
	}

	kpis := DashboardKPIBundle(products, shipments, testNow)

	if kpis.TotalOrdersToday == nil || *kpis.TotalOrdersToday != 1 {
		t.Fatalf("expected one order today, got %v", kpis.TotalOrdersToday)
	}
	if kpis.AtRiskOrders == nil || *kpis.AtRiskOrders != 2 {
		t.Fatalf("expected two at-risk orders, got %v", kpis.AtRiskOrders)
	}
	// PO-1 (in_transit) and PO-2 (receiving); PO-3 is cancelled.
	if kpis.OpenPOs == nil || *kpis.OpenPOs != 2 {
		t.Fatalf("expected two open POs, got %v", kpis.OpenPOs)
	}
	if kpis.UnfulfillableSKUs != 2 {
		t.Fatalf("expected two unfulfillable SKUs, got %d", kpis.UnfulfillableSKUs)
	}
	if kpis.DollarImpact != 40 {
		t.Fatalf("expected impact 40, got %d", kpis.DollarImpact)
	}
	// PO-2 appears in both receiving and completed; counted once.
	if kpis.CompletedWorkflows != 1 {
		t.Fatalf("expected one completed workflow, got %d", kpis.CompletedWorkflows)
	}
}

func TestDollarImpactIgnoresMissingCost(t *testing.T) {
	shipments := []feed.Shipment{
		{ExpectedQuantity: 10, ReceivedQuantity: 0, UnitCost: nil},
		{ExpectedQuantity: 10, ReceivedQuantity: 5, UnitCost: cost(2)},
	}
	kpis := DashboardKPIBundle(nil, shipments, testNow)
	if kpis.DollarImpact != 10 {
		t.Fatalf("null cost must contribute zero, got %d", kpis.DollarImpact)
	}
}

func TestWarehouseInventoriesOneEntryPerWarehouse(t *testing.T) {
	shipments := []feed.Shipment{
		{WarehouseID: "WH-1", Supplier: "Acme", ReceivedQuantity: 10, InventoryItemID: "i1", UnitCost: cost(10)},
		{WarehouseID: "WH-2", Supplier: "Beta", ReceivedQuantity: 5, InventoryItemID: "i2", UnitCost: cost(30)},
		{WarehouseID: "WH-1", Supplier: "Gamma", ReceivedQuantity: 7, InventoryItemID: "i1", UnitCost: cost(20)},
		{WarehouseID: "WH-1", Supplier: "Acme", ReceivedQuantity: 3, InventoryItemID: ""},
	}

	inventories := WarehouseInventories(shipments)
	if len(inventories) != 2 {
		t.Fatalf("expected one entry per warehouse, got %d", len(inventories))
	}

	wh1 := inventories[0]
	if wh1.WarehouseID != "WH-1" {
		t.Fatalf("encounter order lost, got %s first", wh1.WarehouseID)
	}
	if wh1.Supplier != "Acme" {
		t.Fatalf("display supplier should be first seen, got %s", wh1.Supplier)
	}
	if wh1.TotalInventory != 20 {
		t.Fatalf("expected total 20, got %d", wh1.TotalInventory)
	}
	// Distinct inventory items, empty ids excluded.
	if wh1.ProductCount != 1 {
		t.Fatalf("expected one distinct item, got %d", wh1.ProductCount)
	}
	// Mean of 10 and 20 over priced shipments only.
	if wh1.AverageCost != 15 {
		t.Fatalf("expected average cost 15, got %d", wh1.AverageCost)
	}
}

func TestOrdersFromShipments(t *testing.T) {
	orders := OrdersFromShipments([]feed.Shipment{
		{ShipmentID: "s1", ExpectedQuantity: 10, ReceivedQuantity: 8, UnitCost: cost(5), Supplier: "Acme"},
	})
	if len(orders) != 1 {
		t.Fatalf("expected one order, got %d", len(orders))
	}
	if orders[0].OrderID != "s1" || !orders[0].HasDiscrepancy {
		t.Fatalf("unexpected order %+v", orders[0])
	}
	if orders[0].Value != 50 {
		t.Fatalf("value should price expected quantity, got %v", orders[0].Value)
	}
}
