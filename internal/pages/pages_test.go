package pages

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/brandbuddy-hq/brandbuddy-backend/internal/feed"
	"github.com/brandbuddy-hq/brandbuddy-backend/internal/insights"
)

const testBrand = "Callahan-Smith"

func fixedClock(t *testing.T) time.Time {
	t.Helper()
	now := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)
	orig := timeNowUTC
	timeNowUTC = func() time.Time { return now }
	t.Cleanup(func() { timeNowUTC = orig })
	return now
}

func testBuilder() *Builder {
	return NewBuilder(testBrand, insights.NewService(nil, "", nil))
}

func cost(v float64) *float64 { return &v }

// healthySnapshot is the S1 fixture: ten active widgets and five clean
// completed shipments.
func healthySnapshot() feed.Snapshot {
	var products []feed.Product
	for i := 0; i < 10; i++ {
		products = append(products, feed.Product{
			ProductID:    fmt.Sprintf("p%d", i),
			BrandName:    testBrand,
			SKU:          fmt.Sprintf("W-%d", i),
			Name:         fmt.Sprintf("Widget %d", i),
			UnitQuantity: 50,
			UnitCost:     cost(10),
			Active:       true,
			CreatedDate:  "2024-05-01",
		})
	}
	var shipments []feed.Shipment
	for i := 0; i < 5; i++ {
		shipments = append(shipments, feed.Shipment{
			ShipmentID:          fmt.Sprintf("s%d", i),
			BrandName:           testBrand,
			Supplier:            "Acme",
			WarehouseID:         "WH-1",
			SKU:                 fmt.Sprintf("W-%d", i),
			InventoryItemID:     fmt.Sprintf("inv%d", i),
			ExpectedQuantity:    20,
			ReceivedQuantity:    20,
			UnitCost:            cost(10),
			Status:              "completed",
			CreatedDate:         "2024-06-01",
			ExpectedArrivalDate: "2024-06-05",
			ArrivalDate:         "2024-06-05",
			PurchaseOrderNumber: fmt.Sprintf("PO-%d", i),
		})
	}
	return feed.Snapshot{Products: products, Shipments: shipments}
}

func TestDashboardHappyPath(t *testing.T) {
	fixedClock(t)

	data := testBuilder().Dashboard(context.Background(), healthySnapshot(), true)

	if data.KPIs.AtRiskOrders != nil {
		t.Fatalf("expected null atRiskOrders, got %d", *data.KPIs.AtRiskOrders)
	}
	if data.KPIs.DollarImpact != 0 {
		t.Fatalf("expected zero dollar impact, got %d", data.KPIs.DollarImpact)
	}
	if len(data.MarginRisks) != 0 {
		t.Fatalf("score-zero brand should not appear: %+v", data.MarginRisks)
	}
	if len(data.CostVariances) != 0 {
		t.Fatalf("constant costs should not produce variances: %+v", data.CostVariances)
	}
	if len(data.WarehouseInventory) != 1 {
		t.Fatalf("expected one warehouse entry, got %d", len(data.WarehouseInventory))
	}
	if data.QuickOverview.DollarImpact != data.KPIs.DollarImpact {
		t.Fatal("quick overview must mirror the KPI bundle")
	}
}

func TestDashboardQuantityDiscrepancy(t *testing.T) {
	fixedClock(t)

	snap := healthySnapshot()
	snap.Shipments[0].ReceivedQuantity = 15

	data := testBuilder().Dashboard(context.Background(), snap, false)

	if data.KPIs.AtRiskOrders == nil || *data.KPIs.AtRiskOrders != 1 {
		t.Fatalf("expected one at-risk order, got %v", data.KPIs.AtRiskOrders)
	}
	if data.KPIs.DollarImpact != 50 {
		t.Fatalf("expected impact 50, got %d", data.KPIs.DollarImpact)
	}
}

func TestDashboardFastMatchesFullOutsideInsights(t *testing.T) {
	fixedClock(t)

	snap := healthySnapshot()
	builder := testBuilder()

	fast := builder.Dashboard(context.Background(), snap, false)
	full := builder.Dashboard(context.Background(), snap, true)

	if len(fast.Insights) != 0 {
		t.Fatalf("fast mode must not carry insights, got %d", len(fast.Insights))
	}
	fast.Insights = nil
	full.Insights = nil
	if !reflect.DeepEqual(fast, full) {
		t.Fatal("fast and full payloads must match outside insights")
	}
}

func TestDashboardDeterministicForSameSnapshot(t *testing.T) {
	fixedClock(t)

	snap := healthySnapshot()
	builder := testBuilder()

	first, err := json.Marshal(builder.Dashboard(context.Background(), snap, false))
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	second, err := json.Marshal(builder.Dashboard(context.Background(), snap, false))
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(first) != string(second) {
		t.Fatal("identical snapshots must produce identical payloads")
	}
}

func TestEmptyDashboardPayload(t *testing.T) {
	fixedClock(t)

	data := testBuilder().EmptyDashboard()

	if len(data.Insights) != 1 || data.Insights[0].Title != "Information Not Available" {
		t.Fatalf("expected the placeholder insight, got %+v", data.Insights)
	}
	if data.Insights[0].Severity != insights.SeverityInfo {
		t.Fatalf("placeholder must be info severity, got %s", data.Insights[0].Severity)
	}
	if data.KPIs.DollarImpact != 0 || data.KPIs.TotalOrdersToday != nil {
		t.Fatalf("degraded KPIs must be zeroed, got %+v", data.KPIs)
	}
	if data.Products == nil || data.Shipments == nil {
		t.Fatal("degraded payload keeps empty slices, not nulls")
	}
}

func TestOrdersPayload(t *testing.T) {
	fixedClock(t)

	snap := healthySnapshot()
	snap.Shipments[0].ReceivedQuantity = 15

	data := testBuilder().Orders(context.Background(), snap, false)

	if len(data.Orders) != 5 {
		t.Fatalf("expected 5 orders, got %d", len(data.Orders))
	}
	if !data.Orders[0].HasDiscrepancy {
		t.Fatal("discrepant shipment must map to a discrepant order")
	}
	if data.InboundIntelligence.IssueSummary != "1 quantity discrepancy" {
		t.Fatalf("unexpected issue summary %q", data.InboundIntelligence.IssueSummary)
	}
	if len(data.InboundIntelligence.TopSuppliers) != 1 ||
		data.InboundIntelligence.TopSuppliers[0].Supplier != "Acme" {
		t.Fatalf("unexpected top suppliers %+v", data.InboundIntelligence.TopSuppliers)
	}
}

func TestInventoryPayload(t *testing.T) {
	fixedClock(t)

	data := testBuilder().Inventory(context.Background(), healthySnapshot(), false)

	if data.KPIs.TotalInventoryValue != 5000 {
		t.Fatalf("expected inventory value 5000, got %d", data.KPIs.TotalInventoryValue)
	}
	if len(data.Inventory) != 10 {
		t.Fatalf("expected 10 inventory rows, got %d", len(data.Inventory))
	}
	for _, item := range data.Inventory {
		if item.Class == "" || item.Velocity == "" {
			t.Fatalf("row %s missing classification: %+v", item.SKU, item)
		}
	}
	if len(data.BrandPerformance) != 1 || data.BrandPerformance[0].BrandName != testBrand {
		t.Fatalf("unexpected brand performance %+v", data.BrandPerformance)
	}
}

func TestReplenishmentPayload(t *testing.T) {
	fixedClock(t)

	snap := healthySnapshot()
	snap.Products[0].UnitQuantity = 3 // critical
	snap.Products[1].UnitQuantity = 0 // out of stock

	data := testBuilder().Replenishment(context.Background(), snap, false)

	if data.KPIs.CriticalSKUs != 1 {
		t.Fatalf("expected one critical SKU, got %d", data.KPIs.CriticalSKUs)
	}
	if data.KPIs.ReorderRecommendations != 2 {
		t.Fatalf("expected two reorder recommendations, got %d", data.KPIs.ReorderRecommendations)
	}
	if len(data.CriticalItems) != 1 || data.CriticalItems[0].SKU != "W-0" {
		t.Fatalf("unexpected critical items %+v", data.CriticalItems)
	}
	if len(data.ReorderSuggestions) != 2 {
		t.Fatalf("expected two reorder suggestions, got %d", len(data.ReorderSuggestions))
	}
}

func TestSLAPayload(t *testing.T) {
	fixedClock(t)

	data := testBuilder().SLA(context.Background(), healthySnapshot(), false)

	if data.KPIs.OverallSLACompliance == nil || *data.KPIs.OverallSLACompliance != 100 {
		t.Fatalf("clean shipments should show 100%% compliance, got %v", data.KPIs.OverallSLACompliance)
	}
	if data.KPIs.CostOfSLABreaches != 0 {
		t.Fatalf("no breaches expected, got cost %d", data.KPIs.CostOfSLABreaches)
	}
	if len(data.SupplierScorecard) != 1 || data.SupplierScorecard[0].PerformanceScore != 100 {
		t.Fatalf("unexpected scorecard %+v", data.SupplierScorecard)
	}
	if len(data.Recommendations) != 0 {
		t.Fatalf("healthy SLA page needs no recommendations, got %v", data.Recommendations)
	}
}

func TestSLARecommendationsOnBreach(t *testing.T) {
	fixedClock(t)

	snap := healthySnapshot()
	// Every shipment arrives two days late.
	for i := range snap.Shipments {
		snap.Shipments[i].ArrivalDate = "2024-06-07"
	}

	data := testBuilder().SLA(context.Background(), snap, false)
	if data.KPIs.OverallSLACompliance == nil || *data.KPIs.OverallSLACompliance != 0 {
		t.Fatalf("all-late shipments should show 0%% compliance, got %v", data.KPIs.OverallSLACompliance)
	}
	if len(data.Recommendations) == 0 {
		t.Fatal("breaches must surface recommendations")
	}
}

func TestAnalyticsPayload(t *testing.T) {
	fixedClock(t)

	snap := healthySnapshot()
	snap.Shipments[0].ReceivedQuantity = 15

	data := testBuilder().Analytics(context.Background(), snap, false)

	if data.KPIs.FulfillmentEfficiency == nil || *data.KPIs.FulfillmentEfficiency != 80 {
		t.Fatalf("expected 80%% efficiency, got %v", data.KPIs.FulfillmentEfficiency)
	}
	if len(data.OperationalBreakdown) != 1 || data.OperationalBreakdown[0].Status != "completed" {
		t.Fatalf("unexpected breakdown %+v", data.OperationalBreakdown)
	}
	if data.OperationalBreakdown[0].Count != 5 {
		t.Fatalf("expected 5 completed, got %d", data.OperationalBreakdown[0].Count)
	}
}

func TestInsightIDsUniqueAcrossPayload(t *testing.T) {
	fixedClock(t)

	snap := healthySnapshot()
	// Force the low-efficiency rule to fire.
	for i := range snap.Shipments {
		snap.Shipments[i].ReceivedQuantity = 10
	}

	data := testBuilder().Dashboard(context.Background(), snap, true)
	seen := map[string]struct{}{}
	for _, insight := range data.Insights {
		if _, dup := seen[insight.ID]; dup {
			t.Fatalf("duplicate insight id %s", insight.ID)
		}
		seen[insight.ID] = struct{}{}
	}
}
