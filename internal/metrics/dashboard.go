package metrics

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/brandbuddy-hq/brandbuddy-backend/internal/feed"
)

// DashboardKPIs is the headline bundle for the main dashboard page.
// Pointer fields follow the null-vs-zero rule: nil renders as an em dash.
type DashboardKPIs struct {
	TotalOrdersToday   *int `json:"totalOrdersToday"`
	AtRiskOrders       *int `json:"atRiskOrders"`
	OpenPOs            *int `json:"openPOs"`
	UnfulfillableSKUs  int  `json:"unfulfillableSKUs"`
	DollarImpact       int  `json:"dollarImpact"`
	CompletedWorkflows int  `json:"completedWorkflows"`
}

// QuickOverview repeats the order-centric headline numbers for the compact
// overview card.
type QuickOverview struct {
	TotalOrdersToday *int `json:"totalOrdersToday"`
	AtRiskOrders     *int `json:"atRiskOrders"`
	OpenPOs          *int `json:"openPOs"`
	DollarImpact     int  `json:"dollarImpact"`
}

// WarehouseInventory summarizes inbound volume for one warehouse.
type WarehouseInventory struct {
	WarehouseID    string `json:"warehouseId"`
	Supplier       string `json:"supplier"`
	TotalInventory int    `json:"totalInventory"`
	ProductCount   int    `json:"productCount"`
	AverageCost    int    `json:"averageCost"`
}

func normalizeStatus(status string) string {
	return strings.ToLower(strings.TrimSpace(status))
}

// DashboardKPIBundle computes the dashboard headline KPIs.
func DashboardKPIBundle(products []feed.Product, shipments []feed.Shipment, now time.Time) DashboardKPIs {
	var (
		ordersToday int
		atRisk      int
	)
	openPOs := map[string]struct{}{}
	completedPOs := map[string]struct{}{}
	impact := decimal.Zero

	for _, s := range shipments {
		if sameDay(s.CreatedDate, now) {
			ordersToday++
		}

		status := normalizeStatus(s.Status)
		if s.HasDiscrepancy() || status == "cancelled" {
			atRisk++
		}

		if po := strings.TrimSpace(s.PurchaseOrderNumber); po != "" {
			if status != "completed" && status != "cancelled" {
				openPOs[po] = struct{}{}
			}
			if status == "receiving" || status == "completed" {
				completedPOs[po] = struct{}{}
			}
		}

		if s.HasDiscrepancy() {
			diff := s.ExpectedQuantity - s.ReceivedQuantity
			if diff < 0 {
				diff = -diff
			}
			impact = impact.Add(dollarValue(diff, s.CostOrZero()))
		}
	}

	var unfulfillable int
	for _, p := range products {
		if !p.Active {
			unfulfillable++
		}
	}

	return DashboardKPIs{
		TotalOrdersToday:   nullableInt(ordersToday),
		AtRiskOrders:       nullableInt(atRisk),
		OpenPOs:            nullableInt(len(openPOs)),
		UnfulfillableSKUs:  unfulfillable,
		DollarImpact:       roundedInt(impact),
		CompletedWorkflows: len(completedPOs),
	}
}

// Overview projects the KPI bundle onto the quick-overview card.
func Overview(kpis DashboardKPIs) QuickOverview {
	return QuickOverview{
		TotalOrdersToday: kpis.TotalOrdersToday,
		AtRiskOrders:     kpis.AtRiskOrders,
		OpenPOs:          kpis.OpenPOs,
		DollarImpact:     kpis.DollarImpact,
	}
}

// WarehouseInventories groups shipments by warehouse, one entry per
// distinct warehouse_id in encounter order.
func WarehouseInventories(shipments []feed.Shipment) []WarehouseInventory {
	type accumulator struct {
		index     int
		supplier  string
		total     int
		items     map[string]struct{}
		costSum   decimal.Decimal
		costCount int
	}

	byWarehouse := map[string]*accumulator{}
	order := []string{}

	for _, s := range shipments {
		acc, ok := byWarehouse[s.WarehouseID]
		if !ok {
			acc = &accumulator{
				index:    len(order),
				supplier: s.Supplier,
				items:    map[string]struct{}{},
				costSum:  decimal.Zero,
			}
			byWarehouse[s.WarehouseID] = acc
			order = append(order, s.WarehouseID)
		}

		acc.total += s.ReceivedQuantity
		if item := strings.TrimSpace(s.InventoryItemID); item != "" {
			acc.items[item] = struct{}{}
		}
		if s.UnitCost != nil {
			acc.costSum = acc.costSum.Add(decimal.NewFromFloat(*s.UnitCost))
			acc.costCount++
		}
	}

	result := make([]WarehouseInventory, 0, len(order))
	for _, warehouseID := range order {
		acc := byWarehouse[warehouseID]
		averageCost := 0
		if acc.costCount > 0 {
			averageCost = roundedInt(acc.costSum.Div(decimal.NewFromInt(int64(acc.costCount))))
		}
		result = append(result, WarehouseInventory{
			WarehouseID:    warehouseID,
			Supplier:       acc.supplier,
			TotalInventory: acc.total,
			ProductCount:   len(acc.items),
			AverageCost:    averageCost,
		})
	}
	return result
}
