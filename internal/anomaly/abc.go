package anomaly

import (
	"time"

	"github.com/brandbuddy-hq/brandbuddy-backend/internal/feed"
	"github.com/brandbuddy-hq/brandbuddy-backend/internal/metrics"
)

const (
	ClassA = "A"
	ClassB = "B"
	ClassC = "C"

	VelocityFast   = "fast"
	VelocityMedium = "medium"
	VelocitySlow   = "slow"

	classACumulative = 0.80
	classBCumulative = 0.95

	fastMovingDays   = 30
	mediumMovingDays = 60
)

// ClassifiedItem is an inventory row annotated with its ABC class and
// shipment velocity.
type ClassifiedItem struct {
	metrics.InventoryItem
	Class    string `json:"class"`
	Velocity string `json:"velocity"`
}

// ClassifyABC orders items by total value descending and partitions them
// so class A covers the leading 80% of catalog value and class B the next
// 15%. An item whose cumulative share starts below the 80% line is A even
// when it crosses the line, matching the inclusive boundary the dashboard
// has always rendered.
func ClassifyABC(items []metrics.InventoryItem) []ClassifiedItem {
	ranked := make([]metrics.InventoryItem, len(items))
	copy(ranked, items)
	metrics.SortStableDesc(ranked, func(i metrics.InventoryItem) float64 { return i.TotalValue })

	total := 0.0
	for _, item := range ranked {
		total += item.TotalValue
	}

	classified := make([]ClassifiedItem, 0, len(ranked))
	cumulative := 0.0
	for _, item := range ranked {
		class := ClassC
		if total > 0 {
			switch {
			case cumulative < classACumulative*total:
				class = ClassA
			case cumulative+item.TotalValue <= classBCumulative*total:
				class = ClassB
			}
		}
		cumulative += item.TotalValue
		classified = append(classified, ClassifiedItem{InventoryItem: item, Class: class})
	}
	return classified
}

// AnnotateVelocity stamps each classified item with how recently its SKU
// shipped: inside 30 days is fast, inside 60 is medium, anything older or
// never shipped is slow.
func AnnotateVelocity(items []ClassifiedItem, shipments []feed.Shipment, now time.Time) []ClassifiedItem {
	latest := map[string]string{}
	for _, s := range shipments {
		current, ok := latest[s.SKU]
		if !ok || s.CreatedDate > current {
			latest[s.SKU] = s.CreatedDate
		}
	}

	annotated := make([]ClassifiedItem, len(items))
	for i, item := range items {
		velocity := VelocitySlow
		if created, ok := latest[item.SKU]; ok {
			switch {
			case metrics.WithinDays(created, now, fastMovingDays):
				velocity = VelocityFast
			case metrics.WithinDays(created, now, mediumMovingDays):
				velocity = VelocityMedium
			}
		}
		item.Velocity = velocity
		annotated[i] = item
	}
	return annotated
}

// Classify runs the full ABC and velocity pipeline over the catalog.
func Classify(products []feed.Product, shipments []feed.Shipment, now time.Time) []ClassifiedItem {
	return AnnotateVelocity(ClassifyABC(metrics.InventoryItems(products)), shipments, now)
}
