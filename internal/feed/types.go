package feed

// Product is one record from the upstream product/inventory feed. Field
// names mirror the upstream JSON contract; anything else in the payload is
// ignored.
type Product struct {
	ProductID       string   `json:"product_id"`
	BrandName       string   `json:"brand_name"`
	SKU             string   `json:"product_sku"`
	Name            string   `json:"product_name"`
	SupplierName    string   `json:"supplier_name"`
	UnitQuantity    int      `json:"unit_quantity"`
	UnitCost        *float64 `json:"unit_cost"`
	Active          bool     `json:"active"`
	CountryOfOrigin *string  `json:"country_of_origin"`
	CreatedDate     string   `json:"created_date"`
	UpdatedDate     string   `json:"updated_date"`
}

// Shipment is one record from the inbound-shipment feed.
type Shipment struct {
	ShipmentID          string   `json:"shipment_id"`
	ReceiptID           string   `json:"receipt_id"`
	BrandName           string   `json:"brand_name"`
	Supplier            string   `json:"supplier"`
	WarehouseID         string   `json:"warehouse_id"`
	SKU                 string   `json:"sku"`
	InventoryItemID     string   `json:"inventory_item_id"`
	ExpectedQuantity    int      `json:"expected_quantity"`
	ReceivedQuantity    int      `json:"received_quantity"`
	UnitCost            *float64 `json:"unit_cost"`
	Status              string   `json:"status"`
	CreatedDate         string   `json:"created_date"`
	ExpectedArrivalDate string   `json:"expected_arrival_date"`
	ArrivalDate         string   `json:"arrival_date"`
	Notes               string   `json:"notes"`
	TrackingNumbers     []string `json:"tracking_number"`
	PurchaseOrderNumber string   `json:"purchase_order_number"`
}

// HasDiscrepancy reports whether expected and received quantities differ.
func (s Shipment) HasDiscrepancy() bool {
	return s.ExpectedQuantity != s.ReceivedQuantity
}

// CostOrZero treats a missing unit cost as zero, for metrics that state
// that convention explicitly.
func (s Shipment) CostOrZero() float64 {
	if s.UnitCost == nil {
		return 0
	}
	return *s.UnitCost
}

// CostOr returns the unit cost or the given fallback when missing.
func (s Shipment) CostOr(fallback float64) float64 {
	if s.UnitCost == nil {
		return fallback
	}
	return *s.UnitCost
}

// CostOrZero treats a missing unit cost as zero.
func (p Product) CostOrZero() float64 {
	if p.UnitCost == nil {
		return 0
	}
	return *p.UnitCost
}

// CostOr returns the unit cost or the given fallback when missing.
func (p Product) CostOr(fallback float64) float64 {
	if p.UnitCost == nil {
		return fallback
	}
	return *p.UnitCost
}

// Snapshot is one consistent read of both upstream feeds, already filtered
// to the tenant brand. All derived metrics are computed from a Snapshot.
type Snapshot struct {
	Products  []Product
	Shipments []Shipment
}
