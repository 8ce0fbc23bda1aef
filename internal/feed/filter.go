package feed

// FilterProducts keeps only products whose brand matches exactly. An empty
// brand keeps everything, which only happens in tests.
func FilterProducts(products []Product, brand string) []Product {
	if brand == "" {
		return products
	}
	filtered := make([]Product, 0, len(products))
	for _, p := range products {
		if p.BrandName == brand {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// FilterShipments keeps only shipments whose brand matches exactly.
func FilterShipments(shipments []Shipment, brand string) []Shipment {
	if brand == "" {
		return shipments
	}
	filtered := make([]Shipment, 0, len(shipments))
	for _, s := range shipments {
		if s.BrandName == brand {
			filtered = append(filtered, s)
		}
	}
	return filtered
}
