package insights

// Pages the dispatcher serves. Each carries its own prompt persona so the
// generated text matches the audience reading that page.
const (
	PageDashboard     = "dashboard"
	PageOrders        = "orders"
	PageInventory     = "inventory"
	PageReplenishment = "replenishment"
	PageSLA           = "sla"
	PageAnalytics     = "analytics"
)

var personas = map[string]string{
	PageDashboard:     "Chief Supply Chain Officer reviewing the daily operations dashboard",
	PageOrders:        "Director of Fulfillment watching inbound order flow",
	PageInventory:     "VP of Inventory Management responsible for catalog health",
	PageReplenishment: "Senior Replenishment Planner deciding this week's purchase orders",
	PageSLA:           "Head of Logistics holding suppliers to their delivery SLAs",
	PageAnalytics:     "VP of Operations Analytics preparing the monthly business review",
}

const defaultPersona = "Supply chain operations analyst"

// personaFor returns the prompt persona for a page, falling back to a
// generic analyst for unknown pages.
func personaFor(page string) string {
	if persona, ok := personas[page]; ok {
		return persona
	}
	return defaultPersona
}
