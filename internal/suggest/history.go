package suggest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/brandbuddy-hq/brandbuddy-backend/pkg/config"
	"github.com/brandbuddy-hq/brandbuddy-backend/pkg/errors"
)

const (
	historyMonths       = 6
	historyResponseCap  = 4 << 20
	historyFetchTimeout = 10 * time.Second
)

// SalesRecord is one month of sales for a SKU from the sales-history view.
type SalesRecord struct {
	Month     string  `json:"month"`
	UnitsSold int     `json:"units_sold"`
	Revenue   float64 `json:"revenue"`
}

// HistoryClient fetches the optional per-SKU sales-history view. A nil
// client (view not configured) disables history context.
type HistoryClient struct {
	http *http.Client
	cfg  config.OrdersConfig
}

// NewHistoryClient returns nil when the sales-history view is not
// configured.
func NewHistoryClient(cfg config.OrdersConfig, httpClient *http.Client) *HistoryClient {
	if !cfg.Enabled() {
		return nil
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: historyFetchTimeout}
	}
	return &HistoryClient{http: httpClient, cfg: cfg}
}

// History fetches the monthly sales rows for one SKU.
func (c *HistoryClient) History(ctx context.Context, sku string) ([]SalesRecord, error) {
	if c == nil {
		return nil, nil
	}

	endpoint, err := url.Parse(c.cfg.BaseURL)
	if err != nil {
		return nil, errors.Wrap(errors.CodeConfig, err, "sales history base url is invalid")
	}
	query := endpoint.Query()
	query.Set("token", c.cfg.Token)
	query.Set("sku", sku)
	endpoint.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, errors.Wrap(errors.CodeUpstream, err, "building sales history request")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrap(errors.CodeUpstream, err, "fetching sales history")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errors.New(errors.CodeUpstream,
			fmt.Sprintf("sales history returned %d %s", resp.StatusCode, http.StatusText(resp.StatusCode)))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, historyResponseCap))
	if err != nil {
		return nil, errors.Wrap(errors.CodeUpstream, err, "reading sales history response")
	}

	var envelope struct {
		Data []SalesRecord `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, errors.Wrap(errors.CodeUpstream, err, "parsing sales history response")
	}
	return envelope.Data, nil
}

// SummarizeHistory collapses up to six months of sales into one context
// line: trend direction, average monthly units, average revenue per unit,
// and total units. Empty history yields an empty string.
func SummarizeHistory(records []SalesRecord) string {
	if len(records) == 0 {
		return ""
	}
	if len(records) > historyMonths {
		records = records[len(records)-historyMonths:]
	}

	totalUnits := 0
	totalRevenue := 0.0
	for _, r := range records {
		totalUnits += r.UnitsSold
		totalRevenue += r.Revenue
	}

	avgMonthly := float64(totalUnits) / float64(len(records))
	revenuePerUnit := 0.0
	if totalUnits > 0 {
		revenuePerUnit = totalRevenue / float64(totalUnits)
	}

	return fmt.Sprintf("Sales last %d months: %s trend, avg %.1f units/month, avg $%.2f/unit, %d units total.",
		len(records), trendDirection(records), avgMonthly, revenuePerUnit, totalUnits)
}

// trendDirection compares the back half of the window against the front
// half.
func trendDirection(records []SalesRecord) string {
	if len(records) < 2 {
		return "flat"
	}
	half := len(records) / 2
	var older, newer int
	for _, r := range records[:half] {
		older += r.UnitsSold
	}
	for _, r := range records[len(records)-half:] {
		newer += r.UnitsSold
	}
	switch {
	case newer > older:
		return "rising"
	case newer < older:
		return "declining"
	default:
		return "flat"
	}
}
