package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/brandbuddy-hq/brandbuddy-backend/pkg/config"
	pkgerrors "github.com/brandbuddy-hq/brandbuddy-backend/pkg/errors"
	"github.com/brandbuddy-hq/brandbuddy-backend/pkg/redis"
)

const (
	productsFeed  = "products"
	shipmentsFeed = "shipments"

	responseBodyLimit int64 = 32 << 20
)

// Client fetches the two upstream feeds and applies the tenant brand
// filter. The upstream also receives brand_name as a query parameter, but
// that filtering is best-effort: the in-memory predicate is authoritative.
type Client struct {
	httpClient *http.Client
	products   config.FeedConfig
	shipments  config.FeedConfig
	brand      string
	cache      *redis.Client
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithCache attaches an optional snapshot cache. A nil cache disables it.
func WithCache(cache *redis.Client) Option {
	return func(c *Client) {
		c.cache = cache
	}
}

// NewClient builds the feed client for the configured tenant.
func NewClient(products, shipments config.FeedConfig, brand string, opts ...Option) *Client {
	client := &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		products:   products,
		shipments:  shipments,
		brand:      brand,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}
	return client
}

// Brand returns the tenant brand this client filters to.
func (c *Client) Brand() string {
	return c.brand
}

// FetchProducts returns the brand-filtered product feed.
func (c *Client) FetchProducts(ctx context.Context) ([]Product, error) {
	body, err := c.fetch(ctx, productsFeed, c.products)
	if err != nil {
		return nil, err
	}
	var envelope struct {
		Data []Product `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUpstream, err, "products feed returned malformed JSON")
	}
	return FilterProducts(envelope.Data, c.brand), nil
}

// FetchShipments returns the brand-filtered shipment feed.
func (c *Client) FetchShipments(ctx context.Context) ([]Shipment, error) {
	body, err := c.fetch(ctx, shipmentsFeed, c.shipments)
	if err != nil {
		return nil, err
	}
	var envelope struct {
		Data []Shipment `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUpstream, err, "shipments feed returned malformed JSON")
	}
	return FilterShipments(envelope.Data, c.brand), nil
}

// Snapshot fetches both feeds in parallel and returns them only when both
// have resolved.
func (c *Client) Snapshot(ctx context.Context) (*Snapshot, error) {
	var snap Snapshot

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		products, err := c.FetchProducts(groupCtx)
		if err != nil {
			return err
		}
		snap.Products = products
		return nil
	})
	group.Go(func() error {
		shipments, err := c.FetchShipments(groupCtx)
		if err != nil {
			return err
		}
		snap.Shipments = shipments
		return nil
	})

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return &snap, nil
}

func (c *Client) fetch(ctx context.Context, feed string, cfg config.FeedConfig) ([]byte, error) {
	if err := cfg.Validate(); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeConfig, err, fmt.Sprintf("%s feed is not configured", feed))
	}

	if cached, ok := c.cache.GetSnapshot(ctx, feed); ok {
		return cached, nil
	}

	endpoint, err := c.buildURL(cfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeConfig, err, fmt.Sprintf("%s feed base url is invalid", feed))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "building feed request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUpstream, err, fmt.Sprintf("%s feed request failed", feed))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, pkgerrors.New(
			pkgerrors.CodeUpstream,
			fmt.Sprintf("%s feed returned %d %s", feed, resp.StatusCode, http.StatusText(resp.StatusCode)),
		)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, responseBodyLimit))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUpstream, err, fmt.Sprintf("reading %s feed body", feed))
	}

	c.cache.SetSnapshot(ctx, feed, body)
	return body, nil
}

func (c *Client) buildURL(cfg config.FeedConfig) (string, error) {
	parsed, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return "", err
	}
	query := parsed.Query()
	query.Set("token", cfg.Token)
	query.Set("limit", strconv.Itoa(cfg.Limit()))
	if c.brand != "" {
		query.Set("brand_name", c.brand)
	}
	parsed.RawQuery = query.Encode()
	return parsed.String(), nil
}
