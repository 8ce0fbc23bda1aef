package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"go.uber.org/multierr"
)

type Config struct {
	App       AppConfig
	Tenant    TenantConfig
	Products  FeedConfig
	Shipments FeedConfig
	Orders    OrdersConfig
	OpenAI    OpenAIConfig
	Cache     CacheConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg.App); err != nil {
		return nil, fmt.Errorf("parsing app config: %w", err)
	}
	if err := envconfig.Process("", &cfg.Tenant); err != nil {
		return nil, fmt.Errorf("parsing tenant config: %w", err)
	}
	if err := envconfig.Process("TINYBIRD", &cfg.Products); err != nil {
		return nil, fmt.Errorf("parsing products feed config: %w", err)
	}
	if err := envconfig.Process("WAREHOUSE", &cfg.Shipments); err != nil {
		return nil, fmt.Errorf("parsing shipments feed config: %w", err)
	}
	if err := envconfig.Process("ORDERS", &cfg.Orders); err != nil {
		return nil, fmt.Errorf("parsing orders config: %w", err)
	}
	if err := envconfig.Process("", &cfg.OpenAI); err != nil {
		return nil, fmt.Errorf("parsing openai config: %w", err)
	}
	if err := envconfig.Process("", &cfg.Cache); err != nil {
		return nil, fmt.Errorf("parsing cache config: %w", err)
	}
	cfg.Products.name = "products"
	cfg.Shipments.name = "shipments"
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"APP_ENV" default:"dev"`
	Port         string `envconfig:"APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, "dev")
}

// TenantConfig names the single brand this deployment serves. The brand is
// applied both as an upstream query parameter and as an in-memory predicate.
type TenantConfig struct {
	Brand string `envconfig:"BRAND_NAME" default:"Callahan-Smith"`
}

// FeedConfig describes one upstream data feed (products or shipments).
type FeedConfig struct {
	BaseURL   string `envconfig:"BASE_URL"`
	Token     string `envconfig:"TOKEN"`
	PageLimit int    `envconfig:"PAGE_LIMIT" default:"1000"`

	name string
}

// Validate reports every missing required value at once. A failure here is a
// deployment bug and surfaces as a 500, never as degraded data.
func (f FeedConfig) Validate() error {
	var err error
	if strings.TrimSpace(f.BaseURL) == "" {
		err = multierr.Append(err, fmt.Errorf("%s feed base url is not configured", f.name))
	}
	if strings.TrimSpace(f.Token) == "" {
		err = multierr.Append(err, fmt.Errorf("%s feed token is not configured", f.name))
	}
	return err
}

// Limit clamps the configured page size into the upstream's accepted range.
func (f FeedConfig) Limit() int {
	if f.PageLimit < 100 {
		return 100
	}
	if f.PageLimit > 1000 {
		return 1000
	}
	return f.PageLimit
}

// OrdersConfig points at the optional sales-history view used by the
// per-item explainer. Absence disables the history context, nothing else.
type OrdersConfig struct {
	BaseURL string `envconfig:"BASE_URL"`
	Token   string `envconfig:"TOKEN"`
}

func (o OrdersConfig) Enabled() bool {
	return strings.TrimSpace(o.BaseURL) != "" && strings.TrimSpace(o.Token) != ""
}

type OpenAIConfig struct {
	APIKey        string        `envconfig:"OPENAI_API_KEY"`
	BaseURL       string        `envconfig:"OPENAI_API_URL"`
	FastModel     string        `envconfig:"AI_MODEL_FAST" default:"gpt-4o-mini"`
	AdvancedModel string        `envconfig:"AI_MODEL_ADVANCED" default:"gpt-4o"`
	Timeout       time.Duration `envconfig:"OPENAI_TIMEOUT" default:"25s"`
}

func (o OpenAIConfig) Enabled() bool {
	return strings.TrimSpace(o.APIKey) != ""
}

// CacheConfig controls the optional feed snapshot cache. With no REDIS_URL
// the feed client always goes to the upstream.
type CacheConfig struct {
	RedisURL     string        `envconfig:"REDIS_URL"`
	FeedTTL      time.Duration `envconfig:"FEED_CACHE_TTL" default:"60s"`
	DialTimeout  time.Duration `envconfig:"REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"REDIS_WRITE_TIMEOUT" default:"5s"`
}

func (c CacheConfig) Enabled() bool {
	return strings.TrimSpace(c.RedisURL) != ""
}

var errNoDataFeeds = errors.New("no upstream feeds configured")

// ValidateFeeds checks that at least the two primary feeds carry enough
// configuration to attempt a fetch.
func (c *Config) ValidateFeeds() error {
	if c.Products.Validate() != nil && c.Shipments.Validate() != nil {
		return errNoDataFeeds
	}
	return nil
}
