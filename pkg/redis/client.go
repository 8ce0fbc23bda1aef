package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/brandbuddy-hq/brandbuddy-backend/pkg/config"
)

const (
	keyNamespace = "bb"
	feedPrefix   = "feed"
)

type cmdable interface {
	Ping(context.Context) *redis.StatusCmd
	Set(context.Context, string, any, time.Duration) *redis.StatusCmd
	Get(context.Context, string) *redis.StringCmd
	Del(context.Context, ...string) *redis.IntCmd
}

// Client wraps the redis connection used for feed snapshot caching.
type Client struct {
	store cmdable
	raw   *redis.Client
	ttl   time.Duration
}

// New bootstraps a redis client from the cache config and verifies
// connectivity. Callers should treat a nil *Client as "cache disabled".
func New(ctx context.Context, cfg config.CacheConfig) (*Client, error) {
	if !cfg.Enabled() {
		return nil, errors.New("redis url is required")
	}
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}
	opts.DialTimeout = cfg.DialTimeout
	opts.ReadTimeout = cfg.ReadTimeout
	opts.WriteTimeout = cfg.WriteTimeout

	raw := redis.NewClient(opts)
	if err := raw.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	ttl := cfg.FeedTTL
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &Client{store: raw, raw: raw, ttl: ttl}, nil
}

// FeedKey builds the cache key for one upstream feed snapshot.
func FeedKey(feed string) string {
	return fmt.Sprintf("%s:%s:%s", keyNamespace, feedPrefix, feed)
}

// GetSnapshot returns the cached raw feed body, if present.
func (c *Client) GetSnapshot(ctx context.Context, feed string) ([]byte, bool) {
	if c == nil || c.store == nil {
		return nil, false
	}
	raw, err := c.store.Get(ctx, FeedKey(feed)).Bytes()
	if err != nil {
		return nil, false
	}
	return raw, true
}

// SetSnapshot stores the raw feed body under the feed's key. Failures are
// swallowed: the cache is an optimization, never a source of truth.
func (c *Client) SetSnapshot(ctx context.Context, feed string, payload []byte) {
	if c == nil || c.store == nil || len(payload) == 0 {
		return
	}
	_ = c.store.Set(ctx, FeedKey(feed), payload, c.ttl).Err()
}

// Invalidate drops the cached snapshot for a feed.
func (c *Client) Invalidate(ctx context.Context, feed string) {
	if c == nil || c.store == nil {
		return
	}
	_ = c.store.Del(ctx, FeedKey(feed)).Err()
}

// Ping exposes the health-check surface.
func (c *Client) Ping(ctx context.Context) error {
	if c == nil || c.store == nil {
		return errors.New("redis client not initialized")
	}
	return c.store.Ping(ctx).Err()
}

// Close releases the underlying connection pool.
func (c *Client) Close() error {
	if c == nil || c.raw == nil {
		return nil
	}
	return c.raw.Close()
}
