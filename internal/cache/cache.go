package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// ErrMiss is returned when a key is absent from the cache.
var ErrMiss = errors.New("cache miss")

// Key shapes for the read-side views. One key per query shape so a
// write invalidates exactly the views it staled.
const (
	KeyJoinedListings = "views:listings:joined"
	KeyListings       = "views:listings"
	KeyClaims         = "views:claims"
	KeyProviders      = "views:providers"
	KeyReceivers      = "views:receivers"
	KeyReportPrefix   = "views:reports:"
)

// Cache is a Redis-backed read cache for presentation queries. It sits
// entirely outside the claim transaction's correctness boundary: the
// claim service never reads listing quantity through it.
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

// New creates a cache client and verifies connectivity
func New(addr, password string, db int, ttl time.Duration) (*Cache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &Cache{rdb: rdb, ttl: ttl}, nil
}

// Close closes the Redis connection
func (c *Cache) Close() error {
	return c.rdb.Close()
}

// GetJSON loads a cached view into dest. Returns ErrMiss when absent.
func (c *Cache) GetJSON(ctx context.Context, key string, dest interface{}) error {
	data, err := c.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return ErrMiss
	}
	if err != nil {
		return fmt.Errorf("cache get failed: %w", err)
	}
	return json.Unmarshal(data, dest)
}

// SetJSON stores a view under key with the default TTL
func (c *Cache) SetJSON(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache marshal failed: %w", err)
	}
	return c.rdb.Set(ctx, key, data, c.ttl).Err()
}

// InvalidateListings drops listing views and reports derived from them
func (c *Cache) InvalidateListings(ctx context.Context) error {
	return c.invalidate(ctx, KeyJoinedListings, KeyListings)
}

// InvalidateClaims drops claim views and reports derived from them
func (c *Cache) InvalidateClaims(ctx context.Context) error {
	return c.invalidate(ctx, KeyClaims)
}

// InvalidateProviders drops provider views; joined listings embed
// provider contact details, so those go too.
func (c *Cache) InvalidateProviders(ctx context.Context) error {
	return c.invalidate(ctx, KeyProviders, KeyJoinedListings)
}

// InvalidateReceivers drops receiver views
func (c *Cache) InvalidateReceivers(ctx context.Context) error {
	return c.invalidate(ctx, KeyReceivers)
}

func (c *Cache) invalidate(ctx context.Context, keys ...string) error {
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("cache invalidation failed: %w", err)
	}
	return c.invalidateReports(ctx)
}

// invalidateReports drops every cached report. Reports aggregate over
// several tables, so any write stales them.
func (c *Cache) invalidateReports(ctx context.Context) error {
	iter := c.rdb.Scan(ctx, 0, KeyReportPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}
