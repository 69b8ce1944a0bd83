// Package cache keeps a snapshot of the recommendable course catalog in Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/yigit/unimatch/internal/app/models"
)

// CatalogKey is where the catalog snapshot lives.
const CatalogKey = "unimatch:catalog:v1"

// ParseURL validates a Redis connection URL.
func ParseURL(url string) (*redis.Options, error) {
	if url == "" {
		return nil, fmt.Errorf("cache URL is empty")
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid cache URL: %w", err)
	}
	return opts, nil
}

// NewClient dials Redis and verifies the connection.
func NewClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := ParseURL(url)
	if err != nil {
		return nil, err
	}

	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("pinging cache: %w", err)
	}
	return client, nil
}

// CatalogCache stores the catalog as one JSON document.
type CatalogCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCatalogCache wraps an existing client.
func NewCatalogCache(client *redis.Client, ttl time.Duration) *CatalogCache {
	return &CatalogCache{client: client, ttl: ttl}
}

// Get returns the cached catalog. A miss is (nil, false, nil).
func (c *CatalogCache) Get(ctx context.Context) ([]models.Course, bool, error) {
	val, err := c.client.Get(ctx, CatalogKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading catalog from cache: %w", err)
	}

	var catalog []models.Course
	if err := json.Unmarshal(val, &catalog); err != nil {
		return nil, false, fmt.Errorf("decoding cached catalog: %w", err)
	}
	return catalog, true, nil
}

// Set replaces the snapshot.
func (c *CatalogCache) Set(ctx context.Context, catalog []models.Course) error {
	data, err := json.Marshal(catalog)
	if err != nil {
		return fmt.Errorf("encoding catalog: %w", err)
	}
	if err := c.client.Set(ctx, CatalogKey, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("writing catalog to cache: %w", err)
	}
	return nil
}

// Invalidate drops the snapshot so the next read goes to the database.
func (c *CatalogCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, CatalogKey).Err(); err != nil {
		return fmt.Errorf("invalidating catalog cache: %w", err)
	}
	return nil
}

// HealthCheck verifies the cache connection is alive.
func (c *CatalogCache) HealthCheck(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close shuts down the cache client.
func (c *CatalogCache) Close() error {
	return c.client.Close()
}
