package category

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

const listCacheKey = "gst:categories:list"

// Cache wraps Redis helpers for the cached category list. All methods are
// nil-safe so the service degrades to store-only operation without Redis.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache constructs a cache helper.
func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// GetList unmarshals the cached category list. It reports whether the key existed.
func (c *Cache) GetList(ctx context.Context, dst *[]Category) (bool, error) {
	if c == nil || c.client == nil {
		return false, nil
	}
	data, err := c.client.Get(ctx, listCacheKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, err
	}
	return true, nil
}

// SetList stores the category list with the configured TTL.
func (c *Cache) SetList(ctx context.Context, categories []Category) error {
	if c == nil || c.client == nil || c.ttl <= 0 {
		return nil
	}
	data, err := json.Marshal(categories)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, listCacheKey, data, c.ttl).Err()
}

// Invalidate drops the cached list after a write.
func (c *Cache) Invalidate(ctx context.Context) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Del(ctx, listCacheKey).Err()
}
