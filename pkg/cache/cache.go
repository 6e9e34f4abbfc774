package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache is a Redis-backed read-through cache for list and balance queries.
// Keys are namespaced per entity so writes can drop a whole namespace.
type Cache struct {
	redis *redis.Client
}

// NewCache creates a new cache service backed by Redis.
func NewCache(redisClient *redis.Client) *Cache {
	return &Cache{
		redis: redisClient,
	}
}

// GetJSON loads a cached value into dest. Returns false on miss; cache errors
// are reported as misses so a Redis outage never breaks reads.
func (c *Cache) GetJSON(ctx context.Context, key string, dest interface{}) bool {
	if c == nil || c.redis == nil {
		return false
	}

	raw, err := c.redis.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		return false
	}

	return true
}

// SetJSON stores a value under key with a TTL. Failures are swallowed; the
// cache is best-effort.
func (c *Cache) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if c == nil || c.redis == nil {
		return
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return
	}

	_ = c.redis.Set(ctx, key, raw, ttl).Err()
}

// InvalidatePrefix removes every key under a namespace prefix.
func (c *Cache) InvalidatePrefix(ctx context.Context, prefix string) error {
	if c == nil || c.redis == nil {
		return nil
	}

	iter := c.redis.Scan(ctx, 0, prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.redis.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("failed to invalidate cache key %s: %w", iter.Val(), err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan cache keys: %w", err)
	}

	return nil
}

// Ping verifies the Redis connection for readiness checks.
func (c *Cache) Ping(ctx context.Context) error {
	if c == nil || c.redis == nil {
		return fmt.Errorf("cache not configured")
	}
	return c.redis.Ping(ctx).Err()
}
