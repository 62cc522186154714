// Package cache is a small JSON-over-Redis cache. A nil *Cache, or one
// whose server went away, behaves as an always-miss cache.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache wraps a go-redis client with a key prefix.
type Cache struct {
	rdb    *redis.Client
	prefix string
}

// Connect creates a client for addr and verifies it with a ping.
func Connect(ctx context.Context, addr, password, prefix string) (*Cache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("cache: redis ping: %w", err)
	}
	return New(rdb, prefix), nil
}

// New wraps an existing client.
func New(rdb *redis.Client, prefix string) *Cache {
	return &Cache{rdb: rdb, prefix: prefix}
}

func (c *Cache) key(k string) string { return c.prefix + k }

// Get unmarshals the value under key into dest. It returns false on a miss
// or any error.
func (c *Cache) Get(ctx context.Context, key string, dest interface{}) bool {
	if c == nil {
		return false
	}

	val, err := c.rdb.Get(ctx, c.key(key)).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(val, dest) == nil
}

// Set stores value under key for ttl.
func (c *Cache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if c == nil {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, c.key(key), data, ttl).Err()
}

// Forget removes keys. A missing key is not an error.
func (c *Cache) Forget(ctx context.Context, keys ...string) error {
	if c == nil || len(keys) == 0 {
		return nil
	}

	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = c.key(k)
	}
	if err := c.rdb.Del(ctx, full...).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return err
	}
	return nil
}

// Ping checks the server.
func (c *Cache) Ping(ctx context.Context) error {
	if c == nil {
		return errors.New("cache: not configured")
	}
	return c.rdb.Ping(ctx).Err()
}

// Close releases the client.
func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.rdb.Close()
}
