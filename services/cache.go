package services

import (
	"context"
	"encoding/json"
	"time"

	"academy-dashboard/logger"

	"github.com/redis/go-redis/v9"
)

// AcademyCache caches course payment details lookups with a TTL. It is an
// explicit injected object owned by the caller's lifecycle; a nil
// *AcademyCache is valid and disables caching.
type AcademyCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewAcademyCache connects to Redis and returns a cache with the given TTL
func NewAcademyCache(redisURL string, ttl time.Duration) (*AcademyCache, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	logger.Info("Redis cache connection established")
	return &AcademyCache{client: client, ttl: ttl}, nil
}

// Get retrieves a cached value into dest; returns false on miss
func (c *AcademyCache) Get(ctx context.Context, key string, dest interface{}) bool {
	if c == nil {
		return false
	}
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		logger.Warn("Cache entry for %s is corrupt, dropping: %v", key, err)
		c.Clear(ctx, key)
		return false
	}
	return true
}

// Set stores a value with the cache's TTL
func (c *AcademyCache) Set(ctx context.Context, key string, value interface{}) {
	if c == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		logger.Warn("Failed to marshal cache value for %s: %v", key, err)
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		logger.Warn("Failed to cache %s: %v", key, err)
	}
}

// Clear removes a cached entry
func (c *AcademyCache) Clear(ctx context.Context, key string) {
	if c == nil {
		return
	}
	if err := c.client.Del(ctx, key).Err(); err != nil {
		logger.Warn("Failed to clear cache key %s: %v", key, err)
	}
}

// CloseCache closes the underlying Redis connection
func (c *AcademyCache) CloseCache() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}
