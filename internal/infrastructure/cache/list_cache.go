package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hszk-dev/mylist/internal/domain/model"
	"github.com/hszk-dev/mylist/internal/infrastructure/metrics"
)

const (
	// listKeyPrefix namespaces list page entries in Redis.
	listKeyPrefix = "list:"

	// scanBatchSize bounds how many keys a single SCAN iteration returns
	// during invalidation.
	scanBatchSize = 100
)

// BuildListKey constructs the cache key for one page of a user's list.
// Distinct (page, limit) combinations cache independently and expire
// independently.
func BuildListKey(userID string, page, limit int) string {
	return fmt.Sprintf("%s%s:%d:%d", listKeyPrefix, userID, page, limit)
}

// ListCache defines the cache-aside contract for list pages.
// Implementations handle serialization transparently.
type ListCache interface {
	// Get retrieves a cached page by key.
	// Returns nil, nil if the key is missing or expired (cache miss).
	Get(ctx context.Context, key string) (*model.ListPage, error)

	// Set stores a page under key with the given TTL, overwriting any prior
	// entry at that key.
	Set(ctx context.Context, key string, page *model.ListPage, ttl time.Duration) error

	// InvalidateUser deletes every cached page belonging to userID.
	// Other users' entries are untouched.
	InvalidateUser(ctx context.Context, userID string) error
}

// RedisListCache implements ListCache using Redis as the backing store.
type RedisListCache struct {
	client *redis.Client
}

// NewRedisListCache creates a new Redis-backed list page cache.
func NewRedisListCache(client *redis.Client) *RedisListCache {
	return &RedisListCache{
		client: client,
	}
}

// Get retrieves a list page from Redis.
// Returns nil, nil on cache miss.
func (c *RedisListCache) Get(ctx context.Context, key string) (*model.ListPage, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpGet, metrics.CacheStatusMiss, metrics.CacheTypeRedis).Inc()
			return nil, nil // Cache miss
		}
		metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpGet, metrics.CacheStatusError, metrics.CacheTypeRedis).Inc()
		return nil, fmt.Errorf("redis get: %w", err)
	}

	var page model.ListPage
	if err := json.Unmarshal(data, &page); err != nil {
		metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpGet, metrics.CacheStatusError, metrics.CacheTypeRedis).Inc()
		return nil, fmt.Errorf("deserialize list page: %w", err)
	}

	metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpGet, metrics.CacheStatusHit, metrics.CacheTypeRedis).Inc()
	return &page, nil
}

// Set stores a list page in Redis with the specified TTL.
func (c *RedisListCache) Set(ctx context.Context, key string, page *model.ListPage, ttl time.Duration) error {
	data, err := json.Marshal(page)
	if err != nil {
		return fmt.Errorf("serialize list page: %w", err)
	}

	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpSet, metrics.CacheStatusError, metrics.CacheTypeRedis).Inc()
		return fmt.Errorf("redis set: %w", err)
	}

	metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpSet, metrics.CacheStatusSuccess, metrics.CacheTypeRedis).Inc()
	return nil
}

// InvalidateUser scans the keyspace for the user's pages and deletes them.
// The scan walks the whole keyspace; the cache is small and ephemeral, and a
// per-user key index is not worth the bookkeeping at this size. The trailing
// colon in the match keeps one user ID from matching another's prefix.
func (c *RedisListCache) InvalidateUser(ctx context.Context, userID string) error {
	match := listKeyPrefix + userID + ":*"

	var cursor uint64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, match, scanBatchSize).Result()
		if err != nil {
			metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpInvalidate, metrics.CacheStatusError, metrics.CacheTypeRedis).Inc()
			return fmt.Errorf("redis scan: %w", err)
		}

		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpInvalidate, metrics.CacheStatusError, metrics.CacheTypeRedis).Inc()
				return fmt.Errorf("redis del: %w", err)
			}
		}

		cursor = next
		if cursor == 0 {
			break
		}
	}

	metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpInvalidate, metrics.CacheStatusSuccess, metrics.CacheTypeRedis).Inc()
	return nil
}

// Compile-time verification that RedisListCache implements ListCache.
var _ ListCache = (*RedisListCache)(nil)
