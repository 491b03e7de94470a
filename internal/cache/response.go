// response.go provides a Valkey-backed cache for serialized JSON responses.
// The public single-post and category-list endpoints serve far more reads
// than the admin surface writes, so their encoded payloads are kept warm
// and dropped on any mutation that could change them.
package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// responseKeyPrefix is the Valkey key prefix for cached responses.
	responseKeyPrefix = "resp:"

	// DefaultResponseTTL bounds staleness when an invalidation is missed.
	DefaultResponseTTL = 5 * time.Minute
)

// ResponseCache stores encoded JSON payloads in Valkey. A nil ResponseCache
// is valid and disables caching, so handlers never need to branch on it.
type ResponseCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewResponseCache creates a response cache backed by the given Valkey client.
func NewResponseCache(client *redis.Client, ttl time.Duration) *ResponseCache {
	if ttl == 0 {
		ttl = DefaultResponseTTL
	}
	return &ResponseCache{client: client, ttl: ttl}
}

// Get retrieves a cached payload. Returns false on miss or cache error.
func (rc *ResponseCache) Get(ctx context.Context, key string) ([]byte, bool) {
	if rc == nil {
		return nil, false
	}
	val, err := rc.client.Get(ctx, responseKeyPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("response cache get error", "key", key, "error", err)
		return nil, false
	}
	slog.Debug("response cache hit", "key", key)
	return val, true
}

// Set stores an encoded payload with the configured TTL.
func (rc *ResponseCache) Set(ctx context.Context, key string, payload []byte) {
	if rc == nil {
		return
	}
	if err := rc.client.Set(ctx, responseKeyPrefix+key, payload, rc.ttl).Err(); err != nil {
		slog.Warn("response cache set error", "key", key, "error", err)
	}
}

// Invalidate removes a single cached payload.
func (rc *ResponseCache) Invalidate(ctx context.Context, key string) {
	if rc == nil {
		return
	}
	if err := rc.client.Del(ctx, responseKeyPrefix+key).Err(); err != nil {
		slog.Warn("response cache invalidate error", "key", key, "error", err)
	}
	slog.Debug("response cache invalidated", "key", key)
}

// InvalidatePosts removes every cached post payload by scanning for the
// prefix. Post mutations can change any listing page, so the whole post
// keyspace goes at once.
func (rc *ResponseCache) InvalidatePosts(ctx context.Context) {
	rc.invalidatePrefix(ctx, "post:")
}

// InvalidateCategories removes the cached category list.
func (rc *ResponseCache) InvalidateCategories(ctx context.Context) {
	rc.Invalidate(ctx, CategoriesKey())
}

func (rc *ResponseCache) invalidatePrefix(ctx context.Context, prefix string) {
	if rc == nil {
		return
	}
	var cursor uint64
	var deleted int
	for {
		keys, nextCursor, err := rc.client.Scan(ctx, cursor, responseKeyPrefix+prefix+"*", 100).Result()
		if err != nil {
			slog.Warn("response cache scan error", "error", err)
			return
		}
		if len(keys) > 0 {
			if err := rc.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("response cache bulk delete error", "error", err)
			}
			deleted += len(keys)
		}
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}
	if deleted > 0 {
		slog.Debug("response cache prefix cleared", "prefix", prefix, "deleted", deleted)
	}
}

// PostKey returns the cache key for a single post payload.
func PostKey(slug string) string {
	return "post:" + slug
}

// CategoriesKey returns the cache key for the category list payload.
func CategoriesKey() string {
	return "categories"
}
