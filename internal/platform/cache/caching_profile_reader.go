// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"devfolio_backend/internal/feature/auth/domain/entity"
	"devfolio_backend/internal/feature/auth/usecase"
	"devfolio_backend/internal/platform/metrics"
)

// CachingProfileReader decorates a ProfileReader with Redis caching.
// Redis errors never fail a request; the reader falls through to the inner store.
type CachingProfileReader struct {
	inner     usecase.ProfileReader
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.ProfileReader = (*CachingProfileReader)(nil)

// NewCachingProfileReader decorates a ProfileReader with Redis caching.
// If ttl is 0, it defaults to 1 minute. If namespace is empty, it uses "profiles".
func NewCachingProfileReader(rdb *redis.Client, ttl time.Duration, inner usecase.ProfileReader, namespace string) *CachingProfileReader {
	if ttl <= 0 {
		ttl = time.Minute
	}
	if namespace == "" {
		namespace = "profiles"
	}
	return &CachingProfileReader{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// FindPublicProfile checks the cache first, then falls back to the inner reader.
// Misses (ErrUserNotFound) are not cached.
func (c *CachingProfileReader) FindPublicProfile(ctx context.Context, id string) (*entity.PublicProfile, error) {
	if c.rdb == nil {
		return c.inner.FindPublicProfile(ctx, id)
	}

	key := c.cacheKey(id)

	// 1) Check cache
	b, err := c.rdb.Get(ctx, key).Bytes()
	switch {
	case err == nil && len(b) > 0:
		var out entity.PublicProfile
		if err := json.Unmarshal(b, &out); err == nil {
			metrics.CacheLookups.WithLabelValues("hit").Inc()
			return &out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
		metrics.CacheLookups.WithLabelValues("miss").Inc()
	case err == nil || err == redis.Nil:
		metrics.CacheLookups.WithLabelValues("miss").Inc()
	default:
		slog.WarnContext(ctx, "profile cache read failed", "error", err, "key", key)
		metrics.CacheLookups.WithLabelValues("error").Inc()
	}

	// 2) Fallback to database
	out, err := c.inner.FindPublicProfile(ctx, id)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}
	return out, nil
}

// InvalidateProfiles drops the cached copies of ids.
func (c *CachingProfileReader) InvalidateProfiles(ctx context.Context, ids ...string) {
	c.inner.InvalidateProfiles(ctx, ids...)
	if c.rdb == nil || len(ids) == 0 {
		return
	}

	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, c.cacheKey(id))
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		slog.WarnContext(ctx, "profile cache invalidation failed", "error", err, "keys", keys)
	}
}

// cacheKey generates the cache key of a profile.
func (c *CachingProfileReader) cacheKey(id string) string {
	return c.namespace + ":" + safe(id)
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
