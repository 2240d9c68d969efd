package di

import (
	"time"

	"github.com/redis/go-redis/v9"

	"devfolio_backend/internal/platform/ratelimit"
)

// NewRateLimiter creates a Limiter implementation.
// If Redis is available, the counters are shared across instances.
// Otherwise, it falls back to a per-process in-memory limiter.
func NewRateLimiter(rdb *redis.Client, limit int, window time.Duration) ratelimit.Limiter {
	if rdb != nil {
		return ratelimit.NewRedisLimiter(rdb, limit, window)
	}
	return ratelimit.NewMemoryLimiter(limit, window)
}
