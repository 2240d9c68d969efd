// Package ratelimit は固定ウィンドウ方式のレートリミッターとginミドルウェアを提供します。
package ratelimit

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"devfolio_backend/internal/api"
	"devfolio_backend/internal/platform/metrics"
)

// Limiter はキーごとのリクエスト回数を制限します。
type Limiter interface {
	// Allow はkeyの今回のリクエストが上限内であればtrueを返します。
	Allow(ctx context.Context, key string) (bool, error)
}

// RedisLimiter はRedisのINCR/EXPIREで複数インスタンス間のカウントを共有します。
type RedisLimiter struct {
	rdb    *redis.Client
	limit  int
	window time.Duration
}

// NewRedisLimiter はRedisLimiterを生成します。
func NewRedisLimiter(rdb *redis.Client, limit int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{rdb: rdb, limit: limit, window: window}
}

// Allow はカウンタをインクリメントし、最初のリクエストでウィンドウの有効期限を設定します。
func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	cnt, err := l.rdb.Incr(ctx, key).Result()
	if err != nil {
		return false, err
	}
	if cnt == 1 {
		if err := l.rdb.Expire(ctx, key, l.window).Err(); err != nil {
			return false, err
		}
	}
	return cnt <= int64(l.limit), nil
}

// MemoryLimiter はプロセス内のカウンタで制限します。Redisが無い環境向けのフォールバックです。
type MemoryLimiter struct {
	mu       sync.Mutex
	limit    int           // ウィンドウあたりの上限
	interval time.Duration // どの単位でリセットするか
	windows  map[string]*window
	now      func() time.Time
}

type window struct {
	count     int
	lastReset time.Time
}

// NewMemoryLimiter は新しいMemoryLimiterのインスタンスを生成します。
func NewMemoryLimiter(limit int, interval time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		limit:    limit,
		interval: interval,
		windows:  make(map[string]*window),
		now:      time.Now,
	}
}

// Allow はkeyのカウントを進め、上限を超えていればfalseを返します。待機はしません。
func (l *MemoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	w, ok := l.windows[key]
	// interval を過ぎたらカウントリセット
	if !ok || now.Sub(w.lastReset) >= l.interval {
		w = &window{lastReset: now}
		l.windows[key] = w
		l.sweep(now)
	}

	w.count++
	return w.count <= l.limit, nil
}

// sweep は期限切れのウィンドウを削除してマップの肥大化を防ぎます。
func (l *MemoryLimiter) sweep(now time.Time) {
	for k, w := range l.windows {
		if now.Sub(w.lastReset) >= l.interval {
			delete(l.windows, k)
		}
	}
}

// Middleware はクライアントIP単位でresourceへのリクエストを制限するginミドルウェアです。
// ストアのエラー時はリクエストを通します（フェイルオープン）。
func Middleware(l Limiter, resource string) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := fmt.Sprintf("rl:%s:ip:%s", resource, c.ClientIP())

		allowed, err := l.Allow(c.Request.Context(), key)
		if err != nil {
			slog.Warn("rate limiter unavailable, allowing request", "error", err, "resource", resource)
			c.Next()
			return
		}
		if !allowed {
			metrics.RateLimited.WithLabelValues(resource).Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, api.ErrorResponse{Error: "rate limit exceeded"})
			return
		}
		c.Next()
	}
}
