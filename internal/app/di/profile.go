// Package di provides dependency injection factories for creating application components.
package di

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	authadapters "devfolio_backend/internal/feature/auth/adapters"
	"devfolio_backend/internal/feature/auth/usecase"
	"devfolio_backend/internal/platform/cache"
)

// NewProfileReader creates a ProfileReader implementation.
// If Redis is available, it returns the gorm reader wrapped with a Redis cache.
// Otherwise, it returns the gorm reader directly.
func NewProfileReader(rdb *redis.Client, db *gorm.DB, ttl time.Duration) usecase.ProfileReader {
	reader := authadapters.NewProfileGorm(db)
	if rdb != nil {
		return cache.NewCachingProfileReader(rdb, ttl, reader, "profiles")
	}
	return reader
}
