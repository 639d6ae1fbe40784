// Package di provides dependency injection factories for creating application components.
package di

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	authadapters "docsummary_backend/internal/feature/auth/adapters"
	"docsummary_backend/internal/feature/auth/usecase"
	"docsummary_backend/internal/platform/codes"
)

// NewCodeRepository creates a CodeRepository implementation.
// If Redis is available, it returns a Redis-backed implementation with
// native TTL expiry. Otherwise, it falls back to MySQL.
func NewCodeRepository(rdb *redis.Client, db *gorm.DB) usecase.CodeRepository {
	if rdb != nil {
		return codes.NewCodeRedis(rdb, "codes")
	}
	return authadapters.NewCodeMySQL(db)
}
