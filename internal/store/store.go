package store

import (
	"fmt"

	"go_redirect/internal/redirect"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

// Backend kinds accepted by New
const (
	KindMySQL = "mysql"
	KindRedis = "redis"
)

// Handles carries the connections a backend may be built on
type Handles struct {
	DB    *gorm.DB
	Redis *redis.Client
}

// New resolves the configured backend kind to a redirect.Store once, at composition time
func New(kind string, h Handles, table string, batchSize int) (redirect.Store, error) {
	switch kind {
	case "", KindMySQL:
		if h.DB == nil {
			return nil, fmt.Errorf("store %q requires a database connection", KindMySQL)
		}
		return NewGormStore(h.DB, table, batchSize), nil
	case KindRedis:
		if h.Redis == nil {
			return nil, fmt.Errorf("store %q requires a redis connection", KindRedis)
		}
		return NewRedisStore(h.Redis, table, batchSize), nil
	default:
		return nil, fmt.Errorf("unknown redirect store %q", kind)
	}
}
