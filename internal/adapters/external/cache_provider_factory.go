package external

import (
	"weatherpush.app/internal/ports"
	"weatherpush.app/pkg/errors"
)

const (
	cacheTypeMemory = "memory"
	cacheTypeRedis  = "redis"
)

// NewCacheProvider builds the cache backend named by configuration.
func NewCacheProvider(cfg ports.CacheConfig, logger ports.Logger) (ports.CacheProvider, error) {
	switch cfg.Type {
	case cacheTypeMemory, "":
		return NewMemoryCacheProviderAdapter(), nil
	case cacheTypeRedis:
		return NewRedisCacheProviderAdapter(cfg.Redis, logger)
	default:
		return nil, errors.NewConfigurationError("unknown cache type: "+cfg.Type, nil)
	}
}
