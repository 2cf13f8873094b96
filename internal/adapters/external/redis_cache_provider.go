package external

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"weatherpush.app/internal/ports"
	"weatherpush.app/pkg/errors"
)

// RedisCacheProviderAdapter backs the snapshot cache with Redis and keeps
// hit/miss statistics locally.
type RedisCacheProviderAdapter struct {
	client *redis.Client
	logger ports.Logger

	mu     sync.RWMutex
	hits   int64
	misses int64
}

func NewRedisCacheProviderAdapter(cfg ports.RedisConfig, logger ports.Logger) (*RedisCacheProviderAdapter, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  time.Duration(cfg.DialTimeout) * time.Second,
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, errors.NewExternalAPIError("failed to connect to redis", err)
	}

	return &RedisCacheProviderAdapter{
		client: client,
		logger: logger,
	}, nil
}

func (r *RedisCacheProviderAdapter) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := r.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		r.recordMiss()
		return nil, errors.NewNotFoundError("cache key not found: " + key)
	}
	if err != nil {
		r.recordMiss()
		return nil, errors.NewExternalAPIError("redis get failed", err)
	}
	r.recordHit()
	return value, nil
}

func (r *RedisCacheProviderAdapter) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := r.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return errors.NewExternalAPIError("redis set failed", err)
	}
	return nil
}

func (r *RedisCacheProviderAdapter) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return errors.NewExternalAPIError("redis delete failed", err)
	}
	return nil
}

func (r *RedisCacheProviderAdapter) Exists(ctx context.Context, key string) (bool, error) {
	count, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return false, errors.NewExternalAPIError("redis exists failed", err)
	}
	return count > 0, nil
}

func (r *RedisCacheProviderAdapter) Clear(ctx context.Context) error {
	if err := r.client.FlushDB(ctx).Err(); err != nil {
		return errors.NewExternalAPIError("redis flush failed", err)
	}
	return nil
}

func (r *RedisCacheProviderAdapter) GetStats() ports.CacheStats {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return buildCacheStats(r.hits, r.misses)
}

func (r *RedisCacheProviderAdapter) RecordHit()  { r.recordHit() }
func (r *RedisCacheProviderAdapter) RecordMiss() { r.recordMiss() }

func (r *RedisCacheProviderAdapter) RecordOperation(operation string, duration time.Duration) {
	if r.logger != nil {
		r.logger.Debug("cache operation",
			ports.F("operation", operation),
			ports.F("duration_ms", duration.Milliseconds()))
	}
}

func (r *RedisCacheProviderAdapter) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisCacheProviderAdapter) Close() error {
	return r.client.Close()
}

func (r *RedisCacheProviderAdapter) recordHit() {
	r.mu.Lock()
	r.hits++
	r.mu.Unlock()
}

func (r *RedisCacheProviderAdapter) recordMiss() {
	r.mu.Lock()
	r.misses++
	r.mu.Unlock()
}

func buildCacheStats(hits, misses int64) ports.CacheStats {
	total := hits + misses
	stats := ports.CacheStats{
		Hits:        hits,
		Misses:      misses,
		TotalOps:    total,
		LastUpdated: time.Now(),
	}
	if total > 0 {
		stats.HitRatio = float64(hits) / float64(total)
	}
	return stats
}
