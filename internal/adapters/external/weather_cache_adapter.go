package external

import (
	"context"
	"encoding/json"
	"time"

	"weatherpush.app/internal/ports"
	"weatherpush.app/pkg/errors"
)

// JSONCacheSerializer serializes snapshots for cache storage
type JSONCacheSerializer struct{}

func NewJSONCacheSerializer() *JSONCacheSerializer {
	return &JSONCacheSerializer{}
}

func (s *JSONCacheSerializer) Serialize(data interface{}) ([]byte, error) {
	return json.Marshal(data)
}

func (s *JSONCacheSerializer) Deserialize(data []byte, target interface{}) error {
	return json.Unmarshal(data, target)
}

// WeatherCacheAdapter bridges the byte-level cache provider to typed
// snapshot storage.
type WeatherCacheAdapter struct {
	provider   ports.CacheProvider
	serializer ports.CacheSerializer
	metrics    ports.MetricsCollector
	logger     ports.Logger
}

func NewWeatherCacheAdapter(provider ports.CacheProvider, metrics ports.MetricsCollector, logger ports.Logger) *WeatherCacheAdapter {
	return &WeatherCacheAdapter{
		provider:   provider,
		serializer: NewJSONCacheSerializer(),
		metrics:    metrics,
		logger:     logger,
	}
}

func (w *WeatherCacheAdapter) Get(ctx context.Context, key string) (*ports.SnapshotData, error) {
	raw, err := w.provider.Get(ctx, key)
	if err != nil {
		if w.metrics != nil {
			w.metrics.RecordCacheMiss(ctx)
		}
		return nil, err
	}

	var snapshot ports.SnapshotData
	if err := w.serializer.Deserialize(raw, &snapshot); err != nil {
		// A corrupt entry is treated as a miss so the caller refetches.
		w.logger.Warn("failed to deserialize cached snapshot",
			ports.F("key", key),
			ports.F("error", err.Error()))
		if w.metrics != nil {
			w.metrics.RecordCacheMiss(ctx)
		}
		return nil, errors.NewNotFoundError("cached snapshot is corrupt: " + key)
	}

	if w.metrics != nil {
		w.metrics.RecordCacheHit(ctx)
	}
	return &snapshot, nil
}

func (w *WeatherCacheAdapter) Set(ctx context.Context, key string, snapshot *ports.SnapshotData, ttl time.Duration) error {
	if snapshot == nil {
		return errors.NewValidationError("snapshot cannot be nil")
	}

	raw, err := w.serializer.Serialize(snapshot)
	if err != nil {
		return errors.NewExternalAPIError("failed to serialize snapshot", err)
	}

	return w.provider.Set(ctx, key, raw, ttl)
}
