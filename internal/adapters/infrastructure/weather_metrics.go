package infrastructure

import (
	"weatherpush.app/internal/ports"
	"weatherpush.app/pkg/errors"
)

// WeatherMetricsAdapter aggregates provider and cache statistics for the
// JSON metrics endpoint
type WeatherMetricsAdapter struct {
	providerManager ports.WeatherProviderManager
	cacheMetrics    ports.CacheMetrics
}

func NewWeatherMetricsAdapter(providerManager ports.WeatherProviderManager, cacheMetrics ports.CacheMetrics) *WeatherMetricsAdapter {
	return &WeatherMetricsAdapter{
		providerManager: providerManager,
		cacheMetrics:    cacheMetrics,
	}
}

func (w *WeatherMetricsAdapter) GetProviderInfo() map[string]interface{} {
	if w.providerManager == nil {
		return map[string]interface{}{}
	}
	return w.providerManager.GetProviderInfo()
}

func (w *WeatherMetricsAdapter) GetCacheMetrics() (ports.CacheStats, error) {
	if w.cacheMetrics == nil {
		return ports.CacheStats{}, errors.NewConfigurationError("cache metrics are not available", nil)
	}
	return w.cacheMetrics.GetStats(), nil
}
