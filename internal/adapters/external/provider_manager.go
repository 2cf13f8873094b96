package external

import (
	"context"

	"weatherpush.app/internal/ports"
	"weatherpush.app/pkg/errors"
)

// ProviderManagerAdapter routes each snapshot request to the backend the
// caller named. There is no fallback between backends: a caller that asked
// for the free backend never silently reaches the keyed one.
type ProviderManagerAdapter struct {
	providers map[ports.Backend]ports.WeatherProvider
	metrics   ports.MetricsCollector
	logger    ports.Logger
}

func NewProviderManagerAdapter(free, paid ports.WeatherProvider, metrics ports.MetricsCollector, logger ports.Logger) *ProviderManagerAdapter {
	providers := make(map[ports.Backend]ports.WeatherProvider)
	if free != nil {
		providers[ports.BackendFree] = free
	}
	if paid != nil {
		providers[ports.BackendPaid] = paid
	}
	return &ProviderManagerAdapter{
		providers: providers,
		metrics:   metrics,
		logger:    logger,
	}
}

func (m *ProviderManagerAdapter) GetSnapshot(ctx context.Context, lat, lon float64, backend ports.Backend) (*ports.SnapshotData, error) {
	if !backend.IsValid() {
		return nil, errors.NewValidationError("unknown weather backend: " + string(backend))
	}

	provider, ok := m.providers[backend]
	if !ok {
		return nil, errors.NewConfigurationError("weather backend not configured: "+string(backend), nil)
	}

	snapshot, err := provider.FetchSnapshot(ctx, lat, lon)
	if m.metrics != nil {
		m.metrics.RecordWeatherAPICall(ctx, string(backend), err == nil)
	}
	if err != nil {
		m.logger.Warn("weather backend call failed",
			ports.F("backend", string(backend)),
			ports.F("provider", provider.GetProviderName()),
			ports.F("error", err.Error()))
		return nil, err
	}

	return snapshot, nil
}

func (m *ProviderManagerAdapter) GetProviderInfo() map[string]interface{} {
	info := map[string]interface{}{
		"backends": len(m.providers),
	}
	for backend, provider := range m.providers {
		info[string(backend)] = provider.GetProviderName()
	}
	return info
}
