package ports

import (
	"context"
	"time"
)

// Backend selects which weather data source serves a request. The selector
// is always explicit: attended queries may use the paid backend, unattended
// scheduled queries must use the free one.
type Backend string

const (
	BackendFree Backend = "free"
	BackendPaid Backend = "paid"
)

// IsValid checks if the backend selector is known
func (b Backend) IsValid() bool {
	return b == BackendFree || b == BackendPaid
}

// AlertData represents a severe weather alert attached to a snapshot
type AlertData struct {
	Event       string
	Severity    string
	Description string
}

// SnapshotData represents the minimal weather projection this subsystem consumes
type SnapshotData struct {
	LocationLabel string
	Lat           float64
	Lon           float64
	Temperature   float64
	Condition     string
	Alerts        []AlertData
	FetchedAt     time.Time
}

// CacheStats represents cache performance metrics
type CacheStats struct {
	Hits        int64
	Misses      int64
	TotalOps    int64
	HitRatio    float64
	LastUpdated time.Time
}

// WeatherProvider defines the contract for a single weather backend
type WeatherProvider interface {
	FetchSnapshot(ctx context.Context, lat, lon float64) (*SnapshotData, error)
	GetProviderName() string
}

// WeatherProviderManager routes snapshot requests to an explicitly
// selected backend
type WeatherProviderManager interface {
	GetSnapshot(ctx context.Context, lat, lon float64, backend Backend) (*SnapshotData, error)
	GetProviderInfo() map[string]interface{}
}

// WeatherCache defines the contract for caching weather snapshots
type WeatherCache interface {
	Get(ctx context.Context, key string) (*SnapshotData, error)
	Set(ctx context.Context, key string, snapshot *SnapshotData, ttl time.Duration) error
}

// WeatherMetrics defines the contract for weather provider metrics
type WeatherMetrics interface {
	GetProviderInfo() map[string]interface{}
	GetCacheMetrics() (CacheStats, error)
}
