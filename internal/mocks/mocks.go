// Package mocks provides hand-written test doubles for the port interfaces.
package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"weatherpush.app/internal/ports"
)

// SubscriptionRepository mocks ports.SubscriptionRepository
type SubscriptionRepository struct {
	mock.Mock
}

func (m *SubscriptionRepository) Save(ctx context.Context, sub *ports.SubscriptionData) error {
	args := m.Called(ctx, sub)
	return args.Error(0)
}

func (m *SubscriptionRepository) FindByID(ctx context.Context, id string) (*ports.SubscriptionData, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ports.SubscriptionData), args.Error(1)
}

func (m *SubscriptionRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *SubscriptionRepository) ListEnabled(ctx context.Context) ([]*ports.SubscriptionData, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*ports.SubscriptionData), args.Error(1)
}

func (m *SubscriptionRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// WeatherProviderManager mocks ports.WeatherProviderManager
type WeatherProviderManager struct {
	mock.Mock
}

func (m *WeatherProviderManager) GetSnapshot(ctx context.Context, lat, lon float64, backend ports.Backend) (*ports.SnapshotData, error) {
	args := m.Called(ctx, lat, lon, backend)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ports.SnapshotData), args.Error(1)
}

func (m *WeatherProviderManager) GetProviderInfo() map[string]interface{} {
	args := m.Called()
	return args.Get(0).(map[string]interface{})
}

// PushSender mocks ports.PushSender
type PushSender struct {
	mock.Mock
}

func (m *PushSender) Send(ctx context.Context, params ports.PushParams) (ports.DeliveryResult, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(ports.DeliveryResult), args.Error(1)
}

// LocalNotifier mocks ports.LocalNotifier
type LocalNotifier struct {
	mock.Mock
}

func (m *LocalNotifier) Notify(ctx context.Context, tag, title, body string) error {
	args := m.Called(ctx, tag, title, body)
	return args.Error(0)
}

func (m *LocalNotifier) SupportsDeferred() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *LocalNotifier) NotifyAt(ctx context.Context, tag, title, body string, at time.Time) error {
	args := m.Called(ctx, tag, title, body, at)
	return args.Error(0)
}

// WeatherCache mocks ports.WeatherCache
type WeatherCache struct {
	mock.Mock
}

func (m *WeatherCache) Get(ctx context.Context, key string) (*ports.SnapshotData, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ports.SnapshotData), args.Error(1)
}

func (m *WeatherCache) Set(ctx context.Context, key string, snapshot *ports.SnapshotData, ttl time.Duration) error {
	args := m.Called(ctx, key, snapshot, ttl)
	return args.Error(0)
}

// WeatherMetrics mocks ports.WeatherMetrics
type WeatherMetrics struct {
	mock.Mock
}

func (m *WeatherMetrics) GetProviderInfo() map[string]interface{} {
	args := m.Called()
	return args.Get(0).(map[string]interface{})
}

func (m *WeatherMetrics) GetCacheMetrics() (ports.CacheStats, error) {
	args := m.Called()
	return args.Get(0).(ports.CacheStats), args.Error(1)
}

// NoopLogger satisfies ports.Logger without recording anything. Most tests
// only need the logger to exist.
type NoopLogger struct{}

func (NoopLogger) Debug(msg string, fields ...ports.Field) {}
func (NoopLogger) Info(msg string, fields ...ports.Field)  {}
func (NoopLogger) Warn(msg string, fields ...ports.Field)  {}
func (NoopLogger) Error(msg string, fields ...ports.Field) {}

// NoopMetrics satisfies ports.MetricsCollector
type NoopMetrics struct{}

func (NoopMetrics) RecordCacheHit(ctx context.Context)                                  {}
func (NoopMetrics) RecordCacheMiss(ctx context.Context)                                 {}
func (NoopMetrics) RecordWeatherAPICall(ctx context.Context, backend string, ok bool)   {}
func (NoopMetrics) RecordDelivery(ctx context.Context, result ports.DeliveryResult)     {}

// CountingMetrics records delivery outcomes for assertions
type CountingMetrics struct {
	Deliveries map[string]int
}

func NewCountingMetrics() *CountingMetrics {
	return &CountingMetrics{Deliveries: make(map[string]int)}
}

func (m *CountingMetrics) RecordCacheHit(ctx context.Context)                                {}
func (m *CountingMetrics) RecordCacheMiss(ctx context.Context)                               {}
func (m *CountingMetrics) RecordWeatherAPICall(ctx context.Context, backend string, ok bool) {}
func (m *CountingMetrics) RecordDelivery(ctx context.Context, result ports.DeliveryResult) {
	m.Deliveries[result.String()]++
}

// StaticConfigProvider serves fixed configuration to use cases under test
type StaticConfigProvider struct {
	Weather   ports.WeatherConfig
	App       ports.AppConfig
	Server    ports.ServerConfig
	Database  ports.DatabaseConfig
	Push      ports.PushConfig
	Cache     ports.CacheConfig
	Scheduler ports.SchedulerConfig
}

func (c *StaticConfigProvider) GetWeatherConfig() ports.WeatherConfig     { return c.Weather }
func (c *StaticConfigProvider) GetAppConfig() ports.AppConfig             { return c.App }
func (c *StaticConfigProvider) GetServerConfig() ports.ServerConfig       { return c.Server }
func (c *StaticConfigProvider) GetDatabaseConfig() ports.DatabaseConfig   { return c.Database }
func (c *StaticConfigProvider) GetPushConfig() ports.PushConfig           { return c.Push }
func (c *StaticConfigProvider) GetCacheConfig() ports.CacheConfig         { return c.Cache }
func (c *StaticConfigProvider) GetSchedulerConfig() ports.SchedulerConfig { return c.Scheduler }
