package infrastructure

import (
	"context"

	"gorm.io/gorm"
	"weatherpush.app/internal/ports"
)

// DatabaseHealthChecker verifies subscription store connectivity
type DatabaseHealthChecker struct {
	db *gorm.DB
}

func NewDatabaseHealthChecker(db *gorm.DB) *DatabaseHealthChecker {
	return &DatabaseHealthChecker{db: db}
}

func (d *DatabaseHealthChecker) Check(ctx context.Context) ports.HealthStatus {
	status := ports.HealthStatus{
		Component: "database",
		Details:   make(map[string]interface{}),
	}

	if d.db == nil {
		status.Status = "unhealthy"
		status.Error = "database instance is nil"
		return status
	}

	sqlDB, err := d.db.DB()
	if err != nil {
		status.Status = "unhealthy"
		status.Error = "failed to get underlying database connection"
		return status
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		status.Status = "unhealthy"
		status.Error = err.Error()
		return status
	}

	status.Status = "healthy"
	status.Details["connected"] = true
	return status
}

// WeatherBackendHealthChecker verifies the weather provider manager is wired
type WeatherBackendHealthChecker struct {
	weatherProvider ports.WeatherProviderManager
}

func NewWeatherBackendHealthChecker(weatherProvider ports.WeatherProviderManager) *WeatherBackendHealthChecker {
	return &WeatherBackendHealthChecker{weatherProvider: weatherProvider}
}

func (w *WeatherBackendHealthChecker) Check(ctx context.Context) ports.HealthStatus {
	status := ports.HealthStatus{
		Component: "weatherBackends",
		Status:    "healthy",
	}

	if w.weatherProvider == nil {
		status.Status = "unhealthy"
		status.Error = "weather provider is not available"
		return status
	}

	status.Details = w.weatherProvider.GetProviderInfo()
	return status
}

// PushHealthChecker reports whether push delivery credentials are present.
// Missing credentials do not fail the overall health check; delivery runs
// are refused separately with a service unavailable error.
type PushHealthChecker struct {
	config ports.PushConfig
}

func NewPushHealthChecker(config ports.PushConfig) *PushHealthChecker {
	return &PushHealthChecker{config: config}
}

func (p *PushHealthChecker) Check(ctx context.Context) ports.HealthStatus {
	return ports.HealthStatus{
		Component: "push",
		Status:    "healthy",
		Details: map[string]interface{}{
			"configured": p.config.IsConfigured(),
			"subscriber": p.config.Subscriber,
		},
	}
}
