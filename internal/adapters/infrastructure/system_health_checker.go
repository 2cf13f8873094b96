package infrastructure

import (
	"context"

	"weatherpush.app/internal/ports"
)

// SystemHealthChecker aggregates all component health checks
type SystemHealthChecker struct {
	databaseChecker ports.HealthChecker
	weatherChecker  ports.HealthChecker
	pushChecker     ports.HealthChecker
	configProvider  ports.ConfigProvider
}

// SystemHealthCheckerConfig holds the configuration for creating a system health checker
type SystemHealthCheckerConfig struct {
	DatabaseChecker ports.HealthChecker
	WeatherChecker  ports.HealthChecker
	PushChecker     ports.HealthChecker
	ConfigProvider  ports.ConfigProvider
}

// NewSystemHealthChecker creates a new system health checker
func NewSystemHealthChecker(config SystemHealthCheckerConfig) *SystemHealthChecker {
	return &SystemHealthChecker{
		databaseChecker: config.DatabaseChecker,
		weatherChecker:  config.WeatherChecker,
		pushChecker:     config.PushChecker,
		configProvider:  config.ConfigProvider,
	}
}

// CheckAll performs health checks on all components
func (s *SystemHealthChecker) CheckAll(ctx context.Context) map[string]ports.HealthStatus {
	results := make(map[string]ports.HealthStatus)

	if s.databaseChecker != nil {
		results["database"] = s.databaseChecker.Check(ctx)
	}

	if s.weatherChecker != nil {
		results["weatherBackends"] = s.weatherChecker.Check(ctx)
	}

	if s.pushChecker != nil {
		results["push"] = s.pushChecker.Check(ctx)
	}

	if s.configProvider != nil {
		appConfig := s.configProvider.GetAppConfig()
		results["config"] = ports.HealthStatus{
			Component: "config",
			Status:    "healthy",
			Details: map[string]interface{}{
				"appBaseURL": appConfig.BaseURL,
			},
		}
	}

	return results
}
