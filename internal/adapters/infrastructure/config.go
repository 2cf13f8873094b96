package infrastructure

import (
	"time"

	"weatherpush.app/internal/config"
	"weatherpush.app/internal/ports"
)

// ConfigProviderAdapter implements the ConfigProvider port
type ConfigProviderAdapter struct {
	config *config.Config
}

// NewConfigProviderAdapter creates a new config provider adapter
func NewConfigProviderAdapter(cfg *config.Config) *ConfigProviderAdapter {
	return &ConfigProviderAdapter{
		config: cfg,
	}
}

// GetAppConfig returns application configuration
func (c *ConfigProviderAdapter) GetAppConfig() ports.AppConfig {
	return ports.AppConfig{
		BaseURL: c.config.AppBaseURL,
	}
}

// GetDatabaseConfig returns database configuration
func (c *ConfigProviderAdapter) GetDatabaseConfig() ports.DatabaseConfig {
	return ports.DatabaseConfig{
		Host:     c.config.Database.Host,
		Port:     c.config.Database.Port,
		User:     c.config.Database.User,
		Password: c.config.Database.Password,
		Name:     c.config.Database.Name,
		SSLMode:  c.config.Database.SSLMode,
	}
}

// GetServerConfig returns server configuration
func (c *ConfigProviderAdapter) GetServerConfig() ports.ServerConfig {
	return ports.ServerConfig{
		Port: c.config.Server.Port,
	}
}

// GetWeatherConfig returns weather resolution configuration
func (c *ConfigProviderAdapter) GetWeatherConfig() ports.WeatherConfig {
	return ports.WeatherConfig{
		EnableCache:    c.config.Weather.EnableCache,
		CacheTTL:       time.Duration(c.config.Weather.CacheTTLMinutes) * time.Minute,
		ReuseTolerance: c.config.Weather.ReuseTolerance,
	}
}

// GetPushConfig returns web push delivery configuration
func (c *ConfigProviderAdapter) GetPushConfig() ports.PushConfig {
	return ports.PushConfig{
		VAPIDPublicKey:  c.config.Push.VAPIDPublicKey,
		VAPIDPrivateKey: c.config.Push.VAPIDPrivateKey,
		Subscriber:      c.config.Push.Subscriber,
		TTLSeconds:      c.config.Push.TTLSeconds,
	}
}

// GetCacheConfig returns cache configuration
func (c *ConfigProviderAdapter) GetCacheConfig() ports.CacheConfig {
	return ports.CacheConfig{
		Type: c.config.Cache.Type.String(),
		Redis: ports.RedisConfig{
			Addr:         c.config.Cache.Redis.Addr,
			Password:     c.config.Cache.Redis.Password,
			DB:           c.config.Cache.Redis.DB,
			DialTimeout:  c.config.Cache.Redis.DialTimeout,
			ReadTimeout:  c.config.Cache.Redis.ReadTimeout,
			WriteTimeout: c.config.Cache.Redis.WriteTimeout,
		},
	}
}

// GetSchedulerConfig returns delivery run scheduling configuration
func (c *ConfigProviderAdapter) GetSchedulerConfig() ports.SchedulerConfig {
	return ports.SchedulerConfig{
		RunInterval:     c.config.Scheduler.RunInterval(),
		FanOutWorkers:   c.config.Scheduler.FanOutWorkers,
		GroupPrecision:  c.config.Scheduler.GroupPrecision,
		GroupFetchPause: c.config.Scheduler.GroupFetchPause(),
	}
}
