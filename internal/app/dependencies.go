package app

import (
	"fmt"
	"log/slog"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"weatherpush.app/internal/adapters/database"
	"weatherpush.app/internal/adapters/external"
	"weatherpush.app/internal/adapters/infrastructure"
	"weatherpush.app/internal/config"
	"weatherpush.app/internal/ports"
)

type DependencyContainer struct {
	config *config.Config
	db     *gorm.DB
	ports  *ports.ApplicationPorts
}

func NewDependencyContainer(cfg *config.Config) (*DependencyContainer, error) {
	container := &DependencyContainer{
		config: cfg,
	}

	if err := container.initializeDatabase(); err != nil {
		return nil, fmt.Errorf("initialize database: %w", err)
	}

	if err := container.initializePorts(); err != nil {
		return nil, fmt.Errorf("initialize ports: %w", err)
	}

	return container, nil
}

func (c *DependencyContainer) initializeDatabase() error {
	slog.Info("Initializing database connection...")

	dsn := c.config.Database.GetDSN()
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}

	if err := c.runMigrations(db); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	c.db = db
	slog.Info("Database connection established successfully")
	return nil
}

func (c *DependencyContainer) runMigrations(db *gorm.DB) error {
	slog.Info("Running database migrations...")

	if err := db.AutoMigrate(&database.SubscriptionModel{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	slog.Info("Database migrations completed successfully")
	return nil
}

func (c *DependencyContainer) initializePorts() error {
	slog.Info("Initializing ports...")

	var logger ports.Logger = &infrastructure.SlogLoggerAdapter{}
	configProvider := infrastructure.NewConfigProviderAdapter(c.config)
	metricsCollector := infrastructure.NewPrometheusMetricsAdapter()

	subscriptionRepo := database.NewSubscriptionRepositoryAdapter(c.db)

	freeProvider := external.NewOpenMeteoAdapter(c.config.Weather.FreeBaseURL, logger)

	var paidProvider ports.WeatherProvider
	if c.config.Weather.PaidAPIKey != "" {
		paidProvider = external.NewWeatherAPIAdapter(c.config.Weather.PaidAPIKey, c.config.Weather.PaidBaseURL, logger)
	} else {
		slog.Info("Paid weather backend disabled, no API key configured")
	}

	providerManager := external.NewProviderManagerAdapter(freeProvider, paidProvider, metricsCollector, logger)

	cacheProvider, err := external.NewCacheProvider(configProvider.GetCacheConfig(), logger)
	if err != nil {
		return fmt.Errorf("create cache provider: %w", err)
	}
	weatherCache := external.NewWeatherCacheAdapter(cacheProvider, metricsCollector, logger)

	slog.Info("Cache provider initialized",
		"type", c.config.Cache.Type.String(),
		"redis_addr", c.config.Cache.Redis.Addr)

	cacheMetrics, ok := cacheProvider.(ports.CacheMetrics)
	if !ok {
		return fmt.Errorf("cache provider does not expose metrics")
	}

	pushSender, err := external.NewWebPushSenderAdapter(configProvider.GetPushConfig(), logger)
	if err != nil {
		return fmt.Errorf("create push sender: %w", err)
	}
	weatherMetrics := infrastructure.NewWeatherMetricsAdapter(providerManager, cacheMetrics)

	c.ports = &ports.ApplicationPorts{
		WeatherProvider: providerManager,
		WeatherCache:    weatherCache,
		WeatherMetrics:  weatherMetrics,

		SubscriptionRepository: subscriptionRepo,

		PushSender: pushSender,
		Metrics:    metricsCollector,

		CacheMetrics: cacheMetrics,

		ConfigProvider: configProvider,
		Logger:         logger,
		Database:       c.db,
	}

	slog.Info("Ports initialized successfully")
	return nil
}

func (c *DependencyContainer) ApplicationPorts() *ports.ApplicationPorts {
	return c.ports
}

func (c *DependencyContainer) Database() *gorm.DB {
	return c.db
}
