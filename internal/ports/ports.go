package ports

// ApplicationPorts aggregates all ports for dependency injection
type ApplicationPorts struct {
	// Weather
	WeatherProvider WeatherProviderManager
	WeatherCache    WeatherCache
	WeatherMetrics  WeatherMetrics

	// Subscriptions
	SubscriptionRepository SubscriptionRepository

	// Delivery
	PushSender PushSender
	Metrics    MetricsCollector

	// Cache
	CacheMetrics CacheMetrics

	// Infrastructure
	ConfigProvider ConfigProvider
	Logger         Logger
	Database       interface{}
}
