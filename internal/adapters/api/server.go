// Package api provides HTTP adapters for the hexagonal architecture.
// These adapters handle incoming HTTP requests and translate them to use cases
package api

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"weatherpush.app/internal/core/delivery"
	"weatherpush.app/internal/core/history"
	"weatherpush.app/internal/core/subscription"
	"weatherpush.app/internal/core/weather"
	"weatherpush.app/internal/ports"
	"weatherpush.app/pkg/errors"
)

// ServerConfig represents HTTP server configuration
type ServerConfig struct {
	Port int
}

// Use case interfaces that the HTTP adapter depends on
type SubscriptionUseCase interface {
	Register(ctx context.Context, params subscription.RegisterParams) (*subscription.Record, error)
	Unregister(ctx context.Context, params subscription.UnregisterParams) error
}

type WeatherUseCase interface {
	GetSnapshot(ctx context.Context, request weather.SnapshotRequest) (*weather.Snapshot, error)
}

type DeliveryUseCase interface {
	Run(ctx context.Context) (delivery.Report, error)
}

type HistoryLog interface {
	ListAll() []history.Record
	MarkAllRead()
	DeleteAll()
}

type WeatherMetrics interface {
	GetProviderInfo() map[string]interface{}
	GetCacheMetrics() (ports.CacheStats, error)
}

// HTTPServerAdapter implements the HTTP server using Gin
type HTTPServerAdapter struct {
	router              *gin.Engine
	config              ServerConfig
	subscriptionUseCase SubscriptionUseCase
	weatherUseCase      WeatherUseCase
	deliveryUseCase     DeliveryUseCase
	historyLog          HistoryLog
	weatherMetrics      WeatherMetrics
	healthChecker       ports.SystemHealthChecker
}

// ServerOptions represents options for creating the HTTP server
type ServerOptions struct {
	Config              ServerConfig
	SubscriptionUseCase SubscriptionUseCase
	WeatherUseCase      WeatherUseCase
	DeliveryUseCase     DeliveryUseCase
	HistoryLog          HistoryLog
	WeatherMetrics      WeatherMetrics
	HealthChecker       ports.SystemHealthChecker
}

// Validate checks if all required dependencies are provided
func (opts *ServerOptions) Validate() error {
	if opts.SubscriptionUseCase == nil {
		return errors.NewValidationError("subscription use case is required")
	}
	if opts.WeatherUseCase == nil {
		return errors.NewValidationError("weather use case is required")
	}
	if opts.DeliveryUseCase == nil {
		return errors.NewValidationError("delivery use case is required")
	}
	if opts.HistoryLog == nil {
		return errors.NewValidationError("history log is required")
	}
	if opts.WeatherMetrics == nil {
		return errors.NewValidationError("weather metrics is required")
	}
	return nil
}

// NewHTTPServerAdapter creates a new HTTP server adapter
func NewHTTPServerAdapter(opts ServerOptions) (*HTTPServerAdapter, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid server options: %w", err)
	}

	router := gin.Default()

	server := &HTTPServerAdapter{
		router:              router,
		config:              opts.Config,
		subscriptionUseCase: opts.SubscriptionUseCase,
		weatherUseCase:      opts.WeatherUseCase,
		deliveryUseCase:     opts.DeliveryUseCase,
		historyLog:          opts.HistoryLog,
		weatherMetrics:      opts.WeatherMetrics,
		healthChecker:       opts.HealthChecker,
	}

	server.setupRoutes()
	return server, nil
}

// setupRoutes configures all HTTP routes
func (s *HTTPServerAdapter) setupRoutes() {
	api := s.router.Group("/api")
	{
		api.POST("/push/subscribe", s.subscribe)
		api.POST("/push/unsubscribe", s.unsubscribe)
		api.POST("/notifications/run", s.runDelivery)
		api.GET("/weather", s.getWeather)
		api.GET("/history", s.listHistory)
		api.POST("/history/read", s.markHistoryRead)
		api.DELETE("/history", s.clearHistory)
		api.GET("/health", s.getHealth)
		api.GET("/metrics", s.getMetrics)
	}

	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// Start begins the HTTP server
func (s *HTTPServerAdapter) Start(ctx context.Context) error {
	slog.Info("Starting HTTP server", "port", s.config.Port)
	return s.router.Run(fmt.Sprintf(":%d", s.config.Port))
}

// GetRouter returns the router for testing purposes
func (s *HTTPServerAdapter) GetRouter() *gin.Engine {
	return s.router
}
