package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"code.cloudfoundry.org/clock"
	"github.com/gin-gonic/gin"
	"github.com/go-co-op/gocron"
	"gorm.io/gorm"
	"weatherpush.app/internal/adapters/api"
	"weatherpush.app/internal/adapters/external"
	"weatherpush.app/internal/adapters/infrastructure"
	"weatherpush.app/internal/config"
	"weatherpush.app/internal/core/delivery"
	"weatherpush.app/internal/core/history"
	"weatherpush.app/internal/core/schedule"
	"weatherpush.app/internal/core/subscription"
	"weatherpush.app/internal/core/weather"
	"weatherpush.app/internal/ports"
)

type Application struct {
	config *config.Config

	// Use cases
	subscriptionUseCase *subscription.UseCase
	weatherUseCase      *weather.UseCase
	deliveryUseCase     *delivery.UseCase
	historyLog          *history.Log
	triggerStrategy     *schedule.PollingStrategy
	triggerConfig       schedule.Config

	// Adapters
	httpServer *http.Server
	router     *gin.Engine
	scheduler  *gocron.Scheduler

	// Infrastructure
	ports *ports.ApplicationPorts
}

func NewApplication() (*Application, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	app := &Application{
		config: cfg,
	}

	if err := app.initializePorts(); err != nil {
		return nil, fmt.Errorf("initialize ports: %w", err)
	}

	if err := app.initializeUseCases(); err != nil {
		return nil, fmt.Errorf("initialize use cases: %w", err)
	}

	if err := app.initializeAdapters(); err != nil {
		return nil, fmt.Errorf("initialize adapters: %w", err)
	}

	return app, nil
}

func (a *Application) initializePorts() error {
	slog.Info("Initializing application ports...")

	deps, err := NewDependencyContainer(a.config)
	if err != nil {
		return fmt.Errorf("create dependency container: %w", err)
	}

	a.ports = deps.ApplicationPorts()
	slog.Info("Application ports initialized successfully")
	return nil
}

func (a *Application) initializeUseCases() error {
	slog.Info("Initializing use cases...")

	subscriptionUseCase, err := subscription.NewUseCase(subscription.UseCaseDependencies{
		SubscriptionRepo: a.ports.SubscriptionRepository,
		Logger:           a.ports.Logger,
	})
	if err != nil {
		return fmt.Errorf("create subscription use case: %w", err)
	}
	a.subscriptionUseCase = subscriptionUseCase

	weatherUseCase, err := weather.NewUseCase(weather.UseCaseDependencies{
		WeatherProvider: a.ports.WeatherProvider,
		Cache:           a.ports.WeatherCache,
		Config:          a.ports.ConfigProvider,
		Logger:          a.ports.Logger,
		Metrics:         a.ports.WeatherMetrics,
	})
	if err != nil {
		return fmt.Errorf("create weather use case: %w", err)
	}
	a.weatherUseCase = weatherUseCase

	deliveryUseCase, err := delivery.NewUseCase(delivery.UseCaseDependencies{
		SubscriptionRepo: a.ports.SubscriptionRepository,
		WeatherProvider:  a.ports.WeatherProvider,
		PushSender:       a.ports.PushSender,
		Config:           a.ports.ConfigProvider,
		Logger:           a.ports.Logger,
		Metrics:          a.ports.Metrics,
	})
	if err != nil {
		return fmt.Errorf("create delivery use case: %w", err)
	}
	a.deliveryUseCase = deliveryUseCase

	a.historyLog = history.NewLog(history.DefaultLimit, a.config.Trigger.HistoryEnabled)

	if err := a.initializeTrigger(); err != nil {
		return fmt.Errorf("create trigger strategy: %w", err)
	}

	slog.Info("Use cases initialized successfully")
	return nil
}

// initializeTrigger builds the optional built-in broadcast schedule:
// a minute-polled trigger that resolves one snapshot and pushes it to
// every enabled subscription.
func (a *Application) initializeTrigger() error {
	if !a.config.Trigger.Enabled {
		return nil
	}

	resolver, err := weather.NewResolver(weather.ResolverDependencies{
		Provider:  a.ports.WeatherProvider,
		Tolerance: a.config.Weather.ReuseTolerance,
		Logger:    a.ports.Logger,
	})
	if err != nil {
		return err
	}

	notifier := external.NewPushBroadcastNotifier(
		a.ports.SubscriptionRepository, a.ports.PushSender, a.ports.Logger)

	strategy, err := schedule.NewPollingStrategy(schedule.PollingStrategyDependencies{
		Resolver: resolver,
		Notifier: notifier,
		Lock:     schedule.NewMemoryFireLock(clock.NewClock(), 0),
		History:  a.historyLog,
		Clock:    clock.NewClock(),
		Logger:   a.ports.Logger,
	})
	if err != nil {
		return err
	}

	lat, lon, err := a.config.Trigger.ParseLocation()
	if err != nil {
		return err
	}

	cfg := schedule.Config{
		Enabled:        true,
		Time:           a.config.Trigger.Time,
		Days:           a.config.Trigger.Days,
		SeparateAlerts: a.config.Trigger.SeparateAlerts,
		HistoryEnabled: a.config.Trigger.HistoryEnabled,
	}
	if lat != nil && lon != nil {
		cfg.Location = &weather.Coordinate{Lat: *lat, Lon: *lon}
	}

	a.triggerStrategy = strategy
	a.triggerConfig = cfg
	return nil
}

func (a *Application) initializeAdapters() error {
	slog.Info("Initializing adapters...")

	databaseHealthChecker := infrastructure.NewDatabaseHealthChecker(a.ports.Database.(*gorm.DB))
	weatherHealthChecker := infrastructure.NewWeatherBackendHealthChecker(a.ports.WeatherProvider)
	pushHealthChecker := infrastructure.NewPushHealthChecker(a.ports.ConfigProvider.GetPushConfig())

	systemHealthChecker := infrastructure.NewSystemHealthChecker(infrastructure.SystemHealthCheckerConfig{
		DatabaseChecker: databaseHealthChecker,
		WeatherChecker:  weatherHealthChecker,
		PushChecker:     pushHealthChecker,
		ConfigProvider:  a.ports.ConfigProvider,
	})

	httpAdapter, err := api.NewHTTPServerAdapter(api.ServerOptions{
		Config: api.ServerConfig{
			Port: a.config.Server.Port,
		},
		SubscriptionUseCase: a.subscriptionUseCase,
		WeatherUseCase:      a.weatherUseCase,
		DeliveryUseCase:     a.deliveryUseCase,
		HistoryLog:          a.historyLog,
		WeatherMetrics:      a.ports.WeatherMetrics,
		HealthChecker:       systemHealthChecker,
	})
	if err != nil {
		return fmt.Errorf("create HTTP adapter: %w", err)
	}

	a.router = httpAdapter.GetRouter()

	a.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", a.config.Server.Port),
		Handler:      httpAdapter.GetRouter(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	slog.Info("Adapters initialized successfully")
	return nil
}

func (a *Application) Start(ctx context.Context) error {
	slog.Info("Starting application...")

	if a.config.Scheduler.EnableInternalTicker {
		if err := a.startScheduler(ctx); err != nil {
			return fmt.Errorf("start scheduler: %w", err)
		}
	} else {
		slog.Info("Internal delivery ticker disabled, expecting external run triggers")
	}

	slog.Info("Starting HTTP server", "port", a.config.Server.Port)
	if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("HTTP server error: %w", err)
	}

	return nil
}

// startScheduler arms the recurring delivery run. Runs are serialized so a
// slow cycle never overlaps the next one.
func (a *Application) startScheduler(ctx context.Context) error {
	slog.Info("Starting delivery scheduler...", "interval", a.config.Scheduler.RunInterval())

	scheduler := gocron.NewScheduler(time.UTC)
	scheduler.SingletonModeAll()

	_, err := scheduler.Every(a.config.Scheduler.RunInterval()).Do(func() {
		report, err := a.deliveryUseCase.Run(ctx)
		if err != nil {
			slog.Error("Scheduled delivery run failed", "error", err)
			return
		}
		slog.Info("Scheduled delivery run completed",
			"sent", report.Sent,
			"failed", report.Failed,
			"gone", report.Gone,
			"groups", report.ProcessedGroups)
	})
	if err != nil {
		return fmt.Errorf("schedule delivery run: %w", err)
	}

	if a.triggerStrategy != nil {
		_, err := scheduler.Every(1).Minute().Do(func() {
			if err := a.triggerStrategy.CheckAndFire(ctx, a.triggerConfig, nil); err != nil {
				slog.Error("Trigger check failed", "error", err)
			}
		})
		if err != nil {
			return fmt.Errorf("schedule trigger check: %w", err)
		}
	}

	scheduler.StartAsync()
	a.scheduler = scheduler
	return nil
}

func (a *Application) Shutdown(ctx context.Context) error {
	slog.Info("Shutting down application...")

	if a.scheduler != nil {
		a.scheduler.Stop()
	}

	if err := a.httpServer.Shutdown(ctx); err != nil {
		slog.Error("Error shutting down HTTP server", "error", err)
		return fmt.Errorf("shutdown HTTP server: %w", err)
	}

	if a.ports != nil && a.ports.Database != nil {
		if gormDB, ok := a.ports.Database.(*gorm.DB); ok {
			if db, err := gormDB.DB(); err == nil {
				if err := db.Close(); err != nil {
					slog.Warn("Error closing database", "error", err)
				}
			}
		}
	}

	slog.Info("Application shutdown complete")
	return nil
}

// Config returns the application configuration
func (a *Application) Config() *config.Config {
	return a.config
}

// GetRouter returns the Gin router for testing
func (a *Application) GetRouter() *gin.Engine {
	return a.router
}
