package weather

import (
	"context"
	"fmt"

	"weatherpush.app/internal/ports"
	"weatherpush.app/pkg/errors"
)

// UseCase serves attended, user-visible weather queries. Unlike the
// background resolver it may use the paid backend and goes through the
// snapshot cache.
type UseCase struct {
	weatherProvider ports.WeatherProviderManager
	cache           ports.WeatherCache
	config          ports.ConfigProvider
	logger          ports.Logger
	metrics         ports.WeatherMetrics
}

type UseCaseDependencies struct {
	WeatherProvider ports.WeatherProviderManager
	Cache           ports.WeatherCache
	Config          ports.ConfigProvider
	Logger          ports.Logger
	Metrics         ports.WeatherMetrics
}

type SnapshotRequest struct {
	Target  Coordinate
	Backend ports.Backend
}

// IsValid validates the snapshot request
func (r *SnapshotRequest) IsValid() error {
	if !r.Backend.IsValid() {
		return fmt.Errorf("backend selector is required")
	}
	return r.Target.IsValid()
}

func NewUseCase(deps UseCaseDependencies) (*UseCase, error) {
	if deps.WeatherProvider == nil {
		return nil, errors.NewValidationError("weather provider is required")
	}
	if deps.Cache == nil {
		return nil, errors.NewValidationError("cache is required")
	}
	if deps.Config == nil {
		return nil, errors.NewValidationError("config is required")
	}
	if deps.Logger == nil {
		return nil, errors.NewValidationError("logger is required")
	}
	if deps.Metrics == nil {
		return nil, errors.NewValidationError("metrics is required")
	}

	return &UseCase{
		weatherProvider: deps.WeatherProvider,
		cache:           deps.Cache,
		config:          deps.Config,
		logger:          deps.Logger,
		metrics:         deps.Metrics,
	}, nil
}

func (uc *UseCase) GetSnapshot(ctx context.Context, request SnapshotRequest) (*Snapshot, error) {
	if err := request.IsValid(); err != nil {
		return nil, errors.NewValidationError("invalid snapshot request: " + err.Error())
	}

	uc.logger.Debug("Getting weather snapshot",
		ports.F("lat", request.Target.Lat),
		ports.F("lon", request.Target.Lon),
		ports.F("backend", string(request.Backend)))

	snapshot, err := uc.getSnapshotWithCache(ctx, request)
	if err != nil {
		uc.logger.Error("Failed to get weather snapshot",
			ports.F("lat", request.Target.Lat),
			ports.F("lon", request.Target.Lon),
			ports.F("error", err))
		return nil, fmt.Errorf("get snapshot for %.2f,%.2f: %w", request.Target.Lat, request.Target.Lon, err)
	}

	return snapshot, nil
}

func (uc *UseCase) getSnapshotWithCache(ctx context.Context, request SnapshotRequest) (*Snapshot, error) {
	if !uc.config.GetWeatherConfig().EnableCache {
		return uc.getSnapshotFromProvider(ctx, request)
	}

	cacheKey := fmt.Sprintf("weather:%s:%s",
		request.Backend, GroupKey(request.Target.Lat, request.Target.Lon, DefaultGroupPrecision))
	cached, err := uc.cache.Get(ctx, cacheKey)
	if err == nil && cached != nil {
		uc.logger.Debug("Snapshot found in cache", ports.F("key", cacheKey))
		return FromSnapshotData(cached), nil
	}

	snapshot, err := uc.getSnapshotFromProvider(ctx, request)
	if err != nil {
		return nil, err
	}

	cacheTTL := uc.config.GetWeatherConfig().CacheTTL
	if cacheErr := uc.cache.Set(ctx, cacheKey, ToSnapshotData(snapshot), cacheTTL); cacheErr != nil {
		uc.logger.Warn("Failed to cache snapshot",
			ports.F("key", cacheKey),
			ports.F("error", cacheErr))
	}

	return snapshot, nil
}

func (uc *UseCase) getSnapshotFromProvider(ctx context.Context, request SnapshotRequest) (*Snapshot, error) {
	data, err := uc.weatherProvider.GetSnapshot(ctx, request.Target.Lat, request.Target.Lon, request.Backend)
	if err != nil {
		if errors.IsNotFoundError(err) {
			return nil, err
		}
		return nil, errors.NewExternalAPIError("weather provider failed", err)
	}

	snapshot := FromSnapshotData(data)
	if err := snapshot.IsValid(); err != nil {
		return nil, errors.NewValidationError("invalid snapshot from provider: " + err.Error())
	}

	return snapshot, nil
}
