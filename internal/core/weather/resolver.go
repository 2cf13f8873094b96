package weather

import (
	"context"
	"fmt"

	"weatherpush.app/internal/ports"
	"weatherpush.app/pkg/errors"
)

// Resolver produces a snapshot for a target location at minimum cost:
// reuse the currently displayed snapshot when it is close enough,
// otherwise fetch fresh. The fetch path is pinned to the free backend
// because it runs unattended and must not consume rate-limited quota.
type Resolver struct {
	provider  ports.WeatherProviderManager
	tolerance float64
	logger    ports.Logger
}

type ResolverDependencies struct {
	Provider ports.WeatherProviderManager
	// Tolerance is the per-axis reuse tolerance in degrees; zero means
	// DefaultReuseTolerance.
	Tolerance float64
	Logger    ports.Logger
}

func NewResolver(deps ResolverDependencies) (*Resolver, error) {
	if deps.Provider == nil {
		return nil, errors.NewValidationError("weather provider is required")
	}
	if deps.Logger == nil {
		return nil, errors.NewValidationError("logger is required")
	}

	tolerance := deps.Tolerance
	if tolerance <= 0 {
		tolerance = DefaultReuseTolerance
	}

	return &Resolver{
		provider:  deps.Provider,
		tolerance: tolerance,
		logger:    deps.Logger,
	}, nil
}

// Resolve returns a snapshot for target. When displayed is non-nil and both
// axes are within tolerance it is returned unchanged at zero network cost.
func (r *Resolver) Resolve(ctx context.Context, target Coordinate, displayed *Snapshot) (*Snapshot, error) {
	if err := target.IsValid(); err != nil {
		return nil, errors.NewValidationError("invalid target: " + err.Error())
	}

	if displayed != nil && displayed.CoversTarget(target, r.tolerance) {
		r.logger.Debug("Reusing displayed snapshot",
			ports.F("lat", target.Lat),
			ports.F("lon", target.Lon),
			ports.F("label", displayed.LocationLabel))
		return displayed, nil
	}

	data, err := r.provider.GetSnapshot(ctx, target.Lat, target.Lon, ports.BackendFree)
	if err != nil {
		return nil, fmt.Errorf("fetch snapshot for %.2f,%.2f: %w", target.Lat, target.Lon, err)
	}

	snapshot := FromSnapshotData(data)
	if err := snapshot.IsValid(); err != nil {
		return nil, errors.NewValidationError("invalid snapshot from provider: " + err.Error())
	}

	return snapshot, nil
}

// FromSnapshotData converts port data to the domain snapshot
func FromSnapshotData(data *ports.SnapshotData) *Snapshot {
	alerts := make([]Alert, len(data.Alerts))
	for i, a := range data.Alerts {
		alerts[i] = Alert{Event: a.Event, Severity: a.Severity, Description: a.Description}
	}
	return &Snapshot{
		LocationLabel: data.LocationLabel,
		Lat:           data.Lat,
		Lon:           data.Lon,
		Temperature:   data.Temperature,
		Condition:     data.Condition,
		Alerts:        alerts,
		FetchedAt:     data.FetchedAt,
	}
}

// ToSnapshotData converts the domain snapshot to port data
func ToSnapshotData(s *Snapshot) *ports.SnapshotData {
	alerts := make([]ports.AlertData, len(s.Alerts))
	for i, a := range s.Alerts {
		alerts[i] = ports.AlertData{Event: a.Event, Severity: a.Severity, Description: a.Description}
	}
	return &ports.SnapshotData{
		LocationLabel: s.LocationLabel,
		Lat:           s.Lat,
		Lon:           s.Lon,
		Temperature:   s.Temperature,
		Condition:     s.Condition,
		Alerts:        alerts,
		FetchedAt:     s.FetchedAt,
	}
}
