package weather

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Pragmatic cost-heuristic constants. Roughly 11 km per axis: a
// neighborhood-level match is close enough because the summary text is
// insensitive to sub-city precision. Overridable via configuration.
const (
	DefaultReuseTolerance = 0.1
	DefaultGroupPrecision = 0.1
)

// Alert represents a severe weather alert carried by a snapshot
type Alert struct {
	Event       string
	Severity    string
	Description string
}

// Snapshot is the minimal weather projection this subsystem consumes.
// It is fetched or reused, never mutated in place.
type Snapshot struct {
	LocationLabel string
	Lat           float64
	Lon           float64
	Temperature   float64
	Condition     string
	Alerts        []Alert
	FetchedAt     time.Time
}

// Coordinate is a notification target location
type Coordinate struct {
	Lat float64
	Lon float64
}

// IsValid validates coordinate bounds
func (c Coordinate) IsValid() error {
	if c.Lat < -90 || c.Lat > 90 {
		return fmt.Errorf("latitude out of range: %f", c.Lat)
	}
	if c.Lon < -180 || c.Lon > 180 {
		return fmt.Errorf("longitude out of range: %f", c.Lon)
	}
	return nil
}

// IsValid validates snapshot data
func (s *Snapshot) IsValid() error {
	if strings.TrimSpace(s.Condition) == "" {
		return fmt.Errorf("condition cannot be empty")
	}
	if s.Temperature < -273.15 {
		return fmt.Errorf("temperature cannot be below absolute zero")
	}
	return (Coordinate{Lat: s.Lat, Lon: s.Lon}).IsValid()
}

// HasAlerts reports whether the snapshot carries severe alerts
func (s *Snapshot) HasAlerts() bool {
	return len(s.Alerts) > 0
}

// String returns a string representation of the snapshot
func (s *Snapshot) String() string {
	return fmt.Sprintf("%s: %.1f°C, %s", s.LocationLabel, s.Temperature, s.Condition)
}

// CoversTarget reports whether this snapshot is usable for target: both
// axes must be within tolerance
func (s *Snapshot) CoversTarget(target Coordinate, tolerance float64) bool {
	return math.Abs(target.Lat-s.Lat) < tolerance && math.Abs(target.Lon-s.Lon) < tolerance
}

// GroupKey buckets a coordinate so subscriptions sharing a neighborhood
// share one weather fetch. Precision is the bucket size in degrees.
// Integer bucket indices keep the key exact regardless of float rounding.
func GroupKey(lat, lon, precision float64) string {
	return fmt.Sprintf("%d:%d", bucket(lat, precision), bucket(lon, precision))
}

func bucket(v, precision float64) int {
	return int(math.Round(v / precision))
}
