package schedule

import (
	"context"
	"fmt"
	"time"

	"code.cloudfoundry.org/clock"
	"github.com/google/uuid"
	"weatherpush.app/internal/core/history"
	"weatherpush.app/internal/core/weather"
	"weatherpush.app/internal/ports"
	"weatherpush.app/pkg/errors"
)

// Trigger tags. A fixed tag makes re-arming replace the pending
// notification instead of adding a second one.
const (
	TriggerTag      = "weather-daily"
	AlertTriggerTag = "weather-alert"
)

// LocationProvider resolves the device's most recent known location when the
// schedule carries no fixed one. A nil location with nil error means
// "not available right now".
type LocationProvider interface {
	CurrentLocation(ctx context.Context) (*weather.Coordinate, error)
}

// TriggerStrategy arms the next fire of a schedule. The scheduling
// algorithm is shared; only the arming mechanism differs per platform.
type TriggerStrategy interface {
	Arm(ctx context.Context, cfg Config) error
}

// SelectStrategy probes the notifier's capabilities at startup: deferred
// native triggers when available, the polling fallback otherwise.
func SelectStrategy(deferred *DeferredTriggerStrategy, polling *PollingStrategy) TriggerStrategy {
	if deferred != nil && deferred.notifier.SupportsDeferred() {
		return deferred
	}
	return polling
}

// DeferredTriggerStrategy arms a single future-timestamped local
// notification. The platform fires it even if the process is suspended
// in between.
type DeferredTriggerStrategy struct {
	notifier ports.LocalNotifier
	clock    clock.Clock
	logger   ports.Logger
}

type DeferredTriggerDependencies struct {
	Notifier ports.LocalNotifier
	Clock    clock.Clock
	Logger   ports.Logger
}

func NewDeferredTriggerStrategy(deps DeferredTriggerDependencies) (*DeferredTriggerStrategy, error) {
	if deps.Notifier == nil {
		return nil, errors.NewValidationError("notifier is required")
	}
	if deps.Clock == nil {
		return nil, errors.NewValidationError("clock is required")
	}
	if deps.Logger == nil {
		return nil, errors.NewValidationError("logger is required")
	}
	return &DeferredTriggerStrategy{
		notifier: deps.Notifier,
		clock:    deps.Clock,
		logger:   deps.Logger,
	}, nil
}

// Arm computes the next fire instant and arms it under the fixed tag.
// Calling Arm again before the trigger fires replaces it.
func (s *DeferredTriggerStrategy) Arm(ctx context.Context, cfg Config) error {
	if !cfg.Enabled {
		return nil
	}

	next, err := NextFireTime(s.clock.Now(), cfg)
	if err != nil {
		return fmt.Errorf("compute next fire time: %w", err)
	}

	title, body := pendingContent()
	if err := s.notifier.NotifyAt(ctx, TriggerTag, title, body, next); err != nil {
		return fmt.Errorf("arm deferred trigger: %w", err)
	}

	s.logger.Info("Deferred trigger armed",
		ports.F("at", next),
		ports.F("tag", TriggerTag))
	return nil
}

// PollingStrategy is the fallback for platforms without deferred triggers.
// The host invokes CheckAndFire on a periodic tick; fires only on an exact
// wall-clock minute match, guarded by the fire lock.
type PollingStrategy struct {
	resolver *weather.Resolver
	notifier ports.LocalNotifier
	location LocationProvider
	lock     FireLock
	history  *history.Log
	clock    clock.Clock
	logger   ports.Logger
}

type PollingStrategyDependencies struct {
	Resolver *weather.Resolver
	Notifier ports.LocalNotifier
	Location LocationProvider
	Lock     FireLock
	History  *history.Log
	Clock    clock.Clock
	Logger   ports.Logger
}

func NewPollingStrategy(deps PollingStrategyDependencies) (*PollingStrategy, error) {
	if deps.Resolver == nil {
		return nil, errors.NewValidationError("resolver is required")
	}
	if deps.Notifier == nil {
		return nil, errors.NewValidationError("notifier is required")
	}
	if deps.Lock == nil {
		return nil, errors.NewValidationError("fire lock is required")
	}
	if deps.History == nil {
		return nil, errors.NewValidationError("history log is required")
	}
	if deps.Clock == nil {
		return nil, errors.NewValidationError("clock is required")
	}
	if deps.Logger == nil {
		return nil, errors.NewValidationError("logger is required")
	}
	return &PollingStrategy{
		resolver: deps.Resolver,
		notifier: deps.Notifier,
		location: deps.Location,
		lock:     deps.Lock,
		history:  deps.History,
		clock:    deps.Clock,
		logger:   deps.Logger,
	}, nil
}

// Arm is a no-op for polling: the host's periodic tick drives CheckAndFire.
func (s *PollingStrategy) Arm(ctx context.Context, cfg Config) error {
	return nil
}

// CheckAndFire fires at most one notification per (day, time, location)
// tuple. Unmet preconditions (disabled schedule, off-minute tick, no
// resolvable location) are expected steady states, not errors.
func (s *PollingStrategy) CheckAndFire(ctx context.Context, cfg Config, displayed *weather.Snapshot) error {
	if !cfg.Enabled {
		return nil
	}
	if err := cfg.IsValid(); err != nil {
		return errors.NewValidationError("invalid schedule config: " + err.Error())
	}

	now := s.clock.Now()
	if !MatchesMinute(now, cfg) {
		return nil
	}

	target := s.resolveTarget(ctx, cfg)
	if target == nil {
		s.logger.Debug("No resolvable location, deferring fire")
		return nil
	}

	// The flag must be set before any asynchronous work so an overlapping
	// tick inside the same minute cannot double-fire.
	key := FireKey(now, cfg.Time, cfg.LocationKey())
	if !s.lock.TryAcquire(key) {
		s.logger.Debug("Fire lock already held", ports.F("key", key))
		return nil
	}

	snapshot, err := s.resolver.Resolve(ctx, *target, displayed)
	if err != nil {
		return fmt.Errorf("resolve snapshot: %w", err)
	}

	return s.fire(ctx, cfg, snapshot, now)
}

func (s *PollingStrategy) resolveTarget(ctx context.Context, cfg Config) *weather.Coordinate {
	if cfg.Location != nil {
		return cfg.Location
	}
	if s.location == nil {
		return nil
	}
	current, err := s.location.CurrentLocation(ctx)
	if err != nil {
		s.logger.Debug("Device location unavailable", ports.F("error", err))
		return nil
	}
	return current
}

func (s *PollingStrategy) fire(ctx context.Context, cfg Config, snapshot *weather.Snapshot, now time.Time) error {
	title, body := summaryContent(snapshot)
	if err := s.notifier.Notify(ctx, TriggerTag, title, body); err != nil {
		return fmt.Errorf("raise notification: %w", err)
	}
	s.record(cfg, history.RecordTypeWeatherDaily, title, body, now)

	if cfg.SeparateAlerts && snapshot.HasAlerts() {
		alertTitle, alertBody := alertContent(snapshot)
		if err := s.notifier.Notify(ctx, AlertTriggerTag, alertTitle, alertBody); err != nil {
			s.logger.Error("Failed to raise alert notification", ports.F("error", err))
		} else {
			s.record(cfg, history.RecordTypeAlert, alertTitle, alertBody, now)
		}
	}

	s.logger.Info("Scheduled notification fired",
		ports.F("label", snapshot.LocationLabel),
		ports.F("alerts", len(snapshot.Alerts)))
	return nil
}

func (s *PollingStrategy) record(cfg Config, recordType history.RecordType, title, body string, now time.Time) {
	if !cfg.HistoryEnabled {
		return
	}
	s.history.Append(history.Record{
		ID:        uuid.New().String(),
		Title:     title,
		Body:      body,
		Timestamp: now,
		Read:      false,
		Type:      recordType,
	})
}
