package subscription

import (
	"context"
	"fmt"
	"time"

	"weatherpush.app/internal/ports"
	"weatherpush.app/pkg/errors"
	"weatherpush.app/pkg/validation"
)

type UseCase struct {
	subscriptionRepo ports.SubscriptionRepository
	logger           ports.Logger
}

type UseCaseDependencies struct {
	SubscriptionRepo ports.SubscriptionRepository
	Logger           ports.Logger
}

type RegisterParams struct {
	Endpoint string
	P256dh   string
	Auth     string
	Location *Location
	Enabled  bool
}

type UnregisterParams struct {
	Endpoint string
}

func NewUseCase(deps UseCaseDependencies) (*UseCase, error) {
	if deps.SubscriptionRepo == nil {
		return nil, errors.NewValidationError("subscription repository is required")
	}
	if deps.Logger == nil {
		return nil, errors.NewValidationError("logger is required")
	}

	return &UseCase{
		subscriptionRepo: deps.SubscriptionRepo,
		logger:           deps.Logger,
	}, nil
}

func (uc *UseCase) validateRegisterParams(params RegisterParams) error {
	if !validation.IsNotEmpty(params.Endpoint) {
		return errors.NewValidationError("endpoint is required")
	}
	if !validation.IsNotEmpty(params.P256dh) {
		return errors.NewValidationError("p256dh key is required")
	}
	if !validation.IsNotEmpty(params.Auth) {
		return errors.NewValidationError("auth secret is required")
	}
	if params.Location != nil && !validation.IsValidCoordinate(params.Location.Lat, params.Location.Lon) {
		return errors.NewValidationError("invalid location coordinates")
	}
	return nil
}

// Register upserts a subscription record keyed by the endpoint fingerprint.
// A replay of an existing registration touches LastUsedAt and refreshes the
// target location; errors are returned untranslated so the caller can
// surface them to the user.
func (uc *UseCase) Register(ctx context.Context, params RegisterParams) (*Record, error) {
	if err := uc.validateRegisterParams(params); err != nil {
		return nil, err
	}

	id := Fingerprint(params.Endpoint)
	uc.logger.Debug("Processing push registration", ports.F("id", id))

	now := time.Now()
	record := &Record{
		ID:         id,
		Endpoint:   params.Endpoint,
		P256dh:     params.P256dh,
		Auth:       params.Auth,
		Location:   params.Location,
		Enabled:    params.Enabled,
		CreatedAt:  now,
		LastUsedAt: now,
	}

	existing, err := uc.subscriptionRepo.FindByID(ctx, id)
	if err != nil && !errors.IsNotFoundError(err) {
		return nil, fmt.Errorf("check existing subscription: %w", err)
	}
	if existing != nil {
		record.CreatedAt = existing.CreatedAt
		record.Touch(now)
	}

	if err := uc.subscriptionRepo.Save(ctx, uc.toData(record)); err != nil {
		return nil, fmt.Errorf("save subscription: %w", err)
	}

	uc.logger.Info("Push subscription registered",
		ports.F("id", id),
		ports.F("enabled", record.Enabled),
		ports.F("replay", existing != nil))
	return record, nil
}

// Unregister deletes the record matching the endpoint fingerprint. Deleting
// a record that does not exist is a success.
func (uc *UseCase) Unregister(ctx context.Context, params UnregisterParams) error {
	if !validation.IsNotEmpty(params.Endpoint) {
		return errors.NewValidationError("endpoint is required")
	}

	id := Fingerprint(params.Endpoint)
	if err := uc.subscriptionRepo.Delete(ctx, id); err != nil {
		if errors.IsNotFoundError(err) {
			uc.logger.Debug("Unregister for unknown subscription", ports.F("id", id))
			return nil
		}
		return fmt.Errorf("delete subscription: %w", err)
	}

	uc.logger.Info("Push subscription removed", ports.F("id", id))
	return nil
}

// ListEnabled returns all enabled subscription records
func (uc *UseCase) ListEnabled(ctx context.Context) ([]*Record, error) {
	data, err := uc.subscriptionRepo.ListEnabled(ctx)
	if err != nil {
		return nil, fmt.Errorf("list enabled subscriptions: %w", err)
	}

	records := make([]*Record, len(data))
	for i, d := range data {
		records[i] = uc.fromData(d)
	}
	return records, nil
}

func (uc *UseCase) toData(r *Record) *ports.SubscriptionData {
	data := &ports.SubscriptionData{
		ID:         r.ID,
		Endpoint:   r.Endpoint,
		P256dh:     r.P256dh,
		Auth:       r.Auth,
		Enabled:    r.Enabled,
		CreatedAt:  r.CreatedAt,
		LastUsedAt: r.LastUsedAt,
	}
	if r.Location != nil {
		lat, lon := r.Location.Lat, r.Location.Lon
		data.LocationName = r.Location.Name
		data.Lat = &lat
		data.Lon = &lon
	}
	return data
}

func (uc *UseCase) fromData(d *ports.SubscriptionData) *Record {
	record := &Record{
		ID:         d.ID,
		Endpoint:   d.Endpoint,
		P256dh:     d.P256dh,
		Auth:       d.Auth,
		Enabled:    d.Enabled,
		CreatedAt:  d.CreatedAt,
		LastUsedAt: d.LastUsedAt,
	}
	if d.Lat != nil && d.Lon != nil {
		record.Location = &Location{
			Name: d.LocationName,
			Lat:  *d.Lat,
			Lon:  *d.Lon,
		}
	}
	return record
}
