package database

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"weatherpush.app/internal/ports"
	"weatherpush.app/pkg/errors"
)

// SubscriptionModel represents the database model for push subscriptions
type SubscriptionModel struct {
	ID           string `gorm:"primaryKey;size:64"`
	Endpoint     string `gorm:"not null"`
	P256dh       string `gorm:"column:p256dh;not null"`
	Auth         string `gorm:"not null"`
	LocationName string
	Lat          *float64
	Lon          *float64
	Enabled      bool `gorm:"index"`
	CreatedAt    time.Time
	LastUsedAt   time.Time
}

func (SubscriptionModel) TableName() string {
	return "push_subscriptions"
}

// SubscriptionRepositoryAdapter implements the SubscriptionRepository port using GORM
type SubscriptionRepositoryAdapter struct {
	db *gorm.DB
}

// NewSubscriptionRepositoryAdapter creates a new subscription repository adapter
func NewSubscriptionRepositoryAdapter(db *gorm.DB) ports.SubscriptionRepository {
	return &SubscriptionRepositoryAdapter{db: db}
}

// Save upserts a subscription keyed by its fingerprint
func (r *SubscriptionRepositoryAdapter) Save(ctx context.Context, sub *ports.SubscriptionData) error {
	if sub == nil {
		return errors.NewValidationError("subscription cannot be nil")
	}
	if sub.ID == "" {
		return errors.NewValidationError("subscription ID cannot be empty")
	}

	model := r.dataToModel(sub)
	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(model)
	if result.Error != nil {
		return errors.NewDatabaseError("failed to save subscription", result.Error)
	}

	return nil
}

// FindByID retrieves a subscription by its fingerprint
func (r *SubscriptionRepositoryAdapter) FindByID(ctx context.Context, id string) (*ports.SubscriptionData, error) {
	if id == "" {
		return nil, errors.NewValidationError("subscription ID cannot be empty")
	}

	var model SubscriptionModel
	result := r.db.WithContext(ctx).First(&model, "id = ?", id)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("subscription not found")
		}
		return nil, errors.NewDatabaseError("failed to find subscription by ID", result.Error)
	}

	return r.modelToData(&model), nil
}

// Delete removes a subscription; deleting an absent record is a success
func (r *SubscriptionRepositoryAdapter) Delete(ctx context.Context, id string) error {
	if id == "" {
		return errors.NewValidationError("subscription ID cannot be empty")
	}

	result := r.db.WithContext(ctx).Delete(&SubscriptionModel{}, "id = ?", id)
	if result.Error != nil {
		return errors.NewDatabaseError("failed to delete subscription", result.Error)
	}

	return nil
}

// ListEnabled retrieves all enabled subscriptions
func (r *SubscriptionRepositoryAdapter) ListEnabled(ctx context.Context) ([]*ports.SubscriptionData, error) {
	var models []SubscriptionModel
	result := r.db.WithContext(ctx).Where("enabled = ?", true).Find(&models)
	if result.Error != nil {
		return nil, errors.NewDatabaseError("failed to list enabled subscriptions", result.Error)
	}

	subscriptions := make([]*ports.SubscriptionData, len(models))
	for i, model := range models {
		subscriptions[i] = r.modelToData(&model)
	}

	return subscriptions, nil
}

// Count counts all subscriptions
func (r *SubscriptionRepositoryAdapter) Count(ctx context.Context) (int64, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&SubscriptionModel{}).Count(&count)
	if result.Error != nil {
		return 0, errors.NewDatabaseError("failed to count subscriptions", result.Error)
	}

	return count, nil
}

func (r *SubscriptionRepositoryAdapter) dataToModel(data *ports.SubscriptionData) *SubscriptionModel {
	return &SubscriptionModel{
		ID:           data.ID,
		Endpoint:     data.Endpoint,
		P256dh:       data.P256dh,
		Auth:         data.Auth,
		LocationName: data.LocationName,
		Lat:          data.Lat,
		Lon:          data.Lon,
		Enabled:      data.Enabled,
		CreatedAt:    data.CreatedAt,
		LastUsedAt:   data.LastUsedAt,
	}
}

func (r *SubscriptionRepositoryAdapter) modelToData(model *SubscriptionModel) *ports.SubscriptionData {
	return &ports.SubscriptionData{
		ID:           model.ID,
		Endpoint:     model.Endpoint,
		P256dh:       model.P256dh,
		Auth:         model.Auth,
		LocationName: model.LocationName,
		Lat:          model.Lat,
		Lon:          model.Lon,
		Enabled:      model.Enabled,
		CreatedAt:    model.CreatedAt,
		LastUsedAt:   model.LastUsedAt,
	}
}
