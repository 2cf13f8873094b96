package ports

import (
	"context"
	"time"
)

// SubscriptionData represents push subscription data for persistence.
// ID is the endpoint fingerprint; the endpoint and its keys are opaque
// to this subsystem and only handed to the push transport.
type SubscriptionData struct {
	ID           string
	Endpoint     string
	P256dh       string
	Auth         string
	LocationName string
	Lat          *float64
	Lon          *float64
	Enabled      bool
	CreatedAt    time.Time
	LastUsedAt   time.Time
}

// SubscriptionRepository defines the contract for subscription persistence
type SubscriptionRepository interface {
	Save(ctx context.Context, sub *SubscriptionData) error
	FindByID(ctx context.Context, id string) (*SubscriptionData, error)
	Delete(ctx context.Context, id string) error
	ListEnabled(ctx context.Context) ([]*SubscriptionData, error)
	Count(ctx context.Context) (int64, error)
}
