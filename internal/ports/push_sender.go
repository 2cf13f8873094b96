package ports

import (
	"context"
	"time"
)

// DeliveryResult classifies the outcome of a single push send
type DeliveryResult int

const (
	DeliveryUnknown DeliveryResult = iota
	// DeliveryDelivered means the push service accepted the message
	DeliveryDelivered
	// DeliveryGone means the endpoint is permanently invalid (HTTP 404/410)
	// and the subscription must be pruned
	DeliveryGone
	// DeliveryTransientFailure means a retryable failure (network, 5xx,
	// quota); the send is naturally retried on a later scheduled run
	DeliveryTransientFailure
)

// String returns the string representation of the delivery result
func (r DeliveryResult) String() string {
	switch r {
	case DeliveryDelivered:
		return "delivered"
	case DeliveryGone:
		return "gone"
	case DeliveryTransientFailure:
		return "transient_failure"
	default:
		return "unknown"
	}
}

// PushParams represents one message addressed to one subscription
type PushParams struct {
	Subscription *SubscriptionData
	Payload      []byte
}

// PushSender defines the contract for the push delivery channel
type PushSender interface {
	Send(ctx context.Context, params PushParams) (DeliveryResult, error)
}

// LocalNotifier raises a notification on the local device. Implementations
// differ per platform; the trigger scheduler only needs fire semantics.
type LocalNotifier interface {
	// Notify raises a notification under tag. Re-notifying with the same
	// tag replaces any pending notification instead of duplicating it.
	Notify(ctx context.Context, tag, title, body string) error
	// SupportsDeferred reports whether the platform can arm a
	// future-timestamped notification that survives process suspension.
	SupportsDeferred() bool
	// NotifyAt arms a deferred notification for a future instant.
	NotifyAt(ctx context.Context, tag, title, body string, at time.Time) error
}
