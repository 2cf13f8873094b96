package external

import (
	"context"
	"encoding/json"
	"time"

	"weatherpush.app/internal/ports"
	"weatherpush.app/pkg/errors"
)

// PushBroadcastNotifier raises a notification by fanning it out over web
// push to every enabled subscription. Deferred raising is not supported:
// push has no server-side schedule primitive, so callers fall back to
// minute polling.
type PushBroadcastNotifier struct {
	subscriptionRepo ports.SubscriptionRepository
	pushSender       ports.PushSender
	logger           ports.Logger
}

func NewPushBroadcastNotifier(repo ports.SubscriptionRepository, sender ports.PushSender, logger ports.Logger) *PushBroadcastNotifier {
	return &PushBroadcastNotifier{
		subscriptionRepo: repo,
		pushSender:       sender,
		logger:           logger,
	}
}

type notifierPayload struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	Tag   string `json:"tag"`
}

func (n *PushBroadcastNotifier) Notify(ctx context.Context, tag, title, body string) error {
	subscriptions, err := n.subscriptionRepo.ListEnabled(ctx)
	if err != nil {
		return err
	}

	payload, err := json.Marshal(notifierPayload{Title: title, Body: body, Tag: tag})
	if err != nil {
		return errors.NewDeliveryError("failed to encode notification payload", err)
	}

	var lastErr error
	for i := range subscriptions {
		result, sendErr := n.pushSender.Send(ctx, ports.PushParams{
			Subscription: subscriptions[i],
			Payload:      payload,
		})
		if sendErr != nil {
			lastErr = sendErr
			continue
		}
		if result == ports.DeliveryGone {
			if delErr := n.subscriptionRepo.Delete(ctx, subscriptions[i].ID); delErr != nil {
				n.logger.Warn("failed to prune gone subscription",
					ports.F("id", subscriptions[i].ID),
					ports.F("error", delErr.Error()))
			}
		}
	}
	return lastErr
}

func (n *PushBroadcastNotifier) SupportsDeferred() bool {
	return false
}

func (n *PushBroadcastNotifier) NotifyAt(ctx context.Context, tag, title, body string, at time.Time) error {
	return errors.NewDeliveryError("deferred notifications are not supported by web push", nil)
}
