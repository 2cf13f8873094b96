package external

import (
	"context"
	"net/http"
	"time"

	webpush "github.com/SherClockHolmes/webpush-go"
	"weatherpush.app/internal/ports"
	"weatherpush.app/pkg/errors"
)

const defaultPushTimeout = 30 * time.Second

// WebPushSenderAdapter implements the PushSender port over the Web Push
// protocol with VAPID authentication.
type WebPushSenderAdapter struct {
	config ports.PushConfig
	client *http.Client
	logger ports.Logger
}

// NewWebPushSenderAdapter creates a web push sender adapter
func NewWebPushSenderAdapter(config ports.PushConfig, logger ports.Logger) (*WebPushSenderAdapter, error) {
	if logger == nil {
		return nil, errors.NewValidationError("logger is required")
	}
	return &WebPushSenderAdapter{
		config: config,
		client: &http.Client{Timeout: defaultPushTimeout},
		logger: logger,
	}, nil
}

// Send delivers one payload to one subscription and normalizes the
// transport outcome: 404/410 mean the endpoint is permanently gone,
// anything else non-2xx is retryable on a later run.
func (a *WebPushSenderAdapter) Send(ctx context.Context, params ports.PushParams) (ports.DeliveryResult, error) {
	if !a.config.IsConfigured() {
		return ports.DeliveryUnknown, errors.NewConfigurationError("VAPID keys are not configured", nil)
	}
	if params.Subscription == nil {
		return ports.DeliveryUnknown, errors.NewValidationError("subscription is required")
	}

	sub := &webpush.Subscription{
		Endpoint: params.Subscription.Endpoint,
		Keys: webpush.Keys{
			P256dh: params.Subscription.P256dh,
			Auth:   params.Subscription.Auth,
		},
	}

	resp, err := webpush.SendNotificationWithContext(ctx, params.Payload, sub, &webpush.Options{
		HTTPClient:      a.client,
		Subscriber:      a.config.Subscriber,
		VAPIDPublicKey:  a.config.VAPIDPublicKey,
		VAPIDPrivateKey: a.config.VAPIDPrivateKey,
		TTL:             a.config.TTLSeconds,
	})
	if err != nil {
		return ports.DeliveryTransientFailure, errors.NewDeliveryError("push send failed", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			a.logger.Warn("Failed to close push response body", ports.F("error", closeErr))
		}
	}()

	switch {
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		return ports.DeliveryGone, nil
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return ports.DeliveryDelivered, nil
	default:
		a.logger.Debug("Push service rejected send",
			ports.F("id", params.Subscription.ID),
			ports.F("status", resp.StatusCode))
		return ports.DeliveryTransientFailure, nil
	}
}
