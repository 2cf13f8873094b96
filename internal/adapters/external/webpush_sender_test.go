package external

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"

	webpush "github.com/SherClockHolmes/webpush-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weatherpush.app/internal/mocks"
	"weatherpush.app/internal/ports"
	"weatherpush.app/pkg/errors"
)

func testPushConfig(t *testing.T) ports.PushConfig {
	t.Helper()
	private, public, err := webpush.GenerateVAPIDKeys()
	require.NoError(t, err)
	return ports.PushConfig{
		VAPIDPublicKey:  public,
		VAPIDPrivateKey: private,
		Subscriber:      "admin@weatherpush.app",
		TTLSeconds:      3600,
	}
}

// testSubscriptionKeys builds key material the push encrypter accepts.
func testSubscriptionKeys(t *testing.T) (p256dh, auth string) {
	t.Helper()

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	p256dh = base64.RawURLEncoding.EncodeToString(
		elliptic.Marshal(elliptic.P256(), key.PublicKey.X, key.PublicKey.Y))

	secret := make([]byte, 16)
	_, err = rand.Read(secret)
	require.NoError(t, err)
	auth = base64.RawURLEncoding.EncodeToString(secret)
	return p256dh, auth
}

func pushParamsFor(t *testing.T, endpoint string) ports.PushParams {
	t.Helper()
	p256dh, auth := testSubscriptionKeys(t)
	return ports.PushParams{
		Subscription: &ports.SubscriptionData{
			ID:       "fp-test",
			Endpoint: endpoint,
			P256dh:   p256dh,
			Auth:     auth,
			Enabled:  true,
		},
		Payload: []byte(`{"title":"Weather","body":"22.5°C, Clear"}`),
	}
}

func TestWebPushSender_DeliveredOnAccepted(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.NotEmpty(t, r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	sender, err := NewWebPushSenderAdapter(testPushConfig(t), mocks.NoopLogger{})
	require.NoError(t, err)

	result, err := sender.Send(context.Background(), pushParamsFor(t, server.URL))
	require.NoError(t, err)
	assert.Equal(t, ports.DeliveryDelivered, result)
}

func TestWebPushSender_GoneOnPermanentRejection(t *testing.T) {
	for _, status := range []int{http.StatusNotFound, http.StatusGone} {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))

		sender, err := NewWebPushSenderAdapter(testPushConfig(t), mocks.NoopLogger{})
		require.NoError(t, err)

		result, err := sender.Send(context.Background(), pushParamsFor(t, server.URL))
		require.NoError(t, err)
		assert.Equal(t, ports.DeliveryGone, result, "status %d", status)

		server.Close()
	}
}

func TestWebPushSender_TransientFailureOnServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	sender, err := NewWebPushSenderAdapter(testPushConfig(t), mocks.NoopLogger{})
	require.NoError(t, err)

	result, err := sender.Send(context.Background(), pushParamsFor(t, server.URL))
	require.NoError(t, err)
	assert.Equal(t, ports.DeliveryTransientFailure, result)
}

func TestWebPushSender_TransientFailureOnUnreachableEndpoint(t *testing.T) {
	sender, err := NewWebPushSenderAdapter(testPushConfig(t), mocks.NoopLogger{})
	require.NoError(t, err)

	result, err := sender.Send(context.Background(), pushParamsFor(t, "http://127.0.0.1:1/push"))
	assert.True(t, errors.IsDeliveryError(err))
	assert.Equal(t, ports.DeliveryTransientFailure, result)
}

func TestWebPushSender_RefusesWithoutCredentials(t *testing.T) {
	sender, err := NewWebPushSenderAdapter(ports.PushConfig{}, mocks.NoopLogger{})
	require.NoError(t, err)

	result, err := sender.Send(context.Background(), pushParamsFor(t, "https://push.example.com/e"))
	assert.True(t, errors.IsConfigurationError(err))
	assert.Equal(t, ports.DeliveryUnknown, result)
}

func TestWebPushSender_RejectsNilSubscription(t *testing.T) {
	sender, err := NewWebPushSenderAdapter(testPushConfig(t), mocks.NoopLogger{})
	require.NoError(t, err)

	result, err := sender.Send(context.Background(), ports.PushParams{Payload: []byte("{}")})
	assert.True(t, errors.IsValidationError(err))
	assert.Equal(t, ports.DeliveryUnknown, result)
}
