package delivery

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"weatherpush.app/internal/mocks"
	"weatherpush.app/internal/ports"
	"weatherpush.app/pkg/errors"
)

type deliveryFixture struct {
	uc       *UseCase
	repo     *mocks.SubscriptionRepository
	provider *mocks.WeatherProviderManager
	sender   *mocks.PushSender
	metrics  *mocks.CountingMetrics
}

func newDeliveryFixture(t *testing.T, push ports.PushConfig) *deliveryFixture {
	repo := new(mocks.SubscriptionRepository)
	provider := new(mocks.WeatherProviderManager)
	sender := new(mocks.PushSender)
	metrics := mocks.NewCountingMetrics()

	uc, err := NewUseCase(UseCaseDependencies{
		SubscriptionRepo: repo,
		WeatherProvider:  provider,
		PushSender:       sender,
		Config: &mocks.StaticConfigProvider{
			Push: push,
			Scheduler: ports.SchedulerConfig{
				FanOutWorkers:  4,
				GroupPrecision: 0.1,
			},
		},
		Logger:  mocks.NoopLogger{},
		Metrics: metrics,
	})
	require.NoError(t, err)

	return &deliveryFixture{uc: uc, repo: repo, provider: provider, sender: sender, metrics: metrics}
}

func configuredPush() ports.PushConfig {
	return ports.PushConfig{
		VAPIDPublicKey:  "test-public",
		VAPIDPrivateKey: "test-private",
		Subscriber:      "ops@example.com",
	}
}

func sub(id string, lat, lon float64) *ports.SubscriptionData {
	return &ports.SubscriptionData{
		ID:       id,
		Endpoint: "https://push.example.com/" + id,
		P256dh:   "key-" + id,
		Auth:     "auth-" + id,
		Lat:      &lat,
		Lon:      &lon,
		Enabled:  true,
	}
}

func snapshot(lat, lon float64) *ports.SnapshotData {
	return &ports.SnapshotData{
		LocationLabel: "Porto Alegre",
		Lat:           lat,
		Lon:           lon,
		Temperature:   22.5,
		Condition:     "Clear",
		FetchedAt:     time.Now(),
	}
}

func TestRun_MissingCredentialsIsRefused(t *testing.T) {
	f := newDeliveryFixture(t, ports.PushConfig{})

	_, err := f.uc.Run(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsConfigurationError(err))
	f.repo.AssertNotCalled(t, "ListEnabled")
}

func TestRun_NoSubscriptionsYieldsEmptyReport(t *testing.T) {
	f := newDeliveryFixture(t, configuredPush())
	f.repo.On("ListEnabled", mock.Anything).Return([]*ports.SubscriptionData{}, nil).Once()

	report, err := f.uc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Report{}, report)
	f.provider.AssertNotCalled(t, "GetSnapshot")
}

func TestRun_NeighborsShareOneFetch(t *testing.T) {
	f := newDeliveryFixture(t, configuredPush())

	f.repo.On("ListEnabled", mock.Anything).Return([]*ports.SubscriptionData{
		sub("a", -30.03, -51.21),
		sub("b", -30.02, -51.24), // same bucket as a
	}, nil).Once()

	f.provider.On("GetSnapshot", mock.Anything, mock.Anything, mock.Anything, ports.BackendFree).
		Return(snapshot(-30.03, -51.21), nil).Once()
	f.sender.On("Send", mock.Anything, mock.Anything).
		Return(ports.DeliveryDelivered, nil)

	report, err := f.uc.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, report.Sent)
	assert.Equal(t, 1, report.ProcessedGroups)
	f.provider.AssertNumberOfCalls(t, "GetSnapshot", 1)
}

func TestRun_GonePrunesSubscription(t *testing.T) {
	f := newDeliveryFixture(t, configuredPush())

	f.repo.On("ListEnabled", mock.Anything).Return([]*ports.SubscriptionData{
		sub("alive", -30.03, -51.21),
		sub("dead", -30.02, -51.22),
	}, nil).Once()
	f.provider.On("GetSnapshot", mock.Anything, mock.Anything, mock.Anything, ports.BackendFree).
		Return(snapshot(-30.03, -51.21), nil).Once()

	f.sender.On("Send", mock.Anything, mock.MatchedBy(func(p ports.PushParams) bool {
		return p.Subscription.ID == "alive"
	})).Return(ports.DeliveryDelivered, nil)
	f.sender.On("Send", mock.Anything, mock.MatchedBy(func(p ports.PushParams) bool {
		return p.Subscription.ID == "dead"
	})).Return(ports.DeliveryGone, nil)

	f.repo.On("Delete", mock.Anything, "dead").Return(nil).Once()

	report, err := f.uc.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, report.Sent)
	assert.Equal(t, 1, report.Gone)
	assert.Equal(t, 0, report.Failed)
	f.repo.AssertExpectations(t)
	assert.Equal(t, 1, f.metrics.Deliveries["gone"])
}

func TestRun_TransientFailureCountsFailed(t *testing.T) {
	f := newDeliveryFixture(t, configuredPush())

	f.repo.On("ListEnabled", mock.Anything).Return([]*ports.SubscriptionData{
		sub("flaky", -30.03, -51.21),
	}, nil).Once()
	f.provider.On("GetSnapshot", mock.Anything, mock.Anything, mock.Anything, ports.BackendFree).
		Return(snapshot(-30.03, -51.21), nil).Once()
	f.sender.On("Send", mock.Anything, mock.Anything).
		Return(ports.DeliveryTransientFailure, nil)

	report, err := f.uc.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, report.Sent)
	assert.Equal(t, 1, report.Failed)
	// Transient failures never prune.
	f.repo.AssertNotCalled(t, "Delete")
}

func TestRun_GroupFetchFailureIsolated(t *testing.T) {
	f := newDeliveryFixture(t, configuredPush())

	f.repo.On("ListEnabled", mock.Anything).Return([]*ports.SubscriptionData{
		sub("poa", -30.03, -51.21),
		sub("sp", -23.55, -46.63),
	}, nil).Once()

	// One group's fetch fails, the other delivers.
	f.provider.On("GetSnapshot", mock.Anything, -30.03, -51.21, ports.BackendFree).
		Return(nil, errors.NewExternalAPIError("backend down", nil)).Once()
	f.provider.On("GetSnapshot", mock.Anything, -23.55, -46.63, ports.BackendFree).
		Return(snapshot(-23.55, -46.63), nil).Once()
	f.sender.On("Send", mock.Anything, mock.MatchedBy(func(p ports.PushParams) bool {
		return p.Subscription.ID == "sp"
	})).Return(ports.DeliveryDelivered, nil)

	report, err := f.uc.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, report.Sent)
	assert.Equal(t, 1, report.ProcessedGroups)
	f.sender.AssertNumberOfCalls(t, "Send", 1)
}

func TestRun_SkipsRecordsWithoutLocation(t *testing.T) {
	f := newDeliveryFixture(t, configuredPush())

	noLocation := &ports.SubscriptionData{
		ID:       "nowhere",
		Endpoint: "https://push.example.com/nowhere",
		Enabled:  true,
	}
	f.repo.On("ListEnabled", mock.Anything).
		Return([]*ports.SubscriptionData{noLocation}, nil).Once()

	report, err := f.uc.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, Report{}, report)
	f.provider.AssertNotCalled(t, "GetSnapshot")
	f.sender.AssertNotCalled(t, "Send")
}

func TestRun_AlertPayloadsFanOutPerSubscriber(t *testing.T) {
	f := newDeliveryFixture(t, configuredPush())

	f.repo.On("ListEnabled", mock.Anything).Return([]*ports.SubscriptionData{
		sub("a", -30.03, -51.21),
	}, nil).Once()

	withAlert := snapshot(-30.03, -51.21)
	withAlert.Alerts = []ports.AlertData{
		{Event: "Flood warning", Severity: "severe", Description: "River levels rising"},
	}
	f.provider.On("GetSnapshot", mock.Anything, mock.Anything, mock.Anything, ports.BackendFree).
		Return(withAlert, nil).Once()
	f.sender.On("Send", mock.Anything, mock.Anything).
		Return(ports.DeliveryDelivered, nil)

	report, err := f.uc.Run(context.Background())
	require.NoError(t, err)

	// Summary plus one alert to the single subscriber.
	assert.Equal(t, 2, report.Sent)
	f.sender.AssertNumberOfCalls(t, "Send", 2)
}
