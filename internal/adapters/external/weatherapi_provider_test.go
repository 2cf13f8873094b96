package external

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weatherpush.app/internal/mocks"
	"weatherpush.app/pkg/errors"
)

const weatherAPIFixture = `{
	"location": {"name": "Porto Alegre"},
	"current": {"temp_c": 22.5, "condition": {"text": "Clear"}},
	"alerts": {"alert": [
		{"headline": "Flood warning issued", "event": "Flood Warning", "severity": "Severe", "desc": "River levels rising"},
		{"headline": "Heat advisory in effect", "event": "", "severity": "Moderate", "desc": "High temperatures expected"}
	]}
}`

func TestWeatherAPIAdapter_FetchSnapshotWithAlerts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/forecast.json", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		assert.Equal(t, "-30.0300,-51.2100", r.URL.Query().Get("q"))
		assert.Equal(t, "yes", r.URL.Query().Get("alerts"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(weatherAPIFixture))
	}))
	defer server.Close()

	adapter := NewWeatherAPIAdapter("test-key", server.URL, mocks.NoopLogger{})

	snapshot, err := adapter.FetchSnapshot(context.Background(), -30.03, -51.21)
	require.NoError(t, err)
	assert.Equal(t, "Porto Alegre", snapshot.LocationLabel)
	assert.Equal(t, 22.5, snapshot.Temperature)
	assert.Equal(t, "Clear", snapshot.Condition)

	require.Len(t, snapshot.Alerts, 2)
	assert.Equal(t, "Flood Warning", snapshot.Alerts[0].Event)
	assert.Equal(t, "Severe", snapshot.Alerts[0].Severity)
	assert.Equal(t, "River levels rising", snapshot.Alerts[0].Description)
	// An alert without an event name falls back to its headline.
	assert.Equal(t, "Heat advisory in effect", snapshot.Alerts[1].Event)
}

func TestWeatherAPIAdapter_RefusesWithoutKey(t *testing.T) {
	adapter := NewWeatherAPIAdapter("", "http://localhost", mocks.NoopLogger{})

	_, err := adapter.FetchSnapshot(context.Background(), -30.03, -51.21)
	assert.True(t, errors.IsConfigurationError(err))
}

func TestWeatherAPIAdapter_NonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	adapter := NewWeatherAPIAdapter("test-key", server.URL, mocks.NoopLogger{})

	_, err := adapter.FetchSnapshot(context.Background(), -30.03, -51.21)
	assert.True(t, errors.IsExternalAPIError(err))
}

func TestWeatherAPIAdapter_ProviderName(t *testing.T) {
	adapter := NewWeatherAPIAdapter("k", "http://localhost", mocks.NoopLogger{})
	assert.Equal(t, "weatherapi", adapter.GetProviderName())
}
