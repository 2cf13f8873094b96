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

func TestOpenMeteoAdapter_FetchSnapshot(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/forecast", r.URL.Path)
		assert.Equal(t, "-30.0300", r.URL.Query().Get("latitude"))
		assert.Equal(t, "-51.2100", r.URL.Query().Get("longitude"))
		assert.Equal(t, "true", r.URL.Query().Get("current_weather"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"current_weather":{"temperature":22.5,"weathercode":0}}`))
	}))
	defer server.Close()

	adapter := NewOpenMeteoAdapter(server.URL, mocks.NoopLogger{})

	snapshot, err := adapter.FetchSnapshot(context.Background(), -30.03, -51.21)
	require.NoError(t, err)
	assert.Equal(t, -30.03, snapshot.Lat)
	assert.Equal(t, -51.21, snapshot.Lon)
	assert.Equal(t, 22.5, snapshot.Temperature)
	assert.Equal(t, "Clear", snapshot.Condition)
	assert.Empty(t, snapshot.Alerts)
	assert.False(t, snapshot.FetchedAt.IsZero())
}

func TestOpenMeteoAdapter_NonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	adapter := NewOpenMeteoAdapter(server.URL, mocks.NoopLogger{})

	_, err := adapter.FetchSnapshot(context.Background(), -30.03, -51.21)
	assert.True(t, errors.IsExternalAPIError(err))
}

func TestOpenMeteoAdapter_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	adapter := NewOpenMeteoAdapter(server.URL, mocks.NoopLogger{})

	_, err := adapter.FetchSnapshot(context.Background(), -30.03, -51.21)
	assert.True(t, errors.IsExternalAPIError(err))
}

func TestConditionFromWeatherCode(t *testing.T) {
	tests := []struct {
		code     int
		expected string
	}{
		{0, "Clear"},
		{2, "Partly cloudy"},
		{45, "Fog"},
		{48, "Fog"},
		{53, "Drizzle"},
		{63, "Rain"},
		{75, "Snow"},
		{81, "Showers"},
		{86, "Snow showers"},
		{95, "Thunderstorm"},
		{99, "Thunderstorm"},
		{40, "Unknown"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, conditionFromWeatherCode(tt.code), "code %d", tt.code)
	}
}

func TestOpenMeteoAdapter_ProviderName(t *testing.T) {
	adapter := NewOpenMeteoAdapter("http://localhost", mocks.NoopLogger{})
	assert.Equal(t, "open-meteo", adapter.GetProviderName())
}
