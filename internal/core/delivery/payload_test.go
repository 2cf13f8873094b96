package delivery

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"weatherpush.app/internal/core/weather"
)

func snapshotWithAlerts(n int) *weather.Snapshot {
	s := &weather.Snapshot{
		LocationLabel: "Porto Alegre",
		Lat:           -30.03,
		Lon:           -51.21,
		Temperature:   22.5,
		Condition:     "Clear",
		FetchedAt:     time.Now(),
	}
	for i := 0; i < n; i++ {
		s.Alerts = append(s.Alerts, weather.Alert{
			Event:       "Storm warning",
			Severity:    "severe",
			Description: "High winds expected",
		})
	}
	return s
}

func TestComposePayloads_SummaryOnly(t *testing.T) {
	payloads := ComposePayloads(snapshotWithAlerts(0))

	require.Len(t, payloads, 1)
	assert.Equal(t, "Weather for Porto Alegre", payloads[0].Title)
	assert.Equal(t, "22.5°C, Clear", payloads[0].Body)
	assert.Equal(t, "weather-daily", payloads[0].Tag)
	assert.Equal(t, "weather_daily", payloads[0].Type)
}

func TestComposePayloads_AlertsCapped(t *testing.T) {
	payloads := ComposePayloads(snapshotWithAlerts(5))

	// Summary plus at most MaxAlertPayloads alerts.
	require.Len(t, payloads, 1+MaxAlertPayloads)
	assert.Equal(t, "alert", payloads[1].Type)
	assert.Equal(t, "alert", payloads[2].Type)
	assert.NotEqual(t, payloads[1].Tag, payloads[2].Tag)
}

func TestComposePayloads_FallsBackToCoordinates(t *testing.T) {
	s := snapshotWithAlerts(0)
	s.LocationLabel = ""

	payloads := ComposePayloads(s)
	require.Len(t, payloads, 1)
	assert.Contains(t, payloads[0].Title, "-30.03")
}

func TestPayload_Marshal(t *testing.T) {
	payloads := ComposePayloads(snapshotWithAlerts(1))

	raw, err := payloads[1].Marshal()
	require.NoError(t, err)

	var decoded map[string]string
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "alert", decoded["type"])
	assert.Contains(t, decoded["title"], "Storm warning")
}
