package delivery

import (
	"encoding/json"
	"fmt"

	"weatherpush.app/internal/core/weather"
)

// MaxAlertPayloads caps alert fan-out per group to bound the worst case;
// alerts beyond the cap are dropped.
const MaxAlertPayloads = 2

// Payload is the message body handed to the push transport
type Payload struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	Tag   string `json:"tag"`
	Type  string `json:"type"`
}

// Marshal encodes the payload for the wire
func (p Payload) Marshal() ([]byte, error) {
	return json.Marshal(p)
}

// ComposePayloads builds the routine summary and, when the snapshot carries
// severe alerts, up to MaxAlertPayloads alert payloads.
func ComposePayloads(snapshot *weather.Snapshot) []Payload {
	label := snapshot.LocationLabel
	if label == "" {
		label = fmt.Sprintf("%.2f, %.2f", snapshot.Lat, snapshot.Lon)
	}

	payloads := []Payload{{
		Title: fmt.Sprintf("Weather for %s", label),
		Body:  fmt.Sprintf("%.1f°C, %s", snapshot.Temperature, snapshot.Condition),
		Tag:   "weather-daily",
		Type:  "weather_daily",
	}}

	for i, alert := range snapshot.Alerts {
		if i >= MaxAlertPayloads {
			break
		}
		payloads = append(payloads, Payload{
			Title: fmt.Sprintf("Severe weather alert: %s", alert.Event),
			Body:  alert.Description,
			Tag:   fmt.Sprintf("weather-alert-%d", i),
			Type:  "alert",
		})
	}

	return payloads
}
