package schedule

import (
	"fmt"
	"strings"

	"weatherpush.app/internal/core/weather"
)

func pendingContent() (title, body string) {
	return "Weather update", "Your scheduled weather summary is ready."
}

func summaryContent(s *weather.Snapshot) (title, body string) {
	label := s.LocationLabel
	if label == "" {
		label = fmt.Sprintf("%.2f, %.2f", s.Lat, s.Lon)
	}
	title = fmt.Sprintf("Weather for %s", label)
	body = fmt.Sprintf("%.1f°C, %s", s.Temperature, s.Condition)
	return title, body
}

func alertContent(s *weather.Snapshot) (title, body string) {
	events := make([]string, 0, len(s.Alerts))
	for _, a := range s.Alerts {
		events = append(events, a.Event)
	}
	title = "Severe weather alert"
	if len(events) == 1 {
		title = fmt.Sprintf("Severe weather alert: %s", events[0])
	}
	body = strings.Join(events, "; ")
	return title, body
}
