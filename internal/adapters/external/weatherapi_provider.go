package external

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
	"weatherpush.app/internal/ports"
	"weatherpush.app/pkg/errors"
)

// WeatherAPIAdapter serves the keyed backend, which additionally
// carries weather alerts.
type WeatherAPIAdapter struct {
	apiKey  string
	baseURL string
	client  HTTPClient
	breaker *gobreaker.CircuitBreaker
	logger  ports.Logger
}

func NewWeatherAPIAdapter(apiKey, baseURL string, logger ports.Logger) *WeatherAPIAdapter {
	return &WeatherAPIAdapter{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  &http.Client{Timeout: defaultProviderTimeout},
		breaker: newProviderBreaker("weatherapi"),
		logger:  logger,
	}
}

type weatherAPIResponse struct {
	Location struct {
		Name string `json:"name"`
	} `json:"location"`
	Current struct {
		TempC     float64 `json:"temp_c"`
		Condition struct {
			Text string `json:"text"`
		} `json:"condition"`
	} `json:"current"`
	Alerts struct {
		Alert []struct {
			Headline string `json:"headline"`
			Event    string `json:"event"`
			Desc     string `json:"desc"`
			Severity string `json:"severity"`
		} `json:"alert"`
	} `json:"alerts"`
}

func (a *WeatherAPIAdapter) FetchSnapshot(ctx context.Context, lat, lon float64) (*ports.SnapshotData, error) {
	if a.apiKey == "" {
		return nil, errors.NewConfigurationError("weatherapi key is not configured", nil)
	}

	url := fmt.Sprintf("%s/forecast.json?key=%s&q=%.4f,%.4f&days=1&alerts=yes", a.baseURL, a.apiKey, lat, lon)

	resp, err := doProviderRequest(ctx, a.client, a.breaker, url)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil && a.logger != nil {
			a.logger.Warn("failed to close response body", ports.F("error", closeErr.Error()))
		}
	}()

	var payload weatherAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, errors.NewExternalAPIError("failed to decode weatherapi response", err)
	}

	snapshot := &ports.SnapshotData{
		LocationLabel: payload.Location.Name,
		Lat:           lat,
		Lon:           lon,
		Temperature:   payload.Current.TempC,
		Condition:     payload.Current.Condition.Text,
		FetchedAt:     time.Now(),
	}
	for _, alert := range payload.Alerts.Alert {
		event := alert.Event
		if event == "" {
			event = alert.Headline
		}
		snapshot.Alerts = append(snapshot.Alerts, ports.AlertData{
			Event:       event,
			Severity:    alert.Severity,
			Description: alert.Desc,
		})
	}

	return snapshot, nil
}

func (a *WeatherAPIAdapter) GetProviderName() string {
	return "weatherapi"
}
