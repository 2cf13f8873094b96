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

// OpenMeteoAdapter serves the keyless backend. It reports current
// conditions only and never carries alerts.
type OpenMeteoAdapter struct {
	baseURL string
	client  HTTPClient
	breaker *gobreaker.CircuitBreaker
	logger  ports.Logger
}

func NewOpenMeteoAdapter(baseURL string, logger ports.Logger) *OpenMeteoAdapter {
	return &OpenMeteoAdapter{
		baseURL: baseURL,
		client:  &http.Client{Timeout: defaultProviderTimeout},
		breaker: newProviderBreaker("open-meteo"),
		logger:  logger,
	}
}

type openMeteoResponse struct {
	CurrentWeather struct {
		Temperature float64 `json:"temperature"`
		WeatherCode int     `json:"weathercode"`
	} `json:"current_weather"`
}

func (a *OpenMeteoAdapter) FetchSnapshot(ctx context.Context, lat, lon float64) (*ports.SnapshotData, error) {
	url := fmt.Sprintf("%s/forecast?latitude=%.4f&longitude=%.4f&current_weather=true", a.baseURL, lat, lon)

	resp, err := doProviderRequest(ctx, a.client, a.breaker, url)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil && a.logger != nil {
			a.logger.Warn("failed to close response body", ports.F("error", closeErr.Error()))
		}
	}()

	var payload openMeteoResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, errors.NewExternalAPIError("failed to decode open-meteo response", err)
	}

	return &ports.SnapshotData{
		Lat:         lat,
		Lon:         lon,
		Temperature: payload.CurrentWeather.Temperature,
		Condition:   conditionFromWeatherCode(payload.CurrentWeather.WeatherCode),
		FetchedAt:   time.Now(),
	}, nil
}

func (a *OpenMeteoAdapter) GetProviderName() string {
	return "open-meteo"
}

// conditionFromWeatherCode maps WMO interpretation codes to short labels.
func conditionFromWeatherCode(code int) string {
	switch {
	case code == 0:
		return "Clear"
	case code <= 3:
		return "Partly cloudy"
	case code == 45 || code == 48:
		return "Fog"
	case code >= 51 && code <= 57:
		return "Drizzle"
	case code >= 61 && code <= 67:
		return "Rain"
	case code >= 71 && code <= 77:
		return "Snow"
	case code >= 80 && code <= 82:
		return "Showers"
	case code == 85 || code == 86:
		return "Snow showers"
	case code >= 95:
		return "Thunderstorm"
	default:
		return "Unknown"
	}
}
