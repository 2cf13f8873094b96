package api

import (
	"net/http"
	"strconv"
	"time"

	"log/slog"

	"github.com/gin-gonic/gin"
	"weatherpush.app/internal/core/weather"
	"weatherpush.app/internal/ports"
	"weatherpush.app/pkg/errors"
)

// AlertResponse represents one severe weather alert in the HTTP response
type AlertResponse struct {
	Event       string `json:"event"`
	Severity    string `json:"severity"`
	Description string `json:"description"`
}

// WeatherResponse represents the HTTP response for weather data
type WeatherResponse struct {
	Location    string          `json:"location"`
	Lat         float64         `json:"lat"`
	Lon         float64         `json:"lon"`
	Temperature float64         `json:"temperature"`
	Condition   string          `json:"condition"`
	Alerts      []AlertResponse `json:"alerts,omitempty"`
	FetchedAt   time.Time       `json:"fetchedAt"`
}

// getWeather handles GET /api/weather requests. This is the attended path:
// the caller may select the paid backend explicitly.
func (s *HTTPServerAdapter) getWeather(c *gin.Context) {
	lat, err := strconv.ParseFloat(c.Query("lat"), 64)
	if err != nil {
		s.handleError(c, errors.NewValidationError("lat parameter is required"))
		return
	}
	lon, err := strconv.ParseFloat(c.Query("lon"), 64)
	if err != nil {
		s.handleError(c, errors.NewValidationError("lon parameter is required"))
		return
	}

	backend := ports.Backend(c.DefaultQuery("backend", string(ports.BackendFree)))

	request := weather.SnapshotRequest{
		Target:  weather.Coordinate{Lat: lat, Lon: lon},
		Backend: backend,
	}

	snapshot, err := s.weatherUseCase.GetSnapshot(c.Request.Context(), request)
	if err != nil {
		slog.Error("Weather use case error", "error", err, "lat", lat, "lon", lon)
		s.handleError(c, err)
		return
	}

	response := WeatherResponse{
		Location:    snapshot.LocationLabel,
		Lat:         snapshot.Lat,
		Lon:         snapshot.Lon,
		Temperature: snapshot.Temperature,
		Condition:   snapshot.Condition,
		FetchedAt:   snapshot.FetchedAt,
	}
	for _, alert := range snapshot.Alerts {
		response.Alerts = append(response.Alerts, AlertResponse{
			Event:       alert.Event,
			Severity:    alert.Severity,
			Description: alert.Description,
		})
	}

	c.JSON(http.StatusOK, response)
}
