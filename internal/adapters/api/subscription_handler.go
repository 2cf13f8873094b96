package api

import (
	"net/http"

	"log/slog"

	"github.com/gin-gonic/gin"
	"weatherpush.app/internal/core/subscription"
	"weatherpush.app/pkg/errors"
)

// SubscribeRequest represents the HTTP request for registering a push
// subscription. Endpoint and keys come straight from the browser's
// PushSubscription object.
type SubscribeRequest struct {
	Endpoint string           `json:"endpoint" binding:"required,url"`
	Keys     SubscriptionKeys `json:"keys" binding:"required"`
	Location *LocationPayload `json:"location"`
	Enabled  *bool            `json:"enabled"`
}

// SubscriptionKeys carries the browser's encryption keys
type SubscriptionKeys struct {
	P256dh string `json:"p256dh" binding:"required"`
	Auth   string `json:"auth" binding:"required"`
}

// LocationPayload represents an optional stored notification target
type LocationPayload struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat" binding:"min=-90,max=90"`
	Lon  float64 `json:"lon" binding:"min=-180,max=180"`
}

// UnsubscribeRequest identifies the subscription to remove by its endpoint
type UnsubscribeRequest struct {
	Endpoint string `json:"endpoint" binding:"required"`
}

// SubscribeResponse confirms a registration
type SubscribeResponse struct {
	ID      string `json:"id"`
	Enabled bool   `json:"enabled"`
}

// SuccessResponse represents a successful HTTP response
type SuccessResponse struct {
	Message string `json:"message"`
}

// subscribe handles POST /api/push/subscribe requests
func (s *HTTPServerAdapter) subscribe(c *gin.Context) {
	var httpReq SubscribeRequest
	slog.Debug("Handling push registration request")

	if err := c.ShouldBindJSON(&httpReq); err != nil {
		slog.Error("Request binding error", "error", err)
		s.handleError(c, errors.NewValidationError("Invalid request format"))
		return
	}

	enabled := true
	if httpReq.Enabled != nil {
		enabled = *httpReq.Enabled
	}

	params := subscription.RegisterParams{
		Endpoint: httpReq.Endpoint,
		P256dh:   httpReq.Keys.P256dh,
		Auth:     httpReq.Keys.Auth,
		Enabled:  enabled,
	}
	if httpReq.Location != nil {
		params.Location = &subscription.Location{
			Name: httpReq.Location.Name,
			Lat:  httpReq.Location.Lat,
			Lon:  httpReq.Location.Lon,
		}
	}

	record, err := s.subscriptionUseCase.Register(c.Request.Context(), params)
	if err != nil {
		slog.Error("Registration error", "error", err)
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, SubscribeResponse{ID: record.ID, Enabled: record.Enabled})
}

// unsubscribe handles POST /api/push/unsubscribe requests
func (s *HTTPServerAdapter) unsubscribe(c *gin.Context) {
	var httpReq UnsubscribeRequest

	if err := c.ShouldBindJSON(&httpReq); err != nil {
		slog.Error("Request binding error", "error", err)
		s.handleError(c, errors.NewValidationError("Invalid request format"))
		return
	}

	params := subscription.UnregisterParams{Endpoint: httpReq.Endpoint}
	if err := s.subscriptionUseCase.Unregister(c.Request.Context(), params); err != nil {
		slog.Error("Unregister error", "error", err)
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "Subscription removed"})
}
