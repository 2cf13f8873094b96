package api

import (
	"net/http"

	"log/slog"

	"github.com/gin-gonic/gin"
)

// runDelivery handles POST /api/notifications/run requests. It executes one
// full delivery cycle synchronously and reports the aggregate outcome. The
// endpoint is idempotent at the transport level: a run with no enabled
// subscriptions returns an empty report.
func (s *HTTPServerAdapter) runDelivery(c *gin.Context) {
	slog.Debug("Delivery run requested")

	report, err := s.deliveryUseCase.Run(c.Request.Context())
	if err != nil {
		slog.Error("Delivery run error", "error", err)
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}
