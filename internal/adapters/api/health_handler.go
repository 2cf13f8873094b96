package api

import (
	"net/http"

	"log/slog"

	"github.com/gin-gonic/gin"
)

// HealthResponse aggregates component health statuses
type HealthResponse struct {
	Status     string                 `json:"status"`
	Components map[string]interface{} `json:"components"`
}

// getHealth handles GET /api/health requests
func (s *HTTPServerAdapter) getHealth(c *gin.Context) {
	if s.healthChecker == nil {
		c.JSON(http.StatusOK, HealthResponse{Status: "healthy", Components: map[string]interface{}{}})
		return
	}

	statuses := s.healthChecker.CheckAll(c.Request.Context())

	overall := "healthy"
	components := make(map[string]interface{}, len(statuses))
	for name, status := range statuses {
		components[name] = status
		if status.Status != "healthy" {
			overall = "unhealthy"
		}
	}

	code := http.StatusOK
	if overall != "healthy" {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, HealthResponse{Status: overall, Components: components})
}

// getMetrics handles GET /api/metrics requests with a JSON aggregate;
// the Prometheus exposition lives at /metrics.
func (s *HTTPServerAdapter) getMetrics(c *gin.Context) {
	metrics := map[string]interface{}{
		"weather": s.weatherMetrics.GetProviderInfo(),
	}

	if cacheStats, err := s.weatherMetrics.GetCacheMetrics(); err == nil {
		metrics["cache"] = map[string]interface{}{
			"hits":      cacheStats.Hits,
			"misses":    cacheStats.Misses,
			"total_ops": cacheStats.TotalOps,
			"hit_ratio": cacheStats.HitRatio,
			"updated":   cacheStats.LastUpdated,
		}
	} else {
		slog.Debug("Cache metrics unavailable", "error", err)
	}

	c.JSON(http.StatusOK, metrics)
}
