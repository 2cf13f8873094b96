package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"weatherpush.app/internal/core/history"
)

// HistoryResponse wraps the notification history listing
type HistoryResponse struct {
	Records []history.Record `json:"records"`
	Count   int              `json:"count"`
}

// listHistory handles GET /api/history requests, newest first
func (s *HTTPServerAdapter) listHistory(c *gin.Context) {
	records := s.historyLog.ListAll()
	c.JSON(http.StatusOK, HistoryResponse{Records: records, Count: len(records)})
}

// markHistoryRead handles POST /api/history/read requests
func (s *HTTPServerAdapter) markHistoryRead(c *gin.Context) {
	s.historyLog.MarkAllRead()
	c.JSON(http.StatusOK, SuccessResponse{Message: "History marked as read"})
}

// clearHistory handles DELETE /api/history requests
func (s *HTTPServerAdapter) clearHistory(c *gin.Context) {
	s.historyLog.DeleteAll()
	c.JSON(http.StatusOK, SuccessResponse{Message: "History cleared"})
}
