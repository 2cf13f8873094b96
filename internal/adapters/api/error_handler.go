package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	errorspkg "weatherpush.app/pkg/errors"
)

// ErrorResponse represents an error message structure for API responses
type ErrorResponse struct {
	Error string `json:"error"`
}

// handleError maps application error types to HTTP statuses
func (s *HTTPServerAdapter) handleError(c *gin.Context, err error) {
	var appErr *errorspkg.AppError
	var statusCode int
	var message string

	if !errors.As(err, &appErr) {
		statusCode = http.StatusInternalServerError
		message = "Internal server error"
		c.JSON(statusCode, ErrorResponse{Error: message})
		return
	}

	switch appErr.Type {
	case errorspkg.ErrorTypeValidation:
		statusCode = http.StatusBadRequest
		message = appErr.Message
	case errorspkg.ErrorTypeNotFound:
		statusCode = http.StatusNotFound
		message = appErr.Message
	case errorspkg.ErrorTypeAlreadyExists:
		statusCode = http.StatusConflict
		message = appErr.Message
	case errorspkg.ErrorTypeExternalAPI:
		statusCode = http.StatusServiceUnavailable
		message = "External service unavailable"
	case errorspkg.ErrorTypeDatabase:
		statusCode = http.StatusInternalServerError
		message = "Internal server error"
	case errorspkg.ErrorTypeDelivery:
		statusCode = http.StatusServiceUnavailable
		message = "Unable to deliver notification"
	case errorspkg.ErrorTypeConfiguration:
		// Delivery runs without push credentials are refused, not failed.
		statusCode = http.StatusServiceUnavailable
		message = appErr.Message
	default:
		statusCode = http.StatusInternalServerError
		message = "Internal server error"
	}

	c.JSON(statusCode, ErrorResponse{Error: message})
}
