package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_MessageFormat(t *testing.T) {
	err := NewValidationError("endpoint is required")
	assert.Equal(t, "VALIDATION_ERROR: endpoint is required", err.Error())

	cause := fmt.Errorf("connection refused")
	wrapped := NewDatabaseError("failed to save subscription", cause)
	assert.Equal(t, "DATABASE_ERROR: failed to save subscription (caused by: connection refused)", wrapped.Error())
}

func TestAppError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("dial tcp: timeout")
	err := NewExternalAPIError("weather backend call failed", cause)

	assert.True(t, stderrors.Is(err, cause))

	var appErr *AppError
	assert.True(t, stderrors.As(err, &appErr))
	assert.Equal(t, ErrorTypeExternalAPI, appErr.Type)
}

func TestErrorTypeCheckers(t *testing.T) {
	tests := []struct {
		err     error
		checker func(error) bool
	}{
		{NewValidationError("m"), IsValidationError},
		{NewNotFoundError("m"), IsNotFoundError},
		{NewAlreadyExistsError("m"), IsAlreadyExistsError},
		{NewDatabaseError("m", nil), IsDatabaseError},
		{NewExternalAPIError("m", nil), IsExternalAPIError},
		{NewDeliveryError("m", nil), IsDeliveryError},
		{NewConfigurationError("m", nil), IsConfigurationError},
	}

	for _, tt := range tests {
		assert.True(t, tt.checker(tt.err), tt.err.Error())
		assert.False(t, tt.checker(fmt.Errorf("plain error")))
		assert.False(t, tt.checker(nil))
	}
}

func TestErrorType_String(t *testing.T) {
	assert.Equal(t, "VALIDATION_ERROR", ErrorTypeValidation.String())
	assert.Equal(t, "CONFIGURATION_ERROR", ErrorTypeConfiguration.String())
	assert.Equal(t, "UNKNOWN_ERROR", ErrorTypeUnknown.String())
}
