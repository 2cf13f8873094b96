package external

import (
	"context"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
	"weatherpush.app/pkg/errors"
)

// HTTPClient abstracts the HTTP transport for provider adapters so tests
// can substitute it
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

const defaultProviderTimeout = 10 * time.Second

func newProviderBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 5,
		Interval:    time.Minute,
		Timeout:     2 * time.Minute,
	})
}

// doProviderRequest executes one request through the circuit breaker and
// normalizes non-200 statuses into external API errors.
func doProviderRequest(ctx context.Context, client HTTPClient, cb *gobreaker.CircuitBreaker, url string) (*http.Response, error) {
	result, err := cb.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}

		resp, err := client.Do(req)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode != http.StatusOK {
			_ = resp.Body.Close()
			return nil, errors.NewExternalAPIError("unexpected status from weather backend", nil)
		}
		return resp, nil
	})
	if err != nil {
		if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
			return nil, errors.NewExternalAPIError("weather backend circuit open", err)
		}
		if appErr, ok := err.(*errors.AppError); ok {
			return nil, appErr
		}
		return nil, errors.NewExternalAPIError("weather backend request failed", err)
	}

	return result.(*http.Response), nil
}
