package providers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/sony/gobreaker"

	"github.com/wakaweather/confidence-meter/internal/forecast"
)

// Wind speed conversion factors to metres per second.
const (
	mphToMS = 0.44704
	kphToMS = 0.277778
)

var (
	errRateLimited  = errors.New("rate limited")
	errServerError  = errors.New("server error")
	errUnexpected   = errors.New("unexpected status code")
	errNoHTTPClient = errors.New("http client not configured")
)

// newBreaker builds the circuit breaker used by one provider adapter.
func newBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})
}

// doRequest executes a single GET through the circuit breaker and classifies
// non-2xx responses. There is exactly one attempt per fetch; a failed
// provider is simply absent from the batch.
func doRequest(ctx context.Context, client *http.Client, cb *gobreaker.CircuitBreaker, url string) (*http.Response, error) {
	if client == nil {
		return nil, forecast.NewFetchError(forecast.FailureNetwork, errNoHTTPClient)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, forecast.NewFetchError(forecast.FailureNetwork, err)
	}

	result, err := cb.Execute(func() (interface{}, error) {
		resp, execErr := client.Do(req)
		if execErr != nil {
			return nil, execErr
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			resp.Body.Close()
			return nil, errRateLimited
		}
		if resp.StatusCode >= 500 {
			resp.Body.Close()
			return nil, errServerError
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			resp.Body.Close()
			return nil, fmt.Errorf("%w: %d", errUnexpected, resp.StatusCode)
		}

		return resp, nil
	})
	if err != nil {
		return nil, forecast.NewFetchError(classify(err), err)
	}

	resp, ok := result.(*http.Response)
	if !ok {
		return nil, forecast.NewFetchError(forecast.FailureNetwork, errors.New("unexpected result type from circuit breaker"))
	}
	return resp, nil
}

func classify(err error) forecast.FailureKind {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return forecast.FailureTimeout
	case errors.Is(err, errRateLimited), errors.Is(err, errServerError), errors.Is(err, errUnexpected):
		return forecast.FailureBadStatus
	default:
		return forecast.FailureNetwork
	}
}

// targetDay returns tomorrow's date evaluated in the location's timezone,
// falling back to UTC when none is configured or it fails to load.
func targetDay(clock clockwork.Clock, loc forecast.Location) time.Time {
	now := clock.Now().UTC()
	if loc.Timezone != "" {
		if tz, err := time.LoadLocation(loc.Timezone); err == nil {
			now = clock.Now().In(tz)
		}
	}
	return now.AddDate(0, 0, 1)
}
