// Package httpx holds the outbound HTTP resilience plumbing shared by the
// weather provider, elevation, and chat clients: retries with exponential
// backoff wrapped in a circuit breaker.
package httpx

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
)

// BackoffConfig controls exponential backoff behaviour.
type BackoffConfig struct {
	MaxRetries      int
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

// ClientConfig bundles the HTTP client and resilience settings.
type ClientConfig struct {
	Client  *http.Client
	Backoff BackoffConfig
}

// DefaultBackoff is the retry policy used by all outbound clients unless
// overridden.
var DefaultBackoff = BackoffConfig{
	MaxRetries:      3,
	InitialInterval: 500 * time.Millisecond,
	MaxInterval:     5 * time.Second,
}

var (
	ErrRateLimited = errors.New("rate limited")
	ErrServerError = errors.New("server error")
	ErrUnexpected  = errors.New("unexpected status code")
	ErrCircuitOpen = errors.New("circuit breaker open")

	errNoHTTPClient  = errors.New("http client not configured")
	errInvalidConfig = errors.New("invalid backoff configuration")
)

// NewBreaker creates a circuit breaker with the settings used for outbound
// API calls.
func NewBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})
}

// Do executes the request built by buildRequest with retries, exponential
// backoff, and the given circuit breaker. Rate-limit and 5xx responses are
// retried; an open circuit fails fast.
func Do(
	ctx context.Context,
	cfg ClientConfig,
	cb *gobreaker.CircuitBreaker,
	buildRequest func() (*http.Request, error),
) (*http.Response, error) {
	if cfg.Client == nil {
		return nil, errNoHTTPClient
	}
	if cfg.Backoff.MaxRetries < 0 || cfg.Backoff.InitialInterval <= 0 {
		return nil, errInvalidConfig
	}

	var attempt int
	var lastErr error

	for {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		req, err := buildRequest()
		if err != nil {
			return nil, err
		}
		req = req.WithContext(ctx)

		result, err := cb.Execute(func() (interface{}, error) {
			resp, execErr := cfg.Client.Do(req)
			if execErr != nil {
				return nil, execErr
			}

			if resp.StatusCode == http.StatusTooManyRequests {
				resp.Body.Close()
				return nil, ErrRateLimited
			}
			if resp.StatusCode >= 500 {
				resp.Body.Close()
				return nil, ErrServerError
			}
			if resp.StatusCode < 200 || resp.StatusCode >= 300 {
				resp.Body.Close()
				return nil, fmt.Errorf("%w: %d", ErrUnexpected, resp.StatusCode)
			}

			return resp, nil
		})

		if err == nil {
			resp, ok := result.(*http.Response)
			if !ok {
				return nil, fmt.Errorf("unexpected result type from circuit breaker")
			}
			return resp, nil
		}

		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: %v", ErrCircuitOpen, err)
		}

		// Client errors other than rate limiting are not retryable.
		if errors.Is(err, ErrUnexpected) {
			return nil, err
		}

		lastErr = err
		if attempt >= cfg.Backoff.MaxRetries {
			return nil, lastErr
		}

		delay := cfg.Backoff.InitialInterval * time.Duration(math.Pow(2, float64(attempt)))
		if cfg.Backoff.MaxInterval > 0 && delay > cfg.Backoff.MaxInterval {
			delay = cfg.Backoff.MaxInterval
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}

		attempt++
	}
}
