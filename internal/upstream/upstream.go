// Package upstream is the shared plumbing for outbound provider calls
// (Open-Meteo, Photon, Nominatim).
//
// Every provider call goes through a circuit breaker: after a run of
// failures the breaker opens and subsequent calls fail immediately instead
// of tying up a request for the full 10s timeout. Note what this is NOT — a
// retry loop. A request is attempted at most once per provider; resilience
// against a dead geocoder is the provider-to-provider fallback in the
// resolver, not repetition.
package upstream

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
)

// Timeout bounds every outbound provider call. Exceeding it is treated as a
// provider failure.
const Timeout = 10 * time.Second

var (
	ErrCircuitOpen = errors.New("upstream: circuit breaker open")
	errStatus      = errors.New("upstream: unexpected status")
)

// NewClient returns the http.Client used for provider calls.
func NewClient() *http.Client {
	return &http.Client{Timeout: Timeout}
}

// NewBreaker creates a circuit breaker for one named provider.
// Settings follow the usual shape: allow a handful of probes while
// half-open, reset counts every minute, stay open for two.
func NewBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})
}

// Get performs a single GET through the breaker. Non-2xx statuses count as
// failures so a flapping provider trips the breaker. The caller owns the
// response body.
func Get(ctx context.Context, client *http.Client, cb *gobreaker.CircuitBreaker, url string, header http.Header) (*http.Response, error) {
	result, err := cb.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		for k, vs := range header {
			for _, v := range vs {
				req.Header.Add(k, v)
			}
		}

		resp, err := client.Do(req)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			resp.Body.Close()
			return nil, fmt.Errorf("%w: %d", errStatus, resp.StatusCode)
		}
		return resp, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: %v", ErrCircuitOpen, err)
		}
		return nil, err
	}

	return result.(*http.Response), nil
}
