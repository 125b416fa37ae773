// Package httpclient builds the HTTP clients shared by provider adapters.
package httpclient

import (
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// DefaultTimeout applies when a caller passes zero.
const DefaultTimeout = 60 * time.Second

// New returns a client with the given timeout. When limiter is non-nil,
// every outgoing request waits for a token first.
func New(timeout time.Duration, limiter *rate.Limiter) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	var transport http.RoundTripper = http.DefaultTransport
	if limiter != nil {
		transport = &limitedTransport{base: transport, limiter: limiter}
	}

	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}

// NewLimiter returns a limiter allowing rps requests per second with a
// burst of one. rps <= 0 disables limiting and returns nil.
func NewLimiter(rps float64) *rate.Limiter {
	if rps <= 0 {
		return nil
	}
	return rate.NewLimiter(rate.Limit(rps), 1)
}

// limitedTransport throttles a RoundTripper.
type limitedTransport struct {
	base    http.RoundTripper
	limiter *rate.Limiter
}

// RoundTrip waits for the limiter, then delegates.
func (t *limitedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := t.limiter.Wait(req.Context()); err != nil {
		return nil, err
	}
	return t.base.RoundTrip(req)
}
