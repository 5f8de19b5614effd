package api

import (
	"net/http"
	"sync/atomic"
	"time"

	"github.com/spiffcs/ghlens/internal/log"
)

// loggingTransport wraps an http.RoundTripper to log and count backend requests.
type loggingTransport struct {
	base     http.RoundTripper
	requests atomic.Int64
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	t.requests.Add(1)
	start := time.Now()

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		log.Debug("request failed", "method", req.Method, "url", req.URL.String(), "error", err)
		return resp, err
	}

	log.Debug("request",
		"method", req.Method,
		"url", req.URL.String(),
		"status", resp.StatusCode,
		"duration", time.Since(start).Round(time.Millisecond))
	return resp, nil
}
