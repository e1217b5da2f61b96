package http_client

import (
	"net/http"
	"time"
)

// DefaultTimeout bounds a single request when Module.Timeout is zero.
const DefaultTimeout = 30 * time.Second

// newHttpClient returns the client shared by every instance handed to script.
func newHttpClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
	}
}
