package integrations

import (
	"errors"
	"net/http"
	"time"
)

// DefaultTimeout bounds every remote call made through [NewHTTPClient].
const DefaultTimeout = 30 * time.Second

var (
	// ErrNotFound is returned when a resource doesn't exist on the remote side.
	ErrNotFound = errors.New("resource not found")

	// ErrNetwork is returned for HTTP failures (timeouts, connection errors, 5xx responses).
	ErrNetwork = errors.New("network error")
)

// Doer sends HTTP requests. *http.Client satisfies it; tests substitute
// their own implementation to observe or fail calls.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// NewHTTPClient creates an HTTP client with the given timeout.
// A non-positive timeout uses [DefaultTimeout].
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{Timeout: timeout}
}
