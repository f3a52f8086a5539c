// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers build a [Hooks] value and pass
// it to the client at construction time; there is no process-wide registry.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Let each client carry its own set of hooks
//
// # Usage
//
//	hooks := observability.Hooks{Cache: myCacheMetrics{}}
//	client := pardot.NewClient(creds, backend, pardot.WithHooks(hooks))
//
// [LogHooks] forwards every event to a charmbracelet logger at debug level.
package observability

import (
	"context"
	"time"
)

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
// The resource argument names the artifact type ("campaigns", "form", ...).
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, resource string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, resource string)

	// OnCacheSet records a cache write; err is non-nil when the write failed.
	OnCacheSet(ctx context.Context, resource string, size int, err error)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from HTTP client operations.
type HTTPHooks interface {
	// OnRequest records an outgoing HTTP request.
	OnRequest(ctx context.Context, method, host, path string)

	// OnResponse records an HTTP response.
	OnResponse(ctx context.Context, method, host, path string, statusCode int, duration time.Duration)

	// OnError records an HTTP error (network failure, timeout).
	OnError(ctx context.Context, method, host, path string, err error)
}

// =============================================================================
// Auth Hooks
// =============================================================================

// AuthHooks receives events from credential management.
type AuthHooks interface {
	// OnKeyRequest records a request for the API key.
	OnKeyRequest(ctx context.Context, forceRefresh bool)

	// OnLogin records a completed login call. version is zero on failure.
	OnLogin(ctx context.Context, version int, duration time.Duration, err error)

	// OnAuthRetry records a retry triggered by an invalid-key response.
	OnAuthRetry(ctx context.Context, resource string)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)             {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)            {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int, error) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, string, error)                 {}

// NoopAuthHooks is a no-op implementation of AuthHooks.
type NoopAuthHooks struct{}

func (NoopAuthHooks) OnKeyRequest(context.Context, bool)                 {}
func (NoopAuthHooks) OnLogin(context.Context, int, time.Duration, error) {}
func (NoopAuthHooks) OnAuthRetry(context.Context, string)                {}

// =============================================================================
// Hook Set
// =============================================================================

// Hooks bundles the hooks carried by one client. Nil fields are no-ops.
type Hooks struct {
	Cache CacheHooks
	HTTP  HTTPHooks
	Auth  AuthHooks
}

// WithDefaults returns a copy of h with nil fields replaced by no-ops.
func (h Hooks) WithDefaults() Hooks {
	if h.Cache == nil {
		h.Cache = NoopCacheHooks{}
	}
	if h.HTTP == nil {
		h.HTTP = NoopHTTPHooks{}
	}
	if h.Auth == nil {
		h.Auth = NoopAuthHooks{}
	}
	return h
}
