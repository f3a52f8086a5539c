package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks implements every hook interface by logging at debug level.
type LogHooks struct {
	Logger *log.Logger
}

// NewLogHooks returns a Hooks set that logs every event to l.
// A nil logger uses log.Default().
func NewLogHooks(l *log.Logger) Hooks {
	if l == nil {
		l = log.Default()
	}
	h := &LogHooks{Logger: l}
	return Hooks{Cache: h, HTTP: h, Auth: h}
}

func (h *LogHooks) OnCacheHit(_ context.Context, resource string) {
	h.Logger.Debug("cache hit", "resource", resource)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, resource string) {
	h.Logger.Debug("cache miss", "resource", resource)
}

func (h *LogHooks) OnCacheSet(_ context.Context, resource string, size int, err error) {
	if err != nil {
		h.Logger.Warn("cache write failed", "resource", resource, "err", err)
		return
	}
	h.Logger.Debug("cache set", "resource", resource, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, method, host, path string) {
	h.Logger.Debug("request", "method", method, "host", host, "path", path)
}

func (h *LogHooks) OnResponse(_ context.Context, method, host, path string, status int, d time.Duration) {
	h.Logger.Debug("response", "method", method, "path", path, "status", status, "took", d.Round(time.Millisecond))
}

func (h *LogHooks) OnError(_ context.Context, method, host, path string, err error) {
	h.Logger.Debug("request failed", "method", method, "host", host, "path", path, "err", err)
}

func (h *LogHooks) OnKeyRequest(_ context.Context, forceRefresh bool) {
	if forceRefresh {
		h.Logger.Debug("forcing api key refresh")
	}
}

func (h *LogHooks) OnLogin(_ context.Context, version int, d time.Duration, err error) {
	if err != nil {
		h.Logger.Debug("login failed", "err", err, "took", d.Round(time.Millisecond))
		return
	}
	h.Logger.Debug("login", "version", version, "took", d.Round(time.Millisecond))
}

func (h *LogHooks) OnAuthRetry(_ context.Context, resource string) {
	h.Logger.Debug("retrying with refreshed api key", "resource", resource)
}
