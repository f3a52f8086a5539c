package pardot

import (
	"context"
	"encoding/json"
	"time"

	errs "github.com/matzehuels/pardot/pkg/errors"
	"github.com/matzehuels/pardot/pkg/httputil"
)

// authRetry repeats a request once after an invalid-key response.
var authRetry = httputil.Policy{
	Attempts: 2,
	ShouldRetry: func(err error) bool {
		return errs.Is(err, errs.ErrCodeInvalidAPIKey)
	},
}

// resource describes one cached artifact type.
type resource[T any] struct {
	name    string // for logs and hooks
	key     string // cache key
	object  string // API object, e.g. "form"
	action  string // API action, e.g. "read"
	id      string // optional resource id
	ttl     time.Duration
	extract func(status int, body []byte) (T, error)
}

// fetch runs the cache-first algorithm shared by every artifact:
// cache hit, else login if needed, request with one invalid-key retry,
// extract, write through. Failures are logged and reported as absence.
func fetch[T any](ctx context.Context, c *Client, r resource[T]) Result[T] {
	if v, ok := cached[T](ctx, c, r); ok {
		c.hooks.Cache.OnCacheHit(ctx, r.name)
		return Result[T]{Value: v, OK: true, Source: SourceCache}
	}
	c.hooks.Cache.OnCacheMiss(ctx, r.name)

	if !c.Enabled() {
		c.logger.Debug("pardot credentials not configured", "resource", r.name)
		return Result[T]{}
	}

	status, body, err := c.request(ctx, r.name, r.object, r.action, r.id)
	if err != nil {
		c.logger.Warn("pardot request failed", "resource", r.name, "id", r.id, "err", err)
		return Result[T]{}
	}

	v, err := r.extract(status, body)
	if err != nil {
		c.logger.Warn("pardot response has no data", "resource", r.name, "id", r.id, "err", err)
		return Result[T]{}
	}

	res := Result[T]{Value: v, OK: true, Source: SourceRemote}
	data, err := json.Marshal(v)
	if err == nil {
		err = c.cache.Set(ctx, r.key, data, r.ttl)
	}
	c.hooks.Cache.OnCacheSet(ctx, r.name, len(data), err)
	if err != nil {
		res.CacheErr = errs.Wrap(errs.ErrCodeCacheWrite, err, "store %s", r.name)
		c.logger.Warn("fetched but not cached", "resource", r.name, "id", r.id, "err", err)
	}
	return res
}

func cached[T any](ctx context.Context, c *Client, r resource[T]) (T, bool) {
	var v T
	data, ok, err := c.cache.Get(ctx, r.key)
	if err != nil {
		c.logger.Debug("cache read failed", "resource", r.name, "err", err)
		return v, false
	}
	if !ok {
		return v, false
	}
	if err := json.Unmarshal(data, &v); err != nil {
		c.logger.Debug("discarding undecodable cache entry", "resource", r.name, "err", err)
		return v, false
	}
	return v, true
}

// request posts to the resource endpoint with the current key. An
// invalid-key reply forces a new login and the request is sent once more.
// If the second reply is also an invalid-key error its body is returned
// as is and extraction decides the outcome.
func (c *Client) request(ctx context.Context, name, object, action, id string) (int, []byte, error) {
	cred, ok := c.creds.credential(ctx, false)
	if !ok {
		return 0, nil, errs.New(errs.ErrCodeLoginFailed, "no api key available")
	}

	var (
		status int
		body   []byte
	)
	err := authRetry.Do(ctx, func(attempt int) error {
		if attempt > 0 {
			c.hooks.Auth.OnAuthRetry(ctx, name)
			if cred, ok = c.creds.credential(ctx, true); !ok {
				return errs.New(errs.ErrCodeLoginFailed, "could not refresh api key")
			}
		}
		endpoint := c.endpointURL(object, versionOf(cred), action, id)
		resp, err := c.http.PostForm(ctx, endpoint, c.form(cred.Key))
		if err != nil {
			return errs.Wrap(errs.ErrCodeNetwork, err, "%s request", name)
		}
		status, body = resp.Status, resp.Body
		if isAuthError(body) {
			return errs.Wrap(errs.ErrCodeInvalidAPIKey, apiError(status, body), "%s request", name)
		}
		return nil
	})
	if err != nil && !errs.Is(err, errs.ErrCodeInvalidAPIKey) {
		return 0, nil, err
	}
	return status, body, nil
}
