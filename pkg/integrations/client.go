package integrations

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/matzehuels/pardot/pkg/observability"
)

// maxBodySize caps how much of a response body is read.
const maxBodySize = 4 << 20

// Client provides shared HTTP functionality for remote API clients.
// It applies default headers, reports events to HTTP hooks and maps
// transport failures to [ErrNetwork].
type Client struct {
	http    Doer
	headers map[string]string
	hooks   observability.HTTPHooks
}

// NewClient creates a Client that sends requests through doer.
// A nil doer uses [NewHTTPClient] with the default timeout; nil hooks are no-ops.
// Headers are applied to all requests made through this client.
func NewClient(doer Doer, hooks observability.HTTPHooks, headers map[string]string) *Client {
	if doer == nil {
		doer = NewHTTPClient(DefaultTimeout)
	}
	if hooks == nil {
		hooks = observability.NoopHTTPHooks{}
	}
	return &Client{
		http:    doer,
		headers: headers,
		hooks:   hooks,
	}
}

// Response is a fully read HTTP response.
type Response struct {
	Status int
	Body   []byte
}

// PostForm sends form as an application/x-www-form-urlencoded POST to rawURL
// and returns the status and body.
//
// Transport failures and 5xx responses return an error wrapping [ErrNetwork].
// Other statuses are returned to the caller, because APIs such as Pardot
// report their own errors inside the body.
func (c *Client) PostForm(ctx context.Context, rawURL string, form url.Values) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rawURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	host, path := req.URL.Host, req.URL.Path
	c.hooks.OnRequest(ctx, req.Method, host, path)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		err = fmt.Errorf("%w: %v", ErrNetwork, err)
		c.hooks.OnError(ctx, req.Method, host, path, err)
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		err = fmt.Errorf("%w: read body: %v", ErrNetwork, err)
		c.hooks.OnError(ctx, req.Method, host, path, err)
		return nil, err
	}
	c.hooks.OnResponse(ctx, req.Method, host, path, resp.StatusCode, time.Since(start))

	if err := checkStatus(resp.StatusCode); err != nil {
		return nil, err
	}
	return &Response{Status: resp.StatusCode, Body: body}, nil
}

func checkStatus(code int) error {
	switch {
	case code >= 500:
		return fmt.Errorf("%w: status %d", ErrNetwork, code)
	case code == http.StatusNotFound:
		return ErrNotFound
	default:
		return nil
	}
}
