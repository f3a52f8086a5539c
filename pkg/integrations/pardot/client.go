package pardot

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pardot/pkg/buildinfo"
	"github.com/matzehuels/pardot/pkg/cache"
	"github.com/matzehuels/pardot/pkg/integrations"
	"github.com/matzehuels/pardot/pkg/observability"
)

// Client fetches Pardot artifacts through a cache.
//
// A Client is request-scoped in spirit: it performs blocking calls, does not
// deduplicate concurrent misses, and relies on the cache backend for
// per-key atomicity. Two callers missing the same key both fetch and the
// last write wins.
type Client struct {
	creds   *CredentialManager
	cache   cache.Cache
	keyer   cache.Keyer
	http    *integrations.Client
	baseURL string
	userKey string
	logger  *log.Logger
	hooks   observability.Hooks
}

type options struct {
	baseURL string
	doer    integrations.Doer
	timeout time.Duration
	keyer   cache.Keyer
	logger  *log.Logger
	hooks   observability.Hooks
	now     func() time.Time
}

// Option configures a [Client].
type Option func(*options)

// WithBaseURL overrides [DefaultBaseURL].
func WithBaseURL(u string) Option {
	return func(o *options) { o.baseURL = u }
}

// WithHTTPClient sets the transport used for API calls.
func WithHTTPClient(d integrations.Doer) Option {
	return func(o *options) { o.doer = d }
}

// WithTimeout sets the per-request timeout of the default transport.
// It has no effect together with [WithHTTPClient].
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// WithKeyer sets the cache key scheme.
func WithKeyer(k cache.Keyer) Option {
	return func(o *options) { o.keyer = k }
}

// WithLogger sets the logger. The default is log.Default().
func WithLogger(l *log.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithHooks sets observability hooks.
func WithHooks(h observability.Hooks) Option {
	return func(o *options) { o.hooks = h }
}

// WithClock sets the time source used to stamp credentials.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// NewClient creates a Client for the given account credentials.
// A nil backend disables caching.
func NewClient(creds Credentials, backend cache.Cache, opts ...Option) *Client {
	o := options{
		baseURL: DefaultBaseURL,
		timeout: integrations.DefaultTimeout,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if backend == nil {
		backend = cache.NewNullCache()
	}
	if o.keyer == nil {
		o.keyer = cache.NewDefaultKeyer()
	}
	if o.logger == nil {
		o.logger = log.Default()
	}
	if o.now == nil {
		o.now = time.Now
	}
	if o.doer == nil {
		o.doer = integrations.NewHTTPClient(o.timeout)
	}
	hooks := o.hooks.WithDefaults()
	base := strings.TrimRight(o.baseURL, "/")
	httpClient := integrations.NewClient(o.doer, hooks.HTTP, map[string]string{
		"User-Agent": buildinfo.UserAgent(),
	})

	return &Client{
		creds: &CredentialManager{
			creds:   creds,
			cache:   backend,
			keyer:   o.keyer,
			http:    httpClient,
			baseURL: base,
			logger:  o.logger,
			hooks:   hooks,
			now:     o.now,
		},
		cache:   backend,
		keyer:   o.keyer,
		http:    httpClient,
		baseURL: base,
		userKey: creds.UserKey,
		logger:  o.logger,
		hooks:   hooks,
	}
}

// Credentials returns the client's credential manager.
func (c *Client) Credentials() *CredentialManager { return c.creds }

// Enabled reports whether the client has complete credentials.
// A disabled client never sends requests.
func (c *Client) Enabled() bool { return c.creds.Configured() }

// APIKey is shorthand for c.Credentials().APIKey.
func (c *Client) APIKey(ctx context.Context, forceRefresh bool) (string, bool) {
	return c.creds.APIKey(ctx, forceRefresh)
}

// APIVersion is shorthand for c.Credentials().APIVersion.
func (c *Client) APIVersion(ctx context.Context) int {
	return c.creds.APIVersion(ctx)
}

// Purge deletes the cached credential, campaign list and tracking-code
// template, plus the embed code of the given forms and dynamic-content items.
func (c *Client) Purge(ctx context.Context, formIDs, dynamicContentIDs []string) error {
	keys := []string{c.keyer.CredentialKey(), c.keyer.CampaignsKey(), c.keyer.TrackingCodeKey()}
	for _, id := range formIDs {
		keys = append(keys, c.keyer.FormKey(id))
	}
	for _, id := range dynamicContentIDs {
		keys = append(keys, c.keyer.DynamicContentKey(id))
	}

	var errList []error
	for _, k := range keys {
		if err := c.cache.Delete(ctx, k); err != nil {
			errList = append(errList, fmt.Errorf("delete %s: %w", k, err))
		}
	}
	return errors.Join(errList...)
}

// endpointURL builds <base>/<object>/version/<v>/do/<action>[/id/<id>].
func (c *Client) endpointURL(object string, version int, action, id string) string {
	u := fmt.Sprintf("%s/%s/version/%d/do/%s", c.baseURL, object, version, action)
	if id != "" {
		u += "/id/" + url.PathEscape(id)
	}
	return u
}

func (c *Client) form(apiKey string) url.Values {
	return url.Values{
		"user_key": {c.userKey},
		"api_key":  {apiKey},
		"format":   {"json"},
	}
}
