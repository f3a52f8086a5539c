package pardot

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/pardot/pkg/cache"
	"github.com/matzehuels/pardot/pkg/observability"
)

var testCreds = Credentials{Email: "ops@example.com", Password: "secret", UserKey: "uk-1"}

// fakeAPI serves canned Pardot responses and records every request.
type fakeAPI struct {
	mu       sync.Mutex
	handlers map[string]func(form map[string]string) (int, string)
	calls    []string
	forms    []map[string]string
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{handlers: map[string]func(map[string]string) (int, string){}}
}

func (f *fakeAPI) handle(path string, h func(form map[string]string) (int, string)) {
	f.handlers[path] = h
}

func (f *fakeAPI) reply(path, body string) {
	f.handle(path, func(map[string]string) (int, string) { return http.StatusOK, body })
}

func (f *fakeAPI) count(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == path {
			n++
		}
	}
	return n
}

func (f *fakeAPI) total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	_ = r.ParseForm()
	form := map[string]string{}
	for k := range r.PostForm {
		form[k] = r.PostForm.Get(k)
	}

	f.mu.Lock()
	f.calls = append(f.calls, r.URL.Path)
	f.forms = append(f.forms, form)
	h, ok := f.handlers[r.URL.Path]
	f.mu.Unlock()

	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	status, body := h(form)
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

// authHooks counts auth events.
type authHooks struct {
	observability.NoopAuthHooks
	mu      sync.Mutex
	forced  int
	logins  int
	retries int
}

func (h *authHooks) OnKeyRequest(_ context.Context, force bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if force {
		h.forced++
	}
}

func (h *authHooks) OnLogin(context.Context, int, time.Duration, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.logins++
}

func (h *authHooks) OnAuthRetry(context.Context, string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.retries++
}

type setup struct {
	api   *fakeAPI
	cache *cache.MemoryCache
	auth  *authHooks
	now   time.Time
	c     *Client
}

func newSetup(t *testing.T, creds Credentials) *setup {
	t.Helper()
	s := &setup{
		api:  newFakeAPI(),
		auth: &authHooks{},
		now:  time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	s.cache = cache.NewMemoryCacheWithClock(func() time.Time { return s.now })
	srv := httptest.NewServer(s.api)
	t.Cleanup(srv.Close)

	s.c = NewClient(creds, s.cache,
		WithBaseURL(srv.URL+"/api/"),
		WithHTTPClient(srv.Client()),
		WithLogger(log.New(io.Discard)),
		WithHooks(observability.Hooks{Auth: s.auth}),
		WithClock(func() time.Time { return s.now }),
	)
	return s
}

func (s *setup) login(version int) {
	s.api.handle("/api/login/version/3", func(map[string]string) (int, string) {
		return http.StatusOK, `{"api_key":"key-1","version":` + itoa(version) + `}`
	})
}

func itoa(n int) string {
	b, _ := json.Marshal(n)
	return string(b)
}

func TestCampaigns(t *testing.T) {
	s := newSetup(t, testCreds)
	s.login(3)
	s.api.reply("/api/campaign/version/3/do/query",
		`{"result":{"total_results":2,"campaign":[{"id":1,"name":"A"},{"id":2,"name":"B"}]}}`)

	res := s.c.Campaigns(context.Background())

	require.True(t, res.OK)
	assert.Equal(t, SourceRemote, res.Source)
	assert.Equal(t, []Campaign{{ID: "1", Name: "A"}, {ID: "2", Name: "B"}}, res.Value)
	assert.NoError(t, res.CacheErr)
	assert.True(t, res.Cached())

	data, ok, err := s.cache.Get(context.Background(), "pardot_campaigns")
	require.NoError(t, err)
	require.True(t, ok)
	var stored []Campaign
	require.NoError(t, json.Unmarshal(data, &stored))
	assert.Equal(t, res.Value, stored)

	// the request carries user key, api key and json format
	last := s.api.forms[len(s.api.forms)-1]
	assert.Equal(t, "uk-1", last["user_key"])
	assert.Equal(t, "key-1", last["api_key"])
	assert.Equal(t, "json", last["format"])
}

func TestCampaignsSingleObjectAndDuplicates(t *testing.T) {
	s := newSetup(t, testCreds)
	s.login(3)
	s.api.reply("/api/campaign/version/3/do/query",
		`{"result":{"campaign":{"id":"7","name":"Only"}}}`)

	res := s.c.Campaigns(context.Background())
	require.True(t, res.OK)
	assert.Equal(t, []Campaign{{ID: "7", Name: "Only"}}, res.Value)

	got, err := extractCampaigns(200, []byte(`{"result":{"campaign":[{"id":2,"name":"x"},{"id":1},{"id":2,"name":"y"}]}}`))
	require.NoError(t, err)
	assert.Equal(t, []Campaign{{ID: "2", Name: "x"}, {ID: "1"}}, got)
}

func TestCacheHitSkipsNetworkAndCredentials(t *testing.T) {
	s := newSetup(t, Credentials{}) // disabled: only the cache can answer
	ctx := context.Background()
	require.NoError(t, s.cache.Set(ctx, "pardot_form_html_42", []byte(`"<iframe></iframe>"`), FormTTL))

	res := s.c.FormEmbedCode(ctx, "42")

	require.True(t, res.OK)
	assert.Equal(t, "<iframe></iframe>", res.Value)
	assert.Equal(t, SourceCache, res.Source)
	assert.Zero(t, s.api.total())
	assert.Zero(t, s.auth.logins)
}

func TestDisabledWithoutCredentials(t *testing.T) {
	for _, creds := range []Credentials{
		{},
		{Email: "a", Password: "b"},
		{Email: "a", UserKey: "c"},
		{Password: "b", UserKey: "c"},
	} {
		s := newSetup(t, creds)
		ctx := context.Background()

		assert.False(t, s.c.Enabled())
		assert.False(t, s.c.Campaigns(ctx).OK)
		assert.False(t, s.c.FormEmbedCode(ctx, "1").OK)
		assert.False(t, s.c.DynamicContentURL(ctx, "1").OK)
		assert.False(t, s.c.TrackingCodeTemplate(ctx).OK)
		key, ok := s.c.APIKey(ctx, true)
		assert.False(t, ok)
		assert.Empty(t, key)
		assert.Equal(t, DefaultAPIVersion, s.c.APIVersion(ctx))
		assert.Zero(t, s.api.total())
	}
}

func TestEmptyIDIsAbsent(t *testing.T) {
	s := newSetup(t, testCreds)
	s.login(3)
	ctx := context.Background()

	assert.False(t, s.c.FormEmbedCode(ctx, "").OK)
	assert.False(t, s.c.DynamicContentURL(ctx, "").OK)
	assert.False(t, s.c.FormEmbedCode(ctx, "../x").OK)
	assert.Zero(t, s.api.total())
}

func TestAuthRetry(t *testing.T) {
	s := newSetup(t, testCreds)
	ctx := context.Background()

	logins := 0
	s.api.handle("/api/login/version/3", func(map[string]string) (int, string) {
		logins++
		return http.StatusOK, `{"api_key":"key-` + itoa(logins) + `","version":3}`
	})
	s.api.handle("/api/form/version/3/do/read/id/42", func(form map[string]string) (int, string) {
		if form["api_key"] != "key-2" {
			return http.StatusOK, `{"@attributes":{"stat":"fail","err_code":1},"err":"Invalid API key or user key"}`
		}
		return http.StatusOK, `{"form":{"id":42,"embedCode":"<iframe src=\"https://go.pardot.com/f\"></iframe>"}}`
	})

	res := s.c.FormEmbedCode(ctx, "42")

	require.True(t, res.OK)
	assert.Equal(t, `<iframe src="https://go.pardot.com/f"></iframe>`, res.Value)
	assert.Equal(t, 2, s.api.count("/api/form/version/3/do/read/id/42"))
	assert.Equal(t, 1, s.auth.forced)
	assert.Equal(t, 1, s.auth.retries)
	assert.Equal(t, 2, logins)

	cred, ok := s.c.Credentials().Cached(ctx)
	require.True(t, ok)
	assert.Equal(t, "key-2", cred.Key)
}

func TestAuthRetryHappensOnlyOnce(t *testing.T) {
	s := newSetup(t, testCreds)
	s.login(3)
	s.api.reply("/api/dynamicContent/version/3/do/read/id/9", `{"err":"Invalid API key or user key"}`)

	res := s.c.DynamicContentURL(context.Background(), "9")

	assert.False(t, res.OK)
	assert.Equal(t, 2, s.api.count("/api/dynamicContent/version/3/do/read/id/9"))
	assert.Equal(t, 1, s.auth.forced)
	_, ok, _ := s.cache.Get(context.Background(), "pardot_dynamicContent_html_9")
	assert.False(t, ok)
}

func TestOtherAPIErrorsAreNotRetried(t *testing.T) {
	s := newSetup(t, testCreds)
	s.login(3)
	s.api.reply("/api/form/version/3/do/read/id/5", `{"err":"Invalid ID"}`)

	res := s.c.FormEmbedCode(context.Background(), "5")

	assert.False(t, res.OK)
	assert.Equal(t, 1, s.api.count("/api/form/version/3/do/read/id/5"))
	assert.Zero(t, s.auth.forced)
}

func TestNetworkFailureIsNotCached(t *testing.T) {
	s := newSetup(t, testCreds)
	s.login(3)
	s.api.handle("/api/account/version/3/do/read/", func(map[string]string) (int, string) {
		return http.StatusBadGateway, "upstream down"
	})

	res := s.c.TrackingCodeTemplate(context.Background())

	assert.False(t, res.OK)
	assert.Equal(t, SourceNone, res.Source)
	assert.False(t, res.Cached())
	_, ok, _ := s.cache.Get(context.Background(), "pardot_tracking_code_template")
	assert.False(t, ok)
}

func TestMissingFieldIsNotCached(t *testing.T) {
	s := newSetup(t, testCreds)
	s.login(3)
	s.api.reply("/api/dynamicContent/version/3/do/read/id/3", `{"dynamicContent":{"id":3}}`)
	s.api.reply("/api/campaign/version/3/do/query", `{"result":{"total_results":0}}`)
	ctx := context.Background()

	assert.False(t, s.c.DynamicContentURL(ctx, "3").OK)
	assert.False(t, s.c.Campaigns(ctx).OK)
	_, ok, _ := s.cache.Get(ctx, "pardot_dynamicContent_html_3")
	assert.False(t, ok)
	_, ok, _ = s.cache.Get(ctx, "pardot_campaigns")
	assert.False(t, ok)
}

func TestFetchThenCacheHit(t *testing.T) {
	s := newSetup(t, testCreds)
	s.login(3)
	s.api.reply("/api/account/version/3/do/read/",
		`{"account":{"tracking_code_template":"<script>piCId = '%%CAMPAIGN_ID%%';</script>"}}`)
	ctx := context.Background()

	first := s.c.TrackingCodeTemplate(ctx)
	second := s.c.TrackingCodeTemplate(ctx)

	require.True(t, first.OK)
	require.True(t, second.OK)
	assert.Equal(t, first.Value, second.Value)
	assert.Equal(t, SourceRemote, first.Source)
	assert.Equal(t, SourceCache, second.Source)
	assert.Equal(t, 1, s.api.count("/api/account/version/3/do/read/"))
}

func TestTTLExpiry(t *testing.T) {
	s := newSetup(t, testCreds)
	s.login(3)
	s.api.reply("/api/dynamicContent/version/3/do/read/id/8", `{"dynamicContent":{"embedUrl":"https://go.pardot.com/dc/8"}}`)
	ctx := context.Background()

	require.True(t, s.c.DynamicContentURL(ctx, "8").OK)
	s.now = s.now.Add(DynamicContentTTL - time.Minute)
	require.Equal(t, SourceCache, s.c.DynamicContentURL(ctx, "8").Source)
	assert.Equal(t, 1, s.api.count("/api/dynamicContent/version/3/do/read/id/8"))

	s.now = s.now.Add(2 * time.Minute)
	res := s.c.DynamicContentURL(ctx, "8")
	require.True(t, res.OK)
	assert.Equal(t, SourceRemote, res.Source)
	assert.Equal(t, 2, s.api.count("/api/dynamicContent/version/3/do/read/id/8"))
}

func TestCredentialCachedForAnHour(t *testing.T) {
	s := newSetup(t, testCreds)
	s.login(4)
	ctx := context.Background()

	key, ok := s.c.APIKey(ctx, false)
	require.True(t, ok)
	assert.Equal(t, "key-1", key)
	assert.Equal(t, 4, s.c.APIVersion(ctx))

	_, _ = s.c.APIKey(ctx, false)
	assert.Equal(t, 1, s.api.count("/api/login/version/3"))

	s.now = s.now.Add(CredentialTTL)
	_, _ = s.c.APIKey(ctx, false)
	assert.Equal(t, 2, s.api.count("/api/login/version/3"))

	_, _ = s.c.APIKey(ctx, true)
	assert.Equal(t, 3, s.api.count("/api/login/version/3"))
}

func TestVersionFourAccount(t *testing.T) {
	s := newSetup(t, testCreds)
	s.api.reply("/api/login/version/3", `{"api_key":"key-1","version":"4"}`)
	s.api.reply("/api/form/version/4/do/read/id/1", `{"form":{"embedCode":"<iframe></iframe>"}}`)
	s.api.reply("/api/campaign/version/4/do/query", `{"result":{"campaign":[{"id":10,"name":"X"}]}}`)
	ctx := context.Background()

	require.True(t, s.c.FormEmbedCode(ctx, "1").OK)
	require.True(t, s.c.Campaigns(ctx).OK)

	assert.Equal(t, 1, s.api.count("/api/login/version/3"))
	assert.Equal(t, 1, s.api.count("/api/form/version/4/do/read/id/1"))
	assert.Equal(t, 1, s.api.count("/api/campaign/version/4/do/query"))
}

func TestLoginFailures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"rejected", http.StatusOK, `{"err":"Invalid email or password"}`},
		{"no key", http.StatusOK, `{"version":3}`},
		{"not json", http.StatusOK, `<html>`},
		{"server error", http.StatusInternalServerError, ``},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSetup(t, testCreds)
			s.api.handle("/api/login/version/3", func(map[string]string) (int, string) {
				return tt.status, tt.body
			})
			ctx := context.Background()

			_, ok := s.c.APIKey(ctx, false)
			assert.False(t, ok)
			_, ok, _ = s.cache.Get(ctx, "pardot_api_key")
			assert.False(t, ok)

			// nothing is requested with an empty key
			assert.False(t, s.c.Campaigns(ctx).OK)
			assert.Zero(t, s.api.count("/api/campaign/version/4/do/query"))
		})
	}
}

func TestLoginDefaultsVersion(t *testing.T) {
	s := newSetup(t, testCreds)
	s.api.reply("/api/login/version/3", `{"api_key":"k"}`)

	cred, err := s.c.Credentials().Login(context.Background())
	require.NoError(t, err)
	assert.Equal(t, LoginVersion, cred.Version)
	assert.Equal(t, s.now, cred.FetchedAt)
}

// failingCache stores nothing and fails every write.
type failingCache struct{ cache.Cache }

func (failingCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }
func (failingCache) Set(context.Context, string, []byte, time.Duration) error {
	return errors.New("disk full")
}

func TestCacheWriteFailure(t *testing.T) {
	api := newFakeAPI()
	api.reply("/api/login/version/3", `{"api_key":"k","version":3}`)
	api.reply("/api/form/version/3/do/read/id/1", `{"form":{"embedCode":"<iframe></iframe>"}}`)
	srv := httptest.NewServer(api)
	defer srv.Close()

	c := NewClient(testCreds, failingCache{},
		WithBaseURL(srv.URL+"/api"),
		WithLogger(log.New(io.Discard)),
	)
	res := c.FormEmbedCode(context.Background(), "1")

	require.True(t, res.OK)
	assert.Equal(t, SourceRemote, res.Source)
	assert.Error(t, res.CacheErr)
	assert.False(t, res.Cached())
	assert.Equal(t, 1, api.count("/api/form/version/3/do/read/id/1"))
	assert.Equal(t, 1, api.count("/api/login/version/3"))
}

func TestWithoutCacheUsesLoginVersion(t *testing.T) {
	api := newFakeAPI()
	api.reply("/api/login/version/3", `{"api_key":"k","version":3}`)
	api.reply("/api/campaign/version/3/do/query", `{"result":{"campaign":[{"id":5,"name":"Spring"}]}}`)
	srv := httptest.NewServer(api)
	defer srv.Close()

	c := NewClient(testCreds, cache.NewNullCache(),
		WithBaseURL(srv.URL+"/api"),
		WithLogger(log.New(io.Discard)),
	)
	ctx := context.Background()
	res := c.Campaigns(ctx)

	require.True(t, res.OK)
	assert.Equal(t, []Campaign{{ID: "5", Name: "Spring"}}, res.Value)
	assert.Equal(t, 1, api.count("/api/login/version/3"))
	assert.Equal(t, 1, api.count("/api/campaign/version/3/do/query"))
	assert.Equal(t, 2, api.total())

	assert.Equal(t, 3, c.APIVersion(ctx))
}

func TestPurge(t *testing.T) {
	s := newSetup(t, testCreds)
	ctx := context.Background()
	for _, k := range []string{
		"pardot_api_key", "pardot_campaigns", "pardot_tracking_code_template",
		"pardot_form_html_1", "pardot_dynamicContent_html_2", "unrelated",
	} {
		require.NoError(t, s.cache.Set(ctx, k, []byte(`"x"`), time.Hour))
	}

	require.NoError(t, s.c.Purge(ctx, []string{"1"}, []string{"2"}))
	assert.Equal(t, 1, s.cache.Len())
}

func TestEndpointURL(t *testing.T) {
	c := NewClient(testCreds, nil, WithBaseURL("https://pi.pardot.com/api/"))

	assert.Equal(t, "https://pi.pardot.com/api/campaign/version/4/do/query",
		c.endpointURL("campaign", 4, "query", ""))
	assert.Equal(t, "https://pi.pardot.com/api/form/version/3/do/read/id/12",
		c.endpointURL("form", 3, "read", "12"))
}

func TestScopedKeyer(t *testing.T) {
	s := newSetup(t, testCreds)
	s.c = NewClient(testCreds, s.cache, WithKeyer(cache.NewScopedKeyer(nil, "site-a:")),
		WithLogger(log.New(io.Discard)))
	ctx := context.Background()
	require.NoError(t, s.cache.Set(ctx, "site-a:pardot_form_html_1", []byte(`"<iframe></iframe>"`), time.Hour))

	res := s.c.FormEmbedCode(ctx, "1")
	assert.True(t, res.OK)
	assert.Equal(t, "<iframe></iframe>", res.Value)
}
