package pardot

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pardot/pkg/cache"
	errs "github.com/matzehuels/pardot/pkg/errors"
	"github.com/matzehuels/pardot/pkg/integrations"
	"github.com/matzehuels/pardot/pkg/observability"
)

// CredentialManager obtains and refreshes the API key and protocol version.
//
// The credential lives only in the cache under the keyer's credential key,
// with a one hour TTL. The manager itself holds no mutable state.
type CredentialManager struct {
	creds   Credentials
	cache   cache.Cache
	keyer   cache.Keyer
	http    *integrations.Client
	baseURL string
	logger  *log.Logger
	hooks   observability.Hooks
	now     func() time.Time
}

// Configured reports whether email, password and user key are all set.
func (m *CredentialManager) Configured() bool {
	return m.creds.Complete()
}

// APIKey returns the current API key.
//
// Without complete credentials it returns ("", false) and sends nothing.
// Unless forceRefresh is set, an unexpired cached key is returned directly.
// Otherwise it logs in; a failed login is logged and reported as absence,
// so callers should simply try again later.
func (m *CredentialManager) APIKey(ctx context.Context, forceRefresh bool) (string, bool) {
	cred, ok := m.credential(ctx, forceRefresh)
	if !ok {
		return "", false
	}
	return cred.Key, true
}

// APIVersion returns the protocol version of the account.
//
// The cached credential's version is used when present. Otherwise the
// version comes from a fresh login, which also works when the cache cannot
// hold the credential. If no login succeeds, [DefaultAPIVersion] is returned.
func (m *CredentialManager) APIVersion(ctx context.Context) int {
	if cred, ok := m.credential(ctx, false); ok {
		return versionOf(cred)
	}
	return DefaultAPIVersion
}

// credential returns the cached credential or, when missing or forced,
// the one obtained from a new login.
func (m *CredentialManager) credential(ctx context.Context, forceRefresh bool) (*Credential, bool) {
	m.hooks.Auth.OnKeyRequest(ctx, forceRefresh)
	if !m.Configured() {
		return nil, false
	}
	if !forceRefresh {
		if cred, ok := m.Cached(ctx); ok {
			return cred, true
		}
	}

	cred, err := m.Login(ctx)
	if err != nil {
		m.logger.Warn("pardot login failed", "err", err)
		return nil, false
	}
	return cred, true
}

func versionOf(cred *Credential) int {
	if cred.Version > 0 {
		return cred.Version
	}
	return DefaultAPIVersion
}

// Cached returns the cached credential, if any. Read errors count as a miss.
func (m *CredentialManager) Cached(ctx context.Context) (*Credential, bool) {
	data, ok, err := m.cache.Get(ctx, m.keyer.CredentialKey())
	if err != nil {
		m.logger.Debug("credential cache read failed", "err", err)
		return nil, false
	}
	if !ok {
		return nil, false
	}
	var cred Credential
	if err := json.Unmarshal(data, &cred); err != nil || cred.Key == "" {
		return nil, false
	}
	return &cred, true
}

// Login authenticates against the API, stores the credential in the cache
// and returns it. Unlike [CredentialManager.APIKey] it reports why a login
// failed. A credential is returned even when the cache write fails.
func (m *CredentialManager) Login(ctx context.Context) (*Credential, error) {
	if !m.Configured() {
		return nil, errs.New(errs.ErrCodeConfigMissing, "email, password and user key are required")
	}

	start := time.Now()
	cred, err := m.login(ctx)
	if err != nil {
		m.hooks.Auth.OnLogin(ctx, 0, time.Since(start), err)
		return nil, err
	}
	m.hooks.Auth.OnLogin(ctx, cred.Version, time.Since(start), nil)
	m.logger.Info("pardot login", "version", cred.Version)

	data, err := json.Marshal(cred)
	if err == nil {
		err = m.cache.Set(ctx, m.keyer.CredentialKey(), data, CredentialTTL)
	}
	m.hooks.Cache.OnCacheSet(ctx, resourceCredential, len(data), err)
	if err != nil {
		m.logger.Warn("could not cache pardot credential", "err", err)
	}
	return cred, nil
}

func (m *CredentialManager) login(ctx context.Context) (*Credential, error) {
	form := url.Values{
		"email":    {m.creds.Email},
		"password": {m.creds.Password},
		"user_key": {m.creds.UserKey},
		"format":   {"json"},
	}
	endpoint := fmt.Sprintf("%s/login/version/%d", m.baseURL, LoginVersion)

	resp, err := m.http.PostForm(ctx, endpoint, form)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeNetwork, err, "login request")
	}

	var body loginResponse
	if err := json.Unmarshal(resp.Body, &body); err != nil {
		return nil, errs.Wrap(errs.ErrCodeMalformedResponse, err, "decode login response")
	}
	if body.Err != "" {
		return nil, errs.Wrap(errs.ErrCodeLoginFailed, &errs.APIError{Status: resp.Status, Message: body.Err}, "login rejected")
	}
	if body.APIKey == "" {
		return nil, errs.New(errs.ErrCodeMalformedResponse, "login response has no api_key")
	}

	version := int(body.Version)
	if version == 0 {
		version = LoginVersion
	}
	return &Credential{Key: body.APIKey, Version: version, FetchedAt: m.now()}, nil
}
