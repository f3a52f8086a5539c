// Package cache provides TTL-based key-value storage for cached Pardot artifacts.
//
// Every artifact the client fetches (credentials, campaign lists, form embed
// code, dynamic-content URLs, tracking-code templates) is stored as an opaque
// byte slice with a per-key time-to-live. A present, unexpired entry is
// authoritative; absence or expiry means the caller must fetch again.
//
// # Backends
//
//   - [MemoryCache]: in-process map, useful for tests and short-lived processes
//   - [FileCache]: JSON files under the user cache directory (CLI default)
//   - [RedisCache]: Redis with native key expiry, shared across instances
//   - [MongoCache]: MongoDB collection with a TTL index
//   - [NullCache]: never stores anything (caching disabled)
//
// # Keys
//
// Keys are produced by a [Keyer] so that the naming scheme lives in one
// place. Wrap a Keyer with [NewScopedKeyer] to namespace a shared store.
package cache

import (
	"context"
	"time"
)

// Cache is a key-value store with per-key expiration.
//
// Get reports a miss as (nil, false, nil). Expired entries are misses.
// Implementations must be safe for sequential use; backends that are shared
// between processes rely on the store's atomic per-key get/set.
type Cache interface {
	// Get retrieves the value for key. The bool is false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Keyer builds cache keys for every cached artifact type.
type Keyer interface {
	// CredentialKey is the key of the cached API key and protocol version.
	CredentialKey() string

	// CampaignsKey is the key of the account-wide campaign list.
	CampaignsKey() string

	// FormKey is the key of the embed code for one form.
	FormKey(id string) string

	// DynamicContentKey is the key of the embed URL for one dynamic-content item.
	DynamicContentKey(id string) string

	// TrackingCodeKey is the key of the account tracking-code template.
	TrackingCodeKey() string
}

// DefaultKeyer produces the unprefixed key scheme.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default key scheme.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

func (DefaultKeyer) CredentialKey() string { return "pardot_api_key" }
func (DefaultKeyer) CampaignsKey() string  { return "pardot_campaigns" }

func (DefaultKeyer) FormKey(id string) string {
	return "pardot_form_html_" + id
}

func (DefaultKeyer) DynamicContentKey(id string) string {
	return "pardot_dynamicContent_html_" + id
}

func (DefaultKeyer) TrackingCodeKey() string { return "pardot_tracking_code_template" }

var _ Keyer = DefaultKeyer{}
