package pardot

import (
	"time"
)

// Protocol versions understood by the API.
const (
	// LoginVersion is the protocol version used for login requests. The login
	// response tells us whether the account needs version 4.
	LoginVersion = 3

	// DefaultAPIVersion is assumed when no credential could be resolved.
	DefaultAPIVersion = 4
)

// DefaultBaseURL is the root of the Pardot API.
const DefaultBaseURL = "https://pi.pardot.com/api"

// Cache lifetimes per artifact.
const (
	CredentialTTL     = time.Hour
	CampaignsTTL      = 30 * 24 * time.Hour
	FormTTL           = 30 * 24 * time.Hour
	DynamicContentTTL = 30 * 24 * time.Hour
	TrackingCodeTTL   = 365 * 24 * time.Hour
)

// Credentials are the account settings required to log in.
type Credentials struct {
	Email    string
	Password string
	UserKey  string
}

// Complete reports whether all three values are present.
func (c Credentials) Complete() bool {
	return c.Email != "" && c.Password != "" && c.UserKey != ""
}

// Credential is the cached result of a successful login.
type Credential struct {
	Key       string    `json:"api_key"`
	Version   int       `json:"version"`
	FetchedAt time.Time `json:"fetched_at"`
}

// Campaign is one entry of the account's campaign list.
type Campaign struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// Source tells where a fetched value came from.
type Source int

const (
	SourceNone Source = iota
	SourceCache
	SourceRemote
)

func (s Source) String() string {
	switch s {
	case SourceCache:
		return "cache"
	case SourceRemote:
		return "remote"
	default:
		return "none"
	}
}

// Result is the outcome of a fetch.
//
// OK is false when no value is available; Value is then the zero value.
// CacheErr is non-nil when a remote value was returned but the write-through
// to the cache failed, so the next call will fetch again.
type Result[T any] struct {
	Value    T
	OK       bool
	Source   Source
	CacheErr error
}

// Get returns the value and whether it is present.
func (r Result[T]) Get() (T, bool) {
	return r.Value, r.OK
}

// Cached reports whether the value is now stored in the cache, either
// because it was read from there or because the write-through succeeded.
func (r Result[T]) Cached() bool {
	switch r.Source {
	case SourceCache:
		return true
	case SourceRemote:
		return r.CacheErr == nil
	default:
		return false
	}
}
