// Package pardot provides a caching client for the Pardot marketing API.
//
// # Overview
//
// The client fetches four artifacts used to embed Pardot content in a site:
//
//   - [Client.Campaigns]: the account's campaigns, for campaign pickers
//   - [Client.FormEmbedCode]: the iframe embed code of a form
//   - [Client.DynamicContentURL]: the embed URL of a dynamic-content item
//   - [Client.TrackingCodeTemplate]: the account's tracking-code script template
//
// Every artifact is read from a [cache.Cache] first. A hit returns
// immediately without touching the network or the credentials. On a miss
// the client logs in if needed, calls the API and writes the result back
// with the artifact's TTL. Failed or empty fetches are never cached, so the
// next call tries again.
//
// # Credentials
//
// [CredentialManager] owns the API key. It logs in with the account email,
// password and user key, and caches the returned key together with the
// protocol version (3 or 4) for one hour. If any of the three settings is
// missing the client is disabled: every fetch reports absence and no
// request is sent.
//
// When the API answers with "Invalid API key or user key", the client forces
// a fresh login and repeats the request exactly once.
//
// # Errors
//
// Fetch methods never return errors. They return a [Result] whose OK field
// reports whether a value is present. Transport failures, login failures and
// responses without the expected fields are logged and reported as absence.
// [Result.CacheErr] is set when a value was fetched but could not be stored.
//
// [cache.Cache]: github.com/matzehuels/pardot/pkg/cache.Cache
package pardot
