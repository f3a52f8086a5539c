// Package integrations provides the HTTP plumbing shared by remote API clients.
//
// # Overview
//
// The [Client] type sends form-encoded POST requests, applies default
// headers, reads bodies with a size cap and reports every request to
// [observability.HTTPHooks]. Transport failures (connection errors,
// timeouts, 5xx responses) wrap [ErrNetwork]; a 404 returns [ErrNotFound].
// Any other status is handed back to the caller together with the body,
// since the APIs we talk to describe failures in the body itself.
//
// The API client for Pardot lives in the [pardot] subpackage.
//
// [pardot]: github.com/matzehuels/pardot/pkg/integrations/pardot
// [observability.HTTPHooks]: github.com/matzehuels/pardot/pkg/observability.HTTPHooks
package integrations
