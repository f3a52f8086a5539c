// Package httputil provides HTTP utilities shared by the API clients.
//
// # Retry
//
// [Policy] describes a bounded retry: a total number of attempts, an initial
// delay that doubles between attempts, and a predicate deciding which
// errors trigger another attempt. The Pardot client uses it to retry a
// request exactly once after an invalid-key response:
//
//	policy := httputil.Policy{Attempts: 2, ShouldRetry: isAuthFailure}
//	err := policy.Do(ctx, func(attempt int) error {
//	    if attempt > 0 {
//	        refreshKey()
//	    }
//	    return send()
//	})
//
// [Retry] is the predicate-free form: only errors wrapped with
// [Retryable] are retried.
package httputil
