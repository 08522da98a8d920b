// Package approval implements the human-in-the-loop approval layer. A risk
// assessment that requires sign-off becomes a durable, time-bounded request
// with a small state machine: pending, then exactly one of approved,
// rejected or expired. Terminal states are final - a second resolution
// attempt fails with AlreadyResolvedError rather than overwriting. Callers
// block on WaitForResolution until the request resolves or their own
// timeout elapses; a periodic sweep expires stale pending requests.
package approval
