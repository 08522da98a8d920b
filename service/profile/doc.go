// Package profile implements the per-identity policy profile store. A
// profile governs how the scorer adjusts and thresholds an identity's risk:
// tolerance, auto-approve/require-approval cutoffs, per-category overrides
// and explicit allow/block lists. Profiles are created lazily on first
// write and are read-only to the scorer.
package profile
