// Package scorer converts a proposed agent action into a bounded,
// explainable risk assessment. Scoring is a weighted aggregation over an
// ordered list of independent factors - deterministic keyword and context
// heuristics that can be replaced without touching the aggregation or
// persistence logic. Per-identity policy profiles adjust the aggregate in a
// fixed order: category overrides scale it, the blocklist forces it to 1.0,
// the allowlist caps it at the identity's auto-approve threshold, and the
// final value is clamped to [0,1] last.
package scorer
