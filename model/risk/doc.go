// Package risk defines the immutable data model shared by the scoring,
// approval and learning services: assessment inputs, per-factor score
// breakdowns, derived risk levels and categories, and realized outcome
// records. Values in this package are plain data - all behaviour lives in
// the service packages.
package risk
