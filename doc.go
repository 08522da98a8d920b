// Package riskgate is the authorization core of an autonomous-agent
// platform. Before an agent-initiated action runs, it is scored for risk
// against the identity's policy profile; above the identity's threshold it
// is held as a durable, time-bounded approval request until a responder
// decides or the request expires.
//
// The core is assembled from pluggable service layers:
//
//   - profile     – per-identity thresholds, category overrides, allow/block lists
//   - scorer      – weighted heuristic factors producing bounded, explainable assessments
//   - approval    – request lifecycle, expiry sweep and blocking wait
//   - autoapprove – declarative rules that skip manual approval for pre-authorized classes
//   - learning    – realized-outcome feedback for offline recalibration
//
// Riskgate is designed to be embedded in a host orchestration engine.
// End-users typically interact via the high-level Service façade exposed by
// this package:
//
//	gate := riskgate.New()
//	gate.Start(ctx)
//	defer gate.Shutdown()
//	decision, err := gate.Gate(ctx, &risk.Input{IdentityID: "agent-1", ActionType: "delete_database"})
//
// For more details see the individual sub-packages.
package riskgate
