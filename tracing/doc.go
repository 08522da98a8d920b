// Package tracing is a thin wrapper around OpenTelemetry so that service
// packages can start and end spans without depending on the underlying SDK
// wiring. Initialisation is optional - without it spans are no-ops.
package tracing
