// Package monitoring provides Prometheus metrics for the binary manager.
//
// Metrics cover the three lifecycle operations (scan, garbage collection,
// entry creation) plus the response channel, and an HTTP middleware records
// request counts and latency for the API surface.
package monitoring
