// Package metrics provides Prometheus metrics for monitoring.
//
// Key metrics:
//   - Event socket state, reconnects and keepalive pings
//   - Frames received, events decoded per kind, decode failures
//   - Handler errors and latency per event kind
//   - REST request outcomes and Asterisk liveness
package metrics
