// Package poller implements the liveness poller.
//
// The poller:
//   - Calls GET /asterisk/ping on a fixed interval, and once at start
//   - Records the outcome and round-trip latency of the latest check
//   - Feeds the asterisk_up gauge and the /healthz endpoint
package poller
