// Package metrics exposes Prometheus metrics for the decision engine:
// decision counts and latencies per rule, reload outcomes, and the
// currently active network state.
package metrics
