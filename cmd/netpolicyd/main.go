// Netpolicyd is a deterministic network policy decision daemon.
//
// It loads declarative routing, blocking and throttling rules, keeps them
// hot-reloaded from disk, and answers "what should happen to this
// connection" queries against the current network state:
//   - Priority and specificity based rule selection
//   - SNI wildcard, protocol, port and latency matching
//   - State-conditional rules (NORMAL, DEGRADED, FAILOVER, RECOVERY)
//   - Durable audit trail of every decision
//
// Usage:
//
//	# Start the daemon with default configuration
//	netpolicyd run
//
//	# Start with a custom configuration file
//	netpolicyd run --config /etc/netpolicy/config.yaml
//
//	# Validate rule files without starting
//	netpolicyd lint --file policies.yaml
//
//	# Show version information
//	netpolicyd version
package main

func main() {
	Execute()
}
