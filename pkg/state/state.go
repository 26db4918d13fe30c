package state

import (
	"fmt"
	"strings"
)

// State is the engine's current operating mode.
type State string

const (
	// Normal is the healthy steady state and the initial state.
	Normal State = "NORMAL"

	// Degraded indicates the primary link is impaired but usable.
	Degraded State = "DEGRADED"

	// Failover indicates traffic should prefer backup routes.
	Failover State = "FAILOVER"

	// Recovery indicates the primary link is being re-validated.
	Recovery State = "RECOVERY"
)

// All lists every valid state.
func All() []State {
	return []State{Normal, Degraded, Failover, Recovery}
}

// Parse converts a state name from rule text into a State. Names are
// case-insensitive and surrounding whitespace is ignored.
func Parse(value string) (State, error) {
	normalized := State(strings.ToUpper(strings.TrimSpace(value)))
	switch normalized {
	case Normal, Degraded, Failover, Recovery:
		return normalized, nil
	default:
		return "", fmt.Errorf("invalid state value: %q", value)
	}
}

// Valid reports whether s is one of the four defined states.
func (s State) Valid() bool {
	switch s {
	case Normal, Degraded, Failover, Recovery:
		return true
	default:
		return false
	}
}

// String returns the canonical upper-case name.
func (s State) String() string {
	return string(s)
}
