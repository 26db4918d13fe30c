// Package state models the engine's operating state.
//
// The decision engine never infers state from traffic. An external
// classifier observes link telemetry and drives the Holder through
// SetState; every Decide call reads the current state from the Holder.
// Transitions are free: any state is reachable from any state.
package state
