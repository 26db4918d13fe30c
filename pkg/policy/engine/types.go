package engine

import "fmt"

// Context is an ephemeral snapshot of one connection or network event.
// It is built by the caller per decision and never retained by the engine.
//
// Empty strings and nil pointers mean "unknown": a rule that matches on an
// unknown field does not match.
type Context struct {
	// SNI is the server name from the TLS handshake, if observed.
	SNI string

	// Protocol is the transport protocol ("tcp" or "udp"), if known.
	Protocol string

	// Port is the destination port, if known.
	Port *uint16

	// LatencyMS is the measured link latency in milliseconds, if known.
	LatencyMS *uint32

	// RTTMS is the measured round-trip time in milliseconds, if known.
	RTTMS *uint32
}

// Uint16 returns a pointer to v, for building Context values inline.
func Uint16(v uint16) *uint16 { return &v }

// Uint32 returns a pointer to v, for building Context values inline.
func Uint32(v uint32) *uint32 { return &v }

// ActionKind is the resolved action variant of a decision.
type ActionKind string

const (
	// ActionRoute steers the connection onto a named outbound route.
	ActionRoute ActionKind = "route"

	// ActionSwitchRoute moves traffic onto an alternate route.
	ActionSwitchRoute ActionKind = "switch_route"

	// ActionBlock drops the connection.
	ActionBlock ActionKind = "block"

	// ActionThrottle applies a named throttle profile.
	ActionThrottle ActionKind = "throttle"

	// ActionNone is a log-only rule or a no-match outcome.
	ActionNone ActionKind = "none"
)

// Decision is the outcome of evaluating a ruleset against one context.
// It is a plain value; the engine performs no I/O and executes nothing —
// action backends and logging sinks consume this.
type Decision struct {
	// Matched reports whether any rule won. A no-match decision is a
	// legitimate outcome, not an error.
	Matched bool

	// Rule is the winning rule's name, empty on no-match.
	Rule string

	// Action is the resolved action variant.
	Action ActionKind

	// Target is the route name or throttle profile for ActionRoute,
	// ActionSwitchRoute and ActionThrottle; empty otherwise.
	Target string

	// Log reports whether the winning rule asked for the decision to be
	// recorded. Independent of Action.
	Log bool
}

// Summary renders the decision in the short form used by logs and audit
// records, e.g. "route tunnel_fast" or "block".
func (d Decision) Summary() string {
	switch d.Action {
	case ActionRoute, ActionSwitchRoute, ActionThrottle:
		return fmt.Sprintf("%s %s", d.Action, d.Target)
	case ActionBlock:
		return "block"
	default:
		if !d.Matched {
			return "no_match"
		}
		if d.Log {
			return "log"
		}
		return "none"
	}
}
