package engine

import (
	"strings"

	"zerox/netpolicy/pkg/state"
)

// Evaluate reports whether a single rule matches the given context under the
// given operating state. It is pure and side-effect-free.
//
// Order of evaluation: state gating first (disable, then when), then the
// any short-circuit, then an AND over every present match field. A match
// field whose corresponding context value is unknown fails the rule.
func Evaluate(rule *Rule, ctx *Context, st state.State) bool {
	if rule == nil {
		return false
	}
	if ctx == nil {
		ctx = &Context{}
	}

	if rule.disable != nil && rule.disable.has(st) {
		return false
	}
	if rule.when != nil && !rule.when.has(st) {
		return false
	}

	if rule.any {
		return true
	}

	if rule.sni != nil && !rule.sni.matches(ctx.SNI) {
		return false
	}

	if rule.protocol != "" {
		if ctx.Protocol == "" || !strings.EqualFold(rule.protocol, ctx.Protocol) {
			return false
		}
	}

	if rule.ports != nil {
		if ctx.Port == nil || !rule.ports.contains(*ctx.Port) {
			return false
		}
	}

	if rule.latency != nil {
		if ctx.LatencyMS == nil || !rule.latency.matches(*ctx.LatencyMS) {
			return false
		}
	}

	if rule.rtt != nil {
		if ctx.RTTMS == nil || !rule.rtt.matches(*ctx.RTTMS) {
			return false
		}
	}

	return true
}
