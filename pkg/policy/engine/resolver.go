package engine

import "zerox/netpolicy/pkg/policy/ast"

// resolveAction maps a raw action spec onto its tagged variant. The
// validator guarantees at most one primary field is set, so no runtime
// disambiguation is needed; the precedence order below only matters for
// rulesets that bypassed validation.
//
// A spec with no primary field resolves to ActionNone — log-only rules are
// legal and the log flag travels independently of the variant.
func resolveAction(a *ast.ActionSpec) (kind ActionKind, target string, log bool) {
	if a == nil {
		return ActionNone, "", false
	}

	switch {
	case a.Route != "":
		return ActionRoute, a.Route, a.Log
	case a.SwitchRoute != "":
		return ActionSwitchRoute, a.SwitchRoute, a.Log
	case a.Block:
		return ActionBlock, "", a.Log
	case a.Throttle != "":
		return ActionThrottle, a.Throttle, a.Log
	default:
		return ActionNone, "", a.Log
	}
}
