package engine

import "zerox/netpolicy/pkg/state"

// Decide evaluates every rule and selects the single winner:
//
//  1. priority descending
//  2. specificity descending (count of concrete match fields; any ⇒ 0)
//  3. declaration order ascending
//
// It is deterministic and pure: the same (ruleset, state, context) always
// yields the identical Decision. When no rule matches, the returned
// Decision has Matched=false and ActionNone — the engine never synthesizes
// a fallback; callers wanting one declare a low-priority any:true rule.
func Decide(rs *RuleSet, st state.State, ctx *Context) Decision {
	if rs == nil {
		return Decision{Action: ActionNone}
	}

	var best *Rule
	for _, rule := range rs.rules {
		if !Evaluate(rule, ctx, st) {
			continue
		}
		if best == nil || beats(rule, best) {
			best = rule
		}
	}

	if best == nil {
		return Decision{Action: ActionNone}
	}
	return best.decision()
}

// beats reports whether a ranks strictly ahead of b. Rules are visited in
// declaration order, so keeping the incumbent on a full tie implements the
// earliest-declared tie-break.
func beats(a, b *Rule) bool {
	if a.Priority != b.Priority {
		return a.Priority > b.Priority
	}
	return a.specificity > b.specificity
}
