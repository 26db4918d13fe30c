// Package engine is the deterministic policy decision core.
//
// Load turns declarative rule text into an immutable, fully pre-parsed
// RuleSet, or rejects it with the complete batch of violations. Decide is a
// pure function over (ruleset, state, context): it evaluates every rule,
// picks the single winner by priority, specificity and declaration order,
// and resolves its action into a Decision. Given a loaded RuleSet, Decide
// cannot fail — every field that could fail to parse already parsed at load
// time.
//
// The Engine type wraps Decide with the runtime concerns of a live daemon:
// an atomically swappable active ruleset, a state holder, and observers for
// metrics and audit.
package engine
