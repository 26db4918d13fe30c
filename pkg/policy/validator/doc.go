// Package validator checks a parsed ruleset against the schema invariants.
//
// Validation is batched: every violation across every rule is collected and
// returned together. A ruleset with any violation never takes effect.
package validator
