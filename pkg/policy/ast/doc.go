// Package ast defines the declarative rule model produced by the parsers.
//
// The types in this package mirror the rule text one-to-one: every optional
// field stays in its raw textual form (port patterns, comparators, wildcard
// patterns). The validator checks this model and the engine compiles it into
// typed, pre-parsed rules before any decision is made.
package ast
