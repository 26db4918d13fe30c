// Package parser turns declarative rule text into the ast model.
//
// Two formats are supported: YAML (the primary format) and a compact
// line-oriented DSL for hand-written rule files. Both produce the same
// ast.RuleSet; validation and compilation downstream are format-agnostic.
//
// The parsers only check well-formedness. Schema invariants (required
// fields, unique names, action arity) belong to the validator, and
// field syntax (port sets, comparators) is parsed by the engine compiler.
package parser
