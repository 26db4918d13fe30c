// Package errors provides rich error types for rule parsing and validation.
//
// Loading a ruleset is all-or-nothing: every violation found anywhere in the
// text is collected into an ErrorList and reported together, so an operator
// can fix a whole file in one pass instead of replaying load attempts.
package errors
