package errors

import (
	"fmt"
	"strings"

	"zerox/netpolicy/pkg/policy/ast"
)

// ErrorType categorizes the type of error encountered while loading rules.
type ErrorType string

const (
	ErrorTypeSyntax     ErrorType = "syntax"     // text is not well-formed
	ErrorTypeStructural ErrorType = "structural" // schema violation (missing/duplicate/invalid fields)
	ErrorTypeSemantic   ErrorType = "semantic"   // well-formed field with unparsable content (port set, comparator)
	ErrorTypeIO         ErrorType = "io"         // file read error
)

// Error is a single rule-loading error with its source location and an
// optional suggested fix.
type Error struct {
	Type       ErrorType
	Message    string
	Location   ast.Location
	Suggestion string
}

// Error implements the error interface.
func (e *Error) Error() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("[%s] %s", e.Type, e.Message))

	if e.Location.IsValid() {
		sb.WriteString(fmt.Sprintf("\n  --> %s", e.Location.String()))
	}

	if e.Suggestion != "" {
		sb.WriteString(fmt.Sprintf("\n  = suggestion: %s", e.Suggestion))
	}

	return sb.String()
}

// ErrorList accumulates errors across a whole ruleset so a single load
// reports every violation, not just the first.
type ErrorList struct {
	Errors []*Error
}

// NewErrorList creates a new empty error list.
func NewErrorList() *ErrorList {
	return &ErrorList{Errors: make([]*Error, 0)}
}

// Add appends an error to the list.
func (el *ErrorList) Add(err *Error) {
	el.Errors = append(el.Errors, err)
}

// AddError creates and adds a new error with the given parameters.
func (el *ErrorList) AddError(errType ErrorType, message string, location ast.Location) {
	el.Add(&Error{Type: errType, Message: message, Location: location})
}

// AddErrorWithSuggestion creates and adds a new error with a suggested fix.
func (el *ErrorList) AddErrorWithSuggestion(errType ErrorType, message string, location ast.Location, suggestion string) {
	el.Add(&Error{Type: errType, Message: message, Location: location, Suggestion: suggestion})
}

// Merge appends all errors from another list.
func (el *ErrorList) Merge(other *ErrorList) {
	if other == nil {
		return
	}
	el.Errors = append(el.Errors, other.Errors...)
}

// HasErrors returns true if the list contains any errors.
func (el *ErrorList) HasErrors() bool {
	return len(el.Errors) > 0
}

// Count returns the number of errors in the list.
func (el *ErrorList) Count() int {
	return len(el.Errors)
}

// HasErrorType returns true if the list contains at least one error of the
// given type.
func (el *ErrorList) HasErrorType(errType ErrorType) bool {
	for _, err := range el.Errors {
		if err.Type == errType {
			return true
		}
	}
	return false
}

// ByType returns all errors of the given type.
func (el *ErrorList) ByType(errType ErrorType) []*Error {
	var result []*Error
	for _, err := range el.Errors {
		if err.Type == errType {
			result = append(result, err)
		}
	}
	return result
}

// Error implements the error interface, formatting every accumulated error.
func (el *ErrorList) Error() string {
	if !el.HasErrors() {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("found %d error(s) in ruleset:\n", el.Count()))

	for i, err := range el.Errors {
		sb.WriteString(fmt.Sprintf("\nerror %d:\n%s\n", i+1, err.Error()))
	}

	return sb.String()
}

// ToError returns nil if the list is empty, otherwise the list itself.
func (el *ErrorList) ToError() error {
	if !el.HasErrors() {
		return nil
	}
	return el
}
