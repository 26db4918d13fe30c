package ast

import "fmt"

// Location identifies where a rule (or an error inside one) appears in the
// source text. Line and Column are 1-based; a zero Location means the
// position is unknown.
type Location struct {
	File   string
	Line   int
	Column int
}

// IsValid reports whether the location carries any position information.
func (l Location) IsValid() bool {
	return l.Line > 0
}

// String formats the location as file:line:column, omitting missing parts.
func (l Location) String() string {
	switch {
	case l.File != "" && l.Column > 0:
		return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
	case l.File != "":
		return fmt.Sprintf("%s:%d", l.File, l.Line)
	case l.Column > 0:
		return fmt.Sprintf("line %d:%d", l.Line, l.Column)
	default:
		return fmt.Sprintf("line %d", l.Line)
	}
}
