package engine

import (
	"fmt"
	"strconv"
	"strings"
)

// compareOp is a numeric comparison operator.
type compareOp string

const (
	opGT  compareOp = ">"
	opGTE compareOp = ">="
	opLT  compareOp = "<"
	opLTE compareOp = "<="
	opEQ  compareOp = "=="
)

// comparator is a pre-parsed operator+threshold pair from syntax like
// ">120" or "<=50". "=" is accepted as an alias for "==".
type comparator struct {
	op        compareOp
	threshold uint32
}

// parseComparator parses comparator syntax. Two-character operators are
// tried before their one-character prefixes.
func parseComparator(expr string) (comparator, error) {
	trimmed := strings.TrimSpace(expr)

	var op compareOp
	var rest string
	switch {
	case strings.HasPrefix(trimmed, ">="):
		op, rest = opGTE, trimmed[2:]
	case strings.HasPrefix(trimmed, "<="):
		op, rest = opLTE, trimmed[2:]
	case strings.HasPrefix(trimmed, "=="):
		op, rest = opEQ, trimmed[2:]
	case strings.HasPrefix(trimmed, ">"):
		op, rest = opGT, trimmed[1:]
	case strings.HasPrefix(trimmed, "<"):
		op, rest = opLT, trimmed[1:]
	case strings.HasPrefix(trimmed, "="):
		op, rest = opEQ, trimmed[1:]
	default:
		return comparator{}, fmt.Errorf("comparator must start with one of >, >=, <, <=, ==: %q", expr)
	}

	value, err := strconv.ParseUint(strings.TrimSpace(rest), 10, 32)
	if err != nil {
		return comparator{}, fmt.Errorf("comparator threshold must be a non-negative number: %q", expr)
	}

	return comparator{op: op, threshold: uint32(value)}, nil
}

// matches applies the comparator to a context value.
func (c comparator) matches(value uint32) bool {
	switch c.op {
	case opGT:
		return value > c.threshold
	case opGTE:
		return value >= c.threshold
	case opLT:
		return value < c.threshold
	case opLTE:
		return value <= c.threshold
	case opEQ:
		return value == c.threshold
	default:
		return false
	}
}
