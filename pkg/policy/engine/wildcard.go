package engine

import (
	"fmt"
	"strings"
)

// patternKind discriminates the supported SNI wildcard forms.
type patternKind int

const (
	patternExact patternKind = iota
	patternAll               // "*"
	patternDNSSuffix         // "*.zoom.us" — one or more leftmost labels
	patternSuffix            // "*zoom.us" — raw suffix
	patternPrefix            // "call.*"-style "call*" — raw prefix
)

// sniPattern is a pre-parsed SNI wildcard pattern.
//
// The leading "*." form uses DNS-suffix semantics: the wildcard stands for
// one or more whole labels, so "*.zoom.us" matches "call.zoom.us" and
// "a.b.zoom.us" but neither "zoom.us" itself nor "notzoom.us". The bare
// prefix/suffix forms match on raw characters with no label boundary.
type sniPattern struct {
	kind patternKind
	text string // the non-wildcard part, lower-cased
}

// parseSNIPattern parses an SNI pattern. Matching is case-insensitive.
func parseSNIPattern(pattern string) (sniPattern, error) {
	p := strings.ToLower(strings.TrimSpace(pattern))
	if p == "" {
		return sniPattern{}, fmt.Errorf("sni pattern must not be empty")
	}

	switch {
	case p == "*":
		return sniPattern{kind: patternAll}, nil
	case strings.HasPrefix(p, "*."):
		suffix := p[2:]
		if suffix == "" {
			return sniPattern{}, fmt.Errorf("sni pattern %q has no suffix after the wildcard", pattern)
		}
		return sniPattern{kind: patternDNSSuffix, text: suffix}, nil
	case strings.HasPrefix(p, "*"):
		return sniPattern{kind: patternSuffix, text: p[1:]}, nil
	case strings.HasSuffix(p, "*"):
		return sniPattern{kind: patternPrefix, text: p[:len(p)-1]}, nil
	default:
		return sniPattern{kind: patternExact, text: p}, nil
	}
}

// matches reports whether the pattern matches the given server name.
// An empty server name never matches.
func (p sniPattern) matches(sni string) bool {
	if sni == "" {
		return false
	}
	value := strings.ToLower(sni)

	switch p.kind {
	case patternAll:
		return true
	case patternDNSSuffix:
		return strings.HasSuffix(value, "."+p.text)
	case patternSuffix:
		return strings.HasSuffix(value, p.text)
	case patternPrefix:
		return strings.HasPrefix(value, p.text)
	default:
		return value == p.text
	}
}
