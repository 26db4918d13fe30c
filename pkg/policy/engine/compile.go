package engine

import (
	"fmt"
	"strings"

	"zerox/netpolicy/pkg/policy/ast"
	perrors "zerox/netpolicy/pkg/policy/errors"
	"zerox/netpolicy/pkg/state"
)

// RuleSet is a compiled, immutable ruleset. Once published it is never
// mutated; a reload builds a fresh RuleSet and swaps the pointer, so
// in-flight decisions keep a consistent view.
type RuleSet struct {
	rules []*Rule
}

// Len returns the number of rules.
func (rs *RuleSet) Len() int {
	if rs == nil {
		return 0
	}
	return len(rs.rules)
}

// Rules returns the compiled rules in declaration order. The returned slice
// is a copy; the rules themselves are shared and must not be modified.
func (rs *RuleSet) Rules() []*Rule {
	out := make([]*Rule, len(rs.rules))
	copy(out, rs.rules)
	return out
}

// Rule is one compiled rule. Every textual field has been resolved to a
// typed representation, so evaluation performs only comparisons.
type Rule struct {
	// Name is the rule's unique name.
	Name string

	// Priority orders rules; higher wins.
	Priority int

	// Index is the declaration position, the final tie-break.
	Index int

	any      bool
	sni      *sniPattern
	protocol string // lower-cased, "" when absent
	ports    *portSet
	latency  *comparator
	rtt      *comparator

	when    stateSet // nil when absent
	disable stateSet // nil when absent

	action ActionKind
	target string
	log    bool

	specificity int
}

// Specificity is the count of concrete match fields this rule evaluates.
// An any:true rule has specificity 0.
func (r *Rule) Specificity() int {
	return r.specificity
}

// decision materializes this rule's resolved action as a Decision.
func (r *Rule) decision() Decision {
	return Decision{
		Matched: true,
		Rule:    r.Name,
		Action:  r.action,
		Target:  r.target,
		Log:     r.log,
	}
}

// stateSet is a compiled when/disable state selector.
type stateSet map[state.State]struct{}

func (s stateSet) has(st state.State) bool {
	_, ok := s[st]
	return ok
}

// Compile resolves a validated ast.RuleSet into a compiled RuleSet. All
// syntax errors across all rules are collected; any error rejects the whole
// set. Compile tolerates structurally invalid input (the validator reports
// those violations) and only contributes syntax errors of its own.
func Compile(rs *ast.RuleSet) (*RuleSet, *perrors.ErrorList) {
	errs := perrors.NewErrorList()
	if rs == nil {
		return nil, errs
	}

	compiled := &RuleSet{rules: make([]*Rule, 0, len(rs.Rules))}
	for i, raw := range rs.Rules {
		if raw == nil {
			continue
		}
		rule := compileRule(raw, i, errs)
		compiled.rules = append(compiled.rules, rule)
	}

	if errs.HasErrors() {
		return nil, errs
	}
	return compiled, errs
}

// compileRule compiles one rule, appending any syntax errors to errs.
func compileRule(raw *ast.Rule, index int, errs *perrors.ErrorList) *Rule {
	label := raw.Name
	if label == "" {
		label = fmt.Sprintf("rule %d", index+1)
	}

	rule := &Rule{
		Name:  raw.Name,
		Index: index,
	}
	if raw.Priority != nil {
		rule.Priority = *raw.Priority
	}

	if m := raw.Match; m != nil {
		rule.any = m.Any
		rule.specificity = m.FieldCount()
		if m.Any {
			rule.specificity = 0
		}

		if m.SNI != "" {
			pattern, err := parseSNIPattern(m.SNI)
			if err != nil {
				errs.AddError(perrors.ErrorTypeSemantic, fmt.Sprintf("%s: sni: %v", label, err), raw.Location)
			} else {
				rule.sni = &pattern
			}
		}

		rule.protocol = strings.ToLower(m.Protocol)

		if m.Port != "" {
			set, err := parsePortSet(m.Port)
			if err != nil {
				errs.AddError(perrors.ErrorTypeSemantic, fmt.Sprintf("%s: port: %v", label, err), raw.Location)
			} else {
				rule.ports = &set
			}
		}

		if m.LatencyMS != "" {
			cmp, err := parseComparator(m.LatencyMS)
			if err != nil {
				errs.AddError(perrors.ErrorTypeSemantic, fmt.Sprintf("%s: latency_ms: %v", label, err), raw.Location)
			} else {
				rule.latency = &cmp
			}
		}

		if m.RTTMS != "" {
			cmp, err := parseComparator(m.RTTMS)
			if err != nil {
				errs.AddError(perrors.ErrorTypeSemantic, fmt.Sprintf("%s: rtt_ms: %v", label, err), raw.Location)
			} else {
				rule.rtt = &cmp
			}
		}
	}

	if raw.When != nil && raw.When.State != nil {
		rule.when = compileStateSet(raw.When.State)
	}
	if raw.Disable != nil {
		rule.disable = compileStateSet(raw.Disable)
	}

	rule.action, rule.target, rule.log = resolveAction(raw.Action)

	return rule
}

// compileStateSet folds a selector into a set, silently skipping names the
// validator already rejected.
func compileStateSet(sel *ast.StateSelector) stateSet {
	set := make(stateSet, len(sel.Values))
	for _, value := range sel.Values {
		st, err := state.Parse(value)
		if err != nil {
			continue
		}
		set[st] = struct{}{}
	}
	return set
}
