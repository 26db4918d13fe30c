package validator

import (
	"fmt"
	"strings"

	"zerox/netpolicy/pkg/policy/ast"
	perrors "zerox/netpolicy/pkg/policy/errors"
	"zerox/netpolicy/pkg/state"
)

// Validator runs structural validation over a parsed ruleset.
//
// Field syntax (port sets, comparators, wildcard patterns) is checked by the
// engine compiler, which contributes its own errors to the same batch during
// load; the validator owns everything schema-shaped.
type Validator struct{}

// NewValidator creates a new validator.
func NewValidator() *Validator {
	return &Validator{}
}

// Validate checks the ruleset and returns every violation found.
func (v *Validator) Validate(rs *ast.RuleSet) *perrors.ErrorList {
	errs := perrors.NewErrorList()

	if rs == nil || len(rs.Rules) == 0 {
		errs.AddError(perrors.ErrorTypeStructural, "ruleset must contain at least one rule", ast.Location{})
		return errs
	}

	seen := make(map[string]int, len(rs.Rules))
	for i, rule := range rs.Rules {
		if rule == nil {
			errs.AddError(perrors.ErrorTypeStructural, fmt.Sprintf("rule %d is empty", i+1), ast.Location{})
			continue
		}
		v.validateRule(rule, i, seen, errs)
	}

	return errs
}

// validateRule checks one rule's required fields and field values.
func (v *Validator) validateRule(rule *ast.Rule, index int, seen map[string]int, errs *perrors.ErrorList) {
	loc := rule.Location
	label := rule.Name
	if label == "" {
		label = fmt.Sprintf("rule %d", index+1)
	}

	if strings.TrimSpace(rule.Name) == "" {
		errs.AddError(perrors.ErrorTypeStructural, fmt.Sprintf("%s: name is required", label), loc)
	} else if prev, dup := seen[rule.Name]; dup {
		errs.AddError(perrors.ErrorTypeStructural,
			fmt.Sprintf("%s: duplicate rule name (first declared as rule %d)", label, prev+1), loc)
	} else {
		seen[rule.Name] = index
	}

	if rule.Priority == nil {
		errs.AddError(perrors.ErrorTypeStructural, fmt.Sprintf("%s: priority is required", label), loc)
	}

	v.validateMatch(rule.Match, label, loc, errs)
	v.validateAction(rule.Action, label, loc, errs)

	if rule.When != nil && rule.When.State != nil {
		v.validateStateSelector(rule.When.State, label, "when.state", loc, errs)
	}
	if rule.Disable != nil {
		v.validateStateSelector(rule.Disable, label, "disable", loc, errs)
	}
}

// validateMatch checks presence and the enum-valued match fields.
func (v *Validator) validateMatch(m *ast.MatchSpec, label string, loc ast.Location, errs *perrors.ErrorList) {
	if m == nil {
		errs.AddError(perrors.ErrorTypeStructural, fmt.Sprintf("%s: match is required", label), loc)
		return
	}

	if m.Empty() {
		errs.AddErrorWithSuggestion(perrors.ErrorTypeStructural,
			fmt.Sprintf("%s: match must contain at least one field", label), loc,
			"use 'any: true' for a catch-all rule")
		return
	}

	if m.Protocol != "" {
		switch strings.ToLower(m.Protocol) {
		case "tcp", "udp":
		default:
			errs.AddError(perrors.ErrorTypeStructural,
				fmt.Sprintf("%s: protocol must be tcp or udp, got %q", label, m.Protocol), loc)
		}
	}

	if m.SNI != "" && strings.TrimSpace(m.SNI) == "" {
		errs.AddError(perrors.ErrorTypeStructural,
			fmt.Sprintf("%s: sni pattern must not be blank", label), loc)
	}
}

// validateAction enforces at most one primary action field. Log-only rules
// (no primary field) are legal.
func (v *Validator) validateAction(a *ast.ActionSpec, label string, loc ast.Location, errs *perrors.ErrorList) {
	if a == nil {
		errs.AddError(perrors.ErrorTypeStructural, fmt.Sprintf("%s: action is required", label), loc)
		return
	}

	if a.PrimaryCount() > 1 {
		errs.AddErrorWithSuggestion(perrors.ErrorTypeStructural,
			fmt.Sprintf("%s: action must not set more than one of route, switch_route, block, throttle", label), loc,
			"split the rule, or keep one primary action plus log: true")
	}
}

// validateStateSelector checks every state name in a when/disable selector.
func (v *Validator) validateStateSelector(sel *ast.StateSelector, label, field string, loc ast.Location, errs *perrors.ErrorList) {
	if len(sel.Values) == 0 {
		errs.AddError(perrors.ErrorTypeStructural,
			fmt.Sprintf("%s: %s must list at least one state", label, field), loc)
		return
	}

	for _, value := range sel.Values {
		if _, err := state.Parse(value); err != nil {
			errs.AddErrorWithSuggestion(perrors.ErrorTypeStructural,
				fmt.Sprintf("%s: %s: %v", label, field, err), loc,
				"valid states are NORMAL, DEGRADED, FAILOVER, RECOVERY")
		}
	}
}
