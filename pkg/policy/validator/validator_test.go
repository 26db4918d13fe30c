package validator

import (
	"strings"
	"testing"

	"zerox/netpolicy/pkg/policy/ast"
	perrors "zerox/netpolicy/pkg/policy/errors"
)

func intp(v int) *int { return &v }

func validRule(name string) *ast.Rule {
	return &ast.Rule{
		Name:     name,
		Priority: intp(50),
		Match:    &ast.MatchSpec{Protocol: "tcp"},
		Action:   &ast.ActionSpec{Block: true},
	}
}

func TestValidateAcceptsValidRuleset(t *testing.T) {
	rs := &ast.RuleSet{Rules: []*ast.Rule{validRule("a"), validRule("b")}}
	if errs := NewValidator().Validate(rs); errs.HasErrors() {
		t.Errorf("unexpected errors:\n%s", errs.Error())
	}
}

func TestValidateEmptyRuleset(t *testing.T) {
	for _, rs := range []*ast.RuleSet{nil, {}, {Rules: []*ast.Rule{}}} {
		errs := NewValidator().Validate(rs)
		if !errs.HasErrors() {
			t.Error("empty ruleset must be rejected")
		}
	}
}

func TestValidateRequiredFields(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *ast.Rule)
		wantMsg string
	}{
		{
			name:    "missing name",
			mutate:  func(r *ast.Rule) { r.Name = "" },
			wantMsg: "name is required",
		},
		{
			name:    "blank name",
			mutate:  func(r *ast.Rule) { r.Name = "   " },
			wantMsg: "name is required",
		},
		{
			name:    "missing priority",
			mutate:  func(r *ast.Rule) { r.Priority = nil },
			wantMsg: "priority is required",
		},
		{
			name:    "missing match",
			mutate:  func(r *ast.Rule) { r.Match = nil },
			wantMsg: "match is required",
		},
		{
			name:    "missing action",
			mutate:  func(r *ast.Rule) { r.Action = nil },
			wantMsg: "action is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule := validRule("r")
			tt.mutate(rule)
			errs := NewValidator().Validate(&ast.RuleSet{Rules: []*ast.Rule{rule}})
			if !errs.HasErrors() {
				t.Fatal("expected a validation error")
			}
			if !strings.Contains(errs.Error(), tt.wantMsg) {
				t.Errorf("errors missing %q:\n%s", tt.wantMsg, errs.Error())
			}
		})
	}
}

func TestValidateDuplicateNames(t *testing.T) {
	rs := &ast.RuleSet{Rules: []*ast.Rule{validRule("dup"), validRule("dup")}}
	errs := NewValidator().Validate(rs)
	if !errs.HasErrorType(perrors.ErrorTypeStructural) {
		t.Fatal("duplicate name must be a structural error")
	}
	if !strings.Contains(errs.Error(), "duplicate rule name") {
		t.Errorf("unexpected errors:\n%s", errs.Error())
	}
}

func TestValidateEmptyMatchSuggestsAny(t *testing.T) {
	rule := validRule("r")
	rule.Match = &ast.MatchSpec{}
	errs := NewValidator().Validate(&ast.RuleSet{Rules: []*ast.Rule{rule}})
	if !errs.HasErrors() {
		t.Fatal("empty match must be rejected")
	}
	if !strings.Contains(errs.Error(), "any: true") {
		t.Errorf("expected the any:true suggestion:\n%s", errs.Error())
	}
}

func TestValidateAnyTrueIsSufficient(t *testing.T) {
	rule := validRule("r")
	rule.Match = &ast.MatchSpec{Any: true}
	if errs := NewValidator().Validate(&ast.RuleSet{Rules: []*ast.Rule{rule}}); errs.HasErrors() {
		t.Errorf("any:true alone must be valid:\n%s", errs.Error())
	}
}

func TestValidateProtocol(t *testing.T) {
	tests := []struct {
		protocol string
		wantErr  bool
	}{
		{"tcp", false},
		{"udp", false},
		{"TCP", false},
		{"Udp", false},
		{"icmp", true},
		{"quic", true},
	}

	for _, tt := range tests {
		rule := validRule("r")
		rule.Match = &ast.MatchSpec{Protocol: tt.protocol}
		errs := NewValidator().Validate(&ast.RuleSet{Rules: []*ast.Rule{rule}})
		if errs.HasErrors() != tt.wantErr {
			t.Errorf("protocol %q: hasErrors = %v, want %v", tt.protocol, errs.HasErrors(), tt.wantErr)
		}
	}
}

func TestValidateMultiplePrimaryActions(t *testing.T) {
	tests := []struct {
		name    string
		action  *ast.ActionSpec
		wantErr bool
	}{
		{name: "route only", action: &ast.ActionSpec{Route: "a"}},
		{name: "block only", action: &ast.ActionSpec{Block: true}},
		{name: "log only is legal", action: &ast.ActionSpec{Log: true}},
		{name: "primary plus log", action: &ast.ActionSpec{Throttle: "1mbps", Log: true}},
		{name: "route and block", action: &ast.ActionSpec{Route: "a", Block: true}, wantErr: true},
		{name: "route and switch_route", action: &ast.ActionSpec{Route: "a", SwitchRoute: "b"}, wantErr: true},
		{name: "all four", action: &ast.ActionSpec{Route: "a", SwitchRoute: "b", Block: true, Throttle: "c"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule := validRule("r")
			rule.Action = tt.action
			errs := NewValidator().Validate(&ast.RuleSet{Rules: []*ast.Rule{rule}})
			if errs.HasErrors() != tt.wantErr {
				t.Errorf("hasErrors = %v, want %v:\n%s", errs.HasErrors(), tt.wantErr, errs.Error())
			}
		})
	}
}

func TestValidateStateSelector(t *testing.T) {
	tests := []struct {
		name    string
		values  []string
		wantErr bool
	}{
		{name: "valid single", values: []string{"DEGRADED"}},
		{name: "valid list", values: []string{"DEGRADED", "FAILOVER"}},
		{name: "lowercase accepted", values: []string{"degraded"}},
		{name: "unknown state", values: []string{"PANIC"}, wantErr: true},
		{name: "empty selector", values: nil, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule := validRule("r")
			rule.When = &ast.WhenSpec{State: &ast.StateSelector{Values: tt.values}}
			errs := NewValidator().Validate(&ast.RuleSet{Rules: []*ast.Rule{rule}})
			if errs.HasErrors() != tt.wantErr {
				t.Errorf("hasErrors = %v, want %v:\n%s", errs.HasErrors(), tt.wantErr, errs.Error())
			}
		})
	}
}

func TestValidateCollectsEveryViolation(t *testing.T) {
	bad := &ast.Rule{} // no name, no priority, no match, no action
	errs := NewValidator().Validate(&ast.RuleSet{Rules: []*ast.Rule{bad}})
	if errs.Count() < 4 {
		t.Errorf("expected at least 4 errors in one pass, got %d:\n%s", errs.Count(), errs.Error())
	}
}
