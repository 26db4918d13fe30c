package engine

import (
	"testing"

	"zerox/netpolicy/pkg/policy/ast"
)

func TestResolveAction(t *testing.T) {
	tests := []struct {
		name       string
		spec       *ast.ActionSpec
		wantKind   ActionKind
		wantTarget string
		wantLog    bool
	}{
		{
			name:       "route",
			spec:       &ast.ActionSpec{Route: "tunnel_fast"},
			wantKind:   ActionRoute,
			wantTarget: "tunnel_fast",
		},
		{
			name:       "switch route",
			spec:       &ast.ActionSpec{SwitchRoute: "backup"},
			wantKind:   ActionSwitchRoute,
			wantTarget: "backup",
		},
		{
			name:     "block",
			spec:     &ast.ActionSpec{Block: true},
			wantKind: ActionBlock,
		},
		{
			name:       "throttle",
			spec:       &ast.ActionSpec{Throttle: "1mbps"},
			wantKind:   ActionThrottle,
			wantTarget: "1mbps",
		},
		{
			name:     "log only",
			spec:     &ast.ActionSpec{Log: true},
			wantKind: ActionNone,
			wantLog:  true,
		},
		{
			name:     "log rides along with a primary",
			spec:     &ast.ActionSpec{Block: true, Log: true},
			wantKind: ActionBlock,
			wantLog:  true,
		},
		{
			name:     "nil spec",
			spec:     nil,
			wantKind: ActionNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, target, log := resolveAction(tt.spec)
			if kind != tt.wantKind || target != tt.wantTarget || log != tt.wantLog {
				t.Errorf("resolveAction() = (%s, %q, %v), want (%s, %q, %v)",
					kind, target, log, tt.wantKind, tt.wantTarget, tt.wantLog)
			}
		})
	}
}

func TestDecisionSummary(t *testing.T) {
	tests := []struct {
		d    Decision
		want string
	}{
		{Decision{Matched: true, Action: ActionRoute, Target: "tunnel_fast"}, "route tunnel_fast"},
		{Decision{Matched: true, Action: ActionSwitchRoute, Target: "backup"}, "switch_route backup"},
		{Decision{Matched: true, Action: ActionThrottle, Target: "1mbps"}, "throttle 1mbps"},
		{Decision{Matched: true, Action: ActionBlock}, "block"},
		{Decision{Matched: true, Action: ActionNone, Log: true}, "log"},
		{Decision{Matched: true, Action: ActionNone}, "none"},
		{Decision{Action: ActionNone}, "no_match"},
	}

	for _, tt := range tests {
		if got := tt.d.Summary(); got != tt.want {
			t.Errorf("Summary(%+v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}
