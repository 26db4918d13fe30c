package engine

import (
	"testing"

	perrors "zerox/netpolicy/pkg/policy/errors"
)

func TestLoadCollectsAllErrors(t *testing.T) {
	// Three independent violations in one document: a bad port, a bad
	// comparator and a duplicate name. One load must report all of them.
	text := `
rules:
  - name: bad_port
    priority: 50
    match:
      port: "22,,80"
    action:
      block: true

  - name: bad_comparator
    priority: 50
    match:
      latency_ms: "fast"
    action:
      block: true

  - name: bad_comparator
    priority: 50
    match:
      any: true
    action:
      block: true
`

	_, err := LoadYAML([]byte(text), "broken.yaml")
	if err == nil {
		t.Fatal("expected load to fail")
	}

	el := AsErrorList(err)
	if el == nil {
		t.Fatalf("expected *errors.ErrorList, got %T", err)
	}
	if el.Count() < 3 {
		t.Errorf("expected at least 3 errors, got %d:\n%s", el.Count(), el.Error())
	}
	if !el.HasErrorType(perrors.ErrorTypeSemantic) {
		t.Error("expected a semantic error for the bad port and comparator")
	}
	if !el.HasErrorType(perrors.ErrorTypeStructural) {
		t.Error("expected a structural error for the duplicate name")
	}
}

func TestLoadAllOrNothing(t *testing.T) {
	// One bad rule among good ones rejects the whole set.
	text := `
rules:
  - name: good
    priority: 100
    match:
      any: true
    action:
      route: a

  - name: bad
    priority: 50
    match:
      port: "99999"
    action:
      block: true
`

	rs, err := LoadYAML([]byte(text), "mixed.yaml")
	if err == nil {
		t.Fatal("expected load to fail")
	}
	if rs != nil {
		t.Error("no partial ruleset may be returned on failure")
	}
}

func TestLoadEmptyRuleSetRejected(t *testing.T) {
	_, err := LoadYAML([]byte("rules: []\n"), "empty.yaml")
	if err == nil {
		t.Fatal("an empty ruleset must be rejected")
	}
}

func TestLoadMultiplePrimaryActionsRejected(t *testing.T) {
	text := `
rules:
  - name: conflicted
    priority: 50
    match:
      any: true
    action:
      route: a
      block: true
`

	_, err := LoadYAML([]byte(text), "conflict.yaml")
	if err == nil {
		t.Fatal("a rule with two primary actions must be rejected")
	}
	el := AsErrorList(err)
	if el == nil || !el.HasErrorType(perrors.ErrorTypeStructural) {
		t.Errorf("expected a structural error, got %v", err)
	}
}

func TestLoadValidRuleset(t *testing.T) {
	text := `
rules:
  - name: zoom_priority
    priority: 100
    match:
      sni: "*.zoom.us"
      protocol: tcp
    action:
      route: tunnel_fast
      log: true
`

	rs, err := LoadYAML([]byte(text), "good.yaml")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if rs.Len() != 1 {
		t.Fatalf("expected 1 rule, got %d", rs.Len())
	}

	rule := rs.Rules()[0]
	if rule.Name != "zoom_priority" || rule.Priority != 100 {
		t.Errorf("unexpected rule header: %+v", rule)
	}
	if rule.Specificity() != 2 {
		t.Errorf("specificity = %d, want 2", rule.Specificity())
	}
}
