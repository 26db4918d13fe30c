package parser

import (
	"errors"
	"testing"

	perrors "zerox/netpolicy/pkg/policy/errors"
)

func TestParseDSLValid(t *testing.T) {
	text := `
# conferencing traffic gets the fast tunnel
rule zoom_priority:
  priority 100
  match sni="*.zoom.us" protocol=tcp
  action route=tunnel_fast log=true

rule irc_block:
  priority 80
  match port=6667,6697
  disable FAILOVER
  action block

rule degraded_throttle:
  priority 50
  match any
  when state=DEGRADED,FAILOVER
  action throttle=1mbps
`

	rs, err := NewParser().ParseDSL([]byte(text), "rules.rules")
	if err != nil {
		t.Fatalf("ParseDSL failed: %v", err)
	}
	if len(rs.Rules) != 3 {
		t.Fatalf("expected 3 rules, got %d", len(rs.Rules))
	}

	zoom := rs.Rules[0]
	if zoom.Name != "zoom_priority" {
		t.Errorf("name = %q", zoom.Name)
	}
	if zoom.Priority == nil || *zoom.Priority != 100 {
		t.Errorf("priority = %v", zoom.Priority)
	}
	if zoom.Match.SNI != "*.zoom.us" || zoom.Match.Protocol != "tcp" {
		t.Errorf("match = %+v", zoom.Match)
	}
	if zoom.Action.Route != "tunnel_fast" || !zoom.Action.Log {
		t.Errorf("action = %+v", zoom.Action)
	}

	irc := rs.Rules[1]
	if irc.Match.Port != "6667,6697" {
		t.Errorf("port = %q", irc.Match.Port)
	}
	if !irc.Action.Block {
		t.Error("block action not parsed")
	}
	if irc.Disable == nil || len(irc.Disable.Values) != 1 || irc.Disable.Values[0] != "FAILOVER" {
		t.Errorf("disable = %+v", irc.Disable)
	}

	throttle := rs.Rules[2]
	if !throttle.Match.Any {
		t.Error("any not parsed")
	}
	if throttle.When == nil || len(throttle.When.State.Values) != 2 {
		t.Errorf("when = %+v", throttle.When)
	}
	if throttle.Action.Throttle != "1mbps" {
		t.Errorf("throttle = %q", throttle.Action.Throttle)
	}
}

func TestParseDSLCollectsAllErrors(t *testing.T) {
	text := `
priority 100

rule broken:
  priority high
  match sni=
  frobnicate now
  action route=a
`

	_, err := NewParser().ParseDSL([]byte(text), "rules.rules")
	if err == nil {
		t.Fatal("expected parse to fail")
	}

	var el *perrors.ErrorList
	if !errors.As(err, &el) {
		t.Fatalf("expected *errors.ErrorList, got %T", err)
	}

	// Orphan directive, bad priority and unknown directive are three
	// independent problems surfaced in one pass.
	if el.Count() < 3 {
		t.Errorf("expected at least 3 errors, got %d:\n%s", el.Count(), el.Error())
	}
}

func TestParseDSLLineNumbersInErrors(t *testing.T) {
	text := "rule a:\n  priority nope\n"

	_, err := NewParser().ParseDSL([]byte(text), "rules.rules")
	if err == nil {
		t.Fatal("expected parse to fail")
	}
	var el *perrors.ErrorList
	if !errors.As(err, &el) {
		t.Fatalf("expected *errors.ErrorList, got %T", err)
	}
	if el.Errors[0].Location.Line != 2 {
		t.Errorf("error line = %d, want 2", el.Errors[0].Location.Line)
	}
}

func TestParseDSLQuotedValues(t *testing.T) {
	text := "rule q:\n  priority 10\n  match sni='*.example.com'\n  action route=\"tunnel_fast\"\n"

	rs, err := NewParser().ParseDSL([]byte(text), "rules.rules")
	if err != nil {
		t.Fatalf("ParseDSL failed: %v", err)
	}
	if rs.Rules[0].Match.SNI != "*.example.com" {
		t.Errorf("single quotes not stripped: %q", rs.Rules[0].Match.SNI)
	}
	if rs.Rules[0].Action.Route != "tunnel_fast" {
		t.Errorf("double quotes not stripped: %q", rs.Rules[0].Action.Route)
	}
}
