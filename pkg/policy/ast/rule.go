package ast

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// RuleSet is an ordered collection of rules as they appear in the source
// text. Declaration order is significant: it is the final tie-break during
// selection.
type RuleSet struct {
	Rules []*Rule `yaml:"rules"`
}

// Rule is one named, prioritized match→action mapping.
//
// Priority is a pointer so the validator can distinguish an explicit 0 from
// a missing field.
type Rule struct {
	Name     string         `yaml:"name"`
	Priority *int           `yaml:"priority"`
	Match    *MatchSpec     `yaml:"match"`
	When     *WhenSpec      `yaml:"when"`
	Disable  *StateSelector `yaml:"disable"`
	Action   *ActionSpec    `yaml:"action"`

	// Location is where this rule starts in the source text. Filled by the
	// parser, not part of the schema.
	Location Location `yaml:"-"`
}

// MatchSpec is the set of conditions a context must satisfy. Absent fields
// are not evaluated. If Any is true, no other field is evaluated even when
// present.
//
// Port, LatencyMS and RTTMS keep their raw syntax here ("22,80,1000-2000",
// ">120"); the engine parses them into typed form at load time.
type MatchSpec struct {
	Any       bool   `yaml:"any"`
	SNI       string `yaml:"sni"`
	Protocol  string `yaml:"protocol"`
	Port      string `yaml:"port"`
	LatencyMS string `yaml:"latency_ms"`
	RTTMS     string `yaml:"rtt_ms"`
}

// FieldCount returns the number of concrete match fields present, ignoring
// Any. This is the rule's specificity.
func (m *MatchSpec) FieldCount() int {
	if m == nil {
		return 0
	}
	count := 0
	for _, present := range []bool{
		m.SNI != "",
		m.Protocol != "",
		m.Port != "",
		m.LatencyMS != "",
		m.RTTMS != "",
	} {
		if present {
			count++
		}
	}
	return count
}

// Empty reports whether the match spec carries neither any:true nor a
// concrete field.
func (m *MatchSpec) Empty() bool {
	return m == nil || (!m.Any && m.FieldCount() == 0)
}

// WhenSpec restricts a rule to a set of operating states. A rule with no
// WhenSpec is eligible under any state.
type WhenSpec struct {
	State *StateSelector `yaml:"state"`
}

// StateSelector is a set of operating state names. The rule text accepts
// either a single scalar ("FAILOVER") or a list (["DEGRADED", "FAILOVER"]).
type StateSelector struct {
	Values []string
}

// UnmarshalYAML accepts both scalar and sequence forms.
func (s *StateSelector) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var value string
		if err := node.Decode(&value); err != nil {
			return err
		}
		s.Values = []string{value}
		return nil
	case yaml.SequenceNode:
		var values []string
		if err := node.Decode(&values); err != nil {
			return err
		}
		s.Values = values
		return nil
	default:
		return fmt.Errorf("line %d: state selector must be a string or a list of strings", node.Line)
	}
}

// MarshalYAML renders single-element selectors back to scalar form.
func (s StateSelector) MarshalYAML() (interface{}, error) {
	if len(s.Values) == 1 {
		return s.Values[0], nil
	}
	return s.Values, nil
}

// ActionSpec is the raw action block of a rule. At most one primary field
// (Route, SwitchRoute, Block, Throttle) may be set; Log is independent and
// may accompany any primary field or stand alone.
type ActionSpec struct {
	Route       string `yaml:"route"`
	SwitchRoute string `yaml:"switch_route"`
	Block       bool   `yaml:"block"`
	Throttle    string `yaml:"throttle"`
	Log         bool   `yaml:"log"`
}

// PrimaryCount returns how many primary action fields are set.
func (a *ActionSpec) PrimaryCount() int {
	if a == nil {
		return 0
	}
	count := 0
	for _, present := range []bool{
		a.Route != "",
		a.SwitchRoute != "",
		a.Block,
		a.Throttle != "",
	} {
		if present {
			count++
		}
	}
	return count
}
