package parser

import (
	"fmt"
	"strconv"
	"strings"

	"zerox/netpolicy/pkg/policy/ast"
	perrors "zerox/netpolicy/pkg/policy/errors"
)

// ParseDSL parses the compact line-oriented rule format:
//
//	# high-priority conferencing traffic
//	rule zoom_priority:
//	  priority 100
//	  match sni="*.zoom.us" protocol=tcp
//	  action route=tunnel_fast log=true
//	  when state=DEGRADED,FAILOVER
//
// Blank lines and '#' comments are ignored. Every malformed line is
// reported; parsing continues so one pass surfaces all problems.
func (p *Parser) ParseDSL(data []byte, filename string) (*ast.RuleSet, error) {
	errs := perrors.NewErrorList()
	rs := &ast.RuleSet{}

	var current *ast.Rule
	flush := func() {
		if current != nil {
			rs.Rules = append(rs.Rules, current)
			current = nil
		}
	}

	for idx, raw := range strings.Split(string(data), "\n") {
		line := strings.TrimSpace(raw)
		loc := ast.Location{File: filename, Line: idx + 1}

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if name, ok := strings.CutPrefix(line, "rule "); ok {
			flush()
			name = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(name), ":"))
			if name == "" {
				errs.AddError(perrors.ErrorTypeSyntax, "rule name is required", loc)
				continue
			}
			current = &ast.Rule{
				Name:     name,
				Match:    &ast.MatchSpec{},
				Action:   &ast.ActionSpec{},
				Location: loc,
			}
			continue
		}

		if current == nil {
			errs.AddError(perrors.ErrorTypeSyntax, "content must be inside a rule block", loc)
			continue
		}

		switch {
		case strings.HasPrefix(line, "priority "):
			value := strings.TrimSpace(strings.TrimPrefix(line, "priority "))
			parsed, err := strconv.Atoi(value)
			if err != nil {
				errs.AddError(perrors.ErrorTypeSyntax, fmt.Sprintf("invalid priority %q", value), loc)
				continue
			}
			current.Priority = &parsed

		case strings.HasPrefix(line, "match "):
			parseMatchLine(line, current.Match, loc, errs)

		case strings.HasPrefix(line, "action "):
			parseActionLine(line, current.Action, loc, errs)

		case strings.HasPrefix(line, "when "):
			if selector := parseStateSelector(line, loc, errs); selector != nil {
				current.When = &ast.WhenSpec{State: selector}
			}

		case strings.HasPrefix(line, "disable "):
			current.Disable = parseStateSelector(line, loc, errs)

		default:
			errs.AddError(perrors.ErrorTypeSyntax, fmt.Sprintf("unknown directive %q", firstWord(line)), loc)
		}
	}
	flush()

	if errs.HasErrors() {
		return nil, errs
	}
	return rs, nil
}

// parseMatchLine parses "match key=value ..." tokens into the match spec.
func parseMatchLine(line string, target *ast.MatchSpec, loc ast.Location, errs *perrors.ErrorList) {
	rest := strings.TrimSpace(strings.TrimPrefix(line, "match "))
	if rest == "" {
		errs.AddError(perrors.ErrorTypeSyntax, "match needs fields", loc)
		return
	}

	for _, token := range strings.Fields(rest) {
		if token == "any" || token == "any=true" {
			target.Any = true
			continue
		}

		key, raw, found := strings.Cut(token, "=")
		if !found {
			errs.AddError(perrors.ErrorTypeSyntax, fmt.Sprintf("invalid match token %q", token), loc)
			continue
		}
		value := stripQuotes(raw)

		switch key {
		case "sni":
			target.SNI = value
		case "protocol":
			target.Protocol = value
		case "port":
			target.Port = value
		case "latency_ms":
			target.LatencyMS = value
		case "rtt_ms":
			target.RTTMS = value
		default:
			errs.AddError(perrors.ErrorTypeSyntax, fmt.Sprintf("unknown match key %q", key), loc)
		}
	}
}

// parseActionLine parses "action key=value ..." tokens into the action spec.
func parseActionLine(line string, target *ast.ActionSpec, loc ast.Location, errs *perrors.ErrorList) {
	rest := strings.TrimSpace(strings.TrimPrefix(line, "action "))
	if rest == "" {
		errs.AddError(perrors.ErrorTypeSyntax, "action needs fields", loc)
		return
	}

	for _, token := range strings.Fields(rest) {
		if token == "block" || token == "block=true" {
			target.Block = true
			continue
		}
		if token == "log" || token == "log=true" {
			target.Log = true
			continue
		}

		key, raw, found := strings.Cut(token, "=")
		if !found {
			errs.AddError(perrors.ErrorTypeSyntax, fmt.Sprintf("invalid action token %q", token), loc)
			continue
		}
		value := stripQuotes(raw)

		switch key {
		case "route":
			target.Route = value
		case "switch_route":
			target.SwitchRoute = value
		case "throttle":
			target.Throttle = value
		case "log":
			target.Log = value == "true"
		default:
			errs.AddError(perrors.ErrorTypeSyntax, fmt.Sprintf("unknown action key %q", key), loc)
		}
	}
}

// parseStateSelector parses "when state=A,B" or "disable A,B" lines.
func parseStateSelector(line string, loc ast.Location, errs *perrors.ErrorList) *ast.StateSelector {
	fields := strings.Fields(line)
	rest := strings.Join(fields[1:], " ")
	value := strings.TrimSpace(strings.TrimPrefix(rest, "state="))
	if value == "" {
		errs.AddError(perrors.ErrorTypeSyntax, "state value is required", loc)
		return nil
	}

	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		errs.AddError(perrors.ErrorTypeSyntax, "state value is required", loc)
		return nil
	}
	return &ast.StateSelector{Values: items}
}

// stripQuotes removes one matched pair of single or double quotes.
func stripQuotes(value string) string {
	value = strings.TrimSpace(value)
	if len(value) >= 2 {
		if (value[0] == '"' && value[len(value)-1] == '"') ||
			(value[0] == '\'' && value[len(value)-1] == '\'') {
			return value[1 : len(value)-1]
		}
	}
	return value
}

func firstWord(line string) string {
	if fields := strings.Fields(line); len(fields) > 0 {
		return fields[0]
	}
	return line
}
