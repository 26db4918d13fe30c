package parser

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"

	"gopkg.in/yaml.v3"

	"zerox/netpolicy/pkg/policy/ast"
	perrors "zerox/netpolicy/pkg/policy/errors"
)

// yamlLineRe extracts the line number that yaml.v3 embeds in its messages.
var yamlLineRe = regexp.MustCompile(`line (\d+)`)

// ParseYAML parses a YAML ruleset. Unknown fields are rejected so a typo in
// a rule file cannot silently disable a condition.
func (p *Parser) ParseYAML(data []byte, filename string) (*ast.RuleSet, error) {
	errs := perrors.NewErrorList()

	var rs ast.RuleSet
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&rs); err != nil && !errors.Is(err, io.EOF) {
		addYAMLError(errs, err, filename)
		return nil, errs
	}

	attachLocations(&rs, data, filename)

	return &rs, nil
}

// addYAMLError converts a yaml.v3 error into one or more located errors.
func addYAMLError(errs *perrors.ErrorList, err error, filename string) {
	var typeErr *yaml.TypeError
	if errors.As(err, &typeErr) {
		for _, msg := range typeErr.Errors {
			errs.AddError(perrors.ErrorTypeSyntax, msg, ast.Location{
				File: filename,
				Line: yamlErrorLine(msg),
			})
		}
		return
	}

	msg := err.Error()
	errs.AddError(perrors.ErrorTypeSyntax, fmt.Sprintf("malformed YAML: %s", msg), ast.Location{
		File: filename,
		Line: yamlErrorLine(msg),
	})
}

// yamlErrorLine pulls a line number out of a yaml error message, or 0.
func yamlErrorLine(msg string) int {
	m := yamlLineRe.FindStringSubmatch(msg)
	if m == nil {
		return 0
	}
	line, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return line
}

// attachLocations re-walks the document as a node tree and records where
// each rule starts, so validation errors can point at the offending rule.
func attachLocations(rs *ast.RuleSet, data []byte, filename string) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil || len(root.Content) == 0 {
		return
	}

	doc := root.Content[0]
	if doc.Kind != yaml.MappingNode {
		return
	}

	// Mapping nodes alternate key, value.
	for i := 0; i+1 < len(doc.Content); i += 2 {
		if doc.Content[i].Value != "rules" {
			continue
		}
		seq := doc.Content[i+1]
		if seq.Kind != yaml.SequenceNode {
			return
		}
		for j, item := range seq.Content {
			if j >= len(rs.Rules) || rs.Rules[j] == nil {
				break
			}
			rs.Rules[j].Location = ast.Location{
				File:   filename,
				Line:   item.Line,
				Column: item.Column,
			}
		}
		return
	}
}
