package parser

import (
	"path/filepath"
	"strings"

	"zerox/netpolicy/pkg/policy/ast"
)

// Format identifies a rule text format.
type Format string

const (
	// FormatYAML is the primary rule format.
	FormatYAML Format = "yaml"

	// FormatDSL is the compact line-oriented rule format.
	FormatDSL Format = "dsl"
)

// FormatForPath picks a format from a file extension. ".rules" selects the
// DSL; everything else is treated as YAML.
func FormatForPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".rules") {
		return FormatDSL
	}
	return FormatYAML
}

// Parser parses rule text into the ast model.
type Parser struct{}

// NewParser creates a new parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse parses rule text in the given format. The filename is only used for
// error locations. On failure it returns a *errors.ErrorList carrying every
// well-formedness problem found.
func (p *Parser) Parse(data []byte, filename string, format Format) (*ast.RuleSet, error) {
	switch format {
	case FormatDSL:
		return p.ParseDSL(data, filename)
	default:
		return p.ParseYAML(data, filename)
	}
}
