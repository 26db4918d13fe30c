package engine

import (
	"zerox/netpolicy/pkg/policy/ast"
	perrors "zerox/netpolicy/pkg/policy/errors"
	"zerox/netpolicy/pkg/policy/parser"
	"zerox/netpolicy/pkg/policy/validator"
)

// Load parses, validates and compiles rule text into a RuleSet,
// all-or-nothing. On failure the returned error is a *errors.ErrorList
// carrying every violation found across the whole text; no partial ruleset
// ever takes effect.
func Load(data []byte, filename string, format parser.Format) (*RuleSet, error) {
	p := parser.NewParser()
	raw, err := p.Parse(data, filename, format)
	if err != nil {
		return nil, err
	}
	return CompileAST(raw)
}

// LoadYAML loads a YAML ruleset.
func LoadYAML(data []byte, filename string) (*RuleSet, error) {
	return Load(data, filename, parser.FormatYAML)
}

// LoadDSL loads a ruleset in the compact line format.
func LoadDSL(data []byte, filename string) (*RuleSet, error) {
	return Load(data, filename, parser.FormatDSL)
}

// CompileAST validates and compiles an already-parsed ruleset. Structural
// violations from the validator and syntax violations from the compiler are
// merged into a single batch.
func CompileAST(raw *ast.RuleSet) (*RuleSet, error) {
	errs := validator.NewValidator().Validate(raw)

	compiled, compileErrs := Compile(raw)
	errs.Merge(compileErrs)

	if errs.HasErrors() {
		return nil, errs
	}
	return compiled, nil
}

// AsErrorList unwraps a load error into its ErrorList, or nil if the error
// is of a different kind (e.g. file I/O from a rule source).
func AsErrorList(err error) *perrors.ErrorList {
	if el, ok := err.(*perrors.ErrorList); ok {
		return el
	}
	return nil
}
