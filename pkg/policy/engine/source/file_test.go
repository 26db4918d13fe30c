package source

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"zerox/netpolicy/pkg/policy/engine"
	"zerox/netpolicy/pkg/policy/parser"
	"zerox/netpolicy/pkg/state"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

const yamlRules = `
rules:
  - name: blocker
    priority: 50
    match:
      any: true
    action:
      block: true
`

const dslRules = `
rule blocker:
  priority 50
  match any
  action block
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write rules file: %v", err)
	}
	return path
}

func TestFileSourceLoadsYAML(t *testing.T) {
	path := writeFile(t, "policies.yaml", yamlRules)
	src := NewFileSource(path, quietLogger())

	rs, err := src.Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if rs.Len() != 1 {
		t.Errorf("rule count = %d, want 1", rs.Len())
	}
	if src.Describe() != path {
		t.Errorf("Describe() = %q, want the file path", src.Describe())
	}
}

func TestFileSourcePicksDSLByExtension(t *testing.T) {
	path := writeFile(t, "policies.rules", dslRules)
	src := NewFileSource(path, quietLogger())

	rs, err := src.Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if rs.Len() != 1 {
		t.Errorf("rule count = %d, want 1", rs.Len())
	}
}

func TestFileSourceExplicitFormat(t *testing.T) {
	// DSL content under a .txt name still loads when the format is forced.
	path := writeFile(t, "policies.txt", dslRules)
	src := NewFileSourceWithFormat(path, parser.FormatDSL, quietLogger())

	if _, err := src.Load(context.Background()); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
}

func TestFileSourceMissingFile(t *testing.T) {
	src := NewFileSource(filepath.Join(t.TempDir(), "missing.yaml"), quietLogger())
	if _, err := src.Load(context.Background()); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestFileSourceInvalidRules(t *testing.T) {
	path := writeFile(t, "broken.yaml", "rules:\n  - name: x\n    action: {}\n")
	src := NewFileSource(path, quietLogger())

	_, err := src.Load(context.Background())
	if err == nil {
		t.Fatal("expected validation errors")
	}
	if el := engine.AsErrorList(err); el == nil {
		t.Errorf("expected *errors.ErrorList, got %T", err)
	}
}

func TestMemorySourceReloadCycle(t *testing.T) {
	src := NewMemorySource([]byte(yamlRules), parser.FormatYAML)

	rs, err := src.Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	d := engine.Decide(rs, state.Normal, &engine.Context{})
	if d.Action != engine.ActionBlock {
		t.Errorf("decision = %+v, want block", d)
	}

	src.Set([]byte(`
rules:
  - name: router
    priority: 50
    match:
      any: true
    action:
      route: a
`))
	rs, err = src.Load(context.Background())
	if err != nil {
		t.Fatalf("Load after Set failed: %v", err)
	}
	d = engine.Decide(rs, state.Normal, &engine.Context{})
	if d.Action != engine.ActionRoute {
		t.Errorf("decision = %+v, want route", d)
	}
}
