package source

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"zerox/netpolicy/pkg/policy/engine"
	"zerox/netpolicy/pkg/policy/parser"
)

// FileSource loads a ruleset from a single file. The format follows the
// extension: ".rules" selects the compact DSL, anything else is YAML.
type FileSource struct {
	path   string
	format parser.Format
	logger *slog.Logger
}

// NewFileSource creates a file-backed rule source.
func NewFileSource(path string, logger *slog.Logger) *FileSource {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileSource{
		path:   path,
		format: parser.FormatForPath(path),
		logger: logger,
	}
}

// NewFileSourceWithFormat creates a file-backed rule source with an
// explicit format, overriding extension-based detection.
func NewFileSourceWithFormat(path string, format parser.Format, logger *slog.Logger) *FileSource {
	s := NewFileSource(path, logger)
	s.format = format
	return s
}

// Load reads, parses, validates and compiles the rule file.
func (s *FileSource) Load(ctx context.Context) (*engine.RuleSet, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file %q: %w", s.path, err)
	}

	rs, err := engine.Load(data, s.path, s.format)
	if err != nil {
		return nil, err
	}

	s.logger.Info("loaded ruleset",
		"path", s.path,
		"format", string(s.format),
		"rule_count", rs.Len(),
	)

	return rs, nil
}

// Describe returns the file path.
func (s *FileSource) Describe() string {
	return s.path
}
