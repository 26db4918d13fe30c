package source

import (
	"context"
	"sync"

	"zerox/netpolicy/pkg/policy/engine"
	"zerox/netpolicy/pkg/policy/parser"
)

// MemorySource serves rule text held in memory. Tests use it to drive
// reload paths without touching the filesystem.
type MemorySource struct {
	mu     sync.Mutex
	data   []byte
	format parser.Format
}

// NewMemorySource creates an in-memory rule source.
func NewMemorySource(data []byte, format parser.Format) *MemorySource {
	return &MemorySource{data: data, format: format}
}

// Set replaces the held rule text.
func (s *MemorySource) Set(data []byte) {
	s.mu.Lock()
	s.data = data
	s.mu.Unlock()
}

// Load compiles the held rule text.
func (s *MemorySource) Load(ctx context.Context) (*engine.RuleSet, error) {
	s.mu.Lock()
	data := s.data
	s.mu.Unlock()
	return engine.Load(data, "memory", s.format)
}

// Describe identifies the source in logs.
func (s *MemorySource) Describe() string {
	return "memory"
}
