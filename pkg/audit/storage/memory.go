package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"zerox/netpolicy/pkg/audit"
)

// MemoryStorage is an in-memory implementation of audit.Storage, used in
// tests and when audit persistence is disabled.
type MemoryStorage struct {
	mu      sync.RWMutex
	records []*audit.Record
}

// NewMemoryStorage creates an empty in-memory store.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

// Store persists a record.
func (s *MemoryStorage) Store(_ context.Context, rec *audit.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *rec
	s.records = append(s.records, &cp)
	return nil
}

// Recent returns the most recent records, newest first.
func (s *MemoryStorage) Recent(_ context.Context, limit int) ([]*audit.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sorted := make([]*audit.Record, len(s.records))
	copy(sorted, s.records)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Time.After(sorted[j].Time)
	})

	if limit > 0 && limit < len(sorted) {
		sorted = sorted[:limit]
	}
	return sorted, nil
}

// Count returns the total number of stored records.
func (s *MemoryStorage) Count(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.records)), nil
}

// DeleteOlderThan deletes records older than the cutoff.
func (s *MemoryStorage) DeleteOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var kept []*audit.Record
	var deleted int64
	for _, rec := range s.records {
		if rec.Time.Before(cutoff) {
			deleted++
			continue
		}
		kept = append(kept, rec)
	}
	s.records = kept
	return deleted, nil
}

// TrimToCount deletes the oldest records until at most keep remain.
func (s *MemoryStorage) TrimToCount(_ context.Context, keep int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if int64(len(s.records)) <= keep {
		return 0, nil
	}

	sort.Slice(s.records, func(i, j int) bool {
		return s.records[i].Time.Before(s.records[j].Time)
	})

	deleted := int64(len(s.records)) - keep
	s.records = s.records[deleted:]
	return deleted, nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStorage) Close() error {
	return nil
}
