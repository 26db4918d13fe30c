package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Record is one audited policy decision.
type Record struct {
	// ID uniquely identifies the record.
	ID string

	// Time is when the decision was made.
	Time time.Time

	// State is the network state at decision time.
	State string

	// Matched reports whether any rule matched.
	Matched bool

	// Rule is the name of the winning rule (empty when no rule matched).
	Rule string

	// Action is the decided action kind.
	Action string

	// Target is the action argument (route name or throttle rate).
	Target string

	// Log reports whether the decision asked for logging.
	Log bool

	// Connection attributes the decision was made against. Numeric fields
	// are pointers so absent attributes stay distinguishable from zero.
	SNI       string
	Protocol  string
	Port      *uint16
	LatencyMS *uint32
	RTTMS     *uint32

	// DurationMicros is the evaluation time in microseconds.
	DurationMicros int64
}

// NewRecord creates a record with a fresh UUID and the current time.
func NewRecord() *Record {
	return &Record{
		ID:   uuid.New().String(),
		Time: time.Now().UTC(),
	}
}

// Storage persists audit records.
type Storage interface {
	// Store persists a record.
	Store(ctx context.Context, rec *Record) error

	// Recent returns the most recent records, newest first.
	Recent(ctx context.Context, limit int) ([]*Record, error)

	// Count returns the total number of stored records.
	Count(ctx context.Context) (int64, error)

	// DeleteOlderThan deletes records older than the cutoff and returns
	// the number deleted.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)

	// TrimToCount deletes the oldest records until at most keep remain,
	// returning the number deleted.
	TrimToCount(ctx context.Context, keep int64) (int64, error)

	// Close releases storage resources.
	Close() error
}
