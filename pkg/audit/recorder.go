package audit

import (
	"context"
	"log/slog"
	"time"

	"zerox/netpolicy/pkg/policy/engine"
	"zerox/netpolicy/pkg/state"
)

// Recorder turns engine decisions into audit records. It implements
// engine.Observer.
type Recorder struct {
	storage Storage
	logger  *slog.Logger
}

// NewRecorder creates a recorder writing to the given storage.
func NewRecorder(storage Storage, logger *slog.Logger) *Recorder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Recorder{
		storage: storage,
		logger:  logger.With("component", "audit.recorder"),
	}
}

// ObserveDecision implements engine.Observer. A storage failure is logged
// but never propagated; auditing must not affect decisions.
func (r *Recorder) ObserveDecision(c *engine.Context, st state.State, d engine.Decision, elapsed time.Duration) {
	rec := NewRecord()
	rec.State = string(st)
	rec.Matched = d.Matched
	rec.Rule = d.Rule
	rec.Action = string(d.Action)
	rec.Target = d.Target
	rec.Log = d.Log
	rec.DurationMicros = elapsed.Microseconds()

	if c != nil {
		rec.SNI = c.SNI
		rec.Protocol = c.Protocol
		rec.Port = c.Port
		rec.LatencyMS = c.LatencyMS
		rec.RTTMS = c.RTTMS
	}

	// Decisions are synchronous and hot; keep the write bounded.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := r.storage.Store(ctx, rec); err != nil {
		r.logger.Error("failed to store audit record",
			"record_id", rec.ID,
			"rule", rec.Rule,
			"error", err,
		)
	}
}
