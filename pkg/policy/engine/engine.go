package engine

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"zerox/netpolicy/pkg/state"
)

// RuleSource provides compiled rulesets to the engine, typically from a
// file on disk.
type RuleSource interface {
	// Load loads and compiles the full ruleset from the source.
	Load(ctx context.Context) (*RuleSet, error)

	// Describe names the source for logs and errors (e.g. a file path).
	Describe() string
}

// Observer receives every decision the engine makes. Implementations must
// be safe for concurrent use; metrics collectors and audit recorders hang
// off this interface.
type Observer interface {
	ObserveDecision(ctx *Context, st state.State, d Decision, elapsed time.Duration)
}

// Engine wraps the pure Decide function with the runtime concerns of a
// long-lived daemon: an atomically swappable active ruleset, a state
// holder, and decision observers.
//
// Decide calls are safe from any number of goroutines. A reload builds a
// complete new RuleSet before swapping the pointer under the write lock, so
// concurrent decisions observe either the fully-old or fully-new set.
type Engine struct {
	mu      sync.RWMutex
	ruleset *RuleSet

	states    *state.Holder
	logger    *slog.Logger
	observers []Observer
}

// Option configures an Engine.
type Option func(*Engine)

// WithObserver registers a decision observer.
func WithObserver(o Observer) Option {
	return func(e *Engine) {
		if o != nil {
			e.observers = append(e.observers, o)
		}
	}
}

// New creates an engine serving the given initial ruleset. The state holder
// must not be nil; pass a fresh NewHolder for a standalone engine.
func New(initial *RuleSet, states *state.Holder, logger *slog.Logger, opts ...Option) *Engine {
	if states == nil {
		states = state.NewHolder()
	}
	if logger == nil {
		logger = slog.Default()
	}

	e := &Engine{
		ruleset: initial,
		states:  states,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// States returns the engine's state holder, the mutation entry point for an
// external classifier.
func (e *Engine) States() *state.Holder {
	return e.states
}

// Current returns the active ruleset (nil before the first successful load).
func (e *Engine) Current() *RuleSet {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.ruleset
}

// Swap atomically replaces the active ruleset and returns the previous one.
// In-flight Decide calls holding the old pointer remain valid.
func (e *Engine) Swap(rs *RuleSet) *RuleSet {
	e.mu.Lock()
	old := e.ruleset
	e.ruleset = rs
	e.mu.Unlock()

	e.logger.Info("ruleset swapped",
		"rule_count", rs.Len(),
	)
	return old
}

// Reload loads a fresh ruleset from the source and swaps it in. On failure
// the active ruleset is left untouched and keeps serving decisions.
func (e *Engine) Reload(ctx context.Context, source RuleSource) error {
	rs, err := source.Load(ctx)
	if err != nil {
		e.logger.Error("ruleset reload rejected, keeping previous ruleset",
			"source", source.Describe(),
			"error", err,
		)
		return &ReloadError{Source: source.Describe(), Cause: err}
	}

	e.Swap(rs)
	return nil
}

// Decide evaluates the active ruleset against one context under the current
// operating state. It is synchronous, performs no I/O and runs in time
// proportional to the rule count.
func (e *Engine) Decide(ctx *Context) Decision {
	start := time.Now()

	rs := e.Current()
	st := e.states.Current()
	d := Decide(rs, st, ctx)

	elapsed := time.Since(start)
	for _, o := range e.observers {
		o.ObserveDecision(ctx, st, d, elapsed)
	}

	return d
}
