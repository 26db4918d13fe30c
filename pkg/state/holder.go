package state

import "sync"

// Holder owns the process-wide current operating state.
//
// It is written by a single external classifier and read concurrently by
// every decision call; the mutex guarantees readers always observe one
// complete state value, never a torn intermediate one.
type Holder struct {
	mu      sync.RWMutex
	current State
}

// NewHolder creates a Holder in the Normal state.
func NewHolder() *Holder {
	return &Holder{current: Normal}
}

// SetState replaces the current state. No transition legality is enforced.
func (h *Holder) SetState(s State) {
	h.mu.Lock()
	h.current = s
	h.mu.Unlock()
}

// Current returns the current state.
func (h *Holder) Current() State {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.current
}
