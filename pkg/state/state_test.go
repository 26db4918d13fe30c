package state

import (
	"sync"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input   string
		want    State
		wantErr bool
	}{
		{input: "NORMAL", want: Normal},
		{input: "DEGRADED", want: Degraded},
		{input: "FAILOVER", want: Failover},
		{input: "RECOVERY", want: Recovery},
		{input: "normal", want: Normal},
		{input: "Degraded", want: Degraded},
		{input: "  FAILOVER  ", want: Failover},
		{input: "", wantErr: true},
		{input: "PANIC", wantErr: true},
		{input: "NORMAL DEGRADED", wantErr: true},
	}

	for _, tt := range tests {
		got, err := Parse(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("Parse(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("Parse(%q) = %s, want %s", tt.input, got, tt.want)
		}
	}
}

func TestValid(t *testing.T) {
	for _, s := range All() {
		if !s.Valid() {
			t.Errorf("%s must be valid", s)
		}
	}
	if State("BROKEN").Valid() {
		t.Error("unknown state must not be valid")
	}
	if State("normal").Valid() {
		t.Error("Valid is case-sensitive; use Parse for user input")
	}
}

func TestHolderStartsNormal(t *testing.T) {
	h := NewHolder()
	if got := h.Current(); got != Normal {
		t.Errorf("initial state = %s, want NORMAL", got)
	}
}

func TestHolderSetAndGet(t *testing.T) {
	h := NewHolder()
	for _, s := range All() {
		h.SetState(s)
		if got := h.Current(); got != s {
			t.Errorf("Current() = %s, want %s", got, s)
		}
	}
}

func TestHolderConcurrentAccess(t *testing.T) {
	h := NewHolder()
	states := All()

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(offset int) {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				h.SetState(states[(offset+j)%len(states)])
			}
		}(i)
	}

	for i := 0; i < 4000; i++ {
		if got := h.Current(); !got.Valid() {
			t.Fatalf("read a torn state: %q", got)
		}
	}
	wg.Wait()
}
