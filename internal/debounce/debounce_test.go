package debounce

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestDebouncerCoalesces(t *testing.T) {
	d := New(30 * time.Millisecond)

	var calls atomic.Int64
	var lastGen atomic.Uint64
	for i := 0; i < 5; i++ {
		d.Do(func(gen uint64) {
			calls.Add(1)
			lastGen.Store(gen)
		})
		time.Sleep(5 * time.Millisecond)
	}

	time.Sleep(80 * time.Millisecond)

	if got := calls.Load(); got != 1 {
		t.Errorf("expected 1 trailing-edge call, got %d", got)
	}
	if got := lastGen.Load(); got != 5 {
		t.Errorf("expected generation 5, got %d", got)
	}
}

func TestDebouncerCancel(t *testing.T) {
	d := New(20 * time.Millisecond)

	var called atomic.Bool
	d.Do(func(uint64) { called.Store(true) })
	d.Cancel()

	time.Sleep(60 * time.Millisecond)
	if called.Load() {
		t.Error("cancelled invocation must not fire")
	}
}

// A later request's result supersedes an earlier in-flight one: the
// earlier generation no longer matches Generation().
func TestDebouncerSupersede(t *testing.T) {
	d := New(10 * time.Millisecond)

	var mu sync.Mutex
	var applied []uint64

	apply := func(gen uint64) {
		mu.Lock()
		defer mu.Unlock()
		if gen == d.Generation() {
			applied = append(applied, gen)
		}
	}

	d.Do(apply)
	time.Sleep(30 * time.Millisecond) // first fires, gen 1
	d.Do(apply)
	d.Do(apply) // supersedes gen 2 before it fires
	time.Sleep(30 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	want := []uint64{1, 3}
	if len(applied) != len(want) {
		t.Fatalf("applied %v, want %v", applied, want)
	}
	for i := range want {
		if applied[i] != want[i] {
			t.Fatalf("applied %v, want %v", applied, want)
		}
	}
}
