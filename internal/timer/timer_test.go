package timer

import (
	"testing"
	"time"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func newFake() (*Timer, *fakeClock) {
	clock := &fakeClock{now: time.Unix(1000, 0)}
	return New(clock, 0), clock
}

func TestObserveStartsOnFirstCharacter(t *testing.T) {
	tm, _ := newFake()
	if tm.State() != Idle {
		t.Fatalf("expected idle, got %s", tm.State())
	}
	id, ok := tm.Observe("a")
	if !ok || id == 0 {
		t.Fatalf("expected tick to be scheduled")
	}
	if tm.State() != Running {
		t.Fatalf("expected running, got %s", tm.State())
	}
	if _, ok := tm.Observe("ab"); ok {
		t.Fatalf("expected no second tick while running")
	}
	if tm.ActiveTicks() != 1 {
		t.Fatalf("expected 1 active tick, got %d", tm.ActiveTicks())
	}
}

func TestObserveEmptyResets(t *testing.T) {
	tm, clock := newFake()
	id, _ := tm.Observe("a")
	clock.advance(300 * time.Millisecond)
	if _, ok := tm.Tick(id); !ok {
		t.Fatalf("expected live tick")
	}
	if _, ok := tm.Observe(""); ok {
		t.Fatalf("empty input must not schedule a tick")
	}
	if tm.State() != Idle {
		t.Fatalf("expected idle after emptying input")
	}
	if tm.Display() != "0.00s" {
		t.Fatalf("expected display reset, got %s", tm.Display())
	}
	if _, ok := tm.Tick(id); ok {
		t.Fatalf("expected stale tick to be cancelled")
	}
	if tm.ActiveTicks() != 0 {
		t.Fatalf("expected no active ticks, got %d", tm.ActiveTicks())
	}
}

func TestTickIsObservational(t *testing.T) {
	tm, clock := newFake()
	id, _ := tm.Observe("x")
	clock.advance(40 * time.Millisecond)
	elapsed, ok := tm.Tick(id)
	if !ok || elapsed != 40*time.Millisecond {
		t.Fatalf("unexpected tick result %v %v", elapsed, ok)
	}
	if tm.Display() != "0.04s" {
		t.Fatalf("unexpected display %s", tm.Display())
	}
	clock.advance(1210 * time.Millisecond)
	d, ok := tm.Finalize()
	if !ok {
		t.Fatalf("expected finalize to succeed")
	}
	if d != 1250*time.Millisecond {
		t.Fatalf("expected duration measured from start, got %v", d)
	}
}

func TestFinalizeCancelsTick(t *testing.T) {
	tm, clock := newFake()
	first, _ := tm.Observe("x")
	clock.advance(time.Second)
	if _, ok := tm.Finalize(); !ok {
		t.Fatalf("expected finalize")
	}
	if _, ok := tm.Tick(first); ok {
		t.Fatalf("tick must be cancelled after finalize")
	}
	if tm.ActiveTicks() != 0 {
		t.Fatalf("expected no active ticks")
	}
	second, ok := tm.Observe("y")
	if !ok || second == first {
		t.Fatalf("expected a fresh tick id, got %d (first %d)", second, first)
	}
	if _, ok := tm.Tick(first); ok {
		t.Fatalf("old tick must stay cancelled after restart")
	}
	if _, ok := tm.Tick(second); !ok {
		t.Fatalf("new tick must be live")
	}
}

func TestFinalizeWhileIdle(t *testing.T) {
	tm, _ := newFake()
	if _, ok := tm.Finalize(); ok {
		t.Fatalf("finalize while idle must be a no-op")
	}
}

func TestDurationNeverNegative(t *testing.T) {
	tm, clock := newFake()
	tm.Observe("x")
	clock.advance(-time.Second)
	d, ok := tm.Finalize()
	if !ok || d != 0 {
		t.Fatalf("expected clamped zero duration, got %v", d)
	}
}

func TestAtMostOneActiveTick(t *testing.T) {
	tm, clock := newFake()
	inputs := []string{"a", "ab", "", "a", "ab", "abc", "", ""}
	for _, in := range inputs {
		tm.Observe(in)
		clock.advance(5 * time.Millisecond)
		if n := tm.ActiveTicks(); n > 1 {
			t.Fatalf("expected at most one active tick, got %d", n)
		}
	}
}

func TestFormatSeconds(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "0.00s"},
		{1200 * time.Millisecond, "1.20s"},
		{2500 * time.Millisecond, "2.50s"},
		{61 * time.Second, "61.00s"},
	}
	for _, tt := range tests {
		if got := FormatSeconds(tt.in); got != tt.want {
			t.Fatalf("FormatSeconds(%v) = %q want %q", tt.in, got, tt.want)
		}
	}
}
