package core

import (
	"testing"
	"time"
)

func TestFixedStepAdvanceCarriesRemainder(t *testing.T) {
	fs := NewFixedStepInterval(200 * time.Millisecond)
	fs.Reset()

	if got := fs.Advance(150 * time.Millisecond); got != 0 {
		t.Fatalf("expected no step after 150ms, got %d", got)
	}
	if got := fs.Advance(100 * time.Millisecond); got != 1 {
		t.Fatalf("expected one step after 250ms total, got %d", got)
	}
	if got := fs.Advance(350 * time.Millisecond); got != 2 {
		t.Fatalf("expected two steps after carrying 50ms remainder, got %d", got)
	}
}

func TestFixedStepCapsCatchUp(t *testing.T) {
	fs := NewFixedStepInterval(10 * time.Millisecond)
	fs.Reset()
	fs.SetMaxSteps(3)

	if got := fs.Advance(time.Second); got != 3 {
		t.Fatalf("expected capped 3 steps, got %d", got)
	}
	if got := fs.Advance(0); got != 0 {
		t.Fatalf("expected surplus to be discarded after cap, got %d", got)
	}
}

func TestFixedStepWallClock(t *testing.T) {
	base := time.Unix(1000, 0)
	current := base
	fs := NewFixedStep(5)
	fs.now = func() time.Time { return current }

	if !fs.ShouldStep() {
		t.Fatal("first poll should fire immediately")
	}
	if fs.ShouldStep() {
		t.Fatal("second poll without elapsed time should not fire")
	}
	current = current.Add(450 * time.Millisecond)
	if got := fs.Steps(); got != 2 {
		t.Fatalf("expected 2 steps after 450ms at 5 TPS, got %d", got)
	}
}

func TestFixedStepSetTPS(t *testing.T) {
	fs := NewFixedStep(0)
	if fs.Interval() != time.Second/60 {
		t.Fatalf("expected default 60 TPS interval, got %s", fs.Interval())
	}
	fs.SetTPS(5)
	if fs.Interval() != 200*time.Millisecond {
		t.Fatalf("expected 200ms interval, got %s", fs.Interval())
	}
}
