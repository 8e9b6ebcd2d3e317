package core

import "time"

// DefaultMaxSteps caps how many steps a single Advance may release so a long
// stall (debugger, suspended window) does not trigger a catch-up spiral.
const DefaultMaxSteps = 8

// FixedStep converts elapsed time into whole simulation steps of a fixed
// interval. The remainder carries over to the next call.
type FixedStep struct {
	step        time.Duration
	accumulator time.Duration
	last        time.Time
	maxSteps    int

	now func() time.Time
}

// NewFixedStep constructs a FixedStep controller targeting the given TPS.
func NewFixedStep(tps int) *FixedStep {
	if tps <= 0 {
		tps = 60
	}
	return NewFixedStepInterval(time.Second / time.Duration(tps))
}

// NewFixedStepInterval constructs a FixedStep controller firing every
// interval. The first wall-clock poll fires immediately.
func NewFixedStepInterval(interval time.Duration) *FixedStep {
	fs := &FixedStep{maxSteps: DefaultMaxSteps, now: time.Now}
	fs.SetInterval(interval)
	fs.accumulator = fs.step
	return fs
}

// SetTPS changes the tick rate. It is safe to call from the main loop.
func (f *FixedStep) SetTPS(tps int) {
	if tps <= 0 {
		tps = 60
	}
	f.SetInterval(time.Second / time.Duration(tps))
}

// SetInterval changes the step length.
func (f *FixedStep) SetInterval(interval time.Duration) {
	if interval <= 0 {
		interval = time.Second / 60
	}
	f.step = interval
}

// Interval returns the step length.
func (f *FixedStep) Interval() time.Duration { return f.step }

// SetMaxSteps bounds the steps released per call. n <= 0 removes the bound.
func (f *FixedStep) SetMaxSteps(n int) { f.maxSteps = n }

// Reset drops any accumulated time and forgets the last wall-clock poll.
func (f *FixedStep) Reset() {
	f.accumulator = 0
	f.last = time.Time{}
}

// Advance adds delta to the accumulator and returns how many whole steps are
// due. When the step cap is hit the surplus is discarded.
func (f *FixedStep) Advance(delta time.Duration) int {
	if delta > 0 {
		f.accumulator += delta
	}
	steps := 0
	for f.accumulator >= f.step {
		f.accumulator -= f.step
		steps++
		if f.maxSteps > 0 && steps >= f.maxSteps {
			if f.accumulator >= f.step {
				f.accumulator %= f.step
			}
			break
		}
	}
	return steps
}

// Steps polls the wall clock and returns how many steps are due since the
// previous poll.
func (f *FixedStep) Steps() int {
	now := f.now()
	if f.last.IsZero() {
		f.last = now
	}
	delta := now.Sub(f.last)
	f.last = now
	return f.Advance(delta)
}

// ShouldStep reports whether at least one step is due, releasing one step at
// most. Extra due steps stay in the accumulator.
func (f *FixedStep) ShouldStep() bool {
	now := f.now()
	if f.last.IsZero() {
		f.last = now
	}
	f.accumulator += now.Sub(f.last)
	f.last = now
	if f.accumulator >= f.step {
		f.accumulator -= f.step
		return true
	}
	return false
}
