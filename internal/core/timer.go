package core

import "time"

// DefaultInterval is the tick interval used when none is configured.
const DefaultInterval = 100 * time.Millisecond

// FixedStep gates simulation updates to a fixed interval. It starts stopped.
type FixedStep struct {
	step        time.Duration
	accumulator time.Duration
	last        time.Time
	running     bool
	now         func() time.Time
}

// NewFixedStep constructs a FixedStep controller with the given interval.
func NewFixedStep(interval time.Duration) *FixedStep {
	fs := &FixedStep{now: time.Now}
	fs.SetInterval(interval)
	return fs
}

// SetInterval changes the tick interval. It is safe to call from the main loop.
func (f *FixedStep) SetInterval(interval time.Duration) {
	if interval <= 0 {
		interval = DefaultInterval
	}
	f.step = interval
}

// Interval returns the configured tick interval.
func (f *FixedStep) Interval() time.Duration { return f.step }

// Start resumes ticking. The first tick fires one interval after Start.
func (f *FixedStep) Start() {
	if f.running {
		return
	}
	f.running = true
	f.accumulator = 0
	f.last = f.now()
}

// Stop halts ticking until Start is called again.
func (f *FixedStep) Stop() { f.running = false }

// Running reports whether the timer is started.
func (f *FixedStep) Running() bool { return f.running }

// ShouldStep reports whether the simulation should advance by one tick. At
// most one tick is reported per call, and a stall leaves at most one queued
// tick, which the next call reports immediately.
func (f *FixedStep) ShouldStep() bool {
	if !f.running {
		return false
	}
	now := f.now()
	f.accumulator += now.Sub(f.last)
	f.last = now
	if f.accumulator >= f.step {
		f.accumulator -= f.step
		if f.accumulator > f.step {
			f.accumulator = f.step
		}
		return true
	}
	return false
}
