// Package clock provides the monotonic millisecond time source used by the
// control state machines. Ticks wrap at 2^32 ms; elapsed time is always
// computed with unsigned subtraction so one wrap inside an interval is harmless.
package clock

import "time"

// Ticks is a wrapping millisecond counter.
type Ticks uint32

// Clock returns the current tick count.
type Clock interface {
	Now() Ticks
}

// Since returns the time elapsed from earlier to now.
func Since(earlier, now Ticks) time.Duration {
	return time.Duration(now-earlier) * time.Millisecond
}

// Monotonic counts milliseconds since it was created.
type Monotonic struct {
	start time.Time
}

// NewMonotonic creates a Monotonic clock starting at zero.
func NewMonotonic() *Monotonic {
	return &Monotonic{start: time.Now()}
}

// Now returns the milliseconds since creation, truncated to 32 bits.
func (m *Monotonic) Now() Ticks {
	return Ticks(uint64(time.Since(m.start).Milliseconds()))
}

// Fake is a manually advanced clock for tests.
type Fake struct {
	now Ticks
}

// NewFake creates a Fake clock at the given tick count.
func NewFake(start Ticks) *Fake {
	return &Fake{now: start}
}

// Now returns the current fake tick count.
func (f *Fake) Now() Ticks {
	return f.now
}

// Advance moves the clock forward by d, truncated to whole milliseconds.
func (f *Fake) Advance(d time.Duration) {
	f.now += Ticks(d.Milliseconds())
}

// Set moves the clock to an absolute tick count.
func (f *Fake) Set(t Ticks) {
	f.now = t
}
