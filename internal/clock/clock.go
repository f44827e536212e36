// Package clock abstracts the wall clock so time-dependent code can be tested.
package clock

import "time"

// Clock returns the current time.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the system time.
type RealClock struct{}

// Now returns the current time from the system clock.
func (RealClock) Now() time.Time {
	return time.Now()
}

// Fixed is a Clock frozen at a given instant.
type Fixed struct {
	At time.Time
}

// Now returns the frozen instant.
func (f *Fixed) Now() time.Time {
	return f.At
}

// Advance moves the frozen instant forward by d.
func (f *Fixed) Advance(d time.Duration) {
	f.At = f.At.Add(d)
}

var (
	_ Clock = RealClock{}
	_ Clock = (*Fixed)(nil)
)
