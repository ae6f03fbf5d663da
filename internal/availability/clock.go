package availability

import "time"

// Clock abstracts the current instant so the lead-time rule is testable.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a plain function to the Clock interface.
type ClockFunc func() time.Time

// Now implements Clock.
func (f ClockFunc) Now() time.Time { return f() }

// SystemClock returns the wall clock of the device. Note that the generator
// compares it against string-parsed schedule times, so a device whose clock or
// timezone differs from the clinic's skews the lead-time rule.
func SystemClock() Clock {
	return ClockFunc(time.Now)
}
