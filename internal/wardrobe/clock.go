package wardrobe

import "time"

// Clock abstracts time.Now() so sweeps and deadlines can be tested
// deterministically.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the standard time package.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time {
	return time.Now()
}

// now reads the clock at the millisecond resolution deadlines are stored
// with, so a deadline read back from storage compares equal to the one
// computed in memory.
func now(c Clock) time.Time {
	return time.UnixMilli(c.Now().UnixMilli())
}
