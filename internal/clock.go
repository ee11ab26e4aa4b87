package internal

import "time"

// SystemClock is the production time source. Tests substitute their own
// Clock so staleness windows can be driven deterministically.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}
