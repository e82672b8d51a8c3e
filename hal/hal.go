// Package hal abstracts the digital I/O and clock primitives the trigger
// nodes poll. Implementations for real hardware live outside this module;
// the in-memory implementations here back host builds and tests.
package hal

// Level is a digital logic level.
type Level bool

const (
	Low  Level = false
	High Level = true
)

type InputPin interface {
	Read() Level
}

type OutputPin interface {
	Write(Level)
}

// Clock is a monotonic millisecond counter. It wraps at the uint32 boundary;
// always compare instants with Elapsed, never directly.
type Clock interface {
	Now() uint32
}

// Elapsed returns now-since modulo 2^32. The subtraction is correct across
// wraparound as long as the measured interval is under half the counter range.
func Elapsed(now, since uint32) uint32 {
	return now - since
}
