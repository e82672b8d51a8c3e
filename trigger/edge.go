// Package trigger holds the pure state machines of the link: button edge
// detection on the transmitter side and timed actuation on the receiver side.
// Neither type touches hardware or the clock directly; every instant comes in
// as a uint32 millisecond argument so the logic stays testable.
package trigger

import "github.com/ystepanoff/triggerlink/hal"

// EdgeDetector turns raw samples of an active-low button into discrete press
// events, one per qualifying released-to-pressed transition. The previous
// sampled level encodes the state: High means Released, Low means Pressed.
type EdgeDetector struct {
	debounce uint32
	prev     hal.Level
	holding  bool
	edgeAt   uint32
}

func NewEdgeDetector(debounceMs uint32) *EdgeDetector {
	return &EdgeDetector{debounce: debounceMs, prev: hal.High}
}

// Sample feeds one raw reading. It returns true exactly when a press edge
// qualifies: the level moved from released to pressed and the debounce hold
// window opened by the previous press has passed. Raw transitions inside the
// hold window are not evaluated at all, so contact bounce cannot retrigger.
func (d *EdgeDetector) Sample(level hal.Level, now uint32) bool {
	if d.holding {
		if hal.Elapsed(now, d.edgeAt) < d.debounce {
			return false
		}
		d.holding = false
	}

	pressed := level == hal.Low && d.prev == hal.High
	d.prev = level

	if pressed {
		d.holding = true
		d.edgeAt = now
	}

	return pressed
}
