package trigger

import "github.com/ystepanoff/triggerlink/hal"

// ActuationTimer drives an output high on Start and back low once a fixed
// window has elapsed. Deactivation happens in Tick, which the owning poll
// loop must call at a cadence materially finer than the window so that
// switch-off jitter stays bounded.
type ActuationTimer struct {
	out         hal.OutputPin
	duration    uint32
	active      bool
	activatedAt uint32
}

func NewActuationTimer(out hal.OutputPin, durationMs uint32) *ActuationTimer {
	out.Write(hal.Low)
	return &ActuationTimer{out: out, duration: durationMs}
}

// Start arms the window and raises the output. Calling Start while already
// active extends the window from now; windows never stack, and there is no
// way to cut one short.
func (t *ActuationTimer) Start(now uint32) {
	t.active = true
	t.activatedAt = now
	t.out.Write(hal.High)
}

// Tick re-evaluates the window against now. The subtraction-based comparison
// stays correct when the clock wraps, provided the window is under half the
// counter range.
func (t *ActuationTimer) Tick(now uint32) {
	if t.active && hal.Elapsed(now, t.activatedAt) >= t.duration {
		t.out.Write(hal.Low)
		t.active = false
	}
}

func (t *ActuationTimer) Active() bool { return t.active }
