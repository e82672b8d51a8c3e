package triggerlink

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/ystepanoff/triggerlink/hal"
	proto "github.com/ystepanoff/triggerlink/protocol"
	"github.com/ystepanoff/triggerlink/transport"
	"github.com/ystepanoff/triggerlink/trigger"
)

// ReceiverNode drains the trigger events raised by the receive dispatch and
// drives the actuation window. The actuation timer is touched only from the
// poll loop; the receive context communicates through the adapter's queue.
type ReceiverNode struct {
	adapter *transport.Adapter
	timer   *trigger.ActuationTimer
	clock   hal.Clock
	poll    time.Duration
	log     zerolog.Logger
}

func NewReceiverNode(adapter *transport.Adapter, output hal.OutputPin, clock hal.Clock, actuationMs uint32, poll time.Duration, log zerolog.Logger) *ReceiverNode {
	return &ReceiverNode{
		adapter: adapter,
		timer:   trigger.NewActuationTimer(output, actuationMs),
		clock:   clock,
		poll:    poll,
		log:     log,
	}
}

func (n *ReceiverNode) Init() error { return n.adapter.Init() }

// Step runs one iteration of the poll loop: every pending trigger re-arms
// the window (extension, never stacking), then the timer is re-evaluated.
func (n *ReceiverNode) Step() {
	for {
		ev, ok := n.adapter.PollTrigger()
		if !ok {
			break
		}
		n.timer.Start(n.clock.Now())
		n.log.Info().Stringer("src", ev.Source).Uint32("seq", ev.Seq).Msg("trigger received")
	}
	n.timer.Tick(n.clock.Now())
}

// Run drives the poll loop until ctx is cancelled. The cadence bounds
// deactivation jitter, so keep it materially finer than the window.
func (n *ReceiverNode) Run(ctx context.Context) {
	ticker := time.NewTicker(n.poll)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n.Step()
		}
	}
}

// Active reports whether the actuation window is open.
func (n *ReceiverNode) Active() bool { return n.timer.Active() }

// Peers lists the discovered senders, insertion order. Diagnostics only.
func (n *ReceiverNode) Peers() []proto.Peer {
	return n.adapter.Registry().List()
}
