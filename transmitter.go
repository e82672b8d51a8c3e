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

// TransmitterNode samples a button, debounces it, and broadcasts one message
// per qualifying press. Delivery is fire-and-forget: a lost frame is
// recovered only by the human pressing the button again.
type TransmitterNode struct {
	adapter *transport.Adapter
	input   hal.InputPin
	clock   hal.Clock
	edge    *trigger.EdgeDetector
	seq     uint32
	label   string
	poll    time.Duration
	log     zerolog.Logger
}

func NewTransmitterNode(adapter *transport.Adapter, input hal.InputPin, clock hal.Clock, debounceMs uint32, label string, poll time.Duration, log zerolog.Logger) *TransmitterNode {
	return &TransmitterNode{
		adapter: adapter,
		input:   input,
		clock:   clock,
		edge:    trigger.NewEdgeDetector(debounceMs),
		label:   label,
		poll:    poll,
		log:     log,
	}
}

func (n *TransmitterNode) Init() error { return n.adapter.Init() }

// Step runs one iteration of the poll loop: sample the pin and, on a
// qualifying press edge, broadcast the next message. A send failure is
// logged and leaves the edge state untouched; the next press retries.
func (n *TransmitterNode) Step() {
	if !n.edge.Sample(n.input.Read(), n.clock.Now()) {
		return
	}

	n.seq++
	payload := proto.EncodeMessage(n.seq, n.label)
	if err := n.adapter.Send(proto.BroadcastAddress, payload); err != nil {
		n.log.Error().Err(err).Uint32("seq", n.seq).Msg("broadcast failed")
		return
	}
	n.log.Info().Uint32("seq", n.seq).Msg("press broadcast")
}

// Run drives the poll loop until ctx is cancelled.
func (n *TransmitterNode) Run(ctx context.Context) {
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

// Seq reports the last sequence number handed to the codec.
func (n *TransmitterNode) Seq() uint32 { return n.seq }
