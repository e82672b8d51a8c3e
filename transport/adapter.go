package transport

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/ystepanoff/triggerlink/hal"
	proto "github.com/ystepanoff/triggerlink/protocol"
)

// Adapter wraps a RadioDriver with the link's broadcast semantics: payload
// bounds on send, and a receive dispatch that discovers senders and raises
// trigger events for the poll loop to drain.
type Adapter struct {
	driver   RadioDriver
	registry *Registry
	clock    hal.Clock
	channel  uint8
	linkKey  []byte
	queue    triggerQueue
	log      zerolog.Logger
}

func NewAdapter(driver RadioDriver, registry *Registry, clock hal.Clock, channel uint8, linkKey []byte, log zerolog.Logger) *Adapter {
	return &Adapter{
		driver:   driver,
		registry: registry,
		clock:    clock,
		channel:  channel,
		linkKey:  linkKey,
		log:      log,
	}
}

// Init prepares the radio and installs the receive dispatch. A failure here
// is unrecoverable at this layer; the caller escalates it.
func (a *Adapter) Init() error {
	if err := a.driver.Init(); err != nil {
		return fmt.Errorf("%w: %v", proto.ErrInitFailed, err)
	}
	a.driver.OnReceive(a.dispatch)
	return nil
}

// Send transmits best-effort: unacknowledged, no retry. Oversized payloads
// are rejected before anything reaches the driver.
func (a *Adapter) Send(dst proto.PeerAddress, payload []byte) error {
	if max := a.driver.MaxPayloadLength(); len(payload) > max {
		return fmt.Errorf("%w: %d > %d", proto.ErrPayloadTooLarge, len(payload), max)
	}
	if err := a.driver.Send(dst, payload); err != nil {
		return fmt.Errorf("%w: %v", proto.ErrSendFailed, err)
	}
	return nil
}

// PollTrigger hands the next pending trigger event to the poll loop.
func (a *Adapter) PollTrigger() (TriggerEvent, bool) {
	return a.queue.pop()
}

func (a *Adapter) Registry() *Registry { return a.registry }

func (a *Adapter) MaxPayloadLength() int { return a.driver.MaxPayloadLength() }

// dispatch runs on the radio stack's execution context, concurrently with
// the poll loop. It never blocks: registry work is one bounded critical
// section and the queue push never waits.
//
// Broadcast frames qualify as trigger events regardless of payload content;
// an unknown sender is registered as a side effect. Directed frames go to
// the source peer's handler and never qualify as discovery events.
func (a *Adapter) dispatch(src, dst proto.PeerAddress, payload []byte) {
	now := a.clock.Now()
	msg := proto.DecodeMessage(payload)

	if !dst.IsBroadcast() {
		h, ok := a.registry.Lookup(src)
		if !ok {
			return
		}
		a.registry.Touch(h, now)
		if fn := a.registry.directedHandler(h); fn != nil {
			fn(src, msg)
		}
		return
	}

	h, ok := a.registry.Lookup(src)
	if ok {
		a.registry.Touch(h, now)
	} else if _, err := a.registry.Register(src, a.channel, proto.RoleStation, a.linkKey, now); err != nil {
		// Local failure: drop the registration, keep the trigger below.
		a.log.Warn().Err(err).Stringer("src", src).Msg("peer registration failed")
	} else {
		a.log.Info().Stringer("src", src).Uint8("channel", a.channel).Msg("registered new peer")
	}

	a.queue.push(TriggerEvent{Source: src, Seq: msg.Seq, At: now})
}
