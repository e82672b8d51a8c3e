package triggerlink

// Host constructors wiring node roles to an in-memory radio bus. Embedded
// deployments supply their own RadioDriver, pins, and clock instead.

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/ystepanoff/triggerlink/config"
	"github.com/ystepanoff/triggerlink/driver/sim"
	"github.com/ystepanoff/triggerlink/hal"
	"github.com/ystepanoff/triggerlink/transport"
)

func NewSimTransmitter(bus *sim.Bus, cfg config.Transmitter, button hal.InputPin, log zerolog.Logger) *TransmitterNode {
	drv := bus.Attach(cfg.ParsedAddress())
	registry := transport.NewRegistry(drv, 0)
	clock := hal.NewWallClock()
	adapter := transport.NewAdapter(drv, registry, clock, cfg.Channel, nil, log)
	return NewTransmitterNode(adapter, button, clock, cfg.DebounceMs, cfg.Label, time.Duration(cfg.PollMs)*time.Millisecond, log)
}

func NewSimReceiver(bus *sim.Bus, cfg config.Receiver, actuator hal.OutputPin, log zerolog.Logger) (*ReceiverNode, error) {
	linkKey, err := cfg.ParsedLinkKey()
	if err != nil {
		return nil, err
	}
	drv := bus.Attach(cfg.ParsedAddress())
	registry := transport.NewRegistry(drv, cfg.PeerCapacity)
	clock := hal.NewWallClock()
	adapter := transport.NewAdapter(drv, registry, clock, cfg.Channel, linkKey, log)
	return NewReceiverNode(adapter, actuator, clock, cfg.ActuationMs, time.Duration(cfg.PollMs)*time.Millisecond, log), nil
}
