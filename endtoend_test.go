package triggerlink

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ystepanoff/triggerlink/driver/sim"
	"github.com/ystepanoff/triggerlink/hal"
	proto "github.com/ystepanoff/triggerlink/protocol"
	"github.com/ystepanoff/triggerlink/transport"
)

var (
	txAddr = proto.PeerAddress{0x02, 0, 0, 0, 0, 0x01}
	rxAddr = proto.PeerAddress{0x02, 0, 0, 0, 0, 0x02}
)

type txRig struct {
	node   *TransmitterNode
	driver *sim.Driver
	button *hal.MemPin
	clock  *hal.ManualClock
}

type rxRig struct {
	node     *ReceiverNode
	driver   *sim.Driver
	actuator *hal.MemPin
	clock    *hal.ManualClock
}

func newTxRig(t *testing.T, bus *sim.Bus) *txRig {
	t.Helper()
	drv := bus.Attach(txAddr)
	clock := hal.NewManualClock(0)
	button := hal.NewMemPin(hal.High)
	adapter := transport.NewAdapter(drv, transport.NewRegistry(drv, 4), clock, 7, nil, zerolog.Nop())
	node := NewTransmitterNode(adapter, button, clock, 250, "bench", time.Millisecond, zerolog.Nop())
	require.NoError(t, node.Init())
	return &txRig{node: node, driver: drv, button: button, clock: clock}
}

func newRxRig(t *testing.T, bus *sim.Bus, actuationMs uint32) *rxRig {
	t.Helper()
	drv := bus.Attach(rxAddr)
	clock := hal.NewManualClock(0)
	actuator := hal.NewMemPin(hal.Low)
	adapter := transport.NewAdapter(drv, transport.NewRegistry(drv, 4), clock, 7, nil, zerolog.Nop())
	node := NewReceiverNode(adapter, actuator, clock, actuationMs, time.Millisecond, zerolog.Nop())
	require.NoError(t, node.Init())
	return &rxRig{node: node, driver: drv, actuator: actuator, clock: clock}
}

// press plays one debounced press edge into the transmitter's poll loop.
func (r *txRig) press() {
	r.button.Write(hal.Low)
	r.node.Step()
	r.button.Write(hal.High)
	r.node.Step()
}

func TestEndToEnd_PressActuatesAndTimesOut(t *testing.T) {
	bus := sim.NewBus()
	tx := newTxRig(t, bus)
	rx := newRxRig(t, bus, 1000)

	require.Empty(t, rx.node.Peers(), "registry starts empty at boot")

	tx.press()

	// The bus delivers on its own goroutine; poll until the trigger lands.
	require.Eventually(t, func() bool {
		rx.node.Step()
		return rx.node.Active()
	}, time.Second, time.Millisecond, "broadcast press must open the actuation window")
	assert.Equal(t, hal.High, rx.actuator.Read())

	peers := rx.node.Peers()
	require.Len(t, peers, 1, "the unknown sender is discovered exactly once")
	assert.Equal(t, txAddr, peers[0].Address)

	rx.clock.Advance(999)
	rx.node.Step()
	assert.True(t, rx.node.Active())

	rx.clock.Advance(1)
	rx.node.Step()
	assert.False(t, rx.node.Active())
	assert.Equal(t, hal.Low, rx.actuator.Read())
}

func TestEndToEnd_SecondPressExtendsWindow(t *testing.T) {
	bus := sim.NewBus()
	rx := newRxRig(t, bus, 1000)

	payload := proto.EncodeMessage(1, "bench")
	rx.driver.InjectRx(txAddr, proto.BroadcastAddress, payload)
	rx.node.Step()
	require.True(t, rx.node.Active())

	rx.clock.Set(500)
	rx.driver.InjectRx(txAddr, proto.BroadcastAddress, proto.EncodeMessage(2, "bench"))
	rx.node.Step()

	rx.clock.Set(1499)
	rx.node.Step()
	assert.True(t, rx.node.Active(), "re-arm at t=500 keeps the window open until t=1500")

	rx.clock.Set(1500)
	rx.node.Step()
	assert.False(t, rx.node.Active())

	assert.Len(t, rx.node.Peers(), 1, "repeat frames never duplicate the peer entry")
}

func TestTransmitter_DebouncedPressesSendOnce(t *testing.T) {
	bus := sim.NewBus()
	tx := newTxRig(t, bus)

	// Raw edges at t=0 and t=50 with a 250ms debounce window.
	tx.button.Write(hal.Low)
	tx.node.Step()
	tx.clock.Set(30)
	tx.button.Write(hal.High)
	tx.node.Step()
	tx.clock.Set(50)
	tx.button.Write(hal.Low)
	tx.node.Step()

	frames := tx.driver.TxLog()
	require.Len(t, frames, 1, "bounce inside the window must not transmit")

	msg := proto.DecodeMessage(frames[0])
	assert.Equal(t, uint32(1), msg.Seq, "sequence counter starts at 1")
	assert.Equal(t, "bench", msg.Text)

	// A clean press after the window transmits with the next sequence.
	tx.clock.Set(400)
	tx.button.Write(hal.High)
	tx.node.Step()
	tx.clock.Set(420)
	tx.button.Write(hal.Low)
	tx.node.Step()

	frames = tx.driver.TxLog()
	require.Len(t, frames, 2)
	assert.Equal(t, uint32(2), proto.DecodeMessage(frames[1]).Seq)
}

func TestTransmitter_SendFailureRecoversOnNextPress(t *testing.T) {
	bus := sim.NewBus()
	tx := newTxRig(t, bus)

	tx.driver.FailSend(true)
	tx.press()
	assert.Empty(t, tx.driver.TxLog())

	tx.driver.FailSend(false)
	tx.clock.Advance(300) // past the debounce hold
	tx.button.Write(hal.High)
	tx.node.Step() // release sampled once the hold window is over
	tx.button.Write(hal.Low)
	tx.node.Step()

	frames := tx.driver.TxLog()
	require.Len(t, frames, 1, "the next press is the retry mechanism")
	assert.Equal(t, uint32(2), proto.DecodeMessage(frames[0]).Seq)
}
