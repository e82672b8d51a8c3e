// Package sim provides an in-memory radio bus for host-side development and
// testing. Drivers attached to the same Bus share one channel; Send delivers
// to the other drivers on a separate goroutine, mirroring how a real radio
// stack invokes its receive callback from its own task.
package sim

import (
	"errors"
	"sync"

	proto "github.com/ystepanoff/triggerlink/protocol"
	"github.com/ystepanoff/triggerlink/transport"
)

var (
	errInjectedInit    = errors.New("sim: injected init failure")
	errInjectedAddPeer = errors.New("sim: injected add-peer failure")
	errInjectedSend    = errors.New("sim: injected send failure")
)

// Bus is the shared air between drivers.
type Bus struct {
	mu      sync.Mutex
	drivers map[proto.PeerAddress]*Driver
}

func NewBus() *Bus {
	return &Bus{drivers: make(map[proto.PeerAddress]*Driver)}
}

// Attach creates a driver with the given hardware address and joins it to
// the bus. Re-attaching an address replaces the previous driver.
func (b *Bus) Attach(addr proto.PeerAddress) *Driver {
	d := &Driver{bus: b, addr: addr, peers: make(map[proto.PeerAddress]transport.PeerDescriptor)}
	b.mu.Lock()
	b.drivers[addr] = d
	b.mu.Unlock()
	return d
}

// deliver fans one frame out to every other driver that should hear it.
// Runs on its own goroutine so senders never observe receiver work.
func (b *Bus) deliver(src, dst proto.PeerAddress, payload []byte) {
	b.mu.Lock()
	targets := make([]*Driver, 0, len(b.drivers))
	for addr, d := range b.drivers {
		if addr == src {
			continue
		}
		if dst.IsBroadcast() || dst == addr {
			targets = append(targets, d)
		}
	}
	b.mu.Unlock()

	for _, d := range targets {
		d.receive(src, dst, payload)
	}
}

// Driver implements transport.RadioDriver over the in-memory bus.
type Driver struct {
	bus  *Bus
	addr proto.PeerAddress

	mu     sync.Mutex
	onRecv transport.ReceiveFunc
	peers  map[proto.PeerAddress]transport.PeerDescriptor
	txLog  [][]byte

	failInit    bool
	failAddPeer bool
	failSend    bool
}

func (d *Driver) Init() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.failInit {
		return errInjectedInit
	}
	return nil
}

func (d *Driver) AddPeer(desc transport.PeerDescriptor) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.failAddPeer {
		return errInjectedAddPeer
	}
	d.peers[desc.Address] = desc
	return nil
}

func (d *Driver) RemovePeer(addr proto.PeerAddress) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.peers, addr)
	return nil
}

func (d *Driver) Send(dst proto.PeerAddress, payload []byte) error {
	frame := make([]byte, len(payload))
	copy(frame, payload)

	d.mu.Lock()
	if d.failSend {
		d.mu.Unlock()
		return errInjectedSend
	}
	d.txLog = append(d.txLog, frame)
	d.mu.Unlock()

	go d.bus.deliver(d.addr, dst, frame)
	return nil
}

func (d *Driver) OnReceive(fn transport.ReceiveFunc) {
	d.mu.Lock()
	d.onRecv = fn
	d.mu.Unlock()
}

func (d *Driver) ProtocolVersion() uint8 { return 1 }

func (d *Driver) MaxPayloadLength() int { return proto.MaxPayloadSize }

func (d *Driver) receive(src, dst proto.PeerAddress, payload []byte) {
	d.mu.Lock()
	fn := d.onRecv
	d.mu.Unlock()
	if fn == nil {
		return
	}
	frame := make([]byte, len(payload))
	copy(frame, payload)
	fn(src, dst, frame)
}

// InjectRx pushes a frame straight into this driver's receive callback on
// the caller's goroutine, for deterministic tests.
func (d *Driver) InjectRx(src, dst proto.PeerAddress, payload []byte) {
	d.receive(src, dst, payload)
}

// TxLog returns copies of every payload handed to Send, oldest first.
func (d *Driver) TxLog() [][]byte {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([][]byte, len(d.txLog))
	for i, frame := range d.txLog {
		cp := make([]byte, len(frame))
		copy(cp, frame)
		out[i] = cp
	}
	return out
}

// RegisteredPeers returns the descriptors currently held by the driver.
func (d *Driver) RegisteredPeers() []transport.PeerDescriptor {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]transport.PeerDescriptor, 0, len(d.peers))
	for _, desc := range d.peers {
		out = append(out, desc)
	}
	return out
}

// Failure injection toggles.
func (d *Driver) FailInit(v bool)    { d.mu.Lock(); d.failInit = v; d.mu.Unlock() }
func (d *Driver) FailAddPeer(v bool) { d.mu.Lock(); d.failAddPeer = v; d.mu.Unlock() }
func (d *Driver) FailSend(v bool)    { d.mu.Lock(); d.failSend = v; d.mu.Unlock() }
