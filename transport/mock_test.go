package transport

import (
	"errors"
	"sync"

	proto "github.com/ystepanoff/triggerlink/protocol"
)

var (
	errMockInit    = errors.New("mock init failure")
	errMockAddPeer = errors.New("mock add-peer rejection")
	errMockSend    = errors.New("mock send failure")
)

// MockDriver implements the RadioDriver interface for testing
type MockDriver struct {
	mu      sync.Mutex
	added   []PeerDescriptor
	removed []proto.PeerAddress
	txLog   [][]byte
	onRecv  ReceiveFunc

	failInit    bool
	failAddPeer bool
	failSend    bool
}

func NewMockDriver() *MockDriver { return &MockDriver{} }

func (d *MockDriver) Init() error {
	if d.failInit {
		return errMockInit
	}
	return nil
}

func (d *MockDriver) AddPeer(desc PeerDescriptor) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.failAddPeer {
		return errMockAddPeer
	}
	d.added = append(d.added, desc)
	return nil
}

func (d *MockDriver) RemovePeer(addr proto.PeerAddress) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.removed = append(d.removed, addr)
	return nil
}

func (d *MockDriver) Send(dst proto.PeerAddress, payload []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.failSend {
		return errMockSend
	}
	frame := make([]byte, len(payload))
	copy(frame, payload)
	d.txLog = append(d.txLog, frame)
	return nil
}

func (d *MockDriver) OnReceive(fn ReceiveFunc) {
	d.mu.Lock()
	d.onRecv = fn
	d.mu.Unlock()
}

func (d *MockDriver) ProtocolVersion() uint8 { return 1 }

func (d *MockDriver) MaxPayloadLength() int { return proto.MaxPayloadSize }

// Recv plays an arriving frame into the installed callback, synchronously on
// the caller's goroutine.
func (d *MockDriver) Recv(src, dst proto.PeerAddress, payload []byte) {
	d.mu.Lock()
	fn := d.onRecv
	d.mu.Unlock()
	if fn != nil {
		fn(src, dst, payload)
	}
}

func (d *MockDriver) Added() []PeerDescriptor {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]PeerDescriptor, len(d.added))
	copy(out, d.added)
	return out
}

func (d *MockDriver) Removed() []proto.PeerAddress {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]proto.PeerAddress, len(d.removed))
	copy(out, d.removed)
	return out
}

func (d *MockDriver) TxLog() [][]byte {
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

func (d *MockDriver) HasCallback() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.onRecv != nil
}
