package transport

import proto "github.com/ystepanoff/triggerlink/protocol"

// PeerDescriptor carries everything a driver needs to register a remote
// device with the radio stack.
type PeerDescriptor struct {
	Address proto.PeerAddress
	Channel uint8
	Role    proto.InterfaceRole
	LinkKey []byte
}

// ReceiveFunc is invoked by the driver for every arriving frame. It runs on
// the radio stack's own execution context, concurrently with the node's poll
// loop, and must never block.
type ReceiveFunc func(src, dst proto.PeerAddress, payload []byte)

// RadioDriver is the interface that wraps the basic radio operations.
type RadioDriver interface {
	Init() error
	AddPeer(desc PeerDescriptor) error
	RemovePeer(addr proto.PeerAddress) error
	Send(dst proto.PeerAddress, payload []byte) error
	OnReceive(fn ReceiveFunc)
	ProtocolVersion() uint8
	MaxPayloadLength() int
}
