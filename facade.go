// Package triggerlink links a button transmitter to one or more actuation
// receivers over a connectionless broadcast radio channel. Receivers discover
// senders dynamically: any broadcast frame both registers its source as a
// peer and opens the actuation window.
package triggerlink

import (
	proto "github.com/ystepanoff/triggerlink/protocol"
	"github.com/ystepanoff/triggerlink/transport"
)

// Re-export the types callers touch when wiring a node.
type (
	PeerAddress  = proto.PeerAddress
	Peer         = proto.Peer
	Message      = proto.Message
	RadioDriver  = transport.RadioDriver
	TriggerEvent = transport.TriggerEvent
	PeerHandle   = transport.PeerHandle
)

// Error constants exposed in the public API
var (
	ErrInitFailed         = proto.ErrInitFailed
	ErrRegistrationFailed = proto.ErrRegistrationFailed
	ErrSendFailed         = proto.ErrSendFailed
	ErrPayloadTooLarge    = proto.ErrPayloadTooLarge
	ErrInvalidChannel     = proto.ErrInvalidChannel
)

// BroadcastAddress is the all-listeners destination sentinel.
var BroadcastAddress = proto.BroadcastAddress

// Constants exposed in the public API
const (
	MaxPayloadSize = proto.MaxPayloadSize
	DefaultChannel = proto.DefaultChannel
)
