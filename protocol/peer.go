package protocol

// InterfaceRole selects which radio interface a peer is reached through.
type InterfaceRole uint8

const (
	RoleStation     InterfaceRole = 1
	RoleAccessPoint InterfaceRole = 2
)

// Peer is the registry's record of a remote device. The registry owns every
// Peer; other components hold a handle and go through the registry.
type Peer struct {
	Address PeerAddress
	Channel uint8
	Role    InterfaceRole

	// LinkKey is opaque to this layer; empty means the link is unkeyed.
	LinkKey []byte

	Registered bool
	LastSeen   uint32 // monotonic milliseconds, wraps
}
