package protocol

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// PeerAddress is a 6-byte hardware address. Equality is byte-exact; addresses
// carry no ordering beyond that.
type PeerAddress [AddressSize]byte

// BroadcastAddress is the all-bits-set sentinel understood by every listener
// on the shared channel.
var BroadcastAddress = PeerAddress{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}

func (a PeerAddress) IsBroadcast() bool { return a == BroadcastAddress }

func (a PeerAddress) String() string {
	parts := make([]string, AddressSize)
	for i, b := range a {
		parts[i] = hex.EncodeToString([]byte{b})
	}
	return strings.Join(parts, ":")
}

// ParsePeerAddress parses "aa:bb:cc:dd:ee:ff" (case-insensitive).
func ParsePeerAddress(s string) (PeerAddress, error) {
	var addr PeerAddress
	parts := strings.Split(s, ":")
	if len(parts) != AddressSize {
		return addr, fmt.Errorf("%w: %q", ErrInvalidAddress, s)
	}
	for i, p := range parts {
		b, err := hex.DecodeString(p)
		if err != nil || len(b) != 1 {
			return addr, fmt.Errorf("%w: %q", ErrInvalidAddress, s)
		}
		addr[i] = b[0]
	}
	return addr, nil
}
