package protocol

// Generic radio & protocol constants (platform independent). All higher layers should depend on this file.
const (
	// Message sizing
	// Layout:
	//   Seq (4 bytes, little-endian) | Text (32 bytes, NUL-padded)
	// The sequence counter starts at 1 and wraps on overflow. The text field
	// is diagnostic only and is never interpreted by the trigger logic.

	SequenceFieldSize = 4
	TextFieldSize     = 32
	MessageSize       = SequenceFieldSize + TextFieldSize

	// Application-level payload allowance of the simulated link. Real drivers
	// report their own limit through MaxPayloadLength().
	MaxPayloadSize = 250

	// RF defaults (can be overridden per device)
	DefaultChannel = 7

	// Hardware addresses are 6 bytes
	AddressSize = 6

	// Bounded peer arena default (can be overridden per device)
	DefaultPeerCapacity = 16
)
