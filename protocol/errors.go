package protocol

import "errors"

var (
	ErrInitFailed         = errors.New("radio initialisation failed")
	ErrRegistrationFailed = errors.New("peer registration rejected")
	ErrSendFailed         = errors.New("send failed")
	ErrPayloadTooLarge    = errors.New("payload exceeds maximum length")
	ErrInvalidChannel     = errors.New("invalid channel (valid range: 0-125)")
	ErrInvalidAddress     = errors.New("invalid hardware address")
	ErrRegistryFull       = errors.New("peer registry at capacity")
)
