package protocol

import (
	"bytes"
	"encoding/binary"
)

// Message is the unit carried in a broadcast payload.
// Layout: Seq(4, little-endian) | Text(32, NUL-padded)
// A Message exists only for the duration of one send or one receive; it is
// never persisted.
type Message struct {
	Seq  uint32
	Text string
}

// EncodeMessage serialises a message into a fixed-size on-air buffer. Text
// longer than the text field is truncated.
func EncodeMessage(seq uint32, text string) []byte {
	data := make([]byte, MessageSize)
	binary.LittleEndian.PutUint32(data[0:SequenceFieldSize], seq)

	if len(text) > TextFieldSize {
		text = text[:TextFieldSize]
	}
	copy(data[SequenceFieldSize:], text)

	return data
}

// DecodeMessage never fails: the presence of a frame, not its content, is
// what triggers the receiver. Short payloads decode to whatever can be read.
func DecodeMessage(data []byte) Message {
	var m Message

	if len(data) >= SequenceFieldSize {
		m.Seq = binary.LittleEndian.Uint32(data[0:SequenceFieldSize])
		text := data[SequenceFieldSize:]
		if len(text) > TextFieldSize {
			text = text[:TextFieldSize]
		}
		m.Text = string(bytes.TrimRight(text, "\x00"))
	}

	return m
}
