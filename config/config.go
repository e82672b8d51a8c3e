// Package config loads and validates node configuration. All options are
// fixed at deploy time; there is no runtime command surface.
package config

import (
	"encoding/hex"
	"fmt"

	"github.com/BurntSushi/toml"

	proto "github.com/ystepanoff/triggerlink/protocol"
)

const (
	DefaultDebounceMs  = 250
	DefaultActuationMs = 1000
	DefaultPollMs      = 10
)

// Transmitter configures a button node.
type Transmitter struct {
	Address    string `toml:"address"`
	Channel    uint8  `toml:"channel"`
	Label      string `toml:"label"`
	ButtonPin  int    `toml:"button_pin"`
	DebounceMs uint32 `toml:"debounce_ms"`
	PollMs     uint32 `toml:"poll_ms"`
}

// Receiver configures an actuator node.
type Receiver struct {
	Address      string `toml:"address"`
	Channel      uint8  `toml:"channel"`
	ActuatorPin  int    `toml:"actuator_pin"`
	ActuationMs  uint32 `toml:"actuation_ms"`
	PollMs       uint32 `toml:"poll_ms"`
	PeerCapacity int    `toml:"peer_capacity"`
	LinkKey      string `toml:"link_key"`
}

func LoadTransmitter(path string) (Transmitter, error) {
	var cfg Transmitter
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Transmitter{}, fmt.Errorf("load %s: %w", path, err)
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return Transmitter{}, err
	}
	return cfg, nil
}

func LoadReceiver(path string) (Receiver, error) {
	var cfg Receiver
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Receiver{}, fmt.Errorf("load %s: %w", path, err)
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return Receiver{}, err
	}
	return cfg, nil
}

func (c *Transmitter) ApplyDefaults() {
	if c.Channel == 0 {
		c.Channel = proto.DefaultChannel
	}
	if c.DebounceMs == 0 {
		c.DebounceMs = DefaultDebounceMs
	}
	if c.PollMs == 0 {
		c.PollMs = DefaultPollMs
	}
	if c.Label == "" {
		c.Label = "txnode"
	}
}

func (c *Transmitter) Validate() error {
	if c.Channel > 125 {
		return fmt.Errorf("%w: %d", proto.ErrInvalidChannel, c.Channel)
	}
	if _, err := proto.ParsePeerAddress(c.Address); err != nil {
		return fmt.Errorf("address: %w", err)
	}
	if c.PollMs >= c.DebounceMs {
		return fmt.Errorf("poll_ms (%d) must be finer than debounce_ms (%d)", c.PollMs, c.DebounceMs)
	}
	return nil
}

func (c *Receiver) ApplyDefaults() {
	if c.Channel == 0 {
		c.Channel = proto.DefaultChannel
	}
	if c.ActuationMs == 0 {
		c.ActuationMs = DefaultActuationMs
	}
	if c.PollMs == 0 {
		c.PollMs = DefaultPollMs
	}
	if c.PeerCapacity == 0 {
		c.PeerCapacity = proto.DefaultPeerCapacity
	}
}

func (c *Receiver) Validate() error {
	if c.Channel > 125 {
		return fmt.Errorf("%w: %d", proto.ErrInvalidChannel, c.Channel)
	}
	if _, err := proto.ParsePeerAddress(c.Address); err != nil {
		return fmt.Errorf("address: %w", err)
	}
	if c.PeerCapacity < 1 {
		return fmt.Errorf("peer_capacity must be at least 1, got %d", c.PeerCapacity)
	}
	if c.PollMs >= c.ActuationMs {
		return fmt.Errorf("poll_ms (%d) must be finer than actuation_ms (%d)", c.PollMs, c.ActuationMs)
	}
	if _, err := c.ParsedLinkKey(); err != nil {
		return err
	}
	return nil
}

// ParsedAddress returns the node's hardware address. Call Validate first.
func (c *Transmitter) ParsedAddress() proto.PeerAddress {
	addr, _ := proto.ParsePeerAddress(c.Address)
	return addr
}

func (c *Receiver) ParsedAddress() proto.PeerAddress {
	addr, _ := proto.ParsePeerAddress(c.Address)
	return addr
}

// ParsedLinkKey decodes the optional hex link key; empty means unkeyed.
func (c *Receiver) ParsedLinkKey() ([]byte, error) {
	if c.LinkKey == "" {
		return nil, nil
	}
	key, err := hex.DecodeString(c.LinkKey)
	if err != nil {
		return nil, fmt.Errorf("link_key: %w", err)
	}
	return key, nil
}
