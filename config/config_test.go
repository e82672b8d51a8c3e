package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	proto "github.com/ystepanoff/triggerlink/protocol"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "node.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadTransmitter_Defaults(t *testing.T) {
	path := writeConfig(t, `address = "02:00:00:00:00:01"`)

	cfg, err := LoadTransmitter(path)
	require.NoError(t, err)

	assert.Equal(t, uint8(proto.DefaultChannel), cfg.Channel)
	assert.Equal(t, uint32(DefaultDebounceMs), cfg.DebounceMs)
	assert.Equal(t, uint32(DefaultPollMs), cfg.PollMs)
	assert.Equal(t, "txnode", cfg.Label)
	assert.Equal(t, proto.PeerAddress{0x02, 0, 0, 0, 0, 0x01}, cfg.ParsedAddress())
}

func TestLoadTransmitter_Overrides(t *testing.T) {
	path := writeConfig(t, `
address = "02:00:00:00:00:01"
channel = 80
label = "gate-button"
button_pin = 4
debounce_ms = 400
poll_ms = 5
`)

	cfg, err := LoadTransmitter(path)
	require.NoError(t, err)
	assert.Equal(t, uint8(80), cfg.Channel)
	assert.Equal(t, "gate-button", cfg.Label)
	assert.Equal(t, 4, cfg.ButtonPin)
	assert.Equal(t, uint32(400), cfg.DebounceMs)
	assert.Equal(t, uint32(5), cfg.PollMs)
}

func TestLoadReceiver_Defaults(t *testing.T) {
	path := writeConfig(t, `address = "02:00:00:00:00:02"`)

	cfg, err := LoadReceiver(path)
	require.NoError(t, err)
	assert.Equal(t, uint32(DefaultActuationMs), cfg.ActuationMs)
	assert.Equal(t, proto.DefaultPeerCapacity, cfg.PeerCapacity)

	key, err := cfg.ParsedLinkKey()
	require.NoError(t, err)
	assert.Nil(t, key)
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "bad channel",
			body: "address = \"02:00:00:00:00:02\"\nchannel = 126",
			want: "invalid channel",
		},
		{
			name: "bad address",
			body: `address = "not-an-address"`,
			want: "invalid hardware address",
		},
		{
			name: "poll too coarse",
			body: "address = \"02:00:00:00:00:02\"\nactuation_ms = 100\npoll_ms = 100",
			want: "must be finer",
		},
		{
			name: "bad link key",
			body: "address = \"02:00:00:00:00:02\"\nlink_key = \"zz\"",
			want: "link_key",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadReceiver(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestReceiver_ParsedLinkKey(t *testing.T) {
	path := writeConfig(t, "address = \"02:00:00:00:00:02\"\nlink_key = \"a1b2c3d4\"")

	cfg, err := LoadReceiver(path)
	require.NoError(t, err)

	key, err := cfg.ParsedLinkKey()
	require.NoError(t, err)
	assert.Equal(t, []byte{0xA1, 0xB2, 0xC3, 0xD4}, key)
}
