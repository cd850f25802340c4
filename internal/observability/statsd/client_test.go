package statsd

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// udpListener binds an ephemeral UDP port and returns received lines.
func udpListener(t *testing.T) (addr string, lines chan string) {
	t.Helper()
	conn, err := net.ListenPacket("udp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	lines = make(chan string, 16)
	go func() {
		buf := make([]byte, 1024)
		for {
			n, _, err := conn.ReadFrom(buf)
			if err != nil {
				return
			}
			lines <- string(buf[:n])
		}
	}()
	return conn.LocalAddr().String(), lines
}

func receive(t *testing.T, lines chan string) string {
	t.Helper()
	select {
	case line := <-lines:
		return line
	case <-time.After(2 * time.Second):
		t.Fatal("no metric received")
		return ""
	}
}

func TestClientEmitsOverUDP(t *testing.T) {
	addr, lines := udpListener(t)

	client, err := NewClient(Config{Enabled: true, Address: addr, Prefix: "rentnest."})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	client.Count("session.login.success", 1, map[string]string{"kind": "rentor"})
	assert.Equal(t, "rentnest.session.login.success:1|c|#kind:rentor", receive(t, lines))

	client.Timing("api.request", 250*time.Millisecond, nil)
	assert.Equal(t, "rentnest.api.request:250|ms", receive(t, lines))
}

func TestDisabledClientIsSilent(t *testing.T) {
	client, err := NewClient(Config{Enabled: false, Address: "127.0.0.1:8125"})
	require.NoError(t, err)

	// Emitting on a disabled client is a no-op, not a panic.
	client.Count("x", 1, nil)
	client.Timing("y", time.Second, nil)
	assert.NoError(t, client.Close())
}

func TestEmptyAddressDisablesClient(t *testing.T) {
	client, err := NewClient(Config{Enabled: true, Address: "  "})
	require.NoError(t, err)
	client.Count("x", 1, nil)
}

func TestFormatTags(t *testing.T) {
	assert.Empty(t, formatTags(nil))
	assert.Equal(t, "|#a:1,b:2", formatTags(map[string]string{"b": "2", "a": "1"}))
}

func TestOrNop(t *testing.T) {
	sink := OrNop(nil)
	sink.Count("x", 1, nil)
	sink.Timing("y", time.Second, nil)

	client := &Client{}
	assert.Same(t, Sink(client), OrNop(client))
}
