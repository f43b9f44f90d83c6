// internal/connection/channel.go
package connection

import (
	"context"

	"github.com/coder/websocket"
)

// Channel is the abstract duplex message channel the Manager runs on. The
// production implementation is a WebSocket; tests substitute an in-memory one.
type Channel interface {
	// Read blocks until the next text frame arrives or the channel fails.
	Read(ctx context.Context) ([]byte, error)
	// Write sends one text frame.
	Write(ctx context.Context, data []byte) error
	// Close releases the channel. Safe to call more than once.
	Close() error
}

// DialFunc opens a channel to the given URL. Injected so tests can swap the
// transport without a listener.
type DialFunc func(ctx context.Context, url string) (Channel, error)

// wsChannel adapts a coder/websocket connection to the Channel interface.
type wsChannel struct {
	conn *websocket.Conn
}

// DialWebSocket is the production DialFunc.
func DialWebSocket(ctx context.Context, url string) (Channel, error) {
	conn, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		return nil, err
	}
	return &wsChannel{conn: conn}, nil
}

func (c *wsChannel) Read(ctx context.Context) ([]byte, error) {
	for {
		typ, data, err := c.conn.Read(ctx)
		if err != nil {
			return nil, err
		}
		// The game protocol is JSON text; anything else is ignored.
		if typ != websocket.MessageText {
			continue
		}
		return data, nil
	}
}

func (c *wsChannel) Write(ctx context.Context, data []byte) error {
	return c.conn.Write(ctx, websocket.MessageText, data)
}

func (c *wsChannel) Close() error {
	return c.conn.Close(websocket.StatusNormalClosure, "client leaving")
}
