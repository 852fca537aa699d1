package connection

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rickgao/ari-events/internal/version"
)

// Conn is the subset of *websocket.Conn the manager uses.
type Conn interface {
	ReadMessage() (messageType int, p []byte, err error)
	WriteControl(messageType int, data []byte, deadline time.Time) error
	SetPingHandler(h func(appData string) error)
	SetPongHandler(h func(appData string) error)
	Close() error
}

// Dialer opens event sockets.
type Dialer interface {
	Dial(ctx context.Context, url string) (Conn, error)
}

// wsDialer dials with gorilla/websocket.
type wsDialer struct {
	dialer websocket.Dialer
}

// NewDialer returns the default WebSocket dialer.
func NewDialer(handshakeTimeout time.Duration) Dialer {
	return &wsDialer{
		dialer: websocket.Dialer{
			Proxy:            http.ProxyFromEnvironment,
			HandshakeTimeout: handshakeTimeout,
		},
	}
}

// Dial establishes the WebSocket connection.
func (d *wsDialer) Dial(ctx context.Context, url string) (Conn, error) {
	header := http.Header{}
	header.Set("Accept", "application/json")
	header.Set("User-Agent", version.UserAgent())

	conn, resp, err := d.dialer.DialContext(ctx, url, header)
	if err != nil {
		// Asterisk answers a bad api_key or unknown app with a plain HTTP error.
		if resp != nil {
			return nil, fmt.Errorf("%w (HTTP %d)", err, resp.StatusCode)
		}
		return nil, err
	}

	return conn, nil
}
