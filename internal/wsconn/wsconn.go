// Package wsconn provides a WebSocket client with automatic
// reconnection and exponential backoff.
package wsconn

import (
	"context"
	"sync"
	"time"

	"github.com/coder/websocket"
)

// State represents the connection state.
type State string

const (
	StateDisconnected State = "disconnected"
	StateConnecting   State = "connecting"
	StateConnected    State = "connected"
	StateReconnecting State = "reconnecting"
)

// Config holds WebSocket client configuration.
type Config struct {
	URL            string
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	MaxReconnects  int // 0 = infinite
	ReadLimit      int64

	// OnConnect runs after every successful dial, including reconnects.
	// Subscription handshakes go here so a fresh connection re-subscribes.
	// A returned error drops the connection and retries with backoff.
	OnConnect func(ctx context.Context) error
}

// DefaultConfig returns sensible defaults.
func DefaultConfig(url string) Config {
	return Config{
		URL:            url,
		InitialBackoff: 1 * time.Second,
		MaxBackoff:     30 * time.Second,
		MaxReconnects:  0,
		ReadLimit:      1 << 20,
	}
}

// Client maintains a WebSocket connection, republishing received
// messages on a channel and reconnecting on failure.
type Client struct {
	config   Config
	state    State
	stateMu  sync.RWMutex
	conn     *websocket.Conn
	connMu   sync.Mutex
	messages chan []byte
	done     chan struct{}
	closeOnce sync.Once
}

// New creates a new WebSocket client.
func New(config Config) *Client {
	return &Client{
		config:   config,
		state:    StateDisconnected,
		messages: make(chan []byte, 100),
		done:     make(chan struct{}),
	}
}

// Connect dials the endpoint and starts the read loop. The read loop
// reconnects with exponential backoff until Close or context cancel.
func (c *Client) Connect(ctx context.Context) error {
	c.setState(StateConnecting)

	conn, err := c.dial(ctx)
	if err != nil {
		c.setState(StateDisconnected)
		return err
	}

	c.connMu.Lock()
	c.conn = conn
	c.connMu.Unlock()
	c.setState(StateConnected)

	if err := c.runOnConnect(ctx); err != nil {
		conn.Close(websocket.StatusInternalError, "handshake failed")
		c.setState(StateDisconnected)
		return err
	}

	go c.readLoop(ctx)
	return nil
}

// runOnConnect invokes the configured handshake. The current conn must
// already be published so the callback can Send through it.
func (c *Client) runOnConnect(ctx context.Context) error {
	if c.config.OnConnect == nil {
		return nil
	}
	return c.config.OnConnect(ctx)
}

func (c *Client) dial(ctx context.Context) (*websocket.Conn, error) {
	conn, _, err := websocket.Dial(ctx, c.config.URL, nil)
	if err != nil {
		return nil, err
	}
	if c.config.ReadLimit > 0 {
		conn.SetReadLimit(c.config.ReadLimit)
	}
	return conn, nil
}

func (c *Client) readLoop(ctx context.Context) {
	backoff := c.config.InitialBackoff
	reconnects := 0

	for {
		select {
		case <-ctx.Done():
			return
		case <-c.done:
			return
		default:
		}

		c.connMu.Lock()
		conn := c.conn
		c.connMu.Unlock()

		_, data, err := conn.Read(ctx)
		if err == nil {
			backoff = c.config.InitialBackoff
			select {
			case c.messages <- data:
			default:
				// Drop when the consumer lags; checkpoint streams are
				// safe to sample.
			}
			continue
		}

		if ctx.Err() != nil {
			return
		}

		// Reconnect with backoff.
		c.setState(StateReconnecting)
		reconnects++
		if c.config.MaxReconnects > 0 && reconnects > c.config.MaxReconnects {
			c.setState(StateDisconnected)
			return
		}

		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			return
		case <-c.done:
			return
		}
		backoff *= 2
		if backoff > c.config.MaxBackoff {
			backoff = c.config.MaxBackoff
		}

		newConn, dialErr := c.dial(ctx)
		if dialErr != nil {
			continue
		}
		c.connMu.Lock()
		c.conn = newConn
		c.connMu.Unlock()
		c.setState(StateConnected)

		if err := c.runOnConnect(ctx); err != nil {
			// The next Read on the closed conn fails and re-enters the
			// backoff path, so the handshake is retried.
			newConn.Close(websocket.StatusInternalError, "handshake failed")
		}
	}
}

// Send sends a message through the WebSocket.
func (c *Client) Send(ctx context.Context, msg []byte) error {
	c.connMu.Lock()
	conn := c.conn
	c.connMu.Unlock()
	return conn.Write(ctx, websocket.MessageText, msg)
}

// Messages returns the channel for receiving messages.
func (c *Client) Messages() <-chan []byte {
	return c.messages
}

// State returns the current connection state.
func (c *Client) State() State {
	c.stateMu.RLock()
	defer c.stateMu.RUnlock()
	return c.state
}

// Close gracefully closes the WebSocket connection.
func (c *Client) Close() error {
	c.closeOnce.Do(func() {
		close(c.done)
	})

	c.connMu.Lock()
	conn := c.conn
	c.connMu.Unlock()

	c.setState(StateDisconnected)
	if conn != nil {
		return conn.Close(websocket.StatusNormalClosure, "client closing")
	}
	return nil
}

func (c *Client) setState(state State) {
	c.stateMu.Lock()
	c.state = state
	c.stateMu.Unlock()
}
