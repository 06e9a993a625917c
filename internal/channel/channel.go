// Package channel maintains the persistent command connection to the media
// server.
//
// The [Client] owns a single websocket to the server's realtime endpoint and
// keeps it alive with an unconditional fixed-delay reconnect: no backoff
// growth, no retry cap. That policy fits a LAN remote-control tool, not a
// public service. Connection state is the only externally observable status;
// inbound messages are correlated by type alone, never by request id.
package channel

import (
	"encoding/json"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/playsv/playsv/internal/shared"
)

// DefaultReconnectDelay is the fixed delay between a close and the next
// connection attempt.
const DefaultReconnectDelay = 3 * time.Second

// ConnState is the connection status shown to the user.
type ConnState int

const (
	StateDisconnected ConnState = iota
	StateConnected
	StateErrored
)

func (s ConnState) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnected:
		return "connected"
	case StateErrored:
		return "error"
	default:
		return ""
	}
}

// Command is the outbound envelope for every player command.
type Command struct {
	Type    string         `json:"type"` // always "mpv_command"
	Command string         `json:"command"`
	Args    map[string]any `json:"args"`
}

// Message is the inbound envelope. Payload stays raw until a handler decodes
// it.
type Message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Handler consumes one inbound message of a registered type.
type Handler func(msg Message)

// ClientOpts contains configuration for creating a Client.
type ClientOpts struct {
	BaseURL        string        // media server base URL (http/https); scheme is upgraded to ws/wss
	Path           string        // realtime endpoint path, default "/ws"
	ReconnectDelay time.Duration // default DefaultReconnectDelay
	Dialer         *websocket.Dialer
	Logger         *log.Logger
	OnState        func(state ConnState) // invoked on every state change
}

// Client is the websocket command channel.
type Client struct {
	url            string
	dialer         *websocket.Dialer
	reconnectDelay time.Duration
	logger         *log.Logger
	onState        func(ConnState)

	mu       sync.Mutex
	conn     *websocket.Conn
	state    ConnState
	handlers map[string]Handler
	closed   bool

	// writeMu serializes frame writes. gorilla/websocket permits at most one
	// concurrent writer per connection, and every command send runs on its
	// own goroutine in the TUI.
	writeMu sync.Mutex
}

// EndpointURL derives the realtime endpoint from the server base URL, with
// the scheme upgraded to the matching websocket variant.
func EndpointURL(baseURL, path string) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("failed to parse base URL: %w", err)
	}

	switch u.Scheme {
	case "http", "ws":
		u.Scheme = "ws"
	case "https", "wss":
		u.Scheme = "wss"
	default:
		return "", fmt.Errorf("%w: unsupported scheme %q", shared.ErrInvalidArgument, u.Scheme)
	}

	u.Path = path
	return u.String(), nil
}

// NewClient creates a Client. Connect starts the connection loop.
func NewClient(opts ClientOpts) (*Client, error) {
	if opts.Path == "" {
		opts.Path = "/ws"
	}
	if opts.ReconnectDelay <= 0 {
		opts.ReconnectDelay = DefaultReconnectDelay
	}
	if opts.Dialer == nil {
		opts.Dialer = websocket.DefaultDialer
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	endpoint, err := EndpointURL(opts.BaseURL, opts.Path)
	if err != nil {
		return nil, err
	}

	return &Client{
		url:            endpoint,
		dialer:         opts.Dialer,
		reconnectDelay: opts.ReconnectDelay,
		logger:         opts.Logger,
		onState:        opts.OnState,
		state:          StateDisconnected,
		handlers:       make(map[string]Handler),
	}, nil
}

// Handle registers a handler for an inbound message type. Must be called
// before Connect.
func (c *Client) Handle(msgType string, h Handler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers[msgType] = h
}

// State returns the current connection state.
func (c *Client) State() ConnState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// URL returns the resolved realtime endpoint.
func (c *Client) URL() string { return c.url }

// Connect dials the endpoint. On failure the state moves to error and a
// reconnect is scheduled; on success the read loop runs until the connection
// drops, which also schedules a reconnect.
func (c *Client) Connect() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()

	conn, _, err := c.dialer.Dial(c.url, nil)
	if err != nil {
		c.logger.Warnf("connection failed: %v", err)
		c.setState(StateErrored)
		c.scheduleReconnect()
		return
	}

	c.mu.Lock()
	c.conn = conn
	c.mu.Unlock()
	c.setState(StateConnected)
	c.logger.Infof("connected to %s", c.url)

	go c.readPump(conn)
}

// Send delivers a command envelope. If the channel is not open the command is
// dropped with a logged error: no queueing, no retry.
func (c *Client) Send(command string, args map[string]any) error {
	c.mu.Lock()
	conn := c.conn
	state := c.state
	c.mu.Unlock()

	if conn == nil || state != StateConnected {
		c.logger.Errorf("dropping command %q: channel not open", command)
		return shared.ErrNotConnected
	}

	if args == nil {
		args = map[string]any{}
	}

	envelope := Command{Type: "mpv_command", Command: command, Args: args}
	c.writeMu.Lock()
	err := conn.WriteJSON(envelope)
	c.writeMu.Unlock()
	if err != nil {
		c.logger.Errorf("dropping command %q: %v", command, err)
		return fmt.Errorf("failed to send command: %w", err)
	}

	return nil
}

// Close stops the client permanently. Unlike a server-side close, no
// reconnect follows.
func (c *Client) Close() error {
	c.mu.Lock()
	c.closed = true
	conn := c.conn
	c.conn = nil
	c.mu.Unlock()

	if conn != nil {
		c.writeMu.Lock()
		defer c.writeMu.Unlock()
		conn.WriteMessage(websocket.CloseMessage, []byte{})
		return conn.Close()
	}
	return nil
}

// readPump dispatches inbound messages until the connection drops.
func (c *Client) readPump(conn *websocket.Conn) {
	defer conn.Close()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			c.mu.Lock()
			closed := c.closed
			if c.conn == conn {
				c.conn = nil
			}
			c.mu.Unlock()

			if closed {
				return
			}

			c.logger.Warnf("connection lost: %v", err)
			c.setState(StateDisconnected)
			c.scheduleReconnect()
			return
		}

		c.dispatch(data)
	}
}

// dispatch routes one raw inbound frame. Unparseable frames and unrecognized
// types are logged and dropped, never fatal.
func (c *Client) dispatch(data []byte) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		c.logger.Warnf("dropping unparseable message: %v", err)
		return
	}

	c.mu.Lock()
	handler, ok := c.handlers[msg.Type]
	c.mu.Unlock()

	if !ok {
		c.logger.Warnf("dropping message with unknown type %q", msg.Type)
		return
	}

	handler(msg)
}

// scheduleReconnect arms a single reconnect attempt after the fixed delay.
// Scheduling is unconditional; every close schedules the next attempt.
func (c *Client) scheduleReconnect() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()

	time.AfterFunc(c.reconnectDelay, c.Connect)
}

func (c *Client) setState(state ConnState) {
	c.mu.Lock()
	changed := c.state != state
	c.state = state
	onState := c.onState
	c.mu.Unlock()

	if changed && onState != nil {
		onState(state)
	}
}
