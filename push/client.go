// Package push implements the client side of the orchestrator's push
// channel: a WebSocket session that decodes event frames, delivers them to
// registered handlers, and redials on a fixed cadence whenever the channel
// drops.
package push

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/RodCaba/fp-orchestrator/internal/handlers"
	"github.com/RodCaba/fp-orchestrator/internal/log"
	"github.com/RodCaba/fp-orchestrator/wire"
	"github.com/gorilla/websocket"
)

type (
	// Client maintains the push channel to the orchestrator.
	Client struct {
		// Used to ensure Start() is called only once.
		started atomic.Bool

		// Current state of the channel.
		state atomic.Int32

		// Live socket; nil while the channel is down.
		conn   *websocket.Conn
		connMu sync.Mutex

		// Ends the manage loop. Only valid once started.
		stop    context.CancelFunc
		stopped chan struct{}

		// A list of functions that listen for decoded events.
		messageHandlers *handlers.List[MessageHandler]

		// A list of functions that are called in order to notify the user of
		// the channel coming up.
		connectEventHandlers *handlers.List[ConnectEventHandler]

		// A list of functions that are called in order to notify the user of
		// the channel going down.
		disconnectEventHandlers *handlers.List[DisconnectEventHandler]

		connectionProvider ConnectionProvider
		options            ClientOptions

		log logger
	}

	// MessageHandler is a callback invoked for each decoded push event.
	// Handlers run sequentially on the read loop goroutine.
	MessageHandler = func(context.Context, wire.Event)

	// ConnectEvent contains the metadata provided to the handler when the
	// push channel comes up.
	ConnectEvent struct {
		// Attempt is the dial attempt that established the channel, counted
		// from the start of the session.
		Attempt uint64
	}

	// ConnectEventHandler is a callback used to respond to the push channel
	// coming up.
	ConnectEventHandler = func(*ConnectEvent)

	// DisconnectEvent contains the metadata provided to the handler when the
	// push channel goes down.
	DisconnectEvent struct {
		Error error
	}

	// DisconnectEventHandler is a callback used to respond to the push
	// channel going down.
	DisconnectEventHandler = func(*DisconnectEvent)
)

// ConnectionState indicates the state of the push channel.
type ConnectionState int32

const (
	Disconnected ConnectionState = iota
	Connecting
	Connected
)

func (s ConnectionState) String() string {
	switch s {
	case Connecting:
		return "connecting"
	case Connected:
		return "connected"
	default:
		return "disconnected"
	}
}

// NewClient constructs a new push client with user options.
func NewClient(
	connectionProvider ConnectionProvider,
	opt ...ClientOption,
) *Client {
	client := &Client{
		connectionProvider: connectionProvider,

		messageHandlers:         handlers.NewList[MessageHandler](),
		connectEventHandlers:    handlers.NewList[ConnectEventHandler](),
		disconnectEventHandlers: handlers.NewList[DisconnectEventHandler](),
	}

	client.options.Apply(opt)

	if client.options.ReconnectInterval == 0 {
		client.options.ReconnectInterval = defaultReconnectInterval
	}

	client.log.Logger = log.Wrap(client.options.Logger)

	return client
}

// State returns the current state of the push channel.
func (c *Client) State() ConnectionState {
	return ConnectionState(c.state.Load())
}

// RegisterMessageHandler registers a handler for decoded push events.
// Returns a function to remove the handler.
func (c *Client) RegisterMessageHandler(handler MessageHandler) func() {
	return c.messageHandlers.Append(handler)
}

// RegisterConnectEventHandler registers a handler called whenever the push
// channel comes up. Returns a function to remove the handler.
func (c *Client) RegisterConnectEventHandler(
	handler ConnectEventHandler,
) func() {
	return c.connectEventHandlers.Append(handler)
}

// RegisterDisconnectEventHandler registers a handler called whenever the push
// channel goes down. Returns a function to remove the handler.
func (c *Client) RegisterDisconnectEventHandler(
	handler DisconnectEventHandler,
) func() {
	return c.disconnectEventHandlers.Append(handler)
}

func (c *Client) setConn(conn *websocket.Conn) {
	c.connMu.Lock()
	defer c.connMu.Unlock()
	c.conn = conn
}

func (c *Client) closeConn() {
	c.connMu.Lock()
	defer c.connMu.Unlock()
	if c.conn != nil {
		_ = c.conn.Close()
		c.conn = nil
	}
}
