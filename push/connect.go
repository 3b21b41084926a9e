package push

import (
	"context"

	"github.com/RodCaba/fp-orchestrator/internal/retry"
	"github.com/RodCaba/fp-orchestrator/wire"
	"github.com/gorilla/websocket"
)

// Start opens the push channel and begins delivering events to registered
// handlers. The channel is maintained until Stop is called or ctx is
// cancelled; every drop is redialed after the configured reconnect interval,
// with no attempt limit.
func (c *Client) Start(ctx context.Context) error {
	if !c.started.CompareAndSwap(false, true) {
		return &ClientStateError{State: Started}
	}

	ctx, cancel := context.WithCancel(ctx)
	c.stop = cancel
	c.stopped = make(chan struct{})

	go c.maintain(ctx)
	return nil
}

// Stop closes the push channel and ends reconnection. It blocks until the
// manage loop has exited. Stop before Start is a no-op.
func (c *Client) Stop() {
	if !c.started.Load() {
		return
	}
	c.stop()
	c.closeConn()
	<-c.stopped
}

// maintain runs the connect/read/redial cycle until ctx is cancelled. The
// retry policy provides the fixed wait between cycles, so a dropped channel
// and a failed dial redial on the same cadence.
func (c *Client) maintain(ctx context.Context) {
	defer close(c.stopped)
	defer c.state.Store(int32(Disconnected))

	policy := &retry.ConstantDelay{
		Interval: c.options.ReconnectInterval,
		Logger:   c.options.Logger,
	}

	var attempt uint64
	_ = policy.Start(ctx, "push connect", func(ctx context.Context) (bool, error) {
		attempt++
		c.state.Store(int32(Connecting))

		conn, err := c.connectionProvider(ctx)
		if err != nil {
			c.state.Store(int32(Disconnected))
			if ctx.Err() != nil {
				return false, ctx.Err()
			}
			// Dial failures are treated as transient.
			return true, err
		}

		c.setConn(conn)
		c.state.Store(int32(Connected))
		c.log.connected(ctx, attempt)
		c.onConnect(attempt)

		err = c.readLoop(ctx, conn)

		c.setConn(nil)
		c.state.Store(int32(Disconnected))

		if ctx.Err() != nil {
			return false, ctx.Err()
		}

		c.log.disconnected(ctx, err)
		c.onDisconnect(err)
		return true, err
	})
}

// readLoop delivers decoded frames until the socket errors out. Frames that
// fail to decode are dropped without affecting the channel.
func (c *Client) readLoop(ctx context.Context, conn *websocket.Conn) error {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return err
		}

		event, err := wire.Decode(data)
		if err != nil {
			c.log.dropped(ctx, err)
			continue
		}

		c.log.event(ctx, event)
		for handler := range c.messageHandlers.All() {
			handler(ctx, event)
		}
	}
}

func (c *Client) onConnect(attempt uint64) {
	for handler := range c.connectEventHandlers.All() {
		handler(&ConnectEvent{Attempt: attempt})
	}
}

func (c *Client) onDisconnect(err error) {
	for handler := range c.disconnectEventHandlers.All() {
		handler(&DisconnectEvent{Error: err})
	}
}
