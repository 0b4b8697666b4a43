package source

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/google/logger"
	"golang.org/x/net/websocket"

	"giveaway/internal/models"
)

// reconnectDelay spaces out dial attempts to the relay.
const reconnectDelay = 5 * time.Second

// Handler consumes decoded live events.
type Handler interface {
	HandleEvent(ev models.LiveEvent)
}

// Client maintains a websocket connection to the upstream live-event
// relay and feeds decoded events to the engine. Connection failures are
// logged and retried; the engine keeps serving whatever participants it
// already has in the meantime.
type Client struct {
	url     string
	origin  string
	handler Handler
	delay   time.Duration
}

// NewClient creates a relay client. It does not connect until Run.
func NewClient(url, origin string, handler Handler) *Client {
	return &Client{url: url, origin: origin, handler: handler, delay: reconnectDelay}
}

// Run dials the relay and pumps events until the context is cancelled,
// redialing after connection loss.
func (c *Client) Run(ctx context.Context) {
	for {
		if err := c.pump(ctx); err != nil && ctx.Err() == nil {
			logger.Errorf("live source connection lost: %v", err)
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(c.delay):
		}
	}
}

func (c *Client) pump(ctx context.Context) error {
	conn, err := websocket.Dial(c.url, "", c.origin)
	if err != nil {
		return err
	}
	logger.Infof("connected to live source at %s", c.url)

	// The watcher closes the connection on cancellation and exits with
	// the pump, so reconnect cycles leave nothing behind.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
		case <-done:
		}
		conn.Close()
	}()

	for {
		var env models.Envelope
		if err := websocket.JSON.Receive(conn, &env); err != nil {
			if errors.Is(err, io.EOF) {
				return errors.New("source closed the connection")
			}
			return err
		}

		ev, err := Decode(env)
		if err != nil {
			logger.Errorf("dropping malformed source event: %v", err)
			continue
		}
		c.handler.HandleEvent(ev)
	}
}
