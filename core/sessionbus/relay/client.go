// Package relay carries session events between processes over a websocket
// relay. The relay rebroadcasts every event to all connections except the one
// that sent it; delivery remains best-effort with per-sender ordering only,
// exactly as the in-process bus.
package relay

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/lingvo-app/lingvo-core/core/sessionbus"
)

var _ sessionbus.Bus = (*Client)(nil)

// Client is one participant's connection to a relay server.
type Client struct {
	conn   *websocket.Conn
	connMu sync.Mutex

	handlersMu sync.Mutex
	handlers   []clientHandler
	nextID     int

	closeOnce sync.Once
	done      chan struct{}
}

type clientHandler struct {
	id      int
	handler sessionbus.Handler
}

// Dial connects to a relay server and starts the read loop. The topic is
// conveyed as a header so one relay can serve several application instances.
func Dial(ctx context.Context, url string) (*Client, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url,
		http.Header{"X-Lingvo-Topic": {sessionbus.Topic}})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to session relay: %w", err)
	}

	client := &Client{conn: conn, done: make(chan struct{})}
	go client.readLoop()

	return client, nil
}

// Publish is fire-and-forget: write failures are logged, never surfaced, in
// keeping with the bus's at-most-once contract.
func (c *Client) Publish(event sessionbus.Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		logger.Warn("Failed to encode session event", "error", err, "type", event.Type)
		return
	}

	c.connMu.Lock()
	defer c.connMu.Unlock()

	if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
		logger.Warn("Failed to publish session event", "error", err, "type", event.Type)
	}
}

func (c *Client) Subscribe(handler sessionbus.Handler) func() {
	c.handlersMu.Lock()
	defer c.handlersMu.Unlock()

	c.nextID++
	id := c.nextID
	c.handlers = append(c.handlers, clientHandler{id: id, handler: handler})

	return func() {
		c.handlersMu.Lock()
		defer c.handlersMu.Unlock()
		for i, h := range c.handlers {
			if h.id == id {
				c.handlers = append(c.handlers[:i], c.handlers[i+1:]...)
				return
			}
		}
	}
}

func (c *Client) Close() error {
	var err error
	c.closeOnce.Do(func() {
		close(c.done)

		c.connMu.Lock()
		defer c.connMu.Unlock()

		_ = c.conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		err = c.conn.Close()
	})
	return err
}

// Done closes when the connection is gone, whether through Close or a
// transport failure.
func (c *Client) Done() <-chan struct{} { return c.done }

func (c *Client) readLoop() {
	defer c.closeOnDisconnect()

	for {
		msgType, msg, err := c.conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Warn("Session relay read failed", "error", err)
			}
			return
		}
		if msgType != websocket.TextMessage {
			continue
		}

		var event sessionbus.Event
		if err := json.Unmarshal(msg, &event); err != nil {
			logger.Warn("Dropping undecodable session event", "error", err)
			continue
		}

		c.dispatch(event)
	}
}

func (c *Client) dispatch(event sessionbus.Event) {
	c.handlersMu.Lock()
	handlers := make([]clientHandler, len(c.handlers))
	copy(handlers, c.handlers)
	c.handlersMu.Unlock()

	for _, h := range handlers {
		h.handler(event)
	}
}

func (c *Client) closeOnDisconnect() {
	c.closeOnce.Do(func() {
		close(c.done)

		c.connMu.Lock()
		defer c.connMu.Unlock()
		_ = c.conn.Close()
	})
}
