package connection

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 16384

	// enough slack for a lobby snapshot burst plus game updates
	sendBufferSize = 32
)

// Channel is the outbound half of one client connection as seen by
// the routing layer. Tests substitute an in-memory implementation.
type Channel interface {
	Id() string
	SendJSON(v any) error
	Close()
}

// Client wraps a websocket connection with a buffered outbound queue
// so command handling never blocks on a slow peer. All writes go
// through the write pump; the read side is driven by the router's
// per-connection loop.
type Client struct {
	id        string
	conn      *websocket.Conn
	send      chan []byte
	closeOnce sync.Once
	done      chan struct{}
}

var _ Channel = (*Client)(nil)

func NewClient(id string, conn *websocket.Conn) *Client {
	return &Client{
		id:   id,
		conn: conn,
		send: make(chan []byte, sendBufferSize),
		done: make(chan struct{}),
	}
}

func (c *Client) Id() string {
	return c.id
}

// Start launches the write pump and arms the read deadlines.
func (c *Client) Start() {
	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	go c.writePump()
}

// ReadMessage blocks until the next text frame or a read error. The
// caller owns the read loop and tears the connection down on error.
func (c *Client) ReadMessage() ([]byte, error) {
	_, payload, err := c.conn.ReadMessage()
	return payload, err
}

// SendJSON marshals v and enqueues it. A client whose queue is full
// is considered dead and dropped rather than stalling the sender.
func (c *Client) SendJSON(v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return err
	}

	select {
	case c.send <- payload:
		return nil
	case <-c.done:
		return websocket.ErrCloseSent
	default:
		slog.Warn("outbound queue full, dropping client", "clientId", c.id)
		c.Close()
		return websocket.ErrCloseSent
	}
}

func (c *Client) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
		_ = c.conn.Close()
	})
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Close()
	}()

	for {
		select {
		case payload := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.done:
			return
		}
	}
}

// IsExpectedCloseError filters the close codes a browser tab
// produces on navigation or refresh, which are not worth logging.
func IsExpectedCloseError(err error) bool {
	return websocket.IsCloseError(err,
		websocket.CloseNormalClosure,
		websocket.CloseGoingAway,
		websocket.CloseNoStatusReceived,
		websocket.CloseAbnormalClosure,
	)
}
