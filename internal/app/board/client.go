package board

import (
	"errors"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"boardroom/internal/app/user"
	"boardroom/internal/pkg/logx"
	"boardroom/internal/pkg/randx"
)

const (
	// timeout duration for writing to the WebSocket connection.
	writeWait = 10 * time.Second

	// maximum time allowed for the server to wait for a Pong message from the client.
	pongWait = 60 * time.Second

	// frequency at which the server sends a Ping message.
	pingPeriod = (pongWait * 9) / 10

	// maximum allowed size (in bytes) of a message sent by the client.
	maxMessageSize = 256 << 10

	// sendBuffer is the number of outbound frames queued per connection.
	sendBuffer = 256
)

var (
	// ErrSendQueueFull is returned by Send when the peer is not draining its queue.
	ErrSendQueueFull = errors.New("client send queue full")

	// ErrClientClosed is returned by Send after Close.
	ErrClientClosed = errors.New("client closed")
)

// Client is one board connection backed by a gorilla websocket.
type Client struct {
	id    string
	board *Board
	conn  *websocket.Conn
	user  user.User

	// send queues frames for WritePump. It is closed exactly once, by Close.
	send chan []byte

	mu     sync.Mutex
	closed bool

	logger zerolog.Logger
}

// NewClient constructs a Client for an upgraded connection of an authenticated user.
func NewClient(b *Board, conn *websocket.Conn, u user.User) *Client {
	id := randx.ID()

	clientLogger := logx.Logger().With().
		Str("component", "board.client").
		Str("conn_id", id).
		Str("user_id", u.ID).
		Str("role", string(u.Role)).
		Logger()

	return &Client{
		id:     id,
		board:  b,
		conn:   conn,
		user:   u,
		send:   make(chan []byte, sendBuffer),
		logger: clientLogger,
	}
}

// ID returns the connection id.
func (c *Client) ID() string {
	return c.id
}

// Send queues msg without blocking.
func (c *Client) Send(msg []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClientClosed
	}

	select {
	case c.send <- msg:
		return nil
	default:
		c.logger.Warn().Int("queue_len", len(c.send)).Msg("Client send channel full.")
		return ErrSendQueueFull
	}
}

// Close stops the write loop, which sends a close frame and closes the connection.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}

// ReadPump reads frames until the connection fails and hands them to the board.
// It unregisters the client when it returns.
func (c *Client) ReadPump() {
	defer c.cleanupOnDisconnect()

	c.conn.SetReadLimit(maxMessageSize)

	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.logger.Error().Err(err).Msg("Failed to set read deadline")
		return
	}

	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		msgType, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Info().Err(err).Msg("Error reading message (Client close/going away)")
			}
			return
		}

		if msgType != websocket.TextMessage {
			continue
		}

		// Any inbound frame counts as liveness.
		if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			return
		}

		c.board.HandleMessage(c, data)
	}
}

func (c *Client) cleanupOnDisconnect() {
	c.board.Leave(c)
	c.Close()

	if err := c.conn.Close(); err != nil {
		c.logger.Debug().Err(err).Msg("Client connection close error")
	}
}

// WritePump drains the send queue to the connection and keeps it alive with pings.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()

		// ensure the connection is closed on exit
		if err := c.conn.Close(); err != nil {
			c.logger.Debug().Err(err).Msg("Client connection close error in WritePump")
		}
	}()

	for {
		select {
		case message, ok := <-c.send:
			if !c.writeQueuedMessage(message, ok) {
				return
			}

		case <-ticker.C:
			if !c.writePingMessage() {
				return
			}
		}
	}
}

// writeQueuedMessage returns false when the write loop should stop.
func (c *Client) writeQueuedMessage(message []byte, ok bool) bool {
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		c.logger.Error().Err(err).Msg("Failed to set write deadline")
		return false
	}

	if !ok {
		frame := websocket.FormatCloseMessage(websocket.CloseGoingAway, "")
		if err := c.conn.WriteMessage(websocket.CloseMessage, frame); err != nil {
			c.logger.Debug().Err(err).Msg("Error writing close message")
		}
		return false
	}

	if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
		c.logger.Warn().Err(err).Msg("Error writing message")
		return false
	}

	return true
}

func (c *Client) writePingMessage() bool {
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		c.logger.Error().Err(err).Msg("Failed to set write deadline on ping")
		return false
	}

	if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
		c.logger.Warn().Err(err).Msg("Error writing ping")
		return false
	}

	return true
}

// CloseWithCode sends a close frame on an upgraded connection that never joined the board
// and closes it.
func CloseWithCode(conn *websocket.Conn, code int, reason string) {
	frame := websocket.FormatCloseMessage(code, reason)
	_ = conn.WriteControl(websocket.CloseMessage, frame, time.Now().Add(writeWait))
	_ = conn.Close()
}
