package server

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	"golang.org/x/time/rate"

	"pokerroom.com/server/game"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from the peer.
	maxMessageSize = 4096

	// Outbound buffer per socket. A client that cannot drain this many
	// snapshots is effectively dead.
	sendBufferSize = 64
)

// Inbound rate limit per socket. Bursts cover a quick seat-and-start
// sequence; messages over the limit are answered with an error event and
// dropped.
const (
	actionsPerSecond = 5
	actionBurst      = 10
)

// client is one upgraded websocket connection. It implements game.Receiver,
// so the engine can hand it serialized events without knowing the transport.
type client struct {
	sessionID uuid.UUID
	playerID  uuid.UUID
	conn      *websocket.Conn
	send      chan []byte
	done      chan struct{}
	engine    *game.Engine
}

func newClient(engine *game.Engine, sessionID uuid.UUID, playerID uuid.UUID, conn *websocket.Conn) *client {
	return &client{
		sessionID: sessionID,
		playerID:  playerID,
		conn:      conn,
		send:      make(chan []byte, sendBufferSize),
		done:      make(chan struct{}),
		engine:    engine,
	}
}

// Send enqueues a payload for the write pump. It never blocks the engine;
// a full buffer or a closed socket drops the payload with an error.
func (c *client) Send(payload []byte) error {
	select {
	case <-c.done:
		return errors.New("socket closed")
	default:
	}
	select {
	case c.send <- payload:
		return nil
	default:
		return errors.New("socket send buffer full")
	}
}

// readPump decodes inbound actions and feeds them to the engine. It owns
// the connection's read side and runs on the request goroutine.
func (c *client) readPump() {
	defer c.close()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	limiter := rate.NewLimiter(rate.Limit(actionsPerSecond), actionBurst)
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				wsLogger.Warn().
					Str("playerID", c.playerID.String()).
					Err(err).
					Msg("Socket read failed")
			}
			return
		}
		if !limiter.Allow() {
			wsLogger.Warn().
				Str("playerID", c.playerID.String()).
				Msg("Dropping message over rate limit")
			c.Send(mustEncode(game.ErrorEvent{
				Type:    game.EventError,
				Message: "too many messages, slow down",
			}))
			continue
		}
		var action game.PlayerAction
		if err := json.Unmarshal(data, &action); err != nil {
			wsLogger.Debug().
				Str("playerID", c.playerID.String()).
				Err(err).
				Msg("Dropping malformed message")
			continue
		}
		c.engine.HandleAction(context.Background(), c.sessionID, c.playerID, action)
	}
}

// writePump drains the send channel onto the wire and keeps the connection
// alive with pings.
func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case payload, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-c.done:
			return
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// close detaches the socket from the engine. The player's seat, cards and
// chips are untouched; only an explicit exit removes them.
func (c *client) close() {
	select {
	case <-c.done:
		return
	default:
	}
	close(c.done)
	c.conn.Close()
	c.engine.PlayerDetached(c.sessionID, c.playerID)
	wsLogger.Info().
		Str("sessionID", c.sessionID.String()).
		Str("playerID", c.playerID.String()).
		Msg("Socket detached")
}
