package server

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog/log"

	"pokerroom.com/server/game"
)

var wsLogger = log.With().Str("logger_name", "server::websocket").Logger()

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

const wsPathPrefix = "/game/ws/"

// WebSocketServer is the gameplay transport. Clients connect to
// /game/ws/<session-id>/<player-id>/<name> and exchange JSON messages with
// the engine for the rest of the session.
type WebSocketServer struct {
	engine *game.Engine
}

func NewWebSocketServer(engine *game.Engine) *WebSocketServer {
	return &WebSocketServer{engine: engine}
}

func (s *WebSocketServer) Start(addr string) error {
	mux := http.NewServeMux()
	mux.HandleFunc(wsPathPrefix, s.handleWebSocket)
	wsLogger.Info().Msgf("Websocket server listening on %s", addr)
	return http.ListenAndServe(addr, mux)
}

func (s *WebSocketServer) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(strings.TrimPrefix(r.URL.Path, wsPathPrefix), "/")
	if len(parts) != 3 {
		http.Error(w, "expected /game/ws/<session-id>/<player-id>/<name>", http.StatusBadRequest)
		return
	}
	sessionID, err := uuid.Parse(parts[0])
	if err != nil {
		http.Error(w, "malformed session id", http.StatusBadRequest)
		return
	}
	playerID, err := uuid.Parse(parts[1])
	if err != nil {
		http.Error(w, "malformed player id", http.StatusBadRequest)
		return
	}
	name := parts[2]
	if name == "" {
		http.Error(w, "player name is required", http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		wsLogger.Error().Msgf("Error upgrading to websocket: %v", err)
		return
	}

	c := newClient(s.engine, sessionID, playerID, conn)
	go c.writePump()

	identity := game.PlayerIdentity{ID: playerID, Name: name}
	if err := s.engine.PlayerConnected(r.Context(), sessionID, identity, c); err != nil {
		wsLogger.Warn().
			Str("sessionID", sessionID.String()).
			Str("playerID", playerID.String()).
			Err(err).
			Msg("Rejecting connection")
		c.conn.WriteMessage(websocket.TextMessage, mustEncode(game.NewErrorEvent(err)))
		c.close()
		return
	}

	wsLogger.Info().
		Str("sessionID", sessionID.String()).
		Str("playerID", playerID.String()).
		Str("playerName", name).
		Msg("Player connected")
	c.readPump()
}

func mustEncode(event interface{}) []byte {
	data, err := json.Marshal(event)
	if err != nil {
		wsLogger.Error().Err(err).Msg("Failed to encode event")
		return []byte(`{"type":"error","message":"internal error"}`)
	}
	return data
}
