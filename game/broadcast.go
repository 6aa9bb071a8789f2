package game

import (
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

var broadcastLogger = log.With().Str("logger_name", "game::broadcast").Logger()

// Receiver is one attached socket. Owned by the transport layer; the engine
// only ever writes serialized events to it.
type Receiver interface {
	Send(payload []byte) error
}

// Broadcaster fans event payloads out to every socket attached to a
// session, or to one player's socket. Delivery is best effort per socket: a
// dead socket never blocks the rest of the table.
type Broadcaster struct {
	mu       sync.RWMutex
	sockets  map[uuid.UUID]Receiver
	sessions map[uuid.UUID]map[uuid.UUID]bool
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		sockets:  make(map[uuid.UUID]Receiver),
		sessions: make(map[uuid.UUID]map[uuid.UUID]bool),
	}
}

// Attach registers the player's socket within a session, replacing any
// previous socket for that player.
func (b *Broadcaster) Attach(sessionID uuid.UUID, playerID uuid.UUID, r Receiver) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sockets[playerID] = r
	members, ok := b.sessions[sessionID]
	if !ok {
		members = make(map[uuid.UUID]bool)
		b.sessions[sessionID] = members
	}
	members[playerID] = true
}

// Detach drops the player's socket only. The player stays in the session;
// a disconnect does not fold or remove them.
func (b *Broadcaster) Detach(sessionID uuid.UUID, playerID uuid.UUID) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.sockets, playerID)
	if members, ok := b.sessions[sessionID]; ok {
		delete(members, playerID)
		if len(members) == 0 {
			delete(b.sessions, sessionID)
		}
	}
}

func (b *Broadcaster) members(sessionID uuid.UUID) []uuid.UUID {
	b.mu.RLock()
	defer b.mu.RUnlock()
	ids := make([]uuid.UUID, 0, len(b.sessions[sessionID]))
	for id := range b.sessions[sessionID] {
		ids = append(ids, id)
	}
	return ids
}

// SendTo delivers one event to one player. A missing socket is not an
// error; the player is simply detached right now.
func (b *Broadcaster) SendTo(playerID uuid.UUID, event interface{}) {
	payload, err := json.Marshal(event)
	if err != nil {
		broadcastLogger.Error().Err(err).Msg("Failed to encode event")
		return
	}
	b.mu.RLock()
	socket, ok := b.sockets[playerID]
	b.mu.RUnlock()
	if !ok {
		return
	}
	if err := socket.Send(payload); err != nil {
		broadcastLogger.Warn().
			Str("playerID", playerID.String()).
			Err(err).
			Msg("Failed to deliver event to player socket")
	}
}

// SendToAll delivers the same event to every socket in the session.
func (b *Broadcaster) SendToAll(sessionID uuid.UUID, event interface{}) {
	for _, playerID := range b.members(sessionID) {
		b.SendTo(playerID, event)
	}
}

// SendToAllFunc delivers a per-viewer event to every socket in the session;
// build is called once per attached player. Used for snapshots, which
// redact hole cards per viewer.
func (b *Broadcaster) SendToAllFunc(sessionID uuid.UUID, build func(playerID uuid.UUID) interface{}) {
	for _, playerID := range b.members(sessionID) {
		b.SendTo(playerID, build(playerID))
	}
}
