package game

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

var managerLogger = log.With().Str("logger_name", "game::directory").Logger()

// Manager is the session directory: it maps session ids to their lock and
// players to their current session, and runs every mutating operation as
// reload-validate-mutate-persist under the per-session lock. The in-memory
// maps are a cache; the store is the source of truth.
type Manager struct {
	store SessionStore

	mu          sync.Mutex
	locks       map[uuid.UUID]*sync.Mutex
	playerIndex map[uuid.UUID]uuid.UUID
}

func NewManager(store SessionStore) *Manager {
	return &Manager{
		store:       store,
		locks:       make(map[uuid.UUID]*sync.Mutex),
		playerIndex: make(map[uuid.UUID]uuid.UUID),
	}
}

func (m *Manager) sessionLock(id uuid.UUID) *sync.Mutex {
	m.mu.Lock()
	defer m.mu.Unlock()
	lock, ok := m.locks[id]
	if !ok {
		lock = &sync.Mutex{}
		m.locks[id] = lock
	}
	return lock
}

// CreateSession makes a new lobby session owned by the given player and
// persists it.
func (m *Manager) CreateSession(ctx context.Context, ownerID uuid.UUID, ownerName string, maxPlayers int) (*Session, error) {
	session := NewSession(ownerID, ownerName, maxPlayers)
	if err := m.store.Save(ctx, session); err != nil {
		return nil, err
	}
	m.mu.Lock()
	m.playerIndex[ownerID] = session.ID
	m.mu.Unlock()
	managerLogger.Info().
		Str("sessionID", session.ID.String()).
		Str("playerID", ownerID.String()).
		Msgf("Session created with %d seats", session.MaxPlayers)
	return session, nil
}

// GetSession reads the current snapshot without taking the session lock.
// Callers must tolerate slightly stale data.
func (m *Manager) GetSession(ctx context.Context, id uuid.UUID) (*Session, error) {
	return m.store.Load(ctx, id)
}

// FindSessionForPlayer returns the session the player last joined.
func (m *Manager) FindSessionForPlayer(playerID uuid.UUID) (uuid.UUID, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id, ok := m.playerIndex[playerID]
	return id, ok
}

// RemoveSession deletes the session from the store and drops the cached
// lock and player index entries.
func (m *Manager) RemoveSession(ctx context.Context, id uuid.UUID) error {
	lock := m.sessionLock(id)
	lock.Lock()
	defer lock.Unlock()

	if err := m.store.Remove(ctx, id); err != nil {
		return err
	}
	m.mu.Lock()
	delete(m.locks, id)
	for playerID, sessionID := range m.playerIndex {
		if sessionID == id {
			delete(m.playerIndex, playerID)
		}
	}
	m.mu.Unlock()
	managerLogger.Info().Str("sessionID", id.String()).Msg("Session removed")
	return nil
}

// Keys lists the ids of every stored session.
func (m *Manager) Keys(ctx context.Context) ([]uuid.UUID, error) {
	return m.store.Keys(ctx)
}

// mutate is the transactional scope of every player action: take the
// session lock, reload the authoritative snapshot, apply fn, persist the
// whole document, then run the after hook (broadcasts) while the lock still
// serializes the session. fn returning an error leaves the store untouched.
func (m *Manager) mutate(ctx context.Context, id uuid.UUID,
	fn func(*Session) (*HandResult, error),
	after func(*Session, *HandResult)) error {

	lock := m.sessionLock(id)
	lock.Lock()
	defer lock.Unlock()

	session, err := m.store.Load(ctx, id)
	if err != nil {
		return err
	}
	result, err := fn(session)
	if err != nil {
		return err
	}
	if err := m.store.Save(ctx, session); err != nil {
		return errors.Wrap(err, "persisting session after action")
	}
	if after != nil {
		after(session, result)
	}
	return nil
}

// JoinSession adds the player to the session roster (idempotent) and
// records the player to session mapping.
func (m *Manager) JoinSession(ctx context.Context, sessionID uuid.UUID, playerID uuid.UUID, name string) error {
	err := m.mutate(ctx, sessionID, func(s *Session) (*HandResult, error) {
		s.AddPlayer(playerID, name)
		return nil, nil
	}, nil)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.playerIndex[playerID] = sessionID
	m.mu.Unlock()
	return nil
}

// LeaveSession runs the remove-player operation and clears the player
// mapping.
func (m *Manager) LeaveSession(ctx context.Context, sessionID uuid.UUID, playerID uuid.UUID,
	after func(*Session, *HandResult)) error {
	err := m.mutate(ctx, sessionID, func(s *Session) (*HandResult, error) {
		return s.RemovePlayer(playerID)
	}, after)
	if err != nil {
		return err
	}
	m.mu.Lock()
	delete(m.playerIndex, playerID)
	m.mu.Unlock()
	return nil
}
