package game

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// MemorySessionStore keeps sessions as serialized documents, so tests
// exercise the same encode/decode boundary as the Redis store.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID][]byte
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[uuid.UUID][]byte),
	}
}

func (m *MemorySessionStore) Load(ctx context.Context, id uuid.UUID) (*Session, error) {
	m.mu.RLock()
	data, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	session := &Session{}
	if err := json.Unmarshal(data, session); err != nil {
		return nil, errors.Wrapf(err, "decoding session %s", id)
	}
	return session, nil
}

func (m *MemorySessionStore) Save(ctx context.Context, session *Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return errors.Wrapf(err, "encoding session %s", session.ID)
	}
	m.mu.Lock()
	m.sessions[session.ID] = data
	m.mu.Unlock()
	return nil
}

func (m *MemorySessionStore) Remove(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
	return nil
}

func (m *MemorySessionStore) Keys(ctx context.Context) ([]uuid.UUID, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]uuid.UUID, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	return ids, nil
}
