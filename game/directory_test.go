package game

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateSessionPersistsAndIndexes(t *testing.T) {
	ctx := context.Background()
	m := NewManager(NewMemorySessionStore())
	ownerID := uuid.New()

	s, err := m.CreateSession(ctx, ownerID, "alice", 4)
	require.NoError(t, err)

	loaded, err := m.GetSession(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, ownerID, loaded.Owner)

	sessionID, ok := m.FindSessionForPlayer(ownerID)
	require.True(t, ok)
	assert.Equal(t, s.ID, sessionID)
}

func TestGetSessionUnknown(t *testing.T) {
	m := NewManager(NewMemorySessionStore())
	_, err := m.GetSession(context.Background(), uuid.New())
	assert.Equal(t, ErrSessionNotFound, errors.Cause(err))
}

func TestMutatePersistsOnlyOnSuccess(t *testing.T) {
	ctx := context.Background()
	m := NewManager(NewMemorySessionStore())
	s, err := m.CreateSession(ctx, uuid.New(), "alice", 4)
	require.NoError(t, err)

	err = m.mutate(ctx, s.ID, func(sn *Session) (*HandResult, error) {
		sn.MainPot = 999
		return nil, ErrIllegalAction
	}, nil)
	assert.Equal(t, ErrIllegalAction, errors.Cause(err))

	loaded, err := m.GetSession(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, loaded.MainPot)

	afterRan := false
	err = m.mutate(ctx, s.ID, func(sn *Session) (*HandResult, error) {
		sn.MainPot = 55
		return nil, nil
	}, func(sn *Session, result *HandResult) {
		afterRan = true
		assert.Equal(t, 55.0, sn.MainPot)
		assert.Nil(t, result)
	})
	require.NoError(t, err)
	assert.True(t, afterRan)

	loaded, err = m.GetSession(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, 55.0, loaded.MainPot)
}

func TestMutateSerializesConcurrentActions(t *testing.T) {
	ctx := context.Background()
	m := NewManager(NewMemorySessionStore())
	s, err := m.CreateSession(ctx, uuid.New(), "alice", 4)
	require.NoError(t, err)

	const workers = 8
	const increments = 25
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < increments; j++ {
				err := m.mutate(ctx, s.ID, func(sn *Session) (*HandResult, error) {
					sn.MainPot++
					return nil, nil
				}, nil)
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()

	loaded, err := m.GetSession(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, float64(workers*increments), loaded.MainPot)
}

func TestJoinAndLeaveSession(t *testing.T) {
	ctx := context.Background()
	m := NewManager(NewMemorySessionStore())
	s, err := m.CreateSession(ctx, uuid.New(), "alice", 4)
	require.NoError(t, err)

	bobID := uuid.New()
	require.NoError(t, m.JoinSession(ctx, s.ID, bobID, "bob"))
	require.NoError(t, m.JoinSession(ctx, s.ID, bobID, "bob"))

	loaded, err := m.GetSession(ctx, s.ID)
	require.NoError(t, err)
	assert.Len(t, loaded.Players, 2)

	sessionID, ok := m.FindSessionForPlayer(bobID)
	require.True(t, ok)
	assert.Equal(t, s.ID, sessionID)

	require.NoError(t, m.LeaveSession(ctx, s.ID, bobID, nil))
	loaded, err = m.GetSession(ctx, s.ID)
	require.NoError(t, err)
	assert.Len(t, loaded.Players, 1)
	_, ok = m.FindSessionForPlayer(bobID)
	assert.False(t, ok)
}

func TestRemoveSessionClearsIndex(t *testing.T) {
	ctx := context.Background()
	m := NewManager(NewMemorySessionStore())
	ownerID := uuid.New()
	s, err := m.CreateSession(ctx, ownerID, "alice", 4)
	require.NoError(t, err)

	require.NoError(t, m.RemoveSession(ctx, s.ID))

	_, err = m.GetSession(ctx, s.ID)
	assert.Equal(t, ErrSessionNotFound, errors.Cause(err))
	_, ok := m.FindSessionForPlayer(ownerID)
	assert.False(t, ok)
}
