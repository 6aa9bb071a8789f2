package game

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSocket struct {
	mu       sync.Mutex
	payloads [][]byte
	fail     bool
}

func (f *fakeSocket) Send(payload []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errors.New("socket closed")
	}
	f.payloads = append(f.payloads, payload)
	return nil
}

func (f *fakeSocket) events(t *testing.T) []map[string]interface{} {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	events := make([]map[string]interface{}, 0, len(f.payloads))
	for _, payload := range f.payloads {
		event := map[string]interface{}{}
		require.NoError(t, json.Unmarshal(payload, &event))
		events = append(events, event)
	}
	return events
}

func (f *fakeSocket) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.payloads)
}

func TestBroadcasterSendToAll(t *testing.T) {
	b := NewBroadcaster()
	sessionID := uuid.New()
	aliceID, bobID := uuid.New(), uuid.New()
	alice, bob := &fakeSocket{}, &fakeSocket{}

	b.Attach(sessionID, aliceID, alice)
	b.Attach(sessionID, bobID, bob)

	b.SendToAll(sessionID, ErrorEvent{Type: EventError, Message: "x"})
	assert.Equal(t, 1, alice.count())
	assert.Equal(t, 1, bob.count())
}

func TestBroadcasterSendToMissingSocket(t *testing.T) {
	b := NewBroadcaster()
	// Not an error; the player is simply not connected.
	b.SendTo(uuid.New(), ErrorEvent{Type: EventError, Message: "x"})
}

func TestBroadcasterDetachStopsDelivery(t *testing.T) {
	b := NewBroadcaster()
	sessionID := uuid.New()
	aliceID, bobID := uuid.New(), uuid.New()
	alice, bob := &fakeSocket{}, &fakeSocket{}

	b.Attach(sessionID, aliceID, alice)
	b.Attach(sessionID, bobID, bob)
	b.Detach(sessionID, aliceID)

	b.SendToAll(sessionID, ErrorEvent{Type: EventError, Message: "x"})
	assert.Equal(t, 0, alice.count())
	assert.Equal(t, 1, bob.count())
}

func TestBroadcasterDeadSocketDoesNotBlockOthers(t *testing.T) {
	b := NewBroadcaster()
	sessionID := uuid.New()
	aliceID, bobID := uuid.New(), uuid.New()
	alice, bob := &fakeSocket{fail: true}, &fakeSocket{}

	b.Attach(sessionID, aliceID, alice)
	b.Attach(sessionID, bobID, bob)

	b.SendToAll(sessionID, ErrorEvent{Type: EventError, Message: "x"})
	assert.Equal(t, 1, bob.count())
}

func TestBroadcasterSendToAllFuncBuildsPerViewer(t *testing.T) {
	b := NewBroadcaster()
	sessionID := uuid.New()
	aliceID, bobID := uuid.New(), uuid.New()
	alice, bob := &fakeSocket{}, &fakeSocket{}

	b.Attach(sessionID, aliceID, alice)
	b.Attach(sessionID, bobID, bob)

	b.SendToAllFunc(sessionID, func(playerID uuid.UUID) interface{} {
		return ErrorEvent{Type: EventError, Message: playerID.String()}
	})

	require.Equal(t, 1, alice.count())
	require.Equal(t, 1, bob.count())
	assert.Equal(t, aliceID.String(), alice.events(t)[0]["message"])
	assert.Equal(t, bobID.String(), bob.events(t)[0]["message"])
}

func TestBroadcasterReattachReplacesSocket(t *testing.T) {
	b := NewBroadcaster()
	sessionID := uuid.New()
	aliceID := uuid.New()
	old, current := &fakeSocket{}, &fakeSocket{}

	b.Attach(sessionID, aliceID, old)
	b.Attach(sessionID, aliceID, current)

	b.SendTo(aliceID, ErrorEvent{Type: EventError, Message: "x"})
	assert.Equal(t, 0, old.count())
	assert.Equal(t, 1, current.count())
}
