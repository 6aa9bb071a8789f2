package game

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatMessageEncodeDecode(t *testing.T) {
	msg := ChatMessage{
		PlayerID:  uuid.New(),
		Username:  "alice",
		Message:   "nice hand",
		Timestamp: time.Now().Truncate(time.Millisecond),
	}

	decoded, err := DecodeChatMessage(msg.Encode())
	require.NoError(t, err)
	assert.Equal(t, msg.PlayerID, decoded.PlayerID)
	assert.Equal(t, msg.Username, decoded.Username)
	assert.Equal(t, msg.Message, decoded.Message)
	assert.True(t, msg.Timestamp.Equal(decoded.Timestamp))
}

func TestChatMessageTextMayContainSeparator(t *testing.T) {
	msg := ChatMessage{
		PlayerID:  uuid.New(),
		Username:  "alice",
		Message:   "a::b::c",
		Timestamp: time.Now(),
	}
	decoded, err := DecodeChatMessage(msg.Encode())
	require.NoError(t, err)
	assert.Equal(t, "a::b::c", decoded.Message)
}

func TestDecodeChatMessageMalformed(t *testing.T) {
	_, err := DecodeChatMessage("not a chat line")
	assert.Error(t, err)

	_, err = DecodeChatMessage("2026-01-01T00:00:00Z::not-a-uuid::alice::hi")
	assert.Error(t, err)
}

func TestMemoryChatLogHistory(t *testing.T) {
	ctx := context.Background()
	log := NewMemoryChatLog()
	sessionID := uuid.New()
	playerID := uuid.New()

	for _, text := range []string{"one", "two", "three"} {
		err := log.Append(ctx, sessionID, ChatMessage{
			PlayerID:  playerID,
			Username:  "alice",
			Message:   text,
			Timestamp: time.Now(),
		})
		require.NoError(t, err)
	}

	history, err := log.History(ctx, sessionID)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, "one", history[0].Message)
	assert.Equal(t, "three", history[2].Message)

	// Other sessions have their own history.
	other, err := log.History(ctx, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestMemoryChatLogSkipsCorruptLines(t *testing.T) {
	ctx := context.Background()
	log := NewMemoryChatLog()
	sessionID := uuid.New()

	require.NoError(t, log.Append(ctx, sessionID, ChatMessage{
		PlayerID:  uuid.New(),
		Username:  "alice",
		Message:   "hello",
		Timestamp: time.Now(),
	}))
	log.lines[sessionID] = append(log.lines[sessionID], "garbage")

	history, err := log.History(ctx, sessionID)
	require.NoError(t, err)
	assert.Len(t, history, 1)
}
