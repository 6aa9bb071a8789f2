package game

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const chatKeyPrefix = "message:"

// ChatMessage is one chat line. The storage encoding is
// "timestamp::player-id::username::text", matching the history format the
// clients consume.
type ChatMessage struct {
	PlayerID  uuid.UUID `json:"player_id"`
	Username  string    `json:"username"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

func (m ChatMessage) Encode() string {
	return fmt.Sprintf("%s::%s::%s::%s",
		m.Timestamp.Format(time.RFC3339Nano), m.PlayerID, m.Username, m.Message)
}

func DecodeChatMessage(s string) (ChatMessage, error) {
	parts := strings.SplitN(s, "::", 4)
	if len(parts) != 4 {
		return ChatMessage{}, errors.Errorf("malformed chat line %q", s)
	}
	ts, err := time.Parse(time.RFC3339Nano, parts[0])
	if err != nil {
		return ChatMessage{}, errors.Wrap(err, "parsing chat timestamp")
	}
	playerID, err := uuid.Parse(parts[1])
	if err != nil {
		return ChatMessage{}, errors.Wrap(err, "parsing chat player id")
	}
	return ChatMessage{
		PlayerID:  playerID,
		Username:  parts[2],
		Message:   parts[3],
		Timestamp: ts,
	}, nil
}

// ChatLog is the external message history: append a line, list the history.
type ChatLog interface {
	Append(ctx context.Context, sessionID uuid.UUID, message ChatMessage) error
	History(ctx context.Context, sessionID uuid.UUID) ([]ChatMessage, error)
}

// RedisChatLog stores each session's chat as a Redis list under
// "message:<session-id>".
type RedisChatLog struct {
	rdclient *redis.Client
}

func NewRedisChatLog(rdclient *redis.Client) *RedisChatLog {
	return &RedisChatLog{rdclient: rdclient}
}

func chatKey(sessionID uuid.UUID) string {
	return chatKeyPrefix + sessionID.String()
}

func (c *RedisChatLog) Append(ctx context.Context, sessionID uuid.UUID, message ChatMessage) error {
	if err := c.rdclient.RPush(ctx, chatKey(sessionID), message.Encode()).Err(); err != nil {
		return errors.Wrapf(err, "appending chat line for session %s", sessionID)
	}
	return nil
}

func (c *RedisChatLog) History(ctx context.Context, sessionID uuid.UUID) ([]ChatMessage, error) {
	lines, err := c.rdclient.LRange(ctx, chatKey(sessionID), 0, -1).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "listing chat history for session %s", sessionID)
	}
	messages := make([]ChatMessage, 0, len(lines))
	for _, line := range lines {
		message, err := DecodeChatMessage(line)
		if err != nil {
			// A corrupt line must not hide the rest of the history.
			continue
		}
		messages = append(messages, message)
	}
	return messages, nil
}

// MemoryChatLog backs tests.
type MemoryChatLog struct {
	lines map[uuid.UUID][]string
}

func NewMemoryChatLog() *MemoryChatLog {
	return &MemoryChatLog{lines: make(map[uuid.UUID][]string)}
}

func (c *MemoryChatLog) Append(ctx context.Context, sessionID uuid.UUID, message ChatMessage) error {
	c.lines[sessionID] = append(c.lines[sessionID], message.Encode())
	return nil
}

func (c *MemoryChatLog) History(ctx context.Context, sessionID uuid.UUID) ([]ChatMessage, error) {
	messages := make([]ChatMessage, 0, len(c.lines[sessionID]))
	for _, line := range c.lines[sessionID] {
		message, err := DecodeChatMessage(line)
		if err != nil {
			continue
		}
		messages = append(messages, message)
	}
	return messages, nil
}
