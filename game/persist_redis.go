package game

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

const sessionKeyPrefix = "session:"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// RedisSessionStore keeps each session as one JSON document under
// "session:<id>".
type RedisSessionStore struct {
	rdclient *redis.Client
}

func NewRedisSessionStore(redisURL string, redisPW string, redisDB int) *RedisSessionStore {
	rdclient := redis.NewClient(&redis.Options{
		Addr:     redisURL,
		Password: redisPW,
		DB:       redisDB,
	})
	return &RedisSessionStore{rdclient: rdclient}
}

// NewRedisSessionStoreWithClient wraps an existing client so the store and
// the chat log can share one connection pool.
func NewRedisSessionStoreWithClient(rdclient *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{rdclient: rdclient}
}

func sessionKey(id uuid.UUID) string {
	return fmt.Sprintf("%s%s", sessionKeyPrefix, id)
}

func (r *RedisSessionStore) Load(ctx context.Context, id uuid.UUID) (*Session, error) {
	data, err := r.rdclient.Get(ctx, sessionKey(id)).Result()
	if err == redis.Nil {
		return nil, ErrSessionNotFound
	} else if err != nil {
		return nil, errors.Wrapf(err, "loading session %s", id)
	}
	session := &Session{}
	if err := json.Unmarshal([]byte(data), session); err != nil {
		return nil, errors.Wrapf(err, "decoding session %s", id)
	}
	return session, nil
}

func (r *RedisSessionStore) Save(ctx context.Context, session *Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return errors.Wrapf(err, "encoding session %s", session.ID)
	}
	if err := r.rdclient.Set(ctx, sessionKey(session.ID), data, 0).Err(); err != nil {
		return errors.Wrapf(err, "saving session %s", session.ID)
	}
	return nil
}

func (r *RedisSessionStore) Remove(ctx context.Context, id uuid.UUID) error {
	if err := r.rdclient.Del(ctx, sessionKey(id)).Err(); err != nil {
		return errors.Wrapf(err, "removing session %s", id)
	}
	return nil
}

func (r *RedisSessionStore) Keys(ctx context.Context) ([]uuid.UUID, error) {
	keys, err := r.rdclient.Keys(ctx, sessionKeyPrefix+"*").Result()
	if err != nil {
		return nil, errors.Wrap(err, "listing session keys")
	}
	ids := make([]uuid.UUID, 0, len(keys))
	for _, key := range keys {
		id, err := uuid.Parse(strings.TrimPrefix(key, sessionKeyPrefix))
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}
