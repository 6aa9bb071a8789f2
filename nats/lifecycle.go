package nats

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	natsgo "github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"

	"pokerroom.com/server/game"
)

var lifecycleLogger = log.With().Str("logger_name", "nats::lifecycle").Logger()

// LifecycleListener reacts to session lifecycle messages from the sweeper.
// When the sweeper expires a session, every server instance drops its local
// lock and index entries and the stored document goes away.
type LifecycleListener struct {
	nc      *natsgo.Conn
	manager *game.Manager
	sub     *natsgo.Subscription
}

func NewLifecycleListener(natsURL string, manager *game.Manager) (*LifecycleListener, error) {
	nc, err := natsgo.Connect(natsURL)
	if err != nil {
		lifecycleLogger.Error().Msg(fmt.Sprintf("Failed to connect to nats server: %v", err))
		return nil, err
	}
	l := &LifecycleListener{
		nc:      nc,
		manager: manager,
	}
	l.sub, err = nc.Subscribe(SessionDeletedSubject, l.sessionDeleted)
	if err != nil {
		lifecycleLogger.Error().Msg(fmt.Sprintf("Failed to subscribe to %s", SessionDeletedSubject))
		nc.Close()
		return nil, err
	}
	return l, nil
}

func (l *LifecycleListener) sessionDeleted(msg *natsgo.Msg) {
	var event sessionEvent
	if err := json.Unmarshal(msg.Data, &event); err != nil {
		lifecycleLogger.Error().Err(err).
			Msg(fmt.Sprintf("Malformed session deletion message: %s", string(msg.Data)))
		return
	}
	sessionID, err := uuid.Parse(event.SessionID)
	if err != nil {
		lifecycleLogger.Error().Err(err).
			Str("sessionID", event.SessionID).
			Msg("Malformed session id in deletion message")
		return
	}
	if err := l.manager.RemoveSession(context.Background(), sessionID); err != nil {
		lifecycleLogger.Warn().Err(err).
			Str("sessionID", event.SessionID).
			Msg("Failed to remove expired session")
		return
	}
	lifecycleLogger.Info().
		Str("sessionID", event.SessionID).
		Msg("Session expired by sweeper")
}

func (l *LifecycleListener) Close() {
	l.sub.Unsubscribe()
	l.nc.Close()
}
