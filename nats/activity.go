package nats

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	natsgo "github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"
)

var natsLogger = log.With().Str("logger_name", "nats::activity").Logger()

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Subjects shared with the session sweeper. The sweeper watches the
// activity stream and tells every server instance when it expires a
// session.
const (
	SessionActivitySubject = "session.activity"
	SessionDeletedSubject  = "session.deleted"
)

type sessionEvent struct {
	SessionID string `json:"session_id"`
	Timestamp int64  `json:"ts"`
}

// ActivityPublisher reports session activity on the NATS bus. Publishing is
// fire and forget; losing an activity tick only risks an earlier expiry.
type ActivityPublisher struct {
	nc *natsgo.Conn
}

func NewActivityPublisher(natsURL string) (*ActivityPublisher, error) {
	nc, err := natsgo.Connect(natsURL)
	if err != nil {
		natsLogger.Error().Msg(fmt.Sprintf("Failed to connect to nats server: %v", err))
		return nil, err
	}
	return &ActivityPublisher{nc: nc}, nil
}

// SessionActive publishes one activity tick for the session.
func (p *ActivityPublisher) SessionActive(sessionID uuid.UUID) {
	event := sessionEvent{
		SessionID: sessionID.String(),
		Timestamp: time.Now().Unix(),
	}
	data, err := json.Marshal(event)
	if err != nil {
		natsLogger.Error().Err(err).Msg("Failed to encode activity event")
		return
	}
	if err := p.nc.Publish(SessionActivitySubject, data); err != nil {
		natsLogger.Warn().
			Str("sessionID", event.SessionID).
			Err(err).
			Msg("Failed to publish activity event")
	}
}

func (p *ActivityPublisher) Close() {
	p.nc.Close()
}
