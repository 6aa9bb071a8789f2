package game

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

var engineLogger = log.With().Str("logger_name", "game::engine").Logger()

// ActivityListener is notified after every accepted action. The external
// inactivity sweeper consumes these to decide which sessions to expire.
type ActivityListener interface {
	SessionActive(sessionID uuid.UUID)
}

// PlayerIdentity is the already-authenticated identity handed over by the
// transport layer.
type PlayerIdentity struct {
	ID   uuid.UUID
	Name string
}

// Engine ties the session directory, the broadcast gateway, the chat log
// and the activity feed together. It is the single entry point the
// transport layer calls with decoded client messages.
type Engine struct {
	manager     *Manager
	broadcaster *Broadcaster
	chat        ChatLog
	activity    ActivityListener
}

func NewEngine(manager *Manager, broadcaster *Broadcaster, chat ChatLog, activity ActivityListener) *Engine {
	return &Engine{
		manager:     manager,
		broadcaster: broadcaster,
		chat:        chat,
		activity:    activity,
	}
}

func (e *Engine) Manager() *Manager {
	return e.manager
}

// PlayerConnected joins the player to the session, attaches their socket
// and sends them the chat history and the current snapshot. Everyone else
// sees the updated roster.
func (e *Engine) PlayerConnected(ctx context.Context, sessionID uuid.UUID, identity PlayerIdentity, socket Receiver) error {
	err := e.manager.mutate(ctx, sessionID, func(s *Session) (*HandResult, error) {
		s.AddPlayer(identity.ID, identity.Name)
		return nil, nil
	}, func(s *Session, _ *HandResult) {
		e.broadcaster.Attach(sessionID, identity.ID, socket)
		if e.chat != nil {
			history, err := e.chat.History(ctx, sessionID)
			if err != nil {
				engineLogger.Warn().Err(err).
					Str("sessionID", sessionID.String()).
					Msg("Failed to load chat history")
			} else {
				e.broadcaster.SendTo(identity.ID, ChatPayloadEvent{Type: EventChatHistory, Payload: history})
			}
		}
		e.broadcastState(s, nil)
	})
	if err != nil {
		return err
	}
	e.manager.mu.Lock()
	e.manager.playerIndex[identity.ID] = sessionID
	e.manager.mu.Unlock()
	return nil
}

// PlayerDetached clears the socket reference only. The player's cards and
// chips stay live; leaving the table requires an explicit exit action or
// the external timeout sweep.
func (e *Engine) PlayerDetached(sessionID uuid.UUID, playerID uuid.UUID) {
	e.broadcaster.Detach(sessionID, playerID)
}

// HandleAction validates and applies one inbound client message. Rejected
// actions produce an error event for the acting player and no state change;
// accepted actions broadcast the committed snapshot to the whole table.
func (e *Engine) HandleAction(ctx context.Context, sessionID uuid.UUID, playerID uuid.UUID, action PlayerAction) {
	engineLogger.Debug().
		Str("sessionID", sessionID.String()).
		Str("playerID", playerID.String()).
		Str("msgType", action.Type).
		Msg("Handling player action")

	switch action.Type {
	case ActionNewMessage:
		e.handleChat(ctx, sessionID, playerID, action.Text)
		return
	case ActionTypingStart, ActionTypingEnd:
		e.broadcaster.SendToAll(sessionID, ChatPayloadEvent{
			Type:    action.Type,
			Payload: map[string]string{"player_id": playerID.String()},
		})
		return
	}

	after := func(s *Session, result *HandResult) {
		e.broadcastState(s, result)
	}

	var err error
	switch action.Type {
	case ActionTakeSeat:
		err = e.manager.mutate(ctx, sessionID, func(s *Session) (*HandResult, error) {
			return nil, s.TakeSeat(playerID, action.SeatNum)
		}, after)
	case ActionStart:
		err = e.manager.mutate(ctx, sessionID, func(s *Session) (*HandResult, error) {
			return nil, s.StartGame()
		}, after)
	case ActionBet:
		err = e.manager.mutate(ctx, sessionID, func(s *Session) (*HandResult, error) {
			return s.Bet(playerID, action.Value)
		}, after)
	case ActionCall:
		err = e.manager.mutate(ctx, sessionID, func(s *Session) (*HandResult, error) {
			return s.Call(playerID)
		}, after)
	case ActionRaise:
		err = e.manager.mutate(ctx, sessionID, func(s *Session) (*HandResult, error) {
			return s.Raise(playerID, action.Value)
		}, after)
	case ActionCheck:
		err = e.manager.mutate(ctx, sessionID, func(s *Session) (*HandResult, error) {
			return s.Check(playerID)
		}, after)
	case ActionPass:
		err = e.manager.mutate(ctx, sessionID, func(s *Session) (*HandResult, error) {
			return s.Fold(playerID)
		}, after)
	case ActionExit:
		err = e.manager.LeaveSession(ctx, sessionID, playerID, after)
	default:
		e.broadcaster.SendTo(playerID, ErrorEvent{
			Type:    EventError,
			Message: fmt.Sprintf("unknown action type %q", action.Type),
		})
		return
	}

	if err != nil {
		e.broadcaster.SendTo(playerID, NewErrorEvent(err))
		if !IsUserError(err) {
			engineLogger.Error().Err(err).
				Str("sessionID", sessionID.String()).
				Str("playerID", playerID.String()).
				Str("msgType", action.Type).
				Msg("Action failed")
		}
		return
	}
	if e.activity != nil {
		e.activity.SessionActive(sessionID)
	}
}

func (e *Engine) handleChat(ctx context.Context, sessionID uuid.UUID, playerID uuid.UUID, text string) {
	if text == "" {
		return
	}
	session, err := e.manager.GetSession(ctx, sessionID)
	if err != nil {
		e.broadcaster.SendTo(playerID, NewErrorEvent(err))
		return
	}
	player := session.Player(playerID)
	if player == nil {
		e.broadcaster.SendTo(playerID, NewErrorEvent(ErrPlayerNotFound))
		return
	}
	message := ChatMessage{
		PlayerID:  playerID,
		Username:  player.Name,
		Message:   text,
		Timestamp: time.Now(),
	}
	if e.chat != nil {
		if err := e.chat.Append(ctx, sessionID, message); err != nil {
			e.broadcaster.SendTo(playerID, NewErrorEvent(err))
			engineLogger.Error().Err(err).
				Str("sessionID", sessionID.String()).
				Msg("Failed to append chat line")
			return
		}
	}
	e.broadcaster.SendToAll(sessionID, ChatPayloadEvent{Type: EventChatIncoming, Payload: message})
}

// broadcastState sends each attached player their own redacted view of the
// committed state, with the legal action set for the player on turn.
func (e *Engine) broadcastState(s *Session, result *HandResult) {
	e.broadcaster.SendToAllFunc(s.ID, func(viewerID uuid.UUID) interface{} {
		return GameStateEvent{
			Type:           EventGameState,
			State:          s.View(viewerID),
			AllowedActions: s.AllowedActions(viewerID),
			Result:         result,
		}
	})
}
