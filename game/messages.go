package game

// PlayerAction is the inbound client message. Type-specific fields are flat:
// seat_num for take_seat, value for bet/raise, text for chat.
type PlayerAction struct {
	Type    string  `json:"type"`
	SeatNum int32   `json:"seat_num"`
	Value   float64 `json:"value"`
	Text    string  `json:"text"`
}

// Outbound event types.
const (
	EventGameState    = "game_state"
	EventChatIncoming = "chat_incoming"
	EventChatHistory  = "chat_history"
	EventTypingStart  = "typing_start"
	EventTypingEnd    = "typing_end"
	EventError        = "error"
)

// GameStateEvent carries the per-viewer session snapshot. AllowedActions is
// filled only for the player on turn; Result only at showdown.
type GameStateEvent struct {
	Type           string      `json:"type"`
	State          *Session    `json:"payload"`
	AllowedActions []string    `json:"allowed_actions,omitempty"`
	Result         *HandResult `json:"result,omitempty"`
}

type ErrorEvent struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func NewErrorEvent(err error) ErrorEvent {
	return ErrorEvent{Type: EventError, Message: err.Error()}
}

// ChatPayloadEvent wraps chat and typing notifications.
type ChatPayloadEvent struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}
