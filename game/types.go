package game

// Enum codes are part of the wire and storage format. They must stay stable
// between writes and reads.

type SessionStatus int32

const (
	SessionStatusLobby  SessionStatus = 0
	SessionStatusInHand SessionStatus = 1
	SessionStatusPaused SessionStatus = 2
)

var sessionStatusName = map[SessionStatus]string{
	SessionStatusLobby:  "LOBBY",
	SessionStatusInHand: "IN_HAND",
	SessionStatusPaused: "PAUSED",
}

func (s SessionStatus) String() string {
	return sessionStatusName[s]
}

// Stage is the betting phase of a hand. After SHOWDOWN the session resets to
// PREFLOP for the next hand.
type Stage int32

const (
	StagePreflop  Stage = 0
	StageFlop     Stage = 1
	StageTurn     Stage = 2
	StageRiver    Stage = 3
	StageShowdown Stage = 4
)

var stageName = map[Stage]string{
	StagePreflop:  "PREFLOP",
	StageFlop:     "FLOP",
	StageTurn:     "TURN",
	StageRiver:    "RIVER",
	StageShowdown: "SHOWDOWN",
}

func (s Stage) String() string {
	return stageName[s]
}

type PlayerStatus int32

const (
	// PlayerStatusNotReady marks a player not taking part in the current hand.
	PlayerStatusNotReady PlayerStatus = 0
	// PlayerStatusWaiting marks a player who has not acted in this round yet.
	PlayerStatusWaiting PlayerStatus = 1
	// PlayerStatusStaying marks a player who acted and is still contending.
	PlayerStatusStaying PlayerStatus = 2
	// PlayerStatusPass marks a folded player.
	PlayerStatusPass PlayerStatus = 3
	// PlayerStatusAllIn marks a player whose balance is fully committed.
	PlayerStatusAllIn PlayerStatus = 4
)

var playerStatusName = map[PlayerStatus]string{
	PlayerStatusNotReady: "NOT_READY",
	PlayerStatusWaiting:  "WAITING",
	PlayerStatusStaying:  "STAYING",
	PlayerStatusPass:     "PASS",
	PlayerStatusAllIn:    "ALL_IN",
}

func (s PlayerStatus) String() string {
	return playerStatusName[s]
}

const (
	MaxSeats            = 10
	DefaultMaxPlayers   = 4
	DefaultStartBalance = 15000.0
	DefaultSmallBlind   = 10.0
	DefaultBigBlind     = 20.0
)
