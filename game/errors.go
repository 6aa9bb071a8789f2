package game

import "github.com/pkg/errors"

var (
	// ErrIllegalAction rejects an action outside the legal set for the
	// current state. The session is left untouched.
	ErrIllegalAction = errors.New("action is not legal in the current state")

	// ErrOutOfTurn rejects an action from a seat that is not on turn.
	ErrOutOfTurn = errors.New("player is not on turn")

	ErrSeatTaken        = errors.New("seat is already taken")
	ErrNotEnoughPlayers = errors.New("at least two seated players are required")
	ErrSessionNotFound  = errors.New("session not found")
	ErrPlayerNotFound   = errors.New("player is not in the session")

	// ErrInvariantViolation marks states that must never occur in correct
	// play. The hand is aborted rather than corrupting pot totals.
	ErrInvariantViolation = errors.New("session invariant violated")
)

// IsUserError reports whether the error should be surfaced to the acting
// player as an error event instead of tearing anything down.
func IsUserError(err error) bool {
	switch errors.Cause(err) {
	case ErrIllegalAction, ErrOutOfTurn, ErrSeatTaken, ErrNotEnoughPlayers, ErrPlayerNotFound:
		return true
	}
	return false
}
