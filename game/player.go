package game

import (
	"github.com/google/uuid"

	"pokerroom.com/server/poker"
)

// Player is the per-seat state. The socket reference is owned by the
// transport layer and never serialized with the session. Chips only flow
// player to pot within a hand; the only way back is the showdown payout.
type Player struct {
	ID         uuid.UUID    `json:"id"`
	Name       string       `json:"name"`
	Balance    float64      `json:"balance"`
	Hand       *poker.Hand  `json:"hand"`
	CurrentBet float64      `json:"currentbet"`
	Status     PlayerStatus `json:"status"`
}

func NewPlayer(id uuid.UUID, name string, balance float64) *Player {
	return &Player{
		ID:      id,
		Name:    name,
		Balance: balance,
		Hand:    poker.NewHand(),
		Status:  PlayerStatusNotReady,
	}
}

// InHand reports whether the player takes part in the current hand.
func (p *Player) InHand() bool {
	switch p.Status {
	case PlayerStatusWaiting, PlayerStatusStaying, PlayerStatusAllIn:
		return true
	}
	return false
}

// CanAct reports whether the player may still make betting decisions.
func (p *Player) CanAct() bool {
	return p.Status == PlayerStatusWaiting || p.Status == PlayerStatusStaying
}

// contribute moves up to amount chips from the balance into the current
// round contribution. The debit caps at the balance; exhausting it flips the
// player to ALL_IN. Returns the chips actually moved.
func (p *Player) contribute(amount float64) (float64, bool) {
	if amount <= 0 || p.Status == PlayerStatusAllIn {
		return 0, p.Status == PlayerStatusAllIn
	}
	delta := amount
	allIn := false
	if p.Balance <= amount {
		delta = p.Balance
		allIn = true
	}
	p.Balance -= delta
	p.CurrentBet += delta
	if allIn {
		p.Status = PlayerStatusAllIn
	}
	return delta, allIn
}

func (p *Player) bet(amount float64) (float64, bool) {
	delta, allIn := p.contribute(amount)
	if !allIn {
		p.Status = PlayerStatusStaying
	}
	return delta, allIn
}

func (p *Player) callTo(bet float64) (float64, bool) {
	delta, allIn := p.contribute(bet - p.CurrentBet)
	if !allIn {
		p.Status = PlayerStatusStaying
	}
	return delta, allIn
}

// postBlind is the forced bet at hand start. It never fails beyond going
// all-in and leaves the player WAITING so the blind does not count as a
// voluntary action.
func (p *Player) postBlind(amount float64) (float64, bool) {
	return p.contribute(amount)
}

func (p *Player) fold() {
	p.Status = PlayerStatusPass
}

// resetForRound clears the per-round contribution when a betting round
// closes. Folded and all-in players keep their statuses.
func (p *Player) resetForRound() {
	p.CurrentBet = 0
	if p.Status == PlayerStatusStaying {
		p.Status = PlayerStatusWaiting
	}
}

// resetForHand returns the player to the lobby state after a showdown.
func (p *Player) resetForHand() {
	p.CurrentBet = 0
	p.Hand = poker.NewHand()
	p.Status = PlayerStatusNotReady
}
