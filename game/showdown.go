package game

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"pokerroom.com/server/poker"
)

// Winner is one payout line of a hand result.
type Winner struct {
	PlayerID uuid.UUID        `json:"player_id"`
	Name     string           `json:"name"`
	Amount   float64          `json:"amount"`
	Value    *poker.HandValue `json:"hand_value,omitempty"`
}

// HandResult is broadcast once at showdown, before the session resets to
// the lobby. Hole cards of every contender are revealed here and nowhere
// else.
type HandResult struct {
	Winners       []Winner                `json:"winners"`
	RevealedHands map[string][]poker.Card `json:"revealed_hands"`
	Board         []poker.Card            `json:"board"`
}

// Winners evaluates every occupied, non-folded seat against the board and
// returns all seats tying the maximum. The sole source of truth for the
// showdown payout; requires the board fully dealt.
func (s *Session) Winners() ([]uuid.UUID, map[uuid.UUID]poker.HandValue, error) {
	if len(s.Board) != 5 {
		return nil, nil, errors.Wrap(ErrInvariantViolation, "winners requested with a partial board")
	}
	contenders := s.contenders()
	if len(contenders) == 0 {
		return nil, nil, errors.Wrap(ErrInvariantViolation, "no contenders at showdown")
	}

	values := make(map[uuid.UUID]poker.HandValue, len(contenders))
	var winners []uuid.UUID
	var best poker.HandValue
	for _, p := range contenders {
		cards := append([]poker.Card{}, p.Hand.Cards...)
		cards = append(cards, s.Board...)
		value, err := poker.Evaluate(cards)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "evaluating hand of %s", p.ID)
		}
		values[p.ID] = value
		switch {
		case len(winners) == 0 || value.Compare(best) > 0:
			winners = []uuid.UUID{p.ID}
			best = value
		case value.Compare(best) == 0:
			winners = append(winners, p.ID)
		}
	}
	return winners, values, nil
}

// runShowdown settles the hand: determine winners, pay the pots out, and
// reset the session for the next hand without touching the seating.
func (s *Session) runShowdown() (*HandResult, error) {
	s.Stage = StageShowdown

	contenders := s.contenders()
	if len(contenders) == 0 {
		return nil, errors.Wrap(ErrInvariantViolation, "showdown with no contenders")
	}

	var winnerIDs []uuid.UUID
	values := make(map[uuid.UUID]poker.HandValue)
	foldedOut := len(contenders) == 1
	if foldedOut {
		// Everyone else folded; the last contender wins without showing.
		winnerIDs = []uuid.UUID{contenders[0].ID}
	} else {
		var err error
		winnerIDs, values, err = s.Winners()
		if err != nil {
			return nil, err
		}
	}

	amounts := make(map[uuid.UUID]float64, len(winnerIDs))
	s.Distribute(winnerIDs, func(id uuid.UUID, amount float64) {
		if p := s.Player(id); p != nil {
			p.Balance += amount
			amounts[id] += amount
		}
	})

	result := &HandResult{
		Board:         s.visibleBoard(),
		RevealedHands: make(map[string][]poker.Card, len(contenders)),
	}
	if !foldedOut {
		for _, p := range contenders {
			result.RevealedHands[p.ID.String()] = append([]poker.Card{}, p.Hand.Cards...)
		}
	}
	for _, id := range winnerIDs {
		w := Winner{PlayerID: id, Amount: amounts[id]}
		if p := s.Player(id); p != nil {
			w.Name = p.Name
		}
		if value, ok := values[id]; ok {
			v := value
			w.Value = &v
		}
		result.Winners = append(result.Winners, w)
	}

	s.resetAfterHand()
	return result, nil
}

// resetAfterHand returns the session to the lobby, keeping seats and
// balances for the next hand.
func (s *Session) resetAfterHand() {
	s.Status = SessionStatusLobby
	s.Stage = StagePreflop
	s.Board = nil
	s.CurrentBet = 0
	s.CurrentTurnSeat = -1
	for _, p := range s.Players {
		p.resetForHand()
	}
}
