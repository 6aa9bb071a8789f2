package game

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"pokerroom.com/server/poker"
)

// Action names as they appear in client messages.
const (
	ActionTakeSeat    = "take_seat"
	ActionStart       = "start"
	ActionBet         = "bet"
	ActionCall        = "call"
	ActionRaise       = "raise"
	ActionPass        = "pass"
	ActionCheck       = "check"
	ActionExit        = "exit"
	ActionNewMessage  = "new_message"
	ActionTypingStart = "typing_start"
	ActionTypingEnd   = "typing_end"
)

// TakeSeat seats the player at the given index. Any seat the player held
// before is vacated. The only operation allowed outside IN_HAND.
func (s *Session) TakeSeat(playerID uuid.UUID, seat int32) error {
	if seat < 0 || int(seat) >= len(s.Seats) {
		return errors.Wrapf(ErrIllegalAction, "seat %d does not exist", seat)
	}
	if s.Player(playerID) == nil {
		return ErrPlayerNotFound
	}
	if s.Seats[seat] != nil {
		if *s.Seats[seat] == playerID {
			return nil
		}
		return ErrSeatTaken
	}
	if old := s.SeatOf(playerID); old >= 0 {
		s.Seats[old] = nil
	}
	pid := playerID
	s.Seats[seat] = &pid
	return nil
}

// StartGame deals a new hand: fresh shuffled deck, five board cards dealt
// face down, two hole cards per seated player, a randomly selected dealer,
// and the blinds posted as forced bets.
func (s *Session) StartGame() error {
	return s.startGame(nil, -1)
}

// startGame takes a rigged deck and a fixed dealer seat for scripted play;
// nil and -1 select a shuffled deck and a random dealer.
func (s *Session) startGame(deck *poker.Deck, dealerSeat int32) error {
	if s.Status != SessionStatusLobby {
		return errors.Wrap(ErrIllegalAction, "hand already in progress")
	}
	seated := s.occupiedSeats()
	if len(seated) < 2 {
		return ErrNotEnoughPlayers
	}
	if deck == nil {
		deck = poker.NewDeck()
	}

	s.Board = nil
	s.CurrentBet = 0
	s.ResetPots()
	s.Stage = StagePreflop
	for _, seat := range seated {
		p := s.playerAtSeat(seat)
		p.CurrentBet = 0
		p.Hand = poker.NewHand()
		p.Status = PlayerStatusWaiting
	}

	if dealerSeat < 0 {
		dealerSeat = seated[poker.NewRand().Intn(len(seated))]
	}
	s.DealerSeat = dealerSeat

	// Two passes of one card each, starting left of the dealer, dealer last.
	for round := 0; round < 2; round++ {
		seat := s.DealerSeat
		for {
			seat = s.nextOccupiedSeat(seat)
			card, err := deck.Deal()
			if err != nil {
				return errors.Wrap(err, "dealing hole cards")
			}
			s.playerAtSeat(seat).Hand.AddCard(card)
			if seat == s.DealerSeat {
				break
			}
		}
	}
	for i := 0; i < 5; i++ {
		card, err := deck.Deal()
		if err != nil {
			return errors.Wrap(err, "dealing board")
		}
		s.Board = append(s.Board, card)
	}

	s.Status = SessionStatusInHand

	// Small blind from the dealer, big blind from the next occupied seat.
	sbSeat := s.DealerSeat
	bbSeat := s.nextOccupiedSeat(sbSeat)
	sb := s.playerAtSeat(sbSeat)
	delta, allIn := sb.postBlind(s.SmallBlind)
	s.RecordContribution(sb.ID, delta, allIn)
	bb := s.playerAtSeat(bbSeat)
	delta, allIn = bb.postBlind(s.BigBlind)
	s.RecordContribution(bb.ID, delta, allIn)

	s.CurrentBet = s.BigBlind
	s.CurrentTurnSeat = s.nextOccupiedSeat(bbSeat)
	return nil
}

// AllowedActions recomputes the legal action set for the player. Empty for
// everyone but the player on turn.
func (s *Session) AllowedActions(playerID uuid.UUID) []string {
	if s.Status != SessionStatusInHand {
		return nil
	}
	seat := s.SeatOf(playerID)
	if seat < 0 || seat != s.CurrentTurnSeat {
		return nil
	}
	p := s.Player(playerID)
	if p == nil || !p.CanAct() {
		return nil
	}
	actions := []string{ActionPass}
	if s.CurrentBet == 0 {
		actions = append(actions, ActionCheck)
		if p.Balance > 0 {
			actions = append(actions, ActionBet)
		}
	} else {
		if s.CurrentBet > p.CurrentBet && p.Balance > 0 {
			actions = append(actions, ActionCall)
		}
		if p.Balance > s.CurrentBet {
			actions = append(actions, ActionRaise)
		}
	}
	return actions
}

func (s *Session) requireTurn(playerID uuid.UUID) (*Player, error) {
	if s.Status != SessionStatusInHand {
		return nil, errors.Wrap(ErrIllegalAction, "no hand in progress")
	}
	p := s.Player(playerID)
	if p == nil {
		return nil, ErrPlayerNotFound
	}
	seat := s.SeatOf(playerID)
	if seat < 0 || !p.CanAct() {
		return nil, errors.Wrap(ErrIllegalAction, "player is not in the hand")
	}
	if seat != s.CurrentTurnSeat {
		return nil, ErrOutOfTurn
	}
	return p, nil
}

// Bet opens the betting in a round with no outstanding bet.
func (s *Session) Bet(playerID uuid.UUID, amount float64) (*HandResult, error) {
	p, err := s.requireTurn(playerID)
	if err != nil {
		return nil, err
	}
	if s.CurrentBet != 0 || p.Balance <= 0 || amount <= 0 {
		return nil, errors.Wrap(ErrIllegalAction, "bet not allowed")
	}
	delta, allIn := p.bet(amount)
	s.RecordContribution(p.ID, delta, allIn)
	s.CurrentBet = p.CurrentBet
	return s.afterAction()
}

// Call matches the outstanding bet, going all-in for less if the balance
// does not cover the delta.
func (s *Session) Call(playerID uuid.UUID) (*HandResult, error) {
	p, err := s.requireTurn(playerID)
	if err != nil {
		return nil, err
	}
	if s.CurrentBet == 0 || s.CurrentBet <= p.CurrentBet || p.Balance <= 0 {
		return nil, errors.Wrap(ErrIllegalAction, "nothing to call")
	}
	delta, allIn := p.callTo(s.CurrentBet)
	s.RecordContribution(p.ID, delta, allIn)
	return s.afterAction()
}

// Raise puts amount more chips on top of the player's round contribution;
// the result must exceed the outstanding bet.
func (s *Session) Raise(playerID uuid.UUID, amount float64) (*HandResult, error) {
	p, err := s.requireTurn(playerID)
	if err != nil {
		return nil, err
	}
	if s.CurrentBet == 0 || p.Balance <= s.CurrentBet {
		return nil, errors.Wrap(ErrIllegalAction, "raise not allowed")
	}
	available := amount
	if p.Balance < available {
		available = p.Balance
	}
	if p.CurrentBet+available <= s.CurrentBet {
		return nil, errors.Wrap(ErrIllegalAction, "raise must exceed the current bet")
	}
	delta, allIn := p.bet(amount)
	s.RecordContribution(p.ID, delta, allIn)
	if p.CurrentBet > s.CurrentBet {
		s.CurrentBet = p.CurrentBet
	}
	return s.afterAction()
}

// Check is legal only while no bet is outstanding.
func (s *Session) Check(playerID uuid.UUID) (*HandResult, error) {
	p, err := s.requireTurn(playerID)
	if err != nil {
		return nil, err
	}
	if s.CurrentBet != 0 {
		return nil, errors.Wrap(ErrIllegalAction, "cannot check facing a bet")
	}
	p.Status = PlayerStatusStaying
	return s.afterAction()
}

// Fold is always legal for the player on turn.
func (s *Session) Fold(playerID uuid.UUID) (*HandResult, error) {
	p, err := s.requireTurn(playerID)
	if err != nil {
		return nil, err
	}
	p.fold()
	return s.afterAction()
}

// afterAction runs the post-action bookkeeping: early showdown when a fold
// leaves one contender, round-closure evaluation, or turn advance.
func (s *Session) afterAction() (*HandResult, error) {
	if len(s.contenders()) == 1 {
		return s.runShowdown()
	}
	if s.roundClosed() {
		return s.closeRound()
	}
	next := s.nextActionableSeat(s.CurrentTurnSeat)
	if next < 0 {
		return nil, errors.Wrap(ErrInvariantViolation, "no actionable seat after action")
	}
	s.CurrentTurnSeat = next
	return nil, nil
}

// roundClosed implements the closure rule: with no outstanding bet the
// round closes once every player still able to act has checked; with a bet
// outstanding it closes once every such player's contribution matches it.
func (s *Session) roundClosed() bool {
	for _, p := range s.contenders() {
		if !p.CanAct() {
			continue
		}
		if s.CurrentBet == 0 {
			if p.Status != PlayerStatusStaying {
				return false
			}
		} else if p.CurrentBet != s.CurrentBet {
			return false
		}
	}
	return true
}

// closeRound resets per-round state and advances the stage. When fewer than
// two players can still act there is no more betting: the remaining stages
// run out straight to showdown.
func (s *Session) closeRound() (*HandResult, error) {
	for _, p := range s.contenders() {
		p.resetForRound()
	}
	s.CurrentBet = 0
	s.Stage++
	for s.Stage < StageShowdown && s.actionableCount() <= 1 {
		s.Stage++
	}
	if s.Stage >= StageShowdown {
		return s.runShowdown()
	}
	next := s.nextActionableSeat(s.DealerSeat)
	if next < 0 {
		return nil, errors.Wrap(ErrInvariantViolation, "no actionable seat after round close")
	}
	s.CurrentTurnSeat = next
	return nil, nil
}

// RemovePlayer takes the player out of the seat and the roster. A player
// removed mid-hand folds first, so their chips stay in the pots they fed.
// Turn, dealer and ownership are reassigned when the removed player held
// them.
func (s *Session) RemovePlayer(playerID uuid.UUID) (*HandResult, error) {
	p := s.Player(playerID)
	if p == nil {
		return nil, ErrPlayerNotFound
	}
	seat := s.SeatOf(playerID)

	var result *HandResult
	if s.Status == SessionStatusInHand && p.InHand() {
		wasOnTurn := seat == s.CurrentTurnSeat
		p.fold()
		switch {
		case len(s.contenders()) == 1:
			result, _ = s.runShowdown()
		case s.roundClosed():
			result, _ = s.closeRound()
		case wasOnTurn:
			s.CurrentTurnSeat = s.nextActionableSeat(s.CurrentTurnSeat)
		}
	}

	if seat >= 0 {
		s.Seats[seat] = nil
		if s.Status == SessionStatusInHand {
			if s.CurrentTurnSeat == seat {
				s.CurrentTurnSeat = s.nextOccupiedSeat(seat)
			}
			if s.DealerSeat == seat {
				s.DealerSeat = s.nextOccupiedSeat(seat)
			}
		}
	}

	for i, q := range s.Players {
		if q.ID == playerID {
			s.Players = append(s.Players[:i], s.Players[i+1:]...)
			break
		}
	}

	if s.Owner == playerID && len(s.Players) > 0 {
		s.Owner = s.Players[poker.NewRand().Intn(len(s.Players))].ID
	}
	return result, nil
}
