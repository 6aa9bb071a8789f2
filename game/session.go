package game

import (
	"github.com/google/uuid"

	"pokerroom.com/server/poker"
)

// Session is the aggregate root for one table. The persisted JSON form of
// this struct is the authoritative state between actions; every mutating
// operation reloads it from the store before validating.
type Session struct {
	ID              uuid.UUID    `json:"id"`
	Status          SessionStatus `json:"status"`
	Stage           Stage        `json:"stage"`
	Seats           []*uuid.UUID `json:"seats"`
	SmallBlind      float64      `json:"small_blind"`
	BigBlind        float64      `json:"big_blind"`
	MaxPlayers      int          `json:"max_players"`
	Players         []*Player    `json:"players"`
	Board           []poker.Card `json:"board"`
	CurrentTurnSeat int32        `json:"current_turn_seat"`
	DealerSeat      int32        `json:"dealer_seat"`
	CurrentBet      float64      `json:"current_bet"`
	Owner           uuid.UUID    `json:"owner"`
	PotLedger
}

func NewSession(ownerID uuid.UUID, ownerName string, maxPlayers int) *Session {
	if maxPlayers <= 0 {
		maxPlayers = DefaultMaxPlayers
	}
	if maxPlayers > MaxSeats {
		maxPlayers = MaxSeats
	}
	s := &Session{
		ID:              uuid.New(),
		Status:          SessionStatusLobby,
		Stage:           StagePreflop,
		Seats:           make([]*uuid.UUID, maxPlayers),
		SmallBlind:      DefaultSmallBlind,
		BigBlind:        DefaultBigBlind,
		MaxPlayers:      maxPlayers,
		CurrentTurnSeat: -1,
		DealerSeat:      -1,
		Owner:           ownerID,
		PotLedger:       PotLedger{SidePots: []*SidePot{}},
	}
	s.Players = append(s.Players, NewPlayer(ownerID, ownerName, DefaultStartBalance))
	return s
}

// Player returns the roster entry for the given id, or nil.
func (s *Session) Player(id uuid.UUID) *Player {
	for _, p := range s.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// AddPlayer joins a player to the roster. Joining is idempotent; a known id
// keeps its existing state.
func (s *Session) AddPlayer(id uuid.UUID, name string) *Player {
	if p := s.Player(id); p != nil {
		return p
	}
	p := NewPlayer(id, name, DefaultStartBalance)
	s.Players = append(s.Players, p)
	return p
}

// SeatOf returns the seat index the player occupies, or -1.
func (s *Session) SeatOf(id uuid.UUID) int32 {
	for i, seat := range s.Seats {
		if seat != nil && *seat == id {
			return int32(i)
		}
	}
	return -1
}

func (s *Session) playerAtSeat(seat int32) *Player {
	if seat < 0 || int(seat) >= len(s.Seats) || s.Seats[seat] == nil {
		return nil
	}
	return s.Player(*s.Seats[seat])
}

func (s *Session) occupiedSeats() []int32 {
	seats := make([]int32, 0, len(s.Seats))
	for i, seat := range s.Seats {
		if seat != nil {
			seats = append(seats, int32(i))
		}
	}
	return seats
}

// nextOccupiedSeat walks clockwise from the given seat, wrapping past the
// end, and returns the next occupied seat. Returns -1 when no other seat is
// occupied.
func (s *Session) nextOccupiedSeat(from int32) int32 {
	n := int32(len(s.Seats))
	for i := int32(1); i <= n; i++ {
		seat := (from + i) % n
		if s.Seats[seat] != nil {
			return seat
		}
	}
	return -1
}

// nextActionableSeat returns the next seat holding a player who can still
// make betting decisions. Folded seats are never selected; neither are
// all-in seats, which have an empty legal action set, nor players seated
// mid-hand who are not part of it.
func (s *Session) nextActionableSeat(from int32) int32 {
	n := int32(len(s.Seats))
	for i := int32(1); i <= n; i++ {
		seat := (from + i) % n
		if p := s.playerAtSeat(seat); p != nil && p.CanAct() {
			return seat
		}
	}
	return -1
}

// contenders are the seated players still in the hand (not folded).
func (s *Session) contenders() []*Player {
	players := make([]*Player, 0, len(s.Seats))
	for _, seat := range s.occupiedSeats() {
		if p := s.playerAtSeat(seat); p != nil && p.InHand() {
			players = append(players, p)
		}
	}
	return players
}

func (s *Session) actionableCount() int {
	count := 0
	for _, p := range s.contenders() {
		if p.CanAct() {
			count++
		}
	}
	return count
}

// visibleBoard is the part of the board revealed at the current stage.
func (s *Session) visibleBoard() []poker.Card {
	if len(s.Board) < 5 {
		return s.Board
	}
	switch s.Stage {
	case StagePreflop:
		return nil
	case StageFlop:
		return s.Board[:3]
	case StageTurn:
		return s.Board[:4]
	}
	return s.Board
}

// View builds the snapshot broadcast to one player: the board truncated to
// the current stage and other players' hole cards redacted until showdown.
func (s *Session) View(viewerID uuid.UUID) *Session {
	view := *s
	view.Board = s.visibleBoard()
	view.Players = make([]*Player, len(s.Players))
	showdown := s.Stage == StageShowdown
	for i, p := range s.Players {
		cp := *p
		if p.ID != viewerID && !showdown {
			cp.Hand = poker.NewHand()
		}
		view.Players[i] = &cp
	}
	return &view
}
