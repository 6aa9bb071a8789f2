package game

import (
	"testing"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pokerroom.com/server/poker"
)

func TestNewSessionDefaults(t *testing.T) {
	ownerID := uuid.New()
	s := NewSession(ownerID, "alice", 4)

	assert.Equal(t, SessionStatusLobby, s.Status)
	assert.Equal(t, StagePreflop, s.Stage)
	assert.Len(t, s.Seats, 4)
	assert.Equal(t, DefaultSmallBlind, s.SmallBlind)
	assert.Equal(t, DefaultBigBlind, s.BigBlind)
	assert.Equal(t, int32(-1), s.CurrentTurnSeat)
	assert.Equal(t, int32(-1), s.DealerSeat)
	assert.Equal(t, ownerID, s.Owner)

	// The owner joins their own session immediately.
	require.Len(t, s.Players, 1)
	assert.Equal(t, ownerID, s.Players[0].ID)
	assert.Equal(t, DefaultStartBalance, s.Players[0].Balance)
	assert.Equal(t, PlayerStatusNotReady, s.Players[0].Status)
}

func TestNewSessionClampsSeatCount(t *testing.T) {
	assert.Len(t, NewSession(uuid.New(), "alice", 0).Seats, DefaultMaxPlayers)
	assert.Len(t, NewSession(uuid.New(), "alice", 99).Seats, MaxSeats)
}

func TestAddPlayerIdempotent(t *testing.T) {
	s := NewSession(uuid.New(), "alice", 4)
	id := uuid.New()

	p1 := s.AddPlayer(id, "bob")
	p1.Balance = 123
	p2 := s.AddPlayer(id, "bob")

	assert.Same(t, p1, p2)
	assert.Len(t, s.Players, 2)
	assert.Equal(t, 123.0, p2.Balance)
}

func TestTakeSeat(t *testing.T) {
	ownerID := uuid.New()
	s := NewSession(ownerID, "alice", 4)
	bobID := uuid.New()
	s.AddPlayer(bobID, "bob")

	require.NoError(t, s.TakeSeat(ownerID, 0))
	assert.Equal(t, int32(0), s.SeatOf(ownerID))

	// Occupied seat is rejected.
	err := s.TakeSeat(bobID, 0)
	assert.Equal(t, ErrSeatTaken, errors.Cause(err))

	// Moving vacates the old seat.
	require.NoError(t, s.TakeSeat(ownerID, 2))
	assert.Equal(t, int32(2), s.SeatOf(ownerID))
	assert.Nil(t, s.Seats[0])

	// Re-taking your own seat is a no-op.
	require.NoError(t, s.TakeSeat(ownerID, 2))

	err = s.TakeSeat(ownerID, 9)
	assert.Equal(t, ErrIllegalAction, errors.Cause(err))

	err = s.TakeSeat(uuid.New(), 1)
	assert.Equal(t, ErrPlayerNotFound, errors.Cause(err))
}

func TestViewRedactsOtherHands(t *testing.T) {
	aliceID := uuid.New()
	s := NewSession(aliceID, "alice", 2)
	bobID := uuid.New()
	s.AddPlayer(bobID, "bob")
	require.NoError(t, s.TakeSeat(aliceID, 0))
	require.NoError(t, s.TakeSeat(bobID, 1))
	require.NoError(t, s.startGame(riggedDeck(
		"Kh", "Ah", "Kd", "Ad",
		"2c", "7d", "9s", "3h", "5c",
	), 0))

	view := s.View(aliceID)
	assert.Len(t, view.Player(aliceID).Hand.Cards, 2)
	assert.Empty(t, view.Player(bobID).Hand.Cards)

	// The underlying session is untouched.
	assert.Len(t, s.Player(bobID).Hand.Cards, 2)
}

func TestViewTruncatesBoardByStage(t *testing.T) {
	aliceID := uuid.New()
	s := NewSession(aliceID, "alice", 2)
	bobID := uuid.New()
	s.AddPlayer(bobID, "bob")
	require.NoError(t, s.TakeSeat(aliceID, 0))
	require.NoError(t, s.TakeSeat(bobID, 1))
	require.NoError(t, s.startGame(riggedDeck(
		"Kh", "Ah", "Kd", "Ad",
		"2c", "7d", "9s", "3h", "5c",
	), 0))

	assert.Empty(t, s.View(aliceID).Board)

	s.Stage = StageFlop
	assert.Len(t, s.View(aliceID).Board, 3)

	s.Stage = StageTurn
	assert.Len(t, s.View(aliceID).Board, 4)

	s.Stage = StageRiver
	assert.Len(t, s.View(aliceID).Board, 5)
}

func TestViewRevealsHandsAtShowdown(t *testing.T) {
	aliceID := uuid.New()
	s := NewSession(aliceID, "alice", 2)
	bobID := uuid.New()
	s.AddPlayer(bobID, "bob")
	require.NoError(t, s.TakeSeat(aliceID, 0))
	require.NoError(t, s.TakeSeat(bobID, 1))
	require.NoError(t, s.startGame(riggedDeck(
		"Kh", "Ah", "Kd", "Ad",
		"2c", "7d", "9s", "3h", "5c",
	), 0))

	s.Stage = StageShowdown
	view := s.View(aliceID)
	assert.Len(t, view.Player(bobID).Hand.Cards, 2)
}

func TestNextOccupiedSeatWraps(t *testing.T) {
	s := NewSession(uuid.New(), "alice", 4)
	a := uuid.New()
	b := uuid.New()
	s.AddPlayer(a, "a")
	s.AddPlayer(b, "b")
	require.NoError(t, s.TakeSeat(a, 1))
	require.NoError(t, s.TakeSeat(b, 3))

	assert.Equal(t, int32(3), s.nextOccupiedSeat(1))
	assert.Equal(t, int32(1), s.nextOccupiedSeat(3))
	assert.Equal(t, int32(1), s.nextOccupiedSeat(0))
}

func riggedDeck(cards ...string) *poker.Deck {
	parsed := make([]poker.Card, len(cards))
	for i, c := range cards {
		parsed[i] = poker.NewCard(c)
	}
	return poker.NewDeckFromCards(parsed)
}
