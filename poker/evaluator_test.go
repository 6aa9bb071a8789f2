package poker

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cards(strs ...string) []Card {
	out := make([]Card, len(strs))
	for i, s := range strs {
		out[i] = NewCard(s)
	}
	return out
}

func TestEvaluateCategories(t *testing.T) {
	tests := []struct {
		name     string
		cards    []string
		category HandCategory
	}{
		{"royal flush", []string{"Ah", "Kh", "Qh", "Jh", "Th"}, RoyalFlush},
		{"straight flush", []string{"9s", "8s", "7s", "6s", "5s"}, StraightFlush},
		{"wheel straight flush", []string{"Ad", "2d", "3d", "4d", "5d"}, StraightFlush},
		{"four of a kind", []string{"9s", "9h", "9d", "9c", "2h"}, FourOfAKind},
		{"full house", []string{"Ks", "Kh", "Kd", "4c", "4h"}, FullHouse},
		{"flush", []string{"Kc", "Tc", "8c", "5c", "2c"}, Flush},
		{"straight", []string{"9s", "8h", "7d", "6c", "5h"}, Straight},
		{"wheel straight", []string{"As", "2h", "3d", "4c", "5h"}, Straight},
		{"three of a kind", []string{"7s", "7h", "7d", "Kc", "2h"}, ThreeOfAKind},
		{"two pair", []string{"Js", "Jh", "4d", "4c", "Ah"}, TwoPair},
		{"pair", []string{"8s", "8h", "Kd", "7c", "2h"}, OnePair},
		{"high card", []string{"Ks", "Jh", "8d", "5c", "2h"}, HighCard},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, err := Evaluate(cards(tt.cards...))
			require.NoError(t, err)
			assert.Equal(t, tt.category, value.Category, "got %s", value.Category)
			assert.Len(t, value.TieBreak, 5)
		})
	}
}

func TestEvaluateRejectsBadSize(t *testing.T) {
	_, err := Evaluate(cards("Ah", "Kh"))
	assert.Error(t, err)
	_, err = Evaluate(cards("Ah", "Kh", "Qh", "Jh", "Th", "9h", "8h", "7h"))
	assert.Error(t, err)
}

func TestEvaluateSevenCardsFindsBest(t *testing.T) {
	// Two hearts in the hole plus three on the board beat the board pair.
	value, err := Evaluate(cards("Ah", "Kh", "2h", "7h", "9h", "2c", "2d"))
	require.NoError(t, err)
	assert.Equal(t, Flush, value.Category)
	assert.Equal(t, RankAce, value.TieBreak[0].Rank)

	// The full house hides in 21 combinations.
	value, err = Evaluate(cards("2c", "2d", "9h", "9s", "9d", "Ah", "Kd"))
	require.NoError(t, err)
	assert.Equal(t, FullHouse, value.Category)
}

func TestEvaluatePermutationInvariant(t *testing.T) {
	base := cards("Ah", "Kh", "2h", "7h", "9h", "2c", "2d")
	want, err := Evaluate(base)
	require.NoError(t, err)

	r := rand.New(rand.NewSource(42))
	for i := 0; i < 50; i++ {
		shuffled := make([]Card, len(base))
		copy(shuffled, base)
		r.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})
		got, err := Evaluate(shuffled)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestCompareTieBreaks(t *testing.T) {
	higherPair, err := Evaluate(cards("9s", "9h", "Kd", "7c", "2h"))
	require.NoError(t, err)
	lowerPair, err := Evaluate(cards("8s", "8h", "Kd", "7c", "2h"))
	require.NoError(t, err)
	assert.Greater(t, higherPair.Compare(lowerPair), 0)
	assert.Less(t, lowerPair.Compare(higherPair), 0)

	// Same pair, better kicker.
	betterKicker, err := Evaluate(cards("8s", "8h", "Ad", "7c", "2h"))
	require.NoError(t, err)
	assert.Greater(t, betterKicker.Compare(lowerPair), 0)

	// Identical ranks in different suits tie.
	a, err := Evaluate(cards("8s", "8h", "Kd", "7c", "2h"))
	require.NoError(t, err)
	b, err := Evaluate(cards("8d", "8c", "Kh", "7s", "2c"))
	require.NoError(t, err)
	assert.Zero(t, a.Compare(b))
}

func TestCategoryDominance(t *testing.T) {
	flush, err := Evaluate(cards("Kc", "Tc", "8c", "5c", "2c"))
	require.NoError(t, err)
	straight, err := Evaluate(cards("9s", "8h", "7d", "6c", "5h"))
	require.NoError(t, err)
	assert.Greater(t, flush.Compare(straight), 0)

	wheelSF, err := Evaluate(cards("Ad", "2d", "3d", "4d", "5d"))
	require.NoError(t, err)
	quads, err := Evaluate(cards("As", "Ah", "Ad", "Ac", "Kh"))
	require.NoError(t, err)
	assert.Greater(t, wheelSF.Compare(quads), 0)
}

func TestWheelLosesToHigherStraight(t *testing.T) {
	wheel, err := Evaluate(cards("As", "2h", "3d", "4c", "5h"))
	require.NoError(t, err)
	sixHigh, err := Evaluate(cards("2s", "3h", "4d", "5c", "6h"))
	require.NoError(t, err)
	assert.Greater(t, sixHigh.Compare(wheel), 0)
}
