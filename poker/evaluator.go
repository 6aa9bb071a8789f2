package poker

import (
	"sort"

	"github.com/pkg/errors"
)

// HandCategory follows the standard poker ranking. A higher category always
// wins regardless of tie-break.
type HandCategory int32

const (
	HighCard HandCategory = iota
	OnePair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush
)

var handCategoryName = map[HandCategory]string{
	HighCard:      "High Card",
	OnePair:       "Pair",
	TwoPair:       "Two Pair",
	ThreeOfAKind:  "Three of a Kind",
	Straight:      "Straight",
	Flush:         "Flush",
	FullHouse:     "Full House",
	FourOfAKind:   "Four of a Kind",
	StraightFlush: "Straight Flush",
	RoyalFlush:    "Royal Flush",
}

func (c HandCategory) String() string {
	return handCategoryName[c]
}

// HandValue is the result of evaluating a five card combination. TieBreak
// holds the five cards in significance order (e.g. quads before the kicker,
// the high pair before the low pair before the kicker). Two values of equal
// category are compared element-wise by rank; if every rank matches the
// hands tie.
type HandValue struct {
	Category HandCategory `json:"category"`
	TieBreak []Card       `json:"tie_break"`
}

// Compare returns a positive number if v beats other, a negative number if
// other beats v and zero on a tie.
func (v HandValue) Compare(other HandValue) int {
	if v.Category != other.Category {
		return int(v.Category - other.Category)
	}
	for i := range v.TieBreak {
		if i >= len(other.TieBreak) {
			break
		}
		if v.TieBreak[i].Rank != other.TieBreak[i].Rank {
			return int(v.TieBreak[i].Rank - other.TieBreak[i].Rank)
		}
	}
	return 0
}

// Evaluate searches every five card subset of the given 5-7 cards and
// returns the maximum by (category, tie-break) order. The result does not
// depend on the input ordering.
func Evaluate(cards []Card) (HandValue, error) {
	n := len(cards)
	if n < 5 || n > 7 {
		return HandValue{}, errors.Errorf("cannot evaluate %d cards, need 5 to 7", n)
	}

	sorted := make([]Card, n)
	copy(sorted, cards)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Rank != sorted[j].Rank {
			return sorted[i].Rank > sorted[j].Rank
		}
		return sorted[i].Suit < sorted[j].Suit
	})

	var best HandValue
	first := true
	combo := make([]Card, 5)
	forEachCombination(n, 5, func(idx []int) {
		for i, j := range idx {
			combo[i] = sorted[j]
		}
		value := evaluateFive(combo)
		if first || value.Compare(best) > 0 {
			best = value
			first = false
		}
	})
	return best, nil
}

// forEachCombination calls fn with every k-subset of [0,n) in
// lexicographic order. The slice passed to fn is reused between calls.
func forEachCombination(n, k int, fn func([]int)) {
	idx := make([]int, k)
	for i := range idx {
		idx[i] = i
	}
	for {
		fn(idx)
		i := k - 1
		for i >= 0 && idx[i] == n-k+i {
			i--
		}
		if i < 0 {
			return
		}
		idx[i]++
		for j := i + 1; j < k; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
}

func evaluateFive(cards []Card) HandValue {
	five := make([]Card, 5)
	copy(five, cards)
	sort.Slice(five, func(i, j int) bool {
		if five[i].Rank != five[j].Rank {
			return five[i].Rank > five[j].Rank
		}
		return five[i].Suit < five[j].Suit
	})

	flush := true
	for _, c := range five[1:] {
		if c.Suit != five[0].Suit {
			flush = false
			break
		}
	}

	straight, wheel := isStraight(five)

	if straight && flush {
		ordered := straightOrder(five, wheel)
		if five[0].Rank == RankAce && !wheel {
			return HandValue{Category: RoyalFlush, TieBreak: ordered}
		}
		return HandValue{Category: StraightFlush, TieBreak: ordered}
	}

	counts := make(map[int32]int)
	for _, c := range five {
		counts[c.Rank]++
	}

	// Significance order: bigger group first, then higher rank. This single
	// rule yields quads+kicker, trips+pair, pairs before kickers, and plain
	// descending rank for no-group hands.
	ordered := make([]Card, 5)
	copy(ordered, five)
	sort.SliceStable(ordered, func(i, j int) bool {
		ci, cj := counts[ordered[i].Rank], counts[ordered[j].Rank]
		if ci != cj {
			return ci > cj
		}
		return ordered[i].Rank > ordered[j].Rank
	})

	groups := make([]int, 0, 5)
	for _, n := range counts {
		groups = append(groups, n)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(groups)))

	switch {
	case groups[0] == 4:
		return HandValue{Category: FourOfAKind, TieBreak: ordered}
	case groups[0] == 3 && groups[1] == 2:
		return HandValue{Category: FullHouse, TieBreak: ordered}
	case flush:
		return HandValue{Category: Flush, TieBreak: ordered}
	case straight:
		return HandValue{Category: Straight, TieBreak: straightOrder(five, wheel)}
	case groups[0] == 3:
		return HandValue{Category: ThreeOfAKind, TieBreak: ordered}
	case groups[0] == 2 && groups[1] == 2:
		return HandValue{Category: TwoPair, TieBreak: ordered}
	case groups[0] == 2:
		return HandValue{Category: OnePair, TieBreak: ordered}
	}
	return HandValue{Category: HighCard, TieBreak: ordered}
}

// isStraight expects five cards in descending rank order. The second return
// reports the wheel (A-5-4-3-2), where the ace plays low.
func isStraight(five []Card) (bool, bool) {
	for i := 1; i < 5; i++ {
		if five[i].Rank == five[i-1].Rank {
			return false, false
		}
	}
	if five[0].Rank == RankAce && five[1].Rank == 5 && five[2].Rank == 4 &&
		five[3].Rank == 3 && five[4].Rank == RankTwo {
		return true, true
	}
	for i := 1; i < 5; i++ {
		if five[i].Rank != five[i-1].Rank-1 {
			return false, false
		}
	}
	return true, false
}

// straightOrder lays out the straight high to low; in the wheel the ace
// moves to the back so tie-break comparison treats it as the low card.
func straightOrder(five []Card, wheel bool) []Card {
	ordered := make([]Card, 5)
	if wheel {
		copy(ordered, five[1:])
		ordered[4] = five[0]
		return ordered
	}
	copy(ordered, five)
	return ordered
}
