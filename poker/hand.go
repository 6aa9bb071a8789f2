package poker

import "sort"

// Hand is an ordered card container. During a betting hand it holds the two
// hole cards; at evaluation time the board cards are appended for a total of
// up to seven. The rank and suit multisets are derived and recomputed on
// every mutation.
type Hand struct {
	Cards []Card `json:"cards"`

	rankCounts map[int32]int
	suitCounts map[Suit]int
}

func NewHand(cards ...Card) *Hand {
	h := &Hand{}
	h.Cards = append(h.Cards, cards...)
	h.recompute()
	return h
}

func (h *Hand) AddCard(card Card) {
	h.Cards = append(h.Cards, card)
	h.recompute()
}

func (h *Hand) Clear() {
	h.Cards = nil
	h.rankCounts = nil
	h.suitCounts = nil
}

func (h *Hand) Len() int {
	return len(h.Cards)
}

// RankCounts returns the rank multiset of the current cards.
func (h *Hand) RankCounts() map[int32]int {
	if h.rankCounts == nil {
		h.recompute()
	}
	return h.rankCounts
}

// SuitCounts returns the suit multiset of the current cards.
func (h *Hand) SuitCounts() map[Suit]int {
	if h.suitCounts == nil {
		h.recompute()
	}
	return h.suitCounts
}

func (h *Hand) recompute() {
	sort.SliceStable(h.Cards, func(i, j int) bool {
		if h.Cards[i].Rank != h.Cards[j].Rank {
			return h.Cards[i].Rank < h.Cards[j].Rank
		}
		return h.Cards[i].Suit < h.Cards[j].Suit
	})
	h.rankCounts = make(map[int32]int)
	h.suitCounts = make(map[Suit]int)
	for _, c := range h.Cards {
		h.rankCounts[c.Rank]++
		h.suitCounts[c.Suit]++
	}
}

// Evaluate returns the value of the best five card combination.
func (h *Hand) Evaluate() (HandValue, error) {
	return Evaluate(h.Cards)
}
