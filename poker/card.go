package poker

import (
	"fmt"
	"strings"
)

// Suit of a card. Serialized as the full lowercase name to match the
// wire format the clients already speak.
type Suit string

const (
	Hearts   Suit = "hearts"
	Diamonds Suit = "diamonds"
	Clubs    Suit = "clubs"
	Spades   Suit = "spades"
)

// Suits in deck-building order.
var Suits = []Suit{Hearts, Diamonds, Clubs, Spades}

const (
	RankTwo   int32 = 2
	RankTen   int32 = 10
	RankJack  int32 = 11
	RankQueen int32 = 12
	RankKing  int32 = 13
	RankAce   int32 = 14
)

var strRanks = "23456789TJQKA"

var charSuitToSuit = map[uint8]Suit{
	'h': Hearts,
	'd': Diamonds,
	'c': Clubs,
	's': Spades,
}

var prettySuits = map[Suit]string{
	Spades:   "♠",
	Hearts:   "❤",
	Diamonds: "♦",
	Clubs:    "♣",
}

// Card is an immutable value type. Rank runs 2..14 with ace high.
type Card struct {
	Rank int32 `json:"rank"`
	Suit Suit  `json:"suit"`
}

// NewCard parses the two character form, e.g. "Ah", "Td", "9c".
func NewCard(s string) Card {
	rank := int32(strings.IndexByte(strRanks, s[0])) + 2
	suit := charSuitToSuit[s[1]]
	return Card{Rank: rank, Suit: suit}
}

func (c Card) String() string {
	return string(strRanks[c.Rank-2]) + string(string(c.Suit)[0])
}

func (c Card) PrettyPrint() string {
	return fmt.Sprintf("%s%s", string(strRanks[c.Rank-2]), prettySuits[c.Suit])
}

// IsValid reports whether the card is one of the 52 playable cards.
func (c Card) IsValid() bool {
	if c.Rank < RankTwo || c.Rank > RankAce {
		return false
	}
	switch c.Suit {
	case Hearts, Diamonds, Clubs, Spades:
		return true
	}
	return false
}

func CardsToString(cards []Card) string {
	var b strings.Builder
	b.Grow(32)
	fmt.Fprintf(&b, "[")
	for _, c := range cards {
		fmt.Fprintf(&b, " %s ", c.PrettyPrint())
	}
	fmt.Fprintf(&b, "]")
	return b.String()
}
