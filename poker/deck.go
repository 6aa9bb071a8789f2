package poker

import (
	crypto_rand "crypto/rand"
	"encoding/binary"
	"math/rand"

	"github.com/pkg/errors"
)

// ErrDeckExhausted is returned when more than 52 cards are drawn from one
// deck. With at most ten seats this must never happen in correct play.
var ErrDeckExhausted = errors.New("deck exhausted")

var fullDeck []Card

func init() {
	fullDeck = initializeFullCards()
}

type Deck struct {
	cards []Card
}

func newSeed() rand.Source {
	var b [8]byte
	_, err := crypto_rand.Read(b[:])
	if err != nil {
		panic("cannot seed math/rand package with cryptographically secure random number generator")
	}
	return rand.NewSource(int64(binary.LittleEndian.Uint64(b[:])))
}

// NewRand returns a math/rand generator seeded from crypto/rand.
func NewRand() *rand.Rand {
	return rand.New(newSeed())
}

// NewDeck returns a freshly shuffled 52 card deck.
func NewDeck() *Deck {
	deck := &Deck{}
	deck.Shuffle()
	return deck
}

// NewDeckFromCards builds a deck that deals the given cards in order.
// Used by scripted tests to rig hands.
func NewDeckFromCards(cards []Card) *Deck {
	deck := &Deck{cards: make([]Card, len(cards))}
	copy(deck.cards, cards)
	return deck
}

func (deck *Deck) Shuffle() *Deck {
	deck.cards = make([]Card, len(fullDeck))
	copy(deck.cards, fullDeck)

	randGen := rand.New(newSeed())
	randGen.Shuffle(len(deck.cards), func(i, j int) {
		deck.cards[i], deck.cards[j] = deck.cards[j], deck.cards[i]
	})
	return deck
}

// Deal removes and returns the top card.
func (deck *Deck) Deal() (Card, error) {
	if len(deck.cards) == 0 {
		return Card{}, ErrDeckExhausted
	}
	card := deck.cards[0]
	deck.cards = deck.cards[1:]
	return card, nil
}

// Draw removes and returns the top n cards.
func (deck *Deck) Draw(n int) ([]Card, error) {
	if len(deck.cards) < n {
		return nil, ErrDeckExhausted
	}
	cards := make([]Card, n)
	copy(cards, deck.cards[:n])
	deck.cards = deck.cards[n:]
	return cards, nil
}

func (deck *Deck) Remaining() int {
	return len(deck.cards)
}

func initializeFullCards() []Card {
	var cards []Card
	for _, suit := range Suits {
		for rank := RankTwo; rank <= RankAce; rank++ {
			cards = append(cards, Card{Rank: rank, Suit: suit})
		}
	}
	return cards
}

func (deck *Deck) PrettyPrint() string {
	return CardsToString(deck.cards)
}
