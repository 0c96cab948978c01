package deck

import (
	"fmt"
	"math/rand"
)

type Suit string

const (
	Hearts   Suit = "hearts"
	Diamonds Suit = "diamonds"
	Clubs    Suit = "clubs"
	Spades   Suit = "spades"
)

// Suits in the display order of the selection grid.
var Suits = []Suit{Hearts, Diamonds, Clubs, Spades}

// Ranks high-to-low, matching the grid layout.
var Ranks = []string{"A", "K", "Q", "J", "10", "9", "8", "7", "6", "5", "4", "3", "2"}

type Card struct {
	Suit Suit   `json:"suit"`
	Rank string `json:"rank"`
}

// ID is the stable key for a card, e.g. "A-spades". No two of the 52
// deck cards share one.
func (c Card) ID() string { return c.Rank + "-" + string(c.Suit) }

// Long is the phrasing the prompt builder uses, e.g. "A of spades".
func (c Card) Long() string { return fmt.Sprintf("%s of %s", c.Rank, c.Suit) }

func (c Card) String() string { return c.Rank + Symbol(c.Suit) }

func Symbol(s Suit) string {
	switch s {
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	case Clubs:
		return "♣"
	default:
		return "♠"
	}
}

// Color is the display color class for a suit (red/blue/green/black,
// one per suit like the card grid).
func Color(s Suit) string {
	switch s {
	case Hearts:
		return "red"
	case Diamonds:
		return "blue"
	case Clubs:
		return "green"
	default:
		return "black"
	}
}

var full = buildFull()

func buildFull() []Card {
	cards := make([]Card, 0, 52)
	for _, s := range Suits {
		for _, r := range Ranks {
			cards = append(cards, Card{Suit: s, Rank: r})
		}
	}
	return cards
}

// Full returns a copy of the 52-card deck in grid order.
func Full() []Card {
	out := make([]Card, len(full))
	copy(out, full)
	return out
}

// Shuffled returns a uniformly shuffled copy of the full deck.
func Shuffled(r *rand.Rand) []Card {
	d := Full()
	r.Shuffle(len(d), func(i, j int) { d[i], d[j] = d[j], d[i] })
	return d
}

// ByID resolves an id like "10-hearts" back to a card.
func ByID(id string) (Card, bool) {
	for _, c := range full {
		if c.ID() == id {
			return c, true
		}
	}
	return Card{}, false
}
