package deck

import (
	"math/rand"
	"testing"
)

func TestFullDeckHas52UniqueIDs(t *testing.T) {
	cards := Full()
	if len(cards) != 52 {
		t.Fatalf("expected 52 cards, got %d", len(cards))
	}
	seen := map[string]Card{}
	for _, c := range cards {
		if prev, dup := seen[c.ID()]; dup {
			t.Fatalf("duplicate id %q for %v and %v", c.ID(), prev, c)
		}
		seen[c.ID()] = c
	}
}

func TestByIDRoundTrip(t *testing.T) {
	for _, c := range Full() {
		got, ok := ByID(c.ID())
		if !ok {
			t.Fatalf("ByID(%q) not found", c.ID())
		}
		if got != c {
			t.Fatalf("ByID(%q) = %v, want %v", c.ID(), got, c)
		}
	}
	if _, ok := ByID("1-hearts"); ok {
		t.Fatalf("expected unknown id to miss")
	}
}

func TestShuffledIsPermutation(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	d := Shuffled(r)
	if len(d) != 52 {
		t.Fatalf("expected 52 cards, got %d", len(d))
	}
	seen := map[string]bool{}
	for _, c := range d {
		if seen[c.ID()] {
			t.Fatalf("duplicate card %s after shuffle", c.ID())
		}
		seen[c.ID()] = true
	}
}

func TestSuitMetadata(t *testing.T) {
	if Symbol(Hearts) != "♥" || Symbol(Spades) != "♠" {
		t.Fatalf("unexpected suit symbols: %q %q", Symbol(Hearts), Symbol(Spades))
	}
	colors := map[string]bool{}
	for _, s := range Suits {
		colors[Color(s)] = true
	}
	if len(colors) != 4 {
		t.Fatalf("expected one color per suit, got %d", len(colors))
	}
}

func TestCardLong(t *testing.T) {
	c := Card{Suit: Hearts, Rank: "10"}
	if c.Long() != "10 of hearts" {
		t.Fatalf("Long() = %q", c.Long())
	}
}
