package session

import "poker-genius/server/deck"

const (
	maxHand  = 2
	maxBoard = 5
)

// Selection tracks which cards sit in the hand vs the board. A card is
// never in both, and never twice in either; Toggle is the only mutator
// so the invariant holds mechanically.
type Selection struct {
	Hand  []deck.Card `json:"hand"`
	Board []deck.Card `json:"board"`
}

func indexOf(cards []deck.Card, c deck.Card) int {
	for i, x := range cards {
		if x.ID() == c.ID() {
			return i
		}
	}
	return -1
}

func remove(cards []deck.Card, i int) []deck.Card {
	return append(cards[:i:i], cards[i+1:]...)
}

// Toggle flips a card's membership: already in hand or board removes
// it, otherwise it fills the hand first, then the board. With both
// full the toggle is a no-op. Reports whether anything changed.
func (s *Selection) Toggle(c deck.Card) bool {
	if i := indexOf(s.Hand, c); i >= 0 {
		s.Hand = remove(s.Hand, i)
		return true
	}
	if i := indexOf(s.Board, c); i >= 0 {
		s.Board = remove(s.Board, i)
		return true
	}
	if len(s.Hand) < maxHand {
		s.Hand = append(s.Hand, c)
		return true
	}
	if len(s.Board) < maxBoard {
		s.Board = append(s.Board, c)
		return true
	}
	return false
}

// Clear resets to the initial empty state.
func (s *Selection) Clear() {
	s.Hand = nil
	s.Board = nil
}

// HandFull reports whether both hole cards are picked.
func (s *Selection) HandFull() bool { return len(s.Hand) == maxHand }

// Phase names the street implied by the board size.
func (s *Selection) Phase() string {
	switch len(s.Board) {
	case 0:
		return "PRE-FLOP"
	case 3:
		return "FLOP"
	case 4:
		return "TURN"
	case 5:
		return "RIVER"
	default:
		return "POST-FLOP"
	}
}
