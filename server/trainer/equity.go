package trainer

import (
	"fmt"

	poker "github.com/paulhankin/poker"

	"poker-genius/server/deck"
)

// RiverEquity computes the hero's exact heads-up equity on a complete
// board by enumerating every villain combo. It is a local reference
// shown next to the model's estimate in training verification, never a
// substitute for it. Returns an error unless the board has 5 cards.
func RiverEquity(hand, board []deck.Card) (float64, error) {
	if len(hand) != 2 {
		return 0, fmt.Errorf("need exactly 2 hole cards, have %d", len(hand))
	}
	if len(board) != 5 {
		return 0, fmt.Errorf("river equity needs a 5-card board, have %d", len(board))
	}

	used := map[string]bool{}
	var hero7 [7]poker.Card
	for i, c := range hand {
		pc, err := toPoker(c)
		if err != nil {
			return 0, err
		}
		hero7[i] = pc
		used[c.ID()] = true
	}
	for i, c := range board {
		pc, err := toPoker(c)
		if err != nil {
			return 0, err
		}
		hero7[2+i] = pc
		used[c.ID()] = true
	}
	if len(used) != 7 {
		return 0, fmt.Errorf("hand and board share a card")
	}
	heroScore := poker.Eval7(&hero7)

	avail := make([]poker.Card, 0, 45)
	for _, c := range deck.Full() {
		if used[c.ID()] {
			continue
		}
		pc, err := toPoker(c)
		if err != nil {
			return 0, err
		}
		avail = append(avail, pc)
	}

	var total, win, tie int
	var v7 [7]poker.Card
	for i := 2; i < 7; i++ {
		v7[i] = hero7[i] // board
	}
	for i := 0; i < len(avail); i++ {
		for j := i + 1; j < len(avail); j++ {
			total++
			v7[0], v7[1] = avail[i], avail[j]
			vScore := poker.Eval7(&v7)
			// lower score ranks higher
			if heroScore < vScore {
				win++
			} else if heroScore == vScore {
				tie++
			}
		}
	}
	return (float64(win) + 0.5*float64(tie)) / float64(total), nil
}

func toPoker(c deck.Card) (poker.Card, error) {
	var zero poker.Card
	var s poker.Suit
	switch c.Suit {
	case deck.Clubs:
		s = poker.Club
	case deck.Diamonds:
		s = poker.Diamond
	case deck.Hearts:
		s = poker.Heart
	default:
		s = poker.Spade
	}
	var r poker.Rank
	switch c.Rank {
	case "A":
		r = poker.Rank(1)
	case "K":
		r = poker.Rank(13)
	case "Q":
		r = poker.Rank(12)
	case "J":
		r = poker.Rank(11)
	case "10":
		r = poker.Rank(10)
	default:
		if len(c.Rank) == 1 && c.Rank[0] >= '2' && c.Rank[0] <= '9' {
			r = poker.Rank(c.Rank[0] - '0')
		} else {
			return zero, fmt.Errorf("bad rank %q", c.Rank)
		}
	}
	pc, err := poker.MakeCard(s, r)
	if err != nil {
		return zero, err
	}
	return pc, nil
}
