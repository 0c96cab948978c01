// Package trainer generates random quiz scenarios and scores the
// user's equity guess against the model's answer.
package trainer

import (
	"math/rand"

	"poker-genius/server/deck"
	"poker-genius/server/table"
)

type Scenario struct {
	Hand  []deck.Card   `json:"hand"`
	Board []deck.Card   `json:"board"`
	Table table.Context `json:"table"`
}

var boardSizes = []int{0, 3, 4, 5}

// Random generation draws opponent profiles from this four-element
// set; loose stays out of the rotation even though the calculator
// offers it.
var quizProfiles = []table.OpponentProfile{table.Standard, table.Aggressive, table.Passive, table.Bluffer}

// Generate samples a fresh scenario: two hole cards and a board of
// random legal size drawn without replacement from one shuffled deck,
// plus a table context with a position legal for the drawn seat count.
func Generate(r *rand.Rand) Scenario {
	d := deck.Shuffled(r)
	hand := d[:2]
	boardSize := boardSizes[r.Intn(len(boardSizes))]
	board := d[2 : 2+boardSize]

	playerCount := r.Intn(8) + 2   // 2..9
	stackSize := r.Intn(141) + 10  // 10..150 BB
	positions := table.LegalPositions(playerCount)
	position := positions[r.Intn(len(positions))]
	profile := quizProfiles[r.Intn(len(quizProfiles))]

	return Scenario{
		Hand:  hand,
		Board: board,
		Table: table.Context{
			Position:        position,
			PlayerCount:     playerCount,
			StackSize:       stackSize,
			OpponentProfile: profile,
		},
	}
}

// GuessError is the distance, in percentage points, between the user's
// guess and the model's probability.
func GuessError(guessPct int, probability float64) int {
	diff := guessPct - int(probability*100+0.5)
	if diff < 0 {
		diff = -diff
	}
	return diff
}

// GoodGuess applies the within-10-points bar the quiz grades with.
func GoodGuess(guessPct int, probability float64) bool {
	return GuessError(guessPct, probability) <= 10
}
