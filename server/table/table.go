// Package table holds the table-context side of a hand: seat position,
// player count, stack depth and the opponent's behavioral profile.
package table

import "fmt"

type Position string

const (
	NoPosition Position = ""
	Early      Position = "early"
	Middle     Position = "middle"
	Late       Position = "late"
	Dealer     Position = "dealer"
	SmallBlind Position = "smallBlind"
	BigBlind   Position = "bigBlind"
)

type OpponentProfile string

const (
	Standard   OpponentProfile = "standard"
	Aggressive OpponentProfile = "aggressive"
	Passive    OpponentProfile = "passive"
	Bluffer    OpponentProfile = "bluffer"
	Loose      OpponentProfile = "loose"
)

// Profiles the user may pick from.
var Profiles = []OpponentProfile{Standard, Aggressive, Passive, Bluffer, Loose}

const (
	MinPlayers = 2
	MaxPlayers = 9
	MinStack   = 1   // big blinds
	MaxStack   = 250 // big blinds
)

type Context struct {
	Position        Position        `json:"position"`
	PlayerCount     int             `json:"playerCount"`
	StackSize       int             `json:"stackSize"` // in big blinds
	OpponentProfile OpponentProfile `json:"opponentProfile"`
}

// Default mirrors the calculator's initial table: 6 players, 100 BB,
// standard villain, no position picked yet.
func Default() Context {
	return Context{PlayerCount: 6, StackSize: 100, OpponentProfile: Standard}
}

func (c Context) HeadsUp() bool { return c.PlayerCount == 2 }

// LegalPositions is the position set offered for a given table size.
// Heads-up collapses to dealer (acting as small blind) and big blind.
func LegalPositions(playerCount int) []Position {
	if playerCount == 2 {
		return []Position{Dealer, BigBlind}
	}
	return []Position{Early, Middle, Late, Dealer, SmallBlind, BigBlind}
}

func positionLegal(p Position, playerCount int) bool {
	if p == NoPosition {
		return true
	}
	for _, lp := range LegalPositions(playerCount) {
		if lp == p {
			return true
		}
	}
	return false
}

func profileKnown(p OpponentProfile) bool {
	for _, kp := range Profiles {
		if kp == p {
			return true
		}
	}
	return false
}

// Validate rejects contexts the UI should never produce.
func (c Context) Validate() error {
	if c.PlayerCount < MinPlayers || c.PlayerCount > MaxPlayers {
		return fmt.Errorf("player count %d out of range [%d,%d]", c.PlayerCount, MinPlayers, MaxPlayers)
	}
	if c.StackSize < MinStack || c.StackSize > MaxStack {
		return fmt.Errorf("stack size %d out of range [%d,%d] BB", c.StackSize, MinStack, MaxStack)
	}
	if !positionLegal(c.Position, c.PlayerCount) {
		return fmt.Errorf("position %q not legal at a %d-player table", c.Position, c.PlayerCount)
	}
	if !profileKnown(c.OpponentProfile) {
		return fmt.Errorf("unknown opponent profile %q", c.OpponentProfile)
	}
	return nil
}

// Clamp forces a context into legal shape after a slider change: the
// player count is clamped first, then a position that became illegal
// (e.g. smallBlind after dropping to heads-up) is reset.
func (c Context) Clamp() Context {
	if c.PlayerCount < MinPlayers {
		c.PlayerCount = MinPlayers
	}
	if c.PlayerCount > MaxPlayers {
		c.PlayerCount = MaxPlayers
	}
	if c.StackSize < MinStack {
		c.StackSize = MinStack
	}
	if c.StackSize > MaxStack {
		c.StackSize = MaxStack
	}
	if !positionLegal(c.Position, c.PlayerCount) {
		c.Position = NoPosition
	}
	if !profileKnown(c.OpponentProfile) {
		c.OpponentProfile = Standard
	}
	return c
}
