package session

import (
	"context"
	"sync"

	"poker-genius/server/creds"
	"poker-genius/server/deck"
	"poker-genius/server/gemini"
	"poker-genius/server/prompt"
	"poker-genius/server/table"
)

// Calculator is the interactive single-hand screen. Analysis fires
// automatically on every state change while the hand holds two cards
// and a credential is configured.
type Calculator struct {
	mu        sync.Mutex
	sel       Selection
	tbl       table.Context
	analysis  *gemini.AnalysisResult
	status    ErrorStatus
	needsKey  bool // set on auth rejection, cleared when a key is saved
	inFlight  int
	seq       uint64 // latest issued request; stale completions are discarded
	gw        Analyzer
	keys      creds.Store
}

func NewCalculator(gw Analyzer, keys creds.Store) *Calculator {
	return &Calculator{tbl: table.Default(), gw: gw, keys: keys}
}

type CalculatorState struct {
	NeedsKey  bool                   `json:"needsKey"`
	Hand      []deck.Card            `json:"hand"`
	Board     []deck.Card            `json:"board"`
	Phase     string                 `json:"phase"`
	Table     table.Context          `json:"table"`
	Analyzing bool                   `json:"analyzing"`
	Analysis  *gemini.AnalysisResult `json:"analysis"`
	Error     ErrorStatus            `json:"error"`
}

// Toggle flips a card and, when the hand is complete, re-runs the
// analysis. Blocks until the triggered call (if any) settles; other
// handlers stay free to mutate concurrently, and the sequence check
// makes the latest-issued request win.
func (c *Calculator) Toggle(ctx context.Context, card deck.Card) {
	c.mu.Lock()
	c.sel.Toggle(card)
	c.status = ErrNone
	if !c.sel.HandFull() {
		c.analysis = nil
	}
	c.mu.Unlock()
	c.maybeAnalyze(ctx)
}

// SetTable applies new table variables and re-runs the analysis if the
// hand is already complete.
func (c *Calculator) SetTable(ctx context.Context, tbl table.Context) {
	c.mu.Lock()
	c.tbl = tbl.Clamp()
	c.mu.Unlock()
	c.maybeAnalyze(ctx)
}

// Clear wipes hand, board and any held result; table variables stay.
func (c *Calculator) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sel.Clear()
	c.analysis = nil
	c.status = ErrNone
}

// KeySaved is called after the user stores a credential; it returns
// the screen to the table view and retries if a hand is waiting.
func (c *Calculator) KeySaved(ctx context.Context) {
	c.mu.Lock()
	c.needsKey = false
	c.status = ErrNone
	c.mu.Unlock()
	c.maybeAnalyze(ctx)
}

func (c *Calculator) maybeAnalyze(ctx context.Context) {
	c.mu.Lock()
	if !c.sel.HandFull() {
		c.mu.Unlock()
		return
	}
	key, err := c.keys.Get()
	if err != nil || key == "" {
		c.needsKey = true
		c.mu.Unlock()
		return
	}
	c.seq++
	seq := c.seq
	c.inFlight++
	hand := append([]deck.Card(nil), c.sel.Hand...)
	board := append([]deck.Card(nil), c.sel.Board...)
	req := prompt.BuildHandAnalysis(hand, board, c.tbl)
	c.mu.Unlock()

	res, err := c.gw.AnalyzeHand(ctx, req, key)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.inFlight--
	if seq != c.seq {
		// A newer request was issued while this one was in flight.
		return
	}
	if err != nil {
		c.analysis = nil
		c.status = statusFor(err)
		switch gemini.KindOf(err) {
		case gemini.KindAuthRejected, gemini.KindMissingCredential:
			// Revert to the configuration view; the stored key is only
			// removed when the user clears it explicitly.
			c.needsKey = true
		}
		return
	}
	c.analysis = res
	c.status = ErrNone
}

func (c *Calculator) State() CalculatorState {
	key, _ := c.keys.Get()

	c.mu.Lock()
	defer c.mu.Unlock()
	return CalculatorState{
		NeedsKey:  key == "" || c.needsKey,
		Hand:      append([]deck.Card(nil), c.sel.Hand...),
		Board:     append([]deck.Card(nil), c.sel.Board...),
		Phase:     c.sel.Phase(),
		Table:     c.tbl,
		Analyzing: c.inFlight > 0,
		Analysis:  c.analysis,
		Error:     c.status,
	}
}
