package session

import (
	"context"
	"math/rand"
	"sync"

	"poker-genius/server/creds"
	"poker-genius/server/gemini"
	"poker-genius/server/prompt"
	"poker-genius/server/trainer"
)

// Trainer is the self-quiz screen: random scenarios, a manual equity
// guess, and the model's answer to grade it against.
type Trainer struct {
	mu        sync.Mutex
	rng       *rand.Rand
	scenario  *trainer.Scenario
	guess     int
	analysis  *gemini.AnalysisResult
	refEquity *float64
	status    ErrorStatus
	inFlight  int
	seq       uint64
	gw        Analyzer
	keys      creds.Store
}

func NewTrainer(gw Analyzer, keys creds.Store, rng *rand.Rand) *Trainer {
	return &Trainer{rng: rng, guess: 50, gw: gw, keys: keys}
}

type TrainerState struct {
	Scenario  *trainer.Scenario      `json:"scenario"`
	Guess     int                    `json:"guess"`
	Analyzing bool                   `json:"analyzing"`
	Analysis  *gemini.AnalysisResult `json:"analysis"`
	// GuessError / GoodGuess are only meaningful when Analysis is set.
	GuessError int         `json:"guessError"`
	GoodGuess  bool        `json:"goodGuess"`
	RefEquity  *float64    `json:"refEquity,omitempty"`
	Error      ErrorStatus `json:"error"`
}

// NewScenario replaces the whole scenario and discards any prior
// guess and result.
func (t *Trainer) NewScenario() {
	t.mu.Lock()
	defer t.mu.Unlock()
	s := trainer.Generate(t.rng)
	t.scenario = &s
	t.guess = 50
	t.analysis = nil
	t.refEquity = nil
	t.status = ErrNone
	t.seq++ // orphan any in-flight verification of the old scenario
}

// SetGuess moves the estimation slider; locked once graded.
func (t *Trainer) SetGuess(pct int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.analysis != nil {
		return
	}
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	t.guess = pct
}

// Verify asks the model for the scenario's real equity. No-op without
// a scenario.
func (t *Trainer) Verify(ctx context.Context) {
	t.mu.Lock()
	if t.scenario == nil {
		t.mu.Unlock()
		return
	}
	key, err := t.keys.Get()
	if err != nil || key == "" {
		t.status = ErrGeneric
		t.mu.Unlock()
		return
	}
	t.status = ErrNone
	t.seq++
	seq := t.seq
	t.inFlight++
	s := *t.scenario
	req := prompt.BuildHandAnalysis(s.Hand, s.Board, s.Table)
	t.mu.Unlock()

	res, err := t.gw.AnalyzeHand(ctx, req, key)

	var ref *float64
	if err == nil && len(s.Board) == 5 {
		if eq, eqErr := trainer.RiverEquity(s.Hand, s.Board); eqErr == nil {
			ref = &eq
		}
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.inFlight--
	if seq != t.seq {
		return
	}
	if err != nil {
		// The quiz only distinguishes quota from everything else.
		if gemini.KindOf(err) == gemini.KindQuotaExceeded {
			t.status = ErrQuota
		} else {
			t.status = ErrGeneric
		}
		return
	}
	t.analysis = res
	t.refEquity = ref
}

func (t *Trainer) State() TrainerState {
	t.mu.Lock()
	defer t.mu.Unlock()
	st := TrainerState{
		Scenario:  t.scenario,
		Guess:     t.guess,
		Analyzing: t.inFlight > 0,
		Analysis:  t.analysis,
		RefEquity: t.refEquity,
		Error:     t.status,
	}
	if t.analysis != nil {
		st.GuessError = trainer.GuessError(t.guess, t.analysis.Probability)
		st.GoodGuess = trainer.GoodGuess(t.guess, t.analysis.Probability)
	}
	return st
}
