// Package session owns the per-screen state of the assistant: the
// interactive calculator, the training quiz and the hand-history
// importer. Each screen holds its own selection, table context and
// result; nothing is shared by reference across screens.
package session

import (
	"context"
	"math/rand"
	"sync"

	"poker-genius/server/creds"
	"poker-genius/server/gemini"
	"poker-genius/server/prompt"
)

// Analyzer is the remote gateway as the screens see it. *gemini.Client
// satisfies it; tests plug in doubles.
type Analyzer interface {
	AnalyzeHand(ctx context.Context, req prompt.Request, apiKey string) (*gemini.AnalysisResult, error)
	AnalyzeHistory(ctx context.Context, req prompt.Request, apiKey string) (*gemini.HandHistoryReport, error)
}

// ErrorStatus is the banner category a screen displays, "" when clear.
type ErrorStatus string

const (
	ErrNone    ErrorStatus = ""
	ErrQuota   ErrorStatus = "quota"
	ErrAuth    ErrorStatus = "auth"
	ErrGeneric ErrorStatus = "generic"
)

func statusFor(err error) ErrorStatus {
	switch gemini.KindOf(err) {
	case gemini.KindQuotaExceeded:
		return ErrQuota
	case gemini.KindAuthRejected, gemini.KindMissingCredential:
		return ErrAuth
	default:
		// Malformed responses get the generic retry banner.
		return ErrGeneric
	}
}

type Mode string

const (
	ModeCalculator Mode = "calculator"
	ModeTraining   Mode = "training"
	ModeImporter   Mode = "importer"
)

// Manager is the mode controller: three independently owned screens
// plus the active-mode marker. Switching modes never clears another
// mode's state.
type Manager struct {
	Calculator *Calculator
	Trainer    *Trainer
	Importer   *Importer

	mu     sync.Mutex
	active Mode
}

func NewManager(gw Analyzer, keys creds.Store, rng *rand.Rand) *Manager {
	return &Manager{
		Calculator: NewCalculator(gw, keys),
		Trainer:    NewTrainer(gw, keys, rng),
		Importer:   NewImporter(gw, keys),
		active:     ModeCalculator,
	}
}

func (m *Manager) Active() Mode {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active
}

func (m *Manager) SetActive(mode Mode) bool {
	switch mode {
	case ModeCalculator, ModeTraining, ModeImporter:
		m.mu.Lock()
		m.active = mode
		m.mu.Unlock()
		return true
	default:
		return false
	}
}
