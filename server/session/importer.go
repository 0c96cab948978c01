package session

import (
	"context"
	"strings"
	"sync"

	"poker-genius/server/creds"
	"poker-genius/server/gemini"
	"poker-genius/server/prompt"
)

// AlertImportFailed is the single blocking message the importer shows
// for any failure before returning to the input view.
const AlertImportFailed = "Error analizando el historial. Asegúrate de copiar el formato correctamente."

// Importer is the pasted-history screen. Its error handling is
// deliberately coarse: any failure produces one alert and the screen
// goes back to the un-submitted state.
type Importer struct {
	mu      sync.Mutex
	raw     string
	report  *gemini.HandHistoryReport
	loading bool
	alert   string
	gw      Analyzer
	keys    creds.Store
}

func NewImporter(gw Analyzer, keys creds.Store) *Importer {
	return &Importer{gw: gw, keys: keys}
}

type ImporterState struct {
	View    string                     `json:"view"` // "input" | "report"
	Raw     string                     `json:"raw"`
	Loading bool                       `json:"loading"`
	Report  *gemini.HandHistoryReport  `json:"report"`
	Alert   string                     `json:"alert,omitempty"`
}

// Analyze submits the pasted text. Blank input is a silent no-op; the
// remote call is never issued.
func (im *Importer) Analyze(ctx context.Context, rawText string) {
	if strings.TrimSpace(rawText) == "" {
		return
	}

	im.mu.Lock()
	im.raw = rawText
	im.alert = ""
	im.loading = true
	key, _ := im.keys.Get()
	req := prompt.BuildHandHistory(rawText)
	im.mu.Unlock()

	rep, err := im.gw.AnalyzeHistory(ctx, req, key)

	im.mu.Lock()
	defer im.mu.Unlock()
	im.loading = false
	if err != nil {
		im.report = nil
		im.alert = AlertImportFailed
		return
	}
	im.report = rep
}

// Reset returns from the report view to the input view. The pasted
// text is kept so the user can tweak and resubmit.
func (im *Importer) Reset() {
	im.mu.Lock()
	defer im.mu.Unlock()
	im.report = nil
	im.alert = ""
}

func (im *Importer) State() ImporterState {
	im.mu.Lock()
	defer im.mu.Unlock()
	view := "input"
	if im.report != nil {
		view = "report"
	}
	return ImporterState{
		View:    view,
		Raw:     im.raw,
		Loading: im.loading,
		Report:  im.report,
		Alert:   im.alert,
	}
}
