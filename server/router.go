package main

import (
	"context"
	"embed"
	"encoding/json"
	"io/fs"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"poker-genius/server/creds"
	"poker-genius/server/deck"
	"poker-genius/server/session"
	"poker-genius/server/store"
	"poker-genius/server/table"
)

// embed the /web directory so the page ships in the binary
//
//go:embed web/*
var webFS embed.FS

// Banner texts shown verbatim in the UI.
const (
	bannerQuota   = "⚠️ Cuota agotada. Intenta más tarde."
	bannerAuth    = "⚠️ Error de autenticación. Verifica tu API Key."
	bannerGeneric = "⚠️ Ocurrió un error al analizar la mano. Intenta de nuevo."
)

func bannerFor(s session.ErrorStatus) string {
	switch s {
	case session.ErrQuota:
		return bannerQuota
	case session.ErrAuth:
		return bannerAuth
	case session.ErrGeneric:
		return bannerGeneric
	default:
		return ""
	}
}

// calcPayload wraps the calculator state with the rendered banner text
// and the card catalog the page needs to draw the grid.
type calcPayload struct {
	session.CalculatorState
	ErrorMessage string `json:"errorMessage,omitempty"`
}

type trainPayload struct {
	session.TrainerState
	ErrorMessage string `json:"errorMessage,omitempty"`
}

// Router exposes the three screens over JSON. db may be nil; review
// records are then simply not kept.
func Router(mgr *session.Manager, keys creds.Store, db *store.DB) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	sub, _ := fs.Sub(webFS, "web")
	r.Handle("/web/*", http.StripPrefix("/web/", http.FileServer(http.FS(sub))))
	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, "/web/index.html", http.StatusFound)
	})

	r.Get("/api/health", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, map[string]any{"ok": true})
	})

	r.Get("/api/deck", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, map[string]any{"cards": deck.Full()})
	})

	// ---- credential ----

	r.Get("/api/key", func(w http.ResponseWriter, req *http.Request) {
		key, err := keys.Get()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		// Never echo the key itself.
		writeJSON(w, map[string]any{"configured": key != ""})
	})

	r.Put("/api/key", func(w http.ResponseWriter, req *http.Request) {
		var body struct {
			Key string `json:"key"`
		}
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(body.Key) == "" {
			http.Error(w, "empty key", http.StatusBadRequest)
			return
		}
		if err := keys.Set(body.Key); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		ctx, cancel := callCtx(req)
		defer cancel()
		mgr.Calculator.KeySaved(ctx)
		writeJSON(w, map[string]any{"configured": true})
	})

	r.Delete("/api/key", func(w http.ResponseWriter, req *http.Request) {
		if err := keys.Clear(); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, map[string]any{"configured": false})
	})

	// ---- mode ----

	r.Get("/api/mode", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, map[string]any{"mode": mgr.Active()})
	})

	r.Post("/api/mode", func(w http.ResponseWriter, req *http.Request) {
		var body struct {
			Mode session.Mode `json:"mode"`
		}
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if !mgr.SetActive(body.Mode) {
			http.Error(w, "unknown mode", http.StatusBadRequest)
			return
		}
		writeJSON(w, map[string]any{"mode": mgr.Active()})
	})

	// ---- calculator ----

	calcState := func(w http.ResponseWriter) {
		st := mgr.Calculator.State()
		writeJSON(w, calcPayload{CalculatorState: st, ErrorMessage: bannerFor(st.Error)})
	}

	r.Get("/api/calculator", func(w http.ResponseWriter, req *http.Request) {
		calcState(w)
	})

	r.Post("/api/calculator/toggle", func(w http.ResponseWriter, req *http.Request) {
		var body struct {
			Card string `json:"card"`
		}
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		card, ok := deck.ByID(body.Card)
		if !ok {
			http.Error(w, "unknown card", http.StatusBadRequest)
			return
		}
		ctx, cancel := callCtx(req)
		defer cancel()
		mgr.Calculator.Toggle(ctx, card)
		persistCalculator(req.Context(), db, mgr)
		calcState(w)
	})

	r.Post("/api/calculator/table", func(w http.ResponseWriter, req *http.Request) {
		var tbl table.Context
		if err := json.NewDecoder(req.Body).Decode(&tbl); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if err := tbl.Validate(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		ctx, cancel := callCtx(req)
		defer cancel()
		mgr.Calculator.SetTable(ctx, tbl)
		persistCalculator(req.Context(), db, mgr)
		calcState(w)
	})

	r.Post("/api/calculator/clear", func(w http.ResponseWriter, req *http.Request) {
		mgr.Calculator.Clear()
		calcState(w)
	})

	// ---- training ----

	trainState := func(w http.ResponseWriter) {
		st := mgr.Trainer.State()
		writeJSON(w, trainPayload{TrainerState: st, ErrorMessage: bannerFor(st.Error)})
	}

	r.Get("/api/training", func(w http.ResponseWriter, req *http.Request) {
		trainState(w)
	})

	r.Post("/api/training/scenario", func(w http.ResponseWriter, req *http.Request) {
		mgr.Trainer.NewScenario()
		trainState(w)
	})

	r.Post("/api/training/guess", func(w http.ResponseWriter, req *http.Request) {
		var body struct {
			Guess int `json:"guess"`
		}
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		mgr.Trainer.SetGuess(body.Guess)
		trainState(w)
	})

	r.Post("/api/training/verify", func(w http.ResponseWriter, req *http.Request) {
		ctx, cancel := callCtx(req)
		defer cancel()
		mgr.Trainer.Verify(ctx)
		persistTraining(req.Context(), db, mgr)
		trainState(w)
	})

	// ---- importer ----

	r.Get("/api/importer", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, mgr.Importer.State())
	})

	r.Post("/api/importer/analyze", func(w http.ResponseWriter, req *http.Request) {
		var body struct {
			Text string `json:"text"`
		}
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		ctx, cancel := callCtx(req)
		defer cancel()
		mgr.Importer.Analyze(ctx, body.Text)
		persistImport(req.Context(), db, mgr, body.Text)
		writeJSON(w, mgr.Importer.State())
	})

	r.Post("/api/importer/reset", func(w http.ResponseWriter, req *http.Request) {
		mgr.Importer.Reset()
		writeJSON(w, mgr.Importer.State())
	})

	// ---- review records ----

	r.Get("/api/records", func(w http.ResponseWriter, req *http.Request) {
		if db == nil {
			writeJSON(w, map[string]any{"analyses": []any{}, "reports": []any{}})
			return
		}
		ctx := req.Context()
		analyses, err := db.RecentAnalyses(ctx, 50)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		reports, err := db.RecentReports(ctx, 50)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, map[string]any{"analyses": analyses, "reports": reports})
	})

	return r
}

// callCtx bounds a handler that may hit the model. Detached from the
// request context so a navigated-away page does not abort the call.
func callCtx(_ *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 60*time.Second)
}

// persistCalculator logs the freshest calculator result, best effort.
func persistCalculator(ctx context.Context, db *store.DB, mgr *session.Manager) {
	if db == nil {
		return
	}
	st := mgr.Calculator.State()
	if st.Analysis == nil {
		return
	}
	if _, err := db.InsertAnalysis(ctx, string(session.ModeCalculator),
		st.Hand, st.Board, st.Table, st.Analysis, nil, nil); err != nil {
		log.Printf("store: insert analysis: %v", err)
	}
}

func persistTraining(ctx context.Context, db *store.DB, mgr *session.Manager) {
	if db == nil {
		return
	}
	st := mgr.Trainer.State()
	if st.Analysis == nil || st.Scenario == nil {
		return
	}
	guess, gerr := st.Guess, st.GuessError
	if _, err := db.InsertAnalysis(ctx, string(session.ModeTraining),
		st.Scenario.Hand, st.Scenario.Board, st.Scenario.Table, st.Analysis,
		&guess, &gerr); err != nil {
		log.Printf("store: insert training analysis: %v", err)
	}
}

func persistImport(ctx context.Context, db *store.DB, mgr *session.Manager, raw string) {
	if db == nil {
		return
	}
	st := mgr.Importer.State()
	if st.Report == nil {
		return
	}
	if _, err := db.InsertHistoryReport(ctx, len(raw), st.Report); err != nil {
		log.Printf("store: insert history report: %v", err)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
