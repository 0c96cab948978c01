package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"poker-genius/server/creds"
	"poker-genius/server/gemini"
	"poker-genius/server/prompt"
	"poker-genius/server/session"
)

type fixedGateway struct {
	res    *gemini.AnalysisResult
	rep    *gemini.HandHistoryReport
	err    error
	called int
}

func (g *fixedGateway) AnalyzeHand(context.Context, prompt.Request, string) (*gemini.AnalysisResult, error) {
	g.called++
	return g.res, g.err
}

func (g *fixedGateway) AnalyzeHistory(context.Context, prompt.Request, string) (*gemini.HandHistoryReport, error) {
	g.called++
	return g.rep, g.err
}

func newTestServer(gw session.Analyzer, key string) *httptest.Server {
	keys := creds.NewMemStore(key)
	mgr := session.NewManager(gw, keys, rand.New(rand.NewSource(1)))
	return httptest.NewServer(Router(mgr, keys, nil))
}

func getJSON(t *testing.T, url string, out any) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		t.Fatalf("GET %s: status %d", url, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("decode: %v", err)
	}
}

func postJSON(t *testing.T, url string, body any, out any) int {
	t.Helper()
	b, _ := json.Marshal(body)
	resp, err := http.Post(url, "application/json", bytes.NewReader(b))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	defer resp.Body.Close()
	if out != nil && resp.StatusCode == 200 {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode: %v", err)
		}
	}
	return resp.StatusCode
}

func TestHealth(t *testing.T) {
	srv := newTestServer(&fixedGateway{}, "")
	defer srv.Close()
	var out map[string]any
	getJSON(t, srv.URL+"/api/health", &out)
	if out["ok"] != true {
		t.Fatalf("health = %v", out)
	}
}

func TestKeyLifecycle(t *testing.T) {
	srv := newTestServer(&fixedGateway{}, "")
	defer srv.Close()

	var out map[string]any
	getJSON(t, srv.URL+"/api/key", &out)
	if out["configured"] != false {
		t.Fatalf("fresh store should have no key")
	}

	req, _ := http.NewRequest(http.MethodPut, srv.URL+"/api/key",
		strings.NewReader(`{"key":"abc"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("PUT: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != 200 {
		t.Fatalf("PUT status %d", resp.StatusCode)
	}

	getJSON(t, srv.URL+"/api/key", &out)
	if out["configured"] != true {
		t.Fatalf("key should be configured after PUT")
	}

	del, _ := http.NewRequest(http.MethodDelete, srv.URL+"/api/key", nil)
	resp, err = http.DefaultClient.Do(del)
	if err != nil {
		t.Fatalf("DELETE: %v", err)
	}
	resp.Body.Close()

	getJSON(t, srv.URL+"/api/key", &out)
	if out["configured"] != false {
		t.Fatalf("key should be gone after DELETE")
	}
}

func TestCalculatorToggleAnalyzes(t *testing.T) {
	gw := &fixedGateway{res: &gemini.AnalysisResult{
		Probability:     0.85,
		Advice:          gemini.Continue,
		SuggestedAction: "Sube 3BB",
		BetSize:         "3 BB",
		Reasoning:       "Par de ases.",
		ExpectedHand:    "Par de Ases",
	}}
	srv := newTestServer(gw, "k")
	defer srv.Close()

	var st struct {
		Hand     []map[string]string `json:"hand"`
		Analysis *struct {
			Probability float64 `json:"probability"`
			Advice      string  `json:"advice"`
		} `json:"analysis"`
		ErrorMessage string `json:"errorMessage"`
	}
	postJSON(t, srv.URL+"/api/calculator/toggle", map[string]string{"card": "A-spades"}, &st)
	if len(st.Hand) != 1 || st.Analysis != nil {
		t.Fatalf("one card should not analyze: %+v", st)
	}
	postJSON(t, srv.URL+"/api/calculator/toggle", map[string]string{"card": "A-diamonds"}, &st)
	if st.Analysis == nil || st.Analysis.Probability != 0.85 {
		t.Fatalf("two cards should analyze: %+v", st)
	}
	if gw.called != 1 {
		t.Fatalf("gateway called %d times, want 1", gw.called)
	}
}

func TestCalculatorToggleRejectsUnknownCard(t *testing.T) {
	srv := newTestServer(&fixedGateway{}, "k")
	defer srv.Close()
	code := postJSON(t, srv.URL+"/api/calculator/toggle", map[string]string{"card": "Z-moons"}, nil)
	if code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", code)
	}
}

func TestQuotaBannerText(t *testing.T) {
	gw := &fixedGateway{err: &gemini.Error{Kind: gemini.KindQuotaExceeded, Err: fmt.Errorf("429")}}
	srv := newTestServer(gw, "k")
	defer srv.Close()

	var st struct {
		ErrorMessage string `json:"errorMessage"`
	}
	postJSON(t, srv.URL+"/api/calculator/toggle", map[string]string{"card": "A-spades"}, nil)
	postJSON(t, srv.URL+"/api/calculator/toggle", map[string]string{"card": "A-diamonds"}, &st)
	if st.ErrorMessage != bannerQuota {
		t.Fatalf("banner = %q, want %q", st.ErrorMessage, bannerQuota)
	}
}

func TestModeSwitch(t *testing.T) {
	srv := newTestServer(&fixedGateway{}, "")
	defer srv.Close()

	var out map[string]any
	getJSON(t, srv.URL+"/api/mode", &out)
	if out["mode"] != "calculator" {
		t.Fatalf("initial mode = %v", out["mode"])
	}
	postJSON(t, srv.URL+"/api/mode", map[string]string{"mode": "training"}, &out)
	if out["mode"] != "training" {
		t.Fatalf("mode = %v after switch", out["mode"])
	}
	if code := postJSON(t, srv.URL+"/api/mode", map[string]string{"mode": "bogus"}, nil); code != 400 {
		t.Fatalf("bogus mode status = %d", code)
	}
}

func TestTrainingFlow(t *testing.T) {
	gw := &fixedGateway{res: &gemini.AnalysisResult{
		Probability: 0.5, Advice: gemini.Caution,
		SuggestedAction: "x", BetSize: "x", Reasoning: "x", ExpectedHand: "x",
	}}
	srv := newTestServer(gw, "k")
	defer srv.Close()

	var st struct {
		Scenario *json.RawMessage `json:"scenario"`
		Guess    int              `json:"guess"`
		Analysis *json.RawMessage `json:"analysis"`
	}
	postJSON(t, srv.URL+"/api/training/scenario", nil, &st)
	if st.Scenario == nil || st.Guess != 50 {
		t.Fatalf("scenario not initialized: %+v", st)
	}
	postJSON(t, srv.URL+"/api/training/guess", map[string]int{"guess": 60}, &st)
	if st.Guess != 60 {
		t.Fatalf("guess = %d", st.Guess)
	}
	postJSON(t, srv.URL+"/api/training/verify", nil, &st)
	if st.Analysis == nil {
		t.Fatalf("verify did not store a result")
	}
}

func TestImporterAlert(t *testing.T) {
	gw := &fixedGateway{err: &gemini.Error{Kind: gemini.KindGeneric, Err: fmt.Errorf("boom")}}
	srv := newTestServer(gw, "k")
	defer srv.Close()

	var st struct {
		View  string `json:"view"`
		Alert string `json:"alert"`
	}
	postJSON(t, srv.URL+"/api/importer/analyze", map[string]string{"text": "PokerStars Hand #1"}, &st)
	if st.View != "input" || st.Alert != session.AlertImportFailed {
		t.Fatalf("failure should alert and stay on input: %+v", st)
	}
}

func TestDeckEndpoint(t *testing.T) {
	srv := newTestServer(&fixedGateway{}, "")
	defer srv.Close()
	var out struct {
		Cards []map[string]string `json:"cards"`
	}
	getJSON(t, srv.URL+"/api/deck", &out)
	if len(out.Cards) != 52 {
		t.Fatalf("deck has %d cards", len(out.Cards))
	}
}
