package gemini

import (
	"encoding/json"
	"fmt"
)

type Advice string

const (
	Continue Advice = "CONTINUE"
	Fold     Advice = "FOLD"
	Caution  Advice = "CAUTION"
)

// AnalysisResult is the structured verdict for a single hand. Only the
// gateway produces these; every text field except Advice is treated as
// opaque model output.
type AnalysisResult struct {
	Probability     float64 `json:"probability"` // win probability in [0,1]
	Advice          Advice  `json:"advice"`
	SuggestedAction string  `json:"suggestedAction"`
	BetSize         string  `json:"betSize"`
	Reasoning       string  `json:"reasoning"`
	ExpectedHand    string  `json:"expectedHand"`
}

// HandHistoryReport is the leak report produced from pasted hand logs.
type HandHistoryReport struct {
	PlayerStyle      string   `json:"playerStyle"`
	VPIPRating       string   `json:"vpipRating"`
	AggressionFactor float64  `json:"aggressionFactor"` // 1..10 scale
	MainLeaks        []string `json:"mainLeaks"`
	Strengths        []string `json:"strengths"`
	DetailedReport   string   `json:"detailedReport"`
	SuggestedDrills  []string `json:"suggestedDrills"`
}

// decodeAnalysis strictly parses the model's JSON text. A body that
// does not carry all six fields in valid shape is MalformedResponse,
// never a half-populated struct.
func decodeAnalysis(raw string) (*AnalysisResult, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &probe); err != nil {
		if cleaned := extractJSONObject(raw); cleaned != "" && cleaned != raw {
			return decodeAnalysis(cleaned)
		}
		return nil, malformed(fmt.Errorf("response is not a JSON object: %w", err))
	}
	for _, f := range []string{"probability", "advice", "suggestedAction", "betSize", "reasoning", "expectedHand"} {
		if _, ok := probe[f]; !ok {
			return nil, malformed(fmt.Errorf("missing field %q", f))
		}
	}
	var res AnalysisResult
	if err := json.Unmarshal([]byte(raw), &res); err != nil {
		return nil, malformed(err)
	}
	switch res.Advice {
	case Continue, Fold, Caution:
	default:
		return nil, malformed(fmt.Errorf("advice %q not one of CONTINUE/FOLD/CAUTION", res.Advice))
	}
	if res.Probability < 0 || res.Probability > 1 {
		return nil, malformed(fmt.Errorf("probability %v outside [0,1]", res.Probability))
	}
	return &res, nil
}

func decodeHistoryReport(raw string) (*HandHistoryReport, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &probe); err != nil {
		if cleaned := extractJSONObject(raw); cleaned != "" && cleaned != raw {
			return decodeHistoryReport(cleaned)
		}
		return nil, malformed(fmt.Errorf("response is not a JSON object: %w", err))
	}
	for _, f := range []string{"playerStyle", "vpipRating", "aggressionFactor", "mainLeaks", "strengths", "detailedReport", "suggestedDrills"} {
		if _, ok := probe[f]; !ok {
			return nil, malformed(fmt.Errorf("missing field %q", f))
		}
	}
	var rep HandHistoryReport
	if err := json.Unmarshal([]byte(raw), &rep); err != nil {
		return nil, malformed(err)
	}
	return &rep, nil
}
