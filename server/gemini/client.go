// Package gemini is the single integration point with the hosted
// generative service. It issues one generateContent call per request,
// parses the structured JSON reply and normalizes failures into a
// small taxonomy the screens can act on. No retries, no backoff.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"poker-genius/server/prompt"
)

type Kind int

const (
	KindGeneric Kind = iota
	KindMissingCredential
	KindAuthRejected
	KindQuotaExceeded
	KindMalformedResponse
)

func (k Kind) String() string {
	switch k {
	case KindMissingCredential:
		return "missing_credential"
	case KindAuthRejected:
		return "auth_rejected"
	case KindQuotaExceeded:
		return "quota_exceeded"
	case KindMalformedResponse:
		return "malformed_response"
	default:
		return "generic"
	}
}

type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string { return fmt.Sprintf("gemini %s: %v", e.Kind, e.Err) }
func (e *Error) Unwrap() error { return e.Err }

func malformed(err error) *Error { return &Error{Kind: KindMalformedResponse, Err: err} }

// KindOf extracts the failure category, KindGeneric for anything that
// is not a gateway error.
func KindOf(err error) Kind {
	var ge *Error
	if errors.As(err, &ge) {
		return ge.Kind
	}
	return KindGeneric
}

type Client struct {
	base  string
	model string
	httpc *http.Client
}

// NewClient reads GEMINI_MODEL / GEMINI_API_BASE from the environment,
// falling back to the hosted defaults.
func NewClient() *Client {
	model := strings.TrimSpace(os.Getenv("GEMINI_MODEL"))
	if model == "" {
		model = "gemini-2.5-flash"
	}
	base := strings.TrimSpace(os.Getenv("GEMINI_API_BASE"))
	if base == "" {
		base = "https://generativelanguage.googleapis.com/v1beta"
	}
	return &Client{
		base:  strings.TrimRight(base, "/"),
		model: model,
		httpc: &http.Client{Timeout: 45 * time.Second},
	}
}

// NewClientAt points the gateway at a custom endpoint (test doubles).
func NewClientAt(base, model string) *Client {
	return &Client{base: strings.TrimRight(base, "/"), model: model, httpc: &http.Client{Timeout: 45 * time.Second}}
}

// Call performs one generateContent request and returns the raw text
// of the first candidate. The empty-key check runs here as well even
// though callers gate on the credential first.
func (c *Client) Call(ctx context.Context, req prompt.Request, apiKey string) (string, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return "", &Error{Kind: KindMissingCredential, Err: errors.New("no API key supplied")}
	}

	payload := map[string]any{
		"contents": []map[string]any{
			{"parts": []map[string]any{{"text": req.Prompt}}},
		},
		"generationConfig": map[string]any{
			"response_mime_type": "application/json",
			"response_schema":    req.Schema,
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", &Error{Kind: KindGeneric, Err: err}
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.base, c.model, apiKey)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", &Error{Kind: KindGeneric, Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpc.Do(httpReq)
	if err != nil {
		return "", &Error{Kind: KindGeneric, Err: err}
	}
	defer resp.Body.Close()

	var buf bytes.Buffer
	_, _ = buf.ReadFrom(resp.Body)
	raw := buf.String()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", classifyHTTP(resp.StatusCode, raw)
	}

	var gr struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.Unmarshal(buf.Bytes(), &gr); err != nil {
		return "", malformed(fmt.Errorf("unreadable response envelope: %w", err))
	}
	if len(gr.Candidates) == 0 || len(gr.Candidates[0].Content.Parts) == 0 {
		return "", malformed(errors.New("no candidates returned"))
	}
	return gr.Candidates[0].Content.Parts[0].Text, nil
}

// classifyHTTP maps service failures onto the taxonomy. The remote
// uses "entity not found" interchangeably with invalid-key errors, so
// both land in AuthRejected.
func classifyHTTP(status int, body string) *Error {
	summary := fmt.Errorf("http %d: %s", status, truncate(body, 800))
	switch {
	case status == http.StatusTooManyRequests || strings.Contains(body, "RESOURCE_EXHAUSTED"):
		return &Error{Kind: KindQuotaExceeded, Err: summary}
	case strings.Contains(body, "API_KEY_INVALID"),
		strings.Contains(body, "API key not valid"),
		strings.Contains(body, "Requested entity was not found"),
		status == http.StatusUnauthorized,
		status == http.StatusForbidden,
		status == http.StatusNotFound:
		return &Error{Kind: KindAuthRejected, Err: summary}
	default:
		return &Error{Kind: KindGeneric, Err: summary}
	}
}

// AnalyzeHand runs one hand-analysis request end to end.
func (c *Client) AnalyzeHand(ctx context.Context, req prompt.Request, apiKey string) (*AnalysisResult, error) {
	raw, err := c.Call(ctx, req, apiKey)
	if err != nil {
		return nil, err
	}
	return decodeAnalysis(raw)
}

// AnalyzeHistory runs one hand-history request end to end.
func (c *Client) AnalyzeHistory(ctx context.Context, req prompt.Request, apiKey string) (*HandHistoryReport, error) {
	raw, err := c.Call(ctx, req, apiKey)
	if err != nil {
		return nil, err
	}
	return decodeHistoryReport(raw)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:n]
	}
	return s[:n-3] + "..."
}

func extractJSONObject(s string) string {
	start := strings.Index(s, "{")
	if start < 0 {
		return ""
	}
	end := strings.LastIndex(s, "}")
	if end < start {
		return ""
	}
	return strings.TrimSpace(s[start : end+1])
}
