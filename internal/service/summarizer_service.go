package service

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/CrowdContract/Unstop-smartdocai/internal/config"
)

// maxSummaryInput caps how much source text is sent to the remote endpoint.
// A bandwidth/cost bound, not a correctness requirement.
const maxSummaryInput = 4000

// SarvamClient calls the Sarvam AI summarization endpoint.
//
// Every failure mode (missing configuration, transport error, timeout,
// non-2xx status, empty summary field) collapses into the single
// "no summary available" outcome; the client never returns an error,
// so the caller's fallback branch is an ordinary code path.
type SarvamClient struct {
	url    string
	apiKey string
	http   *http.Client
}

// NewSarvamClient creates a new SarvamClient. With an empty URL or key the
// client is permanently unavailable and every call reports no summary.
func NewSarvamClient(cfg config.SarvamConfig) *SarvamClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &SarvamClient{
		url:    cfg.URL,
		apiKey: cfg.APIKey,
		http:   &http.Client{Timeout: timeout},
	}
}

// summaryRequest is the payload sent to the summarization endpoint.
type summaryRequest struct {
	Text string `json:"text"`
}

// summaryResponse is the expected shape of a successful response.
type summaryResponse struct {
	Summary string `json:"summary"`
}

// Summarize requests a natural-language summary for text, truncated to the
// first 4000 characters. Returns (summary, true) on success and ("", false)
// in every other case. Exactly one attempt is made; no retries.
func (c *SarvamClient) Summarize(ctx context.Context, text string) (string, bool) {
	if c.url == "" || c.apiKey == "" {
		return "", false
	}

	body, err := json.Marshal(summaryRequest{Text: truncate(text, maxSummaryInput)})
	if err != nil {
		return "", false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return "", false
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", false
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", false
	}

	var data summaryResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return "", false
	}

	summary := strings.TrimSpace(data.Summary)
	if summary == "" {
		return "", false
	}
	return summary, true
}

// truncate returns at most n characters of s without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
