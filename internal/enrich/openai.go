// Package enrich provides the optional AI summarize/translate collaborator.
//
// Enrichment is strictly best-effort: a disabled configuration, missing
// credential, or any call failure yields the caller's fallback summary
// untouched. The ingestion pipeline never fails or stalls on this package.
package enrich

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/biglone/techpulse/internal/config"
	"github.com/biglone/techpulse/internal/logging"
)

const systemPrompt = "Summarize the input in 2 sentences. Provide a Chinese translation. Return JSON with keys summary and summaryZh."

// Request carries one item into the collaborator.
type Request struct {
	Title           string
	Content         string
	FallbackSummary string
}

// Result is the enrichment outcome. Summary is never empty when the request
// carried a fallback; SummaryZh is empty unless a translation was produced.
type Result struct {
	Summary   string
	SummaryZh string
}

// OpenAI summarizes and translates items through an OpenAI-compatible
// chat completions endpoint.
type OpenAI struct {
	enabled  bool
	apiKey   string
	endpoint string
	model    string
	client   *http.Client
}

// NewOpenAI creates the collaborator from configuration.
func NewOpenAI(cfg config.AI) *OpenAI {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = "https://api.openai.com/v1/chat/completions"
	}
	model := cfg.Model
	if model == "" {
		model = "gpt-4o-mini"
	}
	return &OpenAI{
		enabled:  cfg.Enabled,
		apiKey:   cfg.APIKey,
		endpoint: endpoint,
		model:    model,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

// Available reports whether enrichment is configured and enabled.
func (o *OpenAI) Available() bool {
	return o.enabled && o.apiKey != ""
}

// Summarize requests an improved summary and a Chinese translation for one
// item. Every failure path returns the fallback summary and no translation.
func (o *OpenAI) Summarize(ctx context.Context, req Request) Result {
	fallback := Result{Summary: req.FallbackSummary}
	if !o.Available() {
		return fallback
	}

	content, err := o.complete(ctx, req)
	if err != nil {
		logging.Debug("enrichment failed, using fallback", "title", req.Title, "error", err)
		return fallback
	}

	var parsed struct {
		Summary   string `json:"summary"`
		SummaryZh string `json:"summaryZh"`
	}
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return fallback
	}

	result := Result{Summary: parsed.Summary, SummaryZh: parsed.SummaryZh}
	if result.Summary == "" {
		result.Summary = req.FallbackSummary
	}
	return result
}

func (o *OpenAI) complete(ctx context.Context, req Request) (string, error) {
	body := map[string]any{
		"model": o.model,
		"messages": []map[string]string{
			{"role": "system", "content": systemPrompt},
			{"role": "user", "content": fmt.Sprintf("Title: %s\n\nContent: %s", req.Title, req.Content)},
		},
		"temperature": 0.3,
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, o.endpoint, bytes.NewReader(jsonBody))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+o.apiKey)

	resp, err := o.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API error (status %d)", resp.StatusCode)
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("parse response: %w", err)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("empty choices")
	}
	return result.Choices[0].Message.Content, nil
}
