package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// GroqProvider talks to an OpenAI-compatible chat-completions endpoint.
// A token-bucket budget caps outgoing calls so a chatty guild cannot burn
// through the API quota; callers treat a rejected call like any other failure.
type GroqProvider struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
	budget  *rate.Limiter
}

// NewGroqProvider creates a provider for baseURL (e.g. https://api.groq.com/openai/v1).
func NewGroqProvider(baseURL, apiKey, model string) *GroqProvider {
	return &GroqProvider{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
		client:  &http.Client{Timeout: 25 * time.Second},
		budget:  rate.NewLimiter(rate.Limit(2), 6),
	}
}

func (p *GroqProvider) Generate(messages []Message, opts Options) (string, error) {
	if !p.budget.Allow() {
		return "", fmt.Errorf("llm call budget exceeded")
	}

	payload := map[string]interface{}{
		"model":       p.model,
		"messages":    messages,
		"temperature": opts.Temperature,
	}
	if opts.MaxTokens > 0 {
		payload["max_tokens"] = opts.MaxTokens
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/chat/completions", bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return "", err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("llm http %d: %s", resp.StatusCode, truncate(body))
	}
	if strings.Contains(resp.Header.Get("Content-Type"), "text/html") {
		return "", fmt.Errorf("llm returned html")
	}

	var parsed struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("unmarshal: %w body=%s", err, truncate(body))
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("llm empty choices")
	}

	return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
}
