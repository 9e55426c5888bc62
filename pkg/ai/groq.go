package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/Samadhi-12/MinuteMe/pkg/config"
)

// GroqClient is a minimal client for Groq chat completions
type GroqClient struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

// NewGroqClient creates a Groq client using values from the provided config.
// Pass a nil config to fall back to environment variables.
func NewGroqClient(cfg *config.GroqConfig) *GroqClient {
	var apiKey, base, model string
	timeout := 60 * time.Second
	if cfg != nil {
		apiKey, base, model = cfg.APIKey, cfg.BaseURL, cfg.Model
		if cfg.Timeout > 0 {
			timeout = cfg.Timeout
		}
	}
	if apiKey == "" {
		apiKey = os.Getenv("GROQ_API_KEY")
	}
	if base == "" {
		base = "https://api.groq.com"
	}
	if model == "" {
		model = "llama-3.1-8b-instant"
	}

	return &GroqClient{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(base, "/"),
		model:   model,
		client:  &http.Client{Timeout: timeout},
	}
}

// Enabled reports whether an API key is configured
func (g *GroqClient) Enabled() bool {
	return g != nil && g.apiKey != ""
}

// ChatMessage is one message of a chat completion request
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the shape for chat completion requests
type ChatRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

// ChatResponse is a minimal response shape
type ChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete sends one system and one user message and returns the assistant content
func (g *GroqClient) Complete(ctx context.Context, system, prompt string, maxTokens int) (string, error) {
	reqBody := ChatRequest{
		Model: g.model,
		Messages: []ChatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: prompt},
		},
		Temperature: 0,
		MaxTokens:   maxTokens,
	}

	b, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	endpoint := g.baseURL + "/openai/v1/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+g.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("groq returned status %d", resp.StatusCode)
	}

	var cr ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return "", err
	}
	if len(cr.Choices) == 0 {
		return "", fmt.Errorf("empty response from groq")
	}
	return strings.TrimSpace(cr.Choices[0].Message.Content), nil
}

// Summarize returns a short abstractive summary of a meeting transcript
func (g *GroqClient) Summarize(ctx context.Context, text string) (string, error) {
	return g.Complete(ctx,
		"You summarize meeting transcripts. Reply with a concise paragraph of plain prose, no lists, no preamble.",
		text, 400)
}

// Classify asks for exactly one label out of labels and returns it.
// An answer that matches no label is an error.
func (g *GroqClient) Classify(ctx context.Context, text string, labels []string) (string, error) {
	prompt := fmt.Sprintf("Labels: %s\nText: %s\nAnswer with the single best label, verbatim.", strings.Join(labels, "; "), text)
	answer, err := g.Complete(ctx, "You are a zero-shot text classifier.", prompt, 16)
	if err != nil {
		return "", err
	}
	normalized := strings.ToLower(strings.Trim(answer, " .\"'\n"))
	for _, l := range labels {
		if normalized == strings.ToLower(l) {
			return l, nil
		}
	}
	// Otherwise the answer must open with a whole label, e.g. "urgent issue: ..."
	best := ""
	for _, l := range labels {
		ll := strings.ToLower(l)
		if len(ll) > len(best) && hasLeadingPhrase(normalized, ll) {
			best = l
		}
	}
	if best != "" {
		return best, nil
	}
	return "", fmt.Errorf("groq returned unknown label %q", answer)
}

func hasLeadingPhrase(s, phrase string) bool {
	if phrase == "" || !strings.HasPrefix(s, phrase) {
		return false
	}
	if len(s) == len(phrase) {
		return true
	}
	next := s[len(phrase)]
	return !(next >= 'a' && next <= 'z' || next >= '0' && next <= '9' || next == '_' || next >= 0x80)
}

// Title returns a one-line meeting title for a set of topics
func (g *GroqClient) Title(ctx context.Context, topics []string) (string, error) {
	title, err := g.Complete(ctx,
		"You write meeting titles. Reply with a title of at most six words, no quotes, no trailing punctuation.",
		strings.Join(topics, "\n"), 24)
	if err != nil {
		return "", err
	}
	return strings.Trim(title, " .\"'"), nil
}
