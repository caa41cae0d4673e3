package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"gameplan-backend/internal/llm"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	defaultTimeout = 60 * time.Second
)

// Client implements llm.Client against the Gemini generateContent endpoint.
type Client struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// Option customizes a Client.
type Option func(*Client)

// WithBaseURL overrides the API base URL. Used by tests.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/"); trimmed != "" {
			c.baseURL = trimmed
		}
	}
}

// WithTimeout overrides the per-request transport timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// NewClient constructs a Gemini client.
func NewClient(apiKey, model string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}
	if strings.TrimSpace(model) == "" {
		return nil, fmt.Errorf("LLM_MODEL is required for Gemini")
	}
	c := &Client{
		apiKey:  apiKey,
		model:   model,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type generateRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature      *float32 `json:"temperature,omitempty"`
	ResponseMIMEType string   `json:"responseMimeType,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content      content `json:"content"`
		FinishReason string  `json:"finishReason"`
	} `json:"candidates"`
	UsageMetadata *struct {
		PromptTokenCount     int `json:"promptTokenCount"`
		CandidatesTokenCount int `json:"candidatesTokenCount"`
		TotalTokenCount      int `json:"totalTokenCount"`
	} `json:"usageMetadata,omitempty"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error,omitempty"`
}

// SuggestGames asks the model to rank the library against the schedule.
func (c *Client) SuggestGames(ctx context.Context, input llm.SuggestInput) (json.RawMessage, error) {
	return c.generateJSON(ctx, llm.SuggestPrompt(input.LibraryJSON, input.ScheduleJSON))
}

// GameDetails asks the model to describe a single game.
func (c *Client) GameDetails(ctx context.Context, gameTitle string) (json.RawMessage, error) {
	return c.generateJSON(ctx, llm.DetailsPrompt(gameTitle))
}

// generateJSON performs one generateContent call and, when the model emits
// invalid JSON despite JSON response mode, one repair pass.
func (c *Client) generateJSON(ctx context.Context, prompt string) (json.RawMessage, error) {
	raw, usage, err := c.generateOnce(ctx, prompt)
	if err != nil {
		return nil, err
	}
	logUsage(c.model, usage)
	if json.Valid(raw) {
		return raw, nil
	}

	raw, usage, err = c.generateOnce(ctx, fixJSONPrompt(raw))
	if err != nil {
		return nil, err
	}
	logUsage(c.model, usage)
	if !json.Valid(raw) {
		return nil, fmt.Errorf("invalid JSON from Gemini")
	}
	return raw, nil
}

func (c *Client) generateOnce(ctx context.Context, prompt string) (json.RawMessage, *generateUsage, error) {
	temp := float32(0)
	reqBody := generateRequest{
		Contents: []content{
			{Parts: []part{{Text: prompt}}},
		},
		GenerationConfig: &generationConfig{
			Temperature:      &temp,
			ResponseMIMEType: "application/json",
		},
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, nil, err
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("x-goog-api-key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || strings.Contains(err.Error(), "Client.Timeout") {
			return nil, nil, fmt.Errorf("gemini request timeout: %w", err)
		}
		return nil, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, err
	}

	var parsed generateResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, nil, fmt.Errorf("gemini response parse: %w", err)
	}
	if parsed.Error != nil {
		return nil, nil, fmt.Errorf("gemini error: %s (%s)", parsed.Error.Message, parsed.Error.Status)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return nil, nil, fmt.Errorf("gemini response missing candidates")
	}

	text := strings.TrimSpace(parsed.Candidates[0].Content.Parts[0].Text)
	if text == "" {
		return nil, nil, fmt.Errorf("gemini response empty content")
	}
	return json.RawMessage(text), toUsage(parsed.UsageMetadata), nil
}

func fixJSONPrompt(raw []byte) string {
	return "You are a JSON repair tool. Return only valid JSON with the same content as the following, with no markdown and no commentary:\n\n" + string(raw)
}

type generateUsage struct {
	PromptTokens    int
	CandidateTokens int
	TotalTokens     int
}

func toUsage(raw *struct {
	PromptTokenCount     int `json:"promptTokenCount"`
	CandidatesTokenCount int `json:"candidatesTokenCount"`
	TotalTokenCount      int `json:"totalTokenCount"`
}) *generateUsage {
	if raw == nil {
		return nil
	}
	return &generateUsage{
		PromptTokens:    raw.PromptTokenCount,
		CandidateTokens: raw.CandidatesTokenCount,
		TotalTokens:     raw.TotalTokenCount,
	}
}

func logUsage(model string, usage *generateUsage) {
	if usage == nil {
		log.Printf("llm response model=%s", model)
		return
	}
	log.Printf("llm response model=%s prompt_tokens=%d candidate_tokens=%d total_tokens=%d",
		model, usage.PromptTokens, usage.CandidateTokens, usage.TotalTokens)
}

var _ llm.Client = (*Client)(nil)
