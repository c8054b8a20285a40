// Package ai implements the inference gateway: it sends free-text expense
// descriptions to an OpenAI-compatible chat-completion endpoint and
// validates the structured result it gets back.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"kharcha/internal/core"
)

const (
	defaultBaseURL     = "https://api.groq.com/openai/v1/chat/completions"
	defaultModel       = "llama-3.3-70b-versatile"
	defaultTimeout     = 30 * time.Second
	defaultTemperature = 0.1
	defaultMaxTokens   = 300
)

// ClientConfig configures the gateway client.
type ClientConfig struct {
	APIKey      string
	BaseURL     string        // Default: Groq chat completions endpoint
	Model       string        // Default: llama-3.3-70b-versatile
	Timeout     time.Duration // Default: 30 seconds
	Temperature float64       // Default: 0.1, near-deterministic
	MaxTokens   int           // Default: 300
}

// Client is a stateless inference gateway. Each Extract call performs at
// most one outbound request and never retries.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	apiKey      string
	model       string
	temperature float64
	maxTokens   int
}

// NewClient creates a gateway client, filling unset config with defaults.
func NewClient(config ClientConfig) *Client {
	if config.BaseURL == "" {
		config.BaseURL = defaultBaseURL
	}
	if config.Model == "" {
		config.Model = defaultModel
	}
	if config.Timeout == 0 {
		config.Timeout = defaultTimeout
	}
	if config.Temperature == 0 {
		config.Temperature = defaultTemperature
	}
	if config.MaxTokens == 0 {
		config.MaxTokens = defaultMaxTokens
	}

	return &Client{
		httpClient:  &http.Client{Timeout: config.Timeout},
		baseURL:     config.BaseURL,
		apiKey:      config.APIKey,
		model:       config.Model,
		temperature: config.Temperature,
		maxTokens:   config.MaxTokens,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type providerErrorBody struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// extractionPayload is the JSON shape the provider is instructed to
// return. Amount is decoded loosely so a present-but-non-numeric value
// classifies as an invalid amount rather than a malformed reply.
type extractionPayload struct {
	Amount      any     `json:"amount"`
	Currency    string  `json:"currency"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Merchant    *string `json:"merchant"`
	Error       string  `json:"error"`
}

// Extract sends text to the provider and returns the validated extraction
// result. Failures are classified per the taxonomy in errors.go.
func (c *Client) Extract(ctx context.Context, text string) (core.ParsedExpense, error) {
	if strings.TrimSpace(text) == "" {
		return core.ParsedExpense{}, ErrEmptyInput
	}
	if c.apiKey == "" {
		return core.ParsedExpense{}, ErrNotConfigured
	}

	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: text},
		},
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
	})
	if err != nil {
		return core.ParsedExpense{}, fmt.Errorf("marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return core.ParsedExpense{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return core.ParsedExpense{}, fmt.Errorf("%w: %v", ErrProvider, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return core.ParsedExpense{}, fmt.Errorf("%w: %s", ErrProvider, c.providerMessage(resp))
	}

	var completion chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return core.ParsedExpense{}, fmt.Errorf("%w: decode completion: %v", ErrMalformedResponse, err)
	}
	if len(completion.Choices) == 0 {
		return core.ParsedExpense{}, fmt.Errorf("%w: no choices in completion", ErrMalformedResponse)
	}

	reply := strings.TrimSpace(completion.Choices[0].Message.Content)
	slog.DebugContext(ctx, "Provider reply received", "length", len(reply))

	parsed, amount, err := parsePayload(reply)
	if err != nil {
		return core.ParsedExpense{}, err
	}
	return normalize(parsed, amount, text), nil
}

// providerMessage pulls a human-readable message out of an error response,
// falling back to a generic one.
func (c *Client) providerMessage(resp *http.Response) string {
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err == nil {
		var body providerErrorBody
		if json.Unmarshal(raw, &body) == nil && body.Error.Message != "" {
			return body.Error.Message
		}
	}
	return fmt.Sprintf("unknown error (status %d)", resp.StatusCode)
}

// parsePayload decodes the provider's reply text and applies the shape
// checks of the extraction contract, returning the validated amount.
func parsePayload(reply string) (extractionPayload, float64, error) {
	candidate := extractJSONObject(reply)

	var payload extractionPayload
	if err := json.Unmarshal([]byte(candidate), &payload); err != nil {
		return extractionPayload{}, 0, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	if payload.Error != "" {
		return extractionPayload{}, 0, fmt.Errorf("%w: %s", ErrUnparseableInput, payload.Error)
	}

	// Null and missing amounts mean the provider could not parse the
	// input; anything else non-numeric or non-positive is an invalid
	// amount.
	switch amount := payload.Amount.(type) {
	case nil:
		return extractionPayload{}, 0, fmt.Errorf("%w: %s", ErrUnparseableInput, defaultFailureMessage)
	case float64:
		if amount <= 0 {
			return extractionPayload{}, 0, ErrInvalidAmount
		}
		return payload, amount, nil
	default:
		return extractionPayload{}, 0, ErrInvalidAmount
	}
}

// normalize applies the success-path defaults: two-decimal amount, default
// currency, description falling back to the raw input, empty merchant
// treated as absent. Category is passed through as returned.
func normalize(p extractionPayload, amount float64, originalText string) core.ParsedExpense {
	result := core.ParsedExpense{
		Amount:      core.RoundAmount(amount),
		Currency:    p.Currency,
		Category:    p.Category,
		Description: p.Description,
		Merchant:    p.Merchant,
	}
	if result.Currency == "" {
		result.Currency = core.DefaultCurrency
	}
	if result.Description == "" {
		result.Description = originalText
	}
	if result.Merchant != nil && *result.Merchant == "" {
		result.Merchant = nil
	}
	return result
}

// extractJSONObject returns the first balanced JSON object substring of s,
// tolerating prose around it. When no balanced object is found the whole
// string is returned so decoding can fail with the real error.
func extractJSONObject(s string) string {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return s
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		ch := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return s
}
