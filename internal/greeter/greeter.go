// Package greeter asks an OpenAI-compatible endpoint for short tap
// descriptions. It is strictly cosmetic: any failure falls back to a fixed
// line and is never treated as an error by callers.
package greeter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Fallback is served whenever the AI endpoint is unconfigured, unreachable,
// or returns garbage.
const Fallback = "A fresh pour, straight from the cellar."

const defaultModel = "gpt-4o-mini"

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type payload struct {
	Model       string    `json:"model"`
	Messages    []message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
}

type apiResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Client generates tap copy.
type Client struct {
	url   string
	key   string
	model string
	http  *http.Client
}

// Option configures the Client.
type Option func(*Client)

// WithModel overrides the default model name.
func WithModel(model string) Option {
	return func(c *Client) { c.model = model }
}

// WithHTTPClient substitutes the underlying HTTP client, mainly for tests.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// New creates a greeter client. An empty url disables generation entirely;
// Describe then always returns Fallback.
func New(url, key string, opts ...Option) *Client {
	c := &Client{
		url:   url,
		key:   key,
		model: defaultModel,
		http:  &http.Client{Timeout: 20 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Describe returns a one-line description for a beer. It never fails: on any
// problem the static fallback comes back instead.
func (c *Client) Describe(ctx context.Context, beer, style string) string {
	if c.url == "" {
		return Fallback
	}

	prompt := fmt.Sprintf("Write one enticing sentence (under 20 words) describing a beer named %q", beer)
	if style != "" {
		prompt += fmt.Sprintf(" in the %s style", style)
	}
	prompt += ". No quotes, no emoji."

	body, err := json.Marshal(payload{
		Model: c.model,
		Messages: []message{
			{Role: "system", Content: "You write short, warm menu copy for a home taproom."},
			{Role: "user", Content: prompt},
		},
		Temperature: 0.8,
		MaxTokens:   60,
	})
	if err != nil {
		return Fallback
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return Fallback
	}
	req.Header.Set("Content-Type", "application/json")
	if c.key != "" {
		req.Header.Set("Authorization", "Bearer "+c.key)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return Fallback
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 512))
		return Fallback
	}

	var out apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Fallback
	}
	if len(out.Choices) == 0 {
		return Fallback
	}

	text := strings.TrimSpace(out.Choices[0].Message.Content)
	if text == "" {
		return Fallback
	}
	return text
}
