// Package batchapi reads recent batches from a third-party brewing service
// and maps them onto calculator inputs. The calculators only ever see the
// resulting values; this package owns the fetch.
package batchapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mrnasser/dewey.beer/internal/brew"
)

// Batch is the subset of remote batch fields the dashboard consumes.
type Batch struct {
	ID     string  `json:"_id"`
	Name   string  `json:"name"`
	Number int     `json:"batchNo"`
	Status string  `json:"status"`
	OG     float64 `json:"measuredOg"`
	FG     float64 `json:"measuredFg"`
	ABV    float64 `json:"measuredAbv"`
	IBU    float64 `json:"estimatedIbu"`
	SRM    float64 `json:"estimatedColor"`
	Style  string  `json:"styleName"`
}

// Client talks to a Brewfather-style batches endpoint with basic auth.
type Client struct {
	baseURL string
	user    string
	key     string
	http    *http.Client
}

// New creates a batch API client. An empty baseURL disables it.
func New(baseURL, user, key string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		user:    user,
		key:     key,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// Enabled reports whether credentials are configured.
func (c *Client) Enabled() bool {
	return c.baseURL != "" && c.key != ""
}

// Recent fetches the most recent batches, newest first.
func (c *Client) Recent(ctx context.Context, limit int) ([]Batch, error) {
	if !c.Enabled() {
		return nil, fmt.Errorf("batch API is not configured")
	}
	if limit <= 0 {
		limit = 10
	}

	url := fmt.Sprintf("%s/batches?limit=%d&order_by=batchNo&order_by_direction=desc", c.baseURL, limit)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build batches request: %w", err)
	}
	req.SetBasicAuth(c.user, c.key)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch batches: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("batch API returned %d: %s", resp.StatusCode, msg)
	}

	var batches []Batch
	if err := json.NewDecoder(resp.Body).Decode(&batches); err != nil {
		return nil, fmt.Errorf("decode batches: %w", err)
	}
	return batches, nil
}

// Apply copies a batch's measured values onto a recipe context. Only fields
// the batch actually carries are overwritten; zero readings leave the local
// input alone.
func Apply(rc brew.RecipeContext, b Batch) brew.RecipeContext {
	if b.Name != "" {
		rc.Name = b.Name
	}
	if b.FG > 0 {
		rc.MeasuredFG = b.FG
	}
	return rc
}
