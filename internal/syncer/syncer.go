// Package syncer mirrors locally-edited collections to a user-configured
// remote endpoint. Failures are reported to the caller for a banner; nothing
// here ever feeds back into the calculators.
package syncer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client pushes collection snapshots over HTTP.
type Client struct {
	url    string
	token  string
	method string
	http   *http.Client
}

// Option configures the Client.
type Option func(*Client)

// WithMethod overrides the default PUT verb; some endpoints only take POST.
func WithMethod(method string) Option {
	return func(c *Client) { c.method = method }
}

// WithHTTPClient substitutes the underlying HTTP client, mainly for tests.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// New creates a sync client for the given endpoint. Token may be empty for
// endpoints without auth.
func New(url, token string, opts ...Option) *Client {
	c := &Client{
		url:    url,
		token:  token,
		method: http.MethodPut,
		http:   &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Enabled reports whether a sync endpoint is configured at all.
func (c *Client) Enabled() bool {
	return c.url != ""
}

// envelope is the wire format: the collection name plus its full snapshot.
// The remote replaces its copy wholesale; there is no diffing protocol.
type envelope struct {
	Collection string `json:"collection"`
	Items      any    `json:"items"`
}

// Push mirrors one collection snapshot to the remote.
func (c *Client) Push(ctx context.Context, collection string, items any) error {
	if !c.Enabled() {
		return fmt.Errorf("sync endpoint is not configured")
	}

	body, err := json.Marshal(envelope{Collection: collection, Items: items})
	if err != nil {
		return fmt.Errorf("encode %s snapshot: %w", collection, err)
	}

	req, err := http.NewRequestWithContext(ctx, c.method, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build sync request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("push %s snapshot: %w", collection, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("sync endpoint returned %d: %s", resp.StatusCode, msg)
	}
	return nil
}
