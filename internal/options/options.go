// Package options expands catalog option sets into concrete variants and
// pushes them to a store admin API in bulk. It backs the deweyctl
// "options push" command.
package options

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Set is one option axis, e.g. Size: [Small, Medium, Large].
type Set struct {
	Name   string   `yaml:"name" json:"name"`
	Values []string `yaml:"values" json:"values"`
}

// Variant is one concrete combination of option values, keyed by axis name.
type Variant map[string]string

// Expand produces the cartesian product of the option sets, in stable order:
// the first set varies slowest. Empty sets are skipped; no sets yields no
// variants.
func Expand(sets []Set) []Variant {
	axes := make([]Set, 0, len(sets))
	for _, s := range sets {
		if len(s.Values) > 0 {
			axes = append(axes, s)
		}
	}
	if len(axes) == 0 {
		return nil
	}

	variants := []Variant{{}}
	for _, axis := range axes {
		next := make([]Variant, 0, len(variants)*len(axis.Values))
		for _, v := range variants {
			for _, val := range axis.Values {
				combined := make(Variant, len(v)+1)
				for k, existing := range v {
					combined[k] = existing
				}
				combined[axis.Name] = val
				next = append(next, combined)
			}
		}
		variants = next
	}
	return variants
}

// Pusher creates variants against a remote admin endpoint one at a time.
type Pusher struct {
	url   string
	token string
	http  *http.Client
}

// NewPusher creates a pusher for the given endpoint.
func NewPusher(url, token string) *Pusher {
	return &Pusher{
		url:   url,
		token: token,
		http:  &http.Client{Timeout: 30 * time.Second},
	}
}

// Report summarizes a bulk push.
type Report struct {
	Created int
	Failed  int
}

// PushAll creates every variant, continuing past individual failures so one
// rejected combination does not abort the rest of the batch. The first error
// encountered is returned alongside the counts.
func (p *Pusher) PushAll(ctx context.Context, product string, variants []Variant) (Report, error) {
	var report Report
	var firstErr error

	for _, v := range variants {
		if err := p.pushOne(ctx, product, v); err != nil {
			report.Failed++
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		report.Created++
	}
	return report, firstErr
}

func (p *Pusher) pushOne(ctx context.Context, product string, v Variant) error {
	body, err := json.Marshal(map[string]any{
		"product": product,
		"options": v,
	})
	if err != nil {
		return fmt.Errorf("encode variant: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build variant request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if p.token != "" {
		req.Header.Set("Authorization", "Bearer "+p.token)
	}

	resp, err := p.http.Do(req)
	if err != nil {
		return fmt.Errorf("create variant: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("admin API returned %d: %s", resp.StatusCode, msg)
	}
	return nil
}
