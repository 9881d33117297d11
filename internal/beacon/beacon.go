// Package beacon delivers experiment events to a collector over HTTP.
package beacon

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/dxforce-site/abTestHeroBanner/internal/abtest"
)

// payload is the compact wire shape the collector accepts.
type payload struct {
	TestID    string `json:"t"`
	Variant   string `json:"v"`
	Action    string `json:"e"`
	VisitorID string `json:"vid"`
}

// Client posts events to a collector beacon endpoint. It implements
// abtest.Sender; delivery is best effort and callers never retry.
type Client struct {
	url    string
	client *http.Client
}

// New builds a client for the collector at url, the full beacon endpoint
// such as https://ab.example.com/b.
func New(url string) *Client {
	return &Client{
		url:    url,
		client: &http.Client{Timeout: 5 * time.Second},
	}
}

// Send posts one event. A non-2xx response is an error.
func (c *Client) Send(ctx context.Context, ev abtest.Event) error {
	body, err := json.Marshal(payload{
		TestID:    ev.TestID,
		Variant:   string(ev.Variant),
		Action:    string(ev.Action),
		VisitorID: ev.VisitorID,
	})
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send event: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("collector responded with status %d", resp.StatusCode)
	}
	return nil
}
