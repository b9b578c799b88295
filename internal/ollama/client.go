// Package ollama is a minimal client for the local model-serving daemon.
// Only the surface the bootstrapper needs is covered: a reachability
// probe, the inventory listing, and the blocking pull operation.
package ollama

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

// Client talks to a single daemon instance over loopback HTTP.
type Client struct {
	baseURL string
	// probe is used for health checks only; it carries a short timeout so
	// a down daemon fails fast instead of hanging a poll tick.
	probe *http.Client
	// api has no client-level timeout: pulls are large and bounded by the
	// request context instead.
	api *http.Client
}

// New returns a client for the daemon at baseURL, e.g. "http://127.0.0.1:11434".
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		probe:   &http.Client{Timeout: 2 * time.Second},
		api:     &http.Client{},
	}
}

// Healthy reports whether the daemon answers on its root endpoint.
// Any non-5xx response counts; the daemon returns 200 when serving.
func (c *Client) Healthy(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", nil)
	if err != nil {
		return false
	}
	resp, err := c.probe.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode < 500
}

// List returns the names of all models the daemon currently holds.
func (c *Client) List(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/tags", nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.api.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching daemon inventory: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("daemon inventory returned status %d", resp.StatusCode)
	}
	var result struct {
		Models []struct {
			Name string `json:"name"`
		} `json:"models"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding daemon inventory: %w", err)
	}
	names := make([]string, 0, len(result.Models))
	for _, m := range result.Models {
		names = append(names, m.Name)
	}
	return names, nil
}

// Pull asks the daemon to download the named model and blocks until the
// daemon reports completion. stream=false collapses the progress stream
// into a single terminal response.
func (c *Client) Pull(ctx context.Context, name string) error {
	body, err := json.Marshal(map[string]any{"name": name, "stream": false})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/pull", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.api.Do(req)
	if err != nil {
		return fmt.Errorf("pull request for %s: %w", name, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("pull of %s returned status %d: %s", name, resp.StatusCode, strings.TrimSpace(string(msg)))
	}
	var status struct {
		Status string `json:"status"`
		Error  string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return fmt.Errorf("decoding pull response for %s: %w", name, err)
	}
	if status.Error != "" {
		return fmt.Errorf("pull of %s failed: %s", name, status.Error)
	}
	return nil
}
