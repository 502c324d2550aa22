package loadcheck

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/okian/mood2emoji/internal/adapters/http/api"
	app "github.com/okian/mood2emoji/internal/app"
	"github.com/okian/mood2emoji/internal/domain/mood"
)

// HTTPClient wraps http.Client with timeout.
type HTTPClient struct {
	client *http.Client
}

// newHTTPClient creates a new HTTP client with timeout.
func newHTTPClient(timeout time.Duration) *HTTPClient {
	return &HTTPClient{client: &http.Client{Timeout: timeout}}
}

// Get performs a GET request.
func (c *HTTPClient) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return c.client.Do(req)
}

// Post performs a POST request with a JSON body and request id.
func (c *HTTPClient) Post(ctx context.Context, url, requestID string, body any) (*http.Response, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(api.HeaderRequestID, requestID)
	return c.client.Do(req)
}

// decode reads a bounded JSON body into v and closes it.
func decode(resp *http.Response, v any) error {
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(v)
}

// detect submits one sentence.
func (c *HTTPClient) detect(ctx context.Context, baseURL string, r Request) (mood.Result, error) {
	resp, err := c.Post(ctx, baseURL+"/api/detect", r.ID, r.Sample)
	if err != nil {
		return mood.Result{}, err
	}
	var res mood.Result
	if err := decode(resp, &res); err != nil {
		return mood.Result{}, fmt.Errorf("request %s: %w", r.ID, err)
	}
	return res, nil
}

// stats fetches the service counters.
func (c *HTTPClient) stats(ctx context.Context, baseURL string) (app.Stats, error) {
	resp, err := c.Get(ctx, baseURL+"/stats")
	if err != nil {
		return app.Stats{}, err
	}
	var s app.Stats
	if err := decode(resp, &s); err != nil {
		return app.Stats{}, fmt.Errorf("stats: %w", err)
	}
	return s, nil
}
