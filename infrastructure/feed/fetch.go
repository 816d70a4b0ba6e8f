// Package feed pulls the shipment sheet export and keeps the snapshot current.
package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// maxBodyBytes bounds a single feed download.
const maxBodyBytes = 16 << 20

// Source returns the raw CSV text of the feed.
type Source interface {
	Fetch(ctx context.Context) (string, error)
}

// HTTPSource fetches the feed over HTTP(S).
type HTTPSource struct {
	URL    string
	Client *http.Client
}

func NewHTTPSource(url string, timeout time.Duration) *HTTPSource {
	return &HTTPSource{URL: url, Client: &http.Client{Timeout: timeout}}
}

func (s *HTTPSource) Fetch(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return "", fmt.Errorf("build feed request: %w", err)
	}
	req.Header.Set("Accept", "text/csv, text/plain;q=0.9, */*;q=0.1")

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("fetch feed: unexpected status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("read feed body: %w", err)
	}
	return string(body), nil
}
