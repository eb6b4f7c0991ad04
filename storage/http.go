package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// HTTPSource fetches observation documents from a published base URL,
// typically the same static hosting the rendering layer reads from.
type HTTPSource struct {
	baseURL string
	client  *http.Client
}

func NewHTTPSource(baseURL string, client *http.Client) *HTTPSource {
	return &HTTPSource{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

func (s *HTTPSource) Name() string {
	return "http:" + s.baseURL
}

func (s *HTTPSource) FetchAggregated(ctx context.Context) ([]byte, error) {
	return s.fetch(ctx, "aggregated.json")
}

func (s *HTTPSource) FetchLatest(ctx context.Context) ([]byte, error) {
	return s.fetch(ctx, "latest.json")
}

func (s *HTTPSource) fetch(ctx context.Context, name string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", s.baseURL+"/"+name, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("fetch %s: status %d", name, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, 100*1024*1024))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return data, nil
}
