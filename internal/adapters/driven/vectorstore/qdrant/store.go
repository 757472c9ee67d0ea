// Package qdrant provides a vector store adapter speaking the Qdrant
// REST API. Collections are created with cosine distance; upserts use
// wait=true so a successful call means the points are applied as one
// atomic batch.
package qdrant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/zioncloud/docqa/internal/core/domain"
	"github.com/zioncloud/docqa/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.VectorStore = (*Store)(nil)

// DefaultTimeout is the per-request timeout.
const DefaultTimeout = 30 * time.Second

// Config holds configuration for the Qdrant store.
type Config struct {
	// URL is the Qdrant endpoint, e.g. http://localhost:6333 (required).
	URL string

	// APIKey authenticates against Qdrant Cloud. Optional for local
	// instances.
	APIKey string

	// Timeout is the per-request timeout (default: 30s).
	Timeout time.Duration
}

// Store is a Qdrant REST client implementing driven.VectorStore.
type Store struct {
	client *http.Client
	url    string
	apiKey string
}

// NewStore creates a new Qdrant store.
func NewStore(cfg Config) (*Store, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("qdrant: URL is required")
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &Store{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		url:    strings.TrimRight(cfg.URL, "/"),
		apiKey: cfg.APIKey,
	}, nil
}

// errorEnvelope matches Qdrant's error response shape.
type errorEnvelope struct {
	Status struct {
		Error string `json:"error"`
	} `json:"status"`
}

// CreateCollection establishes an empty collection with cosine distance.
// Qdrant answers 409 for an existing name, mapped to
// domain.ErrCollectionExists - creation is deliberately not idempotent.
func (s *Store) CreateCollection(ctx context.Context, name string, dimension int) error {
	if dimension <= 0 {
		return fmt.Errorf("%w: dimension %d", domain.ErrInvalidInput, dimension)
	}

	body := map[string]any{
		"vectors": map[string]any{
			"size":     dimension,
			"distance": "Cosine",
		},
	}
	return s.do(ctx, http.MethodPut, fmt.Sprintf("/collections/%s", name), body, nil)
}

// DeleteCollection removes the collection and all its points.
func (s *Store) DeleteCollection(ctx context.Context, name string) error {
	return s.do(ctx, http.MethodDelete, fmt.Sprintf("/collections/%s", name), nil, nil)
}

// Upsert inserts or overwrites points by identifier. With wait=true the
// batch applies atomically: Qdrant rejects the whole call when any
// vector's dimension differs from the collection's.
func (s *Store) Upsert(ctx context.Context, collection string, points []domain.Point) error {
	if len(points) == 0 {
		return nil
	}

	payload := make([]map[string]any, len(points))
	for i, p := range points {
		payload[i] = map[string]any{
			"id":      p.ID,
			"vector":  p.Vector,
			"payload": p.Payload,
		}
	}
	body := map[string]any{"points": payload}

	return s.do(ctx, http.MethodPut, fmt.Sprintf("/collections/%s/points?wait=true", collection), body, nil)
}

// Query returns the limit nearest points by cosine similarity,
// descending score.
func (s *Store) Query(ctx context.Context, collection string, vector []float32, limit int) ([]domain.SearchResult, error) {
	body := map[string]any{
		"vector":       vector,
		"limit":        limit,
		"with_payload": true,
	}

	var resp struct {
		Result []struct {
			ID      any            `json:"id"`
			Score   float64        `json:"score"`
			Payload map[string]any `json:"payload"`
		} `json:"result"`
	}
	if err := s.do(ctx, http.MethodPost, fmt.Sprintf("/collections/%s/points/search", collection), body, &resp); err != nil {
		return nil, err
	}

	results := make([]domain.SearchResult, 0, len(resp.Result))
	for _, r := range resp.Result {
		result := domain.SearchResult{
			ID:    fmt.Sprintf("%v", r.ID),
			Score: r.Score,
		}
		if text, ok := r.Payload[domain.PayloadText].(string); ok {
			result.Text = text
		}
		if source, ok := r.Payload[domain.PayloadSource].(string); ok {
			result.Source = source
		}
		if dir, ok := r.Payload[domain.PayloadDirectory].(string); ok {
			result.Directory = dir
		}
		results = append(results, result)
	}
	return results, nil
}

// Close releases resources.
func (s *Store) Close() error {
	return nil
}

// do sends one JSON request and decodes the response into out when
// non-nil. HTTP status codes map onto the domain error taxonomy.
func (s *Store) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.url+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if s.apiKey != "" {
		req.Header.Set("api-key", s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("qdrant %s %s: %v: %w", method, path, err, domain.ErrVectorStore)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 300 {
		return s.mapError(resp.StatusCode, data)
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// mapError converts a Qdrant error response into a domain error.
func (s *Store) mapError(status int, body []byte) error {
	var envelope errorEnvelope
	_ = json.Unmarshal(body, &envelope)
	detail := envelope.Status.Error
	if detail == "" {
		detail = string(body)
	}

	switch {
	case status == http.StatusNotFound:
		return fmt.Errorf("qdrant: %s: %w", detail, domain.ErrCollectionNotFound)
	case status == http.StatusConflict:
		return fmt.Errorf("qdrant: %s: %w", detail, domain.ErrCollectionExists)
	case status == http.StatusTooManyRequests:
		return fmt.Errorf("qdrant: %w", domain.ErrRateLimited)
	case status == http.StatusBadRequest && strings.Contains(strings.ToLower(detail), "dimension"):
		return fmt.Errorf("qdrant: %s: %w", detail, domain.ErrDimensionMismatch)
	case status == http.StatusBadRequest:
		return fmt.Errorf("qdrant: %s: %w", detail, domain.ErrInvalidInput)
	default:
		return fmt.Errorf("qdrant (status %d): %s: %w", status, detail, domain.ErrVectorStore)
	}
}
