// Package memory provides an in-memory vector store with exact cosine
// similarity search. It backs tests and offline experimentation with
// the same contract as the Qdrant adapter.
package memory

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/zioncloud/docqa/internal/core/domain"
	"github.com/zioncloud/docqa/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.VectorStore = (*Store)(nil)

// storedPoint keeps the insertion sequence alongside the point so ties
// in similarity score break deterministically by insertion order.
type storedPoint struct {
	point domain.Point
	seq   int
}

type collection struct {
	dimension int
	points    map[string]*storedPoint
	nextSeq   int
}

// Store is an in-memory implementation of driven.VectorStore.
// Upserts are atomic per batch: the whole batch is validated before any
// point is written.
type Store struct {
	mu          sync.RWMutex
	collections map[string]*collection
}

// NewStore creates a new in-memory vector store.
func NewStore() *Store {
	return &Store{
		collections: make(map[string]*collection),
	}
}

// CreateCollection establishes an empty collection.
// It is not idempotent: an existing name returns domain.ErrCollectionExists.
func (s *Store) CreateCollection(_ context.Context, name string, dimension int) error {
	if dimension <= 0 {
		return fmt.Errorf("%w: dimension %d", domain.ErrInvalidInput, dimension)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.collections[name]; ok {
		return fmt.Errorf("%q: %w", name, domain.ErrCollectionExists)
	}
	s.collections[name] = &collection{
		dimension: dimension,
		points:    make(map[string]*storedPoint),
	}
	return nil
}

// DeleteCollection removes the collection and all its points.
func (s *Store) DeleteCollection(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.collections[name]; !ok {
		return fmt.Errorf("%q: %w", name, domain.ErrCollectionNotFound)
	}
	delete(s.collections, name)
	return nil
}

// Upsert inserts or overwrites points by identifier. The batch is
// validated first so a dimension mismatch writes nothing.
// An overwritten point keeps its original insertion sequence.
func (s *Store) Upsert(_ context.Context, name string, points []domain.Point) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	coll, ok := s.collections[name]
	if !ok {
		return fmt.Errorf("%q: %w", name, domain.ErrCollectionNotFound)
	}

	for _, p := range points {
		if len(p.Vector) != coll.dimension {
			return fmt.Errorf("point %q has dimension %d, collection has %d: %w",
				p.ID, len(p.Vector), coll.dimension, domain.ErrDimensionMismatch)
		}
	}

	for _, p := range points {
		if existing, ok := coll.points[p.ID]; ok {
			existing.point = p
			continue
		}
		coll.points[p.ID] = &storedPoint{point: p, seq: coll.nextSeq}
		coll.nextSeq++
	}
	return nil
}

// Query returns up to limit points by descending cosine similarity.
// Score ties break by insertion order (earlier first). Querying an
// empty collection returns an empty slice.
func (s *Store) Query(_ context.Context, name string, vector []float32, limit int) ([]domain.SearchResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	coll, ok := s.collections[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, domain.ErrCollectionNotFound)
	}
	if len(vector) != coll.dimension {
		return nil, fmt.Errorf("query vector has dimension %d, collection has %d: %w",
			len(vector), coll.dimension, domain.ErrDimensionMismatch)
	}

	type scored struct {
		sp    *storedPoint
		score float64
	}
	candidates := make([]scored, 0, len(coll.points))
	for _, sp := range coll.points {
		candidates = append(candidates, scored{sp: sp, score: cosineSimilarity(vector, sp.point.Vector)})
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].sp.seq < candidates[j].sp.seq
	})

	if limit > 0 && limit < len(candidates) {
		candidates = candidates[:limit]
	}

	results := make([]domain.SearchResult, len(candidates))
	for i, c := range candidates {
		results[i] = domain.SearchResult{
			ID:    c.sp.point.ID,
			Score: c.score,
		}
		if text, ok := c.sp.point.Payload[domain.PayloadText].(string); ok {
			results[i].Text = text
		}
		if source, ok := c.sp.point.Payload[domain.PayloadSource].(string); ok {
			results[i].Source = source
		}
		if dir, ok := c.sp.point.Payload[domain.PayloadDirectory].(string); ok {
			results[i].Directory = dir
		}
	}
	return results, nil
}

// Close releases resources.
func (s *Store) Close() error {
	return nil
}

// cosineSimilarity computes the cosine of the angle between a and b.
// Zero vectors score zero.
func cosineSimilarity(a, b []float32) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
