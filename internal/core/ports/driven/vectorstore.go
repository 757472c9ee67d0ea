package driven

import (
	"context"

	"github.com/zioncloud/docqa/internal/core/domain"
)

// VectorStore provides collection lifecycle and point operations against
// a vector index. All durable state lives behind this port; the pipeline
// itself is stateless between calls.
//
// Upsert semantics are atomic per batch: either every point in the call
// is written or none is. Query results are ordered best-first for the
// collection's cosine metric.
type VectorStore interface {
	// CreateCollection establishes an empty collection with the given
	// vector dimension and cosine distance. It is not idempotent and
	// returns domain.ErrCollectionExists if the name is taken.
	CreateCollection(ctx context.Context, name string, dimension int) error

	// DeleteCollection removes the collection and all its points.
	// Returns domain.ErrCollectionNotFound if absent.
	DeleteCollection(ctx context.Context, name string) error

	// Upsert inserts or overwrites points by identifier.
	// Returns domain.ErrCollectionNotFound if the collection is absent
	// and domain.ErrDimensionMismatch if any vector length differs from
	// the collection dimension.
	Upsert(ctx context.Context, collection string, points []domain.Point) error

	// Query returns the limit nearest points by cosine similarity,
	// descending score. An empty result is valid, not an error.
	Query(ctx context.Context, collection string, vector []float32, limit int) ([]domain.SearchResult, error)

	// Close releases resources.
	Close() error
}
