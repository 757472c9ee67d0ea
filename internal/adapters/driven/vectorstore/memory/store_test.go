package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zioncloud/docqa/internal/core/domain"
)

func point(id string, vector []float32, text string) domain.Point {
	return domain.Point{
		ID:     id,
		Vector: vector,
		Payload: map[string]any{
			domain.PayloadText:   text,
			domain.PayloadSource: "test.txt",
		},
	}
}

func TestStore_CreateCollection(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	require.NoError(t, s.CreateCollection(ctx, "docs", 3))

	t.Run("duplicate fails", func(t *testing.T) {
		err := s.CreateCollection(ctx, "docs", 3)
		assert.ErrorIs(t, err, domain.ErrCollectionExists)
	})

	t.Run("invalid dimension", func(t *testing.T) {
		err := s.CreateCollection(ctx, "bad", 0)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestStore_DeleteCollection(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	t.Run("missing collection", func(t *testing.T) {
		err := s.DeleteCollection(ctx, "missing")
		assert.ErrorIs(t, err, domain.ErrCollectionNotFound)
	})

	t.Run("delete discards points", func(t *testing.T) {
		require.NoError(t, s.CreateCollection(ctx, "docs", 2))
		require.NoError(t, s.Upsert(ctx, "docs", []domain.Point{point("p1", []float32{1, 0}, "a")}))
		require.NoError(t, s.DeleteCollection(ctx, "docs"))

		_, err := s.Query(ctx, "docs", []float32{1, 0}, 1)
		assert.ErrorIs(t, err, domain.ErrCollectionNotFound)
	})
}

func TestStore_Upsert(t *testing.T) {
	ctx := context.Background()

	t.Run("missing collection", func(t *testing.T) {
		s := NewStore()
		err := s.Upsert(ctx, "missing", []domain.Point{point("p1", []float32{1}, "a")})
		assert.ErrorIs(t, err, domain.ErrCollectionNotFound)
	})

	t.Run("dimension mismatch writes nothing", func(t *testing.T) {
		s := NewStore()
		require.NoError(t, s.CreateCollection(ctx, "docs", 2))

		err := s.Upsert(ctx, "docs", []domain.Point{
			point("ok", []float32{1, 0}, "a"),
			point("bad", []float32{1, 0, 0}, "b"),
		})
		assert.ErrorIs(t, err, domain.ErrDimensionMismatch)

		results, err := s.Query(ctx, "docs", []float32{1, 0}, 10)
		require.NoError(t, err)
		assert.Empty(t, results, "failed batch must be atomic")
	})

	t.Run("overwrite by id is idempotent", func(t *testing.T) {
		s := NewStore()
		require.NoError(t, s.CreateCollection(ctx, "docs", 2))

		require.NoError(t, s.Upsert(ctx, "docs", []domain.Point{point("p1", []float32{1, 0}, "old")}))
		require.NoError(t, s.Upsert(ctx, "docs", []domain.Point{point("p1", []float32{0, 1}, "new")}))

		// Only the latest vector exists: a query along the old vector
		// still returns p1 but with the new, orthogonal embedding.
		results, err := s.Query(ctx, "docs", []float32{0, 1}, 10)
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "p1", results[0].ID)
		assert.Equal(t, "new", results[0].Text)
		assert.InDelta(t, 1.0, results[0].Score, 1e-6)
	})
}

func TestStore_Query(t *testing.T) {
	ctx := context.Background()

	t.Run("missing collection", func(t *testing.T) {
		s := NewStore()
		_, err := s.Query(ctx, "missing", []float32{1}, 5)
		assert.ErrorIs(t, err, domain.ErrCollectionNotFound)
	})

	t.Run("empty collection returns empty result", func(t *testing.T) {
		s := NewStore()
		require.NoError(t, s.CreateCollection(ctx, "docs", 2))

		results, err := s.Query(ctx, "docs", []float32{1, 0}, 5)
		require.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("round trip top-1 with maximum score", func(t *testing.T) {
		s := NewStore()
		require.NoError(t, s.CreateCollection(ctx, "docs", 3))
		require.NoError(t, s.Upsert(ctx, "docs", []domain.Point{
			point("p1", []float32{0.2, 0.5, 0.9}, "target"),
			point("p2", []float32{-0.9, 0.1, 0.0}, "other"),
		}))

		results, err := s.Query(ctx, "docs", []float32{0.2, 0.5, 0.9}, 1)
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "p1", results[0].ID)
		assert.InDelta(t, 1.0, results[0].Score, 1e-6)
	})

	t.Run("ordered best first", func(t *testing.T) {
		s := NewStore()
		require.NoError(t, s.CreateCollection(ctx, "docs", 2))
		require.NoError(t, s.Upsert(ctx, "docs", []domain.Point{
			point("far", []float32{0, 1}, "far"),
			point("near", []float32{1, 0.1}, "near"),
			point("exact", []float32{1, 0}, "exact"),
		}))

		results, err := s.Query(ctx, "docs", []float32{1, 0}, 3)
		require.NoError(t, err)
		require.Len(t, results, 3)
		assert.Equal(t, "exact", results[0].ID)
		assert.Equal(t, "near", results[1].ID)
		assert.Equal(t, "far", results[2].ID)
		assert.GreaterOrEqual(t, results[0].Score, results[1].Score)
		assert.GreaterOrEqual(t, results[1].Score, results[2].Score)
	})

	t.Run("limit above point count returns all", func(t *testing.T) {
		s := NewStore()
		require.NoError(t, s.CreateCollection(ctx, "docs", 2))
		require.NoError(t, s.Upsert(ctx, "docs", []domain.Point{
			point("p1", []float32{1, 0}, "a"),
			point("p2", []float32{0, 1}, "b"),
		}))

		results, err := s.Query(ctx, "docs", []float32{1, 0}, 50)
		require.NoError(t, err)
		assert.Len(t, results, 2)
	})

	t.Run("score ties break by insertion order", func(t *testing.T) {
		s := NewStore()
		require.NoError(t, s.CreateCollection(ctx, "docs", 2))
		// Identical vectors, identical scores against any query.
		require.NoError(t, s.Upsert(ctx, "docs", []domain.Point{
			point("first", []float32{1, 1}, "a"),
			point("second", []float32{1, 1}, "b"),
		}))

		results, err := s.Query(ctx, "docs", []float32{1, 1}, 2)
		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.Equal(t, "first", results[0].ID)
		assert.Equal(t, "second", results[1].ID)
	})

	t.Run("query dimension mismatch", func(t *testing.T) {
		s := NewStore()
		require.NoError(t, s.CreateCollection(ctx, "docs", 2))
		_, err := s.Query(ctx, "docs", []float32{1, 0, 0}, 5)
		assert.ErrorIs(t, err, domain.ErrDimensionMismatch)
	})
}

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name     string
		a, b     []float32
		expected float64
	}{
		{"identical", []float32{1, 2, 3}, []float32{1, 2, 3}, 1.0},
		{"opposite", []float32{1, 0}, []float32{-1, 0}, -1.0},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0.0},
		{"zero vector", []float32{0, 0}, []float32{1, 0}, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, cosineSimilarity(tt.a, tt.b), 1e-9)
		})
	}
}
