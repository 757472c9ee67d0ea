package qdrant

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zioncloud/docqa/internal/core/domain"
)

func testStore(t *testing.T, handler http.HandlerFunc) *Store {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	s, err := NewStore(Config{URL: server.URL, APIKey: "qd-test"})
	require.NoError(t, err)
	return s
}

func qdrantError(w http.ResponseWriter, status int, msg string) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{
		"status": map[string]any{"error": msg},
	})
}

func TestNewStore(t *testing.T) {
	t.Run("requires url", func(t *testing.T) {
		_, err := NewStore(Config{})
		assert.Error(t, err)
	})

	t.Run("trailing slash trimmed", func(t *testing.T) {
		s, err := NewStore(Config{URL: "http://localhost:6333/"})
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:6333", s.url)
	})
}

func TestStore_CreateCollection(t *testing.T) {
	ctx := context.Background()

	t.Run("sends cosine vector config", func(t *testing.T) {
		s := testStore(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPut, r.Method)
			assert.Equal(t, "/collections/docs", r.URL.Path)
			assert.Equal(t, "qd-test", r.Header.Get("api-key"))

			var body map[string]map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, float64(1536), body["vectors"]["size"])
			assert.Equal(t, "Cosine", body["vectors"]["distance"])

			w.WriteHeader(http.StatusOK)
		})

		assert.NoError(t, s.CreateCollection(ctx, "docs", 1536))
	})

	t.Run("conflict maps to exists error", func(t *testing.T) {
		s := testStore(t, func(w http.ResponseWriter, _ *http.Request) {
			qdrantError(w, http.StatusConflict, "collection `docs` already exists")
		})

		err := s.CreateCollection(ctx, "docs", 1536)
		assert.ErrorIs(t, err, domain.ErrCollectionExists)
	})

	t.Run("invalid dimension rejected locally", func(t *testing.T) {
		s, err := NewStore(Config{URL: "http://localhost:6333"})
		require.NoError(t, err)
		assert.ErrorIs(t, s.CreateCollection(ctx, "docs", 0), domain.ErrInvalidInput)
	})
}

func TestStore_DeleteCollection(t *testing.T) {
	ctx := context.Background()

	t.Run("ok", func(t *testing.T) {
		s := testStore(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodDelete, r.Method)
			assert.Equal(t, "/collections/docs", r.URL.Path)
			w.WriteHeader(http.StatusOK)
		})
		assert.NoError(t, s.DeleteCollection(ctx, "docs"))
	})

	t.Run("missing maps to not found", func(t *testing.T) {
		s := testStore(t, func(w http.ResponseWriter, _ *http.Request) {
			qdrantError(w, http.StatusNotFound, "collection `missing` doesn't exist")
		})
		assert.ErrorIs(t, s.DeleteCollection(ctx, "missing"), domain.ErrCollectionNotFound)
	})
}

func TestStore_Upsert(t *testing.T) {
	ctx := context.Background()

	t.Run("sends points with wait", func(t *testing.T) {
		s := testStore(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPut, r.Method)
			assert.Equal(t, "/collections/docs/points", r.URL.Path)
			assert.Equal(t, "true", r.URL.Query().Get("wait"))

			var body struct {
				Points []struct {
					ID      string         `json:"id"`
					Vector  []float32      `json:"vector"`
					Payload map[string]any `json:"payload"`
				} `json:"points"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			require.Len(t, body.Points, 1)
			assert.Equal(t, "p1", body.Points[0].ID)
			assert.Equal(t, "chunk text", body.Points[0].Payload["text"])

			w.WriteHeader(http.StatusOK)
		})

		err := s.Upsert(ctx, "docs", []domain.Point{{
			ID:     "p1",
			Vector: []float32{1, 0},
			Payload: map[string]any{
				domain.PayloadText:   "chunk text",
				domain.PayloadSource: "a.txt",
			},
		}})
		assert.NoError(t, err)
	})

	t.Run("empty batch is a no-op", func(t *testing.T) {
		s, err := NewStore(Config{URL: "http://invalid"})
		require.NoError(t, err)
		assert.NoError(t, s.Upsert(ctx, "docs", nil))
	})

	t.Run("dimension error maps to mismatch", func(t *testing.T) {
		s := testStore(t, func(w http.ResponseWriter, _ *http.Request) {
			qdrantError(w, http.StatusBadRequest, "Wrong input: Vector dimension error: expected dim: 1536, got 3")
		})

		err := s.Upsert(ctx, "docs", []domain.Point{{ID: "p1", Vector: []float32{1, 0, 0}}})
		assert.ErrorIs(t, err, domain.ErrDimensionMismatch)
	})

	t.Run("missing collection", func(t *testing.T) {
		s := testStore(t, func(w http.ResponseWriter, _ *http.Request) {
			qdrantError(w, http.StatusNotFound, "collection `docs` doesn't exist")
		})

		err := s.Upsert(ctx, "docs", []domain.Point{{ID: "p1", Vector: []float32{1}}})
		assert.ErrorIs(t, err, domain.ErrCollectionNotFound)
	})
}

func TestStore_Query(t *testing.T) {
	ctx := context.Background()

	t.Run("maps scored points", func(t *testing.T) {
		s := testStore(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/collections/docs/points/search", r.URL.Path)

			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, float64(3), body["limit"])
			assert.Equal(t, true, body["with_payload"])

			json.NewEncoder(w).Encode(map[string]any{
				"result": []map[string]any{
					{
						"id":    "p1",
						"score": 0.93,
						"payload": map[string]any{
							"text":      "first chunk",
							"source":    "sotu.txt",
							"directory": "/data",
						},
					},
					{
						"id":      42,
						"score":   0.71,
						"payload": map[string]any{"text": "second chunk", "source": "sotu.txt"},
					},
				},
			})
		})

		results, err := s.Query(ctx, "docs", []float32{1, 0}, 3)
		require.NoError(t, err)
		require.Len(t, results, 2)

		assert.Equal(t, "p1", results[0].ID)
		assert.InDelta(t, 0.93, results[0].Score, 1e-9)
		assert.Equal(t, "first chunk", results[0].Text)
		assert.Equal(t, "sotu.txt", results[0].Source)
		assert.Equal(t, "/data", results[0].Directory)

		// Numeric ids are stringified.
		assert.Equal(t, "42", results[1].ID)
	})

	t.Run("empty result", func(t *testing.T) {
		s := testStore(t, func(w http.ResponseWriter, _ *http.Request) {
			json.NewEncoder(w).Encode(map[string]any{"result": []any{}})
		})

		results, err := s.Query(ctx, "docs", []float32{1, 0}, 5)
		require.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("missing collection", func(t *testing.T) {
		s := testStore(t, func(w http.ResponseWriter, _ *http.Request) {
			qdrantError(w, http.StatusNotFound, "collection `missing` doesn't exist")
		})

		_, err := s.Query(ctx, "missing", []float32{1, 0}, 5)
		assert.ErrorIs(t, err, domain.ErrCollectionNotFound)
	})

	t.Run("server failure is transient", func(t *testing.T) {
		s := testStore(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})

		_, err := s.Query(ctx, "docs", []float32{1, 0}, 5)
		assert.ErrorIs(t, err, domain.ErrVectorStore)
		assert.True(t, domain.IsTransient(err))
	})
}
