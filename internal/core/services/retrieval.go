package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/zioncloud/docqa/internal/core/domain"
	"github.com/zioncloud/docqa/internal/core/ports/driven"
	"github.com/zioncloud/docqa/internal/core/ports/driving"
	"github.com/zioncloud/docqa/internal/logger"
)

// Ensure RetrievalService implements the interface.
var _ driving.RetrievalService = (*RetrievalService)(nil)

// DefaultSearchLimit is the number of results returned when the caller
// does not specify one.
const DefaultSearchLimit = 5

// RetrievalService runs the retrieval pipeline: embed the query, ask
// the vector store for the nearest points and map them to results.
type RetrievalService struct {
	embedder driven.EmbeddingService
	store    driven.VectorStore
}

// NewRetrievalService creates a new retrieval service.
func NewRetrievalService(embedder driven.EmbeddingService, store driven.VectorStore) *RetrievalService {
	return &RetrievalService{
		embedder: embedder,
		store:    store,
	}
}

// Search returns up to limit results ordered by descending cosine
// score. An empty query or an empty collection yields an empty slice,
// not an error.
func (s *RetrievalService) Search(ctx context.Context, query, collection string, limit int) ([]domain.SearchResult, error) {
	logger.Section("Retrieval")

	query = strings.TrimSpace(query)
	if query == "" {
		logger.Debug("Empty query, returning no results")
		return []domain.SearchResult{}, nil
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	logger.Debug("Query %q against %q (limit %d)", query, collection, limit)

	var vector []float32
	err := withRetry(ctx, "embed query", func() error {
		var embedErr error
		vector, embedErr = s.embedder.Embed(ctx, query)
		return embedErr
	})
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	logger.Debug("Query embedding: %d dimensions", len(vector))

	var results []domain.SearchResult
	err = withRetry(ctx, "vector query", func() error {
		var queryErr error
		results, queryErr = s.store.Query(ctx, collection, vector, limit)
		return queryErr
	})
	if err != nil {
		return nil, fmt.Errorf("query collection %q: %w", collection, err)
	}

	logger.Info("Retrieved %d results", len(results))
	return results, nil
}
