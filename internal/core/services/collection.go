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

// Ensure CollectionService implements the interface.
var _ driving.CollectionService = (*CollectionService)(nil)

// CollectionService manages vector store collections. New collections
// are sized to the configured embedding model so upserted vectors
// always match the collection dimension.
type CollectionService struct {
	store    driven.VectorStore
	embedder driven.EmbeddingService
}

// NewCollectionService creates a new collection service.
func NewCollectionService(store driven.VectorStore, embedder driven.EmbeddingService) *CollectionService {
	return &CollectionService{
		store:    store,
		embedder: embedder,
	}
}

// Create establishes an empty collection with the embedder's dimension
// and cosine distance. Returns domain.ErrCollectionExists if taken.
func (s *CollectionService) Create(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: empty collection name", domain.ErrInvalidInput)
	}

	dim := s.embedder.Dimensions()
	logger.Debug("Creating collection %q (dimension %d)", name, dim)

	if err := s.store.CreateCollection(ctx, name, dim); err != nil {
		return fmt.Errorf("create collection %q: %w", name, err)
	}
	return nil
}

// Delete removes the collection and all its points irreversibly.
// Returns domain.ErrCollectionNotFound if absent.
func (s *CollectionService) Delete(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: empty collection name", domain.ErrInvalidInput)
	}

	logger.Debug("Deleting collection %q", name)

	if err := s.store.DeleteCollection(ctx, name); err != nil {
		return fmt.Errorf("delete collection %q: %w", name, err)
	}
	return nil
}
