package driving

import "context"

// CollectionService manages vector store collection lifecycle.
type CollectionService interface {
	// Create establishes a new collection sized for the configured
	// embedding model. Returns domain.ErrCollectionExists if taken.
	Create(ctx context.Context, name string) error

	// Delete removes a collection and all its points irreversibly.
	// Returns domain.ErrCollectionNotFound if absent.
	Delete(ctx context.Context, name string) error
}
