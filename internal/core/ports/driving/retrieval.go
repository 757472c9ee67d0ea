package driving

import (
	"context"

	"github.com/zioncloud/docqa/internal/core/domain"
)

// RetrievalService finds the stored chunks most similar to a query.
type RetrievalService interface {
	// Search embeds the query and returns up to limit results ordered
	// by descending cosine score. An empty slice is a valid result.
	Search(ctx context.Context, query, collection string, limit int) ([]domain.SearchResult, error)
}
