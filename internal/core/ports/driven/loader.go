package driven

import (
	"context"

	"github.com/zioncloud/docqa/internal/core/domain"
)

// Loader turns a source location (file path or URL) into a Document.
type Loader interface {
	// Load reads the source and returns its raw text with metadata.
	// Returns domain.ErrInvalidInput for unreadable sources.
	Load(ctx context.Context, source string) (*domain.Document, error)
}
