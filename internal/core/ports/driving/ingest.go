package driving

import (
	"context"

	"github.com/zioncloud/docqa/internal/core/domain"
)

// IngestService orchestrates chunking, embedding and upload of documents
// into a named collection. The collection must already exist; ingestion
// never creates one implicitly.
type IngestService interface {
	// Ingest chunks the document, embeds each chunk and upserts one
	// point per chunk. Returns the number of points written.
	Ingest(ctx context.Context, doc *domain.Document, collection string) (int, error)

	// IngestFile loads a text file and ingests it.
	IngestFile(ctx context.Context, path, collection string) (int, error)

	// IngestURL fetches a web page, strips it to text and ingests it.
	IngestURL(ctx context.Context, url, collection string) (int, error)
}
