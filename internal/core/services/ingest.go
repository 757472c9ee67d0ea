package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/zioncloud/docqa/internal/chunker"
	"github.com/zioncloud/docqa/internal/core/domain"
	"github.com/zioncloud/docqa/internal/core/ports/driven"
	"github.com/zioncloud/docqa/internal/core/ports/driving"
	"github.com/zioncloud/docqa/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// IngestService runs the ingestion pipeline: chunk the document, embed
// every chunk in one batch call and upsert one point per chunk.
//
// Point identifiers are UUIDv5 digests of (source, chunk position), so
// re-ingesting a source overwrites its own stale points and can never
// collide with points from a different source.
type IngestService struct {
	splitter   *chunker.Splitter
	embedder   driven.EmbeddingService
	store      driven.VectorStore
	fileLoader driven.Loader
	urlLoader  driven.Loader
}

// NewIngestService creates a new ingestion service.
// The file and URL loaders are optional; Ingest works without them.
func NewIngestService(
	splitter *chunker.Splitter,
	embedder driven.EmbeddingService,
	store driven.VectorStore,
	fileLoader driven.Loader,
	urlLoader driven.Loader,
) *IngestService {
	return &IngestService{
		splitter:   splitter,
		embedder:   embedder,
		store:      store,
		fileLoader: fileLoader,
		urlLoader:  urlLoader,
	}
}

// Ingest chunks, embeds and upserts the document into the named
// collection, returning the number of points written. The collection
// must already exist; adapter failures propagate unwrapped in kind.
//
// The batch upsert is atomic: a failure mid-pipeline writes nothing,
// but a retried ingestion after a transient failure may legitimately
// re-write points it already wrote (same ids, same vectors).
func (s *IngestService) Ingest(ctx context.Context, doc *domain.Document, collection string) (int, error) {
	logger.Section("Ingestion")
	logger.Debug("Document %q (%d chars) into collection %q", doc.Source, len(doc.Content), collection)

	chunks := s.splitter.Chunk(doc)
	if len(chunks) == 0 {
		logger.Debug("Empty document, nothing to ingest")
		return 0, nil
	}
	logger.Debug("Split into %d chunks", len(chunks))

	texts := make([]string, len(chunks))
	for i := range chunks {
		texts[i] = chunks[i].Content
	}

	var vectors [][]float32
	err := withRetry(ctx, "embed batch", func() error {
		var embedErr error
		vectors, embedErr = s.embedder.EmbedBatch(ctx, texts)
		return embedErr
	})
	if err != nil {
		return 0, fmt.Errorf("embed chunks: %w", err)
	}
	if len(vectors) != len(chunks) {
		return 0, fmt.Errorf("%w: embedder returned %d vectors for %d chunks",
			domain.ErrEmbeddingProvider, len(vectors), len(chunks))
	}

	points := make([]domain.Point, len(chunks))
	for i := range chunks {
		chunks[i].Embedding = vectors[i]
		points[i] = domain.Point{
			ID:     pointID(chunks[i].Directory, chunks[i].Source, chunks[i].Position),
			Vector: vectors[i],
			Payload: map[string]any{
				domain.PayloadText:      chunks[i].Content,
				domain.PayloadSource:    chunks[i].Source,
				domain.PayloadDirectory: chunks[i].Directory,
			},
		}
		for k, v := range chunks[i].Metadata {
			points[i].Payload[k] = v
		}
	}

	err = withRetry(ctx, "upsert points", func() error {
		return s.store.Upsert(ctx, collection, points)
	})
	if err != nil {
		return 0, fmt.Errorf("upsert points: %w", err)
	}

	logger.Info("Ingested %d points into %q", len(points), collection)
	return len(points), nil
}

// IngestFile loads a text file and ingests it.
func (s *IngestService) IngestFile(ctx context.Context, path, collection string) (int, error) {
	doc, err := s.fileLoader.Load(ctx, path)
	if err != nil {
		return 0, fmt.Errorf("load file %q: %w", path, err)
	}
	return s.Ingest(ctx, doc, collection)
}

// IngestURL fetches a web page and ingests its text.
func (s *IngestService) IngestURL(ctx context.Context, url, collection string) (int, error) {
	doc, err := s.urlLoader.Load(ctx, url)
	if err != nil {
		return 0, fmt.Errorf("load url %q: %w", url, err)
	}
	return s.Ingest(ctx, doc, collection)
}

// pointID derives a stable identifier from the chunk's full origin and
// position. Deterministic ids make repeated ingestion of the same
// source an overwrite rather than an accumulation of duplicates; the
// directory is part of the identity so same-named files from different
// directories keep disjoint points.
func pointID(directory, source string, position int) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, fmt.Appendf(nil, "%s/%s#%d", directory, source, position)).String()
}
