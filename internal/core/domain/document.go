package domain

import "time"

// Document represents a loaded source text before chunking.
// It is immutable once created by a loader.
type Document struct {
	// ID is the unique identifier for the document.
	ID string

	// Source is the original location (file path or URL).
	Source string

	// Directory is the directory or site the document was loaded from.
	Directory string

	// Content is the full raw text content.
	Content string

	// Metadata contains arbitrary key-value pairs.
	Metadata map[string]any

	// CreatedAt is when the document was loaded.
	CreatedAt time.Time
}

// Chunk is a bounded-size text segment derived from a Document.
// Consecutive chunks from the same document overlap by a configured
// number of characters so context is not lost at cut points.
type Chunk struct {
	// ID is the unique identifier for the chunk.
	ID string

	// DocumentID links to the parent Document.
	DocumentID string

	// Content is the text content of this chunk.
	Content string

	// Position is the ordinal position within the document.
	Position int

	// Source is inherited from the parent document.
	Source string

	// Directory is inherited from the parent document.
	Directory string

	// Embedding is the vector representation, set during ingestion.
	Embedding []float32

	// Metadata contains chunk-specific key-value pairs.
	Metadata map[string]any
}

// Point is the persisted unit in a vector store collection:
// an identifier, a fixed-dimension vector and a payload.
// Re-upserting the same ID overwrites the stored point.
type Point struct {
	// ID is unique within a collection.
	ID string

	// Vector is the dense embedding. Its length must match the
	// collection dimension.
	Vector []float32

	// Payload carries at minimum the chunk text and source.
	Payload map[string]any
}

// Payload keys used throughout the ingestion and retrieval pipelines.
const (
	PayloadText      = "text"
	PayloadSource    = "source"
	PayloadDirectory = "directory"
	PayloadCreated   = "created_date"
)
