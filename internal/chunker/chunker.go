// Package chunker splits document text into bounded-size overlapping
// segments for embedding. It prefers cutting at strong separators
// (paragraph breaks) and falls back to weaker ones (line breaks,
// sentence punctuation) before resorting to a hard character cut.
package chunker

import (
	"github.com/google/uuid"

	"github.com/zioncloud/docqa/internal/core/domain"
)

// DefaultChunkSize is the default number of characters per chunk.
const DefaultChunkSize = 600

// DefaultOverlap is the default number of characters shared between
// consecutive chunks.
const DefaultOverlap = 100

// DefaultSeparators lists cut points in order of preference,
// strongest first.
var DefaultSeparators = []string{"\n\n", "\n", ".", ","}

// Splitter splits text into overlapping chunks.
type Splitter struct {
	chunkSize  int
	overlap    int
	separators []string
}

// Option configures the splitter.
type Option func(*Splitter)

// WithChunkSize sets the target chunk size in characters.
func WithChunkSize(size int) Option {
	return func(s *Splitter) {
		if size > 0 {
			s.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap between consecutive chunks in characters.
func WithOverlap(overlap int) Option {
	return func(s *Splitter) {
		if overlap >= 0 {
			s.overlap = overlap
		}
	}
}

// WithSeparators sets the preferred cut separators, strongest first.
func WithSeparators(seps []string) Option {
	return func(s *Splitter) {
		if len(seps) > 0 {
			s.separators = seps
		}
	}
}

// New creates a splitter with the given options.
func New(opts ...Option) *Splitter {
	s := &Splitter{
		chunkSize:  DefaultChunkSize,
		overlap:    DefaultOverlap,
		separators: DefaultSeparators,
	}

	for _, opt := range opts {
		opt(s)
	}

	// Ensure overlap doesn't exceed chunk size
	if s.overlap >= s.chunkSize {
		s.overlap = s.chunkSize / 4
	}

	return s
}

// Split returns the overlapping segments covering text in order.
// Every input character appears in at least one segment, each segment
// is at most the chunk size, and consecutive segments share exactly
// the configured overlap. Empty input yields no segments.
//
// All offsets are measured in runes, never bytes, so hard cuts on
// multi-byte text always land on character boundaries and every
// segment is valid UTF-8.
func (s *Splitter) Split(text string) []string {
	if text == "" {
		return nil
	}
	runes := []rune(text)

	estimated := (len(runes) / (s.chunkSize - s.overlap)) + 1
	chunks := make([]string, 0, estimated)

	start := 0
	for start < len(runes) {
		end := start + s.chunkSize
		if end >= len(runes) {
			chunks = append(chunks, string(runes[start:]))
			break
		}

		// Prefer a separator boundary inside the window over a hard cut
		if cut, ok := s.cut(runes, start, end); ok {
			end = cut
		}

		chunks = append(chunks, string(runes[start:end]))

		next := end - s.overlap
		if next <= start {
			// Degenerate window, move on without overlap
			next = end
		}
		start = next
	}

	return chunks
}

// cut finds the best separator boundary within (start, end].
// Separators are tried strongest first and the cut lands just after the
// last occurrence, so the separator stays with the leading chunk.
// A cut is rejected when the resulting chunk would not extend past the
// overlap region, which would stall the scan.
func (s *Splitter) cut(runes []rune, start, end int) (int, bool) {
	window := runes[start:end]
	for _, sep := range s.separators {
		if sep == "" {
			continue
		}
		sepRunes := []rune(sep)
		idx := lastIndexRunes(window, sepRunes)
		if idx <= 0 {
			continue
		}
		cut := start + idx + len(sepRunes)
		if cut-start <= s.overlap {
			continue
		}
		return cut, true
	}
	return 0, false
}

// lastIndexRunes returns the rune index of the last occurrence of sep
// in window, or -1.
func lastIndexRunes(window, sep []rune) int {
	for i := len(window) - len(sep); i >= 0; i-- {
		match := true
		for j := range sep {
			if window[i+j] != sep[j] {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}

// Chunk splits a document into domain chunks carrying inherited
// source metadata. Positions are sequential from zero.
func (s *Splitter) Chunk(doc *domain.Document) []domain.Chunk {
	segments := s.Split(doc.Content)
	if len(segments) == 0 {
		return nil
	}

	chunks := make([]domain.Chunk, len(segments))
	for i, seg := range segments {
		chunks[i] = domain.Chunk{
			ID:         uuid.New().String(),
			DocumentID: doc.ID,
			Content:    seg,
			Position:   i,
			Source:     doc.Source,
			Directory:  doc.Directory,
			Metadata:   map[string]any{},
		}
		if !doc.CreatedAt.IsZero() {
			chunks[i].Metadata[domain.PayloadCreated] = doc.CreatedAt.Format("2006-01-02")
		}
	}
	return chunks
}

// ChunkSize returns the configured chunk size.
func (s *Splitter) ChunkSize() int {
	return s.chunkSize
}

// Overlap returns the configured overlap.
func (s *Splitter) Overlap() int {
	return s.overlap
}
