// Package textfile loads plain text documents from the local
// filesystem.
package textfile

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/zioncloud/docqa/internal/core/domain"
	"github.com/zioncloud/docqa/internal/core/ports/driven"
)

// Ensure Loader implements the interface.
var _ driven.Loader = (*Loader)(nil)

// MaxFileSize caps how much we read from a single file (32 MiB).
const MaxFileSize = 32 << 20

// Loader reads UTF-8 text files into documents.
type Loader struct{}

// New creates a new text file loader.
func New() *Loader {
	return &Loader{}
}

// Load reads the file at path and returns it as a document. The
// document's Source is the file's base name and Directory its absolute
// parent directory.
func (l *Loader) Load(ctx context.Context, path string) (*domain.Document, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: empty path", domain.ErrInvalidInput)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve path %q: %w", path, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("stat %q: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %q is a directory", domain.ErrInvalidInput, path)
	}
	if info.Size() > MaxFileSize {
		return nil, fmt.Errorf("%w: %q exceeds %d bytes", domain.ErrInvalidInput, path, MaxFileSize)
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", path, err)
	}
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("%w: %q is not valid UTF-8 text", domain.ErrInvalidInput, path)
	}

	return &domain.Document{
		ID:        uuid.New().String(),
		Source:    filepath.Base(abs),
		Directory: filepath.Dir(abs),
		Content:   string(data),
		CreatedAt: time.Now().UTC(),
		Metadata: map[string]any{
			"loader": "textfile",
		},
	}, nil
}
