// Package csvfile records answer feedback by appending rows to a CSV
// file, one row per submission.
package csvfile

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/zioncloud/docqa/internal/core/domain"
	"github.com/zioncloud/docqa/internal/core/ports/driven"
)

// Ensure Sink implements the interface.
var _ driven.FeedbackSink = (*Sink)(nil)

// header is written once when the file is first created.
var header = []string{"timestamp", "collection", "question", "answer", "verdict", "comment"}

// Sink appends feedback rows to a CSV file.
type Sink struct {
	mu   sync.Mutex
	path string
}

// NewSink creates a sink writing to path, creating parent directories
// as needed.
func NewSink(path string) (*Sink, error) {
	if path == "" {
		return nil, fmt.Errorf("csvfile: path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create feedback directory: %w", err)
	}
	return &Sink{path: path}, nil
}

// Record appends one feedback row. The file is opened per call so
// external rotation or truncation is picked up transparently.
func (s *Sink) Record(fb domain.Feedback) error {
	if fb.Question == "" {
		return fmt.Errorf("%w: feedback question is empty", domain.ErrInvalidInput)
	}
	if fb.Verdict != domain.VerdictPositive && fb.Verdict != domain.VerdictNegative {
		return fmt.Errorf("%w: unknown verdict %q", domain.ErrInvalidInput, fb.Verdict)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	writeHeader := false
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		writeHeader = true
	}

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open feedback file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if writeHeader {
		if err := w.Write(header); err != nil {
			return fmt.Errorf("write feedback header: %w", err)
		}
	}

	ts := fb.CreatedAt
	if ts.IsZero() {
		ts = time.Now().UTC()
	}
	row := []string{
		ts.Format(time.RFC3339),
		fb.Collection,
		fb.Question,
		fb.Answer,
		fb.Verdict,
		fb.Comment,
	}
	if err := w.Write(row); err != nil {
		return fmt.Errorf("write feedback row: %w", err)
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush feedback: %w", err)
	}
	return nil
}

// Path returns the file the sink writes to.
func (s *Sink) Path() string {
	return s.path
}
