package services

import (
	"context"
	"fmt"

	"github.com/zioncloud/docqa/internal/core/domain"
	"github.com/zioncloud/docqa/internal/core/ports/driven"
)

// fakeEmbedder produces deterministic 3-dimensional vectors from text
// so similarity behaves consistently across a test run.
type fakeEmbedder struct {
	calls     int
	batchErr  error
	embedErr  error
	transient int // fail this many calls with batchErr/embedErr before succeeding
}

var _ driven.EmbeddingService = (*fakeEmbedder)(nil)

func embedText(text string) []float32 {
	var a, b float32
	for i := 0; i < len(text); i++ {
		a += float32(text[i])
		b += float32(text[i]) * float32(i+1)
	}
	return []float32{a, b, float32(len(text) + 1)}
}

func (f *fakeEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	f.calls++
	if f.embedErr != nil && (f.transient == 0 || f.calls <= f.transient) {
		return nil, f.embedErr
	}
	return embedText(text), nil
}

func (f *fakeEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	f.calls++
	if f.batchErr != nil && (f.transient == 0 || f.calls <= f.transient) {
		return nil, f.batchErr
	}
	vectors := make([][]float32, len(texts))
	for i, t := range texts {
		vectors[i] = embedText(t)
	}
	return vectors, nil
}

func (f *fakeEmbedder) Dimensions() int            { return 3 }
func (f *fakeEmbedder) ModelName() string          { return "fake-embedder" }
func (f *fakeEmbedder) Ping(context.Context) error { return nil }
func (f *fakeEmbedder) Close() error               { return nil }

// fakeLLM records the last prompt and echoes a canned completion.
type fakeLLM struct {
	completion string
	err        error
	lastPrompt string
	lastOpts   driven.GenerateOptions
}

var _ driven.LLMService = (*fakeLLM)(nil)

func (f *fakeLLM) Generate(_ context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	f.lastPrompt = prompt
	f.lastOpts = opts
	if f.err != nil {
		return "", f.err
	}
	if f.completion == "" {
		return "canned answer", nil
	}
	return f.completion, nil
}

func (f *fakeLLM) ModelName() string          { return "fake-llm" }
func (f *fakeLLM) Ping(context.Context) error { return nil }
func (f *fakeLLM) Close() error               { return nil }

// fakeLoader returns a fixed document for any source.
type fakeLoader struct {
	doc *domain.Document
	err error
}

var _ driven.Loader = (*fakeLoader)(nil)

func (f *fakeLoader) Load(_ context.Context, source string) (*domain.Document, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.doc != nil {
		return f.doc, nil
	}
	return nil, fmt.Errorf("%w: no document", domain.ErrInvalidInput)
}

// fakeAnswerStore records saved answers in memory.
type fakeAnswerStore struct {
	saved   []domain.AnswerRecord
	saveErr error
}

var _ driven.AnswerStore = (*fakeAnswerStore)(nil)

func (f *fakeAnswerStore) SaveAnswer(_ context.Context, rec *domain.AnswerRecord) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, *rec)
	return nil
}

func (f *fakeAnswerStore) ListAnswers(_ context.Context, limit int) ([]domain.AnswerRecord, error) {
	if limit > 0 && limit < len(f.saved) {
		return f.saved[:limit], nil
	}
	return f.saved, nil
}

func (f *fakeAnswerStore) Close() error { return nil }
