package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/zioncloud/docqa/internal/core/domain"
	"github.com/zioncloud/docqa/internal/core/ports/driven"
	"github.com/zioncloud/docqa/internal/core/ports/driving"
	"github.com/zioncloud/docqa/internal/logger"
)

// Ensure AnswerService implements the interface.
var _ driving.AnswerService = (*AnswerService)(nil)

// AnswerTemperature is the fixed sampling temperature for answer
// synthesis, favouring consistency over creativity.
const AnswerTemperature = 0.5

// AnswerService synthesizes answers from retrieved context.
type AnswerService struct {
	retrieval driving.RetrievalService
	llm       driven.LLMService
	history   driven.AnswerStore
}

// NewAnswerService creates a new answer service.
// The history store is optional (can be nil).
func NewAnswerService(retrieval driving.RetrievalService, llm driven.LLMService, history driven.AnswerStore) *AnswerService {
	return &AnswerService{
		retrieval: retrieval,
		llm:       llm,
		history:   history,
	}
}

// Answer retrieves context for the question, builds the fixed prompt
// and invokes the LLM at the fixed temperature. Provider errors
// propagate; no local fallback answer is fabricated. The in-prompt
// fallback sentence is model-generated, not pipeline-generated.
func (s *AnswerService) Answer(ctx context.Context, question, collection string, limit int, model string) (*domain.AnswerRecord, error) {
	logger.Section("Answer Synthesis")

	question = strings.TrimSpace(question)
	if question == "" {
		return nil, fmt.Errorf("%w: empty question", domain.ErrInvalidInput)
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	results, err := s.retrieval.Search(ctx, question, collection, limit)
	if err != nil {
		return nil, fmt.Errorf("retrieve context: %w", err)
	}

	prompt := BuildPrompt(question, BuildContext(results))
	logger.Debug("Prompt: %d chars, %d context chunks", len(prompt), len(results))

	opts := driven.GenerateOptions{
		Model:       model,
		Temperature: AnswerTemperature,
	}

	var completion string
	err = withRetry(ctx, "llm generate", func() error {
		var genErr error
		completion, genErr = s.llm.Generate(ctx, prompt, opts)
		return genErr
	})
	if err != nil {
		return nil, fmt.Errorf("generate answer: %w", err)
	}

	usedModel := model
	if usedModel == "" {
		usedModel = s.llm.ModelName()
	}

	rec := &domain.AnswerRecord{
		ID:        uuid.New().String(),
		Question:  question,
		Answer:    completion,
		Model:     usedModel,
		Sources:   DedupeSources(results),
		CreatedAt: time.Now(),
	}

	if s.history != nil {
		if saveErr := s.history.SaveAnswer(ctx, rec); saveErr != nil {
			// History is best-effort; the answer itself already succeeded.
			logger.Warn("Failed to record answer: %v", saveErr)
		}
	}

	logger.Info("Answer generated with model %s (%d sources)", usedModel, len(results))
	return rec, nil
}
