package driven

import (
	"context"

	"github.com/zioncloud/docqa/internal/core/domain"
)

// AnswerStore persists generated answers for later review.
// This is an optional service - when nil, answers are not recorded.
type AnswerStore interface {
	// SaveAnswer stores one answer record.
	SaveAnswer(ctx context.Context, rec *domain.AnswerRecord) error

	// ListAnswers returns the most recent records, newest first.
	ListAnswers(ctx context.Context, limit int) ([]domain.AnswerRecord, error)

	// Close releases resources.
	Close() error
}
