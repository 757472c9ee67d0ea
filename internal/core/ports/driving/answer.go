package driving

import (
	"context"

	"github.com/zioncloud/docqa/internal/core/domain"
)

// AnswerService synthesizes an answer to a question from retrieved
// context using an LLM.
type AnswerService interface {
	// Answer retrieves up to limit chunks, builds the answer prompt and
	// invokes the LLM. model overrides the default when non-empty.
	// The returned record carries the sources used for attribution.
	Answer(ctx context.Context, question, collection string, limit int, model string) (*domain.AnswerRecord, error)
}
