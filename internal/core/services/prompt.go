package services

import (
	"fmt"
	"strings"

	"github.com/zioncloud/docqa/internal/core/domain"
)

// FallbackSentence is the fixed sentence the model must emit when the
// retrieved context cannot answer the question. The instruction to use
// it is part of the prompt contract, not optional.
const FallbackSentence = "I don't have enough information to answer this question."

// promptTemplate instructs the model to answer strictly from the given
// context. Arguments: fallback sentence, context, question.
const promptTemplate = `Use the following context to answer the question. If the answer cannot be found in the context, say "%s"

Context:
%s

Question: %s

Please provide a clear and concise answer based on the given context.`

// BuildPrompt renders the answer-synthesis prompt from a question and
// its retrieved context. It is a pure function so the prompt contract
// can be tested without an LLM.
func BuildPrompt(question, context string) string {
	return fmt.Sprintf(promptTemplate, FallbackSentence, context, question)
}

// BuildContext concatenates retrieved chunk texts in rank order,
// separated by newlines.
func BuildContext(results []domain.SearchResult) string {
	texts := make([]string, len(results))
	for i, r := range results {
		texts[i] = r.Text
	}
	return strings.Join(texts, "\n")
}

// DedupeSources collapses results to one entry per distinct source,
// keeping the best-scoring occurrence and the original order.
func DedupeSources(results []domain.SearchResult) []domain.SearchResult {
	seen := make(map[string]bool, len(results))
	deduped := make([]domain.SearchResult, 0, len(results))
	for _, r := range results {
		if seen[r.Source] {
			continue
		}
		seen[r.Source] = true
		deduped = append(deduped, r)
	}
	return deduped
}
