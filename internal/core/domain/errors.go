package domain

import "errors"

// Domain errors represent business logic failures.
// Adapters wrap these sentinels so callers can branch with errors.Is
// without depending on provider-specific error types.
var (
	// ErrInvalidInput indicates malformed or invalid input, such as an
	// unreadable document or a bad request body. Fatal, never retried.
	ErrInvalidInput = errors.New("invalid input")

	// ErrCollectionNotFound indicates the named collection does not exist.
	// Caller logic error - surfaced verbatim, not retried.
	ErrCollectionNotFound = errors.New("collection not found")

	// ErrCollectionExists indicates the collection already exists.
	// Collection creation is deliberately not idempotent.
	ErrCollectionExists = errors.New("collection already exists")

	// ErrDimensionMismatch indicates a vector length does not match the
	// collection dimension. Configuration error - must never be coerced.
	ErrDimensionMismatch = errors.New("vector dimension mismatch")

	// ErrEmbeddingProvider indicates an embedding provider failure.
	ErrEmbeddingProvider = errors.New("embedding provider error")

	// ErrLLMProvider indicates an LLM provider failure.
	ErrLLMProvider = errors.New("llm provider error")

	// ErrContentRejected indicates the LLM refused the request on
	// content-policy grounds. Surfaced to the user to rephrase.
	ErrContentRejected = errors.New("content rejected by provider")

	// ErrVectorStore indicates a vector store transport or availability
	// failure. Transient, retryable.
	ErrVectorStore = errors.New("vector store error")

	// ErrRateLimited indicates a provider rate limit was exceeded.
	// Transient, retryable with backoff.
	ErrRateLimited = errors.New("rate limited")
)

// IsTransient reports whether err is a transient failure worth retrying.
func IsTransient(err error) bool {
	return errors.Is(err, ErrRateLimited) || errors.Is(err, ErrVectorStore)
}
