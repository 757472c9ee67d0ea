package domain

import "time"

// SearchResult represents a single similarity hit against a collection.
type SearchResult struct {
	// ID is the matched point identifier.
	ID string `json:"id"`

	// Score is the cosine similarity to the query (higher is better).
	Score float64 `json:"score"`

	// Text is the chunk text copied from the point payload.
	Text string `json:"text"`

	// Source is the originating file path or URL.
	Source string `json:"source"`

	// Directory is the originating directory or site.
	Directory string `json:"directory,omitempty"`
}

// AnswerRecord pairs a synthesized answer with the retrieved context
// that produced it, for source attribution.
type AnswerRecord struct {
	// ID is the unique identifier for the record.
	ID string `json:"id"`

	// Question is the user question as asked.
	Question string `json:"question"`

	// Answer is the LLM completion text.
	Answer string `json:"answer"`

	// Model is the LLM model that produced the answer.
	Model string `json:"model"`

	// Sources are the search results used as context, best first.
	Sources []SearchResult `json:"sources"`

	// CreatedAt is when the answer was generated.
	CreatedAt time.Time `json:"created_at"`
}

// Feedback verdict values.
const (
	VerdictPositive = "positive"
	VerdictNegative = "negative"
)

// Feedback is a user verdict on an answer, logged for review.
type Feedback struct {
	// Collection is the collection the answer was drawn from.
	Collection string `json:"collection,omitempty"`

	// Question is the question that was asked.
	Question string `json:"question"`

	// Answer is the answer being judged.
	Answer string `json:"answer,omitempty"`

	// Verdict is VerdictPositive or VerdictNegative.
	Verdict string `json:"verdict"`

	// Comment is optional free text.
	Comment string `json:"comment,omitempty"`

	// CreatedAt is when the feedback was submitted.
	CreatedAt time.Time `json:"created_at"`
}
