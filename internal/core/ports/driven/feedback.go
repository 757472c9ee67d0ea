package driven

import "github.com/zioncloud/docqa/internal/core/domain"

// FeedbackSink records user feedback on answers.
type FeedbackSink interface {
	// Record appends one feedback entry.
	Record(fb domain.Feedback) error
}
