package care

import "time"

// Feedback is the acknowledgement signal an interactive client plays when the
// user accepts a recommendation.
type Feedback string

const (
	FeedbackError     Feedback = "error"
	FeedbackWarning   Feedback = "warning"
	FeedbackSelection Feedback = "selection"
)

// FeedbackFor maps a severity to its acknowledgement signal.
func FeedbackFor(s Severity) Feedback {
	switch s {
	case SeverityUrgent:
		return FeedbackError
	case SeverityWarning:
		return FeedbackWarning
	default:
		return FeedbackSelection
	}
}

// ScheduleFunc is the onScheduleWatering callback.
type ScheduleFunc func(date time.Time) error

// Accept handles a user accepting rec. When rec carries a date, schedule is
// invoked with it. The returned feedback is keyed by severity either way.
func Accept(rec Recommendation, schedule ScheduleFunc) (Feedback, error) {
	fb := FeedbackFor(rec.Severity)
	if rec.Date == nil || schedule == nil {
		return fb, nil
	}
	return fb, schedule(*rec.Date)
}
