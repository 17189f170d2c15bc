package shared

import "time"

// Task types (asynq)
const (
	TypeDueSoonReminder = "loan:due_soon_reminder"
)

// Queues
const (
	QueueLoan    = "loan"
	QueueDefault = "default"
)

// Context keys set by middleware
const (
	ContextKeyRequestID = "request_id"
	ContextKeyStudentID = "studentID"
)

// DueSoonReminderPayload is the payload of TypeDueSoonReminder. An empty
// payload means "use the worker clock".
type DueSoonReminderPayload struct {
	At string `json:"at,omitempty"` // RFC3339, optional override
}

// Clock trả về thời điểm hiện tại theo timezone của thư viện
type Clock func() time.Time

// ClockIn returns a Clock reading the wall clock in loc.
func ClockIn(loc *time.Location) Clock {
	if loc == nil {
		loc = time.UTC
	}
	return func() time.Time { return time.Now().In(loc) }
}
