package push

import (
	"context"
	"time"

	loanJob "library-backend/internal/domains/loan/job"

	"github.com/rs/zerolog/log"
)

// ================================================
// LOG NOTIFIER (development / demo delivery)
// ================================================

// LogNotifier writes each due-soon reminder as a structured log line.
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

// SendReminder implements loan job.Notifier
func (n *LogNotifier) SendReminder(ctx context.Context, r loanJob.Reminder) error {
	when := "tomorrow"
	if r.DueToday {
		when = "today"
	}

	log.Info().
		Str("loan_id", r.LoanID).
		Str("borrower_id", r.BorrowerID).
		Str("borrower_name", r.BorrowerName).
		Str("book_title", r.BookTitle).
		Str("due", when).
		Str("due_date", r.DueDate.Format(time.DateOnly)).
		Msg("[Reminder] book due soon")
	return nil
}
