package job

import (
	"context"
	"fmt"
	"time"

	"library-backend/internal/domains/loan/model"
	"library-backend/internal/domains/loan/service"
	"library-backend/internal/shared"
	"library-backend/internal/shared/utils"
	"library-backend/pkg/logger"

	"github.com/hibiken/asynq"
)

// Reminder là nội dung gửi cho người mượn có sách sắp đến hạn
type Reminder struct {
	LoanID       string
	BorrowerID   string
	BorrowerName string
	BookTitle    string
	DueDate      time.Time
	DueToday     bool
}

// Notifier delivers one reminder. Implementations must be safe to call
// repeatedly for the same loan (the job may retry).
type Notifier interface {
	SendReminder(ctx context.Context, r Reminder) error
}

// ================================================
// DUE SOON REMINDER JOB HANDLER
// ================================================

type DueSoonReminderHandler struct {
	loanService service.ServiceInterface
	notifier    Notifier
	now         shared.Clock
}

func NewDueSoonReminderHandler(
	loanService service.ServiceInterface,
	notifier Notifier,
	clock shared.Clock,
) *DueSoonReminderHandler {
	return &DueSoonReminderHandler{
		loanService: loanService,
		notifier:    notifier,
		now:         clock,
	}
}

func (h *DueSoonReminderHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload shared.DueSoonReminderPayload
	if err := utils.UnmarshalTask(t, &payload); err != nil {
		return fmt.Errorf("unmarshal payload: %w: %w", err, asynq.SkipRetry)
	}

	now := h.now()
	if payload.At != "" {
		at, err := time.Parse(time.RFC3339, payload.At)
		if err != nil {
			return fmt.Errorf("invalid reminder time %q: %w", payload.At, asynq.SkipRetry)
		}
		now = at.In(now.Location())
	}

	logger.Info("Starting DueSoonReminder job", map[string]interface{}{
		"now": now.Format(time.RFC3339),
	})

	loans, err := h.loanService.DueSoon(ctx, now)
	if err != nil {
		return fmt.Errorf("load loans due soon: %w", err)
	}

	sent := 0
	for _, loan := range loans {
		if err := h.notifier.SendReminder(ctx, toReminder(loan)); err != nil {
			return fmt.Errorf("send reminder for loan %s: %w", loan.ID, err)
		}
		sent++
	}

	logger.Info("Completed DueSoonReminder job", map[string]interface{}{
		"sent_count": sent,
	})
	return nil
}

func toReminder(v model.LoanView) Reminder {
	return Reminder{
		LoanID:       v.ID,
		BorrowerID:   v.BorrowerID,
		BorrowerName: v.BorrowerName,
		BookTitle:    v.Book.Title,
		DueDate:      v.DueDate,
		DueToday:     v.IsDueToday,
	}
}
