package job

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"library-backend/internal/shared"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// InProcessRunner chạy reminder ngay trong api process. Dùng khi
// STORAGE_DRIVER=memory: worker không đọc được store của api nên không
// được phép xử lý reminder.
type InProcessRunner struct {
	handler *DueSoonReminderHandler
}

func NewInProcessRunner(handler *DueSoonReminderHandler) *InProcessRunner {
	return &InProcessRunner{handler: handler}
}

// EnqueueDueSoonReminder runs the reminder synchronously, evaluated at at.
func (r *InProcessRunner) EnqueueDueSoonReminder(ctx context.Context, at time.Time) (string, error) {
	payload, err := json.Marshal(shared.DueSoonReminderPayload{At: at.Format(time.RFC3339)})
	if err != nil {
		return "", fmt.Errorf("marshal reminder payload: %w", err)
	}

	if err := r.handler.ProcessTask(ctx, asynq.NewTask(shared.TypeDueSoonReminder, payload)); err != nil {
		return "", err
	}
	return "local-" + uuid.NewString(), nil
}
