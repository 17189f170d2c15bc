package queue

import (
	"context"
	"fmt"
	"time"

	"library-backend/internal/shared"

	"github.com/hibiken/asynq"
	jsoniter "github.com/json-iterator/go"
)

// ReminderEnqueuer đẩy task nhắc hạn trả sách vào queue "loan"
type ReminderEnqueuer struct {
	client *asynq.Client
}

func NewReminderEnqueuer(client *asynq.Client) *ReminderEnqueuer {
	return &ReminderEnqueuer{client: client}
}

// EnqueueDueSoonReminder schedules an immediate reminder run evaluated at at.
func (e *ReminderEnqueuer) EnqueueDueSoonReminder(ctx context.Context, at time.Time) (string, error) {
	payload, err := jsoniter.Marshal(shared.DueSoonReminderPayload{At: at.Format(time.RFC3339)})
	if err != nil {
		return "", fmt.Errorf("marshal reminder payload: %w", err)
	}

	info, err := e.client.EnqueueContext(ctx,
		asynq.NewTask(shared.TypeDueSoonReminder, payload),
		asynq.Queue(shared.QueueLoan),
		asynq.MaxRetry(2),
		asynq.Timeout(2*time.Minute),
	)
	if err != nil {
		return "", fmt.Errorf("enqueue due soon reminder: %w", err)
	}
	return info.ID, nil
}
