package queue

import (
	"fmt"
	"time"

	"library-backend/internal/config"
	"library-backend/internal/shared"
	"library-backend/pkg/logger"

	"github.com/hibiken/asynq"
	jsoniter "github.com/json-iterator/go"
)

// Scheduler enqueue các periodic task của thư viện theo cron
type Scheduler struct {
	scheduler *asynq.Scheduler
	jobConfig config.JobConfig
}

// NewScheduler: cron được đánh giá theo timezone của thư viện
func NewScheduler(redisOpt asynq.RedisClientOpt, jobConfig config.JobConfig, loc *time.Location) *Scheduler {
	if loc == nil {
		loc = time.UTC
	}
	scheduler := asynq.NewScheduler(
		redisOpt,
		&asynq.SchedulerOpts{
			Location: loc,
			LogLevel: asynq.InfoLevel,
		},
	)

	return &Scheduler{
		scheduler: scheduler,
		jobConfig: jobConfig,
	}
}

func (s *Scheduler) RegisterJobs() error {
	return s.registerDueSoonReminderJob()
}

// ================================================
// JOB: Due Soon Reminder (REMINDER_CRON, mặc định 8h sáng)
// ================================================
// Payload rỗng: handler dùng clock của worker tại thời điểm chạy.
func (s *Scheduler) registerDueSoonReminderJob() error {
	payload, err := jsoniter.Marshal(shared.DueSoonReminderPayload{})
	if err != nil {
		return err
	}

	task := asynq.NewTask(shared.TypeDueSoonReminder, payload)

	entryID, err := s.scheduler.Register(
		s.jobConfig.ReminderCron,
		task,
		asynq.Queue(shared.QueueLoan),
		asynq.MaxRetry(2),
		asynq.Timeout(2*time.Minute),
	)
	if err != nil {
		logger.Error("Failed to register DueSoonReminder job", err)
		return fmt.Errorf("register due soon reminder (cron %q): %w", s.jobConfig.ReminderCron, err)
	}

	logger.Info("✓ Registered DueSoonReminder", map[string]interface{}{
		"cron":     s.jobConfig.ReminderCron,
		"entry_id": entryID,
	})
	return nil
}

func (s *Scheduler) Start() error {
	return s.scheduler.Start()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
