package main

import (
	"fmt"

	"library-backend/internal/infrastructure/queue"
	"library-backend/pkg/container"
	"library-backend/pkg/logger"
)

// asynqScheduler wraps queue.Scheduler with logging
type asynqScheduler struct {
	*queue.Scheduler
}

// setupScheduler registers cron jobs and starts the scheduler in the background
func setupScheduler(c *container.Container) (*asynqScheduler, error) {
	scheduler := queue.NewScheduler(c.RedisClientOpt(), c.Config.Job, c.Location)

	if err := scheduler.RegisterJobs(); err != nil {
		return nil, fmt.Errorf("register scheduled jobs: %w", err)
	}

	logger.Info("[Scheduler] Starting", nil)
	if err := scheduler.Start(); err != nil {
		return nil, fmt.Errorf("start scheduler: %w", err)
	}

	return &asynqScheduler{Scheduler: scheduler}, nil
}

// Shutdown gracefully shuts down the scheduler
func (s *asynqScheduler) Shutdown() {
	logger.Info("[Scheduler] Shutting down", nil)
	s.Scheduler.Shutdown()
}
