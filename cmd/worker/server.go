package main

import (
	"context"
	"fmt"

	"library-backend/internal/shared"
	"library-backend/pkg/container"
	"library-backend/pkg/logger"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"
)

// asynqServer wraps asynq.Server with logging
type asynqServer struct {
	*asynq.Server
}

// setupAsynqServer creates the server and starts processing in the background
func setupAsynqServer(c *container.Container, handlers *HandlerRegistry) (*asynqServer, error) {
	mux := asynq.NewServeMux()
	handlers.RegisterHandlers(mux)

	srv := asynq.NewServer(
		c.RedisClientOpt(),
		asynq.Config{
			Queues: map[string]int{
				shared.QueueLoan:    6,
				shared.QueueDefault: 3,
			},
			Concurrency: c.Config.Job.Concurrency,
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				log.Error().
					Err(err).
					Str("task_type", task.Type()).
					Msg("[Asynq] Task failed")
			}),
		},
	)

	logger.Info("[Worker] Starting", map[string]interface{}{
		"concurrency": c.Config.Job.Concurrency,
	})
	if err := srv.Start(mux); err != nil {
		return nil, fmt.Errorf("start asynq server: %w", err)
	}

	return &asynqServer{Server: srv}, nil
}

// Shutdown waits for in-flight tasks to finish (asynq ShutdownTimeout)
func (s *asynqServer) Shutdown() {
	logger.Info("[Worker] Shutting down", nil)
	s.Server.Shutdown()
	logger.Info("[Worker] Stopped", nil)
}
