package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"library-backend/pkg/container"
	"library-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	_ = godotenv.Load()
	logger.Init(os.Getenv("APP_ENV"))
	gin.SetMode(gin.ReleaseMode)

	c, err := container.NewContainer()
	if err != nil {
		log.Fatal().Err(err).Msg("[Container] Failed to initialize")
	}
	defer c.Cleanup()

	if err := checkDependencies(c); err != nil {
		log.Fatal().Err(err).Msg("[Startup] Health check failed")
	}

	cfg := loadConfig()
	handlers := initializeHandlers(c)

	srv, err := setupAsynqServer(c, handlers)
	if err != nil {
		log.Fatal().Err(err).Msg("[Startup] Worker failed")
	}

	scheduler, err := setupScheduler(c)
	if err != nil {
		srv.Shutdown()
		log.Fatal().Err(err).Msg("[Startup] Scheduler failed")
	}

	health := startHealthCheckServer(cfg.HealthAddr, c)

	waitForShutdown(srv, scheduler, health)
}

func waitForShutdown(srv *asynqServer, scheduler *asynqScheduler, health interface {
	Shutdown(ctx context.Context) error
}) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("[Shutdown] Gracefully stopping", nil)
	scheduler.Shutdown()
	srv.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = health.Shutdown(ctx)

	logger.Info("[Shutdown] Stopped", nil)
}
