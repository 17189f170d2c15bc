package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"library-backend/pkg/container"
	"library-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

// checkDependencies fails fast when the loan store is not shared with the
// api or Redis is unreachable; the worker has nothing to do without either.
func checkDependencies(c *container.Container) error {
	if err := c.Config.RequireSharedStorage(); err != nil {
		return err
	}
	if c.Redis == nil {
		return errors.New("redis is required by the worker (check REDIS_ENABLED / REDIS_HOST)")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := c.Redis.Client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	if c.DB != nil {
		if err := c.DB.HealthCheck(ctx); err != nil {
			return err
		}
	}
	return nil
}

// startHealthCheckServer exposes /health and /ready for liveness and readiness checks
func startHealthCheckServer(addr string, c *container.Container) *http.Server {
	router := gin.New()
	router.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "UP", "service": "library-worker"})
	})
	router.GET("/ready", func(ctx *gin.Context) {
		if err := checkDependencies(c); err != nil {
			ctx.JSON(http.StatusServiceUnavailable, gin.H{"status": "NOT_READY", "error": err.Error()})
			return
		}
		ctx.JSON(http.StatusOK, gin.H{"status": "READY"})
	})

	srv := &http.Server{Addr: addr, Handler: router, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		logger.Info("[Health] Starting health check server", map[string]interface{}{"addr": addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("[Health] Failed to start", err)
		}
	}()
	return srv
}
