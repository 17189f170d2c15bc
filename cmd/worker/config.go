package main

import (
	"library-backend/internal/shared/utils"
	"library-backend/pkg/logger"
)

// Config holds worker-only settings; shared settings come from the container.
type Config struct {
	HealthAddr string
}

// loadConfig loads configuration from environment variables
func loadConfig() *Config {
	cfg := &Config{
		HealthAddr: utils.GetEnvVariable("WORKER_HEALTH_ADDR", ":9999"),
	}

	logger.Info("[Config] Worker configuration loaded", map[string]interface{}{
		"health_addr": cfg.HealthAddr,
	})
	return cfg
}
