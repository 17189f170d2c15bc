package main

import (
	"testing"

	"library-backend/internal/config"
	"library-backend/pkg/container"

	"github.com/stretchr/testify/assert"
)

func TestCheckDependencies_RejectsMemoryStorage(t *testing.T) {
	c := &container.Container{
		Config: &config.Config{Storage: config.StorageConfig{Driver: config.StorageMemory}},
	}

	err := checkDependencies(c)

	assert.ErrorIs(t, err, config.ErrWorkerNeedsSharedStorage)
}

func TestCheckDependencies_PostgresStillNeedsRedis(t *testing.T) {
	c := &container.Container{
		Config: &config.Config{Storage: config.StorageConfig{Driver: config.StoragePostgres}},
	}

	err := checkDependencies(c)

	assert.Error(t, err)
	assert.NotErrorIs(t, err, config.ErrWorkerNeedsSharedStorage)
}
