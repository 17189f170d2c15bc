package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, StorageMemory, cfg.Storage.Driver)
	assert.Equal(t, 14, cfg.Library.BorrowPeriodDays)

	settings, err := cfg.LibrarySettings()
	require.NoError(t, err)
	assert.Equal(t, "5.00", settings.FinePerDay.StringFixed(2))
	assert.Equal(t, "₹", settings.Currency)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "Postgres")
	t.Setenv("LIBRARY_FINE_PER_DAY", "2.50")
	t.Setenv("LIBRARY_CURRENCY", "$")
	t.Setenv("LIBRARY_TIMEZONE", "Asia/Kolkata")
	t.Setenv("CORS_ALLOW_ORIGINS", "http://a.test, http://b.test,")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, StoragePostgres, cfg.Storage.Driver)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORS.AllowOrigins)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "Asia/Kolkata", loc.String())
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	cases := map[string][2]string{
		"negative fine":    {"LIBRARY_FINE_PER_DAY", "-1"},
		"non numeric fine": {"LIBRARY_FINE_PER_DAY", "five"},
		"zero period":      {"LIBRARY_BORROW_PERIOD_DAYS", "0"},
		"bad timezone":     {"LIBRARY_TIMEZONE", "Mars/Olympus"},
		"bad driver":       {"STORAGE_DRIVER", "sqlite"},
	}

	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv(kv[0], kv[1])
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestValidate_ProductionNeedsJWTSecret(t *testing.T) {
	t.Setenv("APP_ENV", "production")

	_, err := Load()
	assert.Error(t, err)

	t.Setenv("JWT_SECRET", "real-secret")
	_, err = Load()
	assert.NoError(t, err)
}

func TestRequireSharedStorage(t *testing.T) {
	memory := &Config{Storage: StorageConfig{Driver: StorageMemory}}
	postgres := &Config{Storage: StorageConfig{Driver: StoragePostgres}}

	assert.ErrorIs(t, memory.RequireSharedStorage(), ErrWorkerNeedsSharedStorage)
	assert.NoError(t, postgres.RequireSharedStorage())
}

func TestLoadDatabaseConfig(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("DB_RETRY_DELAY", "250ms")

	cfg, err := LoadDatabaseConfig()
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Host)
	assert.Equal(t, 6543, cfg.Port)
	assert.Equal(t, 250*time.Millisecond, cfg.RetryDelay)
	assert.Equal(t, "library_dev", cfg.DBName)
	assert.Equal(t, int32(10), cfg.MaxConns)
}

func TestLoadDatabaseConfig_RejectsMalformedValues(t *testing.T) {
	cases := map[string][2]string{
		"port":           {"DB_PORT", "five"},
		"duration":       {"DB_CONNECT_TIMEOUT", "10"},
		"pool min > max": {"DB_MIN_CONNECTIONS", "50"},
	}

	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv(kv[0], kv[1])
			_, err := LoadDatabaseConfig()
			assert.Error(t, err)
		})
	}
}
