package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata" // LIBRARY_TIMEZONE trong container không có zoneinfo

	settingsModel "library-backend/internal/domains/settings/model"
	"library-backend/internal/infrastructure/database"

	"github.com/shopspring/decimal"
)

const defaultJWTSecret = "your-secret-key-change-in-production"

// Reminder channels
const (
	ReminderChannelLog   = "log"
	ReminderChannelEmail = "email"
)

// Storage drivers
const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

// Config chứa toàn bộ application configuration
// Struct này được populate từ environment variables
type Config struct {
	App     AppConfig
	Storage StorageConfig
	Redis   RedisConfig
	JWT     JWTConfig
	Library LibraryConfig
	Job     JobConfig
	CORS    CORSConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
}

// StorageConfig: memory (seed mỗi lần khởi động) hoặc postgres
type StorageConfig struct {
	Driver string
	Seed   bool // postgres: insert demo data khi bảng còn trống id
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret            string
	AccessTokenExpiry int // minutes
}

// LibraryConfig - policy khởi tạo cho settings source
type LibraryConfig struct {
	FinePerDay       string
	Currency         string
	BorrowPeriodDays int
	Timezone         string
}

type JobConfig struct {
	ReminderCron    string
	Concurrency     int
	ReminderChannel string // log | email
	SMTPHost        string
	SMTPPort        string
	MailFrom        string
	MailDomain      string // email người mượn = <borrowerId>@MailDomain
}

type CORSConfig struct {
	AllowOrigins []string
}

// Load đọc config từ environment variables
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Library API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
		Storage: StorageConfig{
			Driver: strings.ToLower(getEnv("STORAGE_DRIVER", StorageMemory)),
			Seed:   getEnvBool("STORAGE_SEED", true),
		},
		Redis: RedisConfig{
			Enabled:  getEnvBool("REDIS_ENABLED", true),
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			Secret:            getEnv("JWT_SECRET", defaultJWTSecret),
			AccessTokenExpiry: getEnvInt("JWT_ACCESS_EXPIRY", 24*60),
		},
		Library: LibraryConfig{
			FinePerDay:       getEnv("LIBRARY_FINE_PER_DAY", "5.00"),
			Currency:         getEnv("LIBRARY_CURRENCY", "₹"),
			BorrowPeriodDays: getEnvInt("LIBRARY_BORROW_PERIOD_DAYS", 14),
			Timezone:         getEnv("LIBRARY_TIMEZONE", "UTC"),
		},
		Job: JobConfig{
			ReminderCron:    getEnv("REMINDER_CRON", "0 8 * * *"),
			Concurrency:     getEnvInt("WORKER_CONCURRENCY", 5),
			ReminderChannel: strings.ToLower(getEnv("REMINDER_CHANNEL", ReminderChannelLog)),
			SMTPHost:        getEnv("SMTP_HOST", "localhost"),
			SMTPPort:        getEnv("SMTP_PORT", "1025"),
			MailFrom:        getEnv("REMINDER_MAIL_FROM", "noreply@library.dev"),
			MailDomain:      getEnv("REMINDER_MAIL_DOMAIN", "students.library.dev"),
		},
		CORS: CORSConfig{
			AllowOrigins: splitCSV(getEnv("CORS_ALLOW_ORIGINS", "*")),
		},
	}

	// Validate critical config
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate kiểm tra config có hợp lệ không
func (c *Config) Validate() error {
	if c.App.Environment == "production" && c.JWT.Secret == defaultJWTSecret {
		return fmt.Errorf("JWT_SECRET must be set in production")
	}

	switch c.Storage.Driver {
	case StorageMemory, StoragePostgres:
	default:
		return fmt.Errorf("STORAGE_DRIVER must be %q or %q, got %q", StorageMemory, StoragePostgres, c.Storage.Driver)
	}

	switch c.Job.ReminderChannel {
	case ReminderChannelLog, ReminderChannelEmail:
	default:
		return fmt.Errorf("REMINDER_CHANNEL must be %q or %q, got %q", ReminderChannelLog, ReminderChannelEmail, c.Job.ReminderChannel)
	}

	if _, err := c.Location(); err != nil {
		return err
	}

	if _, err := c.LibrarySettings(); err != nil {
		return err
	}
	return nil
}

// ErrWorkerNeedsSharedStorage: worker và api phải đọc cùng một loan store
var ErrWorkerNeedsSharedStorage = errors.New("worker requires STORAGE_DRIVER=postgres: the memory store is private to each process")

// RequireSharedStorage rejects storage drivers whose data is invisible to
// other processes. The worker sends reminders from what it reads, so it must
// see returns and losses recorded by the api.
func (c *Config) RequireSharedStorage() error {
	if c.Storage.Driver != StoragePostgres {
		return ErrWorkerNeedsSharedStorage
	}
	return nil
}

// LibrarySettings builds and validates the initial library policy.
func (c *Config) LibrarySettings() (settingsModel.LibrarySettings, error) {
	fine, err := decimal.NewFromString(c.Library.FinePerDay)
	if err != nil {
		return settingsModel.LibrarySettings{}, fmt.Errorf("%w: LIBRARY_FINE_PER_DAY %q is not a number", settingsModel.ErrInvalidSettings, c.Library.FinePerDay)
	}

	s := settingsModel.LibrarySettings{
		FinePerDay:       fine,
		Currency:         c.Library.Currency,
		BorrowPeriodDays: c.Library.BorrowPeriodDays,
	}
	if err := s.Validate(); err != nil {
		return settingsModel.LibrarySettings{}, fmt.Errorf("%w: %v", settingsModel.ErrInvalidSettings, err)
	}
	return s, nil
}

// Location: timezone dùng để tính ngày lịch (due today, overdue...)
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Library.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid LIBRARY_TIMEZONE %q: %w", c.Library.Timezone, err)
	}
	return loc, nil
}

func (c *Config) AccessTokenExpiry() time.Duration {
	return time.Duration(c.JWT.AccessTokenExpiry) * time.Minute
}

// LoadDatabaseConfig đọc DB_* env vars; chỉ dùng khi STORAGE_DRIVER=postgres.
// Giá trị sai định dạng là lỗi, không fallback về default.
func LoadDatabaseConfig() (*database.DBConfig, error) {
	p := &envParser{}

	cfg := &database.DBConfig{
		Host:              getEnv("DB_HOST", "localhost"),
		Port:              p.int("DB_PORT", 5432),
		Username:          getEnv("DB_USER", "library"),
		Password:          getEnv("DB_PASSWORD", "secret"),
		DBName:            getEnv("DB_NAME", "library_dev"),
		SSLMode:           getEnv("DB_SSLMODE", "disable"),
		MaxConns:          int32(p.int("DB_MAX_CONNECTIONS", 10)),
		MinConns:          int32(p.int("DB_MIN_CONNECTIONS", 2)),
		MaxConnLifetime:   p.duration("DB_MAX_CONN_LIFETIME", 30*time.Minute),
		MaxConnIdleTime:   p.duration("DB_MAX_CONN_IDLE_TIME", 5*time.Minute),
		HealthCheckPeriod: p.duration("DB_HEALTH_CHECK_PERIOD", time.Minute),
		MaxRetries:        p.int("DB_MAX_RETRIES", 5),
		RetryDelay:        p.duration("DB_RETRY_DELAY", time.Second),
		ConnectTimeout:    p.duration("DB_CONNECT_TIMEOUT", 10*time.Second),
	}
	if p.err != nil {
		return nil, p.err
	}

	if cfg.MinConns > cfg.MaxConns {
		return nil, fmt.Errorf("DB_MIN_CONNECTIONS (%d) must not exceed DB_MAX_CONNECTIONS (%d)", cfg.MinConns, cfg.MaxConns)
	}
	return cfg, nil
}

// envParser giữ lỗi parse đầu tiên để LoadDatabaseConfig báo một lần
type envParser struct {
	err error
}

func (p *envParser) int(key string, def int) int {
	raw := os.Getenv(key)
	if raw == "" || p.err != nil {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		p.err = fmt.Errorf("invalid %s: %w", key, err)
		return def
	}
	return v
}

func (p *envParser) duration(key string, def time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" || p.err != nil {
		return def
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		p.err = fmt.Errorf("invalid %s: %w", key, err)
		return def
	}
	return v
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
