package container

import (
	"context"
	"fmt"
	"time"

	"library-backend/internal/config"
	infraCache "library-backend/internal/infrastructure/cache"
	"library-backend/internal/infrastructure/database"
	"library-backend/internal/infrastructure/email"
	"library-backend/internal/infrastructure/push"
	"library-backend/internal/infrastructure/queue"
	"library-backend/internal/shared"
	"library-backend/pkg/cache"
	"library-backend/pkg/jwt"
	"library-backend/pkg/logger"

	authHandler "library-backend/internal/domains/auth/handler"
	authService "library-backend/internal/domains/auth/service"
	catalogHandler "library-backend/internal/domains/catalog/handler"
	catalogRepo "library-backend/internal/domains/catalog/repository"
	catalogService "library-backend/internal/domains/catalog/service"
	loanHandler "library-backend/internal/domains/loan/handler"
	loanJob "library-backend/internal/domains/loan/job"
	loanRepo "library-backend/internal/domains/loan/repository"
	loanService "library-backend/internal/domains/loan/service"
	settingsHandler "library-backend/internal/domains/settings/handler"
	settingsService "library-backend/internal/domains/settings/service"

	"github.com/hibiken/asynq"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container chứa tất cả dependencies của application (api và worker dùng chung)
type Container struct {
	// ========================================
	// INFRASTRUCTURE LAYER
	// ========================================
	Config      *config.Config
	Location    *time.Location
	Clock       shared.Clock
	DB          *database.PostgresDB // nil khi STORAGE_DRIVER=memory
	Redis       *infraCache.RedisClient
	Cache       cache.Cache // nil khi Redis không khả dụng
	AsynqClient *asynq.Client
	JWTManager  *jwt.Manager

	// ========================================
	// REPOSITORY LAYER
	// ========================================
	CatalogRepo catalogRepo.Repository
	LoanRepo    loanRepo.Repository

	// ========================================
	// SERVICE LAYER
	// ========================================
	SettingsService settingsService.Service
	CatalogService  catalogService.ServiceInterface
	LoanService     loanService.ServiceInterface
	AuthService     authService.ServiceInterface
	Notifier        loanJob.Notifier

	// ========================================
	// HANDLER LAYER
	// ========================================
	SettingsHandler *settingsHandler.Handler
	CatalogHandler  *catalogHandler.Handler
	LoanHandler     *loanHandler.Handler
	AuthHandler     *authHandler.Handler
}

// NewContainer tạo và initialize toàn bộ dependency graph
//
// Thứ tự initialization:
// 1. Config
// 2. Infrastructure (DB, Redis, asynq client)
// 3. Repositories
// 4. Services
// 5. Handlers
func NewContainer() (*Container, error) {
	logger.Info("Initializing DI container", nil)

	c := &Container{}

	// ========================================
	// STEP 1: LOAD CONFIGURATION
	// ========================================
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg

	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	c.Location = loc
	c.Clock = shared.ClockIn(loc)

	logger.Info("Config loaded", map[string]interface{}{
		"environment": cfg.App.Environment,
		"storage":     cfg.Storage.Driver,
		"timezone":    loc.String(),
	})

	// ========================================
	// STEP 2: INFRASTRUCTURE
	// ========================================
	if err := c.initDatabase(); err != nil {
		return nil, err
	}
	c.initRedis()
	c.JWTManager = jwt.NewManager(cfg.JWT.Secret, cfg.AccessTokenExpiry())

	// ========================================
	// STEP 3-5: REPOSITORIES, SERVICES, HANDLERS
	// ========================================
	if err := c.initRepositories(); err != nil {
		return nil, fmt.Errorf("failed to init repositories: %w", err)
	}
	if err := c.initServices(); err != nil {
		return nil, fmt.Errorf("failed to init services: %w", err)
	}
	c.initHandlers()

	logger.Info("DI container initialized", nil)
	return c, nil
}

// initDatabase chỉ kết nối khi STORAGE_DRIVER=postgres
func (c *Container) initDatabase() error {
	if c.Config.Storage.Driver != config.StoragePostgres {
		return nil
	}

	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.EnsureSchema(ctx); err != nil {
		db.Close()
		return err
	}
	if c.Config.Storage.Seed {
		books := catalogRepo.SeedBooks()
		if err := db.Seed(ctx, books, loanRepo.SeedLoans(c.Clock(), books)); err != nil {
			db.Close()
			return fmt.Errorf("failed to seed database: %w", err)
		}
	}

	c.DB = db
	return nil
}

// initRedis: Redis lỗi không critical - settings và stats chạy không cache,
// reminder endpoint trả 503
func (c *Container) initRedis() {
	if !c.Config.Redis.Enabled {
		logger.Info("Redis disabled", nil)
		return
	}

	rc := infraCache.NewRedisClient(c.Config.Redis.Host, c.Config.Redis.Password, c.Config.Redis.DB)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rc.Connect(ctx); err != nil {
		logger.Error("Redis connection failed (non-critical)", err)
		_ = rc.Close()
		return
	}

	c.Redis = rc
	c.Cache = infraCache.NewRedisCache(rc.Client, "library")
	c.AsynqClient = asynq.NewClient(c.RedisClientOpt())
}

// RedisClientOpt dùng chung cho asynq client, server và scheduler
func (c *Container) RedisClientOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     c.Config.Redis.Host,
		Password: c.Config.Redis.Password,
		DB:       c.Config.Redis.DB,
	}
}

func (c *Container) initRepositories() error {
	switch c.Config.Storage.Driver {
	case config.StoragePostgres:
		c.CatalogRepo = catalogRepo.NewPostgresRepository(c.DB.Pool)
		c.LoanRepo = loanRepo.NewPostgresRepository(c.DB.Pool)
	default:
		books := catalogRepo.SeedBooks()
		c.CatalogRepo = catalogRepo.NewMemoryRepository(books)
		c.LoanRepo = loanRepo.NewMemoryRepository(loanRepo.SeedLoans(c.Clock(), books))
	}
	return nil
}

func (c *Container) initServices() error {
	initial, err := c.Config.LibrarySettings()
	if err != nil {
		return err
	}

	c.SettingsService, err = settingsService.NewService(initial, c.Cache)
	if err != nil {
		return err
	}

	c.CatalogService = catalogService.NewService(c.CatalogRepo, c.Cache)
	c.LoanService = loanService.NewService(c.LoanRepo, c.CatalogService, c.SettingsService)
	c.AuthService = authService.NewService(c.JWTManager, c.Clock)
	c.Notifier = newNotifier(c.Config.Job)
	return nil
}

// newNotifier chọn kênh gửi reminder theo REMINDER_CHANNEL
func newNotifier(cfg config.JobConfig) loanJob.Notifier {
	if cfg.ReminderChannel == config.ReminderChannelEmail {
		logger.Info("Reminders delivered by email", map[string]interface{}{
			"smtp_host": cfg.SMTPHost,
			"domain":    cfg.MailDomain,
		})
		return email.NewSMTPNotifier(cfg.SMTPHost, cfg.SMTPPort, cfg.MailFrom, cfg.MailDomain)
	}
	return push.NewLogNotifier()
}

// initHandlers: với STORAGE_DRIVER=memory reminder chạy trong api process
// (worker không thấy store này), còn lại đẩy vào asynq
func (c *Container) initHandlers() {
	var reminders loanHandler.ReminderEnqueuer
	switch {
	case c.Config.Storage.Driver == config.StorageMemory:
		reminders = loanJob.NewInProcessRunner(
			loanJob.NewDueSoonReminderHandler(c.LoanService, c.Notifier, c.Clock),
		)
	case c.AsynqClient != nil:
		reminders = queue.NewReminderEnqueuer(c.AsynqClient)
	}

	c.SettingsHandler = settingsHandler.NewHandler(c.SettingsService)
	c.CatalogHandler = catalogHandler.NewHandler(c.CatalogService)
	c.LoanHandler = loanHandler.NewHandler(c.LoanService, c.Clock, reminders)
	c.AuthHandler = authHandler.NewHandler(c.AuthService)
}

// Cleanup đóng các connection theo thứ tự ngược lại
func (c *Container) Cleanup() {
	logger.Info("Cleaning up container resources", nil)

	if c.AsynqClient != nil {
		if err := c.AsynqClient.Close(); err != nil {
			logger.Error("Failed to close asynq client", err)
		}
	}

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			logger.Error("Failed to close Redis", err)
		}
	}

	if c.DB != nil {
		c.DB.Close()
	}
}
