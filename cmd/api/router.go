package main

import (
	"context"
	"net/http"
	"time"

	"library-backend/internal/shared/middleware"
	"library-backend/pkg/container"

	"github.com/gin-gonic/gin"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(c.Config.CORS.AllowOrigins),
	)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupAuthRoutes(v1, c)
		setupBookRoutes(v1, c)
		setupLoanRoutes(v1, c)
		setupSettingsRoutes(v1, c)
	}

	return router
}

// ========================================
// AUTH ROUTES
// ========================================
func setupAuthRoutes(v1 *gin.RouterGroup, c *container.Container) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", c.AuthHandler.Login)
	}
}

// ========================================
// BOOK ROUTES (public catalog)
// ========================================
func setupBookRoutes(v1 *gin.RouterGroup, c *container.Container) {
	books := v1.Group("/books")
	{
		books.GET("", c.CatalogHandler.ListBooks)
		books.GET("/stats", c.CatalogHandler.Stats)
		books.GET("/:id", c.CatalogHandler.GetBook)
	}
}

// ========================================
// LOAN ROUTES
// ========================================
func setupLoanRoutes(v1 *gin.RouterGroup, c *container.Container) {
	loans := v1.Group("/loans")
	loans.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		loans.GET("", c.LoanHandler.ListLoans)
		loans.GET("/due-soon", c.LoanHandler.DueSoon)
		loans.GET("/stats", c.LoanHandler.Statistics)
		loans.GET("/export", c.LoanHandler.ExportLoans)
		loans.POST("/reminders", c.LoanHandler.TriggerReminders)
		loans.GET("/:id", c.LoanHandler.GetLoan)
		loans.POST("", c.LoanHandler.Borrow)
		loans.POST("/:id/return", c.LoanHandler.MarkReturned)
		loans.POST("/:id/lost", c.LoanHandler.MarkLost)
	}
}

// ========================================
// SETTINGS ROUTES
// ========================================
func setupSettingsRoutes(v1 *gin.RouterGroup, c *container.Container) {
	settings := v1.Group("/settings")
	settings.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		settings.GET("", c.SettingsHandler.GetSettings)
		settings.PUT("", c.SettingsHandler.UpdateSettings)
	}
}

// ========================================
// HEALTH CHECK HANDLER
// ========================================
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"timestamp": appCtx.Clock().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
			"storage":   appCtx.Config.Storage.Driver,
		}

		// Database chỉ bắt buộc khi STORAGE_DRIVER=postgres
		dbStatus := "not used"
		if appCtx.DB != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			dbStatus = "ok"
			if err := appCtx.DB.HealthCheck(ctx); err != nil {
				dbStatus = "error: " + err.Error()
				health["status"] = "degraded"
			}
		}

		// Redis không critical
		redisStatus := "disconnected"
		if appCtx.Cache != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			redisStatus = "ok"
			if err := appCtx.Cache.Ping(ctx); err != nil {
				redisStatus = "error: " + err.Error()
			}
		}

		health["services"] = gin.H{
			"database": dbStatus,
			"redis":    redisStatus,
		}

		statusCode := http.StatusOK
		if health["status"] != "ok" {
			statusCode = http.StatusServiceUnavailable
		}

		c.JSON(statusCode, health)
	}
}
