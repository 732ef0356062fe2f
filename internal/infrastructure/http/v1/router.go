// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"billmint/internal/domain/documents/invoice"
	"billmint/internal/domain/documents/quotation"
	"billmint/internal/domain/settings"
	"billmint/internal/infrastructure/http/v1/handlers"
	"billmint/internal/infrastructure/http/v1/middleware"
	"billmint/internal/infrastructure/sequence"
	"billmint/internal/infrastructure/storage/postgres"
	"billmint/internal/infrastructure/storage/postgres/document_repo"
	"billmint/internal/infrastructure/storage/postgres/settings_repo"
	"billmint/pkg/logger"
)

// RouterConfig holds router configuration.
type RouterConfig struct {
	// Pool is the database connection pool (for health checks)
	Pool *postgres.Pool

	// TxManager coordinates transactions across services and repositories
	TxManager *postgres.TxManager

	// Logger for request logging
	Logger *logger.Logger
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	// Health endpoints
	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	// Shared dependencies
	baseHandler := handlers.NewBaseHandler()
	settingsService := settings.NewService(settings_repo.NewSettingsRepo(cfg.TxManager))
	allocator := sequence.New(cfg.TxManager)

	// API v1
	apiV1 := router.Group("/api/v1")
	{
		// --- INVOICES ---
		{
			repo := document_repo.NewInvoiceRepo(cfg.TxManager)
			service := invoice.NewService(repo, allocator, settingsService, cfg.TxManager)
			handler := handlers.NewInvoiceHandler(baseHandler, service, settingsService)
			handler.RegisterRoutes(apiV1.Group("/invoices"))
		}

		// --- QUOTATIONS ---
		{
			repo := document_repo.NewQuotationRepo(cfg.TxManager)
			service := quotation.NewService(repo, allocator, settingsService, cfg.TxManager)
			handler := handlers.NewQuotationHandler(baseHandler, service, settingsService)
			handler.RegisterRoutes(apiV1.Group("/quotations"))
		}

		// --- TAX & SETTINGS ---
		{
			handler := handlers.NewTaxHandler(baseHandler, settingsService)
			handler.RegisterRoutes(apiV1)
		}
	}

	return router
}
