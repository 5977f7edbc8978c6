// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"faktura/internal/core/counter"
	"faktura/internal/domain"
	"faktura/internal/domain/auth"
	"faktura/internal/domain/calendar"
	"faktura/internal/domain/catalogs/company"
	"faktura/internal/domain/catalogs/device"
	"faktura/internal/domain/catalogs/journal"
	"faktura/internal/domain/catalogs/sequence"
	"faktura/internal/domain/documents/invoice"
	"faktura/internal/domain/numbering"
	"faktura/internal/infrastructure/http/v1/handlers"
	"faktura/internal/infrastructure/http/v1/middleware"
	"faktura/internal/infrastructure/storage/postgres"
	"faktura/pkg/logger"
)

// RouterConfig holds the wired services the API serves.
type RouterConfig struct {
	Pool   *postgres.Pool
	Logger *logger.Logger

	JWTValidator middleware.JWTValidator
	AuthService  *auth.Service

	JournalService  *domain.CatalogService[*journal.Journal]
	DeviceService   *domain.CatalogService[*device.Device]
	CompanyService  *domain.CatalogService[*company.Company]
	SequenceService *domain.CatalogService[*sequence.Sequence]

	Issuer          counter.Issuer
	Registry        numbering.Registry
	CalendarService *calendar.Service
	InvoiceService  *invoice.Service
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

	// Health endpoints (no auth required)
	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	baseHandler := handlers.NewBaseHandler()
	authHandler := handlers.NewAuthHandler(baseHandler, cfg.AuthService)

	// API v1
	apiV1 := router.Group("/api/v1")
	{
		// Public auth endpoints
		apiV1.POST("/auth/register", authHandler.Register)
		apiV1.POST("/auth/login", authHandler.Login)

		// Protected endpoints
		protected := apiV1.Group("")
		protected.Use(middleware.Auth(cfg.JWTValidator))

		registerInvoiceRoutes(protected, baseHandler, cfg)
		registerConfigRoutes(protected, baseHandler, authHandler, cfg)
	}

	return router
}

// registerInvoiceRoutes registers the operational document surface.
func registerInvoiceRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	handler := handlers.NewInvoiceHandler(base, cfg.InvoiceService)

	invoices := rg.Group("/invoices")
	{
		invoices.POST("", handler.Create)
		invoices.GET("", handler.List)
		invoices.GET("/:id", handler.Get)
		invoices.DELETE("/:id", handler.Delete)
		invoices.POST("/:id/post", handler.Post)
	}
}

// registerConfigRoutes registers the administrative configuration surface:
// catalogs, sequences, assignments and the accounting calendar.
func registerConfigRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, authHandler *handlers.AuthHandler, cfg RouterConfig) {
	admin := rg.Group("")
	admin.Use(middleware.RequireAdmin())

	// Device binding of user records
	admin.PUT("/users/:id/device", authHandler.AssignDevice)

	// --- Catalogs ---
	{
		handler := handlers.NewJournalHandler(base, cfg.JournalService)
		registerCatalogRoutes(admin.Group("/journals"), handler)
	}
	{
		handler := handlers.NewDeviceHandler(base, cfg.DeviceService)
		registerCatalogRoutes(admin.Group("/devices"), handler)
	}
	{
		handler := handlers.NewCompanyHandler(base, cfg.CompanyService)
		registerCatalogRoutes(admin.Group("/companies"), handler)
	}
	{
		handler := handlers.NewSequenceHandler(base, cfg.SequenceService, cfg.Issuer)
		group := admin.Group("/sequences")
		registerCatalogRoutes(group, handler.CatalogHandler)
		group.POST("/:id/set-next", handler.SetNext)
	}

	// --- Sequence assignments ---
	{
		handler := handlers.NewAssignmentHandler(base, cfg.Registry, cfg.JournalService)
		assignments := admin.Group("/assignments")
		assignments.POST("", handler.Create)
		assignments.GET("", handler.List)
		assignments.GET("/:id", handler.Get)
		assignments.DELETE("/:id", handler.Delete)
	}

	// --- Accounting calendar ---
	{
		handler := handlers.NewCalendarHandler(base, cfg.CalendarService)
		admin.POST("/fiscal-years", handler.CreateFiscalYear)
		admin.GET("/fiscal-years/:id", handler.GetFiscalYear)
		admin.POST("/fiscal-years/:id/periods", handler.CreatePeriod)
		admin.GET("/fiscal-years/:id/periods", handler.ListPeriods)
		admin.POST("/periods/:id/close", handler.ClosePeriod)
		admin.POST("/periods/:id/reopen", handler.ReopenPeriod)
	}
}

// catalogCRUD is the route surface every catalog handler exposes.
type catalogCRUD interface {
	List(c *gin.Context)
	Get(c *gin.Context)
	Create(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
}

// registerCatalogRoutes wires the standard CRUD surface of a catalog.
func registerCatalogRoutes(rg *gin.RouterGroup, handler catalogCRUD) {
	rg.GET("", handler.List)
	rg.GET("/:id", handler.Get)
	rg.POST("", handler.Create)
	rg.PUT("/:id", handler.Update)
	rg.DELETE("/:id", handler.Delete)
}
