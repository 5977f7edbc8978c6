// Package main is the entry point for the faktura API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"faktura/internal/domain"
	"faktura/internal/domain/auth"
	"faktura/internal/domain/calendar"
	"faktura/internal/domain/catalogs/company"
	"faktura/internal/domain/catalogs/device"
	"faktura/internal/domain/catalogs/journal"
	"faktura/internal/domain/catalogs/sequence"
	"faktura/internal/domain/documents/invoice"
	"faktura/internal/domain/numbering"
	v1 "faktura/internal/infrastructure/http/v1"
	"faktura/internal/infrastructure/storage/postgres"
	"faktura/internal/infrastructure/storage/postgres/auth_repo"
	"faktura/internal/infrastructure/storage/postgres/calendar_repo"
	"faktura/internal/infrastructure/storage/postgres/catalog_repo"
	"faktura/internal/infrastructure/storage/postgres/document_repo"
	"faktura/internal/infrastructure/storage/postgres/numbering_repo"
	"faktura/pkg/logger"
)

func main() {
	// Initialize logger
	log, err := logger.New(logger.Config{
		Level:       getEnv("LOG_LEVEL", "info"),
		Development: getEnv("APP_ENV", "development") == "development",
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	log.Info("starting faktura server")

	// --- Database ---
	poolCfg := postgres.DefaultPoolConfig(mustEnv("DATABASE_URL"))
	if maxConns := getEnvInt("DB_MAX_CONNS", 0); maxConns > 0 {
		poolCfg.MaxConns = int32(maxConns)
	}

	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()
	log.Info("database connection established")

	txManager := postgres.NewTxManager(pool)

	// --- Repositories ---
	journalRepo := catalog_repo.NewJournalRepo(txManager)
	deviceRepo := catalog_repo.NewDeviceRepo(txManager)
	companyRepo := catalog_repo.NewCompanyRepo(txManager)
	sequenceRepo := catalog_repo.NewSequenceRepo(txManager)
	assignmentRepo := numbering_repo.NewAssignmentRepo(txManager)
	calendarRepo := calendar_repo.NewCalendarRepo(txManager)
	invoiceRepo := document_repo.NewInvoiceRepo(txManager)
	userRepo := auth_repo.NewUserRepo(txManager)

	// --- Auth ---
	jwtSecret := getEnv("JWT_SECRET", "your-secret-key-change-in-production")
	jwtService := auth.NewJWTService(auth.DefaultJWTConfig(jwtSecret))
	authService := auth.NewService(userRepo, jwtService)

	// --- Domain services ---
	journalService := domain.NewCatalogService[*journal.Journal](journalRepo, txManager, "journal")
	deviceService := domain.NewCatalogService[*device.Device](deviceRepo, txManager, "device")
	companyService := domain.NewCatalogService[*company.Company](companyRepo, txManager, "company")
	sequenceService := domain.NewCatalogService[*sequence.Sequence](sequenceRepo, txManager, "sequence")
	calendarService := calendar.NewService(calendarRepo)

	// The auth service doubles as the user/device directory: the device
	// bound to the user record beats the session device.
	engine := numbering.NewEngine(assignmentRepo, sequenceRepo, authService, calendarRepo, txManager)
	invoiceService := invoice.NewService(invoiceRepo, engine, txManager)

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		Pool:            pool,
		Logger:          log,
		JWTValidator:    jwtService,
		AuthService:     authService,
		JournalService:  journalService,
		DeviceService:   deviceService,
		CompanyService:  companyService,
		SequenceService: sequenceService,
		Issuer:          sequenceRepo,
		Registry:        assignmentRepo,
		CalendarService: calendarService,
		InvoiceService:  invoiceService,
	})

	// --- HTTP Server ---
	port := getEnv("APP_PORT", "8080")
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server starting", "port", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	// Give outstanding requests 30 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func mustEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		fmt.Printf("required environment variable %s not set\n", key)
		os.Exit(1)
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var result int
		if _, err := fmt.Sscanf(value, "%d", &result); err == nil {
			return result
		}
	}
	return defaultValue
}
