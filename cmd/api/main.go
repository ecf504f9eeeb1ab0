package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/imanage/imanage-api/docs"
	"github.com/imanage/imanage-api/internal/config"
	"github.com/imanage/imanage-api/internal/database"
	"github.com/imanage/imanage-api/internal/http/handler"
	"github.com/imanage/imanage-api/internal/http/middleware"
	"github.com/imanage/imanage-api/internal/http/router"
	"github.com/imanage/imanage-api/internal/jobs"
	"github.com/imanage/imanage-api/internal/logger"
	"github.com/imanage/imanage-api/internal/repository"
	"github.com/imanage/imanage-api/internal/service"
	"github.com/imanage/imanage-api/internal/storage"
	"go.uber.org/zap"
)

// @title iManage API
// @version 1.0
// @description Business management API for customers, vendors, fleet, documents, payroll and vehicle finances

// @host localhost:3001
// @BasePath /api

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name x-api-key
// @description API key injected by the desktop shell
// @Security ApiKeyAuth

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	// Load basic configuration first (for logging setup)
	basicCfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.NewLogger(&basicCfg.Logging, &basicCfg.App)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting application",
		zap.String("app", basicCfg.App.Name),
		zap.String("env", basicCfg.App.Environment),
		zap.Int("port", basicCfg.App.Port),
	)

	docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%d", basicCfg.App.Port)

	// Secrets come from the environment locally and from Key Vault when configured
	cfg, err := config.LoadWithSecrets(ctx, log)
	if err != nil {
		return fmt.Errorf("failed to load secrets: %w", err)
	}

	// The API keeps serving when the database cannot be opened. Every data
	// route then answers 503 and /health/db reports the failure.
	db, err := database.Open(&cfg.Database, log)
	if err != nil {
		log.Error("Database unavailable, continuing without it", zap.Error(err))
		db = nil
	} else if err := database.Migrate(db, log); err != nil {
		log.Error("Database migration failed, continuing without database", zap.Error(err))
		_ = database.Close(db)
		db = nil
	}

	fileStorage, err := storage.NewStorage(ctx, &cfg.Storage, log)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	log.Info("Storage initialized", zap.String("mode", cfg.Storage.Mode))

	// Initialize repositories
	customerRepo := repository.NewCustomerRepository(db)
	vendorRepo := repository.NewVendorRepository(db)
	employeeRepo := repository.NewEmployeeRepository(db)
	vehicleRepo := repository.NewVehicleRepository(db)
	quoteRepo := repository.NewQuoteRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	poRepo := repository.NewPurchaseOrderRepository(db)
	payslipRepo := repository.NewPayslipRepository(db)
	txRepo := repository.NewVehicleTransactionRepository(db)
	categoryRepo := repository.NewExpenseCategoryRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	numberSequenceRepo := repository.NewNumberSequenceRepository(db)
	maintenanceRepo := repository.NewMaintenanceRepository(db)

	// Initialize services
	numberSequenceService := service.NewNumberSequenceService(numberSequenceRepo, settingsRepo, log)
	customerService := service.NewCustomerService(customerRepo, log)
	vendorService := service.NewVendorService(vendorRepo, log)
	employeeService := service.NewEmployeeService(employeeRepo, log)
	vehicleService := service.NewVehicleService(vehicleRepo, log)
	quoteService := service.NewQuoteService(quoteRepo, numberSequenceService, log)
	invoiceService := service.NewInvoiceService(invoiceRepo, numberSequenceService, log)
	poService := service.NewPurchaseOrderService(poRepo, numberSequenceService, log)
	payslipService := service.NewPayslipService(payslipRepo, employeeRepo, log)
	txService := service.NewVehicleTransactionService(txRepo, log)
	categoryService := service.NewExpenseCategoryService(categoryRepo, log)
	settingsService := service.NewSettingsService(settingsRepo, fileStorage, log)
	dashboardService := service.NewDashboardService(txRepo, vehicleRepo, invoiceRepo, customerRepo, log)
	maintenanceService := service.NewMaintenanceService(maintenanceRepo, log)
	backupService := service.NewBackupService(db, fileStorage, cfg.Backup.Prefix, log)

	rateLimiter := middleware.NewRateLimiter(&cfg.RateLimit, log)

	rt := router.NewRouter(cfg, log, db, rateLimiter, router.Handlers{
		Customer:           handler.NewCustomerHandler(customerService, log),
		Vendor:             handler.NewVendorHandler(vendorService, log),
		Employee:           handler.NewEmployeeHandler(employeeService, log),
		Vehicle:            handler.NewVehicleHandler(vehicleService, log),
		Quote:              handler.NewQuoteHandler(quoteService, log),
		Invoice:            handler.NewInvoiceHandler(invoiceService, log),
		PurchaseOrder:      handler.NewPurchaseOrderHandler(poService, log),
		Payslip:            handler.NewPayslipHandler(payslipService, log),
		VehicleTransaction: handler.NewVehicleTransactionHandler(txService, log),
		ExpenseCategory:    handler.NewExpenseCategoryHandler(categoryService, log),
		Dashboard:          handler.NewDashboardHandler(dashboardService, log),
		Admin:              handler.NewAdminHandler(settingsService, maintenanceService, backupService, cfg.Storage.MaxUploadSizeMB, log),
	})

	// Periodic snapshots
	var scheduler *jobs.Scheduler
	if cfg.Backup.Enabled && db != nil {
		scheduler = jobs.NewScheduler(log)
		if err := jobs.RegisterBackupJob(scheduler, backupService, log, cfg.Backup.Cron, jobs.DefaultBackupTimeout); err != nil {
			log.Error("Failed to register backup job", zap.Error(err))
		} else {
			scheduler.Start()
		}
	} else {
		log.Info("Scheduled backups disabled",
			zap.Bool("enabled", cfg.Backup.Enabled),
			zap.Bool("database_available", db != nil),
		)
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      rt.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeoutDuration(),
		WriteTimeout: cfg.Server.WriteTimeoutDuration(),
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
	case sig := <-shutdown:
		log.Info("Shutdown signal received", zap.String("signal", sig.String()))

		if scheduler != nil {
			<-scheduler.Stop().Done()
			log.Info("Scheduler stopped")
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Failed to shutdown gracefully", zap.Error(err))
			return err
		}

		if err := database.Close(db); err != nil {
			log.Warn("Error closing database", zap.Error(err))
		}

		log.Info("Server stopped gracefully")
	}

	return nil
}
