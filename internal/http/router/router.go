package router

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/imanage/imanage-api/internal/config"
	"github.com/imanage/imanage-api/internal/database"
	"github.com/imanage/imanage-api/internal/http/handler"
	"github.com/imanage/imanage-api/internal/http/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "github.com/imanage/imanage-api/docs" // Import generated swagger docs
)

// Handlers groups every resource handler mounted under /api
type Handlers struct {
	Customer           *handler.CustomerHandler
	Vendor             *handler.VendorHandler
	Employee           *handler.EmployeeHandler
	Vehicle            *handler.VehicleHandler
	Quote              *handler.QuoteHandler
	Invoice            *handler.InvoiceHandler
	PurchaseOrder      *handler.PurchaseOrderHandler
	Payslip            *handler.PayslipHandler
	VehicleTransaction *handler.VehicleTransactionHandler
	ExpenseCategory    *handler.ExpenseCategoryHandler
	Dashboard          *handler.DashboardHandler
	Admin              *handler.AdminHandler
}

type Router struct {
	cfg         *config.Config
	logger      *zap.Logger
	db          *gorm.DB
	rateLimiter *middleware.RateLimiter
	handlers    Handlers
}

func NewRouter(
	cfg *config.Config,
	logger *zap.Logger,
	db *gorm.DB,
	rateLimiter *middleware.RateLimiter,
	handlers Handlers,
) *Router {
	return &Router{
		cfg:         cfg,
		logger:      logger,
		db:          db,
		rateLimiter: rateLimiter,
		handlers:    handlers,
	}
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(rt.logger))
	r.Use(middleware.Logging(rt.logger))
	r.Use(middleware.SecurityHeaders(&rt.cfg.Security))
	r.Use(middleware.CORS(&rt.cfg.CORS, rt.cfg.App.Environment, rt.logger))
	r.Use(rt.rateLimiter.Limit)

	// Health check (basic liveness probe)
	r.Get("/health", rt.liveness)

	// Database health check with pool stats
	r.Get("/health/db", rt.databaseHealth)

	if rt.cfg.Server.EnableSwagger {
		r.Get("/swagger/*", httpSwagger.Handler(
			httpSwagger.URL("/swagger/doc.json"),
		))
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.APIKey(rt.cfg.ApiKey.Value, rt.logger))
		if d := rt.cfg.Server.RequestTimeoutDuration(); d > 0 {
			r.Use(chimw.Timeout(d))
		}

		h := rt.handlers

		r.Route("/customers", func(r chi.Router) {
			r.Get("/", h.Customer.List)
			r.Post("/", h.Customer.Create)
			r.Get("/{id}", h.Customer.GetByID)
			r.Put("/{id}", h.Customer.Update)
			r.Delete("/{id}", h.Customer.Delete)
		})

		r.Route("/vendors", func(r chi.Router) {
			r.Get("/", h.Vendor.List)
			r.Post("/", h.Vendor.Create)
			r.Get("/{id}", h.Vendor.GetByID)
			r.Put("/{id}", h.Vendor.Update)
			r.Delete("/{id}", h.Vendor.Delete)
		})

		r.Route("/employees", func(r chi.Router) {
			r.Get("/", h.Employee.List)
			r.Post("/", h.Employee.Create)
			r.Get("/{id}", h.Employee.GetByID)
			r.Put("/{id}", h.Employee.Update)
			r.Delete("/{id}", h.Employee.Delete)
		})

		r.Route("/vehicles", func(r chi.Router) {
			r.Get("/", h.Vehicle.List)
			r.Post("/", h.Vehicle.Create)
			r.Get("/{id}", h.Vehicle.GetByID)
			r.Put("/{id}", h.Vehicle.Update)
			r.Delete("/{id}", h.Vehicle.Delete)
			r.Get("/{id}/profitability", h.Dashboard.GetVehicleProfitability)
		})

		// Documents with line items
		r.Route("/quotes", func(r chi.Router) {
			r.Get("/", h.Quote.List)
			r.Post("/", h.Quote.Create)
			r.Get("/next-number", h.Quote.NextNumber)
			r.Get("/{id}", h.Quote.GetByID)
			r.Put("/{id}", h.Quote.Update)
			r.Delete("/{id}", h.Quote.Delete)
			r.Post("/{id}/items", h.Quote.AddItem)
			r.Put("/{id}/items/{index}", h.Quote.UpdateItem)
			r.Delete("/{id}/items/{index}", h.Quote.RemoveItem)
		})

		r.Route("/invoices", func(r chi.Router) {
			r.Get("/", h.Invoice.List)
			r.Post("/", h.Invoice.Create)
			r.Get("/next-number", h.Invoice.NextNumber)
			r.Get("/{id}", h.Invoice.GetByID)
			r.Put("/{id}", h.Invoice.Update)
			r.Delete("/{id}", h.Invoice.Delete)
			r.Post("/{id}/items", h.Invoice.AddItem)
			r.Put("/{id}/items/{index}", h.Invoice.UpdateItem)
			r.Delete("/{id}/items/{index}", h.Invoice.RemoveItem)
		})

		r.Route("/purchase-orders", func(r chi.Router) {
			r.Get("/", h.PurchaseOrder.List)
			r.Post("/", h.PurchaseOrder.Create)
			r.Get("/next-number", h.PurchaseOrder.NextNumber)
			r.Get("/{id}", h.PurchaseOrder.GetByID)
			r.Put("/{id}", h.PurchaseOrder.Update)
			r.Delete("/{id}", h.PurchaseOrder.Delete)
			r.Post("/{id}/items", h.PurchaseOrder.AddItem)
			r.Put("/{id}/items/{index}", h.PurchaseOrder.UpdateItem)
			r.Delete("/{id}/items/{index}", h.PurchaseOrder.RemoveItem)
		})

		r.Route("/payslips", func(r chi.Router) {
			r.Get("/", h.Payslip.List)
			r.Post("/", h.Payslip.Create)
			r.Get("/month/{month}", h.Payslip.ListByMonth)
			r.Get("/{id}", h.Payslip.GetByID)
			r.Put("/{id}", h.Payslip.Update)
			r.Delete("/{id}", h.Payslip.Delete)
		})

		r.Route("/vehicle-transactions", func(r chi.Router) {
			r.Get("/", h.VehicleTransaction.List)
			r.Post("/", h.VehicleTransaction.Create)
			r.Get("/{id}", h.VehicleTransaction.GetByID)
			r.Put("/{id}", h.VehicleTransaction.Update)
			r.Delete("/{id}", h.VehicleTransaction.Delete)
		})

		r.Route("/expense-categories", func(r chi.Router) {
			r.Get("/", h.ExpenseCategory.List)
			r.Post("/", h.ExpenseCategory.Create)
			r.Get("/{id}", h.ExpenseCategory.GetByID)
			r.Put("/{id}", h.ExpenseCategory.Update)
			r.Delete("/{id}", h.ExpenseCategory.Delete)
		})

		r.Get("/vehicle-finances/dashboard", h.Dashboard.GetMetrics)

		r.Route("/admin", func(r chi.Router) {
			r.Get("/settings", h.Admin.GetSettings)
			r.Put("/settings", h.Admin.UpdateSettings)
			r.Get("/settings/logo", h.Admin.GetLogo)
			r.Put("/settings/logo", h.Admin.UploadLogo)
			r.Post("/demo-data", h.Admin.SeedDemoData)
			r.Post("/modules/delete", h.Admin.DeleteModules)
			r.Post("/backup", h.Admin.Backup)
		})
	})

	return r
}

// liveness always answers 200 so the desktop shell can tell a running API
// without a database from a dead process
func (rt *Router) liveness(w http.ResponseWriter, r *http.Request) {
	dbStatus := "connected"
	if err := database.HealthCheck(rt.db); err != nil {
		dbStatus = "unavailable"
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"status":    "ok",
		"database":  dbStatus,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (rt *Router) databaseHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	stats, err := database.HealthCheckWithStats(rt.db)
	if err != nil {
		rt.logger.Error("Database health check failed", zap.Error(err))
		w.WriteHeader(http.StatusServiceUnavailable)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  "unhealthy",
			"error":   err.Error(),
			"service": "database",
		})
		return
	}

	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  "healthy",
		"service": "database",
		"stats": map[string]interface{}{
			"max_open_connections": stats.MaxOpenConnections,
			"open_connections":     stats.OpenConnections,
			"in_use":               stats.InUse,
			"idle":                 stats.Idle,
			"wait_count":           stats.WaitCount,
			"wait_duration_ms":     stats.WaitDuration.Milliseconds(),
		},
	})
}
