package handler_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/imanage/imanage-api/internal/config"
	"github.com/imanage/imanage-api/internal/domain"
	"github.com/imanage/imanage-api/internal/http/handler"
	"github.com/imanage/imanage-api/internal/http/middleware"
	"github.com/imanage/imanage-api/internal/http/router"
	"github.com/imanage/imanage-api/internal/repository"
	"github.com/imanage/imanage-api/internal/service"
	"github.com/imanage/imanage-api/internal/storage"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const testAPIKey = "test-key"

func testConfig() *config.Config {
	return &config.Config{
		App:     config.AppConfig{Name: "iManage", Environment: "test"},
		ApiKey:  config.ApiKeyConfig{Value: testAPIKey},
		Storage: config.StorageConfig{Mode: "local", MaxUploadSizeMB: 1},
		Backup:  config.BackupConfig{Prefix: "backups"},
	}
}

// newTestServer wires the full API against db, which may be nil
func newTestServer(t *testing.T, db *gorm.DB) http.Handler {
	t.Helper()
	cfg := testConfig()
	log := zap.NewNop()

	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	customerRepo := repository.NewCustomerRepository(db)
	employeeRepo := repository.NewEmployeeRepository(db)
	vehicleRepo := repository.NewVehicleRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	txRepo := repository.NewVehicleTransactionRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	numbering := service.NewNumberSequenceService(repository.NewNumberSequenceRepository(db), settingsRepo, log)

	rt := router.NewRouter(cfg, log, db, middleware.NewRateLimiter(&cfg.RateLimit, log), router.Handlers{
		Customer:           handler.NewCustomerHandler(service.NewCustomerService(customerRepo, log), log),
		Vendor:             handler.NewVendorHandler(service.NewVendorService(repository.NewVendorRepository(db), log), log),
		Employee:           handler.NewEmployeeHandler(service.NewEmployeeService(employeeRepo, log), log),
		Vehicle:            handler.NewVehicleHandler(service.NewVehicleService(vehicleRepo, log), log),
		Quote:              handler.NewQuoteHandler(service.NewQuoteService(repository.NewQuoteRepository(db), numbering, log), log),
		Invoice:            handler.NewInvoiceHandler(service.NewInvoiceService(invoiceRepo, numbering, log), log),
		PurchaseOrder:      handler.NewPurchaseOrderHandler(service.NewPurchaseOrderService(repository.NewPurchaseOrderRepository(db), numbering, log), log),
		Payslip:            handler.NewPayslipHandler(service.NewPayslipService(repository.NewPayslipRepository(db), employeeRepo, log), log),
		VehicleTransaction: handler.NewVehicleTransactionHandler(service.NewVehicleTransactionService(txRepo, log), log),
		ExpenseCategory:    handler.NewExpenseCategoryHandler(service.NewExpenseCategoryService(repository.NewExpenseCategoryRepository(db), log), log),
		Dashboard:          handler.NewDashboardHandler(service.NewDashboardService(txRepo, vehicleRepo, invoiceRepo, customerRepo, log), log),
		Admin: handler.NewAdminHandler(
			service.NewSettingsService(settingsRepo, store, log),
			service.NewMaintenanceService(repository.NewMaintenanceRepository(db), log),
			service.NewBackupService(db, store, cfg.Backup.Prefix, log),
			cfg.Storage.MaxUploadSizeMB,
			log,
		),
	})
	return rt.Setup()
}

func do(t *testing.T, h http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		r = bytes.NewBufferString(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		r = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.APIKeyHeader, testAPIKey)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())
	return v
}

func apiError(t *testing.T, rr *httptest.ResponseRecorder) domain.APIError {
	t.Helper()
	return decode[domain.APIError](t, rr)
}
