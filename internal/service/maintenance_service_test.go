package service_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/imanage/imanage-api/internal/domain"
	"github.com/imanage/imanage-api/internal/repository"
	"github.com/imanage/imanage-api/internal/service"
	"github.com/imanage/imanage-api/internal/storage"
	"github.com/imanage/imanage-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMaintenanceService_SeedDemoData(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := service.NewMaintenanceService(repository.NewMaintenanceRepository(db), zap.NewNop())
	svc.SetClock(fixedClock)
	ctx := context.Background()

	result, err := svc.SeedDemoData(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Customers)
	assert.Equal(t, 4, result.Vehicles)
	assert.Equal(t, 3, result.Quotes)
	assert.Equal(t, 3, result.Invoices)
	assert.Equal(t, 2, result.PurchaseOrders)
	assert.Equal(t, 2, result.Payslips)
	assert.Positive(t, result.VehicleTransactions)

	// Seeding twice must not collide on unique numbers
	_, err = svc.SeedDemoData(ctx)
	require.NoError(t, err)

	txSvc := service.NewVehicleTransactionService(repository.NewVehicleTransactionRepository(db), zap.NewNop())
	rows, err := txSvc.List(ctx, repository.TransactionFilters{})
	require.NoError(t, err)
	for _, r := range rows {
		assert.NoError(t, service.ValidateTransactionDate(r.Date, fixedNow), r.Date)
		assert.Equal(t, r.Date[:7], r.Month)
	}

	dashboard := service.NewDashboardService(
		repository.NewVehicleTransactionRepository(db),
		repository.NewVehicleRepository(db),
		repository.NewInvoiceRepository(db),
		repository.NewCustomerRepository(db),
		zap.NewNop(),
	)
	dashboard.SetClock(fixedClock)
	metrics := dashboard.GetDashboardMetrics(ctx)
	assert.Equal(t, 8, metrics.Overall.VehicleCount)
	assert.NotEmpty(t, metrics.CustomerBased.TopCustomers)
}

func TestMaintenanceService_DeleteModules(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := service.NewMaintenanceService(repository.NewMaintenanceRepository(db), zap.NewNop())
	svc.SetClock(fixedClock)
	ctx := context.Background()

	_, err := svc.SeedDemoData(ctx)
	require.NoError(t, err)

	result, err := svc.DeleteModules(ctx, &domain.DeleteModulesRequest{Modules: []string{"customers"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"Invoices", "Quotations", "Customers"}, result.Modules)
	assert.Equal(t, int64(3), result.RowsDeleted["customers"])
	assert.Equal(t, int64(3), result.RowsDeleted["invoices"])

	_, err = svc.DeleteModules(ctx, &domain.DeleteModulesRequest{Modules: []string{"Spaceships"}})
	requireKind(t, err, domain.KindValidation)
}

func TestBackupService_Run(t *testing.T) {
	db := testutil.SetupTestDB(t)
	base := t.TempDir()
	store, err := storage.NewLocalStorage(base)
	require.NoError(t, err)
	testutil.CreateTestCustomer(t, db, "Backed Up")

	svc := service.NewBackupService(db, store, "backups", zap.NewNop())
	svc.SetClock(fixedClock)

	result, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "backups/imanage-20250315-103000.db", svc.ObjectKey(fixedNow))
	assert.Positive(t, result.SizeBytes)
	assert.Equal(t, "2025-03-15T10:30:00Z", result.CreatedAt)

	info, err := os.Stat(filepath.Join(base, "backups", "imanage-20250315-103000.db"))
	require.NoError(t, err)
	assert.Equal(t, result.SizeBytes, info.Size())
}

func TestBackupService_NoDatabase(t *testing.T) {
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	_, err = service.NewBackupService(nil, store, "", zap.NewNop()).Run(context.Background())
	requireKind(t, err, domain.KindUnavailable)
}
