package repository_test

import (
	"context"
	"testing"

	"github.com/imanage/imanage-api/internal/domain"
	"github.com/imanage/imanage-api/internal/repository"
	"github.com/imanage/imanage-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestParseModules(t *testing.T) {
	tests := []struct {
		name    string
		input   []string
		want    []domain.DataModule
		wantErr bool
	}{
		{
			name:  "single module",
			input: []string{"Payslips"},
			want:  []domain.DataModule{domain.ModulePayslips},
		},
		{
			name:  "case and spaces are ignored",
			input: []string{"purchase orders", "VEHICLETRANSACTIONS"},
			want:  []domain.DataModule{domain.ModuleVehicleTransactions, domain.ModulePurchaseOrders},
		},
		{
			name:  "customers imply their documents",
			input: []string{"Customers"},
			want:  []domain.DataModule{domain.ModuleInvoices, domain.ModuleQuotations, domain.ModuleCustomers},
		},
		{
			name:  "duplicates collapse",
			input: []string{"Vendors", "vendors", "PurchaseOrders"},
			want:  []domain.DataModule{domain.ModulePurchaseOrders, domain.ModuleVendors},
		},
		{
			name:    "unknown module",
			input:   []string{"Widgets"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repository.ParseModules(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, domain.KindValidation, domain.KindOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func count(t *testing.T, db *gorm.DB, table string) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Table(table).Count(&n).Error)
	return n
}

func TestMaintenanceRepository_DeleteModules(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewMaintenanceRepository(db)

	customer := testutil.CreateTestCustomer(t, db, "Purged Customer")
	vehicle := testutil.CreateTestVehicle(t, db)
	quote := testutil.CreateTestQuote(t, db, customer.ID, "QT-PURGE", &vehicle.ID)
	invoice := testutil.CreateTestInvoice(t, db, customer.ID, "INV-PURGE")
	require.NoError(t, db.Model(invoice).Update("quote_id", quote.ID).Error)
	testutil.CreateTestTransaction(t, db, vehicle.ID, domain.TransactionTypeRevenue, 250, "2025-01-20")
	require.NoError(t, db.Create(&domain.ExpenseCategory{Name: "Car wash", IsCustom: true}).Error)

	t.Run("quotations detach invoices", func(t *testing.T) {
		modules, err := repository.ParseModules([]string{"Quotations"})
		require.NoError(t, err)

		deleted, err := repo.DeleteModules(context.Background(), modules)
		require.NoError(t, err)
		assert.Equal(t, int64(1), deleted["quotes"])
		assert.Equal(t, int64(1), deleted["quote_items"])
		assert.Equal(t, int64(1), count(t, db, "invoices"))

		var reloaded domain.Invoice
		require.NoError(t, db.First(&reloaded, "id = ?", invoice.ID).Error)
		assert.Nil(t, reloaded.QuoteID)
	})

	t.Run("customers take their invoices along", func(t *testing.T) {
		modules, err := repository.ParseModules([]string{"Customers", "ExpenseCategories"})
		require.NoError(t, err)

		deleted, err := repo.DeleteModules(context.Background(), modules)
		require.NoError(t, err)
		assert.Equal(t, int64(1), deleted["customers"])
		assert.Equal(t, int64(1), deleted["invoices"])
		assert.Equal(t, int64(1), deleted["expense_categories"])
		assert.Zero(t, count(t, db, "customers"))
		assert.Equal(t, int64(10), count(t, db, "expense_categories"), "predefined categories survive")
		assert.Equal(t, int64(1), count(t, db, "vehicle_transactions"))
	})

	t.Run("vehicles cascade transactions", func(t *testing.T) {
		deleted, err := repo.DeleteModules(context.Background(), []domain.DataModule{domain.ModuleVehicles})
		require.NoError(t, err)
		assert.Equal(t, int64(1), deleted["vehicles"])
		assert.Zero(t, count(t, db, "vehicle_transactions"))
	})
}

func TestMaintenanceRepository_DeleteModulesRollsBack(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewMaintenanceRepository(db)

	customer := testutil.CreateTestCustomer(t, db, "Kept Customer")
	testutil.CreateTestInvoice(t, db, customer.ID, "INV-KEPT")
	employee := testutil.CreateTestEmployee(t, db, "Kept Employee")
	require.NoError(t, db.Create(&domain.Payslip{EmployeeID: employee.ID, Month: 1, Year: 2025, Status: domain.PayslipStatusDraft}).Error)

	// Customers without Invoices violates the invoices foreign key, so the
	// earlier payslip purge must be undone too
	_, err := repo.DeleteModules(context.Background(), []domain.DataModule{domain.ModulePayslips, domain.ModuleCustomers})
	require.Error(t, err)

	assert.Equal(t, int64(1), count(t, db, "payslips"))
	assert.Equal(t, int64(1), count(t, db, "customers"))
}

func TestSettingsRepository_DefaultRow(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewSettingsRepository(db)

	settings, err := repo.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.AdminSettingsID, settings.ID)
	assert.Equal(t, "QT-{YYYY}-{SEQ}", settings.QuoteNumberPattern)
	assert.True(t, settings.ShowRevenue)
	assert.True(t, settings.ShowCategoryBreakdown)

	settings.CompanyName = "Fleet Co"
	settings.ShowProfit = false
	require.NoError(t, repo.Save(context.Background(), settings))
	require.NoError(t, repo.SetLogoPath(context.Background(), "branding/logo.png"))

	reloaded, err := repo.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Fleet Co", reloaded.CompanyName)
	assert.False(t, reloaded.ShowProfit)
	assert.Equal(t, "branding/logo.png", reloaded.LogoPath)
	assert.Equal(t, int64(1), count(t, db, "admin_settings"))
}

func TestNumberSequenceRepository(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewNumberSequenceRepository(db)
	ctx := context.Background()

	seq, err := repo.GetCurrentSequence(ctx, domain.DocumentTypeQuote, 2025)
	require.NoError(t, err)
	assert.Zero(t, seq)

	require.NoError(t, repo.SetSequence(ctx, domain.DocumentTypeQuote, 2025, 4))
	require.NoError(t, repo.SetSequence(ctx, domain.DocumentTypeQuote, 2025, 2))

	seq, err = repo.GetCurrentSequence(ctx, domain.DocumentTypeQuote, 2025)
	require.NoError(t, err)
	assert.Equal(t, 4, seq, "sequence never moves backwards")

	seq, err = repo.GetCurrentSequence(ctx, domain.DocumentTypeInvoice, 2025)
	require.NoError(t, err)
	assert.Zero(t, seq)

	customer := testutil.CreateTestCustomer(t, db, "Numbered")
	testutil.CreateTestInvoice(t, db, customer.ID, "INV-2025-001")
	exists, err := repo.NumberExists(ctx, domain.DocumentTypeInvoice, "INV-2025-001")
	require.NoError(t, err)
	assert.True(t, exists)
	exists, err = repo.NumberExists(ctx, domain.DocumentTypeQuote, "INV-2025-001")
	require.NoError(t, err)
	assert.False(t, exists)
}
