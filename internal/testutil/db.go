package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/imanage/imanage-api/internal/config"
	"github.com/imanage/imanage-api/internal/database"
	"github.com/imanage/imanage-api/internal/domain"
	"github.com/imanage/imanage-api/internal/mapper"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var counter atomic.Int64

func next() int64 {
	return counter.Add(1)
}

// SetupTestDB opens a fresh in-memory database with the full schema applied.
// A single connection keeps the in-memory database alive for the test.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	cfg := &config.DatabaseConfig{
		Path:          ":memory:",
		BusyTimeoutMS: 1000,
		MaxOpenConns:  1,
	}
	db, err := database.Open(cfg, zap.NewNop())
	require.NoError(t, err, "failed to open in-memory database")
	require.NoError(t, database.Migrate(db, zap.NewNop()), "failed to migrate in-memory database")

	t.Cleanup(func() {
		_ = database.Close(db)
	})
	return db
}

// CreateTestCustomer creates a test customer and returns it
func CreateTestCustomer(t *testing.T, db *gorm.DB, name string) *domain.Customer {
	t.Helper()
	customer := &domain.Customer{
		Name:    name,
		Company: name + " Ltd",
		Email:   fmt.Sprintf("customer%d@example.com", next()),
		Phone:   "+16502530000",
	}
	require.NoError(t, db.Omit(clause.Associations).Create(customer).Error)
	return customer
}

// CreateTestVendor creates a test vendor and returns it
func CreateTestVendor(t *testing.T, db *gorm.DB, name string) *domain.Vendor {
	t.Helper()
	vendor := &domain.Vendor{
		Name:         name,
		Email:        fmt.Sprintf("vendor%d@example.com", next()),
		PaymentTerms: "Net 30",
	}
	require.NoError(t, db.Create(vendor).Error)
	return vendor
}

// CreateTestEmployee creates a salaried test employee
func CreateTestEmployee(t *testing.T, db *gorm.DB, name string) *domain.Employee {
	t.Helper()
	employee := &domain.Employee{
		Name:        name,
		EmployeeID:  fmt.Sprintf("EMP-%03d", next()),
		PaymentType: domain.PaymentTypeSalary,
		Salary:      3000,
		Status:      "active",
	}
	require.NoError(t, db.Create(employee).Error)
	return employee
}

// CreateTestVehicle creates a test vehicle with a unique number
func CreateTestVehicle(t *testing.T, db *gorm.DB) *domain.Vehicle {
	t.Helper()
	vehicle := &domain.Vehicle{
		VehicleNumber: fmt.Sprintf("VH-%04d", next()),
		VehicleType:   "Van",
		Make:          "Ford",
		Model:         "Transit",
		Year:          2022,
		BasePrice:     120,
		Status:        domain.VehicleStatusAvailable,
	}
	require.NoError(t, db.Create(vehicle).Error)
	return vehicle
}

// CreateTestQuote creates a quote for customer with one line, optionally
// priced from vehicle
func CreateTestQuote(t *testing.T, db *gorm.DB, customerID uuid.UUID, number string, vehicleID *uuid.UUID) *domain.Quote {
	t.Helper()
	totals := mapper.ComputeTotals([]mapper.Line{{Quantity: 2, UnitPrice: 100, TaxPercent: 10}})
	quote := &domain.Quote{
		Number:     number,
		Date:       "2025-01-15",
		ValidUntil: "2025-02-15",
		Currency:   "USD",
		CustomerID: customerID,
		SubTotal:   totals.SubTotal,
		TotalTax:   totals.TotalTax,
		Total:      totals.Total,
		Status:     domain.QuoteStatusDraft,
	}
	require.NoError(t, db.Omit(clause.Associations).Create(quote).Error)

	item := domain.QuoteItem{
		LineItem:  mapper.NewLineItem(domain.LineItemRequest{Description: "Rental"}, totals.Lines[0]),
		QuoteID:   quote.ID,
		VehicleID: vehicleID,
	}
	require.NoError(t, db.Create(&item).Error)
	quote.Items = []domain.QuoteItem{item}
	return quote
}

// CreateTestInvoice creates an invoice for customer without items
func CreateTestInvoice(t *testing.T, db *gorm.DB, customerID uuid.UUID, number string) *domain.Invoice {
	t.Helper()
	invoice := &domain.Invoice{
		Number:     number,
		Date:       "2025-01-20",
		DueDate:    "2025-02-20",
		Currency:   "USD",
		CustomerID: customerID,
		Status:     domain.InvoiceStatusDraft,
	}
	require.NoError(t, db.Omit(clause.Associations).Create(invoice).Error)
	return invoice
}

// CreateTestTransaction books a transaction against vehicle
func CreateTestTransaction(t *testing.T, db *gorm.DB, vehicleID uuid.UUID, txType domain.TransactionType, amount float64, date string) *domain.VehicleTransaction {
	t.Helper()
	tx := &domain.VehicleTransaction{
		VehicleID:       vehicleID,
		TransactionType: txType,
		Amount:          amount,
		Date:            date,
		Month:           mapper.MonthOfDate(date),
	}
	require.NoError(t, db.Create(tx).Error)
	return tx
}
