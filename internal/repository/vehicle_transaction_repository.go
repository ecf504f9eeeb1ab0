package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/imanage/imanage-api/internal/domain"
	"gorm.io/gorm"
)

// TransactionFilters narrows vehicle transaction listings
type TransactionFilters struct {
	VehicleID       *uuid.UUID
	Month           string
	TransactionType domain.TransactionType
}

// VehicleTransactionRepository stores vehicle revenue and expense rows
type VehicleTransactionRepository struct {
	*Repository[domain.VehicleTransaction]
}

func NewVehicleTransactionRepository(db *gorm.DB) *VehicleTransactionRepository {
	optional := func(field, table, label string, get func(*domain.VehicleTransaction) *uuid.UUID) ForeignKey[domain.VehicleTransaction] {
		return ForeignKey[domain.VehicleTransaction]{Field: field, Table: table, Label: label, Value: get}
	}

	return &VehicleTransactionRepository{New(db, Spec[domain.VehicleTransaction]{
		Entity:        "vehicle transaction",
		Table:         "vehicle_transactions",
		Order:         "date DESC, created_at DESC",
		SearchColumns: []string{"category", "description"},
		Foreign: []ForeignKey[domain.VehicleTransaction]{
			{Field: "vehicleId", Table: "vehicles", Label: "Vehicle", Required: true, Value: func(t *domain.VehicleTransaction) *uuid.UUID { return &t.VehicleID }},
			optional("employeeId", "employees", "Employee", func(t *domain.VehicleTransaction) *uuid.UUID { return t.EmployeeID }),
			optional("invoiceId", "invoices", "Invoice", func(t *domain.VehicleTransaction) *uuid.UUID { return t.InvoiceID }),
			optional("purchaseOrderId", "purchase_orders", "Purchase order", func(t *domain.VehicleTransaction) *uuid.UUID { return t.PurchaseOrderID }),
			optional("quoteId", "quotes", "Quote", func(t *domain.VehicleTransaction) *uuid.UUID { return t.QuoteID }),
		},
	})}
}

// ListFiltered returns transactions matching filters, newest first
func (r *VehicleTransactionRepository) ListFiltered(ctx context.Context, filters TransactionFilters) ([]domain.VehicleTransaction, error) {
	db, err := r.conn(ctx)
	if err != nil {
		return nil, err
	}

	query := db.Model(&domain.VehicleTransaction{})
	if filters.VehicleID != nil {
		query = query.Where("vehicle_id = ?", *filters.VehicleID)
	}
	if filters.Month != "" {
		query = query.Where("month = ?", filters.Month)
	}
	if filters.TransactionType != "" {
		query = query.Where("transaction_type = ?", filters.TransactionType)
	}

	var rows []domain.VehicleTransaction
	if err := query.Order("date DESC, created_at DESC").Find(&rows).Error; err != nil {
		return nil, r.wrap("list", err)
	}
	return rows, nil
}
