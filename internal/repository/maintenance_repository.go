package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/imanage/imanage-api/internal/domain"
	"gorm.io/gorm"
)

type purgeStep struct {
	table string
	sql   string
}

// moduleOrder is the dependency-safe deletion order: children before parents
var moduleOrder = []domain.DataModule{
	domain.ModuleVehicleTransactions,
	domain.ModulePayslips,
	domain.ModuleInvoices,
	domain.ModuleQuotations,
	domain.ModulePurchaseOrders,
	domain.ModuleVehicles,
	domain.ModuleEmployees,
	domain.ModuleCustomers,
	domain.ModuleVendors,
	domain.ModuleExpenseCategories,
}

// moduleImplies lists modules whose rows cannot outlive their parent module
var moduleImplies = map[domain.DataModule][]domain.DataModule{
	domain.ModuleCustomers: {domain.ModuleQuotations, domain.ModuleInvoices},
	domain.ModuleVendors:   {domain.ModulePurchaseOrders},
	domain.ModuleEmployees: {domain.ModulePayslips},
}

// Steps without a table detach optional references held by surviving modules
var moduleSteps = map[domain.DataModule][]purgeStep{
	domain.ModuleVehicleTransactions: {
		{table: "vehicle_transactions", sql: "DELETE FROM vehicle_transactions"},
	},
	domain.ModulePayslips: {
		{table: "payslips", sql: "DELETE FROM payslips"},
	},
	domain.ModuleInvoices: {
		{table: "invoice_items", sql: "DELETE FROM invoice_items"},
		{table: "invoices", sql: "DELETE FROM invoices"},
	},
	domain.ModuleQuotations: {
		{sql: "UPDATE invoices SET quote_id = NULL WHERE quote_id IS NOT NULL"},
		{table: "quote_items", sql: "DELETE FROM quote_items"},
		{table: "quotes", sql: "DELETE FROM quotes"},
	},
	domain.ModulePurchaseOrders: {
		{sql: "UPDATE invoices SET purchase_order_id = NULL WHERE purchase_order_id IS NOT NULL"},
		{table: "po_items", sql: "DELETE FROM po_items"},
		{table: "purchase_orders", sql: "DELETE FROM purchase_orders"},
	},
	domain.ModuleVehicles: {
		{sql: "UPDATE quote_items SET vehicle_id = NULL WHERE vehicle_id IS NOT NULL"},
		{sql: "UPDATE invoice_items SET vehicle_id = NULL WHERE vehicle_id IS NOT NULL"},
		{table: "vehicles", sql: "DELETE FROM vehicles"},
	},
	domain.ModuleEmployees: {
		{table: "employees", sql: "DELETE FROM employees"},
	},
	domain.ModuleCustomers: {
		{table: "customers", sql: "DELETE FROM customers"},
	},
	domain.ModuleVendors: {
		{sql: "UPDATE invoices SET vendor_id = NULL WHERE vendor_id IS NOT NULL"},
		{table: "vendors", sql: "DELETE FROM vendors"},
	},
	domain.ModuleExpenseCategories: {
		{table: "expense_categories", sql: "DELETE FROM expense_categories WHERE is_custom = 1"},
	},
}

// ParseModules resolves module names case-insensitively, adds implied
// modules and returns them in deletion order
func ParseModules(names []string) ([]domain.DataModule, error) {
	known := make(map[string]domain.DataModule, len(moduleOrder))
	for _, m := range moduleOrder {
		known[strings.ToLower(string(m))] = m
	}

	selected := make(map[domain.DataModule]bool)
	var add func(m domain.DataModule)
	add = func(m domain.DataModule) {
		if selected[m] {
			return
		}
		selected[m] = true
		for _, dep := range moduleImplies[m] {
			add(dep)
		}
	}

	for _, name := range names {
		key := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), " ", ""))
		m, ok := known[key]
		if !ok {
			return nil, domain.NewValidationError("modules", fmt.Sprintf("Unknown module %q", name))
		}
		add(m)
	}

	ordered := make([]domain.DataModule, 0, len(selected))
	for _, m := range moduleOrder {
		if selected[m] {
			ordered = append(ordered, m)
		}
	}
	return ordered, nil
}

// MaintenanceRepository runs multi-table maintenance inside one transaction
type MaintenanceRepository struct {
	db *gorm.DB
}

func NewMaintenanceRepository(db *gorm.DB) *MaintenanceRepository {
	return &MaintenanceRepository{db: db}
}

// DeleteModules purges modules, which must already be in deletion order.
// Any failure rolls back every module.
func (r *MaintenanceRepository) DeleteModules(ctx context.Context, modules []domain.DataModule) (map[string]int64, error) {
	deleted := make(map[string]int64)
	err := Transaction(ctx, r.db, func(tx *gorm.DB) error {
		for _, m := range modules {
			for _, step := range moduleSteps[m] {
				result := tx.Exec(step.sql)
				if result.Error != nil {
					return fmt.Errorf("failed to purge %s: %w", m, result.Error)
				}
				if step.table != "" {
					deleted[step.table] += result.RowsAffected
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, wrapError("delete", "modules", err)
	}
	return deleted, nil
}

// Transaction exposes a single transaction to callers that write many entities
func (r *MaintenanceRepository) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return Transaction(ctx, r.db, fn)
}
