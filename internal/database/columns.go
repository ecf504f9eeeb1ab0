package database

import (
	"fmt"

	"gorm.io/gorm"
)

// Column describes a column that may be missing from databases created by
// older builds. Definition is everything after the column name in
// ALTER TABLE ... ADD COLUMN.
type Column struct {
	Table      string
	Name       string
	Definition string
}

// AdditiveColumns lists columns introduced after the first release. Each is
// also part of the initial schema, so fresh databases never need them.
var AdditiveColumns = []Column{
	{Table: "invoices", Name: "tax_override", Definition: "REAL"},
	{Table: "invoices", Name: "amount_received", Definition: "REAL NOT NULL DEFAULT 0"},
	{Table: "invoices", Name: "vendor_id", Definition: "TEXT REFERENCES vendors(id)"},
	{Table: "vehicle_transactions", Name: "month", Definition: "TEXT NOT NULL DEFAULT ''"},
	{Table: "vehicle_transactions", Name: "quote_id", Definition: "TEXT REFERENCES quotes(id) ON DELETE SET NULL"},
	{Table: "admin_settings", Name: "show_category_breakdown", Definition: "INTEGER NOT NULL DEFAULT 1"},
	{Table: "admin_settings", Name: "po_number_pattern", Definition: "TEXT NOT NULL DEFAULT 'PO-{YYYY}-{SEQ}'"},
}

type tableColumn struct {
	Cid       int     `gorm:"column:cid"`
	Name      string  `gorm:"column:name"`
	Type      string  `gorm:"column:type"`
	NotNull   int     `gorm:"column:notnull"`
	DfltValue *string `gorm:"column:dflt_value"`
	Pk        int     `gorm:"column:pk"`
}

// ColumnNames returns the column names of table via PRAGMA table_info
func ColumnNames(db *gorm.DB, table string) (map[string]bool, error) {
	var cols []tableColumn
	if err := db.Raw(fmt.Sprintf("PRAGMA table_info(%q)", table)).Scan(&cols).Error; err != nil {
		return nil, fmt.Errorf("failed to read columns of %s: %w", table, err)
	}
	names := make(map[string]bool, len(cols))
	for _, c := range cols {
		names[c.Name] = true
	}
	return names, nil
}

// EnsureColumn adds c when its table lacks it and reports whether it did
func EnsureColumn(db *gorm.DB, c Column) (bool, error) {
	names, err := ColumnNames(db, c.Table)
	if err != nil {
		return false, err
	}
	if len(names) == 0 {
		return false, fmt.Errorf("table %s does not exist", c.Table)
	}
	if names[c.Name] {
		return false, nil
	}
	stmt := fmt.Sprintf("ALTER TABLE %q ADD COLUMN %q %s", c.Table, c.Name, c.Definition)
	if err := db.Exec(stmt).Error; err != nil {
		return false, fmt.Errorf("failed to add %s.%s: %w", c.Table, c.Name, err)
	}
	return true, nil
}
