package repository

import (
	"github.com/imanage/imanage-api/internal/domain"
	"gorm.io/gorm"
)

// VendorRepository stores vendors. Purchase orders and invoices block deletion.
type VendorRepository struct {
	*Repository[domain.Vendor]
}

func NewVendorRepository(db *gorm.DB) *VendorRepository {
	return &VendorRepository{New(db, Spec[domain.Vendor]{
		Entity:        "vendor",
		Table:         "vendors",
		Order:         "name ASC",
		SearchColumns: []string{"name", "contact_person", "email"},
		Required: []RequiredField[domain.Vendor]{
			{Field: "name", Label: "Vendor name", Value: func(v *domain.Vendor) string { return v.Name }},
		},
		Dependents: []Dependent{
			{Type: "Purchase Order", Query: "SELECT number FROM purchase_orders WHERE vendor_id = ? ORDER BY number"},
			{Type: "Invoice", Query: "SELECT number FROM invoices WHERE vendor_id = ? ORDER BY number"},
		},
	})}
}
