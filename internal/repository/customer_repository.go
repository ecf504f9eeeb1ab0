package repository

import (
	"github.com/imanage/imanage-api/internal/domain"
	"gorm.io/gorm"
)

// CustomerRepository stores customers. Quotes and invoices block deletion.
type CustomerRepository struct {
	*Repository[domain.Customer]
}

func NewCustomerRepository(db *gorm.DB) *CustomerRepository {
	return &CustomerRepository{New(db, Spec[domain.Customer]{
		Entity:        "customer",
		Table:         "customers",
		Order:         "name ASC",
		SearchColumns: []string{"name", "company", "email"},
		Required: []RequiredField[domain.Customer]{
			{Field: "name", Label: "Customer name", Value: func(c *domain.Customer) string { return c.Name }},
		},
		Dependents: []Dependent{
			{Type: "Quote", Query: "SELECT number FROM quotes WHERE customer_id = ? ORDER BY number"},
			{Type: "Invoice", Query: "SELECT number FROM invoices WHERE customer_id = ? ORDER BY number"},
		},
	})}
}
