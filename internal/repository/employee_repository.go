package repository

import (
	"github.com/imanage/imanage-api/internal/domain"
	"gorm.io/gorm"
)

// EmployeeRepository stores employees. Payslips block deletion; vehicle
// transaction links are cleared by the schema.
type EmployeeRepository struct {
	*Repository[domain.Employee]
}

func NewEmployeeRepository(db *gorm.DB) *EmployeeRepository {
	return &EmployeeRepository{New(db, Spec[domain.Employee]{
		Entity:        "employee",
		Table:         "employees",
		Order:         "name ASC",
		SearchColumns: []string{"name", "employee_id", "role"},
		Required: []RequiredField[domain.Employee]{
			{Field: "name", Label: "Employee name", Value: func(e *domain.Employee) string { return e.Name }},
			{Field: "employeeId", Label: "Employee ID", Value: func(e *domain.Employee) string { return e.EmployeeID }},
		},
		Unique: []UniqueField[domain.Employee]{
			{Column: "employee_id", Label: "Employee ID", Value: func(e *domain.Employee) string { return e.EmployeeID }},
		},
		Dependents: []Dependent{
			{Type: "Payslip", Query: "SELECT printf('%04d-%02d', year, month) FROM payslips WHERE employee_id = ? ORDER BY year, month"},
		},
	})}
}
