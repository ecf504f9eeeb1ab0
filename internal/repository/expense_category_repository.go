package repository

import (
	"github.com/imanage/imanage-api/internal/domain"
	"gorm.io/gorm"
)

// ExpenseCategoryRepository stores predefined and custom expense categories
type ExpenseCategoryRepository struct {
	*Repository[domain.ExpenseCategory]
}

func NewExpenseCategoryRepository(db *gorm.DB) *ExpenseCategoryRepository {
	return &ExpenseCategoryRepository{New(db, Spec[domain.ExpenseCategory]{
		Entity: "expense category",
		Table:  "expense_categories",
		Order:  "is_custom ASC, name ASC",
		Required: []RequiredField[domain.ExpenseCategory]{
			{Field: "name", Label: "Category name", Value: func(c *domain.ExpenseCategory) string { return c.Name }},
		},
		Unique: []UniqueField[domain.ExpenseCategory]{
			{Column: "name", Label: "Expense category", CaseInsensitive: true, Value: func(c *domain.ExpenseCategory) string { return c.Name }},
		},
	})}
}
