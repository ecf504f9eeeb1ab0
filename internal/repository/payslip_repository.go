package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/imanage/imanage-api/internal/domain"
	"gorm.io/gorm"
)

// PayslipRepository stores payslips, one per employee per month
type PayslipRepository struct {
	*Repository[domain.Payslip]
}

func NewPayslipRepository(db *gorm.DB) *PayslipRepository {
	return &PayslipRepository{New(db, Spec[domain.Payslip]{
		Entity: "payslip",
		Table:  "payslips",
		Order:  "year DESC, month DESC, created_at DESC",
		Scope: func(db *gorm.DB) *gorm.DB {
			return db.Preload("Employee")
		},
		Foreign: []ForeignKey[domain.Payslip]{
			{Field: "employeeId", Table: "employees", Label: "Employee", Required: true, Value: func(p *domain.Payslip) *uuid.UUID { return &p.EmployeeID }},
		},
		Checks: []Check[domain.Payslip]{uniquePeriod},
	})}
}

func uniquePeriod(ctx context.Context, tx *gorm.DB, p *domain.Payslip, excludeID *uuid.UUID) error {
	query := tx.Table("payslips").Where("employee_id = ? AND year = ? AND month = ?", p.EmployeeID, p.Year, p.Month)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check payslip period: %w", err)
	}
	if count > 0 {
		return domain.NewValidationError("month", fmt.Sprintf("A payslip for %04d-%02d already exists for this employee", p.Year, p.Month))
	}
	return nil
}

// ListByPeriod returns the payslips of one calendar month
func (r *PayslipRepository) ListByPeriod(ctx context.Context, year, month int) ([]domain.Payslip, error) {
	db, err := r.conn(ctx)
	if err != nil {
		return nil, err
	}
	var payslips []domain.Payslip
	err = r.read(db).
		Where("year = ? AND month = ?", year, month).
		Order("created_at ASC").
		Find(&payslips).Error
	if err != nil {
		return nil, r.wrap("list", err)
	}
	return payslips, nil
}
