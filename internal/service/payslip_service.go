package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/imanage/imanage-api/internal/domain"
	"github.com/imanage/imanage-api/internal/mapper"
	"github.com/imanage/imanage-api/internal/repository"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type PayslipService struct {
	payslipRepo  *repository.PayslipRepository
	employeeRepo *repository.EmployeeRepository
	logger       *zap.Logger
}

func NewPayslipService(payslipRepo *repository.PayslipRepository, employeeRepo *repository.EmployeeRepository, logger *zap.Logger) *PayslipService {
	return &PayslipService{
		payslipRepo:  payslipRepo,
		employeeRepo: employeeRepo,
		logger:       logger,
	}
}

// PayBreakdown is the computed part of a payslip
type PayBreakdown struct {
	BaseSalary  float64
	OvertimePay float64
	NetPay      float64
}

// ComputePay derives overtime and net pay. Hourly employees with recorded
// hours are paid hoursWorked × hourlyRate instead of the requested base.
func ComputePay(employee *domain.Employee, req *domain.PayslipRequest) PayBreakdown {
	base := decimal.NewFromFloat(req.BaseSalary)
	if employee != nil && employee.PaymentType == domain.PaymentTypeHourly && req.HoursWorked > 0 {
		base = decimal.NewFromFloat(req.HoursWorked).Mul(decimal.NewFromFloat(employee.HourlyRate))
	}
	overtime := decimal.NewFromFloat(req.OvertimeHours).Mul(decimal.NewFromFloat(req.OvertimeRate))
	net := base.Add(overtime).
		Add(decimal.NewFromFloat(req.Allowances)).
		Sub(decimal.NewFromFloat(req.Deductions))

	return PayBreakdown{
		BaseSalary:  base.InexactFloat64(),
		OvertimePay: overtime.InexactFloat64(),
		NetPay:      net.InexactFloat64(),
	}
}

func (s *PayslipService) apply(ctx context.Context, payslip *domain.Payslip, req *domain.PayslipRequest) error {
	employeeID, err := parseRequiredRef("employeeId", domain.ResolveRef(req.EmployeeID, req.Employee))
	if err != nil {
		return err
	}
	employee, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return fmt.Errorf("failed to get employee: %w", err)
	}
	if employee == nil {
		return domain.NewValidationError("employeeId", fmt.Sprintf("Employee %s does not exist", employeeID))
	}

	pay := ComputePay(employee, req)
	status := req.Status
	if status == "" {
		status = domain.PayslipStatusDraft
	}

	payslip.EmployeeID = employeeID
	payslip.Employee = nil
	payslip.Month = req.Month
	payslip.Year = req.Year
	payslip.BaseSalary = pay.BaseSalary
	payslip.HoursWorked = req.HoursWorked
	payslip.OvertimeHours = req.OvertimeHours
	payslip.OvertimeRate = req.OvertimeRate
	payslip.OvertimePay = pay.OvertimePay
	payslip.Allowances = req.Allowances
	payslip.Deductions = req.Deductions
	payslip.NetPay = pay.NetPay
	payslip.Status = status
	payslip.PaymentDate = req.PaymentDate
	payslip.Notes = req.Notes
	return nil
}

func (s *PayslipService) Create(ctx context.Context, req *domain.PayslipRequest) (*domain.PayslipDTO, error) {
	payslip := &domain.Payslip{}
	if err := s.apply(ctx, payslip, req); err != nil {
		return nil, err
	}

	if err := s.payslipRepo.Create(ctx, payslip, nil); err != nil {
		return nil, fmt.Errorf("failed to create payslip: %w", err)
	}

	s.logger.Info("Payslip created",
		zap.String("payslip_id", payslip.ID.String()),
		zap.String("employee_id", payslip.EmployeeID.String()),
		zap.Int("year", payslip.Year),
		zap.Int("month", payslip.Month),
	)
	return s.GetByID(ctx, payslip.ID)
}

func (s *PayslipService) GetByID(ctx context.Context, id uuid.UUID) (*domain.PayslipDTO, error) {
	payslip, err := s.payslipRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get payslip: %w", err)
	}
	if payslip == nil {
		return nil, domain.NewNotFoundError("payslip")
	}

	dto := mapper.ToPayslipDTO(payslip)
	return &dto, nil
}

func (s *PayslipService) Update(ctx context.Context, id uuid.UUID, req *domain.PayslipRequest) (*domain.PayslipDTO, error) {
	payslip, err := s.payslipRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get payslip: %w", err)
	}
	if payslip == nil {
		return nil, domain.NewNotFoundError("payslip")
	}

	if err := s.apply(ctx, payslip, req); err != nil {
		return nil, err
	}
	if err := s.payslipRepo.Update(ctx, payslip, nil); err != nil {
		return nil, fmt.Errorf("failed to update payslip: %w", err)
	}
	return s.GetByID(ctx, id)
}

func (s *PayslipService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.payslipRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete payslip: %w", err)
	}
	return nil
}

func (s *PayslipService) List(ctx context.Context) ([]domain.PayslipDTO, error) {
	payslips, err := s.payslipRepo.List(ctx, repository.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to list payslips: %w", err)
	}
	return toPayslipDTOs(payslips), nil
}

// ListByMonth lists the payslips of a YYYY-MM month
func (s *PayslipService) ListByMonth(ctx context.Context, month string) ([]domain.PayslipDTO, error) {
	year, m, err := mapper.ParseMonth(month)
	if err != nil {
		return nil, domain.NewValidationError("month", err.Error())
	}

	payslips, err := s.payslipRepo.ListByPeriod(ctx, year, m)
	if err != nil {
		return nil, fmt.Errorf("failed to list payslips: %w", err)
	}
	return toPayslipDTOs(payslips), nil
}

func toPayslipDTOs(payslips []domain.Payslip) []domain.PayslipDTO {
	dtos := make([]domain.PayslipDTO, len(payslips))
	for i := range payslips {
		dtos[i] = mapper.ToPayslipDTO(&payslips[i])
	}
	return dtos
}
