package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/imanage/imanage-api/internal/domain"
	"github.com/imanage/imanage-api/internal/mapper"
	"github.com/imanage/imanage-api/internal/repository"
	"go.uber.org/zap"
)

type EmployeeService struct {
	employeeRepo *repository.EmployeeRepository
	logger       *zap.Logger
}

func NewEmployeeService(employeeRepo *repository.EmployeeRepository, logger *zap.Logger) *EmployeeService {
	return &EmployeeService{
		employeeRepo: employeeRepo,
		logger:       logger,
	}
}

func (s *EmployeeService) apply(employee *domain.Employee, req *domain.EmployeeRequest) {
	paymentType := req.PaymentType
	if paymentType == "" {
		paymentType = domain.PaymentTypeSalary
	}

	employee.Name = req.Name
	employee.EmployeeID = req.EmployeeID
	employee.Email = req.Email
	employee.Phone = normalizePhone(req.Phone)
	employee.Role = req.Role
	employee.Department = req.Department
	employee.PaymentType = paymentType
	employee.HourlyRate = req.HourlyRate
	employee.Salary = req.Salary
	employee.JoinDate = req.JoinDate
	employee.Status = orDefault(req.Status, "active")
}

func (s *EmployeeService) Create(ctx context.Context, req *domain.EmployeeRequest) (*domain.EmployeeDTO, error) {
	employee := &domain.Employee{}
	s.apply(employee, req)

	if err := s.employeeRepo.Create(ctx, employee, nil); err != nil {
		return nil, fmt.Errorf("failed to create employee: %w", err)
	}

	s.logger.Info("Employee created",
		zap.String("employee_id", employee.ID.String()),
		zap.String("payment_type", string(employee.PaymentType)),
	)
	dto := mapper.ToEmployeeDTO(employee)
	return &dto, nil
}

func (s *EmployeeService) GetByID(ctx context.Context, id uuid.UUID) (*domain.EmployeeDTO, error) {
	employee, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}
	if employee == nil {
		return nil, domain.NewNotFoundError("employee")
	}

	dto := mapper.ToEmployeeDTO(employee)
	return &dto, nil
}

func (s *EmployeeService) Update(ctx context.Context, id uuid.UUID, req *domain.EmployeeRequest) (*domain.EmployeeDTO, error) {
	employee, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}
	if employee == nil {
		return nil, domain.NewNotFoundError("employee")
	}

	s.apply(employee, req)
	if err := s.employeeRepo.Update(ctx, employee, nil); err != nil {
		return nil, fmt.Errorf("failed to update employee: %w", err)
	}

	dto := mapper.ToEmployeeDTO(employee)
	return &dto, nil
}

func (s *EmployeeService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.employeeRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}

	s.logger.Info("Employee deleted", zap.String("employee_id", id.String()))
	return nil
}

func (s *EmployeeService) List(ctx context.Context, search string) ([]domain.EmployeeDTO, error) {
	employees, err := s.employeeRepo.List(ctx, repository.ListOptions{Search: search})
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	dtos := make([]domain.EmployeeDTO, len(employees))
	for i := range employees {
		dtos[i] = mapper.ToEmployeeDTO(&employees[i])
	}
	return dtos, nil
}
