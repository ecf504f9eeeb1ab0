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

type CustomerService struct {
	customerRepo *repository.CustomerRepository
	logger       *zap.Logger
}

func NewCustomerService(customerRepo *repository.CustomerRepository, logger *zap.Logger) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
		logger:       logger,
	}
}

func (s *CustomerService) apply(customer *domain.Customer, req *domain.CustomerRequest) {
	customer.Name = req.Name
	customer.Company = req.Company
	customer.Email = req.Email
	customer.Phone = normalizePhone(req.Phone)
	customer.Address = req.Address
	customer.Notes = req.Notes
}

func (s *CustomerService) Create(ctx context.Context, req *domain.CustomerRequest) (*domain.CustomerDTO, error) {
	customer := &domain.Customer{}
	s.apply(customer, req)

	if err := s.customerRepo.Create(ctx, customer, nil); err != nil {
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}

	s.logger.Info("Customer created", zap.String("customer_id", customer.ID.String()))
	dto := mapper.ToCustomerDTO(customer)
	return &dto, nil
}

func (s *CustomerService) GetByID(ctx context.Context, id uuid.UUID) (*domain.CustomerDTO, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	if customer == nil {
		return nil, domain.NewNotFoundError("customer")
	}

	dto := mapper.ToCustomerDTO(customer)
	return &dto, nil
}

func (s *CustomerService) Update(ctx context.Context, id uuid.UUID, req *domain.CustomerRequest) (*domain.CustomerDTO, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	if customer == nil {
		return nil, domain.NewNotFoundError("customer")
	}

	s.apply(customer, req)
	if err := s.customerRepo.Update(ctx, customer, nil); err != nil {
		return nil, fmt.Errorf("failed to update customer: %w", err)
	}

	dto := mapper.ToCustomerDTO(customer)
	return &dto, nil
}

func (s *CustomerService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.customerRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete customer: %w", err)
	}

	s.logger.Info("Customer deleted", zap.String("customer_id", id.String()))
	return nil
}

func (s *CustomerService) List(ctx context.Context, search string) ([]domain.CustomerDTO, error) {
	customers, err := s.customerRepo.List(ctx, repository.ListOptions{Search: search})
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}

	dtos := make([]domain.CustomerDTO, len(customers))
	for i := range customers {
		dtos[i] = mapper.ToCustomerDTO(&customers[i])
	}
	return dtos, nil
}
