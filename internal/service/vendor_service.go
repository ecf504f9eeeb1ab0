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

type VendorService struct {
	vendorRepo *repository.VendorRepository
	logger     *zap.Logger
}

func NewVendorService(vendorRepo *repository.VendorRepository, logger *zap.Logger) *VendorService {
	return &VendorService{
		vendorRepo: vendorRepo,
		logger:     logger,
	}
}

func (s *VendorService) apply(vendor *domain.Vendor, req *domain.VendorRequest) {
	vendor.Name = req.Name
	vendor.ContactPerson = req.ContactPerson
	vendor.Email = req.Email
	vendor.Phone = normalizePhone(req.Phone)
	vendor.Address = req.Address
	vendor.BankName = req.BankName
	vendor.BankAccountNumber = req.BankAccountNumber
	vendor.BankCode = req.BankCode
	vendor.PaymentTerms = req.PaymentTerms
	vendor.Notes = req.Notes
}

func (s *VendorService) Create(ctx context.Context, req *domain.VendorRequest) (*domain.VendorDTO, error) {
	vendor := &domain.Vendor{}
	s.apply(vendor, req)

	if err := s.vendorRepo.Create(ctx, vendor, nil); err != nil {
		return nil, fmt.Errorf("failed to create vendor: %w", err)
	}

	s.logger.Info("Vendor created", zap.String("vendor_id", vendor.ID.String()))
	dto := mapper.ToVendorDTO(vendor)
	return &dto, nil
}

func (s *VendorService) GetByID(ctx context.Context, id uuid.UUID) (*domain.VendorDTO, error) {
	vendor, err := s.vendorRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get vendor: %w", err)
	}
	if vendor == nil {
		return nil, domain.NewNotFoundError("vendor")
	}

	dto := mapper.ToVendorDTO(vendor)
	return &dto, nil
}

func (s *VendorService) Update(ctx context.Context, id uuid.UUID, req *domain.VendorRequest) (*domain.VendorDTO, error) {
	vendor, err := s.vendorRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get vendor: %w", err)
	}
	if vendor == nil {
		return nil, domain.NewNotFoundError("vendor")
	}

	s.apply(vendor, req)
	if err := s.vendorRepo.Update(ctx, vendor, nil); err != nil {
		return nil, fmt.Errorf("failed to update vendor: %w", err)
	}

	dto := mapper.ToVendorDTO(vendor)
	return &dto, nil
}

func (s *VendorService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.vendorRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete vendor: %w", err)
	}

	s.logger.Info("Vendor deleted", zap.String("vendor_id", id.String()))
	return nil
}

func (s *VendorService) List(ctx context.Context, search string) ([]domain.VendorDTO, error) {
	vendors, err := s.vendorRepo.List(ctx, repository.ListOptions{Search: search})
	if err != nil {
		return nil, fmt.Errorf("failed to list vendors: %w", err)
	}

	dtos := make([]domain.VendorDTO, len(vendors))
	for i := range vendors {
		dtos[i] = mapper.ToVendorDTO(&vendors[i])
	}
	return dtos, nil
}
