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

type VehicleService struct {
	vehicleRepo *repository.VehicleRepository
	logger      *zap.Logger
}

func NewVehicleService(vehicleRepo *repository.VehicleRepository, logger *zap.Logger) *VehicleService {
	return &VehicleService{
		vehicleRepo: vehicleRepo,
		logger:      logger,
	}
}

func applyVehicle(vehicle *domain.Vehicle, req *domain.VehicleRequest) {
	status := req.Status
	if status == "" {
		status = domain.VehicleStatusAvailable
	}
	vehicle.VehicleNumber = req.VehicleNumber
	vehicle.VehicleType = req.VehicleType
	vehicle.Make = req.Make
	vehicle.Model = req.Model
	vehicle.Year = req.Year
	vehicle.BasePrice = req.BasePrice
	vehicle.Status = status
	vehicle.Notes = req.Notes
}

func (s *VehicleService) Create(ctx context.Context, req *domain.VehicleRequest) (*domain.VehicleDTO, error) {
	vehicle := &domain.Vehicle{}
	applyVehicle(vehicle, req)

	if err := s.vehicleRepo.Create(ctx, vehicle, nil); err != nil {
		return nil, fmt.Errorf("failed to create vehicle: %w", err)
	}

	s.logger.Info("Vehicle created",
		zap.String("vehicle_id", vehicle.ID.String()),
		zap.String("vehicle_number", vehicle.VehicleNumber),
	)
	dto := mapper.ToVehicleDTO(vehicle)
	return &dto, nil
}

func (s *VehicleService) GetByID(ctx context.Context, id uuid.UUID) (*domain.VehicleDTO, error) {
	vehicle, err := s.vehicleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get vehicle: %w", err)
	}
	if vehicle == nil {
		return nil, domain.NewNotFoundError("vehicle")
	}

	dto := mapper.ToVehicleDTO(vehicle)
	return &dto, nil
}

func (s *VehicleService) Update(ctx context.Context, id uuid.UUID, req *domain.VehicleRequest) (*domain.VehicleDTO, error) {
	vehicle, err := s.vehicleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get vehicle: %w", err)
	}
	if vehicle == nil {
		return nil, domain.NewNotFoundError("vehicle")
	}

	applyVehicle(vehicle, req)
	if err := s.vehicleRepo.Update(ctx, vehicle, nil); err != nil {
		return nil, fmt.Errorf("failed to update vehicle: %w", err)
	}

	dto := mapper.ToVehicleDTO(vehicle)
	return &dto, nil
}

// Delete removes the vehicle and, through the schema, its transactions.
// Quote and invoice lines still pointing at it block the delete.
func (s *VehicleService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.vehicleRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete vehicle: %w", err)
	}

	s.logger.Info("Vehicle deleted", zap.String("vehicle_id", id.String()))
	return nil
}

func (s *VehicleService) List(ctx context.Context, search string) ([]domain.VehicleDTO, error) {
	vehicles, err := s.vehicleRepo.List(ctx, repository.ListOptions{Search: search})
	if err != nil {
		return nil, fmt.Errorf("failed to list vehicles: %w", err)
	}

	dtos := make([]domain.VehicleDTO, len(vehicles))
	for i := range vehicles {
		dtos[i] = mapper.ToVehicleDTO(&vehicles[i])
	}
	return dtos, nil
}
