package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/imanage/imanage-api/internal/domain"
	"github.com/imanage/imanage-api/internal/repository"
	"go.uber.org/zap"
)

// DashboardService serves the vehicle finance dashboard
type DashboardService struct {
	txRepo       *repository.VehicleTransactionRepository
	vehicleRepo  *repository.VehicleRepository
	invoiceRepo  *repository.InvoiceRepository
	customerRepo *repository.CustomerRepository
	now          func() time.Time
	logger       *zap.Logger
}

func NewDashboardService(
	txRepo *repository.VehicleTransactionRepository,
	vehicleRepo *repository.VehicleRepository,
	invoiceRepo *repository.InvoiceRepository,
	customerRepo *repository.CustomerRepository,
	logger *zap.Logger,
) *DashboardService {
	return &DashboardService{
		txRepo:       txRepo,
		vehicleRepo:  vehicleRepo,
		invoiceRepo:  invoiceRepo,
		customerRepo: customerRepo,
		now:          func() time.Time { return time.Now().UTC() },
		logger:       logger,
	}
}

// SetClock overrides the time source used for month windows
func (s *DashboardService) SetClock(now func() time.Time) {
	s.now = now
}

func (s *DashboardService) loadInput(ctx context.Context) (FinanceInput, error) {
	var in FinanceInput
	var err error

	if in.Transactions, err = s.txRepo.ListFiltered(ctx, repository.TransactionFilters{}); err != nil {
		return in, fmt.Errorf("failed to load transactions: %w", err)
	}
	if in.Vehicles, err = s.vehicleRepo.List(ctx, repository.ListOptions{}); err != nil {
		return in, fmt.Errorf("failed to load vehicles: %w", err)
	}
	if in.Customers, err = s.customerRepo.List(ctx, repository.ListOptions{}); err != nil {
		return in, fmt.Errorf("failed to load customers: %w", err)
	}
	if in.InvoiceCustomers, err = s.invoiceRepo.CustomerIndex(ctx); err != nil {
		return in, fmt.Errorf("failed to load invoice customers: %w", err)
	}
	return in, nil
}

// GetDashboardMetrics never fails. Storage errors are logged and an empty
// dashboard is returned so the page still renders.
func (s *DashboardService) GetDashboardMetrics(ctx context.Context) domain.DashboardMetrics {
	now := s.now()
	in, err := s.loadInput(ctx)
	if err != nil {
		s.logger.Error("Failed to build dashboard metrics", zap.Error(err))
		return EmptyDashboard(now)
	}
	return ComputeDashboard(in, now)
}

// GetVehicleProfitability returns a not-found error for unknown vehicles.
// Any other failure yields the zero breakdown.
func (s *DashboardService) GetVehicleProfitability(ctx context.Context, vehicleID uuid.UUID) (*domain.VehicleProfitability, error) {
	vehicle, err := s.vehicleRepo.GetByID(ctx, vehicleID)
	if err != nil {
		s.logger.Error("Failed to load vehicle for profitability",
			zap.String("vehicle_id", vehicleID.String()),
			zap.Error(err),
		)
		empty := EmptyVehicleProfitability(&domain.Vehicle{BaseModel: domain.BaseModel{ID: vehicleID}})
		return &empty, nil
	}
	if vehicle == nil {
		return nil, domain.NewNotFoundError("vehicle")
	}

	txs, err := s.txRepo.ListFiltered(ctx, repository.TransactionFilters{VehicleID: &vehicleID})
	if err != nil {
		s.logger.Error("Failed to load vehicle transactions",
			zap.String("vehicle_id", vehicleID.String()),
			zap.Error(err),
		)
		empty := EmptyVehicleProfitability(vehicle)
		return &empty, nil
	}

	result := ComputeVehicleProfitability(vehicle, txs)
	return &result, nil
}
