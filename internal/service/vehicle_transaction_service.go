package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/imanage/imanage-api/internal/domain"
	"github.com/imanage/imanage-api/internal/mapper"
	"github.com/imanage/imanage-api/internal/repository"
	"go.uber.org/zap"
)

// transactionWindowMonths is how far back a transaction may be dated
const transactionWindowMonths = 12

type VehicleTransactionService struct {
	txRepo *repository.VehicleTransactionRepository
	now    func() time.Time
	logger *zap.Logger
}

func NewVehicleTransactionService(txRepo *repository.VehicleTransactionRepository, logger *zap.Logger) *VehicleTransactionService {
	return &VehicleTransactionService{
		txRepo: txRepo,
		now:    func() time.Time { return time.Now().UTC() },
		logger: logger,
	}
}

// SetClock replaces the time source, used by tests
func (s *VehicleTransactionService) SetClock(now func() time.Time) {
	s.now = now
}

// ValidateTransactionDate checks that date is a YYYY-MM-DD day within
// [now - 12 months, now], compared by calendar day
func ValidateTransactionDate(date string, now time.Time) error {
	d, err := time.Parse(mapper.DateLayout, strings.TrimSpace(date))
	if err != nil {
		return domain.NewValidationError("date", "Date must be in YYYY-MM-DD format")
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	earliest := today.AddDate(0, -transactionWindowMonths, 0)

	if d.After(today) {
		return domain.NewValidationError("date", "Transaction date cannot be in the future")
	}
	if d.Before(earliest) {
		return domain.NewValidationError("date", fmt.Sprintf("Transaction date must be on or after %s", earliest.Format(mapper.DateLayout)))
	}
	return nil
}

func (s *VehicleTransactionService) apply(tx *domain.VehicleTransaction, req *domain.VehicleTransactionRequest) error {
	vehicleID, err := parseRequiredRef("vehicleId", domain.ResolveRef(req.VehicleID, req.Vehicle))
	if err != nil {
		return err
	}
	if math.IsNaN(req.Amount) || math.IsInf(req.Amount, 0) || req.Amount <= 0 {
		return domain.NewValidationError("amount", "Amount must be greater than 0")
	}
	if err := ValidateTransactionDate(req.Date, s.now()); err != nil {
		return err
	}

	refs := make([]*uuid.UUID, 4)
	for i, r := range []struct{ field, raw string }{
		{"employeeId", req.EmployeeID},
		{"invoiceId", req.InvoiceID},
		{"purchaseOrderId", req.PurchaseOrderID},
		{"quoteId", req.QuoteID},
	} {
		if refs[i], err = parseRef(r.field, r.raw); err != nil {
			return err
		}
	}

	date := strings.TrimSpace(req.Date)
	tx.VehicleID = vehicleID
	tx.TransactionType = req.TransactionType
	tx.Category = strings.TrimSpace(req.Category)
	tx.Amount = req.Amount
	tx.Date = date
	tx.Month = mapper.MonthOfDate(date)
	tx.Description = req.Description
	tx.EmployeeID = refs[0]
	tx.InvoiceID = refs[1]
	tx.PurchaseOrderID = refs[2]
	tx.QuoteID = refs[3]
	return nil
}

func (s *VehicleTransactionService) Create(ctx context.Context, req *domain.VehicleTransactionRequest) (*domain.VehicleTransactionDTO, error) {
	tx := &domain.VehicleTransaction{}
	if err := s.apply(tx, req); err != nil {
		return nil, err
	}

	if err := s.txRepo.Create(ctx, tx, nil); err != nil {
		return nil, fmt.Errorf("failed to create vehicle transaction: %w", err)
	}

	s.logger.Info("Vehicle transaction created",
		zap.String("transaction_id", tx.ID.String()),
		zap.String("vehicle_id", tx.VehicleID.String()),
		zap.String("type", string(tx.TransactionType)),
		zap.Float64("amount", tx.Amount),
	)
	dto := mapper.ToVehicleTransactionDTO(tx)
	return &dto, nil
}

func (s *VehicleTransactionService) GetByID(ctx context.Context, id uuid.UUID) (*domain.VehicleTransactionDTO, error) {
	tx, err := s.txRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get vehicle transaction: %w", err)
	}
	if tx == nil {
		return nil, domain.NewNotFoundError("vehicle transaction")
	}

	dto := mapper.ToVehicleTransactionDTO(tx)
	return &dto, nil
}

// Update replaces the transaction; month is re-derived from the new date
func (s *VehicleTransactionService) Update(ctx context.Context, id uuid.UUID, req *domain.VehicleTransactionRequest) (*domain.VehicleTransactionDTO, error) {
	tx, err := s.txRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get vehicle transaction: %w", err)
	}
	if tx == nil {
		return nil, domain.NewNotFoundError("vehicle transaction")
	}

	if err := s.apply(tx, req); err != nil {
		return nil, err
	}
	if err := s.txRepo.Update(ctx, tx, nil); err != nil {
		return nil, fmt.Errorf("failed to update vehicle transaction: %w", err)
	}

	dto := mapper.ToVehicleTransactionDTO(tx)
	return &dto, nil
}

func (s *VehicleTransactionService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.txRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete vehicle transaction: %w", err)
	}
	return nil
}

// List returns transactions matching the optional filters
func (s *VehicleTransactionService) List(ctx context.Context, filters repository.TransactionFilters) ([]domain.VehicleTransactionDTO, error) {
	if filters.Month != "" {
		month := mapper.NormalizeMonth(filters.Month)
		if month == "" {
			return nil, domain.NewValidationError("month", fmt.Sprintf("invalid month %q, expected YYYY-MM", filters.Month))
		}
		filters.Month = month
	}

	rows, err := s.txRepo.ListFiltered(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list vehicle transactions: %w", err)
	}

	dtos := make([]domain.VehicleTransactionDTO, len(rows))
	for i := range rows {
		dtos[i] = mapper.ToVehicleTransactionDTO(&rows[i])
	}
	return dtos, nil
}
