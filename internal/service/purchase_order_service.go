package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/imanage/imanage-api/internal/domain"
	"github.com/imanage/imanage-api/internal/mapper"
	"github.com/imanage/imanage-api/internal/repository"
	"go.uber.org/zap"
)

type PurchaseOrderService struct {
	poRepo    *repository.PurchaseOrderRepository
	numbering *NumberSequenceService
	logger    *zap.Logger
}

func NewPurchaseOrderService(poRepo *repository.PurchaseOrderRepository, numbering *NumberSequenceService, logger *zap.Logger) *PurchaseOrderService {
	return &PurchaseOrderService{
		poRepo:    poRepo,
		numbering: numbering,
		logger:    logger,
	}
}

func (s *PurchaseOrderService) apply(po *domain.PurchaseOrder, req *domain.PurchaseOrderRequest) error {
	vendorID, err := parseRequiredRef("vendorId", domain.ResolveRef(req.VendorID, req.Vendor))
	if err != nil {
		return err
	}
	lines, err := buildLines(req.Items)
	if err != nil {
		return err
	}

	status := req.Status
	if status == "" {
		status = domain.PurchaseOrderStatusDraft
	}

	po.Number = strings.TrimSpace(req.Number)
	po.Date, po.DeliveryDate = documentDates(req.Date, req.DeliveryDate, 14, time.Now())
	po.Currency = strings.ToUpper(orDefault(req.Currency, defaultCurrency))
	po.VendorID = vendorID
	po.Status = status
	po.Terms = req.Terms
	po.Notes = req.Notes
	setPurchaseOrderLines(po, lines)
	return nil
}

func setPurchaseOrderLines(po *domain.PurchaseOrder, lines *builtLines) {
	po.Items = make([]domain.POItem, len(lines.Items))
	for i := range lines.Items {
		po.Items[i] = domain.POItem{LineItem: lines.Items[i]}
	}
	po.SubTotal = lines.Totals.SubTotal
	po.TotalTax = lines.Totals.TotalTax
	po.Total = lines.Totals.Total
}

func (s *PurchaseOrderService) Create(ctx context.Context, req *domain.PurchaseOrderRequest) (*domain.PurchaseOrderDTO, error) {
	po := &domain.PurchaseOrder{}
	if err := s.apply(po, req); err != nil {
		return nil, err
	}

	if err := s.poRepo.CreateWithItems(ctx, po); err != nil {
		return nil, fmt.Errorf("failed to create purchase order: %w", err)
	}
	s.numbering.Consume(ctx, domain.DocumentTypePurchaseOrder, po.Number)

	s.logger.Info("Purchase order created",
		zap.String("purchase_order_id", po.ID.String()),
		zap.String("number", po.Number),
		zap.Float64("total", po.Total),
	)
	return s.GetByID(ctx, po.ID)
}

func (s *PurchaseOrderService) load(ctx context.Context, id uuid.UUID) (*domain.PurchaseOrder, error) {
	po, err := s.poRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get purchase order: %w", err)
	}
	if po == nil {
		return nil, domain.NewNotFoundError("purchase order")
	}
	return po, nil
}

func (s *PurchaseOrderService) GetByID(ctx context.Context, id uuid.UUID) (*domain.PurchaseOrderDTO, error) {
	po, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := mapper.ToPurchaseOrderDTO(po)
	return &dto, nil
}

func (s *PurchaseOrderService) Update(ctx context.Context, id uuid.UUID, req *domain.PurchaseOrderRequest) (*domain.PurchaseOrderDTO, error) {
	po, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(po, req); err != nil {
		return nil, err
	}

	if err := s.poRepo.UpdateWithItems(ctx, po); err != nil {
		return nil, fmt.Errorf("failed to update purchase order: %w", err)
	}
	return s.GetByID(ctx, id)
}

func (s *PurchaseOrderService) mutateItems(ctx context.Context, id uuid.UUID, mutate func([]domain.LineItemRequest) ([]domain.LineItemRequest, error)) (*domain.PurchaseOrderDTO, error) {
	po, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	reqs := make([]domain.LineItemRequest, len(po.Items))
	for i, item := range po.Items {
		reqs[i] = lineRequest(item.LineItem, nil)
	}
	if reqs, err = mutate(reqs); err != nil {
		return nil, err
	}
	lines, err := buildLines(reqs)
	if err != nil {
		return nil, err
	}
	setPurchaseOrderLines(po, lines)

	if err := s.poRepo.UpdateWithItems(ctx, po); err != nil {
		return nil, fmt.Errorf("failed to update purchase order items: %w", err)
	}
	return s.GetByID(ctx, id)
}

func (s *PurchaseOrderService) AddItem(ctx context.Context, id uuid.UUID, req *domain.LineItemRequest) (*domain.PurchaseOrderDTO, error) {
	return s.mutateItems(ctx, id, func(reqs []domain.LineItemRequest) ([]domain.LineItemRequest, error) {
		return addLine(reqs, *req)
	})
}

func (s *PurchaseOrderService) UpdateItem(ctx context.Context, id uuid.UUID, index int, req *domain.LineItemRequest) (*domain.PurchaseOrderDTO, error) {
	return s.mutateItems(ctx, id, func(reqs []domain.LineItemRequest) ([]domain.LineItemRequest, error) {
		return replaceLine(reqs, index, *req)
	})
}

func (s *PurchaseOrderService) RemoveItem(ctx context.Context, id uuid.UUID, index int) (*domain.PurchaseOrderDTO, error) {
	return s.mutateItems(ctx, id, func(reqs []domain.LineItemRequest) ([]domain.LineItemRequest, error) {
		return removeLine(reqs, index)
	})
}

func (s *PurchaseOrderService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.poRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete purchase order: %w", err)
	}

	s.logger.Info("Purchase order deleted", zap.String("purchase_order_id", id.String()))
	return nil
}

func (s *PurchaseOrderService) List(ctx context.Context, search string) ([]domain.PurchaseOrderDTO, error) {
	orders, err := s.poRepo.List(ctx, repository.ListOptions{Search: search})
	if err != nil {
		return nil, fmt.Errorf("failed to list purchase orders: %w", err)
	}

	dtos := make([]domain.PurchaseOrderDTO, len(orders))
	for i := range orders {
		dtos[i] = mapper.ToPurchaseOrderDTO(&orders[i])
	}
	return dtos, nil
}

func (s *PurchaseOrderService) NextNumber(ctx context.Context) (*domain.NextNumberDTO, error) {
	return s.numbering.Suggest(ctx, domain.DocumentTypePurchaseOrder)
}
