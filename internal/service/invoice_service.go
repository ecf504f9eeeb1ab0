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

// InvoiceService manages invoices. Tax follows the line items unless the
// caller sends an explicit tax, which is kept as an override until the next
// update without tax or the next line-item change.
type InvoiceService struct {
	invoiceRepo *repository.InvoiceRepository
	numbering   *NumberSequenceService
	logger      *zap.Logger
}

func NewInvoiceService(invoiceRepo *repository.InvoiceRepository, numbering *NumberSequenceService, logger *zap.Logger) *InvoiceService {
	return &InvoiceService{
		invoiceRepo: invoiceRepo,
		numbering:   numbering,
		logger:      logger,
	}
}

func (s *InvoiceService) apply(invoice *domain.Invoice, req *domain.InvoiceRequest) error {
	customerID, err := parseRequiredRef("customerId", domain.ResolveRef(req.CustomerID, req.Customer))
	if err != nil {
		return err
	}
	vendorID, err := parseRef("vendorId", domain.ResolveRef(req.VendorID, req.Vendor))
	if err != nil {
		return err
	}
	poID, err := parseRef("purchaseOrderId", domain.ResolveRef(req.PurchaseOrderID, req.PurchaseOrder))
	if err != nil {
		return err
	}
	quoteID, err := parseRef("quoteId", domain.ResolveRef(req.QuoteID, req.Quote))
	if err != nil {
		return err
	}
	if req.AmountReceived < 0 || math.IsNaN(req.AmountReceived) {
		return domain.NewValidationError("amountReceived", "Amount received cannot be negative")
	}
	if req.Tax != nil && (*req.Tax < 0 || math.IsNaN(*req.Tax) || math.IsInf(*req.Tax, 0)) {
		return domain.NewValidationError("tax", "Tax cannot be negative")
	}
	lines, err := buildLines(req.Items)
	if err != nil {
		return err
	}

	status := req.Status
	if status == "" {
		status = domain.InvoiceStatusDraft
	}

	invoice.Number = strings.TrimSpace(req.Number)
	invoice.Date, invoice.DueDate = documentDates(req.Date, req.DueDate, 30, time.Now())
	invoice.Currency = strings.ToUpper(orDefault(req.Currency, defaultCurrency))
	invoice.CustomerID = customerID
	invoice.VendorID = vendorID
	invoice.PurchaseOrderID = poID
	invoice.QuoteID = quoteID
	invoice.AmountReceived = req.AmountReceived
	invoice.Status = status
	invoice.Terms = req.Terms
	invoice.Notes = req.Notes
	invoice.TaxOverride = nil
	if req.Tax != nil {
		override := *req.Tax
		invoice.TaxOverride = &override
	}
	setInvoiceLines(invoice, lines)
	return nil
}

// setInvoiceLines stores lines and recomputes the totals, honoring the
// current tax override
func setInvoiceLines(invoice *domain.Invoice, lines *builtLines) {
	invoice.Items = make([]domain.InvoiceItem, len(lines.Items))
	for i := range lines.Items {
		invoice.Items[i] = domain.InvoiceItem{LineItem: lines.Items[i], VehicleID: lines.VehicleIDs[i]}
	}
	invoice.SubTotal = lines.Totals.SubTotal
	if invoice.TaxOverride != nil {
		invoice.Tax = *invoice.TaxOverride
		invoice.Total = mapper.Sum(lines.Totals.SubTotal, *invoice.TaxOverride)
		return
	}
	invoice.Tax = lines.Totals.TotalTax
	invoice.Total = lines.Totals.Total
}

func (s *InvoiceService) Create(ctx context.Context, req *domain.InvoiceRequest) (*domain.InvoiceDTO, error) {
	invoice := &domain.Invoice{}
	if err := s.apply(invoice, req); err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.CreateWithItems(ctx, invoice); err != nil {
		return nil, fmt.Errorf("failed to create invoice: %w", err)
	}
	s.numbering.Consume(ctx, domain.DocumentTypeInvoice, invoice.Number)

	s.logger.Info("Invoice created",
		zap.String("invoice_id", invoice.ID.String()),
		zap.String("number", invoice.Number),
		zap.Float64("total", invoice.Total),
		zap.Bool("tax_override", invoice.TaxOverride != nil),
	)
	return s.GetByID(ctx, invoice.ID)
}

func (s *InvoiceService) load(ctx context.Context, id uuid.UUID) (*domain.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}
	if invoice == nil {
		return nil, domain.NewNotFoundError("invoice")
	}
	return invoice, nil
}

func (s *InvoiceService) GetByID(ctx context.Context, id uuid.UUID) (*domain.InvoiceDTO, error) {
	invoice, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := mapper.ToInvoiceDTO(invoice)
	return &dto, nil
}

func (s *InvoiceService) Update(ctx context.Context, id uuid.UUID, req *domain.InvoiceRequest) (*domain.InvoiceDTO, error) {
	invoice, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(invoice, req); err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.UpdateWithItems(ctx, invoice); err != nil {
		return nil, fmt.Errorf("failed to update invoice: %w", err)
	}
	return s.GetByID(ctx, id)
}

// mutateItems applies a single-line change. Any line change drops the tax
// override so tax follows the items again.
func (s *InvoiceService) mutateItems(ctx context.Context, id uuid.UUID, mutate func([]domain.LineItemRequest) ([]domain.LineItemRequest, error)) (*domain.InvoiceDTO, error) {
	invoice, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	reqs := make([]domain.LineItemRequest, len(invoice.Items))
	for i, item := range invoice.Items {
		reqs[i] = lineRequest(item.LineItem, item.VehicleID)
	}
	if reqs, err = mutate(reqs); err != nil {
		return nil, err
	}
	lines, err := buildLines(reqs)
	if err != nil {
		return nil, err
	}

	if invoice.TaxOverride != nil {
		s.logger.Debug("Clearing invoice tax override",
			zap.String("invoice_id", id.String()),
			zap.Float64("override", *invoice.TaxOverride))
	}
	invoice.TaxOverride = nil
	setInvoiceLines(invoice, lines)

	if err := s.invoiceRepo.UpdateWithItems(ctx, invoice); err != nil {
		return nil, fmt.Errorf("failed to update invoice items: %w", err)
	}
	return s.GetByID(ctx, id)
}

func (s *InvoiceService) AddItem(ctx context.Context, id uuid.UUID, req *domain.LineItemRequest) (*domain.InvoiceDTO, error) {
	return s.mutateItems(ctx, id, func(reqs []domain.LineItemRequest) ([]domain.LineItemRequest, error) {
		return addLine(reqs, *req)
	})
}

func (s *InvoiceService) UpdateItem(ctx context.Context, id uuid.UUID, index int, req *domain.LineItemRequest) (*domain.InvoiceDTO, error) {
	return s.mutateItems(ctx, id, func(reqs []domain.LineItemRequest) ([]domain.LineItemRequest, error) {
		return replaceLine(reqs, index, *req)
	})
}

func (s *InvoiceService) RemoveItem(ctx context.Context, id uuid.UUID, index int) (*domain.InvoiceDTO, error) {
	return s.mutateItems(ctx, id, func(reqs []domain.LineItemRequest) ([]domain.LineItemRequest, error) {
		return removeLine(reqs, index)
	})
}

// Delete removes the invoice and its items. Vehicle transactions linked to
// it keep their amounts but lose the link.
func (s *InvoiceService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.invoiceRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete invoice: %w", err)
	}

	s.logger.Info("Invoice deleted", zap.String("invoice_id", id.String()))
	return nil
}

func (s *InvoiceService) List(ctx context.Context, search string) ([]domain.InvoiceDTO, error) {
	invoices, err := s.invoiceRepo.List(ctx, repository.ListOptions{Search: search})
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}

	dtos := make([]domain.InvoiceDTO, len(invoices))
	for i := range invoices {
		dtos[i] = mapper.ToInvoiceDTO(&invoices[i])
	}
	return dtos, nil
}

func (s *InvoiceService) NextNumber(ctx context.Context) (*domain.NextNumberDTO, error) {
	return s.numbering.Suggest(ctx, domain.DocumentTypeInvoice)
}
