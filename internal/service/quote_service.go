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

type QuoteService struct {
	quoteRepo *repository.QuoteRepository
	numbering *NumberSequenceService
	logger    *zap.Logger
}

func NewQuoteService(quoteRepo *repository.QuoteRepository, numbering *NumberSequenceService, logger *zap.Logger) *QuoteService {
	return &QuoteService{
		quoteRepo: quoteRepo,
		numbering: numbering,
		logger:    logger,
	}
}

// apply copies req onto quote and rebuilds its items and totals
func (s *QuoteService) apply(quote *domain.Quote, req *domain.QuoteRequest) error {
	customerID, err := parseRequiredRef("customerId", domain.ResolveRef(req.CustomerID, req.Customer))
	if err != nil {
		return err
	}
	lines, err := buildLines(req.Items)
	if err != nil {
		return err
	}

	status := req.Status
	if status == "" {
		status = domain.QuoteStatusDraft
	}

	quote.Number = strings.TrimSpace(req.Number)
	quote.Date, quote.ValidUntil = documentDates(req.Date, req.ValidUntil, 30, time.Now())
	quote.Currency = strings.ToUpper(orDefault(req.Currency, defaultCurrency))
	quote.CustomerID = customerID
	quote.Status = status
	quote.Terms = req.Terms
	quote.Notes = req.Notes
	setQuoteLines(quote, lines)
	return nil
}

func setQuoteLines(quote *domain.Quote, lines *builtLines) {
	quote.Items = make([]domain.QuoteItem, len(lines.Items))
	for i := range lines.Items {
		quote.Items[i] = domain.QuoteItem{LineItem: lines.Items[i], VehicleID: lines.VehicleIDs[i]}
	}
	quote.SubTotal = lines.Totals.SubTotal
	quote.TotalTax = lines.Totals.TotalTax
	quote.Total = lines.Totals.Total
}

func quoteLineRequests(quote *domain.Quote) []domain.LineItemRequest {
	reqs := make([]domain.LineItemRequest, len(quote.Items))
	for i, item := range quote.Items {
		reqs[i] = lineRequest(item.LineItem, item.VehicleID)
	}
	return reqs
}

func (s *QuoteService) Create(ctx context.Context, req *domain.QuoteRequest) (*domain.QuoteDTO, error) {
	quote := &domain.Quote{}
	if err := s.apply(quote, req); err != nil {
		return nil, err
	}

	if err := s.quoteRepo.CreateWithItems(ctx, quote); err != nil {
		return nil, fmt.Errorf("failed to create quote: %w", err)
	}
	s.numbering.Consume(ctx, domain.DocumentTypeQuote, quote.Number)

	s.logger.Info("Quote created",
		zap.String("quote_id", quote.ID.String()),
		zap.String("number", quote.Number),
		zap.Int("items", len(quote.Items)),
		zap.Float64("total", quote.Total),
	)
	return s.GetByID(ctx, quote.ID)
}

func (s *QuoteService) GetByID(ctx context.Context, id uuid.UUID) (*domain.QuoteDTO, error) {
	quote, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := mapper.ToQuoteDTO(quote)
	return &dto, nil
}

func (s *QuoteService) load(ctx context.Context, id uuid.UUID) (*domain.Quote, error) {
	quote, err := s.quoteRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get quote: %w", err)
	}
	if quote == nil {
		return nil, domain.NewNotFoundError("quote")
	}
	return quote, nil
}

// Update replaces the quote and its whole item set
func (s *QuoteService) Update(ctx context.Context, id uuid.UUID, req *domain.QuoteRequest) (*domain.QuoteDTO, error) {
	quote, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(quote, req); err != nil {
		return nil, err
	}

	if err := s.quoteRepo.UpdateWithItems(ctx, quote); err != nil {
		return nil, fmt.Errorf("failed to update quote: %w", err)
	}
	return s.GetByID(ctx, id)
}

func (s *QuoteService) mutateItems(ctx context.Context, id uuid.UUID, mutate func([]domain.LineItemRequest) ([]domain.LineItemRequest, error)) (*domain.QuoteDTO, error) {
	quote, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	reqs, err := mutate(quoteLineRequests(quote))
	if err != nil {
		return nil, err
	}
	lines, err := buildLines(reqs)
	if err != nil {
		return nil, err
	}
	setQuoteLines(quote, lines)

	if err := s.quoteRepo.UpdateWithItems(ctx, quote); err != nil {
		return nil, fmt.Errorf("failed to update quote items: %w", err)
	}
	return s.GetByID(ctx, id)
}

// AddItem appends a line and recomputes the totals
func (s *QuoteService) AddItem(ctx context.Context, id uuid.UUID, req *domain.LineItemRequest) (*domain.QuoteDTO, error) {
	return s.mutateItems(ctx, id, func(reqs []domain.LineItemRequest) ([]domain.LineItemRequest, error) {
		return addLine(reqs, *req)
	})
}

// UpdateItem replaces the line with the given serial number
func (s *QuoteService) UpdateItem(ctx context.Context, id uuid.UUID, index int, req *domain.LineItemRequest) (*domain.QuoteDTO, error) {
	return s.mutateItems(ctx, id, func(reqs []domain.LineItemRequest) ([]domain.LineItemRequest, error) {
		return replaceLine(reqs, index, *req)
	})
}

// RemoveItem drops the line with the given serial number and renumbers the rest
func (s *QuoteService) RemoveItem(ctx context.Context, id uuid.UUID, index int) (*domain.QuoteDTO, error) {
	return s.mutateItems(ctx, id, func(reqs []domain.LineItemRequest) ([]domain.LineItemRequest, error) {
		return removeLine(reqs, index)
	})
}

func (s *QuoteService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.quoteRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete quote: %w", err)
	}

	s.logger.Info("Quote deleted", zap.String("quote_id", id.String()))
	return nil
}

func (s *QuoteService) List(ctx context.Context, search string) ([]domain.QuoteDTO, error) {
	quotes, err := s.quoteRepo.List(ctx, repository.ListOptions{Search: search})
	if err != nil {
		return nil, fmt.Errorf("failed to list quotes: %w", err)
	}

	dtos := make([]domain.QuoteDTO, len(quotes))
	for i := range quotes {
		dtos[i] = mapper.ToQuoteDTO(&quotes[i])
	}
	return dtos, nil
}

// NextNumber suggests the next free quote number
func (s *QuoteService) NextNumber(ctx context.Context) (*domain.NextNumberDTO, error) {
	return s.numbering.Suggest(ctx, domain.DocumentTypeQuote)
}
