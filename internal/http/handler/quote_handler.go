package handler

import (
	"net/http"

	"github.com/imanage/imanage-api/internal/domain"
	"github.com/imanage/imanage-api/internal/service"
	"go.uber.org/zap"
)

// QuoteHandler serves quotes and their line items
type QuoteHandler struct {
	quoteService *service.QuoteService
	logger       *zap.Logger
}

func NewQuoteHandler(quoteService *service.QuoteService, logger *zap.Logger) *QuoteHandler {
	return &QuoteHandler{
		quoteService: quoteService,
		logger:       logger,
	}
}

// List godoc
// @Summary List quotes
// @Description Lists quotes newest first with their items
// @Tags Quotes
// @Produce json
// @Param search query string false "Matches number or notes"
// @Success 200 {object} []domain.QuoteDTO
// @Failure 500 {object} domain.APIError
// @Security ApiKeyAuth
// @Router /quotes [get]
func (h *QuoteHandler) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.quoteService.List(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		respondError(w, h.logger, "list quotes", err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// NextNumber godoc
// @Summary Suggest the next quote number
// @Description Renders the configured pattern with the next free sequence. Nothing is reserved.
// @Tags Quotes
// @Produce json
// @Success 200 {object} domain.NextNumberDTO
// @Security ApiKeyAuth
// @Router /quotes/next-number [get]
func (h *QuoteHandler) NextNumber(w http.ResponseWriter, r *http.Request) {
	result, err := h.quoteService.NextNumber(r.Context())
	if err != nil {
		respondError(w, h.logger, "suggest quote number", err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// Create godoc
// @Summary Create quote
// @Description Validity defaults to 30 days after the quote date
// @Tags Quotes
// @Accept json
// @Produce json
// @Param request body domain.QuoteRequest true "Quote data"
// @Success 201 {object} domain.QuoteDTO
// @Failure 400 {object} domain.APIError
// @Security ApiKeyAuth
// @Router /quotes [post]
func (h *QuoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.QuoteRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	created, err := h.quoteService.Create(r.Context(), &req)
	if err != nil {
		respondError(w, h.logger, "create quote", err)
		return
	}
	w.Header().Set("Location", "/api/quotes/"+created.ID)
	respondJSON(w, http.StatusCreated, created)
}

// GetByID godoc
// @Summary Get quote
// @Tags Quotes
// @Produce json
// @Param id path string true "Quote ID" format(uuid)
// @Success 200 {object} domain.QuoteDTO
// @Failure 404 {object} domain.APIError
// @Security ApiKeyAuth
// @Router /quotes/{id} [get]
func (h *QuoteHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	result, err := h.quoteService.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, h.logger, "get quote", err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// Update godoc
// @Summary Update quote
// @Description Replaces header fields and items. Totals are recomputed.
// @Tags Quotes
// @Accept json
// @Produce json
// @Param id path string true "Quote ID" format(uuid)
// @Param request body domain.QuoteRequest true "Quote data"
// @Success 200 {object} domain.QuoteDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security ApiKeyAuth
// @Router /quotes/{id} [put]
func (h *QuoteHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}
	var req domain.QuoteRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	updated, err := h.quoteService.Update(r.Context(), id, &req)
	if err != nil {
		respondError(w, h.logger, "update quote", err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// Delete godoc
// @Summary Delete quote
// @Tags Quotes
// @Param id path string true "Quote ID" format(uuid)
// @Success 204
// @Failure 404 {object} domain.APIError
// @Failure 409 {object} domain.APIError
// @Security ApiKeyAuth
// @Router /quotes/{id} [delete]
func (h *QuoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	if err := h.quoteService.Delete(r.Context(), id); err != nil {
		respondError(w, h.logger, "delete quote", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddItem godoc
// @Summary Append a line item
// @Tags Quotes
// @Accept json
// @Produce json
// @Param id path string true "Quote ID" format(uuid)
// @Param request body domain.LineItemRequest true "Line item"
// @Success 200 {object} domain.QuoteDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security ApiKeyAuth
// @Router /quotes/{id}/items [post]
func (h *QuoteHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}
	var req domain.LineItemRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.quoteService.AddItem(r.Context(), id, &req)
	if err != nil {
		respondError(w, h.logger, "add quote item", err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// UpdateItem godoc
// @Summary Replace a line item
// @Tags Quotes
// @Accept json
// @Produce json
// @Param id path string true "Quote ID" format(uuid)
// @Param index path int true "One-based item position"
// @Param request body domain.LineItemRequest true "Line item"
// @Success 200 {object} domain.QuoteDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security ApiKeyAuth
// @Router /quotes/{id}/items/{index} [put]
func (h *QuoteHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}
	index, ok := parseIndex(w, r)
	if !ok {
		return
	}
	var req domain.LineItemRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.quoteService.UpdateItem(r.Context(), id, index, &req)
	if err != nil {
		respondError(w, h.logger, "update quote item", err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// RemoveItem godoc
// @Summary Remove a line item
// @Tags Quotes
// @Produce json
// @Param id path string true "Quote ID" format(uuid)
// @Param index path int true "One-based item position"
// @Success 200 {object} domain.QuoteDTO
// @Failure 404 {object} domain.APIError
// @Security ApiKeyAuth
// @Router /quotes/{id}/items/{index} [delete]
func (h *QuoteHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}
	index, ok := parseIndex(w, r)
	if !ok {
		return
	}

	result, err := h.quoteService.RemoveItem(r.Context(), id, index)
	if err != nil {
		respondError(w, h.logger, "remove quote item", err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}
