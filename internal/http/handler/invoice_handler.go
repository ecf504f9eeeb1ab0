package handler

import (
	"net/http"

	"github.com/imanage/imanage-api/internal/domain"
	"github.com/imanage/imanage-api/internal/service"
	"go.uber.org/zap"
)

// InvoiceHandler serves invoices and their line items
type InvoiceHandler struct {
	invoiceService *service.InvoiceService
	logger         *zap.Logger
}

func NewInvoiceHandler(invoiceService *service.InvoiceService, logger *zap.Logger) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceService: invoiceService,
		logger:         logger,
	}
}

// List godoc
// @Summary List invoices
// @Description Lists invoices newest first with their items
// @Tags Invoices
// @Produce json
// @Param search query string false "Matches number or notes"
// @Success 200 {object} []domain.InvoiceDTO
// @Failure 500 {object} domain.APIError
// @Security ApiKeyAuth
// @Router /invoices [get]
func (h *InvoiceHandler) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.invoiceService.List(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		respondError(w, h.logger, "list invoices", err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// NextNumber godoc
// @Summary Suggest the next invoice number
// @Description Renders the configured pattern with the next free sequence. Nothing is reserved.
// @Tags Invoices
// @Produce json
// @Success 200 {object} domain.NextNumberDTO
// @Security ApiKeyAuth
// @Router /invoices/next-number [get]
func (h *InvoiceHandler) NextNumber(w http.ResponseWriter, r *http.Request) {
	result, err := h.invoiceService.NextNumber(r.Context())
	if err != nil {
		respondError(w, h.logger, "suggest invoice number", err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// Create godoc
// @Summary Create invoice
// @Description Due date defaults to 30 days after the invoice date. A tax value overrides the tax computed from items.
// @Tags Invoices
// @Accept json
// @Produce json
// @Param request body domain.InvoiceRequest true "Invoice data"
// @Success 201 {object} domain.InvoiceDTO
// @Failure 400 {object} domain.APIError
// @Security ApiKeyAuth
// @Router /invoices [post]
func (h *InvoiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.InvoiceRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	created, err := h.invoiceService.Create(r.Context(), &req)
	if err != nil {
		respondError(w, h.logger, "create invoice", err)
		return
	}
	w.Header().Set("Location", "/api/invoices/"+created.ID)
	respondJSON(w, http.StatusCreated, created)
}

// GetByID godoc
// @Summary Get invoice
// @Tags Invoices
// @Produce json
// @Param id path string true "Invoice ID" format(uuid)
// @Success 200 {object} domain.InvoiceDTO
// @Failure 404 {object} domain.APIError
// @Security ApiKeyAuth
// @Router /invoices/{id} [get]
func (h *InvoiceHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	result, err := h.invoiceService.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, h.logger, "get invoice", err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// Update godoc
// @Summary Update invoice
// @Description Replaces header fields and items. Totals are recomputed.
// @Tags Invoices
// @Accept json
// @Produce json
// @Param id path string true "Invoice ID" format(uuid)
// @Param request body domain.InvoiceRequest true "Invoice data"
// @Success 200 {object} domain.InvoiceDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security ApiKeyAuth
// @Router /invoices/{id} [put]
func (h *InvoiceHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}
	var req domain.InvoiceRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	updated, err := h.invoiceService.Update(r.Context(), id, &req)
	if err != nil {
		respondError(w, h.logger, "update invoice", err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// Delete godoc
// @Summary Delete invoice
// @Tags Invoices
// @Param id path string true "Invoice ID" format(uuid)
// @Success 204
// @Failure 404 {object} domain.APIError
// @Security ApiKeyAuth
// @Router /invoices/{id} [delete]
func (h *InvoiceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	if err := h.invoiceService.Delete(r.Context(), id); err != nil {
		respondError(w, h.logger, "delete invoice", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddItem godoc
// @Summary Append a line item
// @Tags Invoices
// @Accept json
// @Produce json
// @Param id path string true "Invoice ID" format(uuid)
// @Param request body domain.LineItemRequest true "Line item"
// @Success 200 {object} domain.InvoiceDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security ApiKeyAuth
// @Router /invoices/{id}/items [post]
func (h *InvoiceHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}
	var req domain.LineItemRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.invoiceService.AddItem(r.Context(), id, &req)
	if err != nil {
		respondError(w, h.logger, "add invoice item", err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// UpdateItem godoc
// @Summary Replace a line item
// @Tags Invoices
// @Accept json
// @Produce json
// @Param id path string true "Invoice ID" format(uuid)
// @Param index path int true "One-based item position"
// @Param request body domain.LineItemRequest true "Line item"
// @Success 200 {object} domain.InvoiceDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security ApiKeyAuth
// @Router /invoices/{id}/items/{index} [put]
func (h *InvoiceHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
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

	result, err := h.invoiceService.UpdateItem(r.Context(), id, index, &req)
	if err != nil {
		respondError(w, h.logger, "update invoice item", err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// RemoveItem godoc
// @Summary Remove a line item
// @Tags Invoices
// @Produce json
// @Param id path string true "Invoice ID" format(uuid)
// @Param index path int true "One-based item position"
// @Success 200 {object} domain.InvoiceDTO
// @Failure 404 {object} domain.APIError
// @Security ApiKeyAuth
// @Router /invoices/{id}/items/{index} [delete]
func (h *InvoiceHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}
	index, ok := parseIndex(w, r)
	if !ok {
		return
	}

	result, err := h.invoiceService.RemoveItem(r.Context(), id, index)
	if err != nil {
		respondError(w, h.logger, "remove invoice item", err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}
