package handler

import (
	"net/http"

	"github.com/imanage/imanage-api/internal/domain"
	"github.com/imanage/imanage-api/internal/service"
	"go.uber.org/zap"
)

// PurchaseOrderHandler serves purchase orders and their line items
type PurchaseOrderHandler struct {
	poService *service.PurchaseOrderService
	logger    *zap.Logger
}

func NewPurchaseOrderHandler(poService *service.PurchaseOrderService, logger *zap.Logger) *PurchaseOrderHandler {
	return &PurchaseOrderHandler{
		poService: poService,
		logger:    logger,
	}
}

// List godoc
// @Summary List purchase orders
// @Description Lists purchase orders newest first with their items
// @Tags PurchaseOrders
// @Produce json
// @Param search query string false "Matches number or notes"
// @Success 200 {object} []domain.PurchaseOrderDTO
// @Failure 500 {object} domain.APIError
// @Security ApiKeyAuth
// @Router /purchase-orders [get]
func (h *PurchaseOrderHandler) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.poService.List(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		respondError(w, h.logger, "list purchase orders", err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// NextNumber godoc
// @Summary Suggest the next purchase order number
// @Description Renders the configured pattern with the next free sequence. Nothing is reserved.
// @Tags PurchaseOrders
// @Produce json
// @Success 200 {object} domain.NextNumberDTO
// @Security ApiKeyAuth
// @Router /purchase-orders/next-number [get]
func (h *PurchaseOrderHandler) NextNumber(w http.ResponseWriter, r *http.Request) {
	result, err := h.poService.NextNumber(r.Context())
	if err != nil {
		respondError(w, h.logger, "suggest purchase order number", err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// Create godoc
// @Summary Create purchase order
// @Description Delivery date defaults to 14 days after the order date
// @Tags PurchaseOrders
// @Accept json
// @Produce json
// @Param request body domain.PurchaseOrderRequest true "Purchase order data"
// @Success 201 {object} domain.PurchaseOrderDTO
// @Failure 400 {object} domain.APIError
// @Security ApiKeyAuth
// @Router /purchase-orders [post]
func (h *PurchaseOrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.PurchaseOrderRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	created, err := h.poService.Create(r.Context(), &req)
	if err != nil {
		respondError(w, h.logger, "create purchase order", err)
		return
	}
	w.Header().Set("Location", "/api/purchase-orders/"+created.ID)
	respondJSON(w, http.StatusCreated, created)
}

// GetByID godoc
// @Summary Get purchase order
// @Tags PurchaseOrders
// @Produce json
// @Param id path string true "Purchase order ID" format(uuid)
// @Success 200 {object} domain.PurchaseOrderDTO
// @Failure 404 {object} domain.APIError
// @Security ApiKeyAuth
// @Router /purchase-orders/{id} [get]
func (h *PurchaseOrderHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	result, err := h.poService.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, h.logger, "get purchase order", err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// Update godoc
// @Summary Update purchase order
// @Description Replaces header fields and items. Totals are recomputed.
// @Tags PurchaseOrders
// @Accept json
// @Produce json
// @Param id path string true "Purchase order ID" format(uuid)
// @Param request body domain.PurchaseOrderRequest true "Purchase order data"
// @Success 200 {object} domain.PurchaseOrderDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security ApiKeyAuth
// @Router /purchase-orders/{id} [put]
func (h *PurchaseOrderHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}
	var req domain.PurchaseOrderRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	updated, err := h.poService.Update(r.Context(), id, &req)
	if err != nil {
		respondError(w, h.logger, "update purchase order", err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// Delete godoc
// @Summary Delete purchase order
// @Tags PurchaseOrders
// @Param id path string true "Purchase order ID" format(uuid)
// @Success 204
// @Failure 404 {object} domain.APIError
// @Failure 409 {object} domain.APIError
// @Security ApiKeyAuth
// @Router /purchase-orders/{id} [delete]
func (h *PurchaseOrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	if err := h.poService.Delete(r.Context(), id); err != nil {
		respondError(w, h.logger, "delete purchase order", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddItem godoc
// @Summary Append a line item
// @Tags PurchaseOrders
// @Accept json
// @Produce json
// @Param id path string true "Purchase order ID" format(uuid)
// @Param request body domain.LineItemRequest true "Line item"
// @Success 200 {object} domain.PurchaseOrderDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security ApiKeyAuth
// @Router /purchase-orders/{id}/items [post]
func (h *PurchaseOrderHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}
	var req domain.LineItemRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.poService.AddItem(r.Context(), id, &req)
	if err != nil {
		respondError(w, h.logger, "add purchase order item", err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// UpdateItem godoc
// @Summary Replace a line item
// @Tags PurchaseOrders
// @Accept json
// @Produce json
// @Param id path string true "Purchase order ID" format(uuid)
// @Param index path int true "One-based item position"
// @Param request body domain.LineItemRequest true "Line item"
// @Success 200 {object} domain.PurchaseOrderDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security ApiKeyAuth
// @Router /purchase-orders/{id}/items/{index} [put]
func (h *PurchaseOrderHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
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

	result, err := h.poService.UpdateItem(r.Context(), id, index, &req)
	if err != nil {
		respondError(w, h.logger, "update purchase order item", err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// RemoveItem godoc
// @Summary Remove a line item
// @Tags PurchaseOrders
// @Produce json
// @Param id path string true "Purchase order ID" format(uuid)
// @Param index path int true "One-based item position"
// @Success 200 {object} domain.PurchaseOrderDTO
// @Failure 404 {object} domain.APIError
// @Security ApiKeyAuth
// @Router /purchase-orders/{id}/items/{index} [delete]
func (h *PurchaseOrderHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}
	index, ok := parseIndex(w, r)
	if !ok {
		return
	}

	result, err := h.poService.RemoveItem(r.Context(), id, index)
	if err != nil {
		respondError(w, h.logger, "remove purchase order item", err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}
