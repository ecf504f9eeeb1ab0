package handler

import (
	"net/http"

	"github.com/imanage/imanage-api/internal/domain"
	"github.com/imanage/imanage-api/internal/service"
	"go.uber.org/zap"
)

type CustomerHandler struct {
	customerService *service.CustomerService
	logger          *zap.Logger
}

func NewCustomerHandler(customerService *service.CustomerService, logger *zap.Logger) *CustomerHandler {
	return &CustomerHandler{
		customerService: customerService,
		logger:          logger,
	}
}

// List godoc
// @Summary List customers
// @Description Lists customers ordered by name
// @Tags Customers
// @Produce json
// @Param search query string false "Matches name, company or email"
// @Success 200 {object} []domain.CustomerDTO
// @Failure 500 {object} domain.APIError
// @Security ApiKeyAuth
// @Router /customers [get]
func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.customerService.List(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		respondError(w, h.logger, "list customers", err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// Create godoc
// @Summary Create customer
// @Tags Customers
// @Accept json
// @Produce json
// @Param request body domain.CustomerRequest true "Customer data"
// @Success 201 {object} domain.CustomerDTO
// @Failure 400 {object} domain.APIError
// @Security ApiKeyAuth
// @Router /customers [post]
func (h *CustomerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CustomerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	created, err := h.customerService.Create(r.Context(), &req)
	if err != nil {
		respondError(w, h.logger, "create customer", err)
		return
	}
	w.Header().Set("Location", "/api/customers/"+created.ID)
	respondJSON(w, http.StatusCreated, created)
}

// GetByID godoc
// @Summary Get customer
// @Tags Customers
// @Produce json
// @Param id path string true "Customer ID" format(uuid)
// @Success 200 {object} domain.CustomerDTO
// @Failure 404 {object} domain.APIError
// @Security ApiKeyAuth
// @Router /customers/{id} [get]
func (h *CustomerHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	result, err := h.customerService.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, h.logger, "get customer", err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// Update godoc
// @Summary Update customer
// @Tags Customers
// @Accept json
// @Produce json
// @Param id path string true "Customer ID" format(uuid)
// @Param request body domain.CustomerRequest true "Customer data"
// @Success 200 {object} domain.CustomerDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security ApiKeyAuth
// @Router /customers/{id} [put]
func (h *CustomerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}
	var req domain.CustomerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	updated, err := h.customerService.Update(r.Context(), id, &req)
	if err != nil {
		respondError(w, h.logger, "update customer", err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// Delete godoc
// @Summary Delete customer
// @Description Fails with 409 while quotes or invoices reference the customer
// @Tags Customers
// @Param id path string true "Customer ID" format(uuid)
// @Success 204
// @Failure 404 {object} domain.APIError
// @Failure 409 {object} domain.APIError
// @Security ApiKeyAuth
// @Router /customers/{id} [delete]
func (h *CustomerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	if err := h.customerService.Delete(r.Context(), id); err != nil {
		respondError(w, h.logger, "delete customer", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
