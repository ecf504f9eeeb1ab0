package handler

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/imanage/imanage-api/internal/domain"
	"github.com/imanage/imanage-api/internal/repository"
	"github.com/imanage/imanage-api/internal/service"
	"go.uber.org/zap"
)

type VehicleTransactionHandler struct {
	txService *service.VehicleTransactionService
	logger    *zap.Logger
}

func NewVehicleTransactionHandler(txService *service.VehicleTransactionService, logger *zap.Logger) *VehicleTransactionHandler {
	return &VehicleTransactionHandler{
		txService: txService,
		logger:    logger,
	}
}

// List godoc
// @Summary List vehicle transactions
// @Description Lists transactions newest first. Filters combine with AND.
// @Tags VehicleTransactions
// @Produce json
// @Param vehicleId query string false "Vehicle ID" format(uuid)
// @Param month query string false "Month as YYYY-MM"
// @Param type query string false "revenue or expense" Enums(revenue, expense)
// @Success 200 {object} []domain.VehicleTransactionDTO
// @Failure 400 {object} domain.APIError
// @Security ApiKeyAuth
// @Router /vehicle-transactions [get]
func (h *VehicleTransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filters := repository.TransactionFilters{
		Month: strings.TrimSpace(query.Get("month")),
	}

	if v := strings.TrimSpace(query.Get("vehicleId")); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid vehicleId")
			return
		}
		filters.VehicleID = &id
	}

	switch t := domain.TransactionType(strings.ToLower(query.Get("type"))); t {
	case "":
	case domain.TransactionTypeRevenue, domain.TransactionTypeExpense:
		filters.TransactionType = t
	default:
		respondWithError(w, http.StatusBadRequest, "type must be revenue or expense")
		return
	}

	result, err := h.txService.List(r.Context(), filters)
	if err != nil {
		respondError(w, h.logger, "list vehicle transactions", err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// Create godoc
// @Summary Record a vehicle transaction
// @Description The month is derived from the date. Dates in the future are rejected.
// @Tags VehicleTransactions
// @Accept json
// @Produce json
// @Param request body domain.VehicleTransactionRequest true "Transaction data"
// @Success 201 {object} domain.VehicleTransactionDTO
// @Failure 400 {object} domain.APIError
// @Security ApiKeyAuth
// @Router /vehicle-transactions [post]
func (h *VehicleTransactionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.VehicleTransactionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	created, err := h.txService.Create(r.Context(), &req)
	if err != nil {
		respondError(w, h.logger, "create vehicle transaction", err)
		return
	}
	w.Header().Set("Location", "/api/vehicle-transactions/"+created.ID)
	respondJSON(w, http.StatusCreated, created)
}

// GetByID godoc
// @Summary Get vehicle transaction
// @Tags VehicleTransactions
// @Produce json
// @Param id path string true "Transaction ID" format(uuid)
// @Success 200 {object} domain.VehicleTransactionDTO
// @Failure 404 {object} domain.APIError
// @Security ApiKeyAuth
// @Router /vehicle-transactions/{id} [get]
func (h *VehicleTransactionHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	result, err := h.txService.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, h.logger, "get vehicle transaction", err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// Update godoc
// @Summary Update vehicle transaction
// @Tags VehicleTransactions
// @Accept json
// @Produce json
// @Param id path string true "Transaction ID" format(uuid)
// @Param request body domain.VehicleTransactionRequest true "Transaction data"
// @Success 200 {object} domain.VehicleTransactionDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security ApiKeyAuth
// @Router /vehicle-transactions/{id} [put]
func (h *VehicleTransactionHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}
	var req domain.VehicleTransactionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	updated, err := h.txService.Update(r.Context(), id, &req)
	if err != nil {
		respondError(w, h.logger, "update vehicle transaction", err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// Delete godoc
// @Summary Delete vehicle transaction
// @Tags VehicleTransactions
// @Param id path string true "Transaction ID" format(uuid)
// @Success 204
// @Failure 404 {object} domain.APIError
// @Security ApiKeyAuth
// @Router /vehicle-transactions/{id} [delete]
func (h *VehicleTransactionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	if err := h.txService.Delete(r.Context(), id); err != nil {
		respondError(w, h.logger, "delete vehicle transaction", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
