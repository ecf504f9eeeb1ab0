package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/imanage/imanage-api/internal/domain"
	"github.com/imanage/imanage-api/internal/service"
	"go.uber.org/zap"
)

type PayslipHandler struct {
	payslipService *service.PayslipService
	logger         *zap.Logger
}

func NewPayslipHandler(payslipService *service.PayslipService, logger *zap.Logger) *PayslipHandler {
	return &PayslipHandler{
		payslipService: payslipService,
		logger:         logger,
	}
}

// List godoc
// @Summary List payslips
// @Description Lists payslips newest period first
// @Tags Payslips
// @Produce json
// @Success 200 {object} []domain.PayslipDTO
// @Security ApiKeyAuth
// @Router /payslips [get]
func (h *PayslipHandler) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.payslipService.List(r.Context())
	if err != nil {
		respondError(w, h.logger, "list payslips", err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// ListByMonth godoc
// @Summary List payslips of a month
// @Tags Payslips
// @Produce json
// @Param month path string true "Month as YYYY-MM"
// @Success 200 {object} []domain.PayslipDTO
// @Failure 400 {object} domain.APIError
// @Security ApiKeyAuth
// @Router /payslips/month/{month} [get]
func (h *PayslipHandler) ListByMonth(w http.ResponseWriter, r *http.Request) {
	result, err := h.payslipService.ListByMonth(r.Context(), chi.URLParam(r, "month"))
	if err != nil {
		respondError(w, h.logger, "list payslips", err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// Create godoc
// @Summary Create payslip
// @Description Computes gross and net pay from the employee's payment type. One payslip per employee and period.
// @Tags Payslips
// @Accept json
// @Produce json
// @Param request body domain.PayslipRequest true "Payslip data"
// @Success 201 {object} domain.PayslipDTO
// @Failure 400 {object} domain.APIError
// @Security ApiKeyAuth
// @Router /payslips [post]
func (h *PayslipHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.PayslipRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	created, err := h.payslipService.Create(r.Context(), &req)
	if err != nil {
		respondError(w, h.logger, "create payslip", err)
		return
	}
	w.Header().Set("Location", "/api/payslips/"+created.ID)
	respondJSON(w, http.StatusCreated, created)
}

// GetByID godoc
// @Summary Get payslip
// @Tags Payslips
// @Produce json
// @Param id path string true "Payslip ID" format(uuid)
// @Success 200 {object} domain.PayslipDTO
// @Failure 404 {object} domain.APIError
// @Security ApiKeyAuth
// @Router /payslips/{id} [get]
func (h *PayslipHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	result, err := h.payslipService.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, h.logger, "get payslip", err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// Update godoc
// @Summary Update payslip
// @Tags Payslips
// @Accept json
// @Produce json
// @Param id path string true "Payslip ID" format(uuid)
// @Param request body domain.PayslipRequest true "Payslip data"
// @Success 200 {object} domain.PayslipDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security ApiKeyAuth
// @Router /payslips/{id} [put]
func (h *PayslipHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}
	var req domain.PayslipRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	updated, err := h.payslipService.Update(r.Context(), id, &req)
	if err != nil {
		respondError(w, h.logger, "update payslip", err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// Delete godoc
// @Summary Delete payslip
// @Tags Payslips
// @Param id path string true "Payslip ID" format(uuid)
// @Success 204
// @Failure 404 {object} domain.APIError
// @Security ApiKeyAuth
// @Router /payslips/{id} [delete]
func (h *PayslipHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	if err := h.payslipService.Delete(r.Context(), id); err != nil {
		respondError(w, h.logger, "delete payslip", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
