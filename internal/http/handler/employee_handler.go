package handler

import (
	"net/http"

	"github.com/imanage/imanage-api/internal/domain"
	"github.com/imanage/imanage-api/internal/service"
	"go.uber.org/zap"
)

type EmployeeHandler struct {
	employeeService *service.EmployeeService
	logger          *zap.Logger
}

func NewEmployeeHandler(employeeService *service.EmployeeService, logger *zap.Logger) *EmployeeHandler {
	return &EmployeeHandler{
		employeeService: employeeService,
		logger:          logger,
	}
}

// List godoc
// @Summary List employees
// @Description Lists employees ordered by name
// @Tags Employees
// @Produce json
// @Param search query string false "Matches name, employee id or role"
// @Success 200 {object} []domain.EmployeeDTO
// @Failure 500 {object} domain.APIError
// @Security ApiKeyAuth
// @Router /employees [get]
func (h *EmployeeHandler) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.employeeService.List(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		respondError(w, h.logger, "list employees", err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// Create godoc
// @Summary Create employee
// @Tags Employees
// @Accept json
// @Produce json
// @Param request body domain.EmployeeRequest true "Employee data"
// @Success 201 {object} domain.EmployeeDTO
// @Failure 400 {object} domain.APIError
// @Security ApiKeyAuth
// @Router /employees [post]
func (h *EmployeeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.EmployeeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	created, err := h.employeeService.Create(r.Context(), &req)
	if err != nil {
		respondError(w, h.logger, "create employee", err)
		return
	}
	w.Header().Set("Location", "/api/employees/"+created.ID)
	respondJSON(w, http.StatusCreated, created)
}

// GetByID godoc
// @Summary Get employee
// @Tags Employees
// @Produce json
// @Param id path string true "Employee ID" format(uuid)
// @Success 200 {object} domain.EmployeeDTO
// @Failure 404 {object} domain.APIError
// @Security ApiKeyAuth
// @Router /employees/{id} [get]
func (h *EmployeeHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	result, err := h.employeeService.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, h.logger, "get employee", err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// Update godoc
// @Summary Update employee
// @Tags Employees
// @Accept json
// @Produce json
// @Param id path string true "Employee ID" format(uuid)
// @Param request body domain.EmployeeRequest true "Employee data"
// @Success 200 {object} domain.EmployeeDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security ApiKeyAuth
// @Router /employees/{id} [put]
func (h *EmployeeHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}
	var req domain.EmployeeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	updated, err := h.employeeService.Update(r.Context(), id, &req)
	if err != nil {
		respondError(w, h.logger, "update employee", err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// Delete godoc
// @Summary Delete employee
// @Description Fails with 409 while payslips reference the employee. Linked vehicle transactions lose the link.
// @Tags Employees
// @Param id path string true "Employee ID" format(uuid)
// @Success 204
// @Failure 404 {object} domain.APIError
// @Failure 409 {object} domain.APIError
// @Security ApiKeyAuth
// @Router /employees/{id} [delete]
func (h *EmployeeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	if err := h.employeeService.Delete(r.Context(), id); err != nil {
		respondError(w, h.logger, "delete employee", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
