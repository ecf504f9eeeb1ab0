package handler

import (
	"net/http"

	"github.com/imanage/imanage-api/internal/domain"
	"github.com/imanage/imanage-api/internal/service"
	"go.uber.org/zap"
)

type ExpenseCategoryHandler struct {
	categoryService *service.ExpenseCategoryService
	logger          *zap.Logger
}

func NewExpenseCategoryHandler(categoryService *service.ExpenseCategoryService, logger *zap.Logger) *ExpenseCategoryHandler {
	return &ExpenseCategoryHandler{
		categoryService: categoryService,
		logger:          logger,
	}
}

// List godoc
// @Summary List expense categories
// @Description Predefined categories first, then custom ones by name
// @Tags ExpenseCategories
// @Produce json
// @Success 200 {object} []domain.ExpenseCategoryDTO
// @Security ApiKeyAuth
// @Router /expense-categories [get]
func (h *ExpenseCategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.categoryService.List(r.Context())
	if err != nil {
		respondError(w, h.logger, "list expense categories", err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// Create godoc
// @Summary Create expense category
// @Tags ExpenseCategories
// @Accept json
// @Produce json
// @Param request body domain.ExpenseCategoryRequest true "Category data"
// @Success 201 {object} domain.ExpenseCategoryDTO
// @Failure 400 {object} domain.APIError
// @Security ApiKeyAuth
// @Router /expense-categories [post]
func (h *ExpenseCategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.ExpenseCategoryRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	created, err := h.categoryService.Create(r.Context(), &req)
	if err != nil {
		respondError(w, h.logger, "create expense category", err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// GetByID godoc
// @Summary Get expense category
// @Tags ExpenseCategories
// @Produce json
// @Param id path string true "Category ID" format(uuid)
// @Success 200 {object} domain.ExpenseCategoryDTO
// @Failure 404 {object} domain.APIError
// @Security ApiKeyAuth
// @Router /expense-categories/{id} [get]
func (h *ExpenseCategoryHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	result, err := h.categoryService.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, h.logger, "get expense category", err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// Update godoc
// @Summary Update expense category
// @Description Predefined categories keep their name. Only the description can change.
// @Tags ExpenseCategories
// @Accept json
// @Produce json
// @Param id path string true "Category ID" format(uuid)
// @Param request body domain.ExpenseCategoryRequest true "Category data"
// @Success 200 {object} domain.ExpenseCategoryDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security ApiKeyAuth
// @Router /expense-categories/{id} [put]
func (h *ExpenseCategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}
	var req domain.ExpenseCategoryRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	updated, err := h.categoryService.Update(r.Context(), id, &req)
	if err != nil {
		respondError(w, h.logger, "update expense category", err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// Delete godoc
// @Summary Delete expense category
// @Tags ExpenseCategories
// @Param id path string true "Category ID" format(uuid)
// @Success 204
// @Failure 404 {object} domain.APIError
// @Failure 409 {object} domain.APIError "Predefined categories cannot be deleted"
// @Security ApiKeyAuth
// @Router /expense-categories/{id} [delete]
func (h *ExpenseCategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	if err := h.categoryService.Delete(r.Context(), id); err != nil {
		respondError(w, h.logger, "delete expense category", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
