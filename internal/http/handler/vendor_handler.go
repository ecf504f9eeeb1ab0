package handler

import (
	"net/http"

	"github.com/imanage/imanage-api/internal/domain"
	"github.com/imanage/imanage-api/internal/service"
	"go.uber.org/zap"
)

type VendorHandler struct {
	vendorService *service.VendorService
	logger        *zap.Logger
}

func NewVendorHandler(vendorService *service.VendorService, logger *zap.Logger) *VendorHandler {
	return &VendorHandler{
		vendorService: vendorService,
		logger:        logger,
	}
}

// List godoc
// @Summary List vendors
// @Description Lists vendors ordered by name
// @Tags Vendors
// @Produce json
// @Param search query string false "Matches name, contact person or email"
// @Success 200 {object} []domain.VendorDTO
// @Failure 500 {object} domain.APIError
// @Security ApiKeyAuth
// @Router /vendors [get]
func (h *VendorHandler) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.vendorService.List(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		respondError(w, h.logger, "list vendors", err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// Create godoc
// @Summary Create vendor
// @Tags Vendors
// @Accept json
// @Produce json
// @Param request body domain.VendorRequest true "Vendor data"
// @Success 201 {object} domain.VendorDTO
// @Failure 400 {object} domain.APIError
// @Security ApiKeyAuth
// @Router /vendors [post]
func (h *VendorHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.VendorRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	created, err := h.vendorService.Create(r.Context(), &req)
	if err != nil {
		respondError(w, h.logger, "create vendor", err)
		return
	}
	w.Header().Set("Location", "/api/vendors/"+created.ID)
	respondJSON(w, http.StatusCreated, created)
}

// GetByID godoc
// @Summary Get vendor
// @Tags Vendors
// @Produce json
// @Param id path string true "Vendor ID" format(uuid)
// @Success 200 {object} domain.VendorDTO
// @Failure 404 {object} domain.APIError
// @Security ApiKeyAuth
// @Router /vendors/{id} [get]
func (h *VendorHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	result, err := h.vendorService.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, h.logger, "get vendor", err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// Update godoc
// @Summary Update vendor
// @Tags Vendors
// @Accept json
// @Produce json
// @Param id path string true "Vendor ID" format(uuid)
// @Param request body domain.VendorRequest true "Vendor data"
// @Success 200 {object} domain.VendorDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security ApiKeyAuth
// @Router /vendors/{id} [put]
func (h *VendorHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}
	var req domain.VendorRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	updated, err := h.vendorService.Update(r.Context(), id, &req)
	if err != nil {
		respondError(w, h.logger, "update vendor", err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// Delete godoc
// @Summary Delete vendor
// @Description Fails with 409 while purchase orders or invoices reference the vendor
// @Tags Vendors
// @Param id path string true "Vendor ID" format(uuid)
// @Success 204
// @Failure 404 {object} domain.APIError
// @Failure 409 {object} domain.APIError
// @Security ApiKeyAuth
// @Router /vendors/{id} [delete]
func (h *VendorHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	if err := h.vendorService.Delete(r.Context(), id); err != nil {
		respondError(w, h.logger, "delete vendor", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
