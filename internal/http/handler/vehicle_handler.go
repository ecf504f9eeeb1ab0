package handler

import (
	"net/http"

	"github.com/imanage/imanage-api/internal/domain"
	"github.com/imanage/imanage-api/internal/service"
	"go.uber.org/zap"
)

type VehicleHandler struct {
	vehicleService *service.VehicleService
	logger         *zap.Logger
}

func NewVehicleHandler(vehicleService *service.VehicleService, logger *zap.Logger) *VehicleHandler {
	return &VehicleHandler{
		vehicleService: vehicleService,
		logger:         logger,
	}
}

// List godoc
// @Summary List vehicles
// @Description Lists fleet vehicles ordered by vehicle number
// @Tags Vehicles
// @Produce json
// @Param search query string false "Matches vehicle number, make, model or type"
// @Success 200 {object} []domain.VehicleDTO
// @Failure 500 {object} domain.APIError
// @Security ApiKeyAuth
// @Router /vehicles [get]
func (h *VehicleHandler) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.vehicleService.List(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		respondError(w, h.logger, "list vehicles", err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// Create godoc
// @Summary Create vehicle
// @Tags Vehicles
// @Accept json
// @Produce json
// @Param request body domain.VehicleRequest true "Vehicle data"
// @Success 201 {object} domain.VehicleDTO
// @Failure 400 {object} domain.APIError
// @Security ApiKeyAuth
// @Router /vehicles [post]
func (h *VehicleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.VehicleRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	created, err := h.vehicleService.Create(r.Context(), &req)
	if err != nil {
		respondError(w, h.logger, "create vehicle", err)
		return
	}
	w.Header().Set("Location", "/api/vehicles/"+created.ID)
	respondJSON(w, http.StatusCreated, created)
}

// GetByID godoc
// @Summary Get vehicle
// @Tags Vehicles
// @Produce json
// @Param id path string true "Vehicle ID" format(uuid)
// @Success 200 {object} domain.VehicleDTO
// @Failure 404 {object} domain.APIError
// @Security ApiKeyAuth
// @Router /vehicles/{id} [get]
func (h *VehicleHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	result, err := h.vehicleService.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, h.logger, "get vehicle", err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// Update godoc
// @Summary Update vehicle
// @Tags Vehicles
// @Accept json
// @Produce json
// @Param id path string true "Vehicle ID" format(uuid)
// @Param request body domain.VehicleRequest true "Vehicle data"
// @Success 200 {object} domain.VehicleDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security ApiKeyAuth
// @Router /vehicles/{id} [put]
func (h *VehicleHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}
	var req domain.VehicleRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	updated, err := h.vehicleService.Update(r.Context(), id, &req)
	if err != nil {
		respondError(w, h.logger, "update vehicle", err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// Delete godoc
// @Summary Delete vehicle
// @Description Fails with 409 while quote or invoice lines reference the vehicle. Its transactions are deleted with it.
// @Tags Vehicles
// @Param id path string true "Vehicle ID" format(uuid)
// @Success 204
// @Failure 404 {object} domain.APIError
// @Failure 409 {object} domain.APIError
// @Security ApiKeyAuth
// @Router /vehicles/{id} [delete]
func (h *VehicleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	if err := h.vehicleService.Delete(r.Context(), id); err != nil {
		respondError(w, h.logger, "delete vehicle", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
