package handler

import (
	"fmt"
	"io"
	"net/http"

	"github.com/imanage/imanage-api/internal/domain"
	"github.com/imanage/imanage-api/internal/service"
	"go.uber.org/zap"
)

// AdminHandler serves company settings, branding and data maintenance
type AdminHandler struct {
	settingsService    *service.SettingsService
	maintenanceService *service.MaintenanceService
	backupService      *service.BackupService
	maxUploadMB        int64
	logger             *zap.Logger
}

func NewAdminHandler(
	settingsService *service.SettingsService,
	maintenanceService *service.MaintenanceService,
	backupService *service.BackupService,
	maxUploadMB int64,
	logger *zap.Logger,
) *AdminHandler {
	return &AdminHandler{
		settingsService:    settingsService,
		maintenanceService: maintenanceService,
		backupService:      backupService,
		maxUploadMB:        maxUploadMB,
		logger:             logger,
	}
}

// @Summary Get admin settings
// @Tags Admin
// @Produce json
// @Success 200 {object} domain.AdminSettingsDTO
// @Security ApiKeyAuth
// @Router /admin/settings [get]
func (h *AdminHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	result, err := h.settingsService.Get(r.Context())
	if err != nil {
		respondError(w, h.logger, "get settings", err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// @Summary Update admin settings
// @Description Omitted fields keep their current value. Number patterns cannot be empty.
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body domain.AdminSettingsRequest true "Settings"
// @Success 200 {object} domain.AdminSettingsDTO
// @Failure 400 {object} domain.APIError
// @Security ApiKeyAuth
// @Router /admin/settings [put]
func (h *AdminHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req domain.AdminSettingsRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.settingsService.Update(r.Context(), &req)
	if err != nil {
		respondError(w, h.logger, "update settings", err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// @Summary Upload company logo
// @Description Accepts PNG, JPEG, GIF, BMP or TIFF. The image is scaled to at most 400 pixels wide and stored as PNG.
// @Tags Admin
// @Accept multipart/form-data
// @Produce json
// @Param logo formData file true "Logo image"
// @Success 200 {object} domain.AdminSettingsDTO
// @Failure 400 {object} domain.APIError
// @Failure 413 {object} domain.APIError
// @Security ApiKeyAuth
// @Router /admin/settings/logo [put]
func (h *AdminHandler) UploadLogo(w http.ResponseWriter, r *http.Request) {
	limit := h.maxUploadMB * 1024 * 1024
	r.Body = http.MaxBytesReader(w, r.Body, limit)

	if err := r.ParseMultipartForm(limit); err != nil {
		respondWithError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("File too large: maximum size is %dMB", h.maxUploadMB))
		return
	}

	file, _, err := r.FormFile("logo")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Missing logo file")
		return
	}
	defer file.Close()

	result, err := h.settingsService.UploadLogo(r.Context(), file)
	if err != nil {
		respondError(w, h.logger, "upload logo", err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// @Summary Download company logo
// @Tags Admin
// @Produce png
// @Success 200 {file} binary
// @Failure 404 {object} domain.APIError
// @Security ApiKeyAuth
// @Router /admin/settings/logo [get]
func (h *AdminHandler) GetLogo(w http.ResponseWriter, r *http.Request) {
	reader, err := h.settingsService.Logo(r.Context())
	if err != nil {
		respondError(w, h.logger, "load logo", err)
		return
	}
	defer reader.Close()

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	_, _ = io.Copy(w, reader)
}

// @Summary Load demo data
// @Description Inserts a coherent sample data set in one transaction. Safe to run repeatedly.
// @Tags Admin
// @Produce json
// @Success 201 {object} domain.DemoDataResult
// @Security ApiKeyAuth
// @Router /admin/demo-data [post]
func (h *AdminHandler) SeedDemoData(w http.ResponseWriter, r *http.Request) {
	result, err := h.maintenanceService.SeedDemoData(r.Context())
	if err != nil {
		respondError(w, h.logger, "load demo data", err)
		return
	}
	respondJSON(w, http.StatusCreated, result)
}

// @Summary Delete data modules
// @Description Purges whole modules. Dependent modules are included automatically: customers take quotations and invoices, vendors take purchase orders, employees take payslips.
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body domain.DeleteModulesRequest true "Modules to delete"
// @Success 200 {object} domain.ModuleDeletionResult
// @Failure 400 {object} domain.APIError
// @Security ApiKeyAuth
// @Router /admin/modules/delete [post]
func (h *AdminHandler) DeleteModules(w http.ResponseWriter, r *http.Request) {
	var req domain.DeleteModulesRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.maintenanceService.DeleteModules(r.Context(), &req)
	if err != nil {
		respondError(w, h.logger, "delete modules", err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// @Summary Back up the database
// @Description Writes a consistent snapshot of the database to the configured storage
// @Tags Admin
// @Produce json
// @Success 201 {object} domain.BackupResult
// @Failure 503 {object} domain.APIError
// @Security ApiKeyAuth
// @Router /admin/backup [post]
func (h *AdminHandler) Backup(w http.ResponseWriter, r *http.Request) {
	result, err := h.backupService.Run(r.Context())
	if err != nil {
		respondError(w, h.logger, "back up database", err)
		return
	}
	respondJSON(w, http.StatusCreated, result)
}
