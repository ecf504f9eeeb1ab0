package handler

import (
	"net/http"

	"github.com/imanage/imanage-api/internal/service"
	"go.uber.org/zap"
)

type DashboardHandler struct {
	dashboardService *service.DashboardService
	logger           *zap.Logger
}

func NewDashboardHandler(dashboardService *service.DashboardService, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		logger:           logger,
	}
}

// @Summary Get vehicle finance dashboard
// @Description Aggregates every vehicle transaction on record.
// @Description
// @Description **Overall:** totals, profit margin in percent, average profit per vehicle and average transaction value
// @Description
// @Description **Time:** current and last calendar month with growth in percent (0 when the prior month is 0), year to date and a 12-month trend ending with the current month
// @Description
// @Description **Vehicles:** profitable, loss and no-data counts plus top and bottom 5 by revenue and by profit
// @Description
// @Description **Customers:** top 5 by revenue attributed through linked invoices
// @Description
// @Description **Categories:** revenue and expense per category with share of the total
// @Description
// @Description A storage failure yields the empty dashboard, never an error.
// @Tags Dashboard
// @Produce json
// @Success 200 {object} domain.DashboardMetrics
// @Security ApiKeyAuth
// @Router /vehicle-finances/dashboard [get]
func (h *DashboardHandler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.dashboardService.GetDashboardMetrics(r.Context()))
}

// @Summary Get vehicle profitability
// @Description Totals and a month-by-month breakdown for one vehicle
// @Tags Dashboard
// @Produce json
// @Param id path string true "Vehicle ID" format(uuid)
// @Success 200 {object} domain.VehicleProfitability
// @Failure 404 {object} domain.APIError
// @Security ApiKeyAuth
// @Router /vehicles/{id}/profitability [get]
func (h *DashboardHandler) GetVehicleProfitability(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	result, err := h.dashboardService.GetVehicleProfitability(r.Context(), id)
	if err != nil {
		respondError(w, h.logger, "get vehicle profitability", err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}
