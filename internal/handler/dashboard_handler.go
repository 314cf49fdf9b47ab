package handler

import (
	"github.com/gin-gonic/gin"

	"syndic-be-svc/internal/service"
	"syndic-be-svc/pkg/logger"
	"syndic-be-svc/pkg/utils"
)

// DashboardHandler handles dashboard HTTP requests
type DashboardHandler struct {
	dashboardService service.DashboardService
	logger           *logger.Logger
}

// NewDashboardHandler creates a new DashboardHandler instance
func NewDashboardHandler(dashboardService service.DashboardService, logger *logger.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		logger:           logger,
	}
}

// GetApartmentDashboard returns an apartment's aggregate financial position
// @Summary Get apartment dashboard
// @Description Collected balance, bill counts and totals per status, outstanding and pending remaining amounts
// @Tags dashboard
// @Accept json
// @Produce json
// @Param id path int true "Apartment ID"
// @Success 200 {object} utils.APIResponse{data=response.ApartmentDashboardResponse} "Dashboard retrieved"
// @Failure 404 {object} utils.APIResponse "Apartment not found"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/apartments/{id}/dashboard [get]
func (h *DashboardHandler) GetApartmentDashboard(c *gin.Context) {
	apartmentID, err := parseIDParam(c, "id")
	if err != nil {
		h.logger.WithError(err).Error("Invalid apartment ID parameter")
		utils.BadRequestResponse(c, "Invalid apartment ID", err)
		return
	}

	dashboard, err := h.dashboardService.GetApartmentDashboard(apartmentID)
	if err != nil {
		h.logger.WithError(err).WithField("apartment_id", apartmentID).Error("Failed to get dashboard")
		respondServiceError(c, err, "Failed to get dashboard")
		return
	}

	utils.SuccessResponse(c, "Dashboard retrieved successfully", dashboard)
}
