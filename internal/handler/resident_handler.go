package handler

import (
	"github.com/gin-gonic/gin"

	"syndic-be-svc/internal/service"
	"syndic-be-svc/pkg/logger"
	"syndic-be-svc/pkg/utils"
)

// CreateResidentRequest represents a resident creation request
type CreateResidentRequest struct {
	ApartmentID uint   `json:"apartment_id" binding:"required"`
	Name        string `json:"name" binding:"required" example:"John Doe"`
	MonthlyFee  int64  `json:"monthly_fee" binding:"min=0"`
	IsSyndic    bool   `json:"is_syndic"`
}

// UpdateResidentRequest represents a resident update request
type UpdateResidentRequest struct {
	Name       string `json:"name" binding:"required" example:"John Doe"`
	MonthlyFee int64  `json:"monthly_fee" binding:"min=0"`
	IsSyndic   bool   `json:"is_syndic"`
}

// ResidentHandler handles resident-related HTTP requests
type ResidentHandler struct {
	residentService service.ResidentService
	logger          *logger.Logger
}

// NewResidentHandler creates a new ResidentHandler instance
func NewResidentHandler(residentService service.ResidentService, logger *logger.Logger) *ResidentHandler {
	return &ResidentHandler{
		residentService: residentService,
		logger:          logger,
	}
}

// CreateResident creates a new resident
// @Summary Create resident
// @Tags residents
// @Accept json
// @Produce json
// @Param request body CreateResidentRequest true "Resident request"
// @Success 201 {object} utils.APIResponse{data=models.Resident} "Resident created"
// @Failure 400 {object} utils.APIResponse "Invalid request"
// @Failure 404 {object} utils.APIResponse "Apartment not found"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/residents [post]
func (h *ResidentHandler) CreateResident(c *gin.Context) {
	var req CreateResidentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Error("Invalid request body")
		utils.BadRequestResponse(c, "Request body must be valid JSON", err)
		return
	}

	resident, err := h.residentService.CreateResident(req.ApartmentID, req.Name, req.MonthlyFee, req.IsSyndic)
	if err != nil {
		h.logger.WithError(err).WithField("apartment_id", req.ApartmentID).Error("Failed to create resident")
		respondServiceError(c, err, "Failed to create resident")
		return
	}

	utils.CreatedResponse(c, "Resident created successfully", resident)
}

// GetApartmentResidents lists all residents of an apartment
// @Summary Get apartment residents
// @Tags residents
// @Accept json
// @Produce json
// @Param id path int true "Apartment ID"
// @Success 200 {object} utils.APIResponse{data=[]models.Resident} "Residents retrieved"
// @Failure 400 {object} utils.APIResponse "Invalid apartment ID"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/apartments/{id}/residents [get]
func (h *ResidentHandler) GetApartmentResidents(c *gin.Context) {
	apartmentID, err := parseIDParam(c, "id")
	if err != nil {
		h.logger.WithError(err).Error("Invalid apartment ID parameter")
		utils.BadRequestResponse(c, "Invalid apartment ID", err)
		return
	}

	residents, err := h.residentService.GetResidentsByApartment(apartmentID)
	if err != nil {
		h.logger.WithError(err).WithField("apartment_id", apartmentID).Error("Failed to get residents")
		utils.InternalServerErrorResponse(c, "Failed to get residents", err)
		return
	}

	utils.SuccessResponse(c, "Residents retrieved successfully", residents)
}

// UpdateResident edits a resident record
// @Summary Update resident
// @Description Edit a resident's name, monthly fee and syndic flag. The remaining amount is managed by the ledger and cannot be set here.
// @Tags residents
// @Accept json
// @Produce json
// @Param id path int true "Resident ID"
// @Param request body UpdateResidentRequest true "Resident update"
// @Success 200 {object} utils.APIResponse{data=models.Resident} "Resident updated"
// @Failure 400 {object} utils.APIResponse "Invalid request"
// @Failure 404 {object} utils.APIResponse "Resident not found"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/residents/{id} [put]
func (h *ResidentHandler) UpdateResident(c *gin.Context) {
	residentID, err := parseIDParam(c, "id")
	if err != nil {
		h.logger.WithError(err).Error("Invalid resident ID parameter")
		utils.BadRequestResponse(c, "Invalid resident ID", err)
		return
	}

	var req UpdateResidentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Error("Invalid request body")
		utils.BadRequestResponse(c, "Request body must be valid JSON", err)
		return
	}

	resident, err := h.residentService.UpdateResident(residentID, req.Name, req.MonthlyFee, req.IsSyndic)
	if err != nil {
		h.logger.WithError(err).WithField("resident_id", residentID).Error("Failed to update resident")
		respondServiceError(c, err, "Failed to update resident")
		return
	}

	utils.SuccessResponse(c, "Resident updated successfully", resident)
}
