package handler

import (
	"github.com/gin-gonic/gin"

	"syndic-be-svc/internal/service"
	"syndic-be-svc/pkg/logger"
	"syndic-be-svc/pkg/utils"
)

// CreateApartmentRequest represents an apartment creation request
type CreateApartmentRequest struct {
	Name string `json:"name" binding:"required" example:"Residence Les Lilas"`
}

// ApartmentHandler handles apartment-related HTTP requests
type ApartmentHandler struct {
	apartmentService service.ApartmentService
	logger           *logger.Logger
}

// NewApartmentHandler creates a new ApartmentHandler instance
func NewApartmentHandler(apartmentService service.ApartmentService, logger *logger.Logger) *ApartmentHandler {
	return &ApartmentHandler{
		apartmentService: apartmentService,
		logger:           logger,
	}
}

// CreateApartment creates a new apartment
// @Summary Create apartment
// @Description Create an apartment with a generated join code
// @Tags apartments
// @Accept json
// @Produce json
// @Param request body CreateApartmentRequest true "Apartment request"
// @Success 201 {object} utils.APIResponse{data=models.Apartment} "Apartment created"
// @Failure 400 {object} utils.APIResponse "Invalid request"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/apartments [post]
func (h *ApartmentHandler) CreateApartment(c *gin.Context) {
	var req CreateApartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Error("Invalid request body")
		utils.BadRequestResponse(c, "Request body must be valid JSON", err)
		return
	}

	apartment, err := h.apartmentService.CreateApartment(req.Name)
	if err != nil {
		h.logger.WithError(err).Error("Failed to create apartment")
		respondServiceError(c, err, "Failed to create apartment")
		return
	}

	utils.CreatedResponse(c, "Apartment created successfully", apartment)
}

// GetApartment retrieves an apartment by ID
// @Summary Get apartment
// @Tags apartments
// @Accept json
// @Produce json
// @Param id path int true "Apartment ID"
// @Success 200 {object} utils.APIResponse{data=models.Apartment} "Apartment retrieved"
// @Failure 404 {object} utils.APIResponse "Apartment not found"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/apartments/{id} [get]
func (h *ApartmentHandler) GetApartment(c *gin.Context) {
	apartmentID, err := parseIDParam(c, "id")
	if err != nil {
		h.logger.WithError(err).Error("Invalid apartment ID parameter")
		utils.BadRequestResponse(c, "Invalid apartment ID", err)
		return
	}

	apartment, err := h.apartmentService.GetApartmentByID(apartmentID)
	if err != nil {
		h.logger.WithError(err).WithField("apartment_id", apartmentID).Error("Failed to get apartment")
		respondServiceError(c, err, "Failed to get apartment")
		return
	}

	utils.SuccessResponse(c, "Apartment retrieved successfully", apartment)
}

// GetApartmentByJoinCode looks up an apartment by its join code
// @Summary Get apartment by join code
// @Description Resident onboarding entry point: resolve a join code to an apartment
// @Tags apartments
// @Accept json
// @Produce json
// @Param code path string true "Join code"
// @Success 200 {object} utils.APIResponse{data=models.Apartment} "Apartment retrieved"
// @Failure 404 {object} utils.APIResponse "Apartment not found"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/apartments/join/{code} [get]
func (h *ApartmentHandler) GetApartmentByJoinCode(c *gin.Context) {
	joinCode := c.Param("code")

	apartment, err := h.apartmentService.GetApartmentByJoinCode(joinCode)
	if err != nil {
		h.logger.WithError(err).WithField("join_code", joinCode).Error("Failed to get apartment by join code")
		respondServiceError(c, err, "Failed to get apartment")
		return
	}

	utils.SuccessResponse(c, "Apartment retrieved successfully", apartment)
}
