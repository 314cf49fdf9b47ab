package handler

import (
	"github.com/gin-gonic/gin"

	"syndic-be-svc/internal/middleware"
	"syndic-be-svc/internal/service"
	"syndic-be-svc/pkg/logger"
	"syndic-be-svc/pkg/utils"
)

// CreateRemainingPaymentRequest represents a remaining payment creation request
type CreateRemainingPaymentRequest struct {
	ApartmentID uint  `json:"apartment_id" binding:"required"`
	ResidentID  uint  `json:"resident_id" binding:"required"`
	Amount      int64 `json:"amount" binding:"required"`
}

// RemainingPaymentHandler handles remaining-payment HTTP requests
type RemainingPaymentHandler struct {
	ledgerService service.LedgerService
	logger        *logger.Logger
}

// NewRemainingPaymentHandler creates a new RemainingPaymentHandler instance
func NewRemainingPaymentHandler(ledgerService service.LedgerService, logger *logger.Logger) *RemainingPaymentHandler {
	return &RemainingPaymentHandler{
		ledgerService: ledgerService,
		logger:        logger,
	}
}

// CreateRemainingPayment creates a resident-initiated remaining payment
// @Summary Create remaining payment
// @Description Resident-initiated: the payment starts pending and the resident's remaining amount is reserved immediately
// @Tags remaining-payments
// @Accept json
// @Produce json
// @Param request body CreateRemainingPaymentRequest true "Remaining payment request"
// @Success 201 {object} utils.APIResponse{data=models.RemainingPayment} "Remaining payment created"
// @Failure 400 {object} utils.APIResponse "Invalid amount"
// @Failure 404 {object} utils.APIResponse "Apartment or resident not found"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/remaining-payments [post]
func (h *RemainingPaymentHandler) CreateRemainingPayment(c *gin.Context) {
	h.createRemainingPayment(c, false)
}

// CreateRemainingPaymentBySyndic creates a remaining payment settled at creation
// @Summary Create remaining payment as syndic
// @Description Syndic-initiated: the payment is paid at creation and the apartment balance is credited in the same call
// @Tags remaining-payments
// @Accept json
// @Produce json
// @Param request body CreateRemainingPaymentRequest true "Remaining payment request"
// @Success 201 {object} utils.APIResponse{data=models.RemainingPayment} "Remaining payment created"
// @Failure 400 {object} utils.APIResponse "Invalid amount"
// @Failure 404 {object} utils.APIResponse "Apartment or resident not found"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/remaining-payments/syndic [post]
func (h *RemainingPaymentHandler) CreateRemainingPaymentBySyndic(c *gin.Context) {
	h.createRemainingPayment(c, true)
}

func (h *RemainingPaymentHandler) createRemainingPayment(c *gin.Context, bySyndic bool) {
	var req CreateRemainingPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Error("Invalid request body")
		utils.BadRequestResponse(c, "Request body must be valid JSON", err)
		return
	}

	createdByID, ok := middleware.CurrentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "Authentication required")
		return
	}

	create := h.ledgerService.CreateRemainingPayment
	if bySyndic {
		create = h.ledgerService.CreateRemainingPaymentBySyndic
	}

	payment, err := create(req.ApartmentID, req.ResidentID, req.Amount, createdByID)
	if err != nil {
		h.logger.WithError(err).WithFields(map[string]interface{}{
			"apartment_id": req.ApartmentID,
			"resident_id":  req.ResidentID,
			"amount":       req.Amount,
			"by_syndic":    bySyndic,
		}).Error("Failed to create remaining payment")
		respondServiceError(c, err, "Failed to create remaining payment")
		return
	}

	utils.CreatedResponse(c, "Remaining payment created successfully", payment)
}

// ValidateRemainingPayment settles a pending remaining payment
// @Summary Validate remaining payment
// @Description Syndic confirmation: moves a pending payment to paid and credits the apartment balance. Fails on an already paid payment.
// @Tags remaining-payments
// @Accept json
// @Produce json
// @Param id path int true "Apartment ID"
// @Param payment_id path int true "Remaining payment ID"
// @Success 200 {object} utils.APIResponse{data=models.RemainingPayment} "Remaining payment validated"
// @Failure 404 {object} utils.APIResponse "Remaining payment not found"
// @Failure 409 {object} utils.APIResponse "Remaining payment already paid"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/apartments/{id}/remaining-payments/{payment_id}/validate [post]
func (h *RemainingPaymentHandler) ValidateRemainingPayment(c *gin.Context) {
	apartmentID, err := parseIDParam(c, "id")
	if err != nil {
		h.logger.WithError(err).Error("Invalid apartment ID parameter")
		utils.BadRequestResponse(c, "Invalid apartment ID", err)
		return
	}
	paymentID, err := parseIDParam(c, "payment_id")
	if err != nil {
		h.logger.WithError(err).Error("Invalid payment ID parameter")
		utils.BadRequestResponse(c, "Invalid payment ID", err)
		return
	}

	payment, err := h.ledgerService.ValidateRemainingPayment(apartmentID, paymentID)
	if err != nil {
		h.logger.WithError(err).WithFields(map[string]interface{}{
			"apartment_id": apartmentID,
			"payment_id":   paymentID,
		}).Error("Failed to validate remaining payment")
		respondServiceError(c, err, "Failed to validate remaining payment")
		return
	}

	utils.SuccessResponse(c, "Remaining payment validated successfully", payment)
}

// GetApartmentRemainingPayments lists all remaining payments of an apartment
// @Summary Get apartment remaining payments
// @Tags remaining-payments
// @Accept json
// @Produce json
// @Param id path int true "Apartment ID"
// @Success 200 {object} utils.APIResponse{data=[]models.RemainingPayment} "Remaining payments retrieved"
// @Failure 400 {object} utils.APIResponse "Invalid apartment ID"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/apartments/{id}/remaining-payments [get]
func (h *RemainingPaymentHandler) GetApartmentRemainingPayments(c *gin.Context) {
	apartmentID, err := parseIDParam(c, "id")
	if err != nil {
		h.logger.WithError(err).Error("Invalid apartment ID parameter")
		utils.BadRequestResponse(c, "Invalid apartment ID", err)
		return
	}

	payments, err := h.ledgerService.GetApartmentRemainingPayments(apartmentID)
	if err != nil {
		h.logger.WithError(err).WithField("apartment_id", apartmentID).Error("Failed to get remaining payments")
		utils.InternalServerErrorResponse(c, "Failed to get remaining payments", err)
		return
	}

	utils.SuccessResponse(c, "Remaining payments retrieved successfully", payments)
}

// GetResidentRemainingPayments lists one resident's remaining payments
// @Summary Get resident remaining payments
// @Tags remaining-payments
// @Accept json
// @Produce json
// @Param id path int true "Apartment ID"
// @Param resident_id path int true "Resident ID"
// @Success 200 {object} utils.APIResponse{data=[]models.RemainingPayment} "Remaining payments retrieved"
// @Failure 400 {object} utils.APIResponse "Invalid parameters"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/apartments/{id}/residents/{resident_id}/remaining-payments [get]
func (h *RemainingPaymentHandler) GetResidentRemainingPayments(c *gin.Context) {
	apartmentID, err := parseIDParam(c, "id")
	if err != nil {
		h.logger.WithError(err).Error("Invalid apartment ID parameter")
		utils.BadRequestResponse(c, "Invalid apartment ID", err)
		return
	}
	residentID, err := parseIDParam(c, "resident_id")
	if err != nil {
		h.logger.WithError(err).Error("Invalid resident ID parameter")
		utils.BadRequestResponse(c, "Invalid resident ID", err)
		return
	}

	payments, err := h.ledgerService.GetResidentRemainingPayments(apartmentID, residentID)
	if err != nil {
		h.logger.WithError(err).WithFields(map[string]interface{}{
			"apartment_id": apartmentID,
			"resident_id":  residentID,
		}).Error("Failed to get remaining payments")
		utils.InternalServerErrorResponse(c, "Failed to get remaining payments", err)
		return
	}

	utils.SuccessResponse(c, "Remaining payments retrieved successfully", payments)
}
