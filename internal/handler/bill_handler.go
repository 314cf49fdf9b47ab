package handler

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"syndic-be-svc/internal/middleware"
	"syndic-be-svc/internal/models"
	"syndic-be-svc/internal/service"
	"syndic-be-svc/pkg/logger"
	"syndic-be-svc/pkg/utils"
)

// MonthlyBillsRequest represents the request for a monthly bill batch
type MonthlyBillsRequest struct {
	ApartmentID uint   `json:"apartment_id" binding:"required"`
	Period      string `json:"period,omitempty" example:"03-2025"` // Empty means current month
}

// RequestPaymentRequest represents a resident's payment request for a bill
type RequestPaymentRequest struct {
	ApartmentID uint   `json:"apartment_id" binding:"required"`
	ResidentID  uint   `json:"resident_id" binding:"required"`
	Period      string `json:"period" binding:"required" example:"03-2025"`
}

// UpdateBillStatusRequest represents a syndic's bill status change
type UpdateBillStatusRequest struct {
	ApartmentID uint   `json:"apartment_id" binding:"required"`
	ResidentID  uint   `json:"resident_id" binding:"required"`
	Period      string `json:"period" binding:"required" example:"03-2025"`
	Status      string `json:"status" binding:"required" example:"paid"`
}

// BillHandler handles bill-related HTTP requests
type BillHandler struct {
	ledgerService service.LedgerService
	logger        *logger.Logger
}

// NewBillHandler creates a new BillHandler instance
func NewBillHandler(ledgerService service.LedgerService, logger *logger.Logger) *BillHandler {
	return &BillHandler{
		ledgerService: ledgerService,
		logger:        logger,
	}
}

// CreateMonthlyBills creates the month's bills for every resident of an apartment
// @Summary Create monthly bills
// @Description Create one unpaid bill per resident for the given period (current month if omitted). Rejected if any bill for the period already exists.
// @Tags bills
// @Accept json
// @Produce json
// @Param request body MonthlyBillsRequest true "Monthly bills request"
// @Success 200 {object} utils.APIResponse{data=service.MonthlyBillsResponse} "Monthly bills created"
// @Failure 400 {object} utils.APIResponse "Invalid request"
// @Failure 401 {object} utils.APIResponse "Unauthorized"
// @Failure 409 {object} utils.APIResponse "Bills already exist for this period"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/bills/monthly [post]
func (h *BillHandler) CreateMonthlyBills(c *gin.Context) {
	var req MonthlyBillsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Error("Invalid request body")
		utils.BadRequestResponse(c, "Request body must be valid JSON", err)
		return
	}

	responsibleID, ok := middleware.CurrentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "Authentication required")
		return
	}

	var response *service.MonthlyBillsResponse
	var err error
	if req.Period != "" {
		response, err = h.ledgerService.CreateMonthlyBillsForPeriod(req.ApartmentID, responsibleID, req.Period)
	} else {
		response, err = h.ledgerService.CreateMonthlyBills(req.ApartmentID, responsibleID)
	}
	if err != nil {
		h.logger.WithError(err).WithField("apartment_id", req.ApartmentID).Error("Failed to create monthly bills")
		respondServiceError(c, err, "Failed to create monthly bills")
		return
	}

	h.logger.WithFields(map[string]interface{}{
		"apartment_id": req.ApartmentID,
		"period":       response.Period,
		"total_bills":  response.TotalBills,
	}).Info("Monthly bills created successfully")

	utils.SuccessResponse(c, "Monthly bills created successfully", response)
}

// RequestPayment moves an unpaid bill into pending
// @Summary Request payment for a bill
// @Description Resident-initiated request: moves an unpaid bill to pending and appends a request_payment entry
// @Tags bills
// @Accept json
// @Produce json
// @Param request body RequestPaymentRequest true "Payment request"
// @Success 200 {object} utils.APIResponse{data=models.Bill} "Payment requested"
// @Failure 400 {object} utils.APIResponse "Invalid request"
// @Failure 404 {object} utils.APIResponse "Bill not found"
// @Failure 409 {object} utils.APIResponse "Bill is not requestable"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/bills/request-payment [post]
func (h *BillHandler) RequestPayment(c *gin.Context) {
	var req RequestPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Error("Invalid request body")
		utils.BadRequestResponse(c, "Request body must be valid JSON", err)
		return
	}

	bill, err := h.ledgerService.RequestPayment(req.ApartmentID, req.ResidentID, req.Period)
	if err != nil {
		h.logger.WithError(err).WithFields(map[string]interface{}{
			"apartment_id": req.ApartmentID,
			"resident_id":  req.ResidentID,
			"period":       req.Period,
		}).Error("Failed to request payment")
		respondServiceError(c, err, "Failed to request payment")
		return
	}

	utils.SuccessResponse(c, "Payment requested successfully", bill)
}

// UpdateBillStatus applies a syndic's status override to a bill
// @Summary Update bill status
// @Description Syndic-initiated status change. Accepts the canonical statuses (unpaid, pending, paid) and the legacy vocabulary (not_paid, payment_requested). Entering paid credits the apartment balance once.
// @Tags bills
// @Accept json
// @Produce json
// @Param request body UpdateBillStatusRequest true "Status change request"
// @Success 200 {object} utils.APIResponse{data=models.Bill} "Bill status updated"
// @Failure 400 {object} utils.APIResponse "Invalid request"
// @Failure 404 {object} utils.APIResponse "Bill not found"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/bills/status [put]
func (h *BillHandler) UpdateBillStatus(c *gin.Context) {
	var req UpdateBillStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Error("Invalid request body")
		utils.BadRequestResponse(c, "Request body must be valid JSON", err)
		return
	}

	status, err := models.NormalizeBillStatus(req.Status)
	if err != nil {
		h.logger.WithError(err).WithField("status", req.Status).Error("Invalid bill status")
		utils.BadRequestResponse(c, "Invalid bill status", err)
		return
	}

	bill, err := h.ledgerService.UpdateBillStatus(req.ApartmentID, req.ResidentID, req.Period, status)
	if err != nil {
		h.logger.WithError(err).WithFields(map[string]interface{}{
			"apartment_id": req.ApartmentID,
			"resident_id":  req.ResidentID,
			"period":       req.Period,
			"status":       status,
		}).Error("Failed to update bill status")
		respondServiceError(c, err, "Failed to update bill status")
		return
	}

	utils.SuccessResponse(c, "Bill status updated successfully", bill)
}

// GetApartmentBills lists all bills of an apartment
// @Summary Get apartment bills
// @Description Get all bills of an apartment with their operation history; an apartment without bills yields an empty list
// @Tags bills
// @Accept json
// @Produce json
// @Param id path int true "Apartment ID"
// @Success 200 {object} utils.APIResponse{data=[]models.Bill} "Bills retrieved"
// @Failure 400 {object} utils.APIResponse "Invalid apartment ID"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/apartments/{id}/bills [get]
func (h *BillHandler) GetApartmentBills(c *gin.Context) {
	apartmentID, err := parseIDParam(c, "id")
	if err != nil {
		h.logger.WithError(err).Error("Invalid apartment ID parameter")
		utils.BadRequestResponse(c, "Invalid apartment ID", err)
		return
	}

	bills, err := h.ledgerService.GetApartmentBills(apartmentID)
	if err != nil {
		h.logger.WithError(err).WithField("apartment_id", apartmentID).Error("Failed to get bills")
		utils.InternalServerErrorResponse(c, "Failed to get bills", err)
		return
	}

	h.logger.WithFields(map[string]interface{}{
		"apartment_id": apartmentID,
		"count":        len(bills),
	}).Info("Bills retrieved successfully")

	utils.SuccessResponse(c, "Bills retrieved successfully", bills)
}

// ExportApartmentBills exports an apartment's bill ledger to Excel
// @Summary Export apartment bills
// @Description Download an apartment's bill ledger as an Excel file
// @Tags bills
// @Accept json
// @Produce octet-stream
// @Param id path int true "Apartment ID"
// @Success 200 {file} file "Excel file"
// @Failure 400 {object} utils.APIResponse "Invalid apartment ID"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/apartments/{id}/bills/export [get]
func (h *BillHandler) ExportApartmentBills(c *gin.Context) {
	apartmentID, err := parseIDParam(c, "id")
	if err != nil {
		h.logger.WithError(err).Error("Invalid apartment ID parameter")
		utils.BadRequestResponse(c, "Invalid apartment ID", err)
		return
	}

	content, filename, err := h.ledgerService.ExportApartmentBills(apartmentID)
	if err != nil {
		h.logger.WithError(err).WithField("apartment_id", apartmentID).Error("Failed to export bills")
		utils.InternalServerErrorResponse(c, "Failed to export bills", err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(200, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", content)
}

// parseIDParam parses a uint path parameter
func parseIDParam(c *gin.Context, name string) (uint, error) {
	value, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid %s parameter: %w", name, err)
	}
	return uint(value), nil
}
