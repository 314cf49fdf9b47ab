package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"syndic-be-svc/internal/service"
	"syndic-be-svc/pkg/utils"
)

// respondServiceError maps the ledger's sentinel errors onto HTTP
// envelopes. Anything outside the expected taxonomy becomes a generic 500
// with the detail logged by the caller.
func respondServiceError(c *gin.Context, err error, fallbackMessage string) {
	switch {
	case errors.Is(err, service.ErrApartmentNotFound),
		errors.Is(err, service.ErrResidentNotFound),
		errors.Is(err, service.ErrBillNotFound),
		errors.Is(err, service.ErrPaymentNotFound):
		utils.NotFoundResponse(c, err.Error())
	case errors.Is(err, service.ErrBillingPeriodExists),
		errors.Is(err, service.ErrBillNotRequestable),
		errors.Is(err, service.ErrPaymentAlreadyPaid),
		errors.Is(err, service.ErrUsernameTaken),
		errors.Is(err, service.ErrResidentAlreadyLinked):
		utils.ConflictResponse(c, fallbackMessage, err)
	case errors.Is(err, service.ErrInvalidAmount),
		errors.Is(err, service.ErrAmountExceedsRemaining),
		errors.Is(err, service.ErrNoResidents):
		utils.BadRequestResponse(c, fallbackMessage, err)
	case errors.Is(err, service.ErrInvalidCredentials):
		utils.UnauthorizedResponse(c, err.Error())
	default:
		utils.InternalServerErrorResponse(c, fallbackMessage, err)
	}
}
