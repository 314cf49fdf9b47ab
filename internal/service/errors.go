package service

import (
	"errors"
)

// Sentinel errors for the expected failure conditions of the ledger.
// Handlers branch on these to pick the response status; everything else
// is treated as a backend error.
var (
	ErrApartmentNotFound      = errors.New("apartment not found")
	ErrResidentNotFound       = errors.New("resident not found")
	ErrBillNotFound           = errors.New("bill not found")
	ErrPaymentNotFound        = errors.New("remaining payment not found")
	ErrBillingPeriodExists    = errors.New("bills already exist for this billing period")
	ErrNoResidents            = errors.New("apartment has no residents")
	ErrBillNotRequestable     = errors.New("payment can only be requested for an unpaid bill")
	ErrInvalidAmount          = errors.New("amount must be greater than zero")
	ErrAmountExceedsRemaining = errors.New("amount exceeds the resident's remaining amount")
	ErrPaymentAlreadyPaid     = errors.New("remaining payment is already paid")
	ErrInvalidCredentials     = errors.New("invalid username or password")
	ErrUsernameTaken          = errors.New("username is already taken")
	ErrResidentAlreadyLinked  = errors.New("resident is already linked to a user")
)
