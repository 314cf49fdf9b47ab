package models

import (
	"time"
)

// RemainingPaymentStatus is the two-state status of a remaining payment
type RemainingPaymentStatus string

const (
	RemainingPaymentPending RemainingPaymentStatus = "pending"
	RemainingPaymentPaid    RemainingPaymentStatus = "paid"
)

// RemainingPayment represents the remaining_payments table: an ad-hoc
// payment against a resident's outstanding balance, independent of the
// monthly bill cycle. ResidentName is a snapshot taken at creation and is
// not re-derived from the resident record afterwards.
type RemainingPayment struct {
	ID           uint                   `json:"id" gorm:"primarykey"`
	DocumentID   string                 `json:"document_id" gorm:"column:document_id;uniqueIndex"`
	ApartmentID  uint                   `json:"apartment_id" gorm:"column:apartment_id;index"`
	ResidentID   uint                   `json:"resident_id" gorm:"column:resident_id;index"`
	ResidentName string                 `json:"resident_name" gorm:"column:resident_name"`
	Amount       int64                  `json:"amount" gorm:"column:amount"`
	Status       RemainingPaymentStatus `json:"status" gorm:"column:status"`
	CreatedByID  uint                   `json:"created_by_id" gorm:"column:created_by_id"`
	CreatedAt    time.Time              `json:"created_at"`
	UpdatedAt    time.Time              `json:"updated_at"`
	PaidAt       *time.Time             `json:"paid_at" gorm:"column:paid_at"`
}

// TableName sets the insert table name for RemainingPayment
func (RemainingPayment) TableName() string {
	return "remaining_payments"
}
