package models

import (
	"fmt"
	"time"
)

// BillStatus is the canonical three-state bill status.
// Older clients still send the legacy vocabulary ("not_paid",
// "payment_requested"); NormalizeBillStatus maps it onto this one.
type BillStatus string

const (
	BillStatusUnpaid  BillStatus = "unpaid"
	BillStatusPending BillStatus = "pending"
	BillStatusPaid    BillStatus = "paid"
)

// Legacy status strings accepted on input, never emitted
const (
	legacyStatusNotPaid          = "not_paid"
	legacyStatusPaymentRequested = "payment_requested"
)

// BillOperationType labels one audit entry on a bill
type BillOperationType string

const (
	OperationCreation        BillOperationType = "creation"
	OperationRequestPayment  BillOperationType = "request_payment"
	OperationPaymentDone     BillOperationType = "payment_done"
	OperationPaymentRejected BillOperationType = "payment_rejected"
)

// NormalizeBillStatus maps a status string, including the legacy
// vocabulary, to its canonical BillStatus value.
func NormalizeBillStatus(s string) (BillStatus, error) {
	switch s {
	case string(BillStatusUnpaid), legacyStatusNotPaid:
		return BillStatusUnpaid, nil
	case string(BillStatusPending), legacyStatusPaymentRequested:
		return BillStatusPending, nil
	case string(BillStatusPaid):
		return BillStatusPaid, nil
	}
	return "", fmt.Errorf("unknown bill status %q", s)
}

// OperationForStatus returns the audit label recorded for a transition
// into the given status.
func OperationForStatus(status BillStatus) BillOperationType {
	switch status {
	case BillStatusPending:
		return OperationRequestPayment
	case BillStatusPaid:
		return OperationPaymentDone
	default:
		return OperationPaymentRejected
	}
}

// Bill represents the bills table: one resident's obligation for one
// billing period. The (apartment_id, resident_id, period) triple is the
// lookup key used by the ledger service.
type Bill struct {
	ID            uint            `json:"id" gorm:"primarykey"`
	ApartmentID   uint            `json:"apartment_id" gorm:"column:apartment_id;index:idx_bills_apartment_period"`
	ResidentID    uint            `json:"resident_id" gorm:"column:resident_id;index"`
	ResponsibleID uint            `json:"responsible_id" gorm:"column:responsible_id"`
	Status        BillStatus      `json:"status" gorm:"column:status"`
	Amount        int64           `json:"amount" gorm:"column:amount"`
	Period        string          `json:"period" gorm:"column:period;index:idx_bills_apartment_period"`
	Operations    []BillOperation `json:"operations" gorm:"foreignKey:BillID"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// TableName sets the insert table name for Bill
func (Bill) TableName() string {
	return "bills"
}

// BillOperation is one immutable audit entry on a bill. Rows are only
// ever inserted; there is no update or delete path.
type BillOperation struct {
	ID        uint              `json:"id" gorm:"primarykey"`
	BillID    uint              `json:"bill_id" gorm:"column:bill_id;index"`
	Date      string            `json:"date" gorm:"column:date"`
	Operation BillOperationType `json:"operation" gorm:"column:operation"`
	CreatedAt time.Time         `json:"created_at"`
}

// TableName sets the insert table name for BillOperation
func (BillOperation) TableName() string {
	return "bill_operations"
}
