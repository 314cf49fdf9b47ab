package models

import (
	"time"
)

// Resident represents the residents table.
// RemainingAmount is the resident's outstanding balance beyond regular
// monthly bills; it is mutated only through the ledger service and never
// goes negative.
type Resident struct {
	ID               uint      `json:"id" gorm:"primarykey"`
	ApartmentID      uint      `json:"apartment_id" gorm:"column:apartment_id;index"`
	Name             string    `json:"name" gorm:"column:name"`
	MonthlyFee       int64     `json:"monthly_fee" gorm:"column:monthly_fee"`
	RemainingAmount  int64     `json:"remaining_amount" gorm:"column:remaining_amount"`
	IsSyndic         bool      `json:"is_syndic" gorm:"column:is_syndic"`
	IsLinkedWithUser bool      `json:"is_linked_with_user" gorm:"column:is_linked_with_user"`
	LinkedUserID     *uint     `json:"linked_user_id" gorm:"column:linked_user_id"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// TableName sets the insert table name for Resident
func (Resident) TableName() string {
	return "residents"
}
