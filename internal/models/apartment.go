package models

import (
	"time"
)

// Apartment represents the apartments table
type Apartment struct {
	ID                uint      `json:"id" gorm:"primarykey"`
	Name              string    `json:"name" gorm:"column:name"`
	NumberOfResidents int       `json:"number_of_residents" gorm:"column:number_of_residents"`
	ActualBalance     int64     `json:"actual_balance" gorm:"column:actual_balance"`
	JoinCode          string    `json:"join_code" gorm:"column:join_code;uniqueIndex"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// TableName sets the insert table name for Apartment
func (Apartment) TableName() string {
	return "apartments"
}
