package repository

import (
	"fmt"

	"syndic-be-svc/internal/models"

	"gorm.io/gorm"
)

// ErrInsufficientRemainingAmount is returned when a guarded decrement
// would take a resident's remaining amount below zero.
var ErrInsufficientRemainingAmount = fmt.Errorf("remaining amount is insufficient")

// ResidentRepository defines the interface for resident data operations
type ResidentRepository interface {
	CreateResident(resident *models.Resident) error
	GetResidentByID(id uint) (*models.Resident, error)
	GetResidentsByApartment(apartmentID uint) ([]*models.Resident, error)
	UpdateResident(resident *models.Resident) error
	DecrementRemainingAmount(id uint, amount int64) error
	SumRemainingAmounts(apartmentID uint) (int64, error)
}

// residentRepository implements ResidentRepository
type residentRepository struct {
	db *gorm.DB
}

// NewResidentRepository creates a new instance of ResidentRepository
func NewResidentRepository(db *gorm.DB) ResidentRepository {
	return &residentRepository{
		db: db,
	}
}

// CreateResident creates a new resident record
func (r *residentRepository) CreateResident(resident *models.Resident) error {
	return r.db.Create(resident).Error
}

// GetResidentByID retrieves a resident by ID
func (r *residentRepository) GetResidentByID(id uint) (*models.Resident, error) {
	var resident models.Resident

	err := r.db.Where("id = ?", id).First(&resident).Error
	if err != nil {
		return nil, err
	}

	return &resident, nil
}

// GetResidentsByApartment retrieves all residents of an apartment
func (r *residentRepository) GetResidentsByApartment(apartmentID uint) ([]*models.Resident, error) {
	var residents []*models.Resident

	err := r.db.Where("apartment_id = ?", apartmentID).Order("id").Find(&residents).Error
	if err != nil {
		return nil, err
	}

	return residents, nil
}

// UpdateResident saves changes to a resident record
func (r *residentRepository) UpdateResident(resident *models.Resident) error {
	return r.db.Save(resident).Error
}

// DecrementRemainingAmount atomically subtracts amount from the
// resident's remaining amount. The WHERE guard keeps the column from
// ever going negative under concurrent requests.
func (r *residentRepository) DecrementRemainingAmount(id uint, amount int64) error {
	result := r.db.Model(&models.Resident{}).
		Where("id = ? AND remaining_amount >= ?", id, amount).
		Update("remaining_amount", gorm.Expr("remaining_amount - ?", amount))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrInsufficientRemainingAmount
	}
	return nil
}

// SumRemainingAmounts returns the total outstanding remaining amount
// across an apartment's residents.
func (r *residentRepository) SumRemainingAmounts(apartmentID uint) (int64, error) {
	var total int64

	err := r.db.Model(&models.Resident{}).
		Where("apartment_id = ?", apartmentID).
		Select("COALESCE(SUM(remaining_amount), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, err
	}

	return total, nil
}
