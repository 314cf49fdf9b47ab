package repository

import (
	"syndic-be-svc/internal/models"

	"gorm.io/gorm"
)

// ApartmentRepository defines the interface for apartment data operations
type ApartmentRepository interface {
	CreateApartment(apartment *models.Apartment) error
	GetApartmentByID(id uint) (*models.Apartment, error)
	GetApartmentByJoinCode(joinCode string) (*models.Apartment, error)
	GetAllApartments() ([]*models.Apartment, error)
	IncrementActualBalance(id uint, amount int64) error
	UpdateNumberOfResidents(id uint, count int) error
}

// apartmentRepository implements ApartmentRepository
type apartmentRepository struct {
	db *gorm.DB
}

// NewApartmentRepository creates a new instance of ApartmentRepository
func NewApartmentRepository(db *gorm.DB) ApartmentRepository {
	return &apartmentRepository{
		db: db,
	}
}

// CreateApartment creates a new apartment record
func (r *apartmentRepository) CreateApartment(apartment *models.Apartment) error {
	return r.db.Create(apartment).Error
}

// GetApartmentByID retrieves an apartment by ID
func (r *apartmentRepository) GetApartmentByID(id uint) (*models.Apartment, error) {
	var apartment models.Apartment

	err := r.db.Where("id = ?", id).First(&apartment).Error
	if err != nil {
		return nil, err
	}

	return &apartment, nil
}

// GetApartmentByJoinCode retrieves an apartment by its join code
func (r *apartmentRepository) GetApartmentByJoinCode(joinCode string) (*models.Apartment, error) {
	var apartment models.Apartment

	err := r.db.Where("join_code = ?", joinCode).First(&apartment).Error
	if err != nil {
		return nil, err
	}

	return &apartment, nil
}

// GetAllApartments retrieves all apartments
func (r *apartmentRepository) GetAllApartments() ([]*models.Apartment, error) {
	var apartments []*models.Apartment

	err := r.db.Order("id").Find(&apartments).Error
	if err != nil {
		return nil, err
	}

	return apartments, nil
}

// IncrementActualBalance atomically adds amount to the apartment's
// actual balance. Ledger operations only ever pass positive amounts;
// there is no decrement path.
func (r *apartmentRepository) IncrementActualBalance(id uint, amount int64) error {
	result := r.db.Model(&models.Apartment{}).
		Where("id = ?", id).
		Update("actual_balance", gorm.Expr("actual_balance + ?", amount))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpdateNumberOfResidents sets the apartment's resident count
func (r *apartmentRepository) UpdateNumberOfResidents(id uint, count int) error {
	return r.db.Model(&models.Apartment{}).
		Where("id = ?", id).
		Update("number_of_residents", count).Error
}
