package service

import (
	"errors"
	"fmt"
	"strings"

	"syndic-be-svc/internal/models"
	"syndic-be-svc/internal/repository"
	"syndic-be-svc/pkg/logger"

	"gorm.io/gorm"
)

// ResidentService defines the interface for resident operations.
// A resident's remaining amount is not writable here; it changes only
// through the ledger service.
type ResidentService interface {
	CreateResident(apartmentID uint, name string, monthlyFee int64, isSyndic bool) (*models.Resident, error)
	GetResidentByID(id uint) (*models.Resident, error)
	GetResidentsByApartment(apartmentID uint) ([]*models.Resident, error)
	UpdateResident(id uint, name string, monthlyFee int64, isSyndic bool) (*models.Resident, error)
}

// residentService implements ResidentService
type residentService struct {
	store  repository.Store
	logger *logger.Logger
}

// NewResidentService creates a new instance of ResidentService
func NewResidentService(store repository.Store, logger *logger.Logger) ResidentService {
	return &residentService{
		store:  store,
		logger: logger,
	}
}

// CreateResident creates a new resident and keeps the apartment's
// resident count in step, in one transaction.
func (s *residentService) CreateResident(apartmentID uint, name string, monthlyFee int64, isSyndic bool) (*models.Resident, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("resident name cannot be empty")
	}
	if monthlyFee < 0 {
		return nil, fmt.Errorf("monthly fee cannot be negative")
	}

	resident := &models.Resident{
		ApartmentID: apartmentID,
		Name:        strings.TrimSpace(name),
		MonthlyFee:  monthlyFee,
		IsSyndic:    isSyndic,
	}

	err := s.store.Transaction(func(tx repository.Store) error {
		if _, err := tx.Apartments().GetApartmentByID(apartmentID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrApartmentNotFound
			}
			return fmt.Errorf("failed to get apartment: %w", err)
		}

		if err := tx.Residents().CreateResident(resident); err != nil {
			return fmt.Errorf("failed to create resident: %w", err)
		}

		residents, err := tx.Residents().GetResidentsByApartment(apartmentID)
		if err != nil {
			return fmt.Errorf("failed to count residents: %w", err)
		}
		if err := tx.Apartments().UpdateNumberOfResidents(apartmentID, len(residents)); err != nil {
			return fmt.Errorf("failed to update resident count: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"apartment_id": apartmentID,
		"resident_id":  resident.ID,
	}).Info("Resident created successfully")

	return resident, nil
}

// GetResidentByID retrieves a resident by ID
func (s *residentService) GetResidentByID(id uint) (*models.Resident, error) {
	resident, err := s.store.Residents().GetResidentByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResidentNotFound
		}
		return nil, fmt.Errorf("failed to get resident: %w", err)
	}
	return resident, nil
}

// GetResidentsByApartment retrieves all residents of an apartment
func (s *residentService) GetResidentsByApartment(apartmentID uint) ([]*models.Resident, error) {
	residents, err := s.store.Residents().GetResidentsByApartment(apartmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get residents: %w", err)
	}
	return residents, nil
}

// UpdateResident edits a resident's name, monthly fee and syndic flag.
// The remaining amount is deliberately untouched.
func (s *residentService) UpdateResident(id uint, name string, monthlyFee int64, isSyndic bool) (*models.Resident, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("resident name cannot be empty")
	}
	if monthlyFee < 0 {
		return nil, fmt.Errorf("monthly fee cannot be negative")
	}

	resident, err := s.store.Residents().GetResidentByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResidentNotFound
		}
		return nil, fmt.Errorf("failed to get resident: %w", err)
	}

	resident.Name = strings.TrimSpace(name)
	resident.MonthlyFee = monthlyFee
	resident.IsSyndic = isSyndic

	if err := s.store.Residents().UpdateResident(resident); err != nil {
		return nil, fmt.Errorf("failed to update resident: %w", err)
	}

	s.logger.WithField("resident_id", resident.ID).Info("Resident updated successfully")

	return resident, nil
}
