package service

import (
	"errors"
	"fmt"
	"strings"

	"syndic-be-svc/internal/models"
	"syndic-be-svc/internal/repository"
	"syndic-be-svc/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ApartmentService defines the interface for apartment operations
type ApartmentService interface {
	CreateApartment(name string) (*models.Apartment, error)
	GetApartmentByID(id uint) (*models.Apartment, error)
	GetApartmentByJoinCode(joinCode string) (*models.Apartment, error)
	GetAllApartments() ([]*models.Apartment, error)
}

// apartmentService implements ApartmentService
type apartmentService struct {
	store  repository.Store
	logger *logger.Logger
}

// NewApartmentService creates a new instance of ApartmentService
func NewApartmentService(store repository.Store, logger *logger.Logger) ApartmentService {
	return &apartmentService{
		store:  store,
		logger: logger,
	}
}

// CreateApartment creates a new apartment with a generated join code
func (s *apartmentService) CreateApartment(name string) (*models.Apartment, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("apartment name cannot be empty")
	}

	apartment := &models.Apartment{
		Name:     strings.TrimSpace(name),
		JoinCode: newJoinCode(),
	}

	if err := s.store.Apartments().CreateApartment(apartment); err != nil {
		s.logger.WithError(err).WithField("name", name).Error("Failed to create apartment")
		return nil, fmt.Errorf("failed to create apartment: %w", err)
	}

	s.logger.WithFields(map[string]interface{}{
		"apartment_id": apartment.ID,
		"join_code":    apartment.JoinCode,
	}).Info("Apartment created successfully")

	return apartment, nil
}

// GetApartmentByID retrieves an apartment by ID
func (s *apartmentService) GetApartmentByID(id uint) (*models.Apartment, error) {
	apartment, err := s.store.Apartments().GetApartmentByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApartmentNotFound
		}
		return nil, fmt.Errorf("failed to get apartment: %w", err)
	}
	return apartment, nil
}

// GetApartmentByJoinCode retrieves an apartment by its join code
func (s *apartmentService) GetApartmentByJoinCode(joinCode string) (*models.Apartment, error) {
	apartment, err := s.store.Apartments().GetApartmentByJoinCode(strings.ToUpper(strings.TrimSpace(joinCode)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApartmentNotFound
		}
		return nil, fmt.Errorf("failed to get apartment: %w", err)
	}
	return apartment, nil
}

// GetAllApartments retrieves all apartments
func (s *apartmentService) GetAllApartments() ([]*models.Apartment, error) {
	apartments, err := s.store.Apartments().GetAllApartments()
	if err != nil {
		return nil, fmt.Errorf("failed to get apartments: %w", err)
	}
	return apartments, nil
}

// newJoinCode derives a short uppercase join code from a fresh uuid
func newJoinCode() string {
	return strings.ToUpper(uuid.New().String()[:8])
}
