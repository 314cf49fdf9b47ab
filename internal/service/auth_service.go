package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"syndic-be-svc/internal/models"
	"syndic-be-svc/internal/repository"
	"syndic-be-svc/pkg/logger"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const tokenTTL = 24 * time.Hour

// AuthService defines the interface for authentication operations
type AuthService interface {
	Register(username, email, password string) (*models.User, error)
	Login(username, password string) (string, *models.User, error)
	LinkResident(userID uint, joinCode string, residentID uint) (*models.Resident, error)
}

// authService implements AuthService
type authService struct {
	store     repository.Store
	logger    *logger.Logger
	jwtSecret string
}

// NewAuthService creates a new instance of AuthService
func NewAuthService(store repository.Store, logger *logger.Logger, jwtSecret string) AuthService {
	return &authService{
		store:     store,
		logger:    logger,
		jwtSecret: jwtSecret,
	}
}

// Register creates a new user with a bcrypt-hashed password
func (s *authService) Register(username, email, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, fmt.Errorf("username and password are required")
	}

	if _, err := s.store.Users().GetUserByUsername(username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username: username,
		Email:    strings.TrimSpace(email),
		Password: string(hash),
	}
	if err := s.store.Users().CreateUser(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.WithField("user_id", user.ID).Info("User registered successfully")

	return user, nil
}

// Login verifies credentials and issues a signed JWT
func (s *authService) Login(username, password string) (string, *models.User, error) {
	user, err := s.store.Users().GetUserByUsername(strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("failed to get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub": user.ID,
		"iat": now.Unix(),
		"exp": now.Add(tokenTTL).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}

	s.logger.WithField("user_id", user.ID).Info("User logged in successfully")

	return token, user, nil
}

// LinkResident attaches an authenticated user to a resident record,
// looked up through the apartment's join code.
func (s *authService) LinkResident(userID uint, joinCode string, residentID uint) (*models.Resident, error) {
	var linked *models.Resident

	err := s.store.Transaction(func(tx repository.Store) error {
		apartment, err := tx.Apartments().GetApartmentByJoinCode(strings.ToUpper(strings.TrimSpace(joinCode)))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrApartmentNotFound
			}
			return fmt.Errorf("failed to get apartment: %w", err)
		}

		resident, err := tx.Residents().GetResidentByID(residentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrResidentNotFound
			}
			return fmt.Errorf("failed to get resident: %w", err)
		}
		if resident.ApartmentID != apartment.ID {
			return ErrResidentNotFound
		}
		if resident.IsLinkedWithUser {
			return ErrResidentAlreadyLinked
		}

		resident.IsLinkedWithUser = true
		resident.LinkedUserID = &userID
		if err := tx.Residents().UpdateResident(resident); err != nil {
			return fmt.Errorf("failed to link resident: %w", err)
		}

		linked = resident
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"user_id":     userID,
		"resident_id": linked.ID,
	}).Info("Resident linked to user")

	return linked, nil
}
