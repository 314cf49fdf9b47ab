package handler

import (
	"github.com/gin-gonic/gin"

	"syndic-be-svc/internal/middleware"
	"syndic-be-svc/internal/models"
	"syndic-be-svc/internal/service"
	"syndic-be-svc/pkg/logger"
	"syndic-be-svc/pkg/utils"
)

// RegisterRequest represents a user registration request
type RegisterRequest struct {
	Username string `json:"username" binding:"required" example:"jdoe"`
	Email    string `json:"email" binding:"required,email" example:"jdoe@example.com"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Username string `json:"username" binding:"required" example:"jdoe"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued token and the user
type LoginResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// LinkResidentRequest represents a request to link the current user to a resident
type LinkResidentRequest struct {
	JoinCode   string `json:"join_code" binding:"required" example:"3F2A91BC"`
	ResidentID uint   `json:"resident_id" binding:"required"`
}

// AuthHandler handles authentication HTTP requests
type AuthHandler struct {
	authService service.AuthService
	logger      *logger.Logger
}

// NewAuthHandler creates a new AuthHandler instance
func NewAuthHandler(authService service.AuthService, logger *logger.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// Register creates a new user account
// @Summary Register
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration request"
// @Success 201 {object} utils.APIResponse{data=models.User} "User registered"
// @Failure 400 {object} utils.APIResponse "Invalid request"
// @Failure 409 {object} utils.APIResponse "Username taken"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Error("Invalid request body")
		utils.BadRequestResponse(c, "Request body must be valid JSON", err)
		return
	}

	user, err := h.authService.Register(req.Username, req.Email, req.Password)
	if err != nil {
		h.logger.WithError(err).WithField("username", req.Username).Error("Failed to register user")
		respondServiceError(c, err, "Failed to register user")
		return
	}

	utils.CreatedResponse(c, "User registered successfully", user)
}

// Login verifies credentials and issues a token
// @Summary Login
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login request"
// @Success 200 {object} utils.APIResponse{data=LoginResponse} "Logged in"
// @Failure 400 {object} utils.APIResponse "Invalid request"
// @Failure 401 {object} utils.APIResponse "Invalid credentials"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Error("Invalid request body")
		utils.BadRequestResponse(c, "Request body must be valid JSON", err)
		return
	}

	token, user, err := h.authService.Login(req.Username, req.Password)
	if err != nil {
		h.logger.WithError(err).WithField("username", req.Username).Error("Failed to log in")
		respondServiceError(c, err, "Failed to log in")
		return
	}

	utils.SuccessResponse(c, "Logged in successfully", LoginResponse{
		Token: token,
		User:  user,
	})
}

// LinkResident links the authenticated user to a resident via join code
// @Summary Link resident
// @Description Attach the current user to a resident record of the apartment identified by the join code
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LinkResidentRequest true "Link request"
// @Success 200 {object} utils.APIResponse{data=models.Resident} "Resident linked"
// @Failure 400 {object} utils.APIResponse "Invalid request"
// @Failure 404 {object} utils.APIResponse "Apartment or resident not found"
// @Failure 409 {object} utils.APIResponse "Resident already linked"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/auth/link-resident [post]
func (h *AuthHandler) LinkResident(c *gin.Context) {
	var req LinkResidentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Error("Invalid request body")
		utils.BadRequestResponse(c, "Request body must be valid JSON", err)
		return
	}

	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "Authentication required")
		return
	}

	resident, err := h.authService.LinkResident(userID, req.JoinCode, req.ResidentID)
	if err != nil {
		h.logger.WithError(err).WithFields(map[string]interface{}{
			"user_id":     userID,
			"resident_id": req.ResidentID,
		}).Error("Failed to link resident")
		respondServiceError(c, err, "Failed to link resident")
		return
	}

	utils.SuccessResponse(c, "Resident linked successfully", resident)
}
