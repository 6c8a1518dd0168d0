package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kennywood/park-api/internal/database"
	"github.com/kennywood/park-api/internal/middleware"
	"github.com/kennywood/park-api/internal/models"
	"github.com/kennywood/park-api/internal/services"
	"github.com/kennywood/park-api/pkg/jwt"
	"github.com/kennywood/park-api/pkg/validator"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	jwtService           *jwt.Service
	credentialsValidator *validator.CredentialsValidator
	auditService         *services.AuditService
	userRepository       *database.UserRepository
	customerRepository   *database.CustomerRepository
	bcryptCost           int
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(
	jwtService *jwt.Service,
	credentialsValidator *validator.CredentialsValidator,
	auditService *services.AuditService,
	userRepository *database.UserRepository,
	customerRepository *database.CustomerRepository,
	bcryptCost int,
) *AuthHandler {
	return &AuthHandler{
		jwtService:           jwtService,
		credentialsValidator: credentialsValidator,
		auditService:         auditService,
		userRepository:       userRepository,
		customerRepository:   customerRepository,
		bcryptCost:           bcryptCost,
	}
}

// RegisterRequest represents the body of POST /api/v1/auth/register
type RegisterRequest struct {
	Username      string `json:"username"`
	Password      string `json:"password"`
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	Email         string `json:"email"`
	FamilyMembers int    `json:"family_members"`
}

// LoginRequest represents the body of POST /api/v1/auth/login
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RefreshTokenRequest represents the body of POST /api/v1/auth/refresh
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// ProfileResponse describes the authenticated user and their customer record
type ProfileResponse struct {
	ID            string    `json:"id"`
	Username      string    `json:"username"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	FullName      string    `json:"full_name"`
	Email         string    `json:"email"`
	CustomerID    int64     `json:"customer_id"`
	FamilyMembers int       `json:"family_members"`
	CreatedAt     time.Time `json:"created_at"`
}

// AuthResponse is returned by register, login and refresh
type AuthResponse struct {
	*jwt.TokenPair
	User *ProfileResponse `json:"user,omitempty"`
}

func newProfileResponse(user *models.User, customer *models.Customer) *ProfileResponse {
	return &ProfileResponse{
		ID:            user.ID.String(),
		Username:      user.Username,
		FirstName:     user.FirstName,
		LastName:      user.LastName,
		FullName:      user.FullName(),
		Email:         user.Email,
		CustomerID:    customer.ID,
		FamilyMembers: customer.FamilyMembers,
		CreatedAt:     user.CreatedAt,
	}
}

// Register handles POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}

	username, err := h.credentialsValidator.ValidateUsername(req.Username)
	if err != nil {
		respondError(c, &models.ValidationError{Field: "username", Message: err.Error()})
		return
	}
	if err := h.credentialsValidator.ValidatePassword(req.Password, username); err != nil {
		respondError(c, &models.ValidationError{Field: "password", Message: err.Error()})
		return
	}
	email, err := h.credentialsValidator.ValidateEmail(req.Email)
	if err != nil {
		respondError(c, &models.ValidationError{Field: "email", Message: err.Error()})
		return
	}
	if req.FamilyMembers < 0 {
		respondError(c, &models.ValidationError{Field: "family_members", Message: "Ensure this value is greater than or equal to 0."})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), h.bcryptCost)
	if err != nil {
		respondError(c, err)
		return
	}

	user := &models.User{
		Username:     username,
		PasswordHash: string(hash),
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Email:        email,
	}
	customer, err := h.userRepository.CreateCustomerAccount(user, req.FamilyMembers)
	if err != nil {
		respondError(c, err)
		return
	}

	tokens, err := h.jwtService.GenerateTokenPair(user.ID, user.Username)
	if err != nil {
		respondError(c, err)
		return
	}

	h.safeLogRegistration(c, user.ID, user.Username, customer.ID)
	logrus.WithFields(logrus.Fields{
		"user_id":     user.ID,
		"customer_id": customer.ID,
	}).Info("Customer registered")

	c.JSON(http.StatusCreated, AuthResponse{
		TokenPair: tokens,
		User:      newProfileResponse(user, customer),
	})
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" {
		respondError(c, &models.ValidationError{Field: "username", Message: "This field is required."})
		return
	}
	if req.Password == "" {
		respondError(c, &models.ValidationError{Field: "password", Message: "This field is required."})
		return
	}

	user, err := h.userRepository.GetByUsername(req.Username)
	if err != nil {
		if models.IsNotFound(err) {
			h.safeLogLogin(c, nil, req.Username, false, "unknown_username")
			respondError(c, models.ErrInvalidCredentials)
			return
		}
		respondError(c, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		h.safeLogLogin(c, &user.ID, user.Username, false, "wrong_password")
		respondError(c, models.ErrInvalidCredentials)
		return
	}

	if !user.IsActive {
		h.safeLogLogin(c, &user.ID, user.Username, false, "inactive")
		respondError(c, models.ErrInvalidCredentials)
		return
	}

	tokens, err := h.jwtService.GenerateTokenPair(user.ID, user.Username)
	if err != nil {
		respondError(c, err)
		return
	}

	h.safeLogLogin(c, &user.ID, user.Username, true, "")

	c.JSON(http.StatusOK, AuthResponse{TokenPair: tokens})
}

// RefreshToken handles POST /api/v1/auth/refresh
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req RefreshTokenRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}
	if req.RefreshToken == "" {
		respondError(c, &models.ValidationError{Field: "refresh_token", Message: "This field is required."})
		return
	}

	claims, err := h.jwtService.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		logrus.WithError(err).Warn("Refresh token rejected")
		respondError(c, models.ErrInvalidToken)
		return
	}

	user, err := h.userRepository.GetByID(claims.UserID)
	if err != nil {
		if models.IsNotFound(err) {
			respondError(c, models.ErrInvalidToken)
			return
		}
		respondError(c, err)
		return
	}
	if !user.IsActive {
		respondError(c, models.ErrInvalidCredentials)
		return
	}

	tokens, err := h.jwtService.GenerateTokenPair(user.ID, user.Username)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, AuthResponse{TokenPair: tokens})
}

// GetProfile handles GET /api/v1/auth/me
func (h *AuthHandler) GetProfile(c *gin.Context) {
	userCtx, exists := middleware.GetUserContext(c)
	if !exists {
		respondError(c, models.ErrUnauthenticated)
		return
	}

	user, err := h.userRepository.GetByID(userCtx.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	customer, err := h.customerRepository.GetByUserID(user.ID)
	if err != nil {
		if !models.IsNotFound(err) {
			respondError(c, err)
			return
		}
		// users created outside /register have no customer row
		customer = &models.Customer{UserID: user.ID}
	}

	c.JSON(http.StatusOK, newProfileResponse(user, customer))
}
