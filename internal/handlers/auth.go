package handlers

import (
	"errors"
	"net/http"

	"github.com/careconnect/careconnect-api/internal/constants"
	"github.com/careconnect/careconnect-api/internal/dto"
	apierrors "github.com/careconnect/careconnect-api/internal/errors"
	"github.com/careconnect/careconnect-api/internal/middleware"
	"github.com/careconnect/careconnect-api/internal/services"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// CaregiverRequest carries the caregiver role fields in register/update bodies.
type CaregiverRequest struct {
	Photo          string  `json:"photo"`
	Gender         string  `json:"gender"`
	CaregivingType string  `json:"caregiving_type" binding:"required"`
	HourlyRate     float64 `json:"hourly_rate" binding:"required"`
}

// AddressRequest carries the member address fields.
type AddressRequest struct {
	HouseNumber string `json:"house_number" binding:"required"`
	Street      string `json:"street" binding:"required"`
	Town        string `json:"town" binding:"required"`
}

// MemberRequest carries the member role fields in register/update bodies.
type MemberRequest struct {
	HouseRules           string         `json:"house_rules"`
	DependentDescription string         `json:"dependent_description"`
	Address              AddressRequest `json:"address" binding:"required"`
}

// AuthHandler coordinates authentication-related HTTP handlers.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Register creates a new user with optional caregiver and member roles.
func (h *AuthHandler) Register(c *gin.Context) {
	type RegisterRequest struct {
		Email              string            `json:"email" binding:"required"`
		GivenName          string            `json:"given_name" binding:"required"`
		Surname            string            `json:"surname" binding:"required"`
		City               string            `json:"city"`
		PhoneNumber        string            `json:"phone_number" binding:"required"`
		ProfileDescription string            `json:"profile_description"`
		Password           string            `json:"password" binding:"required"`
		Caregiver          *CaregiverRequest `json:"caregiver"`
		Member             *MemberRequest    `json:"member"`
	}

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input := services.RegisterInput{
		Email:              req.Email,
		GivenName:          req.GivenName,
		Surname:            req.Surname,
		City:               req.City,
		PhoneNumber:        req.PhoneNumber,
		ProfileDescription: req.ProfileDescription,
		Password:           req.Password,
		Caregiver:          toCaregiverInput(req.Caregiver),
		Member:             toMemberInput(req.Member),
	}

	user, err := h.authService.Register(input)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	userDTO := dto.ToUserDTO(*user)
	c.JSON(http.StatusCreated, userDTO)
}

// Login authenticates a user and initializes the session.
func (h *AuthHandler) Login(c *gin.Context) {
	type LoginRequest struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.authService.Login(services.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	session := sessions.Default(c)
	session.Set(constants.ContextKeyUserID, user.ID)
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to save session")
		return
	}

	userDTO := dto.ToUserDTO(*user)
	c.JSON(http.StatusOK, userDTO)
}

// Logout removes the authentication session.
func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to logout")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Logged out successfully",
	})
}

// GetCurrentUser returns the authenticated user.
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	user, err := h.authService.GetUser(userID)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	userDTO := dto.ToUserDTO(*user)
	c.JSON(http.StatusOK, userDTO)
}

func toCaregiverInput(req *CaregiverRequest) *services.CaregiverInput {
	if req == nil {
		return nil
	}
	return &services.CaregiverInput{
		Photo:          req.Photo,
		Gender:         req.Gender,
		CaregivingType: req.CaregivingType,
		HourlyRate:     req.HourlyRate,
	}
}

func toMemberInput(req *MemberRequest) *services.MemberInput {
	if req == nil {
		return nil
	}
	return &services.MemberInput{
		HouseRules:           req.HouseRules,
		DependentDescription: req.DependentDescription,
		Address: services.AddressInput{
			HouseNumber: req.Address.HouseNumber,
			Street:      req.Address.Street,
			Town:        req.Address.Town,
		},
	}
}

func respondAuthError(c *gin.Context, err error) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		apierrors.ValidationFailed(c, verr.Error())
	case errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, services.ErrPhoneTaken):
		apierrors.UniquenessViolation(c, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.Unauthorized(c, err.Error())
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrFailedToHashPassword):
		apierrors.InternalError(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
