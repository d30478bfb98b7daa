package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/careconnect/careconnect-api/internal/dto"
	apierrors "github.com/careconnect/careconnect-api/internal/errors"
	"github.com/careconnect/careconnect-api/internal/middleware"
	"github.com/careconnect/careconnect-api/internal/models"
	"github.com/careconnect/careconnect-api/internal/repository"
	"github.com/careconnect/careconnect-api/internal/services"
	"github.com/careconnect/careconnect-api/internal/utils"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// UserHandler coordinates user and caregiver-directory HTTP handlers.
type UserHandler struct {
	userService *services.UserService
	authService *services.AuthService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *services.UserService, authService *services.AuthService) *UserHandler {
	return &UserHandler{
		userService: userService,
		authService: authService,
	}
}

// ListUsers returns users with optional search, city and role filters.
func (h *UserHandler) ListUsers(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	filter := repository.UserFilter{
		Search:     queryString(c, "search"),
		City:       queryString(c, "city"),
		HouseRules: queryString(c, "house_rules"),
		Page:       params.Page,
		PageSize:   params.Limit,
	}
	if role := c.Query("role"); role != "" {
		rp := repository.RolePresence(role)
		switch rp {
		case repository.RoleCaregiverOnly, repository.RoleMemberOnly, repository.RoleBoth, repository.RoleNeither:
			filter.Role = &rp
		}
	}

	users, total, err := h.userService.ListUsers(filter)
	if err != nil {
		apierrors.InternalError(c, "Failed to list users")
		return
	}

	c.JSON(http.StatusOK, dto.ToUserListResponse(users, params.Page, params.Limit, total))
}

// GetUser returns one user with its role sub-records.
func (h *UserHandler) GetUser(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid user ID")
		return
	}

	user, err := h.userService.GetUser(id)
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// UpdateUser edits the authenticated user's own profile and role toggles.
func (h *UserHandler) UpdateUser(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type UpdateUserRequest struct {
		Email              string            `json:"email" binding:"required"`
		GivenName          string            `json:"given_name" binding:"required"`
		Surname            string            `json:"surname" binding:"required"`
		City               string            `json:"city"`
		PhoneNumber        string            `json:"phone_number" binding:"required"`
		ProfileDescription string            `json:"profile_description"`
		Caregiver          *CaregiverRequest `json:"caregiver"`
		Member             *MemberRequest    `json:"member"`
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.userService.UpdateUser(services.UpdateUserInput{
		ID:                 userID,
		Email:              req.Email,
		GivenName:          req.GivenName,
		Surname:            req.Surname,
		City:               req.City,
		PhoneNumber:        req.PhoneNumber,
		ProfileDescription: req.ProfileDescription,
		Caregiver:          toCaregiverInput(req.Caregiver),
		Member:             toMemberInput(req.Member),
	})
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// DeleteUser removes the authenticated user and everything depending on it.
func (h *UserHandler) DeleteUser(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	if err := h.userService.DeleteUser(userID); err != nil {
		respondUserError(c, err)
		return
	}

	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to clear session")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User deleted successfully",
	})
}

// GetCaregiverProfile returns one caregiver profile. Contact details appear
// only for the caregiver themselves or a member with an accepted appointment.
func (h *UserHandler) GetCaregiverProfile(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	caregiverID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid caregiver ID")
		return
	}

	viewer, err := h.authService.Identity(userID)
	if err != nil {
		respondUserError(c, err)
		return
	}

	profile, err := h.userService.GetCaregiverProfile(viewer, caregiverID)
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCaregiverProfileDTO(*profile.Caregiver, profile.ShowContact))
}

// SearchCaregivers queries the caregiver directory for the authenticated member.
func (h *UserHandler) SearchCaregivers(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	viewer, err := h.authService.Identity(userID)
	if err != nil {
		respondUserError(c, err)
		return
	}

	filter := repository.CaregiverFilter{
		City:     queryString(c, "city"),
		Gender:   queryString(c, "gender"),
		RateFrom: queryFloat64(c, "rate_from"),
		RateTo:   queryFloat64(c, "rate_to"),
	}
	if t := c.Query("caregiving_type"); t != "" {
		ct := models.CaregivingType(t)
		if ct.Valid() {
			filter.Type = &ct
		}
	}

	caregivers, err := h.userService.SearchCaregivers(viewer, filter)
	if err != nil {
		respondUserError(c, err)
		return
	}

	items := make([]dto.CaregiverProfileDTO, len(caregivers))
	for i, cg := range caregivers {
		items[i] = dto.ToCaregiverProfileDTO(cg, false)
	}
	c.JSON(http.StatusOK, gin.H{
		"caregivers": items,
	})
}

// DeleteMembersByStreet removes every member living on a street.
func (h *UserHandler) DeleteMembersByStreet(c *gin.Context) {
	type DeleteByStreetRequest struct {
		Street string `json:"street" binding:"required"`
	}

	var req DeleteByStreetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	deleted, err := h.userService.DeleteMembersByStreet(req.Street)
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"deleted": deleted,
	})
}

func respondUserError(c *gin.Context, err error) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		apierrors.ValidationFailed(c, verr.Error())
	case errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, services.ErrPhoneTaken):
		apierrors.UniquenessViolation(c, err.Error())
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrCaregiverNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrMemberOnly):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrHasDependents):
		apierrors.ReferentialIntegrity(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
