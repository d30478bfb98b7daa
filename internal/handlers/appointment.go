package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/careconnect/careconnect-api/internal/dto"
	apierrors "github.com/careconnect/careconnect-api/internal/errors"
	"github.com/careconnect/careconnect-api/internal/middleware"
	"github.com/careconnect/careconnect-api/internal/models"
	"github.com/careconnect/careconnect-api/internal/repository"
	"github.com/careconnect/careconnect-api/internal/services"
	"github.com/gin-gonic/gin"
)

// AppointmentHandler coordinates appointment HTTP handlers.
type AppointmentHandler struct {
	apptService *services.AppointmentService
	authService *services.AuthService
}

// NewAppointmentHandler creates a new AppointmentHandler.
func NewAppointmentHandler(apptService *services.AppointmentService, authService *services.AuthService) *AppointmentHandler {
	return &AppointmentHandler{
		apptService: apptService,
		authService: authService,
	}
}

// Request books a pending appointment for the authenticated member.
func (h *AppointmentHandler) Request(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type RequestAppointmentRequest struct {
		CaregiverID     uint64  `json:"caregiver_id" binding:"required"`
		AppointmentDate string  `json:"appointment_date" binding:"required"`
		AppointmentTime string  `json:"appointment_time" binding:"required"`
		WorkHours       float64 `json:"work_hours" binding:"required"`
	}

	var req RequestAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	date, err := time.Parse("2006-01-02", req.AppointmentDate)
	if err != nil {
		apierrors.ValidationFailed(c, "appointment_date must be a YYYY-MM-DD date")
		return
	}

	actor, err := h.authService.Identity(userID)
	if err != nil {
		respondAppointmentError(c, err)
		return
	}

	appt, err := h.apptService.Request(actor, services.RequestInput{
		CaregiverID:     req.CaregiverID,
		AppointmentDate: date,
		AppointmentTime: req.AppointmentTime,
		WorkHours:       req.WorkHours,
	})
	if err != nil {
		respondAppointmentError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToAppointmentDTO(*appt))
}

// Respond accepts or declines a pending appointment as its caregiver.
func (h *AppointmentHandler) Respond(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	appointmentID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid appointment ID")
		return
	}

	type RespondRequest struct {
		Action string `json:"action" binding:"required"`
	}

	var req RespondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	actor, err := h.authService.Identity(userID)
	if err != nil {
		respondAppointmentError(c, err)
		return
	}

	appt, err := h.apptService.Respond(actor, appointmentID, req.Action)
	if err != nil {
		respondAppointmentError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAppointmentDTO(*appt))
}

// ListAppointments returns appointments matching optional filters.
func (h *AppointmentHandler) ListAppointments(c *gin.Context) {
	filter := repository.AppointmentFilter{
		CaregiverID: queryUint64(c, "caregiver_id"),
		MemberID:    queryUint64(c, "member_id"),
		DateFrom:    queryDate(c, "date_from"),
		DateTo:      queryDate(c, "date_to"),
		TimeFrom:    queryString(c, "time_from"),
		TimeTo:      queryString(c, "time_to"),
		HoursFrom:   queryFloat64(c, "hours_from"),
		HoursTo:     queryFloat64(c, "hours_to"),
	}
	if s := c.Query("status"); s != "" {
		status := models.AppointmentStatus(s)
		if status.Valid() {
			filter.Status = &status
		}
	}

	appointments, err := h.apptService.List(filter)
	if err != nil {
		apierrors.InternalError(c, "Failed to list appointments")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"appointments": dto.ToAppointmentDTOs(appointments),
	})
}

// ListMine returns the authenticated user's appointments, as member or
// caregiver depending on the role query parameter.
func (h *AppointmentHandler) ListMine(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	var (
		appointments []models.Appointment
		err          error
	)
	if c.Query("role") == "caregiver" {
		appointments, err = h.apptService.ListForCaregiver(userID)
	} else {
		appointments, err = h.apptService.ListForMember(userID)
	}
	if err != nil {
		apierrors.InternalError(c, "Failed to list appointments")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"appointments": dto.ToAppointmentDTOs(appointments),
	})
}

func respondAppointmentError(c *gin.Context, err error) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		apierrors.ValidationFailed(c, verr.Error())
	case errors.Is(err, services.ErrAppointmentNotFound),
		errors.Is(err, services.ErrCaregiverNotFound),
		errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrNotMember),
		errors.Is(err, services.ErrNotAppointmentCaregiver):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrAppointmentResolved):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrUnknownAction):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
