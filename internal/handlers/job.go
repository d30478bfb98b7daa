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

// JobHandler coordinates job and application HTTP handlers.
type JobHandler struct {
	jobService  *services.JobService
	authService *services.AuthService
}

// NewJobHandler creates a new JobHandler.
func NewJobHandler(jobService *services.JobService, authService *services.AuthService) *JobHandler {
	return &JobHandler{
		jobService:  jobService,
		authService: authService,
	}
}

// PostJob creates a job for the authenticated member.
func (h *JobHandler) PostJob(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type PostJobRequest struct {
		RequiredCaregivingType string     `json:"required_caregiving_type" binding:"required"`
		OtherRequirements      string     `json:"other_requirements"`
		DatePosted             *time.Time `json:"date_posted"`
	}

	var req PostJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input := services.PostJobInput{
		MemberID:               userID,
		RequiredCaregivingType: req.RequiredCaregivingType,
		OtherRequirements:      req.OtherRequirements,
	}
	if req.DatePosted != nil {
		input.DatePosted = *req.DatePosted
	}

	job, err := h.jobService.PostJob(input)
	if err != nil {
		respondJobError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToJobDTO(*job))
}

// ListJobs returns jobs with optional type, town, member and date filters.
func (h *JobHandler) ListJobs(c *gin.Context) {
	filter := repository.JobFilter{
		Town:         queryString(c, "town"),
		MemberID:     queryUint64(c, "member_id"),
		PostedFrom:   queryDate(c, "posted_from"),
		PostedTo:     queryDate(c, "posted_to"),
		Requirements: queryString(c, "requirements"),
	}
	if t := c.Query("caregiving_type"); t != "" {
		ct := models.CaregivingType(t)
		if ct.Valid() {
			filter.Type = &ct
		}
	}

	jobs, err := h.jobService.ListJobs(filter)
	if err != nil {
		apierrors.InternalError(c, "Failed to list jobs")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"jobs": dto.ToJobDTOs(jobs),
	})
}

// Apply records the authenticated caregiver's application to a job.
func (h *JobHandler) Apply(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	jobID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid job ID")
		return
	}

	app, err := h.jobService.Apply(userID, jobID)
	if err != nil {
		respondJobError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToApplicationDTO(*app))
}

// ListApplicants returns the applications for one job to its posting member.
func (h *JobHandler) ListApplicants(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	jobID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid job ID")
		return
	}

	actor, err := h.authService.Identity(userID)
	if err != nil {
		respondJobError(c, err)
		return
	}

	apps, err := h.jobService.ListApplicants(actor, jobID)
	if err != nil {
		respondJobError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"applicants": dto.ToApplicationDTOs(apps),
	})
}

// ListApplications returns applications matching optional filters.
func (h *JobHandler) ListApplications(c *gin.Context) {
	filter := repository.ApplicationFilter{
		CaregiverID: queryUint64(c, "caregiver_id"),
		MemberID:    queryUint64(c, "member_id"),
		JobID:       queryUint64(c, "job_id"),
		AppliedFrom: queryDate(c, "applied_from"),
		AppliedTo:   queryDate(c, "applied_to"),
	}
	if t := c.Query("caregiving_type"); t != "" {
		ct := models.CaregivingType(t)
		if ct.Valid() {
			filter.Type = &ct
		}
	}

	apps, err := h.jobService.ListApplications(filter)
	if err != nil {
		apierrors.InternalError(c, "Failed to list applications")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"applications": dto.ToApplicationDTOs(apps),
	})
}

// DeleteJob removes a job and its applications for the posting member.
func (h *JobHandler) DeleteJob(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	jobID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid job ID")
		return
	}

	actor, err := h.authService.Identity(userID)
	if err != nil {
		respondJobError(c, err)
		return
	}

	if err := h.jobService.DeleteJob(actor, jobID); err != nil {
		respondJobError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Job deleted successfully",
	})
}

// DeleteMine removes every job the authenticated member posted.
func (h *JobHandler) DeleteMine(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	deleted, err := h.jobService.DeleteJobsByMember(userID)
	if err != nil {
		apierrors.InternalError(c, "Failed to delete jobs")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "Jobs deleted successfully",
		"deleted_jobs": deleted,
	})
}

func respondJobError(c *gin.Context, err error) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		apierrors.ValidationFailed(c, verr.Error())
	case errors.Is(err, services.ErrJobNotFound),
		errors.Is(err, services.ErrMemberNotFound),
		errors.Is(err, services.ErrCaregiverNotFound),
		errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrAlreadyApplied):
		apierrors.UniquenessViolation(c, err.Error())
	case errors.Is(err, services.ErrNotJobOwner):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrHasDependents):
		apierrors.ReferentialIntegrity(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
