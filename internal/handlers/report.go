package handlers

import (
	"net/http"

	apierrors "github.com/careconnect/careconnect-api/internal/errors"
	"github.com/careconnect/careconnect-api/internal/services"
	"github.com/gin-gonic/gin"
)

// ReportHandler coordinates the reporting HTTP handlers.
type ReportHandler struct {
	reportService *services.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
	}
}

// ApplicantCounts reports applicants per job, jobs without applicants included.
func (h *ReportHandler) ApplicantCounts(c *gin.Context) {
	counts, err := h.reportService.ApplicantCounts()
	if err != nil {
		apierrors.InternalError(c, "Failed to count applicants")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"jobs": counts,
	})
}

// TotalAcceptedHours reports the sum of accepted work hours.
func (h *ReportHandler) TotalAcceptedHours(c *gin.Context) {
	total, err := h.reportService.TotalAcceptedHours()
	if err != nil {
		apierrors.InternalError(c, "Failed to sum accepted hours")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total_hours": total,
	})
}

// AverageAcceptedRate reports the average hourly rate over caregivers with
// accepted appointments. The average is null when no caregiver qualifies.
func (h *ReportHandler) AverageAcceptedRate(c *gin.Context) {
	avg, ok, err := h.reportService.AverageAcceptedRate()
	if err != nil {
		apierrors.InternalError(c, "Failed to average accepted rates")
		return
	}

	if !ok {
		c.JSON(http.StatusOK, gin.H{
			"average_rate": nil,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"average_rate": avg,
	})
}

// AboveAverageEarners lists caregivers whose rate strictly exceeds the average.
func (h *ReportHandler) AboveAverageEarners(c *gin.Context) {
	earners, err := h.reportService.AboveAverageEarners()
	if err != nil {
		apierrors.InternalError(c, "Failed to list above-average earners")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"caregivers": earners,
	})
}

// CaregiverTotalCosts reports total accepted cost per caregiver.
func (h *ReportHandler) CaregiverTotalCosts(c *gin.Context) {
	costs, err := h.reportService.CaregiverTotalCosts()
	if err != nil {
		apierrors.InternalError(c, "Failed to total caregiver costs")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"caregivers": costs,
	})
}

// JobApplicants returns the job applicants projection.
func (h *ReportHandler) JobApplicants(c *gin.Context) {
	rows, err := h.reportService.JobApplicants()
	if err != nil {
		apierrors.InternalError(c, "Failed to read job applicants view")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"applicants": rows,
	})
}

// ApplyCommission adjusts every caregiver rate by the commission schedule.
func (h *ReportHandler) ApplyCommission(c *gin.Context) {
	adjusted, err := h.reportService.ApplyCommission()
	if err != nil {
		apierrors.InternalError(c, "Failed to apply commission")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"adjusted": adjusted,
	})
}
