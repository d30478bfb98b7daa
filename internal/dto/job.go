package dto

import (
	"time"

	"github.com/careconnect/careconnect-api/internal/models"
)

// JobDTO represents a job in API responses
type JobDTO struct {
	ID                     uint64                `json:"id"`
	MemberID               uint64                `json:"member_id"`
	RequiredCaregivingType models.CaregivingType `json:"required_caregiving_type"`
	OtherRequirements      string                `json:"other_requirements,omitempty"`
	DatePosted             time.Time             `json:"date_posted"`
	PosterName             string                `json:"poster_name,omitempty"`
}

// ApplicationDTO represents a job application in API responses
type ApplicationDTO struct {
	CaregiverID    uint64                `json:"caregiver_id"`
	JobID          uint64                `json:"job_id"`
	DateApplied    time.Time             `json:"date_applied"`
	ApplicantName  string                `json:"applicant_name,omitempty"`
	CaregivingType models.CaregivingType `json:"caregiving_type,omitempty"`
	HourlyRate     float64               `json:"hourly_rate,omitempty"`
}

// ToJobDTO converts a Job model to JobDTO
func ToJobDTO(job models.Job) JobDTO {
	dto := JobDTO{
		ID:                     job.ID,
		MemberID:               job.MemberID,
		RequiredCaregivingType: job.RequiredCaregivingType,
		OtherRequirements:      job.OtherRequirements,
		DatePosted:             job.DatePosted,
	}
	if job.Member.User.ID != 0 {
		dto.PosterName = job.Member.User.FullName()
	}
	return dto
}

// ToJobDTOs converts a slice of jobs
func ToJobDTOs(jobs []models.Job) []JobDTO {
	items := make([]JobDTO, len(jobs))
	for i, job := range jobs {
		items[i] = ToJobDTO(job)
	}
	return items
}

// ToApplicationDTO converts a JobApplication model to ApplicationDTO
func ToApplicationDTO(app models.JobApplication) ApplicationDTO {
	dto := ApplicationDTO{
		CaregiverID: app.CaregiverID,
		JobID:       app.JobID,
		DateApplied: app.DateApplied,
	}
	if app.Caregiver.User.ID != 0 {
		dto.ApplicantName = app.Caregiver.User.FullName()
		dto.CaregivingType = app.Caregiver.CaregivingType
		dto.HourlyRate = app.Caregiver.HourlyRate
	}
	return dto
}

// ToApplicationDTOs converts a slice of applications
func ToApplicationDTOs(apps []models.JobApplication) []ApplicationDTO {
	items := make([]ApplicationDTO, len(apps))
	for i, app := range apps {
		items[i] = ToApplicationDTO(app)
	}
	return items
}
